package admission

import "testing"

func TestAdmit(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		hour   int
		manual bool
		w      Window
		want   bool
	}{
		{name: "inside window", hour: 10, w: Window{8, 18}, want: true},
		{name: "start hour included", hour: 8, w: Window{8, 18}, want: true},
		{name: "stop hour excluded", hour: 18, w: Window{8, 18}, want: false},
		{name: "after window", hour: 20, w: Window{8, 18}, want: false},
		{name: "before window", hour: 3, w: Window{8, 18}, want: false},
		{name: "manual overrides window", hour: 10, manual: true, w: Window{8, 18}, want: false},
		{name: "empty window", hour: 8, w: Window{8, 8}, want: false},
		{name: "inverted window denies early hour", hour: 23, w: Window{22, 6}, want: false},
		{name: "inverted window denies late hour", hour: 2, w: Window{22, 6}, want: false},
		{name: "midnight inside", hour: 0, w: Window{0, 24}, want: true},
		{name: "hour 23 inside full day", hour: 23, w: Window{0, 24}, want: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if got := Admit(tt.hour, tt.manual, tt.w); got != tt.want {
				t.Fatalf("Admit(%d, %v, %+v) = %v, want %v", tt.hour, tt.manual, tt.w, got, tt.want)
			}
		})
	}
}
