package queue

import (
	"fmt"
	"strconv"
	"strings"
)

// Fixed-width listing layout: 1 + 8 + 3 + 5 + 3 + 20 + 3 + 35 = 78 columns.
const (
	renderWidth = 78

	colPriority = 8
	colID       = 5
	colAction   = 20
	colOptions  = 35
)

// Render formats pending tasks as a fixed-width table. An empty input
// renders nothing at all. Input order is preserved; ordering is the
// store's contract (priority ascending, then id), not the presenter's.
func Render(tasks []Task) string {
	if len(tasks) == 0 {
		return ""
	}

	dashes := strings.Repeat("-", renderWidth)
	var b strings.Builder

	banner := fmt.Sprintf("There are %d tasks in the queue:", len(tasks))
	b.WriteString("\n" + center(banner, renderWidth) + "\n")
	b.WriteString(dashes + "\n")
	writeRow(&b, "PRIORITY", "ID", "ACTION", "OPTIONS")
	b.WriteString(dashes + "\n")

	for _, t := range tasks {
		writeRow(&b,
			strconv.Itoa(t.Priority),
			strconv.FormatInt(t.ID, 10),
			string(t.Action),
			t.Options,
		)
	}
	return b.String()
}

func writeRow(b *strings.Builder, priority, id, action, options string) {
	fmt.Fprintf(b, " %s | %s | %s | %s\n",
		center(priority, colPriority),
		center(id, colID),
		center(action, colAction),
		center(options, colOptions),
	)
}

// center pads s to width w, extra padding on the right. Values wider than
// the column are left untruncated rather than losing data.
func center(s string, w int) string {
	if len(s) >= w {
		return s
	}
	left := (w - len(s)) / 2
	right := w - len(s) - left
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", right)
}
