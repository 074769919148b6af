package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"stationq/internal/queue"
)

// memoryStore keeps everything in process memory. It mirrors the sqlite
// driver's ordering and id assignment so tests exercise the same contract.
type memoryStore struct {
	mu       sync.Mutex
	settings map[string]string
	tasks    []queue.Task
	nextID   int64
}

func newMemory() *memoryStore {
	return &memoryStore{
		settings: map[string]string{},
		nextID:   1,
	}
}

func (s *memoryStore) Close() error { return nil }

func (s *memoryStore) GetSetting(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.settings[key]
	return v, ok, nil
}

func (s *memoryStore) SetSetting(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings[key] = value
	return nil
}

func (s *memoryStore) InsertTask(_ context.Context, action queue.Action, priority int, options string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = append(s.tasks, queue.Task{
		ID:       s.nextID,
		Action:   action,
		Priority: priority,
		Options:  options,
	})
	s.nextID++
	return nil
}

func (s *memoryStore) ListPending(_ context.Context) ([]queue.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []queue.Task
	for _, t := range s.tasks {
		if !t.Done {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Priority != out[j].Priority {
			return out[i].Priority < out[j].Priority
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *memoryStore) MarkDone(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks[i].Done = true
			return nil
		}
	}
	return fmt.Errorf("task %d not found", id)
}
