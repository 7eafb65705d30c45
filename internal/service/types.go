// Package service defines the presentation-facing interface for checklist operations.
package service

// Task represents a single checklist entry.
type Task struct {
	ID    string `json:"id" validate:"required"`
	Label string `json:"label" validate:"notblank"`
	Done  bool   `json:"done"`
}

// TaskList is the ordered collection of tasks in insertion order.
type TaskList []Task

// Clone returns a copy that shares no backing array with l.
// A nil list clones to an empty, non-nil list.
func (l TaskList) Clone() TaskList {
	out := make(TaskList, len(l))
	copy(out, l)
	return out
}

// Find returns the task with the given ID and its index, or -1 if absent.
func (l TaskList) Find(id string) (Task, int) {
	for i, t := range l {
		if t.ID == id {
			return t, i
		}
	}
	return Task{}, -1
}

// AnyDone reports whether at least one task is marked done.
func (l TaskList) AnyDone() bool {
	for _, t := range l {
		if t.Done {
			return true
		}
	}
	return false
}

// DoneCount returns the number of tasks marked done.
func (l TaskList) DoneCount() int {
	n := 0
	for _, t := range l {
		if t.Done {
			n++
		}
	}
	return n
}
