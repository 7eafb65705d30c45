package service

import "context"

// Service defines the operations the presentation layer dispatches.
// Commands never import a storage backend directly.
//
// Persistence failures are never returned: they are reported to the
// observability sink and the in-memory state stays authoritative.
type Service interface {
	// Load hydrates the list from storage, replacing in-memory state.
	// An absent, unreadable or malformed blob yields an empty list.
	Load(ctx context.Context) TaskList

	// Tasks returns a snapshot of the current list.
	Tasks() TaskList

	// Add appends a task with the given label and persists the list.
	// Returns false without changes if the label is blank.
	Add(ctx context.Context, label string) (Task, bool)

	// Toggle flips the done flag of the task with the given ID and
	// persists the list. Returns false if no such task exists.
	Toggle(ctx context.Context, id string) (Task, bool)

	// DeleteSelected removes every done task, keeping the relative order
	// of the rest, and persists the list. Returns the number removed.
	DeleteSelected(ctx context.Context) int
}
