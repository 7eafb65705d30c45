package commands

import (
	"fmt"

	"checklist/internal/service"
)

// resolveTaskRefs maps refs to tasks in the given snapshot, in ref order.
// A task named by more than one ref is returned once.
func resolveTaskRefs(snapshot service.TaskList, refs []TaskRef) ([]service.Task, error) {
	seen := make(map[string]bool, len(refs))
	tasks := make([]service.Task, 0, len(refs))

	for _, ref := range refs {
		task, err := lookupTask(snapshot, ref)
		if err != nil {
			return nil, err
		}
		if seen[task.ID] {
			continue
		}
		seen[task.ID] = true
		tasks = append(tasks, task)
	}
	return tasks, nil
}

func lookupTask(snapshot service.TaskList, ref TaskRef) (service.Task, error) {
	if ref.ID != "" {
		task, idx := snapshot.Find(ref.ID)
		if idx < 0 {
			return service.Task{}, fmt.Errorf("task not found: %s", ref.ID)
		}
		return task, nil
	}

	if ref.Num < 1 || ref.Num > len(snapshot) {
		return service.Task{}, fmt.Errorf("task number out of range: %d", ref.Num)
	}
	return snapshot[ref.Num-1], nil
}
