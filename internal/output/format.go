// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"checklist/internal/service"
)

const (
	// DoneMark and OpenMark render the done switch.
	DoneMark = "[x]"
	OpenMark = "[ ]"
)

// FormatTask formats a task line.
// Format: "{N:>4}  {MARK} {LABEL}\n" (4-wide right-aligned number, two spaces, mark, label)
func FormatTask(w io.Writer, num int, task service.Task) {
	fmt.Fprintf(w, "%4d  %s %s\n", num, mark(task), normalizeLabel(task.Label))
}

// FormatTaskWithID formats a task line followed by its ID.
// Format: "{N:>4}  {MARK} {LABEL}  ({ID})\n"
func FormatTaskWithID(w io.Writer, num int, task service.Task) {
	fmt.Fprintf(w, "%4d  %s %s  (%s)\n", num, mark(task), normalizeLabel(task.Label), task.ID)
}

// FormatList formats every task in order, numbering from 1.
func FormatList(w io.Writer, list service.TaskList, withIDs bool) {
	for i, task := range list {
		if withIDs {
			FormatTaskWithID(w, i+1, task)
		} else {
			FormatTask(w, i+1, task)
		}
	}
}

// FormatSummary formats the "N tasks, M done" footer.
func FormatSummary(w io.Writer, list service.TaskList) {
	noun := "tasks"
	if len(list) == 1 {
		noun = "task"
	}
	fmt.Fprintf(w, "%d %s, %d done\n", len(list), noun, list.DoneCount())
}

func mark(task service.Task) string {
	if task.Done {
		return DoneMark
	}
	return OpenMark
}

// normalizeLabel replaces newlines with spaces so each task stays on one line.
func normalizeLabel(label string) string {
	label = strings.ReplaceAll(label, "\r", " ")
	return strings.ReplaceAll(label, "\n", " ")
}
