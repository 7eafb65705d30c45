package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"checklist/internal/config"
	"checklist/internal/exitcode"
	"checklist/internal/output"
	"checklist/internal/service"
)

func init() {
	Register(&ToggleCmd{})
}

// ToggleCmd implements the toggle command.
type ToggleCmd struct{}

func (c *ToggleCmd) Name() string      { return "toggle" }
func (c *ToggleCmd) Aliases() []string { return []string{"done"} }
func (c *ToggleCmd) Synopsis() string  { return "Flip the done mark of tasks" }
func (c *ToggleCmd) Usage() string     { return "checklist toggle <ref...>" }
func (c *ToggleCmd) NeedsStore() bool  { return true }

func (c *ToggleCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ToggleCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	refs, err := ParseTaskRefs(args)
	if err != nil {
		if errors.Is(err, ErrTaskRefRequired) {
			fmt.Fprintln(errOut, "error: task reference required")
		} else {
			fmt.Fprintf(errOut, "error: %v\n", err)
		}
		return exitcode.UserError
	}

	// Resolve every ref against one snapshot so numbers stay stable
	snapshot := svc.Tasks()
	targets, err := resolveTaskRefs(snapshot, refs)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	for _, target := range targets {
		task, ok := svc.Toggle(ctx, target.ID)
		if !ok {
			fmt.Fprintf(errOut, "error: task not found: %s\n", target.ID)
			return exitcode.UserError
		}
		if !cfg.Quiet {
			_, idx := svc.Tasks().Find(task.ID)
			output.FormatTask(out, idx+1, task)
		}
	}
	return exitcode.Success
}
