package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"checklist/internal/config"
	"checklist/internal/exitcode"
	"checklist/internal/service"
)

func init() {
	Register(&DeleteCmd{})
}

// DeleteCmd implements the delete command: it removes every done task.
type DeleteCmd struct{}

func (c *DeleteCmd) Name() string      { return "delete" }
func (c *DeleteCmd) Aliases() []string { return []string{"rm"} }
func (c *DeleteCmd) Synopsis() string  { return "Delete all done tasks" }
func (c *DeleteCmd) Usage() string     { return "checklist delete" }
func (c *DeleteCmd) NeedsStore() bool  { return true }

func (c *DeleteCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *DeleteCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	// Bulk delete is only offered while something is marked done
	if !svc.Tasks().AnyDone() {
		fmt.Fprintln(errOut, "error: no tasks marked done")
		return exitcode.UserError
	}

	n := svc.DeleteSelected(ctx)
	if !cfg.Quiet {
		noun := "tasks"
		if n == 1 {
			noun = "task"
		}
		fmt.Fprintf(out, "deleted %d %s\n", n, noun)
	}
	return exitcode.Success
}
