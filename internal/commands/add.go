package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"checklist/internal/config"
	"checklist/internal/exitcode"
	"checklist/internal/output"
	"checklist/internal/service"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct{}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"create"} }
func (c *AddCmd) Synopsis() string  { return "Add a task" }
func (c *AddCmd) Usage() string     { return "checklist add <label...>" }
func (c *AddCmd) NeedsStore() bool  { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	// Join args to form the label; the store keeps it verbatim
	label := strings.Join(args, " ")

	task, ok := svc.Add(ctx, label)
	if !ok {
		fmt.Fprintln(errOut, "error: label required")
		return exitcode.UserError
	}

	if !cfg.Quiet {
		output.FormatTask(out, len(svc.Tasks()), task)
	}
	return exitcode.Success
}
