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
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "checklist help" }
func (c *HelpCmd) NeedsStore() bool  { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  checklist                                  List tasks
  checklist list [common flags] [--ids] [--summary]
  checklist add [common flags] <label...>
  checklist create [common flags] <label...>
  checklist toggle [common flags] <ref...>
  checklist done [common flags] <ref...>
  checklist delete [common flags]
  checklist rm [common flags]
  checklist help
  checklist version

A <ref> is a task number as printed by list, or a task ID (list --ids).
delete removes every task marked done.

Common flags:
  --config <dir>   Override config directory
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr

Environment:
  CHECKLIST_STORAGE_BACKEND   file (default), memory or mysql
  CHECKLIST_STORAGE_PATH      Data directory for the file backend
  CHECKLIST_STORAGE_DSN       DSN for the mysql backend
  CHECKLIST_STORAGE_KEY       Storage key (default "tasks")
  CHECKLIST_LOG_LEVEL         debug, info, warn (default) or error
`
