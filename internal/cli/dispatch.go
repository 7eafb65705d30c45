package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"checklist/internal/backend"
	"checklist/internal/commands"
	"checklist/internal/config"
	"checklist/internal/exitcode"
	"checklist/internal/logging"
	"checklist/internal/service"
	"checklist/internal/sink"
	"checklist/internal/taskstore"
)

// ServiceFactory creates a Service from config, plus a function releasing
// its storage. The returned Service has not been loaded yet.
type ServiceFactory func(ctx context.Context, cfg *config.Config) (service.Service, func() error, error)

// DefaultFactory opens the configured storage backend and wraps it in a
// taskstore.Store bound to the configured key. Persistence failures go to
// the default logger through the sink.
func DefaultFactory(ctx context.Context, cfg *config.Config) (service.Service, func() error, error) {
	adapter, closeFn, err := backend.Open(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	reporter := sink.Hooks{sink.LogHook(nil)}
	store := taskstore.New(adapter,
		taskstore.WithKey(cfg.Storage.Key),
		taskstore.WithReporter(reporter),
	)
	return store, closeFn, nil
}

// Dispatcher handles command-line parsing and dispatch.
type Dispatcher struct {
	registry *commands.Registry
	factory  ServiceFactory
}

// NewDispatcher creates a new dispatcher with the given registry and service factory.
// A nil factory means DefaultFactory.
func NewDispatcher(registry *commands.Registry, factory ServiceFactory) *Dispatcher {
	if factory == nil {
		factory = DefaultFactory
	}
	return &Dispatcher{
		registry: registry,
		factory:  factory,
	}
}

// DefaultCommand runs when no arguments are given.
const DefaultCommand = "list"

// Run parses arguments and dispatches to the appropriate command.
// Returns the exit code.
func (d *Dispatcher) Run(ctx context.Context, args []string, out, errOut io.Writer) int {
	name, rest := DefaultCommand, []string(nil)
	if len(args) > 0 {
		name, rest = args[0], args[1:]
	}

	// Flags only follow a command name
	cmd, ok := d.registry.Find(name)
	if strings.HasPrefix(name, "-") || !ok {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", name)
		return exitcode.UserError
	}
	return d.dispatchCommand(ctx, cmd, rest, out, errOut)
}

// commonFlags are accepted by every command.
type commonFlags struct {
	configDir string
	quiet     bool
	debug     bool
}

func (f *commonFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.configDir, "config", "", "")
	fs.BoolVar(&f.quiet, "quiet", false, "")
	fs.BoolVar(&f.debug, "debug", false, "")
}

// load reads configuration and applies the session switches to it.
func (f *commonFlags) load() (*config.Config, error) {
	cfg, err := config.New(f.configDir)
	if err != nil {
		return nil, err
	}
	cfg.Quiet = f.quiet
	cfg.Debug = f.debug
	return cfg, nil
}

// describeFlagError turns a flag package error into the CLI's message.
func describeFlagError(err error) string {
	msg := err.Error()
	switch {
	case strings.HasPrefix(msg, "flag needs an argument:"):
		name := strings.TrimSpace(strings.TrimPrefix(msg, "flag needs an argument:"))
		return "flag needs an argument: " + name
	case strings.HasPrefix(msg, "flag provided but not defined:"):
		name := strings.TrimSpace(strings.TrimPrefix(msg, "flag provided but not defined:"))
		return "unknown flag: " + name
	default:
		return msg
	}
}

func (d *Dispatcher) dispatchCommand(ctx context.Context, cmd commands.Command, args []string, out, errOut io.Writer) int {
	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var common commonFlags
	common.register(fs)
	cmd.RegisterFlags(fs)

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(errOut, "error: %s\n", describeFlagError(err))
		return exitcode.UserError
	}

	// A dash token after "--" is still not a task reference or label
	positional := fs.Args()
	if len(positional) > 0 && strings.HasPrefix(positional[0], "-") {
		fmt.Fprintf(errOut, "error: unknown flag: %s\n", positional[0])
		return exitcode.UserError
	}

	cfg, err := common.load()
	if err != nil {
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.ConfigError
	}

	logging.Setup(cfg.LogLevel(), errOut)

	if !cmd.NeedsStore() {
		return cmd.Run(ctx, cfg, nil, positional, out, errOut)
	}

	svc, closeFn, err := d.factory(ctx, cfg)
	if err != nil {
		fmt.Fprintf(errOut, "error: storage error: %s\n", err)
		return exitcode.StorageError
	}
	if closeFn != nil {
		defer func() {
			if err := closeFn(); err != nil {
				slog.WarnContext(ctx, "failed to close storage", "error", err)
			}
		}()
	}

	// Hydrate before the command sees the list
	tasks := svc.Load(ctx)
	slog.DebugContext(ctx, "tasks loaded",
		"backend", cfg.Storage.Backend,
		"key", cfg.Storage.Key,
		"count", len(tasks))

	return cmd.Run(ctx, cfg, svc, positional, out, errOut)
}
