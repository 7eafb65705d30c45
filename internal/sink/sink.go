// Package sink receives persistence failures that the task store absorbs
// instead of returning to the presentation layer.
package sink

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// Kind classifies a reported failure.
type Kind string

const (
	// KindStorageUnavailable means the adapter could not read or write.
	KindStorageUnavailable Kind = "storage_unavailable"

	// KindDeserializationFailure means the persisted blob could not be parsed.
	KindDeserializationFailure Kind = "deserialization_failure"
)

// Event describes one absorbed failure.
type Event struct {
	Kind       Kind
	Op         string // load, add, toggle, delete_selected
	Key        string
	Err        error
	OccurredAt time.Time
}

// Reporter receives failure events.
type Reporter interface {
	Report(ctx context.Context, event Event) error
}

// ReporterFunc allows plain functions to satisfy Reporter.
type ReporterFunc func(ctx context.Context, event Event) error

// Report dispatches to the underlying function.
func (fn ReporterFunc) Report(ctx context.Context, event Event) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, event)
}

// Hooks fans out events to zero or more reporters.
type Hooks []Reporter

// Report forwards the event to every hook and joins their errors.
// Events without a kind are dropped.
func (h Hooks) Report(ctx context.Context, event Event) error {
	if len(h) == 0 || event.Kind == "" {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now()
	}

	var errs []error
	for _, hook := range h {
		if hook == nil {
			continue
		}
		if err := hook.Report(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// LogHook returns a reporter that writes events to logger at warn level.
// A nil logger uses slog.Default at report time.
func LogHook(logger *slog.Logger) Reporter {
	return ReporterFunc(func(ctx context.Context, event Event) error {
		l := logger
		if l == nil {
			l = slog.Default()
		}
		attrs := []any{
			slog.String("kind", string(event.Kind)),
			slog.String("op", event.Op),
			slog.String("key", event.Key),
		}
		if event.Err != nil {
			attrs = append(attrs, slog.String("error", event.Err.Error()))
		}
		l.WarnContext(ctx, "persistence failure", attrs...)
		return nil
	})
}

// Recorder keeps every reported event in memory.
type Recorder struct {
	Events []Event
}

// Report implements Reporter.
func (r *Recorder) Report(_ context.Context, event Event) error {
	r.Events = append(r.Events, event)
	return nil
}

// Kinds returns the kinds of all recorded events in order.
func (r *Recorder) Kinds() []Kind {
	kinds := make([]Kind, len(r.Events))
	for i, e := range r.Events {
		kinds[i] = e.Kind
	}
	return kinds
}
