package sink_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"checklist/internal/sink"
)

func TestHooks_FanOut(t *testing.T) {
	first := &sink.Recorder{}
	second := &sink.Recorder{}
	hooks := sink.Hooks{first, nil, second}

	err := hooks.Report(context.Background(), sink.Event{Kind: sink.KindStorageUnavailable, Op: "add"})
	require.NoError(t, err)

	require.Len(t, first.Events, 1)
	require.Len(t, second.Events, 1)
	assert.Equal(t, "add", first.Events[0].Op)
	assert.False(t, first.Events[0].OccurredAt.IsZero(), "timestamp should be filled in")
}

func TestHooks_DropsEventsWithoutKind(t *testing.T) {
	rec := &sink.Recorder{}
	hooks := sink.Hooks{rec}

	require.NoError(t, hooks.Report(context.Background(), sink.Event{Op: "add"}))
	assert.Empty(t, rec.Events)
}

func TestHooks_JoinsErrors(t *testing.T) {
	errA := errors.New("a failed")
	errB := errors.New("b failed")
	hooks := sink.Hooks{
		sink.ReporterFunc(func(context.Context, sink.Event) error { return errA }),
		sink.ReporterFunc(func(context.Context, sink.Event) error { return errB }),
	}

	err := hooks.Report(context.Background(), sink.Event{Kind: sink.KindDeserializationFailure})
	assert.ErrorIs(t, err, errA)
	assert.ErrorIs(t, err, errB)
}

func TestLogHook(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	err := sink.LogHook(logger).Report(context.Background(), sink.Event{
		Kind: sink.KindDeserializationFailure,
		Op:   "load",
		Key:  "tasks",
		Err:  errors.New("unexpected end of JSON input"),
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "kind=deserialization_failure")
	assert.Contains(t, out, "op=load")
	assert.Contains(t, out, "unexpected end of JSON input")
}

func TestRecorder_Kinds(t *testing.T) {
	rec := &sink.Recorder{}
	_ = rec.Report(context.Background(), sink.Event{Kind: sink.KindStorageUnavailable})
	_ = rec.Report(context.Background(), sink.Event{Kind: sink.KindDeserializationFailure})

	assert.Equal(t, []sink.Kind{sink.KindStorageUnavailable, sink.KindDeserializationFailure}, rec.Kinds())
}
