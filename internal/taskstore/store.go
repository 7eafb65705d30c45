// Package taskstore owns the in-memory checklist and mirrors every mutation
// to a storage.Adapter (write-through).
package taskstore

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"checklist/internal/service"
	"checklist/internal/sink"
	"checklist/internal/storage"
)

// DefaultKey is the storage key holding the serialized list.
const DefaultKey = "tasks"

// State is the hydration state of a Store.
type State int

const (
	// Loading means Load has not completed; mutations are rejected.
	Loading State = iota
	// Ready means the list has been hydrated.
	Ready
)

func (s State) String() string {
	if s == Ready {
		return "ready"
	}
	return "loading"
}

// Option configures a Store.
type Option func(*Store)

// WithKey sets the storage key.
func WithKey(key string) Option {
	return func(s *Store) { s.key = key }
}

// WithReporter sets the sink that receives absorbed persistence failures.
func WithReporter(r sink.Reporter) Option {
	return func(s *Store) { s.reporter = r }
}

// WithIDGenerator replaces the UUID generator.
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) { s.newID = fn }
}

// WithLogger sets the logger used for debug traces.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// Store implements service.Service over a storage.Adapter.
type Store struct {
	mu       sync.Mutex
	adapter  storage.Adapter
	key      string
	reporter sink.Reporter
	logger   *slog.Logger
	newID    func() string

	state State
	tasks service.TaskList

	subMu  sync.Mutex
	subs   map[int]func(service.TaskList)
	nextID int
}

var _ service.Service = (*Store)(nil)

// New creates a Store in the Loading state.
func New(adapter storage.Adapter, opts ...Option) *Store {
	s := &Store{
		adapter: adapter,
		key:     DefaultKey,
		newID:   uuid.NewString,
		tasks:   service.TaskList{},
		subs:    make(map[int]func(service.TaskList)),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.reporter == nil {
		s.reporter = sink.LogHook(s.logger)
	}
	return s
}

// State reports whether the store has been hydrated.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Key returns the storage key the list is mirrored to.
func (s *Store) Key() string {
	return s.key
}

// Load implements service.Service.
func (s *Store) Load(ctx context.Context) service.TaskList {
	s.mu.Lock()
	list := s.load(ctx)
	s.tasks = list
	s.state = Ready
	snapshot := s.tasks.Clone()
	s.mu.Unlock()

	s.notify(snapshot)
	return snapshot
}

func (s *Store) load(ctx context.Context) service.TaskList {
	text, ok, err := s.adapter.Read(ctx, s.key)
	if err != nil {
		s.report(ctx, "load", storage.Unavailable("read", s.key, err))
		return service.TaskList{}
	}
	if !ok {
		s.logger.DebugContext(ctx, "no persisted list", "key", s.key)
		return service.TaskList{}
	}
	list, err := Decode(text)
	if err != nil {
		s.report(ctx, "load", err)
		return service.TaskList{}
	}
	s.logger.DebugContext(ctx, "list hydrated", "key", s.key, "tasks", len(list))
	return list
}

// Tasks implements service.Service.
func (s *Store) Tasks() service.TaskList {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tasks.Clone()
}

// Add implements service.Service.
func (s *Store) Add(ctx context.Context, label string) (service.Task, bool) {
	if strings.TrimSpace(label) == "" {
		return service.Task{}, false
	}
	// The JSON encoding replaces invalid bytes, so do it here first to keep
	// memory and the persisted copy identical.
	if !utf8.ValidString(label) {
		label = strings.ToValidUTF8(label, string(utf8.RuneError))
	}

	s.mu.Lock()
	if !s.readyLocked(ctx, "add") {
		s.mu.Unlock()
		return service.Task{}, false
	}
	task := service.Task{ID: s.newID(), Label: label}
	next := make(service.TaskList, len(s.tasks), len(s.tasks)+1)
	copy(next, s.tasks)
	snapshot := s.commitLocked(ctx, "add", append(next, task))
	s.mu.Unlock()

	s.notify(snapshot)
	return task, true
}

// Toggle implements service.Service.
func (s *Store) Toggle(ctx context.Context, id string) (service.Task, bool) {
	s.mu.Lock()
	if !s.readyLocked(ctx, "toggle") {
		s.mu.Unlock()
		return service.Task{}, false
	}
	task, idx := s.tasks.Find(id)
	if idx < 0 {
		s.mu.Unlock()
		return service.Task{}, false
	}
	task.Done = !task.Done
	next := s.tasks.Clone()
	next[idx] = task
	snapshot := s.commitLocked(ctx, "toggle", next)
	s.mu.Unlock()

	s.notify(snapshot)
	return task, true
}

// DeleteSelected implements service.Service.
func (s *Store) DeleteSelected(ctx context.Context) int {
	s.mu.Lock()
	if !s.readyLocked(ctx, "delete_selected") {
		s.mu.Unlock()
		return 0
	}
	next := make(service.TaskList, 0, len(s.tasks))
	for _, t := range s.tasks {
		if !t.Done {
			next = append(next, t)
		}
	}
	removed := len(s.tasks) - len(next)
	snapshot := s.commitLocked(ctx, "delete_selected", next)
	s.mu.Unlock()

	s.notify(snapshot)
	return removed
}

// Subscribe registers fn to receive a snapshot after Load and after every
// mutation. The returned function removes the subscription.
func (s *Store) Subscribe(fn func(service.TaskList)) (cancel func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subs, id)
	}
}

func (s *Store) readyLocked(ctx context.Context, op string) bool {
	if s.state == Ready {
		return true
	}
	s.logger.DebugContext(ctx, "operation rejected before load", "op", op)
	return false
}

// commitLocked swaps in next and writes it through. A failed write leaves
// the in-memory change applied and is reported, not returned.
func (s *Store) commitLocked(ctx context.Context, op string, next service.TaskList) service.TaskList {
	s.tasks = next
	if err := s.persistLocked(ctx); err != nil {
		s.report(ctx, op, err)
	} else {
		s.logger.DebugContext(ctx, "list persisted", "op", op, "tasks", len(next))
	}
	return s.tasks.Clone()
}

func (s *Store) persistLocked(ctx context.Context) error {
	text, err := Encode(s.tasks)
	if err != nil {
		return storage.Unavailable("encode", s.key, err)
	}
	return storage.Unavailable("write", s.key, s.adapter.Write(ctx, s.key, text))
}

// report forwards err to the sink. Adapter errors reach here already
// wrapped with storage.ErrUnavailable.
func (s *Store) report(ctx context.Context, op string, err error) {
	kind := sink.KindStorageUnavailable
	if errors.Is(err, ErrDeserialization) {
		kind = sink.KindDeserializationFailure
	}
	event := sink.Event{Kind: kind, Op: op, Key: s.key, Err: err, OccurredAt: time.Now()}
	if rerr := s.reporter.Report(ctx, event); rerr != nil {
		s.logger.ErrorContext(ctx, "reporter failed", "error", rerr, "op", op)
	}
}

func (s *Store) notify(snapshot service.TaskList) {
	s.subMu.Lock()
	fns := make([]func(service.TaskList), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(snapshot.Clone())
	}
}
