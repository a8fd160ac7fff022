package commands

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Operation is a command running in the background.
type Operation struct {
	ID        string
	Name      string
	StartedAt time.Time
}

type running struct {
	op     Operation
	cancel context.CancelFunc
}

// Tracker runs commands off the request path, each under its own timeout, and
// lets a hung one be abandoned by id.
type Tracker struct {
	base    context.Context
	timeout time.Duration
	log     zerolog.Logger

	mu  sync.Mutex
	ops map[string]*running
	wg  sync.WaitGroup
}

// NewTracker ties every operation to base: cancelling base abandons them all.
func NewTracker(base context.Context, timeout time.Duration, log zerolog.Logger) *Tracker {
	return &Tracker{base: base, timeout: timeout, log: log, ops: make(map[string]*running)}
}

// Go starts fn and returns its operation id.
func (t *Tracker) Go(name string, fn func(ctx context.Context) error) string {
	ctx, cancel := context.WithTimeout(t.base, t.timeout)
	r := &running{
		op:     Operation{ID: uuid.NewString(), Name: name, StartedAt: time.Now()},
		cancel: cancel,
	}
	t.mu.Lock()
	t.ops[r.op.ID] = r
	t.mu.Unlock()

	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		defer t.finish(r.op.ID)
		if err := fn(ctx); err != nil {
			t.log.Debug().Err(err).Str("op", r.op.ID).Str("name", name).Msg("operation ended with error")
		}
	}()
	return r.op.ID
}

func (t *Tracker) finish(id string) {
	t.mu.Lock()
	r, ok := t.ops[id]
	delete(t.ops, id)
	t.mu.Unlock()
	if ok {
		r.cancel()
	}
}

// Cancel abandons a running operation. It reports false for unknown ids.
func (t *Tracker) Cancel(id string) bool {
	t.mu.Lock()
	r, ok := t.ops[id]
	t.mu.Unlock()
	if !ok {
		return false
	}
	r.cancel()
	t.log.Info().Str("op", id).Str("name", r.op.Name).Msg("operation cancelled")
	return true
}

// Pending lists running operations, oldest first.
func (t *Tracker) Pending() []Operation {
	t.mu.Lock()
	out := make([]Operation, 0, len(t.ops))
	for _, r := range t.ops {
		out = append(out, r.op)
	}
	t.mu.Unlock()
	sort.Slice(out, func(i, j int) bool { return out[i].StartedAt.Before(out[j].StartedAt) })
	return out
}

// Wait blocks until every started operation has returned.
func (t *Tracker) Wait() { t.wg.Wait() }
