package eventwatcher

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"ethicsreview/internal/metrics"
	"ethicsreview/internal/ports"
)

// DefaultMaxRange caps the blocks requested per log query. Public RPC
// endpoints commonly reject wider ranges.
const DefaultMaxRange = 2000

type Config struct {
	Interval   time.Duration
	StartBlock uint64
	MaxRange   uint64
}

// Watcher tails contract events into a projection store and asks for a read
// model reload after each batch that carried events.
type Watcher struct {
	source  ports.EventSource
	store   ports.ProjectionStore
	reload  ports.Reloader
	metrics *metrics.Metrics
	clock   clockwork.Clock
	log     zerolog.Logger
	cfg     Config
}

func New(source ports.EventSource, store ports.ProjectionStore, reload ports.Reloader, m *metrics.Metrics, clock clockwork.Clock, log zerolog.Logger, cfg Config) *Watcher {
	if cfg.MaxRange == 0 {
		cfg.MaxRange = DefaultMaxRange
	}
	if cfg.Interval <= 0 {
		cfg.Interval = 12 * time.Second
	}
	return &Watcher{source: source, store: store, reload: reload, metrics: m, clock: clock, log: log, cfg: cfg}
}

// Run polls until ctx is done. Poll errors are logged and retried on the next tick.
func (w *Watcher) Run(ctx context.Context) {
	ticker := w.clock.NewTicker(w.cfg.Interval)
	defer ticker.Stop()
	for {
		w.catchUp(ctx)
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
		}
	}
}

// catchUp polls repeatedly while each batch stops short of the chain head.
func (w *Watcher) catchUp(ctx context.Context) {
	for ctx.Err() == nil {
		more, err := w.Poll(ctx)
		if err != nil {
			w.log.Warn().Err(err).Msg("event poll failed")
			return
		}
		if !more {
			return
		}
	}
}

// Poll applies one block range past the checkpoint. It reports whether more
// blocks remain before the latest one.
func (w *Watcher) Poll(ctx context.Context) (bool, error) {
	latest, err := w.source.LatestBlock(ctx)
	if err != nil {
		return false, err
	}
	from := w.cfg.StartBlock
	cp, found, err := w.store.Checkpoint(ctx)
	if err != nil {
		return false, err
	}
	if found && cp+1 > from {
		from = cp + 1
	}
	if from > latest {
		return false, nil
	}
	to := latest
	if to-from+1 > w.cfg.MaxRange {
		to = from + w.cfg.MaxRange - 1
	}

	events, err := w.source.Events(ctx, from, to)
	if err != nil {
		return false, err
	}
	if err := w.store.Apply(ctx, events, to); err != nil {
		return false, err
	}
	for _, ev := range events {
		w.metrics.EventApplied(string(ev.Kind))
	}
	w.log.Debug().Uint64("from", from).Uint64("to", to).Int("events", len(events)).Msg("events applied")
	if len(events) > 0 && w.reload != nil {
		w.reload.Reload(ctx)
	}
	return to < latest, nil
}
