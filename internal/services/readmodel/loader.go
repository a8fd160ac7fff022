package readmodel

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gammazero/workerpool"
	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog"

	"ethicsreview/internal/domain"
	"ethicsreview/internal/metrics"
	"ethicsreview/internal/ports"
)

type ProposalsResult struct {
	Items []domain.ProposalView
	Empty bool
	Err   error
}

type ReviewersResult struct {
	Items []domain.ReviewerView
	Empty bool
	Err   error
}

type StatsResult struct {
	Stats domain.StatsView
	Err   error
}

// View is one load cycle's snapshot. Each region fails independently.
type View struct {
	Proposals ProposalsResult
	Reviewers ReviewersResult
	Stats     StatsResult
	LoadedAt  time.Time
}

// Loader reads counters and per-id records from the contract. Individual record
// failures are logged and skipped; only a failed counter read fails a region.
type Loader struct {
	workers     int
	callTimeout time.Duration
	metrics     *metrics.Metrics
	log         zerolog.Logger
}

// NewLoader fans per-id fetches out over workers goroutines (1 keeps them
// strictly sequential). Every contract call gets callTimeout.
func NewLoader(workers int, callTimeout time.Duration, m *metrics.Metrics, log zerolog.Logger) *Loader {
	if workers < 1 {
		workers = 1
	}
	return &Loader{workers: workers, callTimeout: callTimeout, metrics: m, log: log}
}

// LoadData runs the three region loads concurrently and waits for all of them.
func (l *Loader) LoadData(ctx context.Context, c ports.ContractReader) View {
	var (
		v  View
		wg sync.WaitGroup
	)
	wg.Add(3)
	go func() { defer wg.Done(); v.Proposals = l.LoadProposals(ctx, c) }()
	go func() { defer wg.Done(); v.Reviewers = l.LoadReviewers(ctx, c) }()
	go func() { defer wg.Done(); v.Stats = l.LoadStats(ctx, c) }()
	wg.Wait()
	v.LoadedAt = time.Now()
	return v
}

func (l *Loader) LoadProposals(ctx context.Context, c ports.ContractReader) ProposalsResult {
	defer l.metrics.ObserveLoad("proposals", time.Now())
	next, err := l.counter(ctx, c.NextProposalID)
	if err != nil {
		l.log.Error().Err(err).Msg("load proposals")
		return ProposalsResult{Err: err}
	}
	if next <= 1 {
		return ProposalsResult{Empty: true}
	}
	return ProposalsResult{Items: fetchAll(ctx, l, "proposal", next, c.ProposalInfo)}
}

func (l *Loader) LoadReviewers(ctx context.Context, c ports.ContractReader) ReviewersResult {
	defer l.metrics.ObserveLoad("reviewers", time.Now())
	next, err := l.counter(ctx, c.NextReviewerID)
	if err != nil {
		l.log.Error().Err(err).Msg("load reviewers")
		return ReviewersResult{Err: err}
	}
	if next <= 1 {
		return ReviewersResult{Empty: true}
	}
	return ReviewersResult{Items: fetchAll(ctx, l, "reviewer", next, c.ReviewerInfo)}
}

// LoadStats reads both counters and rescans every proposal to recount active and
// completed reviews.
func (l *Loader) LoadStats(ctx context.Context, c ports.ContractReader) StatsResult {
	defer l.metrics.ObserveLoad("stats", time.Now())
	nextProposal, err := l.counter(ctx, c.NextProposalID)
	if err != nil {
		l.log.Error().Err(err).Msg("load stats")
		return StatsResult{Err: err}
	}
	nextReviewer, err := l.counter(ctx, c.NextReviewerID)
	if err != nil {
		l.log.Error().Err(err).Msg("load stats")
		return StatsResult{Err: err}
	}
	stats := domain.StatsView{
		TotalProposals: domain.CountFromNext(nextProposal),
		TotalReviewers: domain.CountFromNext(nextReviewer),
	}
	if nextProposal > 1 {
		for _, p := range fetchAll(ctx, l, "proposal", nextProposal, c.ProposalInfo) {
			if p.Status == domain.StatusUnderReview {
				stats.ActiveReviewCount++
			}
			stats.CompletedReviewCount += uint64(p.CompletedReviewCount)
		}
	}
	return StatsResult{Stats: stats}
}

func (l *Loader) counter(ctx context.Context, read func(context.Context) (uint32, error)) (uint32, error) {
	ctx, cancel := context.WithTimeout(ctx, l.callTimeout)
	defer cancel()
	return read(ctx)
}

// fetchAll fetches ids 1..next-1 and returns the successes in ascending id order.
func fetchAll[T any](ctx context.Context, l *Loader, entity string, next uint32, fetch func(context.Context, uint32) (T, error)) []T {
	n := int(next - 1)
	results := make([]T, n)
	fetched := make([]bool, n)

	var (
		mu   sync.Mutex
		errs *multierror.Error
	)
	pool := workerpool.New(l.workers)
	for i := 0; i < n; i++ {
		i := i
		pool.Submit(func() {
			id := uint32(i + 1)
			cctx, cancel := context.WithTimeout(ctx, l.callTimeout)
			v, err := fetch(cctx, id)
			cancel()
			if err != nil {
				l.log.Warn().Err(err).Str("entity", entity).Uint32("id", id).Msg("fetch failed, skipping")
				l.metrics.FetchFailed(entity)
				mu.Lock()
				errs = multierror.Append(errs, fmt.Errorf("%s %d: %w", entity, id, err))
				mu.Unlock()
				return
			}
			results[i] = v
			fetched[i] = true
		})
	}
	pool.StopWait()

	if err := errs.ErrorOrNil(); err != nil {
		l.log.Warn().Int("failed", errs.Len()).Int("total", n).Str("entity", entity).Msg("partial load")
	}
	out := make([]T, 0, n)
	for i, ok := range fetched {
		if ok {
			out = append(out, results[i])
		}
	}
	return out
}
