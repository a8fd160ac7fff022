package memory

import (
	"context"
	"sync"

	"ethicsreview/internal/domain"
	"ethicsreview/internal/ports"
)

// Projection keeps event-derived counters in process memory. It starts empty on
// every run, so the watcher replays from its configured start block.
type Projection struct {
	mu         sync.RWMutex
	checkpoint uint64
	hasCheck   bool
	status     map[uint32]domain.ProposalStatus
	stats      domain.LiveStats
}

var _ ports.ProjectionStore = (*Projection)(nil)

func NewProjection() *Projection {
	return &Projection{status: make(map[uint32]domain.ProposalStatus)}
}

func (p *Projection) Checkpoint(context.Context) (uint64, bool, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.checkpoint, p.hasCheck, nil
}

func (p *Projection) Apply(_ context.Context, events []domain.ContractEvent, upTo uint64) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, ev := range events {
		switch ev.Kind {
		case domain.EventProposalSubmitted:
			p.stats.TotalProposals++
			if _, ok := p.status[ev.ProposalID]; !ok {
				p.status[ev.ProposalID] = domain.StatusSubmitted
			}
		case domain.EventReviewerRegistered:
			p.stats.TotalReviewers++
		case domain.EventReviewSubmitted:
			p.stats.CompletedReviews++
		case domain.EventProposalStatusUpdated:
			p.status[ev.ProposalID] = ev.Status
		case domain.EventEthicsDecisionReached:
			p.stats.Decisions++
			p.status[ev.ProposalID] = ev.Decision
		}
	}
	p.checkpoint = upTo
	p.hasCheck = true
	return nil
}

func (p *Projection) Counters(context.Context) (domain.LiveStats, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := p.stats
	out.ActiveReviews = 0
	for _, s := range p.status {
		if s == domain.StatusUnderReview {
			out.ActiveReviews++
		}
	}
	out.LastBlock = p.checkpoint
	out.Synced = p.hasCheck
	return out, nil
}
