package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"ethicsreview/internal/domain"
	"ethicsreview/internal/ports"
)

var _ ports.ProjectionStore = (*DB)(nil)

func (db *DB) Checkpoint(ctx context.Context) (uint64, bool, error) {
	var block int64
	err := db.Pool.QueryRow(ctx, `SELECT last_block FROM projection_checkpoint WHERE id = 1`).Scan(&block)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return uint64(block), true, nil
}

// Apply folds a batch of events into the counters and moves the checkpoint in
// one transaction, so a crash mid-batch replays the whole batch.
func (db *DB) Apply(ctx context.Context, events []domain.ContractEvent, upTo uint64) (err error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	tx, err := db.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	var proposals, reviewers, completed, decisions int64
	for _, ev := range events {
		switch ev.Kind {
		case domain.EventProposalSubmitted:
			proposals++
			if _, err = tx.Exec(ctx, `
				INSERT INTO proposal_status (proposal_id, status) VALUES ($1, $2)
				ON CONFLICT (proposal_id) DO NOTHING
			`, int64(ev.ProposalID), int16(domain.StatusSubmitted)); err != nil {
				return err
			}
		case domain.EventReviewerRegistered:
			reviewers++
		case domain.EventReviewSubmitted:
			completed++
		case domain.EventProposalStatusUpdated, domain.EventEthicsDecisionReached:
			status := ev.Status
			if ev.Kind == domain.EventEthicsDecisionReached {
				decisions++
				status = ev.Decision
			}
			if _, err = tx.Exec(ctx, `
				INSERT INTO proposal_status (proposal_id, status) VALUES ($1, $2)
				ON CONFLICT (proposal_id) DO UPDATE SET status = EXCLUDED.status, updated_at = now()
			`, int64(ev.ProposalID), int16(status)); err != nil {
				return err
			}
		}
	}

	if _, err = tx.Exec(ctx, `
		UPDATE projection_counters SET
			total_proposals = total_proposals + $1,
			total_reviewers = total_reviewers + $2,
			completed_reviews = completed_reviews + $3,
			decisions = decisions + $4
		WHERE id = 1
	`, proposals, reviewers, completed, decisions); err != nil {
		return err
	}
	_, err = tx.Exec(ctx, `
		INSERT INTO projection_checkpoint (id, last_block) VALUES (1, $1)
		ON CONFLICT (id) DO UPDATE SET last_block = EXCLUDED.last_block, updated_at = now()
	`, int64(upTo))
	return err
}

func (db *DB) Counters(ctx context.Context) (domain.LiveStats, error) {
	var out domain.LiveStats
	var proposals, reviewers, completed, decisions, active int64
	var lastBlock *int64
	err := db.Pool.QueryRow(ctx, `
		SELECT c.total_proposals, c.total_reviewers, c.completed_reviews, c.decisions,
		       (SELECT count(*) FROM proposal_status WHERE status = $1),
		       (SELECT last_block FROM projection_checkpoint WHERE id = 1)
		FROM projection_counters c
		WHERE c.id = 1
	`, int16(domain.StatusUnderReview)).Scan(&proposals, &reviewers, &completed, &decisions, &active, &lastBlock)
	if err != nil {
		return out, err
	}
	out = domain.LiveStats{
		TotalProposals:   uint64(proposals),
		TotalReviewers:   uint64(reviewers),
		ActiveReviews:    uint64(active),
		CompletedReviews: uint64(completed),
		Decisions:        uint64(decisions),
	}
	if lastBlock != nil {
		out.LastBlock = uint64(*lastBlock)
		out.Synced = true
	}
	return out, nil
}
