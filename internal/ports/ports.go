package ports

import (
	"context"

	"ethicsreview/internal/domain"
)

// Notifier surfaces transient messages. A new message of either kind hides the other.
type Notifier interface {
	Error(msg string)
	Success(msg string)
}

// FormResetter restores a form's fields to their defaults.
type FormResetter interface {
	Reset(form domain.Form)
}

// Reloader refreshes the read model for the current connection.
type Reloader interface {
	Reload(ctx context.Context)
}

// NetworkStatus receives the outcome of a network check for display.
type NetworkStatus interface {
	SetConnection(session *domain.Session, onExpectedChain bool)
}

// ProjectionStore keeps running counters derived from contract events.
type ProjectionStore interface {
	// Checkpoint returns the last block fully applied.
	Checkpoint(ctx context.Context) (block uint64, found bool, err error)
	// Apply records events and advances the checkpoint to upTo atomically.
	Apply(ctx context.Context, events []domain.ContractEvent, upTo uint64) error
	Counters(ctx context.Context) (domain.LiveStats, error)
}
