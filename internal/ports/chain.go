package ports

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"ethicsreview/internal/domain"
)

// Provider is the wallet: it knows which accounts are authorized and which chain
// it is on, and can bind the review contract to a signer for an account.
type Provider interface {
	// Accounts returns already-authorized accounts without prompting.
	Accounts(ctx context.Context) ([]common.Address, error)
	// RequestAccounts asks for account access; may fail with ProviderUnavailable
	// or UserRejected.
	RequestAccounts(ctx context.Context) ([]common.Address, error)
	ChainID(ctx context.Context) (*big.Int, error)
	// Bind returns the review contract with transactions signed by account.
	Bind(ctx context.Context, account common.Address, chainID *big.Int) (Contract, error)
}

// ContractReader is the read-only call surface of the review contract.
type ContractReader interface {
	NextProposalID(ctx context.Context) (uint32, error)
	NextReviewerID(ctx context.Context) (uint32, error)
	ProposalInfo(ctx context.Context, id uint32) (domain.ProposalView, error)
	ReviewerInfo(ctx context.Context, id uint32) (domain.ReviewerView, error)
	ReviewProgress(ctx context.Context, proposalID uint32) (domain.ReviewProgress, error)
	Admin(ctx context.Context) (common.Address, error)
}

// ContractWriter submits state-changing calls. Each returns once the transaction
// is broadcast; Tx.Wait blocks until it is mined.
type ContractWriter interface {
	SubmitResearchProposal(ctx context.Context, riskLevel, ethicsScore uint8, reviewPeriodDays *big.Int) (Tx, error)
	RegisterAsReviewer(ctx context.Context, experienceYears, role uint8, qualificationScore uint32) (Tx, error)
	SubmitAnonymousReview(ctx context.Context, proposalID, reviewerID uint32, ethicsRating, riskAssessment, recommendation uint8) (Tx, error)
	AssignReviewersToProposal(ctx context.Context, proposalID uint32, reviewerIDs []uint32) (Tx, error)
}

type Contract interface {
	ContractReader
	ContractWriter
}

// Tx is a broadcast transaction.
type Tx interface {
	Hash() common.Hash
	// Wait blocks until one confirmation. A reverted receipt is ContractReverted.
	Wait(ctx context.Context) error
}

// EventSource reads decoded contract events by block range.
type EventSource interface {
	LatestBlock(ctx context.Context) (uint64, error)
	Events(ctx context.Context, from, to uint64) ([]domain.ContractEvent, error)
}

// Connection is a live session together with the contract bound to its account.
// It is replaced wholesale on reconnect and never mutated.
type Connection struct {
	Session  domain.Session
	Contract Contract
}
