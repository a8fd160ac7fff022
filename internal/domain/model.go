package domain

import (
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// Read-only projections of contract state. The contract is the only durable store;
// these are rebuilt on every load and never mutated locally.

// Session is a wallet connection: the first authorized account and the chain the
// provider is currently on.
type Session struct {
	Account     common.Address
	ChainID     *big.Int
	ConnectedAt time.Time
}

// OnChain reports whether the session's chain matches the expected deployment chain.
func (s Session) OnChain(expected *big.Int) bool {
	if s.ChainID == nil || expected == nil {
		return false
	}
	return s.ChainID.Cmp(expected) == 0
}

type ProposalStatus uint8

const (
	StatusSubmitted ProposalStatus = iota
	StatusUnderReview
	StatusApproved
	StatusRejected
	StatusRequiresRevision
)

type ReviewerRole uint8

const (
	RoleJunior ReviewerRole = iota
	RoleSenior
	RoleExpert
)

type ProposalView struct {
	ID                    uint32
	Status                ProposalStatus
	SubmissionTime        uint64 // seconds since epoch
	ReviewDeadline        uint64 // seconds since epoch
	AssignedReviewerCount uint32
	CompletedReviewCount  uint32
	Submitter             common.Address
}

type ReviewerView struct {
	ID               uint32
	Role             ReviewerRole
	IsActive         bool
	IsAvailable      bool
	TotalReviews     uint64
	RegistrationTime uint64 // seconds since epoch
}

// StatsView is recomputed from a full proposal scan on every load.
type StatsView struct {
	TotalProposals       uint32
	TotalReviewers       uint32
	ActiveReviewCount    uint32
	CompletedReviewCount uint64
}

// ReviewProgress pairs each assigned reviewer with whether their review is in.
type ReviewProgress struct {
	ProposalID  uint32
	ReviewerIDs []uint32
	Completed   []bool
}

// LiveStats are running counters maintained from contract events.
type LiveStats struct {
	TotalProposals   uint64 `json:"totalProposals"`
	TotalReviewers   uint64 `json:"totalReviewers"`
	ActiveReviews    uint64 `json:"activeReviews"`
	CompletedReviews uint64 `json:"completedReviews"`
	Decisions        uint64 `json:"decisions"`
	LastBlock        uint64 `json:"lastBlock"`
	Synced           bool   `json:"synced"`
}

// CountFromNext converts a next-id counter into an entity count. Ids start at 1,
// so a counter of 1 (or a zero value from an uninitialised contract) means none.
func CountFromNext(next uint32) uint32 {
	if next <= 1 {
		return 0
	}
	return next - 1
}
