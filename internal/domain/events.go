package domain

import "github.com/ethereum/go-ethereum/common"

type EventKind string

const (
	EventProposalSubmitted     EventKind = "ProposalSubmitted"
	EventReviewerRegistered    EventKind = "ReviewerRegistered"
	EventReviewAssigned        EventKind = "ReviewAssigned"
	EventReviewSubmitted       EventKind = "ReviewSubmitted"
	EventProposalStatusUpdated EventKind = "ProposalStatusUpdated"
	EventEthicsDecisionReached EventKind = "EthicsDecisionReached"
)

// ContractEvent is a decoded log from the review contract. Only the fields
// relevant to Kind are set.
type ContractEvent struct {
	Kind        EventKind
	BlockNumber uint64
	TxHash      common.Hash
	LogIndex    uint

	ProposalID uint32
	ReviewerID uint32
	Submitter  common.Address
	Deadline   uint64
	Role       ReviewerRole
	Status     ProposalStatus
	Decision   ProposalStatus
}
