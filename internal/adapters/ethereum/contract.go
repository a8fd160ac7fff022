package ethereum

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"ethicsreview/internal/domain"
	"ethicsreview/internal/ports"
)

// Backend is what the adapter needs from a node connection. *ethclient.Client
// satisfies it.
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
	ChainID(ctx context.Context) (*big.Int, error)
	BlockNumber(ctx context.Context) (uint64, error)
}

// SignRequest describes a transaction awaiting approval.
type SignRequest struct {
	Method string
	From   common.Address
	To     common.Address
	Nonce  uint64
	Gas    uint64
	Hash   common.Hash
}

// Approver stands in for the wallet's signing prompt. Returning false rejects
// the transaction.
type Approver func(ctx context.Context, req SignRequest) (bool, error)

// AutoApprove signs everything.
func AutoApprove(context.Context, SignRequest) (bool, error) { return true, nil }

// Contract binds the review contract to a backend and, for writes, a signer.
type Contract struct {
	address common.Address
	backend Backend
	bound   *bind.BoundContract
	from    common.Address
	signer  *bind.TransactOpts
	approve Approver
}

var _ ports.Contract = (*Contract)(nil)

// NewReader binds the contract for calls only; writes fail with NotConnected.
func NewReader(backend Backend, address common.Address) *Contract {
	return &Contract{
		address: address,
		backend: backend,
		bound:   bind.NewBoundContract(address, parsedABI, backend, backend, backend),
	}
}

// NewContract binds the contract with a signer. approve may be nil.
func NewContract(backend Backend, address common.Address, signer *bind.TransactOpts, approve Approver) *Contract {
	c := NewReader(backend, address)
	c.from = signer.From
	c.signer = signer
	c.approve = approve
	if c.approve == nil {
		c.approve = AutoApprove
	}
	return c
}

func (c *Contract) Address() common.Address { return c.address }

func (c *Contract) call(ctx context.Context, method string, args ...interface{}) ([]interface{}, error) {
	var out []interface{}
	err := c.bound.Call(&bind.CallOpts{Context: ctx, From: c.from}, &out, method, args...)
	if err != nil {
		return nil, classify(fmt.Errorf("%s: %w", method, err))
	}
	return out, nil
}

func (c *Contract) NextProposalID(ctx context.Context) (uint32, error) {
	out, err := c.call(ctx, "nextProposalId")
	if err != nil {
		return 0, err
	}
	return *abi.ConvertType(out[0], new(uint32)).(*uint32), nil
}

func (c *Contract) NextReviewerID(ctx context.Context) (uint32, error) {
	out, err := c.call(ctx, "nextReviewerId")
	if err != nil {
		return 0, err
	}
	return *abi.ConvertType(out[0], new(uint32)).(*uint32), nil
}

func (c *Contract) ProposalInfo(ctx context.Context, id uint32) (domain.ProposalView, error) {
	out, err := c.call(ctx, "getProposalInfo", id)
	if err != nil {
		return domain.ProposalView{}, err
	}
	return domain.ProposalView{
		ID:                    id,
		Status:                domain.ProposalStatus(*abi.ConvertType(out[0], new(uint8)).(*uint8)),
		SubmissionTime:        toUint64(out[1]),
		ReviewDeadline:        toUint64(out[2]),
		AssignedReviewerCount: *abi.ConvertType(out[3], new(uint32)).(*uint32),
		CompletedReviewCount:  *abi.ConvertType(out[4], new(uint32)).(*uint32),
		Submitter:             *abi.ConvertType(out[5], new(common.Address)).(*common.Address),
	}, nil
}

func (c *Contract) ReviewerInfo(ctx context.Context, id uint32) (domain.ReviewerView, error) {
	out, err := c.call(ctx, "getReviewerInfo", id)
	if err != nil {
		return domain.ReviewerView{}, err
	}
	return domain.ReviewerView{
		ID:               id,
		Role:             domain.ReviewerRole(*abi.ConvertType(out[0], new(uint8)).(*uint8)),
		IsActive:         *abi.ConvertType(out[1], new(bool)).(*bool),
		IsAvailable:      *abi.ConvertType(out[2], new(bool)).(*bool),
		TotalReviews:     toUint64(out[3]),
		RegistrationTime: toUint64(out[4]),
	}, nil
}

func (c *Contract) ReviewProgress(ctx context.Context, proposalID uint32) (domain.ReviewProgress, error) {
	out, err := c.call(ctx, "getReviewProgress", proposalID)
	if err != nil {
		return domain.ReviewProgress{}, err
	}
	return domain.ReviewProgress{
		ProposalID:  proposalID,
		ReviewerIDs: *abi.ConvertType(out[0], new([]uint32)).(*[]uint32),
		Completed:   *abi.ConvertType(out[1], new([]bool)).(*[]bool),
	}, nil
}

func (c *Contract) Admin(ctx context.Context) (common.Address, error) {
	out, err := c.call(ctx, "admin")
	if err != nil {
		return common.Address{}, err
	}
	return *abi.ConvertType(out[0], new(common.Address)).(*common.Address), nil
}

func (c *Contract) SubmitResearchProposal(ctx context.Context, riskLevel, ethicsScore uint8, reviewPeriodDays *big.Int) (ports.Tx, error) {
	return c.transact(ctx, "submitResearchProposal", riskLevel, ethicsScore, reviewPeriodDays)
}

func (c *Contract) RegisterAsReviewer(ctx context.Context, experienceYears, role uint8, qualificationScore uint32) (ports.Tx, error) {
	return c.transact(ctx, "registerAsReviewer", experienceYears, role, qualificationScore)
}

func (c *Contract) SubmitAnonymousReview(ctx context.Context, proposalID, reviewerID uint32, ethicsRating, riskAssessment, recommendation uint8) (ports.Tx, error) {
	return c.transact(ctx, "submitAnonymousReview", proposalID, reviewerID, ethicsRating, riskAssessment, recommendation)
}

func (c *Contract) AssignReviewersToProposal(ctx context.Context, proposalID uint32, reviewerIDs []uint32) (ports.Tx, error) {
	return c.transact(ctx, "assignReviewersToProposal", proposalID, reviewerIDs)
}

func (c *Contract) transact(ctx context.Context, method string, args ...interface{}) (ports.Tx, error) {
	if c.signer == nil {
		return nil, domain.ErrNotConnected
	}
	opts := *c.signer
	opts.Context = ctx
	sign := c.signer.Signer
	opts.Signer = func(from common.Address, tx *types.Transaction) (*types.Transaction, error) {
		ok, err := c.approve(ctx, SignRequest{
			Method: method,
			From:   from,
			To:     c.address,
			Nonce:  tx.Nonce(),
			Gas:    tx.Gas(),
			Hash:   tx.Hash(),
		})
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, errRejected
		}
		return sign(from, tx)
	}
	tx, err := c.bound.Transact(&opts, method, args...)
	if err != nil {
		return nil, classify(fmt.Errorf("%s: %w", method, err))
	}
	return &pendingTx{tx: tx, backend: c.backend}, nil
}

type pendingTx struct {
	tx      *types.Transaction
	backend bind.DeployBackend
}

func (p *pendingTx) Hash() common.Hash { return p.tx.Hash() }

func (p *pendingTx) Wait(ctx context.Context) error {
	receipt, err := bind.WaitMined(ctx, p.backend, p.tx)
	if err != nil {
		return classify(fmt.Errorf("wait %s: %w", p.tx.Hash().Hex(), err))
	}
	if receipt.Status == types.ReceiptStatusFailed {
		return domain.Wrap(domain.KindContractReverted, "transaction reverted", nil)
	}
	return nil
}

func toUint64(v interface{}) uint64 {
	b := *abi.ConvertType(v, new(*big.Int)).(**big.Int)
	if b == nil || !b.IsUint64() {
		return 0
	}
	return b.Uint64()
}
