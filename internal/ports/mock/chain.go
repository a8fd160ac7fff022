// Package mock holds testify mocks for the ports interfaces.
package mock

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	testifymock "github.com/stretchr/testify/mock"

	"ethicsreview/internal/domain"
	"ethicsreview/internal/ports"
)

type Provider struct {
	testifymock.Mock
}

var _ ports.Provider = (*Provider)(nil)

func (_m *Provider) Accounts(ctx context.Context) ([]common.Address, error) {
	ret := _m.Called(ctx)
	accounts, _ := ret.Get(0).([]common.Address)
	return accounts, ret.Error(1)
}

func (_m *Provider) RequestAccounts(ctx context.Context) ([]common.Address, error) {
	ret := _m.Called(ctx)
	accounts, _ := ret.Get(0).([]common.Address)
	return accounts, ret.Error(1)
}

func (_m *Provider) ChainID(ctx context.Context) (*big.Int, error) {
	ret := _m.Called(ctx)
	id, _ := ret.Get(0).(*big.Int)
	return id, ret.Error(1)
}

func (_m *Provider) Bind(ctx context.Context, account common.Address, chainID *big.Int) (ports.Contract, error) {
	ret := _m.Called(ctx, account, chainID)
	c, _ := ret.Get(0).(ports.Contract)
	return c, ret.Error(1)
}

type Contract struct {
	testifymock.Mock
}

var _ ports.Contract = (*Contract)(nil)

func (_m *Contract) NextProposalID(ctx context.Context) (uint32, error) {
	ret := _m.Called(ctx)
	return ret.Get(0).(uint32), ret.Error(1)
}

func (_m *Contract) NextReviewerID(ctx context.Context) (uint32, error) {
	ret := _m.Called(ctx)
	return ret.Get(0).(uint32), ret.Error(1)
}

func (_m *Contract) ProposalInfo(ctx context.Context, id uint32) (domain.ProposalView, error) {
	ret := _m.Called(ctx, id)
	p, _ := ret.Get(0).(domain.ProposalView)
	return p, ret.Error(1)
}

func (_m *Contract) ReviewerInfo(ctx context.Context, id uint32) (domain.ReviewerView, error) {
	ret := _m.Called(ctx, id)
	r, _ := ret.Get(0).(domain.ReviewerView)
	return r, ret.Error(1)
}

func (_m *Contract) ReviewProgress(ctx context.Context, proposalID uint32) (domain.ReviewProgress, error) {
	ret := _m.Called(ctx, proposalID)
	p, _ := ret.Get(0).(domain.ReviewProgress)
	return p, ret.Error(1)
}

func (_m *Contract) Admin(ctx context.Context) (common.Address, error) {
	ret := _m.Called(ctx)
	a, _ := ret.Get(0).(common.Address)
	return a, ret.Error(1)
}

func (_m *Contract) SubmitResearchProposal(ctx context.Context, riskLevel, ethicsScore uint8, reviewPeriodDays *big.Int) (ports.Tx, error) {
	ret := _m.Called(ctx, riskLevel, ethicsScore, reviewPeriodDays)
	tx, _ := ret.Get(0).(ports.Tx)
	return tx, ret.Error(1)
}

func (_m *Contract) RegisterAsReviewer(ctx context.Context, experienceYears, role uint8, qualificationScore uint32) (ports.Tx, error) {
	ret := _m.Called(ctx, experienceYears, role, qualificationScore)
	tx, _ := ret.Get(0).(ports.Tx)
	return tx, ret.Error(1)
}

func (_m *Contract) SubmitAnonymousReview(ctx context.Context, proposalID, reviewerID uint32, ethicsRating, riskAssessment, recommendation uint8) (ports.Tx, error) {
	ret := _m.Called(ctx, proposalID, reviewerID, ethicsRating, riskAssessment, recommendation)
	tx, _ := ret.Get(0).(ports.Tx)
	return tx, ret.Error(1)
}

func (_m *Contract) AssignReviewersToProposal(ctx context.Context, proposalID uint32, reviewerIDs []uint32) (ports.Tx, error) {
	ret := _m.Called(ctx, proposalID, reviewerIDs)
	tx, _ := ret.Get(0).(ports.Tx)
	return tx, ret.Error(1)
}

type Tx struct {
	testifymock.Mock
}

var _ ports.Tx = (*Tx)(nil)

func (_m *Tx) Hash() common.Hash {
	ret := _m.Called()
	h, _ := ret.Get(0).(common.Hash)
	return h
}

func (_m *Tx) Wait(ctx context.Context) error {
	return _m.Called(ctx).Error(0)
}

type EventSource struct {
	testifymock.Mock
}

var _ ports.EventSource = (*EventSource)(nil)

func (_m *EventSource) LatestBlock(ctx context.Context) (uint64, error) {
	ret := _m.Called(ctx)
	return ret.Get(0).(uint64), ret.Error(1)
}

func (_m *EventSource) Events(ctx context.Context, from, to uint64) ([]domain.ContractEvent, error) {
	ret := _m.Called(ctx, from, to)
	events, _ := ret.Get(0).([]domain.ContractEvent)
	return events, ret.Error(1)
}
