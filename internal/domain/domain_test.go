package domain

import (
	"errors"
	"fmt"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusAndRoleLookup(t *testing.T) {
	assert.Equal(t, "Under Review", StatusUnderReview.String())
	assert.Equal(t, "status-requires-revision", StatusRequiresRevision.Class())
	assert.Equal(t, Unknown, ProposalStatus(9).String())
	assert.Empty(t, ProposalStatus(9).Class())

	assert.Equal(t, "Expert", RoleExpert.String())
	assert.Equal(t, "role-junior", RoleJunior.Class())
	assert.Equal(t, Unknown, ReviewerRole(3).String())
	assert.Empty(t, ReviewerRole(3).Class())
}

func TestErrorKinds(t *testing.T) {
	err := InvalidInput(FieldRiskLevel, "Risk level must be between %d and %d", 1, 10)
	assert.Equal(t, "Risk level must be between 1 and 10", err.Error())
	assert.True(t, errors.Is(err, ErrInvalidInput))
	assert.False(t, errors.Is(err, ErrCallFailed))
	assert.Equal(t, FieldRiskLevel, FieldOf(err))

	wrapped := fmt.Errorf("submit: %w", Wrap(KindContractReverted, "execution reverted: not admin", errors.New("rpc")))
	assert.Equal(t, KindContractReverted, KindOf(wrapped))
	assert.True(t, errors.Is(wrapped, ErrContractReverted))

	assert.Equal(t, KindCallFailed, KindOf(errors.New("plain")))
	assert.Equal(t, "", FieldOf(errors.New("plain")))
	assert.Equal(t, "not_connected", ErrNotConnected.Error())
}

func TestSessionOnChain(t *testing.T) {
	s := Session{ChainID: big.NewInt(11155111)}
	assert.True(t, s.OnChain(big.NewInt(11155111)))
	assert.False(t, s.OnChain(big.NewInt(1)))
	assert.False(t, Session{}.OnChain(big.NewInt(1)))
}

func TestCountFromNext(t *testing.T) {
	assert.EqualValues(t, 0, CountFromNext(0))
	assert.EqualValues(t, 0, CountFromNext(1))
	assert.EqualValues(t, 2, CountFromNext(3))
}
