package presentation

import (
	"errors"
	"math"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ethicsreview/internal/domain"
	"ethicsreview/internal/services/readmodel"
)

func TestTruncateAddress(t *testing.T) {
	assert.Equal(t, "0x9610...6ef8", TruncateAddress("0x96104da4AEfA1ba63ab994d87143Cf2130E06ef8"))
	assert.Equal(t, "0x12", TruncateAddress("0x12"))
}

func TestFormatDate(t *testing.T) {
	// 2024-03-05T12:00:00Z
	assert.Equal(t, "3/5/2024", FormatDate(1709640000, time.UTC))

	tokyo := time.FixedZone("JST", 9*3600)
	// 2024-03-05T20:00:00Z is already the 6th in Tokyo.
	assert.Equal(t, "3/6/2024", FormatDate(1709668800, tokyo))
}

func TestFormatDate_HugeTimestampsClamp(t *testing.T) {
	assert.Equal(t, "12/31/9999", FormatDate(9_300_000_000_000_000, time.UTC))
	assert.Equal(t, "12/31/9999", FormatDate(math.MaxUint64, time.UTC))
}

func TestReviewerStatus(t *testing.T) {
	assert.Equal(t, "Inactive", ReviewerStatus(false, true))
	assert.Equal(t, "Available", ReviewerStatus(true, true))
	assert.Equal(t, "Busy", ReviewerStatus(true, false))
}

func TestNetworkName(t *testing.T) {
	assert.Equal(t, "Sepolia Testnet", NetworkName(big.NewInt(11155111)))
	assert.Equal(t, "chain 5", NetworkName(big.NewInt(5)))
}

func TestRender_Cards(t *testing.T) {
	submitter := common.HexToAddress("0x96104da4AEfA1ba63ab994d87143Cf2130E06ef8")
	v := readmodel.View{
		Proposals: readmodel.ProposalsResult{Items: []domain.ProposalView{{
			ID:                    2,
			Status:                domain.StatusUnderReview,
			SubmissionTime:        1709640000,
			ReviewDeadline:        1709640000 + 14*86400,
			AssignedReviewerCount: 3,
			CompletedReviewCount:  1,
			Submitter:             submitter,
		}}},
		Reviewers: readmodel.ReviewersResult{Items: []domain.ReviewerView{{
			ID: 1, Role: domain.ReviewerRole(7), IsActive: true, TotalReviews: 4, RegistrationTime: 1709640000,
		}}},
		Stats: readmodel.StatsResult{Stats: domain.StatsView{TotalProposals: 2, TotalReviewers: 1, ActiveReviewCount: 1, CompletedReviewCount: 1}},
	}

	r := Render(v, time.UTC)

	require.Len(t, r.Proposals.Cards, 1)
	p := r.Proposals.Cards[0]
	assert.Equal(t, "Proposal #2", p.Title)
	assert.Equal(t, "Under Review", p.StatusText)
	assert.Equal(t, "status-under-review", p.StatusClass)
	assert.Equal(t, "1/3 reviews completed", p.Progress)
	assert.Equal(t, "3/19/2024", p.Deadline)
	assert.Equal(t, "0x9610...6ef8", p.Submitter)
	assert.Empty(t, r.Proposals.Message)

	require.Len(t, r.Reviewers.Cards, 1)
	rc := r.Reviewers.Cards[0]
	assert.Equal(t, domain.Unknown, rc.RoleText)
	assert.Empty(t, rc.RoleClass)
	assert.Equal(t, "Busy", rc.Status)

	assert.True(t, r.Stats.Available)
	assert.EqualValues(t, 2, r.Stats.TotalProposals)
}

func TestRender_EmptyAndErrors(t *testing.T) {
	r := Render(readmodel.View{
		Proposals: readmodel.ProposalsResult{Empty: true},
		Reviewers: readmodel.ReviewersResult{Err: errors.New("boom")},
		Stats:     readmodel.StatsResult{Err: errors.New("boom")},
	}, time.UTC)

	assert.Equal(t, "No proposals submitted yet.", r.Proposals.Message)
	assert.Equal(t, "Error loading reviewers.", r.Reviewers.Message)
	assert.Empty(t, r.Reviewers.Cards)
	assert.False(t, r.Stats.Available)

	r = Render(readmodel.View{
		Proposals: readmodel.ProposalsResult{Err: errors.New("boom")},
		Reviewers: readmodel.ReviewersResult{Empty: true},
	}, time.UTC)
	assert.Equal(t, "Error loading proposals.", r.Proposals.Message)
	assert.Equal(t, "No reviewers registered yet.", r.Reviewers.Message)
}

func TestNotifications_AutoDismiss(t *testing.T) {
	clock := clockwork.NewFakeClock()
	n := NewNotifications(clock, 5*time.Second)

	n.Success("Wallet connected successfully")
	cur := n.Current()
	require.NotNil(t, cur)
	assert.Equal(t, KindSuccess, cur.Kind)

	clock.Advance(4 * time.Second)
	assert.NotNil(t, n.Current())

	clock.Advance(time.Second)
	assert.Eventually(t, func() bool { return n.Current() == nil }, time.Second, 5*time.Millisecond)
}

func TestNotifications_NewOneHidesOther(t *testing.T) {
	clock := clockwork.NewFakeClock()
	n := NewNotifications(clock, 5*time.Second)

	n.Error("Please connect your wallet first")
	clock.Advance(3 * time.Second)
	n.Success("Transaction submitted. Waiting for confirmation...")

	cur := n.Current()
	require.NotNil(t, cur)
	assert.Equal(t, KindSuccess, cur.Kind)

	// The first message's timer must not dismiss the second.
	clock.Advance(3 * time.Second)
	time.Sleep(20 * time.Millisecond)
	cur = n.Current()
	require.NotNil(t, cur)
	assert.Equal(t, "Transaction submitted. Waiting for confirmation...", cur.Message)

	clock.Advance(2 * time.Second)
	assert.Eventually(t, func() bool { return n.Current() == nil }, time.Second, 5*time.Millisecond)
}

func TestForms_ResetRestoresDefaults(t *testing.T) {
	f := NewForms()
	assert.Equal(t, "0", f.Values(domain.FormReviewer)[domain.FieldReviewerRole])
	assert.Equal(t, "1", f.Values(domain.FormReview)[domain.FieldRecommendation])

	f.Set(domain.FormReview, map[string]string{
		domain.FieldRecommendation: "3",
		domain.FieldEthicsRating:   "8",
		"bogus":                    "x",
	})
	v := f.Values(domain.FormReview)
	assert.Equal(t, "3", v[domain.FieldRecommendation])
	assert.Equal(t, "8", v[domain.FieldEthicsRating])
	assert.NotContains(t, v, "bogus")

	f.Reset(domain.FormReview)
	v = f.Values(domain.FormReview)
	assert.Equal(t, "1", v[domain.FieldRecommendation])
	assert.Equal(t, "", v[domain.FieldEthicsRating])
}

func TestBinder_Page(t *testing.T) {
	clock := clockwork.NewFakeClock()
	b := NewBinder(NewForms(), NewNotifications(clock, 5*time.Second), big.NewInt(11155111), time.UTC)

	p := b.Page(nil)
	assert.False(t, p.Connected)
	assert.Nil(t, p.Network)
	assert.Equal(t, notConnectedMessage, p.Regions.Proposals.Message)
	assert.NotNil(t, p.Pending)

	account := common.HexToAddress("0x96104da4AEfA1ba63ab994d87143Cf2130E06ef8")
	b.SetConnection(&domain.Session{Account: account, ChainID: big.NewInt(1)}, false)
	p = b.Page(nil)
	assert.True(t, p.Connected)
	assert.Equal(t, "0x9610...6ef8", p.Account)
	assert.Equal(t, "⚠ Wrong Network - Please switch to Sepolia Testnet", p.Network.Text)
	assert.False(t, p.Network.OK)

	b.SetConnection(&domain.Session{Account: account, ChainID: big.NewInt(11155111)}, true)
	b.Publish(readmodel.View{
		Proposals: readmodel.ProposalsResult{Empty: true},
		Reviewers: readmodel.ReviewersResult{Empty: true},
		LoadedAt:  clock.Now(),
	})
	p = b.Page([]PendingOperation{{ID: "a", Name: "submit proposal"}})
	assert.Equal(t, "✓ Sepolia Testnet", p.Network.Text)
	assert.Equal(t, "No proposals submitted yet.", p.Regions.Proposals.Message)
	require.NotNil(t, p.LoadedAt)
	assert.Len(t, p.Pending, 1)

	b.SetConnection(nil, false)
	p = b.Page(nil)
	assert.False(t, p.Connected)
	assert.Nil(t, p.LoadedAt)
}

func TestBinder_PublishAfterDisconnectIsDropped(t *testing.T) {
	b := NewBinder(NewForms(), NewNotifications(clockwork.NewFakeClock(), 5*time.Second), big.NewInt(11155111), time.UTC)
	b.SetConnection(&domain.Session{Account: common.HexToAddress("0xa11ce"), ChainID: big.NewInt(11155111)}, true)
	b.SetConnection(nil, false)

	// A reload that started before the disconnect finishes afterwards.
	b.Publish(readmodel.View{
		Proposals: readmodel.ProposalsResult{Items: []domain.ProposalView{{ID: 1}}},
	})

	p := b.Page(nil)
	assert.False(t, p.Connected)
	assert.Empty(t, p.Regions.Proposals.Cards)
	assert.Equal(t, notConnectedMessage, p.Regions.Proposals.Message)
}
