package httpadapter_test

import (
	"context"
	"encoding/json"
	"io"
	"math/big"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	testifymock "github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	httpadapter "ethicsreview/internal/adapters/http"
	"ethicsreview/internal/adapters/memory"
	"ethicsreview/internal/domain"
	"ethicsreview/internal/metrics"
	"ethicsreview/internal/ports"
	"ethicsreview/internal/ports/mock"
	"ethicsreview/internal/services/commands"
	"ethicsreview/internal/services/presentation"
)

var anything = testifymock.Anything

type fakeSessions struct {
	mu        sync.Mutex
	conn      *ports.Connection
	connectTo *ports.Connection
	changed   bool
}

func (f *fakeSessions) Current() *ports.Connection {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.conn
}

func (f *fakeSessions) Connect(context.Context) (*ports.Connection, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.connectTo == nil {
		return nil, domain.Wrap(domain.KindProviderUnavailable, "Please install a wallet provider to use this application", nil)
	}
	f.conn = f.connectTo
	return f.conn, nil
}

func (f *fakeSessions) Disconnect() {
	f.mu.Lock()
	f.conn = nil
	f.mu.Unlock()
}

func (f *fakeSessions) Refresh(context.Context) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	c := f.changed
	f.changed = false
	return c
}

type harness struct {
	srv      *httptest.Server
	sessions *fakeSessions
	contract *mock.Contract
	reload   *mock.Reloader
	binder   *presentation.Binder
	tracker  *commands.Tracker
}

func newHarness(t *testing.T, projection ports.ProjectionStore) *harness {
	t.Helper()
	h := &harness{sessions: &fakeSessions{}, contract: &mock.Contract{}, reload: &mock.Reloader{}}
	notes := presentation.NewNotifications(clockwork.NewFakeClock(), 5*time.Second)
	h.binder = presentation.NewBinder(presentation.NewForms(), notes, big.NewInt(11155111), time.UTC)
	h.tracker = commands.NewTracker(context.Background(), time.Minute, zerolog.Nop())
	m := metrics.New()

	s := httpadapter.New(httpadapter.Deps{
		Sessions:   h.sessions,
		Commands:   commands.New(h.binder.Forms, h.reload, notes, m, zerolog.Nop()),
		Tracker:    h.tracker,
		Binder:     h.binder,
		Reloader:   h.reload,
		Projection: projection,
		Metrics:    m,
		Log:        zerolog.Nop(),
	})
	h.srv = httptest.NewServer(s.Routes())
	t.Cleanup(h.srv.Close)
	return h
}

func (h *harness) connect() *ports.Connection {
	conn := &ports.Connection{
		Session:  domain.Session{Account: common.HexToAddress("0xa11ce"), ChainID: big.NewInt(11155111)},
		Contract: h.contract,
	}
	h.sessions.conn = conn
	h.binder.SetConnection(&conn.Session, true)
	return conn
}

func noRedirect() *http.Client {
	return &http.Client{CheckRedirect: func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse }}
}

func postJSON(t *testing.T, h *harness, path string, form url.Values) (*http.Response, map[string]interface{}) {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, h.srv.URL+path, strings.NewReader(form.Encode()))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp, body
}

func TestIndex_NotConnected(t *testing.T) {
	h := newHarness(t, nil)
	resp, err := http.Get(h.srv.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var sb strings.Builder
	_, _ = io.Copy(&sb, resp.Body)
	assert.Contains(t, sb.String(), "Connect Wallet")
	assert.Contains(t, sb.String(), "Connect your wallet to load data.")
}

func TestIndex_AdvertisedRangesMatchValidation(t *testing.T) {
	h := newHarness(t, nil)
	resp, err := http.Get(h.srv.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	var sb strings.Builder
	_, _ = io.Copy(&sb, resp.Body)
	page := sb.String()

	assert.Contains(t, page, "Experience (years, 1-20)")
	assert.Contains(t, page, "Qualification score (1-1000)")

	_, err = commands.ParseReviewer(commands.ReviewerInput{ExperienceYears: "20", Role: "0", QualificationScore: "1000"})
	require.NoError(t, err)
	_, err = commands.ParseReviewer(commands.ReviewerInput{ExperienceYears: "21", Role: "0", QualificationScore: "1000"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = commands.ParseReviewer(commands.ReviewerInput{ExperienceYears: "20", Role: "0", QualificationScore: "1001"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSubmitProposal_NotConnected(t *testing.T) {
	h := newHarness(t, nil)
	resp, body := postJSON(t, h, "/proposals", url.Values{"riskLevel": {"3"}, "ethicsScore": {"80"}, "reviewPeriod": {"14"}})

	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "not_connected", body["kind"])
	n := h.binder.Notifications.Current()
	require.NotNil(t, n)
	assert.Equal(t, "Please connect your wallet first", n.Message)
}

func TestSubmitProposal_InvalidKeepsValues(t *testing.T) {
	h := newHarness(t, nil)
	h.connect()

	resp, body := postJSON(t, h, "/proposals", url.Values{"riskLevel": {"12"}, "ethicsScore": {"80"}, "reviewPeriod": {"14"}})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, domain.FieldRiskLevel, body["field"])
	assert.Equal(t, "12", h.binder.Forms.Values(domain.FormProposal)[domain.FieldRiskLevel])
	h.contract.AssertNotCalled(t, "SubmitResearchProposal", anything, anything, anything, anything)
	assert.Empty(t, h.tracker.Pending())
}

func TestSubmitProposal_RunsInBackground(t *testing.T) {
	h := newHarness(t, nil)
	h.connect()

	tx := &mock.Tx{}
	tx.On("Hash").Return(common.HexToHash("0xbeef"))
	tx.On("Wait", anything).Return(nil)
	h.contract.On("SubmitResearchProposal", anything, uint8(3), uint8(80), big.NewInt(14)).Return(tx, nil).Once()
	h.reload.On("Reload", anything).Once()

	resp, body := postJSON(t, h, "/proposals", url.Values{"riskLevel": {"3"}, "ethicsScore": {"80"}, "reviewPeriod": {"14"}})
	assert.Equal(t, http.StatusAccepted, resp.StatusCode)
	assert.NotEmpty(t, body["operation"])

	h.tracker.Wait()
	h.contract.AssertExpectations(t)
	h.reload.AssertNumberOfCalls(t, "Reload", 1)
	assert.Equal(t, "", h.binder.Forms.Values(domain.FormProposal)[domain.FieldRiskLevel])
	n := h.binder.Notifications.Current()
	require.NotNil(t, n)
	assert.Equal(t, "Research proposal submitted successfully!", n.Message)
}

func TestFormPost_RedirectsBrowser(t *testing.T) {
	h := newHarness(t, nil)
	resp, err := noRedirect().PostForm(h.srv.URL+"/assignments", url.Values{"assignProposalId": {"1"}, "reviewerIds": {"1"}})
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))
}

func TestConnect_StartsReload(t *testing.T) {
	h := newHarness(t, nil)
	h.sessions.connectTo = &ports.Connection{
		Session:  domain.Session{Account: common.HexToAddress("0xa11ce"), ChainID: big.NewInt(11155111)},
		Contract: h.contract,
	}
	h.reload.On("Reload", anything).Once()

	resp, body := postJSON(t, h, "/connect", nil)
	assert.Equal(t, http.StatusAccepted, resp.StatusCode)
	assert.Equal(t, "11155111", body["chainId"])

	h.tracker.Wait()
	h.reload.AssertNumberOfCalls(t, "Reload", 1)
}

func TestConnect_NoProvider(t *testing.T) {
	h := newHarness(t, nil)
	resp, body := postJSON(t, h, "/connect", nil)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, "provider_unavailable", body["kind"])
}

func TestView_RefreshTriggersReload(t *testing.T) {
	h := newHarness(t, nil)
	h.connect()
	h.sessions.changed = true
	h.reload.On("Reload", anything).Once()

	resp, err := http.Get(h.srv.URL + "/api/view")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var page map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&page))
	assert.Equal(t, true, page["connected"])

	h.tracker.Wait()
	h.reload.AssertNumberOfCalls(t, "Reload", 1)
}

func TestLiveStats(t *testing.T) {
	h := newHarness(t, nil)
	resp, err := http.Get(h.srv.URL + "/api/stats/live")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	store := memory.NewProjection()
	require.NoError(t, store.Apply(context.Background(), []domain.ContractEvent{
		{Kind: domain.EventProposalSubmitted, ProposalID: 1},
		{Kind: domain.EventProposalStatusUpdated, ProposalID: 1, Status: domain.StatusUnderReview},
	}, 42))
	h = newHarness(t, store)

	resp, err = http.Get(h.srv.URL + "/api/stats/live")
	require.NoError(t, err)
	defer resp.Body.Close()
	var stats domain.LiveStats
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&stats))
	assert.EqualValues(t, 1, stats.TotalProposals)
	assert.EqualValues(t, 1, stats.ActiveReviews)
	assert.EqualValues(t, 42, stats.LastBlock)
}

func TestProgressAndAdmin(t *testing.T) {
	h := newHarness(t, nil)
	conn := h.connect()
	h.contract.On("ReviewProgress", anything, uint32(2)).Return(domain.ReviewProgress{
		ProposalID: 2, ReviewerIDs: []uint32{1, 3}, Completed: []bool{true, false},
	}, nil)
	h.contract.On("Admin", anything).Return(conn.Session.Account, nil)

	resp, err := http.Get(h.srv.URL + "/api/proposals/2/progress")
	require.NoError(t, err)
	defer resp.Body.Close()
	var progress struct {
		ReviewerIDs []uint32 `json:"reviewerIds"`
		Completed   []bool   `json:"completed"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&progress))
	assert.Equal(t, []uint32{1, 3}, progress.ReviewerIDs)
	assert.Equal(t, []bool{true, false}, progress.Completed)

	resp2, err := http.Get(h.srv.URL + "/api/admin")
	require.NoError(t, err)
	defer resp2.Body.Close()
	var admin map[string]interface{}
	require.NoError(t, json.NewDecoder(resp2.Body).Decode(&admin))
	assert.Equal(t, true, admin["isAdmin"])

	resp3, err := http.Get(h.srv.URL + "/api/proposals/zero/progress")
	require.NoError(t, err)
	resp3.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp3.StatusCode)
}

func TestHealthzAndMetrics(t *testing.T) {
	h := newHarness(t, nil)
	for _, path := range []string{"/healthz", "/metrics"} {
		resp, err := http.Get(h.srv.URL + path)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
	}
}

func TestProgress_BadIDIsJSONError(t *testing.T) {
	h := newHarness(t, nil)
	h.connect()

	for _, path := range []string{"/api/proposals/zero/progress", "/api/proposals/0/progress", "/api/proposals/4294967296/progress"} {
		resp, err := http.Get(h.srv.URL + path)
		require.NoError(t, err)
		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, path)
		assert.Equal(t, "application/json", resp.Header.Get("Content-Type"), path)
		assert.Equal(t, "invalid_input", body["kind"], path)
		assert.Equal(t, "id", body["field"], path)
	}
	h.contract.AssertNotCalled(t, "ReviewProgress", anything, anything)
}

func TestAPI_CORSPreflight(t *testing.T) {
	h := newHarness(t, nil)
	req, err := http.NewRequest(http.MethodOptions, h.srv.URL+"/api/view", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Less(t, resp.StatusCode, 300)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestAdmin_NotConnected(t *testing.T) {
	h := newHarness(t, nil)
	resp, err := http.Get(h.srv.URL + "/api/admin")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "not_connected", body["kind"])
}
