package session

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/rs/zerolog"
	"go.uber.org/atomic"

	"ethicsreview/internal/domain"
	"ethicsreview/internal/ports"
)

// Manager owns the single live connection. Dependents read it through Current
// and receive it explicitly; reconnecting swaps the whole value at once.
type Manager struct {
	provider ports.Provider
	expected *big.Int
	notify   ports.Notifier
	status   ports.NetworkStatus
	log      zerolog.Logger
	current  *atomic.Pointer[ports.Connection]
	now      func() time.Time
}

// New returns a manager. provider may be nil when no wallet is configured;
// status may be nil when nothing displays the connection.
func New(provider ports.Provider, expectedChain *big.Int, notify ports.Notifier, status ports.NetworkStatus, log zerolog.Logger) *Manager {
	return &Manager{
		provider: provider,
		expected: expectedChain,
		notify:   notify,
		status:   status,
		log:      log,
		current:  atomic.NewPointer[ports.Connection](nil),
		now:      time.Now,
	}
}

// Current returns the live connection or nil.
func (m *Manager) Current() *ports.Connection { return m.current.Load() }

// Connect requests account access and binds the contract to the first account.
func (m *Manager) Connect(ctx context.Context) (*ports.Connection, error) {
	if m.provider == nil {
		err := domain.Wrap(domain.KindProviderUnavailable, "Please install a wallet provider to use this application", nil)
		m.notify.Error(err.Error())
		return nil, err
	}
	accounts, err := m.provider.RequestAccounts(ctx)
	if err == nil && len(accounts) == 0 {
		err = domain.Wrap(domain.KindProviderUnavailable, "wallet returned no accounts", nil)
	}
	if err != nil {
		return nil, m.fail(err)
	}
	conn, err := m.establish(ctx, accounts[0])
	if err != nil {
		return nil, m.fail(err)
	}
	m.notify.Success("Wallet connected successfully")
	_ = m.VerifyNetwork(conn.Session)
	return conn, nil
}

func (m *Manager) fail(err error) error {
	m.log.Error().Err(err).Msg("connect wallet")
	if domain.KindOf(err) == domain.KindProviderUnavailable {
		m.notify.Error(err.Error())
	} else {
		m.notify.Error("Failed to connect wallet: " + err.Error())
	}
	return err
}

func (m *Manager) establish(ctx context.Context, account common.Address) (*ports.Connection, error) {
	chainID, err := m.provider.ChainID(ctx)
	if err != nil {
		return nil, err
	}
	contract, err := m.provider.Bind(ctx, account, chainID)
	if err != nil {
		return nil, err
	}
	conn := &ports.Connection{
		Session: domain.Session{
			Account:     account,
			ChainID:     chainID,
			ConnectedAt: m.now(),
		},
		Contract: contract,
	}
	m.current.Store(conn)
	m.log.Info().Str("account", account.Hex()).Str("chain_id", chainID.String()).Msg("wallet connected")
	return conn, nil
}

// VerifyNetwork updates the connection display and returns WrongNetwork when the
// session is on another chain. The error is advisory; callers carry on.
func (m *Manager) VerifyNetwork(s domain.Session) error {
	ok := s.OnChain(m.expected)
	if m.status != nil {
		m.status.SetConnection(&s, ok)
	}
	if ok {
		return nil
	}
	err := domain.Wrap(domain.KindWrongNetwork,
		fmt.Sprintf("Wrong network: please switch to chain %s", m.expected), nil)
	m.log.Warn().Str("chain_id", fmt.Sprint(s.ChainID)).Str("expected", m.expected.String()).Msg("wrong network")
	m.notify.Error(err.Error())
	return err
}

// CheckConnection reconnects without prompting when the provider already has an
// authorized account. Failures are logged only.
func (m *Manager) CheckConnection(ctx context.Context) {
	if m.provider == nil {
		return
	}
	accounts, err := m.provider.Accounts(ctx)
	if err != nil {
		m.log.Debug().Err(err).Msg("check connection")
		return
	}
	if len(accounts) == 0 {
		return
	}
	conn, err := m.establish(ctx, accounts[0])
	if err != nil {
		m.log.Error().Err(err).Msg("check connection")
		return
	}
	_ = m.VerifyNetwork(conn.Session)
}

// Refresh reconciles the connection with the provider: a changed account or chain
// rebuilds it, a revoked authorization drops it. It reports whether anything changed.
func (m *Manager) Refresh(ctx context.Context) bool {
	cur := m.Current()
	if cur == nil || m.provider == nil {
		return false
	}
	accounts, err := m.provider.Accounts(ctx)
	if err != nil {
		m.log.Debug().Err(err).Msg("refresh session")
		return false
	}
	if len(accounts) == 0 {
		m.Disconnect()
		return true
	}
	chainID, err := m.provider.ChainID(ctx)
	if err != nil {
		m.log.Debug().Err(err).Msg("refresh session")
		return false
	}
	if accounts[0] == cur.Session.Account && chainID.Cmp(cur.Session.ChainID) == 0 {
		return false
	}
	conn, err := m.establish(ctx, accounts[0])
	if err != nil {
		m.log.Error().Err(err).Msg("refresh session")
		m.Disconnect()
		return true
	}
	_ = m.VerifyNetwork(conn.Session)
	return true
}

func (m *Manager) Disconnect() {
	if m.current.Swap(nil) == nil {
		return
	}
	if m.status != nil {
		m.status.SetConnection(nil, false)
	}
	m.log.Info().Msg("wallet disconnected")
}
