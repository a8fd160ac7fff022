package session_test

import (
	"context"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	testifymock "github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"ethicsreview/internal/domain"
	"ethicsreview/internal/ports/mock"
	"ethicsreview/internal/services/session"
)

var (
	sepolia  = big.NewInt(11155111)
	alice    = common.HexToAddress("0x00000000000000000000000000000000000a11ce")
	bob      = common.HexToAddress("0x0000000000000000000000000000000000000b0b")
	anything = testifymock.Anything
)

type fixture struct {
	provider *mock.Provider
	notify   *mock.Notifier
	status   *mock.NetworkStatus
	contract *mock.Contract
	manager  *session.Manager
}

func newFixture() *fixture {
	f := &fixture{
		provider: &mock.Provider{},
		notify:   &mock.Notifier{},
		status:   &mock.NetworkStatus{},
		contract: &mock.Contract{},
	}
	f.manager = session.New(f.provider, sepolia, f.notify, f.status, zerolog.Nop())
	return f
}

func TestConnect_Success(t *testing.T) {
	f := newFixture()
	f.provider.On("RequestAccounts", anything).Return([]common.Address{alice, bob}, nil)
	f.provider.On("ChainID", anything).Return(sepolia, nil)
	f.provider.On("Bind", anything, alice, sepolia).Return(f.contract, nil)
	f.status.On("SetConnection", testifymock.AnythingOfType("*domain.Session"), true).Once()
	f.notify.On("Success", "Wallet connected successfully").Once()

	conn, err := f.manager.Connect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, alice, conn.Session.Account, "session binds the first account")
	assert.Same(t, conn, f.manager.Current())
	assert.Same(t, f.contract, conn.Contract)
	f.notify.AssertExpectations(t)
	f.status.AssertExpectations(t)
}

func TestConnect_NoProvider(t *testing.T) {
	notify := &mock.Notifier{}
	notify.On("Error", anything).Once()
	m := session.New(nil, sepolia, notify, nil, zerolog.Nop())

	_, err := m.Connect(context.Background())
	assert.ErrorIs(t, err, domain.ErrProviderUnavailable)
	assert.Nil(t, m.Current())
	notify.AssertExpectations(t)
}

func TestConnect_UserRejected(t *testing.T) {
	f := newFixture()
	rejected := domain.Wrap(domain.KindUserRejected, "user rejected the request", nil)
	f.provider.On("RequestAccounts", anything).Return(nil, rejected)
	f.notify.On("Error", "Failed to connect wallet: user rejected the request").Once()

	_, err := f.manager.Connect(context.Background())
	assert.ErrorIs(t, err, domain.ErrUserRejected)
	assert.Nil(t, f.manager.Current())
	f.provider.AssertNotCalled(t, "Bind", anything, anything, anything)
	f.notify.AssertExpectations(t)
}

func TestConnect_WrongNetworkIsAdvisory(t *testing.T) {
	f := newFixture()
	mainnet := big.NewInt(1)
	f.provider.On("RequestAccounts", anything).Return([]common.Address{alice}, nil)
	f.provider.On("ChainID", anything).Return(mainnet, nil)
	f.provider.On("Bind", anything, alice, mainnet).Return(f.contract, nil)
	f.status.On("SetConnection", anything, false)
	f.notify.On("Success", anything).Once()
	f.notify.On("Error", "Wrong network: please switch to chain 11155111")

	conn, err := f.manager.Connect(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, conn)
	assert.ErrorIs(t, f.manager.VerifyNetwork(conn.Session), domain.ErrWrongNetwork)
}

func TestCheckConnection_SilentReconnect(t *testing.T) {
	f := newFixture()
	f.provider.On("Accounts", anything).Return([]common.Address{alice}, nil)
	f.provider.On("ChainID", anything).Return(sepolia, nil)
	f.provider.On("Bind", anything, alice, sepolia).Return(f.contract, nil)
	f.status.On("SetConnection", anything, true).Once()

	f.manager.CheckConnection(context.Background())
	require.NotNil(t, f.manager.Current())
	f.provider.AssertNotCalled(t, "RequestAccounts", anything)
	f.notify.AssertNotCalled(t, "Success", anything)
}

func TestCheckConnection_NothingAuthorized(t *testing.T) {
	f := newFixture()
	f.provider.On("Accounts", anything).Return([]common.Address{}, nil)

	f.manager.CheckConnection(context.Background())
	assert.Nil(t, f.manager.Current())
}

func TestRefresh_AccountSwitchRebuildsConnection(t *testing.T) {
	f := newFixture()
	f.provider.On("Accounts", anything).Return([]common.Address{alice}, nil).Once()
	f.provider.On("ChainID", anything).Return(sepolia, nil)
	f.provider.On("Bind", anything, alice, sepolia).Return(f.contract, nil)
	f.status.On("SetConnection", anything, true)
	f.manager.CheckConnection(context.Background())
	first := f.manager.Current()

	other := &mock.Contract{}
	f.provider.On("Accounts", anything).Return([]common.Address{bob}, nil).Once()
	f.provider.On("Bind", anything, bob, sepolia).Return(other, nil)

	assert.True(t, f.manager.Refresh(context.Background()))
	second := f.manager.Current()
	assert.NotSame(t, first, second)
	assert.Equal(t, bob, second.Session.Account)
	assert.Equal(t, alice, first.Session.Account, "old connection is never mutated")
}

func TestRefresh_RevokedDisconnects(t *testing.T) {
	f := newFixture()
	f.provider.On("Accounts", anything).Return([]common.Address{alice}, nil).Once()
	f.provider.On("ChainID", anything).Return(sepolia, nil)
	f.provider.On("Bind", anything, alice, sepolia).Return(f.contract, nil)
	f.status.On("SetConnection", anything, true).Once()
	f.manager.CheckConnection(context.Background())

	f.provider.On("Accounts", anything).Return([]common.Address{}, nil).Once()
	f.status.On("SetConnection", (*domain.Session)(nil), false).Once()

	assert.True(t, f.manager.Refresh(context.Background()))
	assert.Nil(t, f.manager.Current())
	f.status.AssertExpectations(t)
}

func TestRefresh_UnchangedIsNoop(t *testing.T) {
	f := newFixture()
	f.provider.On("Accounts", anything).Return([]common.Address{alice}, nil)
	f.provider.On("ChainID", anything).Return(sepolia, nil)
	f.provider.On("Bind", anything, alice, sepolia).Return(f.contract, nil).Once()
	f.status.On("SetConnection", anything, true).Once()
	f.manager.CheckConnection(context.Background())

	assert.False(t, f.manager.Refresh(context.Background()))
	f.provider.AssertNumberOfCalls(t, "Bind", 1)
}
