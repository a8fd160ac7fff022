package ethereum

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ethicsreview/internal/domain"
)

type chainBackend struct {
	fakeBackend
	chainID *big.Int
}

func (c *chainBackend) ChainID(context.Context) (*big.Int, error) { return c.chainID, nil }

func TestWallet_NoKeySource(t *testing.T) {
	w, err := NewWallet(&chainBackend{}, WalletConfig{Contract: contractAddr})
	require.NoError(t, err)

	_, err = w.RequestAccounts(context.Background())
	assert.ErrorIs(t, err, domain.ErrProviderUnavailable)
	_, err = w.Accounts(context.Background())
	assert.ErrorIs(t, err, domain.ErrProviderUnavailable)
}

func TestDial_EmptyURL(t *testing.T) {
	_, err := Dial(context.Background(), WalletConfig{})
	assert.ErrorIs(t, err, domain.ErrProviderUnavailable)
}

func TestWallet_PrivateKey(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	addr := crypto.PubkeyToAddress(key.PublicKey)

	w, err := NewWallet(&chainBackend{chainID: big.NewInt(5)}, WalletConfig{
		Contract:   contractAddr,
		PrivateKey: hexutil.Encode(crypto.FromECDSA(key)),
	})
	require.NoError(t, err)
	ctx := context.Background()

	authorized, err := w.Accounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, addr, authorized[0])

	requested, err := w.RequestAccounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, addr, requested[0])

	id, err := w.ChainID(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(5), id.Int64())

	c, err := w.Bind(ctx, addr, id)
	require.NoError(t, err)
	assert.NotNil(t, c)
}

func TestWallet_KeystoreWrongPassphraseIsRejection(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWallet(&chainBackend{}, WalletConfig{KeystoreDir: dir, KeystorePassphrase: "wrong"})
	require.NoError(t, err)
	_, err = w.ks.NewAccount("right")
	require.NoError(t, err)

	_, err = w.RequestAccounts(context.Background())
	assert.ErrorIs(t, err, domain.ErrUserRejected)

	authorized, err := w.Accounts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, authorized)
}

func TestClassify(t *testing.T) {
	assert.ErrorIs(t, classify(errRejected), domain.ErrUserRejected)
	assert.ErrorIs(t, classify(context.DeadlineExceeded), domain.ErrCallFailed)
	assert.ErrorIs(t, classify(errors.New("execution reverted: not admin")), domain.ErrContractReverted)
	assert.ErrorIs(t, classify(errors.New("connection refused")), domain.ErrCallFailed)
	assert.Nil(t, classify(nil))

	already := domain.InvalidInput("x", "bad")
	assert.Same(t, already, classify(already))
}

type dataErr struct{ data string }

func (d dataErr) Error() string          { return "execution reverted" }
func (d dataErr) ErrorData() interface{} { return d.data }

func TestClassify_DecodesRevertReason(t *testing.T) {
	// Error(string) selector followed by the ABI-encoded reason "not admin".
	payload := "0x08c379a0" +
		"0000000000000000000000000000000000000000000000000000000000000020" +
		"0000000000000000000000000000000000000000000000000000000000000009" +
		"6e6f742061646d696e0000000000000000000000000000000000000000000000"

	err := classify(dataErr{data: payload})
	assert.ErrorIs(t, err, domain.ErrContractReverted)
	assert.Equal(t, "execution reverted: not admin", err.Error())
}
