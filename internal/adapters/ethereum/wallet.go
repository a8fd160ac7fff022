package ethereum

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"

	"ethicsreview/internal/domain"
	"ethicsreview/internal/ports"
)

// WalletConfig selects the node and the signing key source. Either KeystoreDir
// or PrivateKey may be set; with neither the wallet can read but not connect.
type WalletConfig struct {
	RPCURL             string
	Contract           common.Address
	KeystoreDir        string
	KeystorePassphrase string
	PrivateKey         string
	Approve            Approver
}

// Wallet is a node connection plus a local key source, playing the part of an
// injected browser wallet.
type Wallet struct {
	backend  Backend
	contract common.Address
	approve  Approver

	ks         *keystore.KeyStore
	passphrase string
	key        *ecdsa.PrivateKey

	mu         sync.Mutex
	authorized map[common.Address]bool
}

var _ ports.Provider = (*Wallet)(nil)

// Dial connects to cfg.RPCURL. An empty URL yields ProviderUnavailable.
func Dial(ctx context.Context, cfg WalletConfig) (*Wallet, error) {
	if cfg.RPCURL == "" {
		return nil, domain.Wrap(domain.KindProviderUnavailable, "no wallet provider configured", nil)
	}
	client, err := ethclient.DialContext(ctx, cfg.RPCURL)
	if err != nil {
		return nil, domain.Wrap(domain.KindProviderUnavailable, "wallet provider unreachable", err)
	}
	return NewWallet(client, cfg)
}

// NewWallet builds a wallet over an existing backend.
func NewWallet(backend Backend, cfg WalletConfig) (*Wallet, error) {
	w := &Wallet{
		backend:    backend,
		contract:   cfg.Contract,
		approve:    cfg.Approve,
		passphrase: cfg.KeystorePassphrase,
		authorized: make(map[common.Address]bool),
	}
	switch {
	case cfg.PrivateKey != "":
		key, err := crypto.HexToECDSA(strings.TrimPrefix(cfg.PrivateKey, "0x"))
		if err != nil {
			return nil, fmt.Errorf("parse private key: %w", err)
		}
		w.key = key
		// A raw key is authorized from the start, like a wallet that already
		// granted this site access.
		w.authorized[crypto.PubkeyToAddress(key.PublicKey)] = true
	case cfg.KeystoreDir != "":
		w.ks = keystore.NewKeyStore(cfg.KeystoreDir, keystore.StandardScryptN, keystore.StandardScryptP)
	}
	return w, nil
}

// Backend exposes the node connection for read-only bindings.
func (w *Wallet) Backend() Backend { return w.backend }

func (w *Wallet) hasKeys() bool { return w.key != nil || w.ks != nil }

func (w *Wallet) Accounts(ctx context.Context) ([]common.Address, error) {
	if !w.hasKeys() {
		return nil, domain.Wrap(domain.KindProviderUnavailable, "no wallet key source configured", nil)
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	var out []common.Address
	for _, addr := range w.candidates() {
		if w.authorized[addr] {
			out = append(out, addr)
		}
	}
	return out, nil
}

func (w *Wallet) RequestAccounts(ctx context.Context) ([]common.Address, error) {
	if !w.hasKeys() {
		return nil, domain.Wrap(domain.KindProviderUnavailable, "no wallet key source configured", nil)
	}
	candidates := w.candidates()
	if len(candidates) == 0 {
		return nil, domain.Wrap(domain.KindProviderUnavailable, "wallet has no accounts", nil)
	}
	if w.ks != nil {
		first := accounts.Account{Address: candidates[0]}
		if err := w.ks.Unlock(first, w.passphrase); err != nil {
			return nil, classify(fmt.Errorf("unlock %s: %w", first.Address.Hex(), err))
		}
	}
	w.mu.Lock()
	w.authorized[candidates[0]] = true
	w.mu.Unlock()
	return candidates, nil
}

func (w *Wallet) candidates() []common.Address {
	if w.key != nil {
		return []common.Address{crypto.PubkeyToAddress(w.key.PublicKey)}
	}
	if w.ks == nil {
		return nil
	}
	var out []common.Address
	for _, a := range w.ks.Accounts() {
		out = append(out, a.Address)
	}
	return out
}

func (w *Wallet) ChainID(ctx context.Context) (*big.Int, error) {
	id, err := w.backend.ChainID(ctx)
	if err != nil {
		return nil, classify(fmt.Errorf("chain id: %w", err))
	}
	return id, nil
}

func (w *Wallet) Bind(ctx context.Context, account common.Address, chainID *big.Int) (ports.Contract, error) {
	var (
		opts *bind.TransactOpts
		err  error
	)
	switch {
	case w.key != nil:
		opts, err = bind.NewKeyedTransactorWithChainID(w.key, chainID)
	case w.ks != nil:
		opts, err = bind.NewKeyStoreTransactorWithChainID(w.ks, accounts.Account{Address: account}, chainID)
	default:
		return nil, domain.Wrap(domain.KindProviderUnavailable, "no wallet key source configured", nil)
	}
	if err != nil {
		return nil, classify(fmt.Errorf("signer for %s: %w", account.Hex(), err))
	}
	return NewContract(w.backend, w.contract, opts, w.approve), nil
}
