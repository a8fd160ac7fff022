package ethereum

import (
	"context"
	"errors"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rpc"

	"ethicsreview/internal/domain"
)

// errRejected is returned by the signer when the approval hook refuses a transaction.
var errRejected = errors.New("user rejected transaction")

// classify maps an RPC, keystore or binding error onto the domain taxonomy.
// Errors that already carry a kind pass through.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var de *domain.Error
	if errors.As(err, &de) {
		return err
	}
	switch {
	case errors.Is(err, errRejected),
		errors.Is(err, keystore.ErrDecrypt),
		errors.Is(err, keystore.ErrLocked):
		return domain.Wrap(domain.KindUserRejected, "user rejected the request", err)
	case errors.Is(err, context.DeadlineExceeded):
		return domain.Wrap(domain.KindCallFailed, "timed out waiting for the network", err)
	case errors.Is(err, context.Canceled):
		return domain.Wrap(domain.KindCallFailed, "cancelled", err)
	}
	if reason, ok := revertReason(err); ok {
		return domain.Wrap(domain.KindContractReverted, "execution reverted: "+reason, err)
	}
	if strings.Contains(err.Error(), "execution reverted") {
		return domain.Wrap(domain.KindContractReverted, err.Error(), err)
	}
	return domain.Wrap(domain.KindCallFailed, err.Error(), err)
}

// revertReason decodes an Error(string) payload attached to a JSON-RPC error.
func revertReason(err error) (string, bool) {
	var de rpc.DataError
	if !errors.As(err, &de) {
		return "", false
	}
	hexData, ok := de.ErrorData().(string)
	if !ok {
		return "", false
	}
	reason, uerr := abi.UnpackRevert(common.FromHex(hexData))
	if uerr != nil {
		return "", false
	}
	return reason, true
}
