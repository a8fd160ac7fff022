package ethereum

import (
	"context"
	"fmt"
	"math/big"

	goeth "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"ethicsreview/internal/domain"
	"ethicsreview/internal/ports"
)

// LogBackend is the subset of a node connection needed to read logs.
type LogBackend interface {
	FilterLogs(ctx context.Context, q goeth.FilterQuery) ([]types.Log, error)
	BlockNumber(ctx context.Context) (uint64, error)
}

// Events reads and decodes review contract logs.
type Events struct {
	backend LogBackend
	address common.Address
}

var _ ports.EventSource = (*Events)(nil)

func NewEvents(backend LogBackend, address common.Address) *Events {
	return &Events{backend: backend, address: address}
}

func (e *Events) LatestBlock(ctx context.Context) (uint64, error) {
	n, err := e.backend.BlockNumber(ctx)
	if err != nil {
		return 0, classify(fmt.Errorf("block number: %w", err))
	}
	return n, nil
}

// Events returns decoded events in [from, to], in log order. Logs with an
// unknown signature are skipped.
func (e *Events) Events(ctx context.Context, from, to uint64) ([]domain.ContractEvent, error) {
	logs, err := e.backend.FilterLogs(ctx, goeth.FilterQuery{
		FromBlock: new(big.Int).SetUint64(from),
		ToBlock:   new(big.Int).SetUint64(to),
		Addresses: []common.Address{e.address},
	})
	if err != nil {
		return nil, classify(fmt.Errorf("filter logs %d-%d: %w", from, to, err))
	}
	out := make([]domain.ContractEvent, 0, len(logs))
	for _, l := range logs {
		if l.Removed {
			continue
		}
		ev, ok, err := decodeLog(l)
		if err != nil {
			return nil, fmt.Errorf("decode log %s/%d: %w", l.TxHash.Hex(), l.Index, err)
		}
		if ok {
			out = append(out, ev)
		}
	}
	return out, nil
}

func decodeLog(l types.Log) (domain.ContractEvent, bool, error) {
	if len(l.Topics) == 0 {
		return domain.ContractEvent{}, false, nil
	}
	event, err := parsedABI.EventByID(l.Topics[0])
	if err != nil {
		return domain.ContractEvent{}, false, nil
	}

	fields := make(map[string]interface{})
	var indexed abi.Arguments
	for _, arg := range event.Inputs {
		if arg.Indexed {
			indexed = append(indexed, arg)
		}
	}
	if err := abi.ParseTopicsIntoMap(fields, indexed, l.Topics[1:]); err != nil {
		return domain.ContractEvent{}, false, err
	}
	if len(l.Data) > 0 {
		if err := event.Inputs.UnpackIntoMap(fields, l.Data); err != nil {
			return domain.ContractEvent{}, false, err
		}
	}

	ev := domain.ContractEvent{
		Kind:        domain.EventKind(event.Name),
		BlockNumber: l.BlockNumber,
		TxHash:      l.TxHash,
		LogIndex:    l.Index,
		ProposalID:  fieldUint32(fields, "proposalId"),
		ReviewerID:  fieldUint32(fields, "reviewerId"),
	}
	switch ev.Kind {
	case domain.EventProposalSubmitted:
		if a, ok := fields["submitter"].(common.Address); ok {
			ev.Submitter = a
		}
		if d, ok := fields["deadline"].(*big.Int); ok && d.IsUint64() {
			ev.Deadline = d.Uint64()
		}
	case domain.EventReviewerRegistered:
		ev.Role = domain.ReviewerRole(fieldUint8(fields, "role"))
	case domain.EventProposalStatusUpdated:
		ev.Status = domain.ProposalStatus(fieldUint8(fields, "newStatus"))
	case domain.EventEthicsDecisionReached:
		ev.Decision = domain.ProposalStatus(fieldUint8(fields, "finalDecision"))
	}
	return ev, true, nil
}

func fieldUint32(m map[string]interface{}, name string) uint32 {
	v, _ := m[name].(uint32)
	return v
}

func fieldUint8(m map[string]interface{}, name string) uint8 {
	v, _ := m[name].(uint8)
	return v
}
