package presentation

import (
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// TruncateAddress keeps the first 6 and last 4 characters: 0x1234...abcd.
func TruncateAddress(addr string) string {
	if len(addr) <= 10 {
		return addr
	}
	return addr[:6] + "..." + addr[len(addr)-4:]
}

func ShortAddress(addr common.Address) string { return TruncateAddress(addr.Hex()) }

// Last second of year 9999; later values have no four-digit calendar date.
const maxUnixSeconds = 253402300799

// FormatDate renders an on-chain timestamp (seconds) as a calendar date.
func FormatDate(seconds uint64, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	if seconds > maxUnixSeconds {
		seconds = maxUnixSeconds
	}
	return time.Unix(int64(seconds), 0).In(loc).Format("1/2/2006")
}

// ReviewerStatus is Inactive, or Available/Busy for active reviewers.
func ReviewerStatus(active, available bool) string {
	switch {
	case !active:
		return "Inactive"
	case available:
		return "Available"
	default:
		return "Busy"
	}
}

var networkNames = map[int64]string{
	1:        "Ethereum Mainnet",
	17000:    "Holesky Testnet",
	11155111: "Sepolia Testnet",
	31337:    "Local Network",
}

func NetworkName(id *big.Int) string {
	if id == nil {
		return "unknown network"
	}
	if id.IsInt64() {
		if name, ok := networkNames[id.Int64()]; ok {
			return name
		}
	}
	return fmt.Sprintf("chain %s", id)
}
