package config

import (
	"fmt"
	"math/big"
	"os"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/joho/godotenv"
)

const (
	DefaultContractAddress = "0x96104da4AEfA1ba63ab994d87143Cf2130E06ef8"
	SepoliaChainID         = 11155111
)

type Config struct {
	Env         string
	ListenAddr  string
	LogLevel    string
	MaxConns    int
	CORSOrigins []string

	RPCURL             string
	ContractAddress    common.Address
	ExpectedChainID    *big.Int
	KeystoreDir        string
	KeystorePassphrase string
	PrivateKey         string

	CallTimeout     time.Duration
	TxTimeout       time.Duration
	FetchWorkers    int
	NotificationTTL time.Duration
	DateLocation    *time.Location

	DatabaseURL     string
	WatchEvents     bool
	WatchInterval   time.Duration
	WatchStartBlock uint64
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// Load reads configuration from the environment, after merging a .env file if
// one exists. The returned error is a warning; cfg is always usable.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Env:         getenv("APP_ENV", "development"),
		ListenAddr:  getenv("LISTEN_ADDR", ":8080"),
		LogLevel:    strings.ToLower(getenv("LOG_LEVEL", "info")),
		MaxConns:    getenvInt("MAX_CONNS", 64),
		CORSOrigins: splitList(getenv("CORS_ORIGINS", "*")),

		RPCURL:             os.Getenv("RPC_URL"),
		KeystoreDir:        os.Getenv("KEYSTORE_DIR"),
		KeystorePassphrase: os.Getenv("KEYSTORE_PASSPHRASE"),
		PrivateKey:         os.Getenv("PRIVATE_KEY"),

		CallTimeout:     getenvDuration("CALL_TIMEOUT", 30*time.Second),
		TxTimeout:       getenvDuration("TX_TIMEOUT", 5*time.Minute),
		FetchWorkers:    getenvInt("FETCH_WORKERS", 4),
		NotificationTTL: getenvDuration("NOTIFICATION_TTL", 5*time.Second),

		DatabaseURL:     os.Getenv("DATABASE_URL"),
		WatchEvents:     getenv("WATCH_EVENTS", "false") == "true",
		WatchInterval:   getenvDuration("WATCH_INTERVAL", 12*time.Second),
		WatchStartBlock: uint64(getenvInt("WATCH_START_BLOCK", 0)),
	}
	if cfg.FetchWorkers < 1 {
		cfg.FetchWorkers = 1
	}
	if cfg.MaxConns < 1 {
		cfg.MaxConns = 1
	}

	var warnings []string

	addr := getenv("CONTRACT_ADDRESS", DefaultContractAddress)
	if !common.IsHexAddress(addr) {
		warnings = append(warnings, fmt.Sprintf("CONTRACT_ADDRESS %q is not an address, using default", addr))
		addr = DefaultContractAddress
	}
	cfg.ContractAddress = common.HexToAddress(addr)

	cfg.ExpectedChainID = big.NewInt(SepoliaChainID)
	if v := os.Getenv("EXPECTED_CHAIN_ID"); v != "" {
		if id, ok := new(big.Int).SetString(v, 10); ok {
			cfg.ExpectedChainID = id
		} else {
			warnings = append(warnings, fmt.Sprintf("EXPECTED_CHAIN_ID %q is not a number", v))
		}
	}

	loc, err := time.LoadLocation(getenv("DATE_LOCATION", "UTC"))
	if err != nil {
		warnings = append(warnings, fmt.Sprintf("DATE_LOCATION: %v", err))
		loc = time.UTC
	}
	cfg.DateLocation = loc

	if cfg.RPCURL == "" {
		// Not fatal: the page still renders, wallet actions report ProviderUnavailable.
		warnings = append(warnings, "RPC_URL not set")
	}
	if len(warnings) > 0 {
		return cfg, fmt.Errorf("config: %s", strings.Join(warnings, "; "))
	}
	return cfg, nil
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		var out int
		_, err := fmt.Sscanf(v, "%d", &out)
		if err == nil {
			return out
		}
	}
	return def
}

func getenvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return def
}

func splitList(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
