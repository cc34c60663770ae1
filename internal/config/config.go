package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/joho/godotenv"
)

// DefaultEscrow is the exchange's account when ESCROW_ACCOUNT is unset
var DefaultEscrow = common.HexToAddress("0x00000000000000000000000000000000000e8c4a")

type Server struct {
	Port        string
	CORSOrigins []string
}

type Exchange struct {
	Escrow   common.Address // holds bid escrow and acts as registry operator
	SeedDemo bool
}

type Config struct {
	Server      Server
	Exchange    Exchange
	LogLevel    string
	JournalPath string
}

func Default() Config {
	return Config{
		Server: Server{
			Port:        "8080",
			CORSOrigins: []string{"*"},
		},
		Exchange: Exchange{
			Escrow:   DefaultEscrow,
			SeedDemo: true,
		},
		LogLevel:    "info",
		JournalPath: "data/journal",
	}
}

// Load reads an optional .env file and then the environment.
// Priority: ENV > .env file > defaults
func Load(envPath string) (Config, error) {
	cfg := Default()

	// a missing .env is fine
	if envPath != "" {
		_ = godotenv.Load(envPath)
	} else {
		_ = godotenv.Load()
	}

	cfg.Server.Port = getEnv("PORT", cfg.Server.Port)
	if _, err := strconv.ParseUint(cfg.Server.Port, 10, 16); err != nil {
		return Config{}, fmt.Errorf("config: PORT %q: %w", cfg.Server.Port, err)
	}

	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.JournalPath = getEnv("JOURNAL_PATH", cfg.JournalPath)

	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		cfg.Server.CORSOrigins = splitList(origins)
	}

	if escrow := os.Getenv("ESCROW_ACCOUNT"); escrow != "" {
		if !common.IsHexAddress(escrow) {
			return Config{}, fmt.Errorf("config: ESCROW_ACCOUNT %q is not a hex address", escrow)
		}
		cfg.Exchange.Escrow = common.HexToAddress(escrow)
	}

	if seed := os.Getenv("SEED_DEMO"); seed != "" {
		v, err := strconv.ParseBool(seed)
		if err != nil {
			return Config{}, fmt.Errorf("config: SEED_DEMO %q: %w", seed, err)
		}
		cfg.Exchange.SeedDemo = v
	}

	return cfg, nil
}

// Addr returns the listen address for the HTTP server
func (c Config) Addr() string {
	return ":" + c.Server.Port
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// getEnv returns environment variable value or default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
