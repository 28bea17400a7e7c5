package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config represents the application configuration
type Config struct {
	RPCURLs        []RPCUrl `json:"rpc_urls"`
	Logger         bool     `json:"logger"`
	PollSeconds    int      `json:"poll_seconds"`
	UseNonceField  bool     `json:"use_nonce_field"`
	NativeCurrency string   `json:"native_currency,omitempty"`
	ExplorerURL    string   `json:"explorer_url,omitempty"`
	// Subjects holds known sites keyed by origin
	Subjects map[string]Subject `json:"subjects,omitempty"`
}

// RPCUrl represents an RPC endpoint
type RPCUrl struct {
	Name   string `json:"name"`
	URL    string `json:"url"`
	Active bool   `json:"active"`
}

// DefaultPath returns the config location in the user's home directory
func DefaultPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".charm-approve-config.json")
}

// LoadEnv reads .env files from the working directory. Missing files are fine.
func LoadEnv() {
	_ = godotenv.Load()
	_ = godotenv.Overload(".env.local")
}

// Load reads the config from the specified path
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to the specified path
func Save(path string, cfg Config) {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return
	}
	_ = os.WriteFile(path, data, 0644)
}

// DefaultConfig returns a new configuration with sensible defaults
func DefaultConfig() Config {
	return Config{
		RPCURLs: []RPCUrl{
			{
				Name:   "Public Mainnet",
				URL:    "https://ethereum-rpc.publicnode.com",
				Active: true,
			},
		},
		Logger:         false,
		PollSeconds:    12,
		UseNonceField:  true,
		NativeCurrency: "ETH",
		ExplorerURL:    "https://etherscan.io",
	}
}

// LoadOrCreate loads config from path, or creates a default one if not found
func LoadOrCreate(path string) Config {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		cfg = DefaultConfig()
		Save(path, cfg)
		return cfg
	}
	if err != nil {
		return DefaultConfig()
	}
	return cfg
}

// ActiveRPC returns the URL of the active endpoint. ETH_RPC_URL is used when
// nothing is configured.
func (c Config) ActiveRPC() string {
	for _, r := range c.RPCURLs {
		if r.Active && r.URL != "" {
			return r.URL
		}
	}
	return strings.TrimSpace(os.Getenv("ETH_RPC_URL"))
}

// ActiveRPCName returns the display name of the active endpoint
func (c Config) ActiveRPCName() string {
	for _, r := range c.RPCURLs {
		if r.Active {
			return r.Name
		}
	}
	return ""
}

// PollInterval returns how often upstream asset data is refreshed
func (c Config) PollInterval() time.Duration {
	if c.PollSeconds <= 0 {
		return 12 * time.Second
	}
	return time.Duration(c.PollSeconds) * time.Second
}

// Currency returns the native currency symbol, ETH when unset
func (c Config) Currency() string {
	if c.NativeCurrency == "" {
		return "ETH"
	}
	return c.NativeCurrency
}
