package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadOrCreate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.json")

	cfg := LoadOrCreate(path)
	if len(cfg.RPCURLs) != 1 || !cfg.RPCURLs[0].Active {
		t.Fatalf("expected default RPC, got %+v", cfg.RPCURLs)
	}

	cfg.PollSeconds = 3
	cfg.Logger = true
	Save(path, cfg)

	again, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if again.PollInterval() != 3*time.Second {
		t.Errorf("expected 3s poll interval, got %s", again.PollInterval())
	}
	if !again.Logger {
		t.Error("logger flag was not persisted")
	}
}

func TestLoadOrCreateBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected a decode error")
	}
	cfg := LoadOrCreate(path)
	if len(cfg.RPCURLs) != 1 {
		t.Errorf("expected defaults for an unreadable file, got %+v", cfg)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "{not json" {
		t.Error("an unreadable file must not be overwritten")
	}
}

func TestActiveRPC(t *testing.T) {
	t.Run("configured endpoint wins", func(t *testing.T) {
		t.Setenv("ETH_RPC_URL", "http://env")
		cfg := Config{RPCURLs: []RPCUrl{{Name: "a", URL: "http://a"}, {Name: "b", URL: "http://b", Active: true}}}
		if got := cfg.ActiveRPC(); got != "http://b" {
			t.Errorf("expected http://b, got %s", got)
		}
		if got := cfg.ActiveRPCName(); got != "b" {
			t.Errorf("expected b, got %s", got)
		}
	})

	t.Run("env fallback", func(t *testing.T) {
		t.Setenv("ETH_RPC_URL", " http://env ")
		if got := (Config{}).ActiveRPC(); got != "http://env" {
			t.Errorf("expected http://env, got %q", got)
		}
	})
}

func TestDefaults(t *testing.T) {
	var cfg Config
	if cfg.PollInterval() != 12*time.Second {
		t.Errorf("unexpected default poll interval %s", cfg.PollInterval())
	}
	if cfg.Currency() != "ETH" {
		t.Errorf("unexpected default currency %s", cfg.Currency())
	}
}

func TestParseRequest(t *testing.T) {
	valid := `{"id":"1","origin":"https://app.example","txParams":{"from":"0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045","to":"0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48","data":"0x095ea7b3"}}`

	req, err := ParseRequest([]byte(valid))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Origin != "https://app.example" {
		t.Errorf("unexpected origin %s", req.Origin)
	}

	bad := strings.Replace(valid, "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48", "0x1234", 1)
	if _, err := ParseRequest([]byte(bad)); err == nil {
		t.Error("expected error for short token address")
	}

	badFrom := strings.Replace(valid, "0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045", "0xZZdA6BF26964aF9D7eEd9e03E53415D37aA96045", 1)
	if _, err := ParseRequest([]byte(badFrom)); err == nil {
		t.Error("expected error for a non-hex sender")
	}

	noData := strings.Replace(valid, `"0x095ea7b3"`, `""`, 1)
	if _, err := ParseRequest([]byte(noData)); err == nil {
		t.Error("expected error for missing calldata")
	}
}
