package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config holds runtime parameters for the daemon and the control CLI.
// Zero values mean "unspecified" and will be replaced by defaults in main.
type Config struct {
	Addr          string   `json:"addr" yaml:"addr" toml:"addr"`
	WeightsDir    string   `json:"weights_dir" yaml:"weights_dir" toml:"weights_dir"`
	Registry      []string `json:"registry" yaml:"registry" toml:"registry"`
	LedgerPath    string   `json:"ledger_path" yaml:"ledger_path" toml:"ledger_path"`
	TorchChannel  string   `json:"torch_channel" yaml:"torch_channel" toml:"torch_channel"`
	LogLevel      string   `json:"log_level" yaml:"log_level" toml:"log_level"`
	LogFile       string   `json:"log_file" yaml:"log_file" toml:"log_file"`
	MaxBodyBytes  int64    `json:"max_body_bytes" yaml:"max_body_bytes" toml:"max_body_bytes"`
	FetchTimeoutS int64    `json:"fetch_timeout_s" yaml:"fetch_timeout_s" toml:"fetch_timeout_s"`
}

// Load reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil { return cfg, err }
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil { return cfg, err }
	case ".toml":
		if err := toml.Unmarshal(b, &cfg); err != nil { return cfg, err }
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	return cfg, nil
}
