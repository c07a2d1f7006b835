package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

func TestLoadYAML(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.yaml", "addr: :9999\nweights_dir: /tmp/w\nregistry:\n  - /etc/anomalyd/extra.yaml\nledger_path: /tmp/l.db\ntorch_channel: cu121\nlog_level: debug\nlog_file: /tmp/anomalyd.log\nmax_body_bytes: 2048\nfetch_timeout_s: 600\n")
	cfg, err := Load(p)
	if err != nil { t.Fatalf("load: %v", err) }
	if cfg.Addr != ":9999" || cfg.WeightsDir != "/tmp/w" || cfg.LedgerPath != "/tmp/l.db" || cfg.TorchChannel != "cu121" {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
	if len(cfg.Registry) != 1 || cfg.Registry[0] != "/etc/anomalyd/extra.yaml" {
		t.Fatalf("unexpected registry: %+v", cfg.Registry)
	}
	if cfg.LogLevel != "debug" || cfg.LogFile != "/tmp/anomalyd.log" || cfg.MaxBodyBytes != 2048 || cfg.FetchTimeoutS != 600 {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
}

func TestLoadJSON(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.json", `{"addr":":7070","weights_dir":"/w","registry":["a.yaml","b.yaml"],"torch_channel":"cpu","log_level":"info"}`)
	cfg, err := Load(p)
	if err != nil { t.Fatalf("load: %v", err) }
	if cfg.Addr != ":7070" || cfg.WeightsDir != "/w" || cfg.TorchChannel != "cpu" || cfg.LogLevel != "info" {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
	if len(cfg.Registry) != 2 || cfg.Registry[0] != "a.yaml" || cfg.Registry[1] != "b.yaml" {
		t.Fatalf("unexpected registry: %+v", cfg.Registry)
	}
}

func TestLoadTOML(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.toml", "addr=\":8081\"\nweights_dir=\"/x\"\nregistry=[\"r.yaml\"]\nledger_path=\"/x/l.db\"\nmax_body_bytes=512\n")
	cfg, err := Load(p)
	if err != nil { t.Fatalf("load: %v", err) }
	if cfg.Addr != ":8081" || cfg.WeightsDir != "/x" || cfg.LedgerPath != "/x/l.db" || cfg.MaxBodyBytes != 512 {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
	if len(cfg.Registry) != 1 || cfg.Registry[0] != "r.yaml" {
		t.Fatalf("unexpected registry: %+v", cfg.Registry)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(""); err == nil { t.Fatalf("expected error on empty path") }
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.txt", "not supported")
	if _, err := Load(p); err == nil { t.Fatalf("expected unsupported extension error") }
}
