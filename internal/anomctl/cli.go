package anomctl

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"
)

type Config struct {
	WeightsDir   string
	Registry     string // comma-separated registry files
	LedgerPath   string
	TorchChannel string
	Addr         string // daemon address for status
	LogLvl       string
	Verbose      bool
}

func usage() {
	fmt.Println("Usage: anomalyctl [--weights-dir DIR] [--registry a.yaml,b.yaml] [--addr HOST:PORT] [--log-level info] <command>")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  install [full|core|dev|loggers|notebooks|openvino|<specifier>]")
	fmt.Println("  weights fetch <name> [force]")
	fmt.Println("  weights list [json]")
	fmt.Println("  weights info <name>")
	fmt.Println("  weights verify <name>")
	fmt.Println("  weights rm <name>")
	fmt.Println("  weights path <name>")
	fmt.Println("  weights history [N]")
	fmt.Println("  status [wait:SECONDS]")
	fmt.Println("  completion bash|zsh|fish|powershell")
}

// exitCodeError carries a subprocess exit code up to MainWithArgs so the
// process exits with the same code.
type exitCodeError struct{ code int }

func (e exitCodeError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

// hasToken reports whether args contains tok with or without a leading --.
func hasToken(args []string, tok string) bool {
	for _, a := range args {
		if a == tok || a == "--"+tok {
			return true
		}
	}
	return false
}

// Run dispatches the CLI command. It returns an error instead of exiting,
// enabling reuse from other packages or tests.
func Run(args []string, cfg *Config) error {
	switch args[0] {
	case "install":
		option := ""
		if len(args) >= 2 {
			option = args[1]
		}
		return fnInstall(cfg, option)
	case "weights":
		if len(args) < 2 {
			return fmt.Errorf("weights requires a subcommand: fetch|list|info|verify|rm|path|history")
		}
		switch args[1] {
		case "fetch":
			if len(args) < 3 {
				return fmt.Errorf("weights fetch requires a name")
			}
			return fnFetchWeight(cfg, args[2], hasToken(args[3:], "force"))
		case "list":
			return fnListWeights(cfg, hasToken(args[2:], "json"))
		case "info":
			if len(args) < 3 {
				return fmt.Errorf("weights info requires a name")
			}
			return fnWeightInfo(cfg, args[2])
		case "verify":
			if len(args) < 3 {
				return fmt.Errorf("weights verify requires a name")
			}
			return fnVerifyWeight(cfg, args[2])
		case "rm", "evict":
			if len(args) < 3 {
				return fmt.Errorf("weights rm requires a name")
			}
			return fnEvictWeight(cfg, args[2])
		case "path":
			if len(args) < 3 {
				return fmt.Errorf("weights path requires a name")
			}
			return fnWeightPath(cfg, args[2])
		case "history":
			limit := 20
			if len(args) >= 3 {
				if _, err := fmt.Sscanf(args[2], "%d", &limit); err != nil {
					return fmt.Errorf("weights history: bad limit %q", args[2])
				}
			}
			return fnHistory(cfg, limit)
		default:
			return fmt.Errorf("unknown weights subcommand: %s", args[1])
		}
	case "status":
		var wait time.Duration
		for _, a := range args[1:] {
			if strings.HasPrefix(a, "wait:") {
				var n int
				if _, err := fmt.Sscanf(strings.TrimPrefix(a, "wait:"), "%d", &n); err != nil {
					return fmt.Errorf("status: bad wait token %q", a)
				}
				wait = time.Duration(n) * time.Second
			}
		}
		return fnStatus(cfg, wait)
	case "completion":
		root := buildRootCmdWith(cfg)
		root.SetArgs(args)
		return root.Execute()
	default:
		return fmt.Errorf("unknown command: %s", args[0])
	}
}

func ParseConfig() (*Config, []string) {
	return ParseConfigWith(flag.CommandLine, os.Args[1:])
}

// ParseConfigWith parses flags using the provided FlagSet and args slice.
// This enables tests to inject their own FlagSet and arguments without
// mutating global state.
func ParseConfigWith(fs *flag.FlagSet, args []string) (*Config, []string) {
	cfg := &Config{}
	// Only define flags if they are not already present on the provided FlagSet.
	if fs.Lookup("weights-dir") == nil {
		fs.String("weights-dir", envStr("ANOMALYD_WEIGHTS_DIR", ""), "Weights cache directory")
	}
	if fs.Lookup("registry") == nil {
		fs.String("registry", envStr("ANOMALYD_REGISTRY", ""), "Comma-separated registry YAML files")
	}
	if fs.Lookup("ledger") == nil {
		fs.String("ledger", envStr("ANOMALYD_LEDGER", ""), "Fetch-ledger path (default <weights-dir>/.ledger.db)")
	}
	if fs.Lookup("torch-channel") == nil {
		fs.String("torch-channel", envStr("ANOMALYD_TORCH_CHANNEL", "cpu"), "Torch wheel channel: cpu|cu118|cu121")
	}
	if fs.Lookup("addr") == nil {
		fs.String("addr", envStr("ANOMALYD_ADDR", "127.0.0.1:8091"), "Daemon address for status")
	}
	if fs.Lookup("log-level") == nil {
		fs.String("log-level", envStr("ANOMALYCTL_LOG_LEVEL", "info"), "Log level: debug|info|warn|error")
	}
	if fs.Lookup("verbose") == nil {
		fs.Bool("verbose", envBool("ANOMALYCTL_VERBOSE", false), "Pass -v through to pip")
	}
	_ = fs.Parse(args)
	// Read back values from the parsed FlagSet, falling back to env defaults.
	strFlag := func(name, envKey, def string) string {
		v := envStr(envKey, def)
		if f := fs.Lookup(name); f != nil {
			if s := f.Value.String(); s != "" {
				v = s
			}
		}
		return v
	}
	cfg.WeightsDir = strFlag("weights-dir", "ANOMALYD_WEIGHTS_DIR", "")
	cfg.Registry = strFlag("registry", "ANOMALYD_REGISTRY", "")
	cfg.LedgerPath = strFlag("ledger", "ANOMALYD_LEDGER", "")
	cfg.TorchChannel = strFlag("torch-channel", "ANOMALYD_TORCH_CHANNEL", "cpu")
	cfg.Addr = strFlag("addr", "ANOMALYD_ADDR", "127.0.0.1:8091")
	cfg.LogLvl = strFlag("log-level", "ANOMALYCTL_LOG_LEVEL", "info")
	if f := fs.Lookup("verbose"); f != nil {
		cfg.Verbose = f.Value.String() == "true"
	}
	return cfg, fs.Args()
}

// splitCSV splits a comma-separated list, trimming whitespace and dropping
// empty items.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// MainWithArgs is a testable variant of Main that accepts args explicitly.
// It returns an exit code (0 for success, non-zero on error).
func MainWithArgs(args []string) int {
	// If user explicitly asks for help, print usage and exit 0
	for _, a := range args {
		if a == "-h" || a == "--help" || a == "help" {
			usage()
			return 0
		}
	}
	fs := flag.NewFlagSet("anomalyctl", flag.ContinueOnError)
	cfg, rest := ParseConfigWith(fs, args)
	SetLogLevel(cfg.LogLvl)
	if len(rest) == 0 {
		usage()
		return 2
	}
	if err := Run(rest, cfg); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		var ec exitCodeError
		if errors.As(err, &ec) {
			return ec.code
		}
		return 1
	}
	return 0
}

// Main returns an exit code (0 for success, non-zero on error) for use by cmd/anomalyctl.
func Main() int { return MainWithArgs(os.Args[1:]) }
