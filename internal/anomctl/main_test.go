package anomctl

import (
	"flag"
	"testing"
)

func TestMainWithArgs_NoArgs_ShowsUsageAndExit2(t *testing.T) {
	code := MainWithArgs([]string{})
	if code != 2 {
		t.Fatalf("expected exit code 2 for no args, got %d", code)
	}
}

func TestMainWithArgs_Help_Exit0(t *testing.T) {
	if code := MainWithArgs([]string{"--help"}); code != 0 {
		t.Fatalf("help expected 0, got %d", code)
	}
	if code := MainWithArgs([]string{"help"}); code != 0 {
		t.Fatalf("help expected 0, got %d", code)
	}
}

func TestMainWithArgs_UnknownCommand_Exit1(t *testing.T) {
	// No stubs needed; this should produce an error path
	code := MainWithArgs([]string{"wat"})
	if code != 1 {
		t.Fatalf("expected exit code 1 for unknown command, got %d", code)
	}
}

func TestMainWithArgs_WeightsList_SuccessExit0(t *testing.T) {
	cleanup := withCLIStubs(t, func() {
		fnListWeights = func(c *Config, asJSON bool) error { return nil }
	})
	defer cleanup()

	code := MainWithArgs([]string{"weights", "list"})
	if code != 0 {
		t.Fatalf("expected exit code 0 for successful weights list, got %d", code)
	}
}

func TestMainWithArgs_InstallExitCodePropagates(t *testing.T) {
	cleanup := withCLIStubs(t, func() {
		fnInstall = func(c *Config, option string) error { return exitCodeError{code: 3} }
	})
	defer cleanup()

	code := MainWithArgs([]string{"install", "core"})
	if code != 3 {
		t.Fatalf("expected pip exit code 3 to propagate, got %d", code)
	}
}

func TestMainWithArgs_FlagsAreParsedAndPassedToHandlers(t *testing.T) {
	cleanup := withCLIStubs(t, func() {
		fnInstall = func(c *Config, option string) error {
			if c.TorchChannel != "cu121" {
				t.Fatalf("expected cfg.TorchChannel cu121 from flags, got %s", c.TorchChannel)
			}
			if !c.Verbose {
				t.Fatalf("expected cfg.Verbose from flags")
			}
			if option != "core" {
				t.Fatalf("expected option core, got %s", option)
			}
			return nil
		}
	})
	defer cleanup()

	args := []string{"--torch-channel", "cu121", "--verbose", "install", "core"}
	code := MainWithArgs(args)
	if code != 0 {
		t.Fatalf("expected exit code 0 for install with flags, got %d", code)
	}
}

// Sanity: ensure ParseConfig still delegates to ParseConfigWith with CommandLine
func TestParseConfig_DelegatesToCommandLine(t *testing.T) {
	fs := flag.CommandLine
	fs.Init("anomalyctl", flag.ContinueOnError)
	_, rest := ParseConfigWith(fs, []string{"weights", "list"})
	if len(rest) != 2 || rest[0] != "weights" || rest[1] != "list" {
		t.Fatalf("expected rest to be ['weights','list'], got %#v", rest)
	}
}
