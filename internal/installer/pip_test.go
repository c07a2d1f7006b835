package installer

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"testing"
)

// writeFakePip drops a shell script that records its arguments and exits
// with the given code.
func writeFakePip(t *testing.T, dir string, code int) (bin, argsFile string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script fixture")
	}
	argsFile = filepath.Join(dir, "args.txt")
	bin = filepath.Join(dir, "pip")
	script := "#!/bin/sh\necho \"$@\" > " + argsFile + "\nexit " + strconv.Itoa(code) + "\n"
	if err := os.WriteFile(bin, []byte(script), 0o755); err != nil {
		t.Fatalf("write fake pip: %v", err)
	}
	return bin, argsFile
}

func TestRunPassesAssembledArgs(t *testing.T) {
	dir := t.TempDir()
	bin, argsFile := writeFakePip(t, dir, 0)

	code, err := Run(context.Background(), RunOptions{
		Option: "requests==2.32.0",
		PipBin: bin,
		Stdout: &bytes.Buffer{},
		Stderr: &bytes.Buffer{},
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if code != 0 {
		t.Fatalf("code = %d", code)
	}
	raw, err := os.ReadFile(argsFile)
	if err != nil {
		t.Fatalf("read args: %v", err)
	}
	got := strings.TrimSpace(string(raw))
	if got != "install requests==2.32.0" {
		t.Fatalf("pip args = %q", got)
	}
}

func TestRunVerboseFlag(t *testing.T) {
	dir := t.TempDir()
	bin, argsFile := writeFakePip(t, dir, 0)

	if _, err := Run(context.Background(), RunOptions{
		Option:  "requests==2.32.0",
		Verbose: true,
		PipBin:  bin,
		Stdout:  &bytes.Buffer{},
		Stderr:  &bytes.Buffer{},
	}); err != nil {
		t.Fatalf("run: %v", err)
	}
	raw, _ := os.ReadFile(argsFile)
	if !strings.HasPrefix(strings.TrimSpace(string(raw)), "install -v ") {
		t.Fatalf("pip args = %q", raw)
	}
}

func TestRunPropagatesExitCode(t *testing.T) {
	dir := t.TempDir()
	bin, _ := writeFakePip(t, dir, 3)

	code, err := Run(context.Background(), RunOptions{
		Option: "requests==2.32.0",
		PipBin: bin,
		Stdout: &bytes.Buffer{},
		Stderr: &bytes.Buffer{},
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if code != 3 {
		t.Fatalf("code = %d, want 3", code)
	}
}

func TestRunMissingBinary(t *testing.T) {
	code, err := Run(context.Background(), RunOptions{
		Option: "requests==2.32.0",
		PipBin: filepath.Join(t.TempDir(), "no-such-pip"),
	})
	if err == nil {
		t.Fatalf("expected error for missing binary")
	}
	if code != 0 {
		t.Fatalf("code = %d, want 0 on invocation failure", code)
	}
}

func TestRunBadOption(t *testing.T) {
	code, err := Run(context.Background(), RunOptions{Option: "--not-a-spec"})
	if err == nil {
		t.Fatalf("expected error for invalid option")
	}
	if code != 0 {
		t.Fatalf("code = %d", code)
	}
}

func TestRunCmdCapturesOutput(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell fixture")
	}
	var out bytes.Buffer
	err := RunCmd(context.Background(), Cmd{
		Path:   "/bin/sh",
		Args:   []string{"-c", "echo hello"},
		Stdout: &out,
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if strings.TrimSpace(out.String()) != "hello" {
		t.Fatalf("stdout = %q", out.String())
	}
}
