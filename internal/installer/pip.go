package installer

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"runtime"
)

// defaultPip is the host package manager entry point.
const defaultPip = "pip3"

// Cmd describes one subprocess invocation.
type Cmd struct {
	Path   string
	Args   []string
	Env    map[string]string // additional env vars
	Dir    string            // working directory
	Stdout io.Writer         // defaults to os.Stdout
	Stderr io.Writer         // defaults to os.Stderr
	Stream bool              // if true, forward output line by line via scanner
}

// RunCmd runs c to completion, inheriting the process environment.
func RunCmd(ctx context.Context, c Cmd) error {
	cmd := exec.CommandContext(ctx, c.Path, c.Args...)
	if c.Dir != "" {
		cmd.Dir = c.Dir
	}
	cmd.Env = os.Environ()
	for k, v := range c.Env {
		cmd.Env = append(cmd.Env, fmt.Sprintf("%s=%s", k, v))
	}
	stdout := c.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	stderr := c.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}
	if c.Stream {
		outPipe, _ := cmd.StdoutPipe()
		errPipe, _ := cmd.StderrPipe()
		if err := cmd.Start(); err != nil {
			return err
		}
		go stream(stdout, outPipe)
		go stream(stderr, errPipe)
		return cmd.Wait()
	}
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	return cmd.Run()
}

func stream(w io.Writer, r io.Reader) {
	s := bufio.NewScanner(r)
	for s.Scan() {
		fmt.Fprintln(w, s.Text())
	}
}

// RunOptions configures one install invocation.
type RunOptions struct {
	// Option names an extra (core, dev, loggers, notebooks, openvino),
	// "full", or a literal requirement specifier.
	Option string
	// TorchChannel picks the torch wheel index: cpu (default), cu118, cu121.
	TorchChannel string
	// Verbose passes -v through to pip.
	Verbose bool
	// PipBin overrides the pip executable, e.g. for tests.
	PipBin string
	// Stdout/Stderr default to the process streams.
	Stdout io.Writer
	Stderr io.Writer
}

// Run invokes the host package manager's install command with the assembled
// requirement list and returns its exit code unchanged. No retry, no
// rollback, no interpretation: a non-zero code is the caller's to surface.
// The returned error is non-nil only when pip could not be invoked at all
// (bad option, missing binary).
func Run(ctx context.Context, opts RunOptions) (int, error) {
	args, err := InstallArgs(opts.Option, opts.TorchChannel, runtime.GOOS)
	if err != nil {
		return 0, err
	}
	pip := opts.PipBin
	if pip == "" {
		pip = defaultPip
	}

	pipArgs := make([]string, 0, len(args)+2)
	pipArgs = append(pipArgs, "install")
	if opts.Verbose {
		pipArgs = append(pipArgs, "-v")
	}
	pipArgs = append(pipArgs, args...)

	log.Printf("installer event=install_start option=%s specifiers=%d", displayOption(opts.Option), len(args))
	err = RunCmd(ctx, Cmd{Path: pip, Args: pipArgs, Stdout: opts.Stdout, Stderr: opts.Stderr, Stream: true})
	if err == nil {
		log.Printf("installer event=install_complete option=%s", displayOption(opts.Option))
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code := exitErr.ExitCode()
		log.Printf("installer event=install_failed option=%s code=%d", displayOption(opts.Option), code)
		return code, nil
	}
	return 0, fmt.Errorf("run %s: %w", pip, err)
}

func displayOption(option string) string {
	if option == "" {
		return OptionFull
	}
	return option
}
