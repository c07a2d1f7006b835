package anomctl

import (
	"context"

	"anomalyd/internal/installer"
)

// doInstall delegates to the installer and surfaces pip's exit code via
// exitCodeError so the process exits with the same code.
func doInstall(cfg *Config, option string) error {
	code, err := installer.Run(context.Background(), installer.RunOptions{
		Option:       option,
		TorchChannel: cfg.TorchChannel,
		Verbose:      cfg.Verbose,
	})
	if err != nil {
		return err
	}
	if code != 0 {
		return exitCodeError{code: code}
	}
	return nil
}
