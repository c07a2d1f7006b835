package anomctl

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

// buildRootCmd is a convenience for help-only fallbacks.
func buildRootCmd() *cobra.Command {
	return buildRootCmdWith(&Config{TorchChannel: "cpu", Addr: "127.0.0.1:8091", LogLvl: "info"})
}

// buildRootCmdWith constructs a Cobra command tree wired to the existing fn* actions.
func buildRootCmdWith(cfg *Config) *cobra.Command {
	root := &cobra.Command{
		Use:           "anomalyctl",
		Short:         "Manage verified model-weight artifacts and Python dependency sets",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Persistent flags -> Config
	root.PersistentFlags().String("weights-dir", cfg.WeightsDir, "Weights cache directory (defaults ANOMALYD_WEIGHTS_DIR)")
	root.PersistentFlags().String("registry", cfg.Registry, "Comma-separated registry YAML files (defaults ANOMALYD_REGISTRY)")
	root.PersistentFlags().String("ledger", cfg.LedgerPath, "Fetch-ledger path (default <weights-dir>/.ledger.db)")
	root.PersistentFlags().String("torch-channel", cfg.TorchChannel, "Torch wheel channel: cpu|cu118|cu121")
	root.PersistentFlags().String("addr", cfg.Addr, "Daemon address for status (defaults ANOMALYD_ADDR)")
	root.PersistentFlags().String("log-level", cfg.LogLvl, "Log level: debug|info|warn|error (defaults ANOMALYCTL_LOG_LEVEL)")
	root.PersistentFlags().BoolP("verbose", "v", cfg.Verbose, "Pass -v through to pip")
	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		readStr := func(name string, dst *string) {
			if f := cmd.InheritedFlags().Lookup(name); f != nil {
				if v := f.Value.String(); v != "" {
					*dst = v
				}
			}
		}
		readStr("weights-dir", &cfg.WeightsDir)
		readStr("registry", &cfg.Registry)
		readStr("ledger", &cfg.LedgerPath)
		readStr("torch-channel", &cfg.TorchChannel)
		readStr("addr", &cfg.Addr)
		readStr("log-level", &cfg.LogLvl)
		if f := cmd.InheritedFlags().Lookup("verbose"); f != nil {
			cfg.Verbose = f.Value.String() == "true"
		}
		SetLogLevel(cfg.LogLvl)
	}

	// install
	installCmd := &cobra.Command{
		Use:   "install [option]",
		Short: "Install Python dependency sets via pip",
		Example: "  anomalyctl install\n" +
			"  anomalyctl install core --torch-channel cu121\n" +
			"  anomalyctl install anomalib==1.1.0",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			option, _ := cmd.Flags().GetString("option")
			if option == "" && len(args) >= 1 {
				option = args[0]
			}
			return fnInstall(cfg, option)
		},
	}
	installCmd.Flags().String("option", "", "Dependency set: full|core|dev|loggers|notebooks|openvino or a literal specifier")
	root.AddCommand(installCmd)

	// weights group
	weightsCmd := &cobra.Command{Use: "weights", Short: "Manage the local weight cache", RunE: func(cmd *cobra.Command, args []string) error {
		return fmt.Errorf("weights requires a subcommand: fetch|list|info|verify|rm|path|history")
	}}
	weightsFetch := &cobra.Command{Use: "fetch <name>", Short: "Download and verify a weight", Example: "  anomalyctl weights fetch ViT-B/16", Args: cobra.ExactArgs(1), RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		return fnFetchWeight(cfg, args[0], force)
	}}
	weightsFetch.Flags().Bool("force", false, "Re-download even when the cached copy verifies")
	weightsList := &cobra.Command{Use: "list", Short: "List known weights and cache state", RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")
		return fnListWeights(cfg, asJSON)
	}}
	weightsList.Flags().Bool("json", false, "Emit JSON")
	weightsInfo := &cobra.Command{Use: "info <name>", Short: "Show one weight as JSON", Args: cobra.ExactArgs(1), RunE: func(cmd *cobra.Command, args []string) error {
		return fnWeightInfo(cfg, args[0])
	}}
	weightsVerify := &cobra.Command{Use: "verify <name>", Short: "Re-hash a cached weight against its checksum", Args: cobra.ExactArgs(1), RunE: func(cmd *cobra.Command, args []string) error {
		return fnVerifyWeight(cfg, args[0])
	}}
	weightsRm := &cobra.Command{Use: "rm <name>", Aliases: []string{"evict"}, Short: "Remove a weight from the cache", Args: cobra.ExactArgs(1), RunE: func(cmd *cobra.Command, args []string) error {
		return fnEvictWeight(cfg, args[0])
	}}
	weightsPath := &cobra.Command{Use: "path <name>", Short: "Print the cached file path", Args: cobra.ExactArgs(1), RunE: func(cmd *cobra.Command, args []string) error {
		return fnWeightPath(cfg, args[0])
	}}
	weightsHistory := &cobra.Command{Use: "history", Short: "Print recent fetch-ledger events", RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		return fnHistory(cfg, limit)
	}}
	weightsHistory.Flags().Int("limit", 20, "Maximum events to print")
	weightsCmd.AddCommand(weightsFetch, weightsList, weightsInfo, weightsVerify, weightsRm, weightsPath, weightsHistory)
	root.AddCommand(weightsCmd)

	// status
	statusCmd := &cobra.Command{Use: "status", Short: "Query the daemon status endpoint", RunE: func(cmd *cobra.Command, args []string) error {
		waitS, _ := cmd.Flags().GetInt("wait")
		return fnStatus(cfg, time.Duration(waitS)*time.Second)
	}}
	statusCmd.Flags().Int("wait", 0, "Wait up to N seconds for the daemon to become ready")
	root.AddCommand(statusCmd)

	// completion command
	completionCmd := &cobra.Command{Use: "completion", Short: "Generate the autocompletion script for the specified shell"}
	completionCmd.AddCommand(&cobra.Command{Use: "bash", Short: "Bash completion", RunE: func(cmd *cobra.Command, args []string) error { return root.GenBashCompletion(os.Stdout) }})
	completionCmd.AddCommand(&cobra.Command{Use: "zsh", Short: "Zsh completion", RunE: func(cmd *cobra.Command, args []string) error { return root.GenZshCompletion(os.Stdout) }})
	completionCmd.AddCommand(&cobra.Command{Use: "fish", Short: "Fish completion", RunE: func(cmd *cobra.Command, args []string) error { return root.GenFishCompletion(os.Stdout, true) }})
	completionCmd.AddCommand(&cobra.Command{Use: "powershell", Short: "PowerShell completion", RunE: func(cmd *cobra.Command, args []string) error { return root.GenPowerShellCompletionWithDesc(os.Stdout) }})
	root.AddCommand(completionCmd)

	return root
}
