package playctl

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// buildRootCmd is a convenience for help-only fallbacks.
func buildRootCmd() *cobra.Command { return buildRootCmdWith(&Config{LogLvl: "info"}) }

// usageArgs wraps a cobra validator so arity mistakes count as usage errors.
func usageArgs(fn cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := fn(cmd, args); err != nil {
			return usageError{err: err}
		}
		return nil
	}
}

// buildRootCmdWith constructs the Cobra command tree wired to the fn* actions.
func buildRootCmdWith(cfg *Config) *cobra.Command {
	root := &cobra.Command{
		Use:           "playctl",
		Short:         "Manage the local LLM playground: runtime setup, models, corpus, and chat",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err: err}
	})

	// Persistent flags -> Config
	root.PersistentFlags().String("config", cfg.ConfigPath, "Path to playd config file (defaults PLAYCTL_CONFIG)")
	root.PersistentFlags().String("log-level", cfg.LogLvl, "Log level: debug|info|warn|error (defaults PLAYCTL_LOG_LEVEL or info)")
	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if f := cmd.InheritedFlags().Lookup("config"); f != nil {
			if v := f.Value.String(); v != "" {
				cfg.ConfigPath = v
			}
		}
		if f := cmd.InheritedFlags().Lookup("log-level"); f != nil {
			if v := f.Value.String(); v != "" {
				cfg.LogLvl = v
			}
		}
		SetLogLevel(cfg.LogLvl)
	}

	// setup group
	setupCmd := &cobra.Command{Use: "setup", Short: "Prepare the host for the playground", RunE: func(cmd *cobra.Command, args []string) error {
		return usageError{err: fmt.Errorf("setup requires a subcommand: doctor|install")}
	}}
	setupDoctor := &cobra.Command{Use: "doctor", Short: "Check runtime binary, service, API, data dir, and index", Example: "  playctl setup doctor", RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadSettings(cfg)
		if err != nil {
			return err
		}
		return fnSetupDoctor(settings)
	}}
	setupInstall := &cobra.Command{Use: "install", Short: "Install the runtime package and enable its service", Example: "  playctl setup install", RunE: func(cmd *cobra.Command, args []string) error {
		return fnSetupInstall()
	}}
	setupCmd.AddCommand(setupDoctor, setupInstall)
	root.AddCommand(setupCmd)

	pullCmd := &cobra.Command{Use: "pull <model[:tag]>", Short: "Download a model into the runtime", Example: "  playctl pull qwen2.5:3b", Args: usageArgs(cobra.ExactArgs(1)), RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadSettings(cfg)
		if err != nil {
			return err
		}
		return fnPull(settings, args[0])
	}}
	root.AddCommand(pullCmd)

	runCmd := &cobra.Command{Use: "run [model]", Short: "Start an interactive chat session", Example: "  playctl run\n  playctl run qwen2.5:3b", Args: usageArgs(cobra.MaximumNArgs(1)), RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadSettings(cfg)
		if err != nil {
			return err
		}
		model := ""
		if len(args) == 1 {
			model = args[0]
		}
		return fnRun(settings, model)
	}}
	root.AddCommand(runCmd)

	fetchCmd := &cobra.Command{Use: "fetch <story-id>...", Short: "Download stories into the data dir", Example: "  playctl fetch 123456789", Args: usageArgs(cobra.MinimumNArgs(1)), RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadSettings(cfg)
		if err != nil {
			return err
		}
		return fnFetch(settings, args)
	}}
	root.AddCommand(fetchCmd)

	indexCmd := &cobra.Command{Use: "index [files...]", Short: "Split, embed, and store documents in the vector index", Example: "  playctl index\n  playctl index notes.txt", RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadSettings(cfg)
		if err != nil {
			return err
		}
		return fnIndex(settings, args)
	}}
	root.AddCommand(indexCmd)

	askCmd := &cobra.Command{Use: "ask <question>", Short: "Answer a question from the indexed documents", Example: "  playctl ask \"who is the main character?\"", Args: usageArgs(cobra.MinimumNArgs(1)), RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadSettings(cfg)
		if err != nil {
			return err
		}
		return fnAsk(settings, strings.Join(args, " "))
	}}
	root.AddCommand(askCmd)

	modelsCmd := &cobra.Command{Use: "models", Short: "List models installed in the runtime", RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadSettings(cfg)
		if err != nil {
			return err
		}
		return fnModels(settings)
	}}
	root.AddCommand(modelsCmd)

	return root
}
