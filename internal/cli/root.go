package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/kartikahlawat/Taks-manager/internal/config"
	"github.com/kartikahlawat/Taks-manager/internal/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// rootOptions holds flags that do not map one-to-one onto config keys.
type rootOptions struct {
	configPath  string
	noLog       bool
	plain       bool
	printConfig bool
}

// NewRootCommand builds the taskmanager command. Each call returns a fresh
// command with its own flag set and viper instance.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "taskmanager",
		Short: "Live terminal dashboard of CPU, memory, disk, network and processes",
		Long: `taskmanager samples this machine once per interval and shows CPU, memory,
disk and network usage with recent history, plus the busiest processes.
Each sample is also appended to a performance log.

Press q or Ctrl+C to quit.`,
		Args:          cobra.NoArgs,
		Version:       formatVersion(version),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoot(cmd, v, opts)
		},
	}
	cmd.SetVersionTemplate(versionTemplate())

	flags := cmd.Flags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default: ./.taskmanager.yaml, then ~/.config/taskmanager/config.yaml)")
	flags.Duration("interval", 0, "time between samples (e.g., 1s, 500ms)")
	flags.Int("top", 0, "number of processes to show")
	flags.Int("history", 0, "number of samples kept for graphs")
	flags.String("log-file", "", "performance log path")
	flags.String("log-format", "", "performance log format: text, json or sqlite")
	flags.BoolVar(&opts.noLog, "no-log", false, "do not write the performance log")
	flags.BoolVar(&opts.plain, "plain", false, "print one line per sample instead of the dashboard")
	flags.BoolVar(&opts.printConfig, "print-config", false, "print the effective config as YAML and exit")

	bindFlags(v, cmd)
	return cmd
}

// flagKeys maps flag names to the config keys they override.
var flagKeys = map[string]string{
	"interval":   "interval",
	"top":        "top_processes",
	"history":    "history_size",
	"log-file":   "log.path",
	"log-format": "log.format",
}

// bindFlags binds flags into viper. Unchanged flags never override the
// config file or environment.
func bindFlags(v *viper.Viper, cmd *cobra.Command) {
	for flag, key := range flagKeys {
		_ = v.BindPFlag(key, cmd.Flags().Lookup(flag))
	}
}

func runRoot(cmd *cobra.Command, v *viper.Viper, opts *rootOptions) error {
	if opts.noLog {
		v.Set("log.enabled", false)
	}
	if opts.plain {
		v.Set("display.mode", config.DisplayPlain)
	}

	cfg, _, err := config.Load(opts.configPath, v)
	if err != nil {
		return err
	}

	if opts.printConfig {
		return printConfig(cmd.OutOrStdout(), cfg)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return newRunner(cfg, cmd.OutOrStdout()).run(ctx)
}

func printConfig(w io.Writer, cfg *config.Config) error {
	out, err := cfg.YAML()
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Couldn't render the config",
			"")
	}
	_, err = w.Write(out)
	return err
}

// Execute runs the root command and exits with 1 on failure.
func Execute() {
	cmd := NewRootCommand()
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
