// Package cli implements the taskmanager command-line interface.
//
// There is a single Cobra root command with no subcommands. It loads the
// config, builds the metric source, performance log and display, then hands
// them to a monitor.Scheduler that runs until interrupted.
//
// # Flag Handling
//
// Flags that correspond to config keys (--interval, --top, --history,
// --log-file, --log-format) are bound into viper, so they override the
// config file and TASKMANAGER_* environment variables only when given.
// --no-log and --plain are applied with viper.Set.
//
// # Exit Codes
//
// The command exits 0 after a clean shutdown (q, Ctrl+C or SIGTERM) and 1
// when the config is invalid or no metric can be read at startup.
// Structured errors are printed to stderr.
//
// # Display Selection
//
// display.mode "auto" uses the full-screen dashboard when stdout is a
// terminal and one line per sample otherwise.
package cli
