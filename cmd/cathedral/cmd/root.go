package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/Cathedral/internal/config"
	"github.com/OpenTraceLab/Cathedral/internal/logging"
)

// Version is the release reported by --version and the version command.
const Version = "0.1.0"

var (
	// Global flags
	verbose    bool
	configPath string
	logFile    string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "cathedral",
	Short: "Cathedral - a minimal schematic capture editor",
	Long: `Cathedral places resistors and capacitors on a canvas and joins their
terminals with grid-snapped Manhattan wires.

Examples:
  cathedral                           # Launch the editor window
  cathedral script build.cir          # Run console commands from a file
  cat build.cir | cathedral script    # ... or from stdin
  cathedral --log-level debug         # Verbose log pane and log file`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runGUI,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (debug level)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "settings file (default: user config dir)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "append log lines to this file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "minimum level: debug, info, warning, error")
}

// loadSettings resolves the settings file, then environment overrides, then
// command line flags.
func loadSettings(cmd *cobra.Command) (*config.AppConfig, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		if cfg == nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		// No usable config directory; carry on with defaults.
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}

	flags := cmd.Flags()
	if flags.Changed("log-file") {
		cfg.LogFile = logFile
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if verbose {
		cfg.LogLevel = logging.LevelDebug.String()
	}
	return cfg, nil
}

// openLogger builds the logger for cfg. A log file that cannot be opened is
// reported on stderr and skipped.
func openLogger(cfg *config.AppConfig, console io.Writer) (*logging.Logger, error) {
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	log := logging.New(console, level)
	if cfg.LogFile != "" {
		if err := log.Open(cfg.LogFile); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
		}
	}
	return log, nil
}
