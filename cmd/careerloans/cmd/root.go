package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/rustyeddy/careerloans/config"
	"github.com/rustyeddy/careerloans/internal/logging"
)

const serviceName = "careerloans"

var (
	cfgFile  string
	logLevel string
	logFile  string
	envFile  string

	logCloser io.Closer
)

var rootCmd = &cobra.Command{
	Use:   "careerloans",
	Short: "Amortizing loans for a simulated space program",
	Long: `Careerloans runs a loan ledger against a simulation clock that can jump
by months at a time.

It provides tools for:
  - Quoting loans from a reputation score
  - Running scripted games that borrow, warp time and pay off early
  - Saving and restoring the game to a file, SQLite or Redis
  - Querying the payment journal`,
	SilenceUsage:      true,
	PersistentPreRunE: setupEnv,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnFinalize(closeLog)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default $CAREERLOANS_CONFIG or built-in defaults)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "also write logs to this rotated file")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "load environment from this file (default .env if present)")
}

func setupEnv(cmd *cobra.Command, args []string) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return fmt.Errorf("load env file: %w", err)
		}
	} else {
		_ = godotenv.Load()
	}
	if cfgFile == "" {
		cfgFile = os.Getenv("CAREERLOANS_CONFIG")
	}
	return nil
}

// closeLog releases the log file once a command finishes, whether or not
// it failed.
func closeLog() {
	if logCloser == nil {
		return
	}
	if err := logCloser.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "close log: %v\n", err)
	}
	logCloser = nil
}

// loadConfig reads path, or the --config file, or the defaults, then applies
// environment and flag overrides.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		path = cfgFile
	}

	var cfg *config.Config
	if path == "" {
		cfg = config.Default()
	} else {
		var err error
		cfg, err = config.LoadFromFile(path)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
	}

	if v := os.Getenv("CAREERLOANS_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("CAREERLOANS_REDIS_ADDR"); v != "" {
		cfg.Store.RedisAddr = v
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if logFile != "" {
		cfg.Log.File = logFile
	}
	return cfg, nil
}

func setupLogger(cfg *config.Config) (*slog.Logger, error) {
	logger, closer, err := logging.Setup(serviceName, cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("setup logging: %w", err)
	}
	logCloser = closer
	return logger, nil
}
