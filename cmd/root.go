package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/tusharsircar95/GSQuantify-2016-JobScheduler/config"
	"github.com/tusharsircar95/GSQuantify-2016-JobScheduler/scheduler"
	"github.com/tusharsircar95/GSQuantify-2016-JobScheduler/stream"
)

var (
	configPath string
	inputPath  string
	outputPath string
	logLevel   string
	strict     bool
)

var rootCmd = &cobra.Command{
	Use:   "jobscheduler",
	Short: "Simulate a CPU job scheduler over a time-stamped command stream",
	Long: `jobscheduler consumes a line-oriented stream of cpus/job/assign/query
commands and emits one description line per assigned or queried job.
The stream is read from stdin unless --input is given.`,
	SilenceUsage: true,
	RunE:         run,
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "path to a YAML config file")
	rootCmd.Flags().StringVarP(&inputPath, "input", "i", "", "command stream path (default stdin)")
	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "output path (default stdout)")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.Flags().BoolVar(&strict, "strict", false, "abort on the first malformed command")
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(level)

	in := os.Stdin
	if cfg.Input != "" {
		f, err := os.Open(cfg.Input)
		if err != nil {
			return fmt.Errorf("opening input: %w", err)
		}
		defer f.Close()
		in = f
	}

	out := os.Stdout
	if cfg.Output != "" {
		f, err := os.Create(cfg.Output)
		if err != nil {
			return fmt.Errorf("opening output: %w", err)
		}
		defer f.Close()
		out = f
	}

	runner := stream.NewRunner(scheduler.New(), logger, cfg.Strict)
	return runner.Run(in, out)
}

// loadConfig merges the optional config file with any flags set
// explicitly on the command line; flags win.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("input") {
		cfg.Input = inputPath
	}
	if cmd.Flags().Changed("output") {
		cfg.Output = outputPath
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if cmd.Flags().Changed("strict") {
		cfg.Strict = strict
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
