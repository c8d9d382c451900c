package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"pes-mcp/internal/config"
	"pes-mcp/internal/logging"
	"pes-mcp/internal/mcp"
)

var (
	// Version, Commit, and BuildDate are set at build time via ldflags.
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"

	verbose bool
	cfg     *config.AppConfig
)

var rootCmd = &cobra.Command{
	Use:   "pes-mcp",
	Short: "PES-MCP is a production efficiency what-if simulator",
	Long: `Replays historical production records under hypothetical defect, downtime and material shortage
conditions, then reports efficiency, anomalies, the dominant bottleneck and a short-term output forecast.

Without a subcommand it serves the Model Context Protocol over stdio.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, presets, err := loadEngine(cfg)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return mcp.NewServer(cfg, engine, presets, Version).Start(ctx)
	},
}

// setup loads the configuration and points the logger at the configured log directory.
func setup() error {
	if err := logging.Init(logging.Options{Verbose: verbose}); err != nil {
		return err
	}

	var err error
	cfg, err = config.Load()
	if err != nil {
		log.Error().Err(err).Msg("Failed to load configuration")
		return err
	}

	if err := logging.Init(logging.Options{Verbose: verbose, Dir: cfg.LogDir}); err != nil {
		return err
	}

	log.Info().
		Str("version", Version).
		Str("commit", Commit).
		Str("buildDate", BuildDate).
		Str("logDir", cfg.LogDir).
		Msg("PES-MCP starting")
	return nil
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.AddCommand(serveHTTPCmd, simulateCmd)
}
