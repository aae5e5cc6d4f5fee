package cmd

import (
	"fmt"
	"lga-distance/internal/adapters/distance"
	"lga-distance/internal/adapters/output"
	"lga-distance/internal/adapters/regions"
	"lga-distance/internal/config"
	"lga-distance/internal/platform/logging"
	"lga-distance/internal/platform/metrics"
	"lga-distance/internal/platform/obs"
	"lga-distance/internal/ports"
	"lga-distance/internal/services"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Compute the population-weighted average distance",
	Long: `Load the LGA table, resolve driving distances in batches, and write the
detail and summary tables named in the configuration.

Flags override environment variables, which override the INI file.`,
	Args: cobra.NoArgs,
	RunE: runWeightedDistance,
}

func init() {
	f := runCmd.Flags()
	f.String("provider", "", "distance provider (google, ors)")
	f.Int("batch-size", 0, "origins per distance-matrix request")
	f.String("input", "", "LGA input table (.csv or .xlsx)")
	f.String("output-lga", "", "detail table output path")
	f.String("output-summary", "", "summary table output path")
	f.String("state", "", `state filter ("Australia" keeps every state)`)
	f.String("log-level", "", "log level (debug, info, warn, error)")
	f.String("log-format", "", "log format (console, json)")
	f.String("metrics-textfile", "", "write Prometheus metrics to this file after the run")
}

// Composition root: wires concrete adapters behind ports and runs the pipeline once.
func runWeightedDistance(cmd *cobra.Command, args []string) error {
	foundEnv := config.LoadDotEnv(envFile)

	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	if !foundEnv {
		logger.Debug("No .env file found (using environment variables)", zap.String("path", envFile))
	}

	collector, err := metrics.NewRunCollector()
	if err != nil {
		return err
	}

	provider, err := newProvider(cfg, logger)
	if err != nil {
		return err
	}

	pipeline := &services.Pipeline{
		Loader: regions.NewFileRegionLoader(logger),
		Resolver: &services.DistanceResolver{
			Provider:  provider,
			BatchSize: cfg.GoogleMaps.BatchSize,
			Logger:    logger,
			Metrics:   collector,
		},
		Writer:  output.NewFileReportWriter(),
		Logger:  logger,
		Metrics: collector,
	}

	ctx := obs.WithRunID(cmd.Context())
	report, runErr := pipeline.Run(ctx, services.RunRequest{
		InputPath:   cfg.Files.Input,
		StateFilter: cfg.Destination.StateFilter,
		Destination: cfg.Destination.Coordinates(),
		DetailPath:  cfg.Files.OutputLGA,
		SummaryPath: cfg.Files.OutputWeightedAverage,
	})

	if err := collector.WriteTextfile(cfg.Metrics.Textfile); err != nil {
		logger.Warn("metrics export failed", zap.Error(err))
	}

	if runErr != nil {
		logger.Error("weighted distance run failed", zap.String("run_id", obs.RunID(ctx)), zap.Error(runErr))
		return runErr
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Population weighted average distance: %s km (%d LGAs, %d unavailable)\n",
		report.WeightedAverage.StringFixed(3), len(report.Rows), report.Unavailable)

	return nil
}

func newProvider(cfg *config.Config, logger *zap.Logger) (ports.DistanceMatrixProvider, error) {
	switch cfg.Provider {
	case config.ProviderORS:
		return distance.NewORSDistanceProvider(cfg.ORS.APIKey, cfg.ORS.BaseURL, logger)
	case config.ProviderGoogle:
		return distance.NewGoogleDistanceProvider(cfg.GoogleMaps.APIKey, logger)
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
	}
}
