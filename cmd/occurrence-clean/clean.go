package main

import (
	"context"
	"fmt"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/antarcticbio/occurrence-etl/internal/adapter/coordcheck"
	"github.com/antarcticbio/occurrence-etl/internal/adapter/csvfile"
	"github.com/antarcticbio/occurrence-etl/internal/config"
	"github.com/antarcticbio/occurrence-etl/internal/domain"
	"github.com/antarcticbio/occurrence-etl/internal/observability"
	"github.com/antarcticbio/occurrence-etl/internal/pipeline"
)

var (
	inputPath string
	outputDir string
)

var gbifCmd = &cobra.Command{
	Use:   "gbif",
	Short: "clean a GBIF occurrence download",
	Example: `  # Clean a GBIF download into Cleaned_Data/GBIF_cleaned.csv
  $ occurrence-clean gbif --input raw/gbif_download.tsv`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runClean(cmd.Context(), domain.SourceGBIF)
	},
}

var scarCmd = &cobra.Command{
	Use:   "scar",
	Short: "clean a SCAR portal extract",
	Example: `  # Clean a SCAR extract into Cleaned_Data/SCAR_cleaned.csv
  $ occurrence-clean scar --input raw/scar_extract.csv`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runClean(cmd.Context(), domain.SourceSCAR)
	},
}

func init() {
	for _, cmd := range []*cobra.Command{gbifCmd, scarCmd} {
		cmd.Flags().StringVar(&inputPath, "input", "", "path to the raw occurrence file")
		cmd.Flags().StringVar(&outputDir, "output", "", "output directory (default from OUTPUT_DIR)")
		_ = cmd.MarkFlagRequired("input")
	}
}

// runClean assembles and runs one source's pipeline. The two sources are
// fully independent: each reads disjoint input and writes a disjoint output.
func runClean(ctx context.Context, source domain.Source) error {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(rootCmd.ErrOrStderr(), "failed to load config: %v\n", err)
		return err
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	dir := cfg.OutputDir
	if outputDir != "" {
		dir = outputDir
	}

	delimiter := cfg.GBIFDelimiter
	if source == domain.SourceSCAR {
		delimiter = cfg.SCARDelimiter
	}

	reader := csvfile.NewReader(inputPath, delimiter, logger)
	writer := csvfile.NewWriter(outputPath(dir, source), logger)
	validator := coordcheck.New(coordcheck.Options{
		CapitalRadiusKm:  cfg.CapitalRadiusKm,
		CentroidRadiusKm: cfg.CentroidRadiusKm,
	}, logger)

	p := pipeline.New(source, reader, domain.ChainFor(source), validator, writer, logger, metrics)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if _, err := p.Run(ctx); err != nil {
		logger.Error("cleaning run failed", "source", string(source), "error", err)
		return err
	}
	return nil
}

func outputPath(dir string, source domain.Source) string {
	return filepath.Join(dir, fmt.Sprintf("%s_cleaned.csv", source))
}
