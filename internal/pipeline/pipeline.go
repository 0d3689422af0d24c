// Package pipeline orchestrates one cleaning run: load, rule chain,
// coordinate validation, invariant verification, column pruning, write.
// Control flows strictly linearly; any stage error aborts the run before any
// output is written.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/antarcticbio/occurrence-etl/internal/domain"
	"github.com/antarcticbio/occurrence-etl/internal/observability"
	"github.com/google/uuid"
)

// RecordLoader reads the raw occurrence batch. It returns the records, the
// number of input rows skipped for unparseable coordinates, and a structural
// error if the input cannot be read at all.
type RecordLoader interface {
	Load(ctx context.Context) ([]domain.Occurrence, int, error)
}

// RecordWriter serializes the final batch with the given column set.
type RecordWriter interface {
	Write(ctx context.Context, records []domain.Occurrence, columns []domain.Column, extras []string) error
}

// Pipeline wires one source's stages together.
type Pipeline struct {
	source    domain.Source
	loader    RecordLoader
	chain     *domain.Chain
	validator domain.CoordinateValidator
	writer    RecordWriter
	logger    *slog.Logger
	metrics   *observability.Metrics
}

// New creates a Pipeline for a source with the given stages and observability.
func New(source domain.Source, loader RecordLoader, chain *domain.Chain, validator domain.CoordinateValidator, writer RecordWriter, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	return &Pipeline{
		source:    source,
		loader:    loader,
		chain:     chain,
		validator: validator,
		writer:    writer,
		logger:    logger,
		metrics:   metrics,
	}
}

// Report summarizes one completed run.
type Report struct {
	RunID  string
	Source domain.Source

	Read        int
	SkippedRows int
	Written     int

	Steps              []domain.StepResult
	FlagCounts         map[string]int
	DroppedByValidator int

	Duration   time.Duration
	FinishedAt time.Time
}

// Run executes the full cleaning sequence once. On error nothing has been
// written: the writer is the final stage and only runs after validation and
// verification succeed.
func (p *Pipeline) Run(ctx context.Context) (*Report, error) {
	start := time.Now()
	runID := uuid.NewString()
	logger := p.logger.With("run_id", runID, "source", string(p.source))

	records, skipped, err := p.loader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load %s records: %w", p.source, err)
	}
	p.metrics.RecordsRead.Add(float64(len(records)))
	p.metrics.RowsSkipped.Add(float64(skipped))
	logger.Info("records loaded", "records", len(records), "skipped_rows", skipped)

	cleaned, steps := p.chain.Apply(records)
	for _, s := range steps {
		if s.Dropped > 0 {
			p.metrics.RuleDrops.WithLabelValues(string(p.source), s.Name).Add(float64(s.Dropped))
			logger.Debug("rule applied", "rule", s.Name, "dropped", s.Dropped)
		}
	}
	logger.Info("rule chain applied", "survivors", len(cleaned), "dropped", len(records)-len(cleaned))

	final, flagCounts, validatorDrops, err := p.validate(ctx, logger, cleaned)
	if err != nil {
		return nil, err
	}

	if err := domain.VerifyCleaned(final, p.source); err != nil {
		return nil, fmt.Errorf("cleaned batch failed verification: %w", err)
	}

	columns := domain.PruneColumns(final)
	extras := domain.PruneExtras(final)

	if err := p.writer.Write(ctx, final, columns, extras); err != nil {
		return nil, fmt.Errorf("write %s output: %w", p.source, err)
	}
	p.metrics.RecordsWritten.Add(float64(len(final)))
	p.metrics.RunDuration.Observe(time.Since(start).Seconds())

	report := &Report{
		RunID:              runID,
		Source:             p.source,
		Read:               len(records),
		SkippedRows:        skipped,
		Written:            len(final),
		Steps:              steps,
		FlagCounts:         flagCounts,
		DroppedByValidator: validatorDrops,
		Duration:           time.Since(start),
		FinishedAt:         domain.Now(),
	}
	logger.Info("run complete",
		"read", report.Read,
		"written", report.Written,
		"validator_dropped", report.DroppedByValidator,
		"duration", report.Duration,
	)
	return report, nil
}

// validate runs the coordinate validator and applies its verdicts: dropworthy
// flags remove the record, suspicious flags are surfaced for review. The GBIF
// path logs each suspicious record individually for manual inspection; the
// SCAR path reports summary counts only.
func (p *Pipeline) validate(ctx context.Context, logger *slog.Logger, records []domain.Occurrence) ([]domain.Occurrence, map[string]int, int, error) {
	flags, err := p.validator.Check(ctx, records)
	if err != nil {
		return nil, nil, 0, fmt.Errorf("coordinate validation: %w", err)
	}
	if len(flags) != len(records) {
		return nil, nil, 0, fmt.Errorf("coordinate validation: got %d flag sets for %d records", len(flags), len(records))
	}

	flagCounts := map[string]int{}
	out := make([]domain.Occurrence, 0, len(records))
	dropped := 0

	for i := range records {
		f := flags[i]
		for _, name := range f.Names() {
			flagCounts[name]++
			p.metrics.ValidatorFlags.WithLabelValues(name).Inc()
		}

		if f.Dropworthy() {
			dropped++
			p.metrics.ValidatorDrops.Inc()
			continue
		}
		if f.Suspicious() && p.source == domain.SourceGBIF {
			logger.Warn("coordinates flagged for manual review",
				"row_id", records[i].RowID,
				"lat", records[i].DecimalLatitude,
				"lon", records[i].DecimalLongitude,
				"flags", f.Names(),
			)
		}
		out = append(out, records[i])
	}

	if len(flagCounts) > 0 {
		logger.Info("coordinate validation finished", "flag_counts", flagCounts, "dropped", dropped)
	}
	return out, flagCounts, dropped, nil
}
