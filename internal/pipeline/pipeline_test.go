package pipeline_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/antarcticbio/occurrence-etl/internal/domain"
	"github.com/antarcticbio/occurrence-etl/internal/observability"
	"github.com/antarcticbio/occurrence-etl/internal/pipeline"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- mocks ---

type stubLoader struct {
	records []domain.Occurrence
	skipped int
	err     error
}

func (s *stubLoader) Load(context.Context) ([]domain.Occurrence, int, error) {
	return s.records, s.skipped, s.err
}

type stubValidator struct {
	flags []domain.CoordinateFlags
	err   error
}

func (s *stubValidator) Check(_ context.Context, records []domain.Occurrence) ([]domain.CoordinateFlags, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.flags != nil {
		return s.flags, nil
	}
	return make([]domain.CoordinateFlags, len(records)), nil
}

type stubWriter struct {
	calls   int
	written []domain.Occurrence
	columns []domain.Column
	extras  []string
	err     error
}

func (s *stubWriter) Write(_ context.Context, records []domain.Occurrence, columns []domain.Column, extras []string) error {
	s.calls++
	s.written = records
	s.columns = columns
	s.extras = extras
	return s.err
}

func newTestMetrics() *observability.Metrics {
	// Use an unregistered set to avoid "already registered" panics in tests.
	return observability.NewMetricsForTesting()
}

func cleanRecord(rowID int) domain.Occurrence {
	return domain.Occurrence{
		RowID:            rowID,
		Species:          "Lobodon carcinophaga",
		OccurrenceStatus: "PRESENT",
		BasisOfRecord:    "HUMAN_OBSERVATION",
		DecimalLatitude:  -64.512345,
		DecimalLongitude: 60.0 + float64(rowID),
		EventDate:        time.Date(2012, 1, 15, 0, 0, 0, 0, time.UTC),
		Year:             2012, Month: 1, Day: 15,
		Publisher: "Australian Antarctic Data Centre",
	}
}

func newPipeline(loader *stubLoader, validator *stubValidator, writer *stubWriter) *pipeline.Pipeline {
	return pipeline.New(domain.SourceGBIF, loader, domain.ChainFor(domain.SourceGBIF),
		validator, writer, slog.Default(), newTestMetrics())
}

// --- tests ---

func TestPipeline_Run_HappyPath(t *testing.T) {
	frozen := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
	domain.SetClock(clockwork.NewFakeClockAt(frozen))
	t.Cleanup(func() { domain.SetClock(nil) })

	dirty := cleanRecord(3)
	dirty.DecimalLatitude = -12.0 // dropped by the latitude bound

	loader := &stubLoader{records: []domain.Occurrence{cleanRecord(1), cleanRecord(2), dirty}, skipped: 4}
	writer := &stubWriter{}

	report, err := newPipeline(loader, &stubValidator{}, writer).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, report.Read)
	assert.Equal(t, 4, report.SkippedRows)
	assert.Equal(t, 2, report.Written)
	assert.Equal(t, domain.SourceGBIF, report.Source)
	assert.NotEmpty(t, report.RunID)
	assert.Equal(t, frozen, report.FinishedAt)

	assert.Equal(t, 1, writer.calls)
	assert.Len(t, writer.written, 2)
	assert.NotEmpty(t, writer.columns)
}

func TestPipeline_Run_LoaderErrorAborts(t *testing.T) {
	loader := &stubLoader{err: errors.New("no such file")}
	writer := &stubWriter{}

	_, err := newPipeline(loader, &stubValidator{}, writer).Run(context.Background())
	require.Error(t, err)
	assert.Zero(t, writer.calls, "nothing may be written on abort")
}

func TestPipeline_Run_ValidatorUnavailableAborts(t *testing.T) {
	loader := &stubLoader{records: []domain.Occurrence{cleanRecord(1)}}
	writer := &stubWriter{}
	validator := &stubValidator{err: errors.New("reference data unavailable")}

	_, err := newPipeline(loader, validator, writer).Run(context.Background())
	require.Error(t, err)
	assert.ErrorContains(t, err, "coordinate validation")
	assert.Zero(t, writer.calls, "nothing may be written on abort")
}

func TestPipeline_Run_DropsFlaggedRecords(t *testing.T) {
	loader := &stubLoader{records: []domain.Occurrence{cleanRecord(1), cleanRecord(2), cleanRecord(3)}}
	writer := &stubWriter{}
	validator := &stubValidator{flags: []domain.CoordinateFlags{
		{},
		{DuplicateLocDate: true},
		{Capital: true}, // suspicious: surfaced, not dropped
	}}

	report, err := newPipeline(loader, validator, writer).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, report.DroppedByValidator)
	assert.Equal(t, 2, report.Written)
	assert.Equal(t, map[string]int{"duplicate_loc_date": 1, "capital": 1}, report.FlagCounts)

	rowIDs := make([]int, len(writer.written))
	for i, o := range writer.written {
		rowIDs[i] = o.RowID
	}
	assert.Equal(t, []int{1, 3}, rowIDs)
}

func TestPipeline_Run_VerificationFailureAborts(t *testing.T) {
	// An empty chain lets an invariant-breaking record through to verification.
	bad := cleanRecord(1)
	bad.DecimalLatitude = -12.0

	loader := &stubLoader{records: []domain.Occurrence{bad}}
	writer := &stubWriter{}
	p := pipeline.New(domain.SourceGBIF, loader, domain.NewChain(),
		&stubValidator{}, writer, slog.Default(), newTestMetrics())

	_, err := p.Run(context.Background())
	require.Error(t, err)
	assert.ErrorContains(t, err, "verification")
	assert.Zero(t, writer.calls, "nothing may be written on abort")
}

func TestPipeline_Run_WriterErrorPropagates(t *testing.T) {
	loader := &stubLoader{records: []domain.Occurrence{cleanRecord(1)}}
	writer := &stubWriter{err: errors.New("disk full")}

	_, err := newPipeline(loader, &stubValidator{}, writer).Run(context.Background())
	require.Error(t, err)
	assert.ErrorContains(t, err, "disk full")
}

func TestPipeline_Run_MismatchedFlagCountAborts(t *testing.T) {
	loader := &stubLoader{records: []domain.Occurrence{cleanRecord(1), cleanRecord(2)}}
	writer := &stubWriter{}
	validator := &stubValidator{flags: []domain.CoordinateFlags{{}}}

	_, err := newPipeline(loader, validator, writer).Run(context.Background())
	require.Error(t, err)
	assert.Zero(t, writer.calls)
}

func TestPipeline_Run_CountsReconcile(t *testing.T) {
	records := []domain.Occurrence{cleanRecord(1), cleanRecord(2), cleanRecord(3), cleanRecord(4)}
	records[1].Publisher = ""        // chain drop
	records[3].OccurrenceRemarks = "found dead" // chain drop

	loader := &stubLoader{records: records}
	writer := &stubWriter{}

	report, err := newPipeline(loader, &stubValidator{}, writer).Run(context.Background())
	require.NoError(t, err)

	chainDropped := 0
	for _, s := range report.Steps {
		chainDropped += s.Dropped
	}
	assert.Equal(t, report.Read, report.Written+chainDropped+report.DroppedByValidator)
}
