package coordcheck

import (
	"context"
	"log/slog"
	"testing"

	"github.com/antarcticbio/occurrence-etl/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestChecker() *Checker {
	return New(DefaultOptions(), slog.Default())
}

func checkOne(t *testing.T, o domain.Occurrence) domain.CoordinateFlags {
	t.Helper()
	flags, err := newTestChecker().Check(context.Background(), []domain.Occurrence{o})
	require.NoError(t, err)
	require.Len(t, flags, 1)
	return flags[0]
}

func occurrenceAt(lat, lon float64) domain.Occurrence {
	return domain.Occurrence{
		DecimalLatitude:  lat,
		DecimalLongitude: lon,
		Year:             2012, Month: 1, Day: 15,
	}
}

func TestChecker_PlausibleAntarcticPoint(t *testing.T) {
	f := checkOne(t, occurrenceAt(-64.123456, 62.654321))
	assert.Equal(t, domain.CoordinateFlags{}, f)
	assert.False(t, f.Dropworthy())
	assert.False(t, f.Suspicious())
}

func TestChecker_ImpossibleCoordinates(t *testing.T) {
	tests := []struct {
		name     string
		lat, lon float64
	}{
		{"latitude beyond pole", -95.0, 60.0},
		{"longitude beyond antimeridian", -64.0, 200.0},
		{"positive latitude overflow", 91.0, 0.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := checkOne(t, occurrenceAt(tt.lat, tt.lon))
			assert.True(t, f.Invalid)
			assert.True(t, f.Dropworthy())
		})
	}
}

func TestChecker_ZeroZero(t *testing.T) {
	f := checkOne(t, occurrenceAt(0, 0))
	assert.True(t, f.ZeroZero)
	assert.True(t, f.Suspicious())
	assert.False(t, f.Dropworthy(), "null island is review-only, not an auto-drop")
}

func TestChecker_CapitalProximity(t *testing.T) {
	// Stanley, Falkland Islands.
	f := checkOne(t, occurrenceAt(-51.69, -57.86))
	assert.True(t, f.Capital)
	assert.True(t, f.Suspicious())

	// ~100 km offshore is fine.
	f = checkOne(t, occurrenceAt(-52.60, -57.86))
	assert.False(t, f.Capital)
}

func TestChecker_CentroidProximity(t *testing.T) {
	// South Georgia territory centroid.
	f := checkOne(t, occurrenceAt(-54.43, -36.59))
	assert.True(t, f.Centroid)
	assert.True(t, f.Suspicious())
}

func TestChecker_DegreeMinutePattern(t *testing.T) {
	// Both decimals read as minutes (< .60, two digits).
	f := checkOne(t, occurrenceAt(-60.30, -45.15))
	assert.True(t, f.DegreeMinute)
	assert.True(t, f.Suspicious())

	// Ordinary GPS precision does not match the pattern.
	f = checkOne(t, occurrenceAt(-60.301234, -45.154321))
	assert.False(t, f.DegreeMinute)

	// One matching coordinate alone is not enough.
	f = checkOne(t, occurrenceAt(-60.30, -45.754321))
	assert.False(t, f.DegreeMinute)
}

func TestChecker_DuplicateLocationDate(t *testing.T) {
	a := occurrenceAt(-64.5, 62.1)
	b := occurrenceAt(-64.5, 62.1)
	c := occurrenceAt(-64.5, 62.1)
	c.Day = 16 // different date fields, not a duplicate
	d := occurrenceAt(-64.5, 62.1)

	flags, err := newTestChecker().Check(context.Background(), []domain.Occurrence{a, b, c, d})
	require.NoError(t, err)
	require.Len(t, flags, 4)
	assert.False(t, flags[0].DuplicateLocDate)
	assert.True(t, flags[1].DuplicateLocDate)
	assert.False(t, flags[2].DuplicateLocDate)
	assert.True(t, flags[3].DuplicateLocDate)
	assert.True(t, flags[1].Dropworthy())
}

func TestChecker_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestChecker().Check(ctx, []domain.Occurrence{occurrenceAt(-64.5, 62.1)})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestChecker_OptionsWidenRadii(t *testing.T) {
	// ~35 km from Stanley: outside the default radius, inside a widened one.
	point := occurrenceAt(-52.0, -57.86)

	f := checkOne(t, point)
	assert.False(t, f.Capital)

	wide := New(Options{CapitalRadiusKm: 50, CentroidRadiusKm: 1}, slog.Default())
	flags, err := wide.Check(context.Background(), []domain.Occurrence{point})
	require.NoError(t, err)
	assert.True(t, flags[0].Capital)
}
