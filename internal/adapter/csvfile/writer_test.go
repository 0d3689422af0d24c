package csvfile

import (
	"context"
	"encoding/csv"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/antarcticbio/occurrence-etl/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecords() []domain.Occurrence {
	count := 2
	return []domain.Occurrence{
		{
			RowID:            1,
			Species:          "Lobodon carcinophaga",
			OccurrenceStatus: "PRESENT",
			DecimalLatitude:  -64.5,
			DecimalLongitude: 62.1,
			EventDate:        time.Date(2012, 1, 15, 0, 0, 0, 0, time.UTC),
			Year:             2012, Month: 1, Day: 15,
			IndividualCount: &count,
			Extras:          map[string]string{"sex": "F"},
		},
		{
			RowID:            2,
			Species:          "Lobodon carcinophaga",
			OccurrenceStatus: "PRESENT",
			DecimalLatitude:  -65.25,
			DecimalLongitude: -60.75,
			EventDate:        time.Date(2009, 11, 3, 0, 0, 0, 0, time.UTC),
			Year:             2009, Month: 11, Day: 3,
		},
	}
}

func readBack(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriter_Write(t *testing.T) {
	records := sampleRecords()
	columns := domain.PruneColumns(records)
	extras := domain.PruneExtras(records)
	path := filepath.Join(t.TempDir(), "Cleaned_Data", "GBIF_cleaned.csv")

	w := NewWriter(path, slog.Default())
	require.NoError(t, w.Write(context.Background(), records, columns, extras))

	rows := readBack(t, path)
	require.Len(t, rows, 3)

	header := rows[0]
	assert.Contains(t, header, "species")
	assert.Contains(t, header, "eventDate")
	assert.Contains(t, header, "individualCount")
	assert.Contains(t, header, "sex")
	// Absent for every record, so pruned from the output entirely.
	assert.NotContains(t, header, "issue")
	assert.NotContains(t, header, "occurrenceRemarks")
	assert.NotContains(t, header, "coordinateUncertaintyInMeters")

	byName := func(row []string, name string) string {
		for i, h := range header {
			if h == name {
				return row[i]
			}
		}
		t.Fatalf("column %q not in header", name)
		return ""
	}
	assert.Equal(t, "-64.5", byName(rows[1], "decimalLatitude"))
	assert.Equal(t, "2012-01-15", byName(rows[1], "eventDate"))
	assert.Equal(t, "2", byName(rows[1], "individualCount"))
	assert.Equal(t, "F", byName(rows[1], "sex"))
	assert.Equal(t, "", byName(rows[2], "individualCount"))
	assert.Equal(t, "", byName(rows[2], "sex"))
}

func TestWriter_OverwritesWholesale(t *testing.T) {
	records := sampleRecords()
	columns := domain.PruneColumns(records)
	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, os.WriteFile(path, []byte("stale contents\n"), 0o644))

	w := NewWriter(path, slog.Default())
	require.NoError(t, w.Write(context.Background(), records, columns, nil))

	rows := readBack(t, path)
	assert.Len(t, rows, 3)
}

func TestWriter_NoPartialOutputOnFailure(t *testing.T) {
	// Using a regular file as the "directory" makes MkdirAll fail.
	base := filepath.Join(t.TempDir(), "blocked")
	require.NoError(t, os.WriteFile(base, []byte{}, 0o644))
	path := filepath.Join(base, "out.csv")

	records := sampleRecords()
	w := NewWriter(path, slog.Default())
	err := w.Write(context.Background(), records, domain.PruneColumns(records), nil)
	require.Error(t, err)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestWriter_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	path := filepath.Join(t.TempDir(), "out.csv")
	w := NewWriter(path, slog.Default())
	err := w.Write(ctx, sampleRecords(), nil, nil)
	require.Error(t, err)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}
