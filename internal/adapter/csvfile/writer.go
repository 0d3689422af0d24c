package csvfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/antarcticbio/occurrence-etl/internal/domain"
)

// Writer serializes a cleaned batch to a CSV file. Output is written to a
// temporary file in the destination directory and renamed into place, so an
// aborted run never leaves a partial or corrupt CSV behind.
type Writer struct {
	path   string
	logger *slog.Logger
}

// NewWriter creates a Writer targeting the given output path.
func NewWriter(path string, logger *slog.Logger) *Writer {
	return &Writer{path: path, logger: logger}
}

// Write serializes the records using the pruned modeled columns followed by
// the surviving passthrough columns, header row first.
func (w *Writer) Write(ctx context.Context, records []domain.Occurrence, columns []domain.Column, extras []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Dir(w.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".occurrence-*.csv")
	if err != nil {
		return fmt.Errorf("create temp output: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if err := writeRows(tmp, records, columns, extras); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp output: %w", err)
	}
	if err := os.Rename(tmpName, w.path); err != nil {
		return fmt.Errorf("finalize output: %w", err)
	}

	w.logger.Info("wrote cleaned records",
		"path", w.path, "records", len(records), "columns", len(columns)+len(extras))
	return nil
}

func writeRows(f *os.File, records []domain.Occurrence, columns []domain.Column, extras []string) error {
	cw := csv.NewWriter(f)

	header := make([]string, 0, len(columns)+len(extras))
	for _, col := range columns {
		header = append(header, col.Name)
	}
	header = append(header, extras...)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	row := make([]string, len(header))
	for i := range records {
		o := &records[i]
		for j, col := range columns {
			row[j] = col.Value(o)
		}
		for j, name := range extras {
			row[len(columns)+j] = o.Extras[name]
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row %d: %w", o.RowID, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush output: %w", err)
	}
	return nil
}
