// Package csvfile reads raw occurrence downloads and writes cleaned CSV
// output. GBIF ships tab-separated downloads, SCAR comma-separated ones; the
// delimiter is configurable per source.
package csvfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/antarcticbio/occurrence-etl/internal/domain"
)

// modeledHeaders maps lowercased input header names to the record fields the
// loader populates directly. Anything else lands in Extras.
var modeledHeaders = map[string]bool{
	"species":                       true,
	"occurrencestatus":              true,
	"basisofrecord":                 true,
	"decimallatitude":               true,
	"decimallongitude":              true,
	"coordinateuncertaintyinmeters": true,
	"hasgeospatialissues":           true,
	"eventdate":                     true,
	"eventtime":                     true,
	"year":                          true,
	"month":                         true,
	"day":                           true,
	"individualcount":               true,
	"occurrenceremarks":             true,
	"collectioncode":                true,
	"samplingprotocol":              true,
	"datasetkey":                    true,
	"publisher":                     true,
	"issue":                         true,
}

// Reader loads occurrence records from one delimited file.
type Reader struct {
	path   string
	comma  rune
	logger *slog.Logger
}

// NewReader creates a Reader for the given file and field delimiter.
func NewReader(path string, comma rune, logger *slog.Logger) *Reader {
	return &Reader{path: path, comma: comma, logger: logger}
}

// Load parses the whole file into memory. Rows without parseable coordinates
// are skipped and counted, not fatal, since every downstream stage keys on
// latitude/longitude. An unreadable or header-less file is a structural error
// and aborts the run.
func (r *Reader) Load(ctx context.Context) ([]domain.Occurrence, int, error) {
	f, err := os.Open(r.path)
	if err != nil {
		return nil, 0, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.Comma = r.comma
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	all, err := cr.ReadAll()
	if err != nil {
		return nil, 0, fmt.Errorf("parse %s: %w", r.path, err)
	}
	if len(all) == 0 {
		return nil, 0, fmt.Errorf("no header row in %s", r.path)
	}
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	header := all[0]
	records := make([]domain.Occurrence, 0, len(all)-1)
	skipped := 0

	for rowNum, row := range all[1:] {
		cells := rowFields(header, row)
		o, ok := parseRow(cells, rowNum+1)
		if !ok {
			skipped++
			r.logger.Debug("skipping row without parseable coordinates",
				"path", r.path, "line", rowNum+2)
			continue
		}
		records = append(records, o)
	}

	r.logger.Info("loaded occurrence records",
		"path", r.path, "records", len(records), "skipped_rows", skipped)
	return records, skipped, nil
}

// rowFields pairs header names with trimmed cell values, keyed by lowercased
// header name.
func rowFields(header, row []string) map[string]string {
	fields := make(map[string]string, len(header))
	for j, h := range header {
		if j >= len(row) {
			break
		}
		fields[strings.ToLower(strings.TrimSpace(h))] = strings.TrimSpace(row[j])
	}
	return fields
}

// parseRow builds one Occurrence. Returns ok=false when the coordinates are
// missing or unparseable.
func parseRow(cells map[string]string, rowID int) (domain.Occurrence, bool) {
	lat, okLat := parseFloatCell(cells["decimallatitude"])
	lon, okLon := parseFloatCell(cells["decimallongitude"])
	if !okLat || !okLon {
		return domain.Occurrence{}, false
	}

	o := domain.Occurrence{
		RowID:             rowID,
		Species:           cellValue(cells["species"]),
		OccurrenceStatus:  cellValue(cells["occurrencestatus"]),
		BasisOfRecord:     cellValue(cells["basisofrecord"]),
		DecimalLatitude:   lat,
		DecimalLongitude:  lon,
		EventDate:         domain.ParseEventDate(cellValue(cells["eventdate"])),
		EventTime:         cellValue(cells["eventtime"]),
		Year:              parseIntCell(cells["year"]),
		Month:             parseIntCell(cells["month"]),
		Day:               parseIntCell(cells["day"]),
		OccurrenceRemarks: cellValue(cells["occurrenceremarks"]),
		CollectionCode:    cellValue(cells["collectioncode"]),
		SamplingProtocol:  cellValue(cells["samplingprotocol"]),
		DatasetKey:        cellValue(cells["datasetkey"]),
		Publisher:         cellValue(cells["publisher"]),
		Issue:             cellValue(cells["issue"]),
	}

	if v, ok := parseFloatCell(cells["coordinateuncertaintyinmeters"]); ok {
		o.CoordinateUncertaintyM = &v
	}
	if v, ok := parseIntCellOpt(cells["individualcount"]); ok {
		o.IndividualCount = &v
	}
	switch strings.ToLower(cells["hasgeospatialissues"]) {
	case "true", "t", "1":
		o.HasGeospatialIssues = true
	}

	extras := map[string]string{}
	for name, v := range cells {
		if !modeledHeaders[name] && cellValue(v) != "" {
			extras[name] = v
		}
	}
	if len(extras) > 0 {
		o.Extras = extras
	}

	return o, true
}

// cellValue normalizes the provider null markers to the empty string.
func cellValue(s string) string {
	if s == "NA" || s == "\\N" {
		return ""
	}
	return s
}

func parseFloatCell(s string) (float64, bool) {
	s = cellValue(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// parseIntCell returns 0 for absent or malformed values, matching the
// record model's 0-means-absent convention for date components.
func parseIntCell(s string) int {
	v, ok := parseIntCellOpt(s)
	if !ok {
		return 0
	}
	return v
}

func parseIntCellOpt(s string) (int, bool) {
	s = cellValue(s)
	if s == "" {
		return 0, false
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v, true
	}
	// Some exports render integers as floats ("2009.0").
	if f, err := strconv.ParseFloat(s, 64); err == nil && f == float64(int(f)) {
		return int(f), true
	}
	return 0, false
}
