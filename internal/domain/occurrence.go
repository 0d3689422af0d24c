package domain

import (
	"slices"
	"strconv"
	"time"
)

// Source identifies which biodiversity aggregator a batch of records came from.
// The two sources publish overlapping but not identical field sets and require
// different cleaning rule lists (see ChainFor).
type Source string

const (
	SourceGBIF Source = "GBIF"
	SourceSCAR Source = "SCAR"
)

// Occurrence represents one reported sighting of the species at a place and
// time. Field names follow the Darwin Core terms used by both aggregators.
// Optional numeric fields are pointers so a stored zero stays distinguishable
// from an absent value; optional text fields use "" for absent; EventDate uses
// the zero time for absent; Year/Month/Day use 0 for absent.
type Occurrence struct {
	// RowID is the input ordinal assigned by the loader. It decides which
	// record survives when several share a deduplication key.
	RowID int

	Species          string
	OccurrenceStatus string
	BasisOfRecord    string

	DecimalLatitude  float64
	DecimalLongitude float64

	CoordinateUncertaintyM *float64
	HasGeospatialIssues    bool

	EventDate time.Time
	EventTime string
	Year      int
	Month     int
	Day       int

	IndividualCount *int

	OccurrenceRemarks string
	CollectionCode    string
	SamplingProtocol  string
	DatasetKey        string
	Publisher         string
	Issue             string

	// Extras holds input columns outside the modeled field set. They pass
	// through the pipeline untouched and are subject to the same all-absent
	// column pruning as the modeled fields.
	Extras map[string]string
}

// Column describes one serializable field of an Occurrence: its CSV header
// name, whether a given record carries a value for it, and how that value is
// rendered.
type Column struct {
	Name    string
	Present func(o *Occurrence) bool
	Value   func(o *Occurrence) string
}

// Columns returns the modeled column registry in output order. The same
// registry drives column pruning and CSV serialization so the two can never
// disagree about what a column is called or when it counts as present.
func Columns() []Column {
	return []Column{
		strColumn("species", func(o *Occurrence) string { return o.Species }),
		strColumn("occurrenceStatus", func(o *Occurrence) string { return o.OccurrenceStatus }),
		strColumn("basisOfRecord", func(o *Occurrence) string { return o.BasisOfRecord }),
		{
			Name:    "decimalLatitude",
			Present: func(*Occurrence) bool { return true },
			Value:   func(o *Occurrence) string { return formatFloat(o.DecimalLatitude) },
		},
		{
			Name:    "decimalLongitude",
			Present: func(*Occurrence) bool { return true },
			Value:   func(o *Occurrence) string { return formatFloat(o.DecimalLongitude) },
		},
		{
			Name:    "coordinateUncertaintyInMeters",
			Present: func(o *Occurrence) bool { return o.CoordinateUncertaintyM != nil },
			Value: func(o *Occurrence) string {
				if o.CoordinateUncertaintyM == nil {
					return ""
				}
				return formatFloat(*o.CoordinateUncertaintyM)
			},
		},
		{
			Name:    "hasGeospatialIssues",
			Present: func(*Occurrence) bool { return true },
			Value:   func(o *Occurrence) string { return strconv.FormatBool(o.HasGeospatialIssues) },
		},
		{
			Name:    "eventDate",
			Present: func(o *Occurrence) bool { return !o.EventDate.IsZero() },
			Value: func(o *Occurrence) string {
				if o.EventDate.IsZero() {
					return ""
				}
				return o.EventDate.Format(eventDateOutputLayout)
			},
		},
		strColumn("eventTime", func(o *Occurrence) string { return o.EventTime }),
		intColumn("year", func(o *Occurrence) int { return o.Year }),
		intColumn("month", func(o *Occurrence) int { return o.Month }),
		intColumn("day", func(o *Occurrence) int { return o.Day }),
		{
			Name:    "individualCount",
			Present: func(o *Occurrence) bool { return o.IndividualCount != nil },
			Value: func(o *Occurrence) string {
				if o.IndividualCount == nil {
					return ""
				}
				return strconv.Itoa(*o.IndividualCount)
			},
		},
		strColumn("occurrenceRemarks", func(o *Occurrence) string { return o.OccurrenceRemarks }),
		strColumn("collectionCode", func(o *Occurrence) string { return o.CollectionCode }),
		strColumn("samplingProtocol", func(o *Occurrence) string { return o.SamplingProtocol }),
		strColumn("datasetKey", func(o *Occurrence) string { return o.DatasetKey }),
		strColumn("publisher", func(o *Occurrence) string { return o.Publisher }),
		strColumn("issue", func(o *Occurrence) string { return o.Issue }),
	}
}

func strColumn(name string, get func(o *Occurrence) string) Column {
	return Column{
		Name:    name,
		Present: func(o *Occurrence) bool { return get(o) != "" },
		Value:   get,
	}
}

func intColumn(name string, get func(o *Occurrence) int) Column {
	return Column{
		Name:    name,
		Present: func(o *Occurrence) bool { return get(o) != 0 },
		Value: func(o *Occurrence) string {
			v := get(o)
			if v == 0 {
				return ""
			}
			return strconv.Itoa(v)
		},
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// PruneColumns returns the modeled columns that at least one record carries a
// value for, in registry order. Columns absent for every surviving record are
// dropped from the output entirely.
func PruneColumns(records []Occurrence) []Column {
	var kept []Column
	for _, col := range Columns() {
		for i := range records {
			if col.Present(&records[i]) {
				kept = append(kept, col)
				break
			}
		}
	}
	return kept
}

// PruneExtras returns the passthrough column names with at least one non-empty
// value across the batch. Extras carry no input ordering, so the result is
// sorted for deterministic output.
func PruneExtras(records []Occurrence) []string {
	seen := map[string]bool{}
	for i := range records {
		for name, v := range records[i].Extras {
			if v != "" {
				seen[name] = true
			}
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
