package domain

import "context"

// CoordinateFlags is the per-record result of coordinate validation. Each
// field marks one anomaly class; a zero value means the coordinates passed
// every check.
type CoordinateFlags struct {
	// Invalid marks geometrically impossible coordinates.
	Invalid bool
	// ZeroZero marks records sitting exactly on the 0,0 null island point.
	ZeroZero bool
	// Capital marks coordinates within the capital-city radius of a reference
	// capital, a common provider default for unknown positions.
	Capital bool
	// Centroid marks coordinates near a country or territory centroid,
	// likewise a provider default.
	Centroid bool
	// DegreeMinute marks coordinate pairs whose decimals look like misplaced
	// minutes, suggesting a degree-minute transcription error.
	DegreeMinute bool
	// DuplicateLocDate marks second and later records sharing a location and
	// date-field combination, beyond the chain's exact eventDate dedup.
	DuplicateLocDate bool
}

// Dropworthy reports whether the record must be removed: impossible
// coordinates and secondary duplicates are never usable.
func (f CoordinateFlags) Dropworthy() bool {
	return f.Invalid || f.DuplicateLocDate
}

// Suspicious reports whether the record is flagged but plausible and should be
// surfaced for manual review rather than removed.
func (f CoordinateFlags) Suspicious() bool {
	return f.ZeroZero || f.Capital || f.Centroid || f.DegreeMinute
}

// Names lists the raised flags for logging and metrics labels.
func (f CoordinateFlags) Names() []string {
	var names []string
	if f.Invalid {
		names = append(names, "invalid")
	}
	if f.ZeroZero {
		names = append(names, "zero_zero")
	}
	if f.Capital {
		names = append(names, "capital")
	}
	if f.Centroid {
		names = append(names, "centroid")
	}
	if f.DegreeMinute {
		names = append(names, "degree_minute")
	}
	if f.DuplicateLocDate {
		names = append(names, "duplicate_loc_date")
	}
	return names
}

// CoordinateValidator flags geometrically invalid or anomalous coordinates.
// Implementations return one CoordinateFlags per input record, index-aligned.
// An error means the capability itself is unavailable and the run must abort
// without output; per-record problems are reported through flags, never
// through errors.
type CoordinateValidator interface {
	Check(ctx context.Context, records []Occurrence) ([]CoordinateFlags, error)
}
