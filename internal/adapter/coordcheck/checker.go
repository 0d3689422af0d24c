// Package coordcheck implements the coordinate validation capability consumed
// by the pipeline: geometric validity, provider-default positions (capitals and
// centroids), degree-minute transcription patterns, and location+date
// duplicates.
package coordcheck

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/antarcticbio/occurrence-etl/internal/domain"
)

// Options tunes the proximity checks.
type Options struct {
	// CapitalRadiusKm flags coordinates within this distance of a reference
	// capital city.
	CapitalRadiusKm float64
	// CentroidRadiusKm flags coordinates within this distance of a country or
	// territory centroid.
	CentroidRadiusKm float64
}

// DefaultOptions returns the conventional radii: 10 km around capitals, 1 km
// around centroids.
func DefaultOptions() Options {
	return Options{CapitalRadiusKm: 10, CentroidRadiusKm: 1}
}

// Checker implements domain.CoordinateValidator against embedded reference
// tables.
type Checker struct {
	opts   Options
	logger *slog.Logger
}

// New creates a Checker.
func New(opts Options, logger *slog.Logger) *Checker {
	if opts.CapitalRadiusKm <= 0 {
		opts.CapitalRadiusKm = DefaultOptions().CapitalRadiusKm
	}
	if opts.CentroidRadiusKm <= 0 {
		opts.CentroidRadiusKm = DefaultOptions().CentroidRadiusKm
	}
	return &Checker{opts: opts, logger: logger}
}

// dupKey groups records by position and date fields for the secondary
// duplicate pass. It is looser than the chain's exact eventDate key: records
// from the same day at the same spot collapse even when their timestamps
// differ.
type dupKey struct {
	lat, lon         float64
	year, month, day int
}

// Check flags each record, index-aligned with the input. It returns an error
// only when the capability itself fails (here: cancellation); per-record
// anomalies are reported through the flags.
func (c *Checker) Check(ctx context.Context, records []domain.Occurrence) ([]domain.CoordinateFlags, error) {
	flags := make([]domain.CoordinateFlags, len(records))
	seen := make(map[dupKey]bool, len(records))

	for i := range records {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("coordinate check interrupted: %w", err)
		}

		o := &records[i]
		lat, lon := o.DecimalLatitude, o.DecimalLongitude

		f := domain.CoordinateFlags{}
		f.Invalid = !validCoordinate(lat, lon)
		if f.Invalid {
			c.logger.Debug("impossible coordinates", "row_id", o.RowID, "lat", lat, "lon", lon)
		} else {
			f.ZeroZero = lat == 0 && lon == 0
			f.Capital = c.nearAny(lat, lon, capitals, c.opts.CapitalRadiusKm)
			f.Centroid = c.nearAny(lat, lon, centroids, c.opts.CentroidRadiusKm)
			f.DegreeMinute = looksDegreeMinute(lat) && looksDegreeMinute(lon)

			k := dupKey{lat: lat, lon: lon, year: o.Year, month: o.Month, day: o.Day}
			if seen[k] {
				f.DuplicateLocDate = true
			} else {
				seen[k] = true
			}
		}
		flags[i] = f
	}

	return flags, nil
}

func validCoordinate(lat, lon float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lon) || math.IsInf(lat, 0) || math.IsInf(lon, 0) {
		return false
	}
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

func (c *Checker) nearAny(lat, lon float64, points []refPoint, radiusKm float64) bool {
	for _, p := range points {
		if haversineKm(lat, lon, p.lat, p.lon) <= radiusKm {
			return true
		}
	}
	return false
}

// looksDegreeMinute reports whether a coordinate's decimal part reads like
// misplaced minutes: a two-decimal fraction strictly below 0.60. A pair where
// both latitude and longitude show the pattern suggests the recorder wrote
// degrees and minutes into a decimal field.
func looksDegreeMinute(v float64) bool {
	frac := math.Abs(v) - math.Floor(math.Abs(v))
	if frac <= 0 || frac >= 0.60 {
		return false
	}
	scaled := frac * 100
	return math.Abs(scaled-math.Round(scaled)) < 1e-6
}

const earthRadiusKm = 6371.0

func haversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	const degToRad = math.Pi / 180
	dLat := (lat2 - lat1) * degToRad
	dLon := (lon2 - lon1) * degToRad
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*degToRad)*math.Cos(lat2*degToRad)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusKm * math.Asin(math.Sqrt(a))
}
