// Package domain models crabeater seal (Lobodon carcinophaga) occurrence
// records and the rule library that cleans them.
//
// # Data Sources
//
// Records are downloaded from two biodiversity aggregators: GBIF (the Global
// Biodiversity Information Facility) and the SCAR Antarctic biodiversity
// portal. Both publish Darwin Core fields, but with different quirks, so each
// source gets its own ordered cleaning chain built from a shared rule library
// (see ChainFor).
//
// # Field Conventions
//
// Dates:
//
//	eventDate arrives in several ISO-ish layouts and may be absent, in which
//	case it is reconstructed from year/month/day when those are complete. Bare
//	years or year-months are treated as absent; they cannot yield a full
//	calendar day. One historical dataset (the Belgian Antarctic expedition)
//	stores only a day-month eventTime like "15-Mar"; its eventDate is rebuilt
//	from the fixed expedition year.
//
// Counts:
//
//	GBIF uses individualCount = 0 as a sentinel for "presence reported without
//	a count"; it is normalized to 1. SCAR promises a real count on every
//	presence record, so zero or missing counts are dropped instead.
//
// Coordinate uncertainty:
//
//	coordinateUncertaintyInMeters carries provider placeholder values (301,
//	3036, 999, 9999) that mean "unknown" rather than a measurement; those and
//	anything above 10 km are excluded.
//
// Free text:
//
//	occurrenceRemarks is scanned for death reports, admitted-approximate
//	coordinates, and questioned identifications. All text matching is
//	case-insensitive, and an absent field never excludes a record.
//
// # Deduplication
//
// Two records sharing (eventDate, decimalLatitude, decimalLongitude) are the
// same observation; the one with the lowest input row id survives. A second,
// looser pass on location plus date fields runs inside the coordinate
// validator.
package domain
