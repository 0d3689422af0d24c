package domain

// scarSteps is the reduced SCAR cleaning sequence. SCAR counts keep their
// literal meaning: a zero count is dropped outright rather than normalized,
// and a missing count is dropped too, because the source promises a count on
// every genuine presence record. Extracts often omit the year/month/day
// columns entirely, so the components are aligned to eventDate before the
// date filter runs.
func scarSteps() []Step {
	return []Step{
		latitudeBound(),
		geospatialIssueExclusion(),
		uncertaintySentinelExclusion(),
		rewrite("date-part-align", alignDateParts),
		missingDateExclusion(),
		dedupeByDateCoords(),
		uncertaintyCeiling(),
		keep("zero-count", func(o *Occurrence) bool {
			return o.IndividualCount == nil || *o.IndividualCount != 0
		}),
		keep("has-count", func(o *Occurrence) bool {
			return o.IndividualCount != nil
		}),
	}
}
