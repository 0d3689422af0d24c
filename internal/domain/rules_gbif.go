package domain

// gbifSteps is the full GBIF cleaning sequence. Ordering notes: the two date
// backfills run before the missing-date and minimum-year filters, and count
// normalization runs before anything reads the count as a presence signal.
func gbifSteps() []Step {
	return []Step{
		keep("present-status", func(o *Occurrence) bool {
			return o.OccurrenceStatus == "PRESENT"
		}),
		latitudeBound(),
		keep("specimen-basis", func(o *Occurrence) bool {
			return o.BasisOfRecord != "PRESERVED_SPECIMEN" && o.BasisOfRecord != "FOSSIL_SPECIMEN"
		}),
		geospatialIssueExclusion(),
		uncertaintySentinelExclusion(),
		keep("known-publisher", func(o *Occurrence) bool {
			return o.Publisher != ""
		}),
		dropRemarkMatching("death-remark", deathRemarkRe),
		dropRemarkMatching("approximate-coordinates", approxCoordRe),
		keep("identical-coordinates", func(o *Occurrence) bool {
			return o.DecimalLatitude != o.DecimalLongitude
		}),
		rewrite("biologging-basis", reclassifyBioLogging),
		rewrite("zero-count-normalize", normalizeZeroCount),
		keep("low-precision-collection", func(o *Occurrence) bool {
			return o.CollectionCode == "" || !lowPrecisionCollectionRe.MatchString(o.CollectionCode)
		}),
		dropRemarkMatching("uncertain-identification", uncertainIDRe),
		keep("negated-longitude-issue", func(o *Occurrence) bool {
			return !hasIssueFlag(o.Issue, negatedLongitudeIssue)
		}),
		rewrite("expedition-date-backfill", backfillExpeditionDate),
		rewrite("date-part-backfill", backfillDateParts),
		missingDateExclusion(),
		keep("minimum-year", func(o *Occurrence) bool {
			return o.Year >= MinYear
		}),
		dedupeByDateCoords(),
		uncertaintyCeiling(),
	}
}
