package domain

import (
	"time"
)

// eventDateOutputLayout is the canonical date form written to cleaned output.
const eventDateOutputLayout = "2006-01-02"

// eventDateLayouts lists the input forms accepted for eventDate. Only layouts
// that resolve a full calendar day are included: a bare year or year-month
// cannot produce consistent year/month/day fields, so such values are treated
// as absent and fall to the missing-date exclusion.
var eventDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
	"2006/01/02",
}

// ParseEventDate parses a raw eventDate cell. Returns the zero time for empty
// or malformed values; malformed dates never fail the pipeline, they exclude
// the record later.
func ParseEventDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range eventDateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t
		}
	}
	return time.Time{}
}

// belgianExpeditionYear is the season the Belgian Antarctic expedition logs
// cover. Their records carry only a day-month eventTime ("15-Mar"); the year
// is fixed by the expedition itself.
const belgianExpeditionYear = 2008

// expeditionTimeLayout matches the day-month form used in the expedition logs.
const expeditionTimeLayout = "2-Jan"

// backfillExpeditionDate reconstructs eventDate for Belgian expedition records
// from the fixed expedition year plus the day-month eventTime. It is the only
// rule that constructs a date rather than validating one, and it fires only
// for records identifiable by the expedition's collection code.
func backfillExpeditionDate(o Occurrence) Occurrence {
	if !o.EventDate.IsZero() || o.CollectionCode == "" || o.EventTime == "" {
		return o
	}
	if !belgianExpeditionRe.MatchString(o.CollectionCode) {
		return o
	}
	dm, err := time.ParseInLocation(expeditionTimeLayout, o.EventTime, time.UTC)
	if err != nil {
		return o
	}
	o.EventDate = time.Date(belgianExpeditionYear, dm.Month(), dm.Day(), 0, 0, 0, 0, time.UTC)
	return o
}

// alignDateParts rewrites the year/month/day components from a present
// eventDate. The full date is authoritative: absent components are filled and
// contradicting ones corrected, so records leaving the chain never carry the
// two representations in disagreement.
func alignDateParts(o Occurrence) Occurrence {
	if o.EventDate.IsZero() {
		return o
	}
	o.Year = o.EventDate.Year()
	o.Month = int(o.EventDate.Month())
	o.Day = o.EventDate.Day()
	return o
}

// backfillDateParts fills whichever side of the date representation is
// missing: year/month/day components from a present eventDate, or eventDate
// from complete year/month/day components. Components that cannot form a real
// calendar day never produce a date.
func backfillDateParts(o Occurrence) Occurrence {
	if !o.EventDate.IsZero() {
		return alignDateParts(o)
	}

	if o.Year == 0 || o.Month == 0 || o.Day == 0 {
		return o
	}
	d := time.Date(o.Year, time.Month(o.Month), o.Day, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes overflow (e.g. Feb 30 → Mar 2); a round-trip
	// mismatch means the components were not a real day.
	if d.Year() != o.Year || int(d.Month()) != o.Month || d.Day() != o.Day {
		return o
	}
	o.EventDate = d
	return o
}
