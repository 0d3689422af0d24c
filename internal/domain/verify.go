package domain

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// VerifyCleaned asserts the end-state guarantees over a fully cleaned batch.
// Every violation is collected, not just the first, so a failing run reports
// the whole picture. A non-nil result means the chain or validator misbehaved;
// callers must abort before writing output.
func VerifyCleaned(records []Occurrence, source Source) error {
	var result *multierror.Error
	seen := make(map[dedupeKey]int, len(records))

	for i := range records {
		o := &records[i]
		id := fmt.Sprintf("row %d", o.RowID)

		if o.DecimalLatitude > MaxLatitude {
			result = multierror.Append(result, fmt.Errorf("%s: latitude %v above bound %v", id, o.DecimalLatitude, MaxLatitude))
		}
		if o.EventDate.IsZero() {
			result = multierror.Append(result, fmt.Errorf("%s: missing eventDate", id))
		} else if o.Year != o.EventDate.Year() || o.Month != int(o.EventDate.Month()) || o.Day != o.EventDate.Day() {
			result = multierror.Append(result, fmt.Errorf("%s: year/month/day %d-%d-%d inconsistent with eventDate %s",
				id, o.Year, o.Month, o.Day, o.EventDate.Format(eventDateOutputLayout)))
		}
		if o.CoordinateUncertaintyM != nil {
			if *o.CoordinateUncertaintyM > MaxUncertaintyM {
				result = multierror.Append(result, fmt.Errorf("%s: coordinate uncertainty %v above ceiling", id, *o.CoordinateUncertaintyM))
			}
			if _, isSentinel := uncertaintySentinels[*o.CoordinateUncertaintyM]; isSentinel {
				result = multierror.Append(result, fmt.Errorf("%s: coordinate uncertainty %v is a provider sentinel", id, *o.CoordinateUncertaintyM))
			}
		}
		if o.IndividualCount != nil && *o.IndividualCount < 1 {
			result = multierror.Append(result, fmt.Errorf("%s: individualCount %d below 1", id, *o.IndividualCount))
		}

		if source == SourceGBIF {
			if o.OccurrenceStatus != "PRESENT" {
				result = multierror.Append(result, fmt.Errorf("%s: occurrenceStatus %q is not PRESENT", id, o.OccurrenceStatus))
			}
			if o.DecimalLatitude == o.DecimalLongitude {
				result = multierror.Append(result, fmt.Errorf("%s: identical latitude and longitude %v", id, o.DecimalLatitude))
			}
			if o.OccurrenceRemarks != "" && deathRemarkRe.MatchString(o.OccurrenceRemarks) {
				result = multierror.Append(result, fmt.Errorf("%s: death-related remark survived cleaning", id))
			}
			if o.Year != 0 && o.Year < MinYear {
				result = multierror.Append(result, fmt.Errorf("%s: year %d before minimum %d", id, o.Year, MinYear))
			}
		}
		if source == SourceSCAR && o.IndividualCount == nil {
			result = multierror.Append(result, fmt.Errorf("%s: missing individualCount", id))
		}

		k := keyOf(o)
		if prev, ok := seen[k]; ok {
			result = multierror.Append(result, fmt.Errorf("%s: duplicate of row %d on (eventDate, latitude, longitude)", id, prev))
		} else {
			seen[k] = o.RowID
		}
	}

	return result.ErrorOrNil()
}
