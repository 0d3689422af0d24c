package domain

import (
	"regexp"
	"strings"
)

// Cleaning thresholds shared by both sources.
const (
	// MaxLatitude is the northern bound of the species' plausible range;
	// records north of it are discarded.
	MaxLatitude = -45.0

	// MaxUncertaintyM is the largest acceptable coordinate uncertainty radius.
	MaxUncertaintyM = 10000.0

	// MinYear is the first year with usable survey coverage; older records are
	// too sparse and imprecise to model against.
	MinYear = 1968
)

// negatedLongitudeIssue is the aggregator's flag for records whose longitude
// sign was presumably flipped, placing a marine sighting inland.
const negatedLongitudeIssue = "PRESUMED_NEGATED_LONGITUDE"

// uncertaintySentinels are provider placeholder values meaning "unknown", not
// real uncertainty measurements.
var uncertaintySentinels = map[float64]struct{}{
	301:  {},
	3036: {},
	999:  {},
	9999: {},
}

// Free-text and provenance patterns used by the exclusion rules. All matching
// is case-insensitive and an absent field never matches (a record is never
// dropped for missing text).
var (
	// deathRemarkRe matches remarks reporting dead animals, including
	// mummified carcasses ("mumm" prefix covers mummy/mummified/mummified).
	deathRemarkRe = regexp.MustCompile(`(?i)\b(deceased|dead|died|mumm\w*)\b`)

	// approxCoordRe matches remarks admitting the coordinates are estimates,
	// e.g. "coordinates approximate" or "coords approx".
	approxCoordRe = regexp.MustCompile(`(?i)coord\w*\s+approx\w*`)

	// uncertainIDRe matches remarks questioning the species identification,
	// e.g. "lobodon?" or "crabeater ?".
	uncertainIDRe = regexp.MustCompile(`(?i)[a-z]+\s*\?`)

	// bioLoggingRe identifies sampling protocols that are instrument-based
	// rather than direct observation.
	bioLoggingRe = regexp.MustCompile(`(?i)bio[-\s]?logg|telemetry|satellite[-\s]tag`)

	// lowPrecisionCollectionRe identifies the historical expedition-log
	// collection whose positions were recorded to whole degrees.
	lowPrecisionCollectionRe = regexp.MustCompile(`(?i)\bANARE\b`)

	// belgianExpeditionRe identifies the Belgian Antarctic expedition records
	// that need their eventDate reconstructed (see backfillExpeditionDate).
	belgianExpeditionRe = regexp.MustCompile(`(?i)belgian`)
)

// Step is one named transformation in a cleaning chain. Apply must be pure:
// it returns a new batch and never mutates its input, so steps can be
// reordered, tested, and audited in isolation.
type Step struct {
	Name  string
	Apply func(records []Occurrence) []Occurrence
}

// StepResult reports how many records one step removed.
type StepResult struct {
	Name    string
	Dropped int
}

// Chain is an ordered list of cleaning steps. Order is load-bearing: later
// rules depend on fields rewritten by earlier ones (date reconstruction must
// precede the missing-date and minimum-year rules; count normalization must
// precede anything trusting the count as a presence indicator).
type Chain struct {
	steps []Step
}

// NewChain builds a chain from steps evaluated in the given order.
func NewChain(steps ...Step) *Chain {
	return &Chain{steps: steps}
}

// Apply runs every step in order and returns the surviving batch along with
// per-step drop counts. Same input always yields the same output.
func (c *Chain) Apply(records []Occurrence) ([]Occurrence, []StepResult) {
	results := make([]StepResult, 0, len(c.steps))
	for _, step := range c.steps {
		out := step.Apply(records)
		results = append(results, StepResult{Name: step.Name, Dropped: len(records) - len(out)})
		records = out
	}
	return records, results
}

// ChainFor assembles the cleaning chain for a source. Both sources draw on the
// same rule library; GBIF applies the full list, SCAR a reduced one with its
// own count semantics.
func ChainFor(source Source) *Chain {
	if source == SourceSCAR {
		return NewChain(scarSteps()...)
	}
	return NewChain(gbifSteps()...)
}

// keep builds a filter step retaining only records the predicate accepts.
func keep(name string, pred func(o *Occurrence) bool) Step {
	return Step{
		Name: name,
		Apply: func(records []Occurrence) []Occurrence {
			out := make([]Occurrence, 0, len(records))
			for i := range records {
				if pred(&records[i]) {
					out = append(out, records[i])
				}
			}
			return out
		},
	}
}

// rewrite builds a field-rewrite step. The function receives and returns a
// record by value; it must allocate fresh pointers for any optional field it
// changes so the input batch stays untouched.
func rewrite(name string, fn func(o Occurrence) Occurrence) Step {
	return Step{
		Name: name,
		Apply: func(records []Occurrence) []Occurrence {
			out := make([]Occurrence, len(records))
			for i := range records {
				out[i] = fn(records[i])
			}
			return out
		},
	}
}

// dropRemarkMatching builds a filter dropping records whose occurrenceRemarks
// match the pattern. Absent remarks always pass.
func dropRemarkMatching(name string, re *regexp.Regexp) Step {
	return keep(name, func(o *Occurrence) bool {
		return o.OccurrenceRemarks == "" || !re.MatchString(o.OccurrenceRemarks)
	})
}

// Shared rules (both sources).

func latitudeBound() Step {
	return keep("latitude-bound", func(o *Occurrence) bool {
		return o.DecimalLatitude <= MaxLatitude
	})
}

func geospatialIssueExclusion() Step {
	return keep("geospatial-issue", func(o *Occurrence) bool {
		return !o.HasGeospatialIssues
	})
}

func uncertaintySentinelExclusion() Step {
	return keep("uncertainty-sentinel", func(o *Occurrence) bool {
		if o.CoordinateUncertaintyM == nil {
			return true
		}
		_, isSentinel := uncertaintySentinels[*o.CoordinateUncertaintyM]
		return !isSentinel
	})
}

func missingDateExclusion() Step {
	return keep("has-event-date", func(o *Occurrence) bool {
		return !o.EventDate.IsZero()
	})
}

func uncertaintyCeiling() Step {
	return keep("uncertainty-ceiling", func(o *Occurrence) bool {
		return o.CoordinateUncertaintyM == nil || *o.CoordinateUncertaintyM <= MaxUncertaintyM
	})
}

// GBIF-only rules with non-trivial bodies.

// reclassifyBioLogging rewrites basisOfRecord to MACHINE_OBSERVATION when the
// sampling protocol shows the record came from an instrument, whatever the
// publisher originally labelled it.
func reclassifyBioLogging(o Occurrence) Occurrence {
	if o.SamplingProtocol == "" || o.BasisOfRecord == "MACHINE_OBSERVATION" {
		return o
	}
	if bioLoggingRe.MatchString(o.SamplingProtocol) {
		o.BasisOfRecord = "MACHINE_OBSERVATION"
	}
	return o
}

// normalizeZeroCount rewrites the GBIF sentinel count of zero to one: in that
// source a zero means "presence reported without a count", and every record in
// the set is a presence.
func normalizeZeroCount(o Occurrence) Occurrence {
	if o.IndividualCount != nil && *o.IndividualCount == 0 {
		one := 1
		o.IndividualCount = &one
	}
	return o
}

func hasIssueFlag(issue, flag string) bool {
	if issue == "" {
		return false
	}
	return strings.Contains(issue, flag)
}
