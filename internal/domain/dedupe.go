package domain

// dedupeKey is the field tuple deciding that two records report the same
// observation.
type dedupeKey struct {
	dateUnix int64
	lat, lon float64
}

func keyOf(o *Occurrence) dedupeKey {
	return dedupeKey{
		dateUnix: o.EventDate.Unix(),
		lat:      o.DecimalLatitude,
		lon:      o.DecimalLongitude,
	}
}

// dedupeByDateCoords keeps exactly one record per (eventDate, latitude,
// longitude) tuple. The survivor is the record with the lowest RowID. Making
// the input-order tie-break explicit keeps the chain deterministic even if
// callers reorder the batch.
func dedupeByDateCoords() Step {
	return Step{
		Name: "date-coordinate-dedup",
		Apply: func(records []Occurrence) []Occurrence {
			kept := make(map[dedupeKey]int, len(records)) // key → index into out
			out := make([]Occurrence, 0, len(records))
			for i := range records {
				k := keyOf(&records[i])
				if j, ok := kept[k]; ok {
					if records[i].RowID < out[j].RowID {
						out[j] = records[i]
					}
					continue
				}
				kept[k] = len(out)
				out = append(out, records[i])
			}
			return out
		},
	}
}
