// Package etl holds the dataset-independent pieces of the ingest pipeline:
// the normalized record type, the roster/detail left join, and the
// pre-flight quality audit.
package etl

// Record maps canonical field names to typed, nullable values. A nil value
// is SQL NULL; concrete values are int64, string, float64 or
// decimal.Decimal depending on the field. Every field of the target schema
// has an entry once a record leaves its dataset mapper.
type Record map[string]any

// Identifier returns the record's join key as a non-empty string.
// ok is false when the field is null, empty or not text; such records do
// not participate in a join.
func (r Record) Identifier(field string) (string, bool) {
	v, present := r[field]
	if !present || v == nil {
		return "", false
	}
	s, isText := v.(string)
	if !isText || s == "" {
		return "", false
	}
	return s, true
}

// Clone returns a shallow copy. Values are scalars, so a shallow copy is a
// full copy.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}
