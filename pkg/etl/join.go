package etl

// DuplicatePolicy selects which detail row supplies values when the detail
// set contains the same identifier more than once. The source data is
// supposed to be duplicate-free per identifier; the policy is a documented
// tie-break, not a statement about which physical row is correct.
type DuplicatePolicy uint8

const (
	// FirstWins keeps the earliest detail occurrence of an identifier.
	FirstWins DuplicatePolicy = iota
	// LastWins lets later detail occurrences overwrite earlier ones.
	LastWins
)

func (p DuplicatePolicy) String() string {
	if p == LastWins {
		return "last-wins"
	}
	return "first-wins"
}

// JoinSpec configures a left join of a roster record set against a detail
// record set on a shared identifier field.
type JoinSpec struct {
	// Key is the identifier field name, present in both sets.
	Key string
	// DetailFields are copied from the matching detail record onto each
	// combined record.
	DetailFields []string
	// Defaults supply the value for a detail field when no detail record
	// matches. A field missing from Defaults defaults to nil.
	Defaults map[string]any
	// Policy resolves duplicate identifiers within the detail set.
	Policy DuplicatePolicy
}

// Join emits exactly one combined record per roster record with a valid
// identifier, in roster order. Roster records with a null or empty
// identifier are dropped and counted in skipped. Repeated roster
// identifiers each join independently against the same detail entry;
// uniqueness is enforced later, at the natural-key level, not here.
func Join(roster, detail []Record, spec JoinSpec) (combined []Record, skipped int) {
	lookup := make(map[string]Record, len(detail))
	for _, d := range detail {
		id, ok := d.Identifier(spec.Key)
		if !ok {
			continue
		}
		if spec.Policy == FirstWins {
			if _, seen := lookup[id]; seen {
				continue
			}
		}
		lookup[id] = d
	}

	combined = make([]Record, 0, len(roster))
	for _, r := range roster {
		id, ok := r.Identifier(spec.Key)
		if !ok {
			skipped++
			continue
		}
		out := r.Clone()
		if d, found := lookup[id]; found {
			for _, f := range spec.DetailFields {
				out[f] = d[f]
			}
		} else {
			for _, f := range spec.DetailFields {
				out[f] = spec.Defaults[f]
			}
		}
		combined = append(combined, out)
	}
	return combined, skipped
}
