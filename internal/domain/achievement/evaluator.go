package achievement

// Evaluate returns the definitions whose requirements all hold for the facts
// and which the user has not unlocked yet. The result follows the catalog
// order, so two evaluations over the same inputs produce the same slice.
//
// Evaluation is pure: no clock, no storage, no side effects. Everything
// time-dependent was already folded into the facts by the collector.
func Evaluate(catalog *Catalog, facts Facts, unlocked map[string]struct{}) []Definition {
	var eligible []Definition
	for _, definition := range catalog.All() {
		if _, ok := unlocked[definition.ID]; ok {
			continue
		}

		if definition.Eligible(facts) {
			eligible = append(eligible, definition)
		}
	}

	return eligible
}
