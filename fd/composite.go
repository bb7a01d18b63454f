package fd

// Compose takes two already-fitted, already-executed FD algorithms over
// the same relation and returns a single, re-minimized Collection
// merging both results; it runs neither of them: create_primitive.h notes
// GetAllDerived<FDAlgorithm> "is used by ... the typo-miner, which
// composes two FD algorithms", infrastructure worth keeping even though
// typo mining itself is a separate feature.
func Compose(a, b Algorithm) (*Collection, error) {
	out := NewCollection()
	for _, f := range a.Collection().All() {
		if err := out.Add(f); err != nil {
			return nil, err
		}
	}
	for _, f := range b.Collection().All() {
		if err := out.Add(f); err != nil {
			return nil, err
		}
	}
	return out, nil
}
