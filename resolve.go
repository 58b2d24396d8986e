package burnguard

// Resolve computes distinct(defaults ∪ additional) minus excluded, keeping the
// order of first occurrence. It never fails; empty inputs yield smaller results.
func Resolve(defaults, additional, excluded []string) []string {
	skip := make(map[string]struct{}, len(excluded))
	for _, id := range excluded {
		skip[id] = struct{}{}
	}

	out := make([]string, 0, len(defaults)+len(additional))
	seen := make(map[string]struct{}, len(defaults)+len(additional))
	for _, list := range [][]string{defaults, additional} {
		for _, id := range list {
			if _, ok := skip[id]; ok {
				continue
			}
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	return out
}
