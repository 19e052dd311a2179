package claims

// Synthesize builds the full permission claim set granted by a list of forum
// group memberships. Every membership is run through the group mapping table,
// results are concatenated, and duplicates on (type, value) collapse to one
// claim. Pure function: persistence and profile claims are composed in by the
// caller.
func Synthesize(groupMemberships []string) []Claim {
	type key struct {
		t ClaimType
		v string
	}
	seen := make(map[key]struct{})
	var out []Claim
	for _, g := range groupMemberships {
		for _, c := range MapGroup(g) {
			k := key{t: c.Type, v: c.Value.String()}
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}
			out = append(out, c)
		}
	}
	return out
}
