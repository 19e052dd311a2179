package policy

import (
	"github.com/legit-games/portal-iam/claims"
)

// Requirement is a predicate over a principal's claims and an optional
// resource. Requirements must be side-effect free; a Registry is shared
// across requests after construction.
type Requirement interface {
	Satisfied(cs []claims.Claim, res *Resource) bool
}

// Registry is the fixed catalog of named policies. Build it once at process
// start with NewRegistry and pass it by reference; it is never mutated
// afterwards and is safe for concurrent reads.
type Registry struct {
	policies map[string]Requirement
}

// NewRegistry constructs the portal's policy catalog.
func NewRegistry() *Registry {
	return &Registry{policies: map[string]Requirement{
		SeniorAdmin: levelRequirement{min: claims.LevelSeniorAdmin},
		HeadAdmin:   levelRequirement{min: claims.LevelHeadAdmin},
		HeadAdminX:  levelRequirement{min: claims.LevelHeadAdmin, exact: true},
		Admin:       levelRequirement{min: claims.LevelGameAdmin},
		AdminX:      levelRequirement{min: claims.LevelGameAdmin, exact: true},
		Management:  managementRequirement{},

		ClaimAdminAction: ownershipRequirement{rank: levelRequirement{min: claims.LevelGameAdmin}},
		LiftAdminAction:  ownershipRequirement{rank: levelRequirement{min: claims.LevelGameAdmin}},

		AccessBanFileMonitors: categoryRequirement{qualifying: claims.BanFileMonitorQualifiers},
		AccessGameServers:     categoryRequirement{qualifying: claims.GameServerQualifiers},
	}}
}

// Lookup returns the requirement registered under name, ok=false if none.
func (r *Registry) Lookup(name string) (Requirement, bool) {
	req, ok := r.policies[name]
	return req, ok
}

// Names returns the registered policy names.
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.policies))
	for n := range r.policies {
		out = append(out, n)
	}
	return out
}

// levelRequirement is "claim level >= min for the resource's game" (or
// "level == min" when exact). SeniorAdmin is game-independent and satisfies
// any non-exact requirement for every game; requirements pinned to
// SeniorAdmin itself need no resource at all.
type levelRequirement struct {
	min   claims.Level
	exact bool
}

func (lr levelRequirement) Satisfied(cs []claims.Claim, res *Resource) bool {
	// SeniorAdmin as the minimum is the one level-policy that is not game
	// scoped: the claim itself carries no game.
	if lr.min == claims.LevelSeniorAdmin {
		for _, c := range cs {
			if c.Type == claims.TypeSeniorAdmin {
				return true
			}
		}
		return false
	}

	// Every other level policy needs a game; without one it fails closed.
	if res == nil || res.Game == nil {
		return false
	}
	game := *res.Game

	best := claims.LevelNone
	for _, c := range cs {
		lvl := claims.LevelOf(c.Type)
		if lvl == claims.LevelNone {
			continue
		}
		if !c.MatchesGame(game) {
			continue
		}
		if lvl > best {
			best = lvl
		}
	}
	if lr.exact {
		return best == lr.min
	}
	return best >= lr.min
}

// managementRequirement is the flat "organisationally senior at all" check:
// any SeniorAdmin or HeadAdmin claim qualifies, no game comparison.
type managementRequirement struct{}

func (managementRequirement) Satisfied(cs []claims.Claim, _ *Resource) bool {
	for _, c := range cs {
		if c.Type == claims.TypeSeniorAdmin || c.Type == claims.TypeHeadAdmin {
			return true
		}
	}
	return false
}

// categoryRequirement gates a list category: any claim of a qualifying type
// satisfies it, whatever the claim's scope. How much of the category the
// principal then sees is decided by the derived filter, not here.
type categoryRequirement struct {
	qualifying []claims.ClaimType
}

func (cr categoryRequirement) Satisfied(cs []claims.Claim, _ *Resource) bool {
	for _, c := range cs {
		for _, t := range cr.qualifying {
			if c.Type == t {
				return true
			}
		}
	}
	return false
}

// ownershipRequirement combines ownership with rank: the principal passes if
// their external id equals the resource's current owner, or if the wrapped
// rank requirement holds.
type ownershipRequirement struct {
	rank levelRequirement
}

func (or ownershipRequirement) Satisfied(cs []claims.Claim, res *Resource) bool {
	return or.rank.Satisfied(cs, res)
}

// SatisfiedBy additionally accepts the principal's external id for the
// ownership half of the check.
func (or ownershipRequirement) SatisfiedBy(cs []claims.Claim, res *Resource, principalID string) bool {
	if res != nil && res.OwnerID != "" && principalID != "" && res.OwnerID == principalID {
		return true
	}
	return or.rank.Satisfied(cs, res)
}
