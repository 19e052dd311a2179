// Package policy holds the portal's named authorization policies and the
// evaluator that checks a principal's claims against them. The policy catalog
// is the public contract consumed by handler-level authorization throughout
// the portal; names must remain stable.
package policy

import (
	"github.com/google/uuid"

	"github.com/legit-games/portal-iam/games"
)

// Policy name catalog. Handlers reference policies by these constants only.
const (
	// Hierarchical, game-scoped policies. The X variants match the exact
	// level only and deliberately exclude escalation from above.
	SeniorAdmin = "SeniorAdmin"
	HeadAdmin   = "HeadAdmin"
	HeadAdminX  = "HeadAdminX"
	Admin       = "Admin"
	AdminX      = "AdminX"

	// Management is a flat seniority test: does the principal hold any
	// senior or head-admin claim at all, for any game.
	Management = "Management"

	// Ownership policies for pending admin actions: the current owner may
	// act regardless of level, otherwise the usual rank check applies.
	ClaimAdminAction = "ClaimAdminAction"
	LiftAdminAction  = "LiftAdminAction"

	// Category access policies for list screens. Satisfied by any claim of a
	// qualifying type regardless of scope; query scoping is applied
	// separately from the derived filter.
	AccessBanFileMonitors = "AccessBanFileMonitors"
	AccessGameServers     = "AccessGameServers"
)

// Resource is the optional context a policy is evaluated against: the owning
// game, a specific resource id, and for ownership policies the external id of
// the admin currently holding the resource.
type Resource struct {
	Game    *games.GameType
	ID      *uuid.UUID
	OwnerID string
}

// GameResource builds a Resource scoped to a game only.
func GameResource(g games.GameType) *Resource { return &Resource{Game: &g} }

// Decision is the outcome of a policy evaluation.
type Decision int

const (
	Denied Decision = iota
	Satisfied
)

func (d Decision) String() string {
	if d == Satisfied {
		return "Satisfied"
	}
	return "Denied"
}
