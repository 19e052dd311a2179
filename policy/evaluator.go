package policy

import (
	"github.com/legit-games/portal-iam/claims"
)

// Evaluator checks claim sets against the registry. Stateless apart from the
// read-only registry reference; safe for concurrent use.
type Evaluator struct {
	registry *Registry
}

// NewEvaluator creates an evaluator over an already-built registry.
func NewEvaluator(r *Registry) *Evaluator { return &Evaluator{registry: r} }

// Evaluate checks a policy for a claim set with optional resource context.
// Unknown policy names and missing required resource context both fail
// closed: the answer is Denied, never a panic or an error.
func (e *Evaluator) Evaluate(cs []claims.Claim, policyName string, res *Resource) Decision {
	return e.EvaluateFor(cs, policyName, res, "")
}

// EvaluateFor is Evaluate with the principal's external id, needed by
// ownership policies where the current owner may act regardless of rank.
func (e *Evaluator) EvaluateFor(cs []claims.Claim, policyName string, res *Resource, principalID string) Decision {
	req, ok := e.registry.Lookup(policyName)
	if !ok {
		return Denied
	}
	if owned, isOwned := req.(ownershipRequirement); isOwned {
		if owned.SatisfiedBy(cs, res, principalID) {
			return Satisfied
		}
		return Denied
	}
	if req.Satisfied(cs, res) {
		return Satisfied
	}
	return Denied
}
