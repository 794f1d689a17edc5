package models

import "github.com/thenoetrevino/hireboard/internal/types"

// TriggerCandidateMoved is the only trigger evaluated on stage transitions
const TriggerCandidateMoved = "candidate.moved"

// AutomationRule fires side effects when a candidate matches its trigger.
// A nil From or To matches any stage.
type AutomationRule struct {
	ID     types.RuleID
	Name   string
	Active bool
	On     string
	From   *Stage
	To     *Stage
}

// Matches reports whether the rule fires for a from -> to transition
func (r *AutomationRule) Matches(from, to Stage) bool {
	if !r.Active || r.On != TriggerCandidateMoved {
		return false
	}
	if r.From != nil && *r.From != from {
		return false
	}
	if r.To != nil && *r.To != to {
		return false
	}
	return true
}
