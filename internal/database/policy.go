package database

import "github.com/thenoetrevino/hireboard/internal/models"

// Policy decides which stage transitions the service accepts.
// A transition is allowed unless it is listed as blocked.
type Policy struct {
	blocked map[models.Stage]map[models.Stage]bool
}

// DefaultPolicy blocks skipping the screening process from Applied
func DefaultPolicy() *Policy {
	return NewPolicy(map[models.Stage][]models.Stage{
		models.StageApplied: {models.StageOffer, models.StageHired},
	})
}

// NewPolicy builds a policy from a from -> blocked destinations map
func NewPolicy(blocked map[models.Stage][]models.Stage) *Policy {
	p := &Policy{blocked: make(map[models.Stage]map[models.Stage]bool, len(blocked))}
	for from, tos := range blocked {
		set := make(map[models.Stage]bool, len(tos))
		for _, to := range tos {
			set[to] = true
		}
		p.blocked[from] = set
	}
	return p
}

// IsTransitionAllowed reports whether from -> to may be committed
func (p *Policy) IsTransitionAllowed(from, to models.Stage) bool {
	if p == nil {
		return true
	}
	return !p.blocked[from][to]
}

// Check returns an INVALID_TRANSITION error for a blocked transition
func (p *Policy) Check(from, to models.Stage) error {
	if p.IsTransitionAllowed(from, to) {
		return nil
	}
	return models.NewAPIError(models.CodeInvalidTransition,
		"Cannot move directly from %s to %s. Must go through screening process.", from, to)
}
