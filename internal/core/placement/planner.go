package placement

import (
	"fmt"

	"github.com/example/tabmagnet/internal/core/effects"
	"github.com/example/tabmagnet/internal/core/tabs"
)

// PlanInput contains pre-fetched data for placing a new tab.
type PlanInput struct {
	NewTab            tabs.TabRecord
	OpenerTab         *tabs.TabRecord // nil when unknown or lookup failed
	ActiveTabFallback *tabs.TabRecord // tab active before NewTab appeared
	Policy            tabs.PositionPolicy
}

// Plan represents the planned effects for placing a new tab.
type Plan struct {
	TabID       tabs.TabID
	TargetIndex int // -1 when not moving or moving to the end
	Reason      string
	Moves       []effects.Effect
	Log         *effects.LogEffect // set only when Moves is not empty
}

// Effects returns all effects as a flat slice for execution.
func (p Plan) Effects() []effects.Effect {
	result := make([]effects.Effect, 0, len(p.Moves)+1)
	result = append(result, p.Moves...)
	if p.Log != nil {
		result = append(result, *p.Log)
	}
	return result
}

// GeneratePlan creates a placement plan.
// This is a pure function - all input data must be pre-fetched.
func GeneratePlan(input PlanInput) Plan {
	plan := Plan{
		TabID:       input.NewTab.ID,
		TargetIndex: -1,
	}

	if input.Policy == tabs.PositionEnd {
		plan.Reason = "policy end: move to last position"
		plan.Moves = append(plan.Moves, effects.MoveToEndEffect{
			TabID:    input.NewTab.ID,
			WindowID: input.NewTab.WindowID,
		})
		plan.Log = decisionLog(plan.Reason, input.Policy)
		return plan
	}

	target, move := DecidePlacement(input.NewTab, input.OpenerTab, input.ActiveTabFallback, input.Policy)
	if !move {
		plan.Reason = fmt.Sprintf("policy %s: no move", input.Policy)
		return plan
	}

	plan.TargetIndex = target
	plan.Reason = fmt.Sprintf("policy %s: move from %d to %d", input.Policy, input.NewTab.Index, target)
	plan.Moves = append(plan.Moves, effects.MoveEffect{
		TabID:    input.NewTab.ID,
		WindowID: input.NewTab.WindowID,
		Index:    target,
	})
	plan.Log = decisionLog(plan.Reason, input.Policy)
	return plan
}

func decisionLog(reason string, policy tabs.PositionPolicy) *effects.LogEffect {
	return &effects.LogEffect{
		Level:   "debug",
		Message: "placement decided",
		Fields:  map[string]any{"reason": reason, "policy": string(policy)},
	}
}
