package successor

import (
	"fmt"

	"github.com/example/tabmagnet/internal/core/effects"
	"github.com/example/tabmagnet/internal/core/tabs"
)

// PlanInput contains pre-fetched data for choosing the next active tab.
type PlanInput struct {
	WindowID tabs.WindowID
	ClosedID tabs.TabID
	Input    SuccessorInput
	Policy   tabs.CloseBehaviorPolicy
}

// Plan represents the planned effects after a tab closed.
type Plan struct {
	TargetID   tabs.TabID // empty when the host default stands
	Reason     string
	Activation *effects.ActivateEffect
	Log        *effects.LogEffect // set only with Activation
}

// Effects returns all effects as a flat slice for execution.
func (p Plan) Effects() []effects.Effect {
	var result []effects.Effect
	if p.Activation != nil {
		result = append(result, *p.Activation)
	}
	if p.Log != nil {
		result = append(result, *p.Log)
	}
	return result
}

// GeneratePlan creates a successor plan.
// This is a pure function - all input data must be pre-fetched.
func GeneratePlan(input PlanInput) Plan {
	plan := Plan{}

	target, ok := DecideSuccessor(input.Input, input.Policy)
	if !ok {
		plan.Reason = fmt.Sprintf("close behavior %s: keep host focus", input.Policy)
		return plan
	}

	plan.TargetID = target.ID
	plan.Reason = fmt.Sprintf("close behavior %s: activate %s at %d after %s closed", input.Policy, target.ID, target.Index, input.ClosedID)
	plan.Activation = &effects.ActivateEffect{
		TabID:    target.ID,
		WindowID: input.WindowID,
	}
	plan.Log = &effects.LogEffect{
		Level:   "debug",
		Message: "successor decided",
		Fields:  map[string]any{"reason": plan.Reason, "policy": string(input.Policy)},
	}
	return plan
}
