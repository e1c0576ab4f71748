package placement

import (
	"testing"

	"github.com/example/tabmagnet/internal/core/effects"
	"github.com/example/tabmagnet/internal/core/tabs"
)

func TestGeneratePlan_Move(t *testing.T) {
	plan := GeneratePlan(PlanInput{
		NewTab:    *tab("new", "w1", 4),
		OpenerTab: tab("op", "w1", 1),
		Policy:    tabs.PositionRight,
	})

	if plan.TargetIndex != 2 {
		t.Errorf("TargetIndex = %d, want 2", plan.TargetIndex)
	}
	effs := plan.Effects()
	if len(effs) != 2 {
		t.Fatalf("expected move and log effects, got %d", len(effs))
	}
	move, ok := effs[0].(effects.MoveEffect)
	if !ok {
		t.Fatalf("expected MoveEffect, got %T", effs[0])
	}
	if move.TabID != "new" || move.Index != 2 || move.WindowID != "w1" {
		t.Errorf("unexpected move effect: %+v", move)
	}
	log, ok := effs[1].(effects.LogEffect)
	if !ok {
		t.Fatalf("expected LogEffect, got %T", effs[1])
	}
	if log.Fields["reason"] != plan.Reason {
		t.Errorf("log reason = %v, want %q", log.Fields["reason"], plan.Reason)
	}
}

func TestGeneratePlan_End(t *testing.T) {
	plan := GeneratePlan(PlanInput{
		NewTab:    *tab("new", "w1", 1),
		OpenerTab: tab("op", "w1", 0),
		Policy:    tabs.PositionEnd,
	})

	effs := plan.Effects()
	if len(effs) != 2 {
		t.Fatalf("expected move and log effects, got %d", len(effs))
	}
	if _, ok := effs[0].(effects.MoveToEndEffect); !ok {
		t.Errorf("expected MoveToEndEffect, got %T", effs[0])
	}
	if plan.TargetIndex != -1 {
		t.Errorf("TargetIndex = %d, want -1", plan.TargetIndex)
	}
}

func TestGeneratePlan_NoMove(t *testing.T) {
	plan := GeneratePlan(PlanInput{
		NewTab:    *tab("new", "w1", 2),
		OpenerTab: tab("op", "w1", 1),
		Policy:    tabs.PositionRight,
	})

	if len(plan.Effects()) != 0 {
		t.Errorf("expected no effects, got %v", plan.Effects())
	}
	if plan.Reason == "" {
		t.Error("expected a reason for the no-op plan")
	}
}
