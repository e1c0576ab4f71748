package harness

import (
	"context"
	"testing"

	"github.com/example/tabmagnet/internal/config"
)

func TestScenarios(t *testing.T) {
	cfg, err := config.DefaultConfig()
	if err != nil {
		t.Fatalf("default config: %v", err)
	}

	for _, sc := range Scenarios() {
		t.Run(sc.Name, func(t *testing.T) {
			results := Run(context.Background(), cfg, []Scenario{sc})
			if !results[0].Passed {
				t.Errorf("%s: %v", sc.Description, results[0].Err)
			}
		})
	}
}

func TestPassed(t *testing.T) {
	results := []Result{{Passed: true}, {Passed: false}, {Passed: true}}
	if got := Passed(results); got != 2 {
		t.Errorf("Passed() = %d, want 2", got)
	}
}
