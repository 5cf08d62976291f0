package scenarios_test

import (
	"testing"

	"github.com/relcore/hofexpr/bind"
	"github.com/relcore/hofexpr/internal/scenarios"
)

func TestAllScenariosBindAndEvalWithoutError(t *testing.T) {
	driver := bind.NewDriver(bind.NewSimpleBinder())
	for _, s := range scenarios.All() {
		t.Run(s.Name, func(t *testing.T) {
			bound, err := driver.Bind(s.Tree)
			if err != nil {
				t.Fatalf("Bind() error = %v", err)
			}
			if !bound.Resolved() {
				t.Fatalf("%s bound tree is not fully resolved", s.Name)
			}
			if _, err := bound.Eval(nil); err != nil {
				t.Fatalf("Eval() error = %v", err)
			}
		})
	}
}

func TestByNameUnknownScenario(t *testing.T) {
	if _, err := scenarios.ByName("S99"); err == nil {
		t.Fatal("ByName(\"S99\") succeeded, want an error")
	}
}

func TestByNameReturnsMatchingScenario(t *testing.T) {
	s, err := scenarios.ByName("S4")
	if err != nil {
		t.Fatalf("ByName(\"S4\") error = %v", err)
	}
	if s.Name != "S4" {
		t.Errorf("ByName(\"S4\").Name = %q, want S4", s.Name)
	}
}
