package scenario

import (
	"strings"
	"testing"
)

func TestResolveEmptyIsFullSuite(t *testing.T) {
	defs, err := Resolve(nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(defs) != 5 {
		t.Fatalf("expected 5 scenarios, got %d", len(defs))
	}
	if defs[0].Name != "concurrent-initial" || defs[4].Name != "concurrent-repeat" {
		t.Errorf("unexpected suite order: %s .. %s", defs[0].Name, defs[4].Name)
	}
}

func TestResolvePreservesSuiteOrder(t *testing.T) {
	defs, err := Resolve([]string{"concurrent-repeat", "concurrent-initial"})
	if err != nil {
		t.Fatal(err)
	}
	if len(defs) != 2 {
		t.Fatalf("expected 2 scenarios, got %d", len(defs))
	}
	if defs[0].Name != "concurrent-initial" || defs[1].Name != "concurrent-repeat" {
		t.Errorf("selection must run in suite order, got %s then %s", defs[0].Name, defs[1].Name)
	}
}

func TestResolveUnknownName(t *testing.T) {
	_, err := Resolve([]string{"warp-speed"})
	if err == nil {
		t.Fatal("expected an error for an unknown scenario")
	}
	if !strings.Contains(err.Error(), "warp-speed") {
		t.Errorf("error should quote the bad name: %v", err)
	}
	if !strings.Contains(err.Error(), "no-cache-baseline") {
		t.Errorf("error should list the known scenarios: %v", err)
	}
}
