package service

import (
	"strings"
	"testing"
)

func TestClampFloor(t *testing.T) {
	cases := []struct {
		current, delta, want int
	}{
		{10, -4, 6},
		{10, -10, 0},
		{10, -15, 0}, // never negative
		{0, -1, 0},
		{5, 3, 8},
		{0, 0, 0},
	}
	for _, tc := range cases {
		if got := clampFloor(tc.current, tc.delta); got != tc.want {
			t.Errorf("clampFloor(%d, %d) = %d, want %d", tc.current, tc.delta, got, tc.want)
		}
	}
}

func TestPlanDecrement(t *testing.T) {
	view := map[string]int{"MASK-1": 10, "GLOVE-1": 2}
	lines := []stockLine{
		{Code: "MASK-1", Qty: 4},
		{Code: "GLOVE-1", Qty: 5}, // more than stock: clamps at 0
		{Code: "GONE-99", Qty: 1}, // catalog drift: skipped, not fatal
	}

	updates, skipped := planDecrement(view, lines)

	if updates["MASK-1"] != 6 {
		t.Errorf("MASK-1 = %d, want 6", updates["MASK-1"])
	}
	if updates["GLOVE-1"] != 0 {
		t.Errorf("GLOVE-1 = %d, want 0 (clamped)", updates["GLOVE-1"])
	}
	if len(skipped) != 1 || skipped[0] != "GONE-99" {
		t.Errorf("skipped = %v, want [GONE-99]", skipped)
	}
	if view["MASK-1"] != 10 {
		t.Error("planner must not mutate the caller's view")
	}
}

func TestPlanDecrementRepeatedLines(t *testing.T) {
	// Two lines against the same item apply sequentially, not against the
	// same stale quantity.
	view := map[string]int{"MASK-1": 10}
	lines := []stockLine{
		{Code: "MASK-1", Qty: 6},
		{Code: "MASK-1", Qty: 5},
	}

	updates, _ := planDecrement(view, lines)
	if updates["MASK-1"] != 0 {
		t.Errorf("MASK-1 = %d, want 0 (6 then clamp on 5)", updates["MASK-1"])
	}
}

func TestPlanStrictDecrementAllOrNothing(t *testing.T) {
	view := map[string]int{"MASK-1": 10, "GLOVE-1": 2}
	lines := []stockLine{
		{Code: "MASK-1", Qty: 4},
		{Code: "GLOVE-1", Name: "Nitrile Gloves", Qty: 5},
	}

	updates, _, err := planStrictDecrement(view, lines)
	if err == nil {
		t.Fatal("expected insufficient stock error")
	}
	if !strings.Contains(err.Error(), "Nitrile Gloves") {
		t.Errorf("error should name the offending item, got %q", err.Error())
	}
	if updates != nil {
		t.Error("no updates may survive a failed walk-in plan")
	}
}

func TestPlanStrictDecrementSuccess(t *testing.T) {
	view := map[string]int{"MASK-1": 10, "GLOVE-1": 2}
	lines := []stockLine{
		{Code: "MASK-1", Qty: 4},
		{Code: "GLOVE-1", Qty: 2}, // exactly enough is fine
		{Code: "GONE-99", Qty: 1}, // drift still skips, doesn't abort
	}

	updates, skipped, err := planStrictDecrement(view, lines)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updates["MASK-1"] != 6 || updates["GLOVE-1"] != 0 {
		t.Errorf("updates = %v, want MASK-1:6 GLOVE-1:0", updates)
	}
	if len(skipped) != 1 || skipped[0] != "GONE-99" {
		t.Errorf("skipped = %v, want [GONE-99]", skipped)
	}
}

func TestPlanIncrement(t *testing.T) {
	view := map[string]int{"MASK-1": 10}
	lines := []stockLine{
		{Code: "MASK-1", Qty: 5},
		{Code: "MASK-1", Qty: 3}, // sequential increments accumulate
		{Code: "GONE-99", Qty: 7},
	}

	updates, skipped := planIncrement(view, lines)
	if updates["MASK-1"] != 18 {
		t.Errorf("MASK-1 = %d, want 18", updates["MASK-1"])
	}
	if len(skipped) != 1 {
		t.Errorf("skipped = %v, want one entry", skipped)
	}
}

func TestPlanAbsolute(t *testing.T) {
	view := map[string]int{"MASK-1": 10, "GLOVE-1": 2}
	lines := []stockLine{
		{Code: "MASK-1", Qty: 42},
		{Code: "GLOVE-1", Qty: 0},
		{Code: "GONE-99", Qty: 3},
	}

	updates, skipped, err := planAbsolute(view, lines)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Counts land exactly, regardless of prior quantity.
	if updates["MASK-1"] != 42 || updates["GLOVE-1"] != 0 {
		t.Errorf("updates = %v, want MASK-1:42 GLOVE-1:0", updates)
	}
	if len(skipped) != 1 || skipped[0] != "GONE-99" {
		t.Errorf("skipped = %v, want [GONE-99]", skipped)
	}
}

func TestPlanAbsoluteRejectsNegative(t *testing.T) {
	view := map[string]int{"MASK-1": 10}
	_, _, err := planAbsolute(view, []stockLine{{Code: "MASK-1", Qty: -1}})
	if err == nil {
		t.Fatal("negative count must be rejected")
	}
}

func TestApplyAdjustment(t *testing.T) {
	cases := []struct {
		name     string
		current  int
		absolute bool
		quantity int
		want     int
		wantErr  bool
	}{
		{"set absolute", 10, true, 25, 25, false},
		{"set zero", 10, true, 0, 0, false},
		{"set negative", 10, true, -1, 0, true},
		{"add positive", 10, false, 5, 15, false},
		{"add negative within stock", 10, false, -4, 6, false},
		{"add below zero", 10, false, -11, 0, true}, // adjust errors, unlike approval clamp
	}

	for _, tc := range cases {
		got, err := applyAdjustment(tc.current, tc.absolute, tc.quantity)
		if tc.wantErr {
			if err == nil {
				t.Errorf("%s: expected error", tc.name)
			}
			continue
		}
		if err != nil {
			t.Errorf("%s: unexpected error: %v", tc.name, err)
			continue
		}
		if got != tc.want {
			t.Errorf("%s: got %d, want %d", tc.name, got, tc.want)
		}
	}
}

// Dispense/receive/dispense against the same view always lands on initial
// plus the sum of committed signed deltas, floored at zero per step.
func TestSignedDeltaConservation(t *testing.T) {
	view := map[string]int{"MASK-1": 10}

	updates, _ := planDecrement(view, []stockLine{{Code: "MASK-1", Qty: 4}})
	view["MASK-1"] = updates["MASK-1"] // committed: 6

	updates, _ = planIncrement(view, []stockLine{{Code: "MASK-1", Qty: 7}})
	view["MASK-1"] = updates["MASK-1"] // committed: 13

	updates, _, err := planStrictDecrement(view, []stockLine{{Code: "MASK-1", Qty: 13}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	view["MASK-1"] = updates["MASK-1"]

	if view["MASK-1"] != 0 {
		t.Errorf("final quantity = %d, want 0 (10 - 4 + 7 - 13)", view["MASK-1"])
	}
}
