package model

import "testing"

func TestStatusTransitions(t *testing.T) {
	cases := []struct {
		from    RequestStatus
		to      RequestStatus
		allowed bool
	}{
		{StatusPending, StatusApproved, true},
		{StatusPending, StatusRejected, true},
		{StatusPending, StatusCompleted, false},
		{StatusPending, StatusPending, false},
		{StatusApproved, StatusCompleted, true},
		{StatusApproved, StatusRejected, false},
		{StatusApproved, StatusPending, false},
		{StatusApproved, StatusApproved, false},
		{StatusRejected, StatusPending, false},
		{StatusRejected, StatusApproved, false},
		{StatusRejected, StatusCompleted, false},
		{StatusCompleted, StatusPending, false},
		{StatusCompleted, StatusApproved, false},
		{StatusCompleted, StatusRejected, false},
	}

	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.allowed {
			t.Errorf("%s -> %s: got %v, want %v", tc.from, tc.to, got, tc.allowed)
		}
	}
}

func TestStatusIsTerminal(t *testing.T) {
	if StatusPending.IsTerminal() {
		t.Error("Pending must not be terminal")
	}
	if StatusApproved.IsTerminal() {
		t.Error("Approved must not be terminal")
	}
	if !StatusRejected.IsTerminal() {
		t.Error("Rejected must be terminal")
	}
	if !StatusCompleted.IsTerminal() {
		t.Error("Completed must be terminal")
	}
}

func TestLinesSummary(t *testing.T) {
	lines := []RequestLine{
		{ItemCode: "MASK-1", ItemName: "N95 Mask", Quantity: 4},
		{ItemCode: "GLOVE-1", Quantity: 2}, // no name, falls back to code
	}

	got := LinesSummary(lines)
	want := "N95 Mask (x4), GLOVE-1 (x2)"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	if LinesSummary(nil) != "" {
		t.Errorf("empty lines should render empty string, got %q", LinesSummary(nil))
	}
}
