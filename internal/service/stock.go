package service

import "fmt"

// stockLine is one planned change against a catalog item, decoupled from the
// request/receive models so the planners below work for every workflow op.
type stockLine struct {
	Code string
	Name string
	Qty  int
}

// clampFloor applies a relative delta with a hard floor at zero.
func clampFloor(current, delta int) int {
	q := current + delta
	if q < 0 {
		return 0
	}
	return q
}

// planDecrement computes new quantities for an approval dispense. Each line is
// clamped at zero; lines whose code is missing from the view (catalog drift)
// are skipped and reported back instead of failing the whole transaction.
// The view holds the quantities of the rows locked by the caller and is not
// modified.
func planDecrement(view map[string]int, lines []stockLine) (updates map[string]int, skipped []string) {
	updates = map[string]int{}
	work := copyView(view)
	for _, l := range lines {
		current, ok := work[l.Code]
		if !ok {
			skipped = append(skipped, l.Code)
			continue
		}
		work[l.Code] = clampFloor(current, -l.Qty)
		updates[l.Code] = work[l.Code]
	}
	return updates, skipped
}

// planStrictDecrement is the walk-in variant: any line whose quantity exceeds
// current stock aborts the whole plan. Unknown codes are still skip-and-report.
func planStrictDecrement(view map[string]int, lines []stockLine) (map[string]int, []string, error) {
	updates := map[string]int{}
	var skipped []string
	work := copyView(view)
	for _, l := range lines {
		current, ok := work[l.Code]
		if !ok {
			skipped = append(skipped, l.Code)
			continue
		}
		if l.Qty > current {
			name := l.Name
			if name == "" {
				name = l.Code
			}
			return nil, nil, fmt.Errorf("insufficient stock for %s (have %d, need %d)", name, current, l.Qty)
		}
		work[l.Code] = current - l.Qty
		updates[l.Code] = work[l.Code]
	}
	return updates, skipped, nil
}

// planIncrement computes new quantities for a stock-in.
func planIncrement(view map[string]int, lines []stockLine) (updates map[string]int, skipped []string) {
	updates = map[string]int{}
	work := copyView(view)
	for _, l := range lines {
		current, ok := work[l.Code]
		if !ok {
			skipped = append(skipped, l.Code)
			continue
		}
		work[l.Code] = current + l.Qty
		updates[l.Code] = work[l.Code]
	}
	return updates, skipped
}

// planAbsolute computes stock-take updates: each referenced item is set to
// exactly the counted quantity, regardless of prior value. Negative counts are
// rejected up front.
func planAbsolute(view map[string]int, lines []stockLine) (map[string]int, []string, error) {
	updates := map[string]int{}
	var skipped []string
	for _, l := range lines {
		if l.Qty < 0 {
			return nil, nil, fmt.Errorf("quantity for %s cannot be negative", l.Code)
		}
		if _, ok := view[l.Code]; !ok {
			skipped = append(skipped, l.Code)
			continue
		}
		updates[l.Code] = l.Qty
	}
	return updates, skipped, nil
}

// applyAdjustment computes a single-item manual adjustment. Unlike approvals,
// a manual adjust that would go negative is an error, not a clamp.
func applyAdjustment(current int, absolute bool, quantity int) (int, error) {
	newQty := current + quantity
	if absolute {
		newQty = quantity
	}
	if newQty < 0 {
		return 0, fmt.Errorf("stock cannot go negative (current %d)", current)
	}
	return newQty, nil
}

func copyView(view map[string]int) map[string]int {
	work := make(map[string]int, len(view))
	for k, v := range view {
		work[k] = v
	}
	return work
}
