package db

import "testing"

func TestFoldTotals(t *testing.T) {
	ids := []string{"a", "b", "c"}
	rows := []LocationAmount{
		{LocationID: "a", Amount: 10.50},
		{LocationID: "a", Amount: 4.25},
		{LocationID: "b", Amount: 99.99},
		{LocationID: "stale", Amount: 7},
	}

	totals := FoldTotals(ids, rows)

	if got := totals["a"]; got != 14.75 {
		t.Errorf("totals[a] = %v, want 14.75", got)
	}
	if got := totals["b"]; got != 99.99 {
		t.Errorf("totals[b] = %v, want 99.99", got)
	}
	if got, ok := totals["c"]; !ok || got != 0 {
		t.Errorf("totals[c] = %v (present=%v), want 0 default", got, ok)
	}
}

func TestFoldTotalsEmptyInput(t *testing.T) {
	totals := FoldTotals(nil, nil)
	if len(totals) != 0 {
		t.Errorf("got %d entries, want empty map", len(totals))
	}
}

// The batch fold must agree with summing each location on its own.
func TestFoldTotalsMatchesPerLocationSums(t *testing.T) {
	ids := []string{"x", "y"}
	rows := []LocationAmount{
		{LocationID: "x", Amount: 1.10},
		{LocationID: "y", Amount: 2.20},
		{LocationID: "x", Amount: 3.30},
		{LocationID: "y", Amount: 4.40},
	}

	batch := FoldTotals(ids, rows)

	for _, id := range ids {
		var single float64
		for _, r := range rows {
			if r.LocationID == id {
				single += r.Amount
			}
		}
		if batch[id] != single {
			t.Errorf("batch[%s] = %v, per-location sum = %v", id, batch[id], single)
		}
	}
}
