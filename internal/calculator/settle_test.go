package calculator

import (
	"math"
	"testing"
)

func TestSimplify(t *testing.T) {
	tests := []struct {
		name         string
		roster       []string
		nets         map[string]float64
		validateFunc func(t *testing.T, transfers []Transfer)
	}{
		{
			name:   "one payer two debtors",
			roster: []string{"Alice", "Bob", "Charlie"},
			nets:   map[string]float64{"Alice": 40, "Bob": -20, "Charlie": -20},
			validateFunc: func(t *testing.T, transfers []Transfer) {
				if len(transfers) != 2 {
					t.Fatalf("expected 2 transfers, got %d: %+v", len(transfers), transfers)
				}
				assertHasTransfer(t, transfers, "Bob", "Alice", 20)
				assertHasTransfer(t, transfers, "Charlie", "Alice", 20)
			},
		},
		{
			name:   "custom split shape",
			roster: []string{"Alice", "Bob", "Charlie"},
			nets:   map[string]float64{"Alice": -40, "Bob": 65, "Charlie": -25},
			validateFunc: func(t *testing.T, transfers []Transfer) {
				if len(transfers) != 2 {
					t.Fatalf("expected 2 transfers, got %d: %+v", len(transfers), transfers)
				}
				assertHasTransfer(t, transfers, "Alice", "Bob", 40)
				assertHasTransfer(t, transfers, "Charlie", "Bob", 25)
			},
		},
		{
			name:   "three-way cycle collapses to two transfers",
			roster: []string{"Alice", "Bob", "Charlie"},
			nets:   map[string]float64{"Alice": 70, "Bob": -30, "Charlie": -40},
			validateFunc: func(t *testing.T, transfers []Transfer) {
				if len(transfers) != 2 {
					t.Fatalf("expected 2 transfers, got %d: %+v", len(transfers), transfers)
				}
				// Largest debt first: Charlie owes 40, then Bob owes 30.
				if transfers[0].From != "Charlie" || transfers[0].To != "Alice" {
					t.Errorf("first transfer = %+v, want Charlie->Alice", transfers[0])
				}
				assertHasTransfer(t, transfers, "Bob", "Alice", 30)
				assertHasTransfer(t, transfers, "Charlie", "Alice", 40)
			},
		},
		{
			name:   "all settled returns no transfers",
			roster: []string{"Alice", "Bob"},
			nets:   map[string]float64{"Alice": 0, "Bob": 0},
			validateFunc: func(t *testing.T, transfers []Transfer) {
				if len(transfers) != 0 {
					t.Errorf("expected no transfers, got %+v", transfers)
				}
			},
		},
		{
			name:   "sub-cent residue is treated as settled",
			roster: []string{"Alice", "Bob", "Charlie"},
			nets:   map[string]float64{"Alice": 0.004, "Bob": -0.009, "Charlie": 0.005},
			validateFunc: func(t *testing.T, transfers []Transfer) {
				if len(transfers) != 0 {
					t.Errorf("expected no transfers within tolerance band, got %+v", transfers)
				}
			},
		},
		{
			name:   "equal amounts advance both cursors",
			roster: []string{"Alice", "Bob", "Charlie", "Dora"},
			nets:   map[string]float64{"Alice": 50, "Bob": -50, "Charlie": 25, "Dora": -25},
			validateFunc: func(t *testing.T, transfers []Transfer) {
				if len(transfers) != 2 {
					t.Fatalf("expected 2 transfers, got %d: %+v", len(transfers), transfers)
				}
				assertHasTransfer(t, transfers, "Bob", "Alice", 50)
				assertHasTransfer(t, transfers, "Dora", "Charlie", 25)
			},
		},
		{
			name:   "tied amounts keep roster order",
			roster: []string{"Alice", "Bob", "Charlie"},
			nets:   map[string]float64{"Alice": 20, "Bob": -10, "Charlie": -10},
			validateFunc: func(t *testing.T, transfers []Transfer) {
				if len(transfers) != 2 {
					t.Fatalf("expected 2 transfers, got %d: %+v", len(transfers), transfers)
				}
				if transfers[0].From != "Bob" {
					t.Errorf("tied debtors should keep roster order, first = %+v", transfers[0])
				}
				if transfers[1].From != "Charlie" {
					t.Errorf("tied debtors should keep roster order, second = %+v", transfers[1])
				}
			},
		},
		{
			name:   "unbalanced input terminates with residual tail",
			roster: []string{"Alice", "Bob"},
			nets:   map[string]float64{"Alice": 100, "Bob": -30},
			validateFunc: func(t *testing.T, transfers []Transfer) {
				if len(transfers) != 1 {
					t.Fatalf("expected 1 transfer, got %d: %+v", len(transfers), transfers)
				}
				assertHasTransfer(t, transfers, "Bob", "Alice", 30)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transfers := Simplify(tt.roster, balancesFromNets(tt.nets))
			for _, tr := range transfers {
				if tr.From == tr.To {
					t.Errorf("self-transfer emitted: %+v", tr)
				}
				if tr.Amount <= Tolerance {
					t.Errorf("transfer at or below tolerance emitted: %+v", tr)
				}
			}
			tt.validateFunc(t, transfers)
		})
	}
}

// TestSimplify_SettlesBalances replays the emitted transfers against a copy
// of the balances and checks everyone ends within tolerance of zero.
func TestSimplify_SettlesBalances(t *testing.T) {
	roster := []string{"Alice", "Bob", "Charlie", "Dora", "Eve"}
	expenses := []Expense{
		{Amount: 100, PaidBy: "Alice", Split: SplitEqual, Participants: roster},
		{Amount: 33.34, PaidBy: "Bob", Split: SplitEqual, Participants: []string{"Bob", "Charlie", "Dora"}},
		{Amount: 80, PaidBy: "Charlie", Split: SplitCustom, Participants: roster,
			CustomShares: map[string]float64{"Alice": 16, "Bob": 16, "Charlie": 16, "Dora": 16, "Eve": 16}},
		{Amount: 12.5, PaidBy: "Eve", Split: SplitEqual, Participants: []string{"Alice", "Eve"}},
	}

	balances := ComputeBalances(roster, expenses)
	transfers := Simplify(roster, balances)

	nets := make(map[string]float64, len(balances))
	for name, bal := range balances {
		nets[name] = bal.Net
	}
	for _, tr := range transfers {
		nets[tr.From] += tr.Amount
		nets[tr.To] -= tr.Amount
	}
	for name, net := range nets {
		if math.Abs(net) > Tolerance {
			t.Errorf("%s left with net %v after applying all transfers", name, net)
		}
	}
}

func TestSimplify_Deterministic(t *testing.T) {
	roster := []string{"Alice", "Bob", "Charlie", "Dora"}
	nets := map[string]float64{"Alice": 30, "Bob": -10, "Charlie": -10, "Dora": -10}

	first := Simplify(roster, balancesFromNets(nets))
	second := Simplify(roster, balancesFromNets(nets))

	if len(first) != len(second) {
		t.Fatalf("run lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("transfer %d differs: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestSimplify_IgnoresNamesMissingFromMap(t *testing.T) {
	roster := []string{"Alice", "Bob", "Ghost"}
	balances := balancesFromNets(map[string]float64{"Alice": 10, "Bob": -10})

	transfers := Simplify(roster, balances)
	if len(transfers) != 1 {
		t.Fatalf("expected 1 transfer, got %+v", transfers)
	}
	assertHasTransfer(t, transfers, "Bob", "Alice", 10)
}

func balancesFromNets(nets map[string]float64) map[string]*Balance {
	balances := make(map[string]*Balance, len(nets))
	for name, net := range nets {
		balances[name] = &Balance{Person: name, Net: net}
	}
	return balances
}

func assertHasTransfer(t *testing.T, transfers []Transfer, from, to string, amount float64) {
	t.Helper()
	for _, tr := range transfers {
		if tr.From == from && tr.To == to {
			if math.Abs(tr.Amount-amount) > 0.01 {
				t.Errorf("%s->%s amount = %v, want %v", from, to, tr.Amount, amount)
			}
			return
		}
	}
	t.Errorf("missing transfer %s->%s in %+v", from, to, transfers)
}
