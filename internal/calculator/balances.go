// Package calculator implements the balance-accounting and debt-simplification
// engine. Both entry points are pure functions: they keep no state between
// calls, perform no I/O, and always produce the same output for the same
// input. Callers own validation; the engine silently drops references to
// people outside the roster instead of failing.
package calculator

// Tolerance is the absolute monetary threshold below which a balance is
// considered settled. It absorbs the floating-point residue left by
// equal-split division and is used consistently for creditor/debtor
// classification and for suppressing near-zero transfers.
const Tolerance = 0.01

// SplitMode selects how an expense is divided among its participants.
type SplitMode string

const (
	// SplitEqual divides the amount evenly across all participants.
	SplitEqual SplitMode = "equal"
	// SplitCustom uses per-person amounts from Expense.CustomShares.
	SplitCustom SplitMode = "custom"
)

// Expense carries the minimal expense information needed for balance
// calculations.
type Expense struct {
	Amount       float64
	PaidBy       string
	Split        SplitMode
	Participants []string
	// CustomShares maps participant name to the exact amount they owe for
	// this expense. Only consulted when Split is SplitCustom. Entries for
	// people outside Participants are ignored.
	CustomShares map[string]float64
}

// Balance is one person's position within the group.
type Balance struct {
	Person string
	Paid   float64 // Total amount paid across all expenses
	Owed   float64 // Total amount this person owes
	Net    float64 // Paid - Owed. Positive = owed money, negative = owes money
}

// Settlement carries the minimal information about a recorded payment
// needed to fold it into balances.
type Settlement struct {
	From   string // Who paid (debtor settling up)
	To     string // Who received (creditor being paid)
	Amount float64
}

// ComputeBalances aggregates who paid what and who owes what across all
// expenses. The returned map has exactly one entry per roster member,
// zero-activity members included, so callers can render inactive members
// too.
//
// Algorithm:
//   - Every roster member starts at {0, 0, 0}.
//   - For each expense the payer's Paid grows by the full amount, and each
//     participant's Owed grows by their share (equal division or their
//     custom share).
//   - Net = Paid - Owed.
//
// A payer or sharer not on the roster is skipped without error: a stale
// reference drops its contribution rather than corrupting the result. An
// equal-split expense with no participants credits the payer but attributes
// the amount to nobody.
func ComputeBalances(roster []string, expenses []Expense) map[string]*Balance {
	balances := make(map[string]*Balance, len(roster))
	for _, name := range roster {
		balances[name] = &Balance{Person: name}
	}

	for _, exp := range expenses {
		if bal, ok := balances[exp.PaidBy]; ok {
			bal.Paid += exp.Amount
		}

		switch exp.Split {
		case SplitCustom:
			for _, name := range exp.Participants {
				if bal, ok := balances[name]; ok {
					bal.Owed += exp.CustomShares[name]
				}
			}
		default:
			if len(exp.Participants) == 0 {
				// Paid but shared with nobody; nothing to attribute.
				continue
			}
			share := exp.Amount / float64(len(exp.Participants))
			for _, name := range exp.Participants {
				if bal, ok := balances[name]; ok {
					bal.Owed += share
				}
			}
		}
	}

	for _, bal := range balances {
		bal.Net = bal.Paid - bal.Owed
	}

	return balances
}

// ApplySettlements folds recorded payments into an existing balance map.
// A settlement improves the payer's position (they effectively paid toward
// their debt) and reduces the receiver's outstanding credit. Names not
// present in the map are skipped, mirroring ComputeBalances.
func ApplySettlements(balances map[string]*Balance, settlements []Settlement) {
	for _, s := range settlements {
		if bal, ok := balances[s.From]; ok {
			bal.Paid += s.Amount
		}
		if bal, ok := balances[s.To]; ok {
			bal.Owed += s.Amount
		}
	}
	for _, bal := range balances {
		bal.Net = bal.Paid - bal.Owed
	}
}
