package calculator

import "sort"

// Transfer is a single recommended payment from a debtor to a creditor.
type Transfer struct {
	From   string  // Person who owes
	To     string  // Person who is owed
	Amount float64
}

// side is one entry in the creditor or debtor working list.
type side struct {
	person    string
	remaining float64
}

// Simplify reduces a balance map to a short list of point-to-point payments
// that settle every member to within Tolerance of zero. It is a greedy
// heuristic (largest debt against largest credit), not an optimal
// min-transaction solver.
//
// The roster fixes iteration order: creditors and debtors are collected in
// roster order and then stable-sorted descending by amount, so members with
// equal balances keep their roster relative order and the output is fully
// deterministic. Roster names missing from the map are skipped.
//
// Transfers are returned in emission order; applying them in sequence
// against a running copy of the balances settles the group. If the input
// does not sum to (approximately) zero the loop still terminates, leaving
// residual balance on the longer side's unmatched tail.
func Simplify(roster []string, balances map[string]*Balance) []Transfer {
	var creditors, debtors []side
	for _, name := range roster {
		bal, ok := balances[name]
		if !ok {
			continue
		}
		switch {
		case bal.Net > Tolerance:
			creditors = append(creditors, side{person: name, remaining: bal.Net})
		case bal.Net < -Tolerance:
			debtors = append(debtors, side{person: name, remaining: -bal.Net})
		}
	}

	sort.SliceStable(creditors, func(i, j int) bool {
		return creditors[i].remaining > creditors[j].remaining
	})
	sort.SliceStable(debtors, func(i, j int) bool {
		return debtors[i].remaining > debtors[j].remaining
	})

	var transfers []Transfer
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		debtor := &debtors[i]
		creditor := &creditors[j]

		amount := debtor.remaining
		if creditor.remaining < amount {
			amount = creditor.remaining
		}

		if amount > Tolerance {
			transfers = append(transfers, Transfer{
				From:   debtor.person,
				To:     creditor.person,
				Amount: amount,
			})
		}

		debtor.remaining -= amount
		creditor.remaining -= amount

		// Both cursors advance in the same step when the amounts matched
		// exactly; that is what keeps the transfer count low.
		if debtor.remaining < Tolerance {
			i++
		}
		if creditor.remaining < Tolerance {
			j++
		}
	}

	return transfers
}
