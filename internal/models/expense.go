package models

// SplitMode selects how an expense is divided among its participants.
type SplitMode string

const (
	// SplitEqual divides the amount evenly across all participants.
	SplitEqual SplitMode = "equal"
	// SplitCustom assigns each participant an explicit amount via Shares.
	SplitCustom SplitMode = "custom"
)

// Expense represents one shared purchase within a group.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// GroupID is the group this expense belongs to.
	GroupID string

	// Description is a short human-readable label (e.g., "Dinner", "Taxi").
	Description string

	// Amount is the full amount paid, in the group's (single) currency.
	Amount float64

	// PaidBy is the name of the member who paid the full amount.
	PaidBy string

	// Split selects equal or custom division.
	Split SplitMode

	// Participants are the member names sharing this expense. An empty
	// list means the amount was paid but is not attributed to anyone.
	Participants []string

	// Shares maps participant name to the exact amount they owe.
	// Only meaningful when Split is SplitCustom; the service layer checks
	// that the shares cover Participants and sum to Amount.
	Shares map[string]float64

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64

	// CreatedBy is the user ID who recorded this expense.
	CreatedBy string
}

// Settlement represents a recorded payment between group members to clear
// debts. Unlike a Transfer suggestion from the calculator, a Settlement is
// a fact: the money actually moved.
type Settlement struct {
	// ID is the unique identifier for the settlement (UUID format).
	ID string

	// GroupID is the group this settlement belongs to.
	GroupID string

	// From is the member who paid (debtor settling up).
	From string

	// To is the member who received payment (creditor being paid).
	To string

	// Amount is the payment amount.
	Amount float64

	// CreatedAt is the Unix timestamp when the settlement was recorded.
	CreatedAt int64

	// CreatedBy is the user ID who recorded this settlement.
	CreatedBy string

	// Note is an optional description for the settlement.
	Note string
}
