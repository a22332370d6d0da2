package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/evenup/evenup/internal/calculator"
	"github.com/evenup/evenup/internal/events"
	"github.com/evenup/evenup/internal/models"
	"github.com/evenup/evenup/internal/storage"
)

// ExpenseService manages expenses and settlements and produces group
// balance reports. It is the validation boundary the calculator engine
// relies on: everything reaching the engine has been checked here.
type ExpenseService struct {
	store     storage.Store
	publisher events.Publisher
}

// NewExpenseService creates an ExpenseService. publisher may be nil when
// eventing is disabled.
func NewExpenseService(store storage.Store, publisher events.Publisher) *ExpenseService {
	return &ExpenseService{store: store, publisher: publisher}
}

// validateExpense checks expense well-formedness before it reaches storage
// or the calculator.
func validateExpense(expense *models.Expense) error {
	if expense.Amount <= 0 {
		return fmt.Errorf("amount must be positive")
	}
	if strings.TrimSpace(expense.PaidBy) == "" {
		return fmt.Errorf("paid_by is required")
	}

	switch expense.Split {
	case models.SplitEqual:
		// Empty participant lists are allowed: the amount is paid but not
		// attributed to anyone.
	case models.SplitCustom:
		if len(expense.Participants) == 0 {
			return fmt.Errorf("custom split requires participants")
		}
		inExpense := make(map[string]bool, len(expense.Participants))
		for _, p := range expense.Participants {
			inExpense[p] = true
		}
		var sum float64
		for name, share := range expense.Shares {
			if !inExpense[name] {
				return fmt.Errorf("share for '%s' who is not a participant", name)
			}
			if share < 0 {
				return fmt.Errorf("share for '%s' must not be negative", name)
			}
			sum += share
		}
		if math.Abs(sum-expense.Amount) > calculator.Tolerance {
			return fmt.Errorf("custom shares sum to %.2f, expected %.2f", sum, expense.Amount)
		}
	default:
		return fmt.Errorf("unknown split mode '%s'", expense.Split)
	}

	return nil
}

// CreateExpense validates and persists an expense, grows the group roster
// with any new names, and publishes an event.
func (e *ExpenseService) CreateExpense(ctx context.Context, expense *models.Expense) (*models.Expense, error) {
	if _, err := e.store.GetGroup(ctx, expense.GroupID); err != nil {
		return nil, err
	}
	expense.Participants = normalizeNames(expense.Participants)
	if err := validateExpense(expense); err != nil {
		return nil, err
	}

	if err := e.store.CreateExpense(ctx, expense); err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}

	names := append([]string{expense.PaidBy}, expense.Participants...)
	ensureMembers(ctx, e.store, expense.GroupID, names)

	e.publish(ctx, events.NewMessage(events.TypeExpenseCreated, expense.GroupID, expense.ID, expense.Amount))
	return expense, nil
}

// ListExpenses retrieves a group's expenses in creation order.
func (e *ExpenseService) ListExpenses(ctx context.Context, groupID string) ([]*models.Expense, error) {
	if _, err := e.store.GetGroup(ctx, groupID); err != nil {
		return nil, err
	}
	return e.store.ListExpensesByGroup(ctx, groupID)
}

// DeleteExpense removes an expense.
func (e *ExpenseService) DeleteExpense(ctx context.Context, expenseID string) error {
	return e.store.DeleteExpense(ctx, expenseID)
}

// RecordSettlement validates and persists a real-world payment between two
// members and publishes an event.
func (e *ExpenseService) RecordSettlement(ctx context.Context, settlement *models.Settlement) (*models.Settlement, error) {
	if settlement.Amount <= 0 {
		return nil, fmt.Errorf("amount must be positive")
	}
	settlement.From = strings.TrimSpace(settlement.From)
	settlement.To = strings.TrimSpace(settlement.To)
	if settlement.From == "" || settlement.To == "" {
		return nil, fmt.Errorf("both from and to are required")
	}
	if settlement.From == settlement.To {
		return nil, fmt.Errorf("cannot settle with yourself")
	}

	group, err := e.store.GetGroup(ctx, settlement.GroupID)
	if err != nil {
		return nil, err
	}
	onRoster := make(map[string]bool, len(group.Members))
	for _, m := range group.Members {
		onRoster[m] = true
	}
	if !onRoster[settlement.From] || !onRoster[settlement.To] {
		return nil, fmt.Errorf("both from and to must be group members")
	}

	if err := e.store.CreateSettlement(ctx, settlement); err != nil {
		return nil, fmt.Errorf("failed to record settlement: %w", err)
	}

	e.publish(ctx, events.NewMessage(events.TypeSettlementRecorded, settlement.GroupID, settlement.ID, settlement.Amount))
	return settlement, nil
}

// ListSettlements retrieves a group's recorded settlements.
func (e *ExpenseService) ListSettlements(ctx context.Context, groupID string) ([]*models.Settlement, error) {
	if _, err := e.store.GetGroup(ctx, groupID); err != nil {
		return nil, err
	}
	return e.store.ListSettlementsByGroup(ctx, groupID)
}

// DeleteSettlement removes a recorded settlement.
func (e *ExpenseService) DeleteSettlement(ctx context.Context, settlementID string) error {
	return e.store.DeleteSettlement(ctx, settlementID)
}

// BalanceReport is the computed position of one group: per-member balances
// in roster order plus the suggested transfer plan.
type BalanceReport struct {
	GroupID   string
	Balances  []*calculator.Balance
	Transfers []calculator.Transfer
}

// GroupBalances loads a group's expenses and recorded settlements, runs the
// calculator engine, and returns balances in roster order with the
// suggested settlement plan.
func (e *ExpenseService) GroupBalances(ctx context.Context, groupID string) (*BalanceReport, error) {
	group, err := e.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	expenses, err := e.store.ListExpensesByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	settlements, err := e.store.ListSettlementsByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	calcExpenses := make([]calculator.Expense, len(expenses))
	for i, exp := range expenses {
		calcExpenses[i] = calculator.Expense{
			Amount:       exp.Amount,
			PaidBy:       exp.PaidBy,
			Split:        calculator.SplitMode(exp.Split),
			Participants: exp.Participants,
			CustomShares: exp.Shares,
		}
	}
	calcSettlements := make([]calculator.Settlement, len(settlements))
	for i, s := range settlements {
		calcSettlements[i] = calculator.Settlement{From: s.From, To: s.To, Amount: s.Amount}
	}

	balances := calculator.ComputeBalances(group.Members, calcExpenses)
	calculator.ApplySettlements(balances, calcSettlements)
	transfers := calculator.Simplify(group.Members, balances)

	ordered := make([]*calculator.Balance, 0, len(group.Members))
	for _, name := range group.Members {
		ordered = append(ordered, balances[name])
	}

	return &BalanceReport{
		GroupID:   groupID,
		Balances:  ordered,
		Transfers: transfers,
	}, nil
}

func (e *ExpenseService) publish(ctx context.Context, msg *events.Message) {
	if e.publisher == nil {
		return
	}
	if err := e.publisher.Publish(ctx, msg); err != nil {
		// Eventing is best-effort; the record is already persisted.
		slog.Error("Failed to publish event", "type", msg.Type, "entity_id", msg.EntityID, "error", err)
	}
}
