package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/evenup/evenup/internal/models"
)

// CreateExpense persists a new expense with its participant shares.
func (s *SQLiteStore) CreateExpense(ctx context.Context, expense *models.Expense) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO expenses (id, group_id, description, amount, paid_by, split_mode, created_at, created_by)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		expense.ID, expense.GroupID, expense.Description, expense.Amount,
		expense.PaidBy, string(expense.Split), expense.CreatedAt, expense.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	for i, participant := range expense.Participants {
		var share interface{}
		if expense.Split == models.SplitCustom {
			if v, ok := expense.Shares[participant]; ok {
				share = v
			}
		}
		_, err = tx.ExecContext(ctx,
			"INSERT INTO expense_shares (expense_id, participant, share, position) VALUES (?, ?, ?, ?)",
			expense.ID, participant, share, i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert expense share: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetExpense retrieves an expense by ID, shares included.
func (s *SQLiteStore) GetExpense(ctx context.Context, expenseID string) (*models.Expense, error) {
	expense := &models.Expense{}
	var mode string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, group_id, description, amount, paid_by, split_mode, created_at, created_by
		 FROM expenses WHERE id = ?`,
		expenseID,
	).Scan(&expense.ID, &expense.GroupID, &expense.Description, &expense.Amount,
		&expense.PaidBy, &mode, &expense.CreatedAt, &expense.CreatedBy)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("expense not found: %s", expenseID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}
	expense.Split = models.SplitMode(mode)

	if err := s.loadShares(ctx, expense); err != nil {
		return nil, err
	}
	return expense, nil
}

// ListExpensesByGroup retrieves a group's expenses in creation order.
func (s *SQLiteStore) ListExpensesByGroup(ctx context.Context, groupID string) ([]*models.Expense, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, group_id, description, amount, paid_by, split_mode, created_at, created_by
		 FROM expenses WHERE group_id = ? ORDER BY created_at, id`,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses by group: %w", err)
	}
	defer rows.Close()

	var expenses []*models.Expense
	for rows.Next() {
		expense := &models.Expense{}
		var mode string
		if err := rows.Scan(&expense.ID, &expense.GroupID, &expense.Description, &expense.Amount,
			&expense.PaidBy, &mode, &expense.CreatedAt, &expense.CreatedBy); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expense.Split = models.SplitMode(mode)
		expenses = append(expenses, expense)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	for _, expense := range expenses {
		if err := s.loadShares(ctx, expense); err != nil {
			return nil, err
		}
	}
	return expenses, nil
}

// DeleteExpense removes an expense by ID; shares cascade.
func (s *SQLiteStore) DeleteExpense(ctx context.Context, expenseID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM expenses WHERE id = ?", expenseID)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("expense not found: %s", expenseID)
	}
	return nil
}

func (s *SQLiteStore) loadShares(ctx context.Context, expense *models.Expense) error {
	rows, err := s.db.QueryContext(ctx,
		"SELECT participant, share FROM expense_shares WHERE expense_id = ? ORDER BY position",
		expense.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to get expense shares: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var participant string
		var share sql.NullFloat64
		if err := rows.Scan(&participant, &share); err != nil {
			return fmt.Errorf("failed to scan expense share: %w", err)
		}
		expense.Participants = append(expense.Participants, participant)
		if share.Valid {
			if expense.Shares == nil {
				expense.Shares = make(map[string]float64)
			}
			expense.Shares[participant] = share.Float64
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate expense shares: %w", err)
	}
	return nil
}
