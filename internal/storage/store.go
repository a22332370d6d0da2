// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"

	"github.com/evenup/evenup/internal/models"
)

// Store defines the interface for persistence operations. The abstraction
// allows swapping storage backends (SQLite, PostgreSQL, ...) without
// changing the service layer.
type Store interface {
	// CreateUser persists a new user account.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail retrieves a user by email. Returns (nil, nil) when no
	// such user exists.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByID retrieves a user by ID. Returns (nil, nil) when no such
	// user exists.
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// CreateGroup persists a new group with its member roster.
	// The group.ID field will be populated by the store if empty.
	CreateGroup(ctx context.Context, group *models.Group) error

	// GetGroup retrieves a group by ID, members in roster order.
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)

	// ListGroups retrieves all groups, newest first.
	ListGroups(ctx context.Context) ([]*models.Group, error)

	// AddGroupMembers appends names to the group roster, preserving order.
	// Names already on the roster are ignored.
	AddGroupMembers(ctx context.Context, groupID string, names []string) error

	// DeleteGroup removes a group and all of its expenses and settlements.
	DeleteGroup(ctx context.Context, groupID string) error

	// CreateExpense persists a new expense with its participant shares.
	CreateExpense(ctx context.Context, expense *models.Expense) error

	// GetExpense retrieves an expense by ID.
	GetExpense(ctx context.Context, expenseID string) (*models.Expense, error)

	// ListExpensesByGroup retrieves a group's expenses in creation order.
	ListExpensesByGroup(ctx context.Context, groupID string) ([]*models.Expense, error)

	// DeleteExpense removes an expense by ID.
	DeleteExpense(ctx context.Context, expenseID string) error

	// CreateSettlement persists a recorded payment.
	CreateSettlement(ctx context.Context, settlement *models.Settlement) error

	// ListSettlementsByGroup retrieves a group's settlements in creation order.
	ListSettlementsByGroup(ctx context.Context, groupID string) ([]*models.Settlement, error)

	// DeleteSettlement removes a settlement by ID.
	DeleteSettlement(ctx context.Context, settlementID string) error

	// Close releases any resources held by the store.
	Close() error
}
