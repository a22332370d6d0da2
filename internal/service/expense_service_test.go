package service

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/evenup/evenup/internal/calculator"
	"github.com/evenup/evenup/internal/events"
	"github.com/evenup/evenup/internal/models"
	"github.com/evenup/evenup/internal/storage"
	"github.com/evenup/evenup/internal/storage/sqlite"
)

// recordingPublisher captures published events for assertions.
type recordingPublisher struct {
	messages []*events.Message
}

func (p *recordingPublisher) Publish(_ context.Context, msg *events.Message) error {
	p.messages = append(p.messages, msg)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func newTestStore(t *testing.T) storage.Store {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "evenup-service-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := sqlite.New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func createTestGroup(t *testing.T, store storage.Store, members ...string) *models.Group {
	t.Helper()
	group := &models.Group{Name: "Test Group", Members: members}
	if err := store.CreateGroup(context.Background(), group); err != nil {
		t.Fatalf("failed to create group: %v", err)
	}
	return group
}

func TestCreateExpense_Validation(t *testing.T) {
	store := newTestStore(t)
	svc := NewExpenseService(store, nil)
	group := createTestGroup(t, store, "Alice", "Bob")
	ctx := context.Background()

	tests := []struct {
		name    string
		expense *models.Expense
		wantErr bool
	}{
		{
			name: "valid equal split",
			expense: &models.Expense{
				GroupID: group.ID, Description: "Dinner", Amount: 40, PaidBy: "Alice",
				Split: models.SplitEqual, Participants: []string{"Alice", "Bob"},
			},
		},
		{
			name: "valid custom split",
			expense: &models.Expense{
				GroupID: group.ID, Description: "Groceries", Amount: 50, PaidBy: "Bob",
				Split: models.SplitCustom, Participants: []string{"Alice", "Bob"},
				Shares: map[string]float64{"Alice": 30, "Bob": 20},
			},
		},
		{
			name: "zero amount",
			expense: &models.Expense{
				GroupID: group.ID, Amount: 0, PaidBy: "Alice",
				Split: models.SplitEqual, Participants: []string{"Alice"},
			},
			wantErr: true,
		},
		{
			name: "negative amount",
			expense: &models.Expense{
				GroupID: group.ID, Amount: -5, PaidBy: "Alice",
				Split: models.SplitEqual, Participants: []string{"Alice"},
			},
			wantErr: true,
		},
		{
			name: "missing payer",
			expense: &models.Expense{
				GroupID: group.ID, Amount: 10, PaidBy: "  ",
				Split: models.SplitEqual, Participants: []string{"Alice"},
			},
			wantErr: true,
		},
		{
			name: "custom shares do not sum to amount",
			expense: &models.Expense{
				GroupID: group.ID, Amount: 50, PaidBy: "Alice",
				Split: models.SplitCustom, Participants: []string{"Alice", "Bob"},
				Shares: map[string]float64{"Alice": 10, "Bob": 20},
			},
			wantErr: true,
		},
		{
			name: "custom share for non-participant",
			expense: &models.Expense{
				GroupID: group.ID, Amount: 30, PaidBy: "Alice",
				Split: models.SplitCustom, Participants: []string{"Alice"},
				Shares: map[string]float64{"Alice": 10, "Mallory": 20},
			},
			wantErr: true,
		},
		{
			name: "unknown split mode",
			expense: &models.Expense{
				GroupID: group.ID, Amount: 30, PaidBy: "Alice",
				Split: models.SplitMode("percentage"), Participants: []string{"Alice"},
			},
			wantErr: true,
		},
		{
			name: "equal split with no participants is allowed",
			expense: &models.Expense{
				GroupID: group.ID, Description: "Unshared", Amount: 15, PaidBy: "Alice",
				Split: models.SplitEqual, Participants: nil,
			},
		},
		{
			name: "unknown group",
			expense: &models.Expense{
				GroupID: "no-such-group", Amount: 10, PaidBy: "Alice",
				Split: models.SplitEqual, Participants: []string{"Alice"},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateExpense(ctx, tt.expense)
			if (err != nil) != tt.wantErr {
				t.Errorf("CreateExpense() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestCreateExpense_AutoAddsNewNames(t *testing.T) {
	store := newTestStore(t)
	svc := NewExpenseService(store, nil)
	group := createTestGroup(t, store, "Alice", "Bob")
	ctx := context.Background()

	_, err := svc.CreateExpense(ctx, &models.Expense{
		GroupID: group.ID, Description: "Drinks", Amount: 30, PaidBy: "Charlie",
		Split: models.SplitEqual, Participants: []string{"Alice", "Bob", "Charlie"},
	})
	if err != nil {
		t.Fatalf("CreateExpense failed: %v", err)
	}

	got, err := store.GetGroup(ctx, group.ID)
	if err != nil {
		t.Fatalf("GetGroup failed: %v", err)
	}
	if len(got.Members) != 3 || got.Members[2] != "Charlie" {
		t.Errorf("Members = %v, want Charlie appended", got.Members)
	}
}

func TestCreateExpense_PublishesEvent(t *testing.T) {
	store := newTestStore(t)
	pub := &recordingPublisher{}
	svc := NewExpenseService(store, pub)
	group := createTestGroup(t, store, "Alice", "Bob")

	expense, err := svc.CreateExpense(context.Background(), &models.Expense{
		GroupID: group.ID, Description: "Lunch", Amount: 24, PaidBy: "Alice",
		Split: models.SplitEqual, Participants: []string{"Alice", "Bob"},
	})
	if err != nil {
		t.Fatalf("CreateExpense failed: %v", err)
	}

	if len(pub.messages) != 1 {
		t.Fatalf("expected 1 event, got %d", len(pub.messages))
	}
	msg := pub.messages[0]
	if msg.Type != events.TypeExpenseCreated || msg.EntityID != expense.ID || msg.GroupID != group.ID {
		t.Errorf("unexpected event: %+v", msg)
	}
}

func TestRecordSettlement(t *testing.T) {
	store := newTestStore(t)
	pub := &recordingPublisher{}
	svc := NewExpenseService(store, pub)
	group := createTestGroup(t, store, "Alice", "Bob")
	ctx := context.Background()

	t.Run("valid settlement publishes event", func(t *testing.T) {
		s, err := svc.RecordSettlement(ctx, &models.Settlement{
			GroupID: group.ID, From: "Bob", To: "Alice", Amount: 20,
		})
		if err != nil {
			t.Fatalf("RecordSettlement failed: %v", err)
		}
		if s.ID == "" {
			t.Error("expected settlement ID to be assigned")
		}
		if len(pub.messages) != 1 || pub.messages[0].Type != events.TypeSettlementRecorded {
			t.Errorf("expected settlement.recorded event, got %+v", pub.messages)
		}
	})

	t.Run("self settlement rejected", func(t *testing.T) {
		_, err := svc.RecordSettlement(ctx, &models.Settlement{
			GroupID: group.ID, From: "Alice", To: "Alice", Amount: 5,
		})
		if err == nil {
			t.Error("expected error for self settlement")
		}
	})

	t.Run("non-member rejected", func(t *testing.T) {
		_, err := svc.RecordSettlement(ctx, &models.Settlement{
			GroupID: group.ID, From: "Mallory", To: "Alice", Amount: 5,
		})
		if err == nil {
			t.Error("expected error for non-member")
		}
	})

	t.Run("non-positive amount rejected", func(t *testing.T) {
		_, err := svc.RecordSettlement(ctx, &models.Settlement{
			GroupID: group.ID, From: "Bob", To: "Alice", Amount: 0,
		})
		if err == nil {
			t.Error("expected error for zero amount")
		}
	})
}

func TestGroupBalances(t *testing.T) {
	store := newTestStore(t)
	svc := NewExpenseService(store, nil)
	group := createTestGroup(t, store, "Alice", "Bob", "Charlie")
	ctx := context.Background()

	_, err := svc.CreateExpense(ctx, &models.Expense{
		GroupID: group.ID, Description: "Dinner", Amount: 60, PaidBy: "Alice",
		Split: models.SplitEqual, Participants: []string{"Alice", "Bob", "Charlie"},
	})
	if err != nil {
		t.Fatalf("CreateExpense failed: %v", err)
	}

	report, err := svc.GroupBalances(ctx, group.ID)
	if err != nil {
		t.Fatalf("GroupBalances failed: %v", err)
	}

	if len(report.Balances) != 3 {
		t.Fatalf("expected 3 balances, got %d", len(report.Balances))
	}
	// Roster order.
	if report.Balances[0].Person != "Alice" || report.Balances[1].Person != "Bob" {
		t.Errorf("balances out of roster order: %+v", report.Balances)
	}
	if math.Abs(report.Balances[0].Net-40) > calculator.Tolerance {
		t.Errorf("Alice net = %v, want 40", report.Balances[0].Net)
	}
	if len(report.Transfers) != 2 {
		t.Fatalf("expected 2 transfers, got %+v", report.Transfers)
	}

	// A recorded payment should shrink the plan.
	if _, err := svc.RecordSettlement(ctx, &models.Settlement{
		GroupID: group.ID, From: "Bob", To: "Alice", Amount: 20,
	}); err != nil {
		t.Fatalf("RecordSettlement failed: %v", err)
	}

	report, err = svc.GroupBalances(ctx, group.ID)
	if err != nil {
		t.Fatalf("GroupBalances failed: %v", err)
	}
	if len(report.Transfers) != 1 {
		t.Fatalf("expected 1 remaining transfer, got %+v", report.Transfers)
	}
	if report.Transfers[0].From != "Charlie" || report.Transfers[0].To != "Alice" {
		t.Errorf("remaining transfer = %+v, want Charlie->Alice", report.Transfers[0])
	}
	if math.Abs(report.Transfers[0].Amount-20) > calculator.Tolerance {
		t.Errorf("remaining transfer amount = %v, want 20", report.Transfers[0].Amount)
	}
}

func TestGroupBalances_EmptyGroup(t *testing.T) {
	store := newTestStore(t)
	svc := NewExpenseService(store, nil)
	group := createTestGroup(t, store, "Alice", "Bob")

	report, err := svc.GroupBalances(context.Background(), group.ID)
	if err != nil {
		t.Fatalf("GroupBalances failed: %v", err)
	}
	for _, bal := range report.Balances {
		if bal.Paid != 0 || bal.Owed != 0 || bal.Net != 0 {
			t.Errorf("expected zero balance, got %+v", bal)
		}
	}
	if len(report.Transfers) != 0 {
		t.Errorf("expected no transfers, got %+v", report.Transfers)
	}
}
