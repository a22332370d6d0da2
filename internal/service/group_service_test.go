package service

import (
	"context"
	"testing"
)

func TestCreateGroup(t *testing.T) {
	store := newTestStore(t)
	svc := NewGroupService(store)
	ctx := context.Background()

	t.Run("normalizes member names", func(t *testing.T) {
		group, err := svc.CreateGroup(ctx, "  Trip  ", []string{" Alice ", "Bob", "Alice", "", "Charlie"}, "user-1")
		if err != nil {
			t.Fatalf("CreateGroup failed: %v", err)
		}
		if group.Name != "Trip" {
			t.Errorf("Name = %q, want Trip", group.Name)
		}
		want := []string{"Alice", "Bob", "Charlie"}
		if len(group.Members) != len(want) {
			t.Fatalf("Members = %v, want %v", group.Members, want)
		}
		for i, name := range want {
			if group.Members[i] != name {
				t.Errorf("Members[%d] = %s, want %s", i, group.Members[i], name)
			}
		}
		if group.CreatedBy != "user-1" {
			t.Errorf("CreatedBy = %q, want user-1", group.CreatedBy)
		}
	})

	t.Run("empty name rejected", func(t *testing.T) {
		if _, err := svc.CreateGroup(ctx, "   ", []string{"Alice"}, ""); err == nil {
			t.Error("expected error for empty name")
		}
	})

	t.Run("empty roster rejected", func(t *testing.T) {
		if _, err := svc.CreateGroup(ctx, "Trip", []string{" ", ""}, ""); err == nil {
			t.Error("expected error for empty roster")
		}
	})
}

func TestAddMembers(t *testing.T) {
	store := newTestStore(t)
	svc := NewGroupService(store)
	ctx := context.Background()

	group, err := svc.CreateGroup(ctx, "Flat", []string{"Alice"}, "")
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}

	updated, err := svc.AddMembers(ctx, group.ID, []string{"Bob", "Alice"})
	if err != nil {
		t.Fatalf("AddMembers failed: %v", err)
	}
	if len(updated.Members) != 2 || updated.Members[1] != "Bob" {
		t.Errorf("Members = %v, want [Alice Bob]", updated.Members)
	}

	if _, err := svc.AddMembers(ctx, "no-such-group", []string{"Bob"}); err == nil {
		t.Error("expected error for unknown group")
	}
	if _, err := svc.AddMembers(ctx, group.ID, []string{"  "}); err == nil {
		t.Error("expected error for no usable names")
	}
}

func TestListAndDeleteGroups(t *testing.T) {
	store := newTestStore(t)
	svc := NewGroupService(store)
	ctx := context.Background()

	a, err := svc.CreateGroup(ctx, "A", []string{"Alice"}, "")
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	if _, err := svc.CreateGroup(ctx, "B", []string{"Bob"}, ""); err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}

	groups, err := svc.ListGroups(ctx)
	if err != nil {
		t.Fatalf("ListGroups failed: %v", err)
	}
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}

	if err := svc.DeleteGroup(ctx, a.ID); err != nil {
		t.Fatalf("DeleteGroup failed: %v", err)
	}
	groups, err = svc.ListGroups(ctx)
	if err != nil {
		t.Fatalf("ListGroups failed: %v", err)
	}
	if len(groups) != 1 || groups[0].Name != "B" {
		t.Errorf("groups after delete = %+v, want only B", groups)
	}
}
