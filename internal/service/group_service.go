package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/evenup/evenup/internal/models"
	"github.com/evenup/evenup/internal/storage"
)

// GroupService manages group rosters.
type GroupService struct {
	store storage.Store
}

// NewGroupService creates a GroupService.
func NewGroupService(store storage.Store) *GroupService {
	return &GroupService{store: store}
}

// CreateGroup validates and persists a new group. Member names are trimmed
// and deduplicated while keeping first-seen order, since the roster order
// drives deterministic settlement output.
func (g *GroupService) CreateGroup(ctx context.Context, name string, members []string, createdBy string) (*models.Group, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("group name is required")
	}

	roster := normalizeNames(members)
	if len(roster) == 0 {
		return nil, fmt.Errorf("group needs at least one member")
	}

	group := &models.Group{
		Name:      strings.TrimSpace(name),
		Members:   roster,
		CreatedBy: createdBy,
	}
	if err := g.store.CreateGroup(ctx, group); err != nil {
		return nil, fmt.Errorf("failed to create group: %w", err)
	}
	return group, nil
}

// GetGroup retrieves a group by ID.
func (g *GroupService) GetGroup(ctx context.Context, groupID string) (*models.Group, error) {
	return g.store.GetGroup(ctx, groupID)
}

// ListGroups retrieves all groups.
func (g *GroupService) ListGroups(ctx context.Context) ([]*models.Group, error) {
	return g.store.ListGroups(ctx)
}

// AddMembers appends new names to the roster.
func (g *GroupService) AddMembers(ctx context.Context, groupID string, names []string) (*models.Group, error) {
	roster := normalizeNames(names)
	if len(roster) == 0 {
		return nil, fmt.Errorf("no member names provided")
	}

	if _, err := g.store.GetGroup(ctx, groupID); err != nil {
		return nil, err
	}
	if err := g.store.AddGroupMembers(ctx, groupID, roster); err != nil {
		return nil, fmt.Errorf("failed to add members: %w", err)
	}
	return g.store.GetGroup(ctx, groupID)
}

// DeleteGroup removes a group and everything in it.
func (g *GroupService) DeleteGroup(ctx context.Context, groupID string) error {
	return g.store.DeleteGroup(ctx, groupID)
}

// ensureMembers adds any of the given names missing from the group roster,
// so an expense naming someone new quietly grows the group. Failures are
// logged, not returned: the expense itself already persisted.
func ensureMembers(ctx context.Context, store storage.Store, groupID string, names []string) {
	group, err := store.GetGroup(ctx, groupID)
	if err != nil {
		slog.Warn("ensureMembers: failed to get group", "group_id", groupID, "error", err)
		return
	}

	existing := make(map[string]bool, len(group.Members))
	for _, m := range group.Members {
		existing[m] = true
	}
	var missing []string
	for _, name := range names {
		if !existing[name] {
			existing[name] = true
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return
	}

	if err := store.AddGroupMembers(ctx, groupID, missing); err != nil {
		slog.Error("ensureMembers: failed to add members", "group_id", groupID, "error", err)
		return
	}
	slog.Info("Auto-added members to group", "group_id", groupID, "new_members", missing)
}

// normalizeNames trims whitespace and removes empty and duplicate names,
// preserving first-seen order.
func normalizeNames(names []string) []string {
	seen := make(map[string]bool, len(names))
	var out []string
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}
