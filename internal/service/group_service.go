package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/billsyncorg/billsync/internal/metrics"
	"github.com/billsyncorg/billsync/internal/models"
	"github.com/billsyncorg/billsync/internal/storage"
)

// GroupService handles group creation, lookup, and membership updates.
type GroupService struct {
	store storage.Store
	users *UserService
}

// NewGroupService creates a new group service.
func NewGroupService(store storage.Store, users *UserService) *GroupService {
	return &GroupService{store: store, users: users}
}

// CreateGroupRequest names a new group and its initial member list.
type CreateGroupRequest struct {
	GroupName string   `json:"groupName"`
	UserIDs   []string `json:"userIds"`
}

// UpdateGroupRequest renames a group and/or adds members to it.
type UpdateGroupRequest struct {
	GroupID      string   `json:"groupId"`
	NewGroupName string   `json:"newGroupName,omitempty"`
	AddUserIDs   []string `json:"addUserIds,omitempty"`
}

// CreateGroup validates that every initial member is a registered user and
// persists the group with an empty debt ledger.
func (s *GroupService) CreateGroup(ctx context.Context, req CreateGroupRequest) (*models.Group, error) {
	if req.GroupName == "" {
		return nil, &ValidationError{Reason: "group name is required"}
	}
	if len(req.UserIDs) == 0 {
		return nil, &ValidationError{Reason: "a group needs at least one member"}
	}

	if err := s.users.CheckAllUsersExist(ctx, req.UserIDs); err != nil {
		return nil, err
	}

	group := &models.Group{
		Name:  req.GroupName,
		Debts: make(map[string]map[string]float64),
	}
	group.AddMembers(req.UserIDs)

	if err := s.store.CreateGroup(ctx, group); err != nil {
		return nil, err
	}

	metrics.GroupsCreated.Inc()
	slog.Info("Group created", "group_id", group.ID, "name", group.Name, "members", len(group.Members))
	return group, nil
}

// GetGroup retrieves a group with its members and debt ledger.
func (s *GroupService) GetGroup(ctx context.Context, groupID string) (*models.Group, error) {
	return s.store.GetGroup(ctx, groupID)
}

// UpdateGroup renames the group and/or adds members. New members must be
// registered users; duplicates are collapsed. The renamed group must keep a
// unique name.
func (s *GroupService) UpdateGroup(ctx context.Context, req UpdateGroupRequest) (*models.Group, error) {
	group, err := s.store.GetGroup(ctx, req.GroupID)
	if err != nil {
		return nil, err
	}

	if req.NewGroupName != "" {
		group.Name = req.NewGroupName
	}

	if len(req.AddUserIDs) > 0 {
		if err := s.users.CheckAllUsersExist(ctx, req.AddUserIDs); err != nil {
			return nil, err
		}
		group.AddMembers(req.AddUserIDs)
	}

	if err := s.store.UpdateGroup(ctx, group); err != nil {
		if errors.Is(err, storage.ErrConflict) {
			return nil, fmt.Errorf("%w: group name already exists, please choose a unique name", err)
		}
		return nil, err
	}

	slog.Info("Group updated", "group_id", group.ID, "name", group.Name, "members", len(group.Members))
	return group, nil
}
