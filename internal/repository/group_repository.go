package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"feedsng/internal/db"
	"feedsng/internal/model"
	"feedsng/internal/snowflake"
)

type GroupRepository interface {
	Create(ctx context.Context, userID model.UserID, name string) (model.Group, error)
	// GetByID returns sql.ErrNoRows when the group is absent or owned by someone else.
	GetByID(ctx context.Context, userID model.UserID, id model.GroupID) (model.Group, error)
	FindByName(ctx context.Context, userID model.UserID, name string) (*model.Group, error)
	ListByUser(ctx context.Context, userID model.UserID) ([]model.Group, error)
	AddFeed(ctx context.Context, groupID model.GroupID, feedID model.FeedID) error
}

type groupRepository struct {
	db conn
}

func NewGroupRepository(d *db.DB) GroupRepository {
	return &groupRepository{db: newConn(d)}
}

func (r *groupRepository) Create(ctx context.Context, userID model.UserID, name string) (model.Group, error) {
	id := snowflake.NextID()
	now := time.Now().UTC()
	_, err := r.db.ExecContext(
		ctx,
		`INSERT INTO feed_groups (id, user_id, name, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		id,
		int64(userID),
		name,
		formatTime(now),
		formatTime(now),
	)
	if err != nil {
		return model.Group{}, fmt.Errorf("create group: %w", err)
	}
	return model.Group{
		ID:        model.GroupID(id),
		UserID:    userID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (r *groupRepository) GetByID(ctx context.Context, userID model.UserID, id model.GroupID) (model.Group, error) {
	row := r.db.QueryRowContext(
		ctx,
		`SELECT id, user_id, name, created_at, updated_at FROM feed_groups WHERE id = ? AND user_id = ?`,
		int64(id),
		int64(userID),
	)
	group, err := scanGroup(row)
	if err != nil {
		return model.Group{}, fmt.Errorf("get group: %w", err)
	}
	members, err := r.members(ctx,
		`SELECT group_id, feed_id FROM feed_group_members WHERE group_id = ? ORDER BY feed_id`,
		int64(id),
	)
	if err != nil {
		return model.Group{}, err
	}
	group.FeedIDs = members[group.ID]
	return group, nil
}

func (r *groupRepository) FindByName(ctx context.Context, userID model.UserID, name string) (*model.Group, error) {
	row := r.db.QueryRowContext(
		ctx,
		`SELECT id, user_id, name, created_at, updated_at FROM feed_groups WHERE user_id = ? AND name = ? ORDER BY id LIMIT 1`,
		int64(userID),
		name,
	)
	group, err := scanGroup(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find group: %w", err)
	}
	return &group, nil
}

func (r *groupRepository) ListByUser(ctx context.Context, userID model.UserID) ([]model.Group, error) {
	rows, err := r.db.QueryContext(
		ctx,
		`SELECT id, user_id, name, created_at, updated_at FROM feed_groups WHERE user_id = ? ORDER BY name, id`,
		int64(userID),
	)
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	defer rows.Close()

	var groups []model.Group
	for rows.Next() {
		group, err := scanGroup(rows)
		if err != nil {
			return nil, err
		}
		groups = append(groups, group)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate groups: %w", err)
	}

	members, err := r.members(ctx,
		`SELECT m.group_id, m.feed_id FROM feed_group_members m
		 JOIN feed_groups g ON g.id = m.group_id
		 WHERE g.user_id = ? ORDER BY m.feed_id`,
		int64(userID),
	)
	if err != nil {
		return nil, err
	}
	for i := range groups {
		groups[i].FeedIDs = members[groups[i].ID]
	}
	return groups, nil
}

func (r *groupRepository) AddFeed(ctx context.Context, groupID model.GroupID, feedID model.FeedID) error {
	_, err := r.db.ExecContext(
		ctx,
		`INSERT INTO feed_group_members (group_id, feed_id) VALUES (?, ?)
		 ON CONFLICT(group_id, feed_id) DO NOTHING`,
		int64(groupID),
		int64(feedID),
	)
	if err != nil {
		return fmt.Errorf("add feed to group: %w", err)
	}
	return nil
}

func (r *groupRepository) members(ctx context.Context, query string, args ...any) (map[model.GroupID][]model.FeedID, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list group members: %w", err)
	}
	defer rows.Close()

	members := make(map[model.GroupID][]model.FeedID)
	for rows.Next() {
		var groupID, feedID int64
		if err := rows.Scan(&groupID, &feedID); err != nil {
			return nil, err
		}
		members[model.GroupID(groupID)] = append(members[model.GroupID(groupID)], model.FeedID(feedID))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate group members: %w", err)
	}
	return members, nil
}

func scanGroup(s scanner) (model.Group, error) {
	var group model.Group
	var id, userID int64
	var createdAt, updatedAt string
	if err := s.Scan(&id, &userID, &group.Name, &createdAt, &updatedAt); err != nil {
		return model.Group{}, err
	}
	group.ID = model.GroupID(id)
	group.UserID = model.UserID(userID)
	var err error
	if group.CreatedAt, err = parseTime(createdAt); err != nil {
		return model.Group{}, err
	}
	if group.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return model.Group{}, err
	}
	return group, nil
}
