package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"feedsng/internal/db"
	"feedsng/internal/model"
	"feedsng/internal/snowflake"
)

// FeedItemQuery describes a user-scoped item lookup. A nil FeedIDs means every
// feed the user reaches; a non-nil empty slice matches nothing.
type FeedItemQuery struct {
	UserID   model.UserID
	FeedIDs  []model.FeedID
	IDFilter model.FeedItemIDFilter
	Filter   model.FeedItemFilter
	Limit    int
}

type FeedItemRepository interface {
	// InsertIfAbsent stores item unless (FeedID, URL) exists and returns the
	// id of the stored row either way.
	InsertIfAbsent(ctx context.Context, item model.FeedItem) (model.FeedItemID, error)
	GetByID(ctx context.Context, id model.FeedItemID) (model.FeedItem, error)
	Get(ctx context.Context, userID model.UserID, feedID model.FeedID, id model.FeedItemID) (model.UserFeedItem, error)
	Query(ctx context.Context, q FeedItemQuery) ([]model.UserFeedItem, error)
	QueryIDs(ctx context.Context, q FeedItemQuery) ([]model.FeedItemID, error)
	Count(ctx context.Context, q FeedItemQuery) (int, error)
	UpsertOverlay(ctx context.Context, userID model.UserID, id model.FeedItemID, column model.OverlayColumn, value bool) error
}

type feedItemRepository struct {
	db    conn
	order *db.DB
}

func NewFeedItemRepository(d *db.DB) FeedItemRepository {
	return &feedItemRepository{db: newConn(d), order: d}
}

func (r *feedItemRepository) InsertIfAbsent(ctx context.Context, item model.FeedItem) (model.FeedItemID, error) {
	now := formatTime(time.Now())
	createdAt := now
	if !item.CreatedAt.IsZero() {
		createdAt = formatTime(item.CreatedAt)
	}
	var id int64
	err := r.order.Ordered(func() error {
		return r.db.QueryRowContext(
			ctx,
			`INSERT INTO feed_items (id, feed_id, title, author, html, url, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			 ON CONFLICT(feed_id, url) DO UPDATE SET url = excluded.url
			 RETURNING id`,
			snowflake.NextID(),
			int64(item.FeedID),
			item.Title,
			item.Author,
			item.HTML,
			item.URL,
			createdAt,
			now,
		).Scan(&id)
	})
	if err != nil {
		return 0, fmt.Errorf("insert feed item: %w", err)
	}
	return model.FeedItemID(id), nil
}

func (r *feedItemRepository) GetByID(ctx context.Context, id model.FeedItemID) (model.FeedItem, error) {
	row := r.db.QueryRowContext(
		ctx,
		`SELECT id, feed_id, title, author, html, url, created_at FROM feed_items WHERE id = ?`,
		int64(id),
	)
	var item model.FeedItem
	var itemID, feedID int64
	var createdAt string
	if err := row.Scan(&itemID, &feedID, &item.Title, &item.Author, &item.HTML, &item.URL, &createdAt); err != nil {
		return model.FeedItem{}, fmt.Errorf("get feed item: %w", err)
	}
	item.ID = model.FeedItemID(itemID)
	item.FeedID = model.FeedID(feedID)
	t, err := parseTime(createdAt)
	if err != nil {
		return model.FeedItem{}, err
	}
	item.CreatedAt = t
	return item, nil
}

func (r *feedItemRepository) Get(ctx context.Context, userID model.UserID, feedID model.FeedID, id model.FeedItemID) (model.UserFeedItem, error) {
	row := r.db.QueryRowContext(
		ctx,
		`SELECT `+userItemColumns+`
		 FROM feed_items i
		 LEFT JOIN user_feed_items o ON o.feed_item_id = i.id AND o.user_id = ?
		 WHERE i.id = ? AND i.feed_id = ?`,
		int64(userID),
		int64(id),
		int64(feedID),
	)
	item, err := scanUserFeedItem(row)
	if err != nil {
		return model.UserFeedItem{}, fmt.Errorf("get user feed item: %w", err)
	}
	return item, nil
}

func (r *feedItemRepository) Query(ctx context.Context, q FeedItemQuery) ([]model.UserFeedItem, error) {
	where, args, empty, err := buildItemWhere(q)
	if err != nil || empty {
		return nil, err
	}
	query := `SELECT ` + userItemColumns + `
		FROM feed_items i
		LEFT JOIN user_feed_items o ON o.feed_item_id = i.id AND o.user_id = ?` +
		where + ` ORDER BY i.id DESC`
	args = append([]any{int64(q.UserID)}, args...)
	if q.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, q.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query feed items: %w", err)
	}
	defer rows.Close()

	var items []model.UserFeedItem
	for rows.Next() {
		item, err := scanUserFeedItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate feed items: %w", err)
	}
	return items, nil
}

func (r *feedItemRepository) QueryIDs(ctx context.Context, q FeedItemQuery) ([]model.FeedItemID, error) {
	where, args, empty, err := buildItemWhere(q)
	if err != nil || empty {
		return nil, err
	}
	query := `SELECT i.id FROM feed_items i
		LEFT JOIN user_feed_items o ON o.feed_item_id = i.id AND o.user_id = ?` +
		where + ` ORDER BY i.id DESC`
	args = append([]any{int64(q.UserID)}, args...)
	if q.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, q.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query feed item ids: %w", err)
	}
	defer rows.Close()

	var ids []model.FeedItemID
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, model.FeedItemID(id))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate feed item ids: %w", err)
	}
	return ids, nil
}

func (r *feedItemRepository) Count(ctx context.Context, q FeedItemQuery) (int, error) {
	where, args, empty, err := buildItemWhere(q)
	if err != nil || empty {
		return 0, err
	}
	args = append([]any{int64(q.UserID)}, args...)
	var count int
	err = r.db.QueryRowContext(
		ctx,
		`SELECT COUNT(*) FROM feed_items i
		 LEFT JOIN user_feed_items o ON o.feed_item_id = i.id AND o.user_id = ?`+where,
		args...,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count feed items: %w", err)
	}
	return count, nil
}

func (r *feedItemRepository) UpsertOverlay(ctx context.Context, userID model.UserID, id model.FeedItemID, column model.OverlayColumn, value bool) error {
	var isRead, isSaved int
	switch column {
	case model.ColumnRead:
		isRead = boolInt(value)
	case model.ColumnSaved:
		isSaved = boolInt(value)
	default:
		return fmt.Errorf("unknown overlay column %q", string(column))
	}
	col := string(column)
	_, err := r.db.ExecContext(
		ctx,
		`INSERT INTO user_feed_items (user_id, feed_item_id, is_read, is_saved, updated_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(user_id, feed_item_id) DO UPDATE SET `+col+` = excluded.`+col+`, updated_at = excluded.updated_at`,
		int64(userID),
		int64(id),
		isRead,
		isSaved,
		formatTime(time.Now()),
	)
	if err != nil {
		return fmt.Errorf("upsert overlay: %w", err)
	}
	return nil
}

const userItemColumns = `i.id, i.feed_id, i.title, i.author, i.html, i.url, i.created_at,
	COALESCE(o.is_read, 0), COALESCE(o.is_saved, 0)`

// buildItemWhere renders the feed scope, id filter and overlay filter as a
// WHERE clause. empty reports a query that can match nothing.
func buildItemWhere(q FeedItemQuery) (where string, args []any, empty bool, err error) {
	var conditions []string

	if q.FeedIDs == nil {
		conditions = append(conditions, "i.feed_id IN ("+userFeedIDsSubquery+")")
		args = append(args, int64(q.UserID), int64(q.UserID))
	} else {
		if len(q.FeedIDs) == 0 {
			return "", nil, true, nil
		}
		placeholders, ids := inClause(q.FeedIDs)
		conditions = append(conditions, "i.feed_id IN ("+placeholders+")")
		args = append(args, ids...)
	}

	switch f := q.IDFilter.(type) {
	case nil:
	case model.MaxIDFilter:
		conditions = append(conditions, "i.id <= ?")
		args = append(args, int64(f.ID))
	case model.SinceIDFilter:
		conditions = append(conditions, "i.id > ?")
		args = append(args, int64(f.ID))
	case model.WithIDsFilter:
		if len(f.IDs) == 0 {
			return "", nil, true, nil
		}
		placeholders, ids := inClause(f.IDs)
		conditions = append(conditions, "i.id IN ("+placeholders+")")
		args = append(args, ids...)
	default:
		return "", nil, false, fmt.Errorf("unsupported id filter %T", f)
	}

	switch q.Filter {
	case model.FilterAll:
	case model.FilterRead:
		conditions = append(conditions, "COALESCE(o.is_read, 0) = 1")
	case model.FilterUnread:
		conditions = append(conditions, "COALESCE(o.is_read, 0) = 0")
	case model.FilterSaved:
		conditions = append(conditions, "COALESCE(o.is_saved, 0) = 1")
	default:
		return "", nil, false, fmt.Errorf("unsupported item filter %q", string(q.Filter))
	}

	return " WHERE " + strings.Join(conditions, " AND "), args, false, nil
}

func scanUserFeedItem(s scanner) (model.UserFeedItem, error) {
	var item model.UserFeedItem
	var id, feedID int64
	var createdAt string
	var isRead, isSaved int
	if err := s.Scan(
		&id,
		&feedID,
		&item.Title,
		&item.Author,
		&item.HTML,
		&item.URL,
		&createdAt,
		&isRead,
		&isSaved,
	); err != nil {
		return model.UserFeedItem{}, err
	}
	item.ID = model.FeedItemID(id)
	item.FeedID = model.FeedID(feedID)
	item.IsRead = isRead == 1
	item.IsSaved = isSaved == 1
	t, err := parseTime(createdAt)
	if err != nil {
		return model.UserFeedItem{}, fmt.Errorf("parse feed item created_at: %w", err)
	}
	item.CreatedAt = t
	return item, nil
}
