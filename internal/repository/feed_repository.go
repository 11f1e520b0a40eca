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

type FeedRepository interface {
	// InsertIfAbsent stores feed unless its URL is already catalogued. It
	// returns the stored row and whether this call created it.
	InsertIfAbsent(ctx context.Context, feed model.Feed) (model.Feed, bool, error)
	GetByID(ctx context.Context, id model.FeedID) (model.Feed, error)
	FindByURL(ctx context.Context, url string) (*model.Feed, error)
	List(ctx context.Context) ([]model.Feed, error)
	ListByUser(ctx context.Context, userID model.UserID) ([]model.Feed, error)
	ListSubscribed(ctx context.Context, userID model.UserID) ([]model.Feed, error)
	Subscribe(ctx context.Context, userID model.UserID, feedID model.FeedID) error
	MarkRefreshed(ctx context.Context, id model.FeedID, at time.Time) error
	UpdateErrorMessage(ctx context.Context, id model.FeedID, errorMessage *string) error
}

type feedRepository struct {
	db conn
}

func NewFeedRepository(d *db.DB) FeedRepository {
	return &feedRepository{db: newConn(d)}
}

const feedColumns = `id, name, description, url, site_url, last_refreshed_at, error_message, created_at, updated_at`

func (r *feedRepository) InsertIfAbsent(ctx context.Context, feed model.Feed) (model.Feed, bool, error) {
	id := snowflake.NextID()
	now := time.Now().UTC()
	row := r.db.QueryRowContext(
		ctx,
		`INSERT INTO feeds (`+feedColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(url) DO UPDATE SET url = excluded.url
		 RETURNING `+feedColumns,
		id,
		feed.Name,
		nullableString(feed.Description),
		feed.URL,
		nullableString(feed.SiteURL),
		nullableTime(feed.LastRefreshedAt),
		nullableString(feed.ErrorMessage),
		formatTime(now),
		formatTime(now),
	)
	stored, err := scanFeed(row)
	if err != nil {
		return model.Feed{}, false, fmt.Errorf("insert feed: %w", err)
	}
	return stored, int64(stored.ID) == id, nil
}

func (r *feedRepository) GetByID(ctx context.Context, id model.FeedID) (model.Feed, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+feedColumns+` FROM feeds WHERE id = ?`, int64(id))
	feed, err := scanFeed(row)
	if err != nil {
		return model.Feed{}, fmt.Errorf("get feed: %w", err)
	}
	return feed, nil
}

func (r *feedRepository) FindByURL(ctx context.Context, url string) (*model.Feed, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+feedColumns+` FROM feeds WHERE url = ?`, url)
	feed, err := scanFeed(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find feed: %w", err)
	}
	return &feed, nil
}

func (r *feedRepository) List(ctx context.Context) ([]model.Feed, error) {
	return r.list(ctx, `SELECT `+feedColumns+` FROM feeds ORDER BY id`)
}

func (r *feedRepository) ListByUser(ctx context.Context, userID model.UserID) ([]model.Feed, error) {
	return r.list(ctx,
		`SELECT `+feedColumns+` FROM feeds
		 WHERE id IN (`+userFeedIDsSubquery+`)
		 ORDER BY name, id`,
		int64(userID), int64(userID),
	)
}

func (r *feedRepository) ListSubscribed(ctx context.Context, userID model.UserID) ([]model.Feed, error) {
	return r.list(ctx,
		`SELECT `+feedColumns+` FROM feeds
		 WHERE id IN (SELECT feed_id FROM user_feeds WHERE user_id = ?)
		 ORDER BY name, id`,
		int64(userID),
	)
}

func (r *feedRepository) list(ctx context.Context, query string, args ...any) ([]model.Feed, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list feeds: %w", err)
	}
	defer rows.Close()

	var feeds []model.Feed
	for rows.Next() {
		feed, err := scanFeed(rows)
		if err != nil {
			return nil, err
		}
		feeds = append(feeds, feed)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate feeds: %w", err)
	}
	return feeds, nil
}

func (r *feedRepository) Subscribe(ctx context.Context, userID model.UserID, feedID model.FeedID) error {
	_, err := r.db.ExecContext(
		ctx,
		`INSERT INTO user_feeds (user_id, feed_id, created_at) VALUES (?, ?, ?)
		 ON CONFLICT(user_id, feed_id) DO NOTHING`,
		int64(userID),
		int64(feedID),
		formatTime(time.Now()),
	)
	if err != nil {
		return fmt.Errorf("subscribe feed: %w", err)
	}
	return nil
}

func (r *feedRepository) MarkRefreshed(ctx context.Context, id model.FeedID, at time.Time) error {
	_, err := r.db.ExecContext(
		ctx,
		`UPDATE feeds SET last_refreshed_at = ?, error_message = NULL, updated_at = ? WHERE id = ?`,
		formatTime(at),
		formatTime(time.Now()),
		int64(id),
	)
	if err != nil {
		return fmt.Errorf("mark feed refreshed: %w", err)
	}
	return nil
}

func (r *feedRepository) UpdateErrorMessage(ctx context.Context, id model.FeedID, errorMessage *string) error {
	_, err := r.db.ExecContext(
		ctx,
		`UPDATE feeds SET error_message = ?, updated_at = ? WHERE id = ?`,
		nullableString(errorMessage),
		formatTime(time.Now()),
		int64(id),
	)
	if err != nil {
		return fmt.Errorf("update feed error message: %w", err)
	}
	return nil
}

// userFeedIDsSubquery selects every feed a user reaches directly or through a
// group. It takes the user id twice.
const userFeedIDsSubquery = `SELECT feed_id FROM user_feeds WHERE user_id = ?
	UNION
	SELECT m.feed_id FROM feed_group_members m
	JOIN feed_groups g ON g.id = m.group_id
	WHERE g.user_id = ?`

func scanFeed(s scanner) (model.Feed, error) {
	var feed model.Feed
	var id int64
	var description sql.NullString
	var siteURL sql.NullString
	var lastRefreshedAt sql.NullString
	var errorMessage sql.NullString
	var createdAt string
	var updatedAt string
	if err := s.Scan(
		&id,
		&feed.Name,
		&description,
		&feed.URL,
		&siteURL,
		&lastRefreshedAt,
		&errorMessage,
		&createdAt,
		&updatedAt,
	); err != nil {
		return model.Feed{}, err
	}
	feed.ID = model.FeedID(id)
	if description.Valid {
		feed.Description = &description.String
	}
	if siteURL.Valid {
		feed.SiteURL = &siteURL.String
	}
	if errorMessage.Valid {
		feed.ErrorMessage = &errorMessage.String
	}
	if lastRefreshedAt.Valid {
		t, err := parseTime(lastRefreshedAt.String)
		if err != nil {
			return model.Feed{}, fmt.Errorf("parse feed last_refreshed_at: %w", err)
		}
		feed.LastRefreshedAt = &t
	}
	var err error
	feed.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return model.Feed{}, fmt.Errorf("parse feed created_at: %w", err)
	}
	feed.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return model.Feed{}, fmt.Errorf("parse feed updated_at: %w", err)
	}
	return feed, nil
}
