package model

import (
	"errors"
	"fmt"
)

// ErrInvalidID is returned when an identifier is not strictly positive.
var ErrInvalidID = errors.New("invalid id")

type (
	FeedID     int64
	FeedItemID int64
	GroupID    int64
	UserID     int64
)

func NewFeedID(v int64) (FeedID, error) {
	if v <= 0 {
		return 0, fmt.Errorf("feed id %d: %w", v, ErrInvalidID)
	}
	return FeedID(v), nil
}

func NewFeedItemID(v int64) (FeedItemID, error) {
	if v <= 0 {
		return 0, fmt.Errorf("feed item id %d: %w", v, ErrInvalidID)
	}
	return FeedItemID(v), nil
}

func NewGroupID(v int64) (GroupID, error) {
	if v <= 0 {
		return 0, fmt.Errorf("group id %d: %w", v, ErrInvalidID)
	}
	return GroupID(v), nil
}

func NewUserID(v int64) (UserID, error) {
	if v <= 0 {
		return 0, fmt.Errorf("user id %d: %w", v, ErrInvalidID)
	}
	return UserID(v), nil
}
