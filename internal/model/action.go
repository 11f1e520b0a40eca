package model

import (
	"fmt"
	"strings"
)

// FeedUpdateAction is a per-user mutation of an item's overlay.
type FeedUpdateAction string

const (
	ActionRead   FeedUpdateAction = "read"
	ActionUnread FeedUpdateAction = "unread"
	ActionSave   FeedUpdateAction = "save"
	ActionUnsave FeedUpdateAction = "unsave"
)

// OverlayColumn names one of the two independent overlay flags.
type OverlayColumn string

const (
	ColumnRead  OverlayColumn = "is_read"
	ColumnSaved OverlayColumn = "is_saved"
)

// ParseFeedUpdateAction accepts the action names case-insensitively.
func ParseFeedUpdateAction(s string) (FeedUpdateAction, error) {
	a := FeedUpdateAction(strings.ToLower(strings.TrimSpace(s)))
	if _, _, err := a.Target(); err != nil {
		return "", err
	}
	return a, nil
}

// Target returns the overlay column the action writes and the value it writes.
func (a FeedUpdateAction) Target() (OverlayColumn, bool, error) {
	switch a {
	case ActionRead:
		return ColumnRead, true, nil
	case ActionUnread:
		return ColumnRead, false, nil
	case ActionSave:
		return ColumnSaved, true, nil
	case ActionUnsave:
		return ColumnSaved, false, nil
	default:
		return "", false, fmt.Errorf("unknown feed update action %q", string(a))
	}
}
