package model

import "time"

type Group struct {
	ID        GroupID
	UserID    UserID
	Name      string
	FeedIDs   []FeedID
	CreatedAt time.Time
	UpdatedAt time.Time
}
