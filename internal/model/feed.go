package model

import "time"

// Feed is a global catalog entry, shared by every subscriber of its URL.
type Feed struct {
	ID              FeedID
	Name            string
	Description     *string
	URL             string
	SiteURL         *string
	LastRefreshedAt *time.Time
	ErrorMessage    *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
