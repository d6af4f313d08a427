package model

import "time"

// Bookmark marks a document saved by a user. One row per (user, document).
type Bookmark struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	DocumentID string    `json:"documentId"`
	CreatedAt  time.Time `json:"createdAt"`
}

// BookmarkResponse is the API response for a bookmark toggle.
type BookmarkResponse struct {
	IsBookmarked bool `json:"isBookmarked"`
}

// BookmarkedDocument pairs a bookmark with the document it points at,
// for bookmark list responses.
type BookmarkedDocument struct {
	Bookmark Bookmark `json:"bookmark"`
	Document Document `json:"document"`
}
