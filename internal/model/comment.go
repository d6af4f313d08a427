package model

import "time"

// Comment is a vote target only: comment posting and text storage live
// outside this service, but the rows exist here so comment votes have
// something to aggregate on and cascade-delete with the document.
type Comment struct {
	ID            string    `json:"id"`
	UserID        string    `json:"userId"`
	DocumentID    string    `json:"documentId"`
	Content       string    `json:"content"`
	UpvoteCount   int       `json:"upvoteCount"`
	DownvoteCount int       `json:"downvoteCount"`
	CreatedAt     time.Time `json:"createdAt"`
}
