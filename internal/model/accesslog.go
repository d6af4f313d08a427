package model

import "time"

// AccessLogEntry records a user's relationship to a document over time:
// when they last opened it and the cumulative seconds spent. One row per
// (user, document); accessed_at is overwritten on each view, while
// time_spent_seconds only ever grows.
type AccessLogEntry struct {
	ID               string    `json:"id"`
	UserID           string    `json:"userId"`
	DocumentID       string    `json:"documentId"`
	TimeSpentSeconds int       `json:"timeSpentSeconds"`
	AccessedAt       time.Time `json:"accessedAt"`
}
