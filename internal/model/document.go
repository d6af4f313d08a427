package model

import "time"

// Document represents an uploaded document and its aggregate counters.
// The counters are floored at zero on decrement; the owner is immutable
// after creation.
type Document struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	FilePath       string    `json:"filePath"`
	FileType       string    `json:"fileType"`
	Subject        string    `json:"subject"`
	UserID         string    `json:"userId"`
	UploaderName   *string   `json:"uploaderName,omitempty"`
	UploaderAvatar *string   `json:"uploaderAvatar,omitempty"`
	ViewCount      int       `json:"viewCount"`
	UpvoteCount    int       `json:"upvoteCount"`
	DownvoteCount  int       `json:"downvoteCount"`
	CreatedAt      time.Time `json:"createdAt"`
}

// CreateDocumentRequest is the API request body for registering an upload.
type CreateDocumentRequest struct {
	Title          string `json:"title"`
	FilePath       string `json:"filePath"`
	FileType       string `json:"fileType"`
	Subject        string `json:"subject"`
	UploaderName   string `json:"uploaderName,omitempty"`
	UploaderAvatar string `json:"uploaderAvatar,omitempty"`
}

// UpdateDocumentRequest is the API request body for editing title/subject.
type UpdateDocumentRequest struct {
	Title   string `json:"title"`
	Subject string `json:"subject"`
}

// UploadURLRequest asks for a signed upload URL for a new object key.
type UploadURLRequest struct {
	FilePath string `json:"filePath"`
	FileType string `json:"fileType"`
}

// DocumentResponse is the API response for a single-document lookup: the
// document plus the caller's relationship to it and a signed download URL.
type DocumentResponse struct {
	Document     Document `json:"document"`
	UserVote     int      `json:"userVote"`
	IsBookmarked bool     `json:"isBookmarked"`
	SignedURL    string   `json:"signedUrl,omitempty"`
}

// ViewResponse is the API response after recording a view.
type ViewResponse struct {
	Success   bool `json:"success"`
	ViewCount int  `json:"viewCount"`
}

// LogTimeRequest is the API request body for the time-spent accumulator.
type LogTimeRequest struct {
	Seconds int `json:"seconds"`
}
