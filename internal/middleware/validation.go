package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

// Field length limits matching database schema constraints.
const (
	MaxUserIDLen     = 64
	MaxTitleLen      = 200
	MaxSubjectLen    = 100
	MaxFilePathLen   = 512
	MaxSecondsPerLog = 6 * 60 * 60 // one log-time call can't claim more than 6h
)

// ValidFileTypes are the document formats the viewers can render.
var ValidFileTypes = map[string]bool{
	"pdf":  true,
	"md":   true,
	"html": true,
	"txt":  true,
}

// ErrorResponse is a helper that returns a standard API error response.
func ErrorResponse(c fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    code,
			"message": message,
		},
	})
}

// ValidateID checks that a path id is a well-formed UUID (documents,
// comments, bookmarks all use UUID keys).
func ValidateID(id string) (string, string) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", "id is required"
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", "id must be a valid UUID"
	}
	return parsed.String(), ""
}

// ValidateUserID checks that a user id is present and within DB limits.
// Identity-provider ids are opaque strings, so only shape is checked.
func ValidateUserID(id string) (string, string) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", "userId is required"
	}
	if len(id) > MaxUserIDLen {
		return "", "userId must be at most 64 characters"
	}
	for _, r := range id {
		if r <= ' ' || r > '~' {
			return "", "userId contains invalid characters"
		}
	}
	return id, ""
}

// ValidateTitle trims and bounds a document title.
func ValidateTitle(title string) (string, string) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", "title is required"
	}
	if len(title) > MaxTitleLen {
		return "", "title must be at most 200 characters"
	}
	return title, ""
}

// ValidateSubject trims and bounds a document subject.
func ValidateSubject(subject string) (string, string) {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return "", "subject is required"
	}
	if len(subject) > MaxSubjectLen {
		return "", "subject must be at most 100 characters"
	}
	return subject, ""
}

// ValidateFileType checks the type against the renderable set.
func ValidateFileType(fileType string) (string, string) {
	fileType = strings.ToLower(strings.TrimSpace(fileType))
	if fileType == "" {
		return "", "fileType is required"
	}
	if !ValidFileTypes[fileType] {
		return "", "fileType must be one of: pdf, md, html, txt"
	}
	return fileType, ""
}

// ValidateFilePath checks an object-store key: bounded, relative, and free
// of path traversal.
func ValidateFilePath(path string) (string, string) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", "filePath is required"
	}
	if len(path) > MaxFilePathLen {
		return "", "filePath must be at most 512 characters"
	}
	if strings.HasPrefix(path, "/") || strings.Contains(path, "..") {
		return "", "filePath must be a relative key without traversal"
	}
	return path, ""
}

// ValidateVoteType checks that the requested vote is +1 or -1.
func ValidateVoteType(voteType int) string {
	if voteType != 1 && voteType != -1 {
		return "voteType must be 1 or -1"
	}
	return ""
}

// ValidateSeconds bounds a single time-spent increment.
func ValidateSeconds(seconds int) string {
	if seconds <= 0 {
		return "seconds must be positive"
	}
	if seconds > MaxSecondsPerLog {
		return "seconds exceeds the maximum for a single report"
	}
	return ""
}
