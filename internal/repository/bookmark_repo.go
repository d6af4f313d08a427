package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/studydock/studydock-go/internal/model"
)

type BookmarkRepo struct {
	pool *pgxpool.Pool
}

func NewBookmarkRepo(pool *pgxpool.Pool) *BookmarkRepo {
	return &BookmarkRepo{pool: pool}
}

// Toggle flips the bookmark for (user, document) and returns the new state.
// A concurrent double-toggle races on the unique constraint and is retried,
// at which point the second call sees the row and removes it.
func (r *BookmarkRepo) Toggle(ctx context.Context, documentID, userID string) (bool, error) {
	var bookmarked bool

	err := inTx(ctx, r.pool, func(tx pgx.Tx) error {
		var existingID string
		err := tx.QueryRow(ctx, `
			SELECT id FROM bookmarks
			WHERE document_id = $1 AND user_id = $2
			FOR UPDATE`,
			documentID, userID).Scan(&existingID)
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return err
		}

		if err == nil {
			_, err = tx.Exec(ctx, `DELETE FROM bookmarks WHERE id = $1`, existingID)
			bookmarked = false
			return err
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO bookmarks (user_id, document_id) VALUES ($1, $2)`,
			userID, documentID)
		bookmarked = true
		return err
	})
	if isFKViolation(err) {
		return false, pgx.ErrNoRows
	}
	if err != nil {
		return false, err
	}
	return bookmarked, nil
}

// IsBookmarked reports whether the user has bookmarked the document.
func (r *BookmarkRepo) IsBookmarked(ctx context.Context, documentID, userID string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM bookmarks WHERE document_id = $1 AND user_id = $2)`,
		documentID, userID).Scan(&exists)
	return exists, err
}

// ListByUser returns the user's bookmarks with the documents they point at,
// newest document first.
func (r *BookmarkRepo) ListByUser(ctx context.Context, userID string) ([]model.BookmarkedDocument, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT b.id, b.user_id, b.document_id, b.created_at,
		       d.id, d.title, d.file_path, d.file_type, d.subject, d.user_id,
		       d.uploader_name, d.uploader_avatar, d.view_count, d.upvote_count, d.downvote_count, d.created_at
		FROM bookmarks b
		JOIN documents d ON d.id = b.document_id
		WHERE b.user_id = $1
		ORDER BY d.created_at DESC`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.BookmarkedDocument
	for rows.Next() {
		var bd model.BookmarkedDocument
		err := rows.Scan(
			&bd.Bookmark.ID, &bd.Bookmark.UserID, &bd.Bookmark.DocumentID, &bd.Bookmark.CreatedAt,
			&bd.Document.ID, &bd.Document.Title, &bd.Document.FilePath, &bd.Document.FileType,
			&bd.Document.Subject, &bd.Document.UserID, &bd.Document.UploaderName, &bd.Document.UploaderAvatar,
			&bd.Document.ViewCount, &bd.Document.UpvoteCount, &bd.Document.DownvoteCount, &bd.Document.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		out = append(out, bd)
	}
	return out, rows.Err()
}
