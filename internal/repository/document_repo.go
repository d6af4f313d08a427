package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/studydock/studydock-go/internal/model"
)

type DocumentRepo struct {
	pool *pgxpool.Pool
}

func NewDocumentRepo(pool *pgxpool.Pool) *DocumentRepo {
	return &DocumentRepo{pool: pool}
}

const documentColumns = `
	id, title, file_path, file_type, subject, user_id,
	uploader_name, uploader_avatar, view_count, upvote_count, downvote_count, created_at`

func scanDocument(row pgx.Row) (*model.Document, error) {
	var d model.Document
	err := row.Scan(
		&d.ID, &d.Title, &d.FilePath, &d.FileType, &d.Subject, &d.UserID,
		&d.UploaderName, &d.UploaderAvatar, &d.ViewCount, &d.UpvoteCount, &d.DownvoteCount, &d.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// Create inserts the document and grants the uploader the upload bonus in
// the same transaction.
func (r *DocumentRepo) Create(ctx context.Context, ownerID string, req model.CreateDocumentRequest) (*model.Document, error) {
	var doc *model.Document

	err := inTx(ctx, r.pool, func(tx pgx.Tx) error {
		row := tx.QueryRow(ctx, `
			INSERT INTO documents (title, file_path, file_type, subject, user_id, uploader_name, uploader_avatar)
			VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), NULLIF($7, ''))
			RETURNING `+documentColumns,
			req.Title, req.FilePath, req.FileType, req.Subject, ownerID, req.UploaderName, req.UploaderAvatar)

		var err error
		doc, err = scanDocument(row)
		if err != nil {
			return err
		}

		_, err = tx.Exec(ctx, `
			UPDATE users SET reputation_score = reputation_score + $2 WHERE id = $1`,
			ownerID, model.UploadRepBonus)
		return err
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// FindByID returns a single document.
func (r *DocumentRepo) FindByID(ctx context.Context, id string) (*model.Document, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+documentColumns+` FROM documents WHERE id = $1`, id)
	return scanDocument(row)
}

// List returns recent documents, optionally filtered to one owner.
func (r *DocumentRepo) List(ctx context.Context, ownerID string, limit int) ([]model.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents`
	args := []any{limit}
	if ownerID != "" {
		query += ` WHERE user_id = $2`
		args = append(args, ownerID)
	}
	query += ` ORDER BY created_at DESC LIMIT $1`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []model.Document
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, *d)
	}
	return docs, rows.Err()
}

// Update edits title and subject. Owner-only; the ownership check and the
// write happen in one transaction.
func (r *DocumentRepo) Update(ctx context.Context, id, requesterID string, req model.UpdateDocumentRequest) error {
	return inTx(ctx, r.pool, func(tx pgx.Tx) error {
		var ownerID string
		if err := tx.QueryRow(ctx, `SELECT user_id FROM documents WHERE id = $1`, id).Scan(&ownerID); err != nil {
			return err
		}
		if ownerID != requesterID {
			return ErrForbidden
		}

		_, err := tx.Exec(ctx, `
			UPDATE documents SET title = $2, subject = $3 WHERE id = $1`,
			id, req.Title, req.Subject)
		if err != nil {
			return err
		}

		_, err = tx.Exec(ctx, `SELECT pg_notify('document_changes', $1)`, id)
		return err
	})
}

// DeletionReceipt is the snapshot Delete hands back so the caller can finish
// the out-of-transaction work: the object key to remove from storage and the
// amounts that were reversed.
type DeletionReceipt struct {
	FilePath           string
	ViewCount          int
	UpvoteCount        int
	DownvoteCount      int
	ReputationReversed int
}

// Delete removes a document and reverses every reputation-bearing effect it
// produced, computed from the counters as they stand at deletion time:
// upload bonus, accrued view bonus, and the standing vote balance. The
// owner's totals move by the raw counter values. Vote, comment, bookmark,
// and access-log rows go with the document via ON DELETE CASCADE.
//
// Only the owner may delete. The external object is NOT removed here — that
// is a best-effort side effect the service layer performs after commit.
func (r *DocumentRepo) Delete(ctx context.Context, id, requesterID string) (*DeletionReceipt, error) {
	var receipt DeletionReceipt

	err := inTx(ctx, r.pool, func(tx pgx.Tx) error {
		var ownerID string
		err := tx.QueryRow(ctx, `
			SELECT user_id, file_path, view_count, upvote_count, downvote_count
			FROM documents WHERE id = $1
			FOR UPDATE`,
			id).Scan(&ownerID, &receipt.FilePath, &receipt.ViewCount, &receipt.UpvoteCount, &receipt.DownvoteCount)
		if err != nil {
			return err
		}
		if ownerID != requesterID {
			return ErrForbidden
		}

		receipt.ReputationReversed = model.ReversalCharge(
			receipt.ViewCount, receipt.UpvoteCount, receipt.DownvoteCount)

		_, err = tx.Exec(ctx, `
			UPDATE users
			SET reputation_score = reputation_score - $2,
			    total_views      = total_views - $3,
			    total_upvotes    = total_upvotes - $4,
			    total_downvotes  = total_downvotes - $5
			WHERE id = $1`,
			ownerID, receipt.ReputationReversed, receipt.ViewCount, receipt.UpvoteCount, receipt.DownvoteCount)
		if err != nil {
			return err
		}

		_, err = tx.Exec(ctx, `DELETE FROM documents WHERE id = $1`, id)
		if err != nil {
			return err
		}

		_, err = tx.Exec(ctx, `SELECT pg_notify('document_changes', $1)`, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &receipt, nil
}
