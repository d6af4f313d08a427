package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/studydock/studydock-go/internal/model"
)

type AccessRepo struct {
	pool *pgxpool.Pool
}

func NewAccessRepo(pool *pgxpool.Pool) *AccessRepo {
	return &AccessRepo{pool: pool}
}

// RecordView increments the document's view counter and applies the
// owner-side effects in one transaction. The threshold check uses the
// post-increment value returned by the same atomic UPDATE — never a second
// read — so two concurrent viewers cannot both claim (or both miss) the
// same crossing of a multiple of ten.
//
// viewerID may be empty: anonymous views count on the document but produce
// no access-log row. A missing owner row is tolerated — the view still
// counts, the owner aggregates just don't move.
func (r *AccessRepo) RecordView(ctx context.Context, documentID, viewerID string) (int, error) {
	var newViewCount int

	err := inTx(ctx, r.pool, func(tx pgx.Tx) error {
		var ownerID string
		err := tx.QueryRow(ctx, `
			UPDATE documents SET view_count = view_count + 1
			WHERE id = $1
			RETURNING user_id, view_count`,
			documentID).Scan(&ownerID, &newViewCount)
		if err != nil {
			return err
		}

		if ownerID != "" {
			var ownerExists bool
			err = tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, ownerID).Scan(&ownerExists)
			if err != nil {
				return err
			}

			if ownerExists {
				_, err = tx.Exec(ctx, `
					UPDATE users
					SET total_views      = total_views + 1,
					    reputation_score = reputation_score + $2
					WHERE id = $1`,
					ownerID, model.ViewRepBonus(newViewCount))
				if err != nil {
					return err
				}
			}
		}

		if viewerID != "" {
			_, err = tx.Exec(ctx, `
				INSERT INTO document_access_logs (user_id, document_id, accessed_at)
				VALUES ($1, $2, NOW())
				ON CONFLICT (user_id, document_id) DO UPDATE
				SET accessed_at = NOW()`,
				viewerID, documentID)
			if err != nil {
				return err
			}
		}

		_, err = tx.Exec(ctx, `SELECT pg_notify('document_changes', $1)`, documentID)
		return err
	})
	if err != nil {
		return 0, err
	}
	return newViewCount, nil
}

// LogTime accumulates reading time for (user, document): first call creates
// the row, later calls add to time_spent_seconds and refresh accessed_at.
// The value feeds analytics only and never reputation.
func (r *AccessRepo) LogTime(ctx context.Context, documentID, userID string, seconds int) error {
	err := inTx(ctx, r.pool, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO document_access_logs (user_id, document_id, time_spent_seconds, accessed_at)
			VALUES ($1, $2, $3, NOW())
			ON CONFLICT (user_id, document_id) DO UPDATE
			SET time_spent_seconds = document_access_logs.time_spent_seconds + EXCLUDED.time_spent_seconds,
			    accessed_at        = NOW()`,
			userID, documentID, seconds)
		return err
	})
	if isFKViolation(err) {
		return pgx.ErrNoRows
	}
	return err
}

// GetEntry returns the access-log row for (user, document), if any.
func (r *AccessRepo) GetEntry(ctx context.Context, documentID, userID string) (*model.AccessLogEntry, error) {
	var e model.AccessLogEntry
	err := r.pool.QueryRow(ctx, `
		SELECT id, user_id, document_id, time_spent_seconds, accessed_at
		FROM document_access_logs
		WHERE document_id = $1 AND user_id = $2`,
		documentID, userID).Scan(&e.ID, &e.UserID, &e.DocumentID, &e.TimeSpentSeconds, &e.AccessedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}
