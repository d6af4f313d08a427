package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/studydock/studydock-go/internal/model"
)

type VoteRepo struct {
	pool *pgxpool.Pool
}

func NewVoteRepo(pool *pgxpool.Pool) *VoteRepo {
	return &VoteRepo{pool: pool}
}

// CastVote applies one vote transition for (voter, document) atomically:
// ledger row, document counters, and owner aggregates all move in the same
// transaction, or none do. The voter's current stance is read under a row
// lock; a concurrent first-cast from the same voter hits the unique
// constraint instead and is retried, at which point it sees the row.
func (r *VoteRepo) CastVote(ctx context.Context, documentID, voterID string, requested model.VoteType) (*model.VoteResponse, error) {
	var resp model.VoteResponse

	err := inTx(ctx, r.pool, func(tx pgx.Tx) error {
		var ownerID string
		err := tx.QueryRow(ctx, `SELECT user_id FROM documents WHERE id = $1`, documentID).Scan(&ownerID)
		if err != nil {
			return err // pgx.ErrNoRows when the document is gone
		}

		existing := model.VoteNone
		var existingType int
		err = tx.QueryRow(ctx, `
			SELECT vote_type FROM document_votes
			WHERE document_id = $1 AND user_id = $2
			FOR UPDATE`,
			documentID, voterID).Scan(&existingType)
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return err
		}
		if err == nil {
			existing = model.VoteType(existingType)
		}

		tr := model.ResolveVote(existing, requested)

		switch {
		case tr.NewState == model.VoteNone:
			_, err = tx.Exec(ctx, `
				DELETE FROM document_votes WHERE document_id = $1 AND user_id = $2`,
				documentID, voterID)
		case existing == model.VoteNone:
			_, err = tx.Exec(ctx, `
				INSERT INTO document_votes (user_id, document_id, vote_type)
				VALUES ($1, $2, $3)`,
				voterID, documentID, int(tr.NewState))
		default:
			_, err = tx.Exec(ctx, `
				UPDATE document_votes SET vote_type = $3
				WHERE document_id = $1 AND user_id = $2`,
				documentID, voterID, int(tr.NewState))
		}
		if err != nil {
			return err
		}

		// Relative deltas applied store-side; decrements floored at zero.
		err = tx.QueryRow(ctx, `
			UPDATE documents
			SET upvote_count   = GREATEST(0, upvote_count + $2),
			    downvote_count = GREATEST(0, downvote_count + $3)
			WHERE id = $1
			RETURNING upvote_count, downvote_count`,
			documentID, tr.UpDelta, tr.DownDelta).Scan(&resp.UpvoteCount, &resp.DownvoteCount)
		if err != nil {
			return err
		}

		// Self-votes still move the document counters above, but never the
		// owner's reputation or totals.
		if ownerID != "" && ownerID != voterID {
			_, err = tx.Exec(ctx, `
				UPDATE users
				SET reputation_score = reputation_score + $2,
				    total_upvotes    = total_upvotes + $3,
				    total_downvotes  = total_downvotes + $4
				WHERE id = $1`,
				ownerID, tr.OwnerRepDelta, tr.UpDelta, tr.DownDelta)
			if err != nil {
				return err
			}
		}

		_, err = tx.Exec(ctx, `SELECT pg_notify('document_changes', $1)`, documentID)
		if err != nil {
			return err
		}

		resp.Success = true
		resp.UserVote = int(tr.NewState)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetUserVote returns the voter's current stance on a document, VoteNone if
// no ledger row exists.
func (r *VoteRepo) GetUserVote(ctx context.Context, documentID, userID string) (model.VoteType, error) {
	var voteType int
	err := r.pool.QueryRow(ctx, `
		SELECT vote_type FROM document_votes
		WHERE document_id = $1 AND user_id = $2`,
		documentID, userID).Scan(&voteType)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.VoteNone, nil
	}
	if err != nil {
		return model.VoteNone, err
	}
	return model.VoteType(voteType), nil
}
