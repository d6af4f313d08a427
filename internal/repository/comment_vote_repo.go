package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/studydock/studydock-go/internal/model"
)

type CommentVoteRepo struct {
	pool *pgxpool.Pool
}

func NewCommentVoteRepo(pool *pgxpool.Pool) *CommentVoteRepo {
	return &CommentVoteRepo{pool: pool}
}

// CastVote runs the same four-transition state machine as document votes,
// scoped to a comment. Comment votes carry no reputation effect: only the
// comment's own counters change, self-votes included.
func (r *CommentVoteRepo) CastVote(ctx context.Context, commentID, voterID string, requested model.VoteType) (*model.VoteResponse, error) {
	var resp model.VoteResponse

	err := inTx(ctx, r.pool, func(tx pgx.Tx) error {
		var exists bool
		err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM comments WHERE id = $1)`, commentID).Scan(&exists)
		if err != nil {
			return err
		}
		if !exists {
			return pgx.ErrNoRows
		}

		existing := model.VoteNone
		var existingType int
		err = tx.QueryRow(ctx, `
			SELECT vote_type FROM comment_votes
			WHERE comment_id = $1 AND user_id = $2
			FOR UPDATE`,
			commentID, voterID).Scan(&existingType)
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
				DELETE FROM comment_votes WHERE comment_id = $1 AND user_id = $2`,
				commentID, voterID)
		case existing == model.VoteNone:
			_, err = tx.Exec(ctx, `
				INSERT INTO comment_votes (user_id, comment_id, vote_type)
				VALUES ($1, $2, $3)`,
				voterID, commentID, int(tr.NewState))
		default:
			_, err = tx.Exec(ctx, `
				UPDATE comment_votes SET vote_type = $3
				WHERE comment_id = $1 AND user_id = $2`,
				commentID, voterID, int(tr.NewState))
		}
		if err != nil {
			return err
		}

		err = tx.QueryRow(ctx, `
			UPDATE comments
			SET upvote_count   = GREATEST(0, upvote_count + $2),
			    downvote_count = GREATEST(0, downvote_count + $3)
			WHERE id = $1
			RETURNING upvote_count, downvote_count`,
			commentID, tr.UpDelta, tr.DownDelta).Scan(&resp.UpvoteCount, &resp.DownvoteCount)
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
