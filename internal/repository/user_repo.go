package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/studydock/studydock-go/internal/model"
)

type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

// Sync upserts the identity-provider profile for a user: first write creates
// the row with zeroed aggregates, later writes refresh the profile fields
// and last_active without touching any counter. Idempotent; called once per
// authenticated request before any engine operation runs.
func (r *UserRepo) Sync(ctx context.Context, id model.Identity) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO users (id, email, full_name, avatar_url)
		VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''))
		ON CONFLICT (id) DO UPDATE
		SET email       = EXCLUDED.email,
		    full_name   = COALESCE(EXCLUDED.full_name, users.full_name),
		    avatar_url  = COALESCE(EXCLUDED.avatar_url, users.avatar_url),
		    last_active = NOW()`,
		id.ID, id.Email, id.FullName, id.AvatarURL)
	return err
}

// FindByID returns a single user with their aggregates.
func (r *UserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	var u model.User
	err := r.pool.QueryRow(ctx, `
		SELECT id, email, full_name, avatar_url, role,
		       reputation_score, total_views, total_upvotes, total_downvotes,
		       created_at, last_active
		FROM users
		WHERE id = $1`,
		id).Scan(
		&u.ID, &u.Email, &u.FullName, &u.AvatarURL, &u.Role,
		&u.ReputationScore, &u.TotalViews, &u.TotalUpvotes, &u.TotalDownvotes,
		&u.CreatedAt, &u.LastActive,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Leaderboard returns the top users by reputation score.
func (r *UserRepo) Leaderboard(ctx context.Context, limit int) ([]model.LeaderboardEntry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, full_name, avatar_url, reputation_score, total_upvotes, total_views
		FROM users
		ORDER BY reputation_score DESC, total_upvotes DESC
		LIMIT $1`,
		limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []model.LeaderboardEntry
	for rows.Next() {
		var e model.LeaderboardEntry
		err := rows.Scan(&e.UserID, &e.FullName, &e.AvatarURL, &e.ReputationScore, &e.TotalUpvotes, &e.TotalViews)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// GetStats returns aggregate statistics from all tables.
func (r *UserRepo) GetStats(ctx context.Context) (*model.StatsResponse, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM documents) AS total_documents,
			(SELECT COUNT(*) FROM document_votes) AS total_votes,
			(SELECT COUNT(*) FROM users) AS total_users,
			(SELECT COUNT(*) FROM bookmarks) AS total_bookmarks,
			(SELECT COUNT(*) FROM users WHERE last_active > NOW() - INTERVAL '24 hours') AS active_users_24h`

	var stats model.StatsResponse
	err := r.pool.QueryRow(ctx, query).Scan(
		&stats.TotalDocuments, &stats.TotalVotes, &stats.TotalUsers,
		&stats.TotalBookmarks, &stats.ActiveUsers24h,
	)
	if err != nil {
		return nil, err
	}

	subjQuery := `
		SELECT subject, COUNT(*) AS total
		FROM documents
		GROUP BY subject
		ORDER BY total DESC
		LIMIT 10`

	rows, err := r.pool.Query(ctx, subjQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats.TopSubjects = make(map[string]int)
	for rows.Next() {
		var subject string
		var count int
		if err := rows.Scan(&subject, &count); err != nil {
			return nil, err
		}
		stats.TopSubjects[subject] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &stats, nil
}
