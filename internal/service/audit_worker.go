package service

import (
	"context"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
)

// AuditWorker is a periodic background job that re-derives every aggregate
// counter from the vote ledger and repairs drift. The deletion reversal is
// computed from counters rather than an event ledger, so rare races or
// manual interventions can leave aggregates slightly off; this worker is
// the backstop that walks them back to the derived truth:
//
//	document.upvote_count   == count of +1 ledger rows for the document
//	document.downvote_count == count of -1 ledger rows
//	user.reputation_score   == 10 per owned document
//	                           + floor(view_count/10) per owned document
//	                           + vote balance from OTHER users' votes
//	user totals             == views / non-self up / non-self down sums
type AuditWorker struct {
	pool     *pgxpool.Pool
	interval time.Duration
	stopCh   chan struct{}
	repairs  *prometheus.CounterVec // by table; optional
}

// NewAuditWorker creates a worker that ticks every interval.
func NewAuditWorker(pool *pgxpool.Pool, interval time.Duration) *AuditWorker {
	return &AuditWorker{
		pool:     pool,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// SetMetrics attaches a per-table repair counter.
func (w *AuditWorker) SetMetrics(repairs *prometheus.CounterVec) {
	w.repairs = repairs
}

// Start begins the periodic audit loop. It runs one tick immediately, then
// every interval.
func (w *AuditWorker) Start(ctx context.Context) {
	log.Printf("audit-worker: starting (interval=%s)", w.interval)

	w.tick(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.tick(ctx)
		case <-ctx.Done():
			log.Println("audit-worker: stopping (context cancelled)")
			return
		case <-w.stopCh:
			log.Println("audit-worker: stopping (stop signal)")
			return
		}
	}
}

// Stop signals the worker to stop.
func (w *AuditWorker) Stop() {
	close(w.stopCh)
}

// tick runs one full audit cycle and logs what it had to repair.
func (w *AuditWorker) tick(ctx context.Context) {
	start := time.Now()

	docs, err := w.repairDocumentCounters(ctx)
	if err != nil {
		log.Printf("audit-worker: document repair error: %v", err)
		return
	}

	comments, err := w.repairCommentCounters(ctx)
	if err != nil {
		log.Printf("audit-worker: comment repair error: %v", err)
		return
	}

	users, err := w.repairUserAggregates(ctx)
	if err != nil {
		log.Printf("audit-worker: user repair error: %v", err)
		return
	}

	if w.repairs != nil {
		w.repairs.WithLabelValues("documents").Add(float64(docs))
		w.repairs.WithLabelValues("comments").Add(float64(comments))
		w.repairs.WithLabelValues("users").Add(float64(users))
	}

	elapsed := time.Since(start)
	if docs+comments+users > 0 {
		log.Printf("audit-worker: tick complete — repaired %d documents, %d comments, %d users (%s)",
			docs, comments, users, elapsed.Round(time.Millisecond))
	}
}

// repairDocumentCounters resets each document's vote counters to the exact
// ledger tally. Documents whose counters already match are untouched.
func (w *AuditWorker) repairDocumentCounters(ctx context.Context) (int, error) {
	tag, err := w.pool.Exec(ctx, `
		WITH tally AS (
			SELECT d.id,
			       COUNT(v.id) FILTER (WHERE v.vote_type = 1)  AS ups,
			       COUNT(v.id) FILTER (WHERE v.vote_type = -1) AS downs
			FROM documents d
			LEFT JOIN document_votes v ON v.document_id = d.id
			GROUP BY d.id
		)
		UPDATE documents d
		SET upvote_count = t.ups, downvote_count = t.downs
		FROM tally t
		WHERE d.id = t.id
		  AND (d.upvote_count <> t.ups OR d.downvote_count <> t.downs)`)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}

// repairCommentCounters does the same for comment vote counters.
func (w *AuditWorker) repairCommentCounters(ctx context.Context) (int, error) {
	tag, err := w.pool.Exec(ctx, `
		WITH tally AS (
			SELECT c.id,
			       COUNT(v.id) FILTER (WHERE v.vote_type = 1)  AS ups,
			       COUNT(v.id) FILTER (WHERE v.vote_type = -1) AS downs
			FROM comments c
			LEFT JOIN comment_votes v ON v.comment_id = c.id
			GROUP BY c.id
		)
		UPDATE comments c
		SET upvote_count = t.ups, downvote_count = t.downs
		FROM tally t
		WHERE c.id = t.id
		  AND (c.upvote_count <> t.ups OR c.downvote_count <> t.downs)`)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}

// repairUserAggregates re-derives reputation and totals for every user from
// their currently owned documents. Self-votes are excluded from the vote
// balance and from the up/down totals, matching the engine's live rules.
func (w *AuditWorker) repairUserAggregates(ctx context.Context) (int, error) {
	tag, err := w.pool.Exec(ctx, `
		WITH owned AS (
			SELECT user_id,
			       COUNT(*)            AS doc_count,
			       SUM(view_count / 10) AS view_bonus,
			       SUM(view_count)      AS views
			FROM documents
			GROUP BY user_id
		),
		ballots AS (
			SELECT d.user_id,
			       SUM(v.vote_type)                            AS balance,
			       COUNT(*) FILTER (WHERE v.vote_type = 1)     AS ups,
			       COUNT(*) FILTER (WHERE v.vote_type = -1)    AS downs
			FROM document_votes v
			JOIN documents d ON d.id = v.document_id
			WHERE v.user_id <> d.user_id
			GROUP BY d.user_id
		),
		derived AS (
			SELECT u.id,
			       COALESCE(o.doc_count, 0) * 10
			         + COALESCE(o.view_bonus, 0)
			         + COALESCE(b.balance, 0) AS rep,
			       COALESCE(o.views, 0)  AS views,
			       COALESCE(b.ups, 0)    AS ups,
			       COALESCE(b.downs, 0)  AS downs
			FROM users u
			LEFT JOIN owned o ON o.user_id = u.id
			LEFT JOIN ballots b ON b.user_id = u.id
		)
		UPDATE users u
		SET reputation_score = x.rep,
		    total_views      = x.views,
		    total_upvotes    = x.ups,
		    total_downvotes  = x.downs
		FROM derived x
		WHERE u.id = x.id
		  AND (u.reputation_score <> x.rep
		    OR u.total_views <> x.views
		    OR u.total_upvotes <> x.ups
		    OR u.total_downvotes <> x.downs)`)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}
