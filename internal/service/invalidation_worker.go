package service

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// InvalidationWorker listens for PostgreSQL NOTIFY on the 'document_changes'
// channel and batches cache invalidations. Every engine transaction that
// moves a document's counters notifies with the document id; if 50 votes hit
// document X inside one window, the cache is dropped once, not 50 times.
type InvalidationWorker struct {
	pool    *pgxpool.Pool
	cache   *CacheService
	batchMs time.Duration

	mu      sync.Mutex
	pending map[string]struct{} // document IDs waiting for invalidation
}

// NewInvalidationWorker creates a cache invalidation worker.
func NewInvalidationWorker(pool *pgxpool.Pool, cache *CacheService) *InvalidationWorker {
	return &InvalidationWorker{
		pool:    pool,
		cache:   cache,
		batchMs: 5 * time.Second,
		pending: make(map[string]struct{}),
	}
}

// Start begins listening for document_changes notifications and processing
// batches.
func (w *InvalidationWorker) Start(ctx context.Context) {
	log.Printf("invalidation-worker: starting (batch window=%s)", w.batchMs)

	for {
		if err := w.listenLoop(ctx); err != nil {
			if ctx.Err() != nil {
				log.Println("invalidation-worker: stopping (context cancelled)")
				return
			}
			log.Printf("invalidation-worker: listen error, reconnecting in 5s: %v", err)
			select {
			case <-time.After(5 * time.Second):
			case <-ctx.Done():
				log.Println("invalidation-worker: stopping (context cancelled)")
				return
			}
		}
	}
}

// listenLoop acquires a dedicated connection, LISTENs on document_changes,
// and collects notifications into batched windows.
func (w *InvalidationWorker) listenLoop(ctx context.Context) error {
	conn, err := w.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	_, err = conn.Exec(ctx, "LISTEN document_changes")
	if err != nil {
		return err
	}
	log.Println("invalidation-worker: listening on document_changes")

	flushCtx, flushCancel := context.WithCancel(ctx)
	defer flushCancel()
	go w.flushLoop(flushCtx)

	for {
		notification, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			return err
		}

		documentID := notification.Payload
		if documentID == "" {
			continue
		}

		w.mu.Lock()
		w.pending[documentID] = struct{}{}
		w.mu.Unlock()
	}
}

// flushLoop periodically drains the pending set.
func (w *InvalidationWorker) flushLoop(ctx context.Context) {
	ticker := time.NewTicker(w.batchMs)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.flush(ctx)
		case <-ctx.Done():
			// Final flush before exit
			w.flush(context.Background())
			return
		}
	}
}

// flush drains the pending set and drops the affected cache entries. The
// leaderboard depends on reputation, which moves with nearly every document
// change, so it is dropped once per non-empty batch.
func (w *InvalidationWorker) flush(ctx context.Context) {
	w.mu.Lock()
	if len(w.pending) == 0 {
		w.mu.Unlock()
		return
	}

	batch := w.pending
	w.pending = make(map[string]struct{})
	w.mu.Unlock()

	invalidated := 0
	for documentID := range batch {
		if err := w.cache.InvalidateDocument(ctx, documentID); err != nil {
			log.Printf("invalidation-worker: invalidate error for %s: %v", documentID, err)
			continue
		}
		invalidated++
	}

	if err := w.cache.InvalidateLeaderboard(ctx); err != nil {
		log.Printf("invalidation-worker: leaderboard invalidate error: %v", err)
	}

	if invalidated > 0 {
		log.Printf("invalidation-worker: batch complete — %d documents invalidated", invalidated)
	}
}
