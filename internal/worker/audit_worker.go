package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/davmoros/cronograma-backend/internal/config"
	"github.com/davmoros/cronograma-backend/internal/model"
	"github.com/davmoros/cronograma-backend/internal/repository"
)

// AuditQueue is the producer side of the audit trail: schedule mutations are
// enqueued to a Redis list and persisted off the request path.
type AuditQueue struct {
	rdb *redis.Client
}

// NewAuditQueue creates a new AuditQueue.
func NewAuditQueue(rdb *redis.Client) *AuditQueue {
	return &AuditQueue{rdb: rdb}
}

// Enqueue pushes an audit entry onto the worker queue.
func (q *AuditQueue) Enqueue(ctx context.Context, e model.AuditEntry) error {
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return q.rdb.RPush(ctx, config.WorkerKey.ScheduleAuditQueue, data).Err()
}

// AuditWorker consumes the audit queue and writes entries to PostgreSQL.
type AuditWorker struct {
	auditRepo *repository.AuditRepository
	rdb       *redis.Client
	log       zerolog.Logger
}

// NewAuditWorker creates a new AuditWorker.
func NewAuditWorker(auditRepo *repository.AuditRepository, rdb *redis.Client, log zerolog.Logger) *AuditWorker {
	return &AuditWorker{
		auditRepo: auditRepo,
		rdb:       rdb,
		log:       log.With().Str("component", "audit_worker").Logger(),
	}
}

// Start begins the worker loop. Call in a goroutine; cancel ctx to stop.
func (w *AuditWorker) Start(ctx context.Context, drainTimeout time.Duration) {
	w.log.Info().Msg("Worker started")

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Worker stopping...")
			drainCtx, cancel := context.WithTimeout(context.Background(), drainTimeout)
			w.drain(drainCtx)
			cancel()
			w.log.Info().Msg("Worker stopped")
			return
		default:
			w.processNext(ctx)
		}
	}
}

func (w *AuditWorker) processNext(ctx context.Context) {
	// BLPop blocks until an item is available or the 1s timeout elapses.
	result, err := w.rdb.BLPop(ctx, time.Second, config.WorkerKey.ScheduleAuditQueue).Result()
	if err != nil {
		if err != redis.Nil && ctx.Err() == nil {
			w.log.Error().Err(err).Msg("BLPop error")
		}
		return
	}
	if len(result) < 2 {
		return
	}

	if err := w.persist(ctx, []byte(result[1])); err != nil {
		w.log.Error().Err(err).Msg("Persist error, retrying in 5s")
		// Push back to queue for retry.
		w.rdb.RPush(ctx, config.WorkerKey.ScheduleAuditQueue, result[1])
		time.Sleep(5 * time.Second)
	}
}

func (w *AuditWorker) persist(ctx context.Context, raw []byte) error {
	var entry model.AuditEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		// Malformed entries are unrecoverable; log and drop.
		w.log.Error().Err(err).Msg("Unmarshal error, dropping entry")
		return nil
	}
	return w.auditRepo.Insert(ctx, &entry)
}

// drain persists all remaining queued entries before shutdown.
func (w *AuditWorker) drain(ctx context.Context) {
	drained := 0
	for {
		result, err := w.rdb.LPop(ctx, config.WorkerKey.ScheduleAuditQueue).Result()
		if err != nil {
			break
		}

		if err := w.persist(ctx, []byte(result)); err != nil {
			w.log.Error().Err(err).Msg("Drain persist error")
			w.rdb.RPush(ctx, config.WorkerKey.ScheduleAuditQueue, result)
			break
		}
		drained++
	}

	if drained > 0 {
		w.log.Info().Int("count", drained).Msg("Drained remaining entries")
	}
}
