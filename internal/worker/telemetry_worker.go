package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/porikkha/porikkha-backend/internal/config"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	BatchSize    = 50
	BatchTimeout = 2 * time.Second
	PollTimeout  = 1 * time.Second // Must be >= 1s to satisfy Redis
)

// TelemetryWorker drains the telemetry queue and persists behavioral
// samples in batches. Samples are append-only; persisted deltas are also
// rolled up into the session row's running counters.
type TelemetryWorker struct {
	pool *pgxpool.Pool
	rdb  *redis.Client
	log  zerolog.Logger
}

func NewTelemetryWorker(pool *pgxpool.Pool, rdb *redis.Client, log zerolog.Logger) *TelemetryWorker {
	return &TelemetryWorker{
		pool: pool,
		rdb:  rdb,
		log:  log.With().Str("component", "telemetry_worker").Logger(),
	}
}

type telemetrySample struct {
	SessionID   string `json:"session_id"`
	Keystrokes  int    `json:"keystrokes"`
	Clicks      int    `json:"clicks"`
	TabSwitches int    `json:"tab_switches"`
	Timestamp   int64  `json:"timestamp"`
}

func (w *TelemetryWorker) Start(ctx context.Context) {
	w.log.Info().Msg("TelemetryWorker started")

	buffer := make([]*telemetrySample, 0, BatchSize)
	lastFlushTime := time.Now()

	for {
		// 1. Check Flush Conditions (Time or Size)
		if len(buffer) > 0 {
			if len(buffer) >= BatchSize || time.Since(lastFlushTime) >= BatchTimeout {
				w.flushSafe(ctx, buffer)
				buffer = buffer[:0] // Clear buffer, keep capacity
				lastFlushTime = time.Now()
			}
		}

		// 2. Check Context (Graceful Shutdown)
		select {
		case <-ctx.Done():
			w.shutdown(buffer)
			return
		default:
			// Continue
		}

		// 3. Fetch from Redis
		// BLPop blocks for 1 second. Returns immediately if data exists.
		result, err := w.rdb.BLPop(ctx, PollTimeout, config.WorkerKey.PersistTelemetryQueue).Result()

		if err != nil {
			if err == redis.Nil {
				continue // Timeout (Queue empty), loop back to check flush timer
			}
			if ctx.Err() != nil {
				return // Context cancelled
			}
			// Real Redis error (e.g., connection lost)
			w.log.Error().Err(err).Msg("Redis connection error, sleeping 3s")
			time.Sleep(3 * time.Second)
			continue
		}

		// 4. Process Data
		if len(result) < 2 {
			continue
		}

		var sample telemetrySample
		if err := json.Unmarshal([]byte(result[1]), &sample); err != nil {
			// Malformed JSON cannot be retried. Log and discard.
			w.log.Error().Err(err).Str("data", result[1]).Msg("Discarding malformed JSON")
			continue
		}
		if sample.SessionID == "" {
			w.log.Error().Str("data", result[1]).Msg("Discarding sample without session_id")
			continue
		}

		buffer = append(buffer, &sample)
	}
}

// flushSafe attempts bulk insert, then fallback insert, then requeue.
// Whatever lands in the telemetry table also bumps the session counters.
func (w *TelemetryWorker) flushSafe(ctx context.Context, batch []*telemetrySample) {
	persisted := batch
	if err := w.bulkInsert(ctx, batch); err != nil {
		w.log.Warn().Err(err).Int("count", len(batch)).Msg("Bulk insert failed, attempting row-by-row recovery")
		persisted = w.fallbackInsert(ctx, batch)
	}
	w.bumpSessionCounters(ctx, persisted)
}

// sessionCounters is one session's aggregated activity deltas.
type sessionCounters struct {
	Keystrokes  int
	Clicks      int
	TabSwitches int
}

// aggregateSamples sums the deltas in a batch per session.
func aggregateSamples(batch []*telemetrySample) map[string]sessionCounters {
	totals := make(map[string]sessionCounters, len(batch))
	for _, s := range batch {
		c := totals[s.SessionID]
		c.Keystrokes += s.Keystrokes
		c.Clicks += s.Clicks
		c.TabSwitches += s.TabSwitches
		totals[s.SessionID] = c
	}
	return totals
}

// bumpSessionCounters rolls persisted deltas into the session rows. Requeued
// samples bump on their retry pass, so counters stay in step with the
// telemetry table.
func (w *TelemetryWorker) bumpSessionCounters(ctx context.Context, persisted []*telemetrySample) {
	for sessionID, c := range aggregateSamples(persisted) {
		_, err := w.pool.Exec(ctx,
			`UPDATE proctoring_sessions
             SET keystroke_count = keystroke_count + $1,
                 click_count = click_count + $2,
                 tab_switch_count = tab_switch_count + $3
             WHERE session_id = $4`,
			c.Keystrokes, c.Clicks, c.TabSwitches, sessionID,
		)
		if err != nil {
			w.log.Error().Err(err).Str("session_id", sessionID).Msg("Session counter update failed")
		}
	}
}

func (w *TelemetryWorker) bulkInsert(ctx context.Context, batch []*telemetrySample) error {
	rows := make([][]interface{}, 0, len(batch))
	for _, s := range batch {
		rows = append(rows, []interface{}{
			s.SessionID, s.Keystrokes, s.Clicks, s.TabSwitches, time.Unix(s.Timestamp, 0),
		})
	}

	_, err := w.pool.CopyFrom(
		ctx,
		pgx.Identifier{"proctoring_telemetry"},
		[]string{"session_id", "keystrokes", "clicks", "tab_switches", "recorded_at"},
		pgx.CopyFromRows(rows),
	)
	return err
}

// fallbackInsert persists samples one at a time and returns the ones that
// made it into the table.
func (w *TelemetryWorker) fallbackInsert(ctx context.Context, batch []*telemetrySample) []*telemetrySample {
	requeueList := make([]*telemetrySample, 0)
	persisted := make([]*telemetrySample, 0, len(batch))

	for _, s := range batch {
		_, err := w.pool.Exec(ctx,
			`INSERT INTO proctoring_telemetry (session_id, keystrokes, clicks, tab_switches, recorded_at)
             VALUES ($1, $2, $3, $4, $5)`,
			s.SessionID, s.Keystrokes, s.Clicks, s.TabSwitches, time.Unix(s.Timestamp, 0),
		)
		if err != nil {
			// Requeue everything that fails so a DB outage loses nothing.
			// Samples referencing a deleted session will cycle once more and
			// fail again, which is acceptable at this volume.
			w.log.Error().Err(err).Str("session_id", s.SessionID).Msg("Insert failed, requeueing")
			requeueList = append(requeueList, s)
			continue
		}
		persisted = append(persisted, s)
	}

	if len(requeueList) > 0 {
		w.requeue(ctx, requeueList)
	}
	return persisted
}

func (w *TelemetryWorker) requeue(ctx context.Context, items []*telemetrySample) {
	// Use a pipeline to push everything back quickly
	pipe := w.rdb.Pipeline()
	for _, s := range items {
		data, _ := json.Marshal(s)
		pipe.RPush(ctx, config.WorkerKey.PersistTelemetryQueue, data)
	}
	_, err := pipe.Exec(ctx)
	if err != nil {
		w.log.Error().Err(err).Msg("CRITICAL: Failed to requeue items to Redis. Data loss occurred.")
	} else {
		w.log.Info().Int("count", len(items)).Msg("Requeued failed items back to Redis")
		// Sleep a bit to avoid thrashing if the DB is down hard
		time.Sleep(2 * time.Second)
	}
}

func (w *TelemetryWorker) shutdown(buffer []*telemetrySample) {
	w.log.Info().Msg("Worker stopping, flushing remaining buffer...")

	// Give it 5 seconds to flush to DB
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if len(buffer) > 0 {
		w.flushSafe(shutdownCtx, buffer)
	}
}
