package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// StartWorkerPool launches numWorkers goroutines consuming the job queues.
// Each goroutine blocks on BRPOP — zero CPU when idle.
func StartWorkerPool(ctx context.Context, rdb *redis.Client, numWorkers int, emailWorker *EmailWorker) {
	for i := 0; i < numWorkers; i++ {
		go runWorker(ctx, rdb, i, emailWorker)
	}
	log.Info().Msgf("worker pool started with %d workers", numWorkers)
}

func runWorker(ctx context.Context, rdb *redis.Client, id int, emailWorker *EmailWorker) {
	queues := []string{QueueEmail}
	for {
		select {
		case <-ctx.Done():
			log.Info().Msgf("worker %d shutting down", id)
			return
		default:
			// Blocking pop — waits up to 5s then loops to check ctx
			result, err := rdb.BRPop(ctx, 5*time.Second, queues...).Result()
			if err != nil {
				continue // timeout or context cancelled
			}
			if len(result) < 2 {
				continue
			}
			processJob(ctx, result[0], result[1], emailWorker)
		}
	}
}

func processJob(ctx context.Context, queue, raw string, emailWorker *EmailWorker) {
	var job Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		log.Error().Str("queue", queue).Err(err).Msg("failed to unmarshal job")
		return
	}
	switch job.Type {
	case "email":
		emailWorker.Process(ctx, job.Payload)
	default:
		log.Warn().Str("type", job.Type).Str("queue", queue).Msg("unknown job type")
	}
}
