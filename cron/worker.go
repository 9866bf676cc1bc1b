package cron

import (
	"context"
	"log"
	"time"

	"radiant/config"
	"radiant/services/scheduling"
	"radiant/services/session"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

const (
	TypeSessionFinalize = "session:finalize"
	TypeCatalogSync     = "catalog:sync"
)

func redisOpts() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// NewQueueClient returns an asynq client for enqueueing ad-hoc tasks
// (e.g. an admin-triggered catalog sync).
func NewQueueClient() *asynq.Client {
	return asynq.NewClient(redisOpts())
}

// InitWorker runs the async worker and periodic scheduler in background:
// the stale-session finalizer every 15 minutes and a nightly catalog sync.
func InitWorker(tracker session.TrackerService, gateway scheduling.Gateway) {
	srv := asynq.NewServer(
		redisOpts(),
		asynq.Config{
			Concurrency: 5,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeSessionFinalize, handleSessionFinalize(tracker))
	mux.HandleFunc(TypeCatalogSync, handleCatalogSync(gateway))

	scheduler := asynq.NewScheduler(redisOpts(), &asynq.SchedulerOpts{})
	if _, err := scheduler.Register("@every 15m", asynq.NewTask(TypeSessionFinalize, nil)); err != nil {
		log.Fatalf("[Worker] failed to register session finalizer: %v", err)
	}
	if _, err := scheduler.Register("@every 24h", asynq.NewTask(TypeCatalogSync, nil)); err != nil {
		log.Fatalf("[Worker] failed to register catalog sync: %v", err)
	}

	// Start Redis health monitor
	go monitorRedisConnection()

	go func() {
		if err := scheduler.Run(); err != nil {
			log.Fatalf("[Worker] scheduler failed: %v", err)
		}
	}()

	// Start async worker with retry logic
	go func() {
		log.Println("[Worker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[Worker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[Worker] max retry attempts reached, exiting")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

func handleSessionFinalize(tracker session.TrackerService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		closed, err := tracker.FinalizeStale(ctx)
		if err != nil {
			log.Printf("[SessionFinalize] sweep failed: %v", err)
			return err
		}
		if closed > 0 {
			log.Printf("[SessionFinalize] marked %d stale sessions abandoned", closed)
		}
		return nil
	}
}

func handleCatalogSync(gateway scheduling.Gateway) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		count, err := gateway.SyncCatalog(ctx)
		if err != nil {
			log.Printf("[CatalogSync] sync failed after %d items: %v", count, err)
			return err
		}
		log.Printf("[CatalogSync] upserted %d catalog items", count)
		return nil
	}
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("[Worker] redis connection lost: %v", err)
		}
		time.Sleep(10 * time.Second)
	}
}
