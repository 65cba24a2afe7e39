package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"bloodlink/config"
	"bloodlink/services/auth"

	"github.com/hibiken/asynq"
)

// InitOTPWorker runs the async OTP delivery worker in the background.
func InitOTPWorker(cfg *config.Config, notifier auth.Notifier) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisOTPQueue,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(auth.TypeOTPDeliver, handleOTPDeliverTask(notifier))

	go func() {
		log.Println("[OTPWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[OTPWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Println("[OTPWorker] max retry attempts reached; OTP delivery degrades to synchronous fallback")
					return
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

// NewOTPQueueClient creates the asynq client used to enqueue deliveries.
func NewOTPQueueClient(cfg *config.Config) *asynq.Client {
	return asynq.NewClient(asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisOTPQueue,
	})
}

func handleOTPDeliverTask(notifier auth.Notifier) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload auth.OTPDeliverPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return err
		}
		expiresIn := time.Duration(payload.ExpiresInSec) * time.Second
		return notifier.SendOTP(payload.PhoneNumber, payload.Email, payload.Code, expiresIn)
	}
}
