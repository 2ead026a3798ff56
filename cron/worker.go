package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"ceylonescape/config"
	"ceylonescape/models"
	"ceylonescape/services/notification"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// InitEmailWorker runs the async email worker in background.
func InitEmailWorker(mailer notification.Mailer, logger *zap.Logger) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
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
	mux.HandleFunc(notification.TypeBookingConfirmation, handleConfirmationTask(mailer, logger))

	// Start async worker with retry logic
	go func() {
		log.Println("[EmailWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[EmailWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[EmailWorker] max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

// handleConfirmationTask delivers a queued booking-confirmation email.
// Delivery errors are logged and returned for asynq's bounded retry; they
// never reach the payment flow, which already acknowledged the webhook.
func handleConfirmationTask(mailer notification.Mailer, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var email models.BookingConfirmationEmail
		if err := json.Unmarshal(t.Payload(), &email); err != nil {
			logger.Error("invalid confirmation email payload", zap.Error(err))
			return nil // unparseable payload, retrying won't help
		}

		if err := mailer.SendBookingConfirmation(ctx, email); err != nil {
			logger.Error("confirmation email delivery failed",
				zap.String("bookingID", email.BookingID),
				zap.Error(err))
			return err
		}

		logger.Info("confirmation email sent",
			zap.String("bookingID", email.BookingID),
			zap.String("to", email.To))
		return nil
	}
}
