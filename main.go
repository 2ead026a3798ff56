package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ceylonescape/config"
	"ceylonescape/cron"
	"ceylonescape/database"
	bookingRepoPkg "ceylonescape/database/repository/booking"
	paymentRepoPkg "ceylonescape/database/repository/payment"
	reviewRepoPkg "ceylonescape/database/repository/review"
	tourRepoPkg "ceylonescape/database/repository/tour"
	userRepoPkg "ceylonescape/database/repository/user"
	"ceylonescape/handlers"
	"ceylonescape/middleware"
	"ceylonescape/routes"
	"ceylonescape/services/booking"
	"ceylonescape/services/notification"
	"ceylonescape/services/payment"
	"ceylonescape/services/rating"
	"ceylonescape/services/review"
	"ceylonescape/services/tour"
	"ceylonescape/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	stripe.Key = config.AppConfig.StripeSecretKey

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(cors.Default())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	tourRepo := tourRepoPkg.NewMongoTourRepo()
	reviewRepo := reviewRepoPkg.NewMongoReviewRepo()
	paymentRepo := paymentRepoPkg.NewMongoPaymentSessionRepo()
	userRepo := userRepoPkg.NewMongoUserRepo()

	// Async email delivery: enqueue from the reconciler, deliver in the worker.
	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	defer asynqClient.Close()
	cron.InitEmailWorker(notification.NewSMTPMailer(), logger)

	// services.
	ratingEngine := &rating.DefaultEngine{
		Reviews: reviewRepo,
		Tours:   tourRepo,
		Logger:  logger,
	}
	bookingService := &booking.DefaultBookingService{
		Repo:   bookingRepo,
		Tours:  tourRepo,
		Logger: logger,
	}
	reviewService := &review.DefaultReviewService{
		Repo:   reviewRepo,
		Tours:  tourRepo,
		Engine: ratingEngine,
		Logger: logger,
	}
	tourService := &tour.DefaultTourService{
		Repo:        tourRepo,
		CacheClient: utils.GetCacheClient(),
		Logger:      logger,
	}
	paymentService := &payment.DefaultPaymentService{
		Checkout:      payment.NewStripeCheckoutClient(),
		Sessions:      paymentRepo,
		Bookings:      bookingRepo,
		Users:         userRepo,
		Notifier:      &notification.AsynqEnqueuer{Client: asynqClient},
		WebhookSecret: config.AppConfig.StripeWebhookSecret,
		SuccessURL:    config.AppConfig.CheckoutSuccessURL,
		CancelURL:     config.AppConfig.CheckoutCancelURL,
		Logger:        logger,
	}

	// handlers.
	bookingHandler := handlers.NewBookingHandler(bookingService, logger)
	tourHandler := handlers.NewTourHandler(tourService, logger)
	reviewHandler := handlers.NewReviewHandler(reviewService, logger)
	paymentHandler := handlers.NewPaymentHandler(paymentService, logger)

	// Register routes.
	routes.RegisterHealthRoute(router)
	routes.RegisterTourRoutes(router, tourHandler, reviewHandler)
	routes.RegisterBookingRoutes(router, bookingHandler, paymentHandler)
	routes.RegisterReviewRoutes(router, reviewHandler)
	routes.RegisterCheckoutRoute(router, paymentHandler)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "5000"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
