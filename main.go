package main

import (
	"context"
	"errors"
	"event_ticketing/broker"
	"event_ticketing/config"
	"event_ticketing/constants"
	"event_ticketing/database"
	"event_ticketing/gateway"
	"event_ticketing/handler"
	"event_ticketing/helper"
	"event_ticketing/repository"
	"event_ticketing/router"
	"event_ticketing/service"
	"event_ticketing/utils"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	cfg := config.Load()
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET must be set")
	}

	db, err := database.ConnectDB(cfg.Database)
	if err != nil {
		log.Fatal(err)
	}

	redisClient, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal(err)
	}

	publisher, err := broker.NewPublisher(cfg.Broker)
	if err != nil {
		log.Fatal(err)
	}
	defer publisher.Close()

	eventRepo := repository.NewEventRepository(db)
	ticketRepo := repository.NewTicketRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	attendeeRepo := repository.NewAttendeeRepository(db)
	accountRepo := repository.NewAccountRepository(db)

	var seats service.SeatAllocator = repository.NewPostgresSeatCounter(eventRepo)
	publishers := service.Publishers{publisher}
	var feed *helper.LiveFeed
	if redisClient != nil {
		seats = repository.NewRedisSeatCounter(redisClient)
		feed = helper.NewLiveFeed(redisClient)
		publishers = append(publishers, feed)
	}

	var images service.ImageStore
	if cfg.Cloudinary.CloudName != "" {
		store, err := helper.NewCloudinaryStore(cfg.Cloudinary)
		if err != nil {
			log.Fatal(err)
		}
		images = store
	} else {
		log.Warn("CLOUDINARY_CLOUD_NAME not set, event image upload disabled")
	}

	tokens := helper.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)
	notifier := service.NewMailNotifier(utils.NewMailer(cfg.Mail))

	events := service.NewEventService(eventRepo, images)
	ledger := service.NewLedger(eventRepo, ticketRepo, seats, publishers)
	payments := service.NewPaymentService(eventRepo, ticketRepo, paymentRepo, attendeeRepo, seats,
		gateway.NewClient(cfg.Gateway), notifier, publishers, cfg.Gateway)
	checkIn := service.NewCheckInService(eventRepo, attendeeRepo, publishers)
	accounts := service.NewAccountService(accountRepo, tokens)

	reconciler, err := helper.StartPaymentReconciler(cfg.ReconcileInterval, func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.ReconcileInterval)
		defer cancel()
		n, err := payments.ReconcilePending(ctx, cfg.PendingPaymentAge)
		if err != nil {
			log.Errorf("reconcile pending payments: %v", err)
			return
		}
		if n > 0 {
			log.Infof("Reconciled %d pending payments", n)
		}
	})
	if err != nil {
		log.Fatal(err)
	}
	defer reconciler.Shutdown()

	closer, err := helper.StartEventCloser(cfg.EventCloseSpec, func() {
		n, err := events.CloseEndedEvents(context.Background())
		if err != nil {
			log.Errorf("close ended events: %v", err)
			return
		}
		if n > 0 {
			log.Infof("Marked %d events as ended", n)
		}
	})
	if err != nil {
		log.Fatal(err)
	}
	defer closer.Stop()

	app := fiber.New(fiber.Config{
		BodyLimit: 10 * 1024 * 1024,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				return utils.ErrorResponse(c, fiberErr.Code, fiberErr.Message, nil)
			}
			log.Errorf("%s %s: %v", c.Method(), c.Path(), err)
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, nil)
		},
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CorsOrigins,
		AllowMethods:     "GET,POST,PUT,DELETE,PATCH,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Authorization, Accept",
		AllowCredentials: true,
		MaxAge:           600,
	}))

	h := handler.NewHandler(accounts, events, ledger, payments, checkIn, feed, cfg.Gateway.SecretKey)
	router.SetupRoutes(app, h, tokens)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		log.Info("Shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Errorf("shutdown: %v", err)
		}
	}()

	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
