package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/campusmap/campus-events/config"
	"github.com/campusmap/campus-events/internal/catalog"
	"github.com/campusmap/campus-events/internal/consumer"
	"github.com/campusmap/campus-events/internal/handler"
	"github.com/campusmap/campus-events/internal/middleware"
	"github.com/campusmap/campus-events/internal/repository"
	"github.com/campusmap/campus-events/internal/seed"
	"github.com/campusmap/campus-events/internal/service"
	"github.com/campusmap/campus-events/internal/session"
	"github.com/campusmap/campus-events/pkg/database"
	"github.com/campusmap/campus-events/pkg/logging"
	"github.com/campusmap/campus-events/pkg/rabbitmq"
	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Load()

	logging.SetGlobal(logging.New(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format}))

	loc, err := cfg.Location()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid TIMEZONE")
	}

	db, err := database.NewPostgresDB(cfg.DSN(), database.Options{
		MaxOpenConns: cfg.Database.MaxOpenConns,
		MaxIdleConns: cfg.Database.MaxIdleConns,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	eventRepo := repository.NewEventRepository(db)
	attendeeRepo := repository.NewAttendeeRepository(db)

	if cfg.Catalog.SeedOnEmpty {
		n, err := seed.IfEmpty(ctx, eventRepo, time.Now(), loc)
		if err != nil {
			log.Error().Err(err).Msg("seeding failed")
		} else if n > 0 {
			log.Info().Int("events", n).Msg("seeded demo events")
		}
	}

	cat := catalog.New(eventRepo, attendeeRepo, cfg.Catalog.TTL, loc,
		catalog.WithLogger(logging.Component("catalog")))

	var publisher service.Publisher
	if cfg.RabbitMQ.Enabled {
		pub, err := rabbitmq.NewPublisher(cfg.RabbitMQ.URL, logging.Component("rabbitmq"))
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to RabbitMQ")
		}
		defer pub.Close()
		publisher = pub

		cons, err := rabbitmq.NewConsumer(cfg.RabbitMQ.URL, logging.Component("rabbitmq"), consumer.Bindings...)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to start RabbitMQ consumer")
		}
		defer cons.Close()

		msgs, err := cons.Consume()
		if err != nil {
			log.Fatal().Err(err).Msg("failed to consume")
		}
		consumer.NewCatalogConsumer(cat, logging.Component("catalog-consumer")).Start(msgs)
	}

	eventSvc := service.NewEventService(eventRepo, attendeeRepo, cat, publisher)
	attendanceSvc := service.NewAttendanceService(eventRepo, attendeeRepo, cat, publisher)

	if cfg.Auth.JWTSecret == "" {
		log.Warn().Msg("JWT_SECRET is empty, every signed request will be rejected")
	}
	verifier := session.NewVerifier(cfg.Auth.JWTSecret)

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Use(echoMw.RequestID())
	e.Use(middleware.RequestLogger(logging.Component("http")))
	e.Use(echoMw.Recover())
	e.Use(echoMw.CORSWithConfig(echoMw.CORSConfig{
		AllowOrigins: cfg.Server.AllowedOrigins,
		AllowHeaders: []string{echo.HeaderAuthorization, echo.HeaderContentType},
	}))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok", "service": "campus-events"})
	})

	api := e.Group("/api/v1", verifier.Optional())
	handler.NewEventHandler(eventSvc, loc).RegisterRoutes(api, verifier.Required())
	handler.NewAttendanceHandler(attendanceSvc).RegisterRoutes(api, verifier.Required())

	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("campus-events starting")
		if err := e.Start(":" + cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
}
