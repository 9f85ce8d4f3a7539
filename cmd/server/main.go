package main // Entry point package

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/iliyamo/cinematch/internal/config"
	"github.com/iliyamo/cinematch/internal/console"
	"github.com/iliyamo/cinematch/internal/database"
	"github.com/iliyamo/cinematch/internal/handler"
	"github.com/iliyamo/cinematch/internal/logging"
	"github.com/iliyamo/cinematch/internal/middleware"
	"github.com/iliyamo/cinematch/internal/queue"
	"github.com/iliyamo/cinematch/internal/repository"
	"github.com/iliyamo/cinematch/internal/router"
	"github.com/iliyamo/cinematch/internal/service"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
	cfg := config.Load()

	// The console renders on the terminal, so logs move to a file.
	var logOutputs []string
	if cfg.ConsoleEnabled {
		logOutputs = append(logOutputs, cfg.ConsoleLogFile)
	}
	log, err := logging.New(cfg.Env, logOutputs...)
	if err != nil {
		os.Stderr.WriteString("logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg config.Config, log *zap.Logger) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	seats := repository.NewSeatRepo(cfg.SeatRows, cfg.SeatCols, cfg.BasePriceCents)
	booking := service.NewBookingService(seats, service.Pricing{
		BaseCents:     cfg.BasePriceCents,
		ElevatedCents: cfg.ElevatedPriceCents,
	}, log.Named("booking"))

	// Redis is optional: without it the seat map is not cached and the
	// booking routes are limited per process.
	rdb, err := config.NewRedisClient(ctx)
	if err != nil {
		log.Warn("redis unavailable, caching disabled", zap.Error(err))
	}
	if rdb != nil {
		defer func() { _ = rdb.Close() }()
	}
	cacheCfg := config.LoadCacheConfig()
	if rdb != nil && cacheCfg.Enabled {
		booking.AddListener(service.BookingListenerFunc(func(ctx context.Context, _ service.BookingResult) error {
			return middleware.PurgeRedisCache(ctx, cacheCfg, rdb)
		}))
	}

	if cfg.AuditEnabled {
		db, err := database.Open(ctx, cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
		if err != nil {
			return err
		}
		defer db.Close()
		if err := database.EnsureSchema(ctx, db); err != nil {
			return err
		}
		booking.AddListener(service.NewAuditListener(repository.NewBookingAuditRepo(db)))
		log.Info("booking audit enabled", zap.String("db", cfg.DBName))
	}

	if cfg.EventsEnabled {
		booking.AddListener(service.NewEventPublisher(cfg.RabbitMQURL, booking, log.Named("events")))
		go func() {
			err := queue.StartBookingConsumer(ctx, cfg.RabbitMQURL, cfg.BookingLogDir, log.Named("consumer"))
			if err != nil && !errors.Is(err, context.Canceled) {
				log.Error("booking consumer stopped", zap.Error(err))
			}
		}()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(echomw.Recover())
	e.Use(middleware.RequestLogger(log.Named("http")))
	router.RegisterRoutes(e)
	router.RegisterCinema(e,
		handler.NewCinemaHandler(booking),
		middleware.NewRedisCache(cacheCfg, rdb),
		middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb, log.Named("ratelimit")),
	)

	addr := ":" + cfg.Port
	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("addr", addr), zap.String("env", cfg.Env),
			zap.Int("capacity", seats.Capacity()))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	if cfg.ConsoleEnabled {
		// Leaving the console shuts the whole process down.
		go func() {
			if err := console.Run(ctx, booking); err != nil && ctx.Err() == nil {
				log.Error("console stopped", zap.Error(err))
			}
			stop()
		}()
	}

	select {
	case <-ctx.Done():
	case err, ok := <-errCh:
		if ok {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	log.Info("shutting down")
	err = e.Shutdown(shutdownCtx)
	// Deliver pending events before the redis, MySQL and broker handles close.
	booking.Close()
	return err
}
