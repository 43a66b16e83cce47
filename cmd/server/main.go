package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog/log"

	"github.com/iliyamo/ticket-sales/internal/clock"
	"github.com/iliyamo/ticket-sales/internal/config"
	"github.com/iliyamo/ticket-sales/internal/database"
	"github.com/iliyamo/ticket-sales/internal/handler"
	"github.com/iliyamo/ticket-sales/internal/logging"
	"github.com/iliyamo/ticket-sales/internal/middleware"
	"github.com/iliyamo/ticket-sales/internal/queue"
	"github.com/iliyamo/ticket-sales/internal/repository"
	"github.com/iliyamo/ticket-sales/internal/router"
	"github.com/iliyamo/ticket-sales/internal/service"
	"github.com/iliyamo/ticket-sales/internal/view"
)

func main() {
	config.LoadDotEnv()
	cfg := config.Load()
	logging.Init(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatal().Err(err).Msg("connect to mysql")
	}
	defer db.Close()

	if cfg.DBMigrate {
		if err := database.Migrate(ctx, db); err != nil {
			log.Fatal().Err(err).Msg("apply migrations")
		}
	}

	rdb := config.NewRedisClient()
	if rdb != nil {
		defer rdb.Close()
	}
	cache := middleware.NewResponseCache(config.LoadCacheConfig(), rdb)
	limit := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

	var publisher service.SalePublisher
	broker := config.LoadBrokerConfig()
	if broker.Enabled {
		publisher = service.NewAMQPPublisher(broker.URL, broker.Queue)
		if broker.Consume {
			consumer := &queue.Consumer{URL: broker.URL, Queue: broker.Queue, LogDir: broker.LogDir}
			go func() {
				if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
					log.Error().Err(err).Msg("ticket sale consumer stopped")
				}
			}()
		}
	}

	clk := clock.NewSystem(cfg.Location)
	events := repository.NewEventRepo(db)
	customers := repository.NewCustomerRepo(db)
	sales := repository.NewTicketSaleRepo(db)
	tickets := service.NewTicketService(events, customers, sales, clk, publisher)

	e := echo.New()
	e.HideBanner = true
	e.Renderer = view.Must()
	e.Use(echomw.RequestID())
	e.Use(echomw.Recover())
	e.Use(logging.RequestLogger())

	router.RegisterRoutes(e)
	router.RegisterEvents(e, handler.NewEventHandler(events, customers, clk), cache.Middleware())
	router.RegisterTickets(e, handler.NewTicketHandler(tickets, events, customers, clk, cache), limit)
	router.RegisterCustomers(e, handler.NewCustomerHandler(customers, sales, cache), cache.Middleware(), limit)

	addr := ":" + cfg.Port
	go func() {
		log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server")
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown")
	}
}
