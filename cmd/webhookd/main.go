package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/medanat/reviewboard/internal/broker"
	natsbroker "github.com/medanat/reviewboard/internal/broker/nats"
	"github.com/medanat/reviewboard/internal/config"
	"github.com/medanat/reviewboard/internal/contenttypes"
	"github.com/medanat/reviewboard/internal/dispatch"
	"github.com/medanat/reviewboard/internal/events"
	"github.com/medanat/reviewboard/internal/httpclient"
	"github.com/medanat/reviewboard/internal/logging"
	"github.com/medanat/reviewboard/internal/notifications"
	"github.com/medanat/reviewboard/internal/retry"
	"github.com/medanat/reviewboard/internal/reviews"
	"github.com/medanat/reviewboard/internal/store/postgres"
)

const drainTimeout = 30 * time.Second

func main() {
	var cfgPath string
	flag.StringVar(&cfgPath, "config", "", "path to config file")
	flag.Parse()

	logging.Init()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}
	if cfg.DatabaseURL == "" {
		slog.Error("database_url is required")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := postgres.New(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to connect to postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		slog.Error("failed to run migrations", slog.Any("error", err))
		os.Exit(1)
	}

	types := contenttypes.NewRegistry()
	types.Register("reviews", reviews.ReviewRequest{})
	types.Register("reviews", reviews.Review{})
	types.Register("reviews", reviews.Comment{})

	// Delivery units outlive the signal context so pending retries can drain.
	schedCtx, schedCancel := context.WithCancel(context.Background())
	defer schedCancel()

	sched := retry.NewScheduler(cfg.Delivery.Workers)
	go sched.Start(schedCtx)

	engine := dispatch.NewEngine(
		httpclient.New(cfg.Delivery.HTTPTimeout.Std()),
		sched,
		retry.Policy{MaxRetries: cfg.Delivery.MaxRetries, DelayUnit: cfg.Delivery.DelayUnit.Std()},
	)

	hub := events.NewHub()
	dispatcher := notifications.NewDispatcher(
		notifications.StaticOwner(cfg.Owner),
		postgres.NewWebhookStore(db),
		types,
		engine,
	)
	teardown := dispatcher.Register(hub, events.PostPublish)
	defer teardown()

	var source broker.Source
	source, err = natsbroker.NewSource(cfg.NATSURL, cfg.Subject, types, hub)
	if err != nil {
		slog.Error("failed to connect event source", slog.Any("error", err))
		os.Exit(1)
	}
	if err := source.Start(ctx); err != nil {
		slog.Error("failed to start event source", slog.Any("error", err))
		os.Exit(1)
	}

	slog.Info("webhookd started",
		slog.String("code", "SYS_STARTUP"),
		slog.String("owner", cfg.Owner.String()),
		slog.String("subject", cfg.Subject),
	)

	<-ctx.Done()

	slog.Info("shutting down", slog.String("code", "SYS_SHUTDOWN"))
	if err := source.Close(); err != nil {
		slog.Warn("failed to close event source", slog.Any("error", err))
	}

	drainCtx, cancel := context.WithTimeout(context.Background(), drainTimeout)
	defer cancel()
	if err := sched.Drain(drainCtx); err != nil {
		slog.Warn("pending deliveries dropped at shutdown", slog.Any("error", err))
	}
}
