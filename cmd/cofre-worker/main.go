package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"cofre/internal/amqp"
	"cofre/internal/cache"
	"cofre/internal/config"
	"cofre/internal/core"
	"cofre/internal/ledger"
	applog "cofre/internal/log"
	"cofre/internal/notify"
	"cofre/internal/report"
	"cofre/internal/storage"
	"cofre/internal/worker"
)

// cofre-worker is the long-running process: it restores the ledger and
// runs the maintenance, snapshot and event-consumer loops until
// SIGINT/SIGTERM.
func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := applog.New(applog.Config{Component: applog.ComponentWorker})
	applog.SetDefault(logger)

	logger.Info("Starting cofre-worker")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", applog.FieldError, err)
		os.Exit(1)
	}

	store, err := storage.NewSQLiteStore(cfg.DBPath)
	if err != nil {
		logger.Error("Failed to open snapshot store", applog.FieldError, err, "path", cfg.DBPath)
		os.Exit(1)
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	snap, err := store.Load(ctx)
	if err != nil {
		logger.Error("Failed to load snapshot", applog.FieldError, err)
		os.Exit(1)
	}

	book := ledger.New()
	book.AddNotifier(notify.NewLogNotifier(logger.Logger))
	if err := book.Restore(snap); err != nil {
		logger.Error("Failed to restore ledger", applog.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Ledger restored",
		applog.FieldOperation, applog.OpRestore,
		"accounts", len(snap.Accounts),
		"transactions", len(snap.Transactions))

	// Broker notifier is optional; without it events only reach the log.
	var amqpClient *amqp.Client
	if cfg.AMQPURL != "" {
		amqpClient, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("Failed to initialize AMQP client, continuing without broker", applog.FieldError, err)
			amqpClient = nil
		} else {
			defer amqpClient.Close()
			book.AddNotifier(amqp.NewNotifier(amqpClient))
			logger.Info("AMQP notifier initialized",
				"exchange", cfg.AMQPExchange, applog.FieldQueue, cfg.AMQPQueue)
		}
	} else {
		logger.Info("AMQP disabled, events go to the log only")
	}

	summaries := cache.NewLRUCache[core.MonthOverview](cfg.CacheSize, cfg.CacheTTL)
	cacheManager := cache.NewManager()
	cacheManager.Register(summaries)
	cacheManager.StartCleanup(cfg.CacheTTL)
	defer cacheManager.Stop()

	reports := report.New(book, summaries)
	runner := worker.NewRunner(book, store, reports, cfg.RegenerationInterval, cfg.SnapshotInterval)

	logger.Info("Worker configured",
		"regeneration_interval", cfg.RegenerationInterval,
		"snapshot_interval", cfg.SnapshotInterval,
		"db_path", cfg.DBPath)

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error { return runner.RunMaintenance(groupCtx) })
	group.Go(func() error { return runner.RunSnapshots(groupCtx) })
	if amqpClient != nil {
		group.Go(func() error { return consumeEvents(groupCtx, logger, amqpClient) })
	}

	if err := group.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Worker stopped with error", applog.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Worker stopped")
}

// consumeEvents drains the event queue into the log as an audit trail,
// reconnecting with backoff whenever the broker connection drops.
func consumeEvents(ctx context.Context, logger *applog.Logger, client *amqp.Client) error {
	for {
		err := client.ConsumeEvents(ctx, func(event notify.Event) error {
			logger.InfoContext(ctx, "Event received",
				applog.FieldOperation, applog.OpConsume,
				applog.FieldEventKind, event.Kind,
				"event_id", event.ID,
				"message", event.Message)
			return nil
		})
		if ctx.Err() != nil {
			return ctx.Err()
		}
		logger.Warn("Event consumption interrupted, reconnecting", applog.FieldError, err)
		if err := client.Reconnect(ctx); err != nil {
			return err
		}
	}
}
