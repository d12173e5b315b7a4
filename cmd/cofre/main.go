package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"

	"cofre/internal/config"
	"cofre/internal/core"
	"cofre/internal/ledger"
	applog "cofre/internal/log"
	"cofre/internal/notify"
	"cofre/internal/report"
	"cofre/internal/storage"
)

// cofre runs one maintenance session: restore the ledger from the
// snapshot store, catch recurring templates up to today, check alerts,
// report, save and exit. The long-running loops live in cofre-worker.
func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := applog.New(applog.Config{Component: applog.ComponentApp})
	applog.SetDefault(logger)

	logger.Info("Starting cofre session")

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

	ctx := context.Background()

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

	today := core.Today()
	generated := book.RunRecurringRegeneration(ctx, today)
	logger.Info("Recurring regeneration complete", "generated", len(generated))

	book.CheckAlerts(ctx, today)

	reports := report.New(book, nil)
	overview := reports.MonthSummary(today.Month())
	logger.Info("Month overview",
		applog.FieldMonth, overview.Month.String(),
		"income_cents", overview.Income.Cents,
		"expenses_cents", overview.Expenses.Cents,
		"net_cents", overview.Net().Cents)

	if cat, saving := reports.SuggestSavings(); saving.Cents > 0 {
		logger.Info("Savings suggestion",
			applog.FieldCategory, string(cat),
			"potential_cents", saving.Cents)
	}
	for _, a := range reports.DetectAnomalies(0) {
		logger.Warn("Expense well above its category average",
			applog.FieldTransactionID, a.Transaction.ID,
			applog.FieldCategory, string(a.Transaction.Category),
			applog.FieldAmountCents, a.Transaction.Amount.Cents,
			"category_average_cents", a.Average.Cents)
	}

	if err := store.Save(ctx, book.Snapshot()); err != nil {
		logger.Error("Failed to save snapshot", applog.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Session complete")
}
