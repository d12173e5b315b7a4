// Package worker drives the ledger's periodic jobs: recurring
// regeneration, monthly yield accrual, alert checks and snapshot saves.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"cofre/internal/core"
	"cofre/internal/ledger"
	"cofre/internal/log"
	"cofre/internal/report"
	"cofre/internal/storage"
)

// Store is the part of the snapshot store the runner needs.
type Store interface {
	Save(ctx context.Context, snap storage.Snapshot) error
}

type Runner struct {
	ledger  *ledger.Ledger
	store   Store
	reports *report.Reporter

	regenerationInterval time.Duration
	snapshotInterval     time.Duration

	// month the last yield accrual ran in; yields apply once per month
	lastYieldMonth core.Month
}

func NewRunner(l *ledger.Ledger, store Store, reports *report.Reporter, regenerationInterval, snapshotInterval time.Duration) *Runner {
	return &Runner{
		ledger:               l,
		store:                store,
		reports:              reports,
		regenerationInterval: regenerationInterval,
		snapshotInterval:     snapshotInterval,
		lastYieldMonth:       core.CurrentMonth(),
	}
}

// RunMaintenance loops regeneration, yield accrual and alert checks until
// the context ends. One tick failure never stops the loop.
func (r *Runner) RunMaintenance(ctx context.Context) error {
	ticker := time.NewTicker(r.regenerationInterval)
	defer ticker.Stop()

	// catch up immediately on startup
	r.maintenanceTick(ctx)

	for {
		select {
		case <-ctx.Done():
			slog.InfoContext(ctx, "Stopping maintenance loop", "reason", ctx.Err())
			return ctx.Err()
		case <-ticker.C:
			r.maintenanceTick(ctx)
		}
	}
}

func (r *Runner) maintenanceTick(ctx context.Context) {
	today := core.Today()

	generated := r.ledger.RunRecurringRegeneration(ctx, today)
	if len(generated) > 0 {
		slog.InfoContext(ctx, "Recurring regeneration complete",
			log.FieldOperation, log.OpRegenerate,
			"generated", len(generated))
	}

	if month := today.Month(); month != r.lastYieldMonth {
		total := r.ledger.ApplyMonthlyYields()
		r.lastYieldMonth = month
		slog.InfoContext(ctx, "Monthly yields applied",
			log.FieldMonth, month.String(),
			"total_cents", total.Cents)
	}

	r.ledger.CheckAlerts(ctx, today)

	if r.reports != nil {
		overview := r.reports.MonthSummary(today.Month())
		slog.InfoContext(ctx, "Month summary",
			log.FieldMonth, overview.Month.String(),
			"income_cents", overview.Income.Cents,
			"expenses_cents", overview.Expenses.Cents,
			"net_cents", overview.Net().Cents)
	}
}

// RunSnapshots persists the ledger on an interval and once more on
// shutdown, so at most one interval of mutations is ever at risk.
func (r *Runner) RunSnapshots(ctx context.Context) error {
	ticker := time.NewTicker(r.snapshotInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.InfoContext(ctx, "Stopping snapshot loop", "reason", ctx.Err())
			if err := r.SaveSnapshot(context.WithoutCancel(ctx)); err != nil {
				slog.ErrorContext(ctx, "Final snapshot failed", log.FieldError, err)
			}
			return ctx.Err()
		case <-ticker.C:
			if err := r.SaveSnapshot(ctx); err != nil {
				slog.ErrorContext(ctx, "Periodic snapshot failed", log.FieldError, err)
			}
		}
	}
}

// SaveSnapshot persists the current ledger state.
func (r *Runner) SaveSnapshot(ctx context.Context) error {
	snap := r.ledger.Snapshot()
	if err := r.store.Save(ctx, snap); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	slog.InfoContext(ctx, "Snapshot saved",
		log.FieldOperation, log.OpSnapshot,
		"accounts", len(snap.Accounts),
		"transactions", len(snap.Transactions))
	return nil
}
