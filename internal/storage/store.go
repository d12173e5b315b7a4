package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	_ "modernc.org/sqlite"

	"cofre/internal/log"
)

const snapshotVersion = 1

const metaKeyNextTransactionID = "next_transaction_id"

// SQLiteStore persists ledger snapshots in a local SQLite file.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if needed) the snapshot database and runs
// migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Save replaces the stored snapshot with the given one inside a single
// database transaction, so a failed save leaves the previous snapshot
// intact.
func (s *SQLiteStore) Save(ctx context.Context, snap Snapshot) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"accounts", "transactions", "budgets", "goals", "ledger_meta"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	for _, a := range snap.Accounts {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO accounts (
				number, kind, owner_name, owner_email, active, balance_cents,
				overdraft_limit_cents, monthly_fee_cents,
				credit_limit_cents, available_credit_cents, statement_cents, closing_date, due_date,
				yield_percent, risk_profile,
				purpose, goal_cents, deadline, created_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			a.Number, a.Kind, a.OwnerName, a.OwnerEmail, a.Active, a.BalanceCents,
			a.OverdraftLimitCents, a.MonthlyFeeCents,
			a.CreditLimitCents, a.AvailableCreditCents, a.StatementCents, a.ClosingDate, a.DueDate,
			a.YieldPercent, a.RiskProfile,
			a.Purpose, a.GoalCents, a.Deadline, a.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert account %s: %w", a.Number, err)
		}
	}

	for _, t := range snap.Transactions {
		atts, err := json.Marshal(t.Attachments)
		if err != nil {
			return fmt.Errorf("marshal attachments of transaction %d: %w", t.ID, err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO transactions (
				id, kind, category, amount_cents, date, description,
				payer_name, payer_email, source_number, dest_number,
				recurring, installment, installments, reversed, attachments
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			t.ID, t.Kind, t.Category, t.AmountCents, t.Date, t.Description,
			t.PayerName, t.PayerEmail, t.SourceNumber, t.DestNumber,
			t.Recurring, t.Installment, t.Installments, t.Reversed, string(atts),
		)
		if err != nil {
			return fmt.Errorf("insert transaction %d: %w", t.ID, err)
		}
	}

	for _, b := range snap.Budgets {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO budgets (name, category, year, month, limit_cents, spent_cents, alert_threshold, alert_sent)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			b.Name, b.Category, b.Year, b.Month, b.LimitCents, b.SpentCents, b.AlertThreshold, b.AlertSent,
		)
		if err != nil {
			return fmt.Errorf("insert budget %s: %w", b.Name, err)
		}
	}

	for _, g := range snap.Goals {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO goals (name, category, target_cents, current_cents, start_date, deadline, owner_name, owner_email, reached)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			g.Name, g.Category, g.TargetCents, g.CurrentCents, g.StartDate, g.Deadline, g.OwnerName, g.OwnerEmail, g.Reached,
		)
		if err != nil {
			return fmt.Errorf("insert goal %s: %w", g.Name, err)
		}
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO ledger_meta (key, value) VALUES (?, ?)",
		metaKeyNextTransactionID, strconv.FormatInt(snap.NextTransactionID, 10),
	)
	if err != nil {
		return fmt.Errorf("insert meta: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}

	slog.InfoContext(ctx, "Snapshot saved",
		log.FieldOperation, log.OpSnapshot,
		"accounts", len(snap.Accounts),
		"transactions", len(snap.Transactions),
		"budgets", len(snap.Budgets),
		"goals", len(snap.Goals))

	return nil
}

// Load reads the stored snapshot. An empty database yields an empty
// snapshot, not an error.
func (s *SQLiteStore) Load(ctx context.Context) (Snapshot, error) {
	snap := Snapshot{
		Meta: Meta{Version: snapshotVersion, SavedAt: time.Now().UTC()},
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT number, kind, owner_name, owner_email, active, balance_cents,
			overdraft_limit_cents, monthly_fee_cents,
			credit_limit_cents, available_credit_cents, statement_cents, closing_date, due_date,
			yield_percent, risk_profile,
			purpose, goal_cents, deadline, created_at
		FROM accounts ORDER BY number`)
	if err != nil {
		return snap, fmt.Errorf("query accounts: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var a PersistAccount
		err := rows.Scan(&a.Number, &a.Kind, &a.OwnerName, &a.OwnerEmail, &a.Active, &a.BalanceCents,
			&a.OverdraftLimitCents, &a.MonthlyFeeCents,
			&a.CreditLimitCents, &a.AvailableCreditCents, &a.StatementCents, &a.ClosingDate, &a.DueDate,
			&a.YieldPercent, &a.RiskProfile,
			&a.Purpose, &a.GoalCents, &a.Deadline, &a.CreatedAt)
		if err != nil {
			return snap, fmt.Errorf("scan account: %w", err)
		}
		snap.Accounts = append(snap.Accounts, a)
	}
	if err := rows.Err(); err != nil {
		return snap, fmt.Errorf("iterate accounts: %w", err)
	}

	txRows, err := s.db.QueryContext(ctx, `
		SELECT id, kind, category, amount_cents, date, description,
			payer_name, payer_email, source_number, dest_number,
			recurring, installment, installments, reversed, attachments
		FROM transactions ORDER BY id`)
	if err != nil {
		return snap, fmt.Errorf("query transactions: %w", err)
	}
	defer txRows.Close()
	for txRows.Next() {
		var t PersistTransaction
		var atts string
		err := txRows.Scan(&t.ID, &t.Kind, &t.Category, &t.AmountCents, &t.Date, &t.Description,
			&t.PayerName, &t.PayerEmail, &t.SourceNumber, &t.DestNumber,
			&t.Recurring, &t.Installment, &t.Installments, &t.Reversed, &atts)
		if err != nil {
			return snap, fmt.Errorf("scan transaction: %w", err)
		}
		if err := json.Unmarshal([]byte(atts), &t.Attachments); err != nil {
			return snap, fmt.Errorf("unmarshal attachments of transaction %d: %w", t.ID, err)
		}
		snap.Transactions = append(snap.Transactions, t)
	}
	if err := txRows.Err(); err != nil {
		return snap, fmt.Errorf("iterate transactions: %w", err)
	}

	bRows, err := s.db.QueryContext(ctx, `
		SELECT name, category, year, month, limit_cents, spent_cents, alert_threshold, alert_sent
		FROM budgets ORDER BY year, month, category, name`)
	if err != nil {
		return snap, fmt.Errorf("query budgets: %w", err)
	}
	defer bRows.Close()
	for bRows.Next() {
		var b PersistBudget
		err := bRows.Scan(&b.Name, &b.Category, &b.Year, &b.Month, &b.LimitCents, &b.SpentCents, &b.AlertThreshold, &b.AlertSent)
		if err != nil {
			return snap, fmt.Errorf("scan budget: %w", err)
		}
		snap.Budgets = append(snap.Budgets, b)
	}
	if err := bRows.Err(); err != nil {
		return snap, fmt.Errorf("iterate budgets: %w", err)
	}

	gRows, err := s.db.QueryContext(ctx, `
		SELECT name, category, target_cents, current_cents, start_date, deadline, owner_name, owner_email, reached
		FROM goals ORDER BY name`)
	if err != nil {
		return snap, fmt.Errorf("query goals: %w", err)
	}
	defer gRows.Close()
	for gRows.Next() {
		var g PersistGoal
		err := gRows.Scan(&g.Name, &g.Category, &g.TargetCents, &g.CurrentCents, &g.StartDate, &g.Deadline, &g.OwnerName, &g.OwnerEmail, &g.Reached)
		if err != nil {
			return snap, fmt.Errorf("scan goal: %w", err)
		}
		snap.Goals = append(snap.Goals, g)
	}
	if err := gRows.Err(); err != nil {
		return snap, fmt.Errorf("iterate goals: %w", err)
	}

	var nextID string
	err = s.db.QueryRowContext(ctx,
		"SELECT value FROM ledger_meta WHERE key = ?", metaKeyNextTransactionID).Scan(&nextID)
	switch {
	case err == sql.ErrNoRows:
		snap.NextTransactionID = 1
	case err != nil:
		return snap, fmt.Errorf("query meta: %w", err)
	default:
		id, err := strconv.ParseInt(nextID, 10, 64)
		if err != nil {
			return snap, fmt.Errorf("parse next transaction id %q: %w", nextID, err)
		}
		snap.NextTransactionID = id
	}

	return snap, nil
}
