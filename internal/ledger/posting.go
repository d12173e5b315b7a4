package ledger

import (
	"context"
	"fmt"
	"log/slog"

	"cofre/internal/core"
	"cofre/internal/log"
	"cofre/internal/notify"
)

// PostInput describes a transaction to post. Accounts are referenced by
// number; Date defaults to today and Installments to a single payment.
type PostInput struct {
	Kind         core.TransactionKind
	Category     core.Category
	Amount       core.Money
	Description  string
	Payer        *core.Owner
	SourceNumber string
	DestNumber   string // transfers only
	Date         core.Date
	Recurring    bool
	Installment  int
	Installments int
}

// PostTransaction runs the posting flow: resolve accounts, execute, store,
// and couple matching budgets for expenses. A failed execution stores
// nothing and leaves every collection untouched.
func (l *Ledger) PostTransaction(ctx context.Context, in PostInput) (*core.Transaction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.postLocked(ctx, in)
}

func (l *Ledger) postLocked(ctx context.Context, in PostInput) (*core.Transaction, error) {
	source, ok := l.accounts[in.SourceNumber]
	if !ok {
		return nil, fmt.Errorf("source account %s: %w", in.SourceNumber, core.ErrNotFound)
	}

	t := core.NewTransaction(in.Kind, in.Category, in.Amount, in.Description, in.Payer, source)
	if in.DestNumber != "" {
		dest, ok := l.accounts[in.DestNumber]
		if !ok {
			return nil, fmt.Errorf("destination account %s: %w", in.DestNumber, core.ErrNotFound)
		}
		t.Destination = dest
	}
	if !in.Date.IsZero() {
		t.Date = in.Date
	}
	t.Recurring = in.Recurring
	if in.Installments > 1 {
		t.Installment = in.Installment
		t.Installments = in.Installments
	}

	if err := t.Validate(); err != nil {
		return nil, err
	}
	if err := t.Execute(); err != nil {
		return nil, err
	}

	t.ID = l.nextTxID
	l.nextTxID++
	l.transactions = append(l.transactions, t)

	if t.Kind == core.Expense {
		l.applyBudgets(ctx, t)
	}

	fields := log.NewFields().
		WithOperation(log.OpPost).
		WithTransaction(t.ID, string(t.Kind), string(t.Category), t.Amount.Cents)
	fields[log.FieldAccountNumber] = in.SourceNumber
	slog.InfoContext(ctx, "Transaction posted", fields.ToSlice()...)

	l.emit(ctx, notify.NewEvent(notify.EventTransactionPosted,
		"transaction posted",
		map[string]any{"id": t.ID, "kind": string(t.Kind), "amount": t.Amount.String(), "description": t.Description}))

	return t, nil
}

// applyBudgets feeds an executed expense into every budget that matches
// its category and reference month, firing the threshold alert at most
// once per budget cycle.
func (l *Ledger) applyBudgets(ctx context.Context, t *core.Transaction) {
	for _, b := range l.budgets {
		if !b.Matches(t.Category, t.Date) {
			continue
		}
		if err := b.AddExpense(t.Amount); err != nil {
			// the transaction amount was already validated, so this
			// indicates a broken budget rather than bad input
			slog.ErrorContext(ctx, "Failed to accumulate expense into budget",
				log.FieldBudget, b.Name, log.FieldError, err)
			continue
		}
		if b.ShouldAlert() {
			l.emit(ctx, notify.NewEvent(notify.EventBudgetAlert,
				"budget near limit",
				map[string]any{
					"budget":   b.Name,
					"category": string(b.Category),
					"spent":    b.Spent.String(),
					"limit":    b.Limit.String(),
				}))
			b.MarkAlertSent()
		}
	}
}

// ReverseTransaction undoes the monetary effect of a stored transaction.
// Budgets are intentionally not decremented: the spent total tracks what
// was charged during the cycle, reversed or not.
func (l *Ledger) ReverseTransaction(ctx context.Context, id int64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	t := l.findLocked(id)
	if t == nil {
		return fmt.Errorf("transaction %d: %w", id, core.ErrNotFound)
	}
	if err := t.Reverse(); err != nil {
		return err
	}

	slog.InfoContext(ctx, "Transaction reversed",
		log.FieldOperation, log.OpReverse,
		log.FieldTransactionID, id,
		log.FieldKind, string(t.Kind))

	l.emit(ctx, notify.NewEvent(notify.EventTransactionReversed,
		"transaction reversed",
		map[string]any{"id": t.ID, "amount": t.Amount.String()}))

	return nil
}

func (l *Ledger) findLocked(id int64) *core.Transaction {
	for _, t := range l.transactions {
		if t.ID == id {
			return t
		}
	}
	return nil
}
