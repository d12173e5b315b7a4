package ledger

import (
	"context"
	"log/slog"
	"time"

	"cofre/internal/core"
	"cofre/internal/log"
)

// RunRecurringRegeneration catches recurring templates up to the given
// date. For every stored recurring transaction whose next occurrence
// (one calendar month later) is due and not yet present, the occurrence is
// generated and posted through the standard flow. Passes repeat until one
// generates nothing, so templates several months stale catch up one month
// per pass; the duplicate check makes the whole run idempotent.
func (l *Ledger) RunRecurringRegeneration(ctx context.Context, today core.Date) []int64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	start := time.Now()
	var generated []int64
	for pass := 1; ; pass++ {
		n := l.regenerationPass(ctx, today, &generated)
		if n == 0 {
			break
		}
		slog.InfoContext(ctx, "Regeneration pass complete", "pass", pass, "generated", n)
	}
	if len(generated) > 0 {
		slog.InfoContext(ctx, "Regeneration run complete",
			log.FieldOperation, log.OpRegenerate,
			"generated", len(generated),
			log.FieldDuration, time.Since(start).Milliseconds())
	}
	return generated
}

// regenerationPass scans the templates present at its start; occurrences
// it posts become templates for the next pass, which is what walks a stale
// template forward month by month.
func (l *Ledger) regenerationPass(ctx context.Context, today core.Date, generated *[]int64) int {
	templates := l.transactions[:len(l.transactions):len(l.transactions)]

	count := 0
	for _, t := range templates {
		if !t.Recurring {
			continue
		}
		next := t.Date.AddMonths(1)
		if next.After(today) {
			continue
		}
		if l.hasTransactionLocked(t.Description, t.Amount, next, t.Kind) {
			continue
		}

		occurrence := t.NextOccurrence()
		in := PostInput{
			Kind:         occurrence.Kind,
			Category:     occurrence.Category,
			Amount:       occurrence.Amount,
			Description:  occurrence.Description,
			Payer:        occurrence.Payer,
			SourceNumber: t.Source.Number(),
			Date:         occurrence.Date,
			Recurring:    true,
		}
		if occurrence.Destination != nil {
			in.DestNumber = occurrence.Destination.Number()
		}
		posted, err := l.postLocked(ctx, in)
		if err != nil {
			// the template stays due; a later run retries once the
			// account can cover it
			slog.ErrorContext(ctx, "Failed to post recurring occurrence",
				log.FieldTransactionID, t.ID,
				"description", t.Description,
				"due_date", next.String(),
				log.FieldError, err)
			continue
		}
		*generated = append(*generated, posted.ID)
		count++
	}
	return count
}

// hasTransactionLocked reports whether a transaction with the exact
// description, amount, date and kind is already stored. This is the
// idempotency check of the regeneration run.
func (l *Ledger) hasTransactionLocked(description string, amount core.Money, date core.Date, kind core.TransactionKind) bool {
	for _, t := range l.transactions {
		if t.Kind == kind && t.Amount == amount && t.Description == description && t.Date.Equal(date) {
			return true
		}
	}
	return false
}
