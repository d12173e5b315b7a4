package ledger

import (
	"context"
	"testing"

	"cofre/internal/core"
)

// A recurring income dated three months back catches up in one run: three
// new occurrences, one calendar month apart, and a second run generates
// nothing.
func TestRegenerationCatchesUpStaleTemplate(t *testing.T) {
	l, _ := newTestLedger(t)
	ctx := context.Background()
	mustCreateChecking(t, l, "chk-1", 0)

	start := core.NewDate(2025, 3, 5)
	if _, err := l.PostTransaction(ctx, PostInput{
		Kind:         core.Income,
		Category:     core.CategorySalary,
		Amount:       core.CentsOf(3000_00),
		Description:  "salary",
		SourceNumber: "chk-1",
		Date:         start,
		Recurring:    true,
	}); err != nil {
		t.Fatalf("post template: %v", err)
	}

	today := core.NewDate(2025, 6, 10)
	generated := l.RunRecurringRegeneration(ctx, today)
	if len(generated) != 3 {
		t.Fatalf("generated %d occurrences, want 3", len(generated))
	}

	txs := l.Transactions()
	if len(txs) != 4 {
		t.Fatalf("stored %d transactions, want 4", len(txs))
	}
	for i, tx := range txs {
		want := start.AddMonths(i)
		if !tx.Date.Equal(want) {
			t.Errorf("transaction %d date = %s, want %s", i, tx.Date, want)
		}
		if !tx.Recurring {
			t.Errorf("transaction %d lost the recurring flag", i)
		}
	}
	if balance, _ := l.BalanceOf("chk-1"); balance.Cents != 4*3000_00 {
		t.Fatalf("balance = %d, want %d", balance.Cents, 4*3000_00)
	}

	// idempotency: nothing left to generate
	if again := l.RunRecurringRegeneration(ctx, today); len(again) != 0 {
		t.Fatalf("second run generated %d occurrences, want 0", len(again))
	}
}

func TestRegenerationSkipsNotDueTemplates(t *testing.T) {
	l, _ := newTestLedger(t)
	ctx := context.Background()
	mustCreateChecking(t, l, "chk-1", 0)

	if _, err := l.PostTransaction(ctx, PostInput{
		Kind: core.Income, Category: core.CategorySalary,
		Amount: core.CentsOf(3000_00), Description: "salary",
		SourceNumber: "chk-1", Date: core.NewDate(2025, 6, 5), Recurring: true,
	}); err != nil {
		t.Fatalf("post template: %v", err)
	}

	// next occurrence is July 5, still in the future
	if generated := l.RunRecurringRegeneration(ctx, core.NewDate(2025, 6, 20)); len(generated) != 0 {
		t.Fatalf("generated %d occurrences, want 0", len(generated))
	}
}

func TestRegenerationIgnoresNonRecurring(t *testing.T) {
	l, _ := newTestLedger(t)
	ctx := context.Background()
	mustCreateChecking(t, l, "chk-1", 100_00)

	if _, err := l.PostTransaction(ctx, PostInput{
		Kind: core.Expense, Category: core.CategoryFood,
		Amount: core.CentsOf(10_00), Description: "lunch",
		SourceNumber: "chk-1", Date: core.NewDate(2025, 1, 5),
	}); err != nil {
		t.Fatalf("post: %v", err)
	}

	if generated := l.RunRecurringRegeneration(ctx, core.NewDate(2025, 6, 1)); len(generated) != 0 {
		t.Fatalf("generated %d occurrences from a one-off, want 0", len(generated))
	}
}

// A recurring expense the account cannot cover is skipped, the run still
// terminates, and the template stays due for a later run.
func TestRegenerationSkipsFailingPosts(t *testing.T) {
	l, _ := newTestLedger(t)
	ctx := context.Background()
	acc := mustCreateChecking(t, l, "chk-1", 50_00)

	if _, err := l.PostTransaction(ctx, PostInput{
		Kind: core.Expense, Category: core.CategoryHousing,
		Amount: core.CentsOf(40_00), Description: "rent",
		SourceNumber: "chk-1", Date: core.NewDate(2025, 4, 1), Recurring: true,
	}); err != nil {
		t.Fatalf("post template: %v", err)
	}

	today := core.NewDate(2025, 5, 15)
	// 10 left in the account, the 40 occurrence cannot post
	if generated := l.RunRecurringRegeneration(ctx, today); len(generated) != 0 {
		t.Fatalf("generated %d occurrences without funds, want 0", len(generated))
	}

	if err := acc.Deposit(core.CentsOf(100_00)); err != nil {
		t.Fatalf("Deposit: %v", err)
	}
	if generated := l.RunRecurringRegeneration(ctx, today); len(generated) != 1 {
		t.Fatalf("generated %d occurrences after funding, want 1", len(generated))
	}
}

// End-of-month templates clamp rather than roll over: Jan 31 generates
// Feb 28, and the February occurrence then generates Mar 28.
func TestRegenerationClampsMonthEnds(t *testing.T) {
	l, _ := newTestLedger(t)
	ctx := context.Background()
	mustCreateChecking(t, l, "chk-1", 0)

	if _, err := l.PostTransaction(ctx, PostInput{
		Kind: core.Income, Category: core.CategoryFreelance,
		Amount: core.CentsOf(500_00), Description: "retainer",
		SourceNumber: "chk-1", Date: core.NewDate(2025, 1, 31), Recurring: true,
	}); err != nil {
		t.Fatalf("post template: %v", err)
	}

	generated := l.RunRecurringRegeneration(ctx, core.NewDate(2025, 4, 1))
	if len(generated) != 2 {
		t.Fatalf("generated %d occurrences, want 2", len(generated))
	}

	txs := l.Transactions()
	wantDates := []core.Date{
		core.NewDate(2025, 1, 31),
		core.NewDate(2025, 2, 28),
		core.NewDate(2025, 3, 28),
	}
	for i, want := range wantDates {
		if !txs[i].Date.Equal(want) {
			t.Errorf("transaction %d date = %s, want %s", i, txs[i].Date, want)
		}
	}
}

func TestRegenerationCarriesTransferDestination(t *testing.T) {
	l, _ := newTestLedger(t)
	ctx := context.Background()
	mustCreateChecking(t, l, "chk-1", 1000_00)

	sav, err := l.CreateAccount(ctx, core.KindDigitalSavings, "sav-1", testOwner, AccountParams{YieldPercent: 0.5})
	if err != nil {
		t.Fatalf("CreateAccount: %v", err)
	}

	if _, err := l.PostTransaction(ctx, PostInput{
		Kind: core.Transfer, Category: core.CategoryNone,
		Amount: core.CentsOf(100_00), Description: "monthly savings",
		SourceNumber: "chk-1", DestNumber: "sav-1",
		Date: core.NewDate(2025, 5, 1), Recurring: true,
	}); err != nil {
		t.Fatalf("post template: %v", err)
	}

	if generated := l.RunRecurringRegeneration(ctx, core.NewDate(2025, 6, 2)); len(generated) != 1 {
		t.Fatalf("generated %d occurrences, want 1", len(generated))
	}
	if sav.Balance().Cents != 200_00 {
		t.Fatalf("savings balance = %d, want 20000", sav.Balance().Cents)
	}
}
