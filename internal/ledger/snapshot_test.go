package ledger

import (
	"context"
	"errors"
	"testing"

	"cofre/internal/core"
	"cofre/internal/storage"
)

func TestSnapshotRestoreRoundTrip(t *testing.T) {
	l, _ := newTestLedger(t)
	ctx := context.Background()

	mustCreateChecking(t, l, "chk-1", 2000_00)
	if _, err := l.CreateAccount(ctx, core.KindCreditCard, "cc-1", testOwner, AccountParams{
		CreditLimit: core.CentsOf(1500_00),
		ClosingDate: core.NewDate(2025, 6, 25),
		DueDate:     core.NewDate(2025, 7, 5),
	}); err != nil {
		t.Fatalf("CreateAccount: %v", err)
	}
	pig, err := l.CreateAccount(ctx, core.KindPiggybank, "pig-1", testOwner, AccountParams{
		Purpose:    "trip",
		GoalAmount: core.CentsOf(3000_00),
		Deadline:   core.NewDate(2025, 12, 31),
	})
	if err != nil {
		t.Fatalf("CreateAccount: %v", err)
	}
	if err := pig.Deposit(core.CentsOf(750_00)); err != nil {
		t.Fatalf("Deposit: %v", err)
	}

	tx, err := l.PostTransaction(ctx, PostInput{
		Kind: core.Expense, Category: core.CategoryFood,
		Amount: core.CentsOf(80_00), Description: "market",
		Payer: testOwner, SourceNumber: "chk-1",
		Date: core.NewDate(2025, 6, 10), Recurring: true,
	})
	if err != nil {
		t.Fatalf("PostTransaction: %v", err)
	}
	tx.AddAttachment("/receipts/market.pdf")
	if _, err := l.PostTransaction(ctx, PostInput{
		Kind: core.Transfer, Category: core.CategoryNone,
		Amount: core.CentsOf(250_00), Description: "stash",
		SourceNumber: "chk-1", DestNumber: "pig-1",
		Date: core.NewDate(2025, 6, 11),
	}); err != nil {
		t.Fatalf("PostTransaction: %v", err)
	}

	budget := core.NewBudget("groceries", core.CategoryFood, core.CentsOf(1000_00), core.Month{Year: 2025, Month: 6})
	l.AddBudget(budget)
	l.AddGoal(core.NewGoal("emergency fund", core.CategoryNone, core.CentsOf(5000_00), core.NewDate(2026, 1, 1), testOwner))

	snap := l.Snapshot()

	restored := New()
	if err := restored.Restore(snap); err != nil {
		t.Fatalf("Restore: %v", err)
	}

	for _, tc := range []struct {
		number string
		cents  int64
	}{
		{"chk-1", 2000_00 - 80_00 - 250_00},
		{"pig-1", 750_00 + 250_00},
	} {
		balance, err := restored.BalanceOf(tc.number)
		if err != nil {
			t.Fatalf("BalanceOf(%s): %v", tc.number, err)
		}
		if balance.Cents != tc.cents {
			t.Errorf("%s balance = %d, want %d", tc.number, balance.Cents, tc.cents)
		}
	}

	txs := restored.Transactions()
	if len(txs) != 2 {
		t.Fatalf("restored %d transactions, want 2", len(txs))
	}
	if txs[0].Source == nil || txs[0].Source.Number() != "chk-1" {
		t.Error("expense lost its source reference")
	}
	if !txs[0].Recurring {
		t.Error("expense lost the recurring flag")
	}
	if len(txs[0].Attachments) != 1 || txs[0].Attachments[0].Path != "/receipts/market.pdf" {
		t.Errorf("attachments = %+v", txs[0].Attachments)
	}
	if txs[1].Destination == nil || txs[1].Destination.Number() != "pig-1" {
		t.Error("transfer lost its destination reference")
	}

	// references must point at the restored accounts, not dangle
	acc, err := restored.Account("chk-1")
	if err != nil {
		t.Fatalf("Account: %v", err)
	}
	if txs[0].Source != acc {
		t.Error("transaction source is not the restored account instance")
	}
	// same owner record on both accounts after dedup
	if txs[1].Source.Owner() != txs[1].Destination.Owner() {
		t.Error("owners were not deduplicated")
	}

	budgets := restored.Budgets()
	if len(budgets) != 1 || budgets[0].Spent.Cents != 80_00 {
		t.Fatalf("budgets = %+v", budgets)
	}
	goals := restored.Goals()
	if len(goals) != 1 || goals[0].Target.Cents != 5000_00 {
		t.Fatalf("goals = %+v", goals)
	}

	// id sequence continues where the snapshot left off
	next, err := restored.PostTransaction(ctx, PostInput{
		Kind: core.Expense, Category: core.CategoryOther,
		Amount: core.CentsOf(1_00), Description: "x", SourceNumber: "chk-1",
	})
	if err != nil {
		t.Fatalf("PostTransaction: %v", err)
	}
	if next.ID != 3 {
		t.Fatalf("next id = %d, want 3", next.ID)
	}
}

func TestRestoreRejectsBrokenRecords(t *testing.T) {
	t.Run("unknown account kind", func(t *testing.T) {
		err := New().Restore(storage.Snapshot{
			Accounts: []storage.PersistAccount{{Number: "x-1", Kind: "bitcoin"}},
		})
		if !errors.Is(err, core.ErrInvalidKind) {
			t.Fatalf("err = %v, want ErrInvalidKind", err)
		}
	})

	t.Run("dangling transaction reference", func(t *testing.T) {
		err := New().Restore(storage.Snapshot{
			Transactions: []storage.PersistTransaction{{
				ID: 1, Kind: "expense", AmountCents: 100, Date: "2025-06-10",
				SourceNumber: "ghost",
			}},
		})
		if !errors.Is(err, core.ErrNotFound) {
			t.Fatalf("err = %v, want ErrNotFound", err)
		}
	})

	t.Run("failed restore keeps previous state", func(t *testing.T) {
		l, _ := newTestLedger(t)
		mustCreateChecking(t, l, "chk-1", 100_00)

		err := l.Restore(storage.Snapshot{
			Accounts: []storage.PersistAccount{{Number: "x-1", Kind: "bitcoin"}},
		})
		if err == nil {
			t.Fatal("Restore succeeded on a broken snapshot")
		}
		if _, err := l.Account("chk-1"); err != nil {
			t.Fatalf("previous state lost: %v", err)
		}
	})
}

func TestRestoreEmptySnapshotStartsAtOne(t *testing.T) {
	l := New()
	if err := l.Restore(storage.Snapshot{}); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if l.nextTxID != 1 {
		t.Fatalf("nextTxID = %d, want 1", l.nextTxID)
	}
}
