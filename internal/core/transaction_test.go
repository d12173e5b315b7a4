package core

import (
	"errors"
	"testing"
)

func newFundedChecking(t *testing.T, number string, cents int64) *Checking {
	t.Helper()
	c := NewChecking(number, testOwner, CentsOf(0))
	if cents > 0 {
		if err := c.Deposit(CentsOf(cents)); err != nil {
			t.Fatalf("fund %s: %v", number, err)
		}
	}
	return c
}

func TestExecuteIncome(t *testing.T) {
	acc := newFundedChecking(t, "a1", 0)
	tx := NewTransaction(Income, CategorySalary, CentsOf(3000_00), "salary", testOwner, acc)
	if err := tx.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if got := acc.Balance().Cents; got != 3000_00 {
		t.Fatalf("balance: got %d", got)
	}
}

func TestExecuteExpenseInsufficient(t *testing.T) {
	acc := newFundedChecking(t, "a1", 50_00)
	tx := NewTransaction(Expense, CategoryFood, CentsOf(100_00), "groceries", testOwner, acc)
	if err := tx.Execute(); !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}
	if got := acc.Balance().Cents; got != 50_00 {
		t.Fatalf("failed expense must not move the balance: got %d", got)
	}
}

func TestExecuteTransfer(t *testing.T) {
	src := newFundedChecking(t, "a1", 500_00)
	dst := newFundedChecking(t, "a2", 0)
	tx := NewTransfer(CentsOf(200_00), "rent share", testOwner, src, dst)
	if err := tx.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if src.Balance().Cents != 300_00 || dst.Balance().Cents != 200_00 {
		t.Fatalf("balances after transfer: src %d dst %d", src.Balance().Cents, dst.Balance().Cents)
	}
}

func TestExecuteTransferMissingDestination(t *testing.T) {
	src := newFundedChecking(t, "a1", 500_00)
	tx := NewTransaction(Transfer, CategoryNone, CentsOf(200_00), "oops", testOwner, src)
	if err := tx.Execute(); !errors.Is(err, ErrMissingDestination) {
		t.Fatalf("expected ErrMissingDestination, got %v", err)
	}
	if got := src.Balance().Cents; got != 500_00 {
		t.Fatalf("source must be untouched: got %d", got)
	}
}

func TestExecuteTransferInactiveDestinationCompensates(t *testing.T) {
	src := newFundedChecking(t, "a1", 500_00)
	dst := newFundedChecking(t, "a2", 0)
	dst.SetActive(false)
	tx := NewTransfer(CentsOf(200_00), "to closed account", testOwner, src, dst)
	if err := tx.Execute(); !errors.Is(err, ErrAccountInactive) {
		t.Fatalf("expected ErrAccountInactive, got %v", err)
	}
	if got := src.Balance().Cents; got != 500_00 {
		t.Fatalf("source must be restored after failed deposit: got %d", got)
	}
}

func TestReverseSymmetry(t *testing.T) {
	cases := []struct {
		name string
		kind TransactionKind
	}{
		{"income", Income},
		{"expense", Expense},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			acc := newFundedChecking(t, "a1", 1000_00)
			before := acc.Balance()
			tx := NewTransaction(tc.kind, CategoryOther, CentsOf(250_00), "x", testOwner, acc)
			if err := tx.Execute(); err != nil {
				t.Fatalf("execute: %v", err)
			}
			if err := tx.Reverse(); err != nil {
				t.Fatalf("reverse: %v", err)
			}
			if got := acc.Balance(); got != before {
				t.Fatalf("balance not restored: got %d, want %d", got.Cents, before.Cents)
			}
			if !tx.Reversed {
				t.Fatal("reversed flag must be set")
			}
		})
	}
}

func TestReverseTransfer(t *testing.T) {
	src := newFundedChecking(t, "a1", 500_00)
	dst := newFundedChecking(t, "a2", 0)
	tx := NewTransfer(CentsOf(200_00), "move", testOwner, src, dst)
	if err := tx.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if err := tx.Reverse(); err != nil {
		t.Fatalf("reverse: %v", err)
	}
	if src.Balance().Cents != 500_00 || dst.Balance().Cents != 0 {
		t.Fatalf("balances after reversal: src %d dst %d", src.Balance().Cents, dst.Balance().Cents)
	}
}

func TestReverseTransferDestinationDrained(t *testing.T) {
	src := newFundedChecking(t, "a1", 500_00)
	dst := newFundedChecking(t, "a2", 0)
	tx := NewTransfer(CentsOf(200_00), "move", testOwner, src, dst)
	if err := tx.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	// drain the destination so the reversal cannot withdraw back
	if err := dst.Withdraw(CentsOf(200_00)); err != nil {
		t.Fatalf("drain: %v", err)
	}
	if err := tx.Reverse(); !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}
	if got := src.Balance().Cents; got != 300_00 {
		t.Fatalf("source must be untouched by failed reversal: got %d", got)
	}
	if tx.Reversed {
		t.Fatal("reversed flag must not be set after a failed reversal")
	}
}

func TestReverseTwice(t *testing.T) {
	acc := newFundedChecking(t, "a1", 1000_00)
	tx := NewTransaction(Income, CategorySalary, CentsOf(100_00), "x", testOwner, acc)
	if err := tx.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if err := tx.Reverse(); err != nil {
		t.Fatalf("first reverse: %v", err)
	}
	if err := tx.Reverse(); !errors.Is(err, ErrAlreadyReversed) {
		t.Fatalf("expected ErrAlreadyReversed, got %v", err)
	}
	if got := acc.Balance().Cents; got != 1000_00 {
		t.Fatalf("second reversal must not move the balance: got %d", got)
	}
}

func TestNextOccurrence(t *testing.T) {
	acc := newFundedChecking(t, "a1", 0)
	tx := NewTransaction(Income, CategorySalary, CentsOf(1000_00), "salary", testOwner, acc)
	tx.Date = NewDate(2025, 1, 31)

	if got := tx.NextOccurrence(); got != nil {
		t.Fatal("non-recurring transaction must not generate")
	}

	tx.Recurring = true
	next := tx.NextOccurrence()
	if next == nil {
		t.Fatal("expected an occurrence")
	}
	if !next.Date.Equal(NewDate(2025, 2, 28)) {
		t.Fatalf("next date: got %s, want 2025-02-28", next.Date)
	}
	if !next.Recurring {
		t.Fatal("occurrence must itself be recurring")
	}
	if next.Kind != tx.Kind || next.Amount != tx.Amount || next.Description != tx.Description {
		t.Fatal("occurrence must copy kind, amount and description")
	}
	if next.Source != tx.Source {
		t.Fatal("occurrence must reference the same source account")
	}
	if next.ID != 0 {
		t.Fatal("occurrence carries no id until posted")
	}
}

func TestNextOccurrenceKeepsTransferDestination(t *testing.T) {
	src := newFundedChecking(t, "a1", 0)
	dst := newFundedChecking(t, "a2", 0)
	tx := NewTransfer(CentsOf(300_00), "rent", testOwner, src, dst)
	tx.Recurring = true

	next := tx.NextOccurrence()
	if next == nil {
		t.Fatal("expected an occurrence")
	}
	if next.Destination != tx.Destination {
		t.Fatal("occurrence must reference the same destination account")
	}
	if err := next.Validate(); err != nil {
		t.Fatalf("occurrence must validate: %v", err)
	}
}

func TestAddAttachment(t *testing.T) {
	acc := newFundedChecking(t, "a1", 0)
	tx := NewTransaction(Income, CategorySalary, CentsOf(100), "x", testOwner, acc)
	att := tx.AddAttachment("/tmp/receipt.pdf")
	if att.ID == "" {
		t.Fatal("attachment must carry a generated id")
	}
	if len(tx.Attachments) != 1 || tx.Attachments[0].Path != "/tmp/receipt.pdf" {
		t.Fatalf("attachment not recorded: %+v", tx.Attachments)
	}
}

func TestTransactionValidate(t *testing.T) {
	acc := newFundedChecking(t, "a1", 0)
	cases := []struct {
		name string
		tx   *Transaction
		ok   bool
	}{
		{"valid income", NewTransaction(Income, CategorySalary, CentsOf(100), "x", testOwner, acc), true},
		{"zero amount", NewTransaction(Income, CategorySalary, Money{}, "x", testOwner, acc), false},
		{"empty description", NewTransaction(Income, CategorySalary, CentsOf(100), "", testOwner, acc), false},
		{"transfer without destination", NewTransaction(Transfer, CategoryNone, CentsOf(100), "x", testOwner, acc), false},
		{"nil source", NewTransaction(Income, CategorySalary, CentsOf(100), "x", testOwner, nil), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.tx.Validate()
			if tc.ok && err != nil {
				t.Fatalf("expected ok, got %v", err)
			}
			if !tc.ok && err == nil {
				t.Fatal("expected error")
			}
		})
	}
}
