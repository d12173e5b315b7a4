package core

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TransactionKind discriminates what a transaction does to its accounts.
type TransactionKind string

const (
	Income   TransactionKind = "income"
	Expense  TransactionKind = "expense"
	Transfer TransactionKind = "transfer"
)

// Attachment is a reference to a document attached to a transaction
// (receipt, invoice). The file itself lives outside the ledger.
type Attachment struct {
	ID      string
	Path    string
	AddedAt time.Time
}

// Transaction records one movement of money. The monetary fields are fixed
// at creation; only the Reversed flag and the attachment list change
// afterwards, and Reversed transitions false to true exactly once.
type Transaction struct {
	ID          int64
	Kind        TransactionKind
	Category    Category // CategoryNone for transfers
	Amount      Money
	Date        Date
	Description string
	Payer       *Owner
	Source      Account
	Destination Account // required iff Kind == Transfer

	Recurring    bool
	Installment  int // 1-based index within the installment plan
	Installments int // total installments, 1 for single payments

	Reversed    bool // managed by Reverse; never set directly
	Attachments []Attachment
}

// NewTransaction builds an unexecuted transaction dated today. The id is
// assigned by the ledger when the transaction is posted.
func NewTransaction(kind TransactionKind, category Category, amount Money, description string, payer *Owner, source Account) *Transaction {
	return &Transaction{
		Kind:         kind,
		Category:     category,
		Amount:       amount,
		Date:         Today(),
		Description:  description,
		Payer:        payer,
		Source:       source,
		Installment:  1,
		Installments: 1,
	}
}

// NewTransfer builds an unexecuted transfer between two accounts.
func NewTransfer(amount Money, description string, payer *Owner, source, destination Account) *Transaction {
	t := NewTransaction(Transfer, CategoryNone, amount, description, payer, source)
	t.Destination = destination
	return t
}

// Validate checks the creation-time invariants.
func (t *Transaction) Validate() error {
	if err := t.Amount.Validate(); err != nil {
		return err
	}
	if t.Description == "" {
		return ErrEmptyDescription
	}
	if t.Source == nil {
		return fmt.Errorf("transaction has no source account: %w", ErrNotFound)
	}
	if t.Kind == Transfer && t.Destination == nil {
		return ErrMissingDestination
	}
	switch t.Kind {
	case Income, Expense, Transfer:
		return nil
	default:
		return fmt.Errorf("unknown transaction kind %q", t.Kind)
	}
}

// Execute applies the monetary effect to the account(s). A transfer
// withdraws from the source and only then deposits into the destination;
// if the destination rejects the deposit the withdrawal is compensated so
// no partial effect survives a failure.
func (t *Transaction) Execute() error {
	switch t.Kind {
	case Income:
		return t.Source.Deposit(t.Amount)
	case Expense:
		return t.Source.Withdraw(t.Amount)
	case Transfer:
		if t.Destination == nil {
			return ErrMissingDestination
		}
		if err := t.Source.Withdraw(t.Amount); err != nil {
			return err
		}
		if err := t.Destination.Deposit(t.Amount); err != nil {
			// put the money back; the source just allowed the withdrawal
			if depErr := t.Source.Deposit(t.Amount); depErr != nil {
				return fmt.Errorf("deposit to destination failed (%w) and compensation failed: %v", err, depErr)
			}
			return err
		}
		return nil
	default:
		return fmt.Errorf("unknown transaction kind %q", t.Kind)
	}
}

// Reverse undoes the monetary effect of an executed transaction. It fails
// with ErrAlreadyReversed on a second call. A transfer reversal withdraws
// from the destination first; if that fails the source is left untouched.
// Budgets are deliberately not decremented by a reversal.
func (t *Transaction) Reverse() error {
	if t.Reversed {
		return ErrAlreadyReversed
	}
	switch t.Kind {
	case Income:
		if err := t.Source.Withdraw(t.Amount); err != nil {
			return err
		}
	case Expense:
		if err := t.Source.Deposit(t.Amount); err != nil {
			return err
		}
	case Transfer:
		if t.Destination == nil {
			return ErrMissingDestination
		}
		if err := t.Destination.Withdraw(t.Amount); err != nil {
			return err
		}
		if err := t.Source.Deposit(t.Amount); err != nil {
			if depErr := t.Destination.Deposit(t.Amount); depErr != nil {
				return fmt.Errorf("deposit to source failed (%w) and compensation failed: %v", err, depErr)
			}
			return err
		}
	default:
		return fmt.Errorf("unknown transaction kind %q", t.Kind)
	}
	t.Reversed = true
	return nil
}

// NextOccurrence returns a fresh recurring transaction dated one calendar
// month after this one, or nil when the transaction is not recurring. The
// copy shares the payer and source account references and carries no id
// until posted.
func (t *Transaction) NextOccurrence() *Transaction {
	if !t.Recurring {
		return nil
	}
	next := NewTransaction(t.Kind, t.Category, t.Amount, t.Description, t.Payer, t.Source)
	next.Destination = t.Destination
	next.Date = t.Date.AddMonths(1)
	next.Recurring = true
	return next
}

// AddAttachment records an attachment reference and returns it.
func (t *Transaction) AddAttachment(path string) Attachment {
	att := Attachment{
		ID:      uuid.NewString(),
		Path:    path,
		AddedAt: time.Now().UTC(),
	}
	t.Attachments = append(t.Attachments, att)
	return att
}

func (t *Transaction) String() string {
	s := fmt.Sprintf("#%d %s %s on %s: %s", t.ID, t.Kind, t.Amount, t.Date, t.Description)
	if t.Installments > 1 {
		s += fmt.Sprintf(" (%d/%d)", t.Installment, t.Installments)
	}
	return s
}
