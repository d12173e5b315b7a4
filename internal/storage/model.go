// Package storage persists full ledger snapshots to SQLite. The ledger
// treats it as an opaque snapshot store: Save replaces the stored state,
// Load returns it. Records here are flat persistence structs; the ledger
// converts them to and from domain values.
package storage

import "time"

// Meta describes the snapshot encoding so a later schema can migrate it.
type Meta struct {
	Version int
	SavedAt time.Time
}

// Snapshot is the full ledger state in persistence form.
type Snapshot struct {
	Meta              Meta
	NextTransactionID int64
	Accounts          []PersistAccount
	Transactions      []PersistTransaction
	Budgets           []PersistBudget
	Goals             []PersistGoal
}

// PersistAccount flattens every account variant into one record; fields
// that do not apply to a kind are zero.
type PersistAccount struct {
	Number     string
	Kind       string
	OwnerName  string
	OwnerEmail string
	Active     bool

	BalanceCents int64

	// checking
	OverdraftLimitCents int64
	MonthlyFeeCents     int64

	// credit card
	CreditLimitCents     int64
	AvailableCreditCents int64
	StatementCents       int64
	ClosingDate          string // 2006-01-02, empty when unset
	DueDate              string

	// savings / investment
	YieldPercent float64
	RiskProfile  string

	// piggybank
	Purpose   string
	GoalCents int64
	Deadline  string
	CreatedAt string
}

// PersistAttachment mirrors core.Attachment for JSON storage.
type PersistAttachment struct {
	ID      string    `json:"id"`
	Path    string    `json:"path"`
	AddedAt time.Time `json:"added_at"`
}

// PersistTransaction references accounts by number, never by value;
// the ledger rewires the references on restore.
type PersistTransaction struct {
	ID           int64
	Kind         string
	Category     string
	AmountCents  int64
	Date         string // 2006-01-02
	Description  string
	PayerName    string
	PayerEmail   string
	SourceNumber string
	DestNumber   string // empty unless a transfer
	Recurring    bool
	Installment  int
	Installments int
	Reversed     bool
	Attachments  []PersistAttachment
}

type PersistBudget struct {
	Name           string
	Category       string
	Year           int
	Month          int
	LimitCents     int64
	SpentCents     int64
	AlertThreshold float64
	AlertSent      bool
}

type PersistGoal struct {
	Name         string
	Category     string
	TargetCents  int64
	CurrentCents int64
	StartDate    string
	Deadline     string
	OwnerName    string
	OwnerEmail   string
	Reached      bool
}
