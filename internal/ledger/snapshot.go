package ledger

import (
	"fmt"
	"time"

	"cofre/internal/core"
	"cofre/internal/storage"
)

const dateLayout = "2006-01-02"

func formatDate(d core.Date) string {
	if d.IsZero() {
		return ""
	}
	return d.Format(dateLayout)
}

func parseDate(s string) (core.Date, error) {
	if s == "" {
		return core.Date{}, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return core.Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return core.DateOf(t), nil
}

// Snapshot exports the full ledger state as persistence records for the
// snapshot store. The encoding is the store's concern; the ledger only
// promises that Restore(Snapshot()) reproduces the same state.
func (l *Ledger) Snapshot() storage.Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()

	snap := storage.Snapshot{
		Meta:              storage.Meta{Version: 1, SavedAt: time.Now().UTC()},
		NextTransactionID: l.nextTxID,
	}

	for _, number := range l.accountOrder {
		snap.Accounts = append(snap.Accounts, accountRecord(l.accounts[number]))
	}
	for _, t := range l.transactions {
		snap.Transactions = append(snap.Transactions, transactionRecord(t))
	}
	for _, b := range l.budgets {
		snap.Budgets = append(snap.Budgets, storage.PersistBudget{
			Name:           b.Name,
			Category:       string(b.Category),
			Year:           b.RefMonth.Year,
			Month:          b.RefMonth.Month,
			LimitCents:     b.Limit.Cents,
			SpentCents:     b.Spent.Cents,
			AlertThreshold: b.AlertThreshold,
			AlertSent:      b.AlertSent,
		})
	}
	for _, g := range l.goals {
		rec := storage.PersistGoal{
			Name:         g.Name,
			Category:     string(g.Category),
			TargetCents:  g.Target.Cents,
			CurrentCents: g.Current.Cents,
			StartDate:    formatDate(g.StartDate),
			Deadline:     formatDate(g.Deadline),
			Reached:      g.Reached,
		}
		if g.Responsible != nil {
			rec.OwnerName = g.Responsible.Name
			rec.OwnerEmail = g.Responsible.Email
		}
		snap.Goals = append(snap.Goals, rec)
	}

	return snap
}

// Restore replaces the ledger state with the snapshot's, rewiring
// transaction account references by account number. On error the ledger
// keeps its previous state; the error names the first broken record.
func (l *Ledger) Restore(snap storage.Snapshot) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	accounts := make(map[string]core.Account, len(snap.Accounts))
	order := make([]string, 0, len(snap.Accounts))
	owners := make(map[string]*core.Owner)

	ownerOf := func(name, email string) *core.Owner {
		if name == "" && email == "" {
			return nil
		}
		key := name + "\x00" + email
		if o, ok := owners[key]; ok {
			return o
		}
		o := &core.Owner{Name: name, Email: email}
		owners[key] = o
		return o
	}

	for _, rec := range snap.Accounts {
		acc, err := restoreAccount(rec, ownerOf(rec.OwnerName, rec.OwnerEmail))
		if err != nil {
			return fmt.Errorf("restore account %s: %w", rec.Number, err)
		}
		accounts[rec.Number] = acc
		order = append(order, rec.Number)
	}

	transactions := make([]*core.Transaction, 0, len(snap.Transactions))
	for _, rec := range snap.Transactions {
		t, err := restoreTransaction(rec, accounts, ownerOf)
		if err != nil {
			return fmt.Errorf("restore transaction %d: %w", rec.ID, err)
		}
		transactions = append(transactions, t)
	}

	budgets := make([]*core.Budget, 0, len(snap.Budgets))
	for _, rec := range snap.Budgets {
		b := core.NewBudget(rec.Name, core.Category(rec.Category), core.CentsOf(rec.LimitCents),
			core.Month{Year: rec.Year, Month: rec.Month})
		b.Spent = core.CentsOf(rec.SpentCents)
		b.AlertThreshold = rec.AlertThreshold
		b.AlertSent = rec.AlertSent
		budgets = append(budgets, b)
	}

	goals := make([]*core.Goal, 0, len(snap.Goals))
	for _, rec := range snap.Goals {
		start, err := parseDate(rec.StartDate)
		if err != nil {
			return fmt.Errorf("restore goal %s: %w", rec.Name, err)
		}
		deadline, err := parseDate(rec.Deadline)
		if err != nil {
			return fmt.Errorf("restore goal %s: %w", rec.Name, err)
		}
		g := &core.Goal{
			Name:        rec.Name,
			Category:    core.Category(rec.Category),
			Target:      core.CentsOf(rec.TargetCents),
			Current:     core.CentsOf(rec.CurrentCents),
			StartDate:   start,
			Deadline:    deadline,
			Responsible: ownerOf(rec.OwnerName, rec.OwnerEmail),
			Reached:     rec.Reached,
		}
		goals = append(goals, g)
	}

	nextID := snap.NextTransactionID
	if nextID < 1 {
		nextID = 1
	}

	l.accounts = accounts
	l.accountOrder = order
	l.transactions = transactions
	l.budgets = budgets
	l.goals = goals
	l.nextTxID = nextID
	return nil
}

func accountRecord(acc core.Account) storage.PersistAccount {
	rec := storage.PersistAccount{
		Number: acc.Number(),
		Kind:   string(acc.Kind()),
		Active: acc.Active(),
	}
	if o := acc.Owner(); o != nil {
		rec.OwnerName = o.Name
		rec.OwnerEmail = o.Email
	}
	switch a := acc.(type) {
	case *core.Checking:
		rec.BalanceCents = a.Balance().Cents
		rec.OverdraftLimitCents = a.OverdraftLimit().Cents
		rec.MonthlyFeeCents = a.MonthlyFee().Cents
	case *core.CreditCard:
		rec.CreditLimitCents = a.CreditLimit().Cents
		rec.AvailableCreditCents = a.AvailableCredit().Cents
		rec.StatementCents = a.StatementBalance().Cents
		rec.ClosingDate = formatDate(a.ClosingDate())
		rec.DueDate = formatDate(a.DueDate())
	case *core.DigitalSavings:
		rec.BalanceCents = a.Balance().Cents
		rec.YieldPercent = a.YieldPercent()
	case *core.InvestmentWallet:
		rec.BalanceCents = a.Balance().Cents
		rec.RiskProfile = string(a.Profile())
	case *core.Piggybank:
		rec.BalanceCents = a.Balance().Cents
		rec.Purpose = a.Purpose()
		rec.GoalCents = a.GoalAmount().Cents
		rec.Deadline = formatDate(a.Deadline())
		rec.CreatedAt = formatDate(a.CreatedAt())
	}
	return rec
}

func restoreAccount(rec storage.PersistAccount, owner *core.Owner) (core.Account, error) {
	switch core.AccountKind(rec.Kind) {
	case core.KindChecking:
		return core.RestoreChecking(rec.Number, owner,
			core.CentsOf(rec.BalanceCents), core.CentsOf(rec.OverdraftLimitCents),
			core.CentsOf(rec.MonthlyFeeCents), rec.Active), nil
	case core.KindCreditCard:
		closing, err := parseDate(rec.ClosingDate)
		if err != nil {
			return nil, err
		}
		due, err := parseDate(rec.DueDate)
		if err != nil {
			return nil, err
		}
		return core.RestoreCreditCard(rec.Number, owner,
			core.CentsOf(rec.CreditLimitCents), core.CentsOf(rec.AvailableCreditCents),
			core.CentsOf(rec.StatementCents), closing, due, rec.Active), nil
	case core.KindDigitalSavings:
		return core.RestoreDigitalSavings(rec.Number, owner,
			core.CentsOf(rec.BalanceCents), rec.YieldPercent, rec.Active), nil
	case core.KindInvestmentWallet:
		return core.RestoreInvestmentWallet(rec.Number, owner,
			core.CentsOf(rec.BalanceCents), core.RiskProfile(rec.RiskProfile), rec.Active), nil
	case core.KindPiggybank:
		deadline, err := parseDate(rec.Deadline)
		if err != nil {
			return nil, err
		}
		createdAt, err := parseDate(rec.CreatedAt)
		if err != nil {
			return nil, err
		}
		return core.RestorePiggybank(rec.Number, owner, rec.Purpose,
			core.CentsOf(rec.BalanceCents), core.CentsOf(rec.GoalCents),
			deadline, createdAt, rec.Active), nil
	default:
		return nil, fmt.Errorf("account kind %q: %w", rec.Kind, core.ErrInvalidKind)
	}
}

func transactionRecord(t *core.Transaction) storage.PersistTransaction {
	rec := storage.PersistTransaction{
		ID:           t.ID,
		Kind:         string(t.Kind),
		Category:     string(t.Category),
		AmountCents:  t.Amount.Cents,
		Date:         formatDate(t.Date),
		Description:  t.Description,
		SourceNumber: t.Source.Number(),
		Recurring:    t.Recurring,
		Installment:  t.Installment,
		Installments: t.Installments,
		Reversed:     t.Reversed,
	}
	if t.Payer != nil {
		rec.PayerName = t.Payer.Name
		rec.PayerEmail = t.Payer.Email
	}
	if t.Destination != nil {
		rec.DestNumber = t.Destination.Number()
	}
	for _, att := range t.Attachments {
		rec.Attachments = append(rec.Attachments, storage.PersistAttachment{
			ID:      att.ID,
			Path:    att.Path,
			AddedAt: att.AddedAt,
		})
	}
	return rec
}

func restoreTransaction(rec storage.PersistTransaction, accounts map[string]core.Account, ownerOf func(name, email string) *core.Owner) (*core.Transaction, error) {
	source, ok := accounts[rec.SourceNumber]
	if !ok {
		return nil, fmt.Errorf("source account %s: %w", rec.SourceNumber, core.ErrNotFound)
	}
	date, err := parseDate(rec.Date)
	if err != nil {
		return nil, err
	}

	t := &core.Transaction{
		ID:           rec.ID,
		Kind:         core.TransactionKind(rec.Kind),
		Category:     core.Category(rec.Category),
		Amount:       core.CentsOf(rec.AmountCents),
		Date:         date,
		Description:  rec.Description,
		Payer:        ownerOf(rec.PayerName, rec.PayerEmail),
		Source:       source,
		Recurring:    rec.Recurring,
		Installment:  rec.Installment,
		Installments: rec.Installments,
		Reversed:     rec.Reversed,
	}
	if rec.DestNumber != "" {
		dest, ok := accounts[rec.DestNumber]
		if !ok {
			return nil, fmt.Errorf("destination account %s: %w", rec.DestNumber, core.ErrNotFound)
		}
		t.Destination = dest
	}
	for _, att := range rec.Attachments {
		t.Attachments = append(t.Attachments, core.Attachment{
			ID:      att.ID,
			Path:    att.Path,
			AddedAt: att.AddedAt,
		})
	}
	return t, nil
}
