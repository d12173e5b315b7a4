package ledger

import (
	"fmt"
	"sort"

	"cofre/internal/core"
)

// Accounts returns the accounts in creation order. The slice is a copy;
// the elements are the live accounts, mutate them only through the ledger.
func (l *Ledger) Accounts() []core.Account {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]core.Account, 0, len(l.accountOrder))
	for _, number := range l.accountOrder {
		out = append(out, l.accounts[number])
	}
	return out
}

// Account looks an account up by number.
func (l *Ledger) Account(number string) (core.Account, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	acc, ok := l.accounts[number]
	if !ok {
		return nil, fmt.Errorf("account %s: %w", number, core.ErrNotFound)
	}
	return acc, nil
}

// BalanceOf returns the balance-like quantity of the account.
func (l *Ledger) BalanceOf(number string) (core.Money, error) {
	acc, err := l.Account(number)
	if err != nil {
		return core.Money{}, err
	}
	return acc.Balance(), nil
}

// Transactions returns the stored transactions in posting order.
func (l *Ledger) Transactions() []*core.Transaction {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]*core.Transaction, len(l.transactions))
	copy(out, l.transactions)
	return out
}

// Transaction looks a transaction up by id.
func (l *Ledger) Transaction(id int64) (*core.Transaction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if t := l.findLocked(id); t != nil {
		return t, nil
	}
	return nil, fmt.Errorf("transaction %d: %w", id, core.ErrNotFound)
}

// Budgets returns the registered budgets.
func (l *Ledger) Budgets() []*core.Budget {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]*core.Budget, len(l.budgets))
	copy(out, l.budgets)
	return out
}

// Goals returns the registered goals.
func (l *Ledger) Goals() []*core.Goal {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]*core.Goal, len(l.goals))
	copy(out, l.goals)
	return out
}

// TotalBalance sums the balance of every active account.
func (l *Ledger) TotalBalance() core.Money {
	l.mu.Lock()
	defer l.mu.Unlock()
	var total core.Money
	for _, number := range l.accountOrder {
		if acc := l.accounts[number]; acc.Active() {
			total = total.Add(acc.Balance())
		}
	}
	return total
}

// MonthOverview aggregates the month's non-reversed income and expenses,
// with a per-category expense breakdown sorted largest first.
func (l *Ledger) MonthOverview(month core.Month) core.MonthOverview {
	l.mu.Lock()
	defer l.mu.Unlock()

	overview := core.MonthOverview{Month: month}
	byCategory := make(map[core.Category]int64)

	for _, t := range l.transactions {
		if t.Reversed || !month.Contains(t.Date) {
			continue
		}
		switch t.Kind {
		case core.Income:
			overview.Income = overview.Income.Add(t.Amount)
		case core.Expense:
			overview.Expenses = overview.Expenses.Add(t.Amount)
			byCategory[t.Category] += t.Amount.Cents
		}
	}

	for category, cents := range byCategory {
		overview.ByCategory = append(overview.ByCategory, core.CategoryAmount{
			Category: category,
			Amount:   core.CentsOf(cents),
		})
	}
	sort.Slice(overview.ByCategory, func(i, j int) bool {
		a, b := overview.ByCategory[i], overview.ByCategory[j]
		if a.Amount.Cents != b.Amount.Cents {
			return a.Amount.Cents > b.Amount.Cents
		}
		return a.Category < b.Category
	})

	return overview
}

// CategoryTotals returns the month's expense totals per category, largest
// first.
func (l *Ledger) CategoryTotals(month core.Month) []core.CategoryAmount {
	return l.MonthOverview(month).ByCategory
}
