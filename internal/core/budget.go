package core

// DefaultAlertThreshold is the spent/limit fraction at which a budget asks
// for an alert.
const DefaultAlertThreshold = 0.8

// Budget caps spending for one category in one reference month. Spent only
// grows through AddExpense; posting never shrinks it, and neither does
// transaction reversal (a documented asymmetry of the posting flow).
type Budget struct {
	Name           string
	Category       Category
	RefMonth       Month
	Limit          Money
	Spent          Money
	AlertThreshold float64 // fraction of the limit, default 0.8
	AlertSent      bool
}

// NewBudget creates a budget with nothing spent and the default alert
// threshold.
func NewBudget(name string, category Category, limit Money, refMonth Month) *Budget {
	return &Budget{
		Name:           name,
		Category:       category,
		RefMonth:       refMonth,
		Limit:          limit,
		AlertThreshold: DefaultAlertThreshold,
	}
}

// AddExpense accumulates a matching expense into the spent total.
func (b *Budget) AddExpense(amount Money) error {
	if err := amount.Validate(); err != nil {
		return err
	}
	b.Spent = b.Spent.Add(amount)
	return nil
}

// Matches reports whether an expense in the category on the date belongs to
// this budget.
func (b *Budget) Matches(category Category, date Date) bool {
	return b.Category == category && b.RefMonth.Contains(date)
}

// Remaining returns what is left before the limit, never negative.
func (b *Budget) Remaining() Money {
	if b.Spent.Cents >= b.Limit.Cents {
		return Money{}
	}
	return b.Limit.Sub(b.Spent)
}

// PercentSpent returns spent as a percentage of the limit.
func (b *Budget) PercentSpent() float64 {
	if b.Limit.Cents == 0 {
		return 0
	}
	return float64(b.Spent.Cents) / float64(b.Limit.Cents) * 100
}

// OverLimit reports whether the spent total exceeds the limit.
func (b *Budget) OverLimit() bool {
	return b.Spent.Cents > b.Limit.Cents
}

// Overrun returns how far past the limit the budget is, never negative.
func (b *Budget) Overrun() Money {
	if b.Spent.Cents <= b.Limit.Cents {
		return Money{}
	}
	return b.Spent.Sub(b.Limit)
}

// NearLimit reports whether spending has reached the alert threshold.
func (b *Budget) NearLimit() bool {
	return b.PercentSpent() >= b.AlertThreshold*100
}

// ShouldAlert reports whether an alert is due and has not been sent yet.
func (b *Budget) ShouldAlert() bool {
	return b.NearLimit() && !b.AlertSent
}

// MarkAlertSent latches the alert so it fires once per cycle.
func (b *Budget) MarkAlertSent() {
	b.AlertSent = true
}

// Renew zeroes the spent total and the alert latch for a new cycle in the
// given month.
func (b *Budget) Renew(month Month) {
	b.Spent = Money{}
	b.AlertSent = false
	b.RefMonth = month
}

// NextMonth derives a fresh budget for the month after this one.
func (b *Budget) NextMonth() *Budget {
	next := NewBudget(b.Name, b.Category, b.Limit, b.RefMonth.Next())
	next.AlertThreshold = b.AlertThreshold
	return next
}
