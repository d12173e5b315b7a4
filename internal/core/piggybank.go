package core

// Piggybank is a savings pot with a goal amount and an optional deadline.
// Breaking it empties the balance and deactivates the account in one step.
type Piggybank struct {
	number     string
	owner      *Owner
	balance    Money
	purpose    string
	goalAmount Money
	deadline   Date // zero when open-ended
	createdAt  Date
	active     bool
}

// NewPiggybank creates an active piggybank with a zero balance. A zero
// deadline means no deadline.
func NewPiggybank(number string, owner *Owner, purpose string, goalAmount Money, deadline Date) *Piggybank {
	return &Piggybank{
		number:     number,
		owner:      owner,
		purpose:    purpose,
		goalAmount: goalAmount,
		deadline:   deadline,
		createdAt:  Today(),
		active:     true,
	}
}

func (p *Piggybank) Number() string    { return p.number }
func (p *Piggybank) Kind() AccountKind { return KindPiggybank }
func (p *Piggybank) Owner() *Owner     { return p.owner }
func (p *Piggybank) Balance() Money    { return p.balance }
func (p *Piggybank) Active() bool      { return p.active }

func (p *Piggybank) SetActive(active bool) { p.active = active }

func (p *Piggybank) Deposit(amount Money) error {
	if err := guard(amount, p.active); err != nil {
		return err
	}
	p.balance = p.balance.Add(amount)
	return nil
}

func (p *Piggybank) Withdraw(amount Money) error {
	if err := guard(amount, p.active); err != nil {
		return err
	}
	if amount.Cents > p.balance.Cents {
		return ErrInsufficientFunds
	}
	p.balance = p.balance.Sub(amount)
	return nil
}

// Break empties the piggybank and deactivates it, returning the withdrawn
// amount. Balance and active flag change together; a second Break fails
// with ErrAccountInactive and changes nothing.
func (p *Piggybank) Break() (Money, error) {
	if !p.active {
		return Money{}, ErrAccountInactive
	}
	total := p.balance
	p.balance = Money{}
	p.active = false
	return total, nil
}

// Purpose returns what the pot is being saved for.
func (p *Piggybank) Purpose() string { return p.purpose }

// GoalAmount returns the savings target.
func (p *Piggybank) GoalAmount() Money { return p.goalAmount }

// Deadline returns the target date; zero when open-ended.
func (p *Piggybank) Deadline() Date { return p.deadline }

// CreatedAt returns the creation date.
func (p *Piggybank) CreatedAt() Date { return p.createdAt }

// Progress returns the percentage of the goal reached, capped at 100.
func (p *Piggybank) Progress() float64 {
	if p.goalAmount.Cents == 0 {
		return 0
	}
	pct := float64(p.balance.Cents) / float64(p.goalAmount.Cents) * 100
	if pct > 100 {
		pct = 100
	}
	return pct
}

// GoalReached reports whether the balance has met the goal.
func (p *Piggybank) GoalReached() bool {
	return p.balance.Cents >= p.goalAmount.Cents
}

// Remaining returns how much is still missing toward the goal, never
// negative.
func (p *Piggybank) Remaining() Money {
	if p.balance.Cents >= p.goalAmount.Cents {
		return Money{}
	}
	return p.goalAmount.Sub(p.balance)
}

// DeadlinePassed reports whether the deadline has gone by. Open-ended pots
// never expire.
func (p *Piggybank) DeadlinePassed(today Date) bool {
	if p.deadline.IsZero() {
		return false
	}
	return today.After(p.deadline)
}
