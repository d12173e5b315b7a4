package core

// Checking is a current account with an overdraft line. The balance may go
// negative down to -overdraftLimit; spendable capacity is balance plus the
// overdraft headroom.
type Checking struct {
	number         string
	owner          *Owner
	balance        Money
	overdraftLimit Money // >= 0
	monthlyFee     Money
	active         bool
}

// DefaultMonthlyFeeCents is the maintenance fee charged by ChargeMonthlyFee
// unless overridden.
const DefaultMonthlyFeeCents = 1590

// NewChecking creates an active checking account with a zero balance.
func NewChecking(number string, owner *Owner, overdraftLimit Money) *Checking {
	if overdraftLimit.Cents < 0 {
		overdraftLimit = Money{}
	}
	return &Checking{
		number:         number,
		owner:          owner,
		overdraftLimit: overdraftLimit,
		monthlyFee:     CentsOf(DefaultMonthlyFeeCents),
		active:         true,
	}
}

func (c *Checking) Number() string    { return c.number }
func (c *Checking) Kind() AccountKind { return KindChecking }
func (c *Checking) Owner() *Owner     { return c.owner }
func (c *Checking) Balance() Money    { return c.balance }
func (c *Checking) Active() bool      { return c.active }

func (c *Checking) SetActive(active bool) { c.active = active }

func (c *Checking) Deposit(amount Money) error {
	if err := guard(amount, c.active); err != nil {
		return err
	}
	c.balance = c.balance.Add(amount)
	return nil
}

func (c *Checking) Withdraw(amount Money) error {
	if err := guard(amount, c.active); err != nil {
		return err
	}
	if amount.Cents > c.Spendable().Cents {
		return ErrInsufficientFunds
	}
	c.balance = c.balance.Sub(amount)
	return nil
}

// Spendable is the balance plus the overdraft headroom.
func (c *Checking) Spendable() Money {
	return c.balance.Add(c.overdraftLimit)
}

// OverdraftLimit returns the overdraft line.
func (c *Checking) OverdraftLimit() Money {
	return c.overdraftLimit
}

// UsingOverdraft reports whether the account has dipped below zero.
func (c *Checking) UsingOverdraft() bool {
	return c.balance.Cents < 0
}

// MonthlyFee returns the maintenance fee.
func (c *Checking) MonthlyFee() Money {
	return c.monthlyFee
}

// SetMonthlyFee overrides the maintenance fee; negative values are ignored.
func (c *Checking) SetMonthlyFee(fee Money) {
	if fee.Cents >= 0 {
		c.monthlyFee = fee
	}
}

// ChargeMonthlyFee withdraws the maintenance fee through the normal
// withdrawal path, so overdraft and activity rules apply.
func (c *Checking) ChargeMonthlyFee() error {
	if c.monthlyFee.Cents == 0 {
		return nil
	}
	return c.Withdraw(c.monthlyFee)
}
