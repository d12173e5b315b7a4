package core

// CreditCard tracks a credit line: purchases consume available credit and
// grow the current statement; payments settle the statement and restore
// credit. Balance() reports available credit, not a ledger balance.
type CreditCard struct {
	number      string
	owner       *Owner
	creditLimit Money
	available   Money
	statement   Money // current outstanding amount owed
	closingDate Date
	dueDate     Date
	active      bool
}

// NewCreditCard creates an active card with the whole limit available and a
// zero statement.
func NewCreditCard(number string, owner *Owner, creditLimit Money, closing, due Date) *CreditCard {
	return &CreditCard{
		number:      number,
		owner:       owner,
		creditLimit: creditLimit,
		available:   creditLimit,
		closingDate: closing,
		dueDate:     due,
		active:      true,
	}
}

func (c *CreditCard) Number() string    { return c.number }
func (c *CreditCard) Kind() AccountKind { return KindCreditCard }
func (c *CreditCard) Owner() *Owner     { return c.owner }
func (c *CreditCard) Active() bool      { return c.active }

func (c *CreditCard) SetActive(active bool) { c.active = active }

// Balance reports the available credit.
func (c *CreditCard) Balance() Money { return c.available }

// Withdraw is a purchase: it consumes available credit and increases the
// statement. Fails with ErrCreditLimitExceeded when the purchase does not
// fit the remaining credit; the card is left untouched.
func (c *CreditCard) Withdraw(amount Money) error {
	if err := guard(amount, c.active); err != nil {
		return err
	}
	if amount.Cents > c.available.Cents {
		return ErrCreditLimitExceeded
	}
	c.available = c.available.Sub(amount)
	c.statement = c.statement.Add(amount)
	return nil
}

// Deposit is a statement payment. Paying up to the outstanding statement
// restores an equal amount of credit. Paying more than is owed zeroes the
// statement and restores credit only up to the amount that was owed; the
// excess is absorbed, never carried as positive balance or credit beyond
// the original limit.
func (c *CreditCard) Deposit(amount Money) error {
	if err := guard(amount, c.active); err != nil {
		return err
	}
	if amount.Cents <= c.statement.Cents {
		c.statement = c.statement.Sub(amount)
		c.available = c.available.Add(amount)
		return nil
	}
	c.available = c.available.Add(c.statement)
	c.statement = Money{}
	return nil
}

// CreditLimit returns the total credit line.
func (c *CreditCard) CreditLimit() Money { return c.creditLimit }

// AvailableCredit returns the unspent part of the credit line.
func (c *CreditCard) AvailableCredit() Money { return c.available }

// StatementBalance returns the current outstanding amount owed.
func (c *CreditCard) StatementBalance() Money { return c.statement }

// ClosingDate returns the statement closing date.
func (c *CreditCard) ClosingDate() Date { return c.closingDate }

// DueDate returns the payment due date.
func (c *CreditCard) DueDate() Date { return c.dueDate }
