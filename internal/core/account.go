package core

// AccountKind identifies an account variant.
type AccountKind string

const (
	KindChecking         AccountKind = "checking"
	KindCreditCard       AccountKind = "credit_card"
	KindDigitalSavings   AccountKind = "digital_savings"
	KindInvestmentWallet AccountKind = "investment_wallet"
	KindPiggybank        AccountKind = "piggybank"
)

// Account is the capability set shared by every account variant. All
// mutations reject non-positive amounts with ErrInvalidAmount and reject
// inactive accounts with ErrAccountInactive; a failed Deposit or Withdraw
// leaves the account untouched.
type Account interface {
	Number() string
	Kind() AccountKind
	Owner() *Owner

	// Deposit adds the amount to the account. For credit cards this is a
	// statement payment.
	Deposit(amount Money) error

	// Withdraw removes the amount, failing with ErrInsufficientFunds or
	// ErrCreditLimitExceeded when the spendable capacity is exceeded.
	Withdraw(amount Money) error

	// Balance is the variant's balance-like quantity: ledger balance for
	// simple accounts, available credit for cards.
	Balance() Money

	Active() bool
	SetActive(active bool)
}

// YieldBearer is the optional capability of accounts that accrue a monthly
// yield. The coordinator dispatches through this interface, never through
// the concrete type.
type YieldBearer interface {
	// ApplyYield grows a positive balance by the monthly yield percentage
	// and returns the accrued amount. Inactive or non-positive accounts
	// accrue nothing.
	ApplyYield() Money
}

// guard validates the shared preconditions of every balance mutation.
func guard(amount Money, active bool) error {
	if err := amount.Validate(); err != nil {
		return err
	}
	if !active {
		return ErrAccountInactive
	}
	return nil
}

// applyYieldCents grows positive cents by pct percent, rounding half-up.
func applyYieldCents(cents int64, pct float64) int64 {
	if cents <= 0 || pct <= 0 {
		return 0
	}
	return int64(float64(cents)*pct/100.0 + 0.5)
}
