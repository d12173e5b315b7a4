package core

// DigitalSavings is a simple balance account that accrues a monthly yield.
type DigitalSavings struct {
	number   string
	owner    *Owner
	balance  Money
	yieldPct float64 // monthly, e.g. 0.5 means 0.5%
	active   bool
}

// NewDigitalSavings creates an active savings account with a zero balance.
func NewDigitalSavings(number string, owner *Owner, yieldPct float64) *DigitalSavings {
	return &DigitalSavings{number: number, owner: owner, yieldPct: yieldPct, active: true}
}

func (s *DigitalSavings) Number() string    { return s.number }
func (s *DigitalSavings) Kind() AccountKind { return KindDigitalSavings }
func (s *DigitalSavings) Owner() *Owner     { return s.owner }
func (s *DigitalSavings) Balance() Money    { return s.balance }
func (s *DigitalSavings) Active() bool      { return s.active }

func (s *DigitalSavings) SetActive(active bool) { s.active = active }

func (s *DigitalSavings) Deposit(amount Money) error {
	if err := guard(amount, s.active); err != nil {
		return err
	}
	s.balance = s.balance.Add(amount)
	return nil
}

func (s *DigitalSavings) Withdraw(amount Money) error {
	if err := guard(amount, s.active); err != nil {
		return err
	}
	if amount.Cents > s.balance.Cents {
		return ErrInsufficientFunds
	}
	s.balance = s.balance.Sub(amount)
	return nil
}

// YieldPercent returns the monthly yield percentage.
func (s *DigitalSavings) YieldPercent() float64 { return s.yieldPct }

// ApplyYield implements YieldBearer.
func (s *DigitalSavings) ApplyYield() Money {
	if !s.active {
		return Money{}
	}
	accrued := CentsOf(applyYieldCents(s.balance.Cents, s.yieldPct))
	s.balance = s.balance.Add(accrued)
	return accrued
}

// RiskProfile selects an investment wallet's monthly yield.
type RiskProfile string

const (
	RiskConservative RiskProfile = "conservative"
	RiskModerate     RiskProfile = "moderate"
	RiskAggressive   RiskProfile = "aggressive"
)

// YieldPercent maps the profile to its monthly yield percentage. Unknown
// profiles yield nothing.
func (p RiskProfile) YieldPercent() float64 {
	switch p {
	case RiskConservative:
		return 0.5
	case RiskModerate:
		return 1.0
	case RiskAggressive:
		return 2.0
	default:
		return 0.0
	}
}

// InvestmentWallet holds invested funds with a profile-derived monthly yield.
type InvestmentWallet struct {
	number  string
	owner   *Owner
	balance Money
	profile RiskProfile
	active  bool
}

// NewInvestmentWallet creates an active wallet with a zero balance.
func NewInvestmentWallet(number string, owner *Owner, profile RiskProfile) *InvestmentWallet {
	return &InvestmentWallet{number: number, owner: owner, profile: profile, active: true}
}

func (w *InvestmentWallet) Number() string    { return w.number }
func (w *InvestmentWallet) Kind() AccountKind { return KindInvestmentWallet }
func (w *InvestmentWallet) Owner() *Owner     { return w.owner }
func (w *InvestmentWallet) Balance() Money    { return w.balance }
func (w *InvestmentWallet) Active() bool      { return w.active }

func (w *InvestmentWallet) SetActive(active bool) { w.active = active }

func (w *InvestmentWallet) Deposit(amount Money) error {
	if err := guard(amount, w.active); err != nil {
		return err
	}
	w.balance = w.balance.Add(amount)
	return nil
}

func (w *InvestmentWallet) Withdraw(amount Money) error {
	if err := guard(amount, w.active); err != nil {
		return err
	}
	if amount.Cents > w.balance.Cents {
		return ErrInsufficientFunds
	}
	w.balance = w.balance.Sub(amount)
	return nil
}

// Profile returns the wallet's risk profile.
func (w *InvestmentWallet) Profile() RiskProfile { return w.profile }

// YieldPercent returns the profile-derived monthly yield percentage.
func (w *InvestmentWallet) YieldPercent() float64 { return w.profile.YieldPercent() }

// ApplyYield implements YieldBearer.
func (w *InvestmentWallet) ApplyYield() Money {
	if !w.active {
		return Money{}
	}
	accrued := CentsOf(applyYieldCents(w.balance.Cents, w.profile.YieldPercent()))
	w.balance = w.balance.Add(accrued)
	return accrued
}
