package core

// Restore constructors rebuild account variants from persisted state. They
// are for the snapshot store only; normal code goes through the New*
// constructors and mutates through deposits and withdrawals.

// RestoreChecking rebuilds a checking account.
func RestoreChecking(number string, owner *Owner, balance, overdraftLimit, monthlyFee Money, active bool) *Checking {
	return &Checking{
		number:         number,
		owner:          owner,
		balance:        balance,
		overdraftLimit: overdraftLimit,
		monthlyFee:     monthlyFee,
		active:         active,
	}
}

// RestoreCreditCard rebuilds a credit card.
func RestoreCreditCard(number string, owner *Owner, creditLimit, available, statement Money, closing, due Date, active bool) *CreditCard {
	return &CreditCard{
		number:      number,
		owner:       owner,
		creditLimit: creditLimit,
		available:   available,
		statement:   statement,
		closingDate: closing,
		dueDate:     due,
		active:      active,
	}
}

// RestoreDigitalSavings rebuilds a digital savings account.
func RestoreDigitalSavings(number string, owner *Owner, balance Money, yieldPct float64, active bool) *DigitalSavings {
	return &DigitalSavings{
		number:   number,
		owner:    owner,
		balance:  balance,
		yieldPct: yieldPct,
		active:   active,
	}
}

// RestoreInvestmentWallet rebuilds an investment wallet.
func RestoreInvestmentWallet(number string, owner *Owner, balance Money, profile RiskProfile, active bool) *InvestmentWallet {
	return &InvestmentWallet{
		number:  number,
		owner:   owner,
		balance: balance,
		profile: profile,
		active:  active,
	}
}

// RestorePiggybank rebuilds a piggybank.
func RestorePiggybank(number string, owner *Owner, purpose string, balance, goalAmount Money, deadline, createdAt Date, active bool) *Piggybank {
	return &Piggybank{
		number:     number,
		owner:      owner,
		balance:    balance,
		purpose:    purpose,
		goalAmount: goalAmount,
		deadline:   deadline,
		createdAt:  createdAt,
		active:     active,
	}
}
