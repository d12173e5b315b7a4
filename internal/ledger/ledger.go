// Package ledger implements the coordinator that owns every account,
// transaction, budget and goal and mediates every mutation. A Ledger is an
// explicitly constructed value; build one per test, never a global.
//
// The ledger itself is single-threaded by design: a mutex at the public
// boundary serializes callers so it can be embedded in a concurrent host
// (the periodic worker) without interleaving hazards.
package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"cofre/internal/core"
	"cofre/internal/log"
	"cofre/internal/notify"
)

// Ledger owns the four top-level collections and the notification sinks.
type Ledger struct {
	mu           sync.Mutex
	nextTxID     int64
	accounts     map[string]core.Account
	accountOrder []string
	transactions []*core.Transaction
	budgets      []*core.Budget
	goals        []*core.Goal
	notifiers    []notify.Notifier
}

// New creates an empty ledger.
func New() *Ledger {
	return &Ledger{
		nextTxID: 1,
		accounts: make(map[string]core.Account),
	}
}

// AddNotifier registers a notification sink. Sinks are invoked
// synchronously, in registration order.
func (l *Ledger) AddNotifier(n notify.Notifier) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if n != nil {
		l.notifiers = append(l.notifiers, n)
	}
}

func (l *Ledger) emit(ctx context.Context, event notify.Event) {
	for _, n := range l.notifiers {
		n.Notify(ctx, event)
	}
}

// AccountParams carries the kind-specific creation parameters; only the
// fields relevant to the requested kind are read.
type AccountParams struct {
	OverdraftLimit core.Money       // checking
	CreditLimit    core.Money       // credit card
	ClosingDate    core.Date        // credit card
	DueDate        core.Date        // credit card
	YieldPercent   float64          // digital savings
	Profile        core.RiskProfile // investment wallet
	Purpose        string           // piggybank
	GoalAmount     core.Money       // piggybank
	Deadline       core.Date        // piggybank, optional
}

// CreateAccount builds an account of the requested kind and registers it.
// Unknown kinds fail with ErrInvalidKind; an already used account number
// fails with ErrDuplicateAccount.
func (l *Ledger) CreateAccount(ctx context.Context, kind core.AccountKind, number string, owner *core.Owner, params AccountParams) (core.Account, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, exists := l.accounts[number]; exists {
		return nil, fmt.Errorf("account %s: %w", number, core.ErrDuplicateAccount)
	}

	var acc core.Account
	switch kind {
	case core.KindChecking:
		acc = core.NewChecking(number, owner, params.OverdraftLimit)
	case core.KindCreditCard:
		acc = core.NewCreditCard(number, owner, params.CreditLimit, params.ClosingDate, params.DueDate)
	case core.KindDigitalSavings:
		acc = core.NewDigitalSavings(number, owner, params.YieldPercent)
	case core.KindInvestmentWallet:
		acc = core.NewInvestmentWallet(number, owner, params.Profile)
	case core.KindPiggybank:
		acc = core.NewPiggybank(number, owner, params.Purpose, params.GoalAmount, params.Deadline)
	default:
		return nil, fmt.Errorf("account kind %q: %w", kind, core.ErrInvalidKind)
	}

	l.accounts[number] = acc
	l.accountOrder = append(l.accountOrder, number)

	slog.InfoContext(ctx, "Account created",
		log.NewFields().WithOperation(log.OpCreate).WithAccount(number, string(kind)).ToSlice()...)

	l.emit(ctx, notify.NewEvent(notify.EventAccountCreated,
		"account created",
		map[string]any{"number": number, "kind": string(kind)}))

	return acc, nil
}

// AddBudget registers a budget.
func (l *Ledger) AddBudget(b *core.Budget) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if b != nil {
		l.budgets = append(l.budgets, b)
	}
}

// AddGoal registers a goal.
func (l *Ledger) AddGoal(g *core.Goal) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if g != nil {
		l.goals = append(l.goals, g)
	}
}

// ContributeToGoal adds to the named goal. Negative amounts are the goal's
// documented no-op; reaching the target emits a notification.
func (l *Ledger) ContributeToGoal(ctx context.Context, name string, amount core.Money) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, g := range l.goals {
		if g.Name != name {
			continue
		}
		wasReached := g.Reached
		g.Contribute(amount)
		if g.Reached && !wasReached {
			slog.InfoContext(ctx, "Goal reached", log.FieldGoal, g.Name)
			l.emit(ctx, notify.NewEvent(notify.EventGoalReached,
				"goal reached",
				map[string]any{"goal": g.Name, "target": g.Target.String()}))
		}
		return nil
	}
	return fmt.Errorf("goal %q: %w", name, core.ErrNotFound)
}

// ApplyMonthlyYields runs the yield accrual on every account that bears
// one, returning the total accrued. Dispatch goes through the YieldBearer
// capability, not the concrete types.
func (l *Ledger) ApplyMonthlyYields() core.Money {
	l.mu.Lock()
	defer l.mu.Unlock()

	var total core.Money
	for _, number := range l.accountOrder {
		if yb, ok := l.accounts[number].(core.YieldBearer); ok {
			total = total.Add(yb.ApplyYield())
		}
	}
	return total
}

// CheckAlerts scans budgets and goals for conditions worth notifying:
// budgets past their limit whose alert has not fired, and goals past their
// deadline. Posting already covers the threshold alert.
func (l *Ledger) CheckAlerts(ctx context.Context, today core.Date) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, b := range l.budgets {
		if b.OverLimit() && b.ShouldAlert() {
			l.emit(ctx, notify.NewEvent(notify.EventBudgetOverrun,
				"budget over limit",
				map[string]any{"budget": b.Name, "category": string(b.Category), "overrun": b.Overrun().String()}))
			b.MarkAlertSent()
		}
	}
	for _, g := range l.goals {
		if g.Late(today) {
			l.emit(ctx, notify.NewEvent(notify.EventGoalLate,
				"goal past deadline",
				map[string]any{"goal": g.Name, "remaining": g.Remaining().String()}))
		}
	}
}
