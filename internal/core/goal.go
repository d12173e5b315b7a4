package core

// Goal tracks saving toward a target amount by a deadline. Reached latches
// permanently once current meets the target.
type Goal struct {
	Name        string
	Category    Category
	Target      Money
	Current     Money
	StartDate   Date
	Deadline    Date
	Responsible *Owner
	Reached     bool
}

// NewGoal creates a goal starting today with nothing saved.
func NewGoal(name string, category Category, target Money, deadline Date, responsible *Owner) *Goal {
	return &Goal{
		Name:        name,
		Category:    category,
		Target:      target,
		StartDate:   Today(),
		Deadline:    deadline,
		Responsible: responsible,
	}
}

// Contribute adds to the saved amount and latches Reached once the target
// is met. Negative contributions are silently ignored, not rejected; a
// zero contribution is likewise a no-op.
func (g *Goal) Contribute(amount Money) {
	if amount.Cents < 0 {
		return
	}
	g.Current = g.Current.Add(amount)
	if g.Current.Cents >= g.Target.Cents {
		g.Reached = true
	}
}

// Progress returns the percentage completed, capped at 100.
func (g *Goal) Progress() float64 {
	if g.Target.Cents == 0 {
		return 0
	}
	pct := float64(g.Current.Cents) / float64(g.Target.Cents) * 100
	if pct > 100 {
		pct = 100
	}
	return pct
}

// Remaining returns what is still missing, never negative.
func (g *Goal) Remaining() Money {
	if g.Current.Cents >= g.Target.Cents {
		return Money{}
	}
	return g.Target.Sub(g.Current)
}

// Late reports whether the deadline passed without the goal being reached.
func (g *Goal) Late(today Date) bool {
	return today.After(g.Deadline) && !g.Reached
}

// DaysLeft returns the days until the deadline; negative once it passed.
func (g *Goal) DaysLeft(today Date) int {
	return int(g.Deadline.Sub(today.Time).Hours() / 24)
}

// DailySavingsNeeded returns how much must be saved per remaining day to
// reach the target in time, or zero when the deadline passed.
func (g *Goal) DailySavingsNeeded(today Date) Money {
	days := g.DaysLeft(today)
	if days <= 0 {
		return Money{}
	}
	return CentsOf(g.Remaining().Cents / int64(days))
}
