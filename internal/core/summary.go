package core

// CategoryAmount is an amount aggregated by category.
type CategoryAmount struct {
	Category Category
	Amount   Money
}

// MonthOverview is a compact summary for one reference month.
type MonthOverview struct {
	Month      Month
	Income     Money
	Expenses   Money
	ByCategory []CategoryAmount
}

// Net returns income minus expenses for the month.
func (o MonthOverview) Net() Money {
	return o.Income.Sub(o.Expenses)
}

// BalancePoint is one step of a running-balance series.
type BalancePoint struct {
	Date    Date
	Balance Money
}
