package report

import (
	"math"
	"sort"

	"cofre/internal/core"
)

// ScenarioResult compares the projected balance under today's averages
// with the projection after a simulated change in spending.
type ScenarioResult struct {
	CurrentBalance   core.Money
	ProjectedCurrent core.Money
	ProjectedChanged core.Money
	Category         core.Category // CategoryNone for a global change
	MonthlyChange    core.Money    // signed change to the average monthly expenses
	Months           int
}

// Impact is the projected difference the change makes; positive means the
// changed scenario ends better off.
func (s ScenarioResult) Impact() core.Money {
	return s.ProjectedChanged.Sub(s.ProjectedCurrent)
}

// averages over the non-reversed transactions: mean income amount, mean
// expense amount, and mean expense amount per category.
func (r *Reporter) transactionAverages() (incomeAvg, expenseAvg int64, byCategory map[core.Category]int64) {
	var incomeSum, expenseSum, incomeN, expenseN int64
	catSum := make(map[core.Category]int64)
	catN := make(map[core.Category]int64)

	for _, t := range r.ledger.Transactions() {
		if t.Reversed {
			continue
		}
		switch t.Kind {
		case core.Income:
			incomeSum += t.Amount.Cents
			incomeN++
		case core.Expense:
			expenseSum += t.Amount.Cents
			expenseN++
			catSum[t.Category] += t.Amount.Cents
			catN[t.Category]++
		}
	}

	if incomeN > 0 {
		incomeAvg = incomeSum / incomeN
	}
	if expenseN > 0 {
		expenseAvg = expenseSum / expenseN
	}
	byCategory = make(map[core.Category]int64, len(catSum))
	for cat, sum := range catSum {
		byCategory[cat] = sum / catN[cat]
	}
	return incomeAvg, expenseAvg, byCategory
}

func (r *Reporter) simulate(category core.Category, changeCents int64, months int) ScenarioResult {
	incomeAvg, expenseAvg, _ := r.transactionAverages()
	balance := r.ledger.TotalBalance()

	currentNet := incomeAvg - expenseAvg
	changedNet := incomeAvg - (expenseAvg + changeCents)

	return ScenarioResult{
		CurrentBalance:   balance,
		ProjectedCurrent: balance.Add(core.CentsOf(currentNet * int64(months))),
		ProjectedChanged: balance.Add(core.CentsOf(changedNet * int64(months))),
		Category:         category,
		MonthlyChange:    core.CentsOf(changeCents),
		Months:           months,
	}
}

// SimulateCategoryChange projects the balance months ahead after changing
// the average spend of one category by the given percentage. Negative
// percentages simulate a cut.
func (r *Reporter) SimulateCategoryChange(category core.Category, percent float64, months int) ScenarioResult {
	_, _, byCategory := r.transactionAverages()
	change := int64(math.Round(float64(byCategory[category]) * percent / 100))
	return r.simulate(category, change, months)
}

// SimulateGlobalChange projects the balance months ahead after changing
// the average spend across every category by the given percentage.
func (r *Reporter) SimulateGlobalChange(percent float64, months int) ScenarioResult {
	_, expenseAvg, _ := r.transactionAverages()
	change := int64(math.Round(float64(expenseAvg) * percent / 100))
	return r.simulate(core.CategoryNone, change, months)
}

// SimulateNewExpense projects the balance months ahead with an extra
// recurring expense of the given amount.
func (r *Reporter) SimulateNewExpense(amount core.Money, months int) ScenarioResult {
	return r.simulate(core.CategoryNone, amount.Cents, months)
}

// savingsPercent is the share of the heaviest category's spend suggested
// as an achievable saving.
const savingsPercent = 15

// SuggestSavings finds the category with the largest total expenses and
// returns it with 15% of that total as the suggested monthly saving. A
// ledger with no expenses suggests nothing.
func (r *Reporter) SuggestSavings() (core.Category, core.Money) {
	totals := make(map[core.Category]int64)
	for _, t := range r.ledger.Transactions() {
		if t.Reversed || t.Kind != core.Expense {
			continue
		}
		totals[t.Category] += t.Amount.Cents
	}
	if len(totals) == 0 {
		return core.CategoryNone, core.Money{}
	}

	categories := make([]core.Category, 0, len(totals))
	for cat := range totals {
		categories = append(categories, cat)
	}
	sort.Slice(categories, func(i, j int) bool {
		if totals[categories[i]] != totals[categories[j]] {
			return totals[categories[i]] > totals[categories[j]]
		}
		return categories[i] < categories[j]
	})

	top := categories[0]
	return top, core.CentsOf(totals[top] * savingsPercent / 100)
}
