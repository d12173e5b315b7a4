// Package report builds read-only views over the ledger: month summaries,
// expense rankings, balance series, projections, scenario simulations,
// savings suggestions and anomaly detection.
// Summaries are memoized per month in an LRU cache; posting invalidates
// nothing, so callers decide the staleness they tolerate via the TTL.
package report

import (
	"sort"

	"cofre/internal/cache"
	"cofre/internal/core"
	"cofre/internal/ledger"
)

type Reporter struct {
	ledger    *ledger.Ledger
	summaries cache.Cache[core.MonthOverview]
}

// New builds a reporter over the ledger. The cache may be shared with a
// cache.Manager for periodic expiry.
func New(l *ledger.Ledger, summaries cache.Cache[core.MonthOverview]) *Reporter {
	return &Reporter{ledger: l, summaries: summaries}
}

// MonthSummary returns the month's aggregation, memoized by month key.
func (r *Reporter) MonthSummary(month core.Month) core.MonthOverview {
	key := month.String()
	if r.summaries != nil {
		if overview, ok := r.summaries.Get(key); ok {
			return overview
		}
	}
	overview := r.ledger.MonthOverview(month)
	if r.summaries != nil {
		r.summaries.Set(key, overview)
	}
	return overview
}

// ExpenseRanking returns the month's expense categories largest first,
// truncated to limit entries; limit <= 0 means no truncation.
func (r *Reporter) ExpenseRanking(month core.Month, limit int) []core.CategoryAmount {
	ranking := r.MonthSummary(month).ByCategory
	if limit > 0 && len(ranking) > limit {
		ranking = ranking[:limit]
	}
	return ranking
}

// BalanceEvolution replays the non-reversed transactions in posting order
// and returns the running net balance after each one.
func (r *Reporter) BalanceEvolution() []core.BalancePoint {
	var points []core.BalancePoint
	var running core.Money
	for _, t := range r.ledger.Transactions() {
		if t.Reversed {
			continue
		}
		switch t.Kind {
		case core.Income:
			running = running.Add(t.Amount)
		case core.Expense:
			running = running.Sub(t.Amount)
		default:
			// transfers move money between accounts, net zero
			continue
		}
		points = append(points, core.BalancePoint{Date: t.Date, Balance: running})
	}
	return points
}

// ProjectBalance projects the total balance the given number of months
// ahead using the average monthly net of the trailing window. A window
// with no transactions projects a flat balance.
func (r *Reporter) ProjectBalance(from core.Month, windowMonths, aheadMonths int) core.Money {
	balance := r.ledger.TotalBalance()
	if windowMonths <= 0 || aheadMonths <= 0 {
		return balance
	}

	var netCents int64
	month := from
	for i := 0; i < windowMonths; i++ {
		netCents += r.MonthSummary(month).Net().Cents
		month = previousMonth(month)
	}
	avg := netCents / int64(windowMonths)
	return balance.Add(core.CentsOf(avg * int64(aheadMonths)))
}

func previousMonth(m core.Month) core.Month {
	if m.Month == 1 {
		return core.Month{Year: m.Year - 1, Month: 12}
	}
	return core.Month{Year: m.Year, Month: m.Month - 1}
}

// Anomaly is an expense far above its category's average.
type Anomaly struct {
	Transaction *core.Transaction
	Average     core.Money
	Factor      float64
}

// DetectAnomalies flags non-reversed expenses whose amount exceeds
// threshold times their category's average expense. Categories with a
// single expense never flag; threshold <= 0 uses 2.
func (r *Reporter) DetectAnomalies(threshold float64) []Anomaly {
	if threshold <= 0 {
		threshold = 2
	}

	type bucket struct {
		sum   int64
		count int64
	}
	totals := make(map[core.Category]*bucket)
	var expenses []*core.Transaction

	for _, t := range r.ledger.Transactions() {
		if t.Reversed || t.Kind != core.Expense {
			continue
		}
		b := totals[t.Category]
		if b == nil {
			b = &bucket{}
			totals[t.Category] = b
		}
		b.sum += t.Amount.Cents
		b.count++
		expenses = append(expenses, t)
	}

	var anomalies []Anomaly
	for _, t := range expenses {
		b := totals[t.Category]
		if b.count < 2 {
			continue
		}
		avg := float64(b.sum) / float64(b.count)
		if float64(t.Amount.Cents) > threshold*avg {
			anomalies = append(anomalies, Anomaly{
				Transaction: t,
				Average:     core.CentsOf(int64(avg)),
				Factor:      float64(t.Amount.Cents) / avg,
			})
		}
	}

	sort.Slice(anomalies, func(i, j int) bool {
		return anomalies[i].Factor > anomalies[j].Factor
	})
	return anomalies
}
