// Package insight contains the reporting use cases: monthly summary,
// spending trend and budget-overrun alerts. The computations are pure
// functions over the aggregate rows the repository returns.
package insight

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// CategorySpendRow is one row of the per-category month aggregate. The
// query is an outer join, so categories without transactions in the month
// appear with a null Spent sum. MonthlyBudget is null for categories
// without a budget ceiling.
type CategorySpendRow struct {
	CategoryName  string
	MonthlyBudget decimal.NullDecimal
	Spent         decimal.NullDecimal
}

// MonthlySpendRow is one row of the per-month aggregate. Months without
// any transaction in the range are absent, not zero-filled.
type MonthlySpendRow struct {
	Month      string // YYYY-MM
	TotalSpent decimal.Decimal
}

// InsightRepository defines the aggregate queries the insight use cases
// consume, independent of the underlying storage engine's join semantics.
type InsightRepository interface {
	// AggregateSpendByCategory returns one row per category with the
	// summed transaction amounts for the given YYYY-MM month.
	AggregateSpendByCategory(ctx context.Context, month string) ([]CategorySpendRow, error)

	// AggregateSpendByMonth returns one row per calendar month in the
	// inclusive date range that has at least one transaction, ordered
	// ascending by month.
	AggregateSpendByMonth(ctx context.Context, from, to time.Time) ([]MonthlySpendRow, error)
}
