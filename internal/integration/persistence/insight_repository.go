// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/ledgerone/backend/internal/application/usecase/insight"
)

// insightRepository implements the insight.InsightRepository interface.
type insightRepository struct {
	db *gorm.DB
}

// NewInsightRepository creates a new insight repository instance.
func NewInsightRepository(db *gorm.DB) insight.InsightRepository {
	return &insightRepository{
		db: db,
	}
}

// monthBucketExpr returns the SQL expression that buckets a date column
// into a YYYY-MM string for the connected dialect.
func (r *insightRepository) monthBucketExpr(column string) string {
	if r.db.Dialector.Name() == "postgres" {
		return fmt.Sprintf("to_char(%s, 'YYYY-MM')", column)
	}
	return fmt.Sprintf("strftime('%%Y-%%m', %s)", column)
}

// AggregateSpendByCategory returns the per-category spend for one month.
// The LEFT JOIN keeps categories without transactions in the month; their
// sum scans as null.
func (r *insightRepository) AggregateSpendByCategory(ctx context.Context, month string) ([]insight.CategorySpendRow, error) {
	var results []struct {
		CategoryName  string              `gorm:"column:category_name"`
		MonthlyBudget decimal.NullDecimal `gorm:"column:monthly_budget"`
		Spent         decimal.NullDecimal `gorm:"column:spent"`
	}

	query := fmt.Sprintf(`
		SELECT
			c.name AS category_name,
			c.monthly_budget AS monthly_budget,
			SUM(t.amount) AS spent
		FROM categories c
		LEFT JOIN transactions t
			ON t.category_id = c.id
			AND %s = ?
		GROUP BY c.id, c.name, c.monthly_budget
		ORDER BY c.name
	`, r.monthBucketExpr("t.date"))

	err := r.db.WithContext(ctx).
		Raw(query, month).
		Scan(&results).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate spend by category: %w", err)
	}

	rows := make([]insight.CategorySpendRow, len(results))
	for i, res := range results {
		rows[i] = insight.CategorySpendRow{
			CategoryName:  res.CategoryName,
			MonthlyBudget: res.MonthlyBudget,
			Spent:         res.Spent,
		}
	}
	return rows, nil
}

// AggregateSpendByMonth returns one row per month with transactions in the
// inclusive range, ordered ascending.
func (r *insightRepository) AggregateSpendByMonth(ctx context.Context, from, to time.Time) ([]insight.MonthlySpendRow, error) {
	var results []struct {
		Month      string          `gorm:"column:month"`
		TotalSpent decimal.Decimal `gorm:"column:total_spent"`
	}

	bucket := r.monthBucketExpr("date")
	query := fmt.Sprintf(`
		SELECT
			%s AS month,
			SUM(amount) AS total_spent
		FROM transactions
		WHERE date >= ? AND date <= ?
		GROUP BY %s
		ORDER BY month ASC
	`, bucket, bucket)

	err := r.db.WithContext(ctx).
		Raw(query, from, to).
		Scan(&results).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate spend by month: %w", err)
	}

	rows := make([]insight.MonthlySpendRow, len(results))
	for i, res := range results {
		rows[i] = insight.MonthlySpendRow{
			Month:      res.Month,
			TotalSpent: res.TotalSpent,
		}
	}
	return rows, nil
}
