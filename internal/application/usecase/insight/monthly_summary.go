package insight

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/ledgerone/backend/internal/application/adapter"
)

// CategorySummary is the per-category slice of a monthly summary.
// BudgetRemaining is always computed, treating a null budget as zero.
type CategorySummary struct {
	CategoryName    string           `json:"category_name"`
	SpentAmount     decimal.Decimal  `json:"spent_amount"`
	BudgetLimit     *decimal.Decimal `json:"budget_limit"`
	BudgetRemaining decimal.Decimal  `json:"budget_remaining"`
}

// MonthlySummaryInput represents the input for the monthly summary report.
type MonthlySummaryInput struct {
	Month string // YYYY-MM
}

// MonthlySummaryOutput is the monthly budget summary for one month.
// GlobalAlerts counts categories whose budget is set (including zero) and
// exceeded; this is deliberately looser than the /alerts trigger, which
// requires a strictly positive budget.
type MonthlySummaryOutput struct {
	Month        string            `json:"month"`
	TotalSpent   decimal.Decimal   `json:"total_spent"`
	Categories   []CategorySummary `json:"categories"`
	GlobalAlerts int               `json:"global_alerts"`
}

// MonthlySummaryUseCase computes the per-category budget summary for a month.
type MonthlySummaryUseCase struct {
	insightRepo InsightRepository
	cache       adapter.InsightCache
}

// NewMonthlySummaryUseCase creates a new MonthlySummaryUseCase instance.
func NewMonthlySummaryUseCase(insightRepo InsightRepository, cache adapter.InsightCache) *MonthlySummaryUseCase {
	return &MonthlySummaryUseCase{
		insightRepo: insightRepo,
		cache:       cache,
	}
}

// Execute computes the monthly summary, serving from cache when possible.
func (uc *MonthlySummaryUseCase) Execute(ctx context.Context, input MonthlySummaryInput) (*MonthlySummaryOutput, error) {
	if err := validateMonth(input.Month); err != nil {
		return nil, err
	}

	cacheKey := "summary:" + input.Month
	if cached := uc.fromCache(ctx, cacheKey); cached != nil {
		return cached, nil
	}

	rows, err := uc.insightRepo.AggregateSpendByCategory(ctx, input.Month)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate spend by category: %w", err)
	}

	output := &MonthlySummaryOutput{
		Month:      input.Month,
		TotalSpent: decimal.Zero,
		Categories: make([]CategorySummary, 0, len(rows)),
	}

	for _, row := range rows {
		spent := decimal.Zero
		if row.Spent.Valid {
			spent = row.Spent.Decimal
		}

		output.TotalSpent = output.TotalSpent.Add(spent)

		budgetOrZero := decimal.Zero
		var budgetLimit *decimal.Decimal
		if row.MonthlyBudget.Valid {
			budget := row.MonthlyBudget.Decimal
			budgetOrZero = budget
			budgetLimit = &budget
		}

		remaining := budgetOrZero.Sub(spent)

		// A set budget, even zero, counts toward the global alert tally
		// once spend pushes remaining below zero.
		if row.MonthlyBudget.Valid && remaining.IsNegative() {
			output.GlobalAlerts++
		}

		output.Categories = append(output.Categories, CategorySummary{
			CategoryName:    row.CategoryName,
			SpentAmount:     spent,
			BudgetLimit:     budgetLimit,
			BudgetRemaining: remaining,
		})
	}

	uc.toCache(ctx, cacheKey, output)

	return output, nil
}

// fromCache returns a cached summary, or nil on any miss or failure.
func (uc *MonthlySummaryUseCase) fromCache(ctx context.Context, key string) *MonthlySummaryOutput {
	if uc.cache == nil {
		return nil
	}

	raw, err := uc.cache.Get(ctx, key)
	if err != nil {
		slog.Warn("Failed to read insight cache", "key", key, "error", err)
		return nil
	}
	if raw == nil {
		return nil
	}

	var output MonthlySummaryOutput
	if err := json.Unmarshal(raw, &output); err != nil {
		slog.Warn("Failed to decode cached summary", "key", key, "error", err)
		return nil
	}
	return &output
}

// toCache stores a computed summary; failures only cost a recomputation.
func (uc *MonthlySummaryUseCase) toCache(ctx context.Context, key string, output *MonthlySummaryOutput) {
	if uc.cache == nil {
		return
	}

	raw, err := json.Marshal(output)
	if err != nil {
		slog.Warn("Failed to encode summary for cache", "key", key, "error", err)
		return
	}
	if err := uc.cache.Set(ctx, key, raw); err != nil {
		slog.Warn("Failed to write insight cache", "key", key, "error", err)
	}
}
