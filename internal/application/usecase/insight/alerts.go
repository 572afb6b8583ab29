package insight

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

// AlertScopeCategory is the only alert scope currently emitted.
const AlertScopeCategory = "category"

// AlertDetail describes a single budget overrun. Delta is the overage
// amount, always positive.
type AlertDetail struct {
	Scope        string          `json:"scope"`
	CategoryName string          `json:"category_name"`
	Budget       decimal.Decimal `json:"budget"`
	ActualSpent  decimal.Decimal `json:"actual_spent"`
	Delta        decimal.Decimal `json:"delta"`
}

// AlertsInput represents the input for the budget-overrun alert report.
type AlertsInput struct {
	Month string // YYYY-MM
}

// AlertsOutput represents the list of alerts for the month.
type AlertsOutput struct {
	Alerts []AlertDetail
}

// AlertsUseCase emits one alert per category whose budget is strictly
// positive and exceeded. A zero budget never alerts here, even though the
// monthly summary counts the same overrun in its global tally; the
// asymmetry is part of the observed contract and preserved on purpose.
type AlertsUseCase struct {
	insightRepo InsightRepository
}

// NewAlertsUseCase creates a new AlertsUseCase instance.
func NewAlertsUseCase(insightRepo InsightRepository) *AlertsUseCase {
	return &AlertsUseCase{
		insightRepo: insightRepo,
	}
}

// Execute computes the budget-overrun alerts for the given month.
func (uc *AlertsUseCase) Execute(ctx context.Context, input AlertsInput) (*AlertsOutput, error) {
	if err := validateMonth(input.Month); err != nil {
		return nil, err
	}

	rows, err := uc.insightRepo.AggregateSpendByCategory(ctx, input.Month)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate spend by category: %w", err)
	}

	output := &AlertsOutput{
		Alerts: []AlertDetail{},
	}

	for _, row := range rows {
		if !row.MonthlyBudget.Valid || !row.MonthlyBudget.Decimal.IsPositive() {
			continue
		}

		spent := decimal.Zero
		if row.Spent.Valid {
			spent = row.Spent.Decimal
		}

		budget := row.MonthlyBudget.Decimal
		if spent.GreaterThan(budget) {
			output.Alerts = append(output.Alerts, AlertDetail{
				Scope:        AlertScopeCategory,
				CategoryName: row.CategoryName,
				Budget:       budget,
				ActualSpent:  spent,
				Delta:        spent.Sub(budget),
			})
		}
	}

	return output, nil
}
