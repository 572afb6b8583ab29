package insight

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	domainerror "github.com/ledgerone/backend/internal/domain/error"
)

// movingAverageWindow is the number of consecutive trend entries averaged.
const movingAverageWindow = 3

// dateLayout is the wire format for range boundaries.
const dateLayout = "2006-01-02"

// MonthlyTrend is one month's spend plus, once enough history exists, the
// trailing moving average. The window slides over returned entries, not
// calendar months: a month without transactions is absent from the series
// and the window silently spans the gap.
type MonthlyTrend struct {
	Month           string           `json:"month"`
	TotalSpent      decimal.Decimal  `json:"total_spent"`
	MovingAverage3M *decimal.Decimal `json:"moving_average_3m"`
}

// MonthlyTrendInput represents the inclusive date range for the trend report.
type MonthlyTrendInput struct {
	FromDate time.Time
	ToDate   time.Time
}

// MonthlyTrendOutput echoes the requested range and carries the trend series.
type MonthlyTrendOutput struct {
	StartDate string         `json:"start_date"`
	EndDate   string         `json:"end_date"`
	Trends    []MonthlyTrend `json:"trends"`
}

// MonthlyTrendUseCase computes the multi-month spend trend.
type MonthlyTrendUseCase struct {
	insightRepo InsightRepository
}

// NewMonthlyTrendUseCase creates a new MonthlyTrendUseCase instance.
func NewMonthlyTrendUseCase(insightRepo InsightRepository) *MonthlyTrendUseCase {
	return &MonthlyTrendUseCase{
		insightRepo: insightRepo,
	}
}

// Execute computes the trend series for the given range.
func (uc *MonthlyTrendUseCase) Execute(ctx context.Context, input MonthlyTrendInput) (*MonthlyTrendOutput, error) {
	if input.FromDate.IsZero() || input.ToDate.IsZero() {
		return nil, domainerror.NewInsightError(
			domainerror.ErrCodeMissingDateRange,
			"from_date and to_date are required",
			domainerror.ErrMissingDateRange,
		)
	}

	if input.ToDate.Before(input.FromDate) {
		return nil, domainerror.NewInsightError(
			domainerror.ErrCodeInvalidDateRange,
			"to_date must not be before from_date",
			domainerror.ErrInvalidDateRange,
		)
	}

	rows, err := uc.insightRepo.AggregateSpendByMonth(ctx, input.FromDate, input.ToDate)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate spend by month: %w", err)
	}

	trends := make([]MonthlyTrend, len(rows))
	for i, row := range rows {
		trends[i] = MonthlyTrend{
			Month:      row.Month,
			TotalSpent: row.TotalSpent,
		}
	}

	applyMovingAverage(trends)

	return &MonthlyTrendOutput{
		StartDate: input.FromDate.Format(dateLayout),
		EndDate:   input.ToDate.Format(dateLayout),
		Trends:    trends,
	}, nil
}

// applyMovingAverage fills the trailing moving average for every entry with
// a full window behind it; earlier entries stay unset.
func applyMovingAverage(trends []MonthlyTrend) {
	for i := movingAverageWindow - 1; i < len(trends); i++ {
		sum := decimal.Zero
		for j := i - movingAverageWindow + 1; j <= i; j++ {
			sum = sum.Add(trends[j].TotalSpent)
		}
		avg := sum.Div(decimal.NewFromInt(movingAverageWindow))
		trends[i].MovingAverage3M = &avg
	}
}
