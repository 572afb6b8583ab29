package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ledgerone/backend/internal/application/usecase/insight"
	domainerror "github.com/ledgerone/backend/internal/domain/error"
	"github.com/ledgerone/backend/internal/integration/entrypoint/dto"
)

// InsightController handles the insights and alerts endpoints.
type InsightController struct {
	summaryUseCase *insight.MonthlySummaryUseCase
	trendUseCase   *insight.MonthlyTrendUseCase
	alertsUseCase  *insight.AlertsUseCase
}

// NewInsightController creates a new insight controller instance.
func NewInsightController(
	summaryUseCase *insight.MonthlySummaryUseCase,
	trendUseCase *insight.MonthlyTrendUseCase,
	alertsUseCase *insight.AlertsUseCase,
) *InsightController {
	return &InsightController{
		summaryUseCase: summaryUseCase,
		trendUseCase:   trendUseCase,
		alertsUseCase:  alertsUseCase,
	}
}

// Summary handles GET /api/insights/summary?month=YYYY-MM requests.
func (c *InsightController) Summary(ctx *gin.Context) {
	output, err := c.summaryUseCase.Execute(ctx.Request.Context(), insight.MonthlySummaryInput{
		Month: ctx.Query("month"),
	})
	if err != nil {
		c.handleInsightError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, output)
}

// Trend handles GET /api/insights/trend?from_date=...&to_date=... requests.
func (c *InsightController) Trend(ctx *gin.Context) {
	input := insight.MonthlyTrendInput{}

	if fromStr := ctx.Query("from_date"); fromStr != "" {
		from, err := time.Parse(dateLayout, fromStr)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid from_date, use YYYY-MM-DD",
				Code:  string(domainerror.ErrCodeMissingDateRange),
			})
			return
		}
		input.FromDate = from
	}

	if toStr := ctx.Query("to_date"); toStr != "" {
		to, err := time.Parse(dateLayout, toStr)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid to_date, use YYYY-MM-DD",
				Code:  string(domainerror.ErrCodeMissingDateRange),
			})
			return
		}
		input.ToDate = to
	}

	output, err := c.trendUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleInsightError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, output)
}

// Alerts handles GET /api/alerts?month=YYYY-MM requests.
func (c *InsightController) Alerts(ctx *gin.Context) {
	output, err := c.alertsUseCase.Execute(ctx.Request.Context(), insight.AlertsInput{
		Month: ctx.Query("month"),
	})
	if err != nil {
		c.handleInsightError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, output.Alerts)
}

// handleInsightError maps insight errors to HTTP responses. Every coded
// insight error is a request validation failure.
func (c *InsightController) handleInsightError(ctx *gin.Context, err error) {
	var insErr *domainerror.InsightError
	if errors.As(err, &insErr) {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: insErr.Message,
			Code:  string(insErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "Failed to compute insights",
	})
}
