package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/ledgerone/backend/internal/application/usecase/insight"
)

type stubInsightRepo struct {
	categoryRows []insight.CategorySpendRow
}

func (r *stubInsightRepo) AggregateSpendByCategory(ctx context.Context, month string) ([]insight.CategorySpendRow, error) {
	return r.categoryRows, nil
}

func (r *stubInsightRepo) AggregateSpendByMonth(ctx context.Context, from, to time.Time) ([]insight.MonthlySpendRow, error) {
	return nil, nil
}

func newAlertsEngine(repo *stubInsightRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	controller := NewInsightController(nil, nil, insight.NewAlertsUseCase(repo))

	engine := gin.New()
	engine.GET("/api/alerts", controller.Alerts)
	return engine
}

func TestAlertsResponseIsATopLevelArray(t *testing.T) {
	budget := decimal.NullDecimal{Decimal: decimal.NewFromInt(100), Valid: true}
	spent := decimal.NullDecimal{Decimal: decimal.NewFromInt(150), Valid: true}
	engine := newAlertsEngine(&stubInsightRepo{
		categoryRows: []insight.CategorySpendRow{
			{CategoryName: "Food", MonthlyBudget: budget, Spent: spent},
		},
	})

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/api/alerts?month=2025-07", nil)
	engine.ServeHTTP(recorder, request)

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d (body: %s)", recorder.Code, recorder.Body.String())
	}

	var alerts []insight.AlertDetail
	if err := json.Unmarshal(recorder.Body.Bytes(), &alerts); err != nil {
		t.Fatalf("body is not a JSON array: %v (body: %s)", err, recorder.Body.String())
	}
	if len(alerts) != 1 {
		t.Fatalf("expected 1 alert, got %d", len(alerts))
	}
	if alerts[0].CategoryName != "Food" {
		t.Errorf("expected alert for Food, got %q", alerts[0].CategoryName)
	}
	if !alerts[0].Delta.Equal(decimal.NewFromInt(50)) {
		t.Errorf("expected delta 50, got %s", alerts[0].Delta)
	}
}

func TestAlertsEmptyResultIsAnEmptyArray(t *testing.T) {
	engine := newAlertsEngine(&stubInsightRepo{categoryRows: []insight.CategorySpendRow{}})

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/api/alerts?month=2025-07", nil)
	engine.ServeHTTP(recorder, request)

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", recorder.Code)
	}
	if body := recorder.Body.String(); body != "[]" {
		t.Errorf("expected empty JSON array, got %s", body)
	}
}
