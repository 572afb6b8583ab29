// Package dependency provides dependency injection for the application.
package dependency

import (
	"gorm.io/gorm"

	"github.com/ledgerone/backend/config"
	"github.com/ledgerone/backend/internal/application/adapter"
	"github.com/ledgerone/backend/internal/application/usecase/category"
	"github.com/ledgerone/backend/internal/application/usecase/csvimport"
	"github.com/ledgerone/backend/internal/application/usecase/insight"
	"github.com/ledgerone/backend/internal/application/usecase/transaction"
	infradb "github.com/ledgerone/backend/internal/infra/db"
	"github.com/ledgerone/backend/internal/infra/server/router"
	"github.com/ledgerone/backend/internal/integration/entrypoint/controller"
	"github.com/ledgerone/backend/internal/integration/entrypoint/middleware"
	"github.com/ledgerone/backend/internal/integration/persistence"
)

// Injector holds all application dependencies.
type Injector struct {
	Config *config.Config
	DB     *gorm.DB
	Router *router.Router
}

// NewInjector creates a new dependency injector with all dependencies wired.
// The insight cache may be nil; every consumer tolerates its absence.
func NewInjector(cfg *config.Config, db *gorm.DB, insightCache adapter.InsightCache) *Injector {
	// Create repositories
	categoryRepo := persistence.NewCategoryRepository(db)
	transactionRepo := persistence.NewTransactionRepository(db)
	insightRepo := persistence.NewInsightRepository(db)

	// Create category use cases
	listCategoriesUseCase := category.NewListCategoriesUseCase(categoryRepo)
	createCategoryUseCase := category.NewCreateCategoryUseCase(categoryRepo, insightCache)
	updateCategoryUseCase := category.NewUpdateCategoryUseCase(categoryRepo, insightCache)
	deleteCategoryUseCase := category.NewDeleteCategoryUseCase(categoryRepo, insightCache)

	// Create transaction use cases
	listTransactionsUseCase := transaction.NewListTransactionsUseCase(transactionRepo)
	createTransactionUseCase := transaction.NewCreateTransactionUseCase(transactionRepo, categoryRepo, insightCache)
	updateTransactionUseCase := transaction.NewUpdateTransactionUseCase(transactionRepo, categoryRepo, insightCache)
	deleteTransactionUseCase := transaction.NewDeleteTransactionUseCase(transactionRepo, insightCache)

	// Create import and insight use cases
	importUseCase := csvimport.NewImportTransactionsUseCase(categoryRepo, transactionRepo, insightCache)
	summaryUseCase := insight.NewMonthlySummaryUseCase(insightRepo, insightCache)
	trendUseCase := insight.NewMonthlyTrendUseCase(insightRepo)
	alertsUseCase := insight.NewAlertsUseCase(insightRepo)

	// Create controllers
	healthController := controller.NewHealthController(func() bool {
		return infradb.HealthCheck(db)
	})
	categoryController := controller.NewCategoryController(
		listCategoriesUseCase,
		createCategoryUseCase,
		updateCategoryUseCase,
		deleteCategoryUseCase,
	)
	transactionController := controller.NewTransactionController(
		listTransactionsUseCase,
		createTransactionUseCase,
		updateTransactionUseCase,
		deleteTransactionUseCase,
	)
	importController := controller.NewImportController(importUseCase, cfg.Import.MaxUploadBytes)
	insightController := controller.NewInsightController(summaryUseCase, trendUseCase, alertsUseCase)

	// Create middleware
	importRateLimiter := middleware.NewRateLimiterWithConfig(
		cfg.Import.RateLimitMax,
		cfg.Import.RateLimitWindow,
	)

	appRouter := router.NewRouter(
		healthController,
		categoryController,
		transactionController,
		importController,
		insightController,
		importRateLimiter,
	)

	return &Injector{
		Config: cfg,
		DB:     db,
		Router: appRouter,
	}
}
