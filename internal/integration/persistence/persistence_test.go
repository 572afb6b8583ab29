// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ledgerone/backend/internal/application/adapter"
	"github.com/ledgerone/backend/internal/domain/entity"
	domainerror "github.com/ledgerone/backend/internal/domain/error"
	"github.com/ledgerone/backend/internal/integration/persistence/model"
)

// openTestDB opens an in-memory SQLite database with the schema migrated.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&model.CategoryModel{}, &model.TransactionModel{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func mustCreateCategory(t *testing.T, repo adapter.CategoryRepository, name string, budget *decimal.Decimal) *entity.Category {
	t.Helper()
	category := entity.NewCategory(name, "", budget)
	if budget == nil {
		category.MonthlyBudget = nil
	}
	if err := repo.Create(context.Background(), category); err != nil {
		t.Fatalf("failed to create category %s: %v", name, err)
	}
	return category
}

func mustCreateTransaction(t *testing.T, repo adapter.TransactionRepository, date string, description string, amount string, categoryID *uuid.UUID) *entity.Transaction {
	t.Helper()
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		t.Fatalf("bad test date %s: %v", date, err)
	}
	txn := entity.NewTransaction(day, description, decimal.RequireFromString(amount), categoryID)
	if err := repo.Create(context.Background(), txn); err != nil {
		t.Fatalf("failed to create transaction %s: %v", description, err)
	}
	return txn
}

func TestCategoryRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("round-trips a category", func(t *testing.T) {
		repo := NewCategoryRepository(openTestDB(t))

		budget := decimal.NewFromInt(250)
		created := mustCreateCategory(t, repo, "Groceries", &budget)

		found, err := repo.FindByID(ctx, created.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if found.Name != "Groceries" {
			t.Errorf("expected name Groceries, got %s", found.Name)
		}
		if found.MonthlyBudget == nil || !found.MonthlyBudget.Equal(budget) {
			t.Errorf("expected budget 250, got %v", found.MonthlyBudget)
		}
	})

	t.Run("persists an absent budget as null", func(t *testing.T) {
		repo := NewCategoryRepository(openTestDB(t))

		created := mustCreateCategory(t, repo, "Misc", nil)

		found, err := repo.FindByID(ctx, created.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if found.MonthlyBudget != nil {
			t.Errorf("expected nil budget, got %s", found.MonthlyBudget)
		}
	})

	t.Run("FindByName returns nil nil when absent", func(t *testing.T) {
		repo := NewCategoryRepository(openTestDB(t))

		found, err := repo.FindByName(ctx, "Nope")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if found != nil {
			t.Errorf("expected nil, got %+v", found)
		}
	})

	t.Run("FindByID reports not found", func(t *testing.T) {
		repo := NewCategoryRepository(openTestDB(t))

		_, err := repo.FindByID(ctx, uuid.New())
		if !errors.Is(err, domainerror.ErrCategoryNotFound) {
			t.Errorf("expected ErrCategoryNotFound, got %v", err)
		}
	})

	t.Run("FindAll orders by name", func(t *testing.T) {
		repo := NewCategoryRepository(openTestDB(t))
		mustCreateCategory(t, repo, "Transport", nil)
		mustCreateCategory(t, repo, "Food", nil)

		all, err := repo.FindAll(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(all) != 2 || all[0].Name != "Food" || all[1].Name != "Transport" {
			t.Errorf("expected [Food Transport], got %v", all)
		}
	})

	t.Run("delete nulls out transaction references", func(t *testing.T) {
		db := openTestDB(t)
		categoryRepo := NewCategoryRepository(db)
		txnRepo := NewTransactionRepository(db)

		category := mustCreateCategory(t, categoryRepo, "Food", nil)
		txn := mustCreateTransaction(t, txnRepo, "2025-07-01", "Groceries", "45.50", &category.ID)

		if err := categoryRepo.Delete(ctx, category.ID); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if _, err := categoryRepo.FindByID(ctx, category.ID); !errors.Is(err, domainerror.ErrCategoryNotFound) {
			t.Errorf("expected category gone, got %v", err)
		}

		// The transaction survives, uncategorized.
		survivor, err := txnRepo.FindByID(ctx, txn.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if survivor.CategoryID != nil {
			t.Errorf("expected nil category reference, got %v", survivor.CategoryID)
		}
	})
}

func TestTransactionRepository(t *testing.T) {
	ctx := context.Background()

	seed := func(t *testing.T) (adapter.TransactionRepository, *entity.Category) {
		t.Helper()
		db := openTestDB(t)
		categoryRepo := NewCategoryRepository(db)
		txnRepo := NewTransactionRepository(db)

		food := mustCreateCategory(t, categoryRepo, "Food", nil)
		mustCreateTransaction(t, txnRepo, "2025-07-01", "Groceries", "45.50", &food.ID)
		mustCreateTransaction(t, txnRepo, "2025-07-10", "Coffee beans", "12.00", &food.ID)
		mustCreateTransaction(t, txnRepo, "2025-07-05", "Taxi", "20.00", nil)
		return txnRepo, food
	}

	t.Run("lists ordered by date descending", func(t *testing.T) {
		repo, _ := seed(t)

		transactions, err := repo.List(ctx, adapter.TransactionFilter{Limit: 100})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(transactions) != 3 {
			t.Fatalf("expected 3 transactions, got %d", len(transactions))
		}
		if transactions[0].Description != "Coffee beans" || transactions[2].Description != "Groceries" {
			t.Errorf("unexpected order: %s .. %s", transactions[0].Description, transactions[2].Description)
		}
	})

	t.Run("filters by date range", func(t *testing.T) {
		repo, _ := seed(t)

		from := time.Date(2025, 7, 2, 0, 0, 0, 0, time.UTC)
		to := time.Date(2025, 7, 6, 0, 0, 0, 0, time.UTC)
		transactions, err := repo.List(ctx, adapter.TransactionFilter{FromDate: &from, ToDate: &to, Limit: 100})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(transactions) != 1 || transactions[0].Description != "Taxi" {
			t.Errorf("expected only Taxi, got %v", transactions)
		}
	})

	t.Run("filters by category", func(t *testing.T) {
		repo, food := seed(t)

		transactions, err := repo.List(ctx, adapter.TransactionFilter{CategoryID: &food.ID, Limit: 100})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(transactions) != 2 {
			t.Errorf("expected 2 food transactions, got %d", len(transactions))
		}
	})

	t.Run("filters by description substring", func(t *testing.T) {
		repo, _ := seed(t)

		transactions, err := repo.List(ctx, adapter.TransactionFilter{Query: "offee", Limit: 100})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(transactions) != 1 || transactions[0].Description != "Coffee beans" {
			t.Errorf("expected Coffee beans, got %v", transactions)
		}
	})

	t.Run("applies limit and offset", func(t *testing.T) {
		repo, _ := seed(t)

		transactions, err := repo.List(ctx, adapter.TransactionFilter{Limit: 1, Offset: 1})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(transactions) != 1 || transactions[0].Description != "Taxi" {
			t.Errorf("expected second newest Taxi, got %v", transactions)
		}
	})

	t.Run("update persists a cleared category reference", func(t *testing.T) {
		db := openTestDB(t)
		categoryRepo := NewCategoryRepository(db)
		repo := NewTransactionRepository(db)

		food := mustCreateCategory(t, categoryRepo, "Food", nil)
		txn := mustCreateTransaction(t, repo, "2025-07-01", "Groceries", "45.50", &food.ID)

		txn.CategoryID = nil
		if err := repo.Update(ctx, txn); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		found, err := repo.FindByID(ctx, txn.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if found.CategoryID != nil {
			t.Errorf("expected nil category after clear, got %v", found.CategoryID)
		}
	})

	t.Run("delete removes the transaction", func(t *testing.T) {
		db := openTestDB(t)
		repo := NewTransactionRepository(db)

		txn := mustCreateTransaction(t, repo, "2025-07-01", "Groceries", "45.50", nil)
		if err := repo.Delete(ctx, txn.ID); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := repo.FindByID(ctx, txn.ID); !errors.Is(err, domainerror.ErrTransactionNotFound) {
			t.Errorf("expected ErrTransactionNotFound, got %v", err)
		}
	})
}

func TestInsightRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("keeps categories without spend in the month aggregate", func(t *testing.T) {
		db := openTestDB(t)
		categoryRepo := NewCategoryRepository(db)
		txnRepo := NewTransactionRepository(db)
		repo := NewInsightRepository(db)

		budget := decimal.NewFromInt(100)
		food := mustCreateCategory(t, categoryRepo, "Food", &budget)
		mustCreateCategory(t, categoryRepo, "Savings", nil)
		mustCreateTransaction(t, txnRepo, "2025-07-01", "Groceries", "45.50", &food.ID)
		mustCreateTransaction(t, txnRepo, "2025-07-15", "Restaurant", "30.00", &food.ID)
		// Different month, must not count.
		mustCreateTransaction(t, txnRepo, "2025-06-20", "Groceries", "99.00", &food.ID)

		rows, err := repo.AggregateSpendByCategory(ctx, "2025-07")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(rows) != 2 {
			t.Fatalf("expected 2 rows, got %d", len(rows))
		}

		// Ordered by name: Food then Savings.
		foodRow := rows[0]
		if foodRow.CategoryName != "Food" {
			t.Fatalf("expected Food first, got %s", foodRow.CategoryName)
		}
		if !foodRow.Spent.Valid || !foodRow.Spent.Decimal.Equal(decimal.RequireFromString("75.5")) {
			t.Errorf("expected Food spend 75.5, got %v", foodRow.Spent)
		}
		if !foodRow.MonthlyBudget.Valid || !foodRow.MonthlyBudget.Decimal.Equal(budget) {
			t.Errorf("expected Food budget 100, got %v", foodRow.MonthlyBudget)
		}

		savingsRow := rows[1]
		if savingsRow.Spent.Valid {
			t.Errorf("expected null spend for Savings, got %v", savingsRow.Spent)
		}
		if savingsRow.MonthlyBudget.Valid {
			t.Errorf("expected null budget for Savings, got %v", savingsRow.MonthlyBudget)
		}
	})

	t.Run("buckets spend per month and skips empty months", func(t *testing.T) {
		db := openTestDB(t)
		txnRepo := NewTransactionRepository(db)
		repo := NewInsightRepository(db)

		mustCreateTransaction(t, txnRepo, "2025-01-10", "January spend", "100.00", nil)
		mustCreateTransaction(t, txnRepo, "2025-01-20", "More January", "50.00", nil)
		// February has no transactions.
		mustCreateTransaction(t, txnRepo, "2025-03-05", "March spend", "200.00", nil)

		from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)
		rows, err := repo.AggregateSpendByMonth(ctx, from, to)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(rows) != 2 {
			t.Fatalf("expected 2 rows, got %d", len(rows))
		}
		if rows[0].Month != "2025-01" || !rows[0].TotalSpent.Equal(decimal.NewFromInt(150)) {
			t.Errorf("unexpected first row: %+v", rows[0])
		}
		if rows[1].Month != "2025-03" || !rows[1].TotalSpent.Equal(decimal.NewFromInt(200)) {
			t.Errorf("unexpected second row: %+v", rows[1])
		}
	})

	t.Run("respects the range boundaries", func(t *testing.T) {
		db := openTestDB(t)
		txnRepo := NewTransactionRepository(db)
		repo := NewInsightRepository(db)

		mustCreateTransaction(t, txnRepo, "2025-01-10", "Inside", "100.00", nil)
		mustCreateTransaction(t, txnRepo, "2025-04-10", "Outside", "999.00", nil)

		from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)
		rows, err := repo.AggregateSpendByMonth(ctx, from, to)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(rows) != 1 || rows[0].Month != "2025-01" {
			t.Errorf("expected only January, got %v", rows)
		}
	})
}
