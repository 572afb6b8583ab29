// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ledgerone/backend/internal/application/adapter"
	"github.com/ledgerone/backend/internal/domain/entity"
	domainerror "github.com/ledgerone/backend/internal/domain/error"
)

// fakeTransactionRepo is an in-memory TransactionRepository for use case tests.
type fakeTransactionRepo struct {
	transactions map[uuid.UUID]*entity.Transaction
	lastFilter   adapter.TransactionFilter
}

func newFakeTransactionRepo() *fakeTransactionRepo {
	return &fakeTransactionRepo{transactions: make(map[uuid.UUID]*entity.Transaction)}
}

func (r *fakeTransactionRepo) Create(_ context.Context, txn *entity.Transaction) error {
	r.transactions[txn.ID] = txn
	return nil
}

func (r *fakeTransactionRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Transaction, error) {
	txn, ok := r.transactions[id]
	if !ok {
		return nil, domainerror.ErrTransactionNotFound
	}
	return txn, nil
}

func (r *fakeTransactionRepo) List(_ context.Context, filter adapter.TransactionFilter) ([]*entity.Transaction, error) {
	r.lastFilter = filter
	all := make([]*entity.Transaction, 0, len(r.transactions))
	for _, txn := range r.transactions {
		all = append(all, txn)
	}
	return all, nil
}

func (r *fakeTransactionRepo) Update(_ context.Context, txn *entity.Transaction) error {
	r.transactions[txn.ID] = txn
	return nil
}

func (r *fakeTransactionRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.transactions[id]; !ok {
		return domainerror.ErrTransactionNotFound
	}
	delete(r.transactions, id)
	return nil
}

// fakeCategoryLookup implements only the category existence checks the
// transaction use cases need.
type fakeCategoryLookup struct {
	known map[uuid.UUID]*entity.Category
}

func newFakeCategoryLookup(categories ...*entity.Category) *fakeCategoryLookup {
	known := make(map[uuid.UUID]*entity.Category, len(categories))
	for _, category := range categories {
		known[category.ID] = category
	}
	return &fakeCategoryLookup{known: known}
}

func (r *fakeCategoryLookup) Create(_ context.Context, category *entity.Category) error {
	r.known[category.ID] = category
	return nil
}

func (r *fakeCategoryLookup) FindByID(_ context.Context, id uuid.UUID) (*entity.Category, error) {
	category, ok := r.known[id]
	if !ok {
		return nil, domainerror.ErrCategoryNotFound
	}
	return category, nil
}

func (r *fakeCategoryLookup) FindByName(_ context.Context, name string) (*entity.Category, error) {
	for _, category := range r.known {
		if category.Name == name {
			return category, nil
		}
	}
	return nil, nil
}

func (r *fakeCategoryLookup) FindAll(_ context.Context) ([]*entity.Category, error) {
	all := make([]*entity.Category, 0, len(r.known))
	for _, category := range r.known {
		all = append(all, category)
	}
	return all, nil
}

func (r *fakeCategoryLookup) ExistsByName(ctx context.Context, name string) (bool, error) {
	category, err := r.FindByName(ctx, name)
	return category != nil, err
}

func (r *fakeCategoryLookup) Update(_ context.Context, category *entity.Category) error {
	r.known[category.ID] = category
	return nil
}

func (r *fakeCategoryLookup) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.known, id)
	return nil
}

func transactionErrorCode(t *testing.T, err error) domainerror.TransactionErrorCode {
	t.Helper()
	var txnErr *domainerror.TransactionError
	if !errors.As(err, &txnErr) {
		t.Fatalf("expected TransactionError, got %v", err)
	}
	return txnErr.Code
}

func TestCreateTransactionUseCase(t *testing.T) {
	ctx := context.Background()
	date := time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC)

	t.Run("creates transaction without category", func(t *testing.T) {
		repo := newFakeTransactionRepo()
		uc := NewCreateTransactionUseCase(repo, newFakeCategoryLookup(), nil)

		output, err := uc.Execute(ctx, CreateTransactionInput{
			Date:        date,
			Description: "Lunch",
			Amount:      decimal.NewFromFloat(12.50),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.Transaction.CategoryID != nil {
			t.Error("expected nil category reference")
		}
		if len(repo.transactions) != 1 {
			t.Errorf("expected 1 stored transaction, got %d", len(repo.transactions))
		}
	})

	t.Run("normalizes date to UTC midnight", func(t *testing.T) {
		uc := NewCreateTransactionUseCase(newFakeTransactionRepo(), newFakeCategoryLookup(), nil)

		output, err := uc.Execute(ctx, CreateTransactionInput{
			Date:        time.Date(2025, 7, 15, 18, 42, 3, 0, time.UTC),
			Description: "Dinner",
			Amount:      decimal.NewFromInt(30),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC)
		if !output.Transaction.Date.Equal(want) {
			t.Errorf("expected date %v, got %v", want, output.Transaction.Date)
		}
	})

	t.Run("accepts zero amount", func(t *testing.T) {
		uc := NewCreateTransactionUseCase(newFakeTransactionRepo(), newFakeCategoryLookup(), nil)

		_, err := uc.Execute(ctx, CreateTransactionInput{
			Date:        date,
			Description: "Free sample",
			Amount:      decimal.Zero,
		})
		if err != nil {
			t.Errorf("expected zero amount to be accepted, got %v", err)
		}
	})

	t.Run("rejects empty description", func(t *testing.T) {
		uc := NewCreateTransactionUseCase(newFakeTransactionRepo(), newFakeCategoryLookup(), nil)

		_, err := uc.Execute(ctx, CreateTransactionInput{Date: date, Amount: decimal.NewFromInt(5)})
		if code := transactionErrorCode(t, err); code != domainerror.ErrCodeEmptyDescription {
			t.Errorf("expected code %s, got %s", domainerror.ErrCodeEmptyDescription, code)
		}
	})

	t.Run("rejects unknown category reference", func(t *testing.T) {
		uc := NewCreateTransactionUseCase(newFakeTransactionRepo(), newFakeCategoryLookup(), nil)

		unknown := uuid.New()
		_, err := uc.Execute(ctx, CreateTransactionInput{
			Date:        date,
			Description: "Groceries",
			Amount:      decimal.NewFromInt(40),
			CategoryID:  &unknown,
		})
		if code := transactionErrorCode(t, err); code != domainerror.ErrCodeTxnCategoryNotFound {
			t.Errorf("expected code %s, got %s", domainerror.ErrCodeTxnCategoryNotFound, code)
		}
	})

	t.Run("accepts known category reference", func(t *testing.T) {
		category := entity.NewCategory("Food", "", nil)
		uc := NewCreateTransactionUseCase(newFakeTransactionRepo(), newFakeCategoryLookup(category), nil)

		output, err := uc.Execute(ctx, CreateTransactionInput{
			Date:        date,
			Description: "Groceries",
			Amount:      decimal.NewFromInt(40),
			CategoryID:  &category.ID,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.Transaction.CategoryID == nil || *output.Transaction.CategoryID != category.ID {
			t.Errorf("expected category %s, got %v", category.ID, output.Transaction.CategoryID)
		}
	})
}

func TestListTransactionsUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("applies default limit", func(t *testing.T) {
		repo := newFakeTransactionRepo()
		uc := NewListTransactionsUseCase(repo)

		if _, err := uc.Execute(ctx, ListTransactionsInput{}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if repo.lastFilter.Limit != DefaultListLimit {
			t.Errorf("expected default limit %d, got %d", DefaultListLimit, repo.lastFilter.Limit)
		}
		if repo.lastFilter.Offset != 0 {
			t.Errorf("expected offset 0, got %d", repo.lastFilter.Offset)
		}
	})

	t.Run("clamps negative offset", func(t *testing.T) {
		repo := newFakeTransactionRepo()
		uc := NewListTransactionsUseCase(repo)

		if _, err := uc.Execute(ctx, ListTransactionsInput{Offset: -5}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if repo.lastFilter.Offset != 0 {
			t.Errorf("expected offset 0, got %d", repo.lastFilter.Offset)
		}
	})

	t.Run("passes filters through", func(t *testing.T) {
		repo := newFakeTransactionRepo()
		uc := NewListTransactionsUseCase(repo)

		from := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
		categoryID := uuid.New()
		if _, err := uc.Execute(ctx, ListTransactionsInput{
			FromDate:   &from,
			CategoryID: &categoryID,
			Query:      "coffee",
			Limit:      10,
			Offset:     20,
		}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		filter := repo.lastFilter
		if filter.FromDate == nil || !filter.FromDate.Equal(from) {
			t.Errorf("expected from date %v, got %v", from, filter.FromDate)
		}
		if filter.CategoryID == nil || *filter.CategoryID != categoryID {
			t.Errorf("expected category %s, got %v", categoryID, filter.CategoryID)
		}
		if filter.Query != "coffee" || filter.Limit != 10 || filter.Offset != 20 {
			t.Errorf("unexpected filter %+v", filter)
		}
	})
}

func TestUpdateTransactionUseCase(t *testing.T) {
	ctx := context.Background()

	seed := func(t *testing.T, repo *fakeTransactionRepo, categoryID *uuid.UUID) *entity.Transaction {
		t.Helper()
		txn := entity.NewTransaction(
			time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC),
			"Groceries",
			decimal.NewFromInt(40),
			categoryID,
		)
		if err := repo.Create(ctx, txn); err != nil {
			t.Fatalf("seed failed: %v", err)
		}
		return txn
	}

	t.Run("updates only provided fields", func(t *testing.T) {
		repo := newFakeTransactionRepo()
		txn := seed(t, repo, nil)
		uc := NewUpdateTransactionUseCase(repo, newFakeCategoryLookup(), nil)

		amount := decimal.NewFromInt(55)
		output, err := uc.Execute(ctx, UpdateTransactionInput{
			TransactionID: txn.ID,
			Amount:        &amount,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !output.Transaction.Amount.Equal(amount) {
			t.Errorf("expected amount 55, got %s", output.Transaction.Amount)
		}
		if output.Transaction.Description != "Groceries" {
			t.Errorf("expected description untouched, got %s", output.Transaction.Description)
		}
	})

	t.Run("clears category reference", func(t *testing.T) {
		category := entity.NewCategory("Food", "", nil)
		repo := newFakeTransactionRepo()
		txn := seed(t, repo, &category.ID)
		uc := NewUpdateTransactionUseCase(repo, newFakeCategoryLookup(category), nil)

		output, err := uc.Execute(ctx, UpdateTransactionInput{
			TransactionID: txn.ID,
			ClearCategory: true,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.Transaction.CategoryID != nil {
			t.Errorf("expected nil category, got %v", output.Transaction.CategoryID)
		}
	})

	t.Run("rejects reassignment to unknown category", func(t *testing.T) {
		repo := newFakeTransactionRepo()
		txn := seed(t, repo, nil)
		uc := NewUpdateTransactionUseCase(repo, newFakeCategoryLookup(), nil)

		unknown := uuid.New()
		_, err := uc.Execute(ctx, UpdateTransactionInput{
			TransactionID: txn.ID,
			CategoryID:    &unknown,
		})
		if code := transactionErrorCode(t, err); code != domainerror.ErrCodeTxnCategoryNotFound {
			t.Errorf("expected code %s, got %s", domainerror.ErrCodeTxnCategoryNotFound, code)
		}
	})

	t.Run("returns not found for unknown id", func(t *testing.T) {
		uc := NewUpdateTransactionUseCase(newFakeTransactionRepo(), newFakeCategoryLookup(), nil)

		_, err := uc.Execute(ctx, UpdateTransactionInput{TransactionID: uuid.New()})
		if code := transactionErrorCode(t, err); code != domainerror.ErrCodeTransactionNotFound {
			t.Errorf("expected code %s, got %s", domainerror.ErrCodeTransactionNotFound, code)
		}
	})
}

func TestDeleteTransactionUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes existing transaction", func(t *testing.T) {
		repo := newFakeTransactionRepo()
		txn := entity.NewTransaction(
			time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC),
			"Groceries",
			decimal.NewFromInt(40),
			nil,
		)
		if err := repo.Create(ctx, txn); err != nil {
			t.Fatalf("seed failed: %v", err)
		}

		uc := NewDeleteTransactionUseCase(repo, nil)
		if _, err := uc.Execute(ctx, DeleteTransactionInput{TransactionID: txn.ID}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(repo.transactions) != 0 {
			t.Errorf("expected empty store, got %d entries", len(repo.transactions))
		}
	})

	t.Run("returns not found for unknown id", func(t *testing.T) {
		uc := NewDeleteTransactionUseCase(newFakeTransactionRepo(), nil)

		_, err := uc.Execute(ctx, DeleteTransactionInput{TransactionID: uuid.New()})
		if code := transactionErrorCode(t, err); code != domainerror.ErrCodeTransactionNotFound {
			t.Errorf("expected code %s, got %s", domainerror.ErrCodeTransactionNotFound, code)
		}
	})
}
