// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"encoding/json"
	"time"

	"github.com/ledgerone/backend/internal/domain/entity"
)

// CreateTransactionRequest represents the request body for transaction creation.
type CreateTransactionRequest struct {
	Date        string  `json:"date" binding:"required"`
	Description string  `json:"description" binding:"required,min=1,max=255"`
	Amount      float64 `json:"amount"`
	CategoryID  *string `json:"category_id,omitempty"`
}

// NullableString is a string field that distinguishes an explicit JSON
// null from an absent key. Set is true whenever the key was present in
// the payload; Value is nil when the payload carried null.
type NullableString struct {
	Set   bool
	Value *string
}

// UnmarshalJSON implements json.Unmarshaler. It only runs when the key is
// present, so Set marks presence and a null literal leaves Value nil.
func (n *NullableString) UnmarshalJSON(data []byte) error {
	n.Set = true
	if string(data) == "null" {
		return nil
	}
	return json.Unmarshal(data, &n.Value)
}

// UpdateTransactionRequest represents the request body for a partial
// transaction update. An explicit "category_id": null detaches the
// transaction from its category without assigning a new one.
type UpdateTransactionRequest struct {
	Date        *string        `json:"date,omitempty"`
	Description *string        `json:"description,omitempty" binding:"omitempty,min=1,max=255"`
	Amount      *float64       `json:"amount,omitempty"`
	CategoryID  NullableString `json:"category_id"`
}

// TransactionResponse represents a single transaction in API responses.
type TransactionResponse struct {
	ID          string    `json:"id"`
	Date        string    `json:"date"`
	Description string    `json:"description"`
	Amount      string    `json:"amount"`
	CategoryID  *string   `json:"category_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToTransactionResponse converts a domain Transaction entity to a TransactionResponse DTO.
func ToTransactionResponse(txn *entity.Transaction) TransactionResponse {
	var categoryID *string
	if txn.CategoryID != nil {
		id := txn.CategoryID.String()
		categoryID = &id
	}

	return TransactionResponse{
		ID:          txn.ID.String(),
		Date:        txn.Date.Format("2006-01-02"),
		Description: txn.Description,
		Amount:      txn.Amount.String(),
		CategoryID:  categoryID,
		CreatedAt:   txn.CreatedAt,
	}
}

// ToTransactionListResponse converts a list of transactions to response DTOs.
func ToTransactionListResponse(transactions []*entity.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(transactions))
	for i, txn := range transactions {
		responses[i] = ToTransactionResponse(txn)
	}
	return responses
}
