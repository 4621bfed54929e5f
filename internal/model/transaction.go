package model

import (
	"fmt"
	"time"

	"github.com/AlexZinkM/scf-launchpad/internal/common"
)

// Transaction represents a Horizon transaction record
type Transaction struct {
	Hash           string    `json:"hash"`
	Ledger         int64     `json:"ledger"`
	SourceAccount  string    `json:"sourceAccount"`
	FeeCharged     string    `json:"feeCharged"` // XLM
	OperationCount int       `json:"operationCount"`
	Memo           string    `json:"memo,omitempty"`
	Successful     bool      `json:"successful"`
	CreatedAt      time.Time `json:"createdAt"`
}

// TransactionsResponse represents response for GET /account/transactions
type TransactionsResponse struct {
	Address      string        `json:"address"`
	Network      string        `json:"network"`
	TotalFeesXLM string        `json:"totalFeesXLM"`
	Transactions []Transaction `json:"transactions"`
}

// TransactionFilter represents request parameters for GET /account/transactions
type TransactionFilter struct {
	Hash       *string    `form:"hash"`
	From       *time.Time `form:"from"`
	To         *time.Time `form:"to"`
	MinFee     *string    `form:"minFee"`
	MaxFee     *string    `form:"maxFee"`
	Successful *bool      `form:"successful"`
	Limit      int        `form:"limit"`
}

// MaxTransactionLimit caps the page size requested from Horizon.
const MaxTransactionLimit = 200

// Validate validates TransactionFilter parameters.
func (r *TransactionFilter) Validate() error {
	if r.Limit < 0 || r.Limit > MaxTransactionLimit {
		return fmt.Errorf("limit must be between 0 and %d", MaxTransactionLimit)
	}
	if r.From != nil && r.To != nil && r.To.Before(*r.From) {
		return fmt.Errorf("to date must be after or equal to from date")
	}
	if r.MinFee != nil && r.MaxFee != nil {
		cmp, err := common.CompareAmounts(*r.MinFee, *r.MaxFee)
		if err != nil {
			return fmt.Errorf("invalid fee: %w", err)
		}
		if cmp == 1 {
			return fmt.Errorf("minFee must be less than or equal to maxFee")
		}
	}
	return nil
}

// SubmitRequest represents request for POST /transactions/submit
type SubmitRequest struct {
	SignedXDR string `json:"signedXdr"`
}

// SubmitResponse represents response for POST /transactions/submit
type SubmitResponse struct {
	Hash       string `json:"hash"`
	Ledger     int64  `json:"ledger"`
	Successful bool   `json:"successful"`
}
