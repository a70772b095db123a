package models

import (
	"time"
)

// PaymentType defines how a payment was allocated
type PaymentType string

const (
	// PaymentTypeEMI is a payment applied against a single installment,
	// fully or partially
	PaymentTypeEMI PaymentType = "emi"
	// PaymentTypePartial is a payment that settled an installment with a
	// remainder left over
	PaymentTypePartial PaymentType = "partial"
	// PaymentTypeAdvance is a payment recorded with no pending installment
	// to target
	PaymentTypeAdvance PaymentType = "advance"
)

// Payment represents an immutable payment ledger entry
type Payment struct {
	ID            int         `json:"id" db:"id"`
	PaymentNumber string      `json:"payment_number" db:"payment_number"`
	LoanID        int         `json:"loan_id" db:"loan_id"`
	InstallmentID *int        `json:"installment_id,omitempty" db:"installment_id"`
	UserID        int         `json:"user_id" db:"user_id"`
	Amount        float64     `json:"amount" db:"amount"`
	Method        string      `json:"method,omitempty" db:"method"`
	TransactionID string      `json:"transaction_id,omitempty" db:"transaction_id"`
	Type          PaymentType `json:"payment_type" db:"payment_type"`
	Remarks       string      `json:"remarks,omitempty" db:"remarks"`
	RecordedBy    int         `json:"recorded_by" db:"recorded_by"`
	CreatedAt     time.Time   `json:"created_at" db:"created_at"`
}

// PaymentRequest represents a payment submission against a loan
type PaymentRequest struct {
	Amount        float64 `json:"amount" binding:"required"`
	Method        string  `json:"method,omitempty"`
	TransactionID string  `json:"transaction_id,omitempty"`
	Remarks       string  `json:"remarks,omitempty"`
}
