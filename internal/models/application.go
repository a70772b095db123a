package models

import (
	"errors"
	"time"
)

// ApplicationStatus defines the status of a loan application
type ApplicationStatus string

const (
	ApplicationStatusPending  ApplicationStatus = "pending"
	ApplicationStatusApproved ApplicationStatus = "approved"
	ApplicationStatusRejected ApplicationStatus = "rejected"
)

// LoanApplication represents a borrower's loan application
type LoanApplication struct {
	ID                int               `json:"id" db:"id"`
	ApplicationNumber string            `json:"application_number" db:"application_number"`
	UserID            int               `json:"user_id" db:"user_id"`
	ProductID         int               `json:"product_id" db:"product_id"`
	RequestedAmount   float64           `json:"requested_amount" db:"requested_amount"`
	RequestedTenure   int               `json:"requested_tenure" db:"requested_tenure"` // in months
	Purpose           string            `json:"purpose,omitempty" db:"purpose"`
	Status            ApplicationStatus `json:"status" db:"status"`
	Remarks           string            `json:"remarks,omitempty" db:"remarks"`
	ReviewedBy        *int              `json:"reviewed_by,omitempty" db:"reviewed_by"`
	ReviewedAt        *time.Time        `json:"reviewed_at,omitempty" db:"reviewed_at"`
	CreatedAt         time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at" db:"updated_at"`
}

// ApplicationRequest represents a loan application submission
type ApplicationRequest struct {
	ProductID    int     `json:"product_id" binding:"required"`
	Amount       float64 `json:"amount" binding:"required"`
	TenureMonths int     `json:"tenure_months" binding:"required"`
	Purpose      string  `json:"purpose,omitempty"`
}

// Validate validates loan application data
func (a *ApplicationRequest) Validate() error {
	if a.ProductID <= 0 {
		return errors.New("product is required")
	}

	if a.Amount <= 0 {
		return errors.New("amount must be positive")
	}

	if a.TenureMonths < 1 {
		return errors.New("tenure must be at least 1 month")
	}

	return nil
}

// DisbursementRequest represents the approval form an admin submits
type DisbursementRequest struct {
	DisbursedAmount float64 `json:"disbursed_amount" binding:"required"`
	InterestRate    float64 `json:"interest_rate" binding:"required"`
	DisbursedDate   string  `json:"disbursed_date" binding:"required"` // YYYY-MM-DD
	Remarks         string  `json:"remarks,omitempty"`
}

// Validate validates disbursement data and parses the disbursement date
func (d *DisbursementRequest) Validate() (time.Time, error) {
	if d.DisbursedAmount <= 0 {
		return time.Time{}, errors.New("disbursed amount must be positive")
	}

	if d.InterestRate < 0 {
		return time.Time{}, errors.New("interest rate cannot be negative")
	}

	disbursedDate, err := time.Parse("2006-01-02", d.DisbursedDate)
	if err != nil {
		return time.Time{}, errors.New("disbursed date must be in YYYY-MM-DD format")
	}

	return disbursedDate, nil
}
