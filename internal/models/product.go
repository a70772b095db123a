package models

import (
	"errors"
	"fmt"
	"time"
)

// LoanProduct represents a loan product offered by the institution
type LoanProduct struct {
	ID                int       `json:"id" db:"id"`
	Name              string    `json:"name" db:"name"`
	Description       string    `json:"description,omitempty" db:"description"`
	MinAmount         float64   `json:"min_amount" db:"min_amount"`
	MaxAmount         float64   `json:"max_amount" db:"max_amount"`
	InterestRate      float64   `json:"interest_rate" db:"interest_rate"` // annual %
	MinTenureMonths   int       `json:"min_tenure_months" db:"min_tenure_months"`
	MaxTenureMonths   int       `json:"max_tenure_months" db:"max_tenure_months"`
	ProcessingFeePct  float64   `json:"processing_fee_pct" db:"processing_fee_pct"`
	LateFeePercentage float64   `json:"late_fee_percentage" db:"late_fee_percentage"` // monthly %
	IsActive          bool      `json:"is_active" db:"is_active"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time `json:"updated_at" db:"updated_at"`
}

// Validate validates loan product data
func (p *LoanProduct) Validate() error {
	if p.Name == "" {
		return errors.New("product name is required")
	}

	if p.MinAmount <= 0 || p.MaxAmount < p.MinAmount {
		return errors.New("amount range is invalid")
	}

	if p.MinTenureMonths < 1 || p.MaxTenureMonths < p.MinTenureMonths {
		return errors.New("tenure range is invalid")
	}

	if p.MaxTenureMonths > 360 { // Max 30 years
		return errors.New("tenure cannot exceed 360 months")
	}

	if p.InterestRate < 0 {
		return errors.New("interest rate cannot be negative")
	}

	if p.LateFeePercentage < 0 {
		return errors.New("late fee percentage cannot be negative")
	}

	return nil
}

// CheckRequest validates a requested amount and tenure against the product's limits
func (p *LoanProduct) CheckRequest(amount float64, tenureMonths int) error {
	if !p.IsActive {
		return errors.New("product is not active")
	}

	if amount < p.MinAmount || amount > p.MaxAmount {
		return fmt.Errorf("amount must be between %.2f and %.2f", p.MinAmount, p.MaxAmount)
	}

	if tenureMonths < p.MinTenureMonths || tenureMonths > p.MaxTenureMonths {
		return fmt.Errorf("tenure must be between %d and %d months", p.MinTenureMonths, p.MaxTenureMonths)
	}

	return nil
}
