package models

import (
	"time"
)

// LoanStatus defines the status of a loan
type LoanStatus string

const (
	LoanStatusActive    LoanStatus = "active"
	LoanStatusClosed    LoanStatus = "closed"
	LoanStatusDefaulted LoanStatus = "defaulted"
)

// Loan represents a disbursed loan
type Loan struct {
	ID                 int        `json:"id" db:"id"`
	LoanNumber         string     `json:"loan_number" db:"loan_number"`
	ApplicationID      int        `json:"application_id" db:"application_id"`
	UserID             int        `json:"user_id" db:"user_id"`
	ProductID          int        `json:"product_id" db:"product_id"`
	PrincipalAmount    float64    `json:"principal_amount" db:"principal_amount"`
	InterestRate       float64    `json:"interest_rate" db:"interest_rate"`
	TenureMonths       int        `json:"tenure_months" db:"tenure_months"`
	EMIAmount          float64    `json:"emi_amount" db:"emi_amount"`
	TotalPayable       float64    `json:"total_payable" db:"total_payable"`
	OutstandingBalance float64    `json:"outstanding_balance" db:"outstanding_balance"`
	DisbursedAmount    float64    `json:"disbursed_amount" db:"disbursed_amount"`
	DisbursedDate      time.Time  `json:"disbursed_date" db:"disbursed_date"`
	Status             LoanStatus `json:"status" db:"status"`
	CreatedAt          time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at" db:"updated_at"`
}
