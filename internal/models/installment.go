package models

import (
	"time"
)

// InstallmentStatus defines the status of an installment
type InstallmentStatus string

const (
	InstallmentStatusPending InstallmentStatus = "pending"
	InstallmentStatusPaid    InstallmentStatus = "paid"
	InstallmentStatusOverdue InstallmentStatus = "overdue"
)

// Installment represents one row of a loan's repayment schedule
type Installment struct {
	ID                int               `json:"id" db:"id"`
	LoanID            int               `json:"loan_id" db:"loan_id"`
	InstallmentNumber int               `json:"installment_number" db:"installment_number"`
	DueDate           time.Time         `json:"due_date" db:"due_date"`
	EMIAmount         float64           `json:"emi_amount" db:"emi_amount"`
	PrincipalAmount   float64           `json:"principal_amount" db:"principal_amount"`
	InterestAmount    float64           `json:"interest_amount" db:"interest_amount"`
	PaidAmount        float64           `json:"paid_amount" db:"paid_amount"`
	LateFee           float64           `json:"late_fee" db:"late_fee"`
	Status            InstallmentStatus `json:"status" db:"status"`
	PaidDate          *time.Time        `json:"paid_date,omitempty" db:"paid_date"`
	CreatedAt         time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at" db:"updated_at"`
}

// ScheduleSummary represents summary statistics for a repayment schedule
type ScheduleSummary struct {
	TotalInstallments   int     `json:"total_installments"`
	TotalPrincipal      float64 `json:"total_principal"`
	TotalInterest       float64 `json:"total_interest"`
	TotalAmount         float64 `json:"total_amount"`
	PendingInstallments int     `json:"pending_installments"`
	PendingAmount       float64 `json:"pending_amount"`
	PaidInstallments    int     `json:"paid_installments"`
	PaidAmount          float64 `json:"paid_amount"`
	OverdueInstallments int     `json:"overdue_installments"`
	OverdueAmount       float64 `json:"overdue_amount"`
	TotalLateFees       float64 `json:"total_late_fees"`
}

// CalculateScheduleSummary calculates summary statistics for a repayment schedule
func CalculateScheduleSummary(installments []*Installment) *ScheduleSummary {
	summary := &ScheduleSummary{}

	summary.TotalInstallments = len(installments)

	for _, inst := range installments {
		summary.TotalPrincipal += inst.PrincipalAmount
		summary.TotalInterest += inst.InterestAmount
		summary.TotalAmount += inst.EMIAmount
		summary.TotalLateFees += inst.LateFee

		switch inst.Status {
		case InstallmentStatusPaid:
			summary.PaidInstallments++
			summary.PaidAmount += inst.PaidAmount
		case InstallmentStatusPending:
			summary.PendingInstallments++
			summary.PendingAmount += inst.EMIAmount
		case InstallmentStatusOverdue:
			summary.OverdueInstallments++
			summary.OverdueAmount += inst.EMIAmount
		}
	}

	return summary
}
