package models

import (
	"errors"
	"math"
	"time"

	"lending-office/pkg/money"
)

// ComputeEMI calculates the equated monthly installment for an annuity loan
// using the reducing balance method. Invalid principal or tenure yields 0,
// which callers must treat as "insufficient input" rather than a valid EMI.
// A non-positive rate means an interest-free loan repaid straight-line.
func ComputeEMI(principal float64, annualRatePercent float64, tenureMonths int) float64 {
	if principal <= 0 || tenureMonths <= 0 {
		return 0
	}

	if annualRatePercent <= 0 {
		return money.Round2(principal / float64(tenureMonths))
	}

	monthlyRate := annualRatePercent / 12 / 100
	factor := math.Pow(1+monthlyRate, float64(tenureMonths))
	emi := principal * monthlyRate * factor / (factor - 1)

	return money.Round2(emi)
}

// ComputeTotalPayable calculates the total amount repayable over the life of
// the loan, derived from the rounded EMI.
func ComputeTotalPayable(principal float64, annualRatePercent float64, tenureMonths int) float64 {
	emi := ComputeEMI(principal, annualRatePercent, tenureMonths)
	return money.Round2(emi * float64(tenureMonths))
}

// GenerateSchedule produces the full repayment schedule for a loan. Each
// installment carries the interest due on the running balance and the
// principal component that the fixed EMI covers. Due dates advance one
// calendar month per installment from the start date; AddDate's native
// month-rollover is accepted.
//
// Because the EMI is rounded independently of the balance recursion, the
// final balance may be off by a few minor units. That drift is a known
// property of the schedule and is not trued up against the last installment.
func GenerateSchedule(principal float64, annualRatePercent float64, tenureMonths int, emi float64, startDate time.Time) []*Installment {
	monthlyRate := annualRatePercent / 12 / 100
	balance := principal

	schedule := make([]*Installment, 0, tenureMonths)

	for i := 1; i <= tenureMonths; i++ {
		interestAmount := money.Round2(balance * monthlyRate)
		principalAmount := money.Round2(emi - interestAmount)
		balance = money.Round2(balance - principalAmount)

		schedule = append(schedule, &Installment{
			InstallmentNumber: i,
			DueDate:           startDate.AddDate(0, i, 0),
			EMIAmount:         emi,
			PrincipalAmount:   principalAmount,
			InterestAmount:    interestAmount,
			PaidAmount:        0,
			LateFee:           0,
			Status:            InstallmentStatusPending,
		})
	}

	return schedule
}

// Allocation is the outcome of applying a payment against a loan
type Allocation struct {
	Installment           *Installment // mutated target, nil for advance payments
	PaymentType           PaymentType
	NewOutstandingBalance float64
	NewLoanStatus         LoanStatus
}

// ErrInvalidPaymentAmount is returned when a payment amount is not positive
var ErrInvalidPaymentAmount = errors.New("valid payment amount is required")

// AllocatePayment applies a payment against the earliest pending installment
// of a loan and derives the loan's new outstanding balance and status.
//
// A payment covering the full EMI settles the installment; any remainder
// only reduces the aggregate balance, it does not cascade into the next
// installment. A payment below the EMI leaves the installment pending with
// its paid amount overwritten, not accumulated. With no pending installment
// the whole payment is recorded as an advance.
//
// The function mutates the targeted installment in place and is not
// idempotent: applying the same payment twice reduces the balance twice.
func AllocatePayment(loan *Loan, pending []*Installment, amount float64, now time.Time) (*Allocation, error) {
	if amount <= 0 {
		return nil, ErrInvalidPaymentAmount
	}

	alloc := &Allocation{
		PaymentType:           PaymentTypeAdvance,
		NewOutstandingBalance: money.Round2(math.Max(0, loan.OutstandingBalance-amount)),
		NewLoanStatus:         loan.Status,
	}

	if alloc.NewOutstandingBalance <= 0 {
		alloc.NewLoanStatus = LoanStatusClosed
	}

	target := earliestPending(pending)
	if target == nil {
		return alloc, nil
	}

	alloc.Installment = target

	if amount >= target.EMIAmount {
		target.Status = InstallmentStatusPaid
		target.PaidAmount = target.EMIAmount
		target.PaidDate = &now

		if amount-target.EMIAmount > 0 {
			alloc.PaymentType = PaymentTypePartial
		} else {
			alloc.PaymentType = PaymentTypeEMI
		}
	} else {
		target.PaidAmount = amount
		alloc.PaymentType = PaymentTypeEMI
	}

	return alloc, nil
}

// earliestPending selects the pending installment with the earliest due
// date, breaking ties by the lowest installment number.
func earliestPending(installments []*Installment) *Installment {
	var target *Installment

	for _, inst := range installments {
		if inst.Status != InstallmentStatusPending {
			continue
		}
		if target == nil ||
			inst.DueDate.Before(target.DueDate) ||
			(inst.DueDate.Equal(target.DueDate) && inst.InstallmentNumber < target.InstallmentNumber) {
			target = inst
		}
	}

	return target
}

// CalculateLateFee calculates the daily late fee accrued on an overdue
// installment. The product's late fee percentage is a monthly rate spread
// over a 30-day month.
func CalculateLateFee(emiAmount float64, lateFeePercentage float64, daysOverdue int) float64 {
	if daysOverdue <= 0 {
		return 0
	}

	monthlyLateFee := emiAmount * lateFeePercentage / 100
	return money.Round2(monthlyLateFee / 30 * float64(daysOverdue))
}
