package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"lending-office/configs"
	"lending-office/internal/models"
	"lending-office/internal/repository"
	"lending-office/pkg/metrics"
)

// PaymentSvc is an implementation of the service.PaymentService interface
type PaymentSvc struct {
	repos  *repository.Repository
	logger *logrus.Logger
	config *configs.Config
	email  EmailService
}

// NewPaymentService creates a new PaymentSvc
func NewPaymentService(deps Dependencies, email EmailService) *PaymentSvc {
	return &PaymentSvc{
		repos:  deps.Repos,
		logger: deps.Logger,
		config: deps.Config,
		email:  email,
	}
}

// Record records a payment against a loan. The payment is allocated to the
// earliest pending installment, appended to the payment ledger and reflected
// in the loan's outstanding balance, all inside one transaction. Requests
// are not deduplicated here: submitting the same payment twice records it
// twice.
func (s *PaymentSvc) Record(ctx context.Context, loanID int, recordedBy int, req *models.PaymentRequest) (*models.Payment, error) {
	loan, err := s.repos.Loan.GetByID(ctx, loanID)
	if err != nil {
		return nil, fmt.Errorf("loan not found: %w", err)
	}

	if loan.Status == models.LoanStatusClosed {
		return nil, errors.New("loan is already closed")
	}

	pending, err := s.repos.Installment.GetPendingByLoanID(ctx, loanID)
	if err != nil {
		return nil, fmt.Errorf("failed to get pending installments: %w", err)
	}

	alloc, err := models.AllocatePayment(loan, pending, req.Amount, time.Now())
	if err != nil {
		return nil, err
	}

	payment := &models.Payment{
		PaymentNumber: models.GeneratePaymentNumber(),
		LoanID:        loanID,
		UserID:        loan.UserID,
		Amount:        req.Amount,
		Method:        req.Method,
		TransactionID: req.TransactionID,
		Type:          alloc.PaymentType,
		Remarks:       req.Remarks,
		RecordedBy:    recordedBy,
	}

	if alloc.Installment != nil {
		payment.InstallmentID = &alloc.Installment.ID
	}

	// Start a transaction
	tx, err := s.repos.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	if alloc.Installment != nil {
		if err = s.repos.Installment.UpdatePaymentTx(ctx, tx, alloc.Installment); err != nil {
			return nil, fmt.Errorf("failed to update installment: %w", err)
		}
	}

	paymentID, err := s.repos.Payment.CreateTx(ctx, tx, payment)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment: %w", err)
	}

	if err = s.repos.Loan.UpdateBalanceStatusTx(ctx, tx, loanID, alloc.NewOutstandingBalance, alloc.NewLoanStatus); err != nil {
		return nil, fmt.Errorf("failed to update loan: %w", err)
	}

	// Commit the transaction
	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	payment.ID = paymentID
	metrics.PaymentsRecorded.WithLabelValues(string(alloc.PaymentType)).Inc()

	s.logger.Infof("Payment recorded: %s for loan %d, amount: %.2f, type: %s, outstanding: %.2f",
		payment.PaymentNumber, loanID, req.Amount, alloc.PaymentType, alloc.NewOutstandingBalance)

	// Send email notifications
	go func() {
		ctx := context.Background()
		if err := s.email.SendPaymentReceived(ctx, loan.UserID, payment, loan); err != nil {
			s.logger.Warnf("Failed to send payment notification: %v", err)
		}

		if alloc.NewLoanStatus == models.LoanStatusClosed {
			if err := s.email.SendLoanClosed(ctx, loan.UserID, loan); err != nil {
				s.logger.Warnf("Failed to send loan closed notification: %v", err)
			}
		}
	}()

	return payment, nil
}

// ListByLoan gets all payments for a loan and verifies ownership for borrowers
func (s *PaymentSvc) ListByLoan(ctx context.Context, loanID int, userID int, role models.Role) ([]*models.Payment, error) {
	loan, err := s.repos.Loan.GetByID(ctx, loanID)
	if err != nil {
		return nil, fmt.Errorf("loan not found: %w", err)
	}

	if role != models.RoleAdmin && loan.UserID != userID {
		return nil, errors.New("access denied: loan belongs to another user")
	}

	payments, err := s.repos.Payment.GetByLoanID(ctx, loanID)
	if err != nil {
		return nil, fmt.Errorf("failed to get payments: %w", err)
	}

	return payments, nil
}
