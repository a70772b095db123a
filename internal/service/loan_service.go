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

// LoanSvc is an implementation of the service.LoanService interface
type LoanSvc struct {
	repos  *repository.Repository
	logger *logrus.Logger
	config *configs.Config
	email  EmailService
}

// NewLoanService creates a new LoanSvc
func NewLoanService(deps Dependencies, email EmailService) *LoanSvc {
	return &LoanSvc{
		repos:  deps.Repos,
		logger: deps.Logger,
		config: deps.Config,
		email:  email,
	}
}

// GetByID gets a loan by ID and verifies ownership for borrowers
func (s *LoanSvc) GetByID(ctx context.Context, id int, userID int, role models.Role) (*models.Loan, error) {
	loan, err := s.repos.Loan.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get loan: %w", err)
	}

	if role != models.RoleAdmin && loan.UserID != userID {
		return nil, errors.New("access denied: loan belongs to another user")
	}

	return loan, nil
}

// List gets loans: all of them for admins, the caller's own otherwise
func (s *LoanSvc) List(ctx context.Context, userID int, role models.Role) ([]*models.Loan, error) {
	if role == models.RoleAdmin {
		return s.repos.Loan.GetAll(ctx)
	}

	return s.repos.Loan.GetByUserID(ctx, userID)
}

// GetSchedule gets the repayment schedule for a loan with summary statistics
func (s *LoanSvc) GetSchedule(ctx context.Context, loanID int, userID int, role models.Role) ([]*models.Installment, *models.ScheduleSummary, error) {
	// Verify loan ownership
	if _, err := s.GetByID(ctx, loanID, userID, role); err != nil {
		return nil, nil, err
	}

	installments, err := s.repos.Installment.GetByLoanID(ctx, loanID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get repayment schedule: %w", err)
	}

	summary := models.CalculateScheduleSummary(installments)

	return installments, summary, nil
}

// MarkDefaulted moves an active loan to the defaulted state. Only the back
// office does this; the payment path never produces a defaulted loan.
func (s *LoanSvc) MarkDefaulted(ctx context.Context, loanID int) error {
	loan, err := s.repos.Loan.GetByID(ctx, loanID)
	if err != nil {
		return fmt.Errorf("loan not found: %w", err)
	}

	if loan.Status != models.LoanStatusActive {
		return fmt.Errorf("only active loans can be defaulted, loan is %s", loan.Status)
	}

	if err := s.repos.Loan.UpdateStatus(ctx, loanID, models.LoanStatusDefaulted); err != nil {
		return fmt.Errorf("failed to update loan status: %w", err)
	}

	s.logger.Warnf("Loan defaulted: %d (%s)", loanID, loan.LoanNumber)

	return nil
}

// ProcessOverdue marks past-due pending installments as overdue and stamps
// the accrued late fee. The payment allocator never performs this
// transition; it runs here on the scheduler's clock.
func (s *LoanSvc) ProcessOverdue(ctx context.Context) error {
	now := time.Now()
	s.logger.Infof("Processing overdue installments for date: %s", now.Format("2006-01-02"))

	due, err := s.repos.Installment.GetDuePending(ctx, now)
	if err != nil {
		return fmt.Errorf("failed to get due installments: %w", err)
	}

	s.logger.Infof("Found %d past-due installments", len(due))

	for _, inst := range due {
		loan, err := s.repos.Loan.GetByID(ctx, inst.LoanID)
		if err != nil {
			s.logger.Warnf("Failed to get loan %d for installment %d: %v", inst.LoanID, inst.ID, err)
			continue
		}

		if loan.Status != models.LoanStatusActive {
			continue
		}

		product, err := s.repos.Product.GetByID(ctx, loan.ProductID)
		if err != nil {
			s.logger.Warnf("Failed to get product %d for loan %d: %v", loan.ProductID, loan.ID, err)
			continue
		}

		daysOverdue := int(now.Sub(inst.DueDate).Hours() / 24)

		inst.Status = models.InstallmentStatusOverdue
		inst.LateFee = models.CalculateLateFee(inst.EMIAmount, product.LateFeePercentage, daysOverdue)

		if err := s.repos.Installment.Update(ctx, inst); err != nil {
			s.logger.Warnf("Failed to mark installment %d overdue: %v", inst.ID, err)
			continue
		}

		metrics.InstallmentsOverdue.Inc()

		s.logger.Infof("Installment %d of loan %d marked overdue (%d days, late fee %.2f)",
			inst.InstallmentNumber, loan.ID, daysOverdue, inst.LateFee)

		// Send reminder email
		go func(userID int, inst *models.Installment, loan *models.Loan) {
			ctx := context.Background()
			if err := s.email.SendPaymentReminder(ctx, userID, inst, loan); err != nil {
				s.logger.Warnf("Failed to send payment reminder: %v", err)
			}
		}(loan.UserID, inst, loan)
	}

	return nil
}
