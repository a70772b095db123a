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

// ApplicationSvc is an implementation of the service.ApplicationService interface
type ApplicationSvc struct {
	repos  *repository.Repository
	logger *logrus.Logger
	config *configs.Config
	email  EmailService
}

// NewApplicationService creates a new ApplicationSvc
func NewApplicationService(deps Dependencies, email EmailService) *ApplicationSvc {
	return &ApplicationSvc{
		repos:  deps.Repos,
		logger: deps.Logger,
		config: deps.Config,
		email:  email,
	}
}

// Submit submits a new loan application for a borrower
func (s *ApplicationSvc) Submit(ctx context.Context, userID int, req *models.ApplicationRequest) (int, error) {
	if err := req.Validate(); err != nil {
		return 0, fmt.Errorf("invalid application: %w", err)
	}

	// Check the requested terms against the product's limits
	product, err := s.repos.Product.GetByID(ctx, req.ProductID)
	if err != nil {
		return 0, fmt.Errorf("product not found: %w", err)
	}

	if err := product.CheckRequest(req.Amount, req.TenureMonths); err != nil {
		return 0, fmt.Errorf("invalid application: %w", err)
	}

	app := &models.LoanApplication{
		ApplicationNumber: models.GenerateApplicationNumber(),
		UserID:            userID,
		ProductID:         req.ProductID,
		RequestedAmount:   req.Amount,
		RequestedTenure:   req.TenureMonths,
		Purpose:           req.Purpose,
		Status:            models.ApplicationStatusPending,
	}

	id, err := s.repos.Application.Create(ctx, app)
	if err != nil {
		return 0, fmt.Errorf("failed to create application: %w", err)
	}

	s.logger.Infof("Application submitted: %d (%s) by user %d for %.2f over %d months",
		id, app.ApplicationNumber, userID, req.Amount, req.TenureMonths)

	return id, nil
}

// GetByID gets an application by ID and verifies ownership for borrowers
func (s *ApplicationSvc) GetByID(ctx context.Context, id int, userID int, role models.Role) (*models.LoanApplication, error) {
	app, err := s.repos.Application.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get application: %w", err)
	}

	if role != models.RoleAdmin && app.UserID != userID {
		return nil, errors.New("access denied: application belongs to another user")
	}

	return app, nil
}

// List gets applications: all of them for admins, the caller's own otherwise
func (s *ApplicationSvc) List(ctx context.Context, userID int, role models.Role, status models.ApplicationStatus) ([]*models.LoanApplication, error) {
	if role == models.RoleAdmin {
		return s.repos.Application.GetAll(ctx, status)
	}

	return s.repos.Application.GetByUserID(ctx, userID)
}

// Approve approves a pending application and disburses the loan: the EMI and
// total payable are computed, the loan record is created and the full
// repayment schedule is generated and persisted. Application update, loan
// insert and schedule batch commit as one transaction; a failure in any step
// rolls everything back.
func (s *ApplicationSvc) Approve(ctx context.Context, applicationID int, reviewerID int, req *models.DisbursementRequest) (int, error) {
	disbursedDate, err := req.Validate()
	if err != nil {
		return 0, fmt.Errorf("invalid disbursement: %w", err)
	}

	app, err := s.repos.Application.GetByID(ctx, applicationID)
	if err != nil {
		return 0, fmt.Errorf("application not found: %w", err)
	}

	if app.Status != models.ApplicationStatusPending {
		return 0, fmt.Errorf("application is already %s", app.Status)
	}

	emi := models.ComputeEMI(req.DisbursedAmount, req.InterestRate, app.RequestedTenure)
	if emi == 0 {
		return 0, errors.New("cannot compute EMI from the given terms")
	}

	totalPayable := models.ComputeTotalPayable(req.DisbursedAmount, req.InterestRate, app.RequestedTenure)

	now := time.Now()
	app.Status = models.ApplicationStatusApproved
	app.Remarks = req.Remarks
	app.ReviewedBy = &reviewerID
	app.ReviewedAt = &now

	loan := &models.Loan{
		LoanNumber:         models.GenerateLoanNumber(),
		ApplicationID:      app.ID,
		UserID:             app.UserID,
		ProductID:          app.ProductID,
		PrincipalAmount:    req.DisbursedAmount,
		InterestRate:       req.InterestRate,
		TenureMonths:       app.RequestedTenure,
		EMIAmount:          emi,
		TotalPayable:       totalPayable,
		OutstandingBalance: totalPayable,
		DisbursedAmount:    req.DisbursedAmount,
		DisbursedDate:      disbursedDate,
		Status:             models.LoanStatusActive,
	}

	// Start a transaction
	tx, err := s.repos.BeginTx(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	if err = s.repos.Application.UpdateReviewTx(ctx, tx, app); err != nil {
		return 0, fmt.Errorf("failed to update application: %w", err)
	}

	loanID, err := s.repos.Loan.CreateTx(ctx, tx, loan)
	if err != nil {
		return 0, fmt.Errorf("failed to create loan: %w", err)
	}

	// Generate and persist the repayment schedule
	loan.ID = loanID
	schedule := models.GenerateSchedule(req.DisbursedAmount, req.InterestRate, app.RequestedTenure, emi, disbursedDate)
	for _, inst := range schedule {
		inst.LoanID = loanID
	}

	if err = s.repos.Installment.CreateBatchTx(ctx, tx, schedule); err != nil {
		return 0, fmt.Errorf("failed to create repayment schedule: %w", err)
	}

	// Commit the transaction
	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	metrics.LoansDisbursed.Inc()

	s.logger.Infof("Loan disbursed: %d (%s) for application %d, amount: %.2f, EMI: %.2f, tenure: %d months",
		loanID, loan.LoanNumber, applicationID, req.DisbursedAmount, emi, app.RequestedTenure)

	// Send email notification
	go func() {
		ctx := context.Background()
		if err := s.email.SendApplicationApproved(ctx, app.UserID, loan); err != nil {
			s.logger.Warnf("Failed to send approval notification: %v", err)
		}
	}()

	return loanID, nil
}

// Reject rejects a pending application with a mandatory reason
func (s *ApplicationSvc) Reject(ctx context.Context, applicationID int, reviewerID int, remarks string) error {
	if remarks == "" {
		return errors.New("reason for rejection is required")
	}

	app, err := s.repos.Application.GetByID(ctx, applicationID)
	if err != nil {
		return fmt.Errorf("application not found: %w", err)
	}

	if app.Status != models.ApplicationStatusPending {
		return fmt.Errorf("application is already %s", app.Status)
	}

	now := time.Now()
	app.Status = models.ApplicationStatusRejected
	app.Remarks = remarks
	app.ReviewedBy = &reviewerID
	app.ReviewedAt = &now

	if err := s.repos.Application.UpdateReview(ctx, app); err != nil {
		return fmt.Errorf("failed to update application: %w", err)
	}

	s.logger.Infof("Application rejected: %d by reviewer %d", applicationID, reviewerID)

	return nil
}
