package service

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"lending-office/configs"
	"lending-office/internal/models"
	"lending-office/internal/repository"
	"lending-office/pkg/money"
)

// ReportSvc is an implementation of the service.ReportService interface
type ReportSvc struct {
	repos  *repository.Repository
	logger *logrus.Logger
	config *configs.Config
}

// NewReportService creates a new ReportSvc
func NewReportService(deps Dependencies) *ReportSvc {
	return &ReportSvc{
		repos:  deps.Repos,
		logger: deps.Logger,
		config: deps.Config,
	}
}

// PortfolioSummary aggregates portfolio-level statistics for the admin dashboard
func (s *ReportSvc) PortfolioSummary(ctx context.Context) (*models.PortfolioSummary, error) {
	loans, err := s.repos.Loan.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get loans: %w", err)
	}

	summary := &models.PortfolioSummary{}

	for _, loan := range loans {
		switch loan.Status {
		case models.LoanStatusActive:
			summary.ActiveLoans++
		case models.LoanStatusClosed:
			summary.ClosedLoans++
		case models.LoanStatusDefaulted:
			summary.DefaultedLoans++
		}

		summary.TotalDisbursed += loan.DisbursedAmount
		summary.TotalOutstanding += loan.OutstandingBalance

		payments, err := s.repos.Payment.GetByLoanID(ctx, loan.ID)
		if err != nil {
			s.logger.Warnf("Failed to get payments for loan %d: %v", loan.ID, err)
			continue
		}

		for _, payment := range payments {
			summary.TotalCollected += payment.Amount
		}
	}

	overdue, err := s.repos.Installment.GetOverdue(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get overdue installments: %w", err)
	}

	for _, inst := range overdue {
		summary.OverdueExposure += inst.EMIAmount - inst.PaidAmount + inst.LateFee
	}

	pending, err := s.repos.Application.GetAll(ctx, models.ApplicationStatusPending)
	if err != nil {
		return nil, fmt.Errorf("failed to get pending applications: %w", err)
	}
	summary.PendingApplication = len(pending)

	summary.TotalDisbursed = money.Round2(summary.TotalDisbursed)
	summary.TotalOutstanding = money.Round2(summary.TotalOutstanding)
	summary.TotalCollected = money.Round2(summary.TotalCollected)
	summary.OverdueExposure = money.Round2(summary.OverdueExposure)

	s.logger.Infof("Generated portfolio summary: %d active, %d closed, %d defaulted loans",
		summary.ActiveLoans, summary.ClosedLoans, summary.DefaultedLoans)

	return summary, nil
}
