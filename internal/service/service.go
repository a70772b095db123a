package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"lending-office/configs"
	"lending-office/internal/models"
	"lending-office/internal/repository"
)

// UserService defines methods for user service
type UserService interface {
	Register(ctx context.Context, user *models.UserRegistration) (int, error)
	Login(ctx context.Context, login *models.UserLogin) (*models.TokenResponse, error)
	GetByID(ctx context.Context, id int) (*models.User, error)
}

// ProductService defines methods for loan product service
type ProductService interface {
	Create(ctx context.Context, product *models.LoanProduct) (int, error)
	GetByID(ctx context.Context, id int) (*models.LoanProduct, error)
	GetAll(ctx context.Context, activeOnly bool) ([]*models.LoanProduct, error)
	Update(ctx context.Context, product *models.LoanProduct) error
}

// ApplicationService defines methods for loan application service
type ApplicationService interface {
	Submit(ctx context.Context, userID int, req *models.ApplicationRequest) (int, error)
	GetByID(ctx context.Context, id int, userID int, role models.Role) (*models.LoanApplication, error)
	List(ctx context.Context, userID int, role models.Role, status models.ApplicationStatus) ([]*models.LoanApplication, error)
	Approve(ctx context.Context, applicationID int, reviewerID int, req *models.DisbursementRequest) (int, error)
	Reject(ctx context.Context, applicationID int, reviewerID int, remarks string) error
}

// LoanService defines methods for loan service
type LoanService interface {
	GetByID(ctx context.Context, id int, userID int, role models.Role) (*models.Loan, error)
	List(ctx context.Context, userID int, role models.Role) ([]*models.Loan, error)
	GetSchedule(ctx context.Context, loanID int, userID int, role models.Role) ([]*models.Installment, *models.ScheduleSummary, error)
	MarkDefaulted(ctx context.Context, loanID int) error
	ProcessOverdue(ctx context.Context) error
}

// PaymentService defines methods for payment service
type PaymentService interface {
	Record(ctx context.Context, loanID int, recordedBy int, req *models.PaymentRequest) (*models.Payment, error)
	ListByLoan(ctx context.Context, loanID int, userID int, role models.Role) ([]*models.Payment, error)
}

// RateService defines methods for the reference rate feed
type RateService interface {
	GetReferenceRate(ctx context.Context) (float64, error)
}

// EmailService defines methods for email service
type EmailService interface {
	SendApplicationApproved(ctx context.Context, userID int, loan *models.Loan) error
	SendPaymentReceived(ctx context.Context, userID int, payment *models.Payment, loan *models.Loan) error
	SendPaymentReminder(ctx context.Context, userID int, installment *models.Installment, loan *models.Loan) error
	SendLoanClosed(ctx context.Context, userID int, loan *models.Loan) error
}

// StatementService defines methods for loan statement export
type StatementService interface {
	BuildPDF(ctx context.Context, loanID int, userID int, role models.Role) ([]byte, error)
	BuildXLSX(ctx context.Context, loanID int, userID int, role models.Role) ([]byte, error)
}

// ReportService defines methods for portfolio reporting
type ReportService interface {
	PortfolioSummary(ctx context.Context) (*models.PortfolioSummary, error)
}

// Dependencies contains dependencies for services
type Dependencies struct {
	Repos  *repository.Repository
	Logger *logrus.Logger
	Config *configs.Config
}

// Service is a composition of all services
type Service struct {
	User        UserService
	Product     ProductService
	Application ApplicationService
	Loan        LoanService
	Payment     PaymentService
	Rate        RateService
	Email       EmailService
	Statement   StatementService
	Report      ReportService
}

// NewService creates a new service with all sub-services
func NewService(deps Dependencies) *Service {
	email := NewEmailService(deps)
	rate := NewRateService(deps)
	loan := NewLoanService(deps, email)

	return &Service{
		User:        NewUserService(deps),
		Product:     NewProductService(deps, rate),
		Application: NewApplicationService(deps, email),
		Loan:        loan,
		Payment:     NewPaymentService(deps, email),
		Rate:        rate,
		Email:       email,
		Statement:   NewStatementService(deps),
		Report:      NewReportService(deps),
	}
}
