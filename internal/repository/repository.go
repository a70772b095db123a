package repository

import (
	"context"
	"database/sql"
	"time"

	"lending-office/internal/models"
	"lending-office/internal/repository/postgres"
)

// UserRepository defines methods for user repository
type UserRepository interface {
	Create(ctx context.Context, user *models.User) (int, error)
	GetByID(ctx context.Context, id int) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
}

// ProductRepository defines methods for loan product repository
type ProductRepository interface {
	Create(ctx context.Context, product *models.LoanProduct) (int, error)
	GetByID(ctx context.Context, id int) (*models.LoanProduct, error)
	GetAll(ctx context.Context, activeOnly bool) ([]*models.LoanProduct, error)
	Update(ctx context.Context, product *models.LoanProduct) error
}

// ApplicationRepository defines methods for loan application repository
type ApplicationRepository interface {
	Create(ctx context.Context, app *models.LoanApplication) (int, error)
	GetByID(ctx context.Context, id int) (*models.LoanApplication, error)
	GetByUserID(ctx context.Context, userID int) ([]*models.LoanApplication, error)
	GetAll(ctx context.Context, status models.ApplicationStatus) ([]*models.LoanApplication, error)
	UpdateReview(ctx context.Context, app *models.LoanApplication) error

	// Transaction-specific methods
	UpdateReviewTx(ctx context.Context, tx *sql.Tx, app *models.LoanApplication) error
}

// LoanRepository defines methods for loan repository
type LoanRepository interface {
	GetByID(ctx context.Context, id int) (*models.Loan, error)
	GetByUserID(ctx context.Context, userID int) ([]*models.Loan, error)
	GetAll(ctx context.Context) ([]*models.Loan, error)
	GetActiveLoans(ctx context.Context) ([]*models.Loan, error)
	UpdateStatus(ctx context.Context, id int, status models.LoanStatus) error

	// Transaction-specific methods
	CreateTx(ctx context.Context, tx *sql.Tx, loan *models.Loan) (int, error)
	UpdateBalanceStatusTx(ctx context.Context, tx *sql.Tx, id int, balance float64, status models.LoanStatus) error
}

// InstallmentRepository defines methods for repayment schedule repository
type InstallmentRepository interface {
	GetByLoanID(ctx context.Context, loanID int) ([]*models.Installment, error)
	GetPendingByLoanID(ctx context.Context, loanID int) ([]*models.Installment, error)
	GetDuePending(ctx context.Context, asOf time.Time) ([]*models.Installment, error)
	GetOverdue(ctx context.Context) ([]*models.Installment, error)
	Update(ctx context.Context, installment *models.Installment) error

	// Transaction-specific methods
	CreateBatchTx(ctx context.Context, tx *sql.Tx, installments []*models.Installment) error
	UpdatePaymentTx(ctx context.Context, tx *sql.Tx, installment *models.Installment) error
}

// PaymentRepository defines methods for payment ledger repository
type PaymentRepository interface {
	GetByLoanID(ctx context.Context, loanID int) ([]*models.Payment, error)

	// Transaction-specific methods
	CreateTx(ctx context.Context, tx *sql.Tx, payment *models.Payment) (int, error)
}

// Repository is a composition of all repositories
type Repository struct {
	DB          *sql.DB
	User        UserRepository
	Product     ProductRepository
	Application ApplicationRepository
	Loan        LoanRepository
	Installment InstallmentRepository
	Payment     PaymentRepository
}

// NewRepository creates a new repository with all sub-repositories
func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		DB:          db,
		User:        postgres.NewUserRepository(db),
		Product:     postgres.NewProductRepository(db),
		Application: postgres.NewApplicationRepository(db),
		Loan:        postgres.NewLoanRepository(db),
		Installment: postgres.NewInstallmentRepository(db),
		Payment:     postgres.NewPaymentRepository(db),
	}
}

// BeginTx begins a new transaction
func (r *Repository) BeginTx(ctx context.Context) (*sql.Tx, error) {
	return r.DB.BeginTx(ctx, nil)
}
