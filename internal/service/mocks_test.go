package service_test

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"lending-office/configs"
	"lending-office/internal/models"
	"lending-office/internal/repository"
	"lending-office/internal/service"
)

// Func-field mocks for the repository interfaces. A nil func means the
// call is unexpected and fails the test through the returned error.

type mockUserRepo struct {
	createFunc     func(ctx context.Context, user *models.User) (int, error)
	getByIDFunc    func(ctx context.Context, id int) (*models.User, error)
	getByEmailFunc func(ctx context.Context, email string) (*models.User, error)
	updateFunc     func(ctx context.Context, user *models.User) error
}

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) (int, error) {
	if m.createFunc == nil {
		return 0, errors.New("unexpected call: UserRepository.Create")
	}
	return m.createFunc(ctx, user)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int) (*models.User, error) {
	if m.getByIDFunc == nil {
		return nil, errors.New("unexpected call: UserRepository.GetByID")
	}
	return m.getByIDFunc(ctx, id)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.getByEmailFunc == nil {
		return nil, errors.New("unexpected call: UserRepository.GetByEmail")
	}
	return m.getByEmailFunc(ctx, email)
}

func (m *mockUserRepo) Update(ctx context.Context, user *models.User) error {
	if m.updateFunc == nil {
		return errors.New("unexpected call: UserRepository.Update")
	}
	return m.updateFunc(ctx, user)
}

type mockProductRepo struct {
	createFunc  func(ctx context.Context, product *models.LoanProduct) (int, error)
	getByIDFunc func(ctx context.Context, id int) (*models.LoanProduct, error)
	getAllFunc  func(ctx context.Context, activeOnly bool) ([]*models.LoanProduct, error)
	updateFunc  func(ctx context.Context, product *models.LoanProduct) error
}

func (m *mockProductRepo) Create(ctx context.Context, product *models.LoanProduct) (int, error) {
	if m.createFunc == nil {
		return 0, errors.New("unexpected call: ProductRepository.Create")
	}
	return m.createFunc(ctx, product)
}

func (m *mockProductRepo) GetByID(ctx context.Context, id int) (*models.LoanProduct, error) {
	if m.getByIDFunc == nil {
		return nil, errors.New("unexpected call: ProductRepository.GetByID")
	}
	return m.getByIDFunc(ctx, id)
}

func (m *mockProductRepo) GetAll(ctx context.Context, activeOnly bool) ([]*models.LoanProduct, error) {
	if m.getAllFunc == nil {
		return nil, errors.New("unexpected call: ProductRepository.GetAll")
	}
	return m.getAllFunc(ctx, activeOnly)
}

func (m *mockProductRepo) Update(ctx context.Context, product *models.LoanProduct) error {
	if m.updateFunc == nil {
		return errors.New("unexpected call: ProductRepository.Update")
	}
	return m.updateFunc(ctx, product)
}

type mockApplicationRepo struct {
	createFunc         func(ctx context.Context, app *models.LoanApplication) (int, error)
	getByIDFunc        func(ctx context.Context, id int) (*models.LoanApplication, error)
	getByUserIDFunc    func(ctx context.Context, userID int) ([]*models.LoanApplication, error)
	getAllFunc         func(ctx context.Context, status models.ApplicationStatus) ([]*models.LoanApplication, error)
	updateReviewFunc   func(ctx context.Context, app *models.LoanApplication) error
	updateReviewTxFunc func(ctx context.Context, tx *sql.Tx, app *models.LoanApplication) error
}

func (m *mockApplicationRepo) Create(ctx context.Context, app *models.LoanApplication) (int, error) {
	if m.createFunc == nil {
		return 0, errors.New("unexpected call: ApplicationRepository.Create")
	}
	return m.createFunc(ctx, app)
}

func (m *mockApplicationRepo) GetByID(ctx context.Context, id int) (*models.LoanApplication, error) {
	if m.getByIDFunc == nil {
		return nil, errors.New("unexpected call: ApplicationRepository.GetByID")
	}
	return m.getByIDFunc(ctx, id)
}

func (m *mockApplicationRepo) GetByUserID(ctx context.Context, userID int) ([]*models.LoanApplication, error) {
	if m.getByUserIDFunc == nil {
		return nil, errors.New("unexpected call: ApplicationRepository.GetByUserID")
	}
	return m.getByUserIDFunc(ctx, userID)
}

func (m *mockApplicationRepo) GetAll(ctx context.Context, status models.ApplicationStatus) ([]*models.LoanApplication, error) {
	if m.getAllFunc == nil {
		return nil, errors.New("unexpected call: ApplicationRepository.GetAll")
	}
	return m.getAllFunc(ctx, status)
}

func (m *mockApplicationRepo) UpdateReview(ctx context.Context, app *models.LoanApplication) error {
	if m.updateReviewFunc == nil {
		return errors.New("unexpected call: ApplicationRepository.UpdateReview")
	}
	return m.updateReviewFunc(ctx, app)
}

func (m *mockApplicationRepo) UpdateReviewTx(ctx context.Context, tx *sql.Tx, app *models.LoanApplication) error {
	if m.updateReviewTxFunc == nil {
		return errors.New("unexpected call: ApplicationRepository.UpdateReviewTx")
	}
	return m.updateReviewTxFunc(ctx, tx, app)
}

type mockLoanRepo struct {
	getByIDFunc               func(ctx context.Context, id int) (*models.Loan, error)
	getByUserIDFunc           func(ctx context.Context, userID int) ([]*models.Loan, error)
	getAllFunc                func(ctx context.Context) ([]*models.Loan, error)
	getActiveLoansFunc        func(ctx context.Context) ([]*models.Loan, error)
	updateStatusFunc          func(ctx context.Context, id int, status models.LoanStatus) error
	createTxFunc              func(ctx context.Context, tx *sql.Tx, loan *models.Loan) (int, error)
	updateBalanceStatusTxFunc func(ctx context.Context, tx *sql.Tx, id int, balance float64, status models.LoanStatus) error
}

func (m *mockLoanRepo) GetByID(ctx context.Context, id int) (*models.Loan, error) {
	if m.getByIDFunc == nil {
		return nil, errors.New("unexpected call: LoanRepository.GetByID")
	}
	return m.getByIDFunc(ctx, id)
}

func (m *mockLoanRepo) GetByUserID(ctx context.Context, userID int) ([]*models.Loan, error) {
	if m.getByUserIDFunc == nil {
		return nil, errors.New("unexpected call: LoanRepository.GetByUserID")
	}
	return m.getByUserIDFunc(ctx, userID)
}

func (m *mockLoanRepo) GetAll(ctx context.Context) ([]*models.Loan, error) {
	if m.getAllFunc == nil {
		return nil, errors.New("unexpected call: LoanRepository.GetAll")
	}
	return m.getAllFunc(ctx)
}

func (m *mockLoanRepo) GetActiveLoans(ctx context.Context) ([]*models.Loan, error) {
	if m.getActiveLoansFunc == nil {
		return nil, errors.New("unexpected call: LoanRepository.GetActiveLoans")
	}
	return m.getActiveLoansFunc(ctx)
}

func (m *mockLoanRepo) UpdateStatus(ctx context.Context, id int, status models.LoanStatus) error {
	if m.updateStatusFunc == nil {
		return errors.New("unexpected call: LoanRepository.UpdateStatus")
	}
	return m.updateStatusFunc(ctx, id, status)
}

func (m *mockLoanRepo) CreateTx(ctx context.Context, tx *sql.Tx, loan *models.Loan) (int, error) {
	if m.createTxFunc == nil {
		return 0, errors.New("unexpected call: LoanRepository.CreateTx")
	}
	return m.createTxFunc(ctx, tx, loan)
}

func (m *mockLoanRepo) UpdateBalanceStatusTx(ctx context.Context, tx *sql.Tx, id int, balance float64, status models.LoanStatus) error {
	if m.updateBalanceStatusTxFunc == nil {
		return errors.New("unexpected call: LoanRepository.UpdateBalanceStatusTx")
	}
	return m.updateBalanceStatusTxFunc(ctx, tx, id, balance, status)
}

type mockInstallmentRepo struct {
	getByLoanIDFunc        func(ctx context.Context, loanID int) ([]*models.Installment, error)
	getPendingByLoanIDFunc func(ctx context.Context, loanID int) ([]*models.Installment, error)
	getDuePendingFunc      func(ctx context.Context, asOf time.Time) ([]*models.Installment, error)
	getOverdueFunc         func(ctx context.Context) ([]*models.Installment, error)
	updateFunc             func(ctx context.Context, installment *models.Installment) error
	createBatchTxFunc      func(ctx context.Context, tx *sql.Tx, installments []*models.Installment) error
	updatePaymentTxFunc    func(ctx context.Context, tx *sql.Tx, installment *models.Installment) error
}

func (m *mockInstallmentRepo) GetByLoanID(ctx context.Context, loanID int) ([]*models.Installment, error) {
	if m.getByLoanIDFunc == nil {
		return nil, errors.New("unexpected call: InstallmentRepository.GetByLoanID")
	}
	return m.getByLoanIDFunc(ctx, loanID)
}

func (m *mockInstallmentRepo) GetPendingByLoanID(ctx context.Context, loanID int) ([]*models.Installment, error) {
	if m.getPendingByLoanIDFunc == nil {
		return nil, errors.New("unexpected call: InstallmentRepository.GetPendingByLoanID")
	}
	return m.getPendingByLoanIDFunc(ctx, loanID)
}

func (m *mockInstallmentRepo) GetDuePending(ctx context.Context, asOf time.Time) ([]*models.Installment, error) {
	if m.getDuePendingFunc == nil {
		return nil, errors.New("unexpected call: InstallmentRepository.GetDuePending")
	}
	return m.getDuePendingFunc(ctx, asOf)
}

func (m *mockInstallmentRepo) GetOverdue(ctx context.Context) ([]*models.Installment, error) {
	if m.getOverdueFunc == nil {
		return nil, errors.New("unexpected call: InstallmentRepository.GetOverdue")
	}
	return m.getOverdueFunc(ctx)
}

func (m *mockInstallmentRepo) Update(ctx context.Context, installment *models.Installment) error {
	if m.updateFunc == nil {
		return errors.New("unexpected call: InstallmentRepository.Update")
	}
	return m.updateFunc(ctx, installment)
}

func (m *mockInstallmentRepo) CreateBatchTx(ctx context.Context, tx *sql.Tx, installments []*models.Installment) error {
	if m.createBatchTxFunc == nil {
		return errors.New("unexpected call: InstallmentRepository.CreateBatchTx")
	}
	return m.createBatchTxFunc(ctx, tx, installments)
}

func (m *mockInstallmentRepo) UpdatePaymentTx(ctx context.Context, tx *sql.Tx, installment *models.Installment) error {
	if m.updatePaymentTxFunc == nil {
		return errors.New("unexpected call: InstallmentRepository.UpdatePaymentTx")
	}
	return m.updatePaymentTxFunc(ctx, tx, installment)
}

type mockPaymentRepo struct {
	getByLoanIDFunc func(ctx context.Context, loanID int) ([]*models.Payment, error)
	createTxFunc    func(ctx context.Context, tx *sql.Tx, payment *models.Payment) (int, error)
}

func (m *mockPaymentRepo) GetByLoanID(ctx context.Context, loanID int) ([]*models.Payment, error) {
	if m.getByLoanIDFunc == nil {
		return nil, errors.New("unexpected call: PaymentRepository.GetByLoanID")
	}
	return m.getByLoanIDFunc(ctx, loanID)
}

func (m *mockPaymentRepo) CreateTx(ctx context.Context, tx *sql.Tx, payment *models.Payment) (int, error) {
	if m.createTxFunc == nil {
		return 0, errors.New("unexpected call: PaymentRepository.CreateTx")
	}
	return m.createTxFunc(ctx, tx, payment)
}

// mockEmailService swallows notifications; the services fire them from
// goroutines so the mock never records anything
type mockEmailService struct{}

func (m *mockEmailService) SendApplicationApproved(ctx context.Context, userID int, loan *models.Loan) error {
	return nil
}

func (m *mockEmailService) SendPaymentReceived(ctx context.Context, userID int, payment *models.Payment, loan *models.Loan) error {
	return nil
}

func (m *mockEmailService) SendPaymentReminder(ctx context.Context, userID int, installment *models.Installment, loan *models.Loan) error {
	return nil
}

func (m *mockEmailService) SendLoanClosed(ctx context.Context, userID int, loan *models.Loan) error {
	return nil
}

type mockRateService struct {
	getReferenceRateFunc func(ctx context.Context) (float64, error)
}

func (m *mockRateService) GetReferenceRate(ctx context.Context) (float64, error) {
	if m.getReferenceRateFunc == nil {
		return 0, errors.New("unexpected call: RateService.GetReferenceRate")
	}
	return m.getReferenceRateFunc(ctx)
}

func testDeps(repos *repository.Repository) service.Dependencies {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	return service.Dependencies{
		Repos:  repos,
		Logger: logger,
		Config: testConfig(),
	}
}

func testConfig() *configs.Config {
	return &configs.Config{
		JWT: configs.JWTConfig{
			Secret: "test_secret",
			TTL:    1,
		},
		Admin: configs.AdminConfig{
			Email: "admin@lending-office.com",
		},
		RateFeed: configs.RateFeedConfig{
			DefaultRate: 7.0,
			Spread:      5.0,
		},
	}
}
