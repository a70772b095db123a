package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"lending-office/internal/models"
)

// LoanRepo is a PostgreSQL implementation of the repository.LoanRepository interface
type LoanRepo struct {
	db *sql.DB
}

// NewLoanRepository creates a new LoanRepo
func NewLoanRepository(db *sql.DB) *LoanRepo {
	return &LoanRepo{db: db}
}

const loanColumns = `id, loan_number, application_id, user_id, product_id, principal_amount,
             interest_rate, tenure_months, emi_amount, total_payable, outstanding_balance,
             disbursed_amount, disbursed_date, status, created_at, updated_at`

// CreateTx creates a new loan within an existing transaction
func (r *LoanRepo) CreateTx(ctx context.Context, tx *sql.Tx, loan *models.Loan) (int, error) {
	query := `INSERT INTO loans (loan_number, application_id, user_id, product_id, principal_amount,
             interest_rate, tenure_months, emi_amount, total_payable, outstanding_balance,
             disbursed_amount, disbursed_date, status)
             VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13) RETURNING id`

	var id int
	err := tx.QueryRowContext(
		ctx,
		query,
		loan.LoanNumber,
		loan.ApplicationID,
		loan.UserID,
		loan.ProductID,
		loan.PrincipalAmount,
		loan.InterestRate,
		loan.TenureMonths,
		loan.EMIAmount,
		loan.TotalPayable,
		loan.OutstandingBalance,
		loan.DisbursedAmount,
		loan.DisbursedDate,
		loan.Status,
	).Scan(&id)

	if err != nil {
		return 0, fmt.Errorf("failed to create loan: %w", err)
	}

	return id, nil
}

// GetByID gets a loan by ID
func (r *LoanRepo) GetByID(ctx context.Context, id int) (*models.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE id = $1`

	loan := &models.Loan{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&loan.ID,
		&loan.LoanNumber,
		&loan.ApplicationID,
		&loan.UserID,
		&loan.ProductID,
		&loan.PrincipalAmount,
		&loan.InterestRate,
		&loan.TenureMonths,
		&loan.EMIAmount,
		&loan.TotalPayable,
		&loan.OutstandingBalance,
		&loan.DisbursedAmount,
		&loan.DisbursedDate,
		&loan.Status,
		&loan.CreatedAt,
		&loan.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("loan not found: %w", err)
		}
		return nil, fmt.Errorf("failed to get loan: %w", err)
	}

	return loan, nil
}

// GetByUserID gets all loans for a user
func (r *LoanRepo) GetByUserID(ctx context.Context, userID int) ([]*models.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans
             WHERE user_id = $1
             ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get loans: %w", err)
	}
	defer rows.Close()

	return r.scanLoans(rows)
}

// GetAll gets all loans
func (r *LoanRepo) GetAll(ctx context.Context) ([]*models.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get loans: %w", err)
	}
	defer rows.Close()

	return r.scanLoans(rows)
}

// GetActiveLoans gets all active loans for batch processing
func (r *LoanRepo) GetActiveLoans(ctx context.Context) ([]*models.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans
             WHERE status = $1
             ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, query, models.LoanStatusActive)
	if err != nil {
		return nil, fmt.Errorf("failed to get active loans: %w", err)
	}
	defer rows.Close()

	return r.scanLoans(rows)
}

// UpdateStatus sets a loan's status
func (r *LoanRepo) UpdateStatus(ctx context.Context, id int, status models.LoanStatus) error {
	query := `UPDATE loans SET status = $1, updated_at = NOW() WHERE id = $2`

	result, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("failed to update loan status: %w", err)
	}

	return checkRowsAffected(result, "loan")
}

// UpdateBalanceStatusTx sets a loan's outstanding balance and status within
// an existing transaction
func (r *LoanRepo) UpdateBalanceStatusTx(ctx context.Context, tx *sql.Tx, id int, balance float64, status models.LoanStatus) error {
	query := `UPDATE loans SET outstanding_balance = $1, status = $2, updated_at = NOW() WHERE id = $3`

	result, err := tx.ExecContext(ctx, query, balance, status, id)
	if err != nil {
		return fmt.Errorf("failed to update loan balance: %w", err)
	}

	return checkRowsAffected(result, "loan")
}

// Helper function to scan multiple loans
func (r *LoanRepo) scanLoans(rows *sql.Rows) ([]*models.Loan, error) {
	var loans []*models.Loan

	for rows.Next() {
		loan := &models.Loan{}
		err := rows.Scan(
			&loan.ID,
			&loan.LoanNumber,
			&loan.ApplicationID,
			&loan.UserID,
			&loan.ProductID,
			&loan.PrincipalAmount,
			&loan.InterestRate,
			&loan.TenureMonths,
			&loan.EMIAmount,
			&loan.TotalPayable,
			&loan.OutstandingBalance,
			&loan.DisbursedAmount,
			&loan.DisbursedDate,
			&loan.Status,
			&loan.CreatedAt,
			&loan.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan loan: %w", err)
		}

		loans = append(loans, loan)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return loans, nil
}
