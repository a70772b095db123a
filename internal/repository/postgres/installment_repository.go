package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"lending-office/internal/models"
)

// InstallmentRepo is a PostgreSQL implementation of the repository.InstallmentRepository interface
type InstallmentRepo struct {
	db *sql.DB
}

// NewInstallmentRepository creates a new InstallmentRepo
func NewInstallmentRepository(db *sql.DB) *InstallmentRepo {
	return &InstallmentRepo{db: db}
}

const installmentColumns = `id, loan_id, installment_number, due_date, emi_amount, principal_amount,
             interest_amount, paid_amount, late_fee, status, paid_date, created_at, updated_at`

// CreateBatchTx inserts a full repayment schedule within an existing
// transaction, so the schedule commits or rolls back together with the loan.
func (r *InstallmentRepo) CreateBatchTx(ctx context.Context, tx *sql.Tx, installments []*models.Installment) error {
	if len(installments) == 0 {
		return nil
	}

	valueStrings := make([]string, 0, len(installments))
	valueArgs := make([]interface{}, 0, len(installments)*9)

	for i, inst := range installments {
		valueStrings = append(valueStrings, fmt.Sprintf("($%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d)",
			i*9+1, i*9+2, i*9+3, i*9+4, i*9+5, i*9+6, i*9+7, i*9+8, i*9+9))

		valueArgs = append(valueArgs,
			inst.LoanID,
			inst.InstallmentNumber,
			inst.DueDate,
			inst.EMIAmount,
			inst.PrincipalAmount,
			inst.InterestAmount,
			inst.PaidAmount,
			inst.LateFee,
			inst.Status,
		)
	}

	stmt := fmt.Sprintf(`INSERT INTO repayment_schedules
                       (loan_id, installment_number, due_date, emi_amount, principal_amount,
                        interest_amount, paid_amount, late_fee, status)
                       VALUES %s`, strings.Join(valueStrings, ","))

	if _, err := tx.ExecContext(ctx, stmt, valueArgs...); err != nil {
		return fmt.Errorf("failed to insert repayment schedule: %w", err)
	}

	return nil
}

// GetByLoanID gets the full repayment schedule for a loan in installment order
func (r *InstallmentRepo) GetByLoanID(ctx context.Context, loanID int) ([]*models.Installment, error) {
	query := `SELECT ` + installmentColumns + ` FROM repayment_schedules
             WHERE loan_id = $1
             ORDER BY installment_number`

	rows, err := r.db.QueryContext(ctx, query, loanID)
	if err != nil {
		return nil, fmt.Errorf("failed to get repayment schedule: %w", err)
	}
	defer rows.Close()

	return r.scanInstallments(rows)
}

// GetPendingByLoanID gets the pending installments for a loan ordered by due date
func (r *InstallmentRepo) GetPendingByLoanID(ctx context.Context, loanID int) ([]*models.Installment, error) {
	query := `SELECT ` + installmentColumns + ` FROM repayment_schedules
             WHERE loan_id = $1 AND status = $2
             ORDER BY due_date, installment_number`

	rows, err := r.db.QueryContext(ctx, query, loanID, models.InstallmentStatusPending)
	if err != nil {
		return nil, fmt.Errorf("failed to get pending installments: %w", err)
	}
	defer rows.Close()

	return r.scanInstallments(rows)
}

// GetDuePending gets pending installments across all loans whose due date
// has passed, for the overdue-marking batch
func (r *InstallmentRepo) GetDuePending(ctx context.Context, asOf time.Time) ([]*models.Installment, error) {
	query := `SELECT ` + installmentColumns + ` FROM repayment_schedules
             WHERE status = $1 AND due_date < $2
             ORDER BY due_date`

	rows, err := r.db.QueryContext(ctx, query, models.InstallmentStatusPending, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to get due installments: %w", err)
	}
	defer rows.Close()

	return r.scanInstallments(rows)
}

// GetOverdue gets all installments currently marked overdue across all loans
func (r *InstallmentRepo) GetOverdue(ctx context.Context) ([]*models.Installment, error) {
	query := `SELECT ` + installmentColumns + ` FROM repayment_schedules
             WHERE status = $1
             ORDER BY due_date`

	rows, err := r.db.QueryContext(ctx, query, models.InstallmentStatusOverdue)
	if err != nil {
		return nil, fmt.Errorf("failed to get overdue installments: %w", err)
	}
	defer rows.Close()

	return r.scanInstallments(rows)
}

// Update updates an installment's payment state
func (r *InstallmentRepo) Update(ctx context.Context, installment *models.Installment) error {
	result, err := r.db.ExecContext(ctx, updateInstallmentQuery,
		installment.Status, installment.PaidAmount, installment.LateFee, installment.PaidDate, installment.ID)
	if err != nil {
		return fmt.Errorf("failed to update installment: %w", err)
	}

	return checkRowsAffected(result, "installment")
}

// UpdatePaymentTx updates an installment's payment state within an existing transaction
func (r *InstallmentRepo) UpdatePaymentTx(ctx context.Context, tx *sql.Tx, installment *models.Installment) error {
	result, err := tx.ExecContext(ctx, updateInstallmentQuery,
		installment.Status, installment.PaidAmount, installment.LateFee, installment.PaidDate, installment.ID)
	if err != nil {
		return fmt.Errorf("failed to update installment: %w", err)
	}

	return checkRowsAffected(result, "installment")
}

const updateInstallmentQuery = `UPDATE repayment_schedules
             SET status = $1, paid_amount = $2, late_fee = $3, paid_date = $4, updated_at = NOW()
             WHERE id = $5`

// Helper function to scan multiple installments
func (r *InstallmentRepo) scanInstallments(rows *sql.Rows) ([]*models.Installment, error) {
	var installments []*models.Installment

	for rows.Next() {
		inst := &models.Installment{}
		err := rows.Scan(
			&inst.ID,
			&inst.LoanID,
			&inst.InstallmentNumber,
			&inst.DueDate,
			&inst.EMIAmount,
			&inst.PrincipalAmount,
			&inst.InterestAmount,
			&inst.PaidAmount,
			&inst.LateFee,
			&inst.Status,
			&inst.PaidDate,
			&inst.CreatedAt,
			&inst.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan installment: %w", err)
		}

		installments = append(installments, inst)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return installments, nil
}
