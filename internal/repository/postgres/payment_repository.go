package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"lending-office/internal/models"
)

// PaymentRepo is a PostgreSQL implementation of the repository.PaymentRepository interface
type PaymentRepo struct {
	db *sql.DB
}

// NewPaymentRepository creates a new PaymentRepo
func NewPaymentRepository(db *sql.DB) *PaymentRepo {
	return &PaymentRepo{db: db}
}

// CreateTx appends a payment to the ledger within an existing transaction.
// Payments are immutable once created; there is no update method.
func (r *PaymentRepo) CreateTx(ctx context.Context, tx *sql.Tx, payment *models.Payment) (int, error) {
	query := `INSERT INTO payments (payment_number, loan_id, installment_id, user_id, amount,
             method, transaction_id, payment_type, remarks, recorded_by)
             VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`

	var id int
	err := tx.QueryRowContext(
		ctx,
		query,
		payment.PaymentNumber,
		payment.LoanID,
		payment.InstallmentID,
		payment.UserID,
		payment.Amount,
		payment.Method,
		payment.TransactionID,
		payment.Type,
		payment.Remarks,
		payment.RecordedBy,
	).Scan(&id)

	if err != nil {
		return 0, fmt.Errorf("failed to create payment: %w", err)
	}

	return id, nil
}

// GetByLoanID gets all payments for a loan, newest first
func (r *PaymentRepo) GetByLoanID(ctx context.Context, loanID int) ([]*models.Payment, error) {
	query := `SELECT id, payment_number, loan_id, installment_id, user_id, amount,
             method, transaction_id, payment_type, remarks, recorded_by, created_at
             FROM payments
             WHERE loan_id = $1
             ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, loanID)
	if err != nil {
		return nil, fmt.Errorf("failed to get payments: %w", err)
	}
	defer rows.Close()

	var payments []*models.Payment

	for rows.Next() {
		payment := &models.Payment{}
		err := rows.Scan(
			&payment.ID,
			&payment.PaymentNumber,
			&payment.LoanID,
			&payment.InstallmentID,
			&payment.UserID,
			&payment.Amount,
			&payment.Method,
			&payment.TransactionID,
			&payment.Type,
			&payment.Remarks,
			&payment.RecordedBy,
			&payment.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}

		payments = append(payments, payment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return payments, nil
}
