package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"lending-office/internal/models"
)

// ApplicationRepo is a PostgreSQL implementation of the repository.ApplicationRepository interface
type ApplicationRepo struct {
	db *sql.DB
}

// NewApplicationRepository creates a new ApplicationRepo
func NewApplicationRepository(db *sql.DB) *ApplicationRepo {
	return &ApplicationRepo{db: db}
}

const applicationColumns = `id, application_number, user_id, product_id, requested_amount,
             requested_tenure, purpose, status, remarks, reviewed_by, reviewed_at, created_at, updated_at`

// Create creates a new loan application in the database
func (r *ApplicationRepo) Create(ctx context.Context, app *models.LoanApplication) (int, error) {
	query := `INSERT INTO loan_applications (application_number, user_id, product_id, requested_amount,
             requested_tenure, purpose, status)
             VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`

	var id int
	err := r.db.QueryRowContext(
		ctx,
		query,
		app.ApplicationNumber,
		app.UserID,
		app.ProductID,
		app.RequestedAmount,
		app.RequestedTenure,
		app.Purpose,
		app.Status,
	).Scan(&id)

	if err != nil {
		return 0, fmt.Errorf("failed to create loan application: %w", err)
	}

	return id, nil
}

// GetByID gets a loan application by ID
func (r *ApplicationRepo) GetByID(ctx context.Context, id int) (*models.LoanApplication, error) {
	query := `SELECT ` + applicationColumns + ` FROM loan_applications WHERE id = $1`

	app := &models.LoanApplication{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&app.ID,
		&app.ApplicationNumber,
		&app.UserID,
		&app.ProductID,
		&app.RequestedAmount,
		&app.RequestedTenure,
		&app.Purpose,
		&app.Status,
		&app.Remarks,
		&app.ReviewedBy,
		&app.ReviewedAt,
		&app.CreatedAt,
		&app.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("loan application not found: %w", err)
		}
		return nil, fmt.Errorf("failed to get loan application: %w", err)
	}

	return app, nil
}

// GetByUserID gets all loan applications for a user
func (r *ApplicationRepo) GetByUserID(ctx context.Context, userID int) ([]*models.LoanApplication, error) {
	query := `SELECT ` + applicationColumns + ` FROM loan_applications
             WHERE user_id = $1
             ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get loan applications: %w", err)
	}
	defer rows.Close()

	return r.scanApplications(rows)
}

// GetAll gets all loan applications, optionally filtered by status
func (r *ApplicationRepo) GetAll(ctx context.Context, status models.ApplicationStatus) ([]*models.LoanApplication, error) {
	query := `SELECT ` + applicationColumns + ` FROM loan_applications`

	var rows *sql.Rows
	var err error

	if status != "" {
		query += ` WHERE status = $1 ORDER BY created_at DESC`
		rows, err = r.db.QueryContext(ctx, query, status)
	} else {
		query += ` ORDER BY created_at DESC`
		rows, err = r.db.QueryContext(ctx, query)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get loan applications: %w", err)
	}
	defer rows.Close()

	return r.scanApplications(rows)
}

// UpdateReview records a review decision on an application
func (r *ApplicationRepo) UpdateReview(ctx context.Context, app *models.LoanApplication) error {
	result, err := r.db.ExecContext(ctx, updateReviewQuery,
		app.Status, app.Remarks, app.ReviewedBy, app.ReviewedAt, app.ID)
	if err != nil {
		return fmt.Errorf("failed to update loan application: %w", err)
	}

	return checkRowsAffected(result, "loan application")
}

// UpdateReviewTx records a review decision within an existing transaction
func (r *ApplicationRepo) UpdateReviewTx(ctx context.Context, tx *sql.Tx, app *models.LoanApplication) error {
	result, err := tx.ExecContext(ctx, updateReviewQuery,
		app.Status, app.Remarks, app.ReviewedBy, app.ReviewedAt, app.ID)
	if err != nil {
		return fmt.Errorf("failed to update loan application: %w", err)
	}

	return checkRowsAffected(result, "loan application")
}

const updateReviewQuery = `UPDATE loan_applications
             SET status = $1, remarks = $2, reviewed_by = $3, reviewed_at = $4, updated_at = NOW()
             WHERE id = $5`

// Helper function to scan multiple applications
func (r *ApplicationRepo) scanApplications(rows *sql.Rows) ([]*models.LoanApplication, error) {
	var apps []*models.LoanApplication

	for rows.Next() {
		app := &models.LoanApplication{}
		err := rows.Scan(
			&app.ID,
			&app.ApplicationNumber,
			&app.UserID,
			&app.ProductID,
			&app.RequestedAmount,
			&app.RequestedTenure,
			&app.Purpose,
			&app.Status,
			&app.Remarks,
			&app.ReviewedBy,
			&app.ReviewedAt,
			&app.CreatedAt,
			&app.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan loan application: %w", err)
		}

		apps = append(apps, app)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return apps, nil
}

// checkRowsAffected verifies an update touched at least one row
func checkRowsAffected(result sql.Result, entity string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("%s not found", entity)
	}

	return nil
}
