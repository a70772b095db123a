package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"lending-office/internal/models"
)

// ProductRepo is a PostgreSQL implementation of the repository.ProductRepository interface
type ProductRepo struct {
	db *sql.DB
}

// NewProductRepository creates a new ProductRepo
func NewProductRepository(db *sql.DB) *ProductRepo {
	return &ProductRepo{db: db}
}

// Create creates a new loan product in the database
func (r *ProductRepo) Create(ctx context.Context, product *models.LoanProduct) (int, error) {
	query := `INSERT INTO loan_products (name, description, min_amount, max_amount, interest_rate,
             min_tenure_months, max_tenure_months, processing_fee_pct, late_fee_percentage, is_active)
             VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`

	var id int
	err := r.db.QueryRowContext(
		ctx,
		query,
		product.Name,
		product.Description,
		product.MinAmount,
		product.MaxAmount,
		product.InterestRate,
		product.MinTenureMonths,
		product.MaxTenureMonths,
		product.ProcessingFeePct,
		product.LateFeePercentage,
		product.IsActive,
	).Scan(&id)

	if err != nil {
		return 0, fmt.Errorf("failed to create loan product: %w", err)
	}

	return id, nil
}

// GetByID gets a loan product by ID
func (r *ProductRepo) GetByID(ctx context.Context, id int) (*models.LoanProduct, error) {
	query := `SELECT id, name, description, min_amount, max_amount, interest_rate,
             min_tenure_months, max_tenure_months, processing_fee_pct, late_fee_percentage,
             is_active, created_at, updated_at
             FROM loan_products WHERE id = $1`

	product := &models.LoanProduct{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&product.ID,
		&product.Name,
		&product.Description,
		&product.MinAmount,
		&product.MaxAmount,
		&product.InterestRate,
		&product.MinTenureMonths,
		&product.MaxTenureMonths,
		&product.ProcessingFeePct,
		&product.LateFeePercentage,
		&product.IsActive,
		&product.CreatedAt,
		&product.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("loan product not found: %w", err)
		}
		return nil, fmt.Errorf("failed to get loan product: %w", err)
	}

	return product, nil
}

// GetAll gets all loan products, optionally only the active ones
func (r *ProductRepo) GetAll(ctx context.Context, activeOnly bool) ([]*models.LoanProduct, error) {
	query := `SELECT id, name, description, min_amount, max_amount, interest_rate,
             min_tenure_months, max_tenure_months, processing_fee_pct, late_fee_percentage,
             is_active, created_at, updated_at
             FROM loan_products`

	if activeOnly {
		query += ` WHERE is_active = true`
	}

	query += ` ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get loan products: %w", err)
	}
	defer rows.Close()

	var products []*models.LoanProduct

	for rows.Next() {
		product := &models.LoanProduct{}
		err := rows.Scan(
			&product.ID,
			&product.Name,
			&product.Description,
			&product.MinAmount,
			&product.MaxAmount,
			&product.InterestRate,
			&product.MinTenureMonths,
			&product.MaxTenureMonths,
			&product.ProcessingFeePct,
			&product.LateFeePercentage,
			&product.IsActive,
			&product.CreatedAt,
			&product.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan loan product: %w", err)
		}

		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return products, nil
}

// Update updates a loan product
func (r *ProductRepo) Update(ctx context.Context, product *models.LoanProduct) error {
	query := `UPDATE loan_products
             SET name = $1, description = $2, min_amount = $3, max_amount = $4, interest_rate = $5,
                 min_tenure_months = $6, max_tenure_months = $7, processing_fee_pct = $8,
                 late_fee_percentage = $9, is_active = $10, updated_at = NOW()
             WHERE id = $11`

	result, err := r.db.ExecContext(
		ctx,
		query,
		product.Name,
		product.Description,
		product.MinAmount,
		product.MaxAmount,
		product.InterestRate,
		product.MinTenureMonths,
		product.MaxTenureMonths,
		product.ProcessingFeePct,
		product.LateFeePercentage,
		product.IsActive,
		product.ID,
	)

	if err != nil {
		return fmt.Errorf("failed to update loan product: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("loan product not found")
	}

	return nil
}
