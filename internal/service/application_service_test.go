package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lending-office/internal/models"
	"lending-office/internal/repository"
	"lending-office/internal/service"
)

func TestApplicationService_Submit(t *testing.T) {
	product := &models.LoanProduct{
		ID:              1,
		Name:            "Personal Loan",
		MinAmount:       10000,
		MaxAmount:       500000,
		MinTenureMonths: 6,
		MaxTenureMonths: 60,
		IsActive:        true,
	}

	t.Run("submits a valid application", func(t *testing.T) {
		var created *models.LoanApplication
		repos := &repository.Repository{
			Product: &mockProductRepo{
				getByIDFunc: func(ctx context.Context, id int) (*models.LoanProduct, error) {
					return product, nil
				},
			},
			Application: &mockApplicationRepo{
				createFunc: func(ctx context.Context, app *models.LoanApplication) (int, error) {
					created = app
					return 7, nil
				},
			},
		}

		svc := service.NewApplicationService(testDeps(repos), &mockEmailService{})

		req := &models.ApplicationRequest{ProductID: 1, Amount: 100000, TenureMonths: 12, Purpose: "working capital"}
		id, err := svc.Submit(context.Background(), 10, req)

		require.NoError(t, err)
		assert.Equal(t, 7, id)
		require.NotNil(t, created)
		assert.Equal(t, 10, created.UserID)
		assert.Equal(t, models.ApplicationStatusPending, created.Status)
		assert.NotEmpty(t, created.ApplicationNumber)
	})

	t.Run("rejects amount outside product limits", func(t *testing.T) {
		repos := &repository.Repository{
			Product: &mockProductRepo{
				getByIDFunc: func(ctx context.Context, id int) (*models.LoanProduct, error) {
					return product, nil
				},
			},
			Application: &mockApplicationRepo{},
		}

		svc := service.NewApplicationService(testDeps(repos), &mockEmailService{})

		req := &models.ApplicationRequest{ProductID: 1, Amount: 5000, TenureMonths: 12}
		_, err := svc.Submit(context.Background(), 10, req)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "amount must be between")
	})

	t.Run("rejects inactive product", func(t *testing.T) {
		inactive := *product
		inactive.IsActive = false

		repos := &repository.Repository{
			Product: &mockProductRepo{
				getByIDFunc: func(ctx context.Context, id int) (*models.LoanProduct, error) {
					return &inactive, nil
				},
			},
			Application: &mockApplicationRepo{},
		}

		svc := service.NewApplicationService(testDeps(repos), &mockEmailService{})

		req := &models.ApplicationRequest{ProductID: 1, Amount: 100000, TenureMonths: 12}
		_, err := svc.Submit(context.Background(), 10, req)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "not active")
	})

	t.Run("rejects missing product", func(t *testing.T) {
		repos := &repository.Repository{
			Product: &mockProductRepo{
				getByIDFunc: func(ctx context.Context, id int) (*models.LoanProduct, error) {
					return nil, errors.New("no rows")
				},
			},
			Application: &mockApplicationRepo{},
		}

		svc := service.NewApplicationService(testDeps(repos), &mockEmailService{})

		req := &models.ApplicationRequest{ProductID: 42, Amount: 100000, TenureMonths: 12}
		_, err := svc.Submit(context.Background(), 10, req)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "product not found")
	})
}

func TestApplicationService_Reject(t *testing.T) {
	t.Run("rejects a pending application", func(t *testing.T) {
		var updated *models.LoanApplication
		repos := &repository.Repository{
			Application: &mockApplicationRepo{
				getByIDFunc: func(ctx context.Context, id int) (*models.LoanApplication, error) {
					return &models.LoanApplication{ID: 5, UserID: 10, Status: models.ApplicationStatusPending}, nil
				},
				updateReviewFunc: func(ctx context.Context, app *models.LoanApplication) error {
					updated = app
					return nil
				},
			},
		}

		svc := service.NewApplicationService(testDeps(repos), &mockEmailService{})

		err := svc.Reject(context.Background(), 5, 1, "insufficient income")
		require.NoError(t, err)
		require.NotNil(t, updated)
		assert.Equal(t, models.ApplicationStatusRejected, updated.Status)
		assert.Equal(t, "insufficient income", updated.Remarks)
		require.NotNil(t, updated.ReviewedBy)
		assert.Equal(t, 1, *updated.ReviewedBy)
		assert.NotNil(t, updated.ReviewedAt)
	})

	t.Run("requires a reason", func(t *testing.T) {
		repos := &repository.Repository{
			Application: &mockApplicationRepo{},
		}

		svc := service.NewApplicationService(testDeps(repos), &mockEmailService{})

		err := svc.Reject(context.Background(), 5, 1, "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "reason for rejection is required")
	})

	t.Run("refuses to re-review", func(t *testing.T) {
		repos := &repository.Repository{
			Application: &mockApplicationRepo{
				getByIDFunc: func(ctx context.Context, id int) (*models.LoanApplication, error) {
					return &models.LoanApplication{ID: 5, Status: models.ApplicationStatusApproved}, nil
				},
			},
		}

		svc := service.NewApplicationService(testDeps(repos), &mockEmailService{})

		err := svc.Reject(context.Background(), 5, 1, "late")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already approved")
	})
}

func TestApplicationService_GetByID(t *testing.T) {
	app := &models.LoanApplication{ID: 5, UserID: 10}

	repos := &repository.Repository{
		Application: &mockApplicationRepo{
			getByIDFunc: func(ctx context.Context, id int) (*models.LoanApplication, error) {
				return app, nil
			},
		},
	}

	svc := service.NewApplicationService(testDeps(repos), &mockEmailService{})

	t.Run("owner can read", func(t *testing.T) {
		got, err := svc.GetByID(context.Background(), 5, 10, models.RoleBorrower)
		require.NoError(t, err)
		assert.Equal(t, app, got)
	})

	t.Run("other borrower is denied", func(t *testing.T) {
		_, err := svc.GetByID(context.Background(), 5, 11, models.RoleBorrower)
		require.Error(t, err)
	})
}
