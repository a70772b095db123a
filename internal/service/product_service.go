package service

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"lending-office/configs"
	"lending-office/internal/models"
	"lending-office/internal/repository"
)

// ProductSvc is an implementation of the service.ProductService interface
type ProductSvc struct {
	repos  *repository.Repository
	logger *logrus.Logger
	config *configs.Config
	rate   RateService
}

// NewProductService creates a new ProductSvc
func NewProductService(deps Dependencies, rate RateService) *ProductSvc {
	return &ProductSvc{
		repos:  deps.Repos,
		logger: deps.Logger,
		config: deps.Config,
		rate:   rate,
	}
}

// Create creates a new loan product. When no interest rate is given, the
// product is priced off the central bank reference rate plus the configured
// spread.
func (s *ProductSvc) Create(ctx context.Context, product *models.LoanProduct) (int, error) {
	if product.InterestRate == 0 {
		baseRate, err := s.rate.GetReferenceRate(ctx)
		if err != nil {
			s.logger.Warnf("Failed to get reference rate: %v. Using default rate of %.1f%%.", err, s.config.RateFeed.DefaultRate)
			baseRate = s.config.RateFeed.DefaultRate
		}

		product.InterestRate = baseRate + s.config.RateFeed.Spread
	}

	if err := product.Validate(); err != nil {
		return 0, fmt.Errorf("invalid loan product: %w", err)
	}

	id, err := s.repos.Product.Create(ctx, product)
	if err != nil {
		return 0, fmt.Errorf("failed to create loan product: %w", err)
	}

	s.logger.Infof("Loan product created: %d (%s, rate %.2f%%)", id, product.Name, product.InterestRate)

	return id, nil
}

// GetByID gets a loan product by ID
func (s *ProductSvc) GetByID(ctx context.Context, id int) (*models.LoanProduct, error) {
	product, err := s.repos.Product.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get loan product: %w", err)
	}

	return product, nil
}

// GetAll gets all loan products
func (s *ProductSvc) GetAll(ctx context.Context, activeOnly bool) ([]*models.LoanProduct, error) {
	products, err := s.repos.Product.GetAll(ctx, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to get loan products: %w", err)
	}

	return products, nil
}

// Update updates a loan product
func (s *ProductSvc) Update(ctx context.Context, product *models.LoanProduct) error {
	if err := product.Validate(); err != nil {
		return fmt.Errorf("invalid loan product: %w", err)
	}

	if err := s.repos.Product.Update(ctx, product); err != nil {
		return fmt.Errorf("failed to update loan product: %w", err)
	}

	s.logger.Infof("Loan product updated: %d", product.ID)

	return nil
}
