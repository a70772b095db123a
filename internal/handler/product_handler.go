package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"lending-office/configs"
	"lending-office/internal/models"
	"lending-office/internal/service"
	"lending-office/pkg/utils"
)

// ProductHandler handles loan product HTTP requests
type ProductHandler struct {
	productService service.ProductService
	logger         *logrus.Logger
	config         *configs.Config
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService service.ProductService, logger *logrus.Logger, config *configs.Config) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		logger:         logger,
		config:         config,
	}
}

// Create handles loan product creation (admin only)
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	_, role, ok := identityFromContext(r)
	if !ok {
		utils.RespondWithError(w, http.StatusInternalServerError, "user identity not found in context")
		return
	}

	if !requireAdmin(w, role) {
		return
	}

	// Parse request body
	var product models.LoanProduct
	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(&product); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	defer r.Body.Close()

	// Create the product
	productID, err := h.productService.Create(r.Context(), &product)
	if err != nil {
		h.logger.Warnf("Failed to create loan product: %v", err)
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	// Return success response
	utils.RespondWithSuccess(w, http.StatusCreated, "loan product created successfully", map[string]interface{}{
		"product_id": productID,
	})
}

// GetAll handles retrieving loan products. Borrowers see active products
// only, admins see everything
func (h *ProductHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	_, role, ok := identityFromContext(r)
	if !ok {
		utils.RespondWithError(w, http.StatusInternalServerError, "user identity not found in context")
		return
	}

	activeOnly := role != models.RoleAdmin

	products, err := h.productService.GetAll(r.Context(), activeOnly)
	if err != nil {
		h.logger.Warnf("Failed to get loan products: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to get loan products")
		return
	}

	// Return success response
	utils.RespondWithSuccess(w, http.StatusOK, "loan products retrieved successfully", products)
}

// GetByID handles retrieving a specific loan product by ID
func (h *ProductHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	// Get product ID from URL parameters
	vars := mux.Vars(r)
	productID, err := strconv.Atoi(vars["id"])
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid product ID")
		return
	}

	// Get the product
	product, err := h.productService.GetByID(r.Context(), productID)
	if err != nil {
		h.logger.Warnf("Failed to get loan product: %v", err)
		utils.RespondWithError(w, http.StatusNotFound, "loan product not found")
		return
	}

	// Return success response
	utils.RespondWithSuccess(w, http.StatusOK, "loan product retrieved successfully", product)
}

// Update handles loan product updates (admin only)
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	_, role, ok := identityFromContext(r)
	if !ok {
		utils.RespondWithError(w, http.StatusInternalServerError, "user identity not found in context")
		return
	}

	if !requireAdmin(w, role) {
		return
	}

	// Get product ID from URL parameters
	vars := mux.Vars(r)
	productID, err := strconv.Atoi(vars["id"])
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid product ID")
		return
	}

	// Parse request body
	var product models.LoanProduct
	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(&product); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	defer r.Body.Close()

	product.ID = productID

	// Update the product
	if err := h.productService.Update(r.Context(), &product); err != nil {
		h.logger.Warnf("Failed to update loan product: %v", err)
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	// Return success response
	utils.RespondWithSuccess(w, http.StatusOK, "loan product updated successfully", nil)
}
