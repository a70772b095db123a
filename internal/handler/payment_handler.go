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

// PaymentHandler handles payment HTTP requests
type PaymentHandler struct {
	paymentService service.PaymentService
	logger         *logrus.Logger
	config         *configs.Config
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(paymentService service.PaymentService, logger *logrus.Logger, config *configs.Config) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
		logger:         logger,
		config:         config,
	}
}

// Record handles recording a payment against a loan (admin only)
func (h *PaymentHandler) Record(w http.ResponseWriter, r *http.Request) {
	userID, role, ok := identityFromContext(r)
	if !ok {
		utils.RespondWithError(w, http.StatusInternalServerError, "user identity not found in context")
		return
	}

	if !requireAdmin(w, role) {
		return
	}

	// Get loan ID from URL parameters
	vars := mux.Vars(r)
	loanID, err := strconv.Atoi(vars["id"])
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid loan ID")
		return
	}

	// Parse request body
	var paymentRequest models.PaymentRequest
	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(&paymentRequest); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	defer r.Body.Close()

	// Record the payment
	payment, err := h.paymentService.Record(r.Context(), loanID, userID, &paymentRequest)
	if err != nil {
		h.logger.Warnf("Failed to record payment: %v", err)
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	// Return success response
	utils.RespondWithSuccess(w, http.StatusCreated, "payment recorded successfully", payment)
}

// GetAll handles listing the payment ledger for a loan
func (h *PaymentHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	userID, role, ok := identityFromContext(r)
	if !ok {
		utils.RespondWithError(w, http.StatusInternalServerError, "user identity not found in context")
		return
	}

	// Get loan ID from URL parameters
	vars := mux.Vars(r)
	loanID, err := strconv.Atoi(vars["id"])
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid loan ID")
		return
	}

	// Get the payment ledger
	payments, err := h.paymentService.ListByLoan(r.Context(), loanID, userID, role)
	if err != nil {
		h.logger.Warnf("Failed to get payments: %v", err)
		utils.RespondWithError(w, http.StatusNotFound, "payments not found")
		return
	}

	// Return success response
	utils.RespondWithSuccess(w, http.StatusOK, "payments retrieved successfully", payments)
}
