package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"lending-office/configs"
	"lending-office/internal/service"
	"lending-office/pkg/utils"
)

// LoanHandler handles loan-related HTTP requests
type LoanHandler struct {
	loanService      service.LoanService
	statementService service.StatementService
	logger           *logrus.Logger
	config           *configs.Config
}

// NewLoanHandler creates a new LoanHandler
func NewLoanHandler(loanService service.LoanService, statementService service.StatementService, logger *logrus.Logger, config *configs.Config) *LoanHandler {
	return &LoanHandler{
		loanService:      loanService,
		statementService: statementService,
		logger:           logger,
		config:           config,
	}
}

// GetAll handles listing loans. Borrowers see their own, admins see all
func (h *LoanHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	userID, role, ok := identityFromContext(r)
	if !ok {
		utils.RespondWithError(w, http.StatusInternalServerError, "user identity not found in context")
		return
	}

	loans, err := h.loanService.List(r.Context(), userID, role)
	if err != nil {
		h.logger.Warnf("Failed to get loans: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to get loans")
		return
	}

	// Return success response
	utils.RespondWithSuccess(w, http.StatusOK, "loans retrieved successfully", loans)
}

// GetByID handles retrieving a specific loan by ID
func (h *LoanHandler) GetByID(w http.ResponseWriter, r *http.Request) {
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

	// Get the loan
	loan, err := h.loanService.GetByID(r.Context(), loanID, userID, role)
	if err != nil {
		h.logger.Warnf("Failed to get loan: %v", err)
		utils.RespondWithError(w, http.StatusNotFound, "loan not found")
		return
	}

	// Return success response
	utils.RespondWithSuccess(w, http.StatusOK, "loan retrieved successfully", loan)
}

// GetSchedule handles retrieving the repayment schedule for a loan
func (h *LoanHandler) GetSchedule(w http.ResponseWriter, r *http.Request) {
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

	// Get the repayment schedule
	schedule, summary, err := h.loanService.GetSchedule(r.Context(), loanID, userID, role)
	if err != nil {
		h.logger.Warnf("Failed to get repayment schedule: %v", err)
		utils.RespondWithError(w, http.StatusNotFound, "repayment schedule not found")
		return
	}

	// Return success response
	response := map[string]interface{}{
		"installments": schedule,
		"summary":      summary,
	}

	utils.RespondWithSuccess(w, http.StatusOK, "repayment schedule retrieved successfully", response)
}

// GetStatement handles exporting a loan statement as PDF or XLSX
func (h *LoanHandler) GetStatement(w http.ResponseWriter, r *http.Request) {
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

	format := r.URL.Query().Get("format")
	if format == "" {
		format = "pdf"
	}

	var (
		data        []byte
		contentType string
	)

	switch format {
	case "pdf":
		data, err = h.statementService.BuildPDF(r.Context(), loanID, userID, role)
		contentType = "application/pdf"
	case "xlsx":
		data, err = h.statementService.BuildXLSX(r.Context(), loanID, userID, role)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		utils.RespondWithError(w, http.StatusBadRequest, "unsupported statement format, use pdf or xlsx")
		return
	}

	if err != nil {
		h.logger.Warnf("Failed to build loan statement: %v", err)
		utils.RespondWithError(w, http.StatusNotFound, "failed to build loan statement")
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="statement-%d.%s"`, loanID, format))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// MarkDefaulted handles marking a loan as defaulted (admin only)
func (h *LoanHandler) MarkDefaulted(w http.ResponseWriter, r *http.Request) {
	_, role, ok := identityFromContext(r)
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

	// Mark the loan as defaulted
	if err := h.loanService.MarkDefaulted(r.Context(), loanID); err != nil {
		h.logger.Warnf("Failed to mark loan as defaulted: %v", err)
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	// Return success response
	utils.RespondWithSuccess(w, http.StatusOK, "loan marked as defaulted", nil)
}
