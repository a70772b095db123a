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

// ApplicationHandler handles loan application HTTP requests
type ApplicationHandler struct {
	applicationService service.ApplicationService
	logger             *logrus.Logger
	config             *configs.Config
}

// NewApplicationHandler creates a new ApplicationHandler
func NewApplicationHandler(applicationService service.ApplicationService, logger *logrus.Logger, config *configs.Config) *ApplicationHandler {
	return &ApplicationHandler{
		applicationService: applicationService,
		logger:             logger,
		config:             config,
	}
}

// Submit handles loan application submission
func (h *ApplicationHandler) Submit(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := identityFromContext(r)
	if !ok {
		utils.RespondWithError(w, http.StatusInternalServerError, "user identity not found in context")
		return
	}

	// Parse request body
	var appRequest models.ApplicationRequest
	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(&appRequest); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	defer r.Body.Close()

	// Submit the application
	applicationID, err := h.applicationService.Submit(r.Context(), userID, &appRequest)
	if err != nil {
		h.logger.Warnf("Failed to submit loan application: %v", err)
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	// Return success response
	utils.RespondWithSuccess(w, http.StatusCreated, "loan application submitted successfully", map[string]interface{}{
		"application_id": applicationID,
	})
}

// GetAll handles listing loan applications. Borrowers see their own,
// admins see all, optionally filtered by status
func (h *ApplicationHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	userID, role, ok := identityFromContext(r)
	if !ok {
		utils.RespondWithError(w, http.StatusInternalServerError, "user identity not found in context")
		return
	}

	status := models.ApplicationStatus(r.URL.Query().Get("status"))

	applications, err := h.applicationService.List(r.Context(), userID, role, status)
	if err != nil {
		h.logger.Warnf("Failed to get loan applications: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to get loan applications")
		return
	}

	// Return success response
	utils.RespondWithSuccess(w, http.StatusOK, "loan applications retrieved successfully", applications)
}

// GetByID handles retrieving a specific loan application by ID
func (h *ApplicationHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	userID, role, ok := identityFromContext(r)
	if !ok {
		utils.RespondWithError(w, http.StatusInternalServerError, "user identity not found in context")
		return
	}

	// Get application ID from URL parameters
	vars := mux.Vars(r)
	applicationID, err := strconv.Atoi(vars["id"])
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid application ID")
		return
	}

	// Get the application
	application, err := h.applicationService.GetByID(r.Context(), applicationID, userID, role)
	if err != nil {
		h.logger.Warnf("Failed to get loan application: %v", err)
		utils.RespondWithError(w, http.StatusNotFound, "loan application not found")
		return
	}

	// Return success response
	utils.RespondWithSuccess(w, http.StatusOK, "loan application retrieved successfully", application)
}

// Approve handles loan application approval and disbursement (admin only)
func (h *ApplicationHandler) Approve(w http.ResponseWriter, r *http.Request) {
	userID, role, ok := identityFromContext(r)
	if !ok {
		utils.RespondWithError(w, http.StatusInternalServerError, "user identity not found in context")
		return
	}

	if !requireAdmin(w, role) {
		return
	}

	// Get application ID from URL parameters
	vars := mux.Vars(r)
	applicationID, err := strconv.Atoi(vars["id"])
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid application ID")
		return
	}

	// Parse request body
	var disbRequest models.DisbursementRequest
	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(&disbRequest); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	defer r.Body.Close()

	// Approve the application and disburse the loan
	loanID, err := h.applicationService.Approve(r.Context(), applicationID, userID, &disbRequest)
	if err != nil {
		h.logger.Warnf("Failed to approve loan application: %v", err)
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	// Return success response
	utils.RespondWithSuccess(w, http.StatusOK, "loan application approved successfully", map[string]interface{}{
		"loan_id": loanID,
	})
}

// Reject handles loan application rejection (admin only)
func (h *ApplicationHandler) Reject(w http.ResponseWriter, r *http.Request) {
	userID, role, ok := identityFromContext(r)
	if !ok {
		utils.RespondWithError(w, http.StatusInternalServerError, "user identity not found in context")
		return
	}

	if !requireAdmin(w, role) {
		return
	}

	// Get application ID from URL parameters
	vars := mux.Vars(r)
	applicationID, err := strconv.Atoi(vars["id"])
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid application ID")
		return
	}

	// Parse request body
	var rejectRequest struct {
		Remarks string `json:"remarks"`
	}
	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(&rejectRequest); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	defer r.Body.Close()

	// Reject the application
	if err := h.applicationService.Reject(r.Context(), applicationID, userID, rejectRequest.Remarks); err != nil {
		h.logger.Warnf("Failed to reject loan application: %v", err)
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	// Return success response
	utils.RespondWithSuccess(w, http.StatusOK, "loan application rejected", nil)
}
