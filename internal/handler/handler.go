package handler

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"lending-office/configs"
	"lending-office/internal/models"
	"lending-office/internal/service"
	"lending-office/pkg/utils"
)

// Dependencies contains handler dependencies
type Dependencies struct {
	Services *service.Service
	Logger   *logrus.Logger
	Config   *configs.Config
}

// Handler contains all HTTP handlers for the application
type Handler struct {
	User        *UserHandler
	Product     *ProductHandler
	Application *ApplicationHandler
	Loan        *LoanHandler
	Payment     *PaymentHandler
	Report      *ReportHandler
}

// NewHandler creates a new Handler with all subhandlers
func NewHandler(deps Dependencies) *Handler {
	return &Handler{
		User:        NewUserHandler(deps.Services.User, deps.Logger, deps.Config),
		Product:     NewProductHandler(deps.Services.Product, deps.Logger, deps.Config),
		Application: NewApplicationHandler(deps.Services.Application, deps.Logger, deps.Config),
		Loan:        NewLoanHandler(deps.Services.Loan, deps.Services.Statement, deps.Logger, deps.Config),
		Payment:     NewPaymentHandler(deps.Services.Payment, deps.Logger, deps.Config),
		Report:      NewReportHandler(deps.Services.Report, deps.Logger, deps.Config),
	}
}

// identityFromContext extracts the authenticated user's ID and role
// set by the auth middleware
func identityFromContext(r *http.Request) (int, models.Role, bool) {
	userID, ok := r.Context().Value("user_id").(int)
	if !ok {
		return 0, "", false
	}

	role, ok := r.Context().Value("role").(models.Role)
	if !ok {
		return 0, "", false
	}

	return userID, role, true
}

// requireAdmin writes a 403 response and returns false unless the caller is an admin
func requireAdmin(w http.ResponseWriter, role models.Role) bool {
	if role != models.RoleAdmin {
		utils.RespondWithError(w, http.StatusForbidden, "admin access required")
		return false
	}

	return true
}
