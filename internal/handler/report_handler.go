package handler

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"lending-office/configs"
	"lending-office/internal/service"
	"lending-office/pkg/utils"
)

// ReportHandler handles portfolio reporting HTTP requests
type ReportHandler struct {
	reportService service.ReportService
	logger        *logrus.Logger
	config        *configs.Config
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService service.ReportService, logger *logrus.Logger, config *configs.Config) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
		logger:        logger,
		config:        config,
	}
}

// Portfolio handles retrieving the portfolio summary (admin only)
func (h *ReportHandler) Portfolio(w http.ResponseWriter, r *http.Request) {
	_, role, ok := identityFromContext(r)
	if !ok {
		utils.RespondWithError(w, http.StatusInternalServerError, "user identity not found in context")
		return
	}

	if !requireAdmin(w, role) {
		return
	}

	// Get the portfolio summary
	summary, err := h.reportService.PortfolioSummary(r.Context())
	if err != nil {
		h.logger.Warnf("Failed to get portfolio summary: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to get portfolio summary")
		return
	}

	// Return success response
	utils.RespondWithSuccess(w, http.StatusOK, "portfolio summary retrieved successfully", summary)
}
