package models

// PortfolioSummary represents portfolio-level statistics for the admin dashboard
type PortfolioSummary struct {
	ActiveLoans        int     `json:"active_loans"`
	ClosedLoans        int     `json:"closed_loans"`
	DefaultedLoans     int     `json:"defaulted_loans"`
	TotalDisbursed     float64 `json:"total_disbursed"`
	TotalOutstanding   float64 `json:"total_outstanding"`
	TotalCollected     float64 `json:"total_collected"`
	OverdueExposure    float64 `json:"overdue_exposure"`
	PendingApplication int     `json:"pending_applications"`
}
