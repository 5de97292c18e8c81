package dto

import "github.com/shopspring/decimal"

type AdminStatsResponse struct {
	TotalDonors       int64           `json:"total_donors"`
	TotalHospitals    int64           `json:"total_hospitals"`
	TotalDonations    int64           `json:"total_donations"`
	PendingRequests   int64           `json:"pending_requests"`
	ApprovedRequests  int64           `json:"approved_requests"`
	RejectedRequests  int64           `json:"rejected_requests"`
	CompletedRequests int64           `json:"completed_requests"`
	TotalBloodUnits   int64           `json:"total_blood_units"`
	TotalBloodLiters  decimal.Decimal `json:"total_blood_liters"`
}
