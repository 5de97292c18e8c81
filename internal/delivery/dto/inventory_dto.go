package dto

import "time"

type InventoryResponse struct {
	BloodType string    `json:"blood_type"`
	Quantity  int       `json:"quantity"`
	UpdatedAt time.Time `json:"updated_at"`
}

type InventoryListResponse struct {
	Inventory []InventoryResponse `json:"inventory"`
	Total     int                 `json:"total"`
}
