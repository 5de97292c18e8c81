package entity

import "time"

// BloodInventory is the stock ledger row for one blood type. Quantity is in millilitres.
type BloodInventory struct {
	ID        int       `gorm:"primaryKey;autoIncrement" json:"id"`
	BloodType BloodType `gorm:"type:varchar(3);uniqueIndex;not null" json:"blood_type"`
	Quantity  int       `gorm:"not null;default:0" json:"quantity"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (BloodInventory) TableName() string {
	return "blood_inventories"
}
