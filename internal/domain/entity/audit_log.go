package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// AuditLog represents a system audit trail entry
type AuditLog struct {
	ID        int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    *uuid.UUID     `gorm:"type:uuid;index" json:"user_id,omitempty"`
	Action    string         `gorm:"type:varchar(100);not null;index" json:"action"`
	Metadata  datatypes.JSON `json:"metadata,omitempty"`
	CreatedAt time.Time      `gorm:"autoCreateTime;index" json:"created_at"`

	// Relationships
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}

// Common audit actions
const (
	AuditActionUserRegister    = "user.register"
	AuditActionUserLogout      = "user.logout"
	AuditActionDonorProfile    = "donor.profile_upsert"
	AuditActionHospitalProfile = "hospital.profile_upsert"
	AuditActionDonationRecord  = "donation.record"
	AuditActionRequestCreate   = "request.create"
	AuditActionRequestDecide   = "request.decide"
	AuditActionRequestComplete = "request.complete"
)
