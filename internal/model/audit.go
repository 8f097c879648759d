package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ActionCreateRequisition      = "CREATE_REQUISITION"
	ActionAutoApproveRequisition = "AUTO_APPROVE_REQUISITION"
	ActionApproveRequisition     = "APPROVE_REQUISITION"
	ActionRejectRequisition      = "REJECT_REQUISITION"
)

// AuditLog tracks what happened to which requisition and when
type AuditLog struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Action        string    `gorm:"type:varchar(50);not null;index" json:"action"`
	RequisitionID int64     `gorm:"index" json:"requisition_id"`
	StaffID       string    `gorm:"type:varchar(100)" json:"staff_id"`
	Details       string    `gorm:"type:text" json:"details"` // Serialized JSON payload of the action
	CreatedAt     time.Time `gorm:"index" json:"created_at"`
}

// BeforeCreate assigns the id; SQLite has no gen_random_uuid().
func (a *AuditLog) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
