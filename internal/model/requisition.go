package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Requisition status values. They double as the display text.
const (
	StatusPending     = "Pending"
	StatusApproved    = "Approved"
	StatusNotApproved = "Not approved"
)

// ReferenceNotAvailable is shown in place of an approval reference for
// requisitions that were not approved.
const ReferenceNotAvailable = "Not available"

// Requisition is a staff purchase request. The total is fixed at creation;
// only Status, ApprovalReference and DecidedAt change afterwards.
type Requisition struct {
	RequisitionID     int64           `gorm:"primaryKey;autoIncrement:false" json:"requisition_id"`
	Date              string          `gorm:"type:varchar(50)" json:"date"`
	StaffID           string          `gorm:"type:varchar(100);index" json:"staff_id"`
	StaffName         string          `gorm:"type:varchar(255)" json:"staff_name"`
	TotalValue        decimal.Decimal `gorm:"type:text;not null" json:"total_value"` // text keeps every digit
	Status            string          `gorm:"type:varchar(20);not null;default:'Pending';index" json:"status"`
	ApprovalReference string          `gorm:"type:varchar(120)" json:"approval_reference"`
	DecidedAt         *time.Time      `json:"decided_at"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// DisplayReference returns the approval reference for approved requisitions
// and ReferenceNotAvailable for everything else.
func (r Requisition) DisplayReference() string {
	if r.Status == StatusApproved {
		return r.ApprovalReference
	}
	return ReferenceNotAvailable
}

// LineItem is one priced entry of a requisition. Items are only used to
// compute the total and are not stored.
type LineItem struct {
	Name  string
	Price decimal.Decimal
}
