package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type RequestStatus string

const (
	StatusPending   RequestStatus = "Pending"
	StatusApproved  RequestStatus = "Approved"
	StatusRejected  RequestStatus = "Rejected"
	StatusCompleted RequestStatus = "Completed"
)

// CanTransitionTo enforces the one-directional request lifecycle:
// Pending -> Approved|Rejected, Approved -> Completed. Nothing re-enters Pending.
func (s RequestStatus) CanTransitionTo(next RequestStatus) bool {
	switch s {
	case StatusPending:
		return next == StatusApproved || next == StatusRejected
	case StatusApproved:
		return next == StatusCompleted
	default:
		return false
	}
}

// IsTerminal reports whether no further transition is allowed.
func (s RequestStatus) IsTerminal() bool {
	return s == StatusRejected || s == StatusCompleted
}

// RequestLine is one requested item on a dispense request. Lines are written
// once at creation; only ApprovedQuantity is filled in later (at approval).
type RequestLine struct {
	ID               uint      `gorm:"primaryKey" json:"-"`
	RequestID        uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	Position         int       `gorm:"not null" json:"position"`
	ItemCode         string    `gorm:"type:varchar(50);not null" json:"item_code" validate:"required"`
	ItemName         string    `gorm:"type:varchar(255)" json:"item_name"`
	Quantity         int       `gorm:"not null" json:"quantity" validate:"required,gt=0"`
	ApprovedQuantity int       `gorm:"default:0" json:"approved_quantity"`
}

type DispenseRequest struct {
	BaseModel
	RequestCode    string        `gorm:"type:varchar(50);uniqueIndex;not null" json:"request_code"`
	RequestDate    string        `gorm:"type:varchar(10)" json:"request_date"` // YYYY-MM-DD
	Department     string        `gorm:"type:varchar(100)" json:"department"`
	RequesterName  string        `gorm:"type:varchar(255)" json:"requester_name" validate:"required"`
	RequesterEmail string        `gorm:"type:varchar(255);index" json:"requester_email"`
	Lines          []RequestLine `gorm:"foreignKey:RequestID" json:"items" validate:"required,min=1,dive"`

	// Human-readable snapshots, kept for history rendering and notifications
	ItemsString         string `gorm:"type:text" json:"items_string"`
	ApprovedItemsString string `gorm:"type:text" json:"approved_items_string"`

	Status          RequestStatus `gorm:"type:varchar(20);not null;default:'Pending';index" json:"status"`
	Approver        string        `gorm:"type:varchar(255)" json:"approver"`
	ApprovalDate    *time.Time    `json:"approval_date,omitempty"`
	RejectionReason string        `gorm:"type:text" json:"rejection_reason,omitempty"`

	SignatureURL  string `gorm:"type:text" json:"signature_url"`
	AttachmentURL string `gorm:"type:text" json:"attachment_url"`
}

func (DispenseRequest) TableName() string {
	return "dispense_requests"
}

// LinesSummary renders lines as "Name (xN), Name (xN)" like the history views expect.
func LinesSummary(lines []RequestLine) string {
	parts := make([]string, len(lines))
	for i, l := range lines {
		name := l.ItemName
		if name == "" {
			name = l.ItemCode
		}
		parts[i] = fmt.Sprintf("%s (x%d)", name, l.Quantity)
	}
	return strings.Join(parts, ", ")
}
