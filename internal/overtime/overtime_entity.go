package overtime

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Status is a closed enumeration; anything outside the three values is
// rejected at the boundary so a typo can never pass for "no match".
type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

func ParseStatus(v string) (Status, error) {
	switch Status(v) {
	case StatusPending, StatusApproved, StatusRejected:
		return Status(v), nil
	default:
		return "", fmt.Errorf("invalid overtime status: %q", v)
	}
}

type Request struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index"`

	// Date is the work date the overtime was performed on; only the
	// date part is ever compared against cutoff windows.
	Date             time.Time `gorm:"type:date;not null;index"`
	RequestedMinutes int       `gorm:"not null;default:0"`
	Reason           *string   `gorm:"type:text"`

	Status    Status     `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	DecidedBy *uuid.UUID `gorm:"type:uuid"`
	DecidedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Request) TableName() string {
	return "overtime_requests"
}
