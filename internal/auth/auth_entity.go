package auth

import (
	"time"

	"github.com/google/uuid"
)

// Role values carried in the JWT. Managers administer payroll and
// back-office records; staff only see their own data.
const (
	RoleManager = "MANAGER"
	RoleStaff   = "STAFF"
)

type UserAccount struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Email      string    `gorm:"uniqueIndex;not null"`
	Password   string    `gorm:"not null"`
	Role       string    `gorm:"type:varchar(20);not null;default:'STAFF'"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (UserAccount) TableName() string {
	return "user_accounts"
}
