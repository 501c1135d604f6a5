package employee

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Employee struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FullName string    `gorm:"column:full_name;not null"`
	Email    string    `gorm:"uniqueIndex;not null"`
	Role     string    `gorm:"type:varchar(60);not null"`

	// Monetary values are stored in centavos to avoid floating point error.
	MonthlyBasicSalary int64 `gorm:"type:bigint;not null;default:0"`

	Allowances []Allowance `gorm:"foreignKey:EmployeeID"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Employee) TableName() string {
	return "employees"
}

type Allowance struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name       string    `gorm:"type:varchar(120);not null"`
	Amount     int64     `gorm:"type:bigint;not null;default:0"`
	Enabled    bool      `gorm:"not null;default:true"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (Allowance) TableName() string {
	return "employee_allowances"
}
