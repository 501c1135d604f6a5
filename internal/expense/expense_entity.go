package expense

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Expense is a single operating cost entry. The biller is free text so
// one-off payees do not need a registry entry first.
type Expense struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Concept     string    `gorm:"not null"`
	BillerName  string    `gorm:"not null;default:''"`
	Category    string    `gorm:"not null;index"`
	Amount      int64     `gorm:"type:bigint;not null"` // centavos
	ExpenseDate time.Time `gorm:"type:date;not null;index"`
	Notes       string    `gorm:"type:text"`
	RecordedBy  uuid.UUID `gorm:"type:uuid;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Expense) TableName() string {
	return "expenses"
}
