package voucher

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Voucher is a discount code handed to a customer. Value is in
// centavos; a voucher is spendable while it is unredeemed and not past
// its expiry date.
type Voucher struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Code       string     `gorm:"uniqueIndex;not null"`
	Value      int64      `gorm:"type:bigint;not null"`
	ExpiresAt  time.Time  `gorm:"type:date;not null"`
	Redeemed   bool       `gorm:"not null;default:false"`
	RedeemedAt *time.Time `gorm:"type:timestamptz"`
	IssuedBy   uuid.UUID  `gorm:"type:uuid;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Voucher) TableName() string {
	return "vouchers"
}
