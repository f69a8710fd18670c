package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Subscription records an activated vendor plan. The reference code is
// the (stub-verified) M-Pesa transaction code the vendor submitted.
type Subscription struct {
	gorm.Model
	VendorID    uint            `json:"vendor_id" gorm:"uniqueIndex;not null"`
	Plan        string          `json:"plan" gorm:"not null"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	Reference   string          `json:"reference" gorm:"not null"`
	ActivatedAt time.Time       `json:"activated_at" gorm:"not null"`
}
