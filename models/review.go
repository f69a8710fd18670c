package models

import (
	"gorm.io/gorm"
)

// Review is append-only: there is no edit or delete flow.
type Review struct {
	gorm.Model
	VendorID uint   `json:"vendor_id" gorm:"not null;index"`
	Vendor   Vendor `json:"-"`
	UserID   uint   `json:"user_id" gorm:"not null"`
	User     User   `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Rating   int    `json:"rating" gorm:"not null"` // 1 to 5
	Comment  string `json:"comment"`
	Replied  bool   `json:"replied" gorm:"not null;default:false"`
}
