package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/moodykhalif23/kula-chipo2/tracking"
)

type Order struct {
	gorm.Model
	Number      string          `json:"number" gorm:"uniqueIndex;not null"`
	CustomerID  uint            `json:"customer_id" gorm:"not null;index"`
	Customer    User            `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	VendorID    uint            `json:"vendor_id" gorm:"not null;index"`
	Vendor      Vendor          `json:"vendor,omitempty" gorm:"foreignKey:VendorID"`
	Items       []OrderItem     `json:"items" gorm:"foreignKey:OrderID"`
	Subtotal    decimal.Decimal `json:"subtotal" gorm:"type:decimal(10,2);not null"`
	DeliveryFee decimal.Decimal `json:"delivery_fee" gorm:"type:decimal(10,2);not null"`
	Total       decimal.Decimal `json:"total" gorm:"type:decimal(10,2);not null"`
	Status      tracking.Stage  `json:"status" gorm:"not null;index"`
}

// OrderItem snapshots the menu item's name and unit price at order
// time so later menu edits don't rewrite history.
type OrderItem struct {
	gorm.Model
	OrderID    uint            `json:"order_id" gorm:"not null;index"`
	MenuItemID uint            `json:"menu_item_id" gorm:"not null"`
	Name       string          `json:"name" gorm:"not null"`
	UnitPrice  decimal.Decimal `json:"unit_price" gorm:"type:decimal(10,2);not null"`
	Quantity   int             `json:"quantity" gorm:"not null"`
}
