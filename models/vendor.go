package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DayHours is one weekday's opening window.
type DayHours struct {
	Open   string `json:"open"`
	Close  string `json:"close"`
	Closed bool   `json:"closed"`
}

// WeeklyHours maps a lowercase weekday name ("monday") to its hours.
type WeeklyHours map[string]DayHours

type Vendor struct {
	gorm.Model                   // ID, CreatedAt, UpdatedAt, DeletedAt
	UserID       uint            `json:"user_id" gorm:"uniqueIndex;not null"` // Foreign key to the owner account
	User         User            `json:"-" gorm:"foreignKey:UserID"`
	Type         string          `json:"type"` // Food Truck, Street Vendor or Restaurant
	Description  string          `json:"description"`
	Address      string          `json:"address"`
	Phone        string          `json:"phone"`
	Website      string          `json:"website"`
	IsOpen       bool            `json:"is_open"`
	Rating       decimal.Decimal `json:"rating" gorm:"type:decimal(3,2)"`
	TotalReviews int             `json:"total_reviews"`
	TotalViews   int             `json:"total_views"`
	MonthlyViews int             `json:"monthly_views"`
	Specialties  []string        `json:"specialties" gorm:"serializer:json"`
	Hours        WeeklyHours     `json:"hours" gorm:"serializer:json"`
	Images       []string        `json:"images" gorm:"serializer:json"`
	DeliveryFee  decimal.Decimal `json:"delivery_fee" gorm:"type:decimal(10,2)"`

	MenuItems    []MenuItem    `json:"menu_items,omitempty" gorm:"foreignKey:VendorID"`
	Reviews      []Review      `json:"reviews,omitempty" gorm:"foreignKey:VendorID"`
	Reservations []Reservation `json:"reservations,omitempty" gorm:"foreignKey:VendorID"`
	Subscription *Subscription `json:"subscription,omitempty" gorm:"foreignKey:VendorID"`
}
