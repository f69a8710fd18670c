package models

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "pending"
	ReservationConfirmed ReservationStatus = "confirmed"
	ReservationCancelled ReservationStatus = "cancelled"
)

var (
	ErrReservationFinalized = errors.New("reservation is already finalized")
	ErrMissingContactInfo   = errors.New("date, time, name and email are required to confirm")
)

type Reservation struct {
	gorm.Model
	Code           string            `json:"code" gorm:"uniqueIndex;not null"`
	VendorID       uint              `json:"vendor_id" gorm:"not null;index"`
	Vendor         Vendor            `json:"-"`
	UserID         uint              `json:"user_id" gorm:"index"`
	User           User              `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Name           string            `json:"name"`
	Email          string            `json:"email"`
	Phone          string            `json:"phone"`
	Date           string            `json:"date"`
	Time           string            `json:"time"`
	PartySize      int               `json:"party_size"`
	Status         ReservationStatus `json:"status" gorm:"not null;default:pending;index"`
	SpecialRequest string            `json:"special_request"`
}

// hasContactInfo reports whether the fields required for confirmation
// are all present.
func (r *Reservation) hasContactInfo() bool {
	return strings.TrimSpace(r.Date) != "" &&
		strings.TrimSpace(r.Time) != "" &&
		strings.TrimSpace(r.Name) != "" &&
		strings.TrimSpace(r.Email) != ""
}

// Transition moves the reservation to a new status. Only pending
// reservations can move; confirmed and cancelled are terminal.
// Repeating the transition the reservation already took is an
// idempotent no-op. Confirming requires date, time, name and email.
func (r *Reservation) Transition(to ReservationStatus) error {
	switch to {
	case ReservationPending, ReservationConfirmed, ReservationCancelled:
	default:
		return fmt.Errorf("unknown reservation status %q", to)
	}

	if r.Status == to {
		return nil
	}

	if r.Status != ReservationPending {
		return ErrReservationFinalized
	}

	if to == ReservationConfirmed && !r.hasContactInfo() {
		return ErrMissingContactInfo
	}

	r.Status = to
	return nil
}
