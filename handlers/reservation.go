package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/moodykhalif23/kula-chipo2/models"
	"github.com/moodykhalif23/kula-chipo2/utils"
)

type CreateReservationRequest struct {
	Name           string `json:"name" binding:"required"`
	Email          string `json:"email" binding:"required"`
	Phone          string `json:"phone"`
	Date           string `json:"date" binding:"required"`
	Time           string `json:"time" binding:"required"`
	PartySize      int    `json:"party_size"`
	SpecialRequest string `json:"special_request"`
}

// UpdateReservationRequest edits fields and/or requests a status
// transition. Absent fields stay as they are.
type UpdateReservationRequest struct {
	Date           *string                   `json:"date"`
	Time           *string                   `json:"time"`
	PartySize      *int                      `json:"party_size"`
	SpecialRequest *string                   `json:"special_request"`
	Status         *models.ReservationStatus `json:"status"`
}

// CreateReservationHandler lets a customer book a table; the booking
// starts pending until the vendor confirms or cancels it.
func CreateReservationHandler(c *gin.Context) {
	claims := GetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User authentication details not found"})
		return
	}

	var req CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !utils.ValidEmail(req.Email) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email address"})
		return
	}

	partySize := req.PartySize
	if partySize < 1 {
		partySize = 2
	}

	vendorIDString := c.Param("vendor_id")
	var vendor models.Vendor
	if err := DB.Where("id = ?", vendorIDString).First(&vendor).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Vendor not found"})
			return
		}
		log.Error().Err(err).Str("vendor_id", vendorIDString).Msg("failed to load vendor")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load vendor"})
		return
	}

	reservation := models.Reservation{
		Code:           uuid.NewString(),
		VendorID:       vendor.ID,
		UserID:         claims.UserID,
		Name:           utils.SanitizeInput(req.Name),
		Email:          req.Email,
		Phone:          req.Phone,
		Date:           req.Date,
		Time:           req.Time,
		PartySize:      partySize,
		Status:         models.ReservationPending,
		SpecialRequest: utils.SanitizeInput(req.SpecialRequest),
	}

	if err := DB.Create(&reservation).Error; err != nil {
		log.Error().Err(err).Uint("vendor_id", vendor.ID).Msg("failed to create reservation")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create reservation"})
		return
	}

	c.JSON(http.StatusCreated, reservation)
}

// ListVendorReservationsHandler lists the caller's bookings, optionally
// filtered by status.
func ListVendorReservationsHandler(c *gin.Context) {
	vendor, ok := requireVendor(c)
	if !ok {
		return
	}

	query := DB.Where("vendor_id = ?", vendor.ID)
	if statusFilter := c.Query("status"); statusFilter != "" {
		query = query.Where("status = ?", models.ReservationStatus(statusFilter))
	}

	var reservations []models.Reservation
	if err := query.Order("created_at DESC").Find(&reservations).Error; err != nil {
		log.Error().Err(err).Uint("vendor_id", vendor.ID).Msg("failed to list reservations")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list reservations"})
		return
	}

	if reservations == nil {
		reservations = []models.Reservation{}
	}

	c.JSON(http.StatusOK, gin.H{"reservations": reservations})
}

// UpdateReservationHandler edits a pending booking and/or moves its
// status. Confirmed and cancelled bookings only accept an identical
// repeated transition.
func UpdateReservationHandler(c *gin.Context) {
	vendor, ok := requireVendor(c)
	if !ok {
		return
	}

	code := c.Param("code")

	var req UpdateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var reservation models.Reservation
	if err := DB.Where("code = ? AND vendor_id = ?", code, vendor.ID).First(&reservation).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Reservation not found"})
			return
		}
		log.Error().Err(err).Str("code", code).Msg("failed to load reservation")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load reservation"})
		return
	}

	// Field edits only apply while the booking is still pending.
	editing := req.Date != nil || req.Time != nil || req.PartySize != nil || req.SpecialRequest != nil
	if editing && reservation.Status != models.ReservationPending {
		c.JSON(http.StatusConflict, gin.H{"error": "Only pending reservations can be edited"})
		return
	}

	if req.Date != nil {
		reservation.Date = *req.Date
	}
	if req.Time != nil {
		reservation.Time = *req.Time
	}
	if req.PartySize != nil {
		if *req.PartySize < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Party size must be at least 1"})
			return
		}
		reservation.PartySize = *req.PartySize
	}
	if req.SpecialRequest != nil {
		reservation.SpecialRequest = utils.SanitizeInput(*req.SpecialRequest)
	}

	if req.Status != nil {
		if err := reservation.Transition(*req.Status); err != nil {
			switch {
			case errors.Is(err, models.ErrReservationFinalized):
				c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			case errors.Is(err, models.ErrMissingContactInfo):
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			default:
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			}
			return
		}
	}

	if err := DB.Save(&reservation).Error; err != nil {
		log.Error().Err(err).Str("code", code).Msg("failed to update reservation")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update reservation"})
		return
	}

	c.JSON(http.StatusOK, reservation)
}
