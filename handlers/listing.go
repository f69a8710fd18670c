package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/moodykhalif23/kula-chipo2/models"
	"github.com/moodykhalif23/kula-chipo2/utils"
)

// UpdateListingRequest carries pointer fields so absent keys leave the
// stored value untouched; the whole record is never overwritten blind.
type UpdateListingRequest struct {
	BusinessType *string             `json:"businessType"`
	Description  *string             `json:"description"`
	Address      *string             `json:"address"`
	Phone        *string             `json:"phone"`
	Website      *string             `json:"website"`
	IsOpen       *bool               `json:"isOpen"`
	Specialties  *[]string           `json:"specialties"`
	Hours        *models.WeeklyHours `json:"hours"`
	DeliveryFee  *decimal.Decimal    `json:"deliveryFee"`
	Images       *[]string           `json:"images"`
}

// requireVendor resolves the caller's vendor record. Every /api/vendor
// route goes through here.
func requireVendor(c *gin.Context) (*models.Vendor, bool) {
	claims := GetClaims(c)
	if claims == nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User authentication details not found"})
		return nil, false
	}

	var vendor models.Vendor
	if err := DB.Where("user_id = ?", claims.UserID).First(&vendor).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Vendor not found"})
			return nil, false
		}
		log.Error().Err(err).Uint("user_id", claims.UserID).Msg("failed to load vendor")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to load vendor"})
		return nil, false
	}

	return &vendor, true
}

// GetListingHandler returns the caller's own storefront with all
// nested records, mirroring what the dashboard edits.
func GetListingHandler(c *gin.Context) {
	claims := GetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var vendor models.Vendor
	err := DB.
		Preload("MenuItems").
		Preload("Reviews.User").
		Preload("Reservations").
		Preload("Subscription").
		Where("user_id = ?", claims.UserID).
		First(&vendor).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Vendor not found"})
			return
		}
		log.Error().Err(err).Uint("user_id", claims.UserID).Msg("failed to fetch listing")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"vendor": vendor})
}

// UpdateListingHandler applies field-level updates to the caller's
// vendor record.
func UpdateListingHandler(c *gin.Context) {
	vendor, ok := requireVendor(c)
	if !ok {
		return
	}

	var req UpdateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.BusinessType != nil {
		vendor.Type = *req.BusinessType
	}
	if req.Description != nil {
		vendor.Description = utils.SanitizeInput(*req.Description)
	}
	if req.Address != nil {
		vendor.Address = *req.Address
	}
	if req.Phone != nil {
		if *req.Phone != "" && !utils.ValidPhone(*req.Phone) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid phone number"})
			return
		}
		vendor.Phone = *req.Phone
	}
	if req.Website != nil {
		vendor.Website = *req.Website
	}
	if req.IsOpen != nil {
		vendor.IsOpen = *req.IsOpen
	}
	if req.Specialties != nil {
		vendor.Specialties = *req.Specialties
	}
	if req.Hours != nil {
		vendor.Hours = *req.Hours
	}
	if req.DeliveryFee != nil {
		if req.DeliveryFee.IsNegative() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Delivery fee cannot be negative"})
			return
		}
		vendor.DeliveryFee = *req.DeliveryFee
	}
	if req.Images != nil {
		vendor.Images = *req.Images
	}

	if err := DB.Save(vendor).Error; err != nil {
		log.Error().Err(err).Uint("vendor_id", vendor.ID).Msg("failed to update listing")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update listing"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Vendor listing updated", "vendor": vendor})
}
