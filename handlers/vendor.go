package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/moodykhalif23/kula-chipo2/models"
)

// ListVendorsHandler is the public browse view.
func ListVendorsHandler(c *gin.Context) {
	var vendors []models.Vendor
	query := DB.Model(&models.Vendor{})

	// Simple search by business type and description, case-insensitive
	// partial match
	if nameQuery := c.Query("q"); nameQuery != "" {
		query = query.Where("LOWER(description) LIKE LOWER(?) OR LOWER(address) LIKE LOWER(?)",
			"%"+nameQuery+"%", "%"+nameQuery+"%")
	}

	if typeQuery := c.Query("type"); typeQuery != "" {
		query = query.Where("LOWER(type) = LOWER(?)", typeQuery)
	}

	if c.Query("open") == "true" {
		query = query.Where("is_open = ?", true)
	}

	if err := query.Find(&vendors).Error; err != nil {
		log.Error().Err(err).Msg("failed to list vendors")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list vendors"})
		return
	}

	if vendors == nil {
		vendors = []models.Vendor{}
	}

	c.JSON(http.StatusOK, gin.H{"vendors": vendors})
}

// GetVendorHandler returns one storefront with its menu and reviews,
// and bumps the view counters.
func GetVendorHandler(c *gin.Context) {
	vendorID := c.Param("vendor_id")

	var vendor models.Vendor
	err := DB.
		Preload("MenuItems").
		Preload("Reviews.User").
		Where("id = ?", vendorID).
		First(&vendor).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Vendor not found"})
			return
		}
		log.Error().Err(err).Str("vendor_id", vendorID).Msg("failed to get vendor")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get vendor"})
		return
	}

	// Best effort; a lost view count never fails the page.
	DB.Model(&vendor).UpdateColumns(map[string]interface{}{
		"total_views":   gorm.Expr("total_views + 1"),
		"monthly_views": gorm.Expr("monthly_views + 1"),
	})

	c.JSON(http.StatusOK, gin.H{"vendor": vendor})
}
