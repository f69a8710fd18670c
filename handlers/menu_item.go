package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/moodykhalif23/kula-chipo2/models"
)

type CreateMenuItemRequest struct {
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	Available   *bool           `json:"available"`
}

type UpdateMenuItemRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Available   *bool            `json:"available"`
}

func CreateMenuItemHandler(c *gin.Context) {
	vendor, ok := requireVendor(c)
	if !ok {
		return
	}

	var request CreateMenuItemRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !request.Price.IsPositive() {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Price must be greater than zero"})
		return
	}

	available := true
	if request.Available != nil {
		available = *request.Available
	}

	menuItem := &models.MenuItem{
		Name:        request.Name,
		Description: request.Description,
		Price:       request.Price,
		Available:   available,
		VendorID:    vendor.ID,
	}

	if err := DB.Create(&menuItem).Error; err != nil {
		log.Error().Err(err).Uint("vendor_id", vendor.ID).Msg("failed to create menu item")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to create menu item"})
		return
	}

	c.JSON(http.StatusCreated, menuItem)
}

func UpdateMenuItemHandler(c *gin.Context) {
	vendor, ok := requireVendor(c)
	if !ok {
		return
	}

	itemIDString := c.Param("item_id")

	var request UpdateMenuItemRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var menuItem models.MenuItem
	if err := DB.Where("id = ? AND vendor_id = ?", itemIDString, vendor.ID).First(&menuItem).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
			return
		}
		log.Error().Err(err).Str("item_id", itemIDString).Msg("failed to load menu item")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to load menu item"})
		return
	}

	// Build map for updates to handle partial updates correctly with
	// pointers
	updates := make(map[string]interface{})

	if request.Name != nil {
		updates["name"] = *request.Name
	}
	if request.Description != nil {
		updates["description"] = *request.Description
	}
	if request.Price != nil {
		if !request.Price.IsPositive() {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Price must be greater than zero"})
			return
		}
		updates["price"] = *request.Price
	}
	if request.Available != nil {
		updates["available"] = *request.Available
	}

	if len(updates) == 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "No update fields provided"})
		return
	}

	if err := DB.Model(&menuItem).Updates(updates).Error; err != nil {
		log.Error().Err(err).Uint("item_id", menuItem.ID).Msg("failed to update menu item")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to update menu item"})
		return
	}

	c.JSON(http.StatusOK, menuItem)
}

func DeleteMenuItemHandler(c *gin.Context) {
	vendor, ok := requireVendor(c)
	if !ok {
		return
	}

	itemIDString := c.Param("item_id")

	var menuItem models.MenuItem
	if err := DB.Where("id = ? AND vendor_id = ?", itemIDString, vendor.ID).First(&menuItem).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
			return
		}
		log.Error().Err(err).Str("item_id", itemIDString).Msg("failed to load menu item")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to load menu item"})
		return
	}

	if err := DB.Delete(&menuItem).Error; err != nil {
		log.Error().Err(err).Uint("item_id", menuItem.ID).Msg("failed to delete menu item")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete menu item"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Deleted menu item"})
}

// GetVendorMenuHandler is the public menu view for one vendor.
func GetVendorMenuHandler(c *gin.Context) {
	vendorIDString := c.Param("vendor_id")

	var vendor models.Vendor
	if err := DB.Where("id = ?", vendorIDString).First(&vendor).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Vendor not found"})
			return
		}
		log.Error().Err(err).Str("vendor_id", vendorIDString).Msg("failed to load vendor")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to load vendor"})
		return
	}

	var menuItems []models.MenuItem
	if err := DB.Where("vendor_id = ?", vendor.ID).Find(&menuItems).Error; err != nil {
		log.Error().Err(err).Uint("vendor_id", vendor.ID).Msg("failed to get menu items")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to get menu items"})
		return
	}

	if menuItems == nil {
		menuItems = []models.MenuItem{}
	}

	c.JSON(http.StatusOK, gin.H{"menu_items": menuItems})
}
