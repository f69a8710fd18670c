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

type CreateReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

// CreateReviewHandler lets a customer append a review and folds it
// into the vendor's aggregate rating.
func CreateReviewHandler(c *gin.Context) {
	claims := GetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User authentication details not found"})
		return
	}

	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
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

	review := models.Review{
		VendorID: vendor.ID,
		UserID:   claims.UserID,
		Rating:   req.Rating,
		Comment:  utils.SanitizeInput(req.Comment),
	}

	tx := DB.Begin()
	if tx.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": tx.Error.Error()})
		return
	}

	if err := tx.Create(&review).Error; err != nil {
		tx.Rollback()
		log.Error().Err(err).Uint("vendor_id", vendor.ID).Msg("failed to create review")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create review"})
		return
	}

	// Fold the new rating into the running average.
	oldWeight := vendor.Rating.Mul(decimal.NewFromInt(int64(vendor.TotalReviews)))
	newCount := vendor.TotalReviews + 1
	newRating := oldWeight.
		Add(decimal.NewFromInt(int64(req.Rating))).
		Div(decimal.NewFromInt(int64(newCount))).
		Round(2)

	if err := tx.Model(&vendor).Updates(map[string]interface{}{
		"rating":        newRating,
		"total_reviews": newCount,
	}).Error; err != nil {
		tx.Rollback()
		log.Error().Err(err).Uint("vendor_id", vendor.ID).Msg("failed to update vendor rating")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update vendor rating"})
		return
	}

	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, review)
}

// ListReviewsHandler is public.
func ListReviewsHandler(c *gin.Context) {
	vendorIDString := c.Param("vendor_id")

	var reviews []models.Review
	if err := DB.Preload("User").
		Where("vendor_id = ?", vendorIDString).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		log.Error().Err(err).Str("vendor_id", vendorIDString).Msg("failed to list reviews")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list reviews"})
		return
	}

	if reviews == nil {
		reviews = []models.Review{}
	}

	c.JSON(http.StatusOK, gin.H{"reviews": reviews})
}
