package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/moodykhalif23/kula-chipo2/models"
)

// AdminOverviewHandler returns the flat aggregate arrays the admin
// dashboard renders. Role gating happens in the route group.
func AdminOverviewHandler(c *gin.Context) {
	var users []models.User
	if err := DB.Select("id", "email", "name", "role", "created_at").
		Order("created_at DESC").Find(&users).Error; err != nil {
		log.Error().Err(err).Msg("overview: failed to list users")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load overview"})
		return
	}

	var vendors []models.Vendor
	if err := DB.Preload("User").Order("created_at DESC").Find(&vendors).Error; err != nil {
		log.Error().Err(err).Msg("overview: failed to list vendors")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load overview"})
		return
	}

	var menuItems []models.MenuItem
	if err := DB.Order("created_at DESC").Find(&menuItems).Error; err != nil {
		log.Error().Err(err).Msg("overview: failed to list menu items")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load overview"})
		return
	}

	var reviews []models.Review
	if err := DB.Preload("User").Order("created_at DESC").Find(&reviews).Error; err != nil {
		log.Error().Err(err).Msg("overview: failed to list reviews")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load overview"})
		return
	}

	var reservations []models.Reservation
	if err := DB.Order("created_at DESC").Find(&reservations).Error; err != nil {
		log.Error().Err(err).Msg("overview: failed to list reservations")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load overview"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users":        users,
		"vendors":      vendors,
		"menuItems":    menuItems,
		"reviews":      reviews,
		"reservations": reservations,
	})
}
