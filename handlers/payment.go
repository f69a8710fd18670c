package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/moodykhalif23/kula-chipo2/config"
	"github.com/moodykhalif23/kula-chipo2/models"
)

// Cfg is injected by main; payment verification needs the M-Pesa
// credentials even though the check itself is stubbed.
var Cfg *config.Config

var planPrices = map[string]decimal.Decimal{
	"starter":  decimal.NewFromInt(29),
	"premium":  decimal.NewFromInt(59),
	"featured": decimal.NewFromInt(99),
}

type VerifyPaymentRequest struct {
	Code string `json:"code"`
	Plan string `json:"plan"`
}

// VerifyMpesaHandler accepts a transaction code for a subscription
// plan. Verification is a stub: any non-empty code passes.
// TODO: call the M-Pesa transaction-status API once the paybill
// account is provisioned.
func VerifyMpesaHandler(c *gin.Context) {
	vendor, ok := requireVendor(c)
	if !ok {
		return
	}

	if Cfg == nil || !Cfg.MpesaConfigured() {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "M-Pesa credentials not configured."})
		return
	}

	var req VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	code := strings.TrimSpace(req.Code)
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or missing transaction code."})
		return
	}

	plan := strings.ToLower(req.Plan)
	price, known := planPrices[plan]
	if !known {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown subscription plan."})
		return
	}

	subscription := models.Subscription{
		VendorID:    vendor.ID,
		Plan:        plan,
		Price:       price,
		Reference:   code,
		ActivatedAt: time.Now(),
	}

	// One subscription per vendor; a new plan replaces the old one.
	// The delete is unscoped because vendor_id carries a unique index
	// that a soft-deleted row would still occupy.
	if err := DB.Unscoped().Where("vendor_id = ?", vendor.ID).Delete(&models.Subscription{}).Error; err != nil {
		log.Error().Err(err).Uint("vendor_id", vendor.ID).Msg("failed to clear old subscription")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to activate subscription"})
		return
	}
	if err := DB.Create(&subscription).Error; err != nil {
		log.Error().Err(err).Uint("vendor_id", vendor.ID).Msg("failed to activate subscription")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to activate subscription"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"message":      "Payment verified. Subscription activated.",
		"subscription": subscription,
	})
}
