package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/moodykhalif23/kula-chipo2/cart"
	"github.com/moodykhalif23/kula-chipo2/models"
	"github.com/moodykhalif23/kula-chipo2/tracking"
)

// OrderLineRequest is part of PlaceOrderRequest
type OrderLineRequest struct {
	MenuItemID uint `json:"menu_item_id" binding:"required"`
	Quantity   int  `json:"quantity" binding:"required,gt=0"`
}

// PlaceOrderRequest defines the request body (JSON) for a customer
// placing an order
type PlaceOrderRequest struct {
	VendorID uint               `json:"vendor_id" binding:"required"`
	Items    []OrderLineRequest `json:"items" binding:"required,min=1"`
}

type UpdateOrderStatusRequest struct {
	Status tracking.Stage `json:"status" binding:"required"`
}

// PlaceOrderHandler prices the submitted cart against the vendor's
// current menu inside a transaction and snapshots the result.
func PlaceOrderHandler(c *gin.Context) {
	claims := GetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User authentication details not found"})
		return
	}

	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tx := DB.Begin()
	if tx.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": tx.Error.Error()})
		return
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	var vendor models.Vendor
	if err := tx.First(&vendor, req.VendorID).Error; err != nil {
		tx.Rollback()
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Vendor not found"})
			return
		}
		log.Error().Err(err).Uint("vendor_id", req.VendorID).Msg("failed to load vendor")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load vendor"})
		return
	}

	// Fetch all referenced menu items at once and build the catalog
	// the cart is priced against.
	menuItemIDs := make([]uint, 0, len(req.Items))
	basket := cart.New()
	for _, line := range req.Items {
		menuItemIDs = append(menuItemIDs, line.MenuItemID)
		for i := 0; i < line.Quantity; i++ {
			basket.Add(line.MenuItemID)
		}
	}

	var menuItems []models.MenuItem
	if err := tx.Where("id IN ? AND vendor_id = ?", menuItemIDs, vendor.ID).Find(&menuItems).Error; err != nil {
		tx.Rollback()
		log.Error().Err(err).Uint("vendor_id", vendor.ID).Msg("failed to load menu items")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load menu items"})
		return
	}

	catalog := cart.Catalog{}
	itemByID := make(map[uint]models.MenuItem, len(menuItems))
	for _, item := range menuItems {
		catalog[item.ID] = cart.Item{
			ID:        item.ID,
			Name:      item.Name,
			Price:     item.Price,
			Available: item.Available,
		}
		itemByID[item.ID] = item
	}

	subtotal, err := catalog.Subtotal(basket)
	if err != nil {
		tx.Rollback()
		if errors.Is(err, cart.ErrUnknownItem) || errors.Is(err, cart.ErrUnavailableItem) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	total := subtotal.Add(vendor.DeliveryFee)

	orderItems := make([]models.OrderItem, 0, len(req.Items))
	for _, line := range req.Items {
		item := itemByID[line.MenuItemID]
		orderItems = append(orderItems, models.OrderItem{
			MenuItemID: item.ID,
			Name:       item.Name,
			UnitPrice:  item.Price,
			Quantity:   line.Quantity,
		})
	}

	order := models.Order{
		Number:      uuid.NewString(),
		CustomerID:  claims.UserID,
		VendorID:    vendor.ID,
		Items:       orderItems,
		Subtotal:    subtotal,
		DeliveryFee: vendor.DeliveryFee,
		Total:       total,
		Status:      tracking.StageConfirmed,
	}

	if err := tx.Create(&order).Error; err != nil {
		tx.Rollback()
		log.Error().Err(err).Msg("failed to create order")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
		return
	}

	if err := tx.Commit().Error; err != nil {
		log.Error().Err(err).Msg("failed to commit order")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to place order"})
		return
	}

	var created models.Order
	if err := DB.Preload("Items").Preload("Vendor").First(&created, order.ID).Error; err != nil {
		c.JSON(http.StatusCreated, order)
		return
	}

	c.JSON(http.StatusCreated, created)
}

// GetCustomerOrdersHandler lists the caller's own orders.
func GetCustomerOrdersHandler(c *gin.Context) {
	claims := GetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User authentication details not found"})
		return
	}

	query := DB.Where("customer_id = ?", claims.UserID)
	if statusFilter := c.Query("status"); statusFilter != "" {
		query = query.Where("status = ?", tracking.Stage(statusFilter))
	}

	var orders []models.Order
	if err := query.Preload("Items").Preload("Vendor").
		Order("created_at DESC").Find(&orders).Error; err != nil {
		log.Error().Err(err).Uint("customer_id", claims.UserID).Msg("failed to list orders")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list orders"})
		return
	}

	if orders == nil {
		orders = []models.Order{}
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// OrderTrackingHandler renders the five-step progress view for one of
// the caller's orders. The view is a pure function of the stored
// status; nothing here ticks forward on its own.
func OrderTrackingHandler(c *gin.Context) {
	claims := GetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User authentication details not found"})
		return
	}

	number := c.Param("number")

	var order models.Order
	if err := DB.Preload("Vendor").
		Where("number = ? AND customer_id = ?", number, claims.UserID).
		First(&order).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		log.Error().Err(err).Str("number", number).Msg("failed to load order")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load order"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"order_number": order.Number,
		"vendor":       order.Vendor.Type,
		"status":       order.Status,
		"progress":     tracking.Progress(order.Status),
		"steps":        tracking.View(order.Status),
	})
}

// AdvanceOrderStatusHandler moves one of the vendor's orders exactly
// one stage forward. Re-sending the current stage is a no-op; skips
// and regressions are rejected.
func AdvanceOrderStatusHandler(c *gin.Context) {
	vendor, ok := requireVendor(c)
	if !ok {
		return
	}

	number := c.Param("number")

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !tracking.Valid(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status value"})
		return
	}

	var order models.Order
	if err := DB.Where("number = ? AND vendor_id = ?", number, vendor.ID).First(&order).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		log.Error().Err(err).Str("number", number).Msg("failed to load order")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load order"})
		return
	}

	if req.Status == order.Status {
		c.JSON(http.StatusOK, order)
		return
	}

	next, hasNext := tracking.Next(order.Status)
	if !hasNext || req.Status != next {
		c.JSON(http.StatusConflict, gin.H{"error": "Orders can only advance one stage at a time"})
		return
	}

	if err := DB.Model(&order).Update("status", req.Status).Error; err != nil {
		log.Error().Err(err).Uint("order_id", order.ID).Msg("failed to update order status")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order status"})
		return
	}

	c.JSON(http.StatusOK, order)
}
