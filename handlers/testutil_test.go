package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/moodykhalif23/kula-chipo2/models"
	"github.com/moodykhalif23/kula-chipo2/utils"
)

// setupRouter wires an in-memory database and the same route layout
// main builds.
func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)
	utils.SetSecret("test-secret")

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// The in-memory database lives per connection; pin the pool to one.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Vendor{},
		&models.MenuItem{},
		&models.Review{},
		&models.Reservation{},
		&models.Order{},
		&models.OrderItem{},
		&models.Subscription{},
	))
	DB = db

	router := gin.New()
	api := router.Group("/api")

	api.POST("/auth/register", RegisterHandler)
	api.POST("/auth/login", LoginHandler)

	api.GET("/vendors", ListVendorsHandler)
	api.GET("/vendors/:vendor_id", GetVendorHandler)
	api.GET("/vendors/:vendor_id/menu", GetVendorMenuHandler)
	api.GET("/vendors/:vendor_id/reviews", ListReviewsHandler)

	customer := api.Group("", AuthMiddleware(), RequireRole(models.RoleCustomer))
	customer.POST("/vendors/:vendor_id/reviews", CreateReviewHandler)
	customer.POST("/vendors/:vendor_id/reservations", CreateReservationHandler)
	customer.POST("/orders", PlaceOrderHandler)
	customer.GET("/orders", GetCustomerOrdersHandler)
	customer.GET("/orders/:number/tracking", OrderTrackingHandler)

	vendor := api.Group("/vendor", AuthMiddleware(), RequireRole(models.RoleVendor))
	vendor.GET("/listing", GetListingHandler)
	vendor.POST("/listing", UpdateListingHandler)
	vendor.POST("/menu", CreateMenuItemHandler)
	vendor.PUT("/menu/:item_id", UpdateMenuItemHandler)
	vendor.DELETE("/menu/:item_id", DeleteMenuItemHandler)
	vendor.GET("/reservations", ListVendorReservationsHandler)
	vendor.PUT("/reservations/:code", UpdateReservationHandler)
	vendor.PUT("/orders/:number/status", AdvanceOrderStatusHandler)

	api.GET("/admin/overview", AuthMiddleware(), RequireRole(models.RoleAdmin), AdminOverviewHandler)
	api.POST("/mpesa/verify", AuthMiddleware(), RequireRole(models.RoleVendor), VerifyMpesaHandler)
	api.POST("/errors", ReportClientErrorHandler)

	return router
}

func createUser(t *testing.T, email string, role models.Role) (models.User, string) {
	t.Helper()

	user := models.User{Email: email, Name: "Test " + string(role), Role: role}
	require.NoError(t, user.HashPassword("password123"))
	require.NoError(t, DB.Create(&user).Error)

	token, err := utils.GenerateToken(user.ID, user.Role)
	require.NoError(t, err)
	return user, token
}

// createVendor seeds a storefront with the demo menu used across the
// order tests.
func createVendor(t *testing.T, userID uint) models.Vendor {
	t.Helper()

	vendor := models.Vendor{
		UserID:      userID,
		Type:        "Food Truck",
		IsOpen:      true,
		DeliveryFee: decimal.RequireFromString("2.99"),
		MenuItems: []models.MenuItem{
			{Name: "Classic Fries", Price: decimal.RequireFromString("4.99"), Available: true},
			{Name: "Loaded Fries", Price: decimal.RequireFromString("7.99"), Available: true},
			{Name: "Truffle Fries", Price: decimal.RequireFromString("9.99"), Available: false},
		},
	}
	require.NoError(t, DB.Create(&vendor).Error)
	return vendor
}

func perform(router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}
