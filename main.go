package main

import (
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/moodykhalif23/kula-chipo2/config"
	"github.com/moodykhalif23/kula-chipo2/handlers"
	"github.com/moodykhalif23/kula-chipo2/models"
	"github.com/moodykhalif23/kula-chipo2/utils"
)

func main() {

	if err := godotenv.Load(); err != nil {
		zlog.Info().Msg("no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		zlog.Fatal().Err(err).Msg("invalid configuration")
	}

	if cfg.AppEnv == "development" || cfg.AppEnv == "debug" {
		zlog.Logger = zlog.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	utils.SetSecret(cfg.JWTSecret)
	handlers.Cfg = cfg

	/* DATABASE SETUP STARTS */

	db, err := gorm.Open(sqlite.Open(cfg.DatabaseURI), &gorm.Config{})
	if err != nil {
		zlog.Fatal().Err(err).Msg("failed to connect to database")
	}
	handlers.DB = db

	if err := db.AutoMigrate(
		&models.User{},
		&models.Vendor{},
		&models.MenuItem{},
		&models.Review{},
		&models.Reservation{},
		&models.Order{},
		&models.OrderItem{},
		&models.Subscription{},
	); err != nil {
		zlog.Fatal().Err(err).Msg("failed to migrate database")
	}
	/* DATABASE SETUP ENDS */

	/* ROUTING STARTS */
	if cfg.AppEnv != "development" && cfg.AppEnv != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), handlers.RequestLogger())

	var corsConfig cors.Config
	if cfg.AppEnv == "development" || cfg.AppEnv == "debug" {
		// Development: Allow all origins
		corsConfig = cors.Config{
			AllowOrigins:     []string{"*"},
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}
	} else {
		corsConfig = cors.Config{
			AllowOrigins:     []string{"https://kulachipo.com"},
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}
	}
	router.Use(cors.New(corsConfig))

	api := router.Group("/api")

	// --- Authentication Routes ---
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", handlers.RegisterHandler)
		authGroup.POST("/login", handlers.LoginHandler)
	}

	// --- Public Browse Routes --- (Auth token not needed)
	publicGroup := api.Group("/vendors")
	{
		publicGroup.GET("", handlers.ListVendorsHandler)
		publicGroup.GET("/:vendor_id", handlers.GetVendorHandler)
		publicGroup.GET("/:vendor_id/menu", handlers.GetVendorMenuHandler)
		publicGroup.GET("/:vendor_id/reviews", handlers.ListReviewsHandler)
	}

	// --- Customer Protected Routes ---
	customerGroup := api.Group("", handlers.AuthMiddleware(), handlers.RequireRole(models.RoleCustomer))
	{
		customerGroup.POST("/vendors/:vendor_id/reviews", handlers.CreateReviewHandler)
		customerGroup.POST("/vendors/:vendor_id/reservations", handlers.CreateReservationHandler)

		orderRoutes := customerGroup.Group("/orders")
		{
			orderRoutes.POST("", handlers.PlaceOrderHandler)
			orderRoutes.GET("", handlers.GetCustomerOrdersHandler)
			orderRoutes.GET("/:number/tracking", handlers.OrderTrackingHandler)
		}
	}

	// --- Vendor Protected Routes ---
	vendorGroup := api.Group("/vendor", handlers.AuthMiddleware(), handlers.RequireRole(models.RoleVendor))
	{
		vendorGroup.GET("/listing", handlers.GetListingHandler)
		vendorGroup.POST("/listing", handlers.UpdateListingHandler)
		vendorGroup.POST("/gallery", handlers.UploadGalleryHandler)

		menuRoutes := vendorGroup.Group("/menu")
		{
			menuRoutes.POST("", handlers.CreateMenuItemHandler)
			menuRoutes.PUT("/:item_id", handlers.UpdateMenuItemHandler)
			menuRoutes.DELETE("/:item_id", handlers.DeleteMenuItemHandler)
		}

		reservationRoutes := vendorGroup.Group("/reservations")
		{
			reservationRoutes.GET("", handlers.ListVendorReservationsHandler)
			reservationRoutes.PUT("/:code", handlers.UpdateReservationHandler)
		}

		vendorGroup.PUT("/orders/:number/status", handlers.AdvanceOrderStatusHandler)
	}

	// --- Payments ---
	api.POST("/mpesa/verify", handlers.AuthMiddleware(), handlers.RequireRole(models.RoleVendor), handlers.VerifyMpesaHandler)

	// --- Admin ---
	api.GET("/admin/overview", handlers.AuthMiddleware(), handlers.RequireRole(models.RoleAdmin), handlers.AdminOverviewHandler)

	// --- Client error intake ---
	api.POST("/errors", handlers.ReportClientErrorHandler)

	/* ROUTING ENDS */

	zlog.Info().Str("port", cfg.Port).Msg("server listening")
	if err := router.Run(":" + cfg.Port); err != nil {
		zlog.Fatal().Err(err).Msg("failed to run server")
	}
}
