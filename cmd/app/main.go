package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"

	"rutaviva/cmd/fx/account_fx"
	"rutaviva/cmd/fx/booking_fx"
	"rutaviva/cmd/fx/db_fx"
	"rutaviva/cmd/fx/itinerary_fx"
	"rutaviva/cmd/fx/listing_fx"
	"rutaviva/internal/api/controllers"
	"rutaviva/internal/services"
	"rutaviva/pkg/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment")
	}

	app := fx.New(
		db_fx.Module,
		account_fx.Module,
		listing_fx.Module,
		booking_fx.Module,
		itinerary_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine) {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Printf("Starting HTTP server at :%s", port)
				if err := engine.Run(":" + port); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping HTTP server")
			return nil
		},
	})
}

func ProvideRouter(
	accountController *controllers.AccountController,
	listingsController *controllers.ListingsController,
	bookingController *controllers.BookingController,
	itineraryController *controllers.ItineraryController) *gin.Engine {

	r := gin.Default()
	r.Use(gin.Recovery())
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.CORSMiddleware())

	RegisterRoutes(r, accountController, listingsController, bookingController, itineraryController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	accountController *controllers.AccountController,
	listingsController *controllers.ListingsController,
	bookingController *controllers.BookingController,
	itineraryController *controllers.ItineraryController) {

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	authGroup := r.Group("/auth")
	authGroup.POST("/login", accountController.Login)
	authGroup.POST("/signup", accountController.SignUp)

	listingsGroup := r.Group("/listings")
	listingsGroup.GET("", listingsController.ListListings)
	listingsGroup.GET("/routes", listingsController.GetRoutes)
	listingsGroup.GET("/routes/:route/map-path", listingsController.GetRouteMapPath)
	listingsGroup.GET("/:id", listingsController.GetListingByID)
	listingsGroup.GET("/:id/bookings",
		middleware.JWTAuthMiddleware(),
		bookingController.ListBookingsForListing)
	listingsGroup.POST("",
		middleware.JWTAuthMiddleware(),
		middleware.RoleMiddleware(services.RoleMerchant),
		listingsController.CreateListing)
	listingsGroup.PUT("/:id",
		middleware.JWTAuthMiddleware(),
		middleware.RoleMiddleware(services.RoleMerchant),
		listingsController.UpdateListing)
	listingsGroup.DELETE("/:id",
		middleware.JWTAuthMiddleware(),
		middleware.RoleMiddleware(services.RoleMerchant),
		listingsController.DeleteListing)

	assistantGroup := r.Group("/assistant")
	assistantGroup.POST("/itinerary", itineraryController.BuildItinerary)

	paypalGroup := r.Group("/api/paypal")
	paypalGroup.POST("/create-order", bookingController.CreateOrder)
	paypalGroup.POST("/capture-order", bookingController.CaptureOrder)
}
