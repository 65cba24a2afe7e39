package routes

import (
	"time"

	"bloodlink/handlers"
	"bloodlink/middleware"
	"bloodlink/models"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups the handlers and the shared bearer middleware so
// route registration stays in one place.
type HandlerBundle struct {
	Auth         *handlers.AuthHandler
	OTP          *handlers.OTPHandler
	Appointments *handlers.AppointmentHandler
	Inventory    *handlers.InventoryHandler
	Admin        *handlers.AdminHandler

	// Authenticate is the bearer-token middleware protecting private routes.
	Authenticate gin.HandlerFunc
}

// RegisterAuthRoutes registers authentication and session endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/login", hb.Auth.LoginHandler)
		api.POST("/refresh", hb.Auth.RefreshHandler)
		api.POST("/signup", hb.Auth.SignupHandler)

		// Protected routes (Require Authentication)
		api.Use(hb.Authenticate)
		api.POST("/logout", hb.Auth.LogoutHandler)
		api.POST("/logout-all", hb.Auth.LogoutAllHandler)
		api.GET("/sessions", hb.Auth.SessionsHandler)
		api.GET("/me", hb.Auth.MeHandler)
	}
}

// RegisterOTPRoutes registers the OTP challenge endpoints.
func RegisterOTPRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/otp")
	{
		api.POST("/send", hb.OTP.SendOTPHandler)
		api.POST("/verify", hb.OTP.VerifyOTPHandler)
	}
}

// RegisterAppointmentRoutes registers donor appointment endpoints.
func RegisterAppointmentRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/appointments")
	{
		api.Use(hb.Authenticate)
		api.Use(middleware.RequireRoles(models.RoleDonor))
		api.POST("", hb.Appointments.CreateAppointmentHandler)
		api.GET("", hb.Appointments.ListAppointmentsHandler)
	}
}

// RegisterInventoryRoutes registers facility inventory endpoints.
func RegisterInventoryRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/inventory")
	{
		api.Use(hb.Authenticate)
		api.Use(middleware.RequireRoles(models.RoleHospital, models.RoleBloodBank))
		api.PUT("", hb.Inventory.UpsertInventoryHandler)
		api.GET("", hb.Inventory.ListInventoryHandler)
	}
}

// RegisterAdminRoutes registers admin-only endpoints.
func RegisterAdminRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/admin")
	{
		api.Use(hb.Authenticate)
		api.Use(middleware.RequireRoles(models.RoleAdmin))
		api.GET("/donors", hb.Admin.ListDonorsHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", handlers.HealthHandler)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterAuthRoutes(r, hb)
	RegisterOTPRoutes(r, hb)
	RegisterAppointmentRoutes(r, hb)
	RegisterInventoryRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
	RegisterHealthRoute(r)
}
