package bookings

import (
	"booko/internal/shared/config"
	"booko/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupBookingRoutes(router *gin.RouterGroup, controller *Controller, cfg *config.Config) {
	userBookings := router.Group("/bookings")
	userBookings.Use(middleware.JWTAuth(cfg))
	{
		userBookings.POST("", controller.CreateBooking)
		userBookings.GET("/user", controller.GetUserBookings)
		userBookings.GET("/:id", controller.GetBooking)
		userBookings.PUT("/:id/status", controller.UpdateBookingStatus)
	}

	adminBookings := router.Group("/admin/bookings")
	adminBookings.Use(middleware.JWTAuth(cfg), middleware.RequireAdmin())
	{
		adminBookings.GET("", controller.GetAllBookings)
	}
}
