package payments

import (
	"booko/internal/shared/config"
	"booko/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupPaymentRoutes(router *gin.RouterGroup, controller *Controller, cfg *config.Config) {
	userPayments := router.Group("/payments")
	userPayments.Use(middleware.JWTAuth(cfg))
	{
		userPayments.POST("/:bookingId", controller.ProcessPayment)
	}

	adminPayments := router.Group("/admin/payments")
	adminPayments.Use(middleware.JWTAuth(cfg), middleware.RequireAdmin())
	{
		adminPayments.GET("", controller.GetAllPayments)
		adminPayments.GET("/:id", controller.GetPayment)
		adminPayments.GET("/booking/:bookingId", controller.GetPaymentsByBooking)
	}
}
