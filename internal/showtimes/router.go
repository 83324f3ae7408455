package showtimes

import (
	"booko/internal/shared/config"
	"booko/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupShowtimeRoutes(router *gin.RouterGroup, controller *Controller, cfg *config.Config) {
	publicShowtimes := router.Group("/showtimes")
	{
		publicShowtimes.GET("", controller.GetAllShowtimes)
		publicShowtimes.GET("/:id", controller.GetShowtime)
		publicShowtimes.GET("/:id/availability", controller.GetAvailability)
		publicShowtimes.POST("/:id/check-availability", controller.CheckAvailability)
	}

	adminShowtimes := router.Group("/admin/showtimes")
	adminShowtimes.Use(middleware.JWTAuth(cfg), middleware.RequireAdmin())
	{
		adminShowtimes.POST("", controller.CreateShowtime)
		adminShowtimes.PUT("/:id", controller.UpdateShowtime)
		adminShowtimes.DELETE("/:id", controller.DeleteShowtime)
	}
}
