package theaters

import (
	"booko/internal/shared/config"
	"booko/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupTheaterRoutes(router *gin.RouterGroup, controller *Controller, cfg *config.Config) {
	publicTheaters := router.Group("/theaters")
	{
		publicTheaters.GET("", controller.GetAllTheaters)
		publicTheaters.GET("/:id", controller.GetTheater)
	}

	adminTheaters := router.Group("/admin/theaters")
	adminTheaters.Use(middleware.JWTAuth(cfg), middleware.RequireAdmin())
	{
		adminTheaters.POST("", controller.CreateTheater)
		adminTheaters.PUT("/:id", controller.UpdateTheater)
		adminTheaters.DELETE("/:id", controller.DeleteTheater)
	}
}
