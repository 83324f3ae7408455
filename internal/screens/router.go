package screens

import (
	"booko/internal/shared/config"
	"booko/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupScreenRoutes(router *gin.RouterGroup, controller *Controller, cfg *config.Config) {
	publicScreens := router.Group("/screens")
	{
		publicScreens.GET("/:id", controller.GetScreen)
		publicScreens.GET("/theater/:theaterId", controller.GetScreensByTheater)
	}

	adminScreens := router.Group("/admin/screens")
	adminScreens.Use(middleware.JWTAuth(cfg), middleware.RequireAdmin())
	{
		adminScreens.POST("", controller.CreateScreen)
		adminScreens.PUT("/:id", controller.UpdateScreen)
		adminScreens.DELETE("/:id", controller.DeleteScreen)
	}
}
