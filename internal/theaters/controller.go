package theaters

import (
	"net/http"

	"booko/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

func (c *Controller) CreateTheater(ctx *gin.Context) {
	var req CreateTheaterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	theater, err := c.service.CreateTheater(ctx.Request.Context(), req)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to create theater", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Theater created successfully", theater, nil)
}

func (c *Controller) GetTheater(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid theater ID", nil, nil)
		return
	}

	theater, err := c.service.GetTheaterByID(ctx.Request.Context(), id)
	if err != nil {
		switch err {
		case ErrTheaterNotFound:
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Theater not found", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to get theater", nil, nil)
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Theater retrieved successfully", theater, nil)
}

func (c *Controller) GetAllTheaters(ctx *gin.Context) {
	theaters, err := c.service.GetAllTheaters(ctx.Request.Context())
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to list theaters", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Theaters retrieved successfully", theaters, nil)
}

func (c *Controller) UpdateTheater(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid theater ID", nil, nil)
		return
	}

	var req UpdateTheaterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	theater, err := c.service.UpdateTheater(ctx.Request.Context(), id, req)
	if err != nil {
		switch err {
		case ErrTheaterNotFound:
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Theater not found", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to update theater", nil, nil)
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Theater updated successfully", theater, nil)
}

func (c *Controller) DeleteTheater(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid theater ID", nil, nil)
		return
	}

	if err := c.service.DeleteTheater(ctx.Request.Context(), id); err != nil {
		switch err {
		case ErrTheaterNotFound:
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Theater not found", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to delete theater", nil, nil)
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Theater deleted successfully", nil, nil)
}
