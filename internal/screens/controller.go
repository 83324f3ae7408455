package screens

import (
	"errors"
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

func (c *Controller) CreateScreen(ctx *gin.Context) {
	var req CreateScreenRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	screen, err := c.service.CreateScreen(ctx.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrDuplicateSeat) || errors.Is(err, ErrInvalidCategory) {
			response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid seat layout", nil, err.Error())
			return
		}
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to create screen", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Screen created successfully", screen, nil)
}

func (c *Controller) GetScreen(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid screen ID", nil, nil)
		return
	}

	screen, err := c.service.GetScreenByID(ctx.Request.Context(), id)
	if err != nil {
		switch err {
		case ErrScreenNotFound:
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Screen not found", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to get screen", nil, nil)
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Screen retrieved successfully", screen, nil)
}

func (c *Controller) GetScreensByTheater(ctx *gin.Context) {
	theaterID, err := uuid.Parse(ctx.Param("theaterId"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid theater ID", nil, nil)
		return
	}

	screens, err := c.service.GetScreensByTheater(ctx.Request.Context(), theaterID)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to list screens", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Screens retrieved successfully", screens, nil)
}

func (c *Controller) UpdateScreen(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid screen ID", nil, nil)
		return
	}

	var req UpdateScreenRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	screen, err := c.service.UpdateScreen(ctx.Request.Context(), id, req)
	if err != nil {
		switch {
		case err == ErrScreenNotFound:
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Screen not found", nil, nil)
		case errors.Is(err, ErrDuplicateSeat), errors.Is(err, ErrInvalidCategory):
			response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid seat layout", nil, err.Error())
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to update screen", nil, nil)
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Screen updated successfully", screen, nil)
}

func (c *Controller) DeleteScreen(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid screen ID", nil, nil)
		return
	}

	if err := c.service.DeleteScreen(ctx.Request.Context(), id); err != nil {
		switch err {
		case ErrScreenNotFound:
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Screen not found", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to delete screen", nil, nil)
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Screen deleted successfully", nil, nil)
}
