package showtimes

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

func (c *Controller) CreateShowtime(ctx *gin.Context) {
	var req CreateShowtimeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	showtime, err := c.service.CreateShowtime(ctx.Request.Context(), req)
	if err != nil {
		if err == ErrInvalidShowTime {
			response.RespondJSON(ctx, "error", http.StatusBadRequest, err.Error(), nil, nil)
			return
		}
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to create showtime", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Showtime created successfully", showtime, nil)
}

func (c *Controller) GetShowtime(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid showtime ID", nil, nil)
		return
	}

	showtime, err := c.service.GetShowtimeByID(ctx.Request.Context(), id)
	if err != nil {
		switch err {
		case ErrShowtimeNotFound:
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Showtime not found", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to get showtime", nil, nil)
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Showtime retrieved successfully", showtime, nil)
}

func (c *Controller) GetAllShowtimes(ctx *gin.Context) {
	var query ShowtimeListQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	showtimes, err := c.service.GetAllShowtimes(ctx.Request.Context(), query)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to list showtimes", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Showtimes retrieved successfully", showtimes, nil)
}

func (c *Controller) UpdateShowtime(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid showtime ID", nil, nil)
		return
	}

	var req UpdateShowtimeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	showtime, err := c.service.UpdateShowtime(ctx.Request.Context(), id, req)
	if err != nil {
		switch err {
		case ErrShowtimeNotFound:
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Showtime not found", nil, nil)
		case ErrInvalidShowTime:
			response.RespondJSON(ctx, "error", http.StatusBadRequest, err.Error(), nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to update showtime", nil, nil)
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Showtime updated successfully", showtime, nil)
}

func (c *Controller) DeleteShowtime(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid showtime ID", nil, nil)
		return
	}

	if err := c.service.DeleteShowtime(ctx.Request.Context(), id); err != nil {
		switch err {
		case ErrShowtimeNotFound:
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Showtime not found", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to delete showtime", nil, nil)
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Showtime deleted successfully", nil, nil)
}

// GetAvailability handles GET /showtimes/:id/availability.
func (c *Controller) GetAvailability(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid showtime ID", nil, nil)
		return
	}

	availability, err := c.service.ComputeAvailableSeats(ctx.Request.Context(), id)
	if err != nil {
		switch err {
		case ErrShowtimeNotFound:
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Showtime not found", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to compute availability", nil, nil)
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Availability retrieved successfully", availability, nil)
}

// CheckAvailability handles POST /showtimes/:id/check-availability.
func (c *Controller) CheckAvailability(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid showtime ID", nil, nil)
		return
	}

	var req CheckAvailabilityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	check, err := c.service.CheckAvailability(ctx.Request.Context(), id, req.Seats)
	if err != nil {
		switch err {
		case ErrShowtimeNotFound:
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Showtime not found", nil, nil)
		case ErrNoSeatsRequested:
			response.RespondJSON(ctx, "error", http.StatusBadRequest, "No seats requested", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to check availability", nil, nil)
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Availability checked successfully", check, nil)
}
