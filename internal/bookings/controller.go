package bookings

import (
	"net/http"

	"booko/internal/showtimes"
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

func requesterFromContext(ctx *gin.Context) (userID string, role string, ok bool) {
	id, exists := ctx.Get("user_id")
	if !exists {
		return "", "", false
	}
	r, _ := ctx.Get("user_role")
	roleStr, _ := r.(string)
	idStr, _ := id.(string)
	return idStr, roleStr, idStr != ""
}

func (c *Controller) CreateBooking(ctx *gin.Context) {
	requesterID, _, ok := requesterFromContext(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	userID, err := uuid.Parse(requesterID)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Invalid user identity", nil, nil)
		return
	}

	var req CreateBookingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	booking, err := c.service.CreateBooking(ctx.Request.Context(), userID, req)
	if err != nil {
		if conflict, ok := showtimes.AsSeatConflict(err); ok {
			response.RespondJSON(ctx, "error", http.StatusBadRequest, "Selected seats are not available", gin.H{
				"unavailable_seats": conflict.UnavailableSeats,
			}, nil)
			return
		}
		switch err {
		case showtimes.ErrShowtimeNotFound:
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Showtime not found", nil, nil)
		case showtimes.ErrNoSeatsRequested:
			response.RespondJSON(ctx, "error", http.StatusBadRequest, "No seats requested", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to create booking", nil, nil)
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Booking created successfully", booking, nil)
}

func (c *Controller) GetBooking(ctx *gin.Context) {
	requesterID, role, ok := requesterFromContext(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	bookingID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid booking ID", nil, nil)
		return
	}

	booking, err := c.service.GetBookingByID(ctx.Request.Context(), bookingID, requesterID, role)
	if err != nil {
		switch err {
		case ErrBookingNotFound:
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Booking not found", nil, nil)
		case ErrForbidden:
			response.RespondJSON(ctx, "error", http.StatusForbidden, "Not allowed to access this booking", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to get booking", nil, nil)
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Booking retrieved successfully", booking, nil)
}

func (c *Controller) GetUserBookings(ctx *gin.Context) {
	requesterID, _, ok := requesterFromContext(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	userID, err := uuid.Parse(requesterID)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Invalid user identity", nil, nil)
		return
	}

	bookings, err := c.service.GetUserBookings(ctx.Request.Context(), userID)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to list bookings", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Bookings retrieved successfully", bookings, nil)
}

func (c *Controller) GetAllBookings(ctx *gin.Context) {
	var query BookingListQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	bookings, err := c.service.GetAllBookings(ctx.Request.Context(), query)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to list bookings", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Bookings retrieved successfully", bookings, nil)
}

func (c *Controller) UpdateBookingStatus(ctx *gin.Context) {
	requesterID, role, ok := requesterFromContext(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	bookingID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid booking ID", nil, nil)
		return
	}

	var req UpdateBookingStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	booking, err := c.service.UpdateBookingStatus(ctx.Request.Context(), bookingID, requesterID, role, req)
	if err != nil {
		switch err {
		case ErrBookingNotFound:
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Booking not found", nil, nil)
		case ErrForbidden:
			response.RespondJSON(ctx, "error", http.StatusForbidden, "Not allowed to modify this booking", nil, nil)
		case ErrInvalidStatus:
			response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid status value", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to update booking", nil, nil)
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Booking updated successfully", booking, nil)
}
