package payments

import (
	"net/http"

	"booko/internal/bookings"
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

func (c *Controller) ProcessPayment(ctx *gin.Context) {
	rawUserID, exists := ctx.Get("user_id")
	if !exists {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}
	userID, err := uuid.Parse(rawUserID.(string))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Invalid user identity", nil, nil)
		return
	}

	bookingID, err := uuid.Parse(ctx.Param("bookingId"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid booking ID", nil, nil)
		return
	}

	var req ProcessPaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	payment, err := c.service.ProcessPayment(ctx.Request.Context(), userID, bookingID, req)
	if err != nil {
		if declined, ok := AsGatewayDeclined(err); ok {
			response.RespondJSON(ctx, "error", http.StatusPaymentRequired, "Payment was declined", gin.H{
				"transaction_id": declined.TransactionID,
			}, nil)
			return
		}
		switch err {
		case bookings.ErrBookingNotFound:
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Booking not found", nil, nil)
		case ErrForbidden:
			response.RespondJSON(ctx, "error", http.StatusForbidden, "Only the booking owner can pay", nil, nil)
		case ErrAlreadyPaid:
			response.RespondJSON(ctx, "error", http.StatusConflict, "Booking is already paid", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to process payment", nil, nil)
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Payment processed successfully", payment, nil)
}

func (c *Controller) GetPayment(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid payment ID", nil, nil)
		return
	}

	payment, err := c.service.GetPaymentByID(ctx.Request.Context(), id)
	if err != nil {
		switch err {
		case ErrPaymentNotFound:
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Payment not found", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to get payment", nil, nil)
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Payment retrieved successfully", payment, nil)
}

func (c *Controller) GetPaymentsByBooking(ctx *gin.Context) {
	bookingID, err := uuid.Parse(ctx.Param("bookingId"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid booking ID", nil, nil)
		return
	}

	payments, err := c.service.GetPaymentsByBooking(ctx.Request.Context(), bookingID)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to list payments", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Payments retrieved successfully", payments, nil)
}

func (c *Controller) GetAllPayments(ctx *gin.Context) {
	var query PaymentListQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	payments, err := c.service.GetAllPayments(ctx.Request.Context(), query)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to list payments", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Payments retrieved successfully", payments, nil)
}
