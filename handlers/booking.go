package handlers

import (
	"errors"
	"net/http"

	"ceylonescape/models"
	"ceylonescape/services/booking"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler exposes the booking admission controller over HTTP.
type BookingHandler struct {
	Service booking.Service
	Logger  *zap.Logger
}

// NewBookingHandler creates a BookingHandler.
func NewBookingHandler(svc booking.Service, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Service: svc, Logger: logger}
}

// CreateBooking handles POST /api/bookings.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var input struct {
		UserID      string `json:"userId"`
		TourID      string `json:"tourId"`
		BookingDate string `json:"bookingDate"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Invalid request body"})
		return
	}

	b, err := h.Service.Create(c.Request.Context(), input.UserID, input.TourID, input.BookingDate)
	if err != nil {
		if errors.Is(err, booking.ErrDuplicateBooking) {
			c.JSON(http.StatusBadRequest, gin.H{"msg": booking.DuplicateBookingMessage})
			return
		}
		if booking.IsValidation(err) {
			c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
			return
		}
		h.Logger.Error("Booking creation error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server error"})
		return
	}
	c.JSON(http.StatusCreated, b)
}

// ListBookings handles GET /api/bookings.
func (h *BookingHandler) ListBookings(c *gin.Context) {
	filter := models.BookingFilter{
		TourID: c.Query("tourId"),
		Status: c.Query("status"),
	}
	bookings, err := h.Service.List(c.Request.Context(), filter)
	if err != nil {
		h.Logger.Error("Failed to list bookings", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server error"})
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// ListUserBookings handles GET /api/bookings/user/:userId.
func (h *BookingHandler) ListUserBookings(c *gin.Context) {
	bookings, err := h.Service.List(c.Request.Context(), models.BookingFilter{UserID: c.Param("userId")})
	if err != nil {
		h.Logger.Error("Failed to list user bookings", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server error"})
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// UpdateBooking handles PUT /api/bookings/:id.
func (h *BookingHandler) UpdateBooking(c *gin.Context) {
	var patch models.BookingUpdate
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Invalid request body"})
		return
	}

	b, err := h.Service.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		switch {
		case errors.Is(err, booking.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"msg": "Booking not found"})
		case errors.Is(err, booking.ErrDuplicateBooking):
			c.JSON(http.StatusBadRequest, gin.H{"msg": booking.DuplicateBookingMessage})
		case booking.IsValidation(err):
			c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
		default:
			h.Logger.Error("Booking update error", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server error"})
		}
		return
	}
	c.JSON(http.StatusOK, b)
}

// CancelBooking handles DELETE /api/bookings/:id.
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	if err := h.Service.Cancel(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, booking.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"msg": "Booking not found"})
			return
		}
		h.Logger.Error("Booking cancel error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "Booking cancelled"})
}
