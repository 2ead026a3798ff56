package handlers

import (
	"errors"
	"net/http"

	"ceylonescape/models"
	"ceylonescape/services/tour"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TourHandler exposes the tour catalogue over HTTP.
type TourHandler struct {
	Service tour.Service
	Logger  *zap.Logger
}

// NewTourHandler creates a TourHandler.
func NewTourHandler(svc tour.Service, logger *zap.Logger) *TourHandler {
	return &TourHandler{Service: svc, Logger: logger}
}

// ListTours handles GET /api/tours.
func (h *TourHandler) ListTours(c *gin.Context) {
	tours, err := h.Service.List(c.Request.Context())
	if err != nil {
		h.Logger.Error("Failed to list tours", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server error"})
		return
	}
	c.JSON(http.StatusOK, tours)
}

// GetTour handles GET /api/tours/:id.
func (h *TourHandler) GetTour(c *gin.Context) {
	t, err := h.Service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, tour.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"msg": "Tour not found"})
			return
		}
		h.Logger.Error("Failed to get tour", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server error"})
		return
	}
	c.JSON(http.StatusOK, t)
}

// CreateTour handles POST /api/tours.
func (h *TourHandler) CreateTour(c *gin.Context) {
	var input models.TourInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Invalid request body"})
		return
	}

	t, err := h.Service.Create(c.Request.Context(), input)
	if err != nil {
		if tour.IsValidation(err) {
			c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
			return
		}
		h.Logger.Error("Tour creation error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server error"})
		return
	}
	c.JSON(http.StatusCreated, t)
}

// UpdateTour handles PUT /api/tours/:id.
func (h *TourHandler) UpdateTour(c *gin.Context) {
	var input models.TourInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Invalid request body"})
		return
	}

	t, err := h.Service.Update(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		switch {
		case errors.Is(err, tour.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"msg": "Tour not found"})
		case tour.IsValidation(err):
			c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
		default:
			h.Logger.Error("Tour update error", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server error"})
		}
		return
	}
	c.JSON(http.StatusOK, t)
}

// DeleteTour handles DELETE /api/tours/:id.
func (h *TourHandler) DeleteTour(c *gin.Context) {
	if err := h.Service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, tour.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"msg": "Tour not found"})
			return
		}
		h.Logger.Error("Tour delete error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "Tour deleted"})
}
