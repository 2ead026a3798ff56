package handlers

import (
	"errors"
	"net/http"

	"ceylonescape/models"
	"ceylonescape/services/review"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ReviewHandler exposes review mutations over HTTP. Ownership checks happen
// in the service; the handler only supplies the authenticated actor.
type ReviewHandler struct {
	Service review.Service
	Logger  *zap.Logger
}

// NewReviewHandler creates a ReviewHandler.
func NewReviewHandler(svc review.Service, logger *zap.Logger) *ReviewHandler {
	return &ReviewHandler{Service: svc, Logger: logger}
}

func actorFromContext(c *gin.Context) models.Actor {
	return models.Actor{
		ID:   c.GetString("userID"),
		Role: c.GetString("userRole"),
	}
}

// CreateReview handles POST /api/reviews.
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	var input models.ReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Invalid request body"})
		return
	}

	r, err := h.Service.Create(c.Request.Context(), c.GetString("userID"), input)
	if err != nil {
		if review.IsValidation(err) {
			c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
			return
		}
		h.Logger.Error("Review creation error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server error"})
		return
	}
	c.JSON(http.StatusCreated, r)
}

// UpdateReview handles PUT /api/reviews/:id.
func (h *ReviewHandler) UpdateReview(c *gin.Context) {
	var patch models.ReviewUpdate
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Invalid request body"})
		return
	}

	r, err := h.Service.Update(c.Request.Context(), c.Param("id"), actorFromContext(c), patch)
	if err != nil {
		switch {
		case errors.Is(err, review.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"msg": "Review not found"})
		case errors.Is(err, review.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"msg": "Not authorized"})
		case review.IsValidation(err):
			c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
		default:
			h.Logger.Error("Review update error", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server error"})
		}
		return
	}
	c.JSON(http.StatusOK, r)
}

// DeleteReview handles DELETE /api/reviews/:id.
func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	if err := h.Service.Delete(c.Request.Context(), c.Param("id"), actorFromContext(c)); err != nil {
		switch {
		case errors.Is(err, review.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"msg": "Review not found"})
		case errors.Is(err, review.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"msg": "Not authorized"})
		default:
			h.Logger.Error("Review delete error", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server error"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "Review deleted"})
}

// ListTourReviews handles GET /api/tours/:id/reviews.
func (h *ReviewHandler) ListTourReviews(c *gin.Context) {
	reviews, err := h.Service.ListByTour(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.Logger.Error("Failed to list reviews", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server error"})
		return
	}
	c.JSON(http.StatusOK, reviews)
}
