package routes

import (
	"net/http"

	"ceylonescape/handlers"
	"ceylonescape/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterTourRoutes registers the tour catalogue endpoints. Reads are
// public; catalogue mutations are admin-only.
func RegisterTourRoutes(r *gin.Engine, th *handlers.TourHandler, rh *handlers.ReviewHandler) {
	api := r.Group("/api/tours")
	{
		api.GET("", th.ListTours)
		api.GET("/:id", th.GetTour)
		api.GET("/:id/reviews", rh.ListTourReviews)

		protected := api.Group("")
		protected.Use(middleware.AuthRequired(), middleware.RequireRoles("admin"))
		protected.POST("", th.CreateTour)
		protected.PUT("/:id", th.UpdateTour)
		protected.DELETE("/:id", th.DeleteTour)
	}
}

// RegisterBookingRoutes registers booking endpoints plus the payment webhook.
// The webhook route hands the raw body straight to the handler; no
// body-parsing middleware may run ahead of it.
func RegisterBookingRoutes(r *gin.Engine, bh *handlers.BookingHandler, ph *handlers.PaymentHandler) {
	api := r.Group("/api/bookings")
	{
		api.POST("/webhook", ph.HandleWebhook)

		api.GET("", bh.ListBookings)
		api.GET("/user/:userId", bh.ListUserBookings)
		api.POST("", bh.CreateBooking)
		api.PUT("/:id", bh.UpdateBooking)
		api.DELETE("/:id", bh.CancelBooking)
	}
}

// RegisterReviewRoutes registers review mutation endpoints. All of them
// require an authenticated caller; ownership is checked in the service.
func RegisterReviewRoutes(r *gin.Engine, rh *handlers.ReviewHandler) {
	api := r.Group("/api/reviews")
	{
		api.Use(middleware.AuthRequired())
		api.POST("", rh.CreateReview)
		api.PUT("/:id", rh.UpdateReview)
		api.DELETE("/:id", rh.DeleteReview)
	}
}

// RegisterCheckoutRoute registers the checkout-session endpoint.
func RegisterCheckoutRoute(r *gin.Engine, ph *handlers.PaymentHandler) {
	r.POST("/create-checkout-session", ph.CreateCheckoutSession)
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Ceylon Escape API running!"})
	})
}
