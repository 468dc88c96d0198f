package routes

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"localbookr-server/database"
	"localbookr-server/models"
	"localbookr-server/services"
)

// RegisterBookingRoutes registers the customer-facing booking routes
func RegisterBookingRoutes(router *gin.RouterGroup) {
	router.POST("/bookings", createBooking)
	router.GET("/bookings", getMyBookings)
	router.GET("/bookings/:id", getBooking)
	router.GET("/bookings/:id/pin", getBookingPin)
	router.POST("/bookings/:id/rating", rateBooking)
	router.POST("/bookings/:id/cancel", cancelBooking)
}

// createBooking creates a new booking for the authenticated customer. When
// the customer picked a specific provider from search, the booking is
// assigned to them immediately; otherwise it enters the pending queue for
// auto-assignment.
func createBooking(c *gin.Context) {
	userID := c.GetUint("user_id")

	var req models.BookingCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"message": err.Error(),
		})
		return
	}

	var service models.Service
	if err := database.DB.First(&service, req.ServiceID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Service not found",
			"message": "No service exists with the given id",
		})
		return
	}

	booking := models.Booking{
		CustomerID:  userID,
		ServiceID:   service.ID,
		Description: req.Description,
		Address:     req.Address,
		Area:        req.Area,
		Date:        req.Date,
		Time:        req.Time,
		Amount:      req.Amount,
		Status:      models.BookingStatusPending,
	}

	if err := database.DB.Create(&booking).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Booking creation failed",
			"message": "Failed to create booking",
		})
		return
	}

	// Direct booking of a chosen provider. Failure here leaves the booking
	// pending for the auto-assignment sweep rather than failing the request.
	if req.ProviderID != nil {
		if _, err := services.AssignProvider(booking.ID, *req.ProviderID); err != nil {
			log.Printf("⚠️ Direct assignment of provider %d to booking %d failed: %v", *req.ProviderID, booking.ID, err)
		}
	}

	created, err := services.GetBooking(booking.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Booking creation failed",
			"message": "Failed to load created booking",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Booking created successfully",
		"data":    created,
	})
}

// getMyBookings returns the authenticated customer's bookings
func getMyBookings(c *gin.Context) {
	userID := c.GetUint("user_id")

	query := database.DB.
		Preload("Service").
		Preload("Provider").
		Preload("Provider.User").
		Where("customer_id = ?", userID)

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var bookings []models.Booking
	if err := query.Order("created_at DESC").Find(&bookings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to fetch bookings",
			"message": "Could not retrieve bookings",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Bookings retrieved successfully",
		"data":    bookings,
		"count":   len(bookings),
	})
}

// getBooking returns a single booking owned by the authenticated customer
func getBooking(c *gin.Context) {
	booking, ok := loadOwnBooking(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Booking retrieved successfully",
		"data":    booking,
	})
}

// getBookingPin reveals the completion PIN to the booking's customer. The
// PIN only exists for bookings with a provider on the job; before that the
// client shows the placeholder.
func getBookingPin(c *gin.Context) {
	booking, ok := loadOwnBooking(c)
	if !ok {
		return
	}

	pin := services.PinSentinel
	if booking.Status == models.BookingStatusAssigned || booking.Status == models.BookingStatusInProgress {
		pin = services.DerivePinForBooking(booking.ID, booking.CreatedAt)
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "PIN retrieved successfully",
		"pin":     pin,
	})
}

// rateBooking records a one-time rating for a completed booking
func rateBooking(c *gin.Context) {
	userID := c.GetUint("user_id")

	bookingID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid booking id",
			"message": "Booking id must be a number",
		})
		return
	}

	var req models.BookingRatingCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"message": err.Error(),
		})
		return
	}

	booking, err := services.RateBooking(uint(bookingID), userID, req.Rating, req.Review)
	switch {
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Booking not found",
			"message": "No booking of yours exists with the given id",
		})
	case errors.Is(err, services.ErrInvalidTransition):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":   "Booking not completed",
			"message": "Only completed bookings can be rated",
		})
	case errors.Is(err, services.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{
			"error":   "Already rated",
			"message": "This booking has already been rated",
		})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Rating failed",
			"message": "Could not record rating",
		})
	default:
		c.JSON(http.StatusOK, gin.H{
			"message": "Rating recorded successfully",
			"data":    booking,
		})
	}
}

// cancelBooking cancels a booking owned by the authenticated customer
func cancelBooking(c *gin.Context) {
	booking, ok := loadOwnBooking(c)
	if !ok {
		return
	}

	cancelled, err := services.CancelBooking(booking.ID)
	switch {
	case errors.Is(err, services.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{
			"error":   "Cannot cancel",
			"message": "Completed or cancelled bookings cannot be cancelled",
		})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Cancellation failed",
			"message": "Could not cancel booking",
		})
	default:
		c.JSON(http.StatusOK, gin.H{
			"message": "Booking cancelled successfully",
			"data":    cancelled,
		})
	}
}

// loadOwnBooking resolves the :id path parameter to a booking owned by the
// authenticated customer, writing the error response itself on failure.
func loadOwnBooking(c *gin.Context) (*models.Booking, bool) {
	userID := c.GetUint("user_id")

	bookingID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid booking id",
			"message": "Booking id must be a number",
		})
		return nil, false
	}

	booking, err := services.GetBooking(uint(bookingID))
	if errors.Is(err, services.ErrNotFound) || (err == nil && booking.CustomerID != userID) {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Booking not found",
			"message": "No booking of yours exists with the given id",
		})
		return nil, false
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to fetch booking",
			"message": "Could not retrieve booking",
		})
		return nil, false
	}
	return booking, true
}
