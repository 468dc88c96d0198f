package routes

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"localbookr-server/database"
	"localbookr-server/jobs"
	"localbookr-server/models"
	"localbookr-server/services"
)

// RegisterAdminBookingRoutes registers the admin booking management routes
func RegisterAdminBookingRoutes(router *gin.RouterGroup) {
	router.GET("/admin/bookings", getAdminBookings)
	router.GET("/admin/bookings/:id/candidates", getBookingCandidates)
	router.POST("/admin/bookings/:id/confirm", confirmAdminBooking)
	router.POST("/admin/bookings/:id/assign", assignAdminBooking)
	router.POST("/admin/bookings/:id/complete", completeAdminBooking)
	router.POST("/admin/bookings/:id/cancel", cancelAdminBooking)
	router.DELETE("/admin/bookings/:id", deleteAdminBooking)
	router.POST("/admin/bookings/scan", scanAdminBookings)
}

func parseBookingID(c *gin.Context) (uint, bool) {
	bookingID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid booking id",
			"message": "Booking id must be a number",
		})
		return 0, false
	}
	return uint(bookingID), true
}

// respondTransition maps state machine errors to HTTP responses
func respondTransition(c *gin.Context, booking *models.Booking, err error, successMessage string) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Booking not found",
			"message": "No booking exists with the given id",
		})
	case errors.Is(err, services.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{
			"error":   "Invalid state",
			"message": "The booking is not in a state that allows this action",
		})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Operation failed",
			"message": "Could not update booking",
		})
	default:
		c.JSON(http.StatusOK, gin.H{
			"message": successMessage,
			"data":    booking,
		})
	}
}

// getAdminBookings lists bookings with optional status and area filters
func getAdminBookings(c *gin.Context) {
	query := database.DB.
		Preload("Customer").
		Preload("Service").
		Preload("Provider").
		Preload("Provider.User")

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if area := c.Query("area"); area != "" {
		query = query.Where("LOWER(area) LIKE ?", "%"+strings.ToLower(area)+"%")
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

// getBookingCandidates lists providers an admin can assign to a booking.
// Looser than automatic matching so an admin can override the area filter.
func getBookingCandidates(c *gin.Context) {
	bookingID, ok := parseBookingID(c)
	if !ok {
		return
	}

	candidates, err := services.CandidatesForBooking(bookingID)
	if errors.Is(err, services.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Booking not found",
			"message": "No booking exists with the given id",
		})
		return
	}
	if errors.Is(err, services.ErrConflict) {
		c.JSON(http.StatusConflict, gin.H{
			"error":   "Booking not assignable",
			"message": "This booking already has a provider or is past assignment",
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to fetch candidates",
			"message": "Could not retrieve candidate providers",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Candidates retrieved successfully",
		"data":    candidates,
		"count":   len(candidates),
	})
}

// confirmAdminBooking confirms a pending booking
func confirmAdminBooking(c *gin.Context) {
	bookingID, ok := parseBookingID(c)
	if !ok {
		return
	}

	booking, err := services.ConfirmBooking(bookingID)
	respondTransition(c, booking, err, "Booking confirmed successfully")
}

// assignAdminBooking assigns a chosen provider, or auto-assigns when the
// request names no provider
func assignAdminBooking(c *gin.Context) {
	bookingID, ok := parseBookingID(c)
	if !ok {
		return
	}

	var req struct {
		ProviderID *uint `json:"provider_id"`
	}
	_ = c.ShouldBindJSON(&req)

	var (
		booking *models.Booking
		err     error
	)
	if req.ProviderID != nil {
		booking, err = services.AssignProvider(bookingID, *req.ProviderID)
	} else {
		booking, err = services.AutoAssign(bookingID)
	}
	if errors.Is(err, services.ErrNoEligibleProvider) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":   "No eligible provider",
			"message": "No active, approved provider can take this booking",
		})
		return
	}
	respondTransition(c, booking, err, "Provider assigned successfully")
}

// completeAdminBooking completes a booking on the provider's behalf. Gated
// on the same customer PIN the provider would enter.
func completeAdminBooking(c *gin.Context) {
	bookingID, ok := parseBookingID(c)
	if !ok {
		return
	}

	var req models.CompletionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"message": err.Error(),
		})
		return
	}

	booking, err := services.CompleteBooking(bookingID, req.Pin)
	if errors.Is(err, services.ErrPinMismatch) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":   "Incorrect PIN",
			"message": "The PIN does not match the customer's completion code",
		})
		return
	}
	respondTransition(c, booking, err, "Booking completed successfully")
}

// cancelAdminBooking cancels a booking from any non-terminal state
func cancelAdminBooking(c *gin.Context) {
	bookingID, ok := parseBookingID(c)
	if !ok {
		return
	}

	booking, err := services.CancelBooking(bookingID)
	respondTransition(c, booking, err, "Booking cancelled successfully")
}

// deleteAdminBooking removes a terminal booking entirely. Live bookings must
// be cancelled first so their side effects fire.
func deleteAdminBooking(c *gin.Context) {
	bookingID, ok := parseBookingID(c)
	if !ok {
		return
	}

	result := database.DB.
		Where("id = ? AND status IN ?", bookingID,
			[]models.BookingStatus{models.BookingStatusCompleted, models.BookingStatusCancelled}).
		Delete(&models.Booking{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Deletion failed",
			"message": "Could not delete booking",
		})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusConflict, gin.H{
			"error":   "Cannot delete",
			"message": "Only completed or cancelled bookings can be deleted",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Booking deleted successfully",
	})
}

// scanAdminBookings triggers an immediate auto-assignment sweep instead of
// waiting for the next scheduled tick
func scanAdminBookings(c *gin.Context) {
	job := jobs.NewAutoAssignJob()
	assigned, waiting := job.Scan()

	c.JSON(http.StatusOK, gin.H{
		"message":  "Scan completed",
		"assigned": assigned,
		"waiting":  waiting,
	})
}
