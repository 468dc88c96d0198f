package routes

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"localbookr-server/database"
	"localbookr-server/models"
	"localbookr-server/services"
)

// RegisterProviderRoutes registers the provider portal routes
func RegisterProviderRoutes(router *gin.RouterGroup) {
	router.GET("/provider/profile", getProviderProfile)
	router.POST("/provider/profile", upsertProviderProfile)
	router.PUT("/provider/profile", upsertProviderProfile)
	router.PUT("/provider/availability", setProviderAvailability)
	router.GET("/provider/jobs", getProviderJobs)
	router.POST("/provider/jobs/:id/start", startProviderJob)
	router.POST("/provider/jobs/:id/complete", completeProviderJob)
}

// loadProviderForUser resolves the authenticated user to their provider
// profile, writing the error response itself on failure.
func loadProviderForUser(c *gin.Context) (*models.Provider, bool) {
	userID := c.GetUint("user_id")

	var provider models.Provider
	if err := database.DB.Preload("User").Where("user_id = ?", userID).First(&provider).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Provider profile not found",
			"message": "Complete your professional profile first",
		})
		return nil, false
	}
	if provider.IsDeleted {
		c.JSON(http.StatusGone, gin.H{
			"error":   "Provider profile removed",
			"message": "This provider profile has been removed",
		})
		return nil, false
	}
	return &provider, true
}

// getProviderProfile returns the authenticated provider's profile
func getProviderProfile(c *gin.Context) {
	provider, ok := loadProviderForUser(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Provider profile retrieved successfully",
		"data":    provider,
	})
}

// upsertProviderProfile creates or updates the authenticated provider's
// profile. New profiles start unapproved and invisible to matching.
func upsertProviderProfile(c *gin.Context) {
	userID := c.GetUint("user_id")

	var req models.ProviderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"message": err.Error(),
		})
		return
	}

	var provider models.Provider
	err := database.DB.Where("user_id = ?", userID).First(&provider).Error
	if err != nil {
		provider = models.Provider{
			UserID:         userID,
			Skill:          req.Skill,
			Area:           req.Area,
			IsActive:       true,
			ApprovalStatus: models.ApprovalPending,
		}
		if createErr := database.DB.Create(&provider).Error; createErr != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "Profile creation failed",
				"message": "Failed to create provider profile",
			})
			return
		}
		c.JSON(http.StatusCreated, gin.H{
			"message": "Provider profile created, pending approval",
			"data":    provider,
		})
		return
	}

	provider.Skill = req.Skill
	provider.Area = req.Area
	if saveErr := database.DB.Save(&provider).Error; saveErr != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Profile update failed",
			"message": "Failed to update provider profile",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Provider profile updated successfully",
		"data":    provider,
	})
}

// setProviderAvailability toggles whether the provider receives new jobs
func setProviderAvailability(c *gin.Context) {
	provider, ok := loadProviderForUser(c)
	if !ok {
		return
	}

	var req struct {
		IsActive *bool `json:"is_active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"message": err.Error(),
		})
		return
	}

	if err := database.DB.Model(provider).Update("is_active", *req.IsActive).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Update failed",
			"message": "Failed to update availability",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Availability updated successfully",
		"is_active": *req.IsActive,
	})
}

// getProviderJobs returns the bookings assigned to the authenticated provider
func getProviderJobs(c *gin.Context) {
	provider, ok := loadProviderForUser(c)
	if !ok {
		return
	}

	query := database.DB.
		Preload("Customer").
		Preload("Service").
		Where("provider_id = ?", provider.ID)

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	} else {
		query = query.Where("status <> ?", models.BookingStatusCancelled)
	}

	var jobs []models.Booking
	if err := query.Order("created_at DESC").Find(&jobs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to fetch jobs",
			"message": "Could not retrieve assigned jobs",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Jobs retrieved successfully",
		"data":    jobs,
		"count":   len(jobs),
	})
}

// startProviderJob moves an assigned job to in progress
func startProviderJob(c *gin.Context) {
	provider, ok := loadProviderForUser(c)
	if !ok {
		return
	}

	bookingID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid booking id",
			"message": "Booking id must be a number",
		})
		return
	}

	booking, err := services.StartJob(uint(bookingID), provider.ID)
	switch {
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Booking not found",
			"message": "No booking exists with the given id",
		})
	case errors.Is(err, services.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{
			"error":   "Cannot start job",
			"message": "Job is not assigned to you or not in a startable state",
		})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to start job",
			"message": "Could not start job",
		})
	default:
		c.JSON(http.StatusOK, gin.H{
			"message": "Job started successfully",
			"data":    booking,
		})
	}
}

// completeProviderJob completes a job after verifying the customer's PIN
func completeProviderJob(c *gin.Context) {
	provider, ok := loadProviderForUser(c)
	if !ok {
		return
	}

	bookingID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid booking id",
			"message": "Booking id must be a number",
		})
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

	booking, err := services.CompleteWithPin(uint(bookingID), provider.ID, req.Pin)
	switch {
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Booking not found",
			"message": "No booking exists with the given id",
		})
	case errors.Is(err, services.ErrPinMismatch):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":   "Incorrect PIN",
			"message": "The PIN does not match. Ask the customer for the code shown in their app",
		})
	case errors.Is(err, services.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{
			"error":   "Cannot complete job",
			"message": "Job is not assigned to you or not in a completable state",
		})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to complete job",
			"message": "Could not complete job",
		})
	default:
		c.JSON(http.StatusOK, gin.H{
			"message": "Job completed successfully",
			"data":    booking,
		})
	}
}
