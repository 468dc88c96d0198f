package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"localbookr-server/database"
	"localbookr-server/models"
)

// RegisterAdminRoutes registers the admin dashboard and user management routes
func RegisterAdminRoutes(router *gin.RouterGroup) {
	router.GET("/admin/dashboard/stats", getAdminStats)
	router.GET("/admin/users", getAdminUsers)
	router.GET("/admin/users/:id", getAdminUser)
	router.PATCH("/admin/users/:id/status", setUserActive)
}

// getAdminStats returns dashboard counters for the admin home screen
func getAdminStats(c *gin.Context) {
	var (
		totalUsers       int64
		totalProviders   int64
		totalBookings    int64
		pendingBookings  int64
		waitingBookings  int64
		activeBookings   int64
		completedCount   int64
		cancelledCount   int64
		pendingApprovals int64
	)

	database.DB.Model(&models.User{}).Count(&totalUsers)
	database.DB.Model(&models.Provider{}).Count(&totalProviders)
	database.DB.Model(&models.Booking{}).Count(&totalBookings)
	database.DB.Model(&models.Booking{}).Where("status = ?", models.BookingStatusPending).Count(&pendingBookings)
	database.DB.Model(&models.Booking{}).Where("status = ?", models.BookingStatusWaiting).Count(&waitingBookings)
	database.DB.Model(&models.Booking{}).Where("status IN ?", []models.BookingStatus{
		models.BookingStatusAssigned, models.BookingStatusInProgress,
	}).Count(&activeBookings)
	database.DB.Model(&models.Booking{}).Where("status = ?", models.BookingStatusCompleted).Count(&completedCount)
	database.DB.Model(&models.Booking{}).Where("status = ?", models.BookingStatusCancelled).Count(&cancelledCount)
	if database.Schema.ProviderApprovalStatus {
		database.DB.Model(&models.Provider{}).Where("approval_status = ?", models.ApprovalPending).Count(&pendingApprovals)
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Stats retrieved successfully",
		"data": gin.H{
			"total_users":        totalUsers,
			"total_providers":    totalProviders,
			"total_bookings":     totalBookings,
			"pending_bookings":   pendingBookings,
			"waiting_bookings":   waitingBookings,
			"active_bookings":    activeBookings,
			"completed_bookings": completedCount,
			"cancelled_bookings": cancelledCount,
			"pending_approvals":  pendingApprovals,
		},
	})
}

// getAdminUsers lists users with optional role filtering
func getAdminUsers(c *gin.Context) {
	query := database.DB.Model(&models.User{})

	if role := c.Query("role"); role != "" {
		query = query.Where("role = ?", role)
	}

	var users []models.User
	if err := query.Order("created_at DESC").Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to fetch users",
			"message": "Could not retrieve users",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Users retrieved successfully",
		"data":    users,
		"count":   len(users),
	})
}

// getAdminUser returns one user with their provider profile when present
func getAdminUser(c *gin.Context) {
	var user models.User
	if err := database.DB.First(&user, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "User not found",
			"message": "No user exists with the given id",
		})
		return
	}

	var providerProfile *models.Provider
	if user.IsProvider() {
		var profile models.Provider
		if err := database.DB.Where("user_id = ?", user.ID).First(&profile).Error; err == nil {
			providerProfile = &profile
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"message":          "User retrieved successfully",
		"data":             user,
		"provider_profile": providerProfile,
	})
}

// setUserActive activates or deactivates a user account. Deactivated users
// fail authentication on their next request.
func setUserActive(c *gin.Context) {
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

	result := database.DB.Model(&models.User{}).
		Where("id = ?", c.Param("id")).
		Update("is_active", *req.IsActive)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Update failed",
			"message": "Could not update user",
		})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "User not found",
			"message": "No user exists with the given id",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "User updated successfully",
		"is_active": *req.IsActive,
	})
}
