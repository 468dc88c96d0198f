package routes

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"localbookr-server/database"
	"localbookr-server/models"
)

// RegisterNotificationRoutes registers the notification routes
func RegisterNotificationRoutes(router *gin.RouterGroup) {
	router.GET("/notifications", getNotifications)
	router.GET("/notifications/unread-count", getUnreadCount)
	router.POST("/notifications/:id/read", markNotificationRead)
	router.POST("/notifications/read-all", markAllNotificationsRead)
}

// getNotifications returns the authenticated user's notifications, newest first
func getNotifications(c *gin.Context) {
	userID := c.GetUint("user_id")

	limit := 50
	if l, err := strconv.Atoi(c.Query("limit")); err == nil && l > 0 && l <= 200 {
		limit = l
	}

	var notifications []models.Notification
	if err := database.DB.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&notifications).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to fetch notifications",
			"message": "Could not retrieve notifications",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Notifications retrieved successfully",
		"data":    notifications,
		"count":   len(notifications),
	})
}

// getUnreadCount returns the number of unread notifications
func getUnreadCount(c *gin.Context) {
	userID := c.GetUint("user_id")

	var count int64
	if err := database.DB.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to count notifications",
			"message": "Could not count unread notifications",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"unread_count": count,
	})
}

// markNotificationRead marks a single notification as read
func markNotificationRead(c *gin.Context) {
	userID := c.GetUint("user_id")

	result := database.DB.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", c.Param("id"), userID).
		Update("is_read", true)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Update failed",
			"message": "Could not mark notification as read",
		})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Notification not found",
			"message": "No notification of yours exists with the given id",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Notification marked as read",
	})
}

// markAllNotificationsRead marks every unread notification as read
func markAllNotificationsRead(c *gin.Context) {
	userID := c.GetUint("user_id")

	result := database.DB.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Update failed",
			"message": "Could not mark notifications as read",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "All notifications marked as read",
		"marked_count": result.RowsAffected,
	})
}
