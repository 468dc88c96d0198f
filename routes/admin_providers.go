package routes

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"localbookr-server/database"
	"localbookr-server/models"
	"localbookr-server/services"
	"localbookr-server/utils"
)

// AdminProviderCreate provisions a provider account and profile in one call
type AdminProviderCreate struct {
	Name     string `json:"name" binding:"required,min=2,max=255"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone" binding:"omitempty,min=7,max=20"`
	Password string `json:"password" binding:"required,min=6"`
	Skill    string `json:"skill" binding:"required,min=2,max=100"`
	Area     string `json:"area" binding:"required,min=2,max=255"`
}

// RegisterAdminProviderRoutes registers the admin provider management routes
func RegisterAdminProviderRoutes(router *gin.RouterGroup) {
	router.GET("/admin/providers", getAdminProviders)
	router.POST("/admin/providers", createAdminProvider)
	router.PATCH("/admin/providers/:id/approval", setProviderApproval)
	router.PATCH("/admin/providers/:id/active", setAdminProviderActive)
	router.DELETE("/admin/providers/:id", deleteAdminProvider)
}

// getAdminProviders lists providers with optional approval and skill filters
func getAdminProviders(c *gin.Context) {
	query := database.DB.Preload("User")

	if approval := c.Query("approval_status"); approval != "" && database.Schema.ProviderApprovalStatus {
		query = query.Where("approval_status = ?", approval)
	}
	if skill := c.Query("skill"); skill != "" {
		query = query.Where("skill = ?", skill)
	}
	if database.Schema.ProviderSoftDelete && c.Query("include_deleted") != "true" {
		query = query.Where("is_deleted = ?", false)
	}

	var providers []models.Provider
	if err := query.Order("rating DESC, id ASC").Find(&providers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to fetch providers",
			"message": "Could not retrieve providers",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Providers retrieved successfully",
		"data":    providers,
		"count":   len(providers),
	})
}

// createAdminProvider provisions a provider user and an approved profile.
// Admin-created providers skip the approval queue.
func createAdminProvider(c *gin.Context) {
	var req AdminProviderCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"message": err.Error(),
		})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var existingUser models.User
	if err := database.DB.Where("email = ?", email).First(&existingUser).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{
			"error":   "User already exists",
			"message": "A user with this email already exists",
		})
		return
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Password hashing failed",
			"message": "Failed to process password",
		})
		return
	}

	user := models.User{
		Name:         req.Name,
		Email:        email,
		Phone:        req.Phone,
		PasswordHash: hashedPassword,
		Role:         models.RoleProvider,
		IsActive:     true,
	}
	if err := database.DB.Create(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "User creation failed",
			"message": "Failed to create provider account",
		})
		return
	}

	provider := models.Provider{
		UserID:         user.ID,
		Skill:          req.Skill,
		Area:           req.Area,
		IsActive:       true,
		ApprovalStatus: models.ApprovalActive,
	}
	if err := database.DB.Create(&provider).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Profile creation failed",
			"message": "Failed to create provider profile",
		})
		return
	}

	provider.User = user
	c.JSON(http.StatusCreated, gin.H{
		"message": "Provider created successfully",
		"data":    provider,
	})
}

// setProviderApproval records an onboarding decision for a provider
func setProviderApproval(c *gin.Context) {
	if !database.Schema.ProviderApprovalStatus {
		c.JSON(http.StatusNotImplemented, gin.H{
			"error":   "Approval not supported",
			"message": "This deployment's schema has no approval column",
		})
		return
	}

	var req models.ProviderApprovalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"message": err.Error(),
		})
		return
	}

	var provider models.Provider
	if err := database.DB.First(&provider, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Provider not found",
			"message": "No provider exists with the given id",
		})
		return
	}

	updates := map[string]interface{}{"approval_status": req.ApprovalStatus}
	if req.ApprovalStatus == models.ApprovalActive {
		// Approval also switches newly signed-up providers on.
		updates["is_active"] = true
	}
	if err := database.DB.Model(&provider).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Update failed",
			"message": "Could not update approval status",
		})
		return
	}

	switch req.ApprovalStatus {
	case models.ApprovalActive:
		services.Notify(provider.UserID, "Your provider profile has been approved. You can now receive jobs.", models.NotificationSuccess)
	case models.ApprovalRejected:
		services.Notify(provider.UserID, "Your provider profile was not approved. Contact support for details.", models.NotificationWarning)
	}

	c.JSON(http.StatusOK, gin.H{
		"message":         "Approval status updated successfully",
		"approval_status": req.ApprovalStatus,
	})
}

// setAdminProviderActive toggles a provider's availability
func setAdminProviderActive(c *gin.Context) {
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

	result := database.DB.Model(&models.Provider{}).
		Where("id = ?", c.Param("id")).
		Update("is_active", *req.IsActive)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Update failed",
			"message": "Could not update provider",
		})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Provider not found",
			"message": "No provider exists with the given id",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Provider updated successfully",
		"is_active": *req.IsActive,
	})
}

// deleteAdminProvider removes a provider. Providers with live jobs cannot be
// removed; providers referenced by booking history are soft deleted so those
// bookings keep their record; unreferenced providers are deleted outright.
func deleteAdminProvider(c *gin.Context) {
	providerID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid provider id",
			"message": "Provider id must be a number",
		})
		return
	}

	var provider models.Provider
	if err := database.DB.First(&provider, providerID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Provider not found",
			"message": "No provider exists with the given id",
		})
		return
	}

	var liveCount int64
	database.DB.Model(&models.Booking{}).
		Where("provider_id = ? AND status NOT IN ?", provider.ID,
			[]models.BookingStatus{models.BookingStatusCompleted, models.BookingStatusCancelled}).
		Count(&liveCount)

	var historyCount int64
	database.DB.Model(&models.Booking{}).
		Where("provider_id = ?", provider.ID).
		Count(&historyCount)

	switch services.ProviderDeletePolicy(liveCount, historyCount, database.Schema.ProviderSoftDelete) {
	case services.ProviderDeleteBlocked:
		c.JSON(http.StatusConflict, gin.H{
			"error":   "Provider has live jobs",
			"message": "Reassign or cancel the provider's active bookings first",
		})

	case services.ProviderDeleteUnsupported:
		c.JSON(http.StatusConflict, gin.H{
			"error":   "Provider has booking history",
			"message": "This deployment cannot soft delete providers, so referenced providers must be kept",
		})

	case services.ProviderDeleteSoft:
		if err := database.DB.Model(&provider).Updates(map[string]interface{}{
			"is_deleted": true,
			"is_active":  false,
		}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "Deletion failed",
				"message": "Could not remove provider",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message":      "Provider removed, booking history preserved",
			"soft_deleted": true,
		})

	case services.ProviderDeleteHard:
		if err := database.DB.Delete(&provider).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "Deletion failed",
				"message": "Could not remove provider",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message":      "Provider deleted successfully",
			"soft_deleted": false,
		})
	}
}
