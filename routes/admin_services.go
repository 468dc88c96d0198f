package routes

import (
	"context"
	"fmt"
	"log"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gin-gonic/gin"

	"localbookr-server/config"
	"localbookr-server/database"
	"localbookr-server/models"
)

// RegisterAdminServiceRoutes registers the admin service catalog routes
func RegisterAdminServiceRoutes(router *gin.RouterGroup) {
	router.GET("/admin/services", getServices)
	router.POST("/admin/services", createAdminService)
	router.PUT("/admin/services/:id", updateAdminService)
	router.DELETE("/admin/services/:id", deleteAdminService)
	router.POST("/admin/services/:id/icon", uploadServiceIcon)
}

// createAdminService adds a service to the catalog
func createAdminService(c *gin.Context) {
	var req models.ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"message": err.Error(),
		})
		return
	}

	var existing models.Service
	if err := database.DB.Where("name = ?", req.Name).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{
			"error":   "Service already exists",
			"message": "A service with this name already exists",
		})
		return
	}

	service := models.Service{
		Name:        req.Name,
		Description: req.Description,
		BasePrice:   req.BasePrice,
		Icon:        req.Icon,
	}
	if database.Schema.ServiceMaxPrice {
		service.MaxPrice = req.MaxPrice
	}
	if err := database.DB.Create(&service).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Service creation failed",
			"message": "Failed to create service",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Service created successfully",
		"data":    service,
	})
}

// updateAdminService updates a catalog entry. The service name stays fixed
// because provider skills reference it by value.
func updateAdminService(c *gin.Context) {
	var service models.Service
	if err := database.DB.First(&service, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Service not found",
			"message": "No service exists with the given id",
		})
		return
	}

	var req models.ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"message": err.Error(),
		})
		return
	}

	if req.Name != service.Name {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":   "Name is immutable",
			"message": "Provider skills reference the service name; create a new service instead",
		})
		return
	}

	service.Description = req.Description
	service.BasePrice = req.BasePrice
	if database.Schema.ServiceMaxPrice {
		service.MaxPrice = req.MaxPrice
	}
	if req.Icon != "" {
		service.Icon = req.Icon
	}
	if err := database.DB.Save(&service).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Service update failed",
			"message": "Failed to update service",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Service updated successfully",
		"data":    service,
	})
}

// deleteAdminService removes a service that no booking references
func deleteAdminService(c *gin.Context) {
	var service models.Service
	if err := database.DB.First(&service, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Service not found",
			"message": "No service exists with the given id",
		})
		return
	}

	var bookingCount int64
	database.DB.Model(&models.Booking{}).Where("service_id = ?", service.ID).Count(&bookingCount)
	if bookingCount > 0 {
		c.JSON(http.StatusConflict, gin.H{
			"error":   "Service in use",
			"message": "Bookings reference this service; it cannot be deleted",
		})
		return
	}

	if err := database.DB.Delete(&service).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Deletion failed",
			"message": "Could not delete service",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Service deleted successfully",
	})
}

// validateIconFile validates mimetype and size (<= 5MB)
func validateIconFile(h *multipart.FileHeader) bool {
	if h == nil || h.Size <= 0 || h.Size > 5*1024*1024 {
		return false
	}
	ext := strings.ToLower(filepath.Ext(h.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp", ".svg":
		return true
	default:
		return false
	}
}

// uploadServiceIcon uploads a catalog icon to Cloudinary and stores its URL
func uploadServiceIcon(c *gin.Context) {
	var service models.Service
	if err := database.DB.First(&service, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Service not found",
			"message": "No service exists with the given id",
		})
		return
	}

	header, err := c.FormFile("icon")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "No file provided",
			"message": "Attach the icon as form field 'icon'",
		})
		return
	}
	if !validateIconFile(header) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid icon file",
			"message": "Icon must be an image up to 5MB",
		})
		return
	}

	cfg := config.AppConfig.Cloudinary
	if cfg.CloudName == "" || cfg.APIKey == "" || cfg.APISecret == "" {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Upload not configured",
			"message": "Image storage is not configured on this server",
		})
		return
	}

	cloudinaryURL := fmt.Sprintf("cloudinary://%s:%s@%s", cfg.APIKey, cfg.APISecret, cfg.CloudName)
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		log.Printf("❌ Failed to initialize Cloudinary: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Upload failed",
			"message": "Image storage initialization failed",
		})
		return
	}

	file, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid icon file",
			"message": "Could not read uploaded file",
		})
		return
	}
	defer file.Close()

	overwrite := true
	unique := true
	up, err := cld.Upload.Upload(context.Background(), file, uploader.UploadParams{
		Folder:         "services/icons",
		PublicID:       strings.TrimSuffix(header.Filename, filepath.Ext(header.Filename)),
		Overwrite:      &overwrite,
		UniqueFilename: &unique,
		ResourceType:   "image",
	})
	if err != nil {
		log.Printf("❌ Icon upload failed for service %d: %v", service.ID, err)
		c.JSON(http.StatusBadGateway, gin.H{
			"error":   "Upload failed",
			"message": "Image storage rejected the upload",
		})
		return
	}

	if err := database.DB.Model(&service).Update("icon", up.SecureURL).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Update failed",
			"message": "Uploaded but could not save icon URL",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Icon uploaded successfully",
		"icon":    up.SecureURL,
	})
}
