package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"localbookr-server/database"
	"localbookr-server/models"
	"localbookr-server/services"
)

// RegisterServiceRoutes registers the public service catalog routes
func RegisterServiceRoutes(router *gin.RouterGroup) {
	router.GET("/services", getServices)
	router.GET("/services/:id", getService)
	router.GET("/providers/search", searchProviders)
}

// getServices returns the service catalog
func getServices(c *gin.Context) {
	var serviceList []models.Service
	if err := database.DB.Order("name ASC").Find(&serviceList).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to fetch services",
			"message": "Could not retrieve service catalog",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Services retrieved successfully",
		"data":    serviceList,
		"count":   len(serviceList),
	})
}

// getService returns a single service by id
func getService(c *gin.Context) {
	var service models.Service
	if err := database.DB.First(&service, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Service not found",
			"message": "No service exists with the given id",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Service retrieved successfully",
		"data":    service,
	})
}

// searchProviders finds active providers matching a service and area. The
// same eligibility rules drive auto-assignment, so whatever a customer can
// see here the scheduler can also pick.
func searchProviders(c *gin.Context) {
	serviceName := c.Query("service")
	area := c.Query("area")

	if serviceName == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Missing service parameter",
			"message": "Query parameter 'service' is required",
		})
		return
	}

	providers, err := services.SearchProviders(serviceName, area)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Search failed",
			"message": "Could not search providers",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Providers retrieved successfully",
		"data":    providers,
		"count":   len(providers),
	})
}
