package handlers

import (
	"net/http"

	"turfacademy/utils"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports the last background probe of Mongo and Redis.
func HealthHandler(c *gin.Context) {
	status := utils.GetHealthStatus()
	code := http.StatusOK
	if !status.Healthy() {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, gin.H{"healthy": status.Healthy(), "status": status})
}
