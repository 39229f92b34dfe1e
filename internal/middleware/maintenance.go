package middleware

import (
	"driveschool_backend/internal/model"
	"driveschool_backend/internal/service"
	"driveschool_backend/internal/util"
	"net/http"

	"github.com/gin-gonic/gin"
)

// MaintenanceMiddleware returns 503 for non-admin traffic while the
// maintenance_mode setting is on. Admins keep access so they can turn it off.
func MaintenanceMiddleware(settings *service.SettingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !settings.MaintenanceOn(c.Request.Context()) {
			c.Next()
			return
		}

		claims := util.GetUserFromContext(c)
		if claims != nil && claims.Role == model.Admin {
			c.Next()
			return
		}

		util.Error(c, http.StatusServiceUnavailable, "Service under maintenance")
		c.Abort()
	}
}
