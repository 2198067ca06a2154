package dashboard

import (
	"github.com/nimtechnologiez-coder/attendance-backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	dashboard := r.Group("/dashboard")
	dashboard.Use(middleware.AuthMiddleware(), middleware.AdminOnly())
	{
		dashboard.GET("", h.Report)
		dashboard.GET("/export", h.Export)
	}
}
