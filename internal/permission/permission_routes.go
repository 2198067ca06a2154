package permission

import (
	"github.com/nimtechnologiez-coder/attendance-backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	permissions := r.Group("/permission")
	permissions.Use(middleware.AuthMiddleware())
	{
		permissions.POST("/create", h.Create)
		permissions.GET("/list", h.List)
		permissions.GET("/pending", middleware.AdminOnly(), h.Pending)
		permissions.POST("/:id/approve", middleware.AdminOnly(), h.Approve)
		permissions.POST("/:id/reject", middleware.AdminOnly(), h.Reject)
	}
}
