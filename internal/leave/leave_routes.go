package leave

import (
	"github.com/nimtechnologiez-coder/attendance-backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	leave := r.Group("/leave")
	leave.Use(middleware.AuthMiddleware())
	{
		leave.GET("/types", h.ListTypes)
		leave.POST("/types", middleware.AdminOnly(), h.CreateType)
		leave.POST("/request", h.Create)
		leave.GET("/my-requests", h.MyRequests)
		leave.GET("/balance", h.Balance)
		leave.GET("/pending", middleware.AdminOnly(), h.Pending)
		leave.POST("/:id/approve", middleware.AdminOnly(), h.Approve)
		leave.POST("/:id/reject", middleware.AdminOnly(), h.Reject)
	}
}
