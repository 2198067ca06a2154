package employee

import (
	"github.com/nimtechnologiez-coder/attendance-backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	r.GET("/employee/me", middleware.AuthMiddleware(), h.Me)

	employees := r.Group("/employees")
	employees.Use(middleware.AuthMiddleware(), middleware.AdminOnly())
	{
		employees.GET("", h.GetAll)
		employees.GET("/options", h.GetOptions)
		employees.GET("/:id", h.GetByID)
		employees.POST("", h.Create)
		employees.PUT("/:id", h.Update)
		employees.DELETE("/:id", h.Delete)
	}
}
