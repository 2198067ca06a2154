package attendance

import (
	"github.com/nimtechnologiez-coder/attendance-backend/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rdb *redis.Client) {
	attendance := r.Group("/attendance")
	attendance.Use(middleware.AuthMiddleware())
	{
		attendance.GET("/today", h.Today)
		attendance.GET("/history", h.History)
		attendance.POST("/checkin", middleware.Idempotency(rdb), h.CheckIn)
		attendance.POST("/checkout", middleware.Idempotency(rdb), h.CheckOut)
	}
}
