package auth

import (
	"github.com/nimtechnologiez-coder/attendance-backend/internal/middleware"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	accounts := r.Group("/accounts")
	{
		// Tight limits on the credential endpoints
		accounts.POST("/login", middleware.RateLimitByIP(rate.Limit(1), 5), h.Login)
		accounts.POST("/forgot-password", middleware.RateLimitByIP(rate.Limit(1), 3), h.ChangePassword)
	}

	r.GET("/accounts/me", middleware.AuthMiddleware(), h.GetMe)
}
