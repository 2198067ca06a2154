package app

import (
	"github.com/nimtechnologiez-coder/attendance-backend/internal/attendance"
	"github.com/nimtechnologiez-coder/attendance-backend/internal/auth"
	"github.com/nimtechnologiez-coder/attendance-backend/internal/dashboard"
	"github.com/nimtechnologiez-coder/attendance-backend/internal/department"
	"github.com/nimtechnologiez-coder/attendance-backend/internal/employee"
	"github.com/nimtechnologiez-coder/attendance-backend/internal/leave"
	"github.com/nimtechnologiez-coder/attendance-backend/internal/middleware"
	"github.com/nimtechnologiez-coder/attendance-backend/internal/permission"
	"github.com/nimtechnologiez-coder/attendance-backend/internal/shared/counter"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	db, err := gormDB.DB()
	if err != nil {
		return err
	}

	policy := attendance.PolicyFromEnv()

	// --- Repositories ---
	authRepo := auth.NewRepository(gormDB)
	departmentRepo := department.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	attendanceRepo := attendance.NewRepository(gormDB)
	permissionRepo := permission.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)

	// --- Services ---
	authService := auth.NewService(authRepo)
	departmentService := department.NewService(db, departmentRepo)
	employeeService := employee.NewService(db, employeeRepo, departmentRepo, authRepo, counterRepo, rdb)
	attendanceService := attendance.NewService(db, attendanceRepo, permissionRepo, policy)
	permissionService := permission.NewService(db, permissionRepo, policy.Location)
	leaveService := leave.NewService(db, leaveRepo)
	dashboardService := dashboard.NewService(attendanceRepo, permissionRepo, employeeRepo, policy)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	departmentHandler := department.NewHandler(departmentService)
	employeeHandler := employee.NewHandler(employeeService)
	attendanceHandler := attendance.NewHandler(attendanceService)
	permissionHandler := permission.NewHandler(permissionService)
	leaveHandler := leave.NewHandler(leaveService)
	dashboardHandler := dashboard.NewHandler(dashboardService)

	router.Use(
		middleware.RequestID(),
		middleware.ContextLogger(zap.L()),
		middleware.RateLimitByIP(rate.Limit(50), 100),
	)

	api := router.Group("/api")
	{
		auth.RegisterRoutes(api, authHandler)
		department.RegisterRoutes(api, departmentHandler)
		employee.RegisterRoutes(api, employeeHandler)
		attendance.RegisterRoutes(api, attendanceHandler, rdb)
		permission.RegisterRoutes(api, permissionHandler)
		leave.RegisterRoutes(api, leaveHandler)
		dashboard.RegisterRoutes(api, dashboardHandler)
	}

	return nil
}
