package app

import (
	"context"
	"os"

	"github.com/nimtechnologiez-coder/attendance-backend/internal/attendance"
	"github.com/nimtechnologiez-coder/attendance-backend/internal/auth"
	"github.com/nimtechnologiez-coder/attendance-backend/internal/department"
	"github.com/nimtechnologiez-coder/attendance-backend/internal/employee"
	"github.com/nimtechnologiez-coder/attendance-backend/internal/leave"
	"github.com/nimtechnologiez-coder/attendance-backend/internal/permission"
	"github.com/nimtechnologiez-coder/attendance-backend/internal/shared/connection"
	"github.com/nimtechnologiez-coder/attendance-backend/internal/shared/counter"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func BuildApp(router *gin.Engine) error {
	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}
	zap.L().Info("database connection established")

	if err := gormDB.AutoMigrate(
		&auth.User{},
		&department.Department{},
		&employee.Employee{},
		&attendance.Attendance{},
		&permission.Permission{},
		&leave.LeaveType{},
		&leave.LeaveRequest{},
		&counter.CodeCounter{},
	); err != nil {
		return err
	}

	redisClient, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		return err
	}
	zap.L().Info("redis connection established")

	ctx := context.Background()
	if err := department.SeedDefaults(ctx, department.NewRepository(gormDB)); err != nil {
		return err
	}
	if err := leave.SeedDefaults(ctx, leave.NewRepository(gormDB)); err != nil {
		return err
	}

	return registerModules(router, gormDB, redisClient)
}
