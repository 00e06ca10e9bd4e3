package app

import (
	"database/sql"
	"path/filepath"

	"go-hrdesk/internal/auth"
	"go-hrdesk/internal/employee"
	"go-hrdesk/internal/leave"
	"go-hrdesk/internal/messaging/kafka"
	"go-hrdesk/internal/rbac"
	"go-hrdesk/internal/rbac/infra"
	"go-hrdesk/internal/shared/clock"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	authRepo := auth.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer(filepath.Join("internal", "rbac", "infra", "model.conf"))
	if err != nil {
		return err
	}
	rbacService, err := rbac.NewService(employeeRepo, enforcer)
	if err != nil {
		return err
	}

	// --- Services ---
	notificationSink := kafka.NewOutboxNotificationSink(outboxRepo)
	leaveService := leave.NewService(db, leaveRepo, employeeRepo, rbacService, clock.System(), notificationSink)
	employeeService := employee.NewService(db, employeeRepo, leaveService, rdb)
	authService := auth.NewService(authRepo, employeeRepo)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	employeeHandler := employee.NewHandler(employeeService)
	leaveHandler := leave.NewHandler(leaveService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		employee.RegisterRoutes(api, employeeHandler, rbacService, zap.L())
		leave.RegisterRoutes(api, leaveHandler, rbacService)
	}

	return nil
}
