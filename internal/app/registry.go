package app

import (
	"database/sql"

	"github.com/Ayabe1990/management-pro-project-sub001/internal/auth"
	"github.com/Ayabe1990/management-pro-project-sub001/internal/employee"
	"github.com/Ayabe1990/management-pro-project-sub001/internal/expense"
	"github.com/Ayabe1990/management-pro-project-sub001/internal/messaging/kafka"
	"github.com/Ayabe1990/management-pro-project-sub001/internal/middleware"
	"github.com/Ayabe1990/management-pro-project-sub001/internal/overtime"
	"github.com/Ayabe1990/management-pro-project-sub001/internal/payroll"
	"github.com/Ayabe1990/management-pro-project-sub001/internal/voucher"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	settings payroll.Settings,
) error {
	// --- Repositories ---
	authRepo := auth.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	overtimeRepo := overtime.NewRepository(gormDB)
	expenseRepo := expense.NewRepository(gormDB)
	voucherRepo := voucher.NewRepository(gormDB)
	payrollRepo := payroll.NewRunRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- Services ---
	authService := auth.NewService(authRepo)
	employeeService := employee.NewService(db, employeeRepo)
	overtimeService := overtime.NewServiceWithOutbox(db, overtimeRepo, outboxRepo)
	expenseService := expense.NewService(db, expenseRepo)
	voucherService := voucher.NewService(db, voucherRepo)
	payrollService := payroll.NewService(
		db, payrollRepo, employeeRepo, overtimeRepo, settings,
		payroll.WithOutbox(outboxRepo),
	)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	employeeHandler := employee.NewHandler(employeeService)
	overtimeHandler := overtime.NewHandler(overtimeService)
	expenseHandler := expense.NewHandler(expenseService)
	voucherHandler := voucher.NewHandler(voucherService)
	payrollHandler := payroll.NewHandler(payrollService)

	// --- Routes Registration ---
	router.Use(middleware.RequestID())

	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		employee.RegisterRoutes(api, employeeHandler)
		overtime.RegisterRoutes(api, overtimeHandler)
		expense.RegisterRoutes(api, expenseHandler)
		voucher.RegisterRoutes(api, voucherHandler)
		payroll.RegisterRoutes(api, payrollHandler, rdb)
	}

	return nil
}
