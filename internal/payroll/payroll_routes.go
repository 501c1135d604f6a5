package payroll

import (
	"github.com/Ayabe1990/management-pro-project-sub001/internal/auth"
	"github.com/Ayabe1990/management-pro-project-sub001/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rdb *redis.Client) {
	runs := r.Group("/payroll-runs")
	runs.Use(middleware.AuthMiddleware())
	{
		runs.POST("",
			middleware.RoleMiddleware(auth.RoleManager),
			middleware.Idempotency(rdb),
			handler.ExecuteRun,
		)
		runs.GET("", handler.GetAllRuns)
		runs.GET("/:id", handler.GetRunById)
		runs.GET("/:id/payslips/:payslipId/download", handler.DownloadPayslip)
	}

	r.GET("/employees/:id/payslips",
		middleware.AuthMiddleware(),
		handler.GetEmployeePayslips,
	)

	r.GET("/payroll-settings",
		middleware.AuthMiddleware(),
		middleware.RoleMiddleware(auth.RoleManager),
		handler.GetSettings,
	)
}
