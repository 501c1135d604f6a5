package expense

import (
	"github.com/Ayabe1990/management-pro-project-sub001/internal/auth"
	"github.com/Ayabe1990/management-pro-project-sub001/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	expenses := r.Group("/expenses")
	expenses.Use(middleware.AuthMiddleware())
	{
		expenses.GET("", handler.GetAll)
		expenses.GET("/summary", handler.MonthlySummary)
		expenses.GET("/:id", handler.GetById)
		expenses.POST("", middleware.RoleMiddleware(auth.RoleManager), handler.Create)
		expenses.PUT("/:id", middleware.RoleMiddleware(auth.RoleManager), handler.Update)
		expenses.DELETE("/:id", middleware.RoleMiddleware(auth.RoleManager), handler.Delete)
	}
}
