package employee

import (
	"github.com/Ayabe1990/management-pro-project-sub001/internal/auth"
	"github.com/Ayabe1990/management-pro-project-sub001/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	employees := r.Group("/employees")
	employees.Use(middleware.AuthMiddleware())
	{
		employees.GET("", handler.GetAll)
		employees.GET("/:id", handler.GetById)
		employees.POST("", middleware.RoleMiddleware(auth.RoleManager), handler.Create)
		employees.PUT("/:id", middleware.RoleMiddleware(auth.RoleManager), handler.Update)
		employees.DELETE("/:id", middleware.RoleMiddleware(auth.RoleManager), handler.Delete)
	}
}
