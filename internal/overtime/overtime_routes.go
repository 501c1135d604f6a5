package overtime

import (
	"github.com/Ayabe1990/management-pro-project-sub001/internal/auth"
	"github.com/Ayabe1990/management-pro-project-sub001/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	requests := r.Group("/overtime-requests")
	requests.Use(middleware.AuthMiddleware())
	{
		requests.GET("", handler.GetAll)
		requests.GET("/:id", handler.GetById)
		requests.POST("", handler.Create)
		requests.POST("/:id/approve", middleware.RoleMiddleware(auth.RoleManager), handler.Approve)
		requests.POST("/:id/reject", middleware.RoleMiddleware(auth.RoleManager), handler.Reject)
		requests.DELETE("/:id", handler.Delete)
	}
}
