package voucher

import (
	"github.com/Ayabe1990/management-pro-project-sub001/internal/auth"
	"github.com/Ayabe1990/management-pro-project-sub001/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	vouchers := r.Group("/vouchers")
	vouchers.Use(middleware.AuthMiddleware())
	{
		vouchers.GET("", handler.GetAll)
		vouchers.GET("/:id", handler.GetById)
		vouchers.POST("", middleware.RoleMiddleware(auth.RoleManager), handler.Create)
		vouchers.POST("/redeem/:code", handler.Redeem)
		vouchers.DELETE("/:id", middleware.RoleMiddleware(auth.RoleManager), handler.Delete)
	}
}
