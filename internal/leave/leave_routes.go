package leave

import (
	"go-hrdesk/internal/middleware"
	"go-hrdesk/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
) {
	leaves := r.Group("/leaves")
	leaves.Use(middleware.AuthMiddleware())
	{
		leaves.GET("", middleware.RBACAuthorize(rbacService, "leaves", "read"), handler.GetAll)
		leaves.GET("/past", middleware.RBACAuthorize(rbacService, "leaves", "read"), handler.PastLeaves)
		leaves.GET("/upcoming", middleware.RBACAuthorize(rbacService, "leaves", "read"), handler.UpcomingLeaves)
		leaves.GET("/:id", middleware.RBACAuthorize(rbacService, "leaves", "read"), handler.GetById)
		leaves.POST("", middleware.RBACAuthorize(rbacService, "leaves", "write"), handler.Create)
		leaves.PUT("/:id", middleware.RBACAuthorize(rbacService, "leaves", "write"), handler.Update)
		leaves.POST("/:id/approve", middleware.RBACAuthorize(rbacService, "leaves", "process"), handler.Approve)
		leaves.POST("/:id/reject", middleware.RBACAuthorize(rbacService, "leaves", "process"), handler.Reject)
	}
}
