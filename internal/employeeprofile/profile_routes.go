package employeeprofile

import (
	"go-hrcore/internal/middleware"
	"go-hrcore/internal/rbac"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	logger *zap.Logger,
) {
	profiles := r.Group("/employee-profile")
	profiles.Use(middleware.AuthMiddleware())
	profiles.Use(middleware.ContextLogger(logger))
	{
		profiles.GET("/profile/me",
			middleware.RateLimitByActor(3, 10),
			middleware.RBACAuthorize(rbacService, "profile", "read_self"),
			handler.GetMe,
		)

		profiles.GET("/options",
			middleware.RateLimitByActor(5, 20),
			middleware.RBACAuthorize(rbacService, "profile", "read"),
			handler.GetOptions,
		)

		profiles.GET("/manager/team/:managerId",
			middleware.RateLimitByActor(3, 10),
			middleware.RBACAuthorize(rbacService, "team", "read"),
			handler.GetTeamSummary,
		)

		profiles.GET("/manager/team/:managerId/employee/:employeeId",
			middleware.RateLimitByActor(3, 10),
			middleware.RBACAuthorize(rbacService, "team", "read"),
			handler.GetTeamEmployee,
		)

		profiles.GET("",
			middleware.RateLimitByActor(3, 10),
			middleware.RBACAuthorize(rbacService, "profile", "read"),
			handler.GetAll,
		)

		profiles.GET("/:id",
			middleware.RateLimitByActor(3, 10),
			middleware.RBACAuthorize(rbacService, "profile", "read"),
			handler.GetByID,
		)

		profiles.POST("",
			middleware.RateLimitByActor(0.5, 2),
			middleware.RBACAuthorize(rbacService, "profile", "create"),
			handler.Create,
		)

		profiles.POST("/set-password/:id",
			middleware.RateLimitByActor(0.2, 1),
			middleware.RBACAuthorize(rbacService, "profile", "set_password"),
			handler.SetPassword,
		)

		profiles.PATCH("/self-update/:id",
			middleware.RateLimitByActor(0.5, 2),
			middleware.RBACAuthorize(rbacService, "profile", "self_update"),
			handler.SelfUpdate,
		)

		profiles.PATCH("/:id",
			middleware.RateLimitByActor(0.5, 2),
			middleware.RBACAuthorize(rbacService, "profile", "update"),
			handler.Update,
		)

		profiles.DELETE("/:id",
			middleware.RateLimitByActor(0.1, 1),
			middleware.RBACAuthorize(rbacService, "profile", "deactivate"),
			handler.Deactivate,
		)
	}
}
