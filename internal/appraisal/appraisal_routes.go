package appraisal

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
	performance := r.Group("/performance")
	performance.Use(middleware.AuthMiddleware())
	performance.Use(middleware.ContextLogger(logger))
	{
		templates := performance.Group("/templates")
		{
			templates.POST("",
				middleware.RateLimitByActor(1, 5),
				middleware.RBACAuthorize(rbacService, "appraisal", "manage"),
				handler.CreateTemplate,
			)
			templates.GET("",
				middleware.RateLimitByActor(3, 10),
				middleware.RBACAuthorize(rbacService, "appraisal", "read"),
				handler.GetAllTemplates,
			)
			templates.GET("/:id",
				middleware.RateLimitByActor(3, 10),
				middleware.RBACAuthorize(rbacService, "appraisal", "read"),
				handler.GetTemplateByID,
			)
			templates.PATCH("/:id",
				middleware.RateLimitByActor(1, 5),
				middleware.RBACAuthorize(rbacService, "appraisal", "manage"),
				handler.UpdateTemplate,
			)
			templates.DELETE("/:id",
				middleware.RateLimitByActor(0.5, 2),
				middleware.RBACAuthorize(rbacService, "appraisal", "manage"),
				handler.DeleteTemplate,
			)
		}

		cycles := performance.Group("/cycles")
		{
			cycles.POST("",
				middleware.RateLimitByActor(1, 5),
				middleware.RBACAuthorize(rbacService, "appraisal", "manage"),
				handler.CreateCycle,
			)
			cycles.GET("",
				middleware.RateLimitByActor(3, 10),
				middleware.RBACAuthorize(rbacService, "appraisal", "read"),
				handler.GetAllCycles,
			)
			cycles.GET("/:id",
				middleware.RateLimitByActor(3, 10),
				middleware.RBACAuthorize(rbacService, "appraisal", "read"),
				handler.GetCycleByID,
			)
			cycles.PATCH("/:id",
				middleware.RateLimitByActor(1, 5),
				middleware.RBACAuthorize(rbacService, "appraisal", "manage"),
				handler.UpdateCycle,
			)
			cycles.PATCH("/:id/activate",
				middleware.RateLimitByActor(1, 5),
				middleware.RBACAuthorize(rbacService, "appraisal", "manage"),
				handler.ActivateCycle,
			)
			cycles.PATCH("/:id/close",
				middleware.RateLimitByActor(1, 5),
				middleware.RBACAuthorize(rbacService, "appraisal", "manage"),
				handler.CloseCycle,
			)
			cycles.PATCH("/:id/archive",
				middleware.RateLimitByActor(1, 5),
				middleware.RBACAuthorize(rbacService, "appraisal", "manage"),
				handler.ArchiveCycle,
			)
		}
	}
}
