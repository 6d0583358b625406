package changerequest

import (
	"go-hrcore/internal/middleware"
	"go-hrcore/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	rdb *redis.Client,
	logger *zap.Logger,
) {
	requests := r.Group("/employee-profile/change-requests")
	requests.Use(middleware.AuthMiddleware())
	requests.Use(middleware.ContextLogger(logger))
	{
		requests.POST("",
			middleware.RateLimitByActor(1, 5),
			middleware.RBACAuthorize(rbacService, "change_request", "create"),
			middleware.Idempotency(rdb),
			handler.Submit,
		)

		requests.GET("/all",
			middleware.RateLimitByActor(3, 10),
			middleware.RBACAuthorize(rbacService, "change_request", "read_all"),
			handler.ListAll,
		)

		requests.GET("/request/:requestId",
			middleware.RateLimitByActor(3, 10),
			middleware.RBACAuthorize(rbacService, "change_request", "read_all"),
			handler.FindByRequestID,
		)

		requests.GET("/by-employee/:employeeProfileId",
			middleware.RateLimitByActor(3, 10),
			middleware.RBACAuthorize(rbacService, "change_request", "read"),
			handler.ListByEmployee,
		)

		requests.PATCH("/:id/approve",
			middleware.RateLimitByActor(1, 5),
			middleware.RBACAuthorize(rbacService, "change_request", "approve"),
			handler.Approve,
		)

		requests.PATCH("/:id/reject",
			middleware.RateLimitByActor(1, 5),
			middleware.RBACAuthorize(rbacService, "change_request", "reject"),
			handler.Reject,
		)

		requests.PATCH("/:id/withdraw",
			middleware.RateLimitByActor(1, 5),
			middleware.RBACAuthorize(rbacService, "change_request", "withdraw"),
			handler.Withdraw,
		)

		requests.POST("/:id/dispute",
			middleware.RateLimitByActor(1, 5),
			middleware.RBACAuthorize(rbacService, "change_request", "dispute"),
			middleware.Idempotency(rdb),
			handler.SubmitDispute,
		)

		requests.PATCH("/:id/resolve-dispute",
			middleware.RateLimitByActor(1, 5),
			middleware.RBACAuthorize(rbacService, "change_request", "decide_dispute"),
			handler.ResolveDispute,
		)

		requests.PATCH("/:id/approve-dispute",
			middleware.RateLimitByActor(1, 5),
			middleware.RBACAuthorize(rbacService, "change_request", "decide_dispute"),
			handler.ApproveDispute,
		)
	}
}
