package app

import (
	"os"
	"path/filepath"

	"go-hrcore/internal/appraisal"
	"go-hrcore/internal/auth"
	"go-hrcore/internal/changerequest"
	"go-hrcore/internal/employeeprofile"
	"go-hrcore/internal/messaging/kafka"
	"go-hrcore/internal/rbac"
	"go-hrcore/internal/shared/counter"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// rbacConfigPaths resolves the casbin model and policy locations,
// falling back to the in-repo files for a repo-root working directory.
func rbacConfigPaths() (string, string) {
	modelPath := os.Getenv("RBAC_MODEL_PATH")
	if modelPath == "" {
		modelPath = filepath.Join("internal", "rbac", "model.conf")
	}
	policyPath := os.Getenv("RBAC_POLICY_PATH")
	if policyPath == "" {
		policyPath = filepath.Join("internal", "rbac", "policy.csv")
	}
	return modelPath, policyPath
}

func registerModules(
	router *gin.Engine,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	logger := zap.L()

	db, err := gormDB.DB()
	if err != nil {
		return err
	}

	// --- Repositories ---
	counterRepo := counter.NewRepository(gormDB)
	profileRepo := employeeprofile.NewRepository(gormDB)
	changeRequestRepo := changerequest.NewRepository(gormDB)
	appraisalRepo := appraisal.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	modelPath, policyPath := rbacConfigPaths()
	enforcer, err := rbac.NewEnforcer(modelPath, policyPath)
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(enforcer, logger)

	// --- Services ---
	profileService := employeeprofile.NewService(db, profileRepo, counterRepo, rdb, logger)
	changeRequestService := changerequest.NewServiceWithOutbox(db, changeRequestRepo, profileRepo, outboxRepo, logger)
	appraisalService := appraisal.NewService(appraisalRepo, logger)
	authService := auth.NewService(profileRepo, logger)

	// --- Handlers ---
	profileHandler := employeeprofile.NewHandler(profileService, logger)
	changeRequestHandler := changerequest.NewHandler(changeRequestService, logger)
	appraisalHandler := appraisal.NewHandler(appraisalService, logger)
	authHandler := auth.NewHandler(authService, logger)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		employeeprofile.RegisterRoutes(api, profileHandler, rbacService, logger)
		changerequest.RegisterRoutes(api, changeRequestHandler, rbacService, rdb, logger)
		appraisal.RegisterRoutes(api, appraisalHandler, rbacService, logger)
	}

	return nil
}
