package app

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRBACConfigPaths(t *testing.T) {
	t.Run("defaults to in-repo files", func(t *testing.T) {
		t.Setenv("RBAC_MODEL_PATH", "")
		t.Setenv("RBAC_POLICY_PATH", "")

		modelPath, policyPath := rbacConfigPaths()

		assert.Equal(t, filepath.Join("internal", "rbac", "model.conf"), modelPath)
		assert.Equal(t, filepath.Join("internal", "rbac", "policy.csv"), policyPath)
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv("RBAC_MODEL_PATH", "/etc/hrcore/model.conf")
		t.Setenv("RBAC_POLICY_PATH", "/etc/hrcore/policy.csv")

		modelPath, policyPath := rbacConfigPaths()

		assert.Equal(t, "/etc/hrcore/model.conf", modelPath)
		assert.Equal(t, "/etc/hrcore/policy.csv", policyPath)
	})
}
