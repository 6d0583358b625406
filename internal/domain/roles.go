package domain

// Role names carried in JWT claims. The hierarchy (admin > hr >
// manager > employee) lives in the casbin grouping policy, not here.
const (
	RoleSystemAdmin        = "SYSTEM_ADMIN"
	RoleHRManager          = "HR_MANAGER"
	RoleDepartmentManager  = "DEPARTMENT_MANAGER"
	RoleDepartmentEmployee = "DEPARTMENT_EMPLOYEE"
)

type EnforceRequest struct {
	Role     string `json:"role" binding:"required"`
	Resource string `json:"resource" binding:"required"`
	Action   string `json:"action" binding:"required"`
}

type EnforceResponse struct {
	Allowed bool `json:"allowed"`
}
