package auth

type LoginRequest struct {
	EmployeeNumber string `json:"employee_number" binding:"required"`
	Password       string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type AuthResponse struct {
	EmployeeProfileID string `json:"employee_profile_id"`
	EmployeeNumber    string `json:"employee_number"`
	FullName          string `json:"full_name"`
	WorkEmail         string `json:"work_email"`
	Role              string `json:"role"`
}
