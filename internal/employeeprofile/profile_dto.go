package employeeprofile

type CreateProfileRequest struct {
	EmployeeNumber       string `json:"employee_number"`
	FirstName            string `json:"first_name" binding:"required"`
	LastName             string `json:"last_name" binding:"required"`
	NationalID           string `json:"national_id"`
	WorkEmail            string `json:"work_email" binding:"required,email"`
	PersonalEmail        string `json:"personal_email" binding:"omitempty,email"`
	Phone                string `json:"phone"`
	PrimaryDepartmentID  string `json:"primary_department_id" binding:"omitempty,uuid"`
	PrimaryPositionID    string `json:"primary_position_id" binding:"omitempty,uuid"`
	SupervisorPositionID string `json:"supervisor_position_id" binding:"omitempty,uuid"`
	ContractType         string `json:"contract_type" binding:"omitempty,oneof=PERMANENT FIXED_TERM FREELANCE"`
	WorkType             string `json:"work_type" binding:"omitempty,oneof=ONSITE REMOTE HYBRID"`
	DateOfHire           string `json:"date_of_hire" binding:"required"`
	ContractStartDate    string `json:"contract_start_date"`
	ContractEndDate      string `json:"contract_end_date"`
	Role                 string `json:"role" binding:"omitempty,oneof=SYSTEM_ADMIN HR_MANAGER DEPARTMENT_MANAGER DEPARTMENT_EMPLOYEE"`
}

type UpdateProfileRequest struct {
	FirstName            string `json:"first_name" binding:"required"`
	LastName             string `json:"last_name" binding:"required"`
	NationalID           string `json:"national_id"`
	WorkEmail            string `json:"work_email" binding:"required,email"`
	PersonalEmail        string `json:"personal_email" binding:"omitempty,email"`
	Phone                string `json:"phone"`
	PrimaryDepartmentID  string `json:"primary_department_id" binding:"omitempty,uuid"`
	PrimaryPositionID    string `json:"primary_position_id" binding:"omitempty,uuid"`
	SupervisorPositionID string `json:"supervisor_position_id" binding:"omitempty,uuid"`
	ContractType         string `json:"contract_type" binding:"omitempty,oneof=PERMANENT FIXED_TERM FREELANCE"`
	WorkType             string `json:"work_type" binding:"omitempty,oneof=ONSITE REMOTE HYBRID"`
	DateOfHire           string `json:"date_of_hire" binding:"required"`
	ContractStartDate    string `json:"contract_start_date"`
	ContractEndDate      string `json:"contract_end_date"`
}

// SelfUpdateRequest carries the only fields an employee may edit
// directly; everything else must go through a change request.
type SelfUpdateRequest struct {
	Phone         *string `json:"phone"`
	PersonalEmail *string `json:"personal_email" binding:"omitempty,email"`
	WorkEmail     *string `json:"work_email" binding:"omitempty,email"`
	Biography     *string `json:"biography"`
	Address       *string `json:"address"`
}

type SetPasswordRequest struct {
	Password string `json:"password" binding:"required,min=6"`
}

type ProfileResponse struct {
	ID                   string `json:"id"`
	EmployeeNumber       string `json:"employee_number"`
	FirstName            string `json:"first_name"`
	LastName             string `json:"last_name"`
	NationalID           string `json:"national_id,omitempty"`
	WorkEmail            string `json:"work_email"`
	PersonalEmail        string `json:"personal_email,omitempty"`
	Phone                string `json:"phone,omitempty"`
	Biography            string `json:"biography,omitempty"`
	Address              string `json:"address,omitempty"`
	PrimaryDepartmentID  string `json:"primary_department_id,omitempty"`
	PrimaryPositionID    string `json:"primary_position_id,omitempty"`
	SupervisorPositionID string `json:"supervisor_position_id,omitempty"`
	ContractType         string `json:"contract_type,omitempty"`
	WorkType             string `json:"work_type,omitempty"`
	DateOfHire           string `json:"date_of_hire"`
	ContractStartDate    string `json:"contract_start_date,omitempty"`
	ContractEndDate      string `json:"contract_end_date,omitempty"`
	Status               string `json:"status"`
	Role                 string `json:"role"`
}

type ProfileOptionResponse struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
}

// TeamMemberResponse is the summary a manager sees for a report.
type TeamMemberResponse struct {
	ID                  string `json:"id"`
	FirstName           string `json:"first_name"`
	LastName            string `json:"last_name"`
	PrimaryDepartmentID string `json:"primary_department_id,omitempty"`
	PrimaryPositionID   string `json:"primary_position_id,omitempty"`
	Status              string `json:"status"`
}

type DeactivateResponse struct {
	ID        string `json:"id"`
	OldStatus string `json:"old_status"`
	NewStatus string `json:"new_status"`
}
