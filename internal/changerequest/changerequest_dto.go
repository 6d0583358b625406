package changerequest

type CreateChangeRequest struct {
	Field    string `json:"field" binding:"required,oneof=firstName lastName nationalId primaryPositionId primaryDepartmentId contractType workType"`
	NewValue string `json:"newValue" binding:"required"`
	Reason   string `json:"reason"`
}

type RejectChangeRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type CreateDisputeRequest struct {
	EmployeeProfileID string `json:"employeeProfileId" binding:"required,uuid"`
	Dispute           string `json:"dispute" binding:"required"`
}

type ResolveDisputeRequest struct {
	Resolution string `json:"resolution" binding:"required"`
}

type ChangeRequestResponse struct {
	ID                string `json:"id"`
	RequestID         string `json:"request_id"`
	EmployeeProfileID string `json:"employee_profile_id"`
	Kind              string `json:"kind"`
	Field             string `json:"field,omitempty"`
	NewValue          string `json:"new_value,omitempty"`
	OriginalRequestID string `json:"original_request_id,omitempty"`
	Reason            string `json:"reason,omitempty"`
	Status            string `json:"status"`
	SubmittedAt       string `json:"submitted_at"`
	ProcessedAt       *string `json:"processed_at,omitempty"`
}

type WithdrawResponse struct {
	Message   string `json:"message"`
	RequestID string `json:"request_id"`
	Status    string `json:"status"`
}
