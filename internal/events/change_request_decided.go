package events

import "time"

const ChangeRequestDecisionTopic = "hr.change-request.decision.v1"

type ChangeRequestDecidedEvent struct {
	EventType         string    `json:"event_type"`
	RequestID         string    `json:"request_id"`
	CorrelationID     string    `json:"correlation_id"`
	EmployeeProfileID string    `json:"employee_profile_id"`
	Kind              string    `json:"kind"`
	Decision          string    `json:"decision"`
	Reason            string    `json:"reason"`
	OccurredAt        time.Time `json:"occurred_at"`
}
