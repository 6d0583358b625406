package kafka

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func validOutboxEvent() OutboxEvent {
	return OutboxEvent{
		ID:            uuid.New().String(),
		AggregateType: "change_request",
		AggregateID:   uuid.New().String(),
		EventType:     "change_request_approved",
		Topic:         "hr.change-request.decision.v1",
		Payload:       []byte(`{"decision":"APPROVED"}`),
		Status:        OutboxStatusPending,
	}
}

func TestValidateOutboxEvent(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		assert.NoError(t, ValidateOutboxEvent(validOutboxEvent()))
	})

	t.Run("negative missing id", func(t *testing.T) {
		e := validOutboxEvent()
		e.ID = ""
		assert.Error(t, ValidateOutboxEvent(e))
	})

	t.Run("negative missing topic", func(t *testing.T) {
		e := validOutboxEvent()
		e.Topic = ""
		assert.Error(t, ValidateOutboxEvent(e))
	})

	t.Run("negative empty payload", func(t *testing.T) {
		e := validOutboxEvent()
		e.Payload = nil
		assert.Error(t, ValidateOutboxEvent(e))
	})

	t.Run("negative unknown status", func(t *testing.T) {
		e := validOutboxEvent()
		e.Status = "DELIVERING"
		assert.Error(t, ValidateOutboxEvent(e))
	})
}
