package changerequest

import (
	"encoding/json"
	"fmt"
)

// The payload blob is written once at submission and never rewritten.
// It is a tagged union: exactly one arm must be populated, and the arm
// must agree with the kind tag.

type FieldEditPayload struct {
	Field    string `json:"field"`
	NewValue string `json:"newValue"`
	Reason   string `json:"reason"`
}

type DisputePayload struct {
	// Correlation request id of the contested change request, not the
	// storage primary key.
	OriginalRequestID string `json:"originalRequestId"`
}

type Payload struct {
	Kind      string            `json:"kind"`
	FieldEdit *FieldEditPayload `json:"fieldEdit,omitempty"`
	Dispute   *DisputePayload   `json:"dispute,omitempty"`
}

func EncodeFieldEditPayload(p FieldEditPayload) ([]byte, error) {
	return json.Marshal(Payload{
		Kind:      KindFieldEdit,
		FieldEdit: &p,
	})
}

func EncodeDisputePayload(p DisputePayload) ([]byte, error) {
	return json.Marshal(Payload{
		Kind:    KindDispute,
		Dispute: &p,
	})
}

// DecodePayload parses a stored payload and checks the union shape.
func DecodePayload(raw []byte) (Payload, error) {
	var p Payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return Payload{}, fmt.Errorf("decode change request payload: %w", err)
	}

	switch p.Kind {
	case KindFieldEdit:
		if p.FieldEdit == nil || p.Dispute != nil {
			return Payload{}, fmt.Errorf("payload kind %s does not match its content", p.Kind)
		}
	case KindDispute:
		if p.Dispute == nil || p.FieldEdit != nil {
			return Payload{}, fmt.Errorf("payload kind %s does not match its content", p.Kind)
		}
	default:
		return Payload{}, fmt.Errorf("unknown payload kind %q", p.Kind)
	}

	return p, nil
}
