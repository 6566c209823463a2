package entity

import (
	"time"

	"github.com/google/uuid"
)

// Parameter keys with protocol meaning on the user channel.
const (
	ParameterKeyJustLoggedIn    = "just_logged_in"
	ParameterKeyLmsURL          = "lms_url"
	ParameterKeyPreviousObjects = "previous_messages"
	ParameterKeyUnacknowledged  = "unacknowledged_messages"
)

// Parameter is one key/value pair of an assistance exchange.
type Parameter struct {
	Key   string      `json:"key"`
	Value interface{} `json:"value"`
}

// CommunicationObject is an assistance message pending acknowledgment by the
// user. An object with empty parameters is never persisted; such a payload is
// an acknowledgment signal.
type CommunicationObject struct {
	MessageID      uuid.UUID   `gorm:"primaryKey;type:char(36)" json:"messageId"`
	Timestamp      time.Time   `json:"timestamp"`
	UserID         string      `gorm:"index;size:191" json:"userId"`
	AID            string      `json:"aId,omitempty"`
	ContextID      string      `json:"contextId,omitempty"`
	AssistanceType string      `json:"assistanceType,omitempty"`
	AOID           string      `json:"aoId,omitempty"`
	Parameters     []Parameter `gorm:"serializer:json" json:"parameters"`
}

func (CommunicationObject) TableName() string {
	return "communication_objects"
}

// NewCommunicationObject builds a persistable object with a fresh message id.
func NewCommunicationObject(timestamp time.Time, userID string, parameters []Parameter) CommunicationObject {
	return CommunicationObject{
		MessageID:  uuid.New(),
		Timestamp:  timestamp,
		UserID:     userID,
		Parameters: parameters,
	}
}

// Parameter returns the parameter with the given key, or nil.
func (o *CommunicationObject) Parameter(key string) *Parameter {
	for i := range o.Parameters {
		if o.Parameters[i].Key == key {
			return &o.Parameters[i]
		}
	}
	return nil
}
