package backbone

import (
	"encoding/json"
	"time"
)

type Parameter struct {
	Key   string      `json:"key"`
	Value interface{} `json:"value"`
}

type AssistanceTypeInfo struct {
	Key string `json:"key"`
}

type AssistanceTypeList struct {
	ProvidedNumber int                  `json:"providedNumber"`
	Types          []AssistanceTypeInfo `json:"types"`
}

// AssistanceObject is one offer addressed to a user within an assistance
// process.
type AssistanceObject struct {
	AOID           string      `json:"aoId"`
	UserID         string      `json:"userId"`
	AssistanceType string      `json:"assistanceType,omitempty"`
	ContextID      string      `json:"contextId,omitempty"`
	Timestamp      time.Time   `json:"timestamp"`
	Parameters     []Parameter `json:"parameters"`
}

type Assistance struct {
	AID               string             `json:"aId"`
	UserID            string             `json:"userId,omitempty"`
	AssistanceObjects []AssistanceObject `json:"assistanceObjects"`
}

// AssistanceBundle is a batch of assistance processes delivered in one unit.
type AssistanceBundle struct {
	Assistance []Assistance `json:"assistance"`
}

type AssistanceResponse struct {
	AOID       string      `json:"aoId"`
	UserID     string      `json:"userId"`
	Parameters []Parameter `json:"parameters"`
}

type SearchParameter struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// AssistanceObjectRecord is a historical offer as returned by the search
// endpoint, including the assistance process it belongs to.
type AssistanceObjectRecord struct {
	AssistanceObject
	AID string `json:"aId"`
}

type AssistanceObjectList struct {
	TotalNumber             int                      `json:"totalNumber"`
	AssistanceObjectRecords []AssistanceObjectRecord `json:"assistanceObjectRecords"`
}

type LearningContentObject struct {
	ObjectID string `json:"objectId"`
	LcoType  string `json:"lcoType"`
	Name     string `json:"name,omitempty"`
}

type LearningContentObjectList struct {
	TotalNumber int                     `json:"totalNumber"`
	Lcos        []LearningContentObject `json:"lcos"`
}

type StatementProcessingRequest struct {
	Statement                json.RawMessage      `json:"statement"`
	SupportedAssistanceTypes []AssistanceTypeInfo `json:"supportedAssistanceTypes"`
}

type AssistanceInitiationRequest struct {
	Type       string      `json:"type"`
	Language   string      `json:"language,omitempty"`
	Parameters []Parameter `json:"parameters"`
}
