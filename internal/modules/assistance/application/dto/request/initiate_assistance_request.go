package request

type InitiationParameter struct {
	Key   string      `json:"key" binding:"required"`
	Value interface{} `json:"value"`
}

type InitiateAssistanceRequest struct {
	Type       string                `json:"type" binding:"required"`
	Parameters []InitiationParameter `json:"parameters"`
}
