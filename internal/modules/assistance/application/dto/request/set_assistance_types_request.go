package request

type AssistanceTypeItem struct {
	Key              string   `json:"key" binding:"required"`
	RequiredFeatures []string `json:"requiredFeatures"`
}

type SetAssistanceTypesRequest struct {
	AssistanceTypes []AssistanceTypeItem `json:"assistanceTypes" binding:"required"`
}
