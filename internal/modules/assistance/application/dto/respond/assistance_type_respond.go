package respond

type AssistanceTypeRespond struct {
	Key              string   `json:"key"`
	RequiredFeatures []string `json:"requiredFeatures"`
}

type FeatureRespond struct {
	Key string `json:"key"`
}

type CourseFeatureRespond struct {
	Key     string `json:"key"`
	Enabled bool   `json:"enabled"`
}

type CourseAssistanceTypeRespond struct {
	Key                   string `json:"key"`
	Enabled               bool   `json:"enabled"`
	PreconditionFulfilled bool   `json:"preConditionFulfilled"`
}
