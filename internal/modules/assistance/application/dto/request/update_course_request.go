package request

type CourseFeatureItem struct {
	Key     string `json:"key" binding:"required"`
	Enabled *bool  `json:"enabled" binding:"required"`
}

type UpdateCourseFeaturesRequest struct {
	Features []CourseFeatureItem `json:"features" binding:"required"`
}

type CourseAssistanceTypeItem struct {
	Key     string `json:"key" binding:"required"`
	Enabled *bool  `json:"enabled" binding:"required"`
}

type ConfigureCourseAssistanceTypesRequest struct {
	AssistanceTypes []CourseAssistanceTypeItem `json:"assistanceTypes" binding:"required"`
}
