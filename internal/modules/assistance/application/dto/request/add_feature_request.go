package request

type AddFeatureRequest struct {
	Key string `json:"key" binding:"required"`
}
