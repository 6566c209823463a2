package entity

// AssistanceType is a capability of the assistance backbone. Only types gated
// behind at least one required feature are persisted; everything else in the
// backbone's catalog exists implicitly.
type AssistanceType struct {
	Key              string   `gorm:"primaryKey;size:191" json:"key"`
	RequiredFeatures []string `gorm:"serializer:json" json:"requiredFeatures"`
}

func (AssistanceType) TableName() string {
	return "assistance_types"
}

// Feature is a named precondition flag courses can enable or disable.
type Feature struct {
	Key string `gorm:"primaryKey;size:191" json:"key"`
}

func (Feature) TableName() string {
	return "features"
}
