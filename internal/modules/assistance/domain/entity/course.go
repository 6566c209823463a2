package entity

// CourseFeature is a per-course feature toggle.
type CourseFeature struct {
	Key     string `json:"key"`
	Enabled bool   `json:"enabled"`
}

// CourseAssistanceType is a per-course deviation from the catalog default
// (enabled and precondition fulfilled).
type CourseAssistanceType struct {
	Key                   string `json:"key"`
	Enabled               bool   `json:"enabled"`
	PreconditionFulfilled bool   `json:"preConditionFulfilled"`
}

// IsDefault reports whether the entry matches the implicit catalog default.
func (c CourseAssistanceType) IsDefault() bool {
	return c.Enabled && c.PreconditionFulfilled
}

// Course exists in storage only while it carries at least one non-default
// override. Both lists are stored as JSON columns and replaced wholesale, so a
// concurrent reader observes either the old or the new record, never a mix.
type Course struct {
	ObjectID              string                 `gorm:"primaryKey;size:191" json:"objectId"`
	CourseFeatures        []CourseFeature        `gorm:"serializer:json" json:"courseFeatures"`
	CourseAssistanceTypes []CourseAssistanceType `gorm:"serializer:json" json:"courseAssistanceTypes"`
}

func (Course) TableName() string {
	return "courses"
}

// EnabledFeatureKeys returns the keys of the enabled feature overrides.
func (c *Course) EnabledFeatureKeys() map[string]struct{} {
	enabled := make(map[string]struct{}, len(c.CourseFeatures))
	for _, f := range c.CourseFeatures {
		if f.Enabled {
			enabled[f.Key] = struct{}{}
		}
	}
	return enabled
}

// AssistanceTypeKeys returns the keys of the stored capability overrides.
func (c *Course) AssistanceTypeKeys() []string {
	keys := make([]string, 0, len(c.CourseAssistanceTypes))
	for _, t := range c.CourseAssistanceTypes {
		keys = append(keys, t.Key)
	}
	return keys
}

// AllDefaults reports whether the course no longer deviates from the default
// state and can be garbage collected.
func (c *Course) AllDefaults() bool {
	if len(c.CourseFeatures) > 0 {
		return false
	}
	for _, t := range c.CourseAssistanceTypes {
		if !t.IsDefault() {
			return false
		}
	}
	return true
}
