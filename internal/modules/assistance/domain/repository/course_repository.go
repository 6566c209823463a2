package repository

import (
	"context"

	"AssistHub/internal/modules/assistance/domain/entity"
)

// CourseRepository stores courses that deviate from the all-defaults state.
type CourseRepository interface {
	GetAll(ctx context.Context) ([]entity.Course, error)
	GetByObjectID(ctx context.Context, objectID string) (*entity.Course, error)
	Save(ctx context.Context, course *entity.Course) error
	Delete(ctx context.Context, objectID string) error
	DeleteByObjectIDNotIn(ctx context.Context, objectIDs []string) error
}

// FeatureRepository stores the administratively managed feature flags.
type FeatureRepository interface {
	GetAll(ctx context.Context) ([]entity.Feature, error)
	Exists(ctx context.Context, key string) (bool, error)
	Save(ctx context.Context, feature *entity.Feature) error
	Delete(ctx context.Context, key string) error
}
