package persistence

import (
	"context"
	"errors"

	"AssistHub/internal/modules/assistance/domain/entity"
	"AssistHub/internal/modules/assistance/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type courseRepositoryImpl struct {
	db *gorm.DB
}

func NewCourseRepository(db *gorm.DB) repository.CourseRepository {
	return &courseRepositoryImpl{db: db}
}

func (r *courseRepositoryImpl) GetAll(ctx context.Context) ([]entity.Course, error) {
	var courses []entity.Course
	if err := r.db.WithContext(ctx).Find(&courses).Error; err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *courseRepositoryImpl) GetByObjectID(ctx context.Context, objectID string) (*entity.Course, error) {
	var course entity.Course
	err := r.db.WithContext(ctx).Where("object_id = ?", objectID).First(&course).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &course, nil
}

// Save replaces the whole course record so readers never observe a partially
// updated override list.
func (r *courseRepositoryImpl) Save(ctx context.Context, course *entity.Course) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(course).Error
}

func (r *courseRepositoryImpl) Delete(ctx context.Context, objectID string) error {
	return r.db.WithContext(ctx).Where("object_id = ?", objectID).Delete(&entity.Course{}).Error
}

func (r *courseRepositoryImpl) DeleteByObjectIDNotIn(ctx context.Context, objectIDs []string) error {
	if len(objectIDs) == 0 {
		return r.db.WithContext(ctx).Where("1 = 1").Delete(&entity.Course{}).Error
	}
	return r.db.WithContext(ctx).Where("object_id NOT IN ?", objectIDs).Delete(&entity.Course{}).Error
}

type featureRepositoryImpl struct {
	db *gorm.DB
}

func NewFeatureRepository(db *gorm.DB) repository.FeatureRepository {
	return &featureRepositoryImpl{db: db}
}

func (r *featureRepositoryImpl) GetAll(ctx context.Context) ([]entity.Feature, error) {
	var features []entity.Feature
	if err := r.db.WithContext(ctx).Find(&features).Error; err != nil {
		return nil, err
	}
	return features, nil
}

func (r *featureRepositoryImpl) Exists(ctx context.Context, key string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Feature{}).Where("`key` = ?", key).Count(&count).Error
	return count > 0, err
}

func (r *featureRepositoryImpl) Save(ctx context.Context, feature *entity.Feature) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(feature).Error
}

func (r *featureRepositoryImpl) Delete(ctx context.Context, key string) error {
	return r.db.WithContext(ctx).Where("`key` = ?", key).Delete(&entity.Feature{}).Error
}
