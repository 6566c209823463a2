package service

import (
	"context"

	"AssistHub/internal/modules/assistance/domain/entity"
	"AssistHub/internal/modules/assistance/domain/repository"
	"AssistHub/pkg/xerr"
)

type FeatureService interface {
	GetAllFeatures(ctx context.Context) ([]entity.Feature, error)
	AddFeature(ctx context.Context, key string) (*entity.Feature, error)
	// DeleteFeature removes the feature, strips it from every stored
	// assistance type requirement set and every course override, then
	// recomputes the affected courses.
	DeleteFeature(ctx context.Context, key string) error
}

type featureServiceImpl struct {
	featureRepo repository.FeatureRepository
	typeRepo    repository.AssistanceTypeRepository
	courseRepo  repository.CourseRepository
	typeService AssistanceTypeService
}

func NewFeatureService(
	featureRepo repository.FeatureRepository,
	typeRepo repository.AssistanceTypeRepository,
	courseRepo repository.CourseRepository,
	typeService AssistanceTypeService,
) FeatureService {
	return &featureServiceImpl{
		featureRepo: featureRepo,
		typeRepo:    typeRepo,
		courseRepo:  courseRepo,
		typeService: typeService,
	}
}

func (s *featureServiceImpl) GetAllFeatures(ctx context.Context) ([]entity.Feature, error) {
	return s.featureRepo.GetAll(ctx)
}

func (s *featureServiceImpl) AddFeature(ctx context.Context, key string) (*entity.Feature, error) {
	if key == "" {
		return nil, xerr.ErrParam
	}
	feature := &entity.Feature{Key: key}
	if err := s.featureRepo.Save(ctx, feature); err != nil {
		return nil, err
	}
	return feature, nil
}

func (s *featureServiceImpl) DeleteFeature(ctx context.Context, key string) error {
	exists, err := s.featureRepo.Exists(ctx, key)
	if err != nil {
		return err
	}
	if !exists {
		return xerr.NotFoundf("feature '%s' not found", key)
	}
	if err := s.featureRepo.Delete(ctx, key); err != nil {
		return err
	}

	// Strip the feature from stored requirement sets. Types whose
	// requirement set becomes empty are no longer worth storing.
	assistanceTypes, err := s.typeRepo.GetAll(ctx)
	if err != nil {
		return err
	}
	for i := range assistanceTypes {
		assistanceType := assistanceTypes[i]
		remaining := make([]string, 0, len(assistanceType.RequiredFeatures))
		removed := false
		for _, featureKey := range assistanceType.RequiredFeatures {
			if featureKey == key {
				removed = true
				continue
			}
			remaining = append(remaining, featureKey)
		}
		if !removed {
			continue
		}
		if len(remaining) == 0 {
			if err := s.typeRepo.DeleteByKey(ctx, assistanceType.Key); err != nil {
				return err
			}
			continue
		}
		assistanceType.RequiredFeatures = remaining
		if err := s.typeRepo.Save(ctx, &assistanceType); err != nil {
			return err
		}
	}

	// Drop the feature from course overrides and recompute preconditions.
	courses, err := s.courseRepo.GetAll(ctx)
	if err != nil {
		return err
	}
	for i := range courses {
		course := courses[i]
		changed := false
		remaining := make([]entity.CourseFeature, 0, len(course.CourseFeatures))
		for _, courseFeature := range course.CourseFeatures {
			if courseFeature.Key == key {
				changed = true
				continue
			}
			remaining = append(remaining, courseFeature)
		}
		if changed {
			course.CourseFeatures = remaining
		}
		if !changed && len(course.CourseAssistanceTypes) == 0 {
			continue
		}
		if err := s.typeService.RecomputeCoursePreconditions(ctx, &course, nil); err != nil {
			return err
		}
	}
	return nil
}
