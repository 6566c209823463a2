package service

import (
	"context"

	"AssistHub/internal/clients/backbone"
	"AssistHub/internal/modules/assistance/domain/entity"
	"AssistHub/internal/modules/assistance/domain/precondition"
	"AssistHub/internal/modules/assistance/domain/repository"
	"AssistHub/pkg/xerr"
	"AssistHub/pkg/zlog"
)

const lcoTypeCourse = "COURSE"

// CourseService manages per-course feature overrides and the resulting
// capability state. Courses live authoritatively in the backbone; a local
// record exists only while a course deviates from the defaults.
type CourseService interface {
	// SyncCourses drops local override records whose course no longer
	// exists in the backbone.
	SyncCourses(ctx context.Context) error
	GetAllCourses(ctx context.Context) ([]entity.Course, error)
	// GetCourse resolves the course in the backbone and returns the local
	// override record, or a default one when none is stored.
	GetCourse(ctx context.Context, objectID string) (*entity.Course, error)
	GetCourseFeatures(ctx context.Context, objectID string) ([]entity.CourseFeature, error)
	UpdateCourseFeatures(ctx context.Context, objectID string, features []entity.CourseFeature) ([]entity.CourseFeature, error)
	GetCourseAssistanceTypes(ctx context.Context, objectID string) ([]entity.CourseAssistanceType, error)
	ConfigureCourseAssistanceTypes(ctx context.Context, objectID string, courseTypes []entity.CourseAssistanceType) ([]entity.CourseAssistanceType, error)
	// EffectiveAssistanceTypeKeys returns the keys a learner in the course
	// may currently use: enabled with fulfilled preconditions.
	EffectiveAssistanceTypeKeys(ctx context.Context, objectID string) ([]string, error)
}

type courseServiceImpl struct {
	courseRepo  repository.CourseRepository
	featureRepo repository.FeatureRepository
	backbone    backbone.API
	typeService AssistanceTypeService
}

func NewCourseService(
	courseRepo repository.CourseRepository,
	featureRepo repository.FeatureRepository,
	backboneAPI backbone.API,
	typeService AssistanceTypeService,
) CourseService {
	return &courseServiceImpl{
		courseRepo:  courseRepo,
		featureRepo: featureRepo,
		backbone:    backboneAPI,
		typeService: typeService,
	}
}

func (s *courseServiceImpl) SyncCourses(ctx context.Context) error {
	stored, err := s.courseRepo.GetAll(ctx)
	if err != nil {
		return err
	}
	if len(stored) == 0 {
		return nil
	}

	kept := make([]string, 0, len(stored))
	for _, course := range stored {
		lcos, err := s.backbone.SearchLearningContentObjects(ctx, []backbone.SearchParameter{
			{Key: "objectId", Value: course.ObjectID},
			{Key: "lcoType", Value: lcoTypeCourse},
		})
		if err != nil {
			// The backbone being unreachable is no reason to wipe local
			// state; keep everything and retry on the next run.
			zlog.Warn("course sync: backbone lookup failed, keeping " + course.ObjectID)
			kept = append(kept, course.ObjectID)
			continue
		}
		if lcos.TotalNumber > 0 {
			kept = append(kept, course.ObjectID)
		}
	}
	return s.courseRepo.DeleteByObjectIDNotIn(ctx, kept)
}

func (s *courseServiceImpl) GetAllCourses(ctx context.Context) ([]entity.Course, error) {
	return s.courseRepo.GetAll(ctx)
}

func (s *courseServiceImpl) GetCourse(ctx context.Context, objectID string) (*entity.Course, error) {
	lcos, err := s.backbone.SearchLearningContentObjects(ctx, []backbone.SearchParameter{
		{Key: "objectId", Value: objectID},
		{Key: "lcoType", Value: lcoTypeCourse},
	})
	if err != nil {
		return nil, err
	}
	if lcos.TotalNumber == 0 {
		return nil, xerr.NotFoundf("course '%s' not found", objectID)
	}
	if lcos.TotalNumber > 1 {
		return nil, &xerr.CodeError{Code: xerr.Conflict, Message: "course id '" + objectID + "' is ambiguous"}
	}

	course, err := s.courseRepo.GetByObjectID(ctx, objectID)
	if err != nil {
		return nil, err
	}
	if course == nil {
		course = &entity.Course{ObjectID: objectID}
	}
	return course, nil
}

func (s *courseServiceImpl) GetCourseFeatures(ctx context.Context, objectID string) ([]entity.CourseFeature, error) {
	course, err := s.GetCourse(ctx, objectID)
	if err != nil {
		return nil, err
	}

	// Overlay stored overrides on the full feature list. A feature is off
	// for a course unless explicitly enabled there.
	features, err := s.featureRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	overrides := make(map[string]bool, len(course.CourseFeatures))
	for _, courseFeature := range course.CourseFeatures {
		overrides[courseFeature.Key] = courseFeature.Enabled
	}
	courseFeatures := make([]entity.CourseFeature, 0, len(features))
	for _, feature := range features {
		courseFeatures = append(courseFeatures, entity.CourseFeature{Key: feature.Key, Enabled: overrides[feature.Key]})
	}
	return courseFeatures, nil
}

func (s *courseServiceImpl) UpdateCourseFeatures(ctx context.Context, objectID string, features []entity.CourseFeature) ([]entity.CourseFeature, error) {
	course, err := s.GetCourse(ctx, objectID)
	if err != nil {
		return nil, err
	}
	for _, courseFeature := range features {
		exists, err := s.featureRepo.Exists(ctx, courseFeature.Key)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, xerr.NotFoundf("feature '%s' not found", courseFeature.Key)
		}
	}

	// Disabled is the default, so only enabled features need an override
	// record.
	overrides := make([]entity.CourseFeature, 0, len(features))
	for _, courseFeature := range features {
		if courseFeature.Enabled {
			overrides = append(overrides, courseFeature)
		}
	}
	course.CourseFeatures = overrides

	if err := s.typeService.RecomputeCoursePreconditions(ctx, course, nil); err != nil {
		return nil, err
	}
	return s.GetCourseFeatures(ctx, objectID)
}

func (s *courseServiceImpl) GetCourseAssistanceTypes(ctx context.Context, objectID string) ([]entity.CourseAssistanceType, error) {
	course, err := s.GetCourse(ctx, objectID)
	if err != nil {
		return nil, err
	}
	assistanceTypes, err := s.typeService.GetAssistanceTypes(ctx)
	if err != nil {
		return nil, err
	}

	enabledFeatures := course.EnabledFeatureKeys()
	overrides := make(map[string]entity.CourseAssistanceType, len(course.CourseAssistanceTypes))
	for _, courseType := range course.CourseAssistanceTypes {
		overrides[courseType.Key] = courseType
	}

	courseTypes := make([]entity.CourseAssistanceType, 0, len(assistanceTypes))
	for _, assistanceType := range assistanceTypes {
		if override, ok := overrides[assistanceType.Key]; ok {
			courseTypes = append(courseTypes, override)
			continue
		}
		courseTypes = append(courseTypes, entity.CourseAssistanceType{
			Key:                   assistanceType.Key,
			Enabled:               true,
			PreconditionFulfilled: precondition.Fulfilled(assistanceType.RequiredFeatures, enabledFeatures),
		})
	}
	return courseTypes, nil
}

func (s *courseServiceImpl) ConfigureCourseAssistanceTypes(ctx context.Context, objectID string, courseTypes []entity.CourseAssistanceType) ([]entity.CourseAssistanceType, error) {
	course, err := s.GetCourse(ctx, objectID)
	if err != nil {
		return nil, err
	}

	catalog, err := s.typeService.GetAssistanceTypes(ctx)
	if err != nil {
		return nil, err
	}
	catalogKeys := make(map[string]struct{}, len(catalog))
	for _, t := range catalog {
		catalogKeys[t.Key] = struct{}{}
	}

	keys := make([]string, 0, len(courseTypes))
	for _, courseType := range courseTypes {
		if _, ok := catalogKeys[courseType.Key]; !ok {
			return nil, xerr.NotFoundf("assistance type '%s' not found", courseType.Key)
		}
		keys = append(keys, courseType.Key)
	}

	// Seed the enabled flags so the recompute preserves the caller's
	// choices instead of the stored ones.
	seeded := make([]entity.CourseAssistanceType, 0, len(courseTypes))
	for _, courseType := range courseTypes {
		seeded = append(seeded, entity.CourseAssistanceType{Key: courseType.Key, Enabled: courseType.Enabled})
	}
	course.CourseAssistanceTypes = mergeOverrides(course.CourseAssistanceTypes, seeded)

	if err := s.typeService.RecomputeCoursePreconditions(ctx, course, keys); err != nil {
		return nil, err
	}
	return s.GetCourseAssistanceTypes(ctx, objectID)
}

func mergeOverrides(existing, updates []entity.CourseAssistanceType) []entity.CourseAssistanceType {
	updated := make(map[string]struct{}, len(updates))
	merged := make([]entity.CourseAssistanceType, 0, len(existing)+len(updates))
	merged = append(merged, updates...)
	for _, u := range updates {
		updated[u.Key] = struct{}{}
	}
	for _, e := range existing {
		if _, ok := updated[e.Key]; !ok {
			merged = append(merged, e)
		}
	}
	return merged
}

func (s *courseServiceImpl) EffectiveAssistanceTypeKeys(ctx context.Context, objectID string) ([]string, error) {
	courseTypes, err := s.GetCourseAssistanceTypes(ctx, objectID)
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(courseTypes))
	for _, courseType := range courseTypes {
		if courseType.Enabled && courseType.PreconditionFulfilled {
			keys = append(keys, courseType.Key)
		}
	}
	return keys, nil
}
