package service

import (
	"context"

	"AssistHub/internal/clients/backbone"
	"AssistHub/internal/modules/assistance/domain/entity"
	"AssistHub/internal/modules/assistance/domain/precondition"
	"AssistHub/internal/modules/assistance/domain/repository"
	"AssistHub/pkg/xerr"
)

// AssistanceTypeService reconciles the backbone's authoritative capability
// catalog with the locally stored feature requirements and keeps every
// course's precondition state consistent with them.
type AssistanceTypeService interface {
	// SyncAssistanceTypes drops stored types that vanished from the
	// authoritative catalog and recomputes all courses carrying overrides.
	SyncAssistanceTypes(ctx context.Context) error
	// GetAssistanceTypes returns the authoritative catalog with stored
	// feature requirements merged in.
	GetAssistanceTypes(ctx context.Context) ([]entity.AssistanceType, error)
	// SetAssistanceTypes replaces the stored type set. Every provided key
	// must exist in the authoritative catalog; only types with a non-empty
	// requirement set are persisted.
	SetAssistanceTypes(ctx context.Context, assistanceTypes []entity.AssistanceType) ([]entity.AssistanceType, error)
	// RecomputeCoursePreconditions re-evaluates the given assistance type
	// keys for a course and persists or garbage collects the course record.
	// A nil key set means every type carrying a requirement definition plus
	// every type the course overrides. Keys gone from the authoritative
	// catalog are dropped, not rejected.
	RecomputeCoursePreconditions(ctx context.Context, course *entity.Course, assistanceTypeKeys []string) error
}

type assistanceTypeServiceImpl struct {
	typeRepo   repository.AssistanceTypeRepository
	courseRepo repository.CourseRepository
	backbone   backbone.API
}

func NewAssistanceTypeService(
	typeRepo repository.AssistanceTypeRepository,
	courseRepo repository.CourseRepository,
	backboneAPI backbone.API,
) AssistanceTypeService {
	return &assistanceTypeServiceImpl{
		typeRepo:   typeRepo,
		courseRepo: courseRepo,
		backbone:   backboneAPI,
	}
}

func (s *assistanceTypeServiceImpl) SyncAssistanceTypes(ctx context.Context) error {
	// The sync is the reconciliation point and must read the authoritative
	// catalog, not a cached copy.
	if cache, ok := s.backbone.(interface{ Invalidate(context.Context) }); ok {
		cache.Invalidate(ctx)
	}
	catalog, err := s.backbone.GetSupportedAssistanceTypes(ctx)
	if err != nil {
		return err
	}
	if catalog.ProvidedNumber != 0 || len(catalog.Types) != 0 {
		keys := make([]string, 0, len(catalog.Types))
		for _, t := range catalog.Types {
			keys = append(keys, t.Key)
		}
		if err := s.typeRepo.DeleteByKeysNotIn(ctx, keys); err != nil {
			return err
		}
	}

	courses, err := s.courseRepo.GetAll(ctx)
	if err != nil {
		return err
	}
	for i := range courses {
		course := courses[i]
		if len(course.CourseAssistanceTypes) == 0 {
			continue
		}
		if err := s.RecomputeCoursePreconditions(ctx, &course, nil); err != nil {
			return err
		}
	}
	return nil
}

func (s *assistanceTypeServiceImpl) GetAssistanceTypes(ctx context.Context) ([]entity.AssistanceType, error) {
	catalog, err := s.backbone.GetSupportedAssistanceTypes(ctx)
	if err != nil {
		return nil, err
	}

	stored, err := s.typeRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	storedByKey := make(map[string]entity.AssistanceType, len(stored))
	for _, t := range stored {
		storedByKey[t.Key] = t
	}

	assistanceTypes := make([]entity.AssistanceType, 0, len(catalog.Types))
	for _, t := range catalog.Types {
		assistanceType := entity.AssistanceType{Key: t.Key}
		if storedType, ok := storedByKey[t.Key]; ok {
			assistanceType.RequiredFeatures = storedType.RequiredFeatures
		}
		assistanceTypes = append(assistanceTypes, assistanceType)
	}
	return assistanceTypes, nil
}

func (s *assistanceTypeServiceImpl) SetAssistanceTypes(ctx context.Context, assistanceTypes []entity.AssistanceType) ([]entity.AssistanceType, error) {
	existing, err := s.GetAssistanceTypes(ctx)
	if err != nil {
		return nil, err
	}
	existingKeys := make(map[string]struct{}, len(existing))
	for _, t := range existing {
		existingKeys[t.Key] = struct{}{}
	}
	for _, t := range assistanceTypes {
		if _, ok := existingKeys[t.Key]; !ok {
			return nil, xerr.NotFoundf("assistance type '%s' not found", t.Key)
		}
	}

	toPersist := make([]entity.AssistanceType, 0, len(assistanceTypes))
	for _, t := range assistanceTypes {
		if len(t.RequiredFeatures) > 0 {
			toPersist = append(toPersist, t)
		}
	}
	if err := s.typeRepo.ReplaceAll(ctx, toPersist); err != nil {
		return nil, err
	}

	courses, err := s.courseRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range courses {
		course := courses[i]
		if err := s.RecomputeCoursePreconditions(ctx, &course, nil); err != nil {
			return nil, err
		}
	}
	return assistanceTypes, nil
}

func (s *assistanceTypeServiceImpl) RecomputeCoursePreconditions(ctx context.Context, course *entity.Course, assistanceTypeKeys []string) error {
	existing, err := s.GetAssistanceTypes(ctx)
	if err != nil {
		return err
	}
	existingByKey := make(map[string]entity.AssistanceType, len(existing))
	for _, t := range existing {
		existingByKey[t.Key] = t
	}

	stored, err := s.typeRepo.GetAll(ctx)
	if err != nil {
		return err
	}
	storedByKey := make(map[string]entity.AssistanceType, len(stored))
	for _, t := range stored {
		storedByKey[t.Key] = t
	}

	if assistanceTypeKeys == nil {
		seen := make(map[string]struct{}, len(stored))
		for _, t := range stored {
			assistanceTypeKeys = append(assistanceTypeKeys, t.Key)
			seen[t.Key] = struct{}{}
		}
		for _, key := range course.AssistanceTypeKeys() {
			if _, ok := seen[key]; !ok {
				assistanceTypeKeys = append(assistanceTypeKeys, key)
			}
		}
	}

	dropped := make(map[string]struct{})
	assistanceTypes := make([]entity.AssistanceType, 0, len(assistanceTypeKeys))
	for _, key := range assistanceTypeKeys {
		assistanceType, ok := existingByKey[key]
		if !ok {
			// Gone from the catalog. A stale requirement definition is
			// removed and the course entry simply disappears.
			if _, wasStored := storedByKey[key]; wasStored {
				if err := s.typeRepo.DeleteByKey(ctx, key); err != nil {
					return err
				}
			}
			dropped[key] = struct{}{}
			continue
		}
		assistanceTypes = append(assistanceTypes, assistanceType)
	}
	if len(dropped) > 0 {
		remaining := make([]entity.CourseAssistanceType, 0, len(course.CourseAssistanceTypes))
		for _, t := range course.CourseAssistanceTypes {
			if _, gone := dropped[t.Key]; !gone {
				remaining = append(remaining, t)
			}
		}
		course.CourseAssistanceTypes = remaining
	}

	return s.recomputePreconditions(ctx, course, assistanceTypes)
}

// recomputePreconditions rebuilds the course's capability override list as a
// sparse diff against the default state (enabled, fulfilled) and persists or
// garbage collects the record.
func (s *assistanceTypeServiceImpl) recomputePreconditions(ctx context.Context, course *entity.Course, assistanceTypes []entity.AssistanceType) error {
	enabledFeatures := course.EnabledFeatureKeys()

	previousByKey := make(map[string]entity.CourseAssistanceType, len(course.CourseAssistanceTypes))
	for _, t := range course.CourseAssistanceTypes {
		previousByKey[t.Key] = t
	}

	recomputed := make(map[string]struct{}, len(assistanceTypes))
	courseAssistanceTypes := make([]entity.CourseAssistanceType, 0, len(assistanceTypes))
	for _, assistanceType := range assistanceTypes {
		recomputed[assistanceType.Key] = struct{}{}
		previous, hasPrevious := previousByKey[assistanceType.Key]
		enabled := !hasPrevious || previous.Enabled
		if len(assistanceType.RequiredFeatures) == 0 && enabled {
			// Back to the implicit default, the override disappears.
			continue
		}
		courseAssistanceTypes = append(courseAssistanceTypes, entity.CourseAssistanceType{
			Key:                   assistanceType.Key,
			Enabled:               enabled,
			PreconditionFulfilled: precondition.Fulfilled(assistanceType.RequiredFeatures, enabledFeatures),
		})
	}

	// Overrides outside the recompute set stay untouched.
	for _, previous := range course.CourseAssistanceTypes {
		if _, ok := recomputed[previous.Key]; !ok {
			courseAssistanceTypes = append(courseAssistanceTypes, previous)
		}
	}

	course.CourseAssistanceTypes = courseAssistanceTypes
	if course.AllDefaults() {
		return s.courseRepo.Delete(ctx, course.ObjectID)
	}
	return s.courseRepo.Save(ctx, course)
}
