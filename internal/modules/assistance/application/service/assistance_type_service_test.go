package service

import (
	"context"
	"testing"

	"AssistHub/internal/modules/assistance/domain/entity"
	"AssistHub/pkg/xerr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetAssistanceTypesMergesStoredRequirements(t *testing.T) {
	typeRepo := newFakeTypeRepo()
	require.NoError(t, typeRepo.Save(context.Background(), &entity.AssistanceType{
		Key:              "hint",
		RequiredFeatures: []string{"quiz_access"},
	}))
	svc := NewAssistanceTypeService(typeRepo, newFakeCourseRepo(), newFakeBackbone("hint", "feedback"))

	types, err := svc.GetAssistanceTypes(context.Background())
	require.NoError(t, err)
	require.Len(t, types, 2)

	byKey := make(map[string][]string)
	for _, at := range types {
		byKey[at.Key] = at.RequiredFeatures
	}
	assert.Equal(t, []string{"quiz_access"}, byKey["hint"])
	assert.Empty(t, byKey["feedback"])
}

func TestSetAssistanceTypesRejectsUnknownKey(t *testing.T) {
	svc := NewAssistanceTypeService(newFakeTypeRepo(), newFakeCourseRepo(), newFakeBackbone("hint"))

	_, err := svc.SetAssistanceTypes(context.Background(), []entity.AssistanceType{
		{Key: "unknown", RequiredFeatures: []string{"quiz_access"}},
	})
	require.Error(t, err)
	codeErr, ok := err.(*xerr.CodeError)
	require.True(t, ok)
	assert.Equal(t, xerr.NotFound, codeErr.Code)
}

func TestSetAssistanceTypesPersistsOnlyNonEmptyRequirements(t *testing.T) {
	typeRepo := newFakeTypeRepo()
	svc := NewAssistanceTypeService(typeRepo, newFakeCourseRepo(), newFakeBackbone("hint", "feedback"))

	_, err := svc.SetAssistanceTypes(context.Background(), []entity.AssistanceType{
		{Key: "hint", RequiredFeatures: []string{"quiz_access"}},
		{Key: "feedback"},
	})
	require.NoError(t, err)

	stored, err := typeRepo.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "hint", stored[0].Key)
}

func TestSetAssistanceTypesIsAllOrNothing(t *testing.T) {
	typeRepo := newFakeTypeRepo()
	require.NoError(t, typeRepo.Save(context.Background(), &entity.AssistanceType{
		Key:              "hint",
		RequiredFeatures: []string{"quiz_access"},
	}))
	svc := NewAssistanceTypeService(typeRepo, newFakeCourseRepo(), newFakeBackbone("hint"))

	_, err := svc.SetAssistanceTypes(context.Background(), []entity.AssistanceType{
		{Key: "hint", RequiredFeatures: []string{"chat"}},
		{Key: "unknown", RequiredFeatures: []string{"chat"}},
	})
	require.Error(t, err)

	stored, err := typeRepo.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, []string{"quiz_access"}, stored[0].RequiredFeatures)
}

func TestRecomputeDropsEntryWithoutRequirementsWhenEnabled(t *testing.T) {
	courseRepo := newFakeCourseRepo()
	svc := NewAssistanceTypeService(newFakeTypeRepo(), courseRepo, newFakeBackbone("hint"))

	course := &entity.Course{
		ObjectID: "c1",
		CourseAssistanceTypes: []entity.CourseAssistanceType{
			{Key: "hint", Enabled: true, PreconditionFulfilled: false},
		},
	}
	require.NoError(t, courseRepo.Save(context.Background(), course))

	// No requirement definition for hint anymore, the override reverts to
	// the implicit default and the record is collected.
	require.NoError(t, svc.RecomputeCoursePreconditions(context.Background(), course, nil))

	stored, err := courseRepo.GetByObjectID(context.Background(), "c1")
	require.NoError(t, err)
	assert.Nil(t, stored)
}

func TestRecomputePreservesDisabledFlag(t *testing.T) {
	typeRepo := newFakeTypeRepo()
	require.NoError(t, typeRepo.Save(context.Background(), &entity.AssistanceType{
		Key:              "hint",
		RequiredFeatures: []string{"quiz_access"},
	}))
	courseRepo := newFakeCourseRepo()
	svc := NewAssistanceTypeService(typeRepo, courseRepo, newFakeBackbone("hint"))

	course := &entity.Course{
		ObjectID:       "c1",
		CourseFeatures: []entity.CourseFeature{{Key: "quiz_access", Enabled: true}},
		CourseAssistanceTypes: []entity.CourseAssistanceType{
			{Key: "hint", Enabled: false, PreconditionFulfilled: false},
		},
	}
	require.NoError(t, svc.RecomputeCoursePreconditions(context.Background(), course, nil))

	stored, err := courseRepo.GetByObjectID(context.Background(), "c1")
	require.NoError(t, err)
	require.NotNil(t, stored)
	require.Len(t, stored.CourseAssistanceTypes, 1)
	assert.False(t, stored.CourseAssistanceTypes[0].Enabled)
	assert.True(t, stored.CourseAssistanceTypes[0].PreconditionFulfilled)
}

func TestRecomputeIsIdempotent(t *testing.T) {
	typeRepo := newFakeTypeRepo()
	require.NoError(t, typeRepo.Save(context.Background(), &entity.AssistanceType{
		Key:              "hint",
		RequiredFeatures: []string{"quiz_access"},
	}))
	courseRepo := newFakeCourseRepo()
	svc := NewAssistanceTypeService(typeRepo, courseRepo, newFakeBackbone("hint"))

	course := &entity.Course{ObjectID: "c1"}
	require.NoError(t, svc.RecomputeCoursePreconditions(context.Background(), course, nil))
	first, err := courseRepo.GetByObjectID(context.Background(), "c1")
	require.NoError(t, err)
	require.NotNil(t, first)

	again := *first
	require.NoError(t, svc.RecomputeCoursePreconditions(context.Background(), &again, nil))
	second, err := courseRepo.GetByObjectID(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, first.CourseAssistanceTypes, second.CourseAssistanceTypes)
}

func TestSyncAssistanceTypesInvalidatesCatalogCache(t *testing.T) {
	bb := newFakeBackbone("hint")
	svc := NewAssistanceTypeService(newFakeTypeRepo(), newFakeCourseRepo(), bb)

	require.NoError(t, svc.SyncAssistanceTypes(context.Background()))
	assert.Equal(t, 1, bb.invalidations)
}

func TestSyncAssistanceTypesDropsVanishedTypes(t *testing.T) {
	typeRepo := newFakeTypeRepo()
	require.NoError(t, typeRepo.Save(context.Background(), &entity.AssistanceType{
		Key:              "hint",
		RequiredFeatures: []string{"quiz_access"},
	}))
	require.NoError(t, typeRepo.Save(context.Background(), &entity.AssistanceType{
		Key:              "gone",
		RequiredFeatures: []string{"quiz_access"},
	}))
	courseRepo := newFakeCourseRepo()
	require.NoError(t, courseRepo.Save(context.Background(), &entity.Course{
		ObjectID: "c1",
		CourseAssistanceTypes: []entity.CourseAssistanceType{
			{Key: "gone", Enabled: true, PreconditionFulfilled: false},
			{Key: "hint", Enabled: true, PreconditionFulfilled: false},
		},
	}))
	svc := NewAssistanceTypeService(typeRepo, courseRepo, newFakeBackbone("hint"))

	require.NoError(t, svc.SyncAssistanceTypes(context.Background()))

	stored, err := typeRepo.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "hint", stored[0].Key)

	course, err := courseRepo.GetByObjectID(context.Background(), "c1")
	require.NoError(t, err)
	require.NotNil(t, course)
	require.Len(t, course.CourseAssistanceTypes, 1)
	assert.Equal(t, "hint", course.CourseAssistanceTypes[0].Key)
}
