package service

import (
	"context"
	"testing"

	"AssistHub/internal/clients/backbone"
	"AssistHub/internal/modules/assistance/domain/entity"
	"AssistHub/pkg/xerr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCourseFixture(t *testing.T, catalogKeys ...string) (CourseService, AssistanceTypeService, *fakeCourseRepo, *fakeFeatureRepo, *fakeBackbone) {
	t.Helper()
	typeRepo := newFakeTypeRepo()
	courseRepo := newFakeCourseRepo()
	featureRepo := newFakeFeatureRepo()
	bb := newFakeBackbone(catalogKeys...)
	typeSvc := NewAssistanceTypeService(typeRepo, courseRepo, bb)
	courseSvc := NewCourseService(courseRepo, featureRepo, bb, typeSvc)
	return courseSvc, typeSvc, courseRepo, featureRepo, bb
}

func TestGetCourseUnknownInBackbone(t *testing.T) {
	courseSvc, _, _, _, _ := newCourseFixture(t, "hint")

	_, err := courseSvc.GetCourse(context.Background(), "missing")
	require.Error(t, err)
	codeErr, ok := err.(*xerr.CodeError)
	require.True(t, ok)
	assert.Equal(t, xerr.NotFound, codeErr.Code)
}

func TestGetCourseAmbiguousInBackbone(t *testing.T) {
	courseSvc, _, _, _, bb := newCourseFixture(t, "hint")
	bb.lcos["dup"] = backbone.LearningContentObjectList{
		TotalNumber: 2,
		Lcos: []backbone.LearningContentObject{
			{ObjectID: "dup", LcoType: "COURSE"},
			{ObjectID: "dup", LcoType: "COURSE"},
		},
	}

	_, err := courseSvc.GetCourse(context.Background(), "dup")
	require.Error(t, err)
	codeErr, ok := err.(*xerr.CodeError)
	require.True(t, ok)
	assert.Equal(t, xerr.Conflict, codeErr.Code)
}

func TestGetCourseDefaultsWhenNotStored(t *testing.T) {
	courseSvc, _, _, _, bb := newCourseFixture(t, "hint")
	bb.knowCourse("c1")

	course, err := courseSvc.GetCourse(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, "c1", course.ObjectID)
	assert.Empty(t, course.CourseFeatures)
	assert.Empty(t, course.CourseAssistanceTypes)
}

func TestUpdateCourseFeaturesRejectsUnknownFeature(t *testing.T) {
	courseSvc, _, _, _, bb := newCourseFixture(t, "hint")
	bb.knowCourse("c1")

	_, err := courseSvc.UpdateCourseFeatures(context.Background(), "c1", []entity.CourseFeature{
		{Key: "missing", Enabled: true},
	})
	require.Error(t, err)
	codeErr, ok := err.(*xerr.CodeError)
	require.True(t, ok)
	assert.Equal(t, xerr.NotFound, codeErr.Code)
}

func TestConfigureCourseAssistanceTypesRejectsUnknownKey(t *testing.T) {
	courseSvc, _, _, _, bb := newCourseFixture(t, "hint")
	bb.knowCourse("c1")

	enabled := true
	_, err := courseSvc.ConfigureCourseAssistanceTypes(context.Background(), "c1", []entity.CourseAssistanceType{
		{Key: "unknown", Enabled: enabled},
	})
	require.Error(t, err)
	codeErr, ok := err.(*xerr.CodeError)
	require.True(t, ok)
	assert.Equal(t, xerr.NotFound, codeErr.Code)
}

func TestConfigureCourseAssistanceTypesDisable(t *testing.T) {
	courseSvc, _, courseRepo, _, bb := newCourseFixture(t, "hint", "feedback")
	bb.knowCourse("c1")

	courseTypes, err := courseSvc.ConfigureCourseAssistanceTypes(context.Background(), "c1", []entity.CourseAssistanceType{
		{Key: "hint", Enabled: false},
	})
	require.NoError(t, err)

	byKey := make(map[string]entity.CourseAssistanceType)
	for _, ct := range courseTypes {
		byKey[ct.Key] = ct
	}
	assert.False(t, byKey["hint"].Enabled)
	assert.True(t, byKey["feedback"].Enabled)

	stored, err := courseRepo.GetByObjectID(context.Background(), "c1")
	require.NoError(t, err)
	require.NotNil(t, stored)
	require.Len(t, stored.CourseAssistanceTypes, 1)
	assert.Equal(t, "hint", stored.CourseAssistanceTypes[0].Key)
}

// The full lifecycle: a gated capability shows as unfulfilled, enabling the
// gating feature flips it to fulfilled, the override evaporates, and when the
// last deviation is gone the course record disappears with it.
func TestFeatureGatingLifecycle(t *testing.T) {
	courseSvc, typeSvc, courseRepo, featureRepo, bb := newCourseFixture(t, "hint")
	bb.knowCourse("c1")
	require.NoError(t, featureRepo.Save(context.Background(), &entity.Feature{Key: "quiz_access"}))

	_, err := typeSvc.SetAssistanceTypes(context.Background(), []entity.AssistanceType{
		{Key: "hint", RequiredFeatures: []string{"quiz_access"}},
	})
	require.NoError(t, err)

	courseTypes, err := courseSvc.GetCourseAssistanceTypes(context.Background(), "c1")
	require.NoError(t, err)
	require.Len(t, courseTypes, 1)
	assert.True(t, courseTypes[0].Enabled)
	assert.False(t, courseTypes[0].PreconditionFulfilled)

	_, err = courseSvc.UpdateCourseFeatures(context.Background(), "c1", []entity.CourseFeature{
		{Key: "quiz_access", Enabled: true},
	})
	require.NoError(t, err)

	courseTypes, err = courseSvc.GetCourseAssistanceTypes(context.Background(), "c1")
	require.NoError(t, err)
	require.Len(t, courseTypes, 1)
	assert.True(t, courseTypes[0].Enabled)
	assert.True(t, courseTypes[0].PreconditionFulfilled)

	keys, err := courseSvc.EffectiveAssistanceTypeKeys(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, []string{"hint"}, keys)

	// Disabling the feature flips the gated capability back to unfulfilled,
	// which is a deviation that must stay persisted.
	_, err = courseSvc.UpdateCourseFeatures(context.Background(), "c1", []entity.CourseFeature{
		{Key: "quiz_access", Enabled: false},
	})
	require.NoError(t, err)

	stored, err := courseRepo.GetByObjectID(context.Background(), "c1")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Empty(t, stored.CourseFeatures)
	require.Len(t, stored.CourseAssistanceTypes, 1)
	assert.False(t, stored.CourseAssistanceTypes[0].PreconditionFulfilled)

	keys, err = courseSvc.EffectiveAssistanceTypeKeys(context.Background(), "c1")
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestCourseGarbageCollection(t *testing.T) {
	courseSvc, typeSvc, courseRepo, featureRepo, bb := newCourseFixture(t, "hint")
	bb.knowCourse("c1")
	require.NoError(t, featureRepo.Save(context.Background(), &entity.Feature{Key: "quiz_access"}))

	// A disabled override brings the record into existence.
	_, err := courseSvc.ConfigureCourseAssistanceTypes(context.Background(), "c1", []entity.CourseAssistanceType{
		{Key: "hint", Enabled: false},
	})
	require.NoError(t, err)
	stored, err := courseRepo.GetByObjectID(context.Background(), "c1")
	require.NoError(t, err)
	require.NotNil(t, stored)

	// Re-enabling reverts everything to defaults and the record is deleted.
	_, err = courseSvc.ConfigureCourseAssistanceTypes(context.Background(), "c1", []entity.CourseAssistanceType{
		{Key: "hint", Enabled: true},
	})
	require.NoError(t, err)
	stored, err = courseRepo.GetByObjectID(context.Background(), "c1")
	require.NoError(t, err)
	assert.Nil(t, stored)

	_ = typeSvc
}

func TestSyncCoursesDropsUnknownCourses(t *testing.T) {
	courseSvc, _, courseRepo, _, bb := newCourseFixture(t, "hint")
	bb.knowCourse("kept")
	require.NoError(t, courseRepo.Save(context.Background(), &entity.Course{
		ObjectID:       "kept",
		CourseFeatures: []entity.CourseFeature{{Key: "quiz_access", Enabled: true}},
	}))
	require.NoError(t, courseRepo.Save(context.Background(), &entity.Course{
		ObjectID:       "gone",
		CourseFeatures: []entity.CourseFeature{{Key: "quiz_access", Enabled: true}},
	}))

	require.NoError(t, courseSvc.SyncCourses(context.Background()))

	kept, err := courseRepo.GetByObjectID(context.Background(), "kept")
	require.NoError(t, err)
	assert.NotNil(t, kept)
	gone, err := courseRepo.GetByObjectID(context.Background(), "gone")
	require.NoError(t, err)
	assert.Nil(t, gone)
}
