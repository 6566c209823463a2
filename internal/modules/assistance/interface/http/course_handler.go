package handler

import (
	assistanceRequest "AssistHub/internal/modules/assistance/application/dto/request"
	"AssistHub/internal/modules/assistance/application/dto/respond"
	"AssistHub/internal/modules/assistance/application/service"
	"AssistHub/internal/modules/assistance/domain/entity"
	"AssistHub/pkg/back"
	"AssistHub/pkg/xerr"
	"AssistHub/pkg/zlog"

	"github.com/gin-gonic/gin"
)

type CourseHandler struct {
	svc service.CourseService
}

func NewCourseHandler(svc service.CourseService) *CourseHandler {
	return &CourseHandler{svc: svc}
}

func (h *CourseHandler) GetCourses(c *gin.Context) {
	courses, err := h.svc.GetAllCourses(c.Request.Context())
	back.Result(c, courses, err)
}

func (h *CourseHandler) GetCourse(c *gin.Context) {
	course, err := h.svc.GetCourse(c.Request.Context(), c.Param("objectId"))
	back.Result(c, course, err)
}

func (h *CourseHandler) GetCourseFeatures(c *gin.Context) {
	features, err := h.svc.GetCourseFeatures(c.Request.Context(), c.Param("objectId"))
	back.Result(c, toCourseFeatureResponds(features), err)
}

func (h *CourseHandler) UpdateCourseFeatures(c *gin.Context) {
	var req assistanceRequest.UpdateCourseFeaturesRequest
	if err := c.BindJSON(&req); err != nil {
		zlog.Error(err.Error())
		back.Error(c, xerr.BadRequest, xerr.ErrParam.Message)
		return
	}

	features := make([]entity.CourseFeature, 0, len(req.Features))
	for _, item := range req.Features {
		features = append(features, entity.CourseFeature{Key: item.Key, Enabled: *item.Enabled})
	}

	updated, err := h.svc.UpdateCourseFeatures(c.Request.Context(), c.Param("objectId"), features)
	back.Result(c, toCourseFeatureResponds(updated), err)
}

func (h *CourseHandler) GetCourseAssistanceTypes(c *gin.Context) {
	courseTypes, err := h.svc.GetCourseAssistanceTypes(c.Request.Context(), c.Param("objectId"))
	back.Result(c, toCourseTypeResponds(courseTypes), err)
}

func (h *CourseHandler) ConfigureCourseAssistanceTypes(c *gin.Context) {
	var req assistanceRequest.ConfigureCourseAssistanceTypesRequest
	if err := c.BindJSON(&req); err != nil {
		zlog.Error(err.Error())
		back.Error(c, xerr.BadRequest, xerr.ErrParam.Message)
		return
	}

	courseTypes := make([]entity.CourseAssistanceType, 0, len(req.AssistanceTypes))
	for _, item := range req.AssistanceTypes {
		courseTypes = append(courseTypes, entity.CourseAssistanceType{Key: item.Key, Enabled: *item.Enabled})
	}

	updated, err := h.svc.ConfigureCourseAssistanceTypes(c.Request.Context(), c.Param("objectId"), courseTypes)
	back.Result(c, toCourseTypeResponds(updated), err)
}

func toCourseFeatureResponds(features []entity.CourseFeature) []respond.CourseFeatureRespond {
	out := make([]respond.CourseFeatureRespond, 0, len(features))
	for _, feature := range features {
		out = append(out, respond.CourseFeatureRespond{Key: feature.Key, Enabled: feature.Enabled})
	}
	return out
}

func toCourseTypeResponds(courseTypes []entity.CourseAssistanceType) []respond.CourseAssistanceTypeRespond {
	out := make([]respond.CourseAssistanceTypeRespond, 0, len(courseTypes))
	for _, courseType := range courseTypes {
		out = append(out, respond.CourseAssistanceTypeRespond{
			Key:                   courseType.Key,
			Enabled:               courseType.Enabled,
			PreconditionFulfilled: courseType.PreconditionFulfilled,
		})
	}
	return out
}
