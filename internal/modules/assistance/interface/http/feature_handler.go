package handler

import (
	assistanceRequest "AssistHub/internal/modules/assistance/application/dto/request"
	"AssistHub/internal/modules/assistance/application/dto/respond"
	"AssistHub/internal/modules/assistance/application/service"
	"AssistHub/pkg/back"
	"AssistHub/pkg/xerr"
	"AssistHub/pkg/zlog"

	"github.com/gin-gonic/gin"
)

type FeatureHandler struct {
	svc service.FeatureService
}

func NewFeatureHandler(svc service.FeatureService) *FeatureHandler {
	return &FeatureHandler{svc: svc}
}

func (h *FeatureHandler) GetFeatures(c *gin.Context) {
	features, err := h.svc.GetAllFeatures(c.Request.Context())
	if err != nil {
		back.Result(c, nil, err)
		return
	}
	out := make([]respond.FeatureRespond, 0, len(features))
	for _, feature := range features {
		out = append(out, respond.FeatureRespond{Key: feature.Key})
	}
	back.Success(c, out)
}

func (h *FeatureHandler) AddFeature(c *gin.Context) {
	var req assistanceRequest.AddFeatureRequest
	if err := c.BindJSON(&req); err != nil {
		zlog.Error(err.Error())
		back.Error(c, xerr.BadRequest, xerr.ErrParam.Message)
		return
	}

	feature, err := h.svc.AddFeature(c.Request.Context(), req.Key)
	if err != nil {
		back.Result(c, nil, err)
		return
	}
	back.Success(c, respond.FeatureRespond{Key: feature.Key})
}

func (h *FeatureHandler) DeleteFeature(c *gin.Context) {
	key := c.Param("key")
	if key == "" {
		back.Error(c, xerr.BadRequest, xerr.ErrParam.Message)
		return
	}
	err := h.svc.DeleteFeature(c.Request.Context(), key)
	back.Result(c, nil, err)
}
