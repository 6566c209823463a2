package handler

import (
	"encoding/json"
	"io"

	"AssistHub/internal/clients/backbone"
	assistanceRequest "AssistHub/internal/modules/assistance/application/dto/request"
	"AssistHub/internal/modules/assistance/application/dto/respond"
	"AssistHub/internal/modules/assistance/application/service"
	"AssistHub/internal/modules/assistance/domain/entity"
	"AssistHub/pkg/back"
	"AssistHub/pkg/xerr"
	"AssistHub/pkg/zlog"

	"github.com/gin-gonic/gin"
)

type AssistanceHandler struct {
	typeService      service.AssistanceTypeService
	statementService service.StatementService
	communication    service.CommunicationService
}

func NewAssistanceHandler(
	typeService service.AssistanceTypeService,
	statementService service.StatementService,
	communication service.CommunicationService,
) *AssistanceHandler {
	return &AssistanceHandler{
		typeService:      typeService,
		statementService: statementService,
		communication:    communication,
	}
}

func (h *AssistanceHandler) GetAssistanceTypes(c *gin.Context) {
	assistanceTypes, err := h.typeService.GetAssistanceTypes(c.Request.Context())
	back.Result(c, toTypeResponds(assistanceTypes), err)
}

func (h *AssistanceHandler) SetAssistanceTypes(c *gin.Context) {
	var req assistanceRequest.SetAssistanceTypesRequest
	if err := c.BindJSON(&req); err != nil {
		zlog.Error(err.Error())
		back.Error(c, xerr.BadRequest, xerr.ErrParam.Message)
		return
	}

	assistanceTypes := make([]entity.AssistanceType, 0, len(req.AssistanceTypes))
	for _, item := range req.AssistanceTypes {
		assistanceTypes = append(assistanceTypes, entity.AssistanceType{
			Key:              item.Key,
			RequiredFeatures: item.RequiredFeatures,
		})
	}

	updated, err := h.typeService.SetAssistanceTypes(c.Request.Context(), assistanceTypes)
	back.Result(c, toTypeResponds(updated), err)
}

func (h *AssistanceHandler) InitiateAssistance(c *gin.Context) {
	var req assistanceRequest.InitiateAssistanceRequest
	if err := c.BindJSON(&req); err != nil {
		zlog.Error(err.Error())
		back.Error(c, xerr.BadRequest, xerr.ErrParam.Message)
		return
	}

	parameters := make([]backbone.Parameter, 0, len(req.Parameters))
	for _, p := range req.Parameters {
		parameters = append(parameters, backbone.Parameter{Key: p.Key, Value: p.Value})
	}

	err := h.statementService.InitiateAssistance(c.Request.Context(), req.Type, parameters)
	back.Result(c, nil, err)
}

// HandleBundle accepts a pushed assistance bundle and relays it to the
// addressed users.
func (h *AssistanceHandler) HandleBundle(c *gin.Context) {
	var bundle backbone.AssistanceBundle
	if err := c.BindJSON(&bundle); err != nil {
		zlog.Error(err.Error())
		back.Error(c, xerr.BadRequest, xerr.ErrParam.Message)
		return
	}

	h.communication.HandleBundle(c.Request.Context(), &bundle)
	back.Success(c, nil)
}

func (h *AssistanceHandler) HandleStatement(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil || len(body) == 0 || !json.Valid(body) {
		back.Error(c, xerr.BadRequest, "body must be one xAPI statement")
		return
	}

	err = h.statementService.HandleStatement(c.Request.Context(), body)
	back.Result(c, nil, err)
}

func toTypeResponds(assistanceTypes []entity.AssistanceType) []respond.AssistanceTypeRespond {
	out := make([]respond.AssistanceTypeRespond, 0, len(assistanceTypes))
	for _, t := range assistanceTypes {
		requiredFeatures := t.RequiredFeatures
		if requiredFeatures == nil {
			requiredFeatures = []string{}
		}
		out = append(out, respond.AssistanceTypeRespond{
			Key:              t.Key,
			RequiredFeatures: requiredFeatures,
		})
	}
	return out
}
