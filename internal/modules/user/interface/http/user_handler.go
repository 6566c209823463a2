package handler

import (
	userRequest "AssistHub/internal/modules/user/application/dto/request"
	"AssistHub/internal/modules/user/application/dto/respond"
	"AssistHub/internal/modules/user/application/service"
	"AssistHub/internal/modules/user/domain/entity"
	"AssistHub/pkg/back"
	"AssistHub/pkg/ws"
	"AssistHub/pkg/xerr"
	"AssistHub/pkg/zlog"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type UserHandler struct {
	svc  service.UserService
	auth service.AuthService
	hub  *ws.Hub
}

func NewUserHandler(svc service.UserService, auth service.AuthService, hub *ws.Hub) *UserHandler {
	return &UserHandler{svc: svc, auth: auth, hub: hub}
}

func (h *UserHandler) Login(c *gin.Context) {
	var req userRequest.LoginRequest
	if err := c.BindJSON(&req); err != nil {
		zlog.Error(err.Error())
		back.Error(c, xerr.BadRequest, xerr.ErrParam.Message)
		return
	}

	token, err := h.auth.Login(c.Request.Context(), req.ActorAccountName, req.Password)
	if err != nil {
		back.Result(c, nil, err)
		return
	}
	back.Success(c, respond.LoginRespond{Token: token})
}

func (h *UserHandler) GetUsers(c *gin.Context) {
	users, err := h.svc.GetAllUsers(c.Request.Context())
	if err != nil {
		back.Result(c, nil, err)
		return
	}
	out := make([]respond.UserRespond, 0, len(users))
	for _, user := range users {
		out = append(out, toUserRespond(&user))
	}
	back.Success(c, out)
}

func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.svc.GetUserByIDOrActorAccountName(c.Request.Context(), c.Param("id"))
	if err != nil {
		back.Result(c, nil, err)
		return
	}
	back.Success(c, toUserRespond(user))
}

func (h *UserHandler) AddUser(c *gin.Context) {
	var req userRequest.AddUserRequest
	if err := c.BindJSON(&req); err != nil {
		zlog.Error(err.Error())
		back.Error(c, xerr.BadRequest, xerr.ErrParam.Message)
		return
	}

	role := entity.RoleStudent
	if req.Role != "" {
		role = entity.UserRole(req.Role)
	}
	user, err := h.svc.AddUser(c.Request.Context(), req.ActorAccountName, role)
	if err != nil {
		back.Result(c, nil, err)
		return
	}
	back.Success(c, toUserRespond(user))
}

func (h *UserHandler) DeleteUser(c *gin.Context) {
	err := h.svc.DeleteUser(c.Request.Context(), c.Param("actorAccountName"))
	back.Result(c, nil, err)
}

func (h *UserHandler) UpdateRole(c *gin.Context) {
	var req userRequest.UpdateUserRoleRequest
	if err := c.BindJSON(&req); err != nil {
		zlog.Error(err.Error())
		back.Error(c, xerr.BadRequest, xerr.ErrParam.Message)
		return
	}
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		back.Error(c, xerr.BadRequest, "invalid user id")
		return
	}

	user, err := h.svc.UpdateUserRole(c.Request.Context(), userID, entity.UserRole(req.Role))
	if err != nil {
		back.Result(c, nil, err)
		return
	}
	back.Success(c, toUserRespond(user))
}

func (h *UserHandler) UpdateLanguage(c *gin.Context) {
	var req userRequest.UpdateUserLanguageRequest
	if err := c.BindJSON(&req); err != nil {
		zlog.Error(err.Error())
		back.Error(c, xerr.BadRequest, xerr.ErrParam.Message)
		return
	}
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		back.Error(c, xerr.BadRequest, "invalid user id")
		return
	}

	user, err := h.svc.UpdateUserLanguage(c.Request.Context(), userID, entity.UserLanguage(req.Language))
	if err != nil {
		back.Result(c, nil, err)
		return
	}
	back.Success(c, toUserRespond(user))
}

func (h *UserHandler) UpdatePassword(c *gin.Context) {
	var req userRequest.UpdateUserPasswordRequest
	if err := c.BindJSON(&req); err != nil {
		zlog.Error(err.Error())
		back.Error(c, xerr.BadRequest, xerr.ErrParam.Message)
		return
	}
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		back.Error(c, xerr.BadRequest, "invalid user id")
		return
	}

	err = h.svc.UpdatePassword(c.Request.Context(), userID, req.Password)
	back.Result(c, nil, err)
}

// CreateLongLivedToken mints (or re-references) the caller's long-lived
// credential. The token value itself is only returned on first creation.
func (h *UserHandler) CreateLongLivedToken(c *gin.Context) {
	userID, err := uuid.Parse(c.GetString("userId"))
	if err != nil {
		back.Error(c, xerr.Unauthorized, "unknown caller")
		return
	}

	token, err := h.auth.CreateLongLivedTokenOrGetTokenID(c.Request.Context(), userID)
	if err != nil {
		back.Result(c, nil, err)
		return
	}
	back.Success(c, respond.LongLivedTokenRespond{Token: token.Token, TokenID: token.TokenID.String()})
}

func (h *UserHandler) RevokeLongLivedToken(c *gin.Context) {
	userID, err := uuid.Parse(c.GetString("userId"))
	if err != nil {
		back.Error(c, xerr.Unauthorized, "unknown caller")
		return
	}
	err = h.auth.RevokeLongLivedToken(c.Request.Context(), userID)
	back.Result(c, nil, err)
}

// GetWsConnections lists the user ids currently holding a live websocket.
func (h *UserHandler) GetWsConnections(c *gin.Context) {
	back.Success(c, respond.WsConnectionsRespond{UserIDs: h.hub.ConnectedUsers()})
}

func toUserRespond(user *entity.User) respond.UserRespond {
	return respond.UserRespond{
		ID:                 user.ID.String(),
		ActorAccountName:   user.ActorAccountName,
		Role:               string(user.Role),
		Language:           string(user.Language),
		LastLoggedInLmsURL: user.LastLoggedInLmsURL,
	}
}
