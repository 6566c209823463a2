package request

type LoginRequest struct {
	ActorAccountName string `json:"actorAccountName" binding:"required"`
	Password         string `json:"password"`
}

type AddUserRequest struct {
	ActorAccountName string `json:"actorAccountName" binding:"required"`
	Role             string `json:"role"`
}

type UpdateUserRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

type UpdateUserLanguageRequest struct {
	Language string `json:"language" binding:"required"`
}

type UpdateUserPasswordRequest struct {
	Password string `json:"password" binding:"required"`
}
