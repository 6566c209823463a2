package respond

type LoginRespond struct {
	Token string `json:"token"`
}

type UserRespond struct {
	ID                 string `json:"id"`
	ActorAccountName   string `json:"actorAccountName"`
	Role               string `json:"role"`
	Language           string `json:"language"`
	LastLoggedInLmsURL string `json:"lastLoggedInLmsUrl,omitempty"`
}

type LongLivedTokenRespond struct {
	Token   string `json:"token,omitempty"`
	TokenID string `json:"tokenId"`
}

type WsConnectionsRespond struct {
	UserIDs []string `json:"userIds"`
}
