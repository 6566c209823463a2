package service

import (
	"context"

	"AssistHub/internal/modules/user/domain/entity"
	"AssistHub/pkg/util"
	"AssistHub/pkg/util/myjwt"
	"AssistHub/pkg/xerr"

	"github.com/google/uuid"
)

// LongLivedToken is the result of a long-lived credential request. Token is
// empty when a credential already exists; the id alone identifies it then.
type LongLivedToken struct {
	Token   string    `json:"token,omitempty"`
	TokenID uuid.UUID `json:"tokenId"`
}

// AuthService issues session tokens and long-lived credentials.
type AuthService interface {
	// Login authenticates an actor account name, creating the user on first
	// contact. Admins must present a password; for others the first password
	// seen is adopted, later logins must match it.
	Login(ctx context.Context, actorAccountName string, rawPassword string) (string, error)
	CreateLongLivedTokenOrGetTokenID(ctx context.Context, userID uuid.UUID) (*LongLivedToken, error)
	RevokeLongLivedToken(ctx context.Context, userID uuid.UUID) error
}

type authServiceImpl struct {
	users UserService
}

func NewAuthService(users UserService) AuthService {
	return &authServiceImpl{users: users}
}

func (s *authServiceImpl) Login(ctx context.Context, actorAccountName string, rawPassword string) (string, error) {
	user, err := s.users.GetUserByActorAccountNameOrAddUser(ctx, actorAccountName)
	if err != nil {
		return "", err
	}

	if user.Role == entity.RoleAdmin && rawPassword == "" {
		return "", xerr.New(xerr.Unauthorized, "password required")
	}

	if rawPassword != "" {
		if user.Password == "" {
			if err := s.users.UpdatePassword(ctx, user.ID, rawPassword); err != nil {
				return "", err
			}
		} else if !util.CheckPassword(user.Password, rawPassword) {
			return "", xerr.New(xerr.Unauthorized, "wrong password")
		}
	}

	return myjwt.GenerateToken(user.ID.String(), string(user.Role))
}

func (s *authServiceImpl) CreateLongLivedTokenOrGetTokenID(ctx context.Context, userID uuid.UUID) (*LongLivedToken, error) {
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	// The raw token is only ever returned once, at mint time.
	if user.LongLivedTokenID != nil {
		return &LongLivedToken{TokenID: *user.LongLivedTokenID}, nil
	}

	tokenID := uuid.New()
	token, err := myjwt.GenerateLongLivedToken(user.ID.String(), string(user.Role), tokenID.String())
	if err != nil {
		return nil, err
	}
	if err := s.users.UpdateLongLivedTokenID(ctx, user.ID, &tokenID); err != nil {
		return nil, err
	}

	return &LongLivedToken{Token: token, TokenID: tokenID}, nil
}

func (s *authServiceImpl) RevokeLongLivedToken(ctx context.Context, userID uuid.UUID) error {
	return s.users.UpdateLongLivedTokenID(ctx, userID, nil)
}
