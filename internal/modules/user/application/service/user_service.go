package service

import (
	"context"

	"AssistHub/internal/modules/user/domain/entity"
	"AssistHub/internal/modules/user/domain/repository"
	"AssistHub/pkg/util"
	"AssistHub/pkg/xerr"

	"github.com/google/uuid"
)

// UserService manages users, which are created lazily on first authentication.
type UserService interface {
	GetAllUsers(ctx context.Context) ([]entity.User, error)
	GetUser(ctx context.Context, userID uuid.UUID) (*entity.User, error)
	GetUserByActorAccountName(ctx context.Context, actorAccountName string) (*entity.User, error)
	GetUserByActorAccountNameOrAddUser(ctx context.Context, actorAccountName string) (*entity.User, error)
	GetUserByIDOrActorAccountName(ctx context.Context, idOrAccountName string) (*entity.User, error)
	AddUser(ctx context.Context, actorAccountName string, role entity.UserRole) (*entity.User, error)
	DeleteUser(ctx context.Context, actorAccountName string) error
	UpdateUserRole(ctx context.Context, userID uuid.UUID, role entity.UserRole) (*entity.User, error)
	UpdateUserLanguage(ctx context.Context, userID uuid.UUID, language entity.UserLanguage) (*entity.User, error)
	UpdateLastLoggedInLmsURL(ctx context.Context, userID uuid.UUID, lmsURL string) error
	UpdateLongLivedTokenID(ctx context.Context, userID uuid.UUID, tokenID *uuid.UUID) error
	UpdatePassword(ctx context.Context, userID uuid.UUID, rawPassword string) error
}

type userServiceImpl struct {
	repo repository.UserRepository
}

func NewUserService(repo repository.UserRepository) UserService {
	return &userServiceImpl{repo: repo}
}

func (s *userServiceImpl) GetAllUsers(ctx context.Context) ([]entity.User, error) {
	return s.repo.GetAll(ctx)
}

func (s *userServiceImpl) GetUser(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, xerr.NotFoundf("user '%s' not found", userID)
	}
	return user, nil
}

func (s *userServiceImpl) GetUserByActorAccountName(ctx context.Context, actorAccountName string) (*entity.User, error) {
	user, err := s.repo.GetByActorAccountName(ctx, actorAccountName)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, xerr.NotFoundf("user '%s' not found", actorAccountName)
	}
	return user, nil
}

func (s *userServiceImpl) GetUserByActorAccountNameOrAddUser(ctx context.Context, actorAccountName string) (*entity.User, error) {
	user, err := s.repo.GetByActorAccountName(ctx, actorAccountName)
	if err != nil {
		return nil, err
	}
	if user != nil {
		return user, nil
	}
	return s.AddUser(ctx, actorAccountName, entity.RoleStudent)
}

func (s *userServiceImpl) GetUserByIDOrActorAccountName(ctx context.Context, idOrAccountName string) (*entity.User, error) {
	if userID, err := uuid.Parse(idOrAccountName); err == nil {
		return s.GetUser(ctx, userID)
	}
	return s.GetUserByActorAccountName(ctx, idOrAccountName)
}

func (s *userServiceImpl) AddUser(ctx context.Context, actorAccountName string, role entity.UserRole) (*entity.User, error) {
	user := &entity.User{
		ID:               uuid.New(),
		ActorAccountName: actorAccountName,
		Role:             role,
		Language:         entity.LanguageDE,
	}
	if err := s.repo.Save(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userServiceImpl) DeleteUser(ctx context.Context, actorAccountName string) error {
	return s.repo.DeleteByActorAccountName(ctx, actorAccountName)
}

func (s *userServiceImpl) UpdateUserRole(ctx context.Context, userID uuid.UUID, role entity.UserRole) (*entity.User, error) {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.Role = role
	if err := s.repo.Save(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userServiceImpl) UpdateUserLanguage(ctx context.Context, userID uuid.UUID, language entity.UserLanguage) (*entity.User, error) {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.Language = language
	if err := s.repo.Save(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userServiceImpl) UpdateLastLoggedInLmsURL(ctx context.Context, userID uuid.UUID, lmsURL string) error {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return err
	}
	user.LastLoggedInLmsURL = lmsURL
	return s.repo.Save(ctx, user)
}

func (s *userServiceImpl) UpdateLongLivedTokenID(ctx context.Context, userID uuid.UUID, tokenID *uuid.UUID) error {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return err
	}
	user.LongLivedTokenID = tokenID
	return s.repo.Save(ctx, user)
}

func (s *userServiceImpl) UpdatePassword(ctx context.Context, userID uuid.UUID, rawPassword string) error {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return err
	}
	hash, err := util.HashPassword(rawPassword)
	if err != nil {
		return err
	}
	user.Password = hash
	return s.repo.Save(ctx, user)
}
