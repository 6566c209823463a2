package service

import (
	"context"
	"time"

	"AssistHub/internal/clients/lrs"
	"AssistHub/internal/modules/assistance/domain/entity"
	"AssistHub/internal/modules/assistance/domain/repository"
	userservice "AssistHub/internal/modules/user/application/service"
	"AssistHub/pkg/zlog"

	"github.com/google/uuid"
)

// PresenceService tracks websocket presence with a grace period. A closed
// connection only counts as a real disconnect when the user has not come back
// within the grace window, so page navigations do not flap presence state.
type PresenceService interface {
	// HandleConnect clears any pending disconnect marker and replays the
	// user's queued messages.
	HandleConnect(userID string)
	// HandleDisconnect records a marker when the user's last client closed.
	HandleDisconnect(userID string)
	// SweepExpired finalizes markers older than the grace window, records a
	// logout statement per affected user and returns their user ids.
	SweepExpired(ctx context.Context, grace time.Duration) ([]string, error)
}

type presenceServiceImpl struct {
	disconnectRepo repository.DisconnectRepository
	communication  CommunicationService
	userService    userservice.UserService
	lrs            lrs.API
	factory        *StatementFactory
}

func NewPresenceService(
	disconnectRepo repository.DisconnectRepository,
	communication CommunicationService,
	userService userservice.UserService,
	lrsAPI lrs.API,
	factory *StatementFactory,
) PresenceService {
	return &presenceServiceImpl{
		disconnectRepo: disconnectRepo,
		communication:  communication,
		userService:    userService,
		lrs:            lrsAPI,
		factory:        factory,
	}
}

func (s *presenceServiceImpl) HandleConnect(userID string) {
	ctx := context.Background()
	uid, err := uuid.Parse(userID)
	if err != nil {
		zlog.Warn("presence connect with invalid user id: " + userID)
		return
	}
	if err := s.disconnectRepo.DeleteByUserID(ctx, uid); err != nil {
		zlog.Error("clearing disconnect marker for " + userID + " failed: " + err.Error())
	}
	if err := s.communication.ResendUnacknowledged(ctx, userID); err != nil {
		zlog.Error("replaying queued messages for " + userID + " failed: " + err.Error())
	}
}

func (s *presenceServiceImpl) HandleDisconnect(userID string) {
	ctx := context.Background()
	uid, err := uuid.Parse(userID)
	if err != nil {
		zlog.Warn("presence disconnect with invalid user id: " + userID)
		return
	}
	disconnect := &entity.Disconnect{
		UserID:              uid,
		DisconnectTimestamp: time.Now(),
	}
	if err := s.disconnectRepo.Save(ctx, disconnect); err != nil {
		zlog.Error("saving disconnect marker for " + userID + " failed: " + err.Error())
	}
}

func (s *presenceServiceImpl) SweepExpired(ctx context.Context, grace time.Duration) ([]string, error) {
	expired, err := s.disconnectRepo.GetByTimestampBefore(ctx, time.Now().Add(-grace))
	if err != nil {
		return nil, err
	}
	if len(expired) == 0 {
		return nil, nil
	}
	if err := s.disconnectRepo.DeleteAllIn(ctx, expired); err != nil {
		return nil, err
	}
	userIDs := make([]string, 0, len(expired))
	for _, disconnect := range expired {
		userIDs = append(userIDs, disconnect.UserID.String())
	}
	s.recordLogouts(ctx, expired)
	return userIDs, nil
}

// recordLogouts stores one logout statement per swept user. Failures are
// logged, the markers are already gone at this point.
func (s *presenceServiceImpl) recordLogouts(ctx context.Context, expired []entity.Disconnect) {
	statements := make([]lrs.Statement, 0, len(expired))
	for _, disconnect := range expired {
		user, err := s.userService.GetUser(ctx, disconnect.UserID)
		if err != nil {
			zlog.Warn("logout statement skipped, user " + disconnect.UserID.String() + " not resolvable: " + err.Error())
			continue
		}
		if user.LastLoggedInLmsURL == "" {
			continue
		}
		statements = append(statements, s.factory.Generate(user.ActorAccountName, user.LastLoggedInLmsURL, "loggedout", user.LastLoggedInLmsURL))
	}
	if len(statements) == 0 {
		return
	}
	if err := s.lrs.StoreStatements(ctx, statements); err != nil {
		zlog.Warn("storing logout statements failed: " + err.Error())
	}
}
