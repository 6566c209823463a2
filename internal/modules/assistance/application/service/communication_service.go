package service

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"time"

	"AssistHub/internal/clients/backbone"
	"AssistHub/internal/clients/lrs"
	"AssistHub/internal/modules/assistance/domain/entity"
	"AssistHub/internal/modules/assistance/domain/repository"
	userservice "AssistHub/internal/modules/user/application/service"
	userentity "AssistHub/internal/modules/user/domain/entity"
	"AssistHub/pkg/xerr"
	"AssistHub/pkg/zlog"

	"github.com/google/uuid"
)

// Pusher delivers a payload to a user's live clients. Satisfied by ws.Hub.
type Pusher interface {
	SendToUser(userID string, contextID string, body interface{}) bool
}

// CommunicationService relays assistance messages between the backbone and
// connected users. Outgoing messages are persisted before delivery and stay
// queued until the user acknowledges them, so delivery is at least once and
// survives reconnects.
type CommunicationService interface {
	// HandleFromUser processes one inbound websocket payload. Three shapes
	// are accepted: a login signal (just_logged_in parameter, true for a
	// full resynchronization and false for a replay of the pending queue),
	// an acknowledgment (empty parameters with a message id), and a
	// response to an assistance offer (non-empty parameters with an aoId).
	HandleFromUser(ctx context.Context, user *userentity.User, message entity.CommunicationObject) error
	// HandleBundle persists and pushes every object of an assistance bundle.
	HandleBundle(ctx context.Context, bundle *backbone.AssistanceBundle)
	// ResendUnacknowledged pushes the user's queued messages without
	// persisting anything new. Used after a reconnect.
	ResendUnacknowledged(ctx context.Context, userID string) error
	// RemoveExpired drops queued messages older than the retention window
	// and returns how many were removed.
	RemoveExpired(ctx context.Context, retention time.Duration) (int64, error)
}

type communicationServiceImpl struct {
	objectRepo  repository.CommunicationObjectRepository
	backbone    backbone.API
	backboneURL string
	lrs         lrs.API
	userService userservice.UserService
	factory     *StatementFactory
	pusher      Pusher
}

func NewCommunicationService(
	objectRepo repository.CommunicationObjectRepository,
	backboneAPI backbone.API,
	backboneURL string,
	lrsAPI lrs.API,
	userService userservice.UserService,
	factory *StatementFactory,
	pusher Pusher,
) CommunicationService {
	return &communicationServiceImpl{
		objectRepo:  objectRepo,
		backbone:    backboneAPI,
		backboneURL: backboneURL,
		lrs:         lrsAPI,
		userService: userService,
		factory:     factory,
		pusher:      pusher,
	}
}

func (s *communicationServiceImpl) HandleFromUser(ctx context.Context, user *userentity.User, message entity.CommunicationObject) error {
	if user == nil {
		return xerr.ErrUnauthorized
	}
	if loggedIn := message.Parameter(entity.ParameterKeyJustLoggedIn); loggedIn != nil {
		if parameterBool(loggedIn.Value) {
			return s.handleLogin(ctx, user, message)
		}
		// A reconnect, not a fresh login. The pending queue stays intact
		// and is only replayed.
		return s.ResendUnacknowledged(ctx, user.ID.String())
	}
	if len(message.Parameters) == 0 {
		if message.MessageID == uuid.Nil {
			return &xerr.CodeError{Code: xerr.BadRequest, Message: "message without parameters requires a message id"}
		}
		// Acknowledgment. Deleting an already deleted message is fine.
		return s.objectRepo.DeleteByMessageID(ctx, message.MessageID)
	}
	return s.handleResponse(ctx, user, message)
}

// handleLogin performs a full resynchronization: the user's history is
// fetched from the backbone, the pending queue is replaced by a single
// wrapper message carrying that history, and the login is recorded.
func (s *communicationServiceImpl) handleLogin(ctx context.Context, user *userentity.User, message entity.CommunicationObject) error {
	records, err := s.backbone.SearchAssistanceObjects(ctx, []backbone.SearchParameter{
		{Key: "userId", Value: user.ActorAccountName},
	})
	if err != nil {
		return err
	}
	history := records.AssistanceObjectRecords
	sort.SliceStable(history, func(i, j int) bool {
		return history[i].Timestamp.Before(history[j].Timestamp)
	})

	if err := s.objectRepo.DeleteByUserID(ctx, user.ID.String()); err != nil {
		return err
	}

	wrapper := entity.NewCommunicationObject(time.Now(), user.ID.String(), []entity.Parameter{
		{Key: entity.ParameterKeyPreviousObjects, Value: history},
	})
	if err := s.objectRepo.Save(ctx, &wrapper); err != nil {
		return err
	}
	s.push(wrapper)

	if lmsURL := message.Parameter(entity.ParameterKeyLmsURL); lmsURL != nil {
		if url, ok := lmsURL.Value.(string); ok && url != "" {
			if err := s.userService.UpdateLastLoggedInLmsURL(ctx, user.ID, url); err != nil {
				return err
			}
			s.recordLogin(ctx, user, url)
		}
	}
	return nil
}

func (s *communicationServiceImpl) recordLogin(ctx context.Context, user *userentity.User, lmsURL string) {
	statement := s.factory.Generate(user.ActorAccountName, lmsURL, "loggedin", lmsURL)
	if err := s.lrs.StoreStatements(ctx, []lrs.Statement{statement}); err != nil {
		zlog.Warn("storing login statement failed: " + err.Error())
	}
}

// handleResponse forwards a user's answer to an assistance offer. The
// backbone addresses updates by assistance process, so the offer's aoId is
// resolved to its aId first.
func (s *communicationServiceImpl) handleResponse(ctx context.Context, user *userentity.User, message entity.CommunicationObject) error {
	aID := message.AID
	if aID == "" {
		if message.AOID == "" {
			return &xerr.CodeError{Code: xerr.BadRequest, Message: "response requires an aId or aoId"}
		}
		records, err := s.backbone.SearchAssistanceObjects(ctx, []backbone.SearchParameter{
			{Key: "aoId", Value: message.AOID},
		})
		if err != nil {
			return err
		}
		if records.TotalNumber == 0 || len(records.AssistanceObjectRecords) == 0 {
			return xerr.NotFoundf("assistance object '%s' not found", message.AOID)
		}
		aID = records.AssistanceObjectRecords[0].AID
	}

	return s.backbone.UpdateAssistanceProcess(ctx, aID, []backbone.AssistanceResponse{{
		AOID:       message.AOID,
		UserID:     user.ActorAccountName,
		Parameters: toBackboneParameters(message.Parameters),
	}})
}

func (s *communicationServiceImpl) HandleBundle(ctx context.Context, bundle *backbone.AssistanceBundle) {
	if bundle == nil {
		return
	}
	statements := make([]lrs.Statement, 0)
	for _, assistance := range bundle.Assistance {
		for _, object := range assistance.AssistanceObjects {
			accountName := object.UserID
			if accountName == "" {
				accountName = assistance.UserID
			}
			if accountName == "" {
				zlog.Error("assistance object '" + object.AOID + "' without a user")
				continue
			}
			user, err := s.userService.GetUserByActorAccountName(ctx, accountName)
			if err != nil {
				var codeErr *xerr.CodeError
				if errors.As(err, &codeErr) && codeErr.Code == xerr.NotFound {
					// The delivery attempt is still recorded, just not
					// attributable to a known account.
					zlog.Warn("assistance object '" + object.AOID + "' addresses unknown user " + accountName)
					statements = append(statements, s.factory.Generate("anonymous", s.backboneURL, "got_assisted_by", s.backboneURL))
					continue
				}
				zlog.Error("resolving user for assistance object '" + object.AOID + "' failed: " + err.Error())
				continue
			}
			if err := s.deliver(ctx, assistance, object, user); err != nil {
				zlog.Error("delivering assistance object '" + object.AOID + "' failed: " + err.Error())
				continue
			}
			homePage := user.LastLoggedInLmsURL
			if homePage == "" {
				homePage = s.backboneURL
			}
			statements = append(statements, s.factory.Generate(user.ActorAccountName, homePage, "got_assisted_by", homePage))
		}
	}
	if len(statements) == 0 {
		return
	}
	if err := s.lrs.StoreStatements(ctx, statements); err != nil {
		zlog.Warn("storing assistance statements failed: " + err.Error())
	}
}

func (s *communicationServiceImpl) deliver(ctx context.Context, assistance backbone.Assistance, object backbone.AssistanceObject, user *userentity.User) error {
	timestamp := object.Timestamp
	if timestamp.IsZero() {
		timestamp = time.Now()
	}
	message := entity.CommunicationObject{
		MessageID:      uuid.New(),
		Timestamp:      timestamp,
		UserID:         user.ID.String(),
		AID:            assistance.AID,
		ContextID:      object.ContextID,
		AssistanceType: object.AssistanceType,
		AOID:           object.AOID,
		Parameters:     toEntityParameters(object.Parameters),
	}
	// Persist first: a push to a gone client must not lose the message.
	if err := s.objectRepo.Save(ctx, &message); err != nil {
		return err
	}
	s.push(message)
	return nil
}

func (s *communicationServiceImpl) ResendUnacknowledged(ctx context.Context, userID string) error {
	pending, err := s.objectRepo.GetByUserIDOrderByTimestamp(ctx, userID)
	if err != nil {
		return err
	}
	if len(pending) == 0 {
		return nil
	}
	wrapper := entity.NewCommunicationObject(time.Now(), userID, []entity.Parameter{
		{Key: entity.ParameterKeyUnacknowledged, Value: pending},
	})
	// The queued originals are the durable state; the wrapper itself is
	// transient and only pushed.
	s.push(wrapper)
	return nil
}

func (s *communicationServiceImpl) RemoveExpired(ctx context.Context, retention time.Duration) (int64, error) {
	return s.objectRepo.DeleteByTimestampBefore(ctx, time.Now().Add(-retention))
}

func (s *communicationServiceImpl) push(message entity.CommunicationObject) {
	if !s.pusher.SendToUser(message.UserID, message.ContextID, message) {
		zlog.Debug("no live client for user " + message.UserID + ", message stays queued")
	}
}

// parameterBool reads a parameter value that may arrive as a JSON boolean or
// its string form. Anything else counts as false.
func parameterBool(value interface{}) bool {
	switch v := value.(type) {
	case bool:
		return v
	case string:
		parsed, err := strconv.ParseBool(v)
		return err == nil && parsed
	}
	return false
}

func toEntityParameters(parameters []backbone.Parameter) []entity.Parameter {
	out := make([]entity.Parameter, 0, len(parameters))
	for _, p := range parameters {
		out = append(out, entity.Parameter{Key: p.Key, Value: p.Value})
	}
	return out
}

func toBackboneParameters(parameters []entity.Parameter) []backbone.Parameter {
	out := make([]backbone.Parameter, 0, len(parameters))
	for _, p := range parameters {
		out = append(out, backbone.Parameter{Key: p.Key, Value: p.Value})
	}
	return out
}
