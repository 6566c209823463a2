package service

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"

	"AssistHub/internal/clients/backbone"
	"AssistHub/internal/clients/lrs"
	userservice "AssistHub/internal/modules/user/application/service"
	"AssistHub/pkg/xerr"
	"AssistHub/pkg/zlog"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
)

const (
	courseActivityType    = "http://adlnet.gov/expapi/activities/course"
	learnerIDParameterKey = "learner_id"
	defaultInitiationLang = "de"
	initiationVerbName    = "got_assisted_by"
)

// StatementService forwards xAPI statements to the learning record store and
// the backbone, and triggers manually initiated assistance.
type StatementService interface {
	// HandleStatement records the statement and forwards it for processing
	// together with the assistance types allowed for the statement's course.
	// Statements without a resolvable or known course are forwarded with
	// the global type set instead.
	HandleStatement(ctx context.Context, statement json.RawMessage) error
	// InitiateAssistance asks the backbone to start an assistance process
	// and relays the resulting bundle.
	InitiateAssistance(ctx context.Context, assistanceType string, parameters []backbone.Parameter) error
}

type statementServiceImpl struct {
	backbone      backbone.API
	backboneURL   string
	lrs           lrs.API
	typeService   AssistanceTypeService
	courseService CourseService
	userService   userservice.UserService
	communication CommunicationService
	factory       *StatementFactory
}

func NewStatementService(
	backboneAPI backbone.API,
	backboneURL string,
	lrsAPI lrs.API,
	typeService AssistanceTypeService,
	courseService CourseService,
	userService userservice.UserService,
	communication CommunicationService,
	factory *StatementFactory,
) StatementService {
	return &statementServiceImpl{
		backbone:      backboneAPI,
		backboneURL:   backboneURL,
		lrs:           lrsAPI,
		typeService:   typeService,
		courseService: courseService,
		userService:   userService,
		communication: communication,
		factory:       factory,
	}
}

func (s *statementServiceImpl) HandleStatement(ctx context.Context, statement json.RawMessage) error {
	if err := s.lrs.StoreStatementsRaw(ctx, []json.RawMessage{statement}); err != nil {
		// The record store is an observer, not a gatekeeper.
		zlog.Warn("storing statement failed: " + err.Error())
	}

	supported, err := s.supportedTypes(ctx, statement)
	if err != nil {
		return err
	}
	return s.backbone.ProcessStatement(ctx, backbone.StatementProcessingRequest{
		Statement:                statement,
		SupportedAssistanceTypes: supported,
	})
}

// supportedTypes resolves the statement's course and returns the assistance
// type keys effective there. Falls back to the full catalog when the course
// cannot be determined or is unknown.
func (s *statementServiceImpl) supportedTypes(ctx context.Context, statement json.RawMessage) ([]backbone.AssistanceTypeInfo, error) {
	objectID := CourseObjectID(statement)
	if objectID == "" {
		return s.globalTypes(ctx)
	}
	encoded := base64.RawURLEncoding.EncodeToString([]byte(objectID))

	keys, err := s.courseService.EffectiveAssistanceTypeKeys(ctx, encoded)
	if err != nil {
		var codeErr *xerr.CodeError
		if errors.As(err, &codeErr) && codeErr.Code == xerr.NotFound {
			zlog.Info("statement references unknown course " + encoded)
			return s.globalTypes(ctx)
		}
		return nil, err
	}
	return toTypeInfos(keys), nil
}

func (s *statementServiceImpl) globalTypes(ctx context.Context) ([]backbone.AssistanceTypeInfo, error) {
	assistanceTypes, err := s.typeService.GetAssistanceTypes(ctx)
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(assistanceTypes))
	for _, t := range assistanceTypes {
		keys = append(keys, t.Key)
	}
	return toTypeInfos(keys), nil
}

func toTypeInfos(keys []string) []backbone.AssistanceTypeInfo {
	infos := make([]backbone.AssistanceTypeInfo, 0, len(keys))
	for _, key := range keys {
		infos = append(infos, backbone.AssistanceTypeInfo{Key: key})
	}
	return infos
}

// CourseObjectID extracts the raw course activity id from an xAPI statement.
// The statement's own object wins; otherwise the first parent and then the
// grouping activities of the context are checked for a course-typed activity.
func CourseObjectID(statement json.RawMessage) string {
	root := gjson.ParseBytes(statement)

	if root.Get("object.definition.type").String() == courseActivityType {
		return root.Get("object.id").String()
	}

	parent := root.Get("context.contextActivities.parent.0")
	if parent.Get("definition.type").String() == courseActivityType {
		return parent.Get("id").String()
	}

	objectID := ""
	root.Get("context.contextActivities.grouping").ForEach(func(_, element gjson.Result) bool {
		if element.Get("definition.type").String() == courseActivityType {
			objectID = element.Get("id").String()
			return false
		}
		return true
	})
	return objectID
}

func (s *statementServiceImpl) InitiateAssistance(ctx context.Context, assistanceType string, parameters []backbone.Parameter) error {
	request := backbone.AssistanceInitiationRequest{
		Type:       assistanceType,
		Language:   defaultInitiationLang,
		Parameters: parameters,
	}

	actorAccountName := "anonymous"
	for _, parameter := range parameters {
		if parameter.Key != learnerIDParameterKey {
			continue
		}
		learnerID, ok := parameter.Value.(string)
		if !ok {
			return &xerr.CodeError{Code: xerr.BadRequest, Message: "learner_id must be a string"}
		}
		userID, err := uuid.Parse(learnerID)
		if err != nil {
			return &xerr.CodeError{Code: xerr.BadRequest, Message: "learner_id must be a uuid"}
		}
		user, err := s.userService.GetUser(ctx, userID)
		if err != nil {
			return err
		}
		request.Language = string(user.Language)
		actorAccountName = user.ActorAccountName
		break
	}

	bundle, err := s.backbone.InitiateAssistance(ctx, request)
	if err != nil {
		return err
	}
	s.communication.HandleBundle(ctx, bundle)

	statement := s.factory.Generate(actorAccountName, s.backboneURL, initiationVerbName, s.backboneURL)
	if err := s.lrs.StoreStatements(ctx, []lrs.Statement{statement}); err != nil {
		zlog.Warn("storing initiation statement failed: " + err.Error())
	}
	return nil
}
