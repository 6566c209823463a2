package service

import (
	"time"

	"AssistHub/internal/clients/lrs"

	"github.com/google/uuid"
)

const (
	actorName           = "-"
	actorObjectType     = "Agent"
	authorityMbox       = "mailto:hello@learninglocker.net"
	authorityName       = "New Client"
	authorityObjectType = "Agent"
	definitionName      = "ASSIST_HUB"
	definitionType      = "http://id.tincanapi.com/activitytype/lms"
	objectObjectType    = "Activity"
	verbPrefix          = "https://brindlewaye.com/xAPITerms/verbs/"
)

// StatementFactory builds the xAPI statements emitted towards the record
// store.
type StatementFactory struct {
	now func() time.Time
}

func NewStatementFactory(now func() time.Time) *StatementFactory {
	if now == nil {
		now = time.Now
	}
	return &StatementFactory{now: now}
}

func (f *StatementFactory) Generate(actorAccountName string, actorHomePage string, verbName string, objectID string) lrs.Statement {
	return lrs.Statement{
		ID: uuid.New().String(),
		Authority: lrs.Authority{
			ObjectType: authorityObjectType,
			Name:       authorityName,
			Mbox:       authorityMbox,
		},
		Actor: lrs.Actor{
			ObjectType: actorObjectType,
			Name:       actorName,
			Account: lrs.ActorAccount{
				Name:     actorAccountName,
				HomePage: actorHomePage,
			},
		},
		Verb: lrs.Verb{
			ID: verbPrefix + verbName + "/",
			Display: lrs.VerbDisplay{
				EnUS: verbName,
			},
		},
		Object: lrs.Object{
			ObjectType: objectObjectType,
			ID:         objectID,
			Definition: lrs.Definition{
				Type:        definitionType,
				Name:        lrs.DefinitionName{EnUS: definitionName},
				Description: lrs.DefinitionName{EnUS: definitionName},
			},
		},
		Timestamp: f.now().UTC().Format(time.RFC3339Nano),
	}
}
