package service

import (
	"context"
	"testing"
	"time"

	"AssistHub/internal/modules/assistance/domain/entity"
	userservice "AssistHub/internal/modules/user/application/service"
	userentity "AssistHub/internal/modules/user/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPresenceFixture(t *testing.T) (PresenceService, *fakeDisconnectRepo, *fakeObjectRepo, *fakePusher, *fakeLRS, uuid.UUID) {
	t.Helper()
	userID := uuid.New()
	disconnectRepo := newFakeDisconnectRepo()
	objectRepo := &fakeObjectRepo{}
	pusher := newFakePusher()
	lrsAPI := &fakeLRS{}
	userSvc := userservice.NewUserService(newFakeUserRepo(userentity.User{
		ID:                 userID,
		ActorAccountName:   "student1",
		LastLoggedInLmsURL: "https://lms.example.org/course/1",
	}))
	factory := NewStatementFactory(time.Now)
	communication := NewCommunicationService(objectRepo, newFakeBackbone(), "http://backbone.example.org", lrsAPI, userSvc, factory, pusher)
	svc := NewPresenceService(disconnectRepo, communication, userSvc, lrsAPI, factory)
	return svc, disconnectRepo, objectRepo, pusher, lrsAPI, userID
}

func TestReconnectWithinGraceClearsMarkerAndReplays(t *testing.T) {
	svc, disconnectRepo, objectRepo, pusher, _, userID := newPresenceFixture(t)

	pending := entity.NewCommunicationObject(time.Now(), userID.String(), []entity.Parameter{
		{Key: "message", Value: "hello"},
	})
	require.NoError(t, objectRepo.Save(context.Background(), &pending))

	svc.HandleDisconnect(userID.String())
	require.Len(t, disconnectRepo.disconnects, 1)

	svc.HandleConnect(userID.String())
	assert.Empty(t, disconnectRepo.disconnects)

	// The queued message is replayed inside a wrapper.
	require.Len(t, pusher.pushed, 1)
	wrapper, ok := pusher.pushed[0].body.(entity.CommunicationObject)
	require.True(t, ok)
	assert.NotNil(t, wrapper.Parameter(entity.ParameterKeyUnacknowledged))
}

func TestSweepExpiredFinalizesOnlyOldMarkers(t *testing.T) {
	svc, disconnectRepo, _, _, _, userID := newPresenceFixture(t)
	recent := uuid.New()

	require.NoError(t, disconnectRepo.Save(context.Background(), &entity.Disconnect{
		UserID:              userID,
		DisconnectTimestamp: time.Now().Add(-time.Minute),
	}))
	require.NoError(t, disconnectRepo.Save(context.Background(), &entity.Disconnect{
		UserID:              recent,
		DisconnectTimestamp: time.Now(),
	}))

	expired, err := svc.SweepExpired(context.Background(), 10*time.Second)
	require.NoError(t, err)
	require.Len(t, expired, 1)
	assert.Equal(t, userID.String(), expired[0])

	// The recent marker survives for the next sweep.
	require.Len(t, disconnectRepo.disconnects, 1)
	_, ok := disconnectRepo.disconnects[recent]
	assert.True(t, ok)
}

func TestSweepExpiredRecordsLogoutStatements(t *testing.T) {
	svc, disconnectRepo, _, _, lrsAPI, userID := newPresenceFixture(t)

	require.NoError(t, disconnectRepo.Save(context.Background(), &entity.Disconnect{
		UserID:              userID,
		DisconnectTimestamp: time.Now().Add(-time.Minute),
	}))

	_, err := svc.SweepExpired(context.Background(), 10*time.Second)
	require.NoError(t, err)

	require.Len(t, lrsAPI.statements, 1)
	statement := lrsAPI.statements[0]
	assert.Equal(t, "student1", statement.Actor.Account.Name)
	assert.Equal(t, "https://lms.example.org/course/1", statement.Actor.Account.HomePage)
	assert.Contains(t, statement.Verb.ID, "loggedout")
}

func TestSweepExpiredEmpty(t *testing.T) {
	svc, _, _, _, lrsAPI, _ := newPresenceFixture(t)
	expired, err := svc.SweepExpired(context.Background(), 10*time.Second)
	require.NoError(t, err)
	assert.Empty(t, expired)
	assert.Empty(t, lrsAPI.statements)
}
