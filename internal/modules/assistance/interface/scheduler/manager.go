package scheduler

import (
	"context"
	"fmt"
	"time"

	"AssistHub/internal/config"
	"AssistHub/internal/modules/assistance/application/service"
	"AssistHub/pkg/zlog"

	"github.com/robfig/cron/v3"
)

// Manager runs the periodic maintenance tasks: finalizing disconnects after
// the grace window, expiring stale queued messages, and re-syncing the
// assistance type catalog and known courses against the backbone.
type Manager struct {
	cron          *cron.Cron
	presence      service.PresenceService
	communication service.CommunicationService
	typeService   service.AssistanceTypeService
	courseService service.CourseService
	conf          config.SchedulerConfig
}

func NewManager(
	presence service.PresenceService,
	communication service.CommunicationService,
	typeService service.AssistanceTypeService,
	courseService service.CourseService,
	conf config.SchedulerConfig,
) *Manager {
	return &Manager{
		cron:          cron.New(cron.WithSeconds()),
		presence:      presence,
		communication: communication,
		typeService:   typeService,
		courseService: courseService,
		conf:          conf,
	}
}

func (m *Manager) Start() error {
	if err := m.add(fmt.Sprintf("@every %ds", m.conf.DisconnectSweepSeconds), "disconnect sweep", m.sweepDisconnects); err != nil {
		return err
	}
	if err := m.add(fmt.Sprintf("@every %dm", m.conf.MessageExpirySweepMinutes), "message expiry", m.removeExpiredMessages); err != nil {
		return err
	}
	if err := m.add(fmt.Sprintf("@every %dh", m.conf.CatalogSyncHours), "assistance type sync", m.syncAssistanceTypes); err != nil {
		return err
	}
	if err := m.add(fmt.Sprintf("@every %dh", m.conf.CourseSyncHours), "course sync", m.syncCourses); err != nil {
		return err
	}
	m.cron.Start()
	zlog.Info("scheduler started")
	return nil
}

func (m *Manager) Stop() {
	m.cron.Stop()
}

func (m *Manager) add(spec string, name string, task func(ctx context.Context)) error {
	_, err := m.cron.AddFunc(spec, func() {
		defer func() {
			if r := recover(); r != nil {
				zlog.Error(fmt.Sprintf("scheduled task %s panicked: %v", name, r))
			}
		}()
		task(context.Background())
	})
	return err
}

func (m *Manager) sweepDisconnects(ctx context.Context) {
	grace := time.Duration(m.conf.DisconnectGraceSeconds) * time.Second
	userIDs, err := m.presence.SweepExpired(ctx, grace)
	if err != nil {
		zlog.Error("disconnect sweep failed: " + err.Error())
		return
	}
	for _, userID := range userIDs {
		zlog.Info("user " + userID + " disconnected for good")
	}
}

func (m *Manager) removeExpiredMessages(ctx context.Context) {
	retention := time.Duration(m.conf.MessageRetentionMinutes) * time.Minute
	removed, err := m.communication.RemoveExpired(ctx, retention)
	if err != nil {
		zlog.Error("message expiry sweep failed: " + err.Error())
		return
	}
	if removed > 0 {
		zlog.Info(fmt.Sprintf("removed %d expired queued messages", removed))
	}
}

func (m *Manager) syncAssistanceTypes(ctx context.Context) {
	if err := m.typeService.SyncAssistanceTypes(ctx); err != nil {
		zlog.Error("assistance type sync failed: " + err.Error())
	}
}

func (m *Manager) syncCourses(ctx context.Context) {
	if err := m.courseService.SyncCourses(ctx); err != nil {
		zlog.Error("course sync failed: " + err.Error())
	}
}
