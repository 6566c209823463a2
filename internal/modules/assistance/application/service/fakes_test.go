package service

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"AssistHub/internal/clients/backbone"
	"AssistHub/internal/clients/lrs"
	"AssistHub/internal/modules/assistance/domain/entity"
	userentity "AssistHub/internal/modules/user/domain/entity"

	"github.com/google/uuid"
)

type fakeUserRepo struct {
	users map[uuid.UUID]userentity.User
}

func newFakeUserRepo(users ...userentity.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[uuid.UUID]userentity.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) GetAll(ctx context.Context) ([]userentity.User, error) {
	out := make([]userentity.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*userentity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *fakeUserRepo) GetByActorAccountName(ctx context.Context, actorAccountName string) (*userentity.User, error) {
	for _, u := range r.users {
		if u.ActorAccountName == actorAccountName {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]userentity.User, error) {
	out := make([]userentity.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) Save(ctx context.Context, user *userentity.User) error {
	r.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) DeleteByActorAccountName(ctx context.Context, actorAccountName string) error {
	for id, u := range r.users {
		if u.ActorAccountName == actorAccountName {
			delete(r.users, id)
		}
	}
	return nil
}

type fakeTypeRepo struct {
	types map[string]entity.AssistanceType
}

func newFakeTypeRepo() *fakeTypeRepo {
	return &fakeTypeRepo{types: make(map[string]entity.AssistanceType)}
}

func (r *fakeTypeRepo) GetAll(ctx context.Context) ([]entity.AssistanceType, error) {
	out := make([]entity.AssistanceType, 0, len(r.types))
	for _, t := range r.types {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

func (r *fakeTypeRepo) GetByKey(ctx context.Context, key string) (*entity.AssistanceType, error) {
	t, ok := r.types[key]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

func (r *fakeTypeRepo) Save(ctx context.Context, t *entity.AssistanceType) error {
	r.types[t.Key] = *t
	return nil
}

func (r *fakeTypeRepo) DeleteByKey(ctx context.Context, key string) error {
	delete(r.types, key)
	return nil
}

func (r *fakeTypeRepo) DeleteByKeysNotIn(ctx context.Context, keys []string) error {
	keep := make(map[string]struct{}, len(keys))
	for _, key := range keys {
		keep[key] = struct{}{}
	}
	for key := range r.types {
		if _, ok := keep[key]; !ok {
			delete(r.types, key)
		}
	}
	return nil
}

func (r *fakeTypeRepo) ReplaceAll(ctx context.Context, types []entity.AssistanceType) error {
	r.types = make(map[string]entity.AssistanceType, len(types))
	for _, t := range types {
		r.types[t.Key] = t
	}
	return nil
}

type fakeCourseRepo struct {
	courses map[string]entity.Course
}

func newFakeCourseRepo() *fakeCourseRepo {
	return &fakeCourseRepo{courses: make(map[string]entity.Course)}
}

func (r *fakeCourseRepo) GetAll(ctx context.Context) ([]entity.Course, error) {
	out := make([]entity.Course, 0, len(r.courses))
	for _, c := range r.courses {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ObjectID < out[j].ObjectID })
	return out, nil
}

func (r *fakeCourseRepo) GetByObjectID(ctx context.Context, objectID string) (*entity.Course, error) {
	c, ok := r.courses[objectID]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *fakeCourseRepo) Save(ctx context.Context, course *entity.Course) error {
	r.courses[course.ObjectID] = *course
	return nil
}

func (r *fakeCourseRepo) Delete(ctx context.Context, objectID string) error {
	delete(r.courses, objectID)
	return nil
}

func (r *fakeCourseRepo) DeleteByObjectIDNotIn(ctx context.Context, objectIDs []string) error {
	keep := make(map[string]struct{}, len(objectIDs))
	for _, id := range objectIDs {
		keep[id] = struct{}{}
	}
	for id := range r.courses {
		if _, ok := keep[id]; !ok {
			delete(r.courses, id)
		}
	}
	return nil
}

type fakeFeatureRepo struct {
	features map[string]struct{}
}

func newFakeFeatureRepo(keys ...string) *fakeFeatureRepo {
	r := &fakeFeatureRepo{features: make(map[string]struct{})}
	for _, key := range keys {
		r.features[key] = struct{}{}
	}
	return r
}

func (r *fakeFeatureRepo) GetAll(ctx context.Context) ([]entity.Feature, error) {
	keys := make([]string, 0, len(r.features))
	for key := range r.features {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	out := make([]entity.Feature, 0, len(keys))
	for _, key := range keys {
		out = append(out, entity.Feature{Key: key})
	}
	return out, nil
}

func (r *fakeFeatureRepo) Exists(ctx context.Context, key string) (bool, error) {
	_, ok := r.features[key]
	return ok, nil
}

func (r *fakeFeatureRepo) Save(ctx context.Context, feature *entity.Feature) error {
	r.features[feature.Key] = struct{}{}
	return nil
}

func (r *fakeFeatureRepo) Delete(ctx context.Context, key string) error {
	delete(r.features, key)
	return nil
}

type fakeObjectRepo struct {
	objects []entity.CommunicationObject
}

func (r *fakeObjectRepo) Save(ctx context.Context, object *entity.CommunicationObject) error {
	r.objects = append(r.objects, *object)
	return nil
}

func (r *fakeObjectRepo) GetByUserIDOrderByTimestamp(ctx context.Context, userID string) ([]entity.CommunicationObject, error) {
	out := make([]entity.CommunicationObject, 0)
	for _, o := range r.objects {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out, nil
}

func (r *fakeObjectRepo) DeleteByMessageID(ctx context.Context, messageID uuid.UUID) error {
	kept := r.objects[:0]
	for _, o := range r.objects {
		if o.MessageID != messageID {
			kept = append(kept, o)
		}
	}
	r.objects = kept
	return nil
}

func (r *fakeObjectRepo) DeleteByUserID(ctx context.Context, userID string) error {
	kept := r.objects[:0]
	for _, o := range r.objects {
		if o.UserID != userID {
			kept = append(kept, o)
		}
	}
	r.objects = kept
	return nil
}

func (r *fakeObjectRepo) DeleteByTimestampBefore(ctx context.Context, before time.Time) (int64, error) {
	kept := r.objects[:0]
	var removed int64
	for _, o := range r.objects {
		if o.Timestamp.Before(before) {
			removed++
			continue
		}
		kept = append(kept, o)
	}
	r.objects = kept
	return removed, nil
}

func (r *fakeObjectRepo) DeleteAll(ctx context.Context) error {
	r.objects = nil
	return nil
}

type fakeDisconnectRepo struct {
	disconnects map[uuid.UUID]entity.Disconnect
}

func newFakeDisconnectRepo() *fakeDisconnectRepo {
	return &fakeDisconnectRepo{disconnects: make(map[uuid.UUID]entity.Disconnect)}
}

func (r *fakeDisconnectRepo) Save(ctx context.Context, disconnect *entity.Disconnect) error {
	r.disconnects[disconnect.UserID] = *disconnect
	return nil
}

func (r *fakeDisconnectRepo) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	delete(r.disconnects, userID)
	return nil
}

func (r *fakeDisconnectRepo) GetByTimestampBefore(ctx context.Context, before time.Time) ([]entity.Disconnect, error) {
	out := make([]entity.Disconnect, 0)
	for _, d := range r.disconnects {
		if d.DisconnectTimestamp.Before(before) {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *fakeDisconnectRepo) DeleteAllIn(ctx context.Context, disconnects []entity.Disconnect) error {
	for _, d := range disconnects {
		delete(r.disconnects, d.UserID)
	}
	return nil
}

// fakeBackbone answers from canned data and records what was sent to it.
type fakeBackbone struct {
	catalog     []string
	lcos        map[string]backbone.LearningContentObjectList
	history     []backbone.AssistanceObjectRecord
	initiated   *backbone.AssistanceBundle
	initiations []backbone.AssistanceInitiationRequest
	processed   []backbone.StatementProcessingRequest
	updates     map[string][]backbone.AssistanceResponse
	catalogErr  error

	invalidations int
}

func newFakeBackbone(catalogKeys ...string) *fakeBackbone {
	return &fakeBackbone{
		catalog: catalogKeys,
		lcos:    make(map[string]backbone.LearningContentObjectList),
		updates: make(map[string][]backbone.AssistanceResponse),
	}
}

func (b *fakeBackbone) knowCourse(objectID string) {
	b.lcos[objectID] = backbone.LearningContentObjectList{
		TotalNumber: 1,
		Lcos:        []backbone.LearningContentObject{{ObjectID: objectID, LcoType: "COURSE"}},
	}
}

func (b *fakeBackbone) Invalidate(ctx context.Context) {
	b.invalidations++
}

func (b *fakeBackbone) GetSupportedAssistanceTypes(ctx context.Context) (*backbone.AssistanceTypeList, error) {
	if b.catalogErr != nil {
		return nil, b.catalogErr
	}
	types := make([]backbone.AssistanceTypeInfo, 0, len(b.catalog))
	for _, key := range b.catalog {
		types = append(types, backbone.AssistanceTypeInfo{Key: key})
	}
	return &backbone.AssistanceTypeList{ProvidedNumber: len(types), Types: types}, nil
}

func (b *fakeBackbone) ProcessStatement(ctx context.Context, request backbone.StatementProcessingRequest) error {
	b.processed = append(b.processed, request)
	return nil
}

func (b *fakeBackbone) InitiateAssistance(ctx context.Context, request backbone.AssistanceInitiationRequest) (*backbone.AssistanceBundle, error) {
	b.initiations = append(b.initiations, request)
	if b.initiated != nil {
		return b.initiated, nil
	}
	return &backbone.AssistanceBundle{}, nil
}

func (b *fakeBackbone) UpdateAssistanceProcess(ctx context.Context, aID string, responses []backbone.AssistanceResponse) error {
	b.updates[aID] = append(b.updates[aID], responses...)
	return nil
}

func (b *fakeBackbone) SearchAssistanceObjects(ctx context.Context, parameters []backbone.SearchParameter) (*backbone.AssistanceObjectList, error) {
	matched := make([]backbone.AssistanceObjectRecord, 0)
	for _, record := range b.history {
		ok := true
		for _, p := range parameters {
			switch p.Key {
			case "userId":
				ok = ok && record.UserID == p.Value
			case "aoId":
				ok = ok && record.AOID == p.Value
			}
		}
		if ok {
			matched = append(matched, record)
		}
	}
	return &backbone.AssistanceObjectList{TotalNumber: len(matched), AssistanceObjectRecords: matched}, nil
}

func (b *fakeBackbone) SearchLearningContentObjects(ctx context.Context, parameters []backbone.SearchParameter) (*backbone.LearningContentObjectList, error) {
	for _, p := range parameters {
		if p.Key == "objectId" {
			list := b.lcos[p.Value]
			return &list, nil
		}
	}
	return &backbone.LearningContentObjectList{}, nil
}

type fakeLRS struct {
	statements []lrs.Statement
	raw        []json.RawMessage
}

func (l *fakeLRS) StoreStatements(ctx context.Context, statements []lrs.Statement) error {
	l.statements = append(l.statements, statements...)
	return nil
}

func (l *fakeLRS) StoreStatementsRaw(ctx context.Context, statements []json.RawMessage) error {
	l.raw = append(l.raw, statements...)
	return nil
}

type pushedMessage struct {
	userID    string
	contextID string
	body      interface{}
}

type fakePusher struct {
	pushed    []pushedMessage
	delivered bool
}

func newFakePusher() *fakePusher {
	return &fakePusher{delivered: true}
}

func (p *fakePusher) SendToUser(userID string, contextID string, body interface{}) bool {
	p.pushed = append(p.pushed, pushedMessage{userID: userID, contextID: contextID, body: body})
	return p.delivered
}
