package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Freeeeeet/horario_bot/internal/backend"
	"github.com/Freeeeeet/horario_bot/internal/model"
	"github.com/google/uuid"
)

type fakeProfiles struct {
	mu       sync.Mutex
	profiles map[int64]*model.GenerationProfile
	upserts  int
}

func newFakeProfiles() *fakeProfiles {
	return &fakeProfiles{profiles: make(map[int64]*model.GenerationProfile)}
}

func (f *fakeProfiles) GetByUserID(_ context.Context, userID int64) (*model.GenerationProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.profiles[userID]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProfiles) Upsert(_ context.Context, p *model.GenerationProfile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *p
	f.profiles[p.UserID] = &cp
	f.upserts++
	return nil
}

type fakeGenerator struct {
	schedules   []model.Schedule
	downloadErr error
	generateErr error

	downloads []backend.DownloadRequest
	generates []backend.GenerateRequest
}

func (f *fakeGenerator) Download(_ context.Context, req backend.DownloadRequest) error {
	f.downloads = append(f.downloads, req)
	return f.downloadErr
}

func (f *fakeGenerator) Generate(_ context.Context, req backend.GenerateRequest) ([]model.Schedule, error) {
	f.generates = append(f.generates, req)
	if f.generateErr != nil {
		return nil, f.generateErr
	}
	return f.schedules, nil
}

type fakeGenerated struct {
	batches    map[int64][]model.GeneratedSchedule
	replaces   int
	purgedFrom time.Time
}

func newFakeGenerated() *fakeGenerated {
	return &fakeGenerated{batches: make(map[int64][]model.GeneratedSchedule)}
}

func (f *fakeGenerated) ReplaceBatch(_ context.Context, userID int64, batchID uuid.UUID, schedules []model.Schedule) error {
	f.replaces++
	batch := make([]model.GeneratedSchedule, 0, len(schedules))
	for i, s := range schedules {
		batch = append(batch, model.GeneratedSchedule{BatchID: batchID, UserID: userID, Position: i, Schedule: s})
	}
	f.batches[userID] = batch
	return nil
}

func (f *fakeGenerated) Count(_ context.Context, userID int64) (int, error) {
	return len(f.batches[userID]), nil
}

func (f *fakeGenerated) GetByPosition(_ context.Context, userID int64, position int) (*model.GeneratedSchedule, error) {
	batch := f.batches[userID]
	if position < 0 || position >= len(batch) {
		return nil, nil
	}
	gs := batch[position]
	return &gs, nil
}

func (f *fakeGenerated) DeleteOlderThan(_ context.Context, before time.Time) (int64, error) {
	f.purgedFrom = before
	return 3, nil
}

type fakeSaved struct {
	items map[uuid.UUID]*model.SavedSchedule
	seq   int
}

func newFakeSaved() *fakeSaved {
	return &fakeSaved{items: make(map[uuid.UUID]*model.SavedSchedule)}
}

func (f *fakeSaved) Create(_ context.Context, saved *model.SavedSchedule) error {
	f.seq++
	saved.CreatedAt = time.Unix(int64(f.seq), 0)
	cp := *saved
	f.items[saved.ID] = &cp
	return nil
}

func (f *fakeSaved) GetByID(_ context.Context, userID int64, id uuid.UUID) (*model.SavedSchedule, error) {
	s, ok := f.items[id]
	if !ok || s.UserID != userID {
		return nil, nil
	}
	return s, nil
}

func (f *fakeSaved) ListByUser(_ context.Context, userID int64) ([]*model.SavedSchedule, error) {
	var result []*model.SavedSchedule
	for _, s := range f.items {
		if s.UserID == userID {
			result = append(result, s)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.Before(result[j].CreatedAt) })
	return result, nil
}

func (f *fakeSaved) Delete(_ context.Context, userID int64, id uuid.UUID) (bool, error) {
	s, ok := f.items[id]
	if !ok || s.UserID != userID {
		return false, nil
	}
	delete(f.items, id)
	return true, nil
}

type fakeUsers struct {
	byTelegram map[int64]*model.User
	nextID     int64
	updates    int
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byTelegram: make(map[int64]*model.User)}
}

func (f *fakeUsers) Create(_ context.Context, user *model.User) error {
	f.nextID++
	user.ID = f.nextID
	cp := *user
	f.byTelegram[user.TelegramID] = &cp
	return nil
}

func (f *fakeUsers) GetByTelegramID(_ context.Context, telegramID int64) (*model.User, error) {
	u, ok := f.byTelegram[telegramID]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) Update(_ context.Context, user *model.User) error {
	f.updates++
	cp := *user
	f.byTelegram[user.TelegramID] = &cp
	return nil
}

func (f *fakeUsers) UpdateSession(_ context.Context, userID int64, sessionID string) error {
	for _, u := range f.byTelegram {
		if u.ID == userID {
			u.SAESSessionID = sessionID
			return nil
		}
	}
	return nil
}
