package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/Freeeeeet/horario_bot/internal/backend"
	"github.com/Freeeeeet/horario_bot/internal/export"
	"github.com/Freeeeeet/horario_bot/internal/model"
	"github.com/Freeeeeet/horario_bot/internal/timetable"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/unicode/norm"
)

// ErrScheduleNotFound расписание с таким номером или id не найдено
var ErrScheduleNotFound = errors.New("schedule not found")

// renderParallelism сколько расписаний RenderMany рисует одновременно
const renderParallelism = 4

// Generator сервис генерации расписаний
type Generator interface {
	Download(ctx context.Context, req backend.DownloadRequest) error
	Generate(ctx context.Context, req backend.GenerateRequest) ([]model.Schedule, error)
}

// GeneratedStore хранилище результатов последней генерации
type GeneratedStore interface {
	ReplaceBatch(ctx context.Context, userID int64, batchID uuid.UUID, schedules []model.Schedule) error
	Count(ctx context.Context, userID int64) (int, error)
	GetByPosition(ctx context.Context, userID int64, position int) (*model.GeneratedSchedule, error)
	DeleteOlderThan(ctx context.Context, before time.Time) (int64, error)
}

// SavedStore хранилище сохранённых расписаний
type SavedStore interface {
	Create(ctx context.Context, saved *model.SavedSchedule) error
	GetByID(ctx context.Context, userID int64, id uuid.UUID) (*model.SavedSchedule, error)
	ListByUser(ctx context.Context, userID int64) ([]*model.SavedSchedule, error)
	Delete(ctx context.Context, userID int64, id uuid.UUID) (bool, error)
}

// RenderedSchedule таблица расписания и её картинка
type RenderedSchedule struct {
	Schedule model.Schedule
	Model    timetable.RenderModel
	PNG      []byte
}

// ScheduleService генерация, просмотр и сохранение расписаний
type ScheduleService struct {
	generator      Generator
	profiles       ProfileStore
	generated      GeneratedStore
	saved          SavedStore
	validate       *validator.Validate
	teacherBaseURL string
	buildOpts      []timetable.BuildOption
	logger         *zap.Logger
}

func NewScheduleService(
	generator Generator,
	profiles ProfileStore,
	generated GeneratedStore,
	saved SavedStore,
	teacherBaseURL string,
	logger *zap.Logger,
) *ScheduleService {
	if teacherBaseURL == "" {
		teacherBaseURL = timetable.DefaultTeacherBaseURL
	}
	return &ScheduleService{
		generator:      generator,
		profiles:       profiles,
		generated:      generated,
		saved:          saved,
		validate:       newValidator(),
		teacherBaseURL: teacherBaseURL,
		logger:         logger,
	}
}

// Generate выгружает данные карьеры, запрашивает варианты и заменяет ими
// предыдущую партию пользователя. Ошибки генератора не возвращаются,
// а объясняются в GenerationSummary.
func (s *ScheduleService) Generate(ctx context.Context, user *model.User) (GenerationSummary, error) {
	p, err := loadProfile(ctx, s.profiles, user.ID)
	if err != nil {
		return GenerationSummary{}, err
	}
	NormalizeProfile(p)

	if p.Career == "" || len(p.Semesters) == 0 {
		return missingDataSummary(), nil
	}
	if err := s.validate.Struct(p); err != nil {
		return invalidProfileSummary(invalidFields(err)), nil
	}

	// Прошлые варианты больше не соответствуют профилю
	if err := s.generated.ReplaceBatch(ctx, user.ID, uuid.New(), nil); err != nil {
		return GenerationSummary{}, fmt.Errorf("clear generated schedules: %w", err)
	}

	if !user.HasSession() {
		return errorSummary(kindNoSession), nil
	}

	schedules, err := s.requestSchedules(ctx, user.SAESSessionID, p)
	if err != nil {
		if ctx.Err() != nil {
			return GenerationSummary{}, ctx.Err()
		}
		s.logger.Warn("Schedule generation failed",
			zap.Int64("user_id", user.ID),
			zap.String("career", p.Career),
			zap.Error(err))
		return errorSummary(classify(err)), nil
	}

	batchID := uuid.New()
	if err := s.generated.ReplaceBatch(ctx, user.ID, batchID, schedules); err != nil {
		return GenerationSummary{}, fmt.Errorf("store generated schedules: %w", err)
	}

	s.logger.Info("Schedules generated",
		zap.Int64("user_id", user.ID),
		zap.String("batch_id", batchID.String()),
		zap.Int("count", len(schedules)))

	return BuildSummary(p, len(schedules)), nil
}

func (s *ScheduleService) requestSchedules(ctx context.Context, sessionID string, p *model.GenerationProfile) ([]model.Schedule, error) {
	periods := make([]int, 0, len(p.Semesters))
	for _, sem := range p.Semesters {
		if n, err := strconv.Atoi(sem); err == nil {
			periods = append(periods, n)
		}
	}

	err := s.generator.Download(ctx, backend.DownloadRequest{
		SessionID:  sessionID,
		Career:     p.Career,
		CareerPlan: p.CareerPlan,
		PlanPeriod: periods,
	})
	if err != nil {
		return nil, fmt.Errorf("download career data: %w", err)
	}

	schedules, err := s.generator.Generate(ctx, backend.GenerateRequest{
		Career:           p.Career,
		Levels:           p.Semesters,
		Semesters:        p.Semesters,
		StartTime:        p.StartTime,
		EndTime:          p.EndTime,
		Length:           p.Length,
		Credits:          p.Credits,
		AvailableUses:    p.AvailableUses,
		ExcludedTeachers: nonNil(p.ExcludedTeachers),
		ExcludedSubjects: nonNil(p.ExcludedSubjects),
		RequiredSubjects: nonNil(p.RequiredSubjects),
		ExtraSubjects:    nonNil(p.ExtraSubjects),
		Shifts:           []string{"M", "V"},
	})
	if err != nil {
		return nil, fmt.Errorf("generate schedules: %w", err)
	}
	return schedules, nil
}

type errorKind int

const (
	kindUnexpected errorKind = iota
	kindValidation
	kindSessionExpired
	kindNoSession
	kindUnavailable
)

func classify(err error) errorKind {
	switch {
	case errors.Is(err, backend.ErrValidation):
		return kindValidation
	case errors.Is(err, backend.ErrSessionExpired):
		return kindSessionExpired
	case errors.Is(err, backend.ErrUnavailable):
		return kindUnavailable
	default:
		return kindUnexpected
	}
}

func invalidFields(err error) []string {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return []string{err.Error()}
	}
	fields := make([]string, 0, len(ve))
	for _, fe := range ve {
		fields = append(fields, fe.Field())
	}
	return fields
}

// GeneratedCount количество вариантов в последней генерации
func (s *ScheduleService) GeneratedCount(ctx context.Context, userID int64) (int, error) {
	return s.generated.Count(ctx, userID)
}

// Generated возвращает вариант последней генерации по номеру
func (s *ScheduleService) Generated(ctx context.Context, userID int64, index int) (*model.GeneratedSchedule, error) {
	if index < 0 {
		return nil, ErrScheduleNotFound
	}
	gs, err := s.generated.GetByPosition(ctx, userID, index)
	if err != nil {
		return nil, err
	}
	if gs == nil {
		return nil, ErrScheduleNotFound
	}
	return gs, nil
}

// Save сохраняет вариант последней генерации
func (s *ScheduleService) Save(ctx context.Context, userID int64, index int) (*model.SavedSchedule, error) {
	gs, err := s.Generated(ctx, userID, index)
	if err != nil {
		return nil, err
	}

	saved := &model.SavedSchedule{
		ID:       uuid.New(),
		UserID:   userID,
		Title:    fmt.Sprintf("Horario %d · %.4f", index+1, gs.Schedule.Popularity),
		Schedule: gs.Schedule,
	}
	if err := s.saved.Create(ctx, saved); err != nil {
		return nil, err
	}

	s.logger.Info("Schedule saved",
		zap.Int64("user_id", userID),
		zap.String("saved_id", saved.ID.String()))

	return saved, nil
}

// ListSaved сохранённые расписания пользователя
func (s *ScheduleService) ListSaved(ctx context.Context, userID int64) ([]*model.SavedSchedule, error) {
	return s.saved.ListByUser(ctx, userID)
}

// GetSaved сохранённое расписание пользователя по id
func (s *ScheduleService) GetSaved(ctx context.Context, userID int64, id uuid.UUID) (*model.SavedSchedule, error) {
	saved, err := s.saved.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if saved == nil {
		return nil, ErrScheduleNotFound
	}
	return saved, nil
}

// DeleteSaved удаляет сохранённое расписание
func (s *ScheduleService) DeleteSaved(ctx context.Context, userID int64, id uuid.UUID) error {
	deleted, err := s.saved.Delete(ctx, userID, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrScheduleNotFound
	}

	s.logger.Info("Saved schedule deleted",
		zap.Int64("user_id", userID),
		zap.String("saved_id", id.String()))
	return nil
}

// Layout раскладывает расписание по сетке и строит таблицу
func (s *ScheduleService) Layout(schedule model.Schedule) timetable.RenderModel {
	layout := timetable.BuildGrid(schedule.Courses, s.buildOpts...)
	return timetable.Render(layout, timetable.WithTeacherBaseURL(s.teacherBaseURL))
}

// TeacherLink ссылка на страницу преподавателя
func (s *ScheduleService) TeacherLink(teacher string) string {
	return timetable.TeacherLink(s.teacherBaseURL, teacher)
}

// Render рисует расписание в PNG
func (s *ScheduleService) Render(schedule model.Schedule) (*RenderedSchedule, error) {
	m := s.Layout(schedule)
	img, err := export.PNG(m)
	if err != nil {
		return nil, fmt.Errorf("render schedule image: %w", err)
	}
	return &RenderedSchedule{Schedule: schedule, Model: m, PNG: img}, nil
}

// RenderMany рисует несколько расписаний параллельно, сохраняя порядок
func (s *ScheduleService) RenderMany(ctx context.Context, schedules []model.Schedule) ([]*RenderedSchedule, error) {
	result := make([]*RenderedSchedule, len(schedules))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(renderParallelism)

	for i := range schedules {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r, err := s.Render(schedules[i])
			if err != nil {
				return fmt.Errorf("schedule %d: %w", i, err)
			}
			result[i] = r
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}

// ExcludeTeacher исключает преподавателя из следующих генераций.
// Возвращает false, если он уже исключён.
func (s *ScheduleService) ExcludeTeacher(ctx context.Context, userID int64, teacher string) (bool, error) {
	return s.addToList(ctx, userID, teacher, func(p *model.GenerationProfile) *[]string { return &p.ExcludedTeachers })
}

// ExcludeSubject исключает предмет из следующих генераций
func (s *ScheduleService) ExcludeSubject(ctx context.Context, userID int64, subject string) (bool, error) {
	return s.addToList(ctx, userID, subject, func(p *model.GenerationProfile) *[]string { return &p.ExcludedSubjects })
}

// RequireSubject делает предмет обязательным
func (s *ScheduleService) RequireSubject(ctx context.Context, userID int64, subject string) (bool, error) {
	return s.addToList(ctx, userID, subject, func(p *model.GenerationProfile) *[]string { return &p.RequiredSubjects })
}

// ClearExclusions снимает все исключения и обязательные предметы
func (s *ScheduleService) ClearExclusions(ctx context.Context, userID int64) error {
	_, err := updateProfile(ctx, s.profiles, userID, func(p *model.GenerationProfile) bool {
		if !p.HasExclusions() {
			return false
		}
		p.ExcludedTeachers = nil
		p.ExcludedSubjects = nil
		p.RequiredSubjects = nil
		return true
	})
	return err
}

func (s *ScheduleService) addToList(ctx context.Context, userID int64, value string, list func(*model.GenerationProfile) *[]string) (bool, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return false, fmt.Errorf("%w: valor vacío", ErrInvalidInput)
	}

	added := false
	_, err := updateProfile(ctx, s.profiles, userID, func(p *model.GenerationProfile) bool {
		target := list(p)
		*target, added = appendUnique(*target, value)
		return added
	})
	if err != nil {
		return false, err
	}
	return added, nil
}

// PurgeExpired удаляет результаты генерации старше ttl
func (s *ScheduleService) PurgeExpired(ctx context.Context, ttl time.Duration) (int64, error) {
	return s.generated.DeleteOlderThan(ctx, time.Now().Add(-ttl))
}

// appendUnique добавляет значение, если его ещё нет с точностью до
// регистра и диакритики
func appendUnique(values []string, value string) ([]string, bool) {
	key := foldKey(value)
	for _, v := range values {
		if foldKey(v) == key {
			return values, false
		}
	}
	return append(values, value), true
}

// foldKey ключ сравнения имён: без диакритики, регистра и лишних пробелов
func foldKey(s string) string {
	var b strings.Builder
	for _, r := range norm.NFD.String(strings.TrimSpace(s)) {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
