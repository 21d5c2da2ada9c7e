package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Freeeeeet/horario_bot/internal/model"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Значения профиля по умолчанию
const (
	DefaultStartTime     = "07:00"
	DefaultEndTime       = "21:00"
	DefaultLength        = 7
	DefaultCredits       = 100
	DefaultAvailableUses = 1
)

// ErrInvalidInput значение, введённое пользователем, не подходит
var ErrInvalidInput = errors.New("invalid input")

// ProfileStore хранилище профилей генерации
type ProfileStore interface {
	GetByUserID(ctx context.Context, userID int64) (*model.GenerationProfile, error)
	Upsert(ctx context.Context, p *model.GenerationProfile) error
}

// ProfileService редактирование параметров генерации
type ProfileService struct {
	profiles ProfileStore
	validate *validator.Validate
	logger   *zap.Logger
}

func NewProfileService(profiles ProfileStore, logger *zap.Logger) *ProfileService {
	return &ProfileService{
		profiles: profiles,
		validate: newValidator(),
		logger:   logger,
	}
}

// newValidator создаёт валидатор с правилом hhmm для времени
func newValidator() *validator.Validate {
	v := validator.New()
	err := v.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
		_, ok := parseHHMM(fl.Field().String())
		return ok
	})
	if err != nil {
		panic("failed to register hhmm validation: " + err.Error())
	}
	return v
}

// parseHHMM разбирает время HH:MM в минуты от полуночи
func parseHHMM(s string) (int, bool) {
	if len(s) != 5 || s[2] != ':' {
		return 0, false
	}
	h, err := strconv.Atoi(s[:2])
	if err != nil || h < 0 || h > 23 {
		return 0, false
	}
	m, err := strconv.Atoi(s[3:])
	if err != nil || m < 0 || m > 59 {
		return 0, false
	}
	return h*60 + m, true
}

// DefaultProfile профиль нового пользователя
func DefaultProfile(userID int64) *model.GenerationProfile {
	return &model.GenerationProfile{
		UserID:        userID,
		StartTime:     DefaultStartTime,
		EndTime:       DefaultEndTime,
		Length:        DefaultLength,
		Credits:       DefaultCredits,
		AvailableUses: DefaultAvailableUses,
	}
}

// NormalizeProfile приводит параметры к виду, который примет генератор.
// Длина не меньше 3, кредиты и количество мест не меньше 1,
// время обрезается до HH:MM.
func NormalizeProfile(p *model.GenerationProfile) {
	p.Career = strings.TrimSpace(p.Career)
	p.CareerPlan = strings.TrimSpace(p.CareerPlan)

	semesters := p.Semesters[:0]
	for _, s := range p.Semesters {
		if s = strings.TrimSpace(s); s != "" {
			semesters = append(semesters, s)
		}
	}
	p.Semesters = semesters

	if p.Length <= 2 {
		p.Length = 3
	}
	if p.Credits <= 0 {
		p.Credits = 1
	}
	if p.AvailableUses <= 0 {
		p.AvailableUses = 1
	}

	p.StartTime = clockOrDefault(p.StartTime, DefaultStartTime)
	p.EndTime = clockOrDefault(p.EndTime, DefaultEndTime)
}

func clockOrDefault(value, def string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return def
	}
	if len(value) > 5 {
		value = value[:5]
	}
	return value
}

// Get возвращает профиль пользователя или профиль по умолчанию
func (s *ProfileService) Get(ctx context.Context, userID int64) (*model.GenerationProfile, error) {
	return loadProfile(ctx, s.profiles, userID)
}

// SetCareer задаёт карьеру и план обучения
func (s *ProfileService) SetCareer(ctx context.Context, userID int64, career, plan string) (*model.GenerationProfile, error) {
	career = strings.TrimSpace(career)
	if career == "" {
		return nil, fmt.Errorf("%w: carrera vacía", ErrInvalidInput)
	}
	return s.update(ctx, userID, func(p *model.GenerationProfile) {
		p.Career = career
		p.CareerPlan = strings.TrimSpace(plan)
	})
}

// SetSemesters задаёт семестры, из которых берутся предметы
func (s *ProfileService) SetSemesters(ctx context.Context, userID int64, semesters []string) (*model.GenerationProfile, error) {
	if len(semesters) == 0 {
		return nil, fmt.Errorf("%w: indica al menos un semestre", ErrInvalidInput)
	}
	if err := s.validate.Var(semesters, "dive,numeric"); err != nil {
		return nil, fmt.Errorf("%w: los semestres deben ser números", ErrInvalidInput)
	}
	return s.update(ctx, userID, func(p *model.GenerationProfile) {
		p.Semesters = append([]string(nil), semesters...)
	})
}

// SetHours задаёт допустимый интервал занятий
func (s *ProfileService) SetHours(ctx context.Context, userID int64, start, end string) (*model.GenerationProfile, error) {
	from, okFrom := parseHHMM(start)
	to, okTo := parseHHMM(end)
	if !okFrom || !okTo {
		return nil, fmt.Errorf("%w: usa el formato HH:MM", ErrInvalidInput)
	}
	if from >= to {
		return nil, fmt.Errorf("%w: la hora de inicio debe ser menor que la de fin", ErrInvalidInput)
	}
	return s.update(ctx, userID, func(p *model.GenerationProfile) {
		p.StartTime = start
		p.EndTime = end
	})
}

// SetLength задаёт количество предметов в расписании
func (s *ProfileService) SetLength(ctx context.Context, userID int64, length int) (*model.GenerationProfile, error) {
	if err := s.validate.Var(length, "gt=2"); err != nil {
		return nil, fmt.Errorf("%w: el número de materias debe ser mayor a 2", ErrInvalidInput)
	}
	return s.update(ctx, userID, func(p *model.GenerationProfile) {
		p.Length = length
	})
}

// SetCredits задаёт целевое количество кредитов
func (s *ProfileService) SetCredits(ctx context.Context, userID int64, credits int) (*model.GenerationProfile, error) {
	if err := s.validate.Var(credits, "gt=0"); err != nil {
		return nil, fmt.Errorf("%w: los créditos deben ser mayores a 0", ErrInvalidInput)
	}
	return s.update(ctx, userID, func(p *model.GenerationProfile) {
		p.Credits = credits
	})
}

// SetAvailableUses задаёт, сколько раз генератор может использовать одну группу
func (s *ProfileService) SetAvailableUses(ctx context.Context, userID int64, uses int) (*model.GenerationProfile, error) {
	if err := s.validate.Var(uses, "gt=0"); err != nil {
		return nil, fmt.Errorf("%w: los usos deben ser mayores a 0", ErrInvalidInput)
	}
	return s.update(ctx, userID, func(p *model.GenerationProfile) {
		p.AvailableUses = uses
	})
}

// SetExtraSubjects заменяет список дополнительных предметов.
// Пустой список очищает его; повторы с точностью до регистра и диакритики отбрасываются.
func (s *ProfileService) SetExtraSubjects(ctx context.Context, userID int64, subjects []string) (*model.GenerationProfile, error) {
	var extras []string
	for _, subject := range subjects {
		if subject = strings.TrimSpace(subject); subject != "" {
			extras, _ = appendUnique(extras, subject)
		}
	}
	if err := s.validate.Var(extras, "dive,required,max=120"); err != nil {
		return nil, fmt.Errorf("%w: el nombre de la materia es demasiado largo", ErrInvalidInput)
	}
	return s.update(ctx, userID, func(p *model.GenerationProfile) {
		p.ExtraSubjects = extras
	})
}

func (s *ProfileService) update(ctx context.Context, userID int64, fn func(*model.GenerationProfile)) (*model.GenerationProfile, error) {
	p, err := updateProfile(ctx, s.profiles, userID, func(p *model.GenerationProfile) bool {
		fn(p)
		return true
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("Generation profile updated", zap.Int64("user_id", userID))
	return p, nil
}

func loadProfile(ctx context.Context, store ProfileStore, userID int64) (*model.GenerationProfile, error) {
	p, err := store.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	if p == nil {
		p = DefaultProfile(userID)
	}
	return p, nil
}

// updateProfile загружает профиль, применяет fn и сохраняет, если fn вернула true
func updateProfile(ctx context.Context, store ProfileStore, userID int64, fn func(*model.GenerationProfile) bool) (*model.GenerationProfile, error) {
	p, err := loadProfile(ctx, store, userID)
	if err != nil {
		return nil, err
	}

	if !fn(p) {
		return p, nil
	}

	NormalizeProfile(p)
	if err := store.Upsert(ctx, p); err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}
	return p, nil
}
