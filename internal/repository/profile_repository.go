package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/horario_bot/internal/model"
	"github.com/Freeeeeet/horario_bot/internal/repository/base"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ProfileRepository хранит параметры генерации пользователей
type ProfileRepository struct {
	*base.Repository
}

// NewProfileRepository создаёт новый репозиторий
func NewProfileRepository(pool *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{Repository: base.NewRepository(pool)}
}

// GetByUserID возвращает профиль или nil, если пользователь его ещё не заполнял
func (r *ProfileRepository) GetByUserID(ctx context.Context, userID int64) (*model.GenerationProfile, error) {
	query := `
		SELECT user_id, career, career_plan, semesters, start_time, end_time, length, credits, available_uses,
		       excluded_teachers, excluded_subjects, required_subjects, extra_subjects, updated_at
		FROM generation_profiles
		WHERE user_id = $1
	`

	p := &model.GenerationProfile{}
	err := r.QueryRow(ctx, query, userID).Scan(
		&p.UserID,
		&p.Career,
		&p.CareerPlan,
		&p.Semesters,
		&p.StartTime,
		&p.EndTime,
		&p.Length,
		&p.Credits,
		&p.AvailableUses,
		&p.ExcludedTeachers,
		&p.ExcludedSubjects,
		&p.RequiredSubjects,
		&p.ExtraSubjects,
		&p.UpdatedAt,
	)
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get generation profile: %w", err)
	}

	return p, nil
}

// Upsert создаёт или полностью перезаписывает профиль
func (r *ProfileRepository) Upsert(ctx context.Context, p *model.GenerationProfile) error {
	query := `
		INSERT INTO generation_profiles (user_id, career, career_plan, semesters, start_time, end_time, length, credits,
		                                 available_uses, excluded_teachers, excluded_subjects, required_subjects, extra_subjects)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (user_id) DO UPDATE SET
			career = EXCLUDED.career,
			career_plan = EXCLUDED.career_plan,
			semesters = EXCLUDED.semesters,
			start_time = EXCLUDED.start_time,
			end_time = EXCLUDED.end_time,
			length = EXCLUDED.length,
			credits = EXCLUDED.credits,
			available_uses = EXCLUDED.available_uses,
			excluded_teachers = EXCLUDED.excluded_teachers,
			excluded_subjects = EXCLUDED.excluded_subjects,
			required_subjects = EXCLUDED.required_subjects,
			extra_subjects = EXCLUDED.extra_subjects,
			updated_at = NOW()
		RETURNING updated_at
	`

	err := r.QueryRow(
		ctx, query,
		p.UserID,
		p.Career,
		p.CareerPlan,
		nonNil(p.Semesters),
		p.StartTime,
		p.EndTime,
		p.Length,
		p.Credits,
		p.AvailableUses,
		nonNil(p.ExcludedTeachers),
		nonNil(p.ExcludedSubjects),
		nonNil(p.RequiredSubjects),
		nonNil(p.ExtraSubjects),
	).Scan(&p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert generation profile: %w", err)
	}

	return nil
}

// nonNil text[] NOT NULL не принимает NULL
func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
