package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Freeeeeet/horario_bot/internal/model"
	"github.com/Freeeeeet/horario_bot/internal/repository/base"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// GeneratedScheduleRepository хранит результаты последней генерации пользователя
type GeneratedScheduleRepository struct {
	*base.Repository
	logger *zap.Logger
}

// NewGeneratedScheduleRepository создаёт новый репозиторий
func NewGeneratedScheduleRepository(pool *pgxpool.Pool, logger *zap.Logger) *GeneratedScheduleRepository {
	return &GeneratedScheduleRepository{
		Repository: base.NewRepository(pool),
		logger:     logger,
	}
}

// ReplaceBatch заменяет результаты пользователя новой партией.
// Предыдущая партия удаляется в той же транзакции.
func (r *GeneratedScheduleRepository) ReplaceBatch(ctx context.Context, userID int64, batchID uuid.UUID, schedules []model.Schedule) error {
	return r.InTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM generated_schedules WHERE user_id = $1`, userID); err != nil {
			return fmt.Errorf("delete previous batch: %w", err)
		}

		if len(schedules) == 0 {
			return nil
		}

		batch := &pgx.Batch{}
		for i, s := range schedules {
			data, err := json.Marshal(s)
			if err != nil {
				return fmt.Errorf("encode schedule %d: %w", i, err)
			}
			batch.Queue(
				`INSERT INTO generated_schedules (batch_id, user_id, position, schedule) VALUES ($1, $2, $3, $4)`,
				batchID, userID, i, data,
			)
		}

		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("insert batch: %w", err)
		}

		r.logger.Debug("Generated batch stored",
			zap.Int64("user_id", userID),
			zap.String("batch_id", batchID.String()),
			zap.Int("count", len(schedules)))
		return nil
	})
}

// Count возвращает количество вариантов в текущей партии пользователя
func (r *GeneratedScheduleRepository) Count(ctx context.Context, userID int64) (int, error) {
	var count int
	err := r.QueryRow(ctx, `SELECT COUNT(*) FROM generated_schedules WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count generated schedules: %w", err)
	}
	return count, nil
}

// GetByPosition возвращает вариант по номеру или nil
func (r *GeneratedScheduleRepository) GetByPosition(ctx context.Context, userID int64, position int) (*model.GeneratedSchedule, error) {
	query := `
		SELECT batch_id, user_id, position, schedule, created_at
		FROM generated_schedules
		WHERE user_id = $1 AND position = $2
	`

	gs := &model.GeneratedSchedule{}
	var data []byte
	err := r.QueryRow(ctx, query, userID, position).Scan(&gs.BatchID, &gs.UserID, &gs.Position, &data, &gs.CreatedAt)
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get generated schedule: %w", err)
	}

	if err := json.Unmarshal(data, &gs.Schedule); err != nil {
		return nil, fmt.Errorf("decode generated schedule: %w", err)
	}
	return gs, nil
}

// DeleteOlderThan удаляет партии, созданные раньше указанного момента
func (r *GeneratedScheduleRepository) DeleteOlderThan(ctx context.Context, before time.Time) (int64, error) {
	affected, err := r.ExecAffected(ctx, `DELETE FROM generated_schedules WHERE created_at < $1`, before)
	if err != nil {
		return 0, fmt.Errorf("delete old generated schedules: %w", err)
	}
	return affected, nil
}

// SavedScheduleRepository хранит сохранённые пользователем расписания
type SavedScheduleRepository struct {
	*base.Repository
}

// NewSavedScheduleRepository создаёт новый репозиторий
func NewSavedScheduleRepository(pool *pgxpool.Pool) *SavedScheduleRepository {
	return &SavedScheduleRepository{Repository: base.NewRepository(pool)}
}

// Create сохраняет расписание
func (r *SavedScheduleRepository) Create(ctx context.Context, saved *model.SavedSchedule) error {
	data, err := json.Marshal(saved.Schedule)
	if err != nil {
		return fmt.Errorf("encode saved schedule: %w", err)
	}

	query := `
		INSERT INTO saved_schedules (id, user_id, title, schedule)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`

	if err := r.QueryRow(ctx, query, saved.ID, saved.UserID, saved.Title, data).Scan(&saved.CreatedAt); err != nil {
		return fmt.Errorf("create saved schedule: %w", err)
	}
	return nil
}

// GetByID возвращает сохранённое расписание пользователя или nil
func (r *SavedScheduleRepository) GetByID(ctx context.Context, userID int64, id uuid.UUID) (*model.SavedSchedule, error) {
	query := `
		SELECT id, user_id, title, schedule, created_at
		FROM saved_schedules
		WHERE id = $1 AND user_id = $2
	`

	saved, err := scanSaved(r.QueryRow(ctx, query, id, userID))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get saved schedule: %w", err)
	}
	return saved, nil
}

// ListByUser возвращает сохранённые расписания в порядке сохранения
func (r *SavedScheduleRepository) ListByUser(ctx context.Context, userID int64) ([]*model.SavedSchedule, error) {
	query := `
		SELECT id, user_id, title, schedule, created_at
		FROM saved_schedules
		WHERE user_id = $1
		ORDER BY created_at
	`

	rows, err := r.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list saved schedules: %w", err)
	}
	defer rows.Close()

	var result []*model.SavedSchedule
	for rows.Next() {
		saved, err := scanSaved(rows)
		if err != nil {
			return nil, fmt.Errorf("scan saved schedule: %w", err)
		}
		result = append(result, saved)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate saved schedules: %w", err)
	}

	return result, nil
}

// Delete удаляет сохранённое расписание пользователя
func (r *SavedScheduleRepository) Delete(ctx context.Context, userID int64, id uuid.UUID) (bool, error) {
	affected, err := r.ExecAffected(ctx, `DELETE FROM saved_schedules WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return false, fmt.Errorf("delete saved schedule: %w", err)
	}
	return affected > 0, nil
}

func scanSaved(row pgx.Row) (*model.SavedSchedule, error) {
	saved := &model.SavedSchedule{}
	var data []byte
	if err := row.Scan(&saved.ID, &saved.UserID, &saved.Title, &data, &saved.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, &saved.Schedule); err != nil {
		return nil, fmt.Errorf("decode saved schedule: %w", err)
	}
	return saved, nil
}
