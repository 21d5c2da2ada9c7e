package model

import (
	"time"

	"github.com/google/uuid"
)

// GeneratedSchedule один вариант из последней генерации пользователя
type GeneratedSchedule struct {
	BatchID   uuid.UUID `json:"batch_id"`
	UserID    int64     `json:"user_id"`
	Position  int       `json:"position"` // порядок, в котором генератор вернул варианты
	Schedule  Schedule  `json:"schedule"`
	CreatedAt time.Time `json:"created_at"`
}

// SavedSchedule расписание, которое пользователь сохранил
type SavedSchedule struct {
	ID        uuid.UUID `json:"id"`
	UserID    int64     `json:"user_id"`
	Title     string    `json:"title"`
	Schedule  Schedule  `json:"schedule"`
	CreatedAt time.Time `json:"created_at"`
}
