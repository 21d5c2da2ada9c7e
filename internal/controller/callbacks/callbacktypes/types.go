package callbacktypes

import (
	"github.com/Freeeeeet/horario_bot/internal/service"
	"go.uber.org/zap"
)

// StateManager интерфейс для сброса диалогов пользователя
type StateManager interface {
	ClearState(telegramID int64)
}

// Handler содержит общие зависимости для всех callback handlers
type Handler struct {
	UserService     *service.UserService
	ScheduleService *service.ScheduleService
	StateManager    StateManager
	Logger          *zap.Logger
}
