package handlers

import (
	"github.com/Freeeeeet/horario_bot/internal/controller/state"
	"github.com/Freeeeeet/horario_bot/internal/service"
	"go.uber.org/zap"
)

// Handlers содержит все зависимости для обработки команд
type Handlers struct {
	userService     *service.UserService
	profileService  *service.ProfileService
	scheduleService *service.ScheduleService
	stateManager    *state.Manager
	logger          *zap.Logger
}

// NewHandlers создаёт новый обработчик команд
func NewHandlers(
	userService *service.UserService,
	profileService *service.ProfileService,
	scheduleService *service.ScheduleService,
	stateManager *state.Manager,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		userService:     userService,
		profileService:  profileService,
		scheduleService: scheduleService,
		stateManager:    stateManager,
		logger:          logger,
	}
}
