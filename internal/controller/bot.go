package controller

import (
	"context"

	"github.com/Freeeeeet/horario_bot/internal/controller/callbacks"
	"github.com/Freeeeeet/horario_bot/internal/controller/handlers"
	"github.com/Freeeeeet/horario_bot/internal/controller/state"
	"github.com/Freeeeeet/horario_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

type BotController struct {
	bot             *bot.Bot
	handlers        *handlers.Handlers
	callbackHandler *callbacks.Handler
	logger          *zap.Logger
}

func NewBotController(
	botInstance *bot.Bot,
	userService *service.UserService,
	profileService *service.ProfileService,
	scheduleService *service.ScheduleService,
	logger *zap.Logger,
) *BotController {
	// Создаём менеджер состояний
	stateManager := state.NewManager()

	// Создаём обработчики команд
	cmdHandlers := handlers.NewHandlers(
		userService,
		profileService,
		scheduleService,
		stateManager,
		logger,
	)

	// Создаём callback handler с зависимостями
	callbackHandler := callbacks.NewHandler(
		userService,
		scheduleService,
		stateManager,
		logger,
	)

	return &BotController{
		bot:             botInstance,
		handlers:        cmdHandlers,
		callbackHandler: callbackHandler,
		logger:          logger,
	}
}

// RegisterHandlers регистрирует все обработчики команд
func (c *BotController) RegisterHandlers(ctx context.Context) error {
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypeExact, c.handlers.HandleStart)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/help", bot.MatchTypeExact, c.handlers.HandleHelp)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/cancelar", bot.MatchTypeExact, c.handlers.HandleCancel)

	// Профиль генерации, команды с аргументами
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/perfil", bot.MatchTypeExact, c.handlers.HandleProfile)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/carrera", bot.MatchTypePrefix, c.handlers.HandleCareer)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/semestres", bot.MatchTypePrefix, c.handlers.HandleSemesters)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/horas", bot.MatchTypePrefix, c.handlers.HandleHours)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/materias", bot.MatchTypePrefix, c.handlers.HandleLength)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/creditos", bot.MatchTypePrefix, c.handlers.HandleCredits)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/usos", bot.MatchTypePrefix, c.handlers.HandleAvailableUses)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/extras", bot.MatchTypePrefix, c.handlers.HandleExtras)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/sesion", bot.MatchTypePrefix, c.handlers.HandleSession)

	// Расписания
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/generar", bot.MatchTypeExact, c.handlers.HandleGenerate)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/guardados", bot.MatchTypeExact, c.handlers.HandleSaved)

	// Обработчик текстовых сообщений (для диалогов с состояниями)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "", bot.MatchTypePrefix, c.handlers.HandleTextMessage)

	// Обработчик нажатий на inline кнопки
	c.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "", bot.MatchTypePrefix, c.callbackHandler.HandleCallbackQuery)

	// Устанавливаем меню команд
	return c.setCommands(ctx)
}

// setCommands устанавливает список команд в меню бота
func (c *BotController) setCommands(ctx context.Context) error {
	commands := []models.BotCommand{
		{Command: "start", Description: "🚀 Comenzar"},
		{Command: "help", Description: "❓ Ayuda"},
		{Command: "perfil", Description: "⚙️ Ver mi perfil"},
		{Command: "carrera", Description: "🎓 Carrera y plan"},
		{Command: "semestres", Description: "📚 Semestres"},
		{Command: "horas", Description: "🕐 Hora de entrada y salida"},
		{Command: "materias", Description: "🔢 Materias por horario"},
		{Command: "creditos", Description: "🏅 Horarios a generar"},
		{Command: "usos", Description: "♻️ Usos por grupo"},
		{Command: "extras", Description: "➕ Materias extra"},
		{Command: "sesion", Description: "🔑 Sesión de SAES"},
		{Command: "generar", Description: "🗓 Generar horarios"},
		{Command: "guardados", Description: "💾 Horarios guardados"},
		{Command: "cancelar", Description: "✖️ Cancelar acción"},
	}

	_, err := c.bot.SetMyCommands(ctx, &bot.SetMyCommandsParams{
		Commands: commands,
	})

	if err != nil {
		c.logger.Error("Failed to set bot commands", zap.Error(err))
		return err
	}

	c.logger.Info("✅ Bot commands menu set")
	return nil
}

// Start запускает бота
func (c *BotController) Start(ctx context.Context) error {
	c.logger.Info("Starting bot...")
	c.bot.Start(ctx)
	return nil
}
