package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/Freeeeeet/horario_bot/internal/controller/state"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

const helpText = `📖 <b>Comandos disponibles</b>

<b>Perfil</b>
/perfil - ver tus parámetros
/carrera CÓDIGO [PLAN] - carrera y plan de estudios
/semestres 1 2 3 - semestres a considerar
/horas 07:00 15:00 - hora de entrada y salida
/materias 6 - materias por horario
/creditos 100 - número de horarios a generar
/usos 1 - veces que se puede usar un mismo grupo
/extras MATERIA; MATERIA - materias opcionales (/extras - para borrar)
/sesion ID - tu sesión de SAES

<b>Horarios</b>
/generar - generar horarios
/guardados - horarios guardados

/cancelar - cancelar la acción actual`

// HandleStart обрабатывает команду /start
func (h *Handlers) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}

	from := update.Message.From
	user, err := h.userService.RegisterUser(ctx, from.ID, from.Username, from.FirstName, from.LastName, from.LanguageCode)
	if err != nil {
		h.logger.Error("Failed to register user", zap.Int64("telegram_id", from.ID), zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, "❌ Ocurrió un error al registrarte. Intenta más tarde.")
		return
	}

	h.stateManager.ClearState(from.ID)

	text := fmt.Sprintf(
		"👋 ¡Hola, %s!\n\n"+
			"Armo horarios sin choques a partir de la oferta de SAES y los dibujo como una tabla semanal.\n\n"+
			"1. Configura tu carrera con /carrera y tus semestres con /semestres\n"+
			"2. Envía tu sesión de SAES con /sesion\n"+
			"3. Genera con /generar\n\n"+
			"Usa /help para ver todos los comandos.",
		user.FirstName,
	)
	h.sendMessage(ctx, b, update.Message.Chat.ID, text, nil)
}

// HandleHelp обрабатывает команду /help
func (h *Handlers) HandleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	h.sendMessage(ctx, b, update.Message.Chat.ID, helpText, nil)
}

// HandleCancel сбрасывает текущий диалог
func (h *Handlers) HandleCancel(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}

	if h.stateManager.GetState(update.Message.From.ID) == state.StateNone {
		h.sendMessage(ctx, b, update.Message.Chat.ID, "🤷 No hay ninguna acción en curso.", nil)
		return
	}

	h.stateManager.ClearState(update.Message.From.ID)
	h.sendMessage(ctx, b, update.Message.Chat.ID, "✅ Acción cancelada.", nil)
}

// HandleTextMessage обрабатывает текст вне команд в зависимости от состояния диалога
func (h *Handlers) HandleTextMessage(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}

	text := strings.TrimSpace(update.Message.Text)
	if text == "" || strings.HasPrefix(text, "/") {
		return
	}

	switch h.stateManager.GetState(update.Message.From.ID) {
	case state.StateAwaitingSession:
		h.handleSessionInput(ctx, b, update, text)
	case state.StateAwaitingSemesters:
		h.handleSemestersInput(ctx, b, update, text)
	default:
		h.sendMessage(ctx, b, update.Message.Chat.ID, "🤔 No entendí. Usa /help para ver los comandos.", nil)
	}
}
