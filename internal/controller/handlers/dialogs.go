package handlers

import (
	"context"
	"strings"

	"github.com/Freeeeeet/horario_bot/internal/controller/state"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleSession обрабатывает /sesion [ID]; без аргумента ждёт сессию следующим сообщением
func (h *Handlers) HandleSession(ctx context.Context, b *bot.Bot, update *models.Update) {
	if _, ok := h.requireUser(ctx, b, update); !ok {
		return
	}

	args := commandArgs(update.Message.Text)
	if len(args) == 0 {
		h.stateManager.SetState(update.Message.From.ID, state.StateAwaitingSession)
		h.sendMessage(ctx, b, update.Message.Chat.ID,
			"🔑 Envía el identificador de tu sesión de SAES (la cookie ASP.NET_SessionId).\n\n/cancelar para cancelar.", nil)
		return
	}

	h.handleSessionInput(ctx, b, update, strings.Join(args, " "))
}

// handleSessionInput сохраняет сессию и удаляет сообщение с ней из чата
func (h *Handlers) handleSessionInput(ctx context.Context, b *bot.Bot, update *models.Update, sessionID string) {
	user, ok := h.requireUser(ctx, b, update)
	if !ok {
		return
	}

	if err := h.userService.SetSession(ctx, user, sessionID); err != nil {
		h.replyError(ctx, b, update.Message.Chat.ID, err, "set_session")
		return
	}

	h.stateManager.ClearState(update.Message.From.ID)

	_, err := b.DeleteMessage(ctx, &bot.DeleteMessageParams{
		ChatID:    update.Message.Chat.ID,
		MessageID: update.Message.ID,
	})
	if err != nil {
		h.logger.Debug("Failed to delete session message", zap.Error(err))
	}

	h.sendMessage(ctx, b, update.Message.Chat.ID, "✅ Sesión guardada. Ya puedes usar /generar.", nil)
}

func (h *Handlers) askSemesters(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.stateManager.SetState(update.Message.From.ID, state.StateAwaitingSemesters)
	h.sendMessage(ctx, b, update.Message.Chat.ID,
		"📚 Envía los semestres separados por espacios o comas.\nEjemplo: <code>3 4 5</code>\n\n/cancelar para cancelar.", nil)
}

// handleSemestersInput принимает список семестров в ответ на /semestres
func (h *Handlers) handleSemestersInput(ctx context.Context, b *bot.Bot, update *models.Update, text string) {
	user, ok := h.requireUser(ctx, b, update)
	if !ok {
		return
	}

	semesters := splitList(text)
	profile, err := h.profileService.SetSemesters(ctx, user.ID, semesters)
	if err != nil {
		// остаёмся в диалоге, пусть пользователь исправит
		h.replyError(ctx, b, update.Message.Chat.ID, err, "set_semesters")
		return
	}

	h.stateManager.ClearState(update.Message.From.ID)
	h.replyProfile(ctx, b, update, user, profile, nil, "set_semesters")
}

// splitList "3, 4 5" -> ["3", "4", "5"]
func splitList(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == ';' || r == ' ' || r == '\t' || r == '\n'
	})
}
