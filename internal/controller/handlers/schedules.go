package handlers

import (
	"context"

	"github.com/Freeeeeet/horario_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/horario_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/horario_bot/internal/controller/callbacks/common/keyboard"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleGenerate запускает генерацию и показывает первый вариант
func (h *Handlers) HandleGenerate(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, ok := h.requireUser(ctx, b, update)
	if !ok {
		return
	}
	chatID := update.Message.Chat.ID

	h.sendMessage(ctx, b, chatID, "⏳ Generando horarios, esto puede tardar un momento...", nil)

	summary, err := h.scheduleService.Generate(ctx, user)
	if err != nil {
		h.logger.Warn("Generation interrupted", zap.Int64("user_id", user.ID), zap.Error(err))
		return
	}

	h.sendMessage(ctx, b, chatID, formatting.FormatSummary(summary), nil)
	if !summary.Success() {
		return
	}

	screen, err := common.BuildGeneratedScreen(ctx, h.scheduleService, user.ID, 0)
	if err != nil {
		h.replyError(ctx, b, chatID, err, "show_generated")
		return
	}

	if err := common.SendScreen(ctx, b, h.scheduleService, h.logger, chatID, screen); err != nil {
		h.logger.Error("Failed to send schedule", zap.Int64("user_id", user.ID), zap.Error(err))
	}
}

// HandleSaved показывает список сохранённых расписаний
func (h *Handlers) HandleSaved(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, ok := h.requireUser(ctx, b, update)
	if !ok {
		return
	}

	list, err := h.scheduleService.ListSaved(ctx, user.ID)
	if err != nil {
		h.replyError(ctx, b, update.Message.Chat.ID, err, "list_saved")
		return
	}

	var kb *models.InlineKeyboardMarkup
	if len(list) > 0 {
		kb = keyboard.SavedList(list)
	}
	h.sendMessage(ctx, b, update.Message.Chat.ID, formatting.FormatSavedList(list), kb)
}
