package callbacks

import (
	"context"
	"strings"

	"github.com/Freeeeeet/horario_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/horario_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/horario_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/horario_bot/internal/controller/callbacks/schedules"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// Route распределяет callback query по соответствующим обработчикам
func Route(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	data := callback.Data

	switch {
	case data == keyboard.Noop:
		common.AnswerCallback(ctx, b, callback.ID, "")

	// ===== Сгенерированные варианты =====
	case strings.HasPrefix(data, keyboard.ShowGenerated):
		schedules.HandleShowGenerated(ctx, b, callback, h)
	case strings.HasPrefix(data, keyboard.SaveGenerated):
		schedules.HandleSaveGenerated(ctx, b, callback, h)

	// ===== Исключения =====
	case strings.HasPrefix(data, keyboard.ExclusionMenu):
		schedules.HandleExclusionMenu(ctx, b, callback, h)
	case strings.HasPrefix(data, keyboard.ExcludeTeacher):
		schedules.HandleExcludeTeacher(ctx, b, callback, h)
	case strings.HasPrefix(data, keyboard.ExcludeSubject):
		schedules.HandleExcludeSubject(ctx, b, callback, h)
	case strings.HasPrefix(data, keyboard.RequireSubject):
		schedules.HandleRequireSubject(ctx, b, callback, h)
	case data == keyboard.ClearExclusions:
		schedules.HandleClearExclusions(ctx, b, callback, h)

	// ===== Сохранённые расписания =====
	case data == keyboard.ListSaved:
		schedules.HandleListSaved(ctx, b, callback, h)
	case strings.HasPrefix(data, keyboard.ShowSaved):
		schedules.HandleShowSaved(ctx, b, callback, h)
	case strings.HasPrefix(data, keyboard.DeleteSaved):
		schedules.HandleDeleteSaved(ctx, b, callback, h)

	default:
		h.Logger.Warn("Unknown callback",
			zap.String("data", data),
			zap.Int64("user_id", callback.From.ID))
		common.AnswerCallback(ctx, b, callback.ID, "❌ Acción desconocida")
	}
}
