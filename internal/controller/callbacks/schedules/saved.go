package schedules

import (
	"context"

	"github.com/Freeeeeet/horario_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/horario_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/horario_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/horario_bot/internal/controller/callbacks/common/keyboard"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// HandleListSaved показывает список сохранённых расписаний
func HandleListSaved(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithUser(ctx, b, callback, h, func(hc *common.HandlerContext) {
		list, err := h.ScheduleService.ListSaved(ctx, hc.User.ID)
		if err != nil {
			common.HandleError(hc, err, "list saved schedules")
			return
		}

		if err := hc.SendMessage(formatting.FormatSavedList(list), keyboard.SavedList(list)); err != nil {
			common.HandleError(hc, err, "send saved list")
			return
		}
		hc.Answer("")
	})
}

// HandleShowSaved показывает сохранённое расписание
func HandleShowSaved(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithUser(ctx, b, callback, h, func(hc *common.HandlerContext) {
		id, err := common.ParseUUID(callback.Data, keyboard.ShowSaved)
		if err != nil {
			common.HandleError(hc, err, "parse saved id")
			return
		}

		saved, err := h.ScheduleService.GetSaved(ctx, hc.User.ID, id)
		if err != nil {
			common.HandleError(hc, err, "load saved schedule")
			return
		}

		screen := common.BuildSavedScreen(h.ScheduleService, saved)
		if err := common.SendScreen(ctx, b, h.ScheduleService, h.Logger, hc.ChatID, screen); err != nil {
			common.HandleError(hc, err, "send saved schedule")
			return
		}
		hc.Answer("")
	})
}

// HandleDeleteSaved удаляет сохранённое расписание вместе с сообщением
func HandleDeleteSaved(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithUser(ctx, b, callback, h, func(hc *common.HandlerContext) {
		id, err := common.ParseUUID(callback.Data, keyboard.DeleteSaved)
		if err != nil {
			common.HandleError(hc, err, "parse saved id")
			return
		}

		if err := h.ScheduleService.DeleteSaved(ctx, hc.User.ID, id); err != nil {
			common.HandleError(hc, err, "delete saved schedule")
			return
		}

		_ = hc.DeleteMessage()
		common.LogAndAnswer(hc, "Saved schedule deleted", "🗑 Horario eliminado")
	})
}
