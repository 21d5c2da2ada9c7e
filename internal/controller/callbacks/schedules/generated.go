package schedules

import (
	"context"
	"errors"

	"github.com/Freeeeeet/horario_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/horario_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/horario_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/horario_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleShowGenerated показывает вариант из последней генерации
func HandleShowGenerated(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithUser(ctx, b, callback, h, func(hc *common.HandlerContext) {
		index, err := common.ParseIndex(callback.Data, keyboard.ShowGenerated)
		if err != nil {
			common.HandleError(hc, err, "parse generated index")
			return
		}

		screen, err := common.BuildGeneratedScreen(ctx, h.ScheduleService, hc.User.ID, index)
		if err != nil {
			common.HandleError(hc, err, "load generated schedule")
			return
		}

		if err := common.ReplaceWithScreen(hc, screen); err != nil {
			common.HandleError(hc, err, "send generated schedule")
			return
		}

		hc.Answer("")
	})
}

// HandleSaveGenerated сохраняет показанный вариант
func HandleSaveGenerated(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithUser(ctx, b, callback, h, func(hc *common.HandlerContext) {
		index, err := common.ParseIndex(callback.Data, keyboard.SaveGenerated)
		if err != nil {
			common.HandleError(hc, err, "parse generated index")
			return
		}

		saved, err := h.ScheduleService.Save(ctx, hc.User.ID, index)
		if err != nil {
			if errors.Is(err, service.ErrScheduleNotFound) {
				hc.AnswerAlert(common.ErrorMessage(err))
				return
			}
			common.HandleError(hc, err, "save schedule")
			return
		}

		h.Logger.Info("Schedule saved from callback",
			zap.Int64("user_id", hc.User.ID),
			zap.Int("index", index),
			zap.String("saved_id", saved.ID.String()))
		hc.Answer("💾 Horario guardado. Consúltalo con /guardados")
	})
}
