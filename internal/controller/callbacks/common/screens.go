package common

import (
	"bytes"
	"context"
	"fmt"

	"github.com/Freeeeeet/horario_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/horario_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/horario_bot/internal/model"
	"github.com/Freeeeeet/horario_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// Screen картинка расписания с подписью и клавиатурой
type Screen struct {
	Schedule model.Schedule
	Caption  string
	Keyboard *models.InlineKeyboardMarkup
}

// BuildGeneratedScreen экран варианта index из последней генерации
func BuildGeneratedScreen(ctx context.Context, svc *service.ScheduleService, userID int64, index int) (*Screen, error) {
	total, err := svc.GeneratedCount(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count generated: %w", err)
	}

	gs, err := svc.Generated(ctx, userID, index)
	if err != nil {
		return nil, err
	}

	return &Screen{
		Schedule: gs.Schedule,
		Caption:  formatting.FormatScheduleCaption(formatting.FormatScheduleHeader(index, total), &gs.Schedule, svc.TeacherLink),
		Keyboard: keyboard.GeneratedSchedule(index, total),
	}, nil
}

// BuildSavedScreen экран сохранённого расписания
func BuildSavedScreen(svc *service.ScheduleService, saved *model.SavedSchedule) *Screen {
	return &Screen{
		Schedule: saved.Schedule,
		Caption:  formatting.FormatScheduleCaption(formatting.FormatSavedHeader(saved), &saved.Schedule, svc.TeacherLink),
		Keyboard: keyboard.SavedSchedule(saved.ID),
	}
}

// SendScreen рисует расписание и отправляет его картинкой.
// Расписание без курсов и неудачная отрисовка отправляются только подписью.
func SendScreen(ctx context.Context, b *bot.Bot, svc *service.ScheduleService, logger *zap.Logger, chatID int64, screen *Screen) error {
	if screen.Schedule.IsEmpty() {
		return sendCaption(ctx, b, chatID, screen)
	}

	rendered, err := svc.Render(screen.Schedule)
	if err != nil {
		logger.Error("Failed to render schedule image", zap.Int64("chat_id", chatID), zap.Error(err))
		return sendCaption(ctx, b, chatID, screen)
	}

	_, err = b.SendPhoto(ctx, &bot.SendPhotoParams{
		ChatID:      chatID,
		Photo:       &models.InputFileUpload{Filename: "horario.png", Data: bytes.NewReader(rendered.PNG)},
		Caption:     screen.Caption,
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: screen.Keyboard,
	})
	return err
}

// sendCaption отправляет экран текстом без картинки
func sendCaption(ctx context.Context, b *bot.Bot, chatID int64, screen *Screen) error {
	params := &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      screen.Caption,
		ParseMode: models.ParseModeHTML,
	}
	if screen.Keyboard != nil {
		params.ReplyMarkup = screen.Keyboard
	}
	_, err := b.SendMessage(ctx, params)
	return err
}

// ReplaceWithScreen отправляет новый экран и удаляет сообщение, из которого пришёл callback
func ReplaceWithScreen(hc *HandlerContext, screen *Screen) error {
	if err := SendScreen(hc.Ctx, hc.Bot, hc.Handler.ScheduleService, hc.Handler.Logger, hc.ChatID, screen); err != nil {
		return err
	}
	if err := hc.DeleteMessage(); err != nil {
		hc.Handler.Logger.Debug("Failed to delete previous message", zap.Error(err))
	}
	return nil
}
