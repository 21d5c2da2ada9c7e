package common

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/google/uuid"
)

// AnswerCallback отвечает на callback query (без alert)
func AnswerCallback(ctx context.Context, b *bot.Bot, callbackID string, text string) {
	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            text,
		ShowAlert:       false,
	})
}

// AnswerCallbackAlert отвечает на callback query с alert (всплывающее окно)
func AnswerCallbackAlert(ctx context.Context, b *bot.Bot, callbackID string, text string) {
	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            text,
		ShowAlert:       true,
	})
}

// GetMessageFromCallback извлекает сообщение из callback query
func GetMessageFromCallback(callback *models.CallbackQuery) *models.Message {
	if callback.Message.Message != nil {
		return callback.Message.Message
	}
	return nil
}

// ParseIndex извлекает номер из callback data
// Например: "gen:3" -> 3
func ParseIndex(data, prefix string) (int, error) {
	raw, ok := strings.CutPrefix(data, prefix)
	if !ok {
		return 0, ErrInvalidFormat
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, data)
	}
	return n, nil
}

// ParseIndexPair извлекает номер расписания и курса
// Например: "ext:3:1" -> 3, 1
func ParseIndexPair(data, prefix string) (int, int, error) {
	raw, ok := strings.CutPrefix(data, prefix)
	if !ok {
		return 0, 0, ErrInvalidFormat
	}
	left, right, ok := strings.Cut(raw, ":")
	if !ok {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidFormat, data)
	}
	i, err1 := strconv.Atoi(left)
	c, err2 := strconv.Atoi(right)
	if err1 != nil || err2 != nil || i < 0 || c < 0 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidFormat, data)
	}
	return i, c, nil
}

// ParseUUID извлекает идентификатор сохранённого расписания
func ParseUUID(data, prefix string) (uuid.UUID, error) {
	raw, ok := strings.CutPrefix(data, prefix)
	if !ok {
		return uuid.Nil, ErrInvalidFormat
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	return id, nil
}

// IsMessageNotModifiedError Telegram отвечает так, если содержимое не изменилось
func IsMessageNotModifiedError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "message is not modified")
}
