package common

import (
	"errors"
	"strings"

	"github.com/Freeeeeet/horario_bot/internal/service"
)

// Общие ошибки для обработчиков
var (
	ErrUserNotFound  = errors.New("user not found")
	ErrNoMessage     = errors.New("no message in callback")
	ErrInvalidFormat = errors.New("invalid callback format")
)

// ErrorMessage возвращает пользовательское сообщение для ошибки
func ErrorMessage(err error) string {
	switch {
	case errors.Is(err, ErrUserNotFound):
		return "❌ Usuario no encontrado. Usa /start"
	case errors.Is(err, ErrNoMessage):
		return "❌ Error al procesar el mensaje"
	case errors.Is(err, ErrInvalidFormat):
		return "❌ Formato de datos inválido"
	case errors.Is(err, service.ErrScheduleNotFound):
		return "❌ El horario ya no está disponible. Genera de nuevo con /generar"
	case errors.Is(err, service.ErrInvalidInput):
		return "❌ " + inputProblem(err)
	default:
		return "❌ Ocurrió un error"
	}
}

// inputProblem текст после "invalid input: " для показа пользователю
func inputProblem(err error) string {
	msg := err.Error()
	if _, after, ok := strings.Cut(msg, service.ErrInvalidInput.Error()+": "); ok {
		return after
	}
	return msg
}
