package handlers

import (
	"context"
	"strconv"
	"strings"

	"github.com/Freeeeeet/horario_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/horario_bot/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// HandleProfile показывает параметры генерации
func (h *Handlers) HandleProfile(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, ok := h.requireUser(ctx, b, update)
	if !ok {
		return
	}

	profile, err := h.profileService.Get(ctx, user.ID)
	if err != nil {
		h.replyError(ctx, b, update.Message.Chat.ID, err, "get_profile")
		return
	}

	h.sendMessage(ctx, b, update.Message.Chat.ID, formatting.FormatProfile(profile, user.HasSession()), nil)
}

// HandleCareer обрабатывает /carrera CÓDIGO [PLAN]
func (h *Handlers) HandleCareer(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, ok := h.requireUser(ctx, b, update)
	if !ok {
		return
	}

	args := commandArgs(update.Message.Text)
	if len(args) == 0 || len(args) > 2 {
		h.sendError(ctx, b, update.Message.Chat.ID, "❌ Uso: /carrera CÓDIGO [PLAN]\nEjemplo: /carrera C 20")
		return
	}

	plan := ""
	if len(args) == 2 {
		plan = args[1]
	}

	profile, err := h.profileService.SetCareer(ctx, user.ID, args[0], plan)
	h.replyProfile(ctx, b, update, user, profile, err, "set_career")
}

// HandleSemesters обрабатывает /semestres; без аргументов ждёт список следующим сообщением
func (h *Handlers) HandleSemesters(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, ok := h.requireUser(ctx, b, update)
	if !ok {
		return
	}

	args := commandArgs(update.Message.Text)
	if len(args) == 0 {
		h.askSemesters(ctx, b, update)
		return
	}

	profile, err := h.profileService.SetSemesters(ctx, user.ID, semesterArgs(args))
	h.replyProfile(ctx, b, update, user, profile, err, "set_semesters")
}

// HandleHours обрабатывает /horas HH:MM HH:MM
func (h *Handlers) HandleHours(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, ok := h.requireUser(ctx, b, update)
	if !ok {
		return
	}

	args := commandArgs(update.Message.Text)
	if len(args) != 2 {
		h.sendError(ctx, b, update.Message.Chat.ID, "❌ Uso: /horas ENTRADA SALIDA\nEjemplo: /horas 07:00 15:00")
		return
	}

	profile, err := h.profileService.SetHours(ctx, user.ID, args[0], args[1])
	h.replyProfile(ctx, b, update, user, profile, err, "set_hours")
}

// HandleLength обрабатывает /materias N
func (h *Handlers) HandleLength(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, ok := h.requireUser(ctx, b, update)
	if !ok {
		return
	}

	n, ok := singleInt(update.Message.Text)
	if !ok {
		h.sendError(ctx, b, update.Message.Chat.ID, "❌ Uso: /materias N\nEjemplo: /materias 6")
		return
	}

	profile, err := h.profileService.SetLength(ctx, user.ID, n)
	h.replyProfile(ctx, b, update, user, profile, err, "set_length")
}

// HandleCredits обрабатывает /creditos N
func (h *Handlers) HandleCredits(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, ok := h.requireUser(ctx, b, update)
	if !ok {
		return
	}

	n, ok := singleInt(update.Message.Text)
	if !ok {
		h.sendError(ctx, b, update.Message.Chat.ID, "❌ Uso: /creditos N\nEjemplo: /creditos 100")
		return
	}

	profile, err := h.profileService.SetCredits(ctx, user.ID, n)
	h.replyProfile(ctx, b, update, user, profile, err, "set_credits")
}

// HandleAvailableUses обрабатывает /usos N
func (h *Handlers) HandleAvailableUses(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, ok := h.requireUser(ctx, b, update)
	if !ok {
		return
	}

	n, ok := singleInt(update.Message.Text)
	if !ok {
		h.sendError(ctx, b, update.Message.Chat.ID, "❌ Uso: /usos N\nEjemplo: /usos 2")
		return
	}

	profile, err := h.profileService.SetAvailableUses(ctx, user.ID, n)
	h.replyProfile(ctx, b, update, user, profile, err, "set_available_uses")
}

// HandleExtras обрабатывает /extras MATERIA; MATERIA, "/extras -" очищает список
func (h *Handlers) HandleExtras(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, ok := h.requireUser(ctx, b, update)
	if !ok {
		return
	}

	args := commandArgs(update.Message.Text)
	if len(args) == 0 {
		h.sendError(ctx, b, update.Message.Chat.ID,
			"❌ Uso: /extras MATERIA; MATERIA\nEjemplo: /extras INGLÉS IV; ÉTICA\n/extras - para borrar la lista")
		return
	}

	profile, err := h.profileService.SetExtraSubjects(ctx, user.ID, parseExtras(args))
	h.replyProfile(ctx, b, update, user, profile, err, "set_extra_subjects")
}

// semesterArgs аргументы /semestres с запятыми: ["3,4", "5"] -> ["3", "4", "5"]
func semesterArgs(args []string) []string {
	return splitList(strings.Join(args, " "))
}

// parseExtras ["INGLÉS", "IV;", "ÉTICA"] -> ["INGLÉS IV", "ÉTICA"]; "-" означает пустой список
func parseExtras(args []string) []string {
	text := strings.Join(args, " ")
	if text == "-" {
		return nil
	}
	return strings.Split(text, ";")
}

// replyProfile отвечает обновлённым профилем или ошибкой
func (h *Handlers) replyProfile(ctx context.Context, b *bot.Bot, update *models.Update, user *model.User, profile *model.GenerationProfile, err error, operation string) {
	if err != nil {
		h.replyError(ctx, b, update.Message.Chat.ID, err, operation)
		return
	}
	h.sendMessage(ctx, b, update.Message.Chat.ID, "✅ Guardado\n\n"+formatting.FormatProfile(profile, user.HasSession()), nil)
}

func singleInt(text string) (int, bool) {
	args := commandArgs(text)
	if len(args) != 1 {
		return 0, false
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, false
	}
	return n, true
}
