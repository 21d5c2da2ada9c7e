package schedules

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/horario_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/horario_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/horario_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/horario_bot/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// HandleExclusionMenu заменяет клавиатуру варианта меню исключений
func HandleExclusionMenu(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithUser(ctx, b, callback, h, func(hc *common.HandlerContext) {
		index, err := common.ParseIndex(callback.Data, keyboard.ExclusionMenu)
		if err != nil {
			common.HandleError(hc, err, "parse exclusion menu")
			return
		}

		gs, err := h.ScheduleService.Generated(ctx, hc.User.ID, index)
		if err != nil {
			common.HandleError(hc, err, "load generated schedule")
			return
		}

		if err := hc.EditKeyboard(keyboard.Exclusions(index, gs.Schedule.Courses)); err != nil {
			common.HandleError(hc, err, "show exclusion menu")
			return
		}
		hc.Answer("🚫 profesor · 🚫 materia · 📌 obligatoria")
	})
}

// HandleExcludeTeacher исключает преподавателя курса
func HandleExcludeTeacher(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	withCourse(ctx, b, callback, h, keyboard.ExcludeTeacher, func(hc *common.HandlerContext, course model.Course) {
		added, err := h.ScheduleService.ExcludeTeacher(ctx, hc.User.ID, course.Teacher)
		answerListChange(hc, err, added, "exclude teacher",
			fmt.Sprintf("🚫 %s excluido", course.Teacher),
			fmt.Sprintf("%s ya estaba excluido", course.Teacher))
	})
}

// HandleExcludeSubject исключает предмет курса
func HandleExcludeSubject(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	withCourse(ctx, b, callback, h, keyboard.ExcludeSubject, func(hc *common.HandlerContext, course model.Course) {
		added, err := h.ScheduleService.ExcludeSubject(ctx, hc.User.ID, course.Subject)
		answerListChange(hc, err, added, "exclude subject",
			fmt.Sprintf("🚫 %s excluida", course.Subject),
			fmt.Sprintf("%s ya estaba excluida", course.Subject))
	})
}

// HandleRequireSubject делает предмет курса обязательным
func HandleRequireSubject(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	withCourse(ctx, b, callback, h, keyboard.RequireSubject, func(hc *common.HandlerContext, course model.Course) {
		added, err := h.ScheduleService.RequireSubject(ctx, hc.User.ID, course.Subject)
		answerListChange(hc, err, added, "require subject",
			fmt.Sprintf("📌 %s es obligatoria", course.Subject),
			fmt.Sprintf("%s ya era obligatoria", course.Subject))
	})
}

// HandleClearExclusions снимает все исключения
func HandleClearExclusions(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithUser(ctx, b, callback, h, func(hc *common.HandlerContext) {
		if err := h.ScheduleService.ClearExclusions(ctx, hc.User.ID); err != nil {
			common.HandleError(hc, err, "clear exclusions")
			return
		}
		common.LogAndAnswer(hc, "Exclusions cleared", "🧹 Exclusiones eliminadas. Usa /generar")
	})
}

// withCourse загружает курс, на который указывает callback "<prefix><index>:<course>"
func withCourse(
	ctx context.Context,
	b *bot.Bot,
	callback *models.CallbackQuery,
	h *callbacktypes.Handler,
	prefix string,
	handler func(*common.HandlerContext, model.Course),
) {
	common.WithUser(ctx, b, callback, h, func(hc *common.HandlerContext) {
		index, c, err := common.ParseIndexPair(callback.Data, prefix)
		if err != nil {
			common.HandleError(hc, err, "parse course reference")
			return
		}

		gs, err := h.ScheduleService.Generated(ctx, hc.User.ID, index)
		if err != nil {
			common.HandleError(hc, err, "load generated schedule")
			return
		}

		if c >= len(gs.Schedule.Courses) {
			common.HandleError(hc, common.ErrInvalidFormat, "course out of range")
			return
		}

		handler(hc, gs.Schedule.Courses[c])
	})
}

func answerListChange(hc *common.HandlerContext, err error, added bool, operation, addedText, existingText string) {
	if err != nil {
		common.HandleError(hc, err, operation)
		return
	}
	if !added {
		hc.Answer(existingText)
		return
	}
	common.LogAndAnswer(hc, "Generation profile changed: "+operation, addedText+". Usa /generar")
}
