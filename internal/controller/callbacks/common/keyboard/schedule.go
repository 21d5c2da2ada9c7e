package keyboard

import (
	"fmt"

	"github.com/Freeeeeet/horario_bot/internal/model"
	"github.com/go-telegram/bot/models"
	"github.com/google/uuid"
)

// Форматы callback data
const (
	Noop            = "noop"
	ShowGenerated   = "gen:"  // gen:<index>
	SaveGenerated   = "save:" // save:<index>
	ExclusionMenu   = "opt:"  // opt:<index>
	ExcludeTeacher  = "ext:"  // ext:<index>:<course>
	ExcludeSubject  = "exs:"  // exs:<index>:<course>
	RequireSubject  = "req:"  // req:<index>:<course>
	ClearExclusions = "clr_ex"
	ShowSaved       = "sav:" // sav:<uuid>
	DeleteSaved     = "del:" // del:<uuid>
	ListSaved       = "saved_list"
)

// buttonTextLimit длина подписи кнопки, после которой текст обрезается
const buttonTextLimit = 24

// GeneratedSchedule клавиатура варианта из генерации
func GeneratedSchedule(index, total int) *models.InlineKeyboardMarkup {
	return NewBuilder().
		AddPagination(ShowGenerated, index, total).
		Row(
			Button("💾 Guardar", fmt.Sprintf("%s%d", SaveGenerated, index)),
			Button("⚙️ Ajustar", fmt.Sprintf("%s%d", ExclusionMenu, index)),
		).
		Build()
}

// Exclusions меню исключений для курсов варианта
func Exclusions(index int, courses []model.Course) *models.InlineKeyboardMarkup {
	b := NewBuilder()
	for c, course := range courses {
		b.Row(
			Button("🚫 "+shorten(course.Teacher), fmt.Sprintf("%s%d:%d", ExcludeTeacher, index, c)),
			Button("🚫 "+shorten(course.Subject), fmt.Sprintf("%s%d:%d", ExcludeSubject, index, c)),
			Button("📌", fmt.Sprintf("%s%d:%d", RequireSubject, index, c)),
		)
	}
	return b.
		Row(Button("🧹 Quitar exclusiones", ClearExclusions)).
		Row(Button("⬅️ Volver", fmt.Sprintf("%s%d", ShowGenerated, index))).
		Build()
}

// SavedSchedule клавиатура сохранённого расписания
func SavedSchedule(id uuid.UUID) *models.InlineKeyboardMarkup {
	return NewBuilder().
		Row(
			Button("🗑 Eliminar", DeleteSaved+id.String()),
			Button("📋 Guardados", ListSaved),
		).
		Build()
}

// SavedList кнопки для открытия сохранённых расписаний
func SavedList(list []*model.SavedSchedule) *models.InlineKeyboardMarkup {
	b := NewBuilder()
	for i, s := range list {
		b.Row(Button(fmt.Sprintf("%d. %s", i+1, shorten(s.Title)), ShowSaved+s.ID.String()))
	}
	return b.Build()
}

func shorten(s string) string {
	runes := []rune(s)
	if len(runes) <= buttonTextLimit {
		return s
	}
	return string(runes[:buttonTextLimit-1]) + "…"
}
