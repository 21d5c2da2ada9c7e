package formatting

import (
	"fmt"
	"html"
	"strings"
	"unicode/utf8"

	"github.com/Freeeeeet/horario_bot/internal/model"
	"github.com/Freeeeeet/horario_bot/internal/service"
)

// CaptionLimit максимальная длина подписи к фото в Telegram
const CaptionLimit = 1024

// captionTailReserve место под строку "… y N materias más"
const captionTailReserve = 32

// NoCourses заглушка для расписания без курсов
const NoCourses = "Este horario no tiene materias."

// LinkFunc строит ссылку на страницу преподавателя
type LinkFunc func(teacher string) string

// FormatScheduleHeader заголовок варианта из генерации: "Horario 2 de 15"
func FormatScheduleHeader(position, total int) string {
	return fmt.Sprintf("📅 <b>Horario %d de %d</b>", position+1, total)
}

// FormatSavedHeader заголовок сохранённого расписания
func FormatSavedHeader(saved *model.SavedSchedule) string {
	return fmt.Sprintf("💾 <b>%s</b>\nGuardado: %s", html.EscapeString(saved.Title), FormatDateTime(saved.CreatedAt))
}

// FormatScheduleCaption подпись к картинке расписания: популярность,
// кредиты и список курсов со ссылками на преподавателей
func FormatScheduleCaption(header string, s *model.Schedule, link LinkFunc) string {
	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n")

	if s.IsEmpty() {
		b.WriteString("\n")
		b.WriteString(NoCourses)
		return b.String()
	}

	fmt.Fprintf(&b, "⭐ Popularidad: %.4f\n", s.Popularity)
	fmt.Fprintf(&b, "🎓 Créditos: %.2f\n", s.TotalCredits)

	for i, c := range s.Courses {
		line := formatCourseLine(i, c, link)
		if utf8.RuneCountInString(b.String())+utf8.RuneCountInString(line)+1+captionTailReserve > CaptionLimit {
			fmt.Fprintf(&b, "\n… y %d %s más", len(s.Courses)-i, PluralizeSubjects(len(s.Courses)-i))
			break
		}
		b.WriteString("\n")
		b.WriteString(line)
	}

	return b.String()
}

func formatCourseLine(i int, c model.Course, link LinkFunc) string {
	teacher := html.EscapeString(c.Teacher)
	if href := link(c.Teacher); c.Teacher != "" && strings.HasPrefix(href, "http") {
		teacher = fmt.Sprintf(`<a href="%s">%s</a>`, html.EscapeString(href), teacher)
	}

	return fmt.Sprintf("%d. <b>%s</b> (%s)\n   👤 %s\n   🕐 %s",
		i+1,
		html.EscapeString(c.Subject),
		html.EscapeString(c.Sequence),
		teacher,
		FormatOccurrences(c.Occurrences),
	)
}

// FormatSummary текст результата генерации
func FormatSummary(s service.GenerationSummary) string {
	var emoji string
	switch s.Status {
	case service.StatusSuccess:
		emoji = "✅"
	case service.StatusEmpty:
		emoji = "🤷"
	case service.StatusSessionExpired:
		emoji = "🔒"
	default:
		emoji = "❌"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s", emoji, html.EscapeString(s.Message))

	if len(s.Reasons) > 0 {
		b.WriteString("\n\n<b>Posibles causas:</b>")
		for _, r := range s.Reasons {
			b.WriteString("\n• ")
			b.WriteString(html.EscapeString(r))
		}
	}

	if len(s.Suggestions) > 0 {
		b.WriteString("\n\n<b>Sugerencias:</b>")
		for _, r := range s.Suggestions {
			b.WriteString("\n• ")
			b.WriteString(html.EscapeString(r))
		}
	}

	return b.String()
}

// FormatProfile текущие параметры генерации
func FormatProfile(p *model.GenerationProfile, hasSession bool) string {
	orDash := func(s string) string {
		if s == "" {
			return "—"
		}
		return html.EscapeString(s)
	}
	list := func(values []string) string {
		if len(values) == 0 {
			return "—"
		}
		return html.EscapeString(strings.Join(values, ", "))
	}

	session := "❌ no enviada (/sesion)"
	if hasSession {
		session = "✅ enviada"
	}

	return fmt.Sprintf(
		"⚙️ <b>Tu perfil</b>\n\n"+
			"🎓 Carrera: %s\n"+
			"📘 Plan: %s\n"+
			"📚 Semestres: %s\n"+
			"🕐 Horario: %s - %s\n"+
			"🔢 Materias: %d\n"+
			"🏅 Créditos: %d\n"+
			"♻️ Usos por grupo: %d\n"+
			"🔑 Sesión SAES: %s\n\n"+
			"🚫 Profesores excluidos: %s\n"+
			"🚫 Materias excluidas: %s\n"+
			"📌 Materias obligatorias: %s\n"+
			"➕ Materias extra: %s",
		orDash(p.Career),
		orDash(p.CareerPlan),
		list(p.Semesters),
		p.StartTime, p.EndTime,
		p.Length,
		p.Credits,
		p.AvailableUses,
		session,
		list(p.ExcludedTeachers),
		list(p.ExcludedSubjects),
		list(p.RequiredSubjects),
		list(p.ExtraSubjects),
	)
}

// FormatSavedList список сохранённых расписаний
func FormatSavedList(list []*model.SavedSchedule) string {
	if len(list) == 0 {
		return "💾 Aún no tienes horarios guardados.\n\nGenera con /generar y pulsa «Guardar»."
	}

	var b strings.Builder
	suffix := "guardados"
	if len(list) == 1 {
		suffix = "guardado"
	}
	fmt.Fprintf(&b, "💾 <b>Tienes %d %s %s</b>\n", len(list), PluralizeSchedules(len(list)), suffix)
	for i, s := range list {
		fmt.Fprintf(&b, "\n%d. %s (%d %s)", i+1, html.EscapeString(s.Title),
			len(s.Schedule.Courses), PluralizeSubjects(len(s.Schedule.Courses)))
	}
	return b.String()
}
