package formatting

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/Freeeeeet/horario_bot/internal/model"
	"github.com/Freeeeeet/horario_bot/internal/service"
	"github.com/Freeeeeet/horario_bot/internal/timetable"
	"github.com/stretchr/testify/assert"
)

func link(base string) LinkFunc {
	return func(teacher string) string { return timetable.TeacherLink(base, teacher) }
}

func TestFormatScheduleCaption(t *testing.T) {
	s := &model.Schedule{
		Popularity:   0.123456,
		TotalCredits: 37.5,
		Courses: []model.Course{
			{
				Subject:  "CÁLCULO & ÁLGEBRA",
				Teacher:  "RUIZ ANA",
				Sequence: "1CV1",
				Occurrences: []model.Occurrence{
					{Day: "Wednesday", Start: "09:00", End: "10:30"},
					{Day: "Monday", Start: "09:00", End: "10:30"},
				},
			},
		},
	}

	caption := FormatScheduleCaption(FormatScheduleHeader(0, 3), s, link("https://saes.test/profesor/"))

	assert.Contains(t, caption, "Horario 1 de 3")
	assert.Contains(t, caption, "Popularidad: 0.1235")
	assert.Contains(t, caption, "Créditos: 37.50")
	assert.Contains(t, caption, "CÁLCULO &amp; ÁLGEBRA")
	assert.Contains(t, caption, `<a href="https://saes.test/profesor/RUIZ%20ANA">RUIZ ANA</a>`)
	assert.Contains(t, caption, "Lun 09:00-10:30, Mié 09:00-10:30")
}

func TestFormatScheduleCaption_RelativeLinkNotRendered(t *testing.T) {
	s := &model.Schedule{Courses: []model.Course{{Subject: "REDES", Teacher: "DIAZ"}}}

	caption := FormatScheduleCaption("h", s, link(timetable.DefaultTeacherBaseURL))

	assert.NotContains(t, caption, "<a ")
	assert.Contains(t, caption, "DIAZ")
}

func TestFormatScheduleCaption_Empty(t *testing.T) {
	caption := FormatScheduleCaption("h", &model.Schedule{}, link(""))
	assert.Contains(t, caption, NoCourses)
}

func TestFormatScheduleCaption_RespectsLimit(t *testing.T) {
	s := &model.Schedule{}
	for i := 0; i < 30; i++ {
		s.Courses = append(s.Courses, model.Course{
			Subject:  strings.Repeat("MATERIA ", 5),
			Teacher:  "PROFESOR CON NOMBRE LARGO",
			Sequence: "9ZZ9",
			Occurrences: []model.Occurrence{
				{Day: "Friday", Start: "18:00", End: "20:00"},
			},
		})
	}

	caption := FormatScheduleCaption("h", s, link(""))

	assert.LessOrEqual(t, utf8.RuneCountInString(caption), CaptionLimit)
	assert.Contains(t, caption, "materias más")
}

func TestFormatOccurrences_UnknownDayLast(t *testing.T) {
	got := FormatOccurrences([]model.Occurrence{
		{Day: "Sunday", Start: "07:00", End: "08:00"},
		{Day: "Saturday", Start: "07:00", End: "08:00"},
		{Day: "Tuesday", Start: "07:00", End: "08:00"},
	})
	assert.Equal(t, "Mar 07:00-08:00, Sáb 07:00-08:00, Sunday 07:00-08:00", got)
}

func TestFormatSummary(t *testing.T) {
	text := FormatSummary(service.GenerationSummary{
		Status:      service.StatusEmpty,
		Message:     "No se pudieron generar horarios",
		Reasons:     []string{"a < b"},
		Suggestions: []string{"hazlo"},
	})

	assert.True(t, strings.HasPrefix(text, "🤷"))
	assert.Contains(t, text, "Posibles causas")
	assert.Contains(t, text, "a &lt; b")
	assert.Contains(t, text, "Sugerencias")
}

func TestFormatProfile(t *testing.T) {
	p := service.DefaultProfile(1)
	p.Career = "C"
	p.Semesters = []string{"1", "2"}

	text := FormatProfile(p, false)

	assert.Contains(t, text, "Carrera: C")
	assert.Contains(t, text, "Semestres: 1, 2")
	assert.Contains(t, text, "07:00 - 21:00")
	assert.Contains(t, text, "no enviada")
	assert.Contains(t, text, "Usos por grupo: 1")
	assert.Contains(t, text, "Materias extra: —")
}

func TestFormatSavedList(t *testing.T) {
	assert.Contains(t, FormatSavedList(nil), "Aún no tienes")

	text := FormatSavedList([]*model.SavedSchedule{
		{Title: "Horario 1", CreatedAt: time.Now(), Schedule: model.Schedule{Courses: make([]model.Course, 1)}},
	})
	assert.Contains(t, text, "Tienes 1 horario guardado")
	assert.Contains(t, text, "(1 materia)")
}
