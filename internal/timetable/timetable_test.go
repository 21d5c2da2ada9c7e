package timetable

import (
	"math/rand/v2"
	"testing"

	"github.com/Freeeeeet/horario_bot/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seeded(seed uint64) BuildOption {
	return WithRand(rand.New(rand.NewPCG(seed, seed+1)))
}

func course(subject, teacher string, occ ...model.Occurrence) model.Course {
	return model.Course{
		Subject:       subject,
		Teacher:       teacher,
		Sequence:      "4CM41",
		Availability:  40,
		PositiveScore: 0.75,
		Occurrences:   occ,
	}
}

func at(day, start, end string) model.Occurrence {
	return model.Occurrence{Day: day, Start: start, End: end}
}

func sampleCourses() []model.Course {
	return []model.Course{
		course("MODELOS DETERMINISTICOS", "GUERRERO HUERTA ARACELI",
			at("monday", "13:00", "15:00"), at("wednesday", "13:00", "15:00")),
		course("ESTADÍSTICA", "PEREZ ALTAMIRANO ERIC",
			at("wednesday", "11:00", "13:00"), at("friday", "11:00", "13:00")),
		course("TEORÍA DE COMPUTACIÓN", "MENDEZ GARCIA SARA",
			at("monday", "10:00", "12:00"), at("thursday", "10:00", "12:00")),
		course("BASES DE DATOS", "ENTZANA GARDUÑO YVENTZ",
			at("tuesday", "08:30", "10:00"), at("thursday", "08:30", "10:00")),
	}
}

func TestSlotIndex(t *testing.T) {
	i, ok := SlotIndex("07:00")
	require.True(t, ok)
	assert.Equal(t, 0, i)

	i, ok = SlotIndex("22:00")
	require.True(t, ok)
	assert.Equal(t, SlotCount-1, i)

	_, ok = SlotIndex("07:15")
	assert.False(t, ok)
	_, ok = SlotIndex("22:30")
	assert.False(t, ok)
}

func TestParseWeekday(t *testing.T) {
	d, ok := ParseWeekday("Monday")
	require.True(t, ok)
	assert.Equal(t, Monday, d)

	d, ok = ParseWeekday("saturday")
	require.True(t, ok)
	assert.Equal(t, Saturday, d)
	assert.Equal(t, "Sábado", d.Label())

	_, ok = ParseWeekday("Sunday")
	assert.False(t, ok)
}

func TestBuildGrid_FillsContiguousCells(t *testing.T) {
	layout := BuildGrid([]model.Course{
		course("ESTADÍSTICA", "PEREZ", at("Tuesday", "09:00", "11:00")),
	}, seeded(1))

	start, _ := SlotIndex("09:00")
	end, _ := SlotIndex("11:00")

	for row := 0; row < SlotCount; row++ {
		cell := layout.Grid[row][Tuesday]
		if row >= start && row < end {
			require.NotNil(t, cell, "row %d", row)
			assert.Equal(t, "ESTADÍSTICA", cell.Subject)
			assert.Equal(t, Tuesday, cell.Day)
		} else {
			assert.Nil(t, cell, "row %d", row)
		}
	}
	assert.Len(t, layout.Meta, 1)
}

func TestBuildGrid_EmptyInput(t *testing.T) {
	layout := BuildGrid(nil, seeded(1))

	for row := range layout.Grid {
		for day := range layout.Grid[row] {
			assert.Nil(t, layout.Grid[row][day])
		}
	}
	assert.Empty(t, layout.Meta)
}

func TestBuildGrid_UnresolvableOccurrenceSkipped(t *testing.T) {
	layout := BuildGrid([]model.Course{
		course("ÁLGEBRA", "LOPEZ",
			at("Sunday", "07:00", "09:00"),
			at("Monday", "07:15", "09:00"),
			at("Tuesday", "07:00", "23:00"),
			at("Wednesday", "07:00", "09:00")),
	}, seeded(1))

	occupied := 0
	for row := range layout.Grid {
		for day := range layout.Grid[row] {
			if layout.Grid[row][day] != nil {
				occupied++
				assert.Equal(t, Wednesday, Weekday(day))
			}
		}
	}
	assert.Equal(t, 4, occupied)
}

func TestBuildGrid_OverlapLastWriterWins(t *testing.T) {
	layout := BuildGrid([]model.Course{
		course("FÍSICA", "RAMOS", at("Monday", "08:00", "10:00")),
		course("QUÍMICA", "SOTO", at("Monday", "09:30", "11:00")),
	}, seeded(1))

	overlap, _ := SlotIndex("09:30")
	require.NotNil(t, layout.Grid[overlap][Monday])
	assert.Equal(t, "QUÍMICA", layout.Grid[overlap][Monday].Subject)

	before, _ := SlotIndex("09:00")
	assert.Equal(t, "FÍSICA", layout.Grid[before][Monday].Subject)
}

func TestBuildGrid_SharedKeyAcrossDaysSharesColor(t *testing.T) {
	layout := BuildGrid([]model.Course{
		course("ESTADÍSTICA", "PEREZ", at("Monday", "07:00", "08:00"), at("Wednesday", "07:00", "08:00")),
		course("ESTADÍSTICA", "PEREZ", at("Friday", "08:00", "09:00")),
	}, seeded(3))

	mon := layout.Grid[0][Monday]
	wed := layout.Grid[0][Wednesday]
	require.NotNil(t, mon)
	require.NotNil(t, wed)
	assert.Equal(t, mon.Key, wed.Key)

	fri, _ := SlotIndex("08:00")
	assert.NotEqual(t, mon.Key, layout.Grid[fri][Friday].Key)
	assert.Len(t, layout.Meta, 2)
}

func TestBuildGrid_LaterCourseWithSameKeyOverwritesColor(t *testing.T) {
	courses := []model.Course{
		course("ESTADÍSTICA", "PEREZ", at("Monday", "07:00", "08:00")),
		course("ESTADÍSTICA", "PEREZ", at("Thursday", "07:00", "08:00")),
	}

	// тот же источник, что получит BuildGrid: по одному выбору на курс
	picker := newColorPicker(DefaultPalette, rand.New(rand.NewPCG(11, 12)))
	first := picker.pick()
	second := picker.pick()
	require.NotEqual(t, first.Name, second.Name)

	layout := BuildGrid(courses, seeded(11))

	require.Len(t, layout.Meta, 1)
	for _, meta := range layout.Meta {
		assert.Equal(t, second.Name, meta.Color.Name)
	}

	cells := Render(layout).Sessions()
	require.Len(t, cells, 2)
	for _, c := range cells {
		assert.Equal(t, second.Name, c.Color.Name, c.Day.Label())
	}
}

func TestColorPicker_NoRepeatsUntilExhausted(t *testing.T) {
	picker := newColorPicker(DefaultPalette, rand.New(rand.NewPCG(7, 8)))

	seen := make(map[string]bool)
	for i := 0; i < len(DefaultPalette); i++ {
		c := picker.pick()
		assert.False(t, seen[c.Name], "color %s picked twice", c.Name)
		seen[c.Name] = true
	}
	assert.Len(t, seen, len(DefaultPalette))

	// палитра исчерпана: следующий выбор сбрасывает набор
	picker.pick()
	assert.Len(t, picker.used, 1)
}

func TestColorPicker_StateIsPerCall(t *testing.T) {
	courses := make([]model.Course, len(DefaultPalette))
	for i := range courses {
		courses[i] = course(string(rune('A'+i)), "T", at("Monday", TimeSlots[i*2], TimeSlots[i*2+1]))
	}

	for run := 0; run < 3; run++ {
		layout := BuildGrid(courses, seeded(uint64(run)))
		colors := make(map[string]bool)
		for _, meta := range layout.Meta {
			colors[meta.Color.Name] = true
		}
		assert.Len(t, colors, len(DefaultPalette))
	}
}

func TestRender_SingleCourseTwoDays(t *testing.T) {
	layout := BuildGrid([]model.Course{
		course("ESTADÍSTICA", "PEREZ ALTAMIRANO ERIC", at("Monday", "07:00", "08:00"), at("Wednesday", "07:00", "08:00")),
	}, seeded(1))

	m := Render(layout)

	assert.Equal(t, 0, m.FirstRow)
	assert.Equal(t, 2, m.LastRow)
	assert.Equal(t, []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday}, m.Days)

	sessions := m.Sessions()
	require.Len(t, sessions, 2)
	assert.Equal(t, Monday, sessions[0].Day)
	assert.Equal(t, Wednesday, sessions[1].Day)
	for _, s := range sessions {
		assert.Equal(t, 2, s.RowSpan)
		assert.Equal(t, 0, s.Slot)
	}
	assert.Equal(t, sessions[0].Color, sessions[1].Color)

	// строка 07:30 перекрыта: выводятся только пустые клетки Вт, Чт, Пт
	require.Len(t, m.Rows, 3)
	assert.Len(t, m.Rows[1].Cells, 3)
	for _, c := range m.Rows[1].Cells {
		assert.Equal(t, CellEmpty, c.Kind)
	}
}

func TestRender_EmptyCourses(t *testing.T) {
	m := Render(BuildGrid([]model.Course{}, seeded(1)))

	require.Len(t, m.Rows, 1)
	assert.Equal(t, 0, m.FirstRow)
	assert.Equal(t, 0, m.LastRow)
	assert.Len(t, m.Days, 5)
	assert.Len(t, m.Rows[0].Cells, 5)
	assert.True(t, m.Empty())
}

func TestRender_VisibleRangePadding(t *testing.T) {
	layout := BuildGrid([]model.Course{
		course("REDES", "DIAZ", at("Thursday", "09:00", "11:00")),
	}, seeded(1))

	m := Render(layout)

	start, _ := SlotIndex("09:00")
	end, _ := SlotIndex("11:00")
	assert.Equal(t, start-1, m.FirstRow)
	assert.Equal(t, end, m.LastRow)
	assert.Equal(t, "08:30", m.Rows[0].Time)
}

func TestRender_LatestSessionClampsToLastSlot(t *testing.T) {
	layout := BuildGrid([]model.Course{
		course("ÉTICA", "MORA", at("Friday", "21:00", "22:00")),
	}, seeded(1))

	m := Render(layout)
	assert.Equal(t, SlotCount-1, m.LastRow)
}

func TestRender_SaturdayPresence(t *testing.T) {
	without := Render(BuildGrid(sampleCourses(), seeded(1)))
	assert.NotContains(t, without.Days, Saturday)

	withSat := append(sampleCourses(), course("INGLÉS", "SMITH", at("Saturday", "07:00", "09:00")))
	m := Render(BuildGrid(withSat, seeded(1)))
	assert.Contains(t, m.Days, Saturday)
	assert.Len(t, m.Days, WeekdayCount)
}

func TestRender_ColumnSpansCoverVisibleRange(t *testing.T) {
	withSat := append(sampleCourses(), course("INGLÉS", "SMITH", at("Saturday", "14:00", "16:00")))
	m := Render(BuildGrid(withSat, seeded(5)))

	want := m.LastRow - m.FirstRow + 1
	for _, day := range m.Days {
		total := 0
		for _, row := range m.Rows {
			for _, c := range row.Cells {
				if c.Day != day {
					continue
				}
				if c.Kind == CellSession {
					total += c.RowSpan
				} else {
					total++
				}
			}
		}
		assert.Equal(t, want, total, "day %s", day)
	}
}

func TestRender_OneSpanStartPerOccurrence(t *testing.T) {
	m := Render(BuildGrid(sampleCourses(), seeded(9)))

	starts := make(map[Weekday]int)
	for _, c := range m.Sessions() {
		starts[c.Day]++
	}
	assert.Equal(t, 2, starts[Monday])
	assert.Equal(t, 1, starts[Tuesday])
	assert.Equal(t, 2, starts[Wednesday])
	assert.Equal(t, 2, starts[Thursday])
	assert.Equal(t, 1, starts[Friday])
}

func TestRender_ShapeIsIdempotent(t *testing.T) {
	a := Render(BuildGrid(sampleCourses(), seeded(1)))
	b := Render(BuildGrid(sampleCourses(), seeded(42)))

	require.Equal(t, a.FirstRow, b.FirstRow)
	require.Equal(t, a.LastRow, b.LastRow)
	require.Equal(t, len(a.Rows), len(b.Rows))
	for i := range a.Rows {
		require.Equal(t, len(a.Rows[i].Cells), len(b.Rows[i].Cells))
		for j := range a.Rows[i].Cells {
			ca, cb := a.Rows[i].Cells[j], b.Rows[i].Cells[j]
			assert.Equal(t, ca.Kind, cb.Kind)
			assert.Equal(t, ca.RowSpan, cb.RowSpan)
			assert.Equal(t, ca.Subject, cb.Subject)
			assert.Equal(t, ca.ID(), cb.ID())
		}
	}
}

func TestRender_TeacherLink(t *testing.T) {
	layout := BuildGrid([]model.Course{
		course("BASES DE DATOS", "ENTZANA GARDUÑO YVENTZ", at("Monday", "07:00", "08:00")),
	}, seeded(1))

	m := Render(layout, WithTeacherBaseURL("https://horarios.example/profesor/"))
	sessions := m.Sessions()
	require.Len(t, sessions, 1)
	assert.Equal(t, "https://horarios.example/profesor/ENTZANA%20GARDU%C3%91O%20YVENTZ", sessions[0].TeacherLink)
	assert.Equal(t, "Lunes_07:00", sessions[0].ID())
}
