package timetable

import (
	"net/url"
)

// DefaultTeacherBaseURL префикс ссылки на страницу преподавателя
const DefaultTeacherBaseURL = "/profesor/"

// CellKind тип выводимой клетки
type CellKind int

const (
	CellEmpty CellKind = iota
	CellSession
)

// Cell одна выводимая клетка таблицы. Клетки, перекрытые RowSpan
// вышестоящего занятия, не выводятся вовсе.
type Cell struct {
	Kind          CellKind
	Day           Weekday
	Slot          int
	RowSpan       int
	Color         Color
	Subject       string
	Teacher       string
	TeacherLink   string
	Sequence      string
	PositiveScore float64
	Availability  int
	Start         string
	End           string
}

// ID стабильный ключ клетки в пределах одной таблицы
func (c Cell) ID() string {
	return c.Day.Label() + "_" + TimeSlots[c.Slot]
}

// Row строка таблицы
type Row struct {
	Slot  int
	Time  string
	Cells []Cell
}

// RenderModel обрезанная таблица с объединёнными по вертикали клетками
type RenderModel struct {
	Days     []Weekday
	FirstRow int
	LastRow  int
	Rows     []Row
}

// Empty возвращает true если в таблице нет ни одного занятия
func (m RenderModel) Empty() bool {
	for _, row := range m.Rows {
		for _, cell := range row.Cells {
			if cell.Kind == CellSession {
				return false
			}
		}
	}
	return true
}

// Sessions возвращает все объединённые клетки по порядку обхода
func (m RenderModel) Sessions() []Cell {
	var cells []Cell
	for _, row := range m.Rows {
		for _, cell := range row.Cells {
			if cell.Kind == CellSession {
				cells = append(cells, cell)
			}
		}
	}
	return cells
}

type renderConfig struct {
	teacherBaseURL string
}

// RenderOption настройка Render
type RenderOption func(*renderConfig)

// WithTeacherBaseURL задаёт префикс ссылки на преподавателя
func WithTeacherBaseURL(base string) RenderOption {
	return func(c *renderConfig) {
		c.teacherBaseURL = base
	}
}

// TeacherLink строит ссылку на страницу преподавателя
func TeacherLink(base, teacher string) string {
	return base + url.PathEscape(teacher)
}

// emitKey занятие уже выведено в этой колонке
type emitKey struct {
	key SessionKey
	day Weekday
}

// Render превращает сетку в таблицу для отображения
func Render(layout Layout, opts ...RenderOption) RenderModel {
	cfg := renderConfig{teacherBaseURL: DefaultTeacherBaseURL}
	for _, opt := range opts {
		opt(&cfg)
	}

	grid := &layout.Grid
	first, last := visibleRange(grid)

	days := make([]Weekday, 0, WeekdayCount)
	for _, d := range AllWeekdays() {
		if d == Saturday && !grid.dayOccupied(Saturday) {
			continue
		}
		days = append(days, d)
	}

	model := RenderModel{
		Days:     days,
		FirstRow: first,
		LastRow:  last,
		Rows:     make([]Row, 0, last-first+1),
	}

	emitted := make(map[emitKey]struct{})

	for slot := first; slot <= last; slot++ {
		row := Row{Slot: slot, Time: TimeSlots[slot], Cells: make([]Cell, 0, len(days))}

		for _, day := range days {
			s := grid[slot][day]
			if s == nil {
				row.Cells = append(row.Cells, Cell{Kind: CellEmpty, Day: day, Slot: slot})
				continue
			}

			ek := emitKey{key: s.Key, day: day}
			if _, done := emitted[ek]; done {
				continue
			}
			emitted[ek] = struct{}{}

			row.Cells = append(row.Cells, Cell{
				Kind:          CellSession,
				Day:           day,
				Slot:          slot,
				RowSpan:       rowSpan(s.Start, s.End),
				Color:         layout.Meta[s.Key].Color,
				Subject:       s.Subject,
				Teacher:       s.Teacher,
				TeacherLink:   TeacherLink(cfg.teacherBaseURL, s.Teacher),
				Sequence:      s.Sequence,
				PositiveScore: s.PositiveScore,
				Availability:  s.Availability,
				Start:         s.Start,
				End:           s.End,
			})
		}

		model.Rows = append(model.Rows, row)
	}

	return model
}

// visibleRange первая и последняя выводимые строки с отступом в одну строку.
// Без занятий таблица сжимается до строки 0.
func visibleRange(grid *Grid) (int, int) {
	first, last := -1, -1

	for row := 0; row < SlotCount; row++ {
		if grid.rowOccupied(row) {
			first = max(row-1, 0)
			break
		}
	}
	for row := SlotCount - 1; row >= 0; row-- {
		if grid.rowOccupied(row) {
			last = min(row+1, SlotCount-1)
			break
		}
	}

	if first == -1 {
		first = 0
	}
	if last == -1 {
		last = first
	}
	return first, last
}

func rowSpan(start, end string) int {
	s, _ := SlotIndex(start)
	e, _ := SlotIndex(end)
	return e - s
}
