package export

import (
	"fmt"
	"strings"

	"github.com/Freeeeeet/horario_bot/internal/timetable"
	"github.com/charmbracelet/lipgloss"
)

const (
	textHourWidth = 7
	textCellWidth = 24
)

var (
	textHeaderStyle = lipgloss.NewStyle().Bold(true).Width(textCellWidth).Align(lipgloss.Center)
	textHourStyle   = lipgloss.NewStyle().Faint(true).Width(textHourWidth)
	textEmptyStyle  = lipgloss.NewStyle().Width(textCellWidth)
)

// activeBlock занятие, чей RowSpan ещё покрывает текущую строку
type activeBlock struct {
	cell   timetable.Cell
	offset int
}

// Text рисует таблицу в терминале. Объединённые клетки раскрашиваются
// цветом занятия на всю высоту RowSpan.
func Text(m timetable.RenderModel) string {
	var b strings.Builder

	header := []string{textHourStyle.Render("Hora")}
	for _, d := range m.Days {
		header = append(header, textHeaderStyle.Render(d.Label()))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, header...))
	b.WriteString("\n")

	active := make(map[timetable.Weekday]*activeBlock, len(m.Days))

	for _, row := range m.Rows {
		starts := make(map[timetable.Weekday]timetable.Cell, len(row.Cells))
		for _, c := range row.Cells {
			if c.Kind == timetable.CellSession {
				starts[c.Day] = c
			}
		}

		line := []string{textHourStyle.Render(row.Time)}
		for _, d := range m.Days {
			if c, ok := starts[d]; ok {
				active[d] = &activeBlock{cell: c}
			}

			blk, ok := active[d]
			if !ok || blk.offset >= blk.cell.RowSpan {
				delete(active, d)
				line = append(line, textEmptyStyle.Render(""))
				continue
			}

			line = append(line, sessionStyle(blk.cell).Render(sessionLine(blk.cell, blk.offset)))
			blk.offset++
		}

		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, line...))
		b.WriteString("\n")
	}

	return b.String()
}

func sessionStyle(c timetable.Cell) lipgloss.Style {
	return lipgloss.NewStyle().
		Width(textCellWidth).
		MaxWidth(textCellWidth).
		Background(lipgloss.Color(hexColor(c.Color.Fill.R, c.Color.Fill.G, c.Color.Fill.B))).
		Foreground(lipgloss.Color(hexColor(c.Color.Ink.R, c.Color.Ink.G, c.Color.Ink.B)))
}

// sessionLine строка блока: предмет, группа, преподаватель, оценка
func sessionLine(c timetable.Cell, offset int) string {
	var s string
	switch offset {
	case 0:
		s = c.Subject
	case 1:
		s = c.Sequence + " " + c.Teacher
	case 2:
		s = fmt.Sprintf("%.2f · Lugares: %d", c.PositiveScore, c.Availability)
	}
	return clip(s, textCellWidth-1)
}

func clip(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-1]) + "…"
}

func hexColor(r, g, b uint8) string {
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}
