package formatting

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Freeeeeet/horario_bot/internal/model"
	"github.com/Freeeeeet/horario_bot/internal/timetable"
)

// FormatDateTime форматирует дату и время
func FormatDateTime(t time.Time) string {
	return t.Format("02/01/2006 15:04")
}

// FormatOccurrences перечисляет занятия курса по дням: "Lun 07:00-08:30, Mié 07:00-08:30".
// Занятия с неизвестным днём идут в конце.
func FormatOccurrences(occ []model.Occurrence) string {
	type item struct {
		day  int
		text string
	}

	items := make([]item, 0, len(occ))
	for _, o := range occ {
		d, ok := timetable.ParseWeekday(o.Day)
		label := o.Day
		order := timetable.WeekdayCount
		if ok {
			label = GetWeekdayShort(d)
			order = int(d)
		}
		items = append(items, item{day: order, text: fmt.Sprintf("%s %s-%s", label, o.Start, o.End)})
	}

	sort.SliceStable(items, func(i, j int) bool { return items[i].day < items[j].day })

	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = it.text
	}
	return strings.Join(parts, ", ")
}

// GetWeekdayShort возвращает краткое название дня недели
func GetWeekdayShort(d timetable.Weekday) string {
	label := []rune(d.Label())
	if len(label) < 3 {
		return string(label)
	}
	return string(label[:3])
}
