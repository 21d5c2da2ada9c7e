package timetable

import "strings"

// SlotCount количество получасовых отметок в сетке (07:00..22:00)
const SlotCount = 31

// WeekdayCount количество колонок-дней в сетке (Пн..Сб)
const WeekdayCount = 6

// TimeSlots фиксированная упорядоченная последовательность отметок времени
var TimeSlots = [SlotCount]string{
	"07:00", "07:30", "08:00", "08:30", "09:00", "09:30", "10:00", "10:30",
	"11:00", "11:30", "12:00", "12:30", "13:00", "13:30", "14:00", "14:30",
	"15:00", "15:30", "16:00", "16:30", "17:00", "17:30", "18:00", "18:30",
	"19:00", "19:30", "20:00", "20:30", "21:00", "21:30", "22:00",
}

var slotIndex = func() map[string]int {
	m := make(map[string]int, SlotCount)
	for i, s := range TimeSlots {
		m[s] = i
	}
	return m
}()

// SlotIndex возвращает позицию отметки времени в последовательности
func SlotIndex(t string) (int, bool) {
	i, ok := slotIndex[t]
	return i, ok
}

// Weekday колонка сетки
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

var weekdayNames = [WeekdayCount]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

var weekdayLabels = [WeekdayCount]string{"Lunes", "Martes", "Miércoles", "Jueves", "Viernes", "Sábado"}

// ParseWeekday переводит английское название дня в колонку.
// Регистр не важен; воскресенье и всё остальное не распознаётся.
func ParseWeekday(name string) (Weekday, bool) {
	name = strings.TrimSpace(name)
	for i, n := range weekdayNames {
		if strings.EqualFold(n, name) {
			return Weekday(i), true
		}
	}
	return 0, false
}

// String возвращает английское название дня
func (d Weekday) String() string {
	if d < 0 || int(d) >= WeekdayCount {
		return "Unknown"
	}
	return weekdayNames[d]
}

// Label возвращает подпись дня для отображения
func (d Weekday) Label() string {
	if d < 0 || int(d) >= WeekdayCount {
		return "?"
	}
	return weekdayLabels[d]
}

// AllWeekdays все колонки по порядку
func AllWeekdays() []Weekday {
	days := make([]Weekday, WeekdayCount)
	for i := range days {
		days[i] = Weekday(i)
	}
	return days
}
