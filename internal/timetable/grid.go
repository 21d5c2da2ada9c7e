package timetable

import (
	"math/rand/v2"
	"time"

	"github.com/Freeeeeet/horario_bot/internal/model"
)

// SessionKey идентичность занятия для общего цвета.
// День недели в ключ не входит: один и тот же предмет в одно и то же время
// в разные дни получает один цвет.
type SessionKey struct {
	Subject string
	Teacher string
	Start   string
	End     string
}

// Session содержимое клетки сетки
type Session struct {
	Day           Weekday
	Start         string
	End           string
	Teacher       string
	Subject       string
	Sequence      string
	PositiveScore float64
	Availability  int
	Key           SessionKey
}

// SessionMeta атрибуты занятия, общие для всех его дней
type SessionMeta struct {
	Color Color
}

// Grid плотная матрица [отметка времени][день]; nil - пустая клетка
type Grid [SlotCount][WeekdayCount]*Session

// Layout результат BuildGrid
type Layout struct {
	Grid Grid
	Meta map[SessionKey]SessionMeta
}

type buildConfig struct {
	palette []Color
	rnd     *rand.Rand
}

// BuildOption настройка BuildGrid
type BuildOption func(*buildConfig)

// WithPalette задаёт палитру вместо DefaultPalette
func WithPalette(palette []Color) BuildOption {
	return func(c *buildConfig) {
		c.palette = palette
	}
}

// WithRand задаёт источник случайности (для детерминированных тестов)
func WithRand(rnd *rand.Rand) BuildOption {
	return func(c *buildConfig) {
		c.rnd = rnd
	}
}

// BuildGrid раскладывает курсы по сетке и назначает цвета занятиям.
// Неразрешимые занятия (неизвестный день или время) пропускаются молча,
// пересекающиеся клетки перезаписываются последним курсом.
func BuildGrid(courses []model.Course, opts ...BuildOption) Layout {
	cfg := buildConfig{palette: DefaultPalette}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.rnd == nil {
		seed := uint64(time.Now().UnixNano())
		cfg.rnd = rand.New(rand.NewPCG(seed, seed>>1|1))
	}

	layout := Layout{Meta: make(map[SessionKey]SessionMeta)}
	picker := newColorPicker(cfg.palette, cfg.rnd)

	for _, course := range courses {
		c := picker.pick()

		for _, occ := range course.Occurrences {
			day, ok := ParseWeekday(occ.Day)
			if !ok {
				continue
			}
			startRow, ok := SlotIndex(occ.Start)
			if !ok {
				continue
			}
			endRow, ok := SlotIndex(occ.End)
			if !ok {
				continue
			}

			key := SessionKey{
				Subject: course.Subject,
				Teacher: course.Teacher,
				Start:   occ.Start,
				End:     occ.End,
			}

			for row := startRow; row < endRow; row++ {
				layout.Grid[row][day] = &Session{
					Day:           day,
					Start:         occ.Start,
					End:           occ.End,
					Teacher:       course.Teacher,
					Subject:       course.Subject,
					Sequence:      course.Sequence,
					PositiveScore: course.PositiveScore,
					Availability:  course.Availability,
					Key:           key,
				}
			}

			layout.Meta[key] = SessionMeta{Color: c}
		}
	}

	return layout
}

// rowOccupied возвращает true если в строке есть хотя бы одно занятие
func (g *Grid) rowOccupied(row int) bool {
	for _, cell := range g[row] {
		if cell != nil {
			return true
		}
	}
	return false
}

// dayOccupied возвращает true если в колонке есть хотя бы одно занятие
func (g *Grid) dayOccupied(day Weekday) bool {
	for row := range g {
		if g[row][day] != nil {
			return true
		}
	}
	return false
}
