package timetable

import (
	"image/color"
	"math/rand/v2"
)

// Color цвет блока занятия: CSS-классы для веба и RGBA для экспорта в картинку
type Color struct {
	Name       string
	Background string
	Text       string
	Fill       color.RGBA
	Ink        color.RGBA
}

var (
	inkWhite = color.RGBA{255, 255, 255, 255}
	inkBlack = color.RGBA{20, 24, 28, 255}
)

// DefaultPalette 12 цветов, из которых выбираются цвета занятий
var DefaultPalette = []Color{
	{Name: "primary", Background: "bg-primary", Text: "text-white", Fill: color.RGBA{13, 110, 253, 255}, Ink: inkWhite},
	{Name: "secondary", Background: "bg-secondary", Text: "text-white", Fill: color.RGBA{108, 117, 125, 255}, Ink: inkWhite},
	{Name: "success", Background: "bg-success", Text: "text-black", Fill: color.RGBA{25, 135, 84, 255}, Ink: inkBlack},
	{Name: "danger", Background: "bg-danger", Text: "text-white", Fill: color.RGBA{220, 53, 69, 255}, Ink: inkWhite},
	{Name: "warning", Background: "bg-warning", Text: "text-black", Fill: color.RGBA{255, 193, 7, 255}, Ink: inkBlack},
	{Name: "info", Background: "bg-info", Text: "text-white", Fill: color.RGBA{13, 202, 240, 255}, Ink: inkWhite},
	{Name: "light", Background: "bg-light", Text: "text-black", Fill: color.RGBA{248, 249, 250, 255}, Ink: inkBlack},
	{Name: "dark", Background: "bg-dark", Text: "text-white", Fill: color.RGBA{33, 37, 41, 255}, Ink: inkWhite},
	{Name: "success-subtle", Background: "bg-success-subtle", Text: "text-success-emphasis", Fill: color.RGBA{209, 231, 221, 255}, Ink: color.RGBA{10, 54, 34, 255}},
	{Name: "danger-subtle", Background: "bg-danger-subtle", Text: "text-danger-emphasis", Fill: color.RGBA{248, 215, 218, 255}, Ink: color.RGBA{88, 21, 28, 255}},
	{Name: "warning-subtle", Background: "bg-warning-subtle", Text: "text-warning-emphasis", Fill: color.RGBA{255, 243, 205, 255}, Ink: color.RGBA{102, 77, 3, 255}},
	{Name: "info-subtle", Background: "bg-info-subtle", Text: "text-info-emphasis", Fill: color.RGBA{207, 244, 252, 255}, Ink: color.RGBA{5, 81, 96, 255}},
}

// colorPicker состояние выбора цветов в пределах одного вызова BuildGrid
type colorPicker struct {
	palette []Color
	used    map[int]struct{}
	rnd     *rand.Rand
}

func newColorPicker(palette []Color, rnd *rand.Rand) *colorPicker {
	return &colorPicker{
		palette: palette,
		used:    make(map[int]struct{}, len(palette)),
		rnd:     rnd,
	}
}

// pick выбирает случайный неиспользованный цвет.
// Когда свободных не осталось, набор использованных сбрасывается.
func (p *colorPicker) pick() Color {
	if len(p.palette) == 0 {
		return Color{}
	}
	if len(p.used) >= len(p.palette) {
		clear(p.used)
	}

	free := make([]int, 0, len(p.palette)-len(p.used))
	for i := range p.palette {
		if _, ok := p.used[i]; !ok {
			free = append(free, i)
		}
	}

	idx := free[p.rnd.IntN(len(free))]
	p.used[idx] = struct{}{}
	return p.palette[idx]
}
