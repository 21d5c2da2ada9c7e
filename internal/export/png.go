package export

import (
	"bytes"
	"fmt"
	"image/color"
	"sync"

	"github.com/Freeeeeet/horario_bot/internal/timetable"
	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// FontStyle определяет стиль шрифта
type FontStyle string

const (
	FontStyleDefault FontStyle = ""
	FontStyleBold    FontStyle = "bold"
)

// Константы размеров и отступов
const (
	headerHeight    = 56
	hourColumnWidth = 84
	dayColumnWidth  = 210
	rowHeight       = 34
	imagePadding    = 16
	cellPadding     = 4.0
	cellRadius      = 6.0
)

// Константы шрифтов
const (
	dayFontSize     = 20.0
	hourFontSize    = 15.0
	subjectFontSize = 13.0
	detailFontSize  = 12.0
)

// Цветовая схема
var (
	bgColor        = color.RGBA{245, 246, 248, 255}
	headerBgColor  = color.RGBA{33, 37, 41, 255}
	headerTextClr  = color.RGBA{255, 255, 255, 255}
	hourLabelColor = color.RGBA{110, 115, 120, 255}
	gridLineColor  = color.NRGBA{200, 200, 200, 255}
	evenDayColor   = color.NRGBA{252, 252, 252, 255}
	oddDayColor    = color.NRGBA{240, 241, 243, 255}
)

var (
	fontsOnce   sync.Once
	parsedFonts map[FontStyle]*opentype.Font
)

func parseFonts() {
	parsedFonts = make(map[FontStyle]*opentype.Font, 2)
	if f, err := opentype.Parse(goregular.TTF); err == nil {
		parsedFonts[FontStyleDefault] = f
	}
	if f, err := opentype.Parse(gobold.TTF); err == nil {
		parsedFonts[FontStyleBold] = f
	}
}

// loadFont выставляет шрифт нужного размера или basicfont как fallback
func loadFont(dc *gg.Context, size float64, style FontStyle) {
	fontsOnce.Do(parseFonts)

	parsed, ok := parsedFonts[style]
	if !ok {
		parsed, ok = parsedFonts[FontStyleDefault]
	}
	if ok {
		face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
			Size:    size,
			DPI:     72,
			Hinting: font.HintingFull,
		})
		if err == nil {
			dc.SetFontFace(face)
			return
		}
	}
	dc.SetFontFace(basicfont.Face7x13)
}

// PNG рисует таблицу расписания и кодирует её в PNG
func PNG(m timetable.RenderModel) ([]byte, error) {
	days := len(m.Days)
	width := imagePadding*2 + hourColumnWidth + days*dayColumnWidth

	height := imagePadding*2 + headerHeight + len(m.Rows)*rowHeight
	dc := createCanvas(width, height)

	drawDayBackgrounds(dc, days, len(m.Rows))
	drawDayHeaders(dc, m.Days)
	drawHourLabels(dc, m.Rows)
	drawGridLines(dc, days, len(m.Rows))

	column := make(map[timetable.Weekday]int, days)
	for i, d := range m.Days {
		column[d] = i
	}
	for _, cell := range m.Sessions() {
		drawSession(dc, cell, column[cell.Day], cell.Slot-m.FirstRow)
	}

	return encodeImage(dc)
}

// createCanvas создает новый контекст рисования с фоном
func createCanvas(width, height int) *gg.Context {
	dc := gg.NewContext(width, height)
	dc.SetColor(bgColor)
	dc.Clear()
	return dc
}

func columnX(col int) float64 {
	return float64(imagePadding + hourColumnWidth + col*dayColumnWidth)
}

func rowY(row int) float64 {
	return float64(imagePadding + headerHeight + row*rowHeight)
}

// drawDayHeaders рисует строку с названиями дней
func drawDayHeaders(dc *gg.Context, days []timetable.Weekday) {
	dc.SetColor(headerBgColor)
	dc.DrawRoundedRectangle(imagePadding, imagePadding, float64(hourColumnWidth+len(days)*dayColumnWidth), headerHeight, cellRadius)
	dc.Fill()

	loadFont(dc, dayFontSize, FontStyleBold)
	dc.SetColor(headerTextClr)
	dc.DrawStringAnchored("Hora", imagePadding+hourColumnWidth/2, imagePadding+headerHeight/2, 0.5, 0.35)
	for i, d := range days {
		dc.DrawStringAnchored(d.Label(), columnX(i)+dayColumnWidth/2, imagePadding+headerHeight/2, 0.5, 0.35)
	}
}

// drawDayBackgrounds чередует фон колонок
func drawDayBackgrounds(dc *gg.Context, days, rows int) {
	for i := 0; i < days; i++ {
		if i%2 == 0 {
			dc.SetColor(evenDayColor)
		} else {
			dc.SetColor(oddDayColor)
		}
		dc.DrawRectangle(columnX(i), rowY(0), dayColumnWidth, float64(rows*rowHeight))
		dc.Fill()
	}
}

// drawHourLabels рисует колонку с отметками времени слева
func drawHourLabels(dc *gg.Context, rows []timetable.Row) {
	loadFont(dc, hourFontSize, FontStyleDefault)
	dc.SetColor(hourLabelColor)
	for i, row := range rows {
		dc.DrawStringAnchored(row.Time, imagePadding+hourColumnWidth/2, rowY(i)+rowHeight/2, 0.5, 0.35)
	}
}

// drawGridLines рисует горизонтальные и вертикальные линии сетки
func drawGridLines(dc *gg.Context, days, rows int) {
	dc.SetLineWidth(0.5)
	dc.SetColor(gridLineColor)

	right := columnX(days)
	for r := 0; r <= rows; r++ {
		dc.DrawLine(imagePadding, rowY(r), right, rowY(r))
		dc.Stroke()
	}
	for c := 0; c <= days; c++ {
		dc.DrawLine(columnX(c), rowY(0), columnX(c), rowY(rows))
		dc.Stroke()
	}
}

// drawSession рисует объединённый блок занятия высотой RowSpan строк
func drawSession(dc *gg.Context, cell timetable.Cell, col, row int) {
	x := columnX(col) + cellPadding
	y := rowY(row) + cellPadding
	w := float64(dayColumnWidth) - cellPadding*2
	h := float64(cell.RowSpan*rowHeight) - cellPadding*2
	if h < rowHeight/2 {
		h = rowHeight / 2
	}

	fill := cell.Color.Fill
	if fill.A == 0 {
		fill = color.RGBA{220, 220, 220, 255}
	}
	dc.SetColor(fill)
	dc.DrawRoundedRectangle(x, y, w, h, cellRadius)
	dc.Fill()

	dc.SetColor(darkenColor(fill, 0.8))
	dc.SetLineWidth(1)
	dc.DrawRoundedRectangle(x, y, w, h, cellRadius)
	dc.Stroke()

	ink := cell.Color.Ink
	if ink.A == 0 {
		ink = color.RGBA{20, 24, 28, 255}
	}

	cx := x + w/2
	ty := y + 6

	loadFont(dc, subjectFontSize, FontStyleBold)
	dc.SetColor(ink)
	lines := dc.WordWrap(cell.Subject, w-8)
	if len(lines) > 2 {
		lines = append(lines[:2], "…")
	}
	for _, line := range lines {
		dc.DrawStringAnchored(line, cx, ty, 0.5, 1)
		ty += subjectFontSize + 2
	}

	details := []string{
		cell.Sequence,
		cell.Teacher,
		fmt.Sprintf("%.2f", cell.PositiveScore),
		fmt.Sprintf("Lugares: %d", cell.Availability),
	}
	loadFont(dc, detailFontSize, FontStyleDefault)
	for _, d := range details {
		if ty+detailFontSize > y+h {
			break
		}
		dc.DrawStringAnchored(truncate(dc, d, w-8), cx, ty, 0.5, 1)
		ty += detailFontSize + 2
	}
}

// truncate обрезает строку по ширине с многоточием
func truncate(dc *gg.Context, s string, width float64) string {
	if w, _ := dc.MeasureString(s); w <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 1 {
		runes = runes[:len(runes)-1]
		candidate := string(runes) + "…"
		if w, _ := dc.MeasureString(candidate); w <= width {
			return candidate
		}
	}
	return s
}

// darkenColor затемняет цвет на указанный множитель
func darkenColor(c color.RGBA, factor float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * factor),
		G: uint8(float64(c.G) * factor),
		B: uint8(float64(c.B) * factor),
		A: c.A,
	}
}

// encodeImage кодирует изображение в PNG
func encodeImage(dc *gg.Context) ([]byte, error) {
	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
