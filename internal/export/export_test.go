package export

import (
	"bytes"
	"image/png"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/Freeeeeet/horario_bot/internal/model"
	"github.com/Freeeeeet/horario_bot/internal/timetable"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderModel(courses []model.Course) timetable.RenderModel {
	layout := timetable.BuildGrid(courses, timetable.WithRand(rand.New(rand.NewPCG(1, 2))))
	return timetable.Render(layout)
}

func sampleModel() timetable.RenderModel {
	return renderModel([]model.Course{
		{
			Subject:       "ESTADÍSTICA",
			Teacher:       "PEREZ ALTAMIRANO ERIC",
			Sequence:      "4CM41",
			Availability:  40,
			PositiveScore: 0.82,
			Occurrences: []model.Occurrence{
				{Day: "Wednesday", Start: "11:00", End: "13:00"},
				{Day: "Friday", Start: "11:00", End: "13:00"},
			},
		},
		{
			Subject:  "REDES",
			Teacher:  "DIAZ",
			Sequence: "4CM40",
			Occurrences: []model.Occurrence{
				{Day: "Saturday", Start: "09:00", End: "10:00"},
			},
		},
	})
}

func TestPNG_Dimensions(t *testing.T) {
	m := sampleModel()

	data, err := PNG(m)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)

	bounds := img.Bounds()
	assert.Equal(t, imagePadding*2+hourColumnWidth+len(m.Days)*dayColumnWidth, bounds.Dx())
	assert.Equal(t, imagePadding*2+headerHeight+len(m.Rows)*rowHeight, bounds.Dy())
}

func TestPNG_EmptyModelDrawsSingleRow(t *testing.T) {
	m := renderModel(nil)
	require.Len(t, m.Rows, 1)

	data, err := PNG(m)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, imagePadding*2+headerHeight+rowHeight, img.Bounds().Dy())
	assert.Equal(t, imagePadding*2+hourColumnWidth+5*dayColumnWidth, img.Bounds().Dx())
}

func TestText_ContainsSessionsAndDays(t *testing.T) {
	out := Text(sampleModel())

	assert.Contains(t, out, "Sábado")
	assert.Contains(t, out, "Miércoles")
	assert.Contains(t, out, "ESTADÍSTICA")
	assert.Contains(t, out, "4CM41 PEREZ")
	assert.Contains(t, out, "08:30")
	assert.Equal(t, 2, strings.Count(out, "ESTADÍSTICA"))
}

func TestText_EmptyModelDrawsSingleRow(t *testing.T) {
	out := Text(renderModel([]model.Course{}))

	assert.Contains(t, out, "Lunes")
	assert.Contains(t, out, "07:00")
	assert.NotContains(t, out, "07:30")
	assert.NotContains(t, out, "Sábado")
}

func TestText_UnresolvableCoursesDrawSingleRow(t *testing.T) {
	m := renderModel([]model.Course{
		{
			Subject: "ÁLGEBRA",
			Teacher: "LOPEZ",
			Occurrences: []model.Occurrence{
				{Day: "Sunday", Start: "07:00", End: "09:00"},
			},
		},
	})
	require.True(t, m.Empty())
	require.Len(t, m.Rows, 1)

	out := Text(m)

	assert.Contains(t, out, "07:00")
	assert.NotContains(t, out, "ÁLGEBRA")
	assert.Equal(t, 2, strings.Count(strings.TrimRight(out, "\n"), "\n")+1, "header and one row")
}

func TestClip(t *testing.T) {
	assert.Equal(t, "abc", clip("abc", 5))
	assert.Equal(t, "abcd…", clip("abcdefgh", 5))
}
