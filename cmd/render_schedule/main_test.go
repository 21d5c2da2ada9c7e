package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Freeeeeet/horario_bot/internal/model"
	"github.com/Freeeeeet/horario_bot/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testContext() *Context {
	schedules := []model.Schedule{
		{Courses: []model.Course{{
			Subject:     "REDES",
			Teacher:     "DIAZ",
			Occurrences: []model.Occurrence{{Day: "Monday", Start: "09:00", End: "10:30"}},
		}}},
		{},
	}
	return &Context{
		Schedules: schedules,
		Service:   service.NewScheduleService(nil, nil, nil, nil, "", zap.NewNop()),
		Logger:    zap.NewNop(),
	}
}

func TestAllCmd_WritesEverySchedule(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")

	cmd := &AllCmd{Dir: dir}
	require.NoError(t, cmd.Run(testContext()))

	for _, name := range []string{"horario_01.png", "horario_02.png"} {
		data, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err, name)
		assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, data[:4], name)
	}
}

func TestRenderCmd_IndexOutOfRange(t *testing.T) {
	cmd := &RenderCmd{Index: 3, Format: "text"}
	assert.Error(t, cmd.Run(testContext()))
}

func TestRenderCmd_WritesPNG(t *testing.T) {
	out := filepath.Join(t.TempDir(), "horario.png")

	cmd := &RenderCmd{Index: 1, Format: "png", Out: out}
	require.NoError(t, cmd.Run(testContext()))

	info, err := os.Stat(out)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}
