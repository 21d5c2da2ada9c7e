package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCommandArgs(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"no args", "/perfil", []string{}},
		{"with bot name", "/horas@horario_bot 08:00 14:00", []string{"08:00", "14:00"}},
		{"extra spaces", "/carrera   C   20 ", []string{"C", "20"}},
		{"plain text", "3 4", []string{"3", "4"}},
		{"empty", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := commandArgs(tt.text)
			if len(tt.want) == 0 {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSingleInt(t *testing.T) {
	n, ok := singleInt("/materias 6")
	assert.True(t, ok)
	assert.Equal(t, 6, n)

	_, ok = singleInt("/materias seis")
	assert.False(t, ok)

	_, ok = singleInt("/materias 6 7")
	assert.False(t, ok)

	_, ok = singleInt("/materias")
	assert.False(t, ok)
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"3", "4", "5"}, splitList("3, 4 5"))
	assert.Equal(t, []string{"1", "2"}, splitList("1;2\n"))
	assert.Empty(t, splitList(" , "))
}

func TestSemesterArgs_AcceptsCommas(t *testing.T) {
	assert.Equal(t, []string{"3", "4"}, semesterArgs(commandArgs("/semestres 3,4")))
	assert.Equal(t, []string{"3", "4", "5"}, semesterArgs(commandArgs("/semestres 3, 4 5")))
}

func TestParseExtras(t *testing.T) {
	assert.Equal(t, []string{"INGLÉS IV", " ÉTICA"}, parseExtras(commandArgs("/extras INGLÉS IV; ÉTICA")))
	assert.Equal(t, []string{"REDES"}, parseExtras(commandArgs("/extras REDES")))
	assert.Nil(t, parseExtras(commandArgs("/extras -")))
}
