package common

import (
	"fmt"
	"testing"

	"github.com/Freeeeeet/horario_bot/internal/service"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIndex(t *testing.T) {
	n, err := ParseIndex("gen:12", "gen:")
	require.NoError(t, err)
	assert.Equal(t, 12, n)

	for _, data := range []string{"gen:", "gen:-1", "gen:x", "sav:1"} {
		_, err := ParseIndex(data, "gen:")
		assert.ErrorIs(t, err, ErrInvalidFormat, data)
	}
}

func TestParseIndexPair(t *testing.T) {
	i, c, err := ParseIndexPair("ext:3:1", "ext:")
	require.NoError(t, err)
	assert.Equal(t, 3, i)
	assert.Equal(t, 1, c)

	for _, data := range []string{"ext:3", "ext:a:1", "ext:1:-2", "exs:1:1"} {
		_, _, err := ParseIndexPair(data, "ext:")
		assert.ErrorIs(t, err, ErrInvalidFormat, data)
	}
}

func TestParseUUID(t *testing.T) {
	id := uuid.New()

	got, err := ParseUUID("sav:"+id.String(), "sav:")
	require.NoError(t, err)
	assert.Equal(t, id, got)

	_, err = ParseUUID("sav:nope", "sav:")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestErrorMessage(t *testing.T) {
	assert.Contains(t, ErrorMessage(ErrUserNotFound), "/start")
	assert.Contains(t, ErrorMessage(fmt.Errorf("load: %w", service.ErrScheduleNotFound)), "/generar")
	assert.Equal(t, "❌ usa el formato HH:MM",
		ErrorMessage(fmt.Errorf("%w: usa el formato HH:MM", service.ErrInvalidInput)))
	assert.Equal(t, "❌ Ocurrió un error", ErrorMessage(assert.AnError))
}

func TestIsMessageNotModifiedError(t *testing.T) {
	assert.False(t, IsMessageNotModifiedError(nil))
	assert.True(t, IsMessageNotModifiedError(fmt.Errorf("bad request, Bad Request: message is not modified")))
}
