package common

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/Freeeeeet/horario_bot/internal/model"
	"github.com/Freeeeeet/horario_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// telegramStub запоминает вызванные методы Bot API
type telegramStub struct {
	mu      sync.Mutex
	methods []string
}

func (s *telegramStub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.methods = append(s.methods, r.URL.Path[strings.LastIndex(r.URL.Path, "/")+1:])
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"ok":true,"result":{"message_id":1,"date":0,"chat":{"id":42,"type":"private"}}}`))
}

func newTestBot(t *testing.T) (*bot.Bot, *telegramStub) {
	stub := &telegramStub{}
	srv := httptest.NewServer(stub)
	t.Cleanup(srv.Close)

	b, err := bot.New("123:test", bot.WithServerURL(srv.URL), bot.WithSkipGetMe())
	require.NoError(t, err)
	return b, stub
}

func newRenderService() *service.ScheduleService {
	return service.NewScheduleService(nil, nil, nil, nil, "", zap.NewNop())
}

func TestSendScreen_CourselessScheduleSendsCaptionOnly(t *testing.T) {
	b, stub := newTestBot(t)
	svc := newRenderService()

	screen := BuildSavedScreen(svc, &model.SavedSchedule{Title: "Horario 1"})
	err := SendScreen(context.Background(), b, svc, zap.NewNop(), 42, screen)
	require.NoError(t, err)

	assert.Equal(t, []string{"sendMessage"}, stub.methods)
	assert.Contains(t, screen.Caption, "no tiene materias")
}

func TestSendScreen_ScheduleWithCoursesSendsPhoto(t *testing.T) {
	b, stub := newTestBot(t)
	svc := newRenderService()

	screen := BuildSavedScreen(svc, &model.SavedSchedule{
		Title: "Horario 1",
		Schedule: model.Schedule{Courses: []model.Course{{
			Subject:     "REDES",
			Teacher:     "DIAZ",
			Occurrences: []model.Occurrence{{Day: "Monday", Start: "09:00", End: "10:30"}},
		}}},
	})
	err := SendScreen(context.Background(), b, svc, zap.NewNop(), 42, screen)
	require.NoError(t, err)

	assert.Equal(t, []string{"sendPhoto"}, stub.methods)
}
