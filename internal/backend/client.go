package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Freeeeeet/horario_bot/internal/model"
	"go.uber.org/zap"
)

// Ошибки генератора расписаний
var (
	ErrValidation     = errors.New("generator rejected parameters")
	ErrSessionExpired = errors.New("saes session not found or expired")
	ErrUnavailable    = errors.New("generator is unavailable")
)

const sessionExpiredDetail = "sesion no encontrada o expirada"

// DownloadRequest запрос на выгрузку данных карьеры из SAES
type DownloadRequest struct {
	SessionID  string `json:"session_id"`
	Career     string `json:"career"`
	CareerPlan string `json:"career_plan,omitempty"`
	PlanPeriod []int  `json:"plan_period"`
}

// GenerateRequest параметры генерации расписаний
type GenerateRequest struct {
	Career           string   `json:"career"`
	Levels           []string `json:"levels"`
	Semesters        []string `json:"semesters"`
	StartTime        string   `json:"start_time"`
	EndTime          string   `json:"end_time"`
	Length           int      `json:"length"`
	Credits          int      `json:"credits"`
	AvailableUses    int      `json:"available_uses"`
	ExcludedTeachers []string `json:"excluded_teachers"`
	ExcludedSubjects []string `json:"excluded_subjects"`
	RequiredSubjects []string `json:"required_subjects"`
	ExtraSubjects    []string `json:"extra_subjects"`
	Shifts           []string `json:"shifts"`
}

// StatusError ответ генератора с неожиданным статусом
type StatusError struct {
	StatusCode int
	Detail     string
}

func (e *StatusError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("generator responded with status %d", e.StatusCode)
	}
	return fmt.Sprintf("generator responded with status %d: %s", e.StatusCode, e.Detail)
}

// Client HTTP-клиент сервиса генерации расписаний
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient создаёт клиент генератора
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Download просит генератор выгрузить данные карьеры для сессии SAES
func (c *Client) Download(ctx context.Context, req DownloadRequest) error {
	_, err := c.post(ctx, "/schedules/download", req)
	return err
}

// Generate запрашивает варианты расписаний, уже отсортированные генератором
func (c *Client) Generate(ctx context.Context, req GenerateRequest) ([]model.Schedule, error) {
	body, err := c.post(ctx, "/schedules/", req)
	if err != nil {
		return nil, err
	}

	schedules, err := DecodeSchedules(body)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("Schedules generated",
		zap.String("career", req.Career),
		zap.Int("count", len(schedules)))

	return schedules, nil
}

func (c *Client) post(ctx context.Context, path string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", ErrUnavailable, err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return body, nil
	}

	detail := errorDetail(body)
	c.logger.Warn("Generator request failed",
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.String("detail", detail))

	switch {
	case resp.StatusCode == http.StatusUnauthorized,
		strings.Contains(strings.ToLower(detail), sessionExpiredDetail):
		return nil, fmt.Errorf("%w: %s", ErrSessionExpired, detail)
	case resp.StatusCode == http.StatusUnprocessableEntity:
		return nil, fmt.Errorf("%w: %s", ErrValidation, detail)
	default:
		return nil, &StatusError{StatusCode: resp.StatusCode, Detail: detail}
	}
}

// errorDetail достаёт поле detail из ответа об ошибке.
// FastAPI отдаёт detail строкой или списком ошибок валидации.
func errorDetail(body []byte) string {
	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || len(payload.Detail) == 0 {
		return strings.TrimSpace(string(body))
	}

	var s string
	if err := json.Unmarshal(payload.Detail, &s); err == nil {
		return s
	}

	var items []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(payload.Detail, &items); err == nil {
		msgs := make([]string, 0, len(items))
		for _, it := range items {
			if it.Msg != "" {
				msgs = append(msgs, it.Msg)
			}
		}
		return strings.Join(msgs, "; ")
	}

	return string(payload.Detail)
}
