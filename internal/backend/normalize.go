package backend

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/Freeeeeet/horario_bot/internal/model"
	"github.com/Freeeeeet/horario_bot/internal/timetable"
)

// rawSchedule вариант расписания в том виде, в каком его отдаёт генератор
type rawSchedule struct {
	Courses          []rawCourse `json:"courses"`
	AvgPositiveScore *float64    `json:"avg_positive_score"`
	Popularity       *float64    `json:"popularity"`
	TotalCredits     float64     `json:"total_credits_required"`
}

// rawCourse курс с несогласованными именами полей
type rawCourse struct {
	ID                   json.RawMessage `json:"id"`
	Subject              string          `json:"subject"`
	Teacher              string          `json:"teacher"`
	Professor            string          `json:"professor"`
	Profesor             string          `json:"profesor"`
	Docente              string          `json:"docente"`
	Sequence             string          `json:"sequence"`
	CourseAvailability   int             `json:"course_availability"`
	TeacherPositiveScore *float64        `json:"teacher_positive_score"`
	TeacherPopularity    *float64        `json:"teacher_popularity"`
	RequiredCredits      float64         `json:"required_credits"`
	Schedule             json.RawMessage `json:"schedule"`
}

// rawSession элемент расписания курса в виде списка
type rawSession struct {
	Day       string `json:"day"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// DecodeSchedules разбирает JSON-массив расписаний генератора
func DecodeSchedules(data []byte) ([]model.Schedule, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil, nil
	}

	var raw []rawSchedule
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode schedules: %w", err)
	}

	schedules := make([]model.Schedule, 0, len(raw))
	for _, rs := range raw {
		schedules = append(schedules, normalizeSchedule(rs))
	}
	return schedules, nil
}

func normalizeSchedule(rs rawSchedule) model.Schedule {
	s := model.Schedule{
		Courses:      make([]model.Course, 0, len(rs.Courses)),
		TotalCredits: rs.TotalCredits,
	}
	switch {
	case rs.AvgPositiveScore != nil:
		s.Popularity = *rs.AvgPositiveScore
	case rs.Popularity != nil:
		s.Popularity = *rs.Popularity
	}
	for _, rc := range rs.Courses {
		s.Courses = append(s.Courses, normalizeCourse(rc))
	}
	return s
}

// normalizeCourse приводит курс к единому виду; после этого ядро
// видит только model.Course
func normalizeCourse(rc rawCourse) model.Course {
	c := model.Course{
		ID:              rawID(rc.ID),
		Subject:         strings.TrimSpace(rc.Subject),
		Teacher:         firstNonEmpty(rc.Teacher, rc.Professor, rc.Profesor, rc.Docente),
		Sequence:        strings.TrimSpace(rc.Sequence),
		Availability:    rc.CourseAvailability,
		RequiredCredits: rc.RequiredCredits,
		Occurrences:     decodeOccurrences(rc.Schedule),
	}
	switch {
	case rc.TeacherPositiveScore != nil:
		c.PositiveScore = *rc.TeacherPositiveScore
	case rc.TeacherPopularity != nil:
		c.PositiveScore = *rc.TeacherPopularity
	}
	return c
}

// decodeOccurrences понимает обе формы поля schedule:
// {"monday": ["13:00","15:00"], "tuesday": null} и
// [{"day": "Monday", "start_time": "13:00", "end_time": "15:00"}]
func decodeOccurrences(raw json.RawMessage) []model.Occurrence {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil
	}

	var occ []model.Occurrence
	switch raw[0] {
	case '{':
		var byDay map[string]json.RawMessage
		if err := json.Unmarshal(raw, &byDay); err != nil {
			return nil
		}
		for day, value := range byDay {
			var pair []string
			if err := json.Unmarshal(value, &pair); err != nil || len(pair) != 2 {
				continue
			}
			occ = append(occ, model.Occurrence{Day: day, Start: strings.TrimSpace(pair[0]), End: strings.TrimSpace(pair[1])})
		}
	case '[':
		var list []rawSession
		if err := json.Unmarshal(raw, &list); err != nil {
			return nil
		}
		for _, s := range list {
			if s.Day == "" {
				continue
			}
			occ = append(occ, model.Occurrence{Day: s.Day, Start: strings.TrimSpace(s.StartTime), End: strings.TrimSpace(s.EndTime)})
		}
	default:
		return nil
	}

	sort.SliceStable(occ, func(i, j int) bool {
		di, oki := timetable.ParseWeekday(occ[i].Day)
		dj, okj := timetable.ParseWeekday(occ[j].Day)
		switch {
		case oki && okj:
			return di < dj
		case oki != okj:
			return oki
		default:
			return occ[i].Day < occ[j].Day
		}
	})
	return occ
}

func rawID(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return strings.TrimSpace(string(raw))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
