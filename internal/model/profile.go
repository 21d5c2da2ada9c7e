package model

import "time"

// GenerationProfile параметры генерации расписаний пользователя
type GenerationProfile struct {
	UserID           int64     `json:"user_id"`
	Career           string    `json:"career" validate:"required"`
	CareerPlan       string    `json:"career_plan"`
	Semesters        []string  `json:"semesters" validate:"min=1,dive,required,numeric"`
	StartTime        string    `json:"start_time" validate:"required,hhmm"`
	EndTime          string    `json:"end_time" validate:"required,hhmm"`
	Length           int       `json:"length" validate:"gt=2"`
	Credits          int       `json:"credits" validate:"gt=0"`
	AvailableUses    int       `json:"available_uses" validate:"gt=0"`
	ExcludedTeachers []string  `json:"excluded_teachers"`
	ExcludedSubjects []string  `json:"excluded_subjects"`
	RequiredSubjects []string  `json:"required_subjects"`
	ExtraSubjects    []string  `json:"extra_subjects" validate:"dive,required,max=120"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// HasExclusions возвращает true если заданы исключения или обязательные предметы
func (p *GenerationProfile) HasExclusions() bool {
	return len(p.ExcludedTeachers)+len(p.ExcludedSubjects)+len(p.RequiredSubjects) > 0
}
