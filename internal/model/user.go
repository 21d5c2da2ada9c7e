package model

import "time"

type User struct {
	ID            int64     `json:"id"`
	TelegramID    int64     `json:"telegram_id"`
	Username      string    `json:"username"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	LanguageCode  string    `json:"language_code"`
	SAESSessionID string    `json:"saes_session_id"` // сессия портала SAES, без неё генератор не работает
	CreatedAt     time.Time `json:"created_at"`
}

// HasSession возвращает true если пользователь передал сессию SAES
func (u *User) HasSession() bool {
	return u != nil && u.SAESSessionID != ""
}
