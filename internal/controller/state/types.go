package state

// UserState представляет текущее состояние пользователя в диалоге
type UserState string

const (
	StateNone UserState = "" // Нет активного состояния

	// Ожидаем идентификатор сессии SAES после /sesion без аргумента
	StateAwaitingSession UserState = "awaiting_session"
	// Ожидаем список семестров после /semestres без аргумента
	StateAwaitingSemesters UserState = "awaiting_semesters"
)

// UserData хранит временные данные пользователя во время диалога
type UserData struct {
	State UserState
	Data  map[string]any // Временные данные для текущего диалога
}
