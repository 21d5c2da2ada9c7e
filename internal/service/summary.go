package service

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Freeeeeet/horario_bot/internal/model"
)

// GenerationStatus итог генерации
type GenerationStatus string

const (
	StatusSuccess        GenerationStatus = "success"
	StatusEmpty          GenerationStatus = "empty"
	StatusError          GenerationStatus = "error"
	StatusSessionExpired GenerationStatus = "session_expired"
)

// GenerationSummary объяснение результата генерации для пользователя
type GenerationSummary struct {
	Status      GenerationStatus
	Count       int
	Message     string
	Reasons     []string
	Suggestions []string
}

// Success возвращает true если получен хотя бы один вариант
func (s GenerationSummary) Success() bool {
	return s.Status == StatusSuccess
}

const (
	msgMissingData = "Faltan datos mínimos para generar el horario (carrera o semestres)."
	msgGenerated   = "Se generaron %d horarios válidos."
	msgNoResults   = "No se pudieron generar horarios con los parámetros actuales."
	msgFailed      = "Ocurrió un problema al generar los horarios."
)

// missingDataSummary профиль без карьеры или семестров
func missingDataSummary() GenerationSummary {
	return GenerationSummary{
		Status:      StatusEmpty,
		Message:     msgMissingData,
		Reasons:     []string{msgMissingData},
		Suggestions: []string{"Usa /carrera y /semestres para elegir tu carrera y al menos un semestre antes de generar."},
	}
}

// invalidProfileSummary профиль не прошёл проверку по другим полям
func invalidProfileSummary(fields []string) GenerationSummary {
	return GenerationSummary{
		Status:      StatusError,
		Message:     msgFailed,
		Reasons:     []string{"Algunos parámetros del perfil no son válidos: " + strings.Join(fields, ", ") + "."},
		Suggestions: []string{"Revisa tu perfil con /perfil y corrige los valores indicados."},
	}
}

// BuildSummary объясняет результат генерации по параметрам профиля.
// При пустом результате перечисляет вероятные причины и что поменять.
func BuildSummary(p *model.GenerationProfile, count int) GenerationSummary {
	if count > 0 {
		return GenerationSummary{
			Status:  StatusSuccess,
			Count:   count,
			Message: fmt.Sprintf(msgGenerated, count),
			Suggestions: []string{
				"Si quieres explorar otras combinaciones, ajusta el número de materias, créditos o el rango de horas y vuelve a generar.",
			},
		}
	}

	reasons := []string{
		"No se encontró ninguna combinación de materias que cumpliera con todos los filtros actuales (semestres, horas, número de materias, créditos y exclusiones).",
	}
	var suggestions []string

	if p.Length >= 7 {
		reasons = append(reasons, fmt.Sprintf(
			"Solicitaste un horario con %d materias. Con las materias y grupos disponibles es probable que no existan tantas sin empalmes.", p.Length))
		suggestions = append(suggestions, "Intenta pedir menos materias (por ejemplo 4, 5 o 6) y vuelve a generar.")
	}

	if p.Credits >= 120 {
		reasons = append(reasons, fmt.Sprintf(
			"El objetivo de créditos (%d) es alto para los semestres seleccionados.", p.Credits))
		suggestions = append(suggestions, "Reduce el total de créditos objetivo o disminuye el número de materias.")
	}

	if len(p.Semesters) == 1 {
		reasons = append(reasons, fmt.Sprintf(
			"Solo se está usando el semestre/período %s.", strings.Join(p.Semesters, ", ")))
		suggestions = append(suggestions, "Si tu mapa curricular lo permite, prueba seleccionando más de un semestre o período.")
	}

	if len(p.ExcludedTeachers)+len(p.ExcludedSubjects) > 0 {
		reasons = append(reasons, "Se están excluyendo varios profesores o asignaturas, lo que reduce mucho las combinaciones posibles.")
		suggestions = append(suggestions, "Prueba quitando algunas exclusiones de profesores o asignaturas para ampliar las opciones.")
	}

	if len(p.RequiredSubjects) > 0 {
		reasons = append(reasons, "Hay materias marcadas como obligatorias; puede que estas se empalmen entre sí o con otras asignaturas.")
		suggestions = append(suggestions, "Intenta quitar una o más materias obligatorias y vuelve a generar el horario.")
	}

	if window, ok := hourWindow(p.StartTime, p.EndTime); ok && window <= 8 {
		reasons = append(reasons, "El rango de horas permitido para tomar clases es relativamente corto.")
		suggestions = append(suggestions, "Amplía el rango horario (por ejemplo hasta las 20:00 o 22:00) para que entren más combinaciones de materias.")
	}

	if len(suggestions) == 0 {
		suggestions = append(suggestions, "Prueba generando con menos materias, ajustando créditos o ampliando el horario disponible.")
	}

	return GenerationSummary{
		Status:      StatusEmpty,
		Message:     msgNoResults,
		Reasons:     reasons,
		Suggestions: suggestions,
	}
}

// hourWindow разница в целых часах между началом и концом
func hourWindow(start, end string) (int, bool) {
	if len(start) < 2 || len(end) < 2 {
		return 0, false
	}
	from, err := strconv.Atoi(start[:2])
	if err != nil {
		return 0, false
	}
	to, err := strconv.Atoi(end[:2])
	if err != nil {
		return 0, false
	}
	return to - from, true
}

// errorSummary объяснение ошибки генератора по её виду
func errorSummary(kind errorKind) GenerationSummary {
	s := GenerationSummary{Status: StatusError, Message: msgFailed}

	switch kind {
	case kindValidation:
		s.Reasons = []string{"El servidor rechazó algunos parámetros (error de validación 422)."}
		s.Suggestions = []string{"Verifica que el número de materias sea mayor a 2 y los créditos mayores a 0."}
	case kindSessionExpired:
		s.Status = StatusSessionExpired
		s.Reasons = []string{"La sesión con SAES no se encontró o ha expirado."}
		s.Suggestions = []string{"Vuelve a iniciar sesión en SAES y envía tu nueva sesión con /sesion."}
	case kindNoSession:
		s.Status = StatusSessionExpired
		s.Reasons = []string{"No se encontró la sesión activa de SAES."}
		s.Suggestions = []string{"Envía tu sesión de SAES con /sesion antes de generar horarios."}
	case kindUnavailable:
		s.Reasons = []string{"No se pudo contactar al servidor de horarios."}
		s.Suggestions = []string{"Intenta de nuevo en unos minutos, el servicio de horarios no responde."}
	default:
		s.Reasons = []string{"Ocurrió un error inesperado al generar el horario."}
		s.Suggestions = []string{"Intenta de nuevo en unos minutos. Si el problema sigue, vuelve a iniciar sesión y repite el proceso."}
	}

	return s
}
