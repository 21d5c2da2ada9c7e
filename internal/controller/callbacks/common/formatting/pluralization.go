package formatting

// PluralizeSchedules возвращает форму слова "horario" для количества
func PluralizeSchedules(count int) string {
	if count == 1 {
		return "horario"
	}
	return "horarios"
}

// PluralizeSubjects возвращает форму слова "materia" для количества
func PluralizeSubjects(count int) string {
	if count == 1 {
		return "materia"
	}
	return "materias"
}
