package model

// Occurrence одно еженедельное занятие курса: день недели и интервал [Start, End)
type Occurrence struct {
	Day   string `json:"day"`   // английское название дня, как его присылает генератор
	Start string `json:"start"` // HH:MM
	End   string `json:"end"`   // HH:MM
}

// Course один курс (группа) в сгенерированном расписании
type Course struct {
	ID              string       `json:"id,omitempty"`
	Subject         string       `json:"subject"`
	Teacher         string       `json:"teacher"`
	Sequence        string       `json:"sequence"`
	Availability    int          `json:"course_availability"`
	PositiveScore   float64      `json:"teacher_positive_score"`
	RequiredCredits float64      `json:"required_credits,omitempty"`
	Occurrences     []Occurrence `json:"occurrences"`
}

// Schedule один вариант расписания, полученный от генератора
type Schedule struct {
	Courses      []Course `json:"courses"`
	Popularity   float64  `json:"popularity"`
	TotalCredits float64  `json:"total_credits_required"`
}

// IsEmpty возвращает true если в расписании нет курсов
func (s *Schedule) IsEmpty() bool {
	return s == nil || len(s.Courses) == 0
}
