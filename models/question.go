package models

type QuestionType string

const (
	QuestionMultipleChoice QuestionType = "multiple_choice"
	QuestionMultiselect    QuestionType = "multiselect"
	QuestionShortText      QuestionType = "short_text"
	QuestionNumericScale   QuestionType = "numeric_scale"
)

func (t QuestionType) Valid() bool {
	switch t {
	case QuestionMultipleChoice, QuestionMultiselect, QuestionShortText, QuestionNumericScale:
		return true
	}
	return false
}

// IsChoice reports whether answers select from the question's options.
func (t QuestionType) IsChoice() bool {
	return t == QuestionMultipleChoice || t == QuestionMultiselect
}

type Question struct {
	ID            string       `gorm:"column:id;primaryKey;size:36" json:"id"`
	SurveyID      string       `gorm:"column:survey_id;size:36;index;not null" json:"survey_id"`
	Text          string       `gorm:"column:text;type:text;not null" json:"text"`
	Type          QuestionType `gorm:"column:type;size:50;not null" json:"type"`
	Position      int          `gorm:"column:position;default:0" json:"position"`
	AllowMultiple bool         `gorm:"column:allow_multiple;default:false" json:"allow_multiple"`
	Points        *int         `gorm:"column:points" json:"points"`
	Explanation   *string      `gorm:"column:explanation;type:text" json:"explanation"`

	Options []Option `gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE" json:"options"`
}

func (Question) TableName() string {
	return "questions"
}

func (q *Question) HasCorrectAnswer() bool {
	for _, opt := range q.Options {
		if opt.IsCorrect {
			return true
		}
	}
	return false
}

// CorrectOptionIDs returns the id set of options marked correct.
func (q *Question) CorrectOptionIDs() map[string]bool {
	ids := make(map[string]bool)
	for _, opt := range q.Options {
		if opt.IsCorrect {
			ids[opt.ID] = true
		}
	}
	return ids
}

// OptionIDs returns the id set of all options on the question.
func (q *Question) OptionIDs() map[string]bool {
	ids := make(map[string]bool, len(q.Options))
	for _, opt := range q.Options {
		ids[opt.ID] = true
	}
	return ids
}
