package models

import "time"

type SurveyType string

const (
	SurveyOpinion SurveyType = "opinion"
	SurveyQuiz    SurveyType = "quiz"
	SurveyMixed   SurveyType = "mixed"
)

func (t SurveyType) Valid() bool {
	switch t {
	case SurveyOpinion, SurveyQuiz, SurveyMixed:
		return true
	}
	return false
}

type Survey struct {
	ID               string     `gorm:"column:id;primaryKey;size:36" json:"id"`
	Title            string     `gorm:"column:title;size:255;not null" json:"title"`
	Type             SurveyType `gorm:"column:type;size:20;not null" json:"type"`
	MinScore         *int       `gorm:"column:min_score" json:"min_score"`
	MaxAttempts      *int       `gorm:"column:max_attempts" json:"max_attempts"`
	TimeLimitMinutes *int       `gorm:"column:time_limit_minutes" json:"time_limit_minutes"`
	CreatedAt        time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	// Questions keep their presentation order via Position.
	Questions []Question `gorm:"foreignKey:SurveyID;constraint:OnDelete:CASCADE" json:"questions"`
}

func (Survey) TableName() string {
	return "surveys"
}

// RequiresScore reports whether responses to this survey get a computed score.
func (s *Survey) RequiresScore() bool {
	return s.Type == SurveyQuiz || s.Type == SurveyMixed
}

// QuestionByID looks a question up in the survey's own question list.
func (s *Survey) QuestionByID(id string) *Question {
	for i := range s.Questions {
		if s.Questions[i].ID == id {
			return &s.Questions[i]
		}
	}
	return nil
}
