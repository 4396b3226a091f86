package models

import "time"

type Response struct {
	ID          string     `gorm:"column:id;primaryKey;size:36" json:"id"`
	SurveyID    string     `gorm:"column:survey_id;size:36;index;not null" json:"survey_id"`
	UserID      string     `gorm:"column:user_id;size:100;not null" json:"user_id"`
	Score       *float64   `gorm:"column:score" json:"score"`
	StartedAt   time.Time  `gorm:"column:started_at;autoCreateTime" json:"started_at"`
	CompletedAt *time.Time `gorm:"column:completed_at" json:"completed_at"`

	Answers []Answer `gorm:"foreignKey:ResponseID;constraint:OnDelete:CASCADE" json:"answers"`
}

func (Response) TableName() string {
	return "responses"
}

// DurationMinutes is the declared completion time, zero when the client never
// reported finishing.
func (r *Response) DurationMinutes() float64 {
	if r.CompletedAt == nil {
		return 0
	}
	return r.CompletedAt.Sub(r.StartedAt).Minutes()
}
