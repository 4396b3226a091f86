package models

type Option struct {
	ID         string `gorm:"column:id;primaryKey;size:36" json:"id"`
	QuestionID string `gorm:"column:question_id;size:36;index;not null" json:"question_id"`
	Text       string `gorm:"column:text;type:text;not null" json:"text"`
	IsCorrect  bool   `gorm:"column:is_correct;default:false" json:"is_correct"`
	Position   int    `gorm:"column:position;default:0" json:"position"`
}

func (Option) TableName() string {
	return "options"
}
