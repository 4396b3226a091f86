package models

// Answer is one respondent's reply to a single question. It is owned by its
// Response and never persisted on its own. For choice questions the selection
// is stored as a json-serialized id set; for text/numeric questions FreeText
// carries the raw value.
type Answer struct {
	ID                uint     `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	ResponseID        string   `gorm:"column:response_id;size:36;index;not null" json:"-"`
	QuestionID        string   `gorm:"column:question_id;size:36;not null" json:"question_id"`
	SelectedOptionIDs []string `gorm:"column:selected_option_ids;serializer:json;type:text" json:"selected_option_ids"`
	FreeText          *string  `gorm:"column:free_text;type:text" json:"free_text"`
}

func (Answer) TableName() string {
	return "answers"
}
