package models

import "time"

// ExportJob tracks one queued CSV export of a survey's responses. Jobs live
// in process memory only; export durability is out of scope.
type ExportJob struct {
	JobID     string     `json:"job_id"`
	SurveyID  string     `json:"survey_id"`
	Format    string     `json:"format"` // csv
	RangeFrom *time.Time `json:"range_from,omitempty"`
	RangeTo   *time.Time `json:"range_to,omitempty"`
	Status    string     `json:"status"` // queued | processing | done | failed
	FilePath  *string    `json:"file_path,omitempty"`
	ErrorMsg  *string    `json:"error_msg,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
