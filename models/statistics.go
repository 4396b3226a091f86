package models

// Statistics is derived from a survey's current responses on every request and
// never stored.
type Statistics struct {
	TotalResponses         int                  `json:"total_responses"`
	AverageScore           *float64             `json:"average_score"`
	ApprovalRate           *float64             `json:"approval_rate"`
	PerUserScores          []UserScore          `json:"per_user_scores"`
	QuestionDifficulty     []QuestionDifficulty `json:"question_difficulty"`
	AverageDurationMinutes *float64             `json:"average_duration_minutes"`
}

// UserScore is one response's score attributed to its user. Users appear once
// per response, unscored responses rank as 0.
type UserScore struct {
	UserID string  `json:"user_id"`
	Score  float64 `json:"score"`
}

// QuestionDifficulty is the percentage of answers to a question that missed
// its correct option set. Higher means harder.
type QuestionDifficulty struct {
	QuestionID string  `json:"question_id"`
	Text       string  `json:"text"`
	Difficulty float64 `json:"difficulty"`
}
