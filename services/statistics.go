package services

import (
	"sort"

	"github.com/encuestapp/survey-server/models"
)

// ComputeStatistics aggregates a survey's responses into a summary. It is
// recomputed from scratch on every call and never cached. With zero responses
// every aggregate stays nil/empty; nothing divides by zero.
func ComputeStatistics(survey *models.Survey, responses []models.Response) models.Statistics {
	stats := models.Statistics{
		TotalResponses:     len(responses),
		PerUserScores:      []models.UserScore{},
		QuestionDifficulty: []models.QuestionDifficulty{},
	}
	if len(responses) == 0 {
		return stats
	}

	scored := make([]float64, 0, len(responses))
	for _, r := range responses {
		if r.Score != nil {
			scored = append(scored, *r.Score)
		}
	}
	if len(scored) > 0 {
		sum := 0.0
		for _, s := range scored {
			sum += s
		}
		avg := sum / float64(len(scored))
		stats.AverageScore = &avg
	}

	if survey.MinScore != nil && len(scored) > 0 {
		passed := 0
		for _, s := range scored {
			if s >= float64(*survey.MinScore) {
				passed++
			}
		}
		rate := float64(passed) / float64(len(scored)) * 100
		stats.ApprovalRate = &rate
	}

	// One entry per response, users repeated across attempts. Unscored
	// responses rank as zero; ties keep response order.
	for _, r := range responses {
		score := 0.0
		if r.Score != nil {
			score = *r.Score
		}
		stats.PerUserScores = append(stats.PerUserScores, models.UserScore{UserID: r.UserID, Score: score})
	}
	sort.SliceStable(stats.PerUserScores, func(i, j int) bool {
		return stats.PerUserScores[i].Score > stats.PerUserScores[j].Score
	})

	type tally struct {
		total   int
		correct int
	}
	counts := make(map[string]*tally)
	for _, r := range responses {
		for _, a := range r.Answers {
			t := counts[a.QuestionID]
			if t == nil {
				t = &tally{}
				counts[a.QuestionID] = t
			}
			t.total++
			q := survey.QuestionByID(a.QuestionID)
			if q == nil || !q.Type.IsChoice() {
				// Text and numeric answers count toward total but never
				// toward correct, so those questions report 100 difficulty
				// once answered. Kept as-is pending product clarification.
				continue
			}
			if SelectionMatches(q, a.SelectedOptionIDs) {
				t.correct++
			}
		}
	}
	for _, q := range survey.Questions {
		difficulty := 0.0
		if t := counts[q.ID]; t != nil && t.total > 0 {
			difficulty = 100 - float64(t.correct)/float64(t.total)*100
		}
		stats.QuestionDifficulty = append(stats.QuestionDifficulty, models.QuestionDifficulty{
			QuestionID: q.ID,
			Text:       q.Text,
			Difficulty: difficulty,
		})
	}

	total := 0.0
	for _, r := range responses {
		total += r.DurationMinutes()
	}
	avgDuration := total / float64(len(responses))
	stats.AverageDurationMinutes = &avgDuration

	return stats
}
