package store

import (
	"sync"
	"time"

	"github.com/encuestapp/survey-server/models"
)

// MemoryStore keeps all surveys and responses in process memory behind a
// single mutex. It is the default store when no database is configured and
// the one the tests run against.
type MemoryStore struct {
	mu            sync.Mutex
	surveys       map[string]*models.Survey
	surveyOrder   []string
	responses     map[string]*models.Response
	responseOrder []string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		surveys:   make(map[string]*models.Survey),
		responses: make(map[string]*models.Response),
	}
}

func (m *MemoryStore) ListSurveys() ([]models.Survey, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]models.Survey, 0, len(m.surveyOrder))
	for _, id := range m.surveyOrder {
		out = append(out, *cloneSurvey(m.surveys[id]))
	}
	return out, nil
}

func (m *MemoryStore) GetSurvey(id string) (*models.Survey, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.surveys[id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneSurvey(s), nil
}

func (m *MemoryStore) CreateSurvey(survey *models.Survey) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now().UTC()
	survey.CreatedAt = now
	survey.UpdatedAt = now
	m.surveys[survey.ID] = cloneSurvey(survey)
	m.surveyOrder = append(m.surveyOrder, survey.ID)
	return nil
}

func (m *MemoryStore) UpdateSurvey(id string, patch SurveyPatch) (*models.Survey, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.surveys[id]
	if !ok {
		return nil, ErrNotFound
	}
	if patch.Title != nil {
		s.Title = *patch.Title
	}
	if patch.Type != nil {
		s.Type = *patch.Type
	}
	if patch.MinScore != nil {
		s.MinScore = patch.MinScore
	}
	if patch.MaxAttempts != nil {
		s.MaxAttempts = patch.MaxAttempts
	}
	if patch.TimeLimitMinutes != nil {
		s.TimeLimitMinutes = patch.TimeLimitMinutes
	}
	s.UpdatedAt = time.Now().UTC()
	return cloneSurvey(s), nil
}

func (m *MemoryStore) ReplaceQuestions(surveyID string, questions []models.Question) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.surveys[surveyID]
	if !ok {
		return ErrNotFound
	}
	s.Questions = cloneQuestions(questions)
	s.UpdatedAt = time.Now().UTC()
	return nil
}

func (m *MemoryStore) DeleteSurvey(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.surveys[id]; !ok {
		return ErrNotFound
	}
	delete(m.surveys, id)
	m.surveyOrder = removeID(m.surveyOrder, id)

	// Responses die with their survey.
	kept := m.responseOrder[:0]
	for _, rid := range m.responseOrder {
		if m.responses[rid].SurveyID == id {
			delete(m.responses, rid)
			continue
		}
		kept = append(kept, rid)
	}
	m.responseOrder = kept
	return nil
}

func (m *MemoryStore) CreateResponse(resp *models.Response) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.surveys[resp.SurveyID]; !ok {
		return ErrNotFound
	}
	m.responses[resp.ID] = cloneResponse(resp)
	m.responseOrder = append(m.responseOrder, resp.ID)
	return nil
}

func (m *MemoryStore) ListResponses(surveyID string) ([]models.Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := []models.Response{}
	for _, rid := range m.responseOrder {
		if r := m.responses[rid]; r.SurveyID == surveyID {
			out = append(out, *cloneResponse(r))
		}
	}
	return out, nil
}

func (m *MemoryStore) UpdateResponseScore(responseID string, score float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.responses[responseID]
	if !ok {
		return ErrNotFound
	}
	s := score
	r.Score = &s
	return nil
}

// Clones keep callers from mutating stored state outside the lock.

func cloneSurvey(s *models.Survey) *models.Survey {
	out := *s
	out.MinScore = cloneInt(s.MinScore)
	out.MaxAttempts = cloneInt(s.MaxAttempts)
	out.TimeLimitMinutes = cloneInt(s.TimeLimitMinutes)
	out.Questions = cloneQuestions(s.Questions)
	return &out
}

func cloneQuestions(questions []models.Question) []models.Question {
	out := make([]models.Question, len(questions))
	for i, q := range questions {
		cq := q
		cq.Points = cloneInt(q.Points)
		cq.Explanation = cloneString(q.Explanation)
		cq.Options = append([]models.Option(nil), q.Options...)
		out[i] = cq
	}
	return out
}

func cloneResponse(r *models.Response) *models.Response {
	out := *r
	if r.Score != nil {
		s := *r.Score
		out.Score = &s
	}
	if r.CompletedAt != nil {
		t := *r.CompletedAt
		out.CompletedAt = &t
	}
	out.Answers = make([]models.Answer, len(r.Answers))
	for i, a := range r.Answers {
		ca := a
		ca.SelectedOptionIDs = append([]string(nil), a.SelectedOptionIDs...)
		ca.FreeText = cloneString(a.FreeText)
		out.Answers[i] = ca
	}
	return &out
}

func cloneInt(v *int) *int {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func cloneString(v *string) *string {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func removeID(ids []string, id string) []string {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
