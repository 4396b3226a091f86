package store

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/encuestapp/survey-server/models"
)

// GormStore backs the survey store with PostgreSQL through GORM.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func withQuestions(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Questions", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC, id ASC") }).
		Preload("Questions.Options", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC, id ASC") })
}

func (g *GormStore) ListSurveys() ([]models.Survey, error) {
	var surveys []models.Survey
	if err := withQuestions(g.db).Order("created_at ASC").Find(&surveys).Error; err != nil {
		return nil, err
	}
	return surveys, nil
}

func (g *GormStore) GetSurvey(id string) (*models.Survey, error) {
	var survey models.Survey
	err := withQuestions(g.db).Where("id = ?", id).First(&survey).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &survey, nil
}

func (g *GormStore) CreateSurvey(survey *models.Survey) error {
	return g.db.Create(survey).Error
}

func (g *GormStore) UpdateSurvey(id string, patch SurveyPatch) (*models.Survey, error) {
	updates := map[string]interface{}{"updated_at": time.Now().UTC()}
	if patch.Title != nil {
		updates["title"] = *patch.Title
	}
	if patch.Type != nil {
		updates["type"] = *patch.Type
	}
	if patch.MinScore != nil {
		updates["min_score"] = *patch.MinScore
	}
	if patch.MaxAttempts != nil {
		updates["max_attempts"] = *patch.MaxAttempts
	}
	if patch.TimeLimitMinutes != nil {
		updates["time_limit_minutes"] = *patch.TimeLimitMinutes
	}

	res := g.db.Model(&models.Survey{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return g.GetSurvey(id)
}

func (g *GormStore) ReplaceQuestions(surveyID string, questions []models.Question) error {
	return g.db.Transaction(func(tx *gorm.DB) error {
		var survey models.Survey
		if err := tx.Select("id").Where("id = ?", surveyID).First(&survey).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if err := tx.Where("question_id IN (?)",
			tx.Model(&models.Question{}).Select("id").Where("survey_id = ?", surveyID),
		).Delete(&models.Option{}).Error; err != nil {
			return err
		}
		if err := tx.Where("survey_id = ?", surveyID).Delete(&models.Question{}).Error; err != nil {
			return err
		}
		if len(questions) > 0 {
			if err := tx.Create(&questions).Error; err != nil {
				return err
			}
		}
		return tx.Model(&models.Survey{}).Where("id = ?", surveyID).
			UpdateColumn("updated_at", time.Now().UTC()).Error
	})
}

func (g *GormStore) DeleteSurvey(id string) error {
	return g.db.Transaction(func(tx *gorm.DB) error {
		var survey models.Survey
		if err := tx.Select("id").Where("id = ?", id).First(&survey).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if err := tx.Where("response_id IN (?)",
			tx.Model(&models.Response{}).Select("id").Where("survey_id = ?", id),
		).Delete(&models.Answer{}).Error; err != nil {
			return err
		}
		if err := tx.Where("survey_id = ?", id).Delete(&models.Response{}).Error; err != nil {
			return err
		}
		if err := tx.Where("question_id IN (?)",
			tx.Model(&models.Question{}).Select("id").Where("survey_id = ?", id),
		).Delete(&models.Option{}).Error; err != nil {
			return err
		}
		if err := tx.Where("survey_id = ?", id).Delete(&models.Question{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Survey{}, "id = ?", id).Error
	})
}

func (g *GormStore) CreateResponse(resp *models.Response) error {
	return g.db.Transaction(func(tx *gorm.DB) error {
		var survey models.Survey
		if err := tx.Select("id").Where("id = ?", resp.SurveyID).First(&survey).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		return tx.Create(resp).Error
	})
}

func (g *GormStore) ListResponses(surveyID string) ([]models.Response, error) {
	responses := []models.Response{}
	err := g.db.
		Preload("Answers", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Where("survey_id = ?", surveyID).
		Order("started_at ASC, id ASC").
		Find(&responses).Error
	if err != nil {
		return nil, err
	}
	return responses, nil
}

func (g *GormStore) UpdateResponseScore(responseID string, score float64) error {
	res := g.db.Model(&models.Response{}).Where("id = ?", responseID).Update("score", score)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
