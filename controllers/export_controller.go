package controllers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/encuestapp/survey-server/models"
	"github.com/encuestapp/survey-server/store"
)

// Export jobs are tracked in memory only; durability is out of scope.
var (
	exportMu   sync.Mutex
	exportJobs = map[string]*models.ExportJob{}
)

type exportRequest struct {
	Format    string  `json:"format"`
	RangeFrom *string `json:"range_from,omitempty"`
	RangeTo   *string `json:"range_to,omitempty"`
}

// POST /api/surveys/:id/export
func CreateExport(c *gin.Context) {
	surveyID := c.Param("id")
	if _, err := Store.GetSurvey(surveyID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "survey not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch survey"})
		return
	}

	// Every field is optional, so a bodiless POST means "export everything".
	var req exportRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if req.Format == "" {
		req.Format = "csv"
	}
	if req.Format != "csv" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported export format: " + req.Format})
		return
	}

	var fromPtr, toPtr *time.Time
	if req.RangeFrom != nil {
		t, err := time.Parse(time.RFC3339, *req.RangeFrom)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "range_from must be RFC3339"})
			return
		}
		fromPtr = &t
	}
	if req.RangeTo != nil {
		t, err := time.Parse(time.RFC3339, *req.RangeTo)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "range_to must be RFC3339"})
			return
		}
		toPtr = &t
	}

	now := time.Now().UTC()
	job := &models.ExportJob{
		JobID:     uuid.NewString(),
		SurveyID:  surveyID,
		Format:    req.Format,
		RangeFrom: fromPtr,
		RangeTo:   toPtr,
		Status:    "queued",
		CreatedAt: now,
		UpdatedAt: now,
	}
	exportMu.Lock()
	exportJobs[job.JobID] = job
	exportMu.Unlock()

	go processExportJob(job.JobID)

	c.JSON(http.StatusAccepted, gin.H{
		"job_id": job.JobID,
		"status": "queued",
	})
}

// GET /api/exports/:job_id
func GetExport(c *gin.Context) {
	// The worker goroutine mutates the stored job, so snapshot it under the
	// lock and only read the copy afterwards.
	exportMu.Lock()
	stored, ok := exportJobs[c.Param("job_id")]
	var job models.ExportJob
	if ok {
		job = *stored
	}
	exportMu.Unlock()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "export job not found"})
		return
	}

	if job.Status == "done" && job.FilePath != nil {
		c.FileAttachment(*job.FilePath, path.Base(*job.FilePath))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"job_id": job.JobID,
		"status": job.Status,
		"error":  job.ErrorMsg,
	})
}

func setJobStatus(jobID, status string, filePath, errMsg *string) {
	exportMu.Lock()
	defer exportMu.Unlock()
	job, ok := exportJobs[jobID]
	if !ok {
		return
	}
	job.Status = status
	job.FilePath = filePath
	job.ErrorMsg = errMsg
	job.UpdatedAt = time.Now().UTC()
}

func processExportJob(jobID string) {
	exportMu.Lock()
	stored, ok := exportJobs[jobID]
	var job models.ExportJob
	if ok {
		job = *stored
	}
	exportMu.Unlock()
	if !ok {
		return
	}
	setJobStatus(jobID, "processing", nil, nil)

	responses, err := Store.ListResponses(job.SurveyID)
	if err != nil {
		em := err.Error()
		setJobStatus(jobID, "failed", nil, &em)
		return
	}

	outDir := "./exports"
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		em := err.Error()
		setJobStatus(jobID, "failed", nil, &em)
		return
	}
	outPath := path.Join(outDir, fmt.Sprintf("export_%s.csv", jobID))

	f, err := os.Create(outPath)
	if err != nil {
		em := err.Error()
		setJobStatus(jobID, "failed", nil, &em)
		return
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	w.Write([]string{"response_id", "user_id", "score", "started_at", "completed_at", "duration_minutes", "answers"})

	for _, r := range responses {
		if job.RangeFrom != nil && r.StartedAt.Before(*job.RangeFrom) {
			continue
		}
		if job.RangeTo != nil && r.StartedAt.After(*job.RangeTo) {
			continue
		}

		score := ""
		if r.Score != nil {
			score = strconv.FormatFloat(*r.Score, 'f', 2, 64)
		}
		completed := ""
		if r.CompletedAt != nil {
			completed = r.CompletedAt.Format(time.RFC3339)
		}
		answers := ""
		for _, a := range r.Answers {
			if a.FreeText != nil {
				answers += fmt.Sprintf("[%s:%s] ", a.QuestionID, *a.FreeText)
			} else {
				answers += fmt.Sprintf("[%s:%s] ", a.QuestionID, strings.Join(a.SelectedOptionIDs, "|"))
			}
		}
		w.Write([]string{
			r.ID,
			r.UserID,
			score,
			r.StartedAt.Format(time.RFC3339),
			completed,
			strconv.FormatFloat(r.DurationMinutes(), 'f', 2, 64),
			answers,
		})
	}

	fp := outPath
	setJobStatus(jobID, "done", &fp, nil)
}
