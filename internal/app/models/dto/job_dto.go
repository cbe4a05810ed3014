package dto

import (
	"time"

	"github.com/placenet/placement-backend/internal/app/models"
)

// CreateJobRequest represents a request to post a job
type CreateJobRequest struct {
	Title       string    `json:"title" binding:"required"`
	CompanyID   int64     `json:"companyId" binding:"required,min=1"`
	Salary      float64   `json:"salary" binding:"required,gt=0"`
	Deadline    time.Time `json:"deadline" binding:"required"`
	Description string    `json:"description" binding:"required"`
	Eligibility string    `json:"eligibility"`
	HowToApply  string    `json:"howToApply"`
}

// UpdateJobRequest represents a request to update a job posting
type UpdateJobRequest struct {
	Title       string    `json:"title" binding:"required"`
	Salary      float64   `json:"salary" binding:"required,gt=0"`
	Deadline    time.Time `json:"deadline" binding:"required"`
	Description string    `json:"description" binding:"required"`
	Eligibility string    `json:"eligibility"`
	HowToApply  string    `json:"howToApply"`
}

// CompanySummary is the nested company block of a job response.
// It is nil when the referenced company has been deleted.
type CompanySummary struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Location   string `json:"location"`
	Difficulty string `json:"difficulty"`
}

// JobResponse represents a job posting with its company, if still present
type JobResponse struct {
	ID          int64           `json:"id"`
	Title       string          `json:"title"`
	Company     *CompanySummary `json:"company,omitempty"`
	Salary      float64         `json:"salary"`
	Deadline    time.Time       `json:"deadline"`
	Description string          `json:"description"`
	Eligibility string          `json:"eligibility"`
	HowToApply  string          `json:"howToApply"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// FromJob converts a models.Job into a JobResponse
func FromJob(job *models.Job) JobResponse {
	resp := JobResponse{
		ID:          job.ID,
		Title:       job.Title,
		Salary:      job.Salary,
		Deadline:    job.Deadline,
		Description: job.Description,
		Eligibility: job.Eligibility,
		HowToApply:  job.HowToApply,
		CreatedAt:   job.CreatedAt,
	}
	if job.Company != nil {
		resp.Company = &CompanySummary{
			ID:         job.Company.ID,
			Name:       job.Company.Name,
			Location:   job.Company.Location,
			Difficulty: string(job.Company.Difficulty),
		}
	}
	return resp
}
