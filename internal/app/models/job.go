package models

import "time"

// Job defines the job-posting model based on the 'jobs' table.
// A job references its company by ID; the company row may have been
// deleted independently, so reads must tolerate a missing company.
type Job struct {
	ID          int64     `json:"id" db:"id" example:"1"`
	Title       string    `json:"title" db:"title" example:"Graduate Software Engineer"`
	CompanyID   int64     `json:"companyId" db:"company_id"`
	Salary      float64   `json:"salary" db:"salary" example:"8.5"` // Annual package in LPA
	Deadline    time.Time `json:"deadline" db:"deadline"`           // Applications close at this instant
	Description string    `json:"description" db:"description"`
	Eligibility string    `json:"eligibility" db:"eligibility"`
	HowToApply  string    `json:"howToApply" db:"how_to_apply"`
	PostedBy    int64     `json:"postedBy" db:"posted_by"` // User ID of the staff member who posted the job
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`

	Company *Company `json:"company,omitempty"` // Relation, nil when the company was deleted
}
