package models

import "time"

// Internship is a free-standing record owned by a student. It is not tied
// to the company/job catalog; students report internships they completed
// or hold outside the placement process.
type Internship struct {
	ID           int64          `json:"id" db:"id"`
	StudentID    int64          `json:"studentId" db:"student_id"` // User ID of the owning student
	CompanyName  string         `json:"companyName" db:"company_name"`
	Role         string         `json:"role" db:"role"`
	Type         InternshipType `json:"type" db:"type" example:"REMOTE"`
	DurationDays int            `json:"durationDays" db:"duration_days"`
	Stipend      *float64       `json:"stipend,omitempty" db:"stipend"` // Monthly stipend, nullable
	StartDate    time.Time      `json:"startDate" db:"start_date"`
	EndDate      *time.Time     `json:"endDate,omitempty" db:"end_date"`
	Description  *string        `json:"description,omitempty" db:"description"`
	CreatedAt    time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time      `json:"updatedAt" db:"updated_at"`
}
