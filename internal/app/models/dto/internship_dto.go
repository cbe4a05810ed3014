package dto

import "time"

// CreateInternshipRequest represents a student recording an internship
type CreateInternshipRequest struct {
	CompanyName  string     `json:"companyName" binding:"required"`
	Role         string     `json:"role" binding:"required"`
	Type         string     `json:"type" binding:"required,oneof=FULL_TIME PART_TIME REMOTE ON_SITE"`
	DurationDays int        `json:"durationDays" binding:"required,min=1"`
	Stipend      *float64   `json:"stipend,omitempty" binding:"omitempty,min=0"`
	StartDate    time.Time  `json:"startDate" binding:"required"`
	EndDate      *time.Time `json:"endDate,omitempty"`
	Description  *string    `json:"description,omitempty"`
}

// UpdateInternshipRequest represents a student editing an internship record
type UpdateInternshipRequest struct {
	CompanyName  string     `json:"companyName" binding:"required"`
	Role         string     `json:"role" binding:"required"`
	Type         string     `json:"type" binding:"required,oneof=FULL_TIME PART_TIME REMOTE ON_SITE"`
	DurationDays int        `json:"durationDays" binding:"required,min=1"`
	Stipend      *float64   `json:"stipend,omitempty" binding:"omitempty,min=0"`
	StartDate    time.Time  `json:"startDate" binding:"required"`
	EndDate      *time.Time `json:"endDate,omitempty"`
	Description  *string    `json:"description,omitempty"`
}
