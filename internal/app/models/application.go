package models

import "time"

// Application is the authoritative record of one student's relationship to
// one job posting. The job-side applicant list and the student-side
// applied-jobs list are both projections of these rows, so the two views
// cannot drift apart. At most one row exists per (student, job) pair,
// enforced by a unique constraint.
type Application struct {
	ID                int64             `json:"id" db:"id"`
	StudentID         int64             `json:"studentId" db:"student_id"` // User ID of the applying student
	JobID             int64             `json:"jobId" db:"job_id"`
	Status            ApplicationStatus `json:"status" db:"status" example:"APPLIED"`
	CurrentRound      *string           `json:"currentRound,omitempty" db:"current_round" example:"Technical Interview"`
	RoundStatus       *RoundStatus      `json:"roundStatus,omitempty" db:"round_status" example:"PENDING"`
	Package           *float64          `json:"package,omitempty" db:"package"` // Offered package in LPA, required before HIRED
	SelectionDate     *time.Time        `json:"selectionDate,omitempty" db:"selection_date"`
	JoiningDate       *time.Time        `json:"joiningDate,omitempty" db:"joining_date"`
	OfferLetterFileID *int64            `json:"offerLetterFileId,omitempty" db:"offer_letter_file_id"`
	AppliedAt         time.Time         `json:"appliedAt" db:"applied_at"`
	UpdatedAt         time.Time         `json:"updatedAt" db:"updated_at"`
}

// JobApplicant is the job-side projection of an application, joined with
// the applicant's identity for the staff-facing applicant list.
type JobApplicant struct {
	ApplicationID int64             `json:"applicationId" db:"application_id"`
	StudentID     int64             `json:"studentId" db:"student_id"`
	FirstName     string            `json:"firstName" db:"first_name"`
	LastName      string            `json:"lastName" db:"last_name"`
	Email         string            `json:"email" db:"email"`
	RollNumber    string            `json:"rollNumber" db:"roll_number"`
	Status        ApplicationStatus `json:"status" db:"status"`
	CurrentRound  *string           `json:"currentRound,omitempty" db:"current_round"`
	RoundStatus   *RoundStatus      `json:"roundStatus,omitempty" db:"round_status"`
	AppliedAt     time.Time         `json:"appliedAt" db:"applied_at"`
}

// AppliedJob is the student-side projection of an application, joined with
// the job and company so a student can review what they applied to.
type AppliedJob struct {
	ApplicationID int64             `json:"applicationId" db:"application_id"`
	JobID         int64             `json:"jobId" db:"job_id"`
	JobTitle      string            `json:"jobTitle" db:"job_title"`
	CompanyName   *string           `json:"companyName,omitempty" db:"company_name"` // Nil when the company was deleted
	Status        ApplicationStatus `json:"status" db:"status"`
	CurrentRound  *string           `json:"currentRound,omitempty" db:"current_round"`
	RoundStatus   *RoundStatus      `json:"roundStatus,omitempty" db:"round_status"`
	Package       *float64          `json:"package,omitempty" db:"package"`
	AppliedAt     time.Time         `json:"appliedAt" db:"applied_at"`
}
