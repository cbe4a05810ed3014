package dto

import "time"

// ApplyRequest identifies the job a student is applying to.
// The student identity comes from the authenticated credential.
type ApplyRequest struct {
	JobID int64 `json:"jobId" binding:"required,min=1"`
}

// UpdateApplicationStatusRequest is a partial patch of an application's
// state. Absent fields are left untouched. Status, when present, must be a
// legal transition; HIRED additionally requires a package either already
// recorded or carried in the same patch.
type UpdateApplicationStatusRequest struct {
	StudentID     int64      `json:"studentId" binding:"required,min=1"`
	JobID         int64      `json:"jobId" binding:"required,min=1"`
	Status        *string    `json:"status,omitempty" binding:"omitempty,oneof=APPLIED INTERVIEW HIRED REJECTED"`
	CurrentRound  *string    `json:"currentRound,omitempty"`
	RoundStatus   *string    `json:"roundStatus,omitempty" binding:"omitempty,oneof=PENDING PASSED FAILED"`
	Package       *float64   `json:"package,omitempty" binding:"omitempty,gt=0"`
	SelectionDate *time.Time `json:"selectionDate,omitempty"`
	JoiningDate   *time.Time `json:"joiningDate,omitempty"`
}

// OfferLetterRequest identifies the application whose offer letter changes
type OfferLetterRequest struct {
	StudentID int64 `json:"studentId" binding:"required,min=1"`
	JobID     int64 `json:"jobId" binding:"required,min=1"`
}

// ApplicantResponse is the staff-facing projection of one applicant on a job
type ApplicantResponse struct {
	StudentID    int64     `json:"studentId"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	RollNumber   string    `json:"rollNumber"`
	Status       string    `json:"status"`
	CurrentRound *string   `json:"currentRound,omitempty"`
	RoundStatus  *string   `json:"roundStatus,omitempty"`
	AppliedAt    time.Time `json:"appliedAt"`
}

// AppliedJobResponse is the student-facing projection of one of their applications
type AppliedJobResponse struct {
	JobID        int64     `json:"jobId"`
	JobTitle     string    `json:"jobTitle"`
	CompanyName  *string   `json:"companyName,omitempty"`
	Status       string    `json:"status"`
	CurrentRound *string   `json:"currentRound,omitempty"`
	RoundStatus  *string   `json:"roundStatus,omitempty"`
	Package      *float64  `json:"package,omitempty"`
	AppliedAt    time.Time `json:"appliedAt"`
}

// ConsistencyReport is the output of the projection repair check
type ConsistencyReport struct {
	Checked   int                   `json:"checked"`
	Conflicts []ConsistencyConflict `json:"conflicts"`
}

// ConsistencyConflict names one (student, job) pair whose two projections disagree
type ConsistencyConflict struct {
	StudentID     int64  `json:"studentId"`
	JobID         int64  `json:"jobId"`
	JobSideStatus string `json:"jobSideStatus"`
	StudentStatus string `json:"studentSideStatus"`
}
