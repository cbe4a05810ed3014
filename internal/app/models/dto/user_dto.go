package dto

import (
	"time"

	"github.com/placenet/placement-backend/internal/app/models"
)

// UserResponse represents basic user information
type UserResponse struct {
	ID                 int64                   `json:"id"`
	Email              string                  `json:"email"`
	FirstName          string                  `json:"firstName"`
	LastName           string                  `json:"lastName"`
	Role               string                  `json:"role"`
	ProfilePhotoFileID *int64                  `json:"profilePhotoFileId,omitempty"`
	StudentProfile     *StudentProfileResponse `json:"studentProfile,omitempty"`
}

// StudentProfileResponse represents a student's academic profile
type StudentProfileResponse struct {
	RollNumber      string     `json:"rollNumber"`
	Branch          string     `json:"branch"`
	GraduationYear  *int       `json:"graduationYear,omitempty"`
	CGPA            *float64   `json:"cgpa,omitempty"`
	Approved        bool       `json:"approved"`
	ApprovedAt      *time.Time `json:"approvedAt,omitempty"`
	ProfileComplete bool       `json:"profileComplete"`
	ResumeFileID    *int64     `json:"resumeFileId,omitempty"`
}

// UpdateProfileRequest represents profile update data for a student
type UpdateProfileRequest struct {
	FirstName      string   `json:"firstName" binding:"required"`
	LastName       string   `json:"lastName" binding:"required"`
	Branch         string   `json:"branch" binding:"required"`
	GraduationYear *int     `json:"graduationYear,omitempty" binding:"omitempty,min=2000,max=2100"`
	CGPA           *float64 `json:"cgpa,omitempty" binding:"omitempty,min=0,max=10"`
}

// PendingStudentResponse is one row of the admin approval queue
type PendingStudentResponse struct {
	UserID     int64     `json:"userId"`
	Email      string    `json:"email"`
	FirstName  string    `json:"firstName"`
	LastName   string    `json:"lastName"`
	RollNumber string    `json:"rollNumber"`
	Branch     string    `json:"branch"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ApprovalRequest identifies the student whose approval state changes
type ApprovalRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// FromUser converts a models.User into a UserResponse
func FromUser(user *models.User) UserResponse {
	resp := UserResponse{
		ID:                 user.ID,
		Email:              user.Email,
		FirstName:          user.FirstName,
		LastName:           user.LastName,
		Role:               string(user.RoleType),
		ProfilePhotoFileID: user.ProfilePhotoFileID,
	}
	if user.StudentProfile != nil {
		resp.StudentProfile = &StudentProfileResponse{
			RollNumber:      user.StudentProfile.RollNumber,
			Branch:          user.StudentProfile.Branch,
			GraduationYear:  user.StudentProfile.GraduationYear,
			CGPA:            user.StudentProfile.CGPA,
			Approved:        user.StudentProfile.Approved,
			ApprovedAt:      user.StudentProfile.ApprovedAt,
			ProfileComplete: user.StudentProfile.ProfileComplete,
			ResumeFileID:    user.StudentProfile.ResumeFileID,
		}
	}
	return resp
}
