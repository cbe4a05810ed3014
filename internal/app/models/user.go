package models

import (
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID                 int64      `json:"id" db:"id" example:"1"`                                                  // Unique identifier for the user
	Email              string     `json:"email" db:"email" example:"student@college.edu"`                          // User's email address
	Password           string     `json:"-" db:"password"`                                                         // User's hashed password (excluded from JSON)
	FirstName          string     `json:"firstName" db:"first_name" example:"Asha"`                                // User's first name
	LastName           string     `json:"lastName" db:"last_name" example:"Verma"`                                 // User's last name
	RoleType           RoleType   `json:"roleType" db:"role_type" example:"STUDENT"`                               // User's role, immutable after creation
	ProfilePhotoFileID *int64     `json:"profilePhotoFileId,omitempty" db:"profile_photo_file_id"`                 // Reference to the stored profile photo (nullable)
	CreatedAt          time.Time  `json:"createdAt" db:"created_at" example:"2024-01-01T10:00:00Z"`                // Timestamp when the user was created
	UpdatedAt          time.Time  `json:"updatedAt" db:"updated_at" example:"2024-01-02T15:30:00Z"`                // Timestamp when the user was last updated
	LastLoginAt        *time.Time `json:"lastLoginAt,omitempty" db:"last_login_at" example:"2024-04-20T18:00:00Z"` // Timestamp of the last login (nullable)

	// Relation, populated for students only
	StudentProfile *StudentProfile `json:"studentProfile,omitempty"`
}

// IsApproved reports whether the user has passed the approval gate.
// Non-student roles are never gated.
func (u *User) IsApproved() bool {
	if u.RoleType != RoleStudent {
		return true
	}
	return u.StudentProfile != nil && u.StudentProfile.Approved
}

// StudentProfile defines the student model based on the 'student_profiles' table
type StudentProfile struct {
	ID              int64      `json:"id" db:"id"`
	UserID          int64      `json:"userId" db:"user_id"`
	RollNumber      string     `json:"rollNumber" db:"roll_number" example:"CS2021042"` // College roll number, unique
	Branch          string     `json:"branch" db:"branch" example:"Computer Science"`
	GraduationYear  *int       `json:"graduationYear,omitempty" db:"graduation_year"` // Pointer for potential NULL
	CGPA            *float64   `json:"cgpa,omitempty" db:"cgpa"`
	Approved        bool       `json:"approved" db:"approved"` // Flipped by an administrator; gates privileged operations
	ApprovedAt      *time.Time `json:"approvedAt,omitempty" db:"approved_at"`
	ProfileComplete bool       `json:"profileComplete" db:"profile_complete"`
	ResumeFileID    *int64     `json:"resumeFileId,omitempty" db:"resume_file_id"` // Reference to the stored resume (nullable)

	User *User `json:"user,omitempty"` // Relation, no db tag
}
