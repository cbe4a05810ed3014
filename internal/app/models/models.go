package models

// RoleType defines the user role type
type RoleType string

const (
	RoleStudent         RoleType = "STUDENT"
	RoleTPOAdmin        RoleType = "TPO_ADMIN"
	RoleManagementAdmin RoleType = "MANAGEMENT_ADMIN"
	RoleSuperuser       RoleType = "SUPERUSER"
)

// IsStaff reports whether the role belongs to placement staff
// (anyone allowed to manage the catalog and application outcomes).
func (r RoleType) IsStaff() bool {
	return r == RoleTPOAdmin || r == RoleManagementAdmin || r == RoleSuperuser
}

// Valid reports whether the role is one of the four known roles.
func (r RoleType) Valid() bool {
	switch r {
	case RoleStudent, RoleTPOAdmin, RoleManagementAdmin, RoleSuperuser:
		return true
	}
	return false
}

// DifficultyTier classifies how hard a company's hiring process is
type DifficultyTier string

const (
	DifficultyEasy     DifficultyTier = "EASY"
	DifficultyModerate DifficultyTier = "MODERATE"
	DifficultyHard     DifficultyTier = "HARD"
)

// ApplicationStatus is the top-level state of an application
type ApplicationStatus string

const (
	StatusApplied   ApplicationStatus = "APPLIED"
	StatusInterview ApplicationStatus = "INTERVIEW"
	StatusHired     ApplicationStatus = "HIRED"
	StatusRejected  ApplicationStatus = "REJECTED"
)

// Terminal reports whether the status admits no further transitions.
func (s ApplicationStatus) Terminal() bool {
	return s == StatusHired || s == StatusRejected
}

// RoundStatus tracks per-round progress within the interview stage,
// orthogonal to the top-level application status.
type RoundStatus string

const (
	RoundPending RoundStatus = "PENDING"
	RoundPassed  RoundStatus = "PASSED"
	RoundFailed  RoundStatus = "FAILED"
)

// InternshipType classifies a student-reported internship
type InternshipType string

const (
	InternshipFullTime InternshipType = "FULL_TIME"
	InternshipPartTime InternshipType = "PART_TIME"
	InternshipRemote   InternshipType = "REMOTE"
	InternshipOnSite   InternshipType = "ON_SITE"
)
