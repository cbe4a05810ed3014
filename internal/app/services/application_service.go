package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/placenet/placement-backend/internal/app/models"
	"github.com/placenet/placement-backend/internal/app/models/dto"
	"github.com/placenet/placement-backend/internal/app/repositories"
	"github.com/placenet/placement-backend/internal/pkg/apperrors"
)

// applicationStore is the persistence surface the tracker needs.
// Declared here so tests can substitute an in-memory store.
type applicationStore interface {
	Create(ctx context.Context, app *models.Application) error
	GetByStudentAndJob(ctx context.Context, studentID, jobID int64) (*models.Application, error)
	Update(ctx context.Context, app *models.Application) error
	ListByJob(ctx context.Context, jobID int64) ([]models.JobApplicant, error)
	ListByStudent(ctx context.Context, studentID int64) ([]models.AppliedJob, error)
	CheckConsistency(ctx context.Context) (int, []repositories.StatusMismatch, error)
}

type jobReader interface {
	GetByID(ctx context.Context, id int64) (*models.Job, error)
}

type userReader interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

// ApplicationService defines the interface for application lifecycle operations
type ApplicationService interface {
	Apply(ctx context.Context, studentID, jobID int64) (*dto.AppliedJobResponse, error)
	UpdateStatus(ctx context.Context, req *dto.UpdateApplicationStatusRequest) (*dto.AppliedJobResponse, error)
	ListApplicants(ctx context.Context, jobID int64) ([]dto.ApplicantResponse, error)
	ListAppliedJobs(ctx context.Context, studentID int64) ([]dto.AppliedJobResponse, error)
	CheckConsistency(ctx context.Context) (*dto.ConsistencyReport, error)
}

// applicationServiceImpl implements ApplicationService
type applicationServiceImpl struct {
	applicationRepo applicationStore
	jobRepo         jobReader
	userRepo        userReader
	logger          zerolog.Logger
}

// NewApplicationService creates a new ApplicationService
func NewApplicationService(
	applicationRepo applicationStore,
	jobRepo jobReader,
	userRepo userReader,
	logger zerolog.Logger,
) ApplicationService {
	return &applicationServiceImpl{
		applicationRepo: applicationRepo,
		jobRepo:         jobRepo,
		userRepo:        userRepo,
		logger:          logger,
	}
}

// Apply records a student's application to a job. The caller's identity is
// re-read from storage rather than trusted from the token so a revoked
// approval takes effect immediately. The unique constraint behind
// applicationRepo.Create makes the duplicate check race-free.
func (s *applicationServiceImpl) Apply(ctx context.Context, studentID, jobID int64) (*dto.AppliedJobResponse, error) {
	student, err := s.userRepo.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if student.RoleType != models.RoleStudent {
		return nil, apperrors.ErrNotStudent
	}
	if !student.IsApproved() {
		s.logger.Warn().Int64("studentID", studentID).Int64("jobID", jobID).Msg("Unapproved student attempted to apply")
		return nil, apperrors.ErrNotApproved
	}

	job, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if time.Now().After(job.Deadline) {
		return nil, apperrors.ErrDeadlinePassed
	}

	app := &models.Application{
		StudentID: studentID,
		JobID:     jobID,
	}
	if err := s.applicationRepo.Create(ctx, app); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("studentID", studentID).
		Int64("jobID", jobID).
		Int64("applicationID", app.ID).
		Msg("Application created")

	resp := appliedJobResponse(app, job)
	return &resp, nil
}

// UpdateStatus patches an application's status and round fields. Only
// placement staff reach this method (enforced at the route); the applying
// student cannot move their own application.
func (s *applicationServiceImpl) UpdateStatus(ctx context.Context, req *dto.UpdateApplicationStatusRequest) (*dto.AppliedJobResponse, error) {
	app, err := s.applicationRepo.GetByStudentAndJob(ctx, req.StudentID, req.JobID)
	if err != nil {
		return nil, err
	}

	if req.Status != nil {
		target := models.ApplicationStatus(*req.Status)
		if err := validateTransition(app.Status, target); err != nil {
			return nil, err
		}
		if target == models.StatusHired && req.Package == nil && app.Package == nil {
			return nil, apperrors.ErrMissingPackage
		}
		app.Status = target
	} else if app.Status.Terminal() && patchesRounds(req) {
		// Round progress is frozen once the outcome is decided
		return nil, apperrors.ErrInvalidTransition
	}

	if req.CurrentRound != nil {
		app.CurrentRound = req.CurrentRound
	}
	if req.RoundStatus != nil {
		rs := models.RoundStatus(*req.RoundStatus)
		app.RoundStatus = &rs
	}
	if req.Package != nil {
		app.Package = req.Package
	}
	if req.SelectionDate != nil {
		app.SelectionDate = req.SelectionDate
	}
	if req.JoiningDate != nil {
		app.JoiningDate = req.JoiningDate
	}

	if err := s.applicationRepo.Update(ctx, app); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("studentID", req.StudentID).
		Int64("jobID", req.JobID).
		Str("status", string(app.Status)).
		Msg("Application status updated")

	job, err := s.jobRepo.GetByID(ctx, req.JobID)
	if err != nil {
		return nil, err
	}
	resp := appliedJobResponse(app, job)
	return &resp, nil
}

// validateTransition enforces the status state machine:
// APPLIED may move to INTERVIEW, HIRED or REJECTED; INTERVIEW may move to
// HIRED or REJECTED; HIRED and REJECTED are terminal. Re-asserting the
// current status is a no-op, not an error.
func validateTransition(from, to models.ApplicationStatus) error {
	if from == to {
		return nil
	}
	if from.Terminal() {
		return apperrors.ErrInvalidTransition
	}
	switch to {
	case models.StatusInterview:
		if from != models.StatusApplied {
			return apperrors.ErrInvalidTransition
		}
	case models.StatusHired, models.StatusRejected:
		// Reachable from APPLIED or INTERVIEW
	default:
		return apperrors.ErrInvalidTransition
	}
	return nil
}

func patchesRounds(req *dto.UpdateApplicationStatusRequest) bool {
	return req.CurrentRound != nil || req.RoundStatus != nil
}

// ListApplicants returns the staff-facing applicant list for a job
func (s *applicationServiceImpl) ListApplicants(ctx context.Context, jobID int64) ([]dto.ApplicantResponse, error) {
	if _, err := s.jobRepo.GetByID(ctx, jobID); err != nil {
		return nil, err
	}

	applicants, err := s.applicationRepo.ListByJob(ctx, jobID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.ApplicantResponse, 0, len(applicants))
	for _, a := range applicants {
		responses = append(responses, dto.ApplicantResponse{
			StudentID:    a.StudentID,
			Name:         fmt.Sprintf("%s %s", a.FirstName, a.LastName),
			Email:        a.Email,
			RollNumber:   a.RollNumber,
			Status:       string(a.Status),
			CurrentRound: a.CurrentRound,
			RoundStatus:  roundStatusString(a.RoundStatus),
			AppliedAt:    a.AppliedAt,
		})
	}
	return responses, nil
}

// ListAppliedJobs returns the student-facing view of their applications
func (s *applicationServiceImpl) ListAppliedJobs(ctx context.Context, studentID int64) ([]dto.AppliedJobResponse, error) {
	applied, err := s.applicationRepo.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.AppliedJobResponse, 0, len(applied))
	for _, a := range applied {
		responses = append(responses, dto.AppliedJobResponse{
			JobID:        a.JobID,
			JobTitle:     a.JobTitle,
			CompanyName:  a.CompanyName,
			Status:       string(a.Status),
			CurrentRound: a.CurrentRound,
			RoundStatus:  roundStatusString(a.RoundStatus),
			Package:      a.Package,
			AppliedAt:    a.AppliedAt,
		})
	}
	return responses, nil
}

// CheckConsistency compares the job-side and student-side projections and
// reports any pair whose statuses disagree. With the single authoritative
// applications table the report should always be empty; a non-empty report
// means manual repair is needed.
func (s *applicationServiceImpl) CheckConsistency(ctx context.Context) (*dto.ConsistencyReport, error) {
	checked, mismatches, err := s.applicationRepo.CheckConsistency(ctx)
	if err != nil {
		return nil, err
	}

	report := &dto.ConsistencyReport{
		Checked:   checked,
		Conflicts: make([]dto.ConsistencyConflict, 0, len(mismatches)),
	}
	for _, m := range mismatches {
		report.Conflicts = append(report.Conflicts, dto.ConsistencyConflict{
			StudentID:     m.StudentID,
			JobID:         m.JobID,
			JobSideStatus: string(m.JobSideStatus),
			StudentStatus: string(m.StudentSideStatus),
		})
	}

	if len(report.Conflicts) > 0 {
		s.logger.Error().
			Int("conflicts", len(report.Conflicts)).
			Msg("Projection consistency check found divergent applications")
	}
	return report, nil
}

func appliedJobResponse(app *models.Application, job *models.Job) dto.AppliedJobResponse {
	resp := dto.AppliedJobResponse{
		JobID:        app.JobID,
		JobTitle:     job.Title,
		Status:       string(app.Status),
		CurrentRound: app.CurrentRound,
		RoundStatus:  roundStatusString(app.RoundStatus),
		Package:      app.Package,
		AppliedAt:    app.AppliedAt,
	}
	if job.Company != nil {
		resp.CompanyName = &job.Company.Name
	}
	return resp
}

func roundStatusString(rs *models.RoundStatus) *string {
	if rs == nil {
		return nil
	}
	s := string(*rs)
	return &s
}
