package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/placenet/placement-backend/internal/app/models"
	"github.com/placenet/placement-backend/internal/app/models/dto"
	"github.com/placenet/placement-backend/internal/pkg/apperrors"
	"github.com/placenet/placement-backend/internal/pkg/email"
)

type approvalUserStore interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	ApproveStudent(ctx context.Context, userID int64) error
	ListPendingStudents(ctx context.Context) ([]*models.User, error)
	Delete(ctx context.Context, id int64) error
}

// ApprovalService defines the interface for the student approval gate
type ApprovalService interface {
	ListPending(ctx context.Context) ([]dto.PendingStudentResponse, error)
	Approve(ctx context.Context, studentEmail string) error
	Reject(ctx context.Context, studentEmail string) error
}

// approvalServiceImpl implements ApprovalService
type approvalServiceImpl struct {
	userRepo     approvalUserStore
	emailService email.EmailService
	logger       zerolog.Logger
}

// NewApprovalService creates a new ApprovalService
func NewApprovalService(userRepo approvalUserStore, emailService email.EmailService, logger zerolog.Logger) ApprovalService {
	return &approvalServiceImpl{
		userRepo:     userRepo,
		emailService: emailService,
		logger:       logger,
	}
}

// ListPending returns the queue of students awaiting approval
func (s *approvalServiceImpl) ListPending(ctx context.Context) ([]dto.PendingStudentResponse, error) {
	students, err := s.userRepo.ListPendingStudents(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.PendingStudentResponse, 0, len(students))
	for _, u := range students {
		resp := dto.PendingStudentResponse{
			UserID:    u.ID,
			Email:     u.Email,
			FirstName: u.FirstName,
			LastName:  u.LastName,
			CreatedAt: u.CreatedAt,
		}
		if u.StudentProfile != nil {
			resp.RollNumber = u.StudentProfile.RollNumber
			resp.Branch = u.StudentProfile.Branch
		}
		responses = append(responses, resp)
	}
	return responses, nil
}

// Approve flips the approval flag for a student. Approving an already
// approved student succeeds without effect so client retries are safe.
func (s *approvalServiceImpl) Approve(ctx context.Context, studentEmail string) error {
	user, err := s.userRepo.GetByEmail(ctx, studentEmail)
	if err != nil {
		return err
	}
	if user.RoleType != models.RoleStudent {
		return apperrors.ErrNotStudent
	}
	if user.StudentProfile != nil && user.StudentProfile.Approved {
		return nil
	}

	if err := s.userRepo.ApproveStudent(ctx, user.ID); err != nil {
		return err
	}

	s.logger.Info().Int64("userID", user.ID).Str("email", studentEmail).Msg("Student approved")

	if err := s.emailService.SendApprovalEmail(user.Email, user.FirstName); err != nil {
		// The approval itself committed; a failed notification is not fatal
		s.logger.Warn().Err(err).Str("email", studentEmail).Msg("Failed to send approval email")
	}
	return nil
}

// Reject removes an unapproved student account outright
func (s *approvalServiceImpl) Reject(ctx context.Context, studentEmail string) error {
	user, err := s.userRepo.GetByEmail(ctx, studentEmail)
	if err != nil {
		return err
	}
	if user.RoleType != models.RoleStudent {
		return apperrors.ErrNotStudent
	}
	if user.StudentProfile != nil && user.StudentProfile.Approved {
		return apperrors.NewConflictError("cannot reject an already approved student")
	}

	if err := s.userRepo.Delete(ctx, user.ID); err != nil {
		return err
	}

	s.logger.Info().Int64("userID", user.ID).Str("email", studentEmail).Msg("Student registration rejected")
	return nil
}
