package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/placenet/placement-backend/internal/app/models"
	"github.com/placenet/placement-backend/internal/app/models/dto"
	"github.com/placenet/placement-backend/internal/pkg/apperrors"
)

type internshipStore interface {
	Create(ctx context.Context, in *models.Internship) error
	GetByID(ctx context.Context, id int64) (*models.Internship, error)
	ListByStudent(ctx context.Context, studentID int64) ([]models.Internship, error)
	Update(ctx context.Context, in *models.Internship) error
	Delete(ctx context.Context, id int64) error
}

// InternshipService defines the interface for student internship records
type InternshipService interface {
	Create(ctx context.Context, studentID int64, req *dto.CreateInternshipRequest) (*models.Internship, error)
	ListByStudent(ctx context.Context, studentID int64) ([]models.Internship, error)
	Update(ctx context.Context, studentID, internshipID int64, req *dto.UpdateInternshipRequest) (*models.Internship, error)
	Delete(ctx context.Context, studentID, internshipID int64) error
}

// internshipServiceImpl implements InternshipService
type internshipServiceImpl struct {
	internshipRepo internshipStore
	logger         zerolog.Logger
}

// NewInternshipService creates a new InternshipService
func NewInternshipService(internshipRepo internshipStore, logger zerolog.Logger) InternshipService {
	return &internshipServiceImpl{
		internshipRepo: internshipRepo,
		logger:         logger,
	}
}

// Create records an internship for the owning student
func (s *internshipServiceImpl) Create(ctx context.Context, studentID int64, req *dto.CreateInternshipRequest) (*models.Internship, error) {
	in := &models.Internship{
		StudentID:    studentID,
		CompanyName:  req.CompanyName,
		Role:         req.Role,
		Type:         models.InternshipType(req.Type),
		DurationDays: req.DurationDays,
		Stipend:      req.Stipend,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		Description:  req.Description,
	}
	if err := s.internshipRepo.Create(ctx, in); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("internshipID", in.ID).Int64("studentID", studentID).Msg("Internship recorded")
	return in, nil
}

// ListByStudent returns one student's internship records. Students read
// their own; staff may read any student's.
func (s *internshipServiceImpl) ListByStudent(ctx context.Context, studentID int64) ([]models.Internship, error) {
	return s.internshipRepo.ListByStudent(ctx, studentID)
}

// Update edits an internship record owned by the caller
func (s *internshipServiceImpl) Update(ctx context.Context, studentID, internshipID int64, req *dto.UpdateInternshipRequest) (*models.Internship, error) {
	in, err := s.internshipRepo.GetByID(ctx, internshipID)
	if err != nil {
		return nil, err
	}
	if in.StudentID != studentID {
		return nil, apperrors.ErrPermissionDenied
	}

	in.CompanyName = req.CompanyName
	in.Role = req.Role
	in.Type = models.InternshipType(req.Type)
	in.DurationDays = req.DurationDays
	in.Stipend = req.Stipend
	in.StartDate = req.StartDate
	in.EndDate = req.EndDate
	in.Description = req.Description

	if err := s.internshipRepo.Update(ctx, in); err != nil {
		return nil, err
	}
	return in, nil
}

// Delete removes an internship record owned by the caller
func (s *internshipServiceImpl) Delete(ctx context.Context, studentID, internshipID int64) error {
	in, err := s.internshipRepo.GetByID(ctx, internshipID)
	if err != nil {
		return err
	}
	if in.StudentID != studentID {
		return apperrors.ErrPermissionDenied
	}
	return s.internshipRepo.Delete(ctx, internshipID)
}
