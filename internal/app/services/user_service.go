package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/placenet/placement-backend/internal/app/models"
	"github.com/placenet/placement-backend/internal/app/models/dto"
	"github.com/placenet/placement-backend/internal/app/repositories"
)

// UserService defines the interface for user profile operations
type UserService interface {
	GetMe(ctx context.Context, userID int64) (*dto.UserResponse, error)
	UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) (*dto.UserResponse, error)
}

// userServiceImpl implements UserService
type userServiceImpl struct {
	userRepo *repositories.UserRepository
	logger   zerolog.Logger
}

// NewUserService creates a new UserService
func NewUserService(userRepo *repositories.UserRepository, logger zerolog.Logger) UserService {
	return &userServiceImpl{
		userRepo: userRepo,
		logger:   logger,
	}
}

// GetMe returns the caller's own profile
func (s *userServiceImpl) GetMe(ctx context.Context, userID int64) (*dto.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := dto.FromUser(user)
	return &resp, nil
}

// UpdateProfile updates the caller's name and, for students, academic
// fields. The profile-complete flag flips once the academic fields are
// all filled in.
func (s *userServiceImpl) UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	var profile *models.StudentProfile
	if user.StudentProfile != nil {
		profile = user.StudentProfile
		profile.Branch = req.Branch
		profile.GraduationYear = req.GraduationYear
		profile.CGPA = req.CGPA
		profile.ProfileComplete = req.Branch != "" && req.GraduationYear != nil && req.CGPA != nil
	}

	if err := s.userRepo.UpdateProfile(ctx, userID, req.FirstName, req.LastName, profile); err != nil {
		return nil, err
	}

	user.FirstName = req.FirstName
	user.LastName = req.LastName
	resp := dto.FromUser(user)
	return &resp, nil
}
