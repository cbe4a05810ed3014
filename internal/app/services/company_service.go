package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/placenet/placement-backend/internal/app/models"
	"github.com/placenet/placement-backend/internal/app/models/dto"
	"github.com/placenet/placement-backend/internal/app/repositories"
)

// CompanyService defines the interface for company catalog operations
type CompanyService interface {
	Create(ctx context.Context, createdBy int64, req *dto.CreateCompanyRequest) (*models.Company, error)
	GetByID(ctx context.Context, id int64) (*models.Company, error)
	GetAll(ctx context.Context, search *string, page, pageSize int) ([]models.Company, int64, error)
	Update(ctx context.Context, id int64, req *dto.UpdateCompanyRequest) (*models.Company, error)
	Delete(ctx context.Context, id int64) error
}

// companyServiceImpl implements CompanyService
type companyServiceImpl struct {
	companyRepo *repositories.CompanyRepository
	logger      zerolog.Logger
}

// NewCompanyService creates a new CompanyService
func NewCompanyService(companyRepo *repositories.CompanyRepository, logger zerolog.Logger) CompanyService {
	return &companyServiceImpl{
		companyRepo: companyRepo,
		logger:      logger,
	}
}

// Create adds a company record
func (s *companyServiceImpl) Create(ctx context.Context, createdBy int64, req *dto.CreateCompanyRequest) (*models.Company, error) {
	company := &models.Company{
		Name:        req.Name,
		Location:    req.Location,
		Website:     req.Website,
		Difficulty:  models.DifficultyTier(req.Difficulty),
		Description: req.Description,
		CreatedBy:   createdBy,
	}
	id, err := s.companyRepo.Create(ctx, company)
	if err != nil {
		return nil, err
	}
	company.ID = id

	s.logger.Info().Int64("companyID", id).Str("name", company.Name).Msg("Company created")
	return company, nil
}

// GetByID retrieves a company record
func (s *companyServiceImpl) GetByID(ctx context.Context, id int64) (*models.Company, error) {
	return s.companyRepo.GetByID(ctx, id)
}

// GetAll lists companies with optional name search and pagination
func (s *companyServiceImpl) GetAll(ctx context.Context, search *string, page, pageSize int) ([]models.Company, int64, error) {
	offset := uint64((page - 1) * pageSize)
	return s.companyRepo.GetAll(ctx, search, offset, pageSize)
}

// Update rewrites a company record
func (s *companyServiceImpl) Update(ctx context.Context, id int64, req *dto.UpdateCompanyRequest) (*models.Company, error) {
	company, err := s.companyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	company.Name = req.Name
	company.Location = req.Location
	company.Website = req.Website
	company.Difficulty = models.DifficultyTier(req.Difficulty)
	company.Description = req.Description

	if err := s.companyRepo.Update(ctx, company); err != nil {
		return nil, err
	}
	return company, nil
}

// Delete removes a company record. Jobs referencing it are left in place;
// job reads degrade to a nil company rather than failing.
func (s *companyServiceImpl) Delete(ctx context.Context, id int64) error {
	if err := s.companyRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("companyID", id).Msg("Company deleted")
	return nil
}
