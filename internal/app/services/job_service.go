package services

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/placenet/placement-backend/internal/app/models"
	"github.com/placenet/placement-backend/internal/app/models/dto"
	"github.com/placenet/placement-backend/internal/app/repositories"
	"github.com/placenet/placement-backend/internal/db"
	"github.com/placenet/placement-backend/internal/pkg/filestorage"
)

// JobService defines the interface for job catalog operations
type JobService interface {
	Create(ctx context.Context, postedBy int64, req *dto.CreateJobRequest) (*dto.JobResponse, error)
	GetByID(ctx context.Context, id int64) (*dto.JobResponse, error)
	GetAll(ctx context.Context, page, pageSize int) ([]dto.JobResponse, int64, error)
	Update(ctx context.Context, id int64, req *dto.UpdateJobRequest) (*dto.JobResponse, error)
	Delete(ctx context.Context, id int64) error
}

// jobServiceImpl implements JobService
type jobServiceImpl struct {
	pool            *pgxpool.Pool
	jobRepo         *repositories.JobRepository
	companyRepo     *repositories.CompanyRepository
	applicationRepo *repositories.ApplicationRepository
	fileRepo        *repositories.FileRepository
	fileStorage     filestorage.FileStorage
	logger          zerolog.Logger
}

// NewJobService creates a new JobService
func NewJobService(
	pool *pgxpool.Pool,
	jobRepo *repositories.JobRepository,
	companyRepo *repositories.CompanyRepository,
	applicationRepo *repositories.ApplicationRepository,
	fileRepo *repositories.FileRepository,
	fileStorage filestorage.FileStorage,
	logger zerolog.Logger,
) JobService {
	return &jobServiceImpl{
		pool:            pool,
		jobRepo:         jobRepo,
		companyRepo:     companyRepo,
		applicationRepo: applicationRepo,
		fileRepo:        fileRepo,
		fileStorage:     fileStorage,
		logger:          logger,
	}
}

// Create posts a job against an existing company
func (s *jobServiceImpl) Create(ctx context.Context, postedBy int64, req *dto.CreateJobRequest) (*dto.JobResponse, error) {
	company, err := s.companyRepo.GetByID(ctx, req.CompanyID)
	if err != nil {
		return nil, err
	}

	job := &models.Job{
		Title:       req.Title,
		CompanyID:   req.CompanyID,
		Salary:      req.Salary,
		Deadline:    req.Deadline,
		Description: req.Description,
		Eligibility: req.Eligibility,
		HowToApply:  req.HowToApply,
		PostedBy:    postedBy,
	}
	id, err := s.jobRepo.Create(ctx, job)
	if err != nil {
		return nil, err
	}
	job.ID = id
	job.Company = company

	s.logger.Info().Int64("jobID", id).Int64("companyID", company.ID).Msg("Job posted")

	resp := dto.FromJob(job)
	return &resp, nil
}

// GetByID retrieves a job posting. The company block is nil when the
// company record was deleted after the job was posted.
func (s *jobServiceImpl) GetByID(ctx context.Context, id int64) (*dto.JobResponse, error) {
	job, err := s.jobRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := dto.FromJob(job)
	return &resp, nil
}

// GetAll lists job postings, newest first
func (s *jobServiceImpl) GetAll(ctx context.Context, page, pageSize int) ([]dto.JobResponse, int64, error) {
	offset := uint64((page - 1) * pageSize)
	jobs, total, err := s.jobRepo.GetAll(ctx, offset, pageSize)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]dto.JobResponse, 0, len(jobs))
	for _, job := range jobs {
		responses = append(responses, dto.FromJob(job))
	}
	return responses, total, nil
}

// Update rewrites a job posting's mutable fields
func (s *jobServiceImpl) Update(ctx context.Context, id int64, req *dto.UpdateJobRequest) (*dto.JobResponse, error) {
	job, err := s.jobRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	job.Title = req.Title
	job.Salary = req.Salary
	job.Deadline = req.Deadline
	job.Description = req.Description
	job.Eligibility = req.Eligibility
	job.HowToApply = req.HowToApply

	if err := s.jobRepo.Update(ctx, job); err != nil {
		return nil, err
	}

	resp := dto.FromJob(job)
	return &resp, nil
}

// Delete removes a job and its applications in one transaction, including
// the offer letter records those applications reference. Stored artifacts
// are removed from disk only after the transaction commits.
func (s *jobServiceImpl) Delete(ctx context.Context, id int64) error {
	if _, err := s.jobRepo.GetByID(ctx, id); err != nil {
		return err
	}

	var orphanedPaths []string
	err := db.WithTransaction(ctx, s.pool, func(ctx context.Context, tx pgx.Tx) error {
		fileIDs, err := s.applicationRepo.OfferLetterFileIDsByJob(ctx, id)
		if err != nil {
			return err
		}
		for _, fileID := range fileIDs {
			file, err := s.fileRepo.GetByID(ctx, fileID)
			if err != nil {
				return err
			}
			orphanedPaths = append(orphanedPaths, file.FileURL)
		}

		// Applications cascade with the job; their offer letter references
		// go with them, so the file rows can be removed in the same
		// transaction without leaving a dangling pointer either way.
		if err := s.jobRepo.Delete(ctx, tx, id); err != nil {
			return err
		}
		for _, fileID := range fileIDs {
			if err := s.fileRepo.Delete(ctx, tx, fileID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	for _, path := range orphanedPaths {
		if err := s.fileStorage.DeleteFile(path); err != nil {
			s.logger.Warn().Err(err).Str("path", path).Msg("Failed to remove orphaned offer letter from storage")
		}
	}

	s.logger.Info().Int64("jobID", id).Msg("Job deleted")
	return nil
}
