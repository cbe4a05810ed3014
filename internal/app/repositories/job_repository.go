package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/placenet/placement-backend/internal/app/models"
	"github.com/placenet/placement-backend/internal/pkg/apperrors"
)

// JobRepository handles database operations for job postings
type JobRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewJobRepository creates a new JobRepository
func NewJobRepository(db *pgxpool.Pool) *JobRepository {
	return &JobRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

const jobColumns = `j.id, j.title, j.company_id, j.salary, j.deadline, j.description,
	j.eligibility, j.how_to_apply, j.posted_by, j.created_at, j.updated_at`

// scanJob reads a job row joined with its (possibly absent) company
func scanJob(row pgx.Row) (*models.Job, error) {
	var job models.Job
	var companyID *int64
	var companyName, companyLocation, companyWebsite, companyDescription *string
	var companyDifficulty *models.DifficultyTier

	err := row.Scan(
		&job.ID, &job.Title, &job.CompanyID, &job.Salary, &job.Deadline, &job.Description,
		&job.Eligibility, &job.HowToApply, &job.PostedBy, &job.CreatedAt, &job.UpdatedAt,
		&companyID, &companyName, &companyLocation, &companyWebsite, &companyDifficulty, &companyDescription,
	)
	if err != nil {
		return nil, err
	}

	// The company may have been deleted after the job was posted
	if companyID != nil {
		job.Company = &models.Company{
			ID:          *companyID,
			Name:        *companyName,
			Location:    *companyLocation,
			Difficulty:  *companyDifficulty,
		}
		if companyWebsite != nil {
			job.Company.Website = *companyWebsite
		}
		if companyDescription != nil {
			job.Company.Description = *companyDescription
		}
	}

	return &job, nil
}

func (r *JobRepository) selectJobs() squirrel.SelectBuilder {
	return r.sb.Select(jobColumns + `,
		c.id, c.name, c.location, c.website, c.difficulty, c.description`).
		From("jobs j").
		LeftJoin("companies c ON c.id = j.company_id")
}

// Create inserts a job posting and returns its ID
func (r *JobRepository) Create(ctx context.Context, job *models.Job) (int64, error) {
	sql, args, err := r.sb.Insert("jobs").
		Columns("title", "company_id", "salary", "deadline", "description", "eligibility", "how_to_apply", "posted_by").
		Values(job.Title, job.CompanyID, job.Salary, job.Deadline, job.Description, job.Eligibility, job.HowToApply, job.PostedBy).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create job query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("error creating job: %w", err)
	}
	return id, nil
}

// GetByID retrieves a job by ID along with its company, if still present
func (r *JobRepository) GetByID(ctx context.Context, id int64) (*models.Job, error) {
	sql, args, err := r.selectJobs().
		Where(squirrel.Eq{"j.id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get job query: %w", err)
	}

	job, err := scanJob(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrJobNotFound
		}
		return nil, fmt.Errorf("error retrieving job: %w", err)
	}
	return job, nil
}

// GetAll retrieves job postings with pagination, newest first
func (r *JobRepository) GetAll(ctx context.Context, offset uint64, limit int) ([]*models.Job, int64, error) {
	countSQL, countArgs, err := r.sb.Select("COUNT(*)").From("jobs").ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count jobs query: %w", err)
	}
	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting jobs: %w", err)
	}

	sql, args, err := r.selectJobs().
		OrderBy("j.created_at DESC").
		Offset(offset).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list jobs query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing jobs: %w", err)
	}
	defer rows.Close()

	var jobs []*models.Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning job row: %w", err)
		}
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating jobs: %w", err)
	}
	return jobs, total, nil
}

// Update updates an existing job posting
func (r *JobRepository) Update(ctx context.Context, job *models.Job) error {
	sql, args, err := r.sb.Update("jobs").
		Set("title", job.Title).
		Set("salary", job.Salary).
		Set("deadline", job.Deadline).
		Set("description", job.Description).
		Set("eligibility", job.Eligibility).
		Set("how_to_apply", job.HowToApply).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": job.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update job query: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating job: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrJobNotFound
	}
	return nil
}

// Delete removes a job within the caller's transaction. Application rows
// cascade at the database level; the caller is responsible for cleaning up
// offer-letter artifacts first.
func (r *JobRepository) Delete(ctx context.Context, tx pgx.Tx, id int64) error {
	sql, args, err := r.sb.Delete("jobs").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete job query: %w", err)
	}

	result, err := tx.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting job: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrJobNotFound
	}
	return nil
}
