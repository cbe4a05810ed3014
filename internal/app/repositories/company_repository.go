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

// CompanyRepository handles database operations for companies
type CompanyRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewCompanyRepository creates a new CompanyRepository
func NewCompanyRepository(db *pgxpool.Pool) *CompanyRepository {
	return &CompanyRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a company and returns its ID
func (r *CompanyRepository) Create(ctx context.Context, company *models.Company) (int64, error) {
	sql, args, err := r.sb.Insert("companies").
		Columns("name", "location", "website", "difficulty", "description", "created_by").
		Values(company.Name, company.Location, company.Website, company.Difficulty, company.Description, company.CreatedBy).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create company query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("error creating company: %w", err)
	}
	return id, nil
}

// GetByID retrieves a company by ID
func (r *CompanyRepository) GetByID(ctx context.Context, id int64) (*models.Company, error) {
	sql, args, err := r.sb.Select("id", "name", "location", "website", "difficulty", "description", "created_by", "created_at", "updated_at").
		From("companies").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get company query: %w", err)
	}

	var company models.Company
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&company.ID, &company.Name, &company.Location, &company.Website,
		&company.Difficulty, &company.Description, &company.CreatedBy,
		&company.CreatedAt, &company.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCompanyNotFound
		}
		return nil, fmt.Errorf("error retrieving company: %w", err)
	}
	return &company, nil
}

// GetAll retrieves companies with optional name search and pagination
func (r *CompanyRepository) GetAll(ctx context.Context, search *string, offset uint64, limit int) ([]models.Company, int64, error) {
	builder := r.sb.Select("id", "name", "location", "website", "difficulty", "description", "created_by", "created_at", "updated_at",
		"COUNT(*) OVER() AS total_count").
		From("companies")

	if search != nil && *search != "" {
		builder = builder.Where(squirrel.ILike{"name": "%" + *search + "%"})
	}

	sql, args, err := builder.
		OrderBy("name").
		Offset(offset).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list companies query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing companies: %w", err)
	}
	defer rows.Close()

	var companies []models.Company
	var total int64
	for rows.Next() {
		var company models.Company
		if err := rows.Scan(
			&company.ID, &company.Name, &company.Location, &company.Website,
			&company.Difficulty, &company.Description, &company.CreatedBy,
			&company.CreatedAt, &company.UpdatedAt, &total); err != nil {
			return nil, 0, fmt.Errorf("error scanning company row: %w", err)
		}
		companies = append(companies, company)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating companies: %w", err)
	}
	return companies, total, nil
}

// Update updates an existing company
func (r *CompanyRepository) Update(ctx context.Context, company *models.Company) error {
	sql, args, err := r.sb.Update("companies").
		Set("name", company.Name).
		Set("location", company.Location).
		Set("website", company.Website).
		Set("difficulty", company.Difficulty).
		Set("description", company.Description).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": company.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update company query: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating company: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrCompanyNotFound
	}
	return nil
}

// Delete removes a company. Jobs referencing it are intentionally left in
// place; job reads tolerate the missing company.
func (r *CompanyRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("companies").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete company query: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting company: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrCompanyNotFound
	}
	return nil
}
