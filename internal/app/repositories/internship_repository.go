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

// InternshipRepository handles database operations for internships
type InternshipRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewInternshipRepository creates a new InternshipRepository
func NewInternshipRepository(db *pgxpool.Pool) *InternshipRepository {
	return &InternshipRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

const internshipColumns = `id, student_id, company_name, role, type, duration_days,
	stipend, start_date, end_date, description, created_at, updated_at`

func scanInternship(row pgx.Row) (*models.Internship, error) {
	var in models.Internship
	err := row.Scan(
		&in.ID, &in.StudentID, &in.CompanyName, &in.Role, &in.Type, &in.DurationDays,
		&in.Stipend, &in.StartDate, &in.EndDate, &in.Description, &in.CreatedAt, &in.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &in, nil
}

// Create inserts a new internship record
func (r *InternshipRepository) Create(ctx context.Context, in *models.Internship) error {
	sql, args, err := r.sb.Insert("internships").
		Columns("student_id", "company_name", "role", "type", "duration_days",
			"stipend", "start_date", "end_date", "description").
		Values(in.StudentID, in.CompanyName, in.Role, in.Type, in.DurationDays,
			in.Stipend, in.StartDate, in.EndDate, in.Description).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create internship query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&in.ID, &in.CreatedAt, &in.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating internship: %w", err)
	}
	return nil
}

// GetByID retrieves an internship by its ID
func (r *InternshipRepository) GetByID(ctx context.Context, id int64) (*models.Internship, error) {
	sql, args, err := r.sb.Select(internshipColumns).
		From("internships").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get internship query: %w", err)
	}

	in, err := scanInternship(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrInternshipNotFound
		}
		return nil, fmt.Errorf("error retrieving internship: %w", err)
	}
	return in, nil
}

// ListByStudent returns all internships owned by a student, newest first
func (r *InternshipRepository) ListByStudent(ctx context.Context, studentID int64) ([]models.Internship, error) {
	sql, args, err := r.sb.Select(internshipColumns).
		From("internships").
		Where(squirrel.Eq{"student_id": studentID}).
		OrderBy("start_date DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list internships query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing internships: %w", err)
	}
	defer rows.Close()

	var internships []models.Internship
	for rows.Next() {
		in, err := scanInternship(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning internship row: %w", err)
		}
		internships = append(internships, *in)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating internships: %w", err)
	}
	return internships, nil
}

// Update rewrites the mutable fields of an internship record
func (r *InternshipRepository) Update(ctx context.Context, in *models.Internship) error {
	sql, args, err := r.sb.Update("internships").
		Set("company_name", in.CompanyName).
		Set("role", in.Role).
		Set("type", in.Type).
		Set("duration_days", in.DurationDays).
		Set("stipend", in.Stipend).
		Set("start_date", in.StartDate).
		Set("end_date", in.EndDate).
		Set("description", in.Description).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": in.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update internship query: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating internship: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrInternshipNotFound
	}
	return nil
}

// Delete removes an internship record
func (r *InternshipRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("internships").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete internship query: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting internship: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrInternshipNotFound
	}
	return nil
}
