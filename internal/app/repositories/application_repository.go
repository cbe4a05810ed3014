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
	"github.com/placenet/placement-backend/internal/pkg/dberrors"
	"github.com/placenet/placement-backend/internal/pkg/logger"
)

// StatusMismatch records one (student, job) pair whose job-side and
// student-side projections report different statuses. With a single
// authoritative applications table this should never occur; the check
// exists for repair tooling.
type StatusMismatch struct {
	StudentID         int64
	JobID             int64
	JobSideStatus     models.ApplicationStatus
	StudentSideStatus models.ApplicationStatus
}

// ApplicationRepository handles database operations for applications
type ApplicationRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewApplicationRepository creates a new ApplicationRepository
func NewApplicationRepository(db *pgxpool.Pool) *ApplicationRepository {
	return &ApplicationRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts an application row. The unique constraint on
// (student_id, job_id) makes the duplicate check race-free under
// concurrent double-submits.
func (r *ApplicationRepository) Create(ctx context.Context, app *models.Application) error {
	sql, args, err := r.sb.Insert("applications").
		Columns("student_id", "job_id", "status").
		Values(app.StudentID, app.JobID, models.StatusApplied).
		Suffix("RETURNING id, applied_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create application query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&app.ID, &app.AppliedAt, &app.UpdatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "applications_student_job_key") {
			logger.Warn().Int64("studentID", app.StudentID).Int64("jobID", app.JobID).Msg("Duplicate application attempt")
			return apperrors.ErrDuplicateApplication
		}
		logger.Error().Err(err).Int64("studentID", app.StudentID).Int64("jobID", app.JobID).Msg("Error executing create application query")
		return fmt.Errorf("error creating application: %w", err)
	}

	app.Status = models.StatusApplied
	return nil
}

const applicationColumns = `id, student_id, job_id, status, current_round, round_status,
	package, selection_date, joining_date, offer_letter_file_id, applied_at, updated_at`

func scanApplication(row pgx.Row) (*models.Application, error) {
	var app models.Application
	err := row.Scan(
		&app.ID, &app.StudentID, &app.JobID, &app.Status, &app.CurrentRound, &app.RoundStatus,
		&app.Package, &app.SelectionDate, &app.JoiningDate, &app.OfferLetterFileID,
		&app.AppliedAt, &app.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &app, nil
}

// GetByStudentAndJob retrieves the application for one (student, job) pair
func (r *ApplicationRepository) GetByStudentAndJob(ctx context.Context, studentID, jobID int64) (*models.Application, error) {
	sql, args, err := r.sb.Select(applicationColumns).
		From("applications").
		Where(squirrel.Eq{"student_id": studentID, "job_id": jobID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get application query: %w", err)
	}

	app, err := scanApplication(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrApplicationNotFound
		}
		return nil, fmt.Errorf("error retrieving application: %w", err)
	}
	return app, nil
}

// Update writes the application's status and round fields. The single row
// backs both projections, so one UPDATE keeps them consistent.
func (r *ApplicationRepository) Update(ctx context.Context, app *models.Application) error {
	sql, args, err := r.sb.Update("applications").
		Set("status", app.Status).
		Set("current_round", app.CurrentRound).
		Set("round_status", app.RoundStatus).
		Set("package", app.Package).
		Set("selection_date", app.SelectionDate).
		Set("joining_date", app.JoiningDate).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": app.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update application query: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating application: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrApplicationNotFound
	}
	return nil
}

// ListByJob returns the job-side applicant projection for staff
func (r *ApplicationRepository) ListByJob(ctx context.Context, jobID int64) ([]models.JobApplicant, error) {
	sql, args, err := r.sb.Select(
		"a.id", "a.student_id", "u.first_name", "u.last_name", "u.email", "sp.roll_number",
		"a.status", "a.current_round", "a.round_status", "a.applied_at").
		From("applications a").
		Join("users u ON u.id = a.student_id").
		Join("student_profiles sp ON sp.user_id = a.student_id").
		Where(squirrel.Eq{"a.job_id": jobID}).
		OrderBy("a.applied_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list applicants query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing applicants: %w", err)
	}
	defer rows.Close()

	var applicants []models.JobApplicant
	for rows.Next() {
		var a models.JobApplicant
		if err := rows.Scan(
			&a.ApplicationID, &a.StudentID, &a.FirstName, &a.LastName, &a.Email, &a.RollNumber,
			&a.Status, &a.CurrentRound, &a.RoundStatus, &a.AppliedAt); err != nil {
			return nil, fmt.Errorf("error scanning applicant row: %w", err)
		}
		applicants = append(applicants, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating applicants: %w", err)
	}
	return applicants, nil
}

// ListByStudent returns the student-side applied-jobs projection.
// The company join is a LEFT JOIN so a deleted company degrades to a nil
// name instead of dropping the application from the list.
func (r *ApplicationRepository) ListByStudent(ctx context.Context, studentID int64) ([]models.AppliedJob, error) {
	sql, args, err := r.sb.Select(
		"a.id", "a.job_id", "j.title", "c.name",
		"a.status", "a.current_round", "a.round_status", "a.package", "a.applied_at").
		From("applications a").
		Join("jobs j ON j.id = a.job_id").
		LeftJoin("companies c ON c.id = j.company_id").
		Where(squirrel.Eq{"a.student_id": studentID}).
		OrderBy("a.applied_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list applied jobs query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing applied jobs: %w", err)
	}
	defer rows.Close()

	var applied []models.AppliedJob
	for rows.Next() {
		var a models.AppliedJob
		if err := rows.Scan(
			&a.ApplicationID, &a.JobID, &a.JobTitle, &a.CompanyName,
			&a.Status, &a.CurrentRound, &a.RoundStatus, &a.Package, &a.AppliedAt); err != nil {
			return nil, fmt.Errorf("error scanning applied job row: %w", err)
		}
		applied = append(applied, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating applied jobs: %w", err)
	}
	return applied, nil
}

// SetOfferLetter sets or clears the offer letter reference within the
// caller's transaction so the reference and the file row move together.
func (r *ApplicationRepository) SetOfferLetter(ctx context.Context, tx pgx.Tx, applicationID int64, fileID *int64) error {
	sql, args, err := r.sb.Update("applications").
		Set("offer_letter_file_id", fileID).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": applicationID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build set offer letter query: %w", err)
	}

	result, err := tx.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error setting offer letter: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrApplicationNotFound
	}
	return nil
}

// OfferLetterFileIDsByJob returns the offer-letter file references of all
// applications on a job, for cleanup before the job is deleted.
func (r *ApplicationRepository) OfferLetterFileIDsByJob(ctx context.Context, jobID int64) ([]int64, error) {
	sql, args, err := r.sb.Select("offer_letter_file_id").
		From("applications").
		Where(squirrel.Eq{"job_id": jobID}).
		Where(squirrel.NotEq{"offer_letter_file_id": nil}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build offer letter refs query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing offer letter refs: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning offer letter ref: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating offer letter refs: %w", err)
	}
	return ids, nil
}

// CheckConsistency compares the job-side projection (applications joined
// with jobs) against the student-side projection (applications joined with
// users) and reports every pair visible in one view but not the other, or
// visible in both with different statuses.
func (r *ApplicationRepository) CheckConsistency(ctx context.Context) (checked int, mismatches []StatusMismatch, err error) {
	type pairStatus struct {
		status models.ApplicationStatus
		seen   bool
	}
	type pairKey struct {
		studentID int64
		jobID     int64
	}

	collect := func(builder squirrel.SelectBuilder) (map[pairKey]models.ApplicationStatus, error) {
		sql, args, err := builder.ToSql()
		if err != nil {
			return nil, fmt.Errorf("failed to build consistency query: %w", err)
		}
		rows, err := r.db.Query(ctx, sql, args...)
		if err != nil {
			return nil, fmt.Errorf("error running consistency query: %w", err)
		}
		defer rows.Close()

		statuses := make(map[pairKey]models.ApplicationStatus)
		for rows.Next() {
			var key pairKey
			var status models.ApplicationStatus
			if err := rows.Scan(&key.studentID, &key.jobID, &status); err != nil {
				return nil, fmt.Errorf("error scanning consistency row: %w", err)
			}
			statuses[key] = status
		}
		return statuses, rows.Err()
	}

	jobSide, err := collect(r.sb.Select("a.student_id", "a.job_id", "a.status").
		From("applications a").
		Join("jobs j ON j.id = a.job_id"))
	if err != nil {
		return 0, nil, err
	}

	studentSide, err := collect(r.sb.Select("a.student_id", "a.job_id", "a.status").
		From("applications a").
		Join("users u ON u.id = a.student_id"))
	if err != nil {
		return 0, nil, err
	}

	seen := make(map[pairKey]pairStatus, len(jobSide))
	for key, status := range jobSide {
		seen[key] = pairStatus{status: status, seen: true}
	}
	checked = len(jobSide)

	for key, studentStatus := range studentSide {
		entry, ok := seen[key]
		if !ok {
			checked++
			mismatches = append(mismatches, StatusMismatch{
				StudentID:         key.studentID,
				JobID:             key.jobID,
				StudentSideStatus: studentStatus,
			})
			continue
		}
		if entry.status != studentStatus {
			mismatches = append(mismatches, StatusMismatch{
				StudentID:         key.studentID,
				JobID:             key.jobID,
				JobSideStatus:     entry.status,
				StudentSideStatus: studentStatus,
			})
		}
		delete(seen, key)
	}

	// Remaining entries are visible on the job side only
	for key, entry := range seen {
		mismatches = append(mismatches, StatusMismatch{
			StudentID:     key.studentID,
			JobID:         key.jobID,
			JobSideStatus: entry.status,
		})
	}

	return checked, mismatches, nil
}
