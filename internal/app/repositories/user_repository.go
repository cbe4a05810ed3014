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
	"github.com/placenet/placement-backend/internal/db"
	"github.com/placenet/placement-backend/internal/pkg/apperrors"
	"github.com/placenet/placement-backend/internal/pkg/dberrors"
	"github.com/placenet/placement-backend/internal/pkg/logger"
)

// UserRepository handles database operations for users and student profiles
type UserRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateUser inserts a user row and returns its ID
func (r *UserRepository) CreateUser(ctx context.Context, user *models.User) (int64, error) {
	sql, args, err := r.sb.Insert("users").
		Columns("email", "password", "first_name", "last_name", "role_type").
		Values(user.Email, user.Password, user.FirstName, user.LastName, user.RoleType).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create user query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "users_email_key") {
			return 0, apperrors.ErrEmailAlreadyExists
		}
		logger.Error().Err(err).Str("email", user.Email).Msg("Error executing create user query")
		return 0, fmt.Errorf("error creating user: %w", err)
	}
	return id, nil
}

// CreateStudent inserts a user row and its student profile in one transaction.
// A registration either creates both rows or neither.
func (r *UserRepository) CreateStudent(ctx context.Context, user *models.User, profile *models.StudentProfile) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		userSQL, userArgs, err := r.sb.Insert("users").
			Columns("email", "password", "first_name", "last_name", "role_type").
			Values(user.Email, user.Password, user.FirstName, user.LastName, models.RoleStudent).
			Suffix("RETURNING id").
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build create user query: %w", err)
		}

		if err := tx.QueryRow(ctx, userSQL, userArgs...).Scan(&user.ID); err != nil {
			if dberrors.IsDuplicateConstraintError(err, "users_email_key") {
				return apperrors.ErrEmailAlreadyExists
			}
			return fmt.Errorf("error creating user: %w", err)
		}

		profile.UserID = user.ID
		profileSQL, profileArgs, err := r.sb.Insert("student_profiles").
			Columns("user_id", "roll_number", "branch", "graduation_year", "cgpa").
			Values(profile.UserID, profile.RollNumber, profile.Branch, profile.GraduationYear, profile.CGPA).
			Suffix("RETURNING id").
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build create profile query: %w", err)
		}

		if err := tx.QueryRow(ctx, profileSQL, profileArgs...).Scan(&profile.ID); err != nil {
			if dberrors.IsDuplicateConstraintError(err, "student_profiles_roll_number_key") {
				return apperrors.NewConflictError("roll number already registered")
			}
			return fmt.Errorf("error creating student profile: %w", err)
		}

		user.StudentProfile = profile
		return nil
	})
}

const userColumns = `u.id, u.email, u.password, u.first_name, u.last_name, u.role_type,
	u.profile_photo_file_id, u.created_at, u.updated_at, u.last_login_at`

func (r *UserRepository) scanUserWithProfile(row pgx.Row) (*models.User, error) {
	var user models.User
	var profile models.StudentProfile
	var profileID *int64
	var rollNumber, branch *string
	var gradYear *int
	var cgpa *float64
	var approved, profileComplete *bool
	var approvedAt *time.Time
	var resumeFileID *int64

	err := row.Scan(
		&user.ID, &user.Email, &user.Password, &user.FirstName, &user.LastName, &user.RoleType,
		&user.ProfilePhotoFileID, &user.CreatedAt, &user.UpdatedAt, &user.LastLoginAt,
		&profileID, &rollNumber, &branch, &gradYear, &cgpa, &approved, &approvedAt, &profileComplete, &resumeFileID,
	)
	if err != nil {
		return nil, err
	}

	if profileID != nil {
		profile.ID = *profileID
		profile.UserID = user.ID
		if rollNumber != nil {
			profile.RollNumber = *rollNumber
		}
		if branch != nil {
			profile.Branch = *branch
		}
		profile.GraduationYear = gradYear
		profile.CGPA = cgpa
		if approved != nil {
			profile.Approved = *approved
		}
		profile.ApprovedAt = approvedAt
		if profileComplete != nil {
			profile.ProfileComplete = *profileComplete
		}
		profile.ResumeFileID = resumeFileID
		user.StudentProfile = &profile
	}

	return &user, nil
}

func (r *UserRepository) getUserWhere(ctx context.Context, pred interface{}) (*models.User, error) {
	sql, args, err := r.sb.Select(userColumns+`,
		sp.id, sp.roll_number, sp.branch, sp.graduation_year, sp.cgpa,
		sp.approved, sp.approved_at, sp.profile_complete, sp.resume_file_id`).
		From("users u").
		LeftJoin("student_profiles sp ON sp.user_id = u.id").
		Where(pred).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get user query: %w", err)
	}

	user, err := r.scanUserWithProfile(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}
	return user, nil
}

// GetByID retrieves a user (with student profile, if any) by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return r.getUserWhere(ctx, squirrel.Eq{"u.id": id})
}

// GetByEmail retrieves a user (with student profile, if any) by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getUserWhere(ctx, squirrel.Eq{"u.email": email})
}

// EmailExists checks if an email is already registered
func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	sql, args, err := r.sb.Select("1").
		From("users").
		Where(squirrel.Eq{"email": email}).
		Prefix("SELECT EXISTS (").
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build email exists query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("error checking email existence: %w", err)
	}
	return exists, nil
}

// UpdateProfile updates a user's name and student academic fields
func (r *UserRepository) UpdateProfile(ctx context.Context, userID int64, firstName, lastName string, profile *models.StudentProfile) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		userSQL, userArgs, err := r.sb.Update("users").
			Set("first_name", firstName).
			Set("last_name", lastName).
			Set("updated_at", time.Now()).
			Where(squirrel.Eq{"id": userID}).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build update user query: %w", err)
		}

		result, err := tx.Exec(ctx, userSQL, userArgs...)
		if err != nil {
			return fmt.Errorf("error updating user: %w", err)
		}
		if result.RowsAffected() == 0 {
			return apperrors.ErrUserNotFound
		}

		if profile == nil {
			return nil
		}

		profileSQL, profileArgs, err := r.sb.Update("student_profiles").
			Set("branch", profile.Branch).
			Set("graduation_year", profile.GraduationYear).
			Set("cgpa", profile.CGPA).
			Set("profile_complete", profile.ProfileComplete).
			Where(squirrel.Eq{"user_id": userID}).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build update profile query: %w", err)
		}

		if _, err := tx.Exec(ctx, profileSQL, profileArgs...); err != nil {
			return fmt.Errorf("error updating student profile: %w", err)
		}
		return nil
	})
}

// UpdateLastLogin updates the last login time
func (r *UserRepository) UpdateLastLogin(ctx context.Context, userID int64) error {
	sql, args, err := r.sb.Update("users").
		Set("last_login_at", time.Now()).
		Where(squirrel.Eq{"id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update last login query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error updating last login: %w", err)
	}
	return nil
}

// UpdateProfilePhotoFileID sets or clears the profile photo reference.
// Executed inside the caller's transaction so the reference and the file
// row move together.
func (r *UserRepository) UpdateProfilePhotoFileID(ctx context.Context, tx pgx.Tx, userID int64, fileID *int64) error {
	sql, args, err := r.sb.Update("users").
		Set("profile_photo_file_id", fileID).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update photo query: %w", err)
	}

	result, err := tx.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating profile photo: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// UpdateResumeFileID sets or clears the resume reference within the caller's transaction
func (r *UserRepository) UpdateResumeFileID(ctx context.Context, tx pgx.Tx, userID int64, fileID *int64) error {
	sql, args, err := r.sb.Update("student_profiles").
		Set("resume_file_id", fileID).
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update resume query: %w", err)
	}

	result, err := tx.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating resume reference: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}

// ApproveStudent flips the approval flag for a student profile.
// Approving an already-approved student leaves the row unchanged, so the
// operation is idempotent.
func (r *UserRepository) ApproveStudent(ctx context.Context, userID int64) error {
	sql, args, err := r.sb.Update("student_profiles").
		Set("approved", true).
		Set("approved_at", time.Now()).
		Where(squirrel.Eq{"user_id": userID, "approved": false}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build approve student query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error approving student: %w", err)
	}
	return nil
}

// ListPendingStudents returns students still waiting for approval
func (r *UserRepository) ListPendingStudents(ctx context.Context) ([]*models.User, error) {
	sql, args, err := r.sb.Select(userColumns+`,
		sp.id, sp.roll_number, sp.branch, sp.graduation_year, sp.cgpa,
		sp.approved, sp.approved_at, sp.profile_complete, sp.resume_file_id`).
		From("users u").
		Join("student_profiles sp ON sp.user_id = u.id").
		Where(squirrel.Eq{"sp.approved": false}).
		OrderBy("u.created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build pending students query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing pending students: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user, err := r.scanUserWithProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning pending student row: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating pending students: %w", err)
	}
	return users, nil
}

// Delete removes a user row; the student profile and applications cascade
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("users").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete user query: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting user: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}
