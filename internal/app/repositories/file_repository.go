package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/placenet/placement-backend/internal/app/models"
	"github.com/placenet/placement-backend/internal/pkg/apperrors"
)

// FileRepository handles database operations for stored file metadata.
// Create and Delete take a pgx.Tx because file rows are always written
// in the same transaction as the record that references them.
type FileRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewFileRepository creates a new FileRepository
func NewFileRepository(db *pgxpool.Pool) *FileRepository {
	return &FileRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

const fileColumns = "id, file_name, file_url, file_size, mime_type, kind, uploaded_by, created_at"

func scanFile(row pgx.Row) (*models.File, error) {
	var f models.File
	err := row.Scan(&f.ID, &f.FileName, &f.FileURL, &f.FileSize, &f.MimeType, &f.Kind, &f.UploadedBy, &f.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// Create inserts file metadata within the caller's transaction
func (r *FileRepository) Create(ctx context.Context, tx pgx.Tx, file *models.File) error {
	sql, args, err := r.sb.Insert("files").
		Columns("file_name", "file_url", "file_size", "mime_type", "kind", "uploaded_by").
		Values(file.FileName, file.FileURL, file.FileSize, file.MimeType, file.Kind, file.UploadedBy).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create file query: %w", err)
	}

	err = tx.QueryRow(ctx, sql, args...).Scan(&file.ID, &file.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating file record: %w", err)
	}
	return nil
}

// GetByID retrieves file metadata by ID
func (r *FileRepository) GetByID(ctx context.Context, id int64) (*models.File, error) {
	sql, args, err := r.sb.Select(fileColumns).
		From("files").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get file query: %w", err)
	}

	f, err := scanFile(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrFileNotFound
		}
		return nil, fmt.Errorf("error retrieving file record: %w", err)
	}
	return f, nil
}

// Delete removes file metadata within the caller's transaction
func (r *FileRepository) Delete(ctx context.Context, tx pgx.Tx, id int64) error {
	sql, args, err := r.sb.Delete("files").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete file query: %w", err)
	}

	result, err := tx.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting file record: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrFileNotFound
	}
	return nil
}
