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

// NoticeRepository handles database operations for notices
type NoticeRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewNoticeRepository creates a new NoticeRepository
func NewNoticeRepository(db *pgxpool.Pool) *NoticeRepository {
	return &NoticeRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

const noticeColumns = "id, title, message, sender_id, sender_role, receiver_role, created_at"

func scanNotice(row pgx.Row) (*models.Notice, error) {
	var n models.Notice
	err := row.Scan(&n.ID, &n.Title, &n.Message, &n.SenderID, &n.SenderRole, &n.ReceiverRole, &n.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// Create inserts a new notice
func (r *NoticeRepository) Create(ctx context.Context, notice *models.Notice) error {
	sql, args, err := r.sb.Insert("notices").
		Columns("title", "message", "sender_id", "sender_role", "receiver_role").
		Values(notice.Title, notice.Message, notice.SenderID, notice.SenderRole, notice.ReceiverRole).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create notice query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&notice.ID, &notice.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating notice: %w", err)
	}
	return nil
}

// GetByID retrieves a notice by its ID
func (r *NoticeRepository) GetByID(ctx context.Context, id int64) (*models.Notice, error) {
	sql, args, err := r.sb.Select(noticeColumns).
		From("notices").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get notice query: %w", err)
	}

	n, err := scanNotice(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNoticeNotFound
		}
		return nil, fmt.Errorf("error retrieving notice: %w", err)
	}
	return n, nil
}

// ListByReceiverRole returns notices addressed to the given role, newest
// first. Staff readers pass multiple roles to see student-facing notices
// alongside their own feed.
func (r *NoticeRepository) ListByReceiverRole(ctx context.Context, roles []models.RoleType) ([]models.Notice, error) {
	sql, args, err := r.sb.Select(noticeColumns).
		From("notices").
		Where(squirrel.Eq{"receiver_role": roles}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list notices query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing notices: %w", err)
	}
	defer rows.Close()

	var notices []models.Notice
	for rows.Next() {
		n, err := scanNotice(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning notice row: %w", err)
		}
		notices = append(notices, *n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating notices: %w", err)
	}
	return notices, nil
}

// Delete removes a notice
func (r *NoticeRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("notices").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete notice query: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting notice: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNoticeNotFound
	}
	return nil
}
