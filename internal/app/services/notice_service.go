package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/placenet/placement-backend/internal/app/models"
	"github.com/placenet/placement-backend/internal/app/models/dto"
	"github.com/placenet/placement-backend/internal/pkg/apperrors"
)

type noticeStore interface {
	Create(ctx context.Context, notice *models.Notice) error
	GetByID(ctx context.Context, id int64) (*models.Notice, error)
	ListByReceiverRole(ctx context.Context, roles []models.RoleType) ([]models.Notice, error)
	Delete(ctx context.Context, id int64) error
}

// NoticeService defines the interface for notice distribution
type NoticeService interface {
	Send(ctx context.Context, senderID int64, senderRole models.RoleType, req *dto.SendNoticeRequest) (*dto.NoticeResponse, error)
	List(ctx context.Context, callerID int64, callerRole models.RoleType) ([]dto.NoticeResponse, error)
	Delete(ctx context.Context, callerID int64, callerRole models.RoleType, noticeID int64) error
}

// noticeServiceImpl implements NoticeService
type noticeServiceImpl struct {
	noticeRepo noticeStore
	logger     zerolog.Logger
}

// NewNoticeService creates a new NoticeService
func NewNoticeService(noticeRepo noticeStore, logger zerolog.Logger) NoticeService {
	return &noticeServiceImpl{
		noticeRepo: noticeRepo,
		logger:     logger,
	}
}

// canAddress encodes the sender/receiver role matrix: a TPO may only
// address students, while management and the superuser may address
// students or TPOs.
func canAddress(sender, receiver models.RoleType) bool {
	switch sender {
	case models.RoleTPOAdmin:
		return receiver == models.RoleStudent
	case models.RoleManagementAdmin, models.RoleSuperuser:
		return receiver == models.RoleStudent || receiver == models.RoleTPOAdmin
	}
	return false
}

// Send publishes a notice to a role-scoped audience
func (s *noticeServiceImpl) Send(ctx context.Context, senderID int64, senderRole models.RoleType, req *dto.SendNoticeRequest) (*dto.NoticeResponse, error) {
	receiverRole := models.RoleType(req.ReceiverRole)
	if !canAddress(senderRole, receiverRole) {
		return nil, apperrors.ErrInvalidNoticeTarget
	}

	notice := &models.Notice{
		Title:        req.Title,
		Message:      req.Message,
		SenderID:     senderID,
		SenderRole:   senderRole,
		ReceiverRole: receiverRole,
	}
	if err := s.noticeRepo.Create(ctx, notice); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("noticeID", notice.ID).
		Str("senderRole", string(senderRole)).
		Str("receiverRole", string(receiverRole)).
		Msg("Notice published")

	resp := dto.FromNotice(notice)
	return &resp, nil
}

// List returns the notices visible to the caller. Students see notices
// addressed to students; TPOs see notices where they are receiver plus
// ones they authored; management and the superuser see everything.
func (s *noticeServiceImpl) List(ctx context.Context, callerID int64, callerRole models.RoleType) ([]dto.NoticeResponse, error) {
	var roles []models.RoleType
	switch callerRole {
	case models.RoleStudent:
		roles = []models.RoleType{models.RoleStudent}
	case models.RoleTPOAdmin, models.RoleManagementAdmin, models.RoleSuperuser:
		roles = []models.RoleType{models.RoleStudent, models.RoleTPOAdmin}
	default:
		return nil, apperrors.ErrPermissionDenied
	}

	notices, err := s.noticeRepo.ListByReceiverRole(ctx, roles)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.NoticeResponse, 0, len(notices))
	for i := range notices {
		n := &notices[i]
		if callerRole == models.RoleTPOAdmin && n.ReceiverRole == models.RoleStudent && n.SenderID != callerID {
			// Student-facing notices from other senders are not theirs to see
			continue
		}
		responses = append(responses, dto.FromNotice(n))
	}
	return responses, nil
}

// Delete removes a notice. A TPO may delete only notices they authored;
// management and the superuser may delete any notice.
func (s *noticeServiceImpl) Delete(ctx context.Context, callerID int64, callerRole models.RoleType, noticeID int64) error {
	notice, err := s.noticeRepo.GetByID(ctx, noticeID)
	if err != nil {
		return err
	}

	switch callerRole {
	case models.RoleManagementAdmin, models.RoleSuperuser:
	case models.RoleTPOAdmin:
		if notice.SenderID != callerID {
			return apperrors.ErrPermissionDenied
		}
	default:
		return apperrors.ErrPermissionDenied
	}

	if err := s.noticeRepo.Delete(ctx, noticeID); err != nil {
		return err
	}

	s.logger.Info().Int64("noticeID", noticeID).Int64("deletedBy", callerID).Msg("Notice deleted")
	return nil
}
