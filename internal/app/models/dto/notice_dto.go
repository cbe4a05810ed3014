package dto

import (
	"time"

	"github.com/placenet/placement-backend/internal/app/models"
)

// SendNoticeRequest represents a request to publish a notice
type SendNoticeRequest struct {
	Title        string `json:"title" binding:"required"`
	Message      string `json:"message" binding:"required"`
	ReceiverRole string `json:"receiverRole" binding:"required,oneof=STUDENT TPO_ADMIN"`
}

// NoticeResponse represents one notice as seen by a caller
type NoticeResponse struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Message      string    `json:"message"`
	SenderID     int64     `json:"senderId"`
	SenderRole   string    `json:"senderRole"`
	ReceiverRole string    `json:"receiverRole"`
	CreatedAt    time.Time `json:"createdAt"`
}

// FromNotice converts a models.Notice into a NoticeResponse
func FromNotice(n *models.Notice) NoticeResponse {
	return NoticeResponse{
		ID:           n.ID,
		Title:        n.Title,
		Message:      n.Message,
		SenderID:     n.SenderID,
		SenderRole:   string(n.SenderRole),
		ReceiverRole: string(n.ReceiverRole),
		CreatedAt:    n.CreatedAt,
	}
}
