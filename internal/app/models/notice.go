package models

import "time"

// Notice defines the announcement model based on the 'notices' table.
// Sender and receiver roles govern both who may post a notice and who
// sees it when listing.
type Notice struct {
	ID           int64     `json:"id" db:"id"`
	Title        string    `json:"title" db:"title"`
	Message      string    `json:"message" db:"message"`
	SenderID     int64     `json:"senderId" db:"sender_id"`
	SenderRole   RoleType  `json:"senderRole" db:"sender_role"`
	ReceiverRole RoleType  `json:"receiverRole" db:"receiver_role"` // STUDENT or TPO_ADMIN
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}
