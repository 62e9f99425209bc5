// Package model defines team invitations.
package model

import (
	"time"

	teamModel "github.com/festy23/street_sports/internal/team/model"
	userModel "github.com/festy23/street_sports/internal/user/model"
)

// Status is the lifecycle state of an invitation.
type Status string

// Invitation states. Accepted and rejected are terminal.
const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

// MaxMessageLength bounds the note attached to an invitation.
const MaxMessageLength = 200

// TeamRequest invites a user onto a team. At most one request per team and
// receiver is pending at a time.
type TeamRequest struct {
	ID         string    `gorm:"primaryKey;column:id;type:varchar(64)"                                                                   json:"id"`
	TeamID     string    `gorm:"column:team_id;type:varchar(64);not null;uniqueIndex:idx_team_requests_pending,priority:1,where:status = 'pending'" json:"teamId"`
	EventID    string    `gorm:"column:event_id;type:varchar(64);not null"                                                               json:"eventId"`
	SenderID   string    `gorm:"column:sender_id;type:varchar(64);not null"                                                              json:"senderId"`
	ReceiverID string    `gorm:"column:receiver_id;type:varchar(64);not null;index;uniqueIndex:idx_team_requests_pending,priority:2"     json:"receiverId"`
	Status     Status    `gorm:"column:status;type:varchar(16);not null"                                                                 json:"status"`
	Message    string    `gorm:"column:message;type:varchar(200)"                                                                        json:"message,omitempty"`
	CreatedAt  time.Time `gorm:"column:created_at;not null"                                                                              json:"createdAt"`
	UpdatedAt  time.Time `gorm:"column:updated_at;not null"                                                                              json:"updatedAt"`
}

// TableName specifies the table name for GORM.
func (TeamRequest) TableName() string {
	return "team_requests"
}

// InviteRequest is the body of POST /events/:eventId/teams/:teamId/invite.
type InviteRequest struct {
	ReceiverID string `json:"receiverId" binding:"required"`
	Message    string `json:"message"    binding:"max=200"`
}

// SearchLimit bounds the candidates returned by a user search.
const SearchLimit = 20

// SearchUsersQuery is the query of GET /requests/search-users.
type SearchUsersQuery struct {
	Query   string `form:"query"   binding:"max=100"`
	EventID string `form:"eventId" binding:"required"`
	TeamID  string `form:"teamId"  binding:"required"`
}

// RequestView is an invitation with the parties resolved for display.
type RequestView struct {
	TeamRequest
	Team   teamModel.Ref      `json:"team"`
	Sender *userModel.Profile `json:"sender,omitempty"`
}

// RequestNotification is the payload of the invitation notifications.
type RequestNotification struct {
	Request RequestView `json:"request"`
}
