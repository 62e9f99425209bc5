// Package model defines checkout sessions and the registration completion
// state machine they record.
package model

import (
	"time"

	eventModel "github.com/festy23/street_sports/internal/event/model"
	ticketModel "github.com/festy23/street_sports/internal/ticket/model"
)

// Status is the progress of a checkout session. A session only moves
// forward: created, paid, granted, ticketed.
type Status string

// Checkout states.
const (
	StatusCreated  Status = "created"
	StatusPaid     Status = "paid"
	StatusGranted  Status = "granted"
	StatusTicketed Status = "ticketed"
)

// CheckoutSession mirrors a processor checkout started by a user.
type CheckoutSession struct {
	SessionID string                      `gorm:"primaryKey;column:session_id;type:varchar(255)" json:"sessionId"`
	EventID   string                      `gorm:"column:event_id;type:varchar(64);not null;index" json:"eventId"`
	UserID    string                      `gorm:"column:user_id;type:varchar(64);not null;index"  json:"userId"`
	Type      eventModel.RegistrationType `gorm:"column:type;type:varchar(16);not null"           json:"type"`
	TeamID    *string                     `gorm:"column:team_id;type:varchar(64)"                 json:"teamId,omitempty"`
	Amount    float64                     `gorm:"column:amount;type:numeric(10,2);not null"       json:"amount"`
	Currency  string                      `gorm:"column:currency;type:varchar(3);not null"        json:"currency"`
	Status    Status                      `gorm:"column:status;type:varchar(16);not null"         json:"status"`
	TicketID  *string                     `gorm:"column:ticket_id;type:varchar(128)"              json:"ticketId,omitempty"`
	CreatedAt time.Time                   `gorm:"column:created_at;not null"                      json:"createdAt"`
	UpdatedAt time.Time                   `gorm:"column:updated_at;not null"                      json:"updatedAt"`
}

// TableName specifies the table name for GORM.
func (CheckoutSession) TableName() string {
	return "checkout_sessions"
}

// Team returns the team chosen at checkout, or "".
func (s CheckoutSession) Team() string {
	if s.TeamID == nil {
		return ""
	}
	return *s.TeamID
}

// CheckoutRequest is the body of POST /events/:eventId/create-checkout-session.
type CheckoutRequest struct {
	Type   eventModel.RegistrationType `json:"type"   binding:"required,oneof=audience player"`
	TeamID string                      `json:"teamId"`
}

// CheckoutResponse carries the processor session to redirect to.
type CheckoutResponse struct {
	SessionID string `json:"sessionId"`
	URL       string `json:"url"`
}

// CompleteRequest is the body of POST /events/:eventId/complete-registration.
type CompleteRequest struct {
	Type      eventModel.RegistrationType `json:"type"      binding:"required,oneof=audience player"`
	SessionID string                      `json:"sessionId"`
	TeamID    string                      `json:"teamId"`
}

// CompleteResponse is the result of a completed registration.
type CompleteResponse struct {
	Message string                      `json:"message"`
	Type    eventModel.RegistrationType `json:"type"`
	Ticket  *ticketModel.IssuedTicket   `json:"ticket"`
}
