// Package model defines issued tickets, their QR payload and the view
// returned to door staff on validation.
package model

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	eventModel "github.com/festy23/street_sports/internal/event/model"
	userModel "github.com/festy23/street_sports/internal/user/model"
)

// Prefix starts every ticket id.
const Prefix = "TICKET"

// userFragmentLength is how much of the user id a ticket id embeds.
const userFragmentLength = 8

// Ticket is an issued entry credential. ConsumedAt is set once, on the first
// successful scan.
type Ticket struct {
	ID         string                      `gorm:"primaryKey;column:id;type:varchar(128)"          json:"id"`
	EventID    string                      `gorm:"column:event_id;type:varchar(64);not null;index" json:"eventId"`
	UserID     string                      `gorm:"column:user_id;type:varchar(64);not null;index"  json:"userId"`
	Type       eventModel.RegistrationType `gorm:"column:type;type:varchar(16);not null"           json:"type"`
	Amount     float64                     `gorm:"column:amount;type:numeric(10,2);not null"       json:"amount"`
	SessionID  *string                     `gorm:"column:session_id;type:varchar(255)"             json:"sessionId,omitempty"`
	IssuedAt   time.Time                   `gorm:"column:issued_at;not null"                       json:"issuedAt"`
	ConsumedAt *time.Time                  `gorm:"column:consumed_at"                              json:"consumedAt,omitempty"`
	ScanCount  int                         `gorm:"column:scan_count;not null"                      json:"scanCount"`
}

// TableName specifies the table name for GORM.
func (Ticket) TableName() string {
	return "tickets"
}

// NewID builds TICKET_<unix ms>_<random>_<last 8 of userID>.
func NewID(userID string, at time.Time) string {
	random := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return fmt.Sprintf("%s_%d_%s_%s", Prefix, at.UnixMilli(), random, UserFragment(userID))
}

// UserFragment returns the part of userID a ticket id embeds: its last
// eight characters, or the whole id when shorter.
func UserFragment(userID string) string {
	if len(userID) <= userFragmentLength {
		return userID
	}
	return userID[len(userID)-userFragmentLength:]
}

// MatchesUser reports whether fragment identifies userID. Legacy ids always
// embed a full eight character fragment.
func MatchesUser(fragment, userID string) bool {
	return len(fragment) == userFragmentLength && UserFragment(userID) == fragment
}

// ParsedID is a ticket id split into its parts.
type ParsedID struct {
	IssuedAt     time.Time
	UserFragment string
}

// ParseID splits a ticket id on "_". The fourth part is the user fragment;
// later parts are ignored. IssuedAt is zero when the timestamp part is not
// a number.
func ParseID(id string) (ParsedID, error) {
	parts := strings.Split(id, "_")
	if len(parts) < 4 || parts[0] != Prefix {
		return ParsedID{}, ErrTicketFormat
	}
	if parts[3] == "" {
		return ParsedID{}, ErrTicketFormat
	}

	parsed := ParsedID{UserFragment: parts[3]}
	if ms, err := strconv.ParseInt(parts[1], 10, 64); err == nil && ms > 0 {
		parsed.IssuedAt = time.UnixMilli(ms).UTC()
	}
	return parsed, nil
}

// QRPayload is the JSON encoded into a ticket's QR code.
type QRPayload struct {
	TicketID  string                      `json:"ticketId"`
	EventID   string                      `json:"eventId"`
	UserID    string                      `json:"userId"`
	Type      eventModel.RegistrationType `json:"type"`
	Timestamp time.Time                   `json:"timestamp"`
}

// Encode returns the payload as the string printed into the QR code.
func (p QRPayload) Encode() (string, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// IssuedTicket is a ticket as handed to its holder for display or download.
type IssuedTicket struct {
	ID        string                      `json:"id"`
	EventID   string                      `json:"eventId"`
	EventName string                      `json:"eventName"`
	UserName  string                      `json:"userName"`
	UserEmail string                      `json:"userEmail"`
	Type      eventModel.RegistrationType `json:"type"`
	Amount    float64                     `json:"amount"`
	SessionID string                      `json:"sessionId,omitempty"`
	Timestamp time.Time                   `json:"timestamp"`
	QRData    string                      `json:"qrData"`
}

// TicketView is the validation result shown at the door.
type TicketView struct {
	ID        string                      `json:"id"`
	EventID   string                      `json:"eventId"`
	EventName string                      `json:"eventName"`
	Type      eventModel.RegistrationType `json:"type"`
	Amount    float64                     `json:"amount"`
	Timestamp time.Time                   `json:"timestamp"`
	Verified  bool                        `json:"verified"`
	FirstScan bool                        `json:"firstScan"`
	ScanCount int                         `json:"scanCount"`
}

// ValidationResponse is the body returned for a valid ticket.
type ValidationResponse struct {
	Message string            `json:"message"`
	Ticket  TicketView        `json:"ticket"`
	User    userModel.Profile `json:"user"`
}

// ValidateRequest is the body of POST /events/:eventId/validate-ticket.
type ValidateRequest struct {
	TicketID string `json:"ticketId"`
}

// VerifyRequest is the body of POST /events/:eventId/verify-ticket. The
// payload comes either as the scanned QR string or as inline fields.
type VerifyRequest struct {
	QRData string `json:"qrData"`
	QRPayload
}

// Payload returns the QR payload carried by the request.
func (r VerifyRequest) Payload() (QRPayload, error) {
	if strings.TrimSpace(r.QRData) == "" {
		return r.QRPayload, nil
	}
	var p QRPayload
	if err := json.Unmarshal([]byte(r.QRData), &p); err != nil {
		return QRPayload{}, ErrTicketPayloadInvalid
	}
	return p, nil
}
