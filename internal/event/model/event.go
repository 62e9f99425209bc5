// Package model defines the event entity, its fee configuration and the
// registration types shared by membership, tickets and payments.
package model

import (
	"slices"
	"strings"
	"time"

	"gorm.io/gorm"
)

// RegistrationType is how a user takes part in an event.
type RegistrationType string

// Registration types.
const (
	RegistrationAudience RegistrationType = "audience"
	RegistrationPlayer   RegistrationType = "player"
)

// Valid reports whether t is a known registration type.
func (t RegistrationType) Valid() bool {
	return t == RegistrationAudience || t == RegistrationPlayer
}

// Event statuses.
const (
	StatusActive    = "active"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// SportTypes lists the accepted sport types.
var SportTypes = []string{
	"Cricket", "Football", "Basketball", "Tennis",
	"Volleyball", "Badminton", "Table Tennis", "Other",
}

// ValidSportType reports whether s is one of SportTypes.
func ValidSportType(s string) bool {
	return slices.Contains(SportTypes, s)
}

// Event is a scheduled sports event.
type Event struct {
	ID                   string    `gorm:"primaryKey;column:id;type:varchar(64)"                                     json:"id"`
	EventName            string    `gorm:"column:event_name;type:varchar(255);not null"                              json:"eventName"`
	SportType            string    `gorm:"column:sport_type;type:varchar(32);not null"                               json:"sportType"`
	OrganiserID          string    `gorm:"column:organiser_id;type:varchar(64);not null;index:idx_events_organiser" json:"organiserId"`
	StartDate            time.Time `gorm:"column:start_date;not null"                                                json:"startDate"`
	RegistrationDeadline time.Time `gorm:"column:registration_deadline;not null"                                     json:"registrationDeadline"`
	Duration             int       `gorm:"column:duration;not null"                                                  json:"duration"`
	Status               string    `gorm:"column:status;type:varchar(16);not null"                                   json:"status"`
	AudienceFree         bool      `gorm:"column:audience_free;not null"                                             json:"audienceFree"`
	AudienceFee          float64   `gorm:"column:audience_fee;type:numeric(10,2);not null"                           json:"audienceFee"`
	PlayerFree           bool      `gorm:"column:player_free;not null"                                               json:"playerFree"`
	PlayerFee            float64   `gorm:"column:player_fee;type:numeric(10,2);not null"                             json:"playerFee"`
	PosterPublicID       string    `gorm:"column:poster_public_id;type:varchar(255)"                                 json:"-"`
	PosterURL            string    `gorm:"column:poster_url;type:text"                                               json:"-"`
	EventLink            string    `gorm:"column:event_link;type:varchar(300);not null;uniqueIndex:idx_events_link"  json:"eventLink"`
	CreatedAt            time.Time `gorm:"column:created_at;not null"                                                json:"createdAt"`
	UpdatedAt            time.Time `gorm:"column:updated_at;not null"                                                json:"updatedAt"`
}

// TableName specifies the table name for GORM.
func (Event) TableName() string {
	return "events"
}

// BeforeUpdate updates the UpdatedAt timestamp before saving.
func (e *Event) BeforeUpdate(tx *gorm.DB) error {
	e.UpdatedAt = time.Now().UTC()
	return nil
}

// Fee returns the configured fee for t, or 0 when that registration is free.
func (e *Event) Fee(t RegistrationType) float64 {
	switch t {
	case RegistrationAudience:
		if e.AudienceFree {
			return 0
		}
		return e.AudienceFee
	case RegistrationPlayer:
		if e.PlayerFree {
			return 0
		}
		return e.PlayerFee
	default:
		return 0
	}
}

// RequiresPayment reports whether registering as t needs a completed checkout.
// A non-free registration with a zero fee is treated as free.
func (e *Event) RequiresPayment(t RegistrationType) bool {
	return e.Fee(t) > 0
}

// CheckOrganiser returns ErrNotOrganizer unless userID organises the event.
func (e *Event) CheckOrganiser(userID string) error {
	if e.OrganiserID != userID {
		return ErrNotOrganizer
	}
	return nil
}

// Poster returns the poster reference, or nil when none is set.
func (e *Event) Poster() *Poster {
	if e.PosterURL == "" {
		return nil
	}
	return &Poster{PublicID: e.PosterPublicID, URL: e.PosterURL}
}

// BuildEventLink derives the shareable link: the name without whitespace
// followed by the last six characters of the id.
func BuildEventLink(name, id string) string {
	compact := strings.Join(strings.Fields(name), "")
	suffix := id
	if len(id) > 6 {
		suffix = id[len(id)-6:]
	}
	return compact + suffix
}

// Poster is a reference to an image held by the external media host.
type Poster struct {
	PublicID string `json:"publicId"`
	URL      string `json:"url"`
}
