// Package model defines the roster tables of an event: the audience, the
// pool of pending player applicants and team rosters.
package model

import (
	"time"

	eventModel "github.com/festy23/street_sports/internal/event/model"
	userModel "github.com/festy23/street_sports/internal/user/model"
)

// AudienceMember is one entry of an event's audience roster.
type AudienceMember struct {
	EventID  string    `gorm:"primaryKey;column:event_id;type:varchar(64)" json:"eventId"`
	UserID   string    `gorm:"primaryKey;column:user_id;type:varchar(64)"  json:"userId"`
	JoinedAt time.Time `gorm:"column:joined_at;not null"                   json:"joinedAt"`
}

// TableName specifies the table name for GORM.
func (AudienceMember) TableName() string {
	return "audience_members"
}

// Participant is a player who applied to an event without a team. The entry
// is pending until the organiser approves it.
type Participant struct {
	EventID    string     `gorm:"primaryKey;column:event_id;type:varchar(64)" json:"eventId"`
	UserID     string     `gorm:"primaryKey;column:user_id;type:varchar(64)"  json:"userId"`
	AppliedAt  time.Time  `gorm:"column:applied_at;not null"                  json:"appliedAt"`
	ApprovedAt *time.Time `gorm:"column:approved_at"                          json:"approvedAt,omitempty"`
}

// TableName specifies the table name for GORM.
func (Participant) TableName() string {
	return "event_participants"
}

// TeamMember is one entry of a team roster. A user is on at most one team per event.
type TeamMember struct {
	TeamID   string    `gorm:"primaryKey;column:team_id;type:varchar(64)"                                                     json:"teamId"`
	UserID   string    `gorm:"primaryKey;column:user_id;type:varchar(64);uniqueIndex:idx_team_members_event_user,priority:2" json:"userId"`
	EventID  string    `gorm:"column:event_id;type:varchar(64);not null;uniqueIndex:idx_team_members_event_user,priority:1"  json:"eventId"`
	JoinedAt time.Time `gorm:"column:joined_at;not null"                                                                     json:"joinedAt"`
}

// TableName specifies the table name for GORM.
func (TeamMember) TableName() string {
	return "team_members"
}

// Membership is the category a user holds in an event.
type Membership struct {
	Type     eventModel.RegistrationType
	Category Category
	TeamID   string
}

// Category names a roster for logs and debug details.
type Category string

// Roster categories in lookup order.
const (
	CategoryAudience     Category = "audience"
	CategoryParticipants Category = "participants"
	CategoryTeam         Category = "team"
)

// ApproveRequest is the optional body of POST /players/:userId/approve.
type ApproveRequest struct {
	TeamID string `json:"teamId"`
}

// RosterResponse lists the users of one roster.
type RosterResponse struct {
	EventID string              `json:"eventId"`
	Users   []userModel.Profile `json:"users"`
}
