// Package model defines the team entity and its transport types.
package model

import (
	"time"

	"gorm.io/gorm"

	userModel "github.com/festy23/street_sports/internal/user/model"
)

// Team is a named squad within one event. Names are unique per event.
type Team struct {
	ID                   string    `gorm:"primaryKey;column:id;type:varchar(64)"                                                  json:"id"`
	EventID              string    `gorm:"column:event_id;type:varchar(64);not null;uniqueIndex:idx_teams_event_name,priority:1" json:"eventId"`
	TeamName             string    `gorm:"column:team_name;type:varchar(255);not null;uniqueIndex:idx_teams_event_name,priority:2" json:"teamName"`
	CaptainID            *string   `gorm:"column:captain_id;type:varchar(64)"                                                     json:"captainId"`
	MatchesPlayed        int       `gorm:"column:matches_played;not null"                                                         json:"matchesPlayed"`
	MatchesWon           int       `gorm:"column:matches_won;not null"                                                            json:"matchesWon"`
	MatchesResultPending int       `gorm:"column:matches_result_pending;not null"                                                 json:"matchesResultPending"`
	CreatedAt            time.Time `gorm:"column:created_at;not null"                                                             json:"createdAt"`
	UpdatedAt            time.Time `gorm:"column:updated_at;not null"                                                             json:"-"`
}

// TableName specifies the table name for GORM.
func (Team) TableName() string {
	return "teams"
}

// BeforeUpdate updates the UpdatedAt timestamp before saving.
func (t *Team) BeforeUpdate(tx *gorm.DB) error {
	t.UpdatedAt = time.Now().UTC()
	return nil
}

// Ref is the short form of a team embedded in other payloads.
type Ref struct {
	ID       string `json:"id"`
	TeamName string `json:"teamName"`
}

// Ref returns the short form of the team.
func (t Team) Ref() Ref {
	return Ref{ID: t.ID, TeamName: t.TeamName}
}

// TeamResponse is a team with its roster.
type TeamResponse struct {
	Team
	Members []userModel.Profile `json:"members"`
}

// TeamNotification is the payload of teamCreated and teamUpdated.
type TeamNotification struct {
	EventID string       `json:"eventId"`
	Team    TeamResponse `json:"team"`
}

// CreateTeamRequest is the body of POST /events/:eventId/teams/create.
type CreateTeamRequest struct {
	TeamName string   `json:"teamName" binding:"required,max=255"`
	Users    []string `json:"users"`
}
