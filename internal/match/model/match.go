// Package model defines matches between two teams of an event.
package model

import (
	"time"

	teamModel "github.com/festy23/street_sports/internal/team/model"
)

// Status is the state of a match.
type Status string

// Match states.
const (
	StatusScheduled Status = "scheduled"
	StatusCompleted Status = "completed"
)

// Match is a fixture between two teams of one event.
type Match struct {
	ID        string     `gorm:"primaryKey;column:id;type:varchar(64)"          json:"id"`
	EventID   string     `gorm:"column:event_id;type:varchar(64);not null;index" json:"eventId"`
	TeamAID   string     `gorm:"column:team_a_id;type:varchar(64);not null"      json:"teamAId"`
	TeamBID   string     `gorm:"column:team_b_id;type:varchar(64);not null"      json:"teamBId"`
	WonTeamID *string    `gorm:"column:won_team_id;type:varchar(64)"             json:"wonTeamId"`
	Status    Status     `gorm:"column:status;type:varchar(16);not null"         json:"status"`
	Score     string     `gorm:"column:score;type:varchar(64)"                   json:"score,omitempty"`
	MatchDate *time.Time `gorm:"column:match_date"                               json:"matchDate,omitempty"`
	CreatedAt time.Time  `gorm:"column:created_at;not null"                      json:"createdAt"`
	UpdatedAt time.Time  `gorm:"column:updated_at;not null"                      json:"updatedAt"`
}

// TableName specifies the table name for GORM.
func (Match) TableName() string {
	return "matches"
}

// Opponent returns the other side of the match, or "" when teamID does not play in it.
func (m Match) Opponent(teamID string) string {
	switch teamID {
	case m.TeamAID:
		return m.TeamBID
	case m.TeamBID:
		return m.TeamAID
	default:
		return ""
	}
}

// CreateMatchRequest is the body of POST /events/:eventId/matches/create.
type CreateMatchRequest struct {
	TeamIDs   []string   `json:"teamIds"   binding:"required,len=2,dive,required"`
	MatchDate *time.Time `json:"matchDate"`
}

// UpdateResultRequest is the body of PUT /events/:eventId/matches/:matchId/result.
type UpdateResultRequest struct {
	WonTeamID string `json:"wonTeamId" binding:"required"`
	Score     string `json:"score"     binding:"max=64"`
}

// MatchView is a match with both teams resolved.
type MatchView struct {
	Match
	TeamA teamModel.Ref `json:"teamA"`
	TeamB teamModel.Ref `json:"teamB"`
}

// MatchNotification is the payload of matchCreated and matchResultUpdated.
type MatchNotification struct {
	EventID string    `json:"eventId"`
	Match   MatchView `json:"match"`
}
