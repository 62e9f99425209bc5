// Package repository provides data access layer for statistics module.
package repository

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/street_sports/internal/statistics/model"
)

// Repository defines the interface for statistics data access operations.
type Repository interface {
	// GetEventStatistics returns roster, match and ticket totals of an event.
	GetEventStatistics(ctx context.Context, eventID string) (*model.EventStatistics, error)

	// GetStandings returns the teams of an event ranked by wins.
	GetStandings(ctx context.Context, eventID string) ([]model.TeamStanding, error)
}

type repository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new statistics repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{
		db:     db,
		logger: logger,
	}
}

const eventStatisticsQuery = `
SELECT
	(SELECT COUNT(*) FROM audience_members WHERE event_id = @event) AS audience_count,
	(SELECT COUNT(*) FROM event_participants WHERE event_id = @event AND approved_at IS NULL) AS pending_players,
	(SELECT COUNT(*) FROM event_participants WHERE event_id = @event AND approved_at IS NOT NULL) AS approved_players,
	(SELECT COUNT(*) FROM team_members WHERE event_id = @event) AS team_players,
	(SELECT COUNT(*) FROM teams WHERE event_id = @event) AS teams,
	(SELECT COUNT(*) FROM matches WHERE event_id = @event) AS matches,
	(SELECT COUNT(*) FROM matches WHERE event_id = @event AND status = 'completed') AS matches_played,
	(SELECT COUNT(*) FROM tickets WHERE event_id = @event) AS tickets_issued,
	(SELECT COUNT(*) FROM tickets WHERE event_id = @event AND consumed_at IS NOT NULL) AS tickets_scanned,
	(SELECT COUNT(*) FROM team_requests WHERE event_id = @event AND status = 'pending') AS pending_requests
`

// GetEventStatistics returns roster, match and ticket totals of an event.
func (r *repository) GetEventStatistics(ctx context.Context, eventID string) (*model.EventStatistics, error) {
	r.logger.Debugw("GetEventStatistics called", "event_id", eventID)

	var result struct {
		AudienceCount   int64 `gorm:"column:audience_count"`
		PendingPlayers  int64 `gorm:"column:pending_players"`
		ApprovedPlayers int64 `gorm:"column:approved_players"`
		TeamPlayers     int64 `gorm:"column:team_players"`
		Teams           int64 `gorm:"column:teams"`
		Matches         int64 `gorm:"column:matches"`
		MatchesPlayed   int64 `gorm:"column:matches_played"`
		TicketsIssued   int64 `gorm:"column:tickets_issued"`
		TicketsScanned  int64 `gorm:"column:tickets_scanned"`
		PendingRequests int64 `gorm:"column:pending_requests"`
	}

	err := r.db.WithContext(ctx).
		Raw(eventStatisticsQuery, map[string]any{"event": eventID}).
		Scan(&result).Error
	if err != nil {
		r.logger.Errorw("GetEventStatistics database error", "event_id", eventID, "error", err)
		return nil, err
	}

	stats := &model.EventStatistics{
		EventID:         eventID,
		AudienceCount:   int(result.AudienceCount),
		PendingPlayers:  int(result.PendingPlayers),
		ApprovedPlayers: int(result.ApprovedPlayers),
		TeamPlayers:     int(result.TeamPlayers),
		Teams:           int(result.Teams),
		Matches:         int(result.Matches),
		MatchesPlayed:   int(result.MatchesPlayed),
		TicketsIssued:   int(result.TicketsIssued),
		TicketsScanned:  int(result.TicketsScanned),
		PendingRequests: int(result.PendingRequests),
	}

	r.logger.Debugw("GetEventStatistics completed", "event_id", eventID, "tickets_issued", stats.TicketsIssued)
	return stats, nil
}

// GetStandings returns the teams of an event ranked by wins.
func (r *repository) GetStandings(ctx context.Context, eventID string) ([]model.TeamStanding, error) {
	r.logger.Debugw("GetStandings called", "event_id", eventID)

	var standings []model.TeamStanding

	err := r.db.WithContext(ctx).
		Table("teams").
		Select(`
			teams.id AS team_id,
			teams.team_name,
			teams.matches_played,
			teams.matches_won,
			teams.matches_result_pending,
			COUNT(team_members.user_id) AS member_count
		`).
		Joins("LEFT JOIN team_members ON team_members.team_id = teams.id").
		Where("teams.event_id = ?", eventID).
		Group("teams.id, teams.team_name, teams.matches_played, teams.matches_won, teams.matches_result_pending").
		Order("teams.matches_won DESC, teams.matches_played ASC, teams.team_name ASC").
		Scan(&standings).Error

	if err != nil {
		r.logger.Errorw("GetStandings database error", "event_id", eventID, "error", err)
		return nil, err
	}

	if standings == nil {
		standings = []model.TeamStanding{}
	}

	r.logger.Debugw("GetStandings completed", "event_id", eventID, "count", len(standings))
	return standings, nil
}
