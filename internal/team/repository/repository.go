// Package repository provides data access layer for team module.
package repository

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/street_sports/internal/database/dberr"
	teamModel "github.com/festy23/street_sports/internal/team/model"
)

// Repository defines the interface for team data access operations.
type Repository interface {
	// Create inserts a team. A duplicate name in the same event yields ErrTeamExists.
	Create(ctx context.Context, team *teamModel.Team) error

	// GetByID finds a team of the event.
	GetByID(ctx context.Context, eventID, teamID string) (*teamModel.Team, error)

	// ListByEvent returns the teams of an event in creation order.
	ListByEvent(ctx context.Context, eventID string) ([]teamModel.Team, error)

	// SetCaptain replaces the captain. A nil captainID clears it.
	SetCaptain(ctx context.Context, teamID string, captainID *string) error

	// SetCaptainIfEmpty sets the captain only when the team has none.
	SetCaptainIfEmpty(ctx context.Context, teamID, captainID string) error

	// AddPendingMatch increments matches_result_pending of both teams.
	AddPendingMatch(ctx context.Context, teamIDs ...string) error

	// RecordResult moves one pending match of each team to played and
	// credits the winner.
	RecordResult(ctx context.Context, winnerID, loserID string) error
}

type repository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new team repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{db: db, logger: logger}
}

// Create inserts a team.
func (r *repository) Create(ctx context.Context, team *teamModel.Team) error {
	err := r.db.WithContext(ctx).Create(team).Error
	if err != nil {
		if dberr.IsDuplicate(err) {
			r.logger.Debugw("Create duplicate team", "event_id", team.EventID, "team_name", team.TeamName)
			return teamModel.ErrTeamExists
		}
		r.logger.Errorw("Create database error", "event_id", team.EventID, "error", err)
		return err
	}
	return nil
}

// GetByID finds a team of the event.
func (r *repository) GetByID(ctx context.Context, eventID, teamID string) (*teamModel.Team, error) {
	var team teamModel.Team
	err := r.db.WithContext(ctx).
		Where("id = ? AND event_id = ?", teamID, eventID).
		First(&team).Error
	if err != nil {
		if dberr.IsNotFound(err) {
			return nil, teamModel.ErrTeamNotFound
		}
		r.logger.Errorw("GetByID database error", "team_id", teamID, "error", err)
		return nil, err
	}
	return &team, nil
}

// ListByEvent returns the teams of an event in creation order.
func (r *repository) ListByEvent(ctx context.Context, eventID string) ([]teamModel.Team, error) {
	teams := []teamModel.Team{}
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&teams).Error
	if err != nil {
		r.logger.Errorw("ListByEvent database error", "event_id", eventID, "error", err)
		return nil, err
	}
	return teams, nil
}

// SetCaptain replaces the captain.
func (r *repository) SetCaptain(ctx context.Context, teamID string, captainID *string) error {
	result := r.db.WithContext(ctx).
		Model(&teamModel.Team{ID: teamID}).
		Update("captain_id", captainID)
	if result.Error != nil {
		r.logger.Errorw("SetCaptain database error", "team_id", teamID, "error", result.Error)
		return result.Error
	}
	if result.RowsAffected == 0 {
		return teamModel.ErrTeamNotFound
	}
	return nil
}

// SetCaptainIfEmpty sets the captain only when the team has none.
func (r *repository) SetCaptainIfEmpty(ctx context.Context, teamID, captainID string) error {
	err := r.db.WithContext(ctx).
		Model(&teamModel.Team{}).
		Where("id = ? AND captain_id IS NULL", teamID).
		Update("captain_id", captainID).Error
	if err != nil {
		r.logger.Errorw("SetCaptainIfEmpty database error", "team_id", teamID, "error", err)
		return err
	}
	return nil
}

// AddPendingMatch increments matches_result_pending of the given teams.
func (r *repository) AddPendingMatch(ctx context.Context, teamIDs ...string) error {
	err := r.db.WithContext(ctx).
		Model(&teamModel.Team{}).
		Where("id IN ?", teamIDs).
		Update("matches_result_pending", gorm.Expr("matches_result_pending + 1")).Error
	if err != nil {
		r.logger.Errorw("AddPendingMatch database error", "team_ids", teamIDs, "error", err)
		return err
	}
	return nil
}

// RecordResult settles one pending match for both teams.
func (r *repository) RecordResult(ctx context.Context, winnerID, loserID string) error {
	db := r.db.WithContext(ctx).Model(&teamModel.Team{})
	err := db.Where("id IN ?", []string{winnerID, loserID}).
		Updates(map[string]any{
			"matches_played":         gorm.Expr("matches_played + 1"),
			"matches_result_pending": gorm.Expr("CASE WHEN matches_result_pending > 0 THEN matches_result_pending - 1 ELSE 0 END"),
		}).Error
	if err != nil {
		r.logger.Errorw("RecordResult database error", "winner_id", winnerID, "loser_id", loserID, "error", err)
		return err
	}

	err = r.db.WithContext(ctx).Model(&teamModel.Team{}).
		Where("id = ?", winnerID).
		Update("matches_won", gorm.Expr("matches_won + 1")).Error
	if err != nil {
		r.logger.Errorw("RecordResult database error", "winner_id", winnerID, "error", err)
		return err
	}
	return nil
}
