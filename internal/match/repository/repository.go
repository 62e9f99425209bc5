// Package repository provides data access layer for match module.
package repository

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/street_sports/internal/database/dberr"
	"github.com/festy23/street_sports/internal/match/model"
)

// Repository defines the interface for match data access operations.
type Repository interface {
	// Create inserts a match.
	Create(ctx context.Context, match *model.Match) error

	// GetByID finds a match of the event.
	GetByID(ctx context.Context, eventID, matchID string) (*model.Match, error)

	// ListByEvent returns the matches of an event in creation order.
	ListByEvent(ctx context.Context, eventID string) ([]model.Match, error)

	// Complete records the result of a scheduled match. It returns false
	// when the match was already completed.
	Complete(ctx context.Context, matchID, wonTeamID, score string) (bool, error)

	// CreateHighlight inserts a highlight.
	CreateHighlight(ctx context.Context, highlight *model.Highlight) error

	// ListHighlights returns the highlights of a match, newest first.
	ListHighlights(ctx context.Context, matchID string) ([]model.Highlight, error)

	// DeleteHighlight removes a highlight of the match.
	DeleteHighlight(ctx context.Context, matchID, highlightID string) error
}

type repository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new match repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{db: db, logger: logger}
}

func (r *repository) Create(ctx context.Context, match *model.Match) error {
	if err := r.db.WithContext(ctx).Create(match).Error; err != nil {
		r.logger.Errorw("Create database error", "event_id", match.EventID, "error", err)
		return err
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, eventID, matchID string) (*model.Match, error) {
	var match model.Match
	err := r.db.WithContext(ctx).
		Where("id = ? AND event_id = ?", matchID, eventID).
		First(&match).Error
	if err != nil {
		if dberr.IsNotFound(err) {
			return nil, model.ErrMatchNotFound
		}
		r.logger.Errorw("GetByID database error", "match_id", matchID, "error", err)
		return nil, err
	}
	return &match, nil
}

func (r *repository) ListByEvent(ctx context.Context, eventID string) ([]model.Match, error) {
	matches := []model.Match{}
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&matches).Error
	if err != nil {
		r.logger.Errorw("ListByEvent database error", "event_id", eventID, "error", err)
		return nil, err
	}
	return matches, nil
}

func (r *repository) Complete(ctx context.Context, matchID, wonTeamID, score string) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&model.Match{}).
		Where("id = ? AND status = ?", matchID, model.StatusScheduled).
		Updates(map[string]any{
			"status":      model.StatusCompleted,
			"won_team_id": wonTeamID,
			"score":       score,
			"updated_at":  time.Now().UTC(),
		})
	if result.Error != nil {
		r.logger.Errorw("Complete database error", "match_id", matchID, "error", result.Error)
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *repository) CreateHighlight(ctx context.Context, highlight *model.Highlight) error {
	if err := r.db.WithContext(ctx).Create(highlight).Error; err != nil {
		r.logger.Errorw("CreateHighlight database error", "match_id", highlight.MatchID, "error", err)
		return err
	}
	return nil
}

func (r *repository) ListHighlights(ctx context.Context, matchID string) ([]model.Highlight, error) {
	highlights := []model.Highlight{}
	err := r.db.WithContext(ctx).
		Where("match_id = ?", matchID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&highlights).Error
	if err != nil {
		r.logger.Errorw("ListHighlights database error", "match_id", matchID, "error", err)
		return nil, err
	}
	return highlights, nil
}

func (r *repository) DeleteHighlight(ctx context.Context, matchID, highlightID string) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND match_id = ?", highlightID, matchID).
		Delete(&model.Highlight{})
	if result.Error != nil {
		r.logger.Errorw("DeleteHighlight database error", "highlight_id", highlightID, "error", result.Error)
		return result.Error
	}
	if result.RowsAffected == 0 {
		return model.ErrHighlightNotFound
	}
	return nil
}
