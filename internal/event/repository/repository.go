// Package repository provides data access layer for event module.
package repository

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/festy23/street_sports/internal/database/dberr"
	"github.com/festy23/street_sports/internal/event/model"
)

// Repository defines the interface for event data access operations.
type Repository interface {
	// Create inserts an event.
	Create(ctx context.Context, event *model.Event) error

	// GetByID finds an event by id.
	GetByID(ctx context.Context, eventID string) (*model.Event, error)

	// Lock reads the event with a row lock held until the surrounding
	// transaction ends. Roster mutations for one event serialize on it.
	Lock(ctx context.Context, eventID string) (*model.Event, error)

	// List returns all events, soonest first.
	List(ctx context.Context) ([]model.Event, error)

	// ListByOrganiser returns the organiser's events, newest first.
	ListByOrganiser(ctx context.Context, organiserID string) ([]model.Event, error)

	// ListByTeamMember returns the events where the user plays on a team.
	ListByTeamMember(ctx context.Context, userID string) ([]model.Event, error)

	// SetPoster replaces the poster reference. Empty values clear it.
	SetPoster(ctx context.Context, eventID, publicID, url string) error
}

type repository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new event repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{db: db, logger: logger}
}

// Create inserts an event.
func (r *repository) Create(ctx context.Context, event *model.Event) error {
	if err := r.db.WithContext(ctx).Create(event).Error; err != nil {
		r.logger.Errorw("Create database error", "event_id", event.ID, "error", err)
		return err
	}
	return nil
}

// GetByID finds an event by id.
func (r *repository) GetByID(ctx context.Context, eventID string) (*model.Event, error) {
	return r.get(r.db.WithContext(ctx), eventID)
}

// Lock reads the event with FOR UPDATE.
func (r *repository) Lock(ctx context.Context, eventID string) (*model.Event, error) {
	return r.get(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}), eventID)
}

func (r *repository) get(db *gorm.DB, eventID string) (*model.Event, error) {
	var event model.Event
	err := db.Where("id = ?", eventID).First(&event).Error
	if err != nil {
		if dberr.IsNotFound(err) {
			return nil, model.ErrEventNotFound
		}
		r.logger.Errorw("get event database error", "event_id", eventID, "error", err)
		return nil, err
	}
	return &event, nil
}

// List returns all events, soonest first.
func (r *repository) List(ctx context.Context) ([]model.Event, error) {
	events := []model.Event{}
	err := r.db.WithContext(ctx).
		Order("start_date ASC").
		Order("id ASC").
		Find(&events).Error
	if err != nil {
		r.logger.Errorw("List database error", "error", err)
		return nil, err
	}
	return events, nil
}

// ListByOrganiser returns the organiser's events, newest first.
func (r *repository) ListByOrganiser(ctx context.Context, organiserID string) ([]model.Event, error) {
	events := []model.Event{}
	err := r.db.WithContext(ctx).
		Where("organiser_id = ?", organiserID).
		Order("created_at DESC").
		Find(&events).Error
	if err != nil {
		r.logger.Errorw("ListByOrganiser database error", "organiser_id", organiserID, "error", err)
		return nil, err
	}
	return events, nil
}

// ListByTeamMember returns the events where the user is on a team roster,
// newest first.
func (r *repository) ListByTeamMember(ctx context.Context, userID string) ([]model.Event, error) {
	events := []model.Event{}
	rosters := r.db.Table("team_members").Select("event_id").Where("user_id = ?", userID)
	err := r.db.WithContext(ctx).
		Where("id IN (?)", rosters).
		Order("created_at DESC").
		Order("id DESC").
		Find(&events).Error
	if err != nil {
		r.logger.Errorw("ListByTeamMember database error", "user_id", userID, "error", err)
		return nil, err
	}
	return events, nil
}

// SetPoster replaces the poster reference.
func (r *repository) SetPoster(ctx context.Context, eventID, publicID, url string) error {
	result := r.db.WithContext(ctx).
		Model(&model.Event{ID: eventID}).
		Updates(map[string]any{
			"poster_public_id": publicID,
			"poster_url":       url,
		})
	if result.Error != nil {
		r.logger.Errorw("SetPoster database error", "event_id", eventID, "error", result.Error)
		return result.Error
	}
	if result.RowsAffected == 0 {
		return model.ErrEventNotFound
	}
	return nil
}
