// Package service provides business logic layer for statistics module.
package service

import (
	"context"

	"go.uber.org/zap"

	eventModel "github.com/festy23/street_sports/internal/event/model"
	"github.com/festy23/street_sports/internal/statistics/model"
	"github.com/festy23/street_sports/internal/statistics/repository"
)

// EventReader loads events.
type EventReader interface {
	GetByID(ctx context.Context, eventID string) (*eventModel.Event, error)
}

// Service defines the interface for statistics business logic operations.
type Service interface {
	// GetEventStatistics returns the totals of an event. Organiser only.
	GetEventStatistics(ctx context.Context, organiserID, eventID string) (*model.EventStatisticsResponse, error)

	// GetStandings returns the team standings of an event.
	GetStandings(ctx context.Context, eventID string) (*model.StandingsResponse, error)
}

type service struct {
	repo   repository.Repository
	events EventReader
	logger *zap.SugaredLogger
}

// New creates a new statistics service instance.
func New(repo repository.Repository, events EventReader, logger *zap.SugaredLogger) Service {
	return &service{
		repo:   repo,
		events: events,
		logger: logger,
	}
}

// GetEventStatistics returns the totals of an event.
func (s *service) GetEventStatistics(ctx context.Context, organiserID, eventID string) (*model.EventStatisticsResponse, error) {
	s.logger.Debugw("GetEventStatistics called", "event_id", eventID)

	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if err := event.CheckOrganiser(organiserID); err != nil {
		return nil, err
	}

	stats, err := s.repo.GetEventStatistics(ctx, eventID)
	if err != nil {
		s.logger.Errorw("GetEventStatistics failed", "event_id", eventID, "error", err)
		return nil, err
	}

	s.logger.Infow("GetEventStatistics completed", "event_id", eventID)
	return &model.EventStatisticsResponse{Statistics: *stats}, nil
}

// GetStandings returns the team standings of an event.
func (s *service) GetStandings(ctx context.Context, eventID string) (*model.StandingsResponse, error) {
	s.logger.Debugw("GetStandings called", "event_id", eventID)

	if _, err := s.events.GetByID(ctx, eventID); err != nil {
		return nil, err
	}

	teams, err := s.repo.GetStandings(ctx, eventID)
	if err != nil {
		s.logger.Errorw("GetStandings failed", "event_id", eventID, "error", err)
		return nil, err
	}

	return &model.StandingsResponse{
		EventID: eventID,
		Teams:   teams,
		Total:   len(teams),
	}, nil
}
