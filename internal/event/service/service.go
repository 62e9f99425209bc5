// Package service provides business logic layer for event module.
package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/festy23/street_sports/internal/event/model"
	"github.com/festy23/street_sports/internal/event/repository"
	"github.com/festy23/street_sports/internal/realtime"
)

// Service defines the interface for event business logic operations.
type Service interface {
	// Create schedules a new event organised by the caller.
	Create(ctx context.Context, organiserID string, req *model.CreateEventRequest) (*model.EventResponse, error)

	// Get returns one event.
	Get(ctx context.Context, eventID string) (*model.EventResponse, error)

	// List returns every event.
	List(ctx context.Context) ([]model.EventResponse, error)

	// ListMine returns the events the caller organises.
	ListMine(ctx context.Context, organiserID string) ([]model.EventResponse, error)

	// ListParticipations returns the events where the caller plays on a team.
	ListParticipations(ctx context.Context, userID string) ([]model.EventResponse, error)

	// SetPoster records a poster uploaded to the media host.
	SetPoster(ctx context.Context, organiserID, eventID string, req *model.SetPosterRequest) (*model.EventResponse, error)

	// DeletePoster clears the poster reference.
	DeletePoster(ctx context.Context, organiserID, eventID string) error
}

type service struct {
	repo      repository.Repository
	publisher realtime.Publisher
	logger    *zap.SugaredLogger
}

// New creates a new event service instance.
func New(repo repository.Repository, publisher realtime.Publisher, logger *zap.SugaredLogger) Service {
	return &service{repo: repo, publisher: publisher, logger: logger}
}

// Create schedules a new event organised by the caller.
func (s *service) Create(ctx context.Context, organiserID string, req *model.CreateEventRequest) (*model.EventResponse, error) {
	name := strings.TrimSpace(req.EventName)
	if !model.ValidSportType(req.SportType) {
		return nil, model.ErrInvalidSportType
	}
	if req.RegistrationDeadline.After(req.StartDate) {
		return nil, model.ErrInvalidSchedule
	}
	if req.AudienceFee < 0 || req.PlayerFee < 0 {
		return nil, model.ErrInvalidFee
	}

	now := time.Now().UTC()
	id := uuid.NewString()
	event := &model.Event{
		ID:                   id,
		EventName:            name,
		SportType:            req.SportType,
		OrganiserID:          organiserID,
		StartDate:            req.StartDate.UTC(),
		RegistrationDeadline: req.RegistrationDeadline.UTC(),
		Duration:             req.Duration,
		Status:               model.StatusActive,
		AudienceFree:         boolOr(req.AudienceFree, true),
		AudienceFee:          req.AudienceFee,
		PlayerFree:           boolOr(req.PlayerFree, true),
		PlayerFee:            req.PlayerFee,
		EventLink:            model.BuildEventLink(name, id),
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	if err := s.repo.Create(ctx, event); err != nil {
		return nil, err
	}

	resp := model.NewEventResponse(*event)
	s.publisher.Broadcast(realtime.EventCreated, resp)
	s.logger.Infow("event created", "event_id", event.ID, "organiser_id", organiserID)
	return &resp, nil
}

// Get returns one event.
func (s *service) Get(ctx context.Context, eventID string) (*model.EventResponse, error) {
	event, err := s.repo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	resp := model.NewEventResponse(*event)
	return &resp, nil
}

// List returns every event.
func (s *service) List(ctx context.Context) ([]model.EventResponse, error) {
	events, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return toResponses(events), nil
}

// ListMine returns the events the caller organises.
func (s *service) ListMine(ctx context.Context, organiserID string) ([]model.EventResponse, error) {
	events, err := s.repo.ListByOrganiser(ctx, organiserID)
	if err != nil {
		return nil, err
	}
	return toResponses(events), nil
}

// ListParticipations returns the events where the caller plays on a team.
func (s *service) ListParticipations(ctx context.Context, userID string) ([]model.EventResponse, error) {
	events, err := s.repo.ListByTeamMember(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toResponses(events), nil
}

// SetPoster records a poster uploaded to the media host.
func (s *service) SetPoster(ctx context.Context, organiserID, eventID string, req *model.SetPosterRequest) (*model.EventResponse, error) {
	event, err := s.repo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if err := event.CheckOrganiser(organiserID); err != nil {
		return nil, err
	}

	if err := s.repo.SetPoster(ctx, eventID, req.PublicID, req.URL); err != nil {
		return nil, err
	}
	event.PosterPublicID = req.PublicID
	event.PosterURL = req.URL

	resp := model.NewEventResponse(*event)
	s.publisher.Broadcast(realtime.PosterUpdated, model.PosterNotification{EventID: eventID, Poster: resp.Poster})
	return &resp, nil
}

// DeletePoster clears the poster reference.
func (s *service) DeletePoster(ctx context.Context, organiserID, eventID string) error {
	event, err := s.repo.GetByID(ctx, eventID)
	if err != nil {
		return err
	}
	if err := event.CheckOrganiser(organiserID); err != nil {
		return err
	}
	if event.Poster() == nil {
		return model.ErrNoPoster
	}

	if err := s.repo.SetPoster(ctx, eventID, "", ""); err != nil {
		return err
	}

	s.publisher.Broadcast(realtime.PosterDeleted, model.PosterNotification{EventID: eventID})
	return nil
}

func toResponses(events []model.Event) []model.EventResponse {
	out := make([]model.EventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, model.NewEventResponse(e))
	}
	return out
}

func boolOr(v *bool, fallback bool) bool {
	if v == nil {
		return fallback
	}
	return *v
}
