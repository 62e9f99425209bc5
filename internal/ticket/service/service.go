// Package service issues tickets and validates them at the door.
//
// A ticket is valid while its holder is registered for the event. Stored
// tickets resolve their holder by id; legacy ids that were never stored are
// resolved through the user fragment they embed and stored on first scan.
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	eventModel "github.com/festy23/street_sports/internal/event/model"
	memberModel "github.com/festy23/street_sports/internal/membership/model"
	"github.com/festy23/street_sports/internal/ticket/model"
	"github.com/festy23/street_sports/internal/ticket/repository"
	userModel "github.com/festy23/street_sports/internal/user/model"
)

// EventReader loads events.
type EventReader interface {
	GetByID(ctx context.Context, eventID string) (*eventModel.Event, error)
}

// UserReader loads users.
type UserReader interface {
	GetByID(ctx context.Context, userID string) (*userModel.User, error)
	FindByIDSuffix(ctx context.Context, suffix string) ([]userModel.User, error)
}

// Registrar grants and looks up registrations.
type Registrar interface {
	Grant(ctx context.Context, eventID, userID string, regType eventModel.RegistrationType, teamID string) (*memberModel.Membership, error)
	Resolve(ctx context.Context, eventID, userID string) (*memberModel.Membership, error)
}

// IssueOptions carries the optional inputs of Issue.
type IssueOptions struct {
	TeamID    string
	SessionID string
}

// Service defines the interface for ticket operations.
type Service interface {
	// Issue registers the user and stores a new ticket priced at the
	// event's current fee. Payment must be settled by the caller.
	Issue(ctx context.Context, eventID, userID string, regType eventModel.RegistrationType, opts IssueOptions) (*model.IssuedTicket, error)

	// Get returns a ticket of the caller.
	Get(ctx context.Context, userID, ticketID string) (*model.IssuedTicket, error)

	// ValidateByID validates a bare ticket id.
	ValidateByID(ctx context.Context, eventID, ticketID string) (*model.ValidationResponse, error)

	// Verify validates a scanned QR payload.
	Verify(ctx context.Context, eventID string, payload model.QRPayload) (*model.ValidationResponse, error)
}

type service struct {
	repo    repository.Repository
	events  EventReader
	users   UserReader
	members Registrar
	strict  bool
	logger  *zap.SugaredLogger
}

// New creates a new ticket service instance. With strict set, a legacy id
// whose user fragment matches several users is rejected instead of
// resolving to the earliest user.
func New(
	repo repository.Repository,
	events EventReader,
	users UserReader,
	members Registrar,
	strict bool,
	logger *zap.SugaredLogger,
) Service {
	return &service{
		repo:    repo,
		events:  events,
		users:   users,
		members: members,
		strict:  strict,
		logger:  logger,
	}
}

// Issue registers the user and stores a new ticket.
func (s *service) Issue(
	ctx context.Context,
	eventID, userID string,
	regType eventModel.RegistrationType,
	opts IssueOptions,
) (*model.IssuedTicket, error) {
	if !regType.Valid() {
		return nil, eventModel.ErrInvalidRegistrationType
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if _, err := s.members.Grant(ctx, eventID, userID, regType, opts.TeamID); err != nil {
		return nil, err
	}

	// The fee is read after granting so the ticket shows the price in
	// force at issue time.
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	ticket := &model.Ticket{
		ID:       model.NewID(userID, now),
		EventID:  eventID,
		UserID:   userID,
		Type:     regType,
		Amount:   event.Fee(regType),
		IssuedAt: now,
	}
	if opts.SessionID != "" {
		ticket.SessionID = &opts.SessionID
	}
	if err := s.repo.Create(ctx, ticket); err != nil {
		return nil, err
	}

	s.logger.Infow("ticket issued", "ticket_id", ticket.ID, "event_id", eventID, "user_id", userID, "type", regType)
	return issued(ticket, event, user)
}

// Get returns a ticket of the caller.
func (s *service) Get(ctx context.Context, userID, ticketID string) (*model.IssuedTicket, error) {
	ticket, err := s.repo.GetByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if ticket.UserID != userID {
		return nil, model.ErrTicketNotFound
	}
	event, err := s.events.GetByID(ctx, ticket.EventID)
	if err != nil {
		return nil, err
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return issued(ticket, event, user)
}

// ValidateByID validates a bare ticket id.
func (s *service) ValidateByID(ctx context.Context, eventID, ticketID string) (*model.ValidationResponse, error) {
	ticketID = strings.TrimSpace(ticketID)
	if ticketID == "" {
		return nil, model.ErrTicketIDRequired
	}
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	ticket, err := s.repo.GetByID(ctx, ticketID)
	switch {
	case err == nil:
		if ticket.EventID != eventID {
			return nil, model.ErrTicketWrongEvent
		}
		user, err := s.users.GetByID(ctx, ticket.UserID)
		if err != nil {
			return nil, userError(err)
		}
		return s.admit(ctx, event, user, ticket, true)
	case errors.Is(err, model.ErrTicketNotFound):
	default:
		return nil, err
	}

	parsed, err := model.ParseID(ticketID)
	if err != nil {
		return nil, err
	}
	user, err := s.resolveFragment(ctx, parsed.UserFragment)
	if err != nil {
		return nil, err
	}
	return s.admit(ctx, event, user, &model.Ticket{
		ID:       ticketID,
		EventID:  eventID,
		UserID:   user.ID,
		IssuedAt: parsed.IssuedAt,
	}, false)
}

// Verify validates a scanned QR payload.
func (s *service) Verify(ctx context.Context, eventID string, payload model.QRPayload) (*model.ValidationResponse, error) {
	payload.TicketID = strings.TrimSpace(payload.TicketID)
	if payload.TicketID == "" || payload.UserID == "" || payload.EventID == "" {
		return nil, model.ErrTicketPayloadInvalid
	}
	if payload.EventID != eventID {
		return nil, model.ErrTicketWrongEvent
	}

	user, err := s.users.GetByID(ctx, payload.UserID)
	if err != nil {
		if errors.Is(err, userModel.ErrUserNotFound) {
			return nil, model.ErrTicketUserNotFound
		}
		return nil, err
	}
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	ticket, err := s.repo.GetByID(ctx, payload.TicketID)
	stored := err == nil
	switch {
	case err == nil:
		if ticket.EventID != eventID {
			return nil, model.ErrTicketWrongEvent
		}
		if ticket.UserID != payload.UserID {
			return nil, model.ErrTicketPayloadInvalid
		}
	case errors.Is(err, model.ErrTicketNotFound):
		ticket = &model.Ticket{
			ID:       payload.TicketID,
			EventID:  eventID,
			UserID:   payload.UserID,
			Type:     payload.Type,
			IssuedAt: payload.Timestamp.UTC(),
		}
	default:
		return nil, err
	}
	return s.admit(ctx, event, user, ticket, stored)
}

// resolveFragment finds the user whose last eight id characters equal
// fragment. Several matches resolve to the earliest created user unless
// strict is set.
func (s *service) resolveFragment(ctx context.Context, fragment string) (*userModel.User, error) {
	if !model.MatchesUser(fragment, fragment) {
		return nil, model.ErrTicketUserUnresolved
	}
	candidates, err := s.users.FindByIDSuffix(ctx, fragment)
	if err != nil {
		return nil, err
	}
	users := candidates[:0]
	for _, u := range candidates {
		if model.MatchesUser(fragment, u.ID) {
			users = append(users, u)
		}
	}

	switch {
	case len(users) == 0:
		return nil, model.ErrTicketUserUnresolved
	case len(users) > 1 && s.strict:
		return nil, model.ErrTicketAmbiguous.WithDetails(map[string]any{"matches": len(users)})
	case len(users) > 1:
		s.logger.Warnw("ticket user fragment matches several users, using earliest",
			"fragment", fragment,
			"matches", len(users),
			"user_id", users[0].ID,
		)
	}
	return &users[0], nil
}

// admit checks the registration behind a resolved ticket and records the
// scan. stored is false for tickets not yet kept in the tickets table; such
// a ticket is adopted under this event, so the same id is refused at any
// other event afterwards.
func (s *service) admit(
	ctx context.Context,
	event *eventModel.Event,
	user *userModel.User,
	ticket *model.Ticket,
	stored bool,
) (*model.ValidationResponse, error) {
	membership, err := s.members.Resolve(ctx, event.ID, user.ID)
	if err != nil {
		if errors.Is(err, memberModel.ErrNotRegistered) {
			return nil, model.ErrTicketNotRegistered.WithDetails(map[string]any{"userId": user.ID})
		}
		return nil, err
	}

	// Tickets never stored here are kept from their first scan on so
	// later scans are reported as repeats.
	if !stored {
		ticket.Type = membership.Type
		ticket.Amount = event.Fee(membership.Type)
		if ticket.IssuedAt.IsZero() {
			ticket.IssuedAt = time.Now().UTC()
		}
		if err := s.repo.Adopt(ctx, ticket); err != nil {
			return nil, err
		}
	}

	first, count, err := s.repo.MarkScanned(ctx, ticket.ID)
	if err != nil {
		return nil, err
	}
	if !first {
		s.logger.Infow("ticket scanned again", "ticket_id", ticket.ID, "event_id", event.ID, "scan_count", count)
	}

	return &model.ValidationResponse{
		Message: "Ticket verified successfully",
		Ticket: model.TicketView{
			ID:        ticket.ID,
			EventID:   event.ID,
			EventName: event.EventName,
			Type:      membership.Type,
			Amount:    ticket.Amount,
			Timestamp: ticket.IssuedAt,
			Verified:  true,
			FirstScan: first,
			ScanCount: count,
		},
		User: user.Profile(),
	}, nil
}

func userError(err error) error {
	if errors.Is(err, userModel.ErrUserNotFound) {
		return model.ErrTicketUserUnresolved
	}
	return err
}

func issued(ticket *model.Ticket, event *eventModel.Event, user *userModel.User) (*model.IssuedTicket, error) {
	qr, err := model.QRPayload{
		TicketID:  ticket.ID,
		EventID:   ticket.EventID,
		UserID:    ticket.UserID,
		Type:      ticket.Type,
		Timestamp: ticket.IssuedAt,
	}.Encode()
	if err != nil {
		return nil, err
	}

	out := &model.IssuedTicket{
		ID:        ticket.ID,
		EventID:   ticket.EventID,
		EventName: event.EventName,
		UserName:  user.Name,
		UserEmail: user.Email,
		Type:      ticket.Type,
		Amount:    ticket.Amount,
		Timestamp: ticket.IssuedAt,
		QRData:    qr,
	}
	if ticket.SessionID != nil {
		out.SessionID = *ticket.SessionID
	}
	return out, nil
}
