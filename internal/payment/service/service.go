// Package service runs checkout and registration completion.
//
// Completing a paid registration walks the checkout session through
// paid, granted and ticketed. Each step is a conditional update, so a
// retried completion resumes where the last attempt stopped.
package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/festy23/street_sports/internal/config"
	eventModel "github.com/festy23/street_sports/internal/event/model"
	memberModel "github.com/festy23/street_sports/internal/membership/model"
	"github.com/festy23/street_sports/internal/payment/model"
	"github.com/festy23/street_sports/internal/payment/processor"
	"github.com/festy23/street_sports/internal/payment/repository"
	teamModel "github.com/festy23/street_sports/internal/team/model"
	ticketModel "github.com/festy23/street_sports/internal/ticket/model"
	ticketService "github.com/festy23/street_sports/internal/ticket/service"
)

// EventReader loads events.
type EventReader interface {
	GetByID(ctx context.Context, eventID string) (*eventModel.Event, error)
}

// TeamReader loads teams.
type TeamReader interface {
	GetByID(ctx context.Context, eventID, teamID string) (*teamModel.Team, error)
}

// Granter records settled registrations.
type Granter interface {
	Grant(ctx context.Context, eventID, userID string, regType eventModel.RegistrationType, teamID string) (*memberModel.Membership, error)
}

// TicketIssuer issues and loads tickets.
type TicketIssuer interface {
	Issue(ctx context.Context, eventID, userID string, regType eventModel.RegistrationType, opts ticketService.IssueOptions) (*ticketModel.IssuedTicket, error)
	Get(ctx context.Context, userID, ticketID string) (*ticketModel.IssuedTicket, error)
}

// Service defines the interface for payment operations.
type Service interface {
	// CreateCheckoutSession starts a processor checkout for a paid registration.
	CreateCheckoutSession(ctx context.Context, userID, eventID string, req *model.CheckoutRequest) (*model.CheckoutResponse, error)

	// CompleteRegistration grants the registration and issues a ticket once
	// payment, if any, is confirmed.
	CompleteRegistration(ctx context.Context, userID, eventID string, req *model.CompleteRequest) (*model.CompleteResponse, error)
}

type service struct {
	repo      repository.Repository
	events    EventReader
	teams     TeamReader
	members   Granter
	tickets   TicketIssuer
	processor processor.Processor
	cfg       config.PaymentConfig
	logger    *zap.SugaredLogger
}

// New creates a new payment service instance. A nil processor leaves paid
// checkout unavailable while free registrations keep working.
func New(
	repo repository.Repository,
	events EventReader,
	teams TeamReader,
	members Granter,
	tickets TicketIssuer,
	proc processor.Processor,
	cfg config.PaymentConfig,
	logger *zap.SugaredLogger,
) Service {
	return &service{
		repo:      repo,
		events:    events,
		teams:     teams,
		members:   members,
		tickets:   tickets,
		processor: proc,
		cfg:       cfg,
		logger:    logger,
	}
}

// CreateCheckoutSession starts a processor checkout.
func (s *service) CreateCheckoutSession(
	ctx context.Context,
	userID, eventID string,
	req *model.CheckoutRequest,
) (*model.CheckoutResponse, error) {
	if !req.Type.Valid() {
		return nil, eventModel.ErrInvalidRegistrationType
	}
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	amount := event.Fee(req.Type)
	if amount <= 0 {
		return nil, model.ErrEventFree
	}
	if amount < s.cfg.MinimumAmount {
		return nil, model.ErrBelowMinimum.
			WithMessage(fmt.Sprintf("Amount must be at least ₹%g", s.cfg.MinimumAmount)).
			WithDetails(map[string]any{
				"minimumAmount": s.cfg.MinimumAmount,
				"currentAmount": amount,
			})
	}
	if req.TeamID != "" {
		if req.Type != eventModel.RegistrationPlayer {
			return nil, eventModel.ErrInvalidRegistrationType
		}
		if _, err := s.teams.GetByID(ctx, eventID, req.TeamID); err != nil {
			return nil, err
		}
	}
	if s.processor == nil {
		return nil, model.ErrProcessorNotConfigured
	}

	sess, err := s.processor.CreateCheckoutSession(ctx, processor.CheckoutParams{
		EventID:   eventID,
		EventName: event.EventName,
		UserID:    userID,
		Type:      string(req.Type),
		TeamID:    req.TeamID,
		Amount:    amount,
	})
	if err != nil {
		return nil, model.ErrProcessorFailed.WithDetails(map[string]any{"error": err.Error()})
	}

	now := time.Now().UTC()
	record := &model.CheckoutSession{
		SessionID: sess.ID,
		EventID:   eventID,
		UserID:    userID,
		Type:      req.Type,
		Amount:    amount,
		Currency:  s.cfg.Currency,
		Status:    model.StatusCreated,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if req.TeamID != "" {
		record.TeamID = &req.TeamID
	}
	if err := s.repo.Create(ctx, record); err != nil {
		return nil, err
	}

	s.logger.Infow("checkout session created", "session_id", sess.ID, "event_id", eventID, "user_id", userID, "amount", amount)
	return &model.CheckoutResponse{SessionID: sess.ID, URL: sess.URL}, nil
}

// CompleteRegistration finalises a registration.
func (s *service) CompleteRegistration(
	ctx context.Context,
	userID, eventID string,
	req *model.CompleteRequest,
) (*model.CompleteResponse, error) {
	if !req.Type.Valid() {
		return nil, eventModel.ErrInvalidRegistrationType
	}
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	if !event.RequiresPayment(req.Type) {
		ticket, err := s.tickets.Issue(ctx, eventID, userID, req.Type, ticketService.IssueOptions{TeamID: req.TeamID})
		if err != nil {
			return nil, err
		}
		return completed(req.Type, ticket), nil
	}

	if req.SessionID == "" {
		return nil, model.ErrSessionRequired.WithDetails(map[string]any{
			"fee":  event.Fee(req.Type),
			"type": req.Type,
		})
	}
	session, err := s.repo.GetByID(ctx, req.SessionID)
	if err != nil {
		return nil, err
	}
	if session.UserID != userID || session.EventID != eventID || session.Type != req.Type {
		return nil, model.ErrSessionMismatch
	}

	ticket, err := s.advance(ctx, session)
	if err != nil {
		return nil, err
	}
	return completed(req.Type, ticket), nil
}

// advance runs the remaining steps of a paid session.
func (s *service) advance(ctx context.Context, session *model.CheckoutSession) (*ticketModel.IssuedTicket, error) {
	log := s.logger.With("session_id", session.SessionID, "event_id", session.EventID, "user_id", session.UserID)

	if session.Status == model.StatusCreated {
		if s.processor == nil {
			return nil, model.ErrProcessorNotConfigured
		}
		remote, err := s.processor.GetCheckoutSession(ctx, session.SessionID)
		if err != nil {
			return nil, model.ErrProcessorFailed.WithDetails(map[string]any{"error": err.Error()})
		}
		if !remote.Paid {
			return nil, model.ErrPaymentIncomplete
		}
		if _, err := s.repo.Advance(ctx, session.SessionID, model.StatusCreated, model.StatusPaid); err != nil {
			return nil, err
		}
		session.Status = model.StatusPaid
		log.Infow("payment confirmed")
	}

	if session.Status == model.StatusPaid {
		if _, err := s.members.Grant(ctx, session.EventID, session.UserID, session.Type, session.Team()); err != nil {
			return nil, err
		}
		if _, err := s.repo.Advance(ctx, session.SessionID, model.StatusPaid, model.StatusGranted); err != nil {
			return nil, err
		}
		session.Status = model.StatusGranted
		log.Infow("membership granted", "type", session.Type)
	}

	if session.Status == model.StatusGranted {
		ticket, err := s.tickets.Issue(ctx, session.EventID, session.UserID, session.Type, ticketService.IssueOptions{
			TeamID:    session.Team(),
			SessionID: session.SessionID,
		})
		if err != nil {
			return nil, err
		}
		attached, err := s.repo.AttachTicket(ctx, session.SessionID, ticket.ID)
		if err != nil {
			return nil, err
		}
		if attached {
			log.Infow("ticket issued", "ticket_id", ticket.ID)
			return ticket, nil
		}

		// A concurrent completion attached its ticket first.
		latest, err := s.repo.GetByID(ctx, session.SessionID)
		if err != nil {
			return nil, err
		}
		log.Warnw("session ticketed concurrently, extra ticket left unattached", "ticket_id", ticket.ID)
		session = latest
	}

	if session.TicketID == nil {
		return nil, fmt.Errorf("checkout session %s is %s without a ticket", session.SessionID, session.Status)
	}
	return s.tickets.Get(ctx, session.UserID, *session.TicketID)
}

func completed(regType eventModel.RegistrationType, ticket *ticketModel.IssuedTicket) *model.CompleteResponse {
	return &model.CompleteResponse{
		Message: "Registration completed successfully",
		Type:    regType,
		Ticket:  ticket,
	}
}
