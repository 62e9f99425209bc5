// Package service provides business logic for team invitations.
package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	eventRepo "github.com/festy23/street_sports/internal/event/repository"
	"github.com/festy23/street_sports/internal/invitation/model"
	"github.com/festy23/street_sports/internal/invitation/repository"
	memberModel "github.com/festy23/street_sports/internal/membership/model"
	memberRepo "github.com/festy23/street_sports/internal/membership/repository"
	"github.com/festy23/street_sports/internal/realtime"
	teamRepo "github.com/festy23/street_sports/internal/team/repository"
	userModel "github.com/festy23/street_sports/internal/user/model"
	userRepo "github.com/festy23/street_sports/internal/user/repository"
)

// Service defines the interface for invitation operations.
type Service interface {
	// Invite sends a team invitation on behalf of the organiser. The
	// receiver is notified on their own channel.
	Invite(ctx context.Context, organiserID, eventID, teamID string, req *model.InviteRequest) (*model.RequestView, error)

	// ListPending returns the invitations waiting for the user.
	ListPending(ctx context.Context, userID string) ([]model.RequestView, error)

	// Accept puts the receiver on the team and notifies the sender.
	Accept(ctx context.Context, userID, requestID string) (*model.RequestView, error)

	// Reject declines the invitation and notifies the sender.
	Reject(ctx context.Context, userID, requestID string) (*model.RequestView, error)

	// SearchUsers finds users the organiser could invite to the team.
	// Team members, users with a pending request and the caller are left out.
	SearchUsers(ctx context.Context, organiserID string, q *model.SearchUsersQuery) ([]userModel.Profile, error)
}

type service struct {
	repo      repository.Repository
	db        *gorm.DB
	publisher realtime.Publisher
	logger    *zap.SugaredLogger
}

// New creates a new invitation service instance.
func New(repo repository.Repository, db *gorm.DB, publisher realtime.Publisher, logger *zap.SugaredLogger) Service {
	return &service{repo: repo, db: db, publisher: publisher, logger: logger}
}

// Invite sends a team invitation.
func (s *service) Invite(
	ctx context.Context,
	organiserID, eventID, teamID string,
	req *model.InviteRequest,
) (*model.RequestView, error) {
	message := strings.TrimSpace(req.Message)
	if len([]rune(message)) > model.MaxMessageLength {
		return nil, model.ErrMessageTooLong
	}
	if req.ReceiverID == organiserID {
		return nil, model.ErrSelfInvite
	}

	event, err := eventRepo.New(s.db, s.logger).GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if err := event.CheckOrganiser(organiserID); err != nil {
		return nil, err
	}
	team, err := teamRepo.New(s.db, s.logger).GetByID(ctx, eventID, teamID)
	if err != nil {
		return nil, err
	}
	users := userRepo.New(s.db, s.logger)
	if _, err := users.GetByID(ctx, req.ReceiverID); err != nil {
		return nil, err
	}
	sender, err := users.GetByID(ctx, organiserID)
	if err != nil {
		return nil, err
	}

	current, err := memberRepo.New(s.db, s.logger).FindTeamOfUser(ctx, eventID, req.ReceiverID)
	if err != nil {
		return nil, err
	}
	if current != nil {
		if current.TeamID == teamID {
			return nil, memberModel.ErrAlreadyOnThisTeam
		}
		return nil, memberModel.ErrAlreadyOnTeam
	}

	pending, err := s.repo.HasPending(ctx, teamID, req.ReceiverID)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, model.ErrRequestPending
	}

	now := time.Now().UTC()
	request := &model.TeamRequest{
		ID:         uuid.NewString(),
		TeamID:     teamID,
		EventID:    eventID,
		SenderID:   organiserID,
		ReceiverID: req.ReceiverID,
		Status:     model.StatusPending,
		Message:    message,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.repo.Create(ctx, request); err != nil {
		return nil, err
	}

	profile := sender.Profile()
	view := &model.RequestView{TeamRequest: *request, Team: team.Ref(), Sender: &profile}
	s.publisher.PublishToUser(request.ReceiverID, realtime.RequestReceived, model.RequestNotification{Request: *view})
	s.logger.Infow("team request sent", "request_id", request.ID, "team_id", teamID, "receiver_id", request.ReceiverID)
	return view, nil
}

// ListPending returns the invitations waiting for the user.
func (s *service) ListPending(ctx context.Context, userID string) ([]model.RequestView, error) {
	requests, err := s.repo.ListPendingForReceiver(ctx, userID)
	if err != nil {
		return nil, err
	}

	views := make([]model.RequestView, 0, len(requests))
	if len(requests) == 0 {
		return views, nil
	}

	teams := teamRepo.New(s.db, s.logger)
	senderIDs := make([]string, 0, len(requests))
	for _, r := range requests {
		senderIDs = append(senderIDs, r.SenderID)
	}
	senders, err := userRepo.New(s.db, s.logger).ListByIDs(ctx, senderIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]userModel.Profile, len(senders))
	for _, u := range senders {
		byID[u.ID] = u.Profile()
	}

	for _, r := range requests {
		team, err := teams.GetByID(ctx, r.EventID, r.TeamID)
		if err != nil {
			return nil, err
		}
		view := model.RequestView{TeamRequest: r, Team: team.Ref()}
		if p, ok := byID[r.SenderID]; ok {
			view.Sender = &p
		}
		views = append(views, view)
	}
	return views, nil
}

// Accept puts the receiver on the team.
func (s *service) Accept(ctx context.Context, userID, requestID string) (*model.RequestView, error) {
	var view *model.RequestView
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := repository.New(tx, s.logger)
		members := memberRepo.New(tx, s.logger)
		teams := teamRepo.New(tx, s.logger)

		request, err := txRepo.GetForReceiver(ctx, requestID, userID)
		if err != nil {
			return err
		}
		if request.Status != model.StatusPending {
			return model.ErrRequestProcessed
		}
		if _, err := eventRepo.New(tx, s.logger).Lock(ctx, request.EventID); err != nil {
			return err
		}
		team, err := teams.GetByID(ctx, request.EventID, request.TeamID)
		if err != nil {
			return err
		}

		current, err := members.FindTeamOfUser(ctx, request.EventID, userID)
		if err != nil {
			return err
		}
		if current != nil && current.TeamID != request.TeamID {
			return memberModel.ErrAlreadyOnTeam
		}
		if current == nil {
			if _, err := members.RemoveParticipant(ctx, request.EventID, userID); err != nil {
				return err
			}
			if _, err := members.AddTeamMember(ctx, request.EventID, request.TeamID, userID); err != nil {
				return err
			}
			if err := teams.SetCaptainIfEmpty(ctx, request.TeamID, userID); err != nil {
				return err
			}
		}

		resolved, err := txRepo.Resolve(ctx, requestID, model.StatusAccepted)
		if err != nil {
			return err
		}
		if !resolved {
			return model.ErrRequestProcessed
		}
		request.Status = model.StatusAccepted
		view = &model.RequestView{TeamRequest: *request, Team: team.Ref()}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publisher.PublishToUser(view.SenderID, realtime.RequestAccepted, model.RequestNotification{Request: *view})
	s.logger.Infow("team request accepted", "request_id", requestID, "team_id", view.TeamID, "user_id", userID)
	return view, nil
}

// Reject declines the invitation.
func (s *service) Reject(ctx context.Context, userID, requestID string) (*model.RequestView, error) {
	request, err := s.repo.GetForReceiver(ctx, requestID, userID)
	if err != nil {
		return nil, err
	}
	if request.Status != model.StatusPending {
		return nil, model.ErrRequestProcessed
	}

	resolved, err := s.repo.Resolve(ctx, requestID, model.StatusRejected)
	if err != nil {
		return nil, err
	}
	if !resolved {
		return nil, model.ErrRequestProcessed
	}
	request.Status = model.StatusRejected

	view := &model.RequestView{TeamRequest: *request}
	team, err := teamRepo.New(s.db, s.logger).GetByID(ctx, request.EventID, request.TeamID)
	if err != nil {
		s.logger.Warnw("team of rejected request not loaded", "request_id", requestID, "error", err)
	} else {
		view.Team = team.Ref()
	}

	s.publisher.PublishToUser(request.SenderID, realtime.RequestRejected, model.RequestNotification{Request: *view})
	s.logger.Infow("team request rejected", "request_id", requestID, "user_id", userID)
	return view, nil
}

// SearchUsers finds invitable users for a team of the organiser's event.
func (s *service) SearchUsers(ctx context.Context, organiserID string, q *model.SearchUsersQuery) ([]userModel.Profile, error) {
	event, err := eventRepo.New(s.db, s.logger).GetByID(ctx, q.EventID)
	if err != nil {
		return nil, err
	}
	if err := event.CheckOrganiser(organiserID); err != nil {
		return nil, err
	}
	if _, err := teamRepo.New(s.db, s.logger).GetByID(ctx, q.EventID, q.TeamID); err != nil {
		return nil, err
	}

	members, err := memberRepo.New(s.db, s.logger).ListTeamMembers(ctx, q.TeamID)
	if err != nil {
		return nil, err
	}
	invited, err := s.repo.ListPendingReceivers(ctx, q.TeamID)
	if err != nil {
		return nil, err
	}
	exclude := make([]string, 0, len(members)+len(invited)+1)
	exclude = append(exclude, organiserID)
	for _, m := range members {
		exclude = append(exclude, m.UserID)
	}
	exclude = append(exclude, invited...)

	users, err := userRepo.New(s.db, s.logger).Search(ctx, q.Query, exclude, model.SearchLimit)
	if err != nil {
		return nil, err
	}
	profiles := make([]userModel.Profile, 0, len(users))
	for _, u := range users {
		profiles = append(profiles, u.Profile())
	}
	return profiles, nil
}
