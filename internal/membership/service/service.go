// Package service provides registration logic for event rosters.
//
// Every mutation runs in one transaction that first locks the event row, so
// the checks spanning several rosters (pool vs team) see a stable state.
package service

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	eventModel "github.com/festy23/street_sports/internal/event/model"
	eventRepo "github.com/festy23/street_sports/internal/event/repository"
	"github.com/festy23/street_sports/internal/membership/model"
	"github.com/festy23/street_sports/internal/membership/repository"
	teamRepo "github.com/festy23/street_sports/internal/team/repository"
	userModel "github.com/festy23/street_sports/internal/user/model"
	userRepo "github.com/festy23/street_sports/internal/user/repository"
)

// Service defines the interface for registration operations.
type Service interface {
	// JoinAudience adds the caller to a free audience.
	JoinAudience(ctx context.Context, eventID, userID string) error

	// ListAudience returns the audience profiles.
	ListAudience(ctx context.Context, eventID string) (*model.RosterResponse, error)

	// RemoveFromAudience strikes a user from the audience. Organiser only.
	RemoveFromAudience(ctx context.Context, organiserID, eventID, userID string) error

	// ApplyAsPlayer adds the caller to the pending players pool.
	ApplyAsPlayer(ctx context.Context, eventID, userID string) error

	// ApplyToTeam adds the caller to a team roster.
	ApplyToTeam(ctx context.Context, eventID, teamID, userID string) error

	// ListPendingPlayers returns players waiting for approval. Organiser only.
	ListPendingPlayers(ctx context.Context, organiserID, eventID string) (*model.RosterResponse, error)

	// ApprovePlayer approves a pool entry, placing the player on teamID when given.
	ApprovePlayer(ctx context.Context, organiserID, eventID, userID, teamID string) error

	// RejectPlayer removes a player from the pool. Organiser only.
	RejectPlayer(ctx context.Context, organiserID, eventID, userID string) error

	// Grant records a registration whose payment, if any, is settled.
	// Granting an existing registration is a no-op.
	Grant(ctx context.Context, eventID, userID string, regType eventModel.RegistrationType, teamID string) (*model.Membership, error)

	// Resolve returns the first category holding the user, checking the
	// audience, then the players pool, then team rosters.
	Resolve(ctx context.Context, eventID, userID string) (*model.Membership, error)
}

type service struct {
	db     *gorm.DB
	users  userRepo.Repository
	logger *zap.SugaredLogger
}

// New creates a new registration service instance.
func New(db *gorm.DB, users userRepo.Repository, logger *zap.SugaredLogger) Service {
	return &service{db: db, users: users, logger: logger}
}

type stores struct {
	events  eventRepo.Repository
	members repository.Repository
	teams   teamRepo.Repository
}

func (s *service) stores(db *gorm.DB) stores {
	return stores{
		events:  eventRepo.New(db, s.logger),
		members: repository.New(db, s.logger),
		teams:   teamRepo.New(db, s.logger),
	}
}

// withEventLock runs fn in a transaction holding the event row lock.
func (s *service) withEventLock(ctx context.Context, eventID string, fn func(st stores, event *eventModel.Event) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		st := s.stores(tx)
		event, err := st.events.Lock(ctx, eventID)
		if err != nil {
			return err
		}
		return fn(st, event)
	})
}

func paymentRequired(event *eventModel.Event, regType eventModel.RegistrationType) error {
	return model.ErrPaymentRequired.WithDetails(map[string]any{
		"fee":  event.Fee(regType),
		"type": regType,
	})
}

// JoinAudience adds the caller to a free audience.
func (s *service) JoinAudience(ctx context.Context, eventID, userID string) error {
	err := s.withEventLock(ctx, eventID, func(st stores, event *eventModel.Event) error {
		joined, err := st.members.IsAudienceMember(ctx, eventID, userID)
		if err != nil {
			return err
		}
		if joined {
			return model.ErrAlreadyInAudience
		}
		if event.RequiresPayment(eventModel.RegistrationAudience) {
			return paymentRequired(event, eventModel.RegistrationAudience)
		}
		_, err = st.members.AddAudienceMember(ctx, eventID, userID)
		return err
	})
	if err != nil {
		return err
	}

	s.logger.Infow("audience joined", "event_id", eventID, "user_id", userID)
	return nil
}

// ListAudience returns the audience profiles.
func (s *service) ListAudience(ctx context.Context, eventID string) (*model.RosterResponse, error) {
	st := s.stores(s.db)
	if _, err := st.events.GetByID(ctx, eventID); err != nil {
		return nil, err
	}
	ids, err := st.members.ListAudience(ctx, eventID)
	if err != nil {
		return nil, err
	}
	return s.roster(ctx, eventID, ids)
}

// RemoveFromAudience strikes a user from the audience.
func (s *service) RemoveFromAudience(ctx context.Context, organiserID, eventID, userID string) error {
	err := s.withEventLock(ctx, eventID, func(st stores, event *eventModel.Event) error {
		if err := event.CheckOrganiser(organiserID); err != nil {
			return err
		}
		removed, err := st.members.RemoveAudienceMember(ctx, eventID, userID)
		if err != nil {
			return err
		}
		if !removed {
			return model.ErrNotInAudience
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Infow("audience member removed", "event_id", eventID, "user_id", userID)
	return nil
}

// ApplyAsPlayer adds the caller to the pending players pool.
func (s *service) ApplyAsPlayer(ctx context.Context, eventID, userID string) error {
	err := s.withEventLock(ctx, eventID, func(st stores, event *eventModel.Event) error {
		if err := checkPlayerFree(ctx, st, eventID, userID, ""); err != nil {
			return err
		}
		if event.RequiresPayment(eventModel.RegistrationPlayer) {
			return paymentRequired(event, eventModel.RegistrationPlayer)
		}
		_, err := st.members.AddParticipant(ctx, eventID, userID)
		return err
	})
	if err != nil {
		return err
	}

	s.logger.Infow("player applied", "event_id", eventID, "user_id", userID)
	return nil
}

// ApplyToTeam adds the caller to a team roster.
func (s *service) ApplyToTeam(ctx context.Context, eventID, teamID, userID string) error {
	err := s.withEventLock(ctx, eventID, func(st stores, event *eventModel.Event) error {
		if _, err := st.teams.GetByID(ctx, eventID, teamID); err != nil {
			return err
		}
		if err := checkPlayerFree(ctx, st, eventID, userID, teamID); err != nil {
			return err
		}
		if event.RequiresPayment(eventModel.RegistrationPlayer) {
			return model.ErrPaymentRequired.WithDetails(map[string]any{
				"fee":    event.Fee(eventModel.RegistrationPlayer),
				"type":   eventModel.RegistrationPlayer,
				"teamId": teamID,
			})
		}
		return addToTeam(ctx, st, eventID, teamID, userID)
	})
	if err != nil {
		return err
	}

	s.logger.Infow("player joined team", "event_id", eventID, "team_id", teamID, "user_id", userID)
	return nil
}

// checkPlayerFree enforces that a user is in at most one of the pool and
// the team rosters of an event.
func checkPlayerFree(ctx context.Context, st stores, eventID, userID, teamID string) error {
	member, err := st.members.FindTeamOfUser(ctx, eventID, userID)
	if err != nil {
		return err
	}
	if member != nil {
		if teamID != "" && member.TeamID == teamID {
			return model.ErrAlreadyOnThisTeam
		}
		return model.ErrAlreadyOnTeam
	}

	participant, err := st.members.GetParticipant(ctx, eventID, userID)
	if err != nil {
		return err
	}
	if participant != nil {
		return model.ErrAlreadyApplied
	}
	return nil
}

func addToTeam(ctx context.Context, st stores, eventID, teamID, userID string) error {
	added, err := st.members.AddTeamMember(ctx, eventID, teamID, userID)
	if err != nil {
		return err
	}
	if !added {
		return model.ErrAlreadyOnTeam
	}
	return st.teams.SetCaptainIfEmpty(ctx, teamID, userID)
}

// ListPendingPlayers returns players waiting for approval.
func (s *service) ListPendingPlayers(ctx context.Context, organiserID, eventID string) (*model.RosterResponse, error) {
	st := s.stores(s.db)
	event, err := st.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if err := event.CheckOrganiser(organiserID); err != nil {
		return nil, err
	}
	ids, err := st.members.ListParticipants(ctx, eventID, true)
	if err != nil {
		return nil, err
	}
	return s.roster(ctx, eventID, ids)
}

// ApprovePlayer approves a pool entry. With a team the player leaves the
// pool for that team's roster.
func (s *service) ApprovePlayer(ctx context.Context, organiserID, eventID, userID, teamID string) error {
	err := s.withEventLock(ctx, eventID, func(st stores, event *eventModel.Event) error {
		if err := event.CheckOrganiser(organiserID); err != nil {
			return err
		}
		participant, err := st.members.GetParticipant(ctx, eventID, userID)
		if err != nil {
			return err
		}
		if participant == nil {
			return model.ErrNotPendingPlayer
		}

		if teamID == "" {
			approved, err := st.members.ApproveParticipant(ctx, eventID, userID)
			if err != nil {
				return err
			}
			if !approved {
				return model.ErrNotPendingPlayer
			}
			return nil
		}

		if _, err := st.teams.GetByID(ctx, eventID, teamID); err != nil {
			return err
		}
		if _, err := st.members.RemoveParticipant(ctx, eventID, userID); err != nil {
			return err
		}
		return addToTeam(ctx, st, eventID, teamID, userID)
	})
	if err != nil {
		return err
	}

	s.logger.Infow("player approved", "event_id", eventID, "user_id", userID, "team_id", teamID)
	return nil
}

// RejectPlayer removes a player from the pool.
func (s *service) RejectPlayer(ctx context.Context, organiserID, eventID, userID string) error {
	err := s.withEventLock(ctx, eventID, func(st stores, event *eventModel.Event) error {
		if err := event.CheckOrganiser(organiserID); err != nil {
			return err
		}
		removed, err := st.members.RemoveParticipant(ctx, eventID, userID)
		if err != nil {
			return err
		}
		if !removed {
			return model.ErrNotPendingPlayer
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Infow("player rejected", "event_id", eventID, "user_id", userID)
	return nil
}

// Grant records a settled registration.
func (s *service) Grant(
	ctx context.Context,
	eventID, userID string,
	regType eventModel.RegistrationType,
	teamID string,
) (*model.Membership, error) {
	if !regType.Valid() {
		return nil, eventModel.ErrInvalidRegistrationType
	}

	var membership *model.Membership
	err := s.withEventLock(ctx, eventID, func(st stores, _ *eventModel.Event) error {
		if regType == eventModel.RegistrationAudience {
			if _, err := st.members.AddAudienceMember(ctx, eventID, userID); err != nil {
				return err
			}
			membership = &model.Membership{Type: regType, Category: model.CategoryAudience}
			return nil
		}

		current, err := st.members.FindTeamOfUser(ctx, eventID, userID)
		if err != nil {
			return err
		}

		if teamID == "" {
			if current != nil {
				membership = &model.Membership{Type: regType, Category: model.CategoryTeam, TeamID: current.TeamID}
				return nil
			}
			if _, err := st.members.AddParticipant(ctx, eventID, userID); err != nil {
				return err
			}
			membership = &model.Membership{Type: regType, Category: model.CategoryParticipants}
			return nil
		}

		if _, err := st.teams.GetByID(ctx, eventID, teamID); err != nil {
			return err
		}
		if current != nil {
			if current.TeamID != teamID {
				return model.ErrAlreadyOnTeam
			}
			membership = &model.Membership{Type: regType, Category: model.CategoryTeam, TeamID: teamID}
			return nil
		}
		if _, err := st.members.RemoveParticipant(ctx, eventID, userID); err != nil {
			return err
		}
		if err := addToTeam(ctx, st, eventID, teamID, userID); err != nil {
			return err
		}
		membership = &model.Membership{Type: regType, Category: model.CategoryTeam, TeamID: teamID}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infow("registration granted", "event_id", eventID, "user_id", userID, "type", regType, "team_id", membership.TeamID)
	return membership, nil
}

// Resolve returns the first category holding the user.
func (s *service) Resolve(ctx context.Context, eventID, userID string) (*model.Membership, error) {
	members := repository.New(s.db, s.logger)

	inAudience, err := members.IsAudienceMember(ctx, eventID, userID)
	if err != nil {
		return nil, err
	}
	if inAudience {
		return &model.Membership{Type: eventModel.RegistrationAudience, Category: model.CategoryAudience}, nil
	}

	participant, err := members.GetParticipant(ctx, eventID, userID)
	if err != nil {
		return nil, err
	}
	if participant != nil {
		return &model.Membership{Type: eventModel.RegistrationPlayer, Category: model.CategoryParticipants}, nil
	}

	member, err := members.FindTeamOfUser(ctx, eventID, userID)
	if err != nil {
		return nil, err
	}
	if member != nil {
		return &model.Membership{Type: eventModel.RegistrationPlayer, Category: model.CategoryTeam, TeamID: member.TeamID}, nil
	}

	return nil, model.ErrNotRegistered
}

func (s *service) roster(ctx context.Context, eventID string, ids []string) (*model.RosterResponse, error) {
	users, err := s.users.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	return &model.RosterResponse{
		EventID: eventID,
		Users:   userModel.ProfilesInOrder(ids, users),
	}, nil
}
