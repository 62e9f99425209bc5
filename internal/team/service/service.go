// Package service provides business logic layer for team module.
package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	eventRepo "github.com/festy23/street_sports/internal/event/repository"
	memberModel "github.com/festy23/street_sports/internal/membership/model"
	memberRepo "github.com/festy23/street_sports/internal/membership/repository"
	"github.com/festy23/street_sports/internal/realtime"
	teamModel "github.com/festy23/street_sports/internal/team/model"
	"github.com/festy23/street_sports/internal/team/repository"
	userModel "github.com/festy23/street_sports/internal/user/model"
	userRepo "github.com/festy23/street_sports/internal/user/repository"
)

// Service defines the interface for team business logic operations.
type Service interface {
	// CreateTeam creates a team in the event with an initial roster. The
	// first listed user becomes captain. Organiser only.
	CreateTeam(ctx context.Context, organiserID, eventID string, req *teamModel.CreateTeamRequest) (*teamModel.TeamResponse, error)

	// ListTeams returns the teams of an event with their rosters.
	ListTeams(ctx context.Context, eventID string) ([]teamModel.TeamResponse, error)

	// RemoveMember strikes a user from a team. The organiser may remove
	// anyone; a player may remove themselves.
	RemoveMember(ctx context.Context, callerID, eventID, teamID, userID string) (*teamModel.TeamResponse, error)

	// PromoteCaptain makes a roster member captain. Organiser only.
	PromoteCaptain(ctx context.Context, organiserID, eventID, teamID, userID string) (*teamModel.TeamResponse, error)
}

type service struct {
	repo      repository.Repository
	db        *gorm.DB
	publisher realtime.Publisher
	logger    *zap.SugaredLogger
}

// New creates a new team service instance.
func New(repo repository.Repository, db *gorm.DB, publisher realtime.Publisher, logger *zap.SugaredLogger) Service {
	return &service{
		repo:      repo,
		db:        db,
		publisher: publisher,
		logger:    logger,
	}
}

// CreateTeam creates a team with members in a transaction.
func (s *service) CreateTeam(
	ctx context.Context,
	organiserID, eventID string,
	req *teamModel.CreateTeamRequest,
) (*teamModel.TeamResponse, error) {
	name := strings.TrimSpace(req.TeamName)
	if name == "" {
		return nil, teamModel.ErrInvalidTeamName
	}
	userIDs := dedupe(req.Users)

	var result *teamModel.TeamResponse
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := repository.New(tx, s.logger)
		members := memberRepo.New(tx, s.logger)
		users := userRepo.New(tx, s.logger)

		event, err := eventRepo.New(tx, s.logger).Lock(ctx, eventID)
		if err != nil {
			return err
		}
		if err := event.CheckOrganiser(organiserID); err != nil {
			return err
		}

		found, err := users.ListByIDs(ctx, userIDs)
		if err != nil {
			return err
		}
		if len(found) != len(userIDs) {
			return userModel.ErrUserNotFound.WithDetails(map[string]any{"missing": missing(userIDs, found)})
		}

		now := time.Now().UTC()
		team := &teamModel.Team{
			ID:        uuid.NewString(),
			EventID:   eventID,
			TeamName:  name,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if len(userIDs) > 0 {
			team.CaptainID = &userIDs[0]
		}
		if err := txRepo.Create(ctx, team); err != nil {
			return err
		}

		for _, userID := range userIDs {
			current, err := members.FindTeamOfUser(ctx, eventID, userID)
			if err != nil {
				return err
			}
			if current != nil {
				return memberModel.ErrAlreadyOnTeam.WithDetails(map[string]any{"userId": userID})
			}
			// Pending applicants leave the pool for the new roster.
			if _, err := members.RemoveParticipant(ctx, eventID, userID); err != nil {
				return err
			}
			if _, err := members.AddTeamMember(ctx, eventID, team.ID, userID); err != nil {
				return err
			}
		}

		result, err = s.load(ctx, tx, team)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.publisher.Broadcast(realtime.TeamCreated, teamModel.TeamNotification{EventID: eventID, Team: *result})
	s.logger.Infow("team created", "event_id", eventID, "team_id", result.ID, "members", len(result.Members))
	return result, nil
}

// ListTeams returns the teams of an event with their rosters.
func (s *service) ListTeams(ctx context.Context, eventID string) ([]teamModel.TeamResponse, error) {
	if _, err := eventRepo.New(s.db, s.logger).GetByID(ctx, eventID); err != nil {
		return nil, err
	}
	teams, err := s.repo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	return s.withRosters(ctx, s.db, teams)
}

// RemoveMember strikes a user from a team.
func (s *service) RemoveMember(ctx context.Context, callerID, eventID, teamID, userID string) (*teamModel.TeamResponse, error) {
	var result *teamModel.TeamResponse
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := repository.New(tx, s.logger)

		event, err := eventRepo.New(tx, s.logger).Lock(ctx, eventID)
		if err != nil {
			return err
		}
		if callerID != userID {
			if err := event.CheckOrganiser(callerID); err != nil {
				return err
			}
		}

		team, err := txRepo.GetByID(ctx, eventID, teamID)
		if err != nil {
			return err
		}
		removed, err := memberRepo.New(tx, s.logger).RemoveTeamMember(ctx, teamID, userID)
		if err != nil {
			return err
		}
		if !removed {
			return teamModel.ErrNotTeamMember
		}
		if team.CaptainID != nil && *team.CaptainID == userID {
			if err := txRepo.SetCaptain(ctx, teamID, nil); err != nil {
				return err
			}
			team.CaptainID = nil
		}

		result, err = s.load(ctx, tx, team)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.publisher.Broadcast(realtime.TeamUpdated, teamModel.TeamNotification{EventID: eventID, Team: *result})
	s.logger.Infow("team member removed", "event_id", eventID, "team_id", teamID, "user_id", userID)
	return result, nil
}

// PromoteCaptain makes a roster member captain.
func (s *service) PromoteCaptain(ctx context.Context, organiserID, eventID, teamID, userID string) (*teamModel.TeamResponse, error) {
	var result *teamModel.TeamResponse
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := repository.New(tx, s.logger)

		event, err := eventRepo.New(tx, s.logger).Lock(ctx, eventID)
		if err != nil {
			return err
		}
		if err := event.CheckOrganiser(organiserID); err != nil {
			return err
		}

		team, err := txRepo.GetByID(ctx, eventID, teamID)
		if err != nil {
			return err
		}
		member, err := memberRepo.New(tx, s.logger).FindTeamOfUser(ctx, eventID, userID)
		if err != nil {
			return err
		}
		if member == nil || member.TeamID != teamID {
			return teamModel.ErrNotTeamMember
		}
		if err := txRepo.SetCaptain(ctx, teamID, &userID); err != nil {
			return err
		}
		team.CaptainID = &userID

		result, err = s.load(ctx, tx, team)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.publisher.Broadcast(realtime.TeamUpdated, teamModel.TeamNotification{EventID: eventID, Team: *result})
	s.logger.Infow("team captain promoted", "event_id", eventID, "team_id", teamID, "user_id", userID)
	return result, nil
}

func (s *service) load(ctx context.Context, db *gorm.DB, team *teamModel.Team) (*teamModel.TeamResponse, error) {
	out, err := s.withRosters(ctx, db, []teamModel.Team{*team})
	if err != nil {
		return nil, err
	}
	return &out[0], nil
}

// withRosters attaches member profiles to teams in roster order.
func (s *service) withRosters(ctx context.Context, db *gorm.DB, teams []teamModel.Team) ([]teamModel.TeamResponse, error) {
	teamIDs := make([]string, 0, len(teams))
	for _, t := range teams {
		teamIDs = append(teamIDs, t.ID)
	}

	rows, err := memberRepo.New(db, s.logger).ListTeamMembers(ctx, teamIDs...)
	if err != nil {
		return nil, err
	}
	byTeam := make(map[string][]string, len(teams))
	userIDs := make([]string, 0, len(rows))
	for _, row := range rows {
		byTeam[row.TeamID] = append(byTeam[row.TeamID], row.UserID)
		userIDs = append(userIDs, row.UserID)
	}

	users, err := userRepo.New(db, s.logger).ListByIDs(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	out := make([]teamModel.TeamResponse, 0, len(teams))
	for _, t := range teams {
		out = append(out, teamModel.TeamResponse{
			Team:    t,
			Members: userModel.ProfilesInOrder(byTeam[t.ID], users),
		})
	}
	return out, nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func missing(ids []string, found []userModel.User) []string {
	present := make(map[string]struct{}, len(found))
	for _, u := range found {
		present[u.ID] = struct{}{}
	}
	var out []string
	for _, id := range ids {
		if _, ok := present[id]; !ok {
			out = append(out, id)
		}
	}
	return out
}
