// Package service provides business logic layer for match module.
package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	eventRepo "github.com/festy23/street_sports/internal/event/repository"
	"github.com/festy23/street_sports/internal/match/model"
	"github.com/festy23/street_sports/internal/match/repository"
	"github.com/festy23/street_sports/internal/realtime"
	teamModel "github.com/festy23/street_sports/internal/team/model"
	teamRepo "github.com/festy23/street_sports/internal/team/repository"
	userModel "github.com/festy23/street_sports/internal/user/model"
	userRepo "github.com/festy23/street_sports/internal/user/repository"
)

// Service defines the interface for match business logic operations.
type Service interface {
	// Create schedules a match between two teams of the event. Organiser only.
	Create(ctx context.Context, organiserID, eventID string, req *model.CreateMatchRequest) (*model.MatchView, error)

	// UpdateResult records the winner of a scheduled match. Organiser only.
	UpdateResult(ctx context.Context, organiserID, eventID, matchID string, req *model.UpdateResultRequest) (*model.MatchView, error)

	// List returns the matches of an event.
	List(ctx context.Context, eventID string) ([]model.MatchView, error)

	// CreateHighlight publishes a highlight for a match. Organiser only.
	CreateHighlight(ctx context.Context, organiserID, eventID, matchID string, req *model.CreateHighlightRequest) (*model.HighlightView, error)

	// ListHighlights returns the highlights of a match, newest first.
	ListHighlights(ctx context.Context, eventID, matchID string) ([]model.HighlightView, error)

	// DeleteHighlight removes a highlight of a match. Organiser only.
	DeleteHighlight(ctx context.Context, organiserID, eventID, matchID, highlightID string) error
}

type service struct {
	repo      repository.Repository
	db        *gorm.DB
	publisher realtime.Publisher
	logger    *zap.SugaredLogger
}

// New creates a new match service instance.
func New(repo repository.Repository, db *gorm.DB, publisher realtime.Publisher, logger *zap.SugaredLogger) Service {
	return &service{repo: repo, db: db, publisher: publisher, logger: logger}
}

// Create schedules a match.
func (s *service) Create(ctx context.Context, organiserID, eventID string, req *model.CreateMatchRequest) (*model.MatchView, error) {
	if len(req.TeamIDs) != 2 {
		return nil, model.ErrSameTeam
	}
	teamAID, teamBID := strings.TrimSpace(req.TeamIDs[0]), strings.TrimSpace(req.TeamIDs[1])
	if teamAID == teamBID {
		return nil, model.ErrSameTeam
	}

	var view *model.MatchView
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := repository.New(tx, s.logger)
		teams := teamRepo.New(tx, s.logger)

		event, err := eventRepo.New(tx, s.logger).Lock(ctx, eventID)
		if err != nil {
			return err
		}
		if err := event.CheckOrganiser(organiserID); err != nil {
			return err
		}
		teamA, err := teams.GetByID(ctx, eventID, teamAID)
		if err != nil {
			return err
		}
		teamB, err := teams.GetByID(ctx, eventID, teamBID)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		match := &model.Match{
			ID:        uuid.NewString(),
			EventID:   eventID,
			TeamAID:   teamAID,
			TeamBID:   teamBID,
			Status:    model.StatusScheduled,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if req.MatchDate != nil {
			d := req.MatchDate.UTC()
			match.MatchDate = &d
		}
		if err := txRepo.Create(ctx, match); err != nil {
			return err
		}
		if err := teams.AddPendingMatch(ctx, teamAID, teamBID); err != nil {
			return err
		}

		view = &model.MatchView{Match: *match, TeamA: teamA.Ref(), TeamB: teamB.Ref()}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publisher.Broadcast(realtime.MatchCreated, model.MatchNotification{EventID: eventID, Match: *view})
	s.logger.Infow("match created", "event_id", eventID, "match_id", view.ID)
	return view, nil
}

// UpdateResult records the winner of a scheduled match. Counters move once:
// a repeated update finds the match completed and fails.
func (s *service) UpdateResult(
	ctx context.Context,
	organiserID, eventID, matchID string,
	req *model.UpdateResultRequest,
) (*model.MatchView, error) {
	var view *model.MatchView
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := repository.New(tx, s.logger)
		teams := teamRepo.New(tx, s.logger)

		event, err := eventRepo.New(tx, s.logger).Lock(ctx, eventID)
		if err != nil {
			return err
		}
		if err := event.CheckOrganiser(organiserID); err != nil {
			return err
		}

		match, err := txRepo.GetByID(ctx, eventID, matchID)
		if err != nil {
			return err
		}
		loserID := match.Opponent(req.WonTeamID)
		if loserID == "" {
			return model.ErrInvalidWinner
		}

		score := strings.TrimSpace(req.Score)
		completed, err := txRepo.Complete(ctx, matchID, req.WonTeamID, score)
		if err != nil {
			return err
		}
		if !completed {
			return model.ErrResultRecorded
		}
		if err := teams.RecordResult(ctx, req.WonTeamID, loserID); err != nil {
			return err
		}

		match.Status = model.StatusCompleted
		match.WonTeamID = &req.WonTeamID
		match.Score = score

		view, err = s.view(ctx, teams, *match)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.publisher.Broadcast(realtime.MatchResultUpdated, model.MatchNotification{EventID: eventID, Match: *view})
	s.logger.Infow("match result updated", "event_id", eventID, "match_id", matchID, "won_team_id", req.WonTeamID)
	return view, nil
}

// List returns the matches of an event.
func (s *service) List(ctx context.Context, eventID string) ([]model.MatchView, error) {
	if _, err := eventRepo.New(s.db, s.logger).GetByID(ctx, eventID); err != nil {
		return nil, err
	}
	matches, err := s.repo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	teams, err := teamRepo.New(s.db, s.logger).ListByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	refs := make(map[string]teamModel.Ref, len(teams))
	for _, t := range teams {
		refs[t.ID] = t.Ref()
	}

	out := make([]model.MatchView, 0, len(matches))
	for _, m := range matches {
		out = append(out, model.MatchView{Match: m, TeamA: refs[m.TeamAID], TeamB: refs[m.TeamBID]})
	}
	return out, nil
}

// CreateHighlight publishes a highlight for a match of the event.
func (s *service) CreateHighlight(
	ctx context.Context,
	organiserID, eventID, matchID string,
	req *model.CreateHighlightRequest,
) (*model.HighlightView, error) {
	if err := s.organiserMatch(ctx, organiserID, eventID, matchID); err != nil {
		return nil, err
	}

	highlight := &model.Highlight{
		ID:          uuid.NewString(),
		MatchID:     matchID,
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		MediaType:   req.MediaType,
		PublicID:    req.PublicID,
		URL:         req.URL,
		AuthorID:    organiserID,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.repo.CreateHighlight(ctx, highlight); err != nil {
		return nil, err
	}

	s.logger.Infow("highlight created", "event_id", eventID, "match_id", matchID, "highlight_id", highlight.ID)
	views, err := s.highlightViews(ctx, []model.Highlight{*highlight})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// ListHighlights returns the highlights of a match of the event.
func (s *service) ListHighlights(ctx context.Context, eventID, matchID string) ([]model.HighlightView, error) {
	if _, err := s.repo.GetByID(ctx, eventID, matchID); err != nil {
		return nil, err
	}
	highlights, err := s.repo.ListHighlights(ctx, matchID)
	if err != nil {
		return nil, err
	}
	return s.highlightViews(ctx, highlights)
}

// DeleteHighlight removes a highlight of a match of the event.
func (s *service) DeleteHighlight(ctx context.Context, organiserID, eventID, matchID, highlightID string) error {
	if err := s.organiserMatch(ctx, organiserID, eventID, matchID); err != nil {
		return err
	}
	if err := s.repo.DeleteHighlight(ctx, matchID, highlightID); err != nil {
		return err
	}
	s.logger.Infow("highlight deleted", "event_id", eventID, "match_id", matchID, "highlight_id", highlightID)
	return nil
}

// organiserMatch checks that organiserID runs the event and that the match
// belongs to it.
func (s *service) organiserMatch(ctx context.Context, organiserID, eventID, matchID string) error {
	event, err := eventRepo.New(s.db, s.logger).GetByID(ctx, eventID)
	if err != nil {
		return err
	}
	if err := event.CheckOrganiser(organiserID); err != nil {
		return err
	}
	_, err = s.repo.GetByID(ctx, eventID, matchID)
	return err
}

// highlightViews resolves highlight authors. An author without an account
// is shown by id only.
func (s *service) highlightViews(ctx context.Context, highlights []model.Highlight) ([]model.HighlightView, error) {
	authorIDs := make([]string, 0, len(highlights))
	for _, h := range highlights {
		authorIDs = append(authorIDs, h.AuthorID)
	}
	users, err := userRepo.New(s.db, s.logger).ListByIDs(ctx, authorIDs)
	if err != nil {
		return nil, err
	}
	profiles := make(map[string]userModel.Profile, len(users))
	for _, u := range users {
		profiles[u.ID] = u.Profile()
	}

	out := make([]model.HighlightView, 0, len(highlights))
	for _, h := range highlights {
		author, ok := profiles[h.AuthorID]
		if !ok {
			author = userModel.Profile{ID: h.AuthorID}
		}
		out = append(out, model.HighlightView{Highlight: h, CreatedBy: author})
	}
	return out, nil
}

func (s *service) view(ctx context.Context, teams teamRepo.Repository, match model.Match) (*model.MatchView, error) {
	teamA, err := teams.GetByID(ctx, match.EventID, match.TeamAID)
	if err != nil {
		return nil, err
	}
	teamB, err := teams.GetByID(ctx, match.EventID, match.TeamBID)
	if err != nil {
		return nil, err
	}
	return &model.MatchView{Match: match, TeamA: teamA.Ref(), TeamB: teamB.Ref()}, nil
}
