package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"

	"github.com/festy23/street_sports/internal/apperror"
	"github.com/festy23/street_sports/internal/database/dbtest"
	eventModel "github.com/festy23/street_sports/internal/event/model"
	memberModel "github.com/festy23/street_sports/internal/membership/model"
	"github.com/festy23/street_sports/internal/realtime"
	"github.com/festy23/street_sports/internal/realtime/realtimetest"
	teamModel "github.com/festy23/street_sports/internal/team/model"
	"github.com/festy23/street_sports/internal/team/repository"
	userModel "github.com/festy23/street_sports/internal/user/model"
)

type fixture struct {
	db    *gorm.DB
	svc   Service
	rec   *realtimetest.Recorder
	event *eventModel.Event
}

func setup(t *testing.T) *fixture {
	t.Helper()

	db := dbtest.Open(t)
	logger := zaptest.NewLogger(t).Sugar()
	rec := realtimetest.NewRecorder()

	for _, id := range []string{"org", "u1", "u2", "u3", "u4"} {
		dbtest.SeedUser(t, db, id, "User "+id)
	}
	event := dbtest.SeedEvent(t, db, dbtest.EventOptions{OrganiserID: "org"})

	return &fixture{
		db:    db,
		svc:   New(repository.New(db, logger), db, rec, logger),
		rec:   rec,
		event: event,
	}
}

func memberIDs(team *teamModel.TeamResponse) []string {
	out := make([]string, 0, len(team.Members))
	for _, m := range team.Members {
		out = append(out, m.ID)
	}
	return out
}

func TestService_CreateTeam(t *testing.T) {
	ctx := context.Background()

	t.Run("creates roster with first user as captain", func(t *testing.T) {
		f := setup(t)
		dbtest.SeedParticipant(t, f.db, f.event.ID, "u2")

		team, err := f.svc.CreateTeam(ctx, "org", f.event.ID, &teamModel.CreateTeamRequest{
			TeamName: " Lions ",
			Users:    []string{"u1", "u2", "u1", ""},
		})
		require.NoError(t, err)

		assert.Equal(t, "Lions", team.TeamName)
		require.NotNil(t, team.CaptainID)
		assert.Equal(t, "u1", *team.CaptainID)
		assert.ElementsMatch(t, []string{"u1", "u2"}, memberIDs(team))

		var pool int64
		require.NoError(t, f.db.Model(&memberModel.Participant{}).Where("user_id = ?", "u2").Count(&pool).Error)
		assert.Zero(t, pool, "applicant leaves the pool when placed on a team")

		require.Len(t, f.rec.All(), 1)
		assert.Equal(t, realtime.TeamCreated, f.rec.All()[0].Event)
		assert.Empty(t, f.rec.All()[0].UserID)
	})

	t.Run("empty roster has no captain", func(t *testing.T) {
		f := setup(t)

		team, err := f.svc.CreateTeam(ctx, "org", f.event.ID, &teamModel.CreateTeamRequest{TeamName: "Empty"})
		require.NoError(t, err)
		assert.Nil(t, team.CaptainID)
		assert.Empty(t, team.Members)
	})

	t.Run("only organiser", func(t *testing.T) {
		f := setup(t)

		_, err := f.svc.CreateTeam(ctx, "u1", f.event.ID, &teamModel.CreateTeamRequest{TeamName: "Lions"})
		assert.ErrorIs(t, err, eventModel.ErrNotOrganizer)
		assert.Empty(t, f.rec.All())
	})

	t.Run("blank name", func(t *testing.T) {
		f := setup(t)

		_, err := f.svc.CreateTeam(ctx, "org", f.event.ID, &teamModel.CreateTeamRequest{TeamName: "   "})
		assert.ErrorIs(t, err, teamModel.ErrInvalidTeamName)
	})

	t.Run("duplicate name", func(t *testing.T) {
		f := setup(t)
		dbtest.SeedTeam(t, f.db, f.event.ID, "Lions")

		_, err := f.svc.CreateTeam(ctx, "org", f.event.ID, &teamModel.CreateTeamRequest{TeamName: "Lions"})
		assert.ErrorIs(t, err, teamModel.ErrTeamExists)
	})

	t.Run("unknown user rolls back", func(t *testing.T) {
		f := setup(t)

		_, err := f.svc.CreateTeam(ctx, "org", f.event.ID, &teamModel.CreateTeamRequest{
			TeamName: "Lions",
			Users:    []string{"u1", "ghost"},
		})
		require.ErrorIs(t, err, userModel.ErrUserNotFound)
		appErr, ok := apperror.As(err)
		require.True(t, ok)
		assert.Equal(t, []string{"ghost"}, appErr.Details["missing"])

		var count int64
		require.NoError(t, f.db.Model(&teamModel.Team{}).Count(&count).Error)
		assert.Zero(t, count)
	})

	t.Run("user already on another team", func(t *testing.T) {
		f := setup(t)
		dbtest.SeedTeam(t, f.db, f.event.ID, "Tigers", "u3")

		_, err := f.svc.CreateTeam(ctx, "org", f.event.ID, &teamModel.CreateTeamRequest{
			TeamName: "Lions",
			Users:    []string{"u1", "u3"},
		})
		assert.ErrorIs(t, err, memberModel.ErrAlreadyOnTeam)

		var count int64
		require.NoError(t, f.db.Model(&teamModel.Team{}).Where("team_name = ?", "Lions").Count(&count).Error)
		assert.Zero(t, count)
	})

	t.Run("unknown event", func(t *testing.T) {
		f := setup(t)

		_, err := f.svc.CreateTeam(ctx, "org", "missing", &teamModel.CreateTeamRequest{TeamName: "Lions"})
		assert.ErrorIs(t, err, eventModel.ErrEventNotFound)
	})
}

func TestService_ListTeams(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	dbtest.SeedTeam(t, f.db, f.event.ID, "Lions", "u1", "u2")
	dbtest.SeedTeam(t, f.db, f.event.ID, "Tigers", "u3")

	teams, err := f.svc.ListTeams(ctx, f.event.ID)
	require.NoError(t, err)
	require.Len(t, teams, 2)

	byName := map[string]teamModel.TeamResponse{}
	for _, team := range teams {
		byName[team.TeamName] = team
	}
	assert.Len(t, byName["Lions"].Members, 2)
	assert.Len(t, byName["Tigers"].Members, 1)
	assert.Equal(t, "User u3", byName["Tigers"].Members[0].Name)

	_, err = f.svc.ListTeams(ctx, "missing")
	assert.ErrorIs(t, err, eventModel.ErrEventNotFound)
}

func TestService_RemoveMember(t *testing.T) {
	ctx := context.Background()

	t.Run("organiser removes captain", func(t *testing.T) {
		f := setup(t)
		team := dbtest.SeedTeam(t, f.db, f.event.ID, "Lions", "u1", "u2")

		resp, err := f.svc.RemoveMember(ctx, "org", f.event.ID, team.ID, "u1")
		require.NoError(t, err)
		assert.Nil(t, resp.CaptainID)
		assert.Equal(t, []string{"u2"}, memberIDs(resp))
		assert.Equal(t, []realtime.EventType{realtime.TeamUpdated}, f.rec.Events())
	})

	t.Run("player leaves", func(t *testing.T) {
		f := setup(t)
		team := dbtest.SeedTeam(t, f.db, f.event.ID, "Lions", "u1", "u2")

		resp, err := f.svc.RemoveMember(ctx, "u2", f.event.ID, team.ID, "u2")
		require.NoError(t, err)
		require.NotNil(t, resp.CaptainID)
		assert.Equal(t, "u1", *resp.CaptainID)
	})

	t.Run("player cannot remove others", func(t *testing.T) {
		f := setup(t)
		team := dbtest.SeedTeam(t, f.db, f.event.ID, "Lions", "u1", "u2")

		_, err := f.svc.RemoveMember(ctx, "u2", f.event.ID, team.ID, "u1")
		assert.ErrorIs(t, err, eventModel.ErrNotOrganizer)
	})

	t.Run("not a member", func(t *testing.T) {
		f := setup(t)
		team := dbtest.SeedTeam(t, f.db, f.event.ID, "Lions", "u1")

		_, err := f.svc.RemoveMember(ctx, "org", f.event.ID, team.ID, "u4")
		assert.ErrorIs(t, err, teamModel.ErrNotTeamMember)
		assert.Empty(t, f.rec.All())
	})
}

func TestService_PromoteCaptain(t *testing.T) {
	ctx := context.Background()

	t.Run("promotes member", func(t *testing.T) {
		f := setup(t)
		team := dbtest.SeedTeam(t, f.db, f.event.ID, "Lions", "u1", "u2")

		resp, err := f.svc.PromoteCaptain(ctx, "org", f.event.ID, team.ID, "u2")
		require.NoError(t, err)
		require.NotNil(t, resp.CaptainID)
		assert.Equal(t, "u2", *resp.CaptainID)
		assert.Equal(t, []realtime.EventType{realtime.TeamUpdated}, f.rec.Events())
	})

	t.Run("member of another team", func(t *testing.T) {
		f := setup(t)
		team := dbtest.SeedTeam(t, f.db, f.event.ID, "Lions", "u1")
		dbtest.SeedTeam(t, f.db, f.event.ID, "Tigers", "u3")

		_, err := f.svc.PromoteCaptain(ctx, "org", f.event.ID, team.ID, "u3")
		assert.ErrorIs(t, err, teamModel.ErrNotTeamMember)
	})

	t.Run("only organiser", func(t *testing.T) {
		f := setup(t)
		team := dbtest.SeedTeam(t, f.db, f.event.ID, "Lions", "u1", "u2")

		_, err := f.svc.PromoteCaptain(ctx, "u1", f.event.ID, team.ID, "u2")
		assert.ErrorIs(t, err, eventModel.ErrNotOrganizer)
	})
}
