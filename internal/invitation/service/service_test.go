package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"

	"github.com/festy23/street_sports/internal/database/dbtest"
	eventModel "github.com/festy23/street_sports/internal/event/model"
	"github.com/festy23/street_sports/internal/invitation/model"
	"github.com/festy23/street_sports/internal/invitation/repository"
	memberModel "github.com/festy23/street_sports/internal/membership/model"
	"github.com/festy23/street_sports/internal/realtime"
	"github.com/festy23/street_sports/internal/realtime/realtimetest"
	teamModel "github.com/festy23/street_sports/internal/team/model"
	userModel "github.com/festy23/street_sports/internal/user/model"
)

type fixture struct {
	db    *gorm.DB
	svc   Service
	rec   *realtimetest.Recorder
	event *eventModel.Event
	team  *teamModel.Team
}

func setup(t *testing.T) *fixture {
	t.Helper()

	db := dbtest.Open(t)
	logger := zaptest.NewLogger(t).Sugar()
	for _, id := range []string{"org", "u1", "u2", "u3"} {
		dbtest.SeedUser(t, db, id, "User "+id)
	}
	event := dbtest.SeedEvent(t, db, dbtest.EventOptions{OrganiserID: "org", PlayerFee: 100})
	team := dbtest.SeedTeam(t, db, event.ID, "Lions")
	rec := realtimetest.NewRecorder()

	return &fixture{
		db:    db,
		svc:   New(repository.New(db, logger), db, rec, logger),
		rec:   rec,
		event: event,
		team:  team,
	}
}

func (f *fixture) invite(t *testing.T, receiverID string) *model.RequestView {
	t.Helper()
	view, err := f.svc.Invite(context.Background(), "org", f.event.ID, f.team.ID, &model.InviteRequest{
		ReceiverID: receiverID,
		Message:    "Join us",
	})
	require.NoError(t, err)
	return view
}

func TestService_Invite(t *testing.T) {
	ctx := context.Background()

	t.Run("notifies only the receiver", func(t *testing.T) {
		f := setup(t)

		view := f.invite(t, "u1")
		assert.Equal(t, model.StatusPending, view.Status)
		assert.Equal(t, "Lions", view.Team.TeamName)
		require.NotNil(t, view.Sender)
		assert.Equal(t, "org", view.Sender.ID)

		all := f.rec.All()
		require.Len(t, all, 1)
		assert.Equal(t, realtime.RequestReceived, all[0].Event)
		assert.Equal(t, "u1", all[0].UserID)
	})

	t.Run("duplicate pending request", func(t *testing.T) {
		f := setup(t)
		f.invite(t, "u1")

		_, err := f.svc.Invite(ctx, "org", f.event.ID, f.team.ID, &model.InviteRequest{ReceiverID: "u1"})
		assert.ErrorIs(t, err, model.ErrRequestPending)
	})

	t.Run("validation", func(t *testing.T) {
		f := setup(t)

		_, err := f.svc.Invite(ctx, "org", f.event.ID, f.team.ID, &model.InviteRequest{
			ReceiverID: "u1",
			Message:    strings.Repeat("x", model.MaxMessageLength+1),
		})
		assert.ErrorIs(t, err, model.ErrMessageTooLong)

		_, err = f.svc.Invite(ctx, "org", f.event.ID, f.team.ID, &model.InviteRequest{ReceiverID: "org"})
		assert.ErrorIs(t, err, model.ErrSelfInvite)

		_, err = f.svc.Invite(ctx, "u2", f.event.ID, f.team.ID, &model.InviteRequest{ReceiverID: "u1"})
		assert.ErrorIs(t, err, eventModel.ErrNotOrganizer)

		_, err = f.svc.Invite(ctx, "org", f.event.ID, "nope", &model.InviteRequest{ReceiverID: "u1"})
		assert.ErrorIs(t, err, teamModel.ErrTeamNotFound)

		_, err = f.svc.Invite(ctx, "org", f.event.ID, f.team.ID, &model.InviteRequest{ReceiverID: "ghost"})
		assert.ErrorIs(t, err, userModel.ErrUserNotFound)

		assert.Empty(t, f.rec.All())
	})

	t.Run("receiver already on a team", func(t *testing.T) {
		f := setup(t)
		dbtest.SeedTeam(t, f.db, f.event.ID, "Tigers", "u2")

		_, err := f.svc.Invite(ctx, "org", f.event.ID, f.team.ID, &model.InviteRequest{ReceiverID: "u2"})
		assert.ErrorIs(t, err, memberModel.ErrAlreadyOnTeam)
	})
}

func TestService_ListPending(t *testing.T) {
	f := setup(t)
	f.invite(t, "u1")

	views, err := f.svc.ListPending(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, f.team.ID, views[0].Team.ID)
	assert.Equal(t, "User org", views[0].Sender.Name)

	views, err = f.svc.ListPending(context.Background(), "u2")
	require.NoError(t, err)
	assert.NotNil(t, views)
	assert.Empty(t, views)
}

func TestService_Accept(t *testing.T) {
	ctx := context.Background()

	t.Run("joins team without payment and notifies sender", func(t *testing.T) {
		f := setup(t)
		dbtest.SeedParticipant(t, f.db, f.event.ID, "u1")
		req := f.invite(t, "u1")
		f.rec.Reset()

		view, err := f.svc.Accept(ctx, "u1", req.ID)
		require.NoError(t, err)
		assert.Equal(t, model.StatusAccepted, view.Status)

		var members int64
		require.NoError(t, f.db.Model(&memberModel.TeamMember{}).
			Where("team_id = ? AND user_id = ?", f.team.ID, "u1").Count(&members).Error)
		assert.EqualValues(t, 1, members)

		var pool int64
		require.NoError(t, f.db.Model(&memberModel.Participant{}).Where("user_id = ?", "u1").Count(&pool).Error)
		assert.Zero(t, pool)

		var team teamModel.Team
		require.NoError(t, f.db.First(&team, "id = ?", f.team.ID).Error)
		require.NotNil(t, team.CaptainID)
		assert.Equal(t, "u1", *team.CaptainID)

		all := f.rec.All()
		require.Len(t, all, 1)
		assert.Equal(t, realtime.RequestAccepted, all[0].Event)
		assert.Equal(t, "org", all[0].UserID)
	})

	t.Run("second accept", func(t *testing.T) {
		f := setup(t)
		req := f.invite(t, "u1")

		_, err := f.svc.Accept(ctx, "u1", req.ID)
		require.NoError(t, err)

		_, err = f.svc.Accept(ctx, "u1", req.ID)
		assert.ErrorIs(t, err, model.ErrRequestProcessed)
	})

	t.Run("not the receiver", func(t *testing.T) {
		f := setup(t)
		req := f.invite(t, "u1")

		_, err := f.svc.Accept(ctx, "u2", req.ID)
		assert.ErrorIs(t, err, model.ErrRequestNotFound)
	})

	t.Run("joined another team meanwhile", func(t *testing.T) {
		f := setup(t)
		req := f.invite(t, "u1")
		dbtest.SeedTeam(t, f.db, f.event.ID, "Tigers", "u1")

		_, err := f.svc.Accept(ctx, "u1", req.ID)
		assert.ErrorIs(t, err, memberModel.ErrAlreadyOnTeam)

		var got model.TeamRequest
		require.NoError(t, f.db.First(&got, "id = ?", req.ID).Error)
		assert.Equal(t, model.StatusPending, got.Status)
	})
}

func TestService_Reject(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	req := f.invite(t, "u1")
	f.rec.Reset()

	view, err := f.svc.Reject(ctx, "u1", req.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusRejected, view.Status)
	assert.Equal(t, "Lions", view.Team.TeamName)

	all := f.rec.All()
	require.Len(t, all, 1)
	assert.Equal(t, realtime.RequestRejected, all[0].Event)
	assert.Equal(t, "org", all[0].UserID)

	_, err = f.svc.Reject(ctx, "u1", req.ID)
	assert.ErrorIs(t, err, model.ErrRequestProcessed)

	_, err = f.svc.Accept(ctx, "u1", req.ID)
	assert.ErrorIs(t, err, model.ErrRequestProcessed)
}

func TestService_SearchUsers(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	dbtest.SeedUser(t, f.db, "u4", "Member")
	require.NoError(t, f.db.Create(&memberModel.TeamMember{
		TeamID:   f.team.ID,
		UserID:   "u4",
		EventID:  f.event.ID,
		JoinedAt: time.Now().UTC(),
	}).Error)
	f.invite(t, "u1")

	ids := func(profiles []userModel.Profile) []string {
		out := make([]string, 0, len(profiles))
		for _, p := range profiles {
			out = append(out, p.ID)
		}
		return out
	}

	t.Run("leaves out team and invited users", func(t *testing.T) {
		users, err := f.svc.SearchUsers(ctx, "org", &model.SearchUsersQuery{EventID: f.event.ID, TeamID: f.team.ID})
		require.NoError(t, err)
		assert.Equal(t, []string{"u2", "u3"}, ids(users))
	})

	t.Run("filters by query", func(t *testing.T) {
		users, err := f.svc.SearchUsers(ctx, "org", &model.SearchUsersQuery{Query: "U3", EventID: f.event.ID, TeamID: f.team.ID})
		require.NoError(t, err)
		assert.Equal(t, []string{"u3"}, ids(users))
	})

	t.Run("organiser only", func(t *testing.T) {
		_, err := f.svc.SearchUsers(ctx, "u2", &model.SearchUsersQuery{EventID: f.event.ID, TeamID: f.team.ID})
		assert.ErrorIs(t, err, eventModel.ErrNotOrganizer)
	})

	t.Run("team of the event", func(t *testing.T) {
		_, err := f.svc.SearchUsers(ctx, "org", &model.SearchUsersQuery{EventID: f.event.ID, TeamID: "missing"})
		assert.ErrorIs(t, err, teamModel.ErrTeamNotFound)
	})
}
