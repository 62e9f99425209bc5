package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	eventModel "github.com/festy23/street_sports/internal/event/model"
	"github.com/festy23/street_sports/internal/statistics/model"
)

// mockRepository is a mock implementation of repository.Repository for unit tests.
type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) GetEventStatistics(ctx context.Context, eventID string) (*model.EventStatistics, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.EventStatistics), args.Error(1)
}

func (m *mockRepository) GetStandings(ctx context.Context, eventID string) ([]model.TeamStanding, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.TeamStanding), args.Error(1)
}

type mockEvents struct {
	mock.Mock
}

func (m *mockEvents) GetByID(ctx context.Context, eventID string) (*eventModel.Event, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*eventModel.Event), args.Error(1)
}

func TestService_GetEventStatistics(t *testing.T) {
	ctx := context.Background()
	event := &eventModel.Event{ID: "e1", OrganiserID: "org"}

	t.Run("organiser gets totals", func(t *testing.T) {
		repo, events := new(mockRepository), new(mockEvents)
		svc := New(repo, events, zap.NewNop().Sugar())

		events.On("GetByID", ctx, "e1").Return(event, nil)
		repo.On("GetEventStatistics", ctx, "e1").Return(&model.EventStatistics{EventID: "e1", AudienceCount: 4}, nil)

		resp, err := svc.GetEventStatistics(ctx, "org", "e1")

		require.NoError(t, err)
		assert.Equal(t, 4, resp.Statistics.AudienceCount)
		repo.AssertExpectations(t)
		events.AssertExpectations(t)
	})

	t.Run("other user is refused", func(t *testing.T) {
		repo, events := new(mockRepository), new(mockEvents)
		svc := New(repo, events, zap.NewNop().Sugar())

		events.On("GetByID", ctx, "e1").Return(event, nil)

		resp, err := svc.GetEventStatistics(ctx, "stranger", "e1")

		assert.Nil(t, resp)
		assert.ErrorIs(t, err, eventModel.ErrNotOrganizer)
		repo.AssertNotCalled(t, "GetEventStatistics", mock.Anything, mock.Anything)
	})

	t.Run("unknown event", func(t *testing.T) {
		repo, events := new(mockRepository), new(mockEvents)
		svc := New(repo, events, zap.NewNop().Sugar())

		events.On("GetByID", ctx, "nope").Return(nil, eventModel.ErrEventNotFound)

		_, err := svc.GetEventStatistics(ctx, "org", "nope")

		assert.ErrorIs(t, err, eventModel.ErrEventNotFound)
	})

	t.Run("repository error", func(t *testing.T) {
		repo, events := new(mockRepository), new(mockEvents)
		svc := New(repo, events, zap.NewNop().Sugar())

		repoErr := errors.New("database error")
		events.On("GetByID", ctx, "e1").Return(event, nil)
		repo.On("GetEventStatistics", ctx, "e1").Return(nil, repoErr)

		_, err := svc.GetEventStatistics(ctx, "org", "e1")

		assert.ErrorIs(t, err, repoErr)
	})
}

func TestService_GetStandings(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		repo, events := new(mockRepository), new(mockEvents)
		svc := New(repo, events, zap.NewNop().Sugar())

		events.On("GetByID", ctx, "e1").Return(&eventModel.Event{ID: "e1"}, nil)
		repo.On("GetStandings", ctx, "e1").Return([]model.TeamStanding{
			{TeamID: "t1", TeamName: "Red", MatchesWon: 2},
			{TeamID: "t2", TeamName: "Blue", MatchesWon: 1},
		}, nil)

		resp, err := svc.GetStandings(ctx, "e1")

		require.NoError(t, err)
		assert.Equal(t, "e1", resp.EventID)
		assert.Equal(t, 2, resp.Total)
		assert.Equal(t, "Red", resp.Teams[0].TeamName)
	})

	t.Run("unknown event", func(t *testing.T) {
		repo, events := new(mockRepository), new(mockEvents)
		svc := New(repo, events, zap.NewNop().Sugar())

		events.On("GetByID", ctx, "nope").Return(nil, eventModel.ErrEventNotFound)

		resp, err := svc.GetStandings(ctx, "nope")

		assert.Nil(t, resp)
		assert.ErrorIs(t, err, eventModel.ErrEventNotFound)
		repo.AssertNotCalled(t, "GetStandings", mock.Anything, mock.Anything)
	})
}
