// Package dbtest opens migrated in-memory databases and seeds fixtures for tests.
package dbtest

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/festy23/street_sports/internal/database/database"
	"github.com/festy23/street_sports/internal/database/pool"
	eventModel "github.com/festy23/street_sports/internal/event/model"
	invitationModel "github.com/festy23/street_sports/internal/invitation/model"
	matchModel "github.com/festy23/street_sports/internal/match/model"
	membershipModel "github.com/festy23/street_sports/internal/membership/model"
	paymentModel "github.com/festy23/street_sports/internal/payment/model"
	teamModel "github.com/festy23/street_sports/internal/team/model"
	ticketModel "github.com/festy23/street_sports/internal/ticket/model"
	userModel "github.com/festy23/street_sports/internal/user/model"
)

// Models lists every table of the service in creation order.
func Models() []any {
	return []any{
		&userModel.User{},
		&eventModel.Event{},
		&membershipModel.AudienceMember{},
		&membershipModel.Participant{},
		&teamModel.Team{},
		&membershipModel.TeamMember{},
		&invitationModel.TeamRequest{},
		&matchModel.Match{},
		&matchModel.Highlight{},
		&ticketModel.Ticket{},
		&paymentModel.CheckoutSession{},
	}
}

// Open returns a migrated in-memory sqlite database.
func Open(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), database.GormConfig())
	require.NoError(t, err)

	require.NoError(t, pool.SetupConnectionPool(db, pool.SingleConnection()))
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(Models()...))
	return db
}

// SeedUser inserts a user with the given id.
func SeedUser(t *testing.T, db *gorm.DB, id, name string) *userModel.User {
	t.Helper()

	now := time.Now().UTC()
	u := &userModel.User{
		ID:        id,
		Name:      name,
		Email:     fmt.Sprintf("%s@example.com", id),
		Role:      userModel.RolePlayer,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

// EventOptions configures SeedEvent.
type EventOptions struct {
	ID          string
	OrganiserID string
	Name        string
	AudienceFee float64
	PlayerFee   float64
}

// SeedEvent inserts an event. A zero fee makes that registration free.
func SeedEvent(t *testing.T, db *gorm.DB, opts EventOptions) *eventModel.Event {
	t.Helper()

	if opts.ID == "" {
		opts.ID = uuid.NewString()
	}
	if opts.Name == "" {
		opts.Name = "Sunday League"
	}
	now := time.Now().UTC()
	e := &eventModel.Event{
		ID:                   opts.ID,
		EventName:            opts.Name,
		SportType:            "Football",
		OrganiserID:          opts.OrganiserID,
		StartDate:            now.Add(72 * time.Hour),
		RegistrationDeadline: now.Add(48 * time.Hour),
		Duration:             1,
		Status:               eventModel.StatusActive,
		AudienceFree:         opts.AudienceFee == 0,
		AudienceFee:          opts.AudienceFee,
		PlayerFree:           opts.PlayerFee == 0,
		PlayerFee:            opts.PlayerFee,
		EventLink:            eventModel.BuildEventLink(opts.Name, opts.ID),
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	require.NoError(t, db.Create(e).Error)
	return e
}

// SeedTeam inserts a team and its members. The first member becomes captain.
func SeedTeam(t *testing.T, db *gorm.DB, eventID, name string, members ...string) *teamModel.Team {
	t.Helper()

	now := time.Now().UTC()
	team := &teamModel.Team{
		ID:        uuid.NewString(),
		EventID:   eventID,
		TeamName:  name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if len(members) > 0 {
		captain := members[0]
		team.CaptainID = &captain
	}
	require.NoError(t, db.Create(team).Error)

	for _, userID := range members {
		require.NoError(t, db.Create(&membershipModel.TeamMember{
			TeamID:   team.ID,
			UserID:   userID,
			EventID:  eventID,
			JoinedAt: now,
		}).Error)
	}
	return team
}

// SeedAudience adds users to an event's audience.
func SeedAudience(t *testing.T, db *gorm.DB, eventID string, userIDs ...string) {
	t.Helper()

	for _, userID := range userIDs {
		require.NoError(t, db.Create(&membershipModel.AudienceMember{
			EventID:  eventID,
			UserID:   userID,
			JoinedAt: time.Now().UTC(),
		}).Error)
	}
}

// SeedParticipant adds a pending player application.
func SeedParticipant(t *testing.T, db *gorm.DB, eventID, userID string) {
	t.Helper()

	require.NoError(t, db.Create(&membershipModel.Participant{
		EventID:   eventID,
		UserID:    userID,
		AppliedAt: time.Now().UTC(),
	}).Error)
}
