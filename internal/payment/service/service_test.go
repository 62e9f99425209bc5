package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"

	"github.com/festy23/street_sports/internal/apperror"
	"github.com/festy23/street_sports/internal/config"
	"github.com/festy23/street_sports/internal/database/dbtest"
	eventModel "github.com/festy23/street_sports/internal/event/model"
	eventRepo "github.com/festy23/street_sports/internal/event/repository"
	memberRepo "github.com/festy23/street_sports/internal/membership/repository"
	membershipService "github.com/festy23/street_sports/internal/membership/service"
	"github.com/festy23/street_sports/internal/payment/model"
	"github.com/festy23/street_sports/internal/payment/processor"
	"github.com/festy23/street_sports/internal/payment/processor/processortest"
	"github.com/festy23/street_sports/internal/payment/repository"
	teamRepo "github.com/festy23/street_sports/internal/team/repository"
	ticketRepo "github.com/festy23/street_sports/internal/ticket/repository"
	ticketService "github.com/festy23/street_sports/internal/ticket/service"
	userRepo "github.com/festy23/street_sports/internal/user/repository"
)

var testConfig = config.PaymentConfig{
	Currency:      "inr",
	MinimumAmount: 40,
	FrontendURL:   "http://localhost:5173",
}

func newService(t *testing.T, db *gorm.DB, proc processor.Processor) Service {
	t.Helper()

	logger := zaptest.NewLogger(t).Sugar()
	users := userRepo.New(db, logger)
	events := eventRepo.New(db, logger)
	members := membershipService.New(db, users, logger)
	tickets := ticketService.New(ticketRepo.New(db, logger), events, users, members, false, logger)
	return New(repository.New(db, logger), events, teamRepo.New(db, logger), members, tickets, proc, testConfig, logger)
}

func TestService_CompleteRegistration_Free(t *testing.T) {
	db := dbtest.Open(t)
	svc := newService(t, db, nil)
	ctx := context.Background()

	dbtest.SeedUser(t, db, "fan", "Fan")
	event := dbtest.SeedEvent(t, db, dbtest.EventOptions{OrganiserID: "org", PlayerFee: 100})

	resp, err := svc.CompleteRegistration(ctx, "fan", event.ID, &model.CompleteRequest{Type: eventModel.RegistrationAudience})
	require.NoError(t, err)
	assert.Equal(t, "Registration completed successfully", resp.Message)
	require.NotNil(t, resp.Ticket)
	assert.Zero(t, resp.Ticket.Amount)

	inAudience, err := memberRepo.New(db, zaptest.NewLogger(t).Sugar()).IsAudienceMember(ctx, event.ID, "fan")
	require.NoError(t, err)
	assert.True(t, inAudience)
}

func TestService_CompleteRegistration_PaidWithoutSession(t *testing.T) {
	db := dbtest.Open(t)
	svc := newService(t, db, processortest.New())

	dbtest.SeedUser(t, db, "fan", "Fan")
	event := dbtest.SeedEvent(t, db, dbtest.EventOptions{OrganiserID: "org", AudienceFee: 100})

	_, err := svc.CompleteRegistration(context.Background(), "fan", event.ID, &model.CompleteRequest{Type: eventModel.RegistrationAudience})
	require.ErrorIs(t, err, model.ErrSessionRequired)

	appErr, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusPaymentRequired, appErr.Status())
	assert.Equal(t, 100.0, appErr.Details["fee"])
}

func TestService_CreateCheckoutSession(t *testing.T) {
	tests := []struct {
		name    string
		opts    dbtest.EventOptions
		regType eventModel.RegistrationType
		proc    func() processor.Processor
		wantErr error
	}{
		{
			name:    "free registration",
			regType: eventModel.RegistrationAudience,
			proc:    func() processor.Processor { return processortest.New() },
			wantErr: model.ErrEventFree,
		},
		{
			name:    "below minimum",
			opts:    dbtest.EventOptions{PlayerFee: 10},
			regType: eventModel.RegistrationPlayer,
			proc:    func() processor.Processor { return processortest.New() },
			wantErr: model.ErrBelowMinimum,
		},
		{
			name:    "processor not configured",
			opts:    dbtest.EventOptions{AudienceFee: 100},
			regType: eventModel.RegistrationAudience,
			proc:    func() processor.Processor { return nil },
			wantErr: model.ErrProcessorNotConfigured,
		},
		{
			name:    "processor failure",
			opts:    dbtest.EventOptions{AudienceFee: 100},
			regType: eventModel.RegistrationAudience,
			proc: func() processor.Processor {
				f := processortest.New()
				f.CreateErr = errors.New("card network down")
				return f
			},
			wantErr: model.ErrProcessorFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := dbtest.Open(t)
			svc := newService(t, db, tt.proc())
			tt.opts.OrganiserID = "org"
			event := dbtest.SeedEvent(t, db, tt.opts)

			_, err := svc.CreateCheckoutSession(context.Background(), "fan", event.ID, &model.CheckoutRequest{Type: tt.regType})
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestService_CreateCheckoutSession_BelowMinimumDetails(t *testing.T) {
	db := dbtest.Open(t)
	svc := newService(t, db, processortest.New())
	event := dbtest.SeedEvent(t, db, dbtest.EventOptions{OrganiserID: "org", PlayerFee: 10})

	_, err := svc.CreateCheckoutSession(context.Background(), "fan", event.ID, &model.CheckoutRequest{Type: eventModel.RegistrationPlayer})
	appErr, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, appErr.Status())
	assert.Equal(t, 40.0, appErr.Details["minimumAmount"])
	assert.Equal(t, 10.0, appErr.Details["currentAmount"])
}

func TestService_CreateCheckoutSession_TeamRequiresPlayer(t *testing.T) {
	db := dbtest.Open(t)
	svc := newService(t, db, processortest.New())
	event := dbtest.SeedEvent(t, db, dbtest.EventOptions{OrganiserID: "org", AudienceFee: 100})
	team := dbtest.SeedTeam(t, db, event.ID, "Lions")

	_, err := svc.CreateCheckoutSession(context.Background(), "fan", event.ID, &model.CheckoutRequest{
		Type:   eventModel.RegistrationAudience,
		TeamID: team.ID,
	})
	assert.ErrorIs(t, err, eventModel.ErrInvalidRegistrationType)
}

func TestService_PaidFlow(t *testing.T) {
	db := dbtest.Open(t)
	fake := processortest.New()
	svc := newService(t, db, fake)
	ctx := context.Background()

	dbtest.SeedUser(t, db, "captain", "Captain")
	dbtest.SeedUser(t, db, "striker", "Striker")
	event := dbtest.SeedEvent(t, db, dbtest.EventOptions{OrganiserID: "org", PlayerFee: 100})
	team := dbtest.SeedTeam(t, db, event.ID, "Lions", "captain")

	checkout, err := svc.CreateCheckoutSession(ctx, "striker", event.ID, &model.CheckoutRequest{
		Type:   eventModel.RegistrationPlayer,
		TeamID: team.ID,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, checkout.URL)

	created := fake.Created()
	require.Len(t, created, 1)
	assert.Equal(t, 100.0, created[0].Amount)
	assert.Equal(t, team.ID, created[0].TeamID)

	req := &model.CompleteRequest{Type: eventModel.RegistrationPlayer, SessionID: checkout.SessionID}

	_, err = svc.CompleteRegistration(ctx, "striker", event.ID, req)
	require.ErrorIs(t, err, model.ErrPaymentIncomplete)

	_, err = svc.CompleteRegistration(ctx, "captain", event.ID, req)
	require.ErrorIs(t, err, model.ErrSessionMismatch)

	fake.MarkPaid(checkout.SessionID)

	resp, err := svc.CompleteRegistration(ctx, "striker", event.ID, req)
	require.NoError(t, err)
	require.NotNil(t, resp.Ticket)
	assert.Equal(t, 100.0, resp.Ticket.Amount)
	assert.Equal(t, checkout.SessionID, resp.Ticket.SessionID)

	member, err := memberRepo.New(db, zaptest.NewLogger(t).Sugar()).FindTeamOfUser(ctx, event.ID, "striker")
	require.NoError(t, err)
	require.NotNil(t, member)
	assert.Equal(t, team.ID, member.TeamID)

	again, err := svc.CompleteRegistration(ctx, "striker", event.ID, req)
	require.NoError(t, err)
	assert.Equal(t, resp.Ticket.ID, again.Ticket.ID, "repeat completion returns the same ticket")
	assert.Equal(t, 2, fake.Gets(), "ticketed sessions are not re-checked")

	stored, err := repository.New(db, zaptest.NewLogger(t).Sugar()).GetByID(ctx, checkout.SessionID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusTicketed, stored.Status)
}

func TestService_CompleteRegistration_ResumesGrantedSession(t *testing.T) {
	db := dbtest.Open(t)
	fake := processortest.New()
	svc := newService(t, db, fake)
	ctx := context.Background()

	dbtest.SeedUser(t, db, "fan", "Fan")
	event := dbtest.SeedEvent(t, db, dbtest.EventOptions{OrganiserID: "org", AudienceFee: 60})

	checkout, err := svc.CreateCheckoutSession(ctx, "fan", event.ID, &model.CheckoutRequest{Type: eventModel.RegistrationAudience})
	require.NoError(t, err)

	repo := repository.New(db, zaptest.NewLogger(t).Sugar())
	_, err = repo.Advance(ctx, checkout.SessionID, model.StatusCreated, model.StatusPaid)
	require.NoError(t, err)
	_, err = repo.Advance(ctx, checkout.SessionID, model.StatusPaid, model.StatusGranted)
	require.NoError(t, err)

	resp, err := svc.CompleteRegistration(ctx, "fan", event.ID, &model.CompleteRequest{
		Type:      eventModel.RegistrationAudience,
		SessionID: checkout.SessionID,
	})
	require.NoError(t, err)
	assert.Equal(t, 60.0, resp.Ticket.Amount)
	assert.Zero(t, fake.Gets(), "paid sessions skip the processor")
}
