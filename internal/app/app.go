// Package app assembles the HTTP router from the service modules.
package app

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/street_sports/internal/auth"
	"github.com/festy23/street_sports/internal/config"
	eventRepo "github.com/festy23/street_sports/internal/event/repository"
	eventRouter "github.com/festy23/street_sports/internal/event/router"
	"github.com/festy23/street_sports/internal/health"
	invitationRouter "github.com/festy23/street_sports/internal/invitation/router"
	matchRouter "github.com/festy23/street_sports/internal/match/router"
	membershipRouter "github.com/festy23/street_sports/internal/membership/router"
	membershipService "github.com/festy23/street_sports/internal/membership/service"
	"github.com/festy23/street_sports/internal/middleware"
	"github.com/festy23/street_sports/internal/payment/processor"
	paymentRepo "github.com/festy23/street_sports/internal/payment/repository"
	paymentRouter "github.com/festy23/street_sports/internal/payment/router"
	paymentService "github.com/festy23/street_sports/internal/payment/service"
	"github.com/festy23/street_sports/internal/realtime"
	statisticsRouter "github.com/festy23/street_sports/internal/statistics/router"
	teamRepo "github.com/festy23/street_sports/internal/team/repository"
	teamRouter "github.com/festy23/street_sports/internal/team/router"
	ticketRepo "github.com/festy23/street_sports/internal/ticket/repository"
	ticketRouter "github.com/festy23/street_sports/internal/ticket/router"
	ticketService "github.com/festy23/street_sports/internal/ticket/service"
	userRepo "github.com/festy23/street_sports/internal/user/repository"
	userRouter "github.com/festy23/street_sports/internal/user/router"
)

// Options carries what the router is built from.
type Options struct {
	DB  *gorm.DB
	Hub *realtime.Hub
	// Publisher defaults to Hub. Set it to a relay to fan out across instances.
	Publisher realtime.Publisher
	Tokens    *auth.Manager
	// Processor may be nil, leaving paid checkout unavailable.
	Processor processor.Processor
	Config    config.Config
	Logger    *zap.SugaredLogger
}

// NewRouter builds the gin engine with every route of the service.
// /health and /ws are public; everything else requires a bearer token.
func NewRouter(opts Options) *gin.Engine {
	logger := opts.Logger
	publisher := opts.Publisher
	if publisher == nil {
		publisher = opts.Hub
	}

	r := gin.New()
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logger(logger))

	r.GET("/health", health.New(opts.DB, opts.Hub, logger).Check)
	r.GET("/ws", realtime.NewServer(opts.Hub, opts.Tokens, opts.Config.Realtime, logger).Handle)

	api := r.Group("")
	api.Use(middleware.Auth(opts.Tokens))

	userRouter.RegisterRoutes(api, opts.DB, logger)
	eventRouter.RegisterRoutes(api, opts.DB, publisher, logger)
	membershipRouter.RegisterRoutes(api, opts.DB, logger)
	teamRouter.RegisterRoutes(api, opts.DB, publisher, logger)
	invitationRouter.RegisterRoutes(api, opts.DB, publisher, logger)
	matchRouter.RegisterRoutes(api, opts.DB, publisher, logger)
	statisticsRouter.RegisterRoutes(api, opts.DB, logger)

	tickets, payments := newTicketing(opts)
	ticketRouter.RegisterRoutes(api, tickets, logger)
	paymentRouter.RegisterRoutes(api, payments, logger)

	return r
}

// newTicketing wires the ticket and payment services, which share the
// membership registrar.
func newTicketing(opts Options) (ticketService.Service, paymentService.Service) {
	db, logger := opts.DB, opts.Logger

	users := userRepo.New(db, logger)
	events := eventRepo.New(db, logger)
	members := membershipService.New(db, users, logger)

	tickets := ticketService.New(
		ticketRepo.New(db, logger),
		events,
		users,
		members,
		opts.Config.Ticket.StrictResolution,
		logger,
	)
	payments := paymentService.New(
		paymentRepo.New(db, logger),
		events,
		teamRepo.New(db, logger),
		members,
		tickets,
		opts.Processor,
		opts.Config.Payment,
		logger,
	)
	return tickets, payments
}
