// Package processor talks to the external card processor.
package processor

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/url"

	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/checkout/session"
	"go.uber.org/zap"

	"github.com/festy23/street_sports/internal/config"
)

// CheckoutParams describes one checkout.
type CheckoutParams struct {
	EventID   string
	EventName string
	UserID    string
	Type      string
	TeamID    string
	// Amount is in major currency units.
	Amount float64
}

// Session is a processor checkout session.
type Session struct {
	ID       string
	URL      string
	Paid     bool
	Metadata map[string]string
}

// Processor creates and inspects checkout sessions.
type Processor interface {
	CreateCheckoutSession(ctx context.Context, params CheckoutParams) (*Session, error)
	GetCheckoutSession(ctx context.Context, sessionID string) (*Session, error)
}

// ErrMissingKey is returned by NewStripe without a secret key.
var ErrMissingKey = errors.New("stripe secret key is empty")

// Stripe is the Stripe Checkout implementation of Processor.
type Stripe struct {
	client      *session.Client
	currency    string
	frontendURL string
	logger      *zap.SugaredLogger
}

// NewStripe creates a Stripe processor from payment configuration.
func NewStripe(cfg config.PaymentConfig, logger *zap.SugaredLogger) (*Stripe, error) {
	if cfg.StripeSecretKey == "" {
		return nil, ErrMissingKey
	}
	return NewStripeWithBackend(cfg, stripe.GetBackend(stripe.APIBackend), logger), nil
}

// NewStripeWithBackend creates a Stripe processor using backend, which lets
// tests point the client at a local server.
func NewStripeWithBackend(cfg config.PaymentConfig, backend stripe.Backend, logger *zap.SugaredLogger) *Stripe {
	return &Stripe{
		client:      &session.Client{B: backend, Key: cfg.StripeSecretKey},
		currency:    cfg.Currency,
		frontendURL: cfg.FrontendURL,
		logger:      logger,
	}
}

// CreateCheckoutSession starts a card checkout for one registration.
func (s *Stripe) CreateCheckoutSession(ctx context.Context, p CheckoutParams) (*Session, error) {
	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		ClientReferenceID:  stripe.String(p.UserID),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(s.currency),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(fmt.Sprintf("%s - %s registration", p.EventName, p.Type)),
					},
					UnitAmount: stripe.Int64(MinorUnits(p.Amount)),
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(s.successURL(p)),
		CancelURL:  stripe.String(s.frontendURL + "/event/" + url.PathEscape(p.EventID)),
	}
	params.Context = ctx
	params.AddMetadata("eventId", p.EventID)
	params.AddMetadata("userId", p.UserID)
	params.AddMetadata("type", p.Type)
	if p.TeamID != "" {
		params.AddMetadata("teamId", p.TeamID)
	}

	sess, err := s.client.New(params)
	if err != nil {
		s.logger.Errorw("stripe create checkout session failed", "event_id", p.EventID, "user_id", p.UserID, "error", err)
		return nil, fmt.Errorf("create checkout session: %w", err)
	}
	return toSession(sess), nil
}

// GetCheckoutSession fetches the session to read its payment status.
func (s *Stripe) GetCheckoutSession(ctx context.Context, sessionID string) (*Session, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx
	sess, err := s.client.Get(sessionID, params)
	if err != nil {
		s.logger.Errorw("stripe get checkout session failed", "session_id", sessionID, "error", err)
		return nil, fmt.Errorf("get checkout session: %w", err)
	}
	return toSession(sess), nil
}

// successURL keeps the processor placeholder unescaped so Stripe can
// substitute the session id.
func (s *Stripe) successURL(p CheckoutParams) string {
	q := url.Values{}
	q.Set("eventId", p.EventID)
	q.Set("type", p.Type)
	return s.frontendURL + "/payment/success?session_id={CHECKOUT_SESSION_ID}&" + q.Encode()
}

func toSession(sess *stripe.CheckoutSession) *Session {
	return &Session{
		ID:       sess.ID,
		URL:      sess.URL,
		Paid:     sess.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid,
		Metadata: sess.Metadata,
	}
}

// MinorUnits converts a major-unit amount to the processor's integer minor units.
func MinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
