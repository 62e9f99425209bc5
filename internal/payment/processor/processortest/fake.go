// Package processortest provides an in-memory Processor for tests.
package processortest

import (
	"context"
	"fmt"
	"sync"

	"github.com/festy23/street_sports/internal/payment/processor"
)

// Fake records created sessions and reports them paid once MarkPaid is called.
type Fake struct {
	mu       sync.Mutex
	sessions map[string]*processor.Session
	created  []processor.CheckoutParams
	gets     int

	// CreateErr and GetErr, when set, are returned by the matching call.
	CreateErr error
	GetErr    error
}

var _ processor.Processor = (*Fake)(nil)

// New creates an empty Fake.
func New() *Fake {
	return &Fake{sessions: make(map[string]*processor.Session)}
}

// CreateCheckoutSession records params and returns a new unpaid session.
func (f *Fake) CreateCheckoutSession(_ context.Context, params processor.CheckoutParams) (*processor.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.CreateErr != nil {
		return nil, f.CreateErr
	}
	f.created = append(f.created, params)
	id := fmt.Sprintf("cs_test_%d", len(f.created))
	s := &processor.Session{
		ID:  id,
		URL: "https://checkout.example.com/" + id,
		Metadata: map[string]string{
			"eventId": params.EventID,
			"userId":  params.UserID,
			"type":    params.Type,
		},
	}
	f.sessions[id] = s
	cp := *s
	return &cp, nil
}

// GetCheckoutSession returns a recorded session.
func (f *Fake) GetCheckoutSession(_ context.Context, sessionID string) (*processor.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gets++
	if f.GetErr != nil {
		return nil, f.GetErr
	}
	s, ok := f.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("no such checkout session: %s", sessionID)
	}
	cp := *s
	return &cp, nil
}

// MarkPaid flags a session as paid.
func (f *Fake) MarkPaid(sessionID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if s, ok := f.sessions[sessionID]; ok {
		s.Paid = true
	}
}

// Created returns the params of every created session.
func (f *Fake) Created() []processor.CheckoutParams {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]processor.CheckoutParams(nil), f.created...)
}

// Gets returns how many times GetCheckoutSession was called.
func (f *Fake) Gets() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.gets
}
