// Package realtimetest provides a Publisher that records notifications.
package realtimetest

import (
	"sync"

	"github.com/festy23/street_sports/internal/realtime"
)

// Notification is one recorded publish.
type Notification struct {
	// UserID is empty for broadcasts.
	UserID  string
	Event   realtime.EventType
	Payload any
}

// Recorder implements realtime.Publisher in memory.
type Recorder struct {
	mu            sync.Mutex
	notifications []Notification
}

var _ realtime.Publisher = (*Recorder)(nil)

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Broadcast(event realtime.EventType, payload any) {
	r.record(Notification{Event: event, Payload: payload})
}

func (r *Recorder) PublishToUser(userID string, event realtime.EventType, payload any) {
	r.record(Notification{UserID: userID, Event: event, Payload: payload})
}

func (r *Recorder) record(n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notifications = append(r.notifications, n)
}

// All returns every notification in publish order.
func (r *Recorder) All() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notification, len(r.notifications))
	copy(out, r.notifications)
	return out
}

// Events returns the recorded event names in publish order.
func (r *Recorder) Events() []realtime.EventType {
	all := r.All()
	out := make([]realtime.EventType, len(all))
	for i, n := range all {
		out[i] = n.Event
	}
	return out
}

// Reset clears recorded notifications.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notifications = nil
}
