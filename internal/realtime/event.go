// Package realtime pushes domain notifications to connected websocket
// clients, either to everyone or to the channel of a single user.
package realtime

// EventType names a notification on the wire.
type EventType string

// Notification names as seen by clients.
const (
	EventCreated       EventType = "eventCreated"
	TeamCreated        EventType = "teamCreated"
	TeamUpdated        EventType = "teamUpdated"
	MatchCreated       EventType = "matchCreated"
	MatchResultUpdated EventType = "matchResultUpdated"
	PosterUpdated      EventType = "posterUpdated"
	PosterDeleted      EventType = "posterDeleted"
	RequestReceived    EventType = "requestReceived"
	RequestAccepted    EventType = "requestAccepted"
	RequestRejected    EventType = "requestRejected"
)

// Message is the frame delivered to clients.
type Message struct {
	Event   EventType `json:"event"`
	Payload any       `json:"payload"`
}

// Publisher delivers notifications. Delivery is best effort and never fails
// the caller; services publish only after their transaction commits.
type Publisher interface {
	Broadcast(event EventType, payload any)
	PublishToUser(userID string, event EventType, payload any)
}
