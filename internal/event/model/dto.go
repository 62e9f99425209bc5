package model

import "time"

// CreateEventRequest is the body of POST /events/create.
type CreateEventRequest struct {
	EventName            string    `json:"eventName"            binding:"required,max=255"`
	SportType            string    `json:"sportType"            binding:"required"`
	StartDate            time.Time `json:"startDate"            binding:"required"`
	RegistrationDeadline time.Time `json:"registrationDeadline" binding:"required"`
	Duration             int       `json:"duration"             binding:"required,min=1"`
	AudienceFree         *bool     `json:"audienceFree"`
	AudienceFee          float64   `json:"audienceFee"`
	PlayerFree           *bool     `json:"playerFree"`
	PlayerFee            float64   `json:"playerFee"`
}

// SetPosterRequest is the body of PUT /events/:eventId/poster.
type SetPosterRequest struct {
	PublicID string `json:"publicId" binding:"required"`
	URL      string `json:"url"      binding:"required,url"`
}

// EventResponse is an event as returned by the API.
type EventResponse struct {
	Event
	Poster *Poster `json:"poster,omitempty"`
}

// NewEventResponse builds the API view of e.
func NewEventResponse(e Event) EventResponse {
	return EventResponse{Event: e, Poster: e.Poster()}
}

// PosterNotification is the payload of posterUpdated and posterDeleted.
type PosterNotification struct {
	EventID string  `json:"eventId"`
	Poster  *Poster `json:"poster"`
}
