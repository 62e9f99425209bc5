package model

import "github.com/festy23/street_sports/internal/apperror"

// Failure reasons reported in the reason detail of ticket errors.
const (
	ReasonFormat        = "format"
	ReasonUserNotFound  = "user_not_found"
	ReasonAmbiguous     = "ambiguous_user"
	ReasonWrongEvent    = "wrong_event"
	ReasonNotRegistered = "not_registered"
	ReasonPayload       = "payload"
)

var (
	// ErrTicketNotFound indicates no ticket is stored under the id.
	ErrTicketNotFound = apperror.New(apperror.KindNotFound, "TICKET_NOT_FOUND", "Ticket not found")
	// ErrTicketIDRequired indicates the request carried no ticket id.
	ErrTicketIDRequired = apperror.New(apperror.KindInvalidRequest, "TICKET_ID_REQUIRED", "Ticket ID is required")
	// ErrTicketFormat indicates the id does not have the ticket layout.
	ErrTicketFormat = apperror.New(apperror.KindInvalidTicket, "INVALID_TICKET_FORMAT", "Invalid ticket format").
			WithDetails(map[string]any{"reason": ReasonFormat})
	// ErrTicketUserUnresolved indicates no user matches the id's user fragment.
	ErrTicketUserUnresolved = apperror.New(apperror.KindInvalidTicket, "TICKET_USER_NOT_FOUND", "Invalid ticket: user not found").
				WithDetails(map[string]any{"reason": ReasonUserNotFound})
	// ErrTicketAmbiguous indicates several users match the id's user fragment.
	ErrTicketAmbiguous = apperror.New(apperror.KindInvalidTicket, "TICKET_AMBIGUOUS_USER", "Invalid ticket: ambiguous user reference").
				WithDetails(map[string]any{"reason": ReasonAmbiguous})
	// ErrTicketWrongEvent indicates the ticket belongs to another event.
	ErrTicketWrongEvent = apperror.New(apperror.KindInvalidTicket, "TICKET_WRONG_EVENT", "Invalid ticket: not valid for this event").
				WithDetails(map[string]any{"reason": ReasonWrongEvent})
	// ErrTicketNotRegistered indicates the holder has no registration in the event.
	ErrTicketNotRegistered = apperror.New(apperror.KindInvalidTicket, "TICKET_NOT_REGISTERED", "Invalid ticket: user not registered for this event").
				WithDetails(map[string]any{"reason": ReasonNotRegistered})
	// ErrTicketUserNotFound indicates the user named by a QR payload does not exist.
	ErrTicketUserNotFound = apperror.New(apperror.KindNotFound, "USER_NOT_FOUND", "User not found").
				WithDetails(map[string]any{"reason": ReasonUserNotFound})
	// ErrTicketPayloadInvalid indicates a malformed or inconsistent QR payload.
	ErrTicketPayloadInvalid = apperror.New(apperror.KindInvalidTicket, "INVALID_TICKET_DATA", "Invalid ticket data").
				WithDetails(map[string]any{"reason": ReasonPayload})
)
