package model

import "github.com/festy23/street_sports/internal/apperror"

var (
	// ErrEventNotFound indicates that the requested event does not exist.
	ErrEventNotFound = apperror.New(apperror.KindNotFound, "EVENT_NOT_FOUND", "Event not found")
	// ErrNotOrganizer indicates the caller does not organise the event.
	ErrNotOrganizer = apperror.New(apperror.KindForbidden, "NOT_ORGANIZER", "Only the event organizer can perform this action")
	// ErrInvalidSportType indicates a sport type outside SportTypes.
	ErrInvalidSportType = apperror.New(apperror.KindInvalidRequest, "INVALID_SPORT_TYPE", "sportType is not supported")
	// ErrInvalidSchedule indicates the registration deadline is after the start date.
	ErrInvalidSchedule = apperror.New(apperror.KindInvalidRequest, "INVALID_SCHEDULE", "registrationDeadline must not be after startDate")
	// ErrInvalidFee indicates a negative fee.
	ErrInvalidFee = apperror.New(apperror.KindInvalidRequest, "INVALID_FEE", "fees must not be negative")
	// ErrInvalidRegistrationType indicates a type other than audience or player.
	ErrInvalidRegistrationType = apperror.New(apperror.KindInvalidRequest, "INVALID_TYPE", "type must be audience or player")
	// ErrNoPoster indicates there is no poster to delete.
	ErrNoPoster = apperror.New(apperror.KindNotFound, "POSTER_NOT_FOUND", "No poster to delete")
)
