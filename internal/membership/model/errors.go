package model

import "github.com/festy23/street_sports/internal/apperror"

var (
	// ErrAlreadyInAudience indicates the user already joined the audience.
	ErrAlreadyInAudience = apperror.New(apperror.KindConflict, "ALREADY_IN_AUDIENCE", "You have already joined the audience for this event")
	// ErrAlreadyApplied indicates the user is already in the pending players pool.
	ErrAlreadyApplied = apperror.New(apperror.KindConflict, "ALREADY_APPLIED", "You have already applied to this event")
	// ErrAlreadyOnTeam indicates the user is already on a team of the event.
	ErrAlreadyOnTeam = apperror.New(apperror.KindConflict, "ALREADY_ON_TEAM", "You are already part of a team in this event")
	// ErrAlreadyOnThisTeam indicates the user is already on the requested team.
	ErrAlreadyOnThisTeam = apperror.New(apperror.KindConflict, "ALREADY_ON_THIS_TEAM", "You are already a member of this team")
	// ErrPaymentRequired indicates a fee is owed. Responses carry fee and type details.
	ErrPaymentRequired = apperror.New(apperror.KindPaymentRequired, "PAYMENT_REQUIRED", "Payment required")
	// ErrNotInAudience indicates the user is not in the audience roster.
	ErrNotInAudience = apperror.New(apperror.KindNotFound, "NOT_IN_AUDIENCE", "User is not in the audience")
	// ErrNotPendingPlayer indicates the user is not in the pending players pool.
	ErrNotPendingPlayer = apperror.New(apperror.KindNotFound, "NOT_PENDING_PLAYER", "User has not applied to this event")
)

// ErrNotRegistered indicates the user holds no registration in the event.
var ErrNotRegistered = apperror.New(apperror.KindNotFound, "NOT_REGISTERED", "User is not registered for this event")
