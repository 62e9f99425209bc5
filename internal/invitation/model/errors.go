package model

import "github.com/festy23/street_sports/internal/apperror"

var (
	// ErrRequestNotFound indicates the invitation does not exist or is not addressed to the caller.
	ErrRequestNotFound = apperror.New(apperror.KindNotFound, "REQUEST_NOT_FOUND", "Request not found")
	// ErrRequestPending indicates an invitation to the same user for the same team is still pending.
	ErrRequestPending = apperror.New(apperror.KindConflict, "REQUEST_PENDING", "A pending request already exists for this user and team")
	// ErrRequestProcessed indicates the invitation already reached a terminal state.
	ErrRequestProcessed = apperror.New(apperror.KindConflict, "REQUEST_PROCESSED", "Request already processed")
	// ErrMessageTooLong indicates the invitation note exceeds MaxMessageLength.
	ErrMessageTooLong = apperror.New(apperror.KindInvalidRequest, "MESSAGE_TOO_LONG", "Message must be at most 200 characters")
	// ErrSelfInvite indicates the organiser invited themselves.
	ErrSelfInvite = apperror.New(apperror.KindInvalidRequest, "SELF_INVITE", "Cannot send a request to yourself")
)
