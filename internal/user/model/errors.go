package model

import "github.com/festy23/street_sports/internal/apperror"

var (
	// ErrUserNotFound indicates that the requested user does not exist.
	ErrUserNotFound = apperror.New(apperror.KindNotFound, "USER_NOT_FOUND", "User not found")
	// ErrInvalidRole indicates a role outside player, organizer, viewer.
	ErrInvalidRole = apperror.New(apperror.KindInvalidRequest, "INVALID_ROLE", "role must be one of player, organizer, viewer")
	// ErrInvalidAge indicates an age outside the accepted range.
	ErrInvalidAge = apperror.New(apperror.KindInvalidRequest, "INVALID_AGE", "age must be between 5 and 120")
)
