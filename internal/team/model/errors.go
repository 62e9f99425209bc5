package model

import "github.com/festy23/street_sports/internal/apperror"

var (
	// ErrTeamExists indicates that a team with the given name already exists in the event.
	ErrTeamExists = apperror.New(apperror.KindConflict, "TEAM_EXISTS", "A team with this name already exists in this event")
	// ErrTeamNotFound indicates that the team does not exist in the event.
	ErrTeamNotFound = apperror.New(apperror.KindNotFound, "TEAM_NOT_FOUND", "Team not found in this event")
	// ErrInvalidTeamName indicates that the provided team name is empty.
	ErrInvalidTeamName = apperror.New(apperror.KindInvalidRequest, "INVALID_TEAM_NAME", "teamName is required")
	// ErrNotTeamMember indicates the user is not on the team.
	ErrNotTeamMember = apperror.New(apperror.KindInvalidRequest, "NOT_TEAM_MEMBER", "User is not a member of this team")
)
