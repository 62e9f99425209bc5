package model

import "github.com/festy23/street_sports/internal/apperror"

var (
	// ErrMatchNotFound indicates the match does not exist in the event.
	ErrMatchNotFound = apperror.New(apperror.KindNotFound, "MATCH_NOT_FOUND", "Match not found")
	// ErrSameTeam indicates both sides of a match are the same team.
	ErrSameTeam = apperror.New(apperror.KindInvalidRequest, "SAME_TEAM", "A match needs two different teams")
	// ErrInvalidWinner indicates the winner does not play in the match.
	ErrInvalidWinner = apperror.New(apperror.KindInvalidRequest, "INVALID_WINNER", "Winner must be one of the teams in the match")
	// ErrResultRecorded indicates the match already has a result.
	ErrResultRecorded = apperror.New(apperror.KindConflict, "RESULT_ALREADY_RECORDED", "Match result already recorded")

	// ErrHighlightNotFound indicates the highlight does not exist in the match.
	ErrHighlightNotFound = apperror.New(apperror.KindNotFound, "HIGHLIGHT_NOT_FOUND", "Highlight not found")
)
