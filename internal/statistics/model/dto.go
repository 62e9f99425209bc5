// Package model provides data transfer objects for statistics module.
package model

// EventStatistics summarises registrations, matches and door scans of one event.
type EventStatistics struct {
	EventID         string `json:"eventId"`
	AudienceCount   int    `json:"audienceCount"`
	PendingPlayers  int    `json:"pendingPlayers"`
	ApprovedPlayers int    `json:"approvedPlayers"`
	TeamPlayers     int    `json:"teamPlayers"`
	Teams           int    `json:"teams"`
	Matches         int    `json:"matches"`
	MatchesPlayed   int    `json:"matchesPlayed"`
	TicketsIssued   int    `json:"ticketsIssued"`
	TicketsScanned  int    `json:"ticketsScanned"`
	PendingRequests int    `json:"pendingRequests"`
}

// EventStatisticsResponse represents response for event statistics.
type EventStatisticsResponse struct {
	Statistics EventStatistics `json:"statistics"`
}

// TeamStanding is one row of an event's standings table.
type TeamStanding struct {
	TeamID               string `json:"teamId"`
	TeamName             string `json:"teamName"`
	MatchesPlayed        int    `json:"matchesPlayed"`
	MatchesWon           int    `json:"matchesWon"`
	MatchesResultPending int    `json:"matchesResultPending"`
	MemberCount          int    `json:"memberCount"`
}

// StandingsResponse represents response for team standings.
type StandingsResponse struct {
	EventID string         `json:"eventId"`
	Teams   []TeamStanding `json:"teams"`
	Total   int            `json:"total"`
}
