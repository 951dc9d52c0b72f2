package domain

import (
	"time"
)

const (
	SessionTypeRace       SessionType = "race"
	SessionTypeSprint     SessionType = "sprint"
	SessionTypeQualifying SessionType = "qualifying"
)

const (
	SessionStatusUpcoming    SessionStatus = "upcoming"
	SessionStatusCompleted   SessionStatus = "completed"
	SessionStatusUnavailable SessionStatus = "data_unavailable"
)

const (
	EventFormatConventional EventFormat = "conventional"
	EventFormatSprint       EventFormat = "sprint"
)

// The types of timed sessions within a race weekend that can be browsed,
// e.g.: Race, Sprint, Qualifying.
type SessionType string

// SessionStatus classifies a session relative to "now": it either hasn't
// happened yet, has results available, or results could not be loaded.
type SessionStatus string

// EventFormat indicates the weekend format, i.e. whether the event includes a
// sprint race in addition to the grand prix.
type EventFormat string

// Event represents identifying metadata about one race weekend on the season
// calendar.
type Event struct {
	Name     string      // Name is the official event name, e.g.: "Bahrain Grand Prix"
	Location string      // Location is the locality in which the event takes place
	Country  string      // Country is the full name of the host country
	Round    int         // Round is the sequence number of the event within the season
	Date     time.Time   // Date is the calendar date of the main race session
	Format   EventFormat // Format indicates a conventional or sprint weekend
}
