package domain

// PositionDNF is the finishing position marker used for drivers that were not
// classified, e.g. due to crash or mechanical failure.
const PositionDNF = "DNF"

// RaceResult is one finishing record from a session's classification. It is
// immutable once fetched; the replay engine and the results view read it only.
type RaceResult struct {
	Position     string  // Position is the classified finishing position, or the DNF marker
	DriverID     string  // DriverID is the stable lowercase identifier used by the stats API, e.g.: "max_verstappen"
	DriverNumber string  // DriverNumber is the racing number present on the car
	DriverCode   string  // DriverCode is the 3-letter abbreviation used on the television broadcast
	DriverName   string  // DriverName is the full name of the driver
	TeamName     string  // TeamName is the name of the constructor the driver races for
	Time         string  // Time is the elapsed/gap time as displayed, or "N/A" when not available
	Status       string  // Status is the classification status text, e.g.: "Finished", "+1 Lap", "Collision"
	Points       float64 // Points is the number of championship points awarded
}

// IsClassified reports whether the driver received a finishing position.
func (r RaceResult) IsClassified() bool {
	return r.Position != PositionDNF && r.Position != ""
}

// RaceDetails holds everything known about one session: the event metadata,
// the status classification and, for completed sessions, the results.
type RaceDetails struct {
	Event       Event
	SessionType SessionType
	Status      SessionStatus
	Reason      string       // Reason is a human-readable explanation when Status is data_unavailable
	Results     []RaceResult // Results is nil unless Status is completed
	TotalLaps   int          // TotalLaps is the scheduled race distance in laps (0 when unknown)
}
