package domain

const (
	TireCompoundSoft         TireCompound = "SOFT"
	TireCompoundMedium       TireCompound = "MEDIUM"
	TireCompoundHard         TireCompound = "HARD"
	TireCompoundIntermediate TireCompound = "INTERMEDIATE"
	TireCompoundFullWet      TireCompound = "WET"
	TireCompoundUnknown      TireCompound = "UNKNOWN"
)

// TireCompound represents one of the official tire compound types used in a
// race weekend.
type TireCompound string

// DefaultTeamColor is used for teams without an entry in the color table.
const DefaultTeamColor = "#D1D4DD"

// teamColors maps constructor names to their primary display color.
var teamColors = map[string]string{
	"Red Bull":       "#3671C6",
	"Mercedes":       "#27F4D2",
	"Ferrari":        "#E80020",
	"McLaren":        "#FF8000",
	"Alpine F1 Team": "#0093CC",
	"Aston Martin":   "#229971",
	"Williams":       "#64C4FF",
	"RB F1 Team":     "#6692FF",
	"AlphaTauri":     "#6692FF",
	"Sauber":         "#52E252",
	"Alfa Romeo":     "#C92D4B",
	"Haas F1 Team":   "#B6BABD",
}

// TeamColor returns the primary display color for a constructor as a hex
// string; unmapped teams get DefaultTeamColor.
func TeamColor(team string) string {
	if c, ok := teamColors[team]; ok {
		return c
	}
	return DefaultTeamColor
}
