package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/bcdxn/f1replay/internal/domain"
)

type Style struct {
	Color       Color
	Doc         lipgloss.Style
	TitleBar    lipgloss.Style
	SubtitleBar lipgloss.Style
	Prompt      lipgloss.Style
	Cursor      lipgloss.Style
	Badge       lipgloss.Style
	StatusBox   lipgloss.Style
	Help        lipgloss.Style
	Error       lipgloss.Style
	Subtle      lipgloss.Style
	Track       lipgloss.Style
}

type Color struct {
	Red               lipgloss.Color
	Yellow            lipgloss.Color
	Green             lipgloss.Color
	Purple            lipgloss.Color
	WetTire           lipgloss.Color
	IntermediateTire  lipgloss.Color
	HardTire          lipgloss.Color
	MediumTire        lipgloss.Color
	SoftTire          lipgloss.Color
	FiaBlue           lipgloss.Color
	Light             lipgloss.Color
	Dark              lipgloss.Color
	Subtle            lipgloss.AdaptiveColor
	PrimaryForeground lipgloss.AdaptiveColor
}

func Default() *Style {
	red := lipgloss.Color("#CF040E")
	yellow := lipgloss.Color("#FAD105")
	green := lipgloss.Color("#17C81D")
	purple := lipgloss.Color("#DA0ED3")
	wet := lipgloss.Color("#1277EF")
	intermediate := lipgloss.Color("#2EA43F")
	hard := lipgloss.Color("#D4DFE8")
	medium := lipgloss.Color("#E4E344")
	soft := lipgloss.Color("#FA5A55")
	fiaBlue := lipgloss.Color("#0B203B")
	light := lipgloss.Color("#D1D4DD")
	dark := lipgloss.Color("#383838")
	subtle := lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#383838"}
	primaryForeground := lipgloss.AdaptiveColor{Light: "#383838", Dark: "#D9DCCF"}

	return &Style{
		Color: Color{
			Red:               red,
			Yellow:            yellow,
			Green:             green,
			Purple:            purple,
			WetTire:           wet,
			IntermediateTire:  intermediate,
			HardTire:          hard,
			MediumTire:        medium,
			SoftTire:          soft,
			FiaBlue:           fiaBlue,
			Light:             light,
			Dark:              dark,
			Subtle:            subtle,
			PrimaryForeground: primaryForeground,
		},
		Doc: lipgloss.NewStyle().Padding(1, 2),
		TitleBar: lipgloss.NewStyle().
			Bold(true).
			Foreground(light).
			Background(red).
			Align(lipgloss.Center).
			Padding(0, 1),
		SubtitleBar: lipgloss.NewStyle().
			Foreground(light).
			Background(fiaBlue).
			Align(lipgloss.Center).
			Padding(0, 1),
		Prompt:    lipgloss.NewStyle().Foreground(primaryForeground),
		Cursor:    lipgloss.NewStyle().Bold(true).Foreground(yellow),
		Badge:     lipgloss.NewStyle().Bold(true).Foreground(purple),
		StatusBox: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 2),
		Help:      lipgloss.NewStyle().Foreground(subtle),
		Error:     lipgloss.NewStyle().Bold(true).Foreground(red),
		Subtle:    lipgloss.NewStyle().Foreground(subtle),
		Track:     lipgloss.NewStyle().Foreground(dark),
	}
}

// TireColor returns the display color for a tyre compound label.
func (s *Style) TireColor(compound domain.TireCompound) lipgloss.Color {
	switch compound {
	case domain.TireCompoundSoft:
		return s.Color.SoftTire
	case domain.TireCompoundMedium:
		return s.Color.MediumTire
	case domain.TireCompoundHard:
		return s.Color.HardTire
	case domain.TireCompoundIntermediate:
		return s.Color.IntermediateTire
	case domain.TireCompoundFullWet:
		return s.Color.WetTire
	default:
		return s.Color.Light
	}
}
