package views

import "github.com/charmbracelet/lipgloss"

// Palette is the Catppuccin Mocha scheme used for every style in the UI.
type Palette struct {
	Red      string
	Peach    string
	Yellow   string
	Green    string
	Blue     string
	Mauve    string
	Lavender string
	Text     string
	Subtext1 string
	Subtext0 string
	Overlay1 string
	Surface2 string
	Surface1 string
	Surface0 string
	Base     string
}

var Colours = Palette{
	Red:      "#f38ba8",
	Peach:    "#fab387",
	Yellow:   "#f9e2af",
	Green:    "#a6e3a1",
	Blue:     "#89b4fa",
	Mauve:    "#cba6f7",
	Lavender: "#b4befe",
	Text:     "#cdd6f4",
	Subtext1: "#bac2de",
	Subtext0: "#a6adc8",
	Overlay1: "#7f849c",
	Surface2: "#585b70",
	Surface1: "#45475a",
	Surface0: "#313244",
	Base:     "#1e1e2e",
}

func colour(hex string) lipgloss.Color {
	return lipgloss.Color(hex)
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colour(Colours.Text)).
			Background(colour(Colours.Surface0)).
			Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colour(Colours.Mauve)).
			MarginTop(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(colour(Colours.Subtext1)).
			Width(15)

	focusedLabelStyle = labelStyle.
				Foreground(colour(Colours.Blue)).
				Bold(true)

	hintStyle = lipgloss.NewStyle().
			Foreground(colour(Colours.Peach)).
			PaddingLeft(15)

	buttonStyle = lipgloss.NewStyle().
			Foreground(colour(Colours.Text)).
			Background(colour(Colours.Surface1)).
			Padding(0, 1)

	focusedButtonStyle = buttonStyle.
				Foreground(colour(Colours.Base)).
				Background(colour(Colours.Blue)).
				Bold(true)

	activePageStyle = buttonStyle.
			Foreground(colour(Colours.Base)).
			Background(colour(Colours.Mauve)).
			Bold(true)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colour(Colours.Surface2)).
			Padding(0, 1).
			MarginRight(1).
			Width(34)

	selectedCardStyle = cardStyle.
				BorderForeground(colour(Colours.Blue))

	fieldNameStyle = lipgloss.NewStyle().
			Foreground(colour(Colours.Subtext0))

	searchBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colour(Colours.Surface1)).
			Padding(0, 1).
			MarginRight(1)

	focusedSearchBoxStyle = searchBoxStyle.
				BorderForeground(colour(Colours.Blue))

	successStyle = lipgloss.NewStyle().Foreground(colour(Colours.Green))
	failureStyle = lipgloss.NewStyle().Foreground(colour(Colours.Red))
	pendingStyle = lipgloss.NewStyle().Foreground(colour(Colours.Yellow))
	mutedStyle   = lipgloss.NewStyle().Foreground(colour(Colours.Overlay1))
)
