package feedview

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jkariuki/dealdrop/internal/deal"
)

// Colors for the cold-to-hot discount spectrum.
var (
	ColorRed    = lipgloss.Color("196") // hot, 70%+
	ColorOrange = lipgloss.Color("208") // very warm, 60-69%
	ColorYellow = lipgloss.Color("220") // warm, 50-59%
	ColorGreen  = lipgloss.Color("40")  // neutral, 40-49%
	ColorBlue   = lipgloss.Color("39")  // cold, below 40%
	ColorWhite  = lipgloss.Color("255")
	ColorDim    = lipgloss.Color("242")
	ColorGray   = lipgloss.Color("245")
)

// Styles holds all Lip Gloss style definitions for the feed view.
// This allows for dependency injection and testing.
type Styles struct {
	// Card chrome
	CardBorder   lipgloss.Style
	Countdown    lipgloss.Style
	CountdownOut lipgloss.Style
	Title        lipgloss.Style
	Description  lipgloss.Style
	Location     lipgloss.Style

	// Social proof pills
	Pill      lipgloss.Style
	PillCheck lipgloss.Style

	// Price block
	OriginalPrice lipgloss.Style
	PriceByBand   map[deal.Band]lipgloss.Style
	ButtonByBand  map[deal.Band]lipgloss.Style
	ButtonExpired lipgloss.Style

	// Highlight ladder line
	Highlight lipgloss.Style

	// Footer / position indicator
	Position lipgloss.Style
	Help     lipgloss.Style
	Empty    lipgloss.Style
}

// DefaultStyles returns the default look. The two band maps share
// boundaries by construction: both key off deal.DiscountBand.
func DefaultStyles() Styles {
	s := Styles{}

	s.CardBorder = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63")).
		Padding(1, 2)

	s.Countdown = lipgloss.NewStyle().Bold(true).Foreground(ColorWhite)
	s.CountdownOut = lipgloss.NewStyle().Bold(true).Foreground(ColorDim)
	s.Title = lipgloss.NewStyle().Bold(true).Foreground(ColorWhite)
	s.Description = lipgloss.NewStyle().Foreground(ColorGray)
	s.Location = lipgloss.NewStyle().Foreground(ColorDim)

	s.Pill = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(ColorDim).
		Padding(0, 1)
	s.PillCheck = s.Pill.Foreground(ColorGreen)

	s.OriginalPrice = lipgloss.NewStyle().Strikethrough(true).Foreground(ColorDim)

	bandColors := map[deal.Band]lipgloss.Color{
		deal.BandHot:      ColorRed,
		deal.BandVeryWarm: ColorOrange,
		deal.BandWarm:     ColorYellow,
		deal.BandNeutral:  ColorGreen,
		deal.BandCold:     ColorBlue,
	}

	s.PriceByBand = make(map[deal.Band]lipgloss.Style, len(bandColors))
	s.ButtonByBand = make(map[deal.Band]lipgloss.Style, len(bandColors))
	for band, color := range bandColors {
		s.PriceByBand[band] = lipgloss.NewStyle().Bold(true).Foreground(color)
		s.ButtonByBand[band] = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 2).
			Foreground(ColorWhite).
			Background(color)
	}

	s.ButtonExpired = lipgloss.NewStyle().
		Bold(true).
		Padding(0, 2).
		Foreground(ColorWhite).
		Background(ColorDim)

	s.Highlight = lipgloss.NewStyle().Bold(true).Foreground(ColorOrange)

	s.Position = lipgloss.NewStyle().Foreground(ColorDim)
	s.Help = lipgloss.NewStyle().Foreground(ColorDim)
	s.Empty = lipgloss.NewStyle().Foreground(ColorDim).Padding(2, 4)

	return s
}
