package render

import "github.com/gdamore/tcell/v2"

// Theme holds every style the renderer uses
type Theme struct {
	Base        tcell.Style
	Title       tcell.Style
	Help        tcell.Style
	Ring        tcell.Style
	Prize       tcell.Style
	Removed     tcell.Style
	Highlighted tcell.Style
	Winner      tcell.Style
	Button      tcell.Style
	ButtonIdle  tcell.Style // start control while disabled
	Panel       tcell.Style
	PanelTitle  tcell.Style
	Cursor      tcell.Style
	Gauge       tcell.Style
}

// DefaultTheme returns the dark terminal theme
func DefaultTheme() Theme {
	base := tcell.StyleDefault
	return Theme{
		Base:        base,
		Title:       base.Foreground(tcell.ColorWhite).Bold(true),
		Help:        base.Foreground(tcell.ColorGray),
		Ring:        base.Foreground(tcell.ColorDarkSlateGray),
		Prize:       base.Foreground(tcell.ColorSilver),
		Removed:     base.Foreground(tcell.ColorDimGray).Dim(true).StrikeThrough(true),
		Highlighted: base.Foreground(tcell.ColorBlack).Background(tcell.ColorGold).Bold(true),
		Winner:      base.Foreground(tcell.ColorBlack).Background(tcell.ColorLimeGreen).Bold(true),
		Button:      base.Foreground(tcell.ColorWhite).Background(tcell.ColorNavy).Bold(true),
		ButtonIdle:  base.Foreground(tcell.ColorGray).Background(tcell.ColorBlack),
		Panel:       base.Foreground(tcell.ColorSilver).Background(tcell.NewRGBColor(30, 30, 40)),
		PanelTitle:  base.Foreground(tcell.ColorWhite).Background(tcell.NewRGBColor(30, 30, 40)).Bold(true),
		Cursor:      base.Reverse(true),
		Gauge:       base.Foreground(tcell.ColorGold).Background(tcell.NewRGBColor(30, 30, 40)),
	}
}
