package styles

import "github.com/charmbracelet/lipgloss"

// ApplyTheme switches the palette. "dark" is the palette as declared;
// "light" swaps the neutrals for light-background terminals. Must run
// before the first render, since derived styles are rebuilt in place.
func ApplyTheme(name string) {
	if name != "light" {
		return
	}

	TextColor = lipgloss.Color("#111827")
	MutedColor = lipgloss.Color("#6B7280")
	SurfaceColor = lipgloss.Color("#E5E7EB")
	BorderColor = lipgloss.Color("#9CA3AF")

	Muted = lipgloss.NewStyle().Foreground(MutedColor)
	Text = lipgloss.NewStyle().Foreground(TextColor)
	Subtitle = Subtitle.Foreground(MutedColor)
	Header = Header.BorderForeground(BorderColor)
	ContentBox = ContentBox.BorderForeground(BorderColor)
	KPICard = KPICard.BorderForeground(BorderColor)
	KPIValue = KPIValue.Foreground(TextColor)
	KPILabel = KPILabel.Foreground(MutedColor)
	RowSelected = RowSelected.Foreground(SurfaceColor)
	HelpBar = HelpBar.Foreground(MutedColor)
	NoticeBanner = NoticeBanner.Foreground(SurfaceColor)
}
