// Package styles holds the shared lipgloss palette and the status and
// priority rendering helpers used across all views.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	PrimaryColor   = lipgloss.Color("#60A5FA") // Blue
	SecondaryColor = lipgloss.Color("#10B981") // Green
	WarningColor   = lipgloss.Color("#F59E0B") // Amber
	ErrorColor     = lipgloss.Color("#F87171") // Red
	MutedColor     = lipgloss.Color("#9CA3AF") // Gray
	SurfaceColor   = lipgloss.Color("#1F2937") // Dark surface
	TextColor      = lipgloss.Color("#F9FAFB") // Light text
	BorderColor    = lipgloss.Color("#6B7280") // Gray

	// Ticket status colors
	StatusNewColor        = lipgloss.Color("#60A5FA") // Blue
	StatusInProgressColor = lipgloss.Color("#F59E0B") // Amber
	StatusResolvedColor   = lipgloss.Color("#10B981") // Green
	StatusClosedColor     = lipgloss.Color("#9CA3AF") // Gray

	// Priority colors
	PriorityHighColor   = lipgloss.Color("#F87171") // Red
	PriorityMediumColor = lipgloss.Color("#F59E0B") // Amber
	PriorityLowColor    = lipgloss.Color("#10B981") // Green

	// Convenience styles
	Primary   = lipgloss.NewStyle().Foreground(PrimaryColor)
	Secondary = lipgloss.NewStyle().Foreground(SecondaryColor)
	Warning   = lipgloss.NewStyle().Foreground(WarningColor)
	Muted     = lipgloss.NewStyle().Foreground(MutedColor)
	Text      = lipgloss.NewStyle().Foreground(TextColor)

	// Base styles
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(PrimaryColor).
		MarginBottom(1)

	Subtitle = lipgloss.NewStyle().
			Foreground(MutedColor).
			Italic(true)

	Header = lipgloss.NewStyle().
		Bold(true).
		Foreground(PrimaryColor).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(BorderColor).
		MarginBottom(1).
		PaddingBottom(1)

	ContentBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderColor).
			Padding(1, 2)

	// KPI cards on the dashboards
	KPICard = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(BorderColor).
		Padding(0, 2).
		MarginRight(1).
		Align(lipgloss.Center)

	KPIValue = lipgloss.NewStyle().
			Bold(true).
			Foreground(TextColor)

	KPILabel = lipgloss.NewStyle().
			Foreground(MutedColor)

	// Status badges
	StatusBadge = lipgloss.NewStyle().
			Padding(0, 1).
			MarginRight(1)

	// Selected row in lists
	RowSelected = lipgloss.NewStyle().
			Bold(true).
			Foreground(TextColor).
			Background(PrimaryColor).
			Padding(0, 1)

	Row = lipgloss.NewStyle().
		Padding(0, 1)

	// Help bar
	HelpBar = lipgloss.NewStyle().
		Foreground(MutedColor).
		MarginTop(1)

	HelpKey = lipgloss.NewStyle().
		Bold(true).
		Foreground(SecondaryColor)

	// Messages
	ErrorMsg = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	SuccessMsg = lipgloss.NewStyle().
			Foreground(SecondaryColor).
			Bold(true)

	// System notice banner on the TV dashboard
	NoticeBanner = lipgloss.NewStyle().
			Foreground(TextColor).
			Background(WarningColor).
			Bold(true).
			Padding(0, 1)
)

// StatusColor returns the color for a ticket status.
func StatusColor(status string) lipgloss.Color {
	switch status {
	case "Novo":
		return StatusNewColor
	case "Em Andamento":
		return StatusInProgressColor
	case "Resolvido":
		return StatusResolvedColor
	case "Fechado":
		return StatusClosedColor
	default:
		return MutedColor
	}
}

// StatusIcon returns the icon for a ticket status.
func StatusIcon(status string) string {
	switch status {
	case "Novo":
		return "○"
	case "Em Andamento":
		return "●"
	case "Resolvido":
		return "✓"
	case "Fechado":
		return "■"
	default:
		return "?"
	}
}

// PriorityColor returns the color for a ticket priority.
func PriorityColor(priority string) lipgloss.Color {
	switch priority {
	case "Alta":
		return PriorityHighColor
	case "Media", "Média":
		return PriorityMediumColor
	case "Baixa":
		return PriorityLowColor
	default:
		return MutedColor
	}
}

// StatusBadgeFor renders a colored badge for a ticket status.
func StatusBadgeFor(status string) string {
	return StatusBadge.
		Foreground(TextColor).
		Background(StatusColor(status)).
		Render(StatusIcon(status) + " " + status)
}

// PriorityBadgeFor renders a colored badge for a ticket priority.
func PriorityBadgeFor(priority string) string {
	if priority == "" {
		return ""
	}
	return StatusBadge.
		Foreground(TextColor).
		Background(PriorityColor(priority)).
		Render(priority)
}
