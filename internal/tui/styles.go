package tui

import "github.com/charmbracelet/lipgloss"

// One Dark Pro color palette
var (
	ColorBgPrimary   = lipgloss.Color("#282C34")
	ColorBgHighlight = lipgloss.Color("#2C313C")

	ColorFgPrimary   = lipgloss.Color("#ABB2BF")
	ColorFgSecondary = lipgloss.Color("#828997")
	ColorFgMuted     = lipgloss.Color("#636B78")
	ColorFgComment   = lipgloss.Color("#5C6370")

	ColorRed     = lipgloss.Color("#E06C75")
	ColorGreen   = lipgloss.Color("#98C379")
	ColorYellow  = lipgloss.Color("#E5C07B")
	ColorBlue    = lipgloss.Color("#61AFEF")
	ColorMagenta = lipgloss.Color("#C678DD")
	ColorCyan    = lipgloss.Color("#56B6C2")

	ColorBorder = lipgloss.Color("#3F4451")
)

// Component styles
var (
	// Profile header
	ProfileStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBlue).
			Padding(0, 2)

	NameStyle = lipgloss.NewStyle().
			Foreground(ColorRed).
			Bold(true)

	DescriptionStyle = lipgloss.NewStyle().
				Foreground(ColorFgSecondary)

	LinkLabelStyle = lipgloss.NewStyle().
			Foreground(ColorCyan)

	// Category columns
	ColumnStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	ColumnActiveStyle = ColumnStyle.
				BorderForeground(ColorMagenta)

	ColumnTitleStyle = lipgloss.NewStyle().
				Foreground(ColorMagenta).
				Bold(true)

	SubjectStyle = lipgloss.NewStyle().
			Foreground(ColorFgPrimary).
			Padding(0, 1)

	SubjectSelectedStyle = lipgloss.NewStyle().
				Background(ColorBgHighlight).
				Foreground(ColorFgPrimary).
				Bold(true).
				Padding(0, 1)

	// Modal boxes (detail, forms, alerts, help)
	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(1, 2)

	ModalTitleStyle = lipgloss.NewStyle().
			Foreground(ColorBlue).
			Bold(true)

	AlertStyle = ModalStyle.
			BorderForeground(ColorGreen)

	AlertFailedStyle = ModalStyle.
				BorderForeground(ColorRed)

	// Form fields
	FieldStyle = lipgloss.NewStyle().
			Foreground(ColorFgPrimary)

	FieldFocusedStyle = lipgloss.NewStyle().
				Foreground(ColorYellow).
				Bold(true)

	PlaceholderStyle = lipgloss.NewStyle().
				Foreground(ColorFgMuted)

	InputPromptStyle = lipgloss.NewStyle().
				Foreground(ColorGreen)

	// Status bar
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(ColorFgMuted).
			PaddingLeft(1).
			PaddingRight(1)

	// Flash confirmation
	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorGreen).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorRed)

	DimStyle = lipgloss.NewStyle().
			Foreground(ColorFgComment)
)
