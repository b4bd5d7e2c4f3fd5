package app

import "charm.land/lipgloss/v2"

var avatarPalette = []string{"63", "69", "75", "108", "136", "168", "173", "30"}

var (
	headerStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	helpStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	statusStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	dividerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	identityStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Bold(true)
	subtleStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	skeletonStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("237"))
	starOnStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true)
	starOffStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	starPendingStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("179"))
	starFailedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
	cardStyle         = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("238")).Padding(0, 1)
	cardTitleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("110")).Bold(true)
	rowKeyStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	rowValueStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	rowHintStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	linkStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("117")).Underline(true)
	selectedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("236"))
	tooltipFrameStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("69")).Padding(0, 1)
	toastInfoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("29")).Bold(true)
	toastWarningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("136")).Bold(true)
	toastErrorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("160")).Bold(true)
)

func avatarStyle(paletteIndex int) lipgloss.Style {
	color := avatarPalette[0]
	if paletteIndex >= 0 && paletteIndex < len(avatarPalette) {
		color = avatarPalette[paletteIndex]
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("230")).
		Background(lipgloss.Color(color)).
		Bold(true).
		Width(avatarWidth).
		Height(avatarHeight).
		Align(lipgloss.Center, lipgloss.Center)
}
