package cli

import (
	"errors"

	"github.com/charmbracelet/lipgloss"
	"github.com/dmitrijs2005/socialfeed/internal/client/client"
)

var (
	colorAccent  = lipgloss.Color("#20B9B4")
	colorSuccess = lipgloss.Color("#2CD7C7")
	colorError   = lipgloss.Color("#E74C3C")
	colorMuted   = lipgloss.Color("#2C4A54")
)

var styles = struct {
	Title   lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Prompt  lipgloss.Style

	PostBox  lipgloss.Style
	ErrorBox lipgloss.Style
}{
	Title:   lipgloss.NewStyle().Bold(true).Foreground(colorAccent),
	Muted:   lipgloss.NewStyle().Foreground(colorMuted),
	Success: lipgloss.NewStyle().Foreground(colorSuccess),
	Prompt:  lipgloss.NewStyle().Foreground(colorAccent),

	PostBox: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorMuted).
		Padding(0, 1),
	ErrorBox: lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(colorError).
		Foreground(colorError).
		Padding(0, 1),
}

// unavailableMessage replaces transport errors, which carry no text a user
// can act on.
const unavailableMessage = "Unable to reach the server. Please try again."

// renderError formats err as the inline error banner.
func renderError(err error) string {
	msg := err.Error()
	if errors.Is(err, client.ErrUnavailable) {
		msg = unavailableMessage
	}
	return styles.ErrorBox.Render(msg)
}
