package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/aperture/internal/ui/theme"
)

const bannerArt = `
  █████╗ ██████╗ ███████╗██████╗ ████████╗██╗   ██╗██████╗ ███████╗
 ██╔══██╗██╔══██╗██╔════╝██╔══██╗╚══██╔══╝██║   ██║██╔══██╗██╔════╝
 ███████║██████╔╝█████╗  ██████╔╝   ██║   ██║   ██║██████╔╝█████╗
 ██╔══██║██╔═══╝ ██╔══╝  ██╔══██╗   ██║   ██║   ██║██╔══██╗██╔══╝
 ██║  ██║██║     ███████╗██║  ██║   ██║   ╚██████╔╝██║  ██║███████╗
 ╚═╝  ╚═╝╚═╝     ╚══════╝╚═╝  ╚═╝   ╚═╝    ╚═════╝ ╚═╝  ╚═╝╚══════╝`

const bannerCompact = "A P E R T U R E"

// bannerWidth is the widest line of bannerArt.
const bannerWidth = 68

// RenderBanner returns the banner styled in the primary color, falling back
// to a spaced-out word on narrow terminals.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < bannerWidth {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
