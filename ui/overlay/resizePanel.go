package overlay

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"overlay-window/geom"
)

// ResizePanel is the small status box shown while a resize session is open.
type ResizePanel struct {
	size   geom.Size
	bounds string
	width  int
}

// NewResizePanel creates the panel.
func NewResizePanel() *ResizePanel {
	return &ResizePanel{width: 30}
}

// SetSize updates the size readout.
func (p *ResizePanel) SetSize(size geom.Size) {
	p.size = size
}

// SetBounds shows the allowed ranges under the readout.
func (p *ResizePanel) SetBounds(minW, maxW, minH, maxH float64) {
	p.bounds = fmt.Sprintf("w %.0f–%.0f  h %.0f–%.0f", minW, maxW, minH, maxH)
}

// SetWidth sets the panel width
func (p *ResizePanel) SetWidth(width int) {
	p.width = width
}

// Render renders the panel
func (p *ResizePanel) Render(opts ...WhitespaceOption) string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("62"))

	statusStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))

	hintStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666666"))

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("62")).
		Padding(0, 1).
		Width(p.width)

	content := titleStyle.Render("Resize") + "\n"
	content += fmt.Sprintf("%.0f × %.0f pt", p.size.Width, p.size.Height) + "\n"
	if p.bounds != "" {
		content += statusStyle.Render(p.bounds) + "\n"
	}
	content += hintStyle.Render("[0] Reset  [Enter] Done")

	return boxStyle.Render(content)
}
