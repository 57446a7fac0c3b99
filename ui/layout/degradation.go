package layout

// Degradation holds flags indicating which UI features should be hidden or simplified.
type Degradation struct {
	HideHelpLine  bool // no room for the help line
	ShortHelp     bool // help line lists only the essentials (width < 100)
	CompactChrome bool // single-line window border, no title (compact or smaller)
	HideBodyText  bool // overlay body shows only the spinner (height < 30)

	ShowMinWarning bool // Terminal too small warning
}

// ComputeDegradation calculates which UI features should be degraded.
func ComputeDegradation(c Constraints) Degradation {
	return Degradation{
		HideHelpLine:   c.HelpHeight == 0,
		ShortHelp:      c.TerminalWidth < CompactWidth,
		CompactChrome:  c.Mode >= LayoutCompact,
		HideBodyText:   c.TerminalHeight < CompactHeight,
		ShowMinWarning: c.ShowMinWarning,
	}
}
