package overlay

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/ansi"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/termenv"
)

const resetSeq = termenv.CSI + termenv.ResetSeq + "m"

type whitespace struct {
	chars string
	style termenv.Style
}

// WhitespaceOption configures the shadow drawn behind an overlay.
type WhitespaceOption func(*whitespace)

// WithWhitespaceChars sets the characters the shadow is drawn with.
func WithWhitespaceChars(s string) WhitespaceOption {
	return func(w *whitespace) {
		w.chars = s
	}
}

// WithWhitespaceForeground colors the shadow.
func WithWhitespaceForeground(c termenv.Color) WhitespaceOption {
	return func(w *whitespace) {
		w.style = w.style.Foreground(c)
	}
}

func (w whitespace) render(width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(w.chars)
	if len(runes) == 0 {
		runes = []rune{' '}
	}
	var b strings.Builder
	for i, cells := 0, 0; cells < width; i++ {
		r := runes[i%len(runes)]
		b.WriteRune(r)
		cells += max(runewidth.RuneWidth(r), 1)
	}
	return w.style.Styled(b.String())
}

// PlaceOverlay draws fg over bg with its top-left corner at (x, y). Parts
// of fg outside bg are clipped, so x and y may be negative. With center set
// x and y are ignored and fg is centered.
func PlaceOverlay(x, y int, fg, bg string, shadow, center bool, opts ...WhitespaceOption) string {
	fgLines, fgWidth := getLines(fg)
	bgLines, bgWidth := getLines(bg)

	if shadow {
		ws := whitespace{chars: "░", style: termenv.Style{}}
		for _, opt := range opts {
			opt(&ws)
		}
		shadowed := make([]string, 0, len(fgLines)+1)
		for i, line := range fgLines {
			pad := strings.Repeat(" ", fgWidth-ansi.PrintableRuneWidth(line))
			if i == 0 {
				shadowed = append(shadowed, line+pad+" ")
				continue
			}
			shadowed = append(shadowed, line+pad+ws.render(1))
		}
		shadowed = append(shadowed, " "+ws.render(fgWidth))
		fgLines = shadowed
		fgWidth++
	}

	if center {
		x = (bgWidth - fgWidth) / 2
		y = (len(bgLines) - len(fgLines)) / 2
	}

	var b strings.Builder
	for i, bgLine := range bgLines {
		if i > 0 {
			b.WriteByte('\n')
		}
		if i < y || i >= y+len(fgLines) {
			b.WriteString(bgLine)
			continue
		}
		b.WriteString(overlayLine(bgLine, fgLines[i-y], x, fgWidth, bgWidth))
	}
	return b.String()
}

// overlayLine replaces the columns [x, x+fgWidth) of bgLine with fgLine,
// clipped to [0, bgWidth).
func overlayLine(bgLine, fgLine string, x, fgWidth, bgWidth int) string {
	skip := 0
	pos := x
	if pos < 0 {
		skip = -pos
		pos = 0
	}
	visible := fgWidth - skip
	if pos+visible > bgWidth {
		visible = bgWidth - pos
	}
	if visible <= 0 {
		return bgLine
	}

	piece := truncate.String(cutLeft(fgLine, skip), uint(visible))
	if w := ansi.PrintableRuneWidth(piece); w < visible {
		piece += strings.Repeat(" ", visible-w)
	}

	left := truncate.String(bgLine, uint(pos))
	if w := ansi.PrintableRuneWidth(left); w < pos {
		left += strings.Repeat(" ", pos-w)
	}

	var b strings.Builder
	b.WriteString(left)
	b.WriteString(resetSeq)
	b.WriteString(piece)
	b.WriteString(resetSeq)
	b.WriteString(cutLeft(bgLine, pos+visible))
	return b.String()
}

// cutLeft drops the first n printable columns of s. Escape sequences are
// kept so styling carries over to the remainder. A wide rune split by the
// cut becomes spaces.
func cutLeft(s string, n int) string {
	if n <= 0 {
		return s
	}
	var b strings.Builder
	width := 0
	inSeq := false
	for _, r := range s {
		switch {
		case r == ansi.Marker:
			inSeq = true
			b.WriteRune(r)
		case inSeq:
			b.WriteRune(r)
			if ansi.IsTerminator(r) {
				inSeq = false
			}
		case width >= n:
			b.WriteRune(r)
		default:
			width += runewidth.RuneWidth(r)
			if width > n {
				b.WriteString(strings.Repeat(" ", width-n))
			}
		}
	}
	return b.String()
}

// getLines splits s into lines and returns the widest printable width.
func getLines(s string) ([]string, int) {
	lines := strings.Split(s, "\n")
	widest := 0
	for _, l := range lines {
		if w := ansi.PrintableRuneWidth(l); w > widest {
			widest = w
		}
	}
	return lines, widest
}
