package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"

	"github.com/aretw0/colorchanger/pkg/domain"
)

// swatch is the glyph painted for one animation step.
const swatch = "  "

// RenderDirective writes one line per directive: trigger, targets and the
// animation sequence as colored swatches. Blended steps are marked with ~.
func RenderDirective(w io.Writer, p termenv.Profile, d domain.Directive) {
	targets := "all buttons"
	if len(d.TargetDevices) > 0 {
		targets = strings.Join(d.TargetDevices, ", ")
	}

	var seq strings.Builder
	for _, step := range d.Animation.Sequence {
		cell := termenv.String(swatch)
		if p == termenv.Ascii {
			cell = termenv.String("#" + step.Color)
		} else {
			cell = cell.Background(p.Color("#" + step.Color))
		}
		sep := " "
		if step.Blend {
			sep = "~"
		}
		fmt.Fprintf(&seq, "%s%s%dms ", cell, sep, step.DurationMS)
	}

	repeat := ""
	if d.Animation.Repeat > 1 {
		repeat = fmt.Sprintf(" x%d", d.Animation.Repeat)
	}
	fmt.Fprintf(w, "  [%s] %s: %s%s\n", d.Trigger, targets, strings.TrimSpace(seq.String()), repeat)
}
