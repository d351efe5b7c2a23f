package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the color changer banner, one line per palette color.
func PrintBanner(w io.Writer, p termenv.Profile, version string) {
	lines := []struct {
		text string
		hex  string
	}{
		{`   ___      _              ___ _                              `, "#FF0000"},
		{`  / __|___ | |___ _ _     / __| |_  __ _ _ _  __ _ ___ _ _   `, "#FF7F00"},
		{` | (__/ _ \| / _ \ '_|   | (__| ' \/ _' | ' \/ _' / -_) '_|  `, "#00FF00"},
		{`  \___\___/|_\___/_|      \___|_||_\__,_|_||_\__, \___|_|    `, "#00FFFF"},
		{`                                             |___/           `, "#0000FF"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.hex)))
	}
	fmt.Fprintf(w, "  %s\n\n", termenv.String("v"+version).Faint())
}
