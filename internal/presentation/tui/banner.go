package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

var bannerLines = []struct {
	text  string
	color string
}{
	{`   ____ _       _      _   _             `, "#34d399"},
	{`  / ___(_)_   _(_) ___| \ | | __ ___   __`, "#2dd4bf"},
	{` | |   | \ \ / / |/ __|  \| |/ _' \ \ / /`, "#22d3ee"},
	{` | |___| |\ V /| | (__| |\  | (_| |\ V / `, "#38bdf8"},
	{`  \____|_| \_/ |_|\___|_| \_|\__,_| \_/  `, "#60a5fa"},
}

// PrintBanner writes the CivicNav ASCII art banner to w.
func PrintBanner(w io.Writer) {
	printBanner(w, termenv.ColorProfile())
}

func printBanner(w io.Writer, p termenv.Profile) {
	// Teal to blue, one step per line
	fmt.Fprintln(w)
	for _, line := range bannerLines {
		fmt.Fprintln(w, termenv.String(line.text).Foreground(p.Color(line.color)))
	}
	fmt.Fprintln(w)
}
