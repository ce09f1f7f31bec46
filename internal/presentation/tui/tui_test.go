package tui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/muesli/termenv"
)

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	printBanner(&buf, termenv.Ascii)

	out := buf.String()
	for _, line := range bannerLines {
		if !strings.Contains(out, line.text) {
			t.Errorf("banner is missing line %q", line.text)
		}
	}
}

func TestNewRenderer(t *testing.T) {
	render := NewRenderer()
	out, err := render("## home\n\n**Events:** navigate")
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if !strings.Contains(out, "home") || !strings.Contains(out, "navigate") {
		t.Errorf("rendered output lost content: %q", out)
	}
}
