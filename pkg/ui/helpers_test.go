package ui

import (
	"testing"
	"time"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

func TestTruncate_UTF8Safe(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxWidth int
		want     string
	}{
		{name: "zero max", input: "hello", maxWidth: 0, want: ""},
		{name: "fits", input: "hello", maxWidth: 10, want: "hello"},
		{name: "ellipsis", input: "Presentation.pptx", maxWidth: 8, want: "Present…"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncate(tt.input, tt.maxWidth)
			if got != tt.want {
				t.Fatalf("truncate(%q, %d) = %q; want %q", tt.input, tt.maxWidth, got, tt.want)
			}
			if !utf8.ValidString(got) {
				t.Fatalf("truncate output is not valid UTF-8: %q", got)
			}
			if w := runewidth.StringWidth(got); w > tt.maxWidth {
				t.Fatalf("truncate output is %d cells wide; max %d", w, tt.maxWidth)
			}
		})
	}
}

func TestPadding(t *testing.T) {
	if got := padRight("ab", 4); got != "ab  " {
		t.Errorf("padRight = %q", got)
	}
	if got := padLeft("ab", 4); got != "  ab" {
		t.Errorf("padLeft = %q", got)
	}
	if got := padRight("日本", 5); runewidth.StringWidth(got) != 5 {
		t.Errorf("padRight should count cells, got %q", got)
	}
	if got := padLeft("toolong", 3); got != "toolong" {
		t.Errorf("padLeft must not cut, got %q", got)
	}
}

func TestFormatDate(t *testing.T) {
	if got := formatDate(time.Time{}, "Jan 2, 2006"); got != "—" {
		t.Errorf("zero date = %q", got)
	}
	d := time.Date(2023, 4, 1, 0, 0, 0, 0, time.UTC)
	if got := formatDate(d, "Jan 2, 2006"); got != "Apr 1, 2023" {
		t.Errorf("formatDate = %q", got)
	}
}

func TestTruncate_WideRunesFitWidth(t *testing.T) {
	for w := 1; w < 12; w++ {
		got := truncate("日本語ファイル.txt", w)
		if cells := runewidth.StringWidth(got); cells > w {
			t.Errorf("truncate to %d cells gave %q (%d cells)", w, got, cells)
		}
	}
}
