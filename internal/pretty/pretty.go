// Package pretty draws aligned ASCII views of folded states.
package pretty

import (
	"fmt"
	"strings"
)

// Track is one labelled row of a block (sequence, structure, ...). All
// tracks of a view share one coordinate system.
type Track struct {
	Label string
	Text  string
}

// Options control the ASCII rendering.
type Options struct {
	// Width wraps long states into blocks of this many columns. <=0 disables wrapping.
	Width int

	// Indent prefixes every line.
	Indent string

	// Draw a caret track under the last row at mismatched positions.
	ShowCaret  bool
	CaretLabel string // default "diff"
	CaretGlyph string // default "^"
	// IgnoredGlyph marks positions a constraint mask leaves out.
	IgnoredGlyph string // default " "
}

// DefaultOptions is the look of evaluation text output.
var DefaultOptions = Options{
	Width:        100,
	Indent:       "  ",
	ShowCaret:    true,
	CaretLabel:   "diff",
	CaretGlyph:   "^",
	IgnoredGlyph: " ",
}

const labelGap = "  "

// Render lays out tracks column-aligned. wrongPairs (1 mismatch, -1 match,
// 0 ignored) drives the caret track; nil or all-matching draws none.
func Render(tracks []Track, wrongPairs []int, opt Options) string {
	if len(tracks) == 0 {
		return ""
	}
	caret := ""
	if opt.ShowCaret {
		caret = caretLine(wrongPairs, opt)
	}
	rows := append([]Track(nil), tracks...)
	hasCaret := strings.TrimSpace(caret) != ""
	if hasCaret {
		rows = append(rows, Track{Label: orDefault(opt.CaretLabel, "diff"), Text: caret})
	}

	labelW := 0
	cols := 0
	for _, r := range rows {
		labelW = max(labelW, len(r.Label))
		cols = max(cols, len(r.Text))
	}

	step := cols
	if opt.Width > 0 && opt.Width < cols {
		step = opt.Width
	}
	var b strings.Builder
	for start := 0; start < cols || start == 0; start += step {
		end := min(start+step, cols)
		if step < cols {
			if start > 0 {
				b.WriteByte('\n')
			}
			fmt.Fprintf(&b, "%s%*s%s%d-%d\n", opt.Indent, labelW, "", labelGap, start+1, end)
		}
		for i, r := range rows {
			text := slice(r.Text, start, end)
			if hasCaret && i == len(rows)-1 && strings.TrimSpace(text) == "" {
				continue
			}
			line := fmt.Sprintf("%s%-*s%s%s", opt.Indent, labelW, r.Label, labelGap, text)
			b.WriteString(strings.TrimRight(line, " "))
			b.WriteByte('\n')
		}
		if cols == 0 {
			break
		}
	}
	return b.String()
}

func caretLine(wrongPairs []int, opt Options) string {
	glyph := orDefault(opt.CaretGlyph, "^")
	ignored := orDefault(opt.IgnoredGlyph, " ")
	var b strings.Builder
	for _, v := range wrongPairs {
		switch v {
		case 1:
			b.WriteString(glyph)
		case 0:
			b.WriteString(ignored)
		default:
			b.WriteByte(' ')
		}
	}
	return b.String()
}

// slice cuts s to [start,end), tolerating short tracks.
func slice(s string, start, end int) string {
	if start >= len(s) {
		return ""
	}
	return s[start:min(end, len(s))]
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
