package pretty

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func hairpinTracks(folded string) []Track {
	return []Track{
		{Label: "seq", Text: "GGGAAACCC"},
		{Label: "folded", Text: folded},
		{Label: "target", Text: "(((...)))"},
	}
}

func TestRender_NoMismatch(t *testing.T) {
	got := Render(hairpinTracks("(((...)))"), []int{-1, -1, -1, -1, -1, -1, -1, -1, -1}, DefaultOptions)
	want := "" +
		"  seq     GGGAAACCC\n" +
		"  folded  (((...)))\n" +
		"  target  (((...)))\n"
	assert.Equal(t, want, got)
}

func TestRender_Caret(t *testing.T) {
	got := Render(hairpinTracks("((.....))"), []int{-1, -1, 1, -1, -1, -1, 1, -1, -1}, DefaultOptions)
	want := "" +
		"  seq     GGGAAACCC\n" +
		"  folded  ((.....))\n" +
		"  target  (((...)))\n" +
		"  diff      ^   ^\n"
	assert.Equal(t, want, got)

	opt := DefaultOptions
	opt.ShowCaret = false
	assert.NotContains(t, Render(hairpinTracks("((.....))"), []int{1}, opt), "diff")
}

func TestRender_IgnoredGlyph(t *testing.T) {
	opt := DefaultOptions
	opt.IgnoredGlyph = "-"
	got := Render([]Track{{Label: "s", Text: "ABCD"}}, []int{0, 1, -1, 0}, opt)
	assert.Equal(t, "  s     ABCD\n  diff  -^ -\n", got)
}

func TestRender_Wraps(t *testing.T) {
	opt := DefaultOptions
	opt.Width = 4
	got := Render(hairpinTracks("((.....))"), []int{-1, -1, 1, -1, -1, -1, 1, -1, -1}, opt)
	want := "" +
		"          1-4\n" +
		"  seq     GGGA\n" +
		"  folded  ((..\n" +
		"  target  (((.\n" +
		"  diff      ^\n" +
		"\n" +
		"          5-8\n" +
		"  seq     AACC\n" +
		"  folded  ...)\n" +
		"  target  ..))\n" +
		"  diff      ^\n" +
		"\n" +
		"          9-9\n" +
		"  seq     C\n" +
		"  folded  )\n" +
		"  target  )\n"
	assert.Equal(t, want, got)
}

func TestRender_Empty(t *testing.T) {
	assert.Equal(t, "", Render(nil, nil, DefaultOptions))
	assert.Equal(t, "  seq\n", Render([]Track{{Label: "seq"}}, nil, DefaultOptions))
}
