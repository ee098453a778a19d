package richtext

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"

	"github.com/abhisek/fmaprep/internal/mathrender"
)

func plain(src string, width int) string {
	return ansi.Strip(Render(src, width, nil))
}

func TestRender_Paragraphs(t *testing.T) {
	got := plain("<p>First   paragraph.</p>\n<p>Second\nparagraph.</p>", 0)
	assert.Equal(t, "First paragraph.\n\nSecond paragraph.", got)
}

func TestRender_PlainText(t *testing.T) {
	assert.Equal(t, "A block slides down a ramp.", plain("A block slides  down a ramp.", 0))
	assert.Equal(t, "", plain("", 40))
	assert.Equal(t, "", plain("<p>   </p>", 40))
}

func TestRender_InlineSpacing(t *testing.T) {
	got := plain("<p>Use <strong>energy</strong> conservation, not <em>forces</em>.</p>", 0)
	assert.Equal(t, "Use energy conservation, not forces.", got)
}

func TestRender_LineBreak(t *testing.T) {
	got := plain("<p>one<br>two<br/>three</p>", 0)
	assert.Equal(t, "one\ntwo\nthree", got)
}

func TestRender_Lists(t *testing.T) {
	got := plain("<ul><li>alpha</li><li>beta</li></ul><ol><li>first</li><li>second</li></ol>", 0)
	assert.Equal(t, "• alpha\n• beta\n1. first\n2. second", got)
}

func TestRender_ListAfterParagraph(t *testing.T) {
	got := plain("<p>Steps:</p><ol><li>draw</li><li>solve</li></ol><p>Done.</p>", 0)
	assert.Equal(t, "Steps:\n\n1. draw\n2. solve\n\nDone.", got)
}

func TestRender_HangingIndent(t *testing.T) {
	got := plain("<ul><li>one two three four five six</li></ul>", 12)
	lines := strings.Split(got, "\n")
	assert.Greater(t, len(lines), 1)
	assert.True(t, strings.HasPrefix(lines[0], "• "))
	for _, l := range lines[1:] {
		assert.True(t, strings.HasPrefix(l, "  "), "continuation %q not indented", l)
	}
}

func TestRender_Wraps(t *testing.T) {
	got := plain("<p>the quick brown fox jumps over the lazy dog</p>", 15)
	for _, l := range strings.Split(got, "\n") {
		assert.LessOrEqual(t, len(l), 15)
	}
}

func TestRender_Heading(t *testing.T) {
	got := plain("<h3>Newton's laws</h3><p>Three of them.</p>", 0)
	assert.Equal(t, "Newton's laws\n\nThree of them.", got)
}

func TestRender_Table(t *testing.T) {
	src := `<table><tr><th>Quantity</th><th>Unit</th></tr><tr><td>force</td><td>N</td></tr></table>`
	got := plain(src, 0)
	assert.Contains(t, got, "Quantity")
	assert.Contains(t, got, "force")
	assert.Contains(t, got, "│")
}

func TestRender_Entities(t *testing.T) {
	assert.Equal(t, "a < b & c", plain("<p>a &lt; b &amp; c</p>", 0))
}

func TestRender_SkipsScript(t *testing.T) {
	assert.Equal(t, "ok", plain("<script>alert(1)</script><p>ok</p>", 0))
}

func TestRender_Math(t *testing.T) {
	r := mathrender.NewRenderer(mathrender.NewUnicodeEngine())
	got := ansi.Strip(Render(`<p>Angle $\theta = 30^\circ$ from <b>vertical</b>.</p>`, 0, r))
	assert.Equal(t, "Angle θ = 30° from vertical.", got)

	// Without an engine the source is kept.
	assert.Contains(t, plain(`<p>$\theta$</p>`, 0), `$\theta$`)
}
