// Package richtext turns the small HTML subset used by notes and
// solutions into wrapped, styled terminal text.
//
// Supported: p, div, br, h1-h4, ul, ol, li, strong, b, em, i, table
// (tr, th, td). Other tags are dropped and their text kept. Math spans
// are rendered per text node, so a span must not straddle a tag.
package richtext

import (
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/charmbracelet/x/ansi"
	"golang.org/x/net/html"

	"github.com/abhisek/fmaprep/internal/mathrender"
	"github.com/abhisek/fmaprep/internal/ui/theme"
)

// Render converts src to terminal text wrapped at width. A width of zero
// or less disables wrapping. math may be nil.
func Render(src string, width int, math *mathrender.Renderer) string {
	w := &writer{width: width, math: math}
	z := html.NewTokenizer(strings.NewReader(src))
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			w.flush()
			return strings.Join(w.blocks, "")
		case html.TextToken:
			if w.skip == 0 {
				w.text(string(z.Text()))
			}
		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			w.open(string(name), tt == html.SelfClosingTagToken)
		case html.EndTagToken:
			name, _ := z.TagName()
			w.close(string(name))
		}
	}
}

type list struct {
	ordered bool
	n       int
}

type grid struct {
	headers []string
	rows    [][]string
	row     []string
	isHead  bool
}

type writer struct {
	width int
	math  *mathrender.Renderer

	blocks []string
	tight  bool // last block was a list item

	buf          strings.Builder
	lineStart    bool
	spacePending bool
	prefix       string
	indent       int
	item         bool

	bold, italic, heading int
	skip                  int
	lists                 []list
	grid                  *grid
	cell                  *strings.Builder
}

func (w *writer) sink() *strings.Builder {
	if w.cell != nil {
		return w.cell
	}
	return &w.buf
}

func (w *writer) style() lipgloss.Style {
	s := theme.Body
	if w.heading > 0 {
		s = theme.Heading
	}
	if w.bold > 0 {
		s = s.Bold(true)
	}
	if w.italic > 0 {
		s = s.Italic(true)
	}
	return s
}

func (w *writer) text(raw string) {
	t := collapse(raw)
	if t == "" {
		return
	}
	lead := t[0] == ' '
	trail := t[len(t)-1] == ' '
	t = strings.TrimSpace(t)

	out := w.sink()
	empty := out.Len() == 0 || w.lineStart
	if t == "" {
		if !empty {
			w.spacePending = true
		}
		return
	}
	if (lead || w.spacePending) && !empty {
		out.WriteByte(' ')
	}
	if w.cell != nil {
		// Cells are styled by the table.
		out.WriteString(w.math.Render(t))
	} else {
		out.WriteString(w.style().Render(w.math.Render(t)))
	}
	w.lineStart = false
	w.spacePending = trail
}

func (w *writer) open(tag string, selfClosing bool) {
	switch tag {
	case "p", "div":
		w.flush()
	case "br":
		if w.cell != nil {
			w.cell.WriteByte(' ')
			return
		}
		w.buf.WriteByte('\n')
		w.lineStart = true
		w.spacePending = false
	case "h1", "h2", "h3", "h4", "h5", "h6":
		w.flush()
		w.heading++
	case "strong", "b":
		w.bold++
	case "em", "i":
		w.italic++
	case "ul", "ol":
		w.flush()
		w.lists = append(w.lists, list{ordered: tag == "ol"})
	case "li":
		w.flush()
		w.startItem()
	case "table":
		w.flush()
		w.grid = &grid{}
	case "tr":
		if w.grid != nil {
			w.grid.row = nil
			w.grid.isHead = false
		}
	case "th", "td":
		if w.grid != nil {
			w.cell = &strings.Builder{}
			if tag == "th" {
				w.grid.isHead = true
			}
		}
	case "script", "style":
		if !selfClosing {
			w.skip++
		}
	}
}

func (w *writer) close(tag string) {
	switch tag {
	case "p", "div":
		w.flush()
	case "h1", "h2", "h3", "h4", "h5", "h6":
		w.flush()
		if w.heading > 0 {
			w.heading--
		}
	case "strong", "b":
		if w.bold > 0 {
			w.bold--
		}
	case "em", "i":
		if w.italic > 0 {
			w.italic--
		}
	case "li":
		w.flush()
	case "ul", "ol":
		w.flush()
		if len(w.lists) > 0 {
			w.lists = w.lists[:len(w.lists)-1]
		}
	case "th", "td":
		if w.grid != nil && w.cell != nil {
			w.grid.row = append(w.grid.row, strings.TrimSpace(w.cell.String()))
			w.cell = nil
		}
	case "tr":
		if g := w.grid; g != nil && len(g.row) > 0 {
			if g.isHead && g.headers == nil && len(g.rows) == 0 {
				g.headers = g.row
			} else {
				g.rows = append(g.rows, g.row)
			}
			g.row = nil
		}
	case "table":
		w.flushTable()
	case "script", "style":
		if w.skip > 0 {
			w.skip--
		}
	}
}

func (w *writer) startItem() {
	depth := len(w.lists)
	if depth == 0 {
		w.lists = append(w.lists, list{})
		depth = 1
	}
	l := &w.lists[depth-1]
	l.n++
	marker := "• "
	if l.ordered {
		marker = strconv.Itoa(l.n) + ". "
	}
	pad := strings.Repeat("  ", depth-1)
	w.prefix = pad + marker
	w.indent = lipgloss.Width(w.prefix)
	w.item = true
}

// flush wraps the pending paragraph or list item into a block.
func (w *writer) flush() {
	body := strings.TrimRight(w.buf.String(), " \n")
	w.buf.Reset()
	w.lineStart = false
	w.spacePending = false
	prefix, indent, item := w.prefix, w.indent, w.item
	w.prefix, w.indent, w.item = "", 0, false
	if body == "" {
		return
	}

	if w.width > indent {
		body = ansi.Wrap(body, w.width-indent, "")
	}
	if indent > 0 {
		lines := strings.Split(body, "\n")
		pad := strings.Repeat(" ", indent)
		for i := range lines {
			if i == 0 {
				lines[i] = theme.Muted.Render(prefix) + lines[i]
			} else {
				lines[i] = pad + lines[i]
			}
		}
		body = strings.Join(lines, "\n")
	}
	w.push(body, item)
}

func (w *writer) push(block string, item bool) {
	if len(w.blocks) > 0 {
		if item && w.tight {
			w.blocks = append(w.blocks, "\n")
		} else {
			w.blocks = append(w.blocks, "\n\n")
		}
	}
	w.blocks = append(w.blocks, block)
	w.tight = item
}

func (w *writer) flushTable() {
	g := w.grid
	w.grid, w.cell = nil, nil
	if g == nil || (len(g.headers) == 0 && len(g.rows) == 0) {
		return
	}

	build := func() *table.Table {
		t := table.New().
			Border(lipgloss.RoundedBorder()).
			BorderStyle(lipgloss.NewStyle().Foreground(theme.Border)).
			StyleFunc(func(row, _ int) lipgloss.Style {
				if row == table.HeaderRow {
					return theme.Heading.Padding(0, 1)
				}
				return theme.Body.Padding(0, 1)
			}).
			Rows(g.rows...)
		if len(g.headers) > 0 {
			t = t.Headers(g.headers...)
		}
		return t
	}

	out := build().String()
	if w.width > 0 && lipgloss.Width(out) > w.width {
		out = build().Width(w.width).String()
	}
	w.push(out, false)
}

// collapse folds every whitespace run into a single space.
func collapse(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	space := false
	for _, r := range s {
		switch r {
		case ' ', '\t', '\n', '\r', '\f':
			if !space {
				b.WriteByte(' ')
				space = true
			}
		default:
			b.WriteRune(r)
			space = false
		}
	}
	return b.String()
}
