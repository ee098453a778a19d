package mathrender

import (
	"fmt"
	"strings"
	"unicode"
)

// ParseError reports an expression the UnicodeEngine could not typeset.
type ParseError struct {
	Expr string
	Pos  int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("math parse error at %d in %q: %s", e.Pos, e.Expr, e.Msg)
}

// UnicodeEngine typesets a practical subset of LaTeX math as plain
// Unicode for terminals: Greek letters, common operators and relations,
// fractions, roots, accents, text blocks and super/subscripts.
type UnicodeEngine struct{}

// NewUnicodeEngine returns a ready engine. It holds no state.
func NewUnicodeEngine() *UnicodeEngine {
	return &UnicodeEngine{}
}

// RenderToString implements Engine. Unbalanced braces and missing command
// arguments are always errors. Unknown commands are errors only with
// ThrowOnError; otherwise they are kept as written.
func (e *UnicodeEngine) RenderToString(expr string, opts Options) (string, error) {
	p := &mathParser{src: []rune(expr), expr: expr, strict: opts.ThrowOnError}
	out, err := p.parseSeq(false)
	if err != nil {
		return "", err
	}
	return collapseSpaces(out), nil
}

type mathParser struct {
	src    []rune
	expr   string
	pos    int
	strict bool
}

func (p *mathParser) eof() bool  { return p.pos >= len(p.src) }
func (p *mathParser) peek() rune { return p.src[p.pos] }

func (p *mathParser) errorf(format string, args ...any) error {
	return &ParseError{Expr: p.expr, Pos: p.pos, Msg: fmt.Sprintf(format, args...)}
}

func (p *mathParser) skipSpaces() {
	for !p.eof() && unicode.IsSpace(p.peek()) {
		p.pos++
	}
}

// parseSeq parses until the closing brace of the current group, or the
// end of input at top level.
func (p *mathParser) parseSeq(inGroup bool) (string, error) {
	var b strings.Builder
	for !p.eof() {
		r := p.peek()
		switch r {
		case '}':
			if !inGroup {
				return "", p.errorf("unexpected '}'")
			}
			p.pos++
			return b.String(), nil
		case '^', '_':
			p.pos++
			arg, err := p.parseArg()
			if err != nil {
				return "", err
			}
			b.WriteString(script(r, arg))
		default:
			s, err := p.parseAtom()
			if err != nil {
				return "", err
			}
			b.WriteString(s)
		}
	}
	if inGroup {
		return "", p.errorf("missing '}'")
	}
	return b.String(), nil
}

// parseAtom consumes one group, command or character.
func (p *mathParser) parseAtom() (string, error) {
	r := p.peek()
	switch {
	case r == '{':
		p.pos++
		return p.parseSeq(true)
	case r == '\\':
		return p.parseCommand()
	case unicode.IsSpace(r):
		p.skipSpaces()
		return " ", nil
	case r == '-':
		p.pos++
		return "−", nil
	case r == '\'':
		p.pos++
		return "′", nil
	}
	p.pos++
	return string(r), nil
}

// parseArg reads a single command or script argument.
func (p *mathParser) parseArg() (string, error) {
	p.skipSpaces()
	if p.eof() || p.peek() == '}' {
		return "", p.errorf("missing argument")
	}
	return p.parseAtom()
}

// readRawGroup reads a braced group verbatim, for \text and friends.
func (p *mathParser) readRawGroup() (string, error) {
	p.skipSpaces()
	if p.eof() || p.peek() != '{' {
		return "", p.errorf("expected '{'")
	}
	p.pos++
	start, depth := p.pos, 1
	for !p.eof() {
		switch p.peek() {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				s := string(p.src[start:p.pos])
				p.pos++
				return s, nil
			}
		}
		p.pos++
	}
	return "", p.errorf("missing '}'")
}

func (p *mathParser) parseCommand() (string, error) {
	p.pos++ // backslash
	if p.eof() {
		return "", p.errorf("trailing backslash")
	}

	if r := p.peek(); !isASCIILetter(r) {
		p.pos++
		switch r {
		case ',', ':', ';', '>', ' ':
			return " ", nil
		case '!':
			return "", nil
		case '\\':
			return " ", nil
		case '{', '}', '%', '&', '#', '_':
			return string(r), nil
		case '|':
			return "‖", nil
		}
		return p.unknown(string(r))
	}

	start := p.pos
	for !p.eof() && isASCIILetter(p.peek()) {
		p.pos++
	}
	name := string(p.src[start:p.pos])

	switch name {
	case "frac", "dfrac", "tfrac":
		num, err := p.parseArg()
		if err != nil {
			return "", err
		}
		den, err := p.parseArg()
		if err != nil {
			return "", err
		}
		return fraction(num, den), nil

	case "sqrt":
		var index string
		p.skipSpaces()
		if !p.eof() && p.peek() == '[' {
			end := p.pos + 1
			for end < len(p.src) && p.src[end] != ']' {
				end++
			}
			if end >= len(p.src) {
				return "", p.errorf("missing ']'")
			}
			index = strings.TrimSpace(string(p.src[p.pos+1 : end]))
			p.pos = end + 1
		}
		arg, err := p.parseArg()
		if err != nil {
			return "", err
		}
		return root(index, arg), nil

	case "text", "textrm", "textit", "textbf", "textnormal", "mbox":
		return p.readRawGroup()

	case "mathrm", "mathit", "mathbf", "mathsf", "mathcal", "boldsymbol", "operatorname":
		return p.parseArg()

	case "left", "right", "bigl", "bigr", "Bigl", "Bigr", "big", "Big", "bigg", "Bigg":
		p.skipSpaces()
		if p.eof() {
			if name == "left" || name == "right" {
				return "", p.errorf("missing delimiter after \\%s", name)
			}
			return "", nil
		}
		if p.peek() == '.' {
			p.pos++
			return "", nil
		}
		return p.parseAtom()

	case "displaystyle", "textstyle", "limits", "nolimits":
		return "", nil

	case "quad":
		return " ", nil
	case "qquad":
		return "  ", nil
	}

	if mark, ok := accents[name]; ok {
		arg, err := p.parseArg()
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(arg) + mark, nil
	}
	if sym, ok := symbols[name]; ok {
		return sym, nil
	}
	if functions[name] {
		return name, nil
	}
	return p.unknown(name)
}

func (p *mathParser) unknown(name string) (string, error) {
	if p.strict {
		return "", p.errorf("unknown command \\%s", name)
	}
	return `\` + name, nil
}

func isASCIILetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// compound reports whether s needs parentheses to read unambiguously
// next to a fraction bar or radical.
func compound(s string) bool {
	return strings.ContainsAny(s, " +−-±∓=<>≤≥·×/,")
}

func fraction(num, den string) string {
	num, den = strings.TrimSpace(num), strings.TrimSpace(den)
	if v, ok := vulgarFractions[num+"/"+den]; ok {
		return v
	}
	if compound(num) {
		num = "(" + num + ")"
	}
	if compound(den) {
		den = "(" + den + ")"
	}
	return num + "/" + den
}

func root(index, arg string) string {
	arg = strings.TrimSpace(arg)
	sign := "√"
	switch index {
	case "":
	case "3":
		sign = "∛"
	case "4":
		sign = "∜"
	default:
		sign = script('^', index) + "√"
	}
	if len([]rune(arg)) > 1 && !allDigits(arg) {
		arg = "(" + arg + ")"
	}
	return sign + arg
}

func allDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) && r != '.' {
			return false
		}
	}
	return true
}

// script renders a superscript or subscript, using Unicode script
// characters when every rune has one and a caret/underscore otherwise.
func script(kind rune, arg string) string {
	arg = strings.TrimSpace(arg)
	table := subscripts
	if kind == '^' {
		if arg == "∘" {
			return "°"
		}
		table = superscripts
	}

	var b strings.Builder
	converted := true
	for _, r := range arg {
		s, ok := table[r]
		if !ok {
			converted = false
			break
		}
		b.WriteRune(s)
	}
	if converted && arg != "" {
		return b.String()
	}
	if compound(arg) {
		return string(kind) + "(" + arg + ")"
	}
	return string(kind) + arg
}

// collapseSpaces squeezes runs of ASCII spaces and trims the ends.
func collapseSpaces(s string) string {
	var b strings.Builder
	space := false
	for _, r := range s {
		if r == ' ' {
			space = true
			continue
		}
		if space && b.Len() > 0 {
			b.WriteByte(' ')
		}
		space = false
		b.WriteRune(r)
	}
	return b.String()
}
