// Package mathrender replaces $...$ and $$...$$ math spans in text with
// typeset output from a pluggable engine.
package mathrender

import (
	"fmt"
	"regexp"
)

// Options controls a single engine call.
type Options struct {
	// DisplayMode requests block layout. Inline layout when false.
	DisplayMode bool

	// ThrowOnError makes the engine return an error for expressions it
	// cannot fully understand instead of rendering them loosely.
	ThrowOnError bool
}

// Engine typesets one math expression (without delimiters).
type Engine interface {
	RenderToString(expr string, opts Options) (string, error)
}

var (
	blockSpan  = regexp.MustCompile(`\$\$([^$]+)\$\$`)
	inlineSpan = regexp.MustCompile(`\$([^$]+)\$`)
)

// Renderer rewrites math spans in text. The zero value has no engine and
// returns text unchanged.
type Renderer struct {
	engine       Engine
	throwOnError bool
}

// RendererOption configures a Renderer.
type RendererOption func(*Renderer)

// WithThrowOnError sets the ThrowOnError flag passed to the engine.
func WithThrowOnError(v bool) RendererOption {
	return func(r *Renderer) { r.throwOnError = v }
}

// NewRenderer creates a Renderer. engine may be nil; it can be supplied
// later with SetEngine once it has loaded.
func NewRenderer(engine Engine, opts ...RendererOption) *Renderer {
	r := &Renderer{engine: engine}
	for _, o := range opts {
		o(r)
	}
	return r
}

// SetEngine installs or replaces the engine. Not safe for use concurrently
// with Render; call it from the goroutine that renders.
func (r *Renderer) SetEngine(e Engine) {
	r.engine = e
}

// Ready reports whether an engine is installed.
func (r *Renderer) Ready() bool {
	return r != nil && r.engine != nil
}

// Render replaces block spans first, then inline spans. A span the engine
// fails on is left exactly as written. Without an engine the text is
// returned unchanged, delimiters included.
func (r *Renderer) Render(text string) string {
	if !r.Ready() {
		return text
	}
	text = r.replace(blockSpan, text, 2, true)
	return r.replace(inlineSpan, text, 1, false)
}

// RenderExpr typesets a bare expression such as a formulary equation.
// Falls back to the expression itself on failure.
func (r *Renderer) RenderExpr(expr string) string {
	if !r.Ready() {
		return expr
	}
	if out, ok := r.call(expr, false); ok {
		return out
	}
	return expr
}

func (r *Renderer) replace(re *regexp.Regexp, text string, delim int, display bool) string {
	return re.ReplaceAllStringFunc(text, func(match string) string {
		out, ok := r.call(match[delim:len(match)-delim], display)
		if !ok {
			return match
		}
		return out
	})
}

// call invokes the engine, converting errors and panics into ok=false.
func (r *Renderer) call(expr string, display bool) (out string, ok bool) {
	defer func() {
		if rec := recover(); rec != nil {
			out, ok = "", false
		}
	}()
	res, err := r.engine.RenderToString(expr, Options{
		DisplayMode:  display,
		ThrowOnError: r.throwOnError,
	})
	if err != nil {
		return "", false
	}
	return res, true
}

// Engine names accepted by Load.
const (
	EngineUnicode = "unicode"
	EngineNone    = "none"
)

// Load constructs the named engine. EngineNone (or "") yields a nil
// engine, which makes every Renderer pass text through untouched.
func Load(name string) (Engine, error) {
	switch name {
	case EngineUnicode:
		return NewUnicodeEngine(), nil
	case EngineNone, "":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown math engine %q", name)
	}
}
