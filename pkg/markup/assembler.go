package markup

import (
	"strings"

	"github.com/goliatone/go-wamvgen/pkg/layout"
)

const (
	defaultTagPrefix = "xacro:"
	defaultIndent    = "  "
)

// Boilerplate is the fixed XML text wrapped around the generated elements.
type Boilerplate struct {
	Top    string
	Bottom string
}

// Option customises an Assembler.
type Option func(*Assembler)

// WithIndent sets the text written before every element.
func WithIndent(indent string) Option {
	return func(a *Assembler) {
		a.indent = indent
	}
}

// WithTagPrefix sets the namespace prefix joined to entry macro names.
func WithTagPrefix(prefix string) Option {
	return func(a *Assembler) {
		a.prefix = prefix
	}
}

// Assembler renders validated layouts into xacro documents. It holds no state
// between calls, so output depends only on its inputs.
type Assembler struct {
	indent string
	prefix string
}

// New constructs an Assembler.
func New(options ...Option) *Assembler {
	a := &Assembler{
		indent: defaultIndent,
		prefix: defaultTagPrefix,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(a)
	}
	return a
}

var defaultAssembler = New()

// Assemble renders src with the default assembler settings.
func Assemble(src *layout.Source, bp Boilerplate) string {
	return defaultAssembler.Assemble(src, bp)
}

// Assemble returns bp.Top, one macro invocation per entry in declaration
// order, then bp.Bottom. The layout must already have passed compliance;
// Assemble does not validate.
func (a *Assembler) Assemble(src *layout.Source, bp Boilerplate) string {
	var b strings.Builder
	b.WriteString(bp.Top)
	for _, entry := range src.Entries() {
		b.WriteString(a.indent)
		a.Element(entry).WriteTo(&b)
		b.WriteByte('\n')
	}
	b.WriteString(bp.Bottom)
	return b.String()
}

// Element builds the macro invocation for one entry. Nested records are
// flattened into scalar attributes named after their leaves.
func (a *Assembler) Element(entry layout.Entry) *Element {
	el := NewElement(a.prefix + entry.Macro)
	for _, attr := range entry.Flatten() {
		el.Attr(attr.Name, attr.Value.Scalar)
	}
	return el
}
