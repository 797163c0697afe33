package markup

import (
	"strings"
)

var attrEscaper = strings.NewReplacer(
	`&`, "&amp;",
	`<`, "&lt;",
	`>`, "&gt;",
	`"`, "&quot;",
	"\t", "&#x9;",
	"\n", "&#xA;",
	"\r", "&#xD;",
)

// EscapeAttr escapes s for use inside a double quoted XML attribute value.
// Whitespace control characters are encoded so attribute normalisation keeps
// them intact.
func EscapeAttr(s string) string {
	return attrEscaper.Replace(s)
}

// Attr is a single name="value" pair. Value holds unescaped text.
type Attr struct {
	Name  string
	Value string
}

// Element is a self closing XML element such as a xacro macro invocation.
type Element struct {
	Name  string
	Attrs []Attr
}

// NewElement starts an element with the given qualified name.
func NewElement(name string) *Element {
	return &Element{Name: name}
}

// Attr appends an attribute and returns the element for chaining.
func (e *Element) Attr(name, value string) *Element {
	e.Attrs = append(e.Attrs, Attr{Name: name, Value: value})
	return e
}

// WriteTo renders the element into b as <name a="v" />.
func (e *Element) WriteTo(b *strings.Builder) {
	b.WriteByte('<')
	b.WriteString(e.Name)
	for _, attr := range e.Attrs {
		b.WriteByte(' ')
		b.WriteString(attr.Name)
		b.WriteString(`="`)
		b.WriteString(EscapeAttr(attr.Value))
		b.WriteByte('"')
	}
	b.WriteString(" />")
}

// String renders the element.
func (e *Element) String() string {
	var b strings.Builder
	e.WriteTo(&b)
	return b.String()
}
