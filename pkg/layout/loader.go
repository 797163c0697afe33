package layout

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// identityAttributes are tried in order to derive an entry key.
var identityAttributes = []string{"name", "prefix"}

// Loader resolves a layout identifier into a Source.
type Loader interface {
	Load(ctx context.Context, id string) (*Source, error)
}

// LoaderOption customises a FileLoader.
type LoaderOption func(*FileLoader)

// WithFS reads layouts from fsys instead of the operating system.
func WithFS(fsys fs.FS) LoaderOption {
	return func(l *FileLoader) {
		l.fsys = fsys
	}
}

// FileLoader reads YAML layouts from disk or from an fs.FS.
type FileLoader struct {
	fsys fs.FS
}

var _ Loader = (*FileLoader)(nil)

// NewFileLoader constructs a FileLoader.
func NewFileLoader(options ...LoaderOption) *FileLoader {
	l := &FileLoader{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(l)
	}
	return l
}

// Load reads and parses the layout named by id.
func (l *FileLoader) Load(ctx context.Context, id string) (*Source, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("layout: identifier is required")
	}

	var (
		data []byte
		err  error
	)
	if l.fsys != nil {
		data, err = fs.ReadFile(l.fsys, id)
	} else {
		data, err = os.ReadFile(id)
	}
	if err != nil {
		return nil, fmt.Errorf("layout: read %s: %w", id, err)
	}
	return Parse(id, data)
}

// LoadFile is a convenience wrapper around FileLoader for on-disk layouts.
func LoadFile(path string) (*Source, error) {
	return NewFileLoader().Load(context.Background(), path)
}

// Parse decodes a VRX style layout: a mapping from macro name to a list of
// instances, each instance a mapping of attributes.
//
//	engine:
//	  - prefix: left
//	    position: "-2.37 1.03 0.32"
//
// Mapping order is preserved. An instance without a name or prefix receives
// the synthetic key "<macro>[<n>]" so compliance checks can report it.
func Parse(id string, data []byte) (*Source, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, malformedDocument(id, fmt.Sprintf("invalid YAML: %v", err))
	}

	root := &doc
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return NewSource(id)
		}
		root = root.Content[0]
	}
	root = resolveAlias(root)
	if root.Kind == 0 || isNull(root) {
		return NewSource(id)
	}
	if root.Kind != yaml.MappingNode {
		return nil, malformedDocument(id, fmt.Sprintf("line %d: top level must map macro names to instance lists", root.Line))
	}

	var entries []Entry
	for i := 0; i+1 < len(root.Content); i += 2 {
		keyNode, valueNode := root.Content[i], resolveAlias(root.Content[i+1])
		macro := strings.TrimSpace(keyNode.Value)
		if macro == "" {
			return nil, malformedDocument(id, fmt.Sprintf("line %d: empty macro name", keyNode.Line))
		}

		var instances []*yaml.Node
		switch valueNode.Kind {
		case yaml.SequenceNode:
			instances = valueNode.Content
		case yaml.MappingNode:
			instances = []*yaml.Node{valueNode}
		case yaml.ScalarNode:
			if isNull(valueNode) {
				continue
			}
			return nil, malformedDocument(id, fmt.Sprintf("line %d: macro %q must hold a list of instances", valueNode.Line, macro))
		default:
			return nil, malformedDocument(id, fmt.Sprintf("line %d: macro %q must hold a list of instances", valueNode.Line, macro))
		}

		for n, raw := range instances {
			item := resolveAlias(raw)
			if item.Kind != yaml.MappingNode {
				return nil, malformedDocument(id, fmt.Sprintf("line %d: %s instance %d must be a mapping", item.Line, macro, n))
			}
			attrs, err := decodeRecord(id, item)
			if err != nil {
				return nil, err
			}
			entries = append(entries, Entry{
				Key:        entryKey(macro, n, attrs),
				Macro:      macro,
				Attributes: attrs,
			})
		}
	}

	return NewSource(id, entries...)
}

func entryKey(macro string, n int, attrs []Attribute) string {
	for _, name := range identityAttributes {
		for _, attr := range attrs {
			if attr.Name != name || attr.Value.IsRecord() {
				continue
			}
			if key := strings.TrimSpace(attr.Value.Scalar); key != "" {
				return key
			}
		}
	}
	return fmt.Sprintf("%s[%d]", macro, n)
}

func decodeRecord(id string, node *yaml.Node) ([]Attribute, error) {
	attrs := make([]Attribute, 0, len(node.Content)/2)
	seen := make(map[string]struct{}, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valueNode := node.Content[i], node.Content[i+1]
		name := strings.TrimSpace(keyNode.Value)
		if name == "" {
			return nil, malformedDocument(id, fmt.Sprintf("line %d: empty attribute name", keyNode.Line))
		}
		if _, exists := seen[name]; exists {
			return nil, malformedDocument(id, fmt.Sprintf("line %d: attribute %q declared twice", keyNode.Line, name))
		}
		seen[name] = struct{}{}

		value, err := decodeValue(id, valueNode)
		if err != nil {
			return nil, err
		}
		attrs = append(attrs, Attribute{Name: name, Value: value})
	}
	return attrs, nil
}

func decodeValue(id string, node *yaml.Node) (Value, error) {
	node = resolveAlias(node)
	switch node.Kind {
	case yaml.ScalarNode:
		return scalarValue(node), nil
	case yaml.MappingNode:
		attrs, err := decodeRecord(id, node)
		if err != nil {
			return Value{}, err
		}
		return Value{Type: TypeRecord, Record: attrs}, nil
	case yaml.SequenceNode:
		// Lists of scalars collapse to the space separated vectors xacro expects.
		parts := make([]string, 0, len(node.Content))
		for _, child := range node.Content {
			child = resolveAlias(child)
			if child.Kind != yaml.ScalarNode {
				return Value{}, malformedDocument(id, fmt.Sprintf("line %d: list values must be scalars", child.Line))
			}
			parts = append(parts, child.Value)
		}
		return String(strings.Join(parts, " ")), nil
	default:
		return Value{}, malformedDocument(id, fmt.Sprintf("line %d: unsupported value", node.Line))
	}
}

func scalarValue(node *yaml.Node) Value {
	switch node.ShortTag() {
	case "!!int", "!!float":
		return Number(node.Value)
	case "!!bool":
		return Value{Type: TypeBool, Scalar: node.Value}
	case "!!null":
		return Value{Type: TypeNull, Scalar: ""}
	default:
		return String(node.Value)
	}
}

func resolveAlias(node *yaml.Node) *yaml.Node {
	for node != nil && node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	return node
}

func isNull(node *yaml.Node) bool {
	return node.Kind == yaml.ScalarNode && node.ShortTag() == "!!null"
}

func malformedDocument(id, detail string) error {
	return &ConfigurationError{
		Kind:   KindMalformedDocument,
		Source: id,
		Detail: detail,
	}
}
