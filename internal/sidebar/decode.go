package sidebar

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrInvalidSidebarFile is wrapped by every decoding failure.
var ErrInvalidSidebarFile = errors.New("invalid sidebar file")

// LoadFile reads and decodes a sidebar file. YAML and JSON are both accepted.
func LoadFile(path string) (Tree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Tree{}, fmt.Errorf("read sidebar file: %w", err)
	}
	return Decode(filepath.Base(path), data)
}

// Decode parses sidebar data. name is used in diagnostics and schema ids only.
//
// The document is a mapping from sidebar name to a list of items. An item is a
// document id string, a {type: doc} object, a {type: category} object, or the
// shorthand {"Label": [items...]} for a category with default settings.
func Decode(name string, data []byte) (Tree, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Tree{}, nil
	}
	if err := checkSchema(name, data); err != nil {
		return Tree{}, err
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Tree{}, fmt.Errorf("%w: %s: %w", ErrInvalidSidebarFile, name, err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return Tree{}, nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return Tree{}, fmt.Errorf("%w: %s: line %d: expected a mapping of sidebar names", ErrInvalidSidebarFile, name, root.Line)
	}

	tree := Tree{Sidebars: make([]Sidebar, 0, len(root.Content)/2)}
	seen := make(map[string]bool)
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]
		if seen[key.Value] {
			return Tree{}, fmt.Errorf("%w: %s: line %d: sidebar %q defined twice", ErrInvalidSidebarFile, name, key.Line, key.Value)
		}
		seen[key.Value] = true

		var items Items
		if err := value.Decode(&items); err != nil {
			return Tree{}, fmt.Errorf("%w: %s: sidebar %q: %w", ErrInvalidSidebarFile, name, key.Value, err)
		}
		tree.Sidebars = append(tree.Sidebars, Sidebar{Name: key.Value, Items: []Node(items)})
	}
	return tree, nil
}

// Items is a node list that knows how to decode itself from YAML.
type Items []Node

type rawLink struct {
	Type        string `yaml:"type"`
	ID          string `yaml:"id"`
	Slug        string `yaml:"slug"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

type rawItem struct {
	Type        string   `yaml:"type"`
	ID          string   `yaml:"id"`
	Label       string   `yaml:"label"`
	Collapsed   *bool    `yaml:"collapsed"`
	Collapsible *bool    `yaml:"collapsible"`
	Description string   `yaml:"description"`
	Link        *rawLink `yaml:"link"`
	Items       Items    `yaml:"items"`
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (items *Items) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.SequenceNode {
		return fmt.Errorf("line %d: expected a list of items", value.Line)
	}
	out := make(Items, 0, len(value.Content))
	for _, elem := range value.Content {
		n, err := decodeItem(elem)
		if err != nil {
			return err
		}
		out = append(out, n)
	}
	*items = out
	return nil
}

func decodeItem(elem *yaml.Node) (Node, error) {
	switch elem.Kind {
	case yaml.ScalarNode:
		if elem.Value == "" {
			return nil, fmt.Errorf("line %d: empty document id", elem.Line)
		}
		return Doc{ID: elem.Value}, nil
	case yaml.MappingNode:
		if !hasKey(elem, "type") {
			return decodeShorthand(elem)
		}
		var raw rawItem
		if err := elem.Decode(&raw); err != nil {
			return nil, err
		}
		return raw.node(elem.Line)
	default:
		return nil, fmt.Errorf("line %d: unsupported sidebar item", elem.Line)
	}
}

func (raw rawItem) node(line int) (Node, error) {
	switch raw.Type {
	case "doc":
		if raw.ID == "" {
			return nil, fmt.Errorf("line %d: doc item without id", line)
		}
		return Doc{ID: raw.ID, Label: raw.Label}, nil
	case "category":
		if raw.Label == "" {
			return nil, fmt.Errorf("line %d: category without label", line)
		}
		c := NewCategory(raw.Label, []Node(raw.Items)...)
		if c.Items == nil {
			c.Items = []Node{}
		}
		if raw.Collapsed != nil {
			c.Collapsed = *raw.Collapsed
		}
		if raw.Collapsible != nil {
			c.Collapsible = *raw.Collapsible
		}
		c.Description = raw.Description
		if raw.Link != nil {
			link, err := raw.Link.link(line)
			if err != nil {
				return nil, err
			}
			c.Link = link
		}
		return c, nil
	default:
		return nil, fmt.Errorf("line %d: unknown item type %q", line, raw.Type)
	}
}

func (l rawLink) link(line int) (*CategoryLink, error) {
	switch LinkType(l.Type) {
	case LinkGeneratedIndex:
		return &CategoryLink{Type: LinkGeneratedIndex, Slug: l.Slug, Title: l.Title, Description: l.Description}, nil
	case LinkDoc:
		if l.ID == "" {
			return nil, fmt.Errorf("line %d: doc link without id", line)
		}
		return &CategoryLink{Type: LinkDoc, DocID: l.ID}, nil
	default:
		return nil, fmt.Errorf("line %d: unknown category link type %q", line, l.Type)
	}
}

func decodeShorthand(elem *yaml.Node) (Node, error) {
	if len(elem.Content) != 2 {
		return nil, fmt.Errorf("line %d: shorthand category must have exactly one label", elem.Line)
	}
	var items Items
	if err := elem.Content[1].Decode(&items); err != nil {
		return nil, err
	}
	return NewCategory(elem.Content[0].Value, []Node(items)...), nil
}

func hasKey(m *yaml.Node, key string) bool {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return true
		}
	}
	return false
}
