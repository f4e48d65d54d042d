// Package loader parses schema and instance documents from JSON or YAML
// into the validator's value model.
package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/goschema/validator/jsontree"
)

// ParseJSON parses a JSON document.
func ParseJSON(data []byte) (any, error) {
	return jsontree.Decode(data)
}

// ParseYAML parses a YAML document, preserving mapping key order.
func ParseYAML(data []byte) (any, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}
	if node.Kind == 0 {
		// Empty document.
		return nil, nil
	}
	return fromYAMLNode(&node)
}

// Parse picks the format from the file name extension: .yaml and .yml parse
// as YAML, everything else as JSON.
func Parse(data []byte, filename string) (any, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return ParseJSON(data)
	}
}

// LoadFile reads and parses one document file.
func LoadFile(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	doc, err := Parse(data, path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

func fromYAMLNode(node *yaml.Node) (any, error) {
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return nil, nil
		}
		return fromYAMLNode(node.Content[0])

	case yaml.MappingNode:
		obj := jsontree.NewObject()
		for i := 0; i+1 < len(node.Content); i += 2 {
			keyNode, valueNode := node.Content[i], node.Content[i+1]
			if keyNode.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("line %d: mapping keys must be scalars", keyNode.Line)
			}
			value, err := fromYAMLNode(valueNode)
			if err != nil {
				return nil, err
			}
			obj.Set(keyNode.Value, value)
		}
		return obj, nil

	case yaml.SequenceNode:
		items := make([]any, 0, len(node.Content))
		for _, child := range node.Content {
			value, err := fromYAMLNode(child)
			if err != nil {
				return nil, err
			}
			items = append(items, value)
		}
		return items, nil

	case yaml.ScalarNode:
		return fromYAMLScalar(node)

	case yaml.AliasNode:
		return fromYAMLNode(node.Alias)

	default:
		return nil, fmt.Errorf("line %d: unsupported YAML node kind %d", node.Line, node.Kind)
	}
}

func fromYAMLScalar(node *yaml.Node) (any, error) {
	switch node.Tag {
	case "!!null":
		return nil, nil
	case "!!bool":
		var b bool
		if err := node.Decode(&b); err != nil {
			return nil, fmt.Errorf("line %d: %w", node.Line, err)
		}
		return b, nil
	case "!!int", "!!float":
		n, err := decimal.NewFromString(node.Value)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid number %q", node.Line, node.Value)
		}
		return n, nil
	default:
		return node.Value, nil
	}
}
