package tabler

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// ReadYAML loads a YAML (or JSON) sequence of mappings into memory. Field
// order follows the key order of each mapping.
func ReadYAML(r io.Reader) (SliceSource, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return SliceSource{}, nil
		}
		return SliceSource{}, fmt.Errorf("failed to decode rows: %w", err)
	}
	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	if root.Kind != yaml.SequenceNode {
		return SliceSource{}, fmt.Errorf("%w: expected a sequence of mappings at line %d", ErrUnsupportedSource, root.Line)
	}
	rows := make([]Row, 0, len(root.Content))
	for i, item := range root.Content {
		if item.Kind != yaml.MappingNode {
			return SliceSource{}, fmt.Errorf("%w: row %d is not a mapping", ErrUnsupportedSource, i)
		}
		record, err := recordFromNode(item)
		if err != nil {
			return SliceSource{}, fmt.Errorf("row %d: %w", i, err)
		}
		rows = append(rows, record)
	}
	return SliceSource{rows: rows}, nil
}

func recordFromNode(node *yaml.Node) (Record, error) {
	names := make([]string, 0, len(node.Content)/2)
	values := make([]any, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		var v any
		if err := node.Content[i+1].Decode(&v); err != nil {
			return Record{}, fmt.Errorf("field %q: %w", node.Content[i].Value, err)
		}
		names = append(names, node.Content[i].Value)
		values = append(values, v)
	}
	return RecordOf(names, values), nil
}
