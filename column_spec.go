package tabler

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

// Call is one declarative configuration step: a method name with the "()"
// suffix and its positional arguments.
type Call struct {
	Method string
	Args   []any
}

type commandParser func(args []any) (Command, error)

var commandParsers = map[string]commandParser{
	"label":             stringCommand(func(s string) Command { return SetLabel(s) }),
	"name":              stringCommand(func(s string) Command { return SetName(s) }),
	"visible":           boolCommand(func(b bool) Command { return SetVisible(b) }),
	"emptyCell":         stringCommand(func(s string) Command { return SetEmptyCell(s) }),
	"footer":            stringCommand(func(s string) Command { return SetFooter(s) }),
	"footerAttributes":  attributesCommand(func(a Attributes) Command { return SetFooterAttributes{a} }),
	"labelAttributes":   attributesCommand(func(a Attributes) Command { return SetLabelAttributes{a} }),
	"attributes":        attributesCommand(func(a Attributes) Command { return SetAttributes{a} }),
	"class":             stringCommand(func(s string) Command { return AddClass(s) }),
	"labelClass":        stringCommand(func(s string) Command { return AddLabelClass(s) }),
	"value":             parseValue,
	"valueTemplate":     stringCommand(func(s string) Command { return SetValueTemplate(s) }),
	"dataLabel":         stringCommand(func(s string) Command { return SetDataLabel(s) }),
	"encode":            boolCommand(func(b bool) Command { return SetEncode(b) }),
	"truncate":          parseTruncate,
	"content":           stringCommand(func(s string) Command { return SetContent(s) }),
	"contentClass":      stringCommand(func(s string) Command { return SetContentClass(s) }),
	"contentAttributes": attributesCommand(func(a Attributes) Command { return SetContentAttributes{a} }),
	"href":              stringCommand(func(s string) Command { return SetHref(s) }),
	"type":              stringCommand(func(s string) Command { return SetType(s) }),
	"disabled":          boolCommand(func(b bool) Command { return SetDisabled(b) }),
	"actions":           parseActions,
	"primaryKey":        stringCommand(func(s string) Command { return SetPrimaryKey(s) }),
	"urlPath":           stringCommand(func(s string) Command { return SetURLPath(s) }),
}

// Methods returns the declarative method names understood by [ParseCall],
// sorted.
func Methods() []string {
	names := make([]string, 0, len(commandParsers))
	for name := range commandParsers {
		names = append(names, name+"()")
	}
	sort.Strings(names)
	return names
}

// ParseCall converts a declarative call into a [Command]. Method names must
// carry the "()" suffix.
func ParseCall(call Call) (Command, error) {
	name, ok := strings.CutSuffix(call.Method, "()")
	if !ok {
		return nil, fmt.Errorf("%w: method %q must end with ()", ErrInvalidSpec, call.Method)
	}
	parse, ok := commandParsers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCommand, call.Method)
	}
	cmd, err := parse(call.Args)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", call.Method, err)
	}
	return cmd, nil
}

// ParseCalls converts calls in order, stopping at the first failure.
func ParseCalls(calls ...Call) ([]Command, error) {
	cmds := make([]Command, 0, len(calls))
	for _, call := range calls {
		cmd, err := ParseCall(call)
		if err != nil {
			return nil, err
		}
		cmds = append(cmds, cmd)
	}
	return cmds, nil
}

// NewColumn returns an unconfigured column of the given kind: "column" (or
// ""), "button" or "crud".
func NewColumn(kind string) (Column, error) {
	switch kind {
	case "", "column", "data":
		return NewDataColumn(), nil
	case "button":
		return NewButtonColumn(), nil
	case "crud":
		return NewCrudColumn(), nil
	}
	return nil, fmt.Errorf("%w: unknown column type %q", ErrInvalidSpec, kind)
}

// BuildColumn creates a column of the given kind, names it key and applies
// calls.
func BuildColumn(key, kind string, calls ...Call) (KeyedColumn, error) {
	col, err := NewColumn(kind)
	if err != nil {
		return KeyedColumn{}, err
	}
	cmds, err := ParseCalls(calls...)
	if err != nil {
		return KeyedColumn{}, err
	}
	col, err = Apply(col, append([]Command{SetName(key)}, cmds...)...)
	if err != nil {
		return KeyedColumn{}, err
	}
	return KeyedColumn{Key: key, Column: col}, nil
}

// LoadColumnSpecs reads a YAML list of column specs:
//
//	- key: id
//	  calls:
//	    label(): [ID]
//	    class(): [text-right]
//	- key: actions
//	  type: crud
//	  calls:
//	    urlPath(): [/users]
//
// Calls are applied in document order. The column name defaults to the key.
func LoadColumnSpecs(r io.Reader) ([]KeyedColumn, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %s", ErrInvalidSpec, err)
	}
	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	if root.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("%w: expected a list of columns at line %d", ErrInvalidSpec, root.Line)
	}

	columns := make([]KeyedColumn, 0, len(root.Content))
	seen := make(map[string]bool, len(root.Content))
	for _, item := range root.Content {
		col, err := columnFromNode(item)
		if err != nil {
			return nil, err
		}
		if seen[col.Key] {
			return nil, fmt.Errorf("%w: duplicate column %q at line %d", ErrInvalidSpec, col.Key, item.Line)
		}
		seen[col.Key] = true
		columns = append(columns, col)
	}
	return columns, nil
}

func columnFromNode(node *yaml.Node) (KeyedColumn, error) {
	if node.Kind != yaml.MappingNode {
		return KeyedColumn{}, fmt.Errorf("%w: column at line %d is not a mapping", ErrInvalidSpec, node.Line)
	}
	var (
		key, kind string
		calls     []Call
	)
	for i := 0; i+1 < len(node.Content); i += 2 {
		k, v := node.Content[i], node.Content[i+1]
		switch k.Value {
		case "key":
			key = v.Value
		case "type":
			kind = v.Value
		case "calls":
			var err error
			if calls, err = callsFromNode(v); err != nil {
				return KeyedColumn{}, err
			}
		default:
			return KeyedColumn{}, fmt.Errorf("%w: unknown field %q at line %d", ErrInvalidSpec, k.Value, k.Line)
		}
	}
	if key == "" {
		return KeyedColumn{}, fmt.Errorf("%w: column at line %d has no key", ErrInvalidSpec, node.Line)
	}
	col, err := BuildColumn(key, kind, calls...)
	if err != nil {
		return KeyedColumn{}, fmt.Errorf("column %q: %w", key, err)
	}
	return col, nil
}

func callsFromNode(node *yaml.Node) ([]Call, error) {
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: calls at line %d must be a mapping", ErrInvalidSpec, node.Line)
	}
	calls := make([]Call, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		var raw any
		if err := node.Content[i+1].Decode(&raw); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidSpec, err)
		}
		var args []any
		switch v := raw.(type) {
		case nil:
		case []any:
			args = v
		default:
			args = []any{v}
		}
		calls = append(calls, Call{Method: node.Content[i].Value, Args: args})
	}
	return calls, nil
}

func arity(args []any, n int) error {
	if len(args) != n {
		return fmt.Errorf("%w: want %d argument(s), got %d", ErrInvalidSpec, n, len(args))
	}
	return nil
}

func stringCommand(fn func(string) Command) commandParser {
	return func(args []any) (Command, error) {
		if err := arity(args, 1); err != nil {
			return nil, err
		}
		s, err := cast.ToStringE(args[0])
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidSpec, err)
		}
		return fn(s), nil
	}
}

func boolCommand(fn func(bool) Command) commandParser {
	return func(args []any) (Command, error) {
		if len(args) == 0 {
			return fn(true), nil
		}
		if err := arity(args, 1); err != nil {
			return nil, err
		}
		b, err := cast.ToBoolE(args[0])
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidSpec, err)
		}
		return fn(b), nil
	}
}

func attributesCommand(fn func(Attributes) Command) commandParser {
	return func(args []any) (Command, error) {
		if err := arity(args, 1); err != nil {
			return nil, err
		}
		m, err := cast.ToStringMapE(args[0])
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidSpec, err)
		}
		return fn(AttrsFromMap(m)), nil
	}
}

func parseValue(args []any) (Command, error) {
	if err := arity(args, 1); err != nil {
		return nil, err
	}
	return SetValue{Value: args[0]}, nil
}

func parseTruncate(args []any) (Command, error) {
	if err := arity(args, 1); err != nil {
		return nil, err
	}
	n, err := cast.ToIntE(args[0])
	if err != nil || n < 0 {
		return nil, fmt.Errorf("%w: truncate width %v", ErrInvalidSpec, args[0])
	}
	return SetTruncate(n), nil
}

// parseActions accepts action names or {name, route} mappings.
func parseActions(args []any) (Command, error) {
	actions := make([]Action, 0, len(args))
	for _, arg := range args {
		if m, ok := arg.(map[string]any); ok {
			name, err := cast.ToStringE(m["name"])
			if err != nil || name == "" {
				return nil, fmt.Errorf("%w: action needs a name", ErrInvalidSpec)
			}
			actions = append(actions, Action{Name: name, Route: cast.ToString(m["route"])})
			continue
		}
		name, err := cast.ToStringE(arg)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidSpec, err)
		}
		actions = append(actions, Action{Name: name})
	}
	return SetActions(actions), nil
}
