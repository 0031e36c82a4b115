package rules

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"newtype-generator/internal/common"
)

// --- StringOrArray YAML methods ---

// UnmarshalYAML implements custom YAML unmarshaling for StringOrArray.
// Accepts either a single string or an array of strings.
func (s *StringOrArray) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var str string

		if err := node.Decode(&str); err != nil {
			return err
		}

		if str != "" {
			*s = StringOrArray{str}
		} else {
			*s = StringOrArray{}
		}

		return nil

	case yaml.SequenceNode:
		var arr []string

		if err := node.Decode(&arr); err != nil {
			return err
		}

		*s = arr

		return nil

	default:
		return fmt.Errorf("line %d: expected string or array, got %v", node.Line, kindName(node.Kind))
	}
}

// MarshalYAML implements custom YAML marshaling for StringOrArray.
// Outputs a single string if length is 1, otherwise an array.
func (s StringOrArray) MarshalYAML() (any, error) {
	if len(s) == 1 {
		return s[0], nil
	}

	return []string(s), nil
}

// IsEmpty returns true if the array is empty.
func (s StringOrArray) IsEmpty() bool {
	return common.IsEmpty(s)
}

// IsSingle returns true if the array has exactly one element.
func (s StringOrArray) IsSingle() bool {
	return common.IsSingle(s)
}

// --- ChainRule YAML methods ---

// chainRuleFields breaks the UnmarshalYAML recursion.
type chainRuleFields ChainRule

// UnmarshalYAML accepts either a bare list of types or a mapping:
//   - [string, Foo, Bar, Baz]
//   - {types: [Label, Foo, Bar], func: BarFromLabel}
func (c *ChainRule) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		var types StringOrArray

		if err := node.Decode(&types); err != nil {
			return err
		}

		*c = ChainRule{Types: types}

		return nil

	case yaml.MappingNode:
		var fields chainRuleFields

		if err := node.Decode(&fields); err != nil {
			return err
		}

		*c = ChainRule(fields)

		return nil

	default:
		return fmt.Errorf("line %d: chain entry must be a list of types or a mapping, got %v", node.Line, kindName(node.Kind))
	}
}

// MarshalYAML writes the bare list form when no function name is set.
func (c ChainRule) MarshalYAML() (any, error) {
	if c.Func == "" {
		return []string(c.Types), nil
	}

	return chainRuleFields(c), nil
}

func kindName(k yaml.Kind) string {
	switch k {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return common.UnknownStr
	}
}
