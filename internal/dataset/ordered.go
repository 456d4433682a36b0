package dataset

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"iter"
	"slices"

	"gopkg.in/yaml.v3"
)

// Ordered is a string-keyed mapping that remembers the order its keys were
// declared in. Lists are rendered in that order.
type Ordered[T any] struct {
	keys   []string
	values map[string]T
}

func (o Ordered[T]) Len() int { return len(o.keys) }

// Keys returns the keys in declaration order.
func (o Ordered[T]) Keys() []string { return slices.Clone(o.keys) }

// cloner is implemented by the dataset's node types so that values handed
// out of an Ordered never share slices with the loaded tree.
type cloner[T any] interface {
	clone() T
}

func cloneValue[T any](v T) T {
	if c, ok := any(v).(cloner[T]); ok {
		return c.clone()
	}
	return v
}

// Get returns a copy of the value stored under key.
func (o Ordered[T]) Get(key string) (T, bool) {
	v, ok := o.values[key]
	if !ok {
		return v, false
	}
	return cloneValue(v), true
}

// All iterates copies of the entries in declaration order.
func (o Ordered[T]) All() iter.Seq2[string, T] {
	return func(yield func(string, T) bool) {
		for _, k := range o.keys {
			if !yield(k, cloneValue(o.values[k])) {
				return
			}
		}
	}
}

func (o Ordered[T]) clone() Ordered[T] {
	if o.values == nil {
		return Ordered[T]{}
	}
	out := Ordered[T]{keys: slices.Clone(o.keys), values: make(map[string]T, len(o.values))}
	for k, v := range o.values {
		out.values[k] = cloneValue(v)
	}
	return out
}

func (o *Ordered[T]) set(key string, v T) {
	if o.values == nil {
		o.values = make(map[string]T)
	}
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = v
}

func (o *Ordered[T]) UnmarshalYAML(node *yaml.Node) error {
	*o = Ordered[T]{}
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected a mapping", node.Line)
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valueNode := node.Content[i], node.Content[i+1]
		key := keyNode.Value
		if _, dup := o.values[key]; dup {
			return fmt.Errorf("line %d: duplicate key %q", keyNode.Line, key)
		}
		var v T
		if err := decodeStrict(valueNode, &v); err != nil {
			return fmt.Errorf("key %q: %w", key, err)
		}
		o.set(key, v)
	}
	return nil
}

// decodeStrict decodes node into v rejecting unknown fields. Node.Decode
// would start a lenient decoder and drop that setting below the top level.
func decodeStrict(node *yaml.Node, v any) error {
	raw, err := yaml.Marshal(node)
	if err != nil {
		return err
	}
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// MarshalJSON writes a JSON object with keys in declaration order.
func (o Ordered[T]) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(o.values[k])
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", k, err)
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
