package yamlcore

import (
	"fmt"
	"reflect"
)

// FromNoder is the customization point a type implements to fill itself
// from a Node (spec.md §6's "native-value conversion hook"). It is the Go
// equivalent of the ADL-style from_node/to_node pair the spec describes:
// Go has no free-function ADL, so these are methods instead.
type FromNoder interface {
	FromNode(n *Node) error
}

// ToNoder is the inverse customization point: a type converts itself into
// a Node for serialization.
type ToNoder interface {
	ToNode() (*Node, error)
}

// Into fills out from n, the same operation spec.md §6 calls
// get_value<T>(). out must be a non-nil pointer. If out implements
// FromNoder, that method is used; otherwise a built-in conversion covers
// bool, signed/unsigned integers, floating point, string, slices/arrays,
// maps with a scalar key type, and pointers (as a nullable wrapper, per
// spec.md §6's built-in conversion list — this engine does not implement
// the struct-tag reflection façade of a full marshal/unmarshal API).
func Into(n *Node, out interface{}) error {
	if fn, ok := out.(FromNoder); ok {
		return fn.FromNode(n)
	}
	rv := reflect.ValueOf(out)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return &Error{Kind: InvalidUsage, Msg: "Into requires a non-nil pointer"}
	}
	return intoValue(n, rv.Elem())
}

func intoValue(n *Node, v reflect.Value) error {
	switch v.Kind() {
	case reflect.Bool:
		b, err := n.Bool()
		if err != nil {
			return err
		}
		v.SetBool(b)
		return nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, err := n.Int()
		if err != nil {
			return err
		}
		v.SetInt(i)
		return nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		i, err := n.Int()
		if err != nil {
			return err
		}
		if i < 0 {
			return &Error{Kind: TypeError, Msg: fmt.Sprintf("cannot convert negative integer %d to %s", i, v.Type())}
		}
		v.SetUint(uint64(i))
		return nil
	case reflect.Float32, reflect.Float64:
		f, err := n.Float()
		if err != nil {
			return err
		}
		v.SetFloat(f)
		return nil
	case reflect.String:
		s, err := n.String()
		if err != nil {
			return err
		}
		v.SetString(s)
		return nil
	case reflect.Ptr:
		if n.IsNull() {
			v.Set(reflect.Zero(v.Type()))
			return nil
		}
		if v.IsNil() {
			v.Set(reflect.New(v.Type().Elem()))
		}
		return intoValue(n, v.Elem())
	case reflect.Slice, reflect.Array:
		items, err := n.Seq()
		if err != nil {
			return err
		}
		if v.Kind() == reflect.Slice {
			v.Set(reflect.MakeSlice(v.Type(), len(items), len(items)))
		} else if v.Len() != len(items) {
			return &Error{Kind: TypeError, Msg: fmt.Sprintf("array of length %d cannot hold %d elements", v.Len(), len(items))}
		}
		for i, item := range items {
			if err := intoValue(item, v.Index(i)); err != nil {
				return err
			}
		}
		return nil
	case reflect.Map:
		pairs, err := n.Pairs()
		if err != nil {
			return err
		}
		m := reflect.MakeMapWithSize(v.Type(), len(pairs))
		keyType := v.Type().Key()
		valType := v.Type().Elem()
		for _, p := range pairs {
			kv := reflect.New(keyType).Elem()
			if err := intoValue(p.Key, kv); err != nil {
				return err
			}
			vv := reflect.New(valType).Elem()
			if err := intoValue(p.Value, vv); err != nil {
				return err
			}
			m.SetMapIndex(kv, vv)
		}
		v.Set(m)
		return nil
	case reflect.Interface:
		v.Set(reflect.ValueOf(untypedValue(n)))
		return nil
	}
	return &Error{Kind: TypeError, Msg: fmt.Sprintf("no built-in conversion for Go type %s", v.Type())}
}

// untypedValue gives interface{} targets a plain Go value (bool, int64,
// float64, string, nil, []interface{}, map[string]interface{}), mirroring
// the dynamically-typed result a schemaless decode produces.
func untypedValue(n *Node) interface{} {
	switch n.Kind() {
	case NullKind:
		return nil
	case BoolKind:
		v, _ := n.Bool()
		return v
	case IntKind:
		v, _ := n.Int()
		return v
	case FloatKind:
		v, _ := n.Float()
		return v
	case StringKind:
		v, _ := n.String()
		return v
	case SequenceKind:
		items, _ := n.Seq()
		out := make([]interface{}, len(items))
		for i, it := range items {
			out[i] = untypedValue(it)
		}
		return out
	case MappingKind:
		pairs, _ := n.Pairs()
		out := make(map[string]interface{}, len(pairs))
		for _, p := range pairs {
			k, err := p.Key.String()
			if err != nil {
				k = fmt.Sprint(untypedValue(p.Key))
			}
			out[k] = untypedValue(p.Value)
		}
		return out
	}
	return nil
}

// From builds a Node from v, the inverse of Into. If v implements ToNoder,
// that method is used.
func From(v interface{}) (*Node, error) {
	if tn, ok := v.(ToNoder); ok {
		return tn.ToNode()
	}
	return fromValue(reflect.ValueOf(v))
}

func fromValue(v reflect.Value) (*Node, error) {
	if !v.IsValid() {
		return NewNull(), nil
	}
	switch v.Kind() {
	case reflect.Bool:
		return NewBool(v.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return NewInt(v.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return NewInt(int64(v.Uint())), nil
	case reflect.Float32, reflect.Float64:
		return NewFloat(v.Float()), nil
	case reflect.String:
		return NewString(v.String()), nil
	case reflect.Ptr, reflect.Interface:
		if v.IsNil() {
			return NewNull(), nil
		}
		return fromValue(v.Elem())
	case reflect.Slice, reflect.Array:
		items := make([]*Node, v.Len())
		for i := 0; i < v.Len(); i++ {
			n, err := fromValue(v.Index(i))
			if err != nil {
				return nil, err
			}
			items[i] = n
		}
		return NewSequence(items), nil
	case reflect.Map:
		keys := v.MapKeys()
		pairs := make([]Pair, len(keys))
		for i, k := range keys {
			kn, err := fromValue(k)
			if err != nil {
				return nil, err
			}
			vn, err := fromValue(v.MapIndex(k))
			if err != nil {
				return nil, err
			}
			pairs[i] = Pair{Key: kn, Value: vn}
		}
		return NewMapping(pairs), nil
	}
	return nil, &Error{Kind: TypeError, Msg: fmt.Sprintf("no built-in conversion from Go type %s", v.Type())}
}
