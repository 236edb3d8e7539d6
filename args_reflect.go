package tsio

import "reflect"

// WrapArg converts an arbitrary Go value into the type-erased Arg record
// the executor and kernels consume. Known scalar types are matched
// directly; everything else falls back to reflect, classifying slices,
// arrays and maps as iterable (§4.4's "iterable collection") and structs
// as destructurable (§4.4's "tuple / fixed heterogeneous record"), per
// the capability model spec.md §9 calls for: {iterable, destructurable,
// scalar}. A value that is none of these becomes an invalid Arg, which
// every kernel rejects with an argument-shape error.
func WrapArg(v any) Arg {
	switch x := v.(type) {
	case int:
		return intArg(int64(x))
	case int8:
		return intArg(int64(x))
	case int16:
		return intArg(int64(x))
	case int32:
		return intArg(int64(x))
	case int64:
		return intArg(x)
	case uint:
		return uintArg(uint64(x))
	case uint8:
		return uintArg(uint64(x))
	case uint16:
		return uintArg(uint64(x))
	case uint32:
		return uintArg(uint64(x))
	case uint64:
		return uintArg(x)
	case uintptr:
		return uintArg(uint64(x))
	case float32:
		return floatArg(float64(x))
	case float64:
		return floatArg(x)
	case string:
		return stringArg(x)
	case bool:
		return boolArg(x)
	case *int:
		if x == nil {
			return Arg{kind: argInvalid, original: v}
		}
		return intPointerArg(x)
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return Arg{kind: argInvalid, original: v}
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return Arg{kind: argIterable, original: rv.Interface()}
	case reflect.Struct:
		return Arg{kind: argTuple, original: rv.Interface()}
	default:
		return Arg{kind: argInvalid, original: v}
	}
}

// iterateArg answers spec.md §4.4's first question ("can you be
// iterated?"). A slice/array yields one Arg per element in index
// order; a map yields one two-element-tuple Arg per entry (key, value),
// per §4.4's "Map elements are treated as two-element tuples".
func iterateArg(a Arg) ([]Arg, bool) {
	if a.kind != argIterable {
		return nil, false
	}
	rv := reflect.ValueOf(a.original)

	if rv.Kind() == reflect.Map {
		out := make([]Arg, 0, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			pair := reflect.New(reflect.StructOf([]reflect.StructField{
				{Name: "Key", Type: iter.Key().Type()},
				{Name: "Value", Type: iter.Value().Type()},
			})).Elem()
			pair.Field(0).Set(iter.Key())
			pair.Field(1).Set(iter.Value())
			out = append(out, Arg{kind: argTuple, original: pair.Interface()})
		}
		return out, true
	}

	out := make([]Arg, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		out[i] = WrapArg(rv.Index(i).Interface())
	}
	return out, true
}

// destructureArg answers spec.md §4.4's second question ("can you be
// destructured into a fixed heterogeneous record?"). A struct yields one
// Arg per exported field in declaration order; a slice/array (already
// fixed-length) can also serve as a tuple, matching the original's
// blurred line between "fixed array" and "record" for destructuring
// purposes.
func destructureArg(a Arg) ([]Arg, bool) {
	if a.kind != argTuple && a.kind != argIterable {
		return nil, false
	}
	rv := reflect.ValueOf(a.original)

	switch rv.Kind() {
	case reflect.Struct:
		out := make([]Arg, 0, rv.NumField())
		t := rv.Type()
		for i := 0; i < rv.NumField(); i++ {
			if t.Field(i).PkgPath != "" {
				continue // unexported, per reflect.Value.Interface's own restriction
			}
			out = append(out, WrapArg(rv.Field(i).Interface()))
		}
		return out, true
	case reflect.Slice, reflect.Array:
		out := make([]Arg, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			out[i] = WrapArg(rv.Index(i).Interface())
		}
		return out, true
	default:
		return nil, false
	}
}
