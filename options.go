package tsio

import "fmt"

// Options is a small typed configuration bag, in the same spirit as the
// teacher's Config map: each setting is a named, typed value fetched by
// a dotted path, panicking on a type mismatch (a programming error, not
// a runtime condition) rather than returning a zero value silently.
type Options map[string]*optionValue

// NewOptions returns an Options bag primed with tsio's defaults. Only
// kernel.float_default_precision is read by the engine;
// buffer.inline_hint and kernel.n_strict are stored but nothing reads
// them (%n is always strict).
func NewOptions() *Options {
	o := make(Options)
	o.SetInt("buffer.inline_hint", 0)
	o.SetBool("kernel.n_strict", true)
	o.SetInt("kernel.float_default_precision", 6)
	return &o
}

type optionValueType int

const (
	optionUndefined optionValueType = iota
	optionBool
	optionInt
	optionString
)

func (t optionValueType) String() string {
	switch t {
	case optionBool:
		return "bool"
	case optionInt:
		return "int"
	case optionString:
		return "string"
	default:
		return "undefined"
	}
}

type optionValue struct {
	typ      optionValueType
	asBool   bool
	asInt    int
	asString string
}

func (v *optionValue) assignType(t optionValueType) {
	if v.typ != optionUndefined && v.typ != t {
		panic(fmt.Sprintf("tsio: can't assign `%s` to option of type `%s`", t, v.typ))
	}
	v.typ = t
}

func (v *optionValue) checkType(t optionValueType) {
	if v.typ != t {
		panic(fmt.Sprintf("tsio: can't retrieve `%s` from option of type `%s`", t, v.typ))
	}
}

func (o *Options) SetBool(path string, v bool) {
	val := &optionValue{}
	val.assignType(optionBool)
	val.asBool = v
	(*o)[path] = val
}

func (o *Options) SetInt(path string, v int) {
	val := &optionValue{}
	val.assignType(optionInt)
	val.asInt = v
	(*o)[path] = val
}

func (o *Options) SetString(path string, v string) {
	val := &optionValue{}
	val.assignType(optionString)
	val.asString = v
	(*o)[path] = val
}

func (o *Options) GetBool(path string) bool {
	if v, ok := (*o)[path]; ok {
		v.checkType(optionBool)
		return v.asBool
	}
	panic(fmt.Sprintf("tsio: bool option `%s` does not exist", path))
}

func (o *Options) GetInt(path string) int {
	if v, ok := (*o)[path]; ok {
		v.checkType(optionInt)
		return v.asInt
	}
	panic(fmt.Sprintf("tsio: int option `%s` does not exist", path))
}

func (o *Options) GetString(path string) string {
	if v, ok := (*o)[path]; ok {
		v.checkType(optionString)
		return v.asString
	}
	panic(fmt.Sprintf("tsio: string option `%s` does not exist", path))
}
