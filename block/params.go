package block

import (
	"fmt"
	"math"

	"github.com/c360/streamblocks/dtype"
	"github.com/c360/streamblocks/errors"
)

// Params carries factory configuration decoded from YAML or built in
// code. Typed getters surface classified invalid-argument errors so a
// malformed topology file fails block construction, not Work.
type Params map[string]any

// DType resolves a dtype parameter by canonical name.
func (p Params) DType(key string) (dtype.DType, error) {
	raw, ok := p[key]
	if !ok {
		return dtype.DType{}, errors.InvalidArgumentf("Params", "DType",
			"missing required parameter %q", key)
	}
	name, ok := raw.(string)
	if !ok {
		return dtype.DType{}, errors.InvalidArgumentf("Params", "DType",
			"parameter %q: expected dtype name, got %T", key, raw)
	}
	return dtype.Parse(name)
}

// Int reads an integer parameter, accepting the numeric types YAML
// decoding produces. Missing keys fall back to def.
func (p Params) Int(key string, def int) (int, error) {
	raw, ok := p[key]
	if !ok {
		return def, nil
	}
	switch v := raw.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case uint64:
		if v > uint64(maxInt) {
			return 0, errors.InvalidArgumentf("Params", "Int",
				"parameter %q: value %d overflows int", key, v)
		}
		return int(v), nil
	case float64:
		if v != math.Trunc(v) {
			return 0, errors.InvalidArgumentf("Params", "Int",
				"parameter %q: expected integer, got %v", key, v)
		}
		return int(v), nil
	default:
		return 0, errors.InvalidArgumentf("Params", "Int",
			"parameter %q: expected integer, got %T", key, raw)
	}
}

// Float reads a floating-point parameter. Missing keys fall back to def.
func (p Params) Float(key string, def float64) (float64, error) {
	raw, ok := p[key]
	if !ok {
		return def, nil
	}
	switch v := raw.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	default:
		return 0, errors.InvalidArgumentf("Params", "Float",
			"parameter %q: expected number, got %T", key, raw)
	}
}

// Bool reads a boolean parameter. Missing keys fall back to def.
func (p Params) Bool(key string, def bool) (bool, error) {
	raw, ok := p[key]
	if !ok {
		return def, nil
	}
	v, ok := raw.(bool)
	if !ok {
		return false, errors.InvalidArgumentf("Params", "Bool",
			"parameter %q: expected bool, got %T", key, raw)
	}
	return v, nil
}

// String reads a string parameter. Missing keys fall back to def.
func (p Params) String(key, def string) (string, error) {
	raw, ok := p[key]
	if !ok {
		return def, nil
	}
	v, ok := raw.(string)
	if !ok {
		return "", errors.InvalidArgumentf("Params", "String",
			"parameter %q: expected string, got %T", key, raw)
	}
	return v, nil
}

// IntSlice reads an integer list parameter, as produced by YAML sequences.
func (p Params) IntSlice(key string) ([]int, error) {
	raw, ok := p[key]
	if !ok {
		return nil, nil
	}
	list, ok := raw.([]any)
	if !ok {
		if typed, isTyped := raw.([]int); isTyped {
			return typed, nil
		}
		return nil, errors.InvalidArgumentf("Params", "IntSlice",
			"parameter %q: expected list, got %T", key, raw)
	}
	out := make([]int, len(list))
	for i, item := range list {
		n, err := Params{"item": item}.Int("item", 0)
		if err != nil {
			return nil, errors.InvalidArgumentf("Params", "IntSlice",
				"parameter %q[%d]: %v", key, i, fmt.Sprintf("%v", item))
		}
		out[i] = n
	}
	return out, nil
}
