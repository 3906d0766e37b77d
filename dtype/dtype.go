// Package dtype describes the element data types carried by stream buffers.
//
// A DType pairs a primitive kind from a closed, fixed set with a dimension
// (vector width). The supported kinds are the eight fixed-width integer
// types, the two floating-point types, and their complex variants. A zero
// DType is "unconstrained": ports declared without a dtype accept any
// buffer and measure their contents in bytes.
package dtype

import (
	"fmt"
	"strings"

	"github.com/c360/streamblocks/errors"
)

// Kind identifies a primitive element type
type Kind uint8

// Primitive kinds in the supported set. KindUnset marks an unconstrained
// port that accepts any type.
const (
	KindUnset Kind = iota
	Int8
	Int16
	Int32
	Int64
	UInt8
	UInt16
	UInt32
	UInt64
	Float32
	Float64
	Complex64
	Complex128
)

var kindNames = map[Kind]string{
	Int8:       "int8",
	Int16:      "int16",
	Int32:      "int32",
	Int64:      "int64",
	UInt8:      "uint8",
	UInt16:     "uint16",
	UInt32:     "uint32",
	UInt64:     "uint64",
	Float32:    "float32",
	Float64:    "float64",
	Complex64:  "complex_float32",
	Complex128: "complex_float64",
}

var kindSizes = map[Kind]int{
	Int8:       1,
	Int16:      2,
	Int32:      4,
	Int64:      8,
	UInt8:      1,
	UInt16:     2,
	UInt32:     4,
	UInt64:     8,
	Float32:    4,
	Float64:    8,
	Complex64:  8,
	Complex128: 16,
}

// String returns the canonical name of the kind
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unset"
}

// DType describes the element type of a buffer: a primitive kind and a
// dimension (vector width). The zero value is the unconstrained type.
type DType struct {
	kind Kind
	dim  int
}

// New creates a DType from a kind and dimension. A dimension below 1 is
// normalized to 1.
func New(kind Kind, dimension int) DType {
	if dimension < 1 {
		dimension = 1
	}
	if kind == KindUnset {
		return DType{}
	}
	return DType{kind: kind, dim: dimension}
}

// Parse resolves a dtype by canonical name, e.g. "float64" or
// "complex_float32". It fails with an invalid-argument error for names
// outside the supported set.
func Parse(name string) (DType, error) {
	trimmed := strings.TrimSpace(strings.ToLower(name))
	for kind, kindName := range kindNames {
		if trimmed == kindName {
			return New(kind, 1), nil
		}
	}
	return DType{}, errors.InvalidArgumentf("DType", "Parse",
		"%w: %q", errors.ErrUnsupportedDType, name)
}

// MustParse is Parse for statically known names; it panics on failure.
func MustParse(name string) DType {
	dt, err := Parse(name)
	if err != nil {
		panic(err)
	}
	return dt
}

// Kind returns the primitive kind
func (dt DType) Kind() Kind { return dt.kind }

// Dimension returns the vector width; 1 for scalar types, 0 when unset
func (dt DType) Dimension() int { return dt.dim }

// IsUnset reports whether the type is unconstrained
func (dt DType) IsUnset() bool { return dt.kind == KindUnset }

// ScalarSize returns the byte size of one scalar of the base kind.
// Unconstrained types measure in bytes, so their scalar size is 1.
func (dt DType) ScalarSize() int {
	if dt.kind == KindUnset {
		return 1
	}
	return kindSizes[dt.kind]
}

// ElemSize returns the byte size of one element (scalar size times dimension)
func (dt DType) ElemSize() int {
	if dt.kind == KindUnset {
		return 1
	}
	return kindSizes[dt.kind] * dt.dim
}

// WithDimension returns the same base kind with a different dimension.
// Used to compare dtypes ignoring vector width.
func (dt DType) WithDimension(dimension int) DType {
	return New(dt.kind, dimension)
}

// IsFloat reports whether the kind is a real floating-point type
func (dt DType) IsFloat() bool {
	return dt.kind == Float32 || dt.kind == Float64
}

// IsComplex reports whether the kind is a complex type
func (dt DType) IsComplex() bool {
	return dt.kind == Complex64 || dt.kind == Complex128
}

// IsInteger reports whether the kind is an integer type
func (dt DType) IsInteger() bool {
	switch dt.kind {
	case Int8, Int16, Int32, Int64, UInt8, UInt16, UInt32, UInt64:
		return true
	default:
		return false
	}
}

// IsSigned reports whether the kind is a signed integer or float type
func (dt DType) IsSigned() bool {
	switch dt.kind {
	case Int8, Int16, Int32, Int64, Float32, Float64:
		return true
	default:
		return false
	}
}

// String returns the canonical name, with the dimension appended for
// vector types, e.g. "float32[4]".
func (dt DType) String() string {
	if dt.kind == KindUnset {
		return "unset"
	}
	if dt.dim > 1 {
		return fmt.Sprintf("%s[%d]", dt.kind.String(), dt.dim)
	}
	return dt.kind.String()
}
