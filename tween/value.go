package tween

import (
	"fmt"

	"github.com/lixenwraith/voidgate/core"
	"github.com/lixenwraith/voidgate/vmath"
)

// Kind identifies the semantic type a channel interpolates
type Kind uint8

const (
	KindScalar Kind = iota
	KindVec3
	KindColor
)

func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindVec3:
		return "vec3"
	case KindColor:
		return "color"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Value is one interpolatable channel payload
// Implementations must return the same concrete type from Lerp;
// kind agreement between a channel's start and target values is
// enforced once at build time, so Lerp may assume a matching operand
type Value interface {
	Kind() Kind
	Lerp(to Value, t float64) Value
}

// Scalar is a float64 channel value
type Scalar float64

func (s Scalar) Kind() Kind { return KindScalar }

func (s Scalar) Lerp(to Value, t float64) Value {
	return Scalar(vmath.Lerp(float64(s), float64(to.(Scalar)), t))
}

// Vec3 is a 3-vector channel value (camera flight positions)
type Vec3 vmath.Vec3

func (v Vec3) Kind() Kind { return KindVec3 }

func (v Vec3) Lerp(to Value, t float64) Value {
	return Vec3(vmath.V3Lerp(vmath.Vec3(v), vmath.Vec3(to.(Vec3)), t))
}

// Color is an RGB channel value, interpolated componentwise in the
// space the values are stored in
type Color core.RGB

func (c Color) Kind() Kind { return KindColor }

func (c Color) Lerp(to Value, t float64) Value {
	return Color(core.RGB(c).Lerp(core.RGB(to.(Color)), t))
}
