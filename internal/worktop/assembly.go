// Package worktop defines the quoting domain: stock materials, fee schedules
// and the customer's cut configurations.
package worktop

import "fmt"

// AssemblyType names the geometry of a configuration.
type AssemblyType string

const (
	TypeCut            AssemblyType = "cut"
	TypeStraightSplice AssemblyType = "straight_splice"
	TypeLeftJoin       AssemblyType = "left_join"
	TypeRightJoin      AssemblyType = "right_join"
	TypeUJoin          AssemblyType = "u_join"
)

// ParseAssemblyType accepts the wire name of an assembly type.
func ParseAssemblyType(raw string) (AssemblyType, error) {
	switch t := AssemblyType(raw); t {
	case TypeCut, TypeStraightSplice, TypeLeftJoin, TypeRightJoin, TypeUJoin:
		return t, nil
	}
	return "", fmt.Errorf("unknown assembly type %q", raw)
}

// Dimensions is the flat A..F view of an assembly, as entered on the order form.
// Which letters carry meaning depends on the assembly type.
type Dimensions struct {
	A float64 `json:"a"`
	B float64 `json:"b"`
	C float64 `json:"c,omitempty"`
	D float64 `json:"d,omitempty"`
	E float64 `json:"e,omitempty"`
	F float64 `json:"f,omitempty"`
}

// Assembly is one of Cut, StraightSplice, LeftJoin, RightJoin or UJoin.
// Each variant carries only the dimensions it uses.
type Assembly interface {
	Type() AssemblyType
	Dimensions() Dimensions
	isAssembly()
}

// Cut is a single straight piece: A is the length along the stock, B the depth.
type Cut struct {
	A, B float64
}

// StraightSplice joins two pieces end to end.
type StraightSplice struct {
	A, B, C, D float64
}

// LeftJoin is an L shape whose perpendicular member sits on the left.
// A and B are the main member's length and depth, C and D the perpendicular
// member's length (overlap included) and depth.
type LeftJoin struct {
	A, B, C, D float64
}

// RightJoin mirrors LeftJoin. The overlap D is taken off the main member.
type RightJoin struct {
	A, B, C, D float64
}

// UJoin is a three-member U shape. It can be validated but not priced.
type UJoin struct {
	A, B, C, D, E, F float64
}

func (Cut) Type() AssemblyType            { return TypeCut }
func (StraightSplice) Type() AssemblyType { return TypeStraightSplice }
func (LeftJoin) Type() AssemblyType       { return TypeLeftJoin }
func (RightJoin) Type() AssemblyType      { return TypeRightJoin }
func (UJoin) Type() AssemblyType          { return TypeUJoin }

func (a Cut) Dimensions() Dimensions { return Dimensions{A: a.A, B: a.B} }
func (a StraightSplice) Dimensions() Dimensions {
	return Dimensions{A: a.A, B: a.B, C: a.C, D: a.D}
}
func (a LeftJoin) Dimensions() Dimensions  { return Dimensions{A: a.A, B: a.B, C: a.C, D: a.D} }
func (a RightJoin) Dimensions() Dimensions { return Dimensions{A: a.A, B: a.B, C: a.C, D: a.D} }
func (a UJoin) Dimensions() Dimensions {
	return Dimensions{A: a.A, B: a.B, C: a.C, D: a.D, E: a.E, F: a.F}
}

func (Cut) isAssembly()            {}
func (StraightSplice) isAssembly() {}
func (LeftJoin) isAssembly()       {}
func (RightJoin) isAssembly()      {}
func (UJoin) isAssembly()          {}

// NewAssembly builds the variant for t from flat dimensions. Letters the
// variant does not use are dropped.
func NewAssembly(t AssemblyType, d Dimensions) (Assembly, error) {
	switch t {
	case TypeCut:
		return Cut{A: d.A, B: d.B}, nil
	case TypeStraightSplice:
		return StraightSplice{A: d.A, B: d.B, C: d.C, D: d.D}, nil
	case TypeLeftJoin:
		return LeftJoin{A: d.A, B: d.B, C: d.C, D: d.D}, nil
	case TypeRightJoin:
		return RightJoin{A: d.A, B: d.B, C: d.C, D: d.D}, nil
	case TypeUJoin:
		return UJoin{A: d.A, B: d.B, C: d.C, D: d.D, E: d.E, F: d.F}, nil
	}
	return nil, fmt.Errorf("unknown assembly type %q", t)
}

// IsJoined reports whether a is an L-shaped two-member assembly.
func IsJoined(a Assembly) bool {
	switch a.(type) {
	case LeftJoin, RightJoin:
		return true
	}
	return false
}

// IsPriceable reports whether the calculator has a pricing model for a.
func IsPriceable(a Assembly) bool {
	switch a.(type) {
	case Cut, LeftJoin, RightJoin:
		return true
	}
	return false
}
