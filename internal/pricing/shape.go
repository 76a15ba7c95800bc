package pricing

import (
	"fmt"

	"github.com/Simplici0/worktop/internal/worktop"
)

// shape is the per-assembly part of the pricing model.
type shape interface {
	// consumedLength is the running length taken from an on-stock item, mm.
	consumedLength() float64
	// boardLength is the length that must fit on whole boards, mm.
	boardLength() float64
	crossCuts() int
	joins() int
	// lengthCuts returns the runs, in mm, that need a length cut against a
	// stock of the given width.
	lengthCuts(width float64) []float64
	// bandingSegments maps edge positions 1..n to edge lengths in mm.
	bandingSegments() []float64
}

func newShape(a worktop.Assembly) (shape, error) {
	switch a := a.(type) {
	case worktop.Cut:
		return cutShape(a), nil
	case worktop.LeftJoin:
		if a.C < a.D {
			return nil, fmt.Errorf("%w: left join C (%v) shorter than D (%v)", ErrPrecondition, a.C, a.D)
		}
		return leftJoinShape(a), nil
	case worktop.RightJoin:
		if a.A < a.D {
			return nil, fmt.Errorf("%w: right join A (%v) shorter than D (%v)", ErrPrecondition, a.A, a.D)
		}
		return rightJoinShape(a), nil
	case nil:
		return nil, fmt.Errorf("%w: no assembly selected", ErrPrecondition)
	}
	return nil, fmt.Errorf("%w: %s has no pricing model", ErrPrecondition, a.Type())
}

type cutShape worktop.Cut

func (s cutShape) consumedLength() float64 { return s.A }
func (s cutShape) boardLength() float64    { return s.A }
func (s cutShape) crossCuts() int          { return 1 }
func (s cutShape) joins() int              { return 0 }

func (s cutShape) lengthCuts(width float64) []float64 {
	if s.B < width {
		return []float64{s.A}
	}
	return nil
}

func (s cutShape) bandingSegments() []float64 {
	return []float64{s.B, s.A, s.B, s.A}
}

type leftJoinShape worktop.LeftJoin

func (s leftJoinShape) consumedLength() float64 { return s.A + (s.C - s.D) }
func (s leftJoinShape) boardLength() float64    { return s.A + s.C - s.D }
func (s leftJoinShape) crossCuts() int          { return 0 }
func (s leftJoinShape) joins() int              { return 1 }

func (s leftJoinShape) lengthCuts(width float64) []float64 {
	return joinedLengthCuts(s.A, s.C, s.D, width)
}

func (s leftJoinShape) bandingSegments() []float64 {
	return joinedSegments(s.A, s.B, s.C, s.D)
}

type rightJoinShape worktop.RightJoin

func (s rightJoinShape) consumedLength() float64 { return (s.A - s.D) + s.C }
func (s rightJoinShape) boardLength() float64    { return s.A + s.C - s.D }
func (s rightJoinShape) crossCuts() int          { return 0 }
func (s rightJoinShape) joins() int              { return 1 }

func (s rightJoinShape) lengthCuts(width float64) []float64 {
	return joinedLengthCuts(s.A, s.C, s.D, width)
}

func (s rightJoinShape) bandingSegments() []float64 {
	return joinedSegments(s.A, s.B, s.C, s.D)
}

// joinedLengthCuts checks both members independently: the perpendicular run
// C − D when D is narrower than the stock, and A when A is.
func joinedLengthCuts(a, c, d, width float64) []float64 {
	var runs []float64
	if d < width {
		runs = append(runs, c-d)
	}
	if a < width {
		runs = append(runs, a)
	}
	return runs
}

// joinedSegments maps positions 1..6 to C, A, B, A − D, C − B, D. Segments
// that come out negative band nothing.
func joinedSegments(a, b, c, d float64) []float64 {
	return []float64{c, a, b, max(a-d, 0), max(c-b, 0), d}
}
