package worktop

// CornerKind tags the treatment held by a corner slot.
type CornerKind int

const (
	CornerNone CornerKind = iota
	CornerRadius
	CornerChamfer
	// CornerInconsistent marks a corner that arrived with both a radius and a
	// complete chamfer pair. It is never produced by the With* editors.
	CornerInconsistent
)

func (k CornerKind) String() string {
	switch k {
	case CornerRadius:
		return "radius"
	case CornerChamfer:
		return "chamfer"
	case CornerInconsistent:
		return "inconsistent"
	}
	return "none"
}

// Corner is a corner slot holding either a radius or a chamfer pair.
type Corner struct {
	kind     CornerKind
	radius   float64
	chamferX float64
	chamferY float64
}

// NoCorner returns an untreated corner.
func NoCorner() Corner { return Corner{} }

// RadiusCorner returns a rounded corner. A non-positive radius means no treatment.
func RadiusCorner(r float64) Corner {
	if r <= 0 {
		return Corner{}
	}
	return Corner{kind: CornerRadius, radius: r}
}

// ChamferCorner returns a chamfered corner with legs x and y. One leg may still
// be zero while the pair is being entered.
func ChamferCorner(x, y float64) Corner {
	if x <= 0 && y <= 0 {
		return Corner{}
	}
	return Corner{kind: CornerChamfer, chamferX: max(x, 0), chamferY: max(y, 0)}
}

// CornerFromFields builds a corner from the loose radius and chamfer fields of
// an order form. A radius next to a complete chamfer pair yields an
// inconsistent corner; a radius next to a half-entered pair keeps the radius.
func CornerFromFields(radius, chamferX, chamferY float64) Corner {
	switch {
	case radius > 0 && chamferX > 0 && chamferY > 0:
		return Corner{kind: CornerInconsistent, radius: radius, chamferX: chamferX, chamferY: chamferY}
	case radius > 0:
		return RadiusCorner(radius)
	default:
		return ChamferCorner(chamferX, chamferY)
	}
}

// WithRadius sets a radius and clears any chamfer.
func (c Corner) WithRadius(r float64) Corner {
	if r <= 0 && c.kind != CornerRadius {
		return c
	}
	return RadiusCorner(r)
}

// WithChamfer sets the chamfer pair. The radius is cleared once both legs are
// positive; until then an existing radius stays in place.
func (c Corner) WithChamfer(x, y float64) Corner {
	if x > 0 && y > 0 {
		return ChamferCorner(x, y)
	}
	if c.kind == CornerRadius {
		return c
	}
	return ChamferCorner(x, y)
}

func (c Corner) Kind() CornerKind { return c.kind }

// Radius returns the radius, or 0 when the corner is not rounded.
func (c Corner) Radius() float64 {
	if c.kind == CornerRadius || c.kind == CornerInconsistent {
		return c.radius
	}
	return 0
}

// Chamfer returns the chamfer legs, or zeros when the corner is not chamfered.
func (c Corner) Chamfer() (x, y float64) {
	if c.kind == CornerChamfer || c.kind == CornerInconsistent {
		return c.chamferX, c.chamferY
	}
	return 0, 0
}

// IsRadiusCut reports whether the corner needs a radius cut.
func (c Corner) IsRadiusCut() bool {
	return c.kind == CornerRadius && c.radius > 0
}

// IsAngleCut reports whether the corner needs a chamfer cut: both legs positive.
func (c Corner) IsAngleCut() bool {
	return c.kind == CornerChamfer && c.chamferX > 0 && c.chamferY > 0
}
