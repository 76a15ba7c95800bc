package worktop

// MaxCutouts is the number of sink or hob cutouts one configuration may hold.
const MaxCutouts = 3

// Member identifies which member of a joined assembly a cutout belongs to.
type Member string

const (
	MemberMain          Member = "main"
	MemberPerpendicular Member = "perpendicular"
)

// Cutout is a rectangular opening. Offsets are measured from the member's
// reference edges; on the perpendicular member the frame is rotated by 90°.
type Cutout struct {
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	OffsetEdge1 float64 `json:"offset_edge1"`
	OffsetEdge2 float64 `json:"offset_edge2"`
	Member      Member  `json:"member"`
}

// BandingKind is the edge banding material.
type BandingKind string

const (
	BandingNone  BandingKind = "none"
	BandingTypeA BandingKind = "type_a"
	BandingTypeB BandingKind = "type_b"
)

// EdgeBanding selects which edges receive banding. Positions are 1-based on
// the order form; index 0 holds position 1. Positions 5 and 6 only exist on
// joined assemblies.
type EdgeBanding struct {
	Kind      BandingKind `json:"kind"`
	Color     string      `json:"color,omitempty"`
	Positions [6]bool     `json:"positions"`
}

// Enabled reports whether a banding material was chosen.
func (e EdgeBanding) Enabled() bool {
	return e.Kind != "" && e.Kind != BandingNone
}

// Configuration is one ordered worktop piece.
type Configuration struct {
	Label             string
	Assembly          Assembly
	MaterialID        int64
	NoPostformingEdge bool
	Corners           [4]Corner
	EdgeBanding       EdgeBanding
	Cutouts           []Cutout
}

// AssemblyType returns the configured type, or "" when none is selected.
func (c Configuration) AssemblyType() AssemblyType {
	if c.Assembly == nil {
		return ""
	}
	return c.Assembly.Type()
}
