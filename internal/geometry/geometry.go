// Package geometry decides whether a configuration can be produced from its
// stock material.
//
// Validate and IsComplete walk the same rule set. Validate collects every
// failure with a message and the violated bound; IsComplete stops at the first
// one and formats nothing.
package geometry

import (
	"fmt"
	"strconv"

	"github.com/Simplici0/worktop/internal/worktop"
)

const (
	// PostformingMargin is removed from the usable stock width when the
	// configuration has no postformed edge.
	PostformingMargin = 10.0
	// MachiningAllowance is reserved on the stock length for joining.
	MachiningAllowance = 50.0
)

// Failure is one violated rule.
type Failure struct {
	Field   string  `json:"field"`
	Message string  `json:"message"`
	Bound   float64 `json:"bound"`
}

// Result is the outcome of Validate.
type Result struct {
	OK       bool      `json:"ok"`
	Failures []Failure `json:"failures,omitempty"`
}

// Validate checks cfg against material m and reports every failure.
// A nil material counts as "not selected".
func Validate(cfg worktop.Configuration, m *worktop.Material) Result {
	r := &collector{}
	check(cfg, m, r)
	return Result{OK: len(r.failures) == 0, Failures: r.failures}
}

// IsComplete reports whether Validate would accept cfg.
func IsComplete(cfg worktop.Configuration, m *worktop.Material) bool {
	r := &gate{}
	check(cfg, m, r)
	return !r.failed
}

type reporter interface {
	fail(field string, bound float64, format string, args ...any)
	done() bool
}

type collector struct {
	failures []Failure
}

func (c *collector) fail(field string, bound float64, format string, args ...any) {
	c.failures = append(c.failures, Failure{Field: field, Message: fmt.Sprintf(format, args...), Bound: bound})
}

func (c *collector) done() bool { return false }

type gate struct {
	failed bool
}

func (g *gate) fail(string, float64, string, ...any) { g.failed = true }

func (g *gate) done() bool { return g.failed }

type rules struct {
	cfg worktop.Configuration
	mat worktop.Material
	r   reporter
}

func check(cfg worktop.Configuration, m *worktop.Material, r reporter) {
	if !required(cfg, m, r) {
		return
	}

	v := rules{cfg: cfg, mat: *m, r: r}
	steps := []func(){v.dimensions, v.corners, v.cutouts, v.edgeBanding}
	for _, step := range steps {
		step()
		if r.done() {
			return
		}
	}
}

// required reports false when later rules have nothing to measure against.
func required(cfg worktop.Configuration, m *worktop.Material, r reporter) bool {
	ok := true
	if cfg.Assembly == nil {
		r.fail("assembly", 0, "select an assembly type")
		ok = false
	}
	if m == nil || cfg.MaterialID == 0 {
		r.fail("material", 0, "select a material")
		ok = false
	} else if m.Width <= 0 || m.Length <= 0 {
		r.fail("material", 0, "material %q has no stock dimensions", m.Name)
		ok = false
	}
	if cfg.Assembly == nil || r.done() {
		return false
	}

	d := cfg.Assembly.Dimensions()
	switch cfg.Assembly.(type) {
	case worktop.UJoin:
	case worktop.Cut:
		ok = positive(r, "a", "A", d.A) && ok
		ok = positive(r, "b", "B", d.B) && ok
	default:
		ok = positive(r, "a", "A", d.A) && ok
		ok = positive(r, "b", "B", d.B) && ok
		ok = positive(r, "c", "C", d.C) && ok
		ok = positive(r, "d", "D", d.D) && ok
	}
	return ok
}

func positive(r reporter, field, label string, v float64) bool {
	if v > 0 {
		return true
	}
	r.fail(field, 0, "%s is required and must be greater than 0", label)
	return false
}

func (v rules) margin() float64 {
	if v.cfg.NoPostformingEdge {
		return PostformingMargin
	}
	return 0
}

// fitsWidth checks a depth against the usable stock width. With a margin the
// comparison is strict.
func (v rules) fitsWidth(field, label string, value float64) {
	m := v.margin()
	limit := v.mat.Width - m
	if m > 0 {
		if value >= limit {
			v.r.fail(field, limit, "%s must be less than %s mm for this material", label, mm(limit))
		}
		return
	}
	if value > limit {
		v.r.fail(field, limit, "%s must be at most %s mm for this material", label, mm(limit))
	}
}

func (v rules) atMost(field, label string, value, limit float64) {
	if value > limit {
		v.r.fail(field, limit, "%s must be at most %s mm", label, mm(limit))
	}
}

// covers checks that a member is at least as long as the depth of the member
// that overlaps it.
func (v rules) covers(field, label string, value float64, overlap string, depth float64) {
	if value < depth {
		v.r.fail(field, depth, "%s must be at least %s (%s mm)", label, overlap, mm(depth))
	}
}

func (v rules) lessThan(field, label string, value, limit float64) {
	if value >= limit {
		v.r.fail(field, limit, "%s must be less than %s mm", label, mm(limit))
	}
}

func (v rules) dimensions() {
	stock := v.mat.Length
	g := MachiningAllowance

	switch a := v.cfg.Assembly.(type) {
	case worktop.Cut:
		v.lessThan("a", "A", a.A, stock)
		v.fitsWidth("b", "B", a.B)
	case worktop.LeftJoin:
		v.atMost("a", "A", a.A, stock)
		v.fitsWidth("b", "B", a.B)
		v.covers("c", "C", a.C, "D", a.D)
		v.atMost("c", "C − D", a.C-a.D, stock-g)
		v.fitsWidth("d", "D", a.D)
	case worktop.RightJoin:
		v.covers("a", "A", a.A, "D", a.D)
		v.atMost("a", "A − D", a.A-a.D, stock-g)
		v.fitsWidth("b", "B", a.B)
		v.atMost("c", "C", a.C, stock)
		v.fitsWidth("d", "D", a.D)
	}
}

func (v rules) corners() {
	for i, c := range v.cfg.Corners {
		if c.Kind() == worktop.CornerInconsistent {
			x, y := c.Chamfer()
			v.r.fail(cornerField(i), 0, "corner %d has both radius %s and chamfer %s×%s; keep only one", i+1, mm(c.Radius()), mm(x), mm(y))
		}
	}

	r := func(i int) float64 { return v.cfg.Corners[i].Radius() }

	switch a := v.cfg.Assembly.(type) {
	case worktop.Cut:
		for i := range v.cfg.Corners {
			v.atMost(cornerField(i), "R"+strconv.Itoa(i+1), r(i), a.B)
		}
		v.atMost("corner1", "R1 + R3", r(0)+r(2), a.B)
		v.atMost("corner2", "R2 + R4", r(1)+r(3), a.B)
	case worktop.LeftJoin:
		v.joinedRadii(a.B, a.D)
	case worktop.RightJoin:
		v.joinedRadii(a.B, a.D)
	}
}

// joinedRadii applies the L-shape radius rules: corners 1 and 3 sit on the
// perpendicular member (depth D), corners 2 and 4 on the main member (depth B).
func (v rules) joinedRadii(b, d float64) {
	r := func(i int) float64 { return v.cfg.Corners[i].Radius() }

	v.atMost("corner1", "R1", r(0), d)
	v.atMost("corner3", "R3", r(2), d)
	v.atMost("corner1", "R1 + R3", r(0)+r(2), d)
	v.atMost("corner2", "R2", r(1), b)
	v.atMost("corner4", "R4", r(3), b)
	v.atMost("corner2", "R2 + R4", r(1)+r(3), b)
}

func (v rules) cutouts() {
	if n := len(v.cfg.Cutouts); n > worktop.MaxCutouts {
		v.r.fail("cutouts", worktop.MaxCutouts, "at most %d cutouts are allowed, got %d", worktop.MaxCutouts, n)
	}

	d := v.cfg.Assembly.Dimensions()
	joined := worktop.IsJoined(v.cfg.Assembly)

	for i, c := range v.cfg.Cutouts {
		field := fmt.Sprintf("cutouts[%d]", i)
		if c.Width <= 0 || c.Height <= 0 {
			v.r.fail(field, 0, "cutout %d needs a width and height greater than 0", i+1)
			continue
		}
		if c.OffsetEdge1 < 0 || c.OffsetEdge2 < 0 {
			v.r.fail(field, 0, "cutout %d offsets cannot be negative", i+1)
			continue
		}

		switch c.Member {
		case worktop.MemberPerpendicular:
			if !joined {
				v.r.fail(field+".member", 0, "cutout %d: a %s has no perpendicular member", i+1, v.cfg.Assembly.Type())
				continue
			}
			// Rotated frame: offsets run from the far edge of the perpendicular
			// member, so its length C bounds edge 1 and its depth D bounds edge 2.
			v.bound(field+".offset_edge1", i, "perpendicular member length", c.OffsetEdge1+c.Width, d.C)
			v.bound(field+".offset_edge2", i, "perpendicular member depth", c.OffsetEdge2+c.Height, d.D)
		case worktop.MemberMain, "":
			v.bound(field+".offset_edge1", i, "kept length", c.OffsetEdge1+c.Width, d.A)
			v.bound(field+".offset_edge2", i, "kept depth", c.OffsetEdge2+c.Height, d.B)
		default:
			v.r.fail(field+".member", 0, "cutout %d has unknown member %q", i+1, c.Member)
		}
	}
}

func (v rules) bound(field string, i int, extent string, reach, limit float64) {
	if reach > limit {
		v.r.fail(field, limit, "cutout %d reaches %s mm but the %s is %s mm", i+1, mm(reach), extent, mm(limit))
	}
}

func (v rules) edgeBanding() {
	switch v.cfg.Assembly.(type) {
	case worktop.Cut, worktop.StraightSplice:
	default:
		return
	}
	for pos := 5; pos <= 6; pos++ {
		if v.cfg.EdgeBanding.Positions[pos-1] {
			v.r.fail(fmt.Sprintf("edge_banding.position%d", pos), 4, "edge position %d only exists on joined assemblies", pos)
		}
	}
}

func cornerField(i int) string {
	return "corner" + strconv.Itoa(i+1)
}

func mm(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
