package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Simplici0/worktop/internal/worktop"
)

func stockMaterial() *worktop.Material {
	return &worktop.Material{
		ID:            1,
		Name:          "Oak 38",
		Width:         600,
		Length:        3000,
		PricePerMeter: 10000,
		OnStock:       true,
		VATPercent:    27,
		Currency:      "HUF",
	}
}

func cutConfig(a, b float64) worktop.Configuration {
	return worktop.Configuration{Assembly: worktop.Cut{A: a, B: b}, MaterialID: 1}
}

func fields(res Result) []string {
	out := make([]string, 0, len(res.Failures))
	for _, f := range res.Failures {
		out = append(out, f.Field)
	}
	return out
}

func TestValidate_CutDepthEqualToStockWidth(t *testing.T) {
	cfg := cutConfig(1200, 600)

	res := Validate(cfg, stockMaterial())
	assert.True(t, res.OK, "B = W without postforming margin should pass: %+v", res.Failures)
	assert.True(t, IsComplete(cfg, stockMaterial()))

	cfg.NoPostformingEdge = true
	res = Validate(cfg, stockMaterial())
	require.False(t, res.OK)
	require.Len(t, res.Failures, 1)
	assert.Equal(t, "b", res.Failures[0].Field)
	assert.Equal(t, 590.0, res.Failures[0].Bound)
	assert.False(t, IsComplete(cfg, stockMaterial()))
}

func TestValidate_CutMarginIsStrict(t *testing.T) {
	cfg := cutConfig(1200, 590)
	cfg.NoPostformingEdge = true
	assert.False(t, Validate(cfg, stockMaterial()).OK, "B = W - m must be rejected when the margin applies")

	cfg.Assembly = worktop.Cut{A: 1200, B: 589}
	assert.True(t, Validate(cfg, stockMaterial()).OK)
}

func TestValidate_CutLengthMustBeShorterThanStock(t *testing.T) {
	res := Validate(cutConfig(3000, 600), stockMaterial())
	require.False(t, res.OK)
	assert.Equal(t, []string{"a"}, fields(res))
	assert.Equal(t, 3000.0, res.Failures[0].Bound)

	assert.True(t, Validate(cutConfig(2999, 600), stockMaterial()).OK)
}

func TestValidate_RequiredFields(t *testing.T) {
	res := Validate(worktop.Configuration{}, nil)
	require.False(t, res.OK)
	assert.Equal(t, []string{"assembly", "material"}, fields(res))

	res = Validate(cutConfig(0, -5), stockMaterial())
	assert.Equal(t, []string{"a", "b"}, fields(res))

	splice := worktop.Configuration{Assembly: worktop.StraightSplice{A: 1000, B: 600, D: 600}, MaterialID: 1}
	res = Validate(splice, stockMaterial())
	assert.Equal(t, []string{"c"}, fields(res))

	splice.Assembly = worktop.StraightSplice{A: 1000, B: 600, C: 800, D: 600}
	assert.True(t, Validate(splice, stockMaterial()).OK)
}

func TestValidate_UJoinHasNoDimensionalRules(t *testing.T) {
	cfg := worktop.Configuration{Assembly: worktop.UJoin{}, MaterialID: 1}
	assert.True(t, Validate(cfg, stockMaterial()).OK)
	assert.True(t, IsComplete(cfg, stockMaterial()))
}

func TestValidate_MaterialWithoutStockDimensions(t *testing.T) {
	m := stockMaterial()
	m.Length = 0
	res := Validate(cutConfig(1000, 600), m)
	require.False(t, res.OK)
	assert.Equal(t, "material", res.Failures[0].Field)
}

func TestValidate_LeftJoin(t *testing.T) {
	tests := []struct {
		name   string
		shape  worktop.LeftJoin
		fields []string
	}{
		{"fits", worktop.LeftJoin{A: 800, B: 600, C: 1000, D: 300}, nil},
		{"A equal to stock length", worktop.LeftJoin{A: 3000, B: 600, C: 1000, D: 300}, nil},
		{"A over stock length", worktop.LeftJoin{A: 3001, B: 600, C: 1000, D: 300}, []string{"a"}},
		{"perpendicular run at allowance", worktop.LeftJoin{A: 800, B: 600, C: 3250, D: 300}, nil},
		{"perpendicular run over allowance", worktop.LeftJoin{A: 800, B: 600, C: 3251, D: 300}, []string{"c"}},
		{"D over width", worktop.LeftJoin{A: 800, B: 600, C: 1000, D: 601}, []string{"d"}},
		{"C equal to D", worktop.LeftJoin{A: 800, B: 600, C: 300, D: 300}, nil},
		{"C shorter than D", worktop.LeftJoin{A: 800, B: 600, C: 200, D: 300}, []string{"c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := worktop.Configuration{Assembly: tt.shape, MaterialID: 1}
			res := Validate(cfg, stockMaterial())
			if tt.fields == nil {
				assert.True(t, res.OK, "%+v", res.Failures)
				return
			}
			assert.Equal(t, tt.fields, fields(res))
		})
	}
}

func TestValidate_RightJoin(t *testing.T) {
	ok := worktop.Configuration{Assembly: worktop.RightJoin{A: 3250, B: 600, C: 3000, D: 300}, MaterialID: 1}
	assert.True(t, Validate(ok, stockMaterial()).OK)

	tooLong := worktop.Configuration{Assembly: worktop.RightJoin{A: 3251, B: 600, C: 3001, D: 300}, MaterialID: 1}
	res := Validate(tooLong, stockMaterial())
	assert.Equal(t, []string{"a", "c"}, fields(res))
	assert.Equal(t, 2950.0, res.Failures[0].Bound)

	short := worktop.Configuration{Assembly: worktop.RightJoin{A: 200, B: 600, C: 1000, D: 300}, MaterialID: 1}
	res = Validate(short, stockMaterial())
	require.Equal(t, []string{"a"}, fields(res))
	assert.Equal(t, 300.0, res.Failures[0].Bound)
	assert.False(t, IsComplete(short, stockMaterial()))
}

func TestValidate_LeftJoinOverlapBound(t *testing.T) {
	cfg := worktop.Configuration{Assembly: worktop.LeftJoin{A: 800, B: 600, C: 200, D: 300}, MaterialID: 1}

	res := Validate(cfg, stockMaterial())
	require.Equal(t, []string{"c"}, fields(res))
	assert.Equal(t, 300.0, res.Failures[0].Bound)
	assert.Contains(t, res.Failures[0].Message, "at least D")
	assert.False(t, IsComplete(cfg, stockMaterial()))
}

func TestValidate_CutRadiusRules(t *testing.T) {
	cfg := cutConfig(1200, 600)
	cfg.Corners = [4]worktop.Corner{
		worktop.RadiusCorner(300),
		worktop.RadiusCorner(100),
		worktop.RadiusCorner(300),
		worktop.NoCorner(),
	}
	assert.True(t, Validate(cfg, stockMaterial()).OK, "R1 + R3 = B is allowed")

	cfg.Corners[2] = worktop.RadiusCorner(301)
	res := Validate(cfg, stockMaterial())
	require.False(t, res.OK)
	assert.Equal(t, []string{"corner1"}, fields(res))

	cfg.Corners[2] = worktop.NoCorner()
	cfg.Corners[3] = worktop.RadiusCorner(700)
	res = Validate(cfg, stockMaterial())
	assert.Equal(t, []string{"corner4", "corner2"}, fields(res))
}

func TestValidate_JoinRadiiMeasuredAgainstBothMembers(t *testing.T) {
	cfg := worktop.Configuration{
		Assembly:   worktop.LeftJoin{A: 800, B: 600, C: 1000, D: 300},
		MaterialID: 1,
		Corners: [4]worktop.Corner{
			worktop.RadiusCorner(200),
			worktop.RadiusCorner(400),
			worktop.RadiusCorner(100),
			worktop.NoCorner(),
		},
	}
	assert.True(t, Validate(cfg, stockMaterial()).OK)

	cfg.Corners[2] = worktop.RadiusCorner(150)
	res := Validate(cfg, stockMaterial())
	assert.Equal(t, []string{"corner1"}, fields(res))
	assert.Equal(t, 300.0, res.Failures[0].Bound)
}

func TestValidate_InconsistentCornerRejected(t *testing.T) {
	cfg := cutConfig(1200, 600)
	cfg.Corners[1] = worktop.CornerFromFields(20, 30, 30)

	res := Validate(cfg, stockMaterial())
	require.False(t, res.OK)
	assert.Equal(t, "corner2", res.Failures[0].Field)
	assert.Contains(t, res.Failures[0].Message, "keep only one")
	assert.False(t, IsComplete(cfg, stockMaterial()))
}

func TestValidate_CutoutOutsideMainMemberRejected(t *testing.T) {
	cfg := cutConfig(1200, 600)
	cfg.Cutouts = []worktop.Cutout{{Width: 560, Height: 490, OffsetEdge1: 700, OffsetEdge2: 50}}

	res := Validate(cfg, stockMaterial())
	require.False(t, res.OK)
	require.Len(t, res.Failures, 1)
	assert.Equal(t, "cutouts[0].offset_edge1", res.Failures[0].Field)
	assert.Equal(t, 1200.0, res.Failures[0].Bound)
	assert.Contains(t, res.Failures[0].Message, "1260")
	assert.False(t, IsComplete(cfg, stockMaterial()))

	cfg.Cutouts[0].OffsetEdge1 = 640
	assert.True(t, Validate(cfg, stockMaterial()).OK)
}

func TestValidate_PerpendicularCutouts(t *testing.T) {
	cut := cutConfig(1200, 600)
	cut.Cutouts = []worktop.Cutout{{Width: 100, Height: 100, Member: worktop.MemberPerpendicular}}
	res := Validate(cut, stockMaterial())
	assert.Equal(t, []string{"cutouts[0].member"}, fields(res))

	join := worktop.Configuration{
		Assembly:   worktop.LeftJoin{A: 800, B: 600, C: 1000, D: 300},
		MaterialID: 1,
		Cutouts: []worktop.Cutout{
			{Width: 500, Height: 200, OffsetEdge1: 400, OffsetEdge2: 50, Member: worktop.MemberPerpendicular},
		},
	}
	assert.True(t, Validate(join, stockMaterial()).OK)

	join.Cutouts[0].OffsetEdge2 = 150
	res = Validate(join, stockMaterial())
	assert.Equal(t, []string{"cutouts[0].offset_edge2"}, fields(res))
	assert.Equal(t, 300.0, res.Failures[0].Bound)
}

func TestValidate_TooManyCutouts(t *testing.T) {
	cfg := cutConfig(2000, 600)
	for i := 0; i < 4; i++ {
		cfg.Cutouts = append(cfg.Cutouts, worktop.Cutout{Width: 100, Height: 100, OffsetEdge1: float64(i) * 200})
	}
	res := Validate(cfg, stockMaterial())
	assert.Equal(t, []string{"cutouts"}, fields(res))
}

func TestValidate_EdgePositionsFiveAndSixOnlyOnJoins(t *testing.T) {
	cfg := cutConfig(1200, 600)
	cfg.EdgeBanding = worktop.EdgeBanding{Kind: worktop.BandingTypeA, Positions: [6]bool{true, false, false, false, true, false}}
	res := Validate(cfg, stockMaterial())
	assert.Equal(t, []string{"edge_banding.position5"}, fields(res))

	join := worktop.Configuration{
		Assembly:    worktop.RightJoin{A: 1500, B: 600, C: 1000, D: 600},
		MaterialID:  1,
		EdgeBanding: cfg.EdgeBanding,
	}
	assert.True(t, Validate(join, stockMaterial()).OK)
}

func TestValidateAndIsCompleteAgree(t *testing.T) {
	shapes := []worktop.Assembly{
		nil,
		worktop.Cut{A: 1200, B: 600},
		worktop.Cut{A: 3000, B: 600},
		worktop.Cut{A: 1200, B: 0},
		worktop.LeftJoin{A: 800, B: 600, C: 1000, D: 300},
		worktop.LeftJoin{A: 800, B: 600, C: 4000, D: 300},
		worktop.RightJoin{A: 3400, B: 600, C: 1000, D: 300},
		worktop.LeftJoin{A: 800, B: 600, C: 200, D: 300},
		worktop.RightJoin{A: 200, B: 600, C: 1000, D: 300},
		worktop.StraightSplice{A: 1000, B: 600, C: 0, D: 600},
		worktop.UJoin{},
	}
	corners := [][4]worktop.Corner{
		{},
		{worktop.RadiusCorner(250), worktop.NoCorner(), worktop.RadiusCorner(400), worktop.NoCorner()},
		{worktop.CornerFromFields(10, 10, 10)},
		{worktop.ChamferCorner(30, 30)},
	}
	cutouts := [][]worktop.Cutout{
		nil,
		{{Width: 500, Height: 400, OffsetEdge1: 100, OffsetEdge2: 50}},
		{{Width: 500, Height: 400, OffsetEdge1: 1000, OffsetEdge2: 50}},
		{{Width: 100, Height: 100, Member: worktop.MemberPerpendicular}},
	}
	materials := []*worktop.Material{nil, stockMaterial()}

	for _, shape := range shapes {
		for _, cs := range corners {
			for _, co := range cutouts {
				for _, m := range materials {
					for _, noPostforming := range []bool{false, true} {
						cfg := worktop.Configuration{
							Assembly:          shape,
							MaterialID:        1,
							NoPostformingEdge: noPostforming,
							Corners:           cs,
							Cutouts:           co,
						}
						res := Validate(cfg, m)
						require.Equal(t, res.OK, IsComplete(cfg, m), "shape %#v corners %v cutouts %v material %v", shape, cs, co, m != nil)
						require.Equal(t, res.OK, len(res.Failures) == 0)
					}
				}
			}
		}
	}
}
