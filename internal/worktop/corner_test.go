package worktop

import "testing"

func TestCornerFromFields(t *testing.T) {
	tests := []struct {
		name      string
		radius    float64
		x, y      float64
		wantKind  CornerKind
		radiusCut bool
		angleCut  bool
	}{
		{"empty", 0, 0, 0, CornerNone, false, false},
		{"radius only", 20, 0, 0, CornerRadius, true, false},
		{"full chamfer", 0, 30, 40, CornerChamfer, false, true},
		{"half chamfer", 0, 30, 0, CornerChamfer, false, false},
		{"radius with half chamfer keeps radius", 20, 30, 0, CornerRadius, true, false},
		{"radius with full chamfer", 20, 30, 40, CornerInconsistent, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := CornerFromFields(tt.radius, tt.x, tt.y)
			if c.Kind() != tt.wantKind {
				t.Fatalf("kind = %v, want %v", c.Kind(), tt.wantKind)
			}
			if c.IsRadiusCut() != tt.radiusCut {
				t.Errorf("IsRadiusCut = %v, want %v", c.IsRadiusCut(), tt.radiusCut)
			}
			if c.IsAngleCut() != tt.angleCut {
				t.Errorf("IsAngleCut = %v, want %v", c.IsAngleCut(), tt.angleCut)
			}
		})
	}
}

func TestCornerEditsAreMutuallyExclusive(t *testing.T) {
	c := NoCorner().WithRadius(25)
	if c.Kind() != CornerRadius || c.Radius() != 25 {
		t.Fatalf("WithRadius: got %v radius %v", c.Kind(), c.Radius())
	}

	c = c.WithChamfer(30, 0)
	if c.Kind() != CornerRadius {
		t.Fatalf("half chamfer must not clear the radius, got %v", c.Kind())
	}

	c = c.WithChamfer(30, 40)
	if c.Kind() != CornerChamfer || c.Radius() != 0 {
		t.Fatalf("complete chamfer must clear the radius, got %v radius %v", c.Kind(), c.Radius())
	}
	if x, y := c.Chamfer(); x != 30 || y != 40 {
		t.Fatalf("Chamfer = (%v, %v), want (30, 40)", x, y)
	}

	c = c.WithRadius(10)
	if x, y := c.Chamfer(); c.Kind() != CornerRadius || x != 0 || y != 0 {
		t.Fatalf("radius must clear the chamfer, got %v (%v, %v)", c.Kind(), x, y)
	}

	if c = c.WithRadius(0); c.Kind() != CornerNone {
		t.Fatalf("clearing the radius should leave no treatment, got %v", c.Kind())
	}
}
