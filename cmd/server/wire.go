package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Simplici0/worktop/internal/worktop"
)

// Request payloads are flat, the way the order form sends them. They are
// checked with validator tags and then converted to the domain types.

type cornerRequest struct {
	Radius   float64 `json:"radius" validate:"gte=0"`
	ChamferX float64 `json:"chamfer_x" validate:"gte=0"`
	ChamferY float64 `json:"chamfer_y" validate:"gte=0"`
}

type cutoutRequest struct {
	Width       float64 `json:"width" validate:"gte=0"`
	Height      float64 `json:"height" validate:"gte=0"`
	OffsetEdge1 float64 `json:"offset_edge1" validate:"gte=0"`
	OffsetEdge2 float64 `json:"offset_edge2" validate:"gte=0"`
	Member      string  `json:"member" validate:"omitempty,oneof=main perpendicular"`
}

type edgeBandingRequest struct {
	Kind      string  `json:"kind" validate:"omitempty,oneof=none type_a type_b"`
	Color     string  `json:"color" validate:"max=60"`
	Positions [6]bool `json:"positions"`
}

type configurationRequest struct {
	Label             string             `json:"label" validate:"max=120"`
	Assembly          string             `json:"assembly" validate:"omitempty,oneof=cut straight_splice left_join right_join u_join"`
	A                 float64            `json:"a" validate:"gte=0"`
	B                 float64            `json:"b" validate:"gte=0"`
	C                 float64            `json:"c" validate:"gte=0"`
	D                 float64            `json:"d" validate:"gte=0"`
	E                 float64            `json:"e" validate:"gte=0"`
	F                 float64            `json:"f" validate:"gte=0"`
	MaterialID        int64              `json:"material_id" validate:"gte=0"`
	NoPostformingEdge bool               `json:"no_postforming_edge"`
	Corners           [4]cornerRequest   `json:"corners" validate:"dive"`
	EdgeBanding       edgeBandingRequest `json:"edge_banding"`
	Cutouts           []cutoutRequest    `json:"cutouts" validate:"dive"`
}

type calcRequest struct {
	Configurations []configurationRequest `json:"configurations" validate:"dive"`
}

type saveQuoteRequest struct {
	Title          string                 `json:"title" validate:"max=200"`
	Notes          string                 `json:"notes" validate:"max=2000"`
	Configurations []configurationRequest `json:"configurations" validate:"min=1,dive"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type materialRequest struct {
	Name          string  `json:"name" validate:"required,max=120"`
	Width         float64 `json:"width" validate:"gt=0"`
	Length        float64 `json:"length" validate:"gt=0"`
	Thickness     float64 `json:"thickness" validate:"gte=0"`
	PricePerMeter float64 `json:"price_per_meter" validate:"gte=0"`
	OnStock       bool    `json:"on_stock"`
	VATPercent    float64 `json:"vat_percent" validate:"gte=0,lte=100"`
	Currency      string  `json:"currency" validate:"required,len=3,alpha"`
}

func (m materialRequest) toDomain(id int64) worktop.Material {
	return worktop.Material{
		ID:            id,
		Name:          strings.TrimSpace(m.Name),
		Width:         m.Width,
		Length:        m.Length,
		Thickness:     m.Thickness,
		PricePerMeter: m.PricePerMeter,
		OnStock:       m.OnStock,
		VATPercent:    m.VATPercent,
		Currency:      strings.ToUpper(m.Currency),
	}
}

// toDomain converts the payload. A corner carrying both a radius and a
// complete chamfer becomes an inconsistent corner for the validator to report.
func (c configurationRequest) toDomain() (worktop.Configuration, error) {
	cfg := worktop.Configuration{
		Label:             strings.TrimSpace(c.Label),
		MaterialID:        c.MaterialID,
		NoPostformingEdge: c.NoPostformingEdge,
		EdgeBanding: worktop.EdgeBanding{
			Kind:      worktop.BandingKind(c.EdgeBanding.Kind),
			Color:     strings.TrimSpace(c.EdgeBanding.Color),
			Positions: c.EdgeBanding.Positions,
		},
	}

	if c.Assembly != "" {
		t, err := worktop.ParseAssemblyType(c.Assembly)
		if err != nil {
			return worktop.Configuration{}, err
		}
		cfg.Assembly, err = worktop.NewAssembly(t, worktop.Dimensions{A: c.A, B: c.B, C: c.C, D: c.D, E: c.E, F: c.F})
		if err != nil {
			return worktop.Configuration{}, err
		}
	}

	for i, corner := range c.Corners {
		cfg.Corners[i] = worktop.CornerFromFields(corner.Radius, corner.ChamferX, corner.ChamferY)
	}

	if len(c.Cutouts) > 0 {
		cfg.Cutouts = make([]worktop.Cutout, len(c.Cutouts))
		for i, co := range c.Cutouts {
			member := worktop.Member(co.Member)
			if member == "" {
				member = worktop.MemberMain
			}
			cfg.Cutouts[i] = worktop.Cutout{
				Width:       co.Width,
				Height:      co.Height,
				OffsetEdge1: co.OffsetEdge1,
				OffsetEdge2: co.OffsetEdge2,
				Member:      member,
			}
		}
	}

	return cfg, nil
}

func toConfigurations(reqs []configurationRequest) ([]worktop.Configuration, error) {
	cfgs := make([]worktop.Configuration, len(reqs))
	for i, r := range reqs {
		cfg, err := r.toDomain()
		if err != nil {
			return nil, fmt.Errorf("configuration %d: %w", i+1, err)
		}
		cfgs[i] = cfg
	}
	return cfgs, nil
}

// fieldError is one rejected request field.
type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// requestError is returned when a body cannot be decoded or fails its tags.
type requestError struct {
	Message string       `json:"error"`
	Fields  []fieldError `json:"fields,omitempty"`
}

func (e *requestError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Field + ": " + f.Message
	}
	return e.Message + ": " + strings.Join(parts, "; ")
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// decodeRequest decodes a JSON body into dst and runs its validator tags.
func decodeRequest(body []byte, v *validator.Validate, dst any) error {
	if err := json.Unmarshal(body, dst); err != nil {
		return &requestError{Message: "invalid JSON body: " + err.Error()}
	}

	err := v.Struct(dst)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &requestError{Message: err.Error()}
	}

	re := &requestError{Message: "invalid request"}
	for _, fe := range verrs {
		re.Fields = append(re.Fields, fieldError{Field: trimNamespace(fe.Namespace()), Message: describeTag(fe)})
	}
	return re
}

// trimNamespace drops the struct name validator puts in front of the path.
func trimNamespace(ns string) string {
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}

func describeTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gte":
		return "must be at least " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	case "max":
		return "is too long"
	case "min":
		return "needs at least " + fe.Param() + " entries"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "email":
		return "must be an email address"
	case "len":
		return "must be " + fe.Param() + " characters"
	}
	return "failed " + fe.Tag()
}
