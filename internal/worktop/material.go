package worktop

// Material is a stock worktop from the catalog. Dimensions are millimetres,
// PricePerMeter is net per running metre.
type Material struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Width         float64 `json:"width"`
	Length        float64 `json:"length"`
	Thickness     float64 `json:"thickness"`
	PricePerMeter float64 `json:"price_per_meter"`
	OnStock       bool    `json:"on_stock"`
	VATPercent    float64 `json:"vat_percent"`
	Currency      string  `json:"currency"`
}

// Catalog is an in-memory material lookup keyed by id.
type Catalog map[int64]Material

// Material returns the material with the given id.
func (c Catalog) Material(id int64) (Material, bool) {
	m, ok := c[id]
	return m, ok
}

// NewCatalog indexes materials by id. Later duplicates win.
func NewCatalog(materials []Material) Catalog {
	c := make(Catalog, len(materials))
	for _, m := range materials {
		c[m.ID] = m
	}
	return c
}
