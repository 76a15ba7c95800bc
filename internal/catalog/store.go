// Package catalog persists the material catalog, the fee schedule and saved
// quote snapshots in SQLite.
package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Simplici0/worktop/internal/worktop"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// Store is the SQLite-backed repository.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// NewStore returns a Store on an opened and migrated database.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db, now: time.Now}
}

const materialColumns = `id, name, width_mm, length_mm, thickness_mm, price_per_meter, on_stock, vat_percent, currency`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMaterial(row rowScanner) (worktop.Material, error) {
	var m worktop.Material
	err := row.Scan(&m.ID, &m.Name, &m.Width, &m.Length, &m.Thickness, &m.PricePerMeter, &m.OnStock, &m.VATPercent, &m.Currency)
	return m, err
}

// ListMaterials returns every material ordered by name.
func (s *Store) ListMaterials(ctx context.Context) ([]worktop.Material, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+materialColumns+` FROM materials ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("query materials: %w", err)
	}
	defer rows.Close()

	materials := make([]worktop.Material, 0)
	for rows.Next() {
		m, err := scanMaterial(rows)
		if err != nil {
			return nil, fmt.Errorf("scan material: %w", err)
		}
		materials = append(materials, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate materials: %w", err)
	}

	return materials, nil
}

// Materials returns the catalog as an id lookup for the calculator.
func (s *Store) Materials(ctx context.Context) (worktop.Catalog, error) {
	materials, err := s.ListMaterials(ctx)
	if err != nil {
		return nil, err
	}
	return worktop.NewCatalog(materials), nil
}

// Material returns one material by id.
func (s *Store) Material(ctx context.Context, id int64) (worktop.Material, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+materialColumns+` FROM materials WHERE id = ?`, id)
	m, err := scanMaterial(row)
	if errors.Is(err, sql.ErrNoRows) {
		return worktop.Material{}, fmt.Errorf("material %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return worktop.Material{}, fmt.Errorf("query material %d: %w", id, err)
	}
	return m, nil
}

// CreateMaterial inserts m and returns it with its new id.
func (s *Store) CreateMaterial(ctx context.Context, m worktop.Material) (worktop.Material, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO materials (name, width_mm, length_mm, thickness_mm, price_per_meter, on_stock, vat_percent, currency)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, m.Name, m.Width, m.Length, m.Thickness, m.PricePerMeter, m.OnStock, m.VATPercent, m.Currency)
	if err != nil {
		return worktop.Material{}, fmt.Errorf("insert material: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return worktop.Material{}, fmt.Errorf("read material id: %w", err)
	}
	m.ID = id
	return m, nil
}

// UpdateMaterial overwrites the material with m.ID.
func (s *Store) UpdateMaterial(ctx context.Context, m worktop.Material) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE materials
		SET
			name = ?,
			width_mm = ?,
			length_mm = ?,
			thickness_mm = ?,
			price_per_meter = ?,
			on_stock = ?,
			vat_percent = ?,
			currency = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, m.Name, m.Width, m.Length, m.Thickness, m.PricePerMeter, m.OnStock, m.VATPercent, m.Currency, m.ID)
	if err != nil {
		return fmt.Errorf("update material %d: %w", m.ID, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update material %d: %w", m.ID, err)
	}
	if affected == 0 {
		return fmt.Errorf("material %d: %w", m.ID, ErrNotFound)
	}
	return nil
}
