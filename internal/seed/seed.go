package seed

import (
	"context"
	"database/sql"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/Simplici0/worktop/internal/worktop"
)

// Config contains the values required by startup seed.
type Config struct {
	AdminEmail    string
	AdminPassword string
}

// Stats contains seed operation counters.
type Stats struct {
	Inserts int
	Updates int
}

// SampleMaterials are inserted when missing, matched by name.
var SampleMaterials = []worktop.Material{
	{Name: "Oak butcher block 38", Width: 600, Length: 4100, Thickness: 38, PricePerMeter: 18500, OnStock: true, VATPercent: 27, Currency: "HUF"},
	{Name: "White gloss 28", Width: 600, Length: 3050, Thickness: 28, PricePerMeter: 9900, OnStock: true, VATPercent: 27, Currency: "HUF"},
	{Name: "Black granite 40", Width: 635, Length: 3000, Thickness: 40, PricePerMeter: 42000, OnStock: false, VATPercent: 27, Currency: "HUF"},
}

// DefaultFees is the gross fee schedule written on first start.
var DefaultFees = worktop.FeeSchedule{
	CrossCut:            worktop.GrossFee(3000),
	RadiusCut:           worktop.GrossFee(4500),
	AngleCut:            worktop.GrossFee(4500),
	Cutout:              worktop.GrossFee(9500),
	Join:                worktop.GrossFee(26000),
	LengthCutPerMeter:   worktop.GrossFee(2000),
	EdgeBandingPerMeter: worktop.GrossFee(3500),
}

// Run executes the startup seed in an idempotent way.
func Run(ctx context.Context, db *sql.DB, cfg Config) (Stats, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return Stats{}, fmt.Errorf("begin seed transaction: %w", err)
	}

	stats := Stats{}

	steps := []func(context.Context, *sql.Tx, *Stats) error{
		func(ctx context.Context, tx *sql.Tx, stats *Stats) error {
			return seedAdmin(ctx, tx, cfg.AdminEmail, cfg.AdminPassword, stats)
		},
		ensureMaterials,
		ensureFeeSchedule,
	}
	for _, step := range steps {
		if err := step(ctx, tx, &stats); err != nil {
			_ = tx.Rollback()
			return Stats{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return Stats{}, fmt.Errorf("commit seed transaction: %w", err)
	}

	return stats, nil
}

func seedAdmin(ctx context.Context, tx *sql.Tx, email, password string, stats *Stats) error {
	if email == "" || password == "" {
		return nil
	}

	var exists bool
	if err := tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE email = ? LIMIT 1)`, email).Scan(&exists); err != nil {
		return fmt.Errorf("check admin user existence: %w", err)
	}
	if exists {
		return nil
	}

	hash, err := HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `INSERT INTO users (email, password_hash) VALUES (?, ?)`, email, hash); err != nil {
		return fmt.Errorf("insert admin user: %w", err)
	}
	stats.Inserts++
	return nil
}

// HashPassword returns a bcrypt hash of password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("generate bcrypt hash: %w", err)
	}
	return string(hash), nil
}

func ensureMaterials(ctx context.Context, tx *sql.Tx, stats *Stats) error {
	for _, m := range SampleMaterials {
		var exists bool
		if err := tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM materials WHERE name = ? LIMIT 1)`, m.Name).Scan(&exists); err != nil {
			return fmt.Errorf("check material %q existence: %w", m.Name, err)
		}
		if exists {
			continue
		}

		if _, err := tx.ExecContext(ctx, `
			INSERT INTO materials (name, width_mm, length_mm, thickness_mm, price_per_meter, on_stock, vat_percent, currency)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, m.Name, m.Width, m.Length, m.Thickness, m.PricePerMeter, m.OnStock, m.VATPercent, m.Currency); err != nil {
			return fmt.Errorf("insert material %q: %w", m.Name, err)
		}
		stats.Inserts++
	}
	return nil
}

func ensureFeeSchedule(ctx context.Context, tx *sql.Tx, stats *Stats) error {
	var exists bool
	if err := tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM fee_schedule WHERE id = 1)`).Scan(&exists); err != nil {
		return fmt.Errorf("check fee schedule existence: %w", err)
	}
	if exists {
		return nil
	}

	f := DefaultFees
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO fee_schedule (
			id,
			cross_cut_gross,
			radius_cut_gross,
			angle_cut_gross,
			cutout_gross,
			join_gross,
			length_cut_per_meter_gross,
			edge_banding_per_meter_gross
		)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?)
	`, f.CrossCut.Gross, f.RadiusCut.Gross, f.AngleCut.Gross, f.Cutout.Gross, f.Join.Gross, f.LengthCutPerMeter.Gross, f.EdgeBandingPerMeter.Gross); err != nil {
		return fmt.Errorf("insert fee schedule singleton: %w", err)
	}
	stats.Inserts++
	return nil
}
