package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Simplici0/worktop/internal/worktop"
)

// feeFields returns the schedule's fees in column order.
func feeFields(fs *worktop.FeeSchedule) []*worktop.Fee {
	return []*worktop.Fee{
		&fs.CrossCut,
		&fs.RadiusCut,
		&fs.AngleCut,
		&fs.Cutout,
		&fs.Join,
		&fs.LengthCutPerMeter,
		&fs.EdgeBandingPerMeter,
	}
}

// FeeSchedule returns the singleton fee schedule.
func (s *Store) FeeSchedule(ctx context.Context) (worktop.FeeSchedule, error) {
	var fs worktop.FeeSchedule
	fields := feeFields(&fs)

	dest := make([]any, 0, 2*len(fields))
	for _, f := range fields {
		dest = append(dest, &f.Gross, &f.Net)
	}

	err := s.db.QueryRowContext(ctx, `
		SELECT
			cross_cut_gross, cross_cut_net,
			radius_cut_gross, radius_cut_net,
			angle_cut_gross, angle_cut_net,
			cutout_gross, cutout_net,
			join_gross, join_net,
			length_cut_per_meter_gross, length_cut_per_meter_net,
			edge_banding_per_meter_gross, edge_banding_per_meter_net
		FROM fee_schedule
		WHERE id = 1
	`).Scan(dest...)
	if errors.Is(err, sql.ErrNoRows) {
		return worktop.FeeSchedule{}, fmt.Errorf("fee schedule: %w", ErrNotFound)
	}
	if err != nil {
		return worktop.FeeSchedule{}, fmt.Errorf("query fee schedule: %w", err)
	}
	return fs, nil
}

// UpdateFeeSchedule stores fs as the singleton fee schedule, creating it when
// missing.
func (s *Store) UpdateFeeSchedule(ctx context.Context, fs worktop.FeeSchedule) error {
	fields := feeFields(&fs)
	args := make([]any, 0, 2*len(fields))
	for _, f := range fields {
		args = append(args, f.Gross, f.Net)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO fee_schedule (
			id,
			cross_cut_gross, cross_cut_net,
			radius_cut_gross, radius_cut_net,
			angle_cut_gross, angle_cut_net,
			cutout_gross, cutout_net,
			join_gross, join_net,
			length_cut_per_meter_gross, length_cut_per_meter_net,
			edge_banding_per_meter_gross, edge_banding_per_meter_net
		) VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			cross_cut_gross = excluded.cross_cut_gross,
			cross_cut_net = excluded.cross_cut_net,
			radius_cut_gross = excluded.radius_cut_gross,
			radius_cut_net = excluded.radius_cut_net,
			angle_cut_gross = excluded.angle_cut_gross,
			angle_cut_net = excluded.angle_cut_net,
			cutout_gross = excluded.cutout_gross,
			cutout_net = excluded.cutout_net,
			join_gross = excluded.join_gross,
			join_net = excluded.join_net,
			length_cut_per_meter_gross = excluded.length_cut_per_meter_gross,
			length_cut_per_meter_net = excluded.length_cut_per_meter_net,
			edge_banding_per_meter_gross = excluded.edge_banding_per_meter_gross,
			edge_banding_per_meter_net = excluded.edge_banding_per_meter_net,
			updated_at = CURRENT_TIMESTAMP
	`, args...)
	if err != nil {
		return fmt.Errorf("upsert fee schedule: %w", err)
	}
	return nil
}
