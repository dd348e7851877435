package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"drivemap/internal/models"
)

// MeasurementRepository is the only writer of the measurements relation and
// the sole authority for id assignment. The table is append-only: rows are
// never updated or deleted, which is what makes bounded pagination stable.
type MeasurementRepository struct {
	db *sql.DB
}

// NewMeasurementRepository returns repository.
func NewMeasurementRepository(db *sql.DB) *MeasurementRepository {
	return &MeasurementRepository{db: db}
}

var measurementColumns = []string{
	"time", "eq", "direction", "event",
	"mr_dc_cell_pci", "serving_cell_bandwidth_dl", "serving_cell_cqi", "serving_cell_pci",
	"pdsch_mcs_cw0", "pdsch_mcs_cw1", "pdsch_modulation_cw0", "pdsch_modulation_cw1",
	"strongest_ssb_beam_pci", "strongest_ssb_beam_type",
	"pdsch_avg_rb_per_carrier", "pusch_avg_rb_per_carrier",
	"serving_cell_ssb_rsrp", "serving_cell_ssb_rsrq", "serving_cell_ssb_snr",
	"serving_cell_sinr_rx1", "serving_cell_sinr_rx2", "serving_cell_sinr_rx3", "serving_cell_sinr_rx4",
	"serving_cell_snr",
	"phy_throughput_dl", "phy_throughput_ul", "pusch_mcs",
	"pdsch_phy_throughput", "pusch_phy_throughput", "pdsch_phy_throughput_2",
	"all_pusch_phy_throughput",
	"pdsch_throughput_carrier_1", "pdsch_throughput_carrier_2",
	"pdsch_throughput_carrier_3", "pdsch_throughput_carrier_4",
	"multi_rat_connectivity_mode", "latitude", "longitude",
}

var (
	insertMeasurementSQL = fmt.Sprintf(
		"INSERT INTO measurements (%s) VALUES (%s) RETURNING id",
		strings.Join(measurementColumns, ", "),
		placeholders(len(measurementColumns)),
	)
	selectMeasurementSQL = fmt.Sprintf(
		"SELECT id, %s FROM measurements WHERE id <= $1 ORDER BY id ASC LIMIT $2 OFFSET $3",
		strings.Join(measurementColumns, ", "),
	)
)

func placeholders(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = fmt.Sprintf("$%d", i+1)
	}
	return strings.Join(parts, ", ")
}

func insertArgs(m *models.Measurement) []any {
	return []any{
		m.Time, m.Eq, m.Direction, m.Event,
		m.MrDcCellPci, m.ServingCellBandwidthDl, m.ServingCellCqi, m.ServingCellPci,
		m.PdschMcsCw0, m.PdschMcsCw1, m.PdschModulationCw0, m.PdschModulationCw1,
		m.StrongestSsbBeamPci, m.StrongestSsbBeamType,
		m.PdschAvgRbPerCarrier, m.PuschAvgRbPerCarrier,
		m.ServingCellSsbRsrp, m.ServingCellSsbRsrq, m.ServingCellSsbSnr,
		m.ServingCellSinrRx1, m.ServingCellSinrRx2, m.ServingCellSinrRx3, m.ServingCellSinrRx4,
		m.ServingCellSnr,
		m.PhyThroughputDl, m.PhyThroughputUl, m.PuschMcs,
		m.PdschPhyThroughput, m.PuschPhyThroughput, m.PdschPhyThroughput2,
		m.AllPuschPhyThroughput,
		m.PdschThroughputCarrier1, m.PdschThroughputCarrier2,
		m.PdschThroughputCarrier3, m.PdschThroughputCarrier4,
		m.MultiRatConnectivityMode, m.Latitude, m.Longitude,
	}
}

func scanDests(m *models.Measurement) []any {
	return []any{
		&m.ID,
		&m.Time, &m.Eq, &m.Direction, &m.Event,
		&m.MrDcCellPci, &m.ServingCellBandwidthDl, &m.ServingCellCqi, &m.ServingCellPci,
		&m.PdschMcsCw0, &m.PdschMcsCw1, &m.PdschModulationCw0, &m.PdschModulationCw1,
		&m.StrongestSsbBeamPci, &m.StrongestSsbBeamType,
		&m.PdschAvgRbPerCarrier, &m.PuschAvgRbPerCarrier,
		&m.ServingCellSsbRsrp, &m.ServingCellSsbRsrq, &m.ServingCellSsbSnr,
		&m.ServingCellSinrRx1, &m.ServingCellSinrRx2, &m.ServingCellSinrRx3, &m.ServingCellSinrRx4,
		&m.ServingCellSnr,
		&m.PhyThroughputDl, &m.PhyThroughputUl, &m.PuschMcs,
		&m.PdschPhyThroughput, &m.PuschPhyThroughput, &m.PdschPhyThroughput2,
		&m.AllPuschPhyThroughput,
		&m.PdschThroughputCarrier1, &m.PdschThroughputCarrier2,
		&m.PdschThroughputCarrier3, &m.PdschThroughputCarrier4,
		&m.MultiRatConnectivityMode, &m.Latitude, &m.Longitude,
	}
}

// EnsureSchema creates the measurements table when it does not exist yet.
// The service creates its own schema at startup, matching how the data set
// is bootstrapped from scratch on every deployment.
func (r *MeasurementRepository) EnsureSchema(ctx context.Context) error {
	cols := make([]string, 0, len(measurementColumns)+1)
	cols = append(cols, "id BIGSERIAL PRIMARY KEY")
	for _, name := range measurementColumns {
		cols = append(cols, fmt.Sprintf("%s %s", name, columnType(name)))
	}
	query := fmt.Sprintf("CREATE TABLE IF NOT EXISTS measurements (%s)", strings.Join(cols, ", "))
	if _, err := r.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("repository: ensure schema: %w", err)
	}
	return nil
}

func columnType(name string) string {
	switch name {
	case "time", "eq", "direction", "event",
		"mr_dc_cell_pci", "serving_cell_bandwidth_dl", "serving_cell_pci",
		"pdsch_modulation_cw0", "pdsch_modulation_cw1",
		"strongest_ssb_beam_pci", "strongest_ssb_beam_type",
		"multi_rat_connectivity_mode":
		return "TEXT"
	default:
		return "DOUBLE PRECISION"
	}
}

// InsertBatch stores a decoded batch inside one transaction and assigns each
// record its id from the RETURNING clause, in batch order. On any failure the
// transaction rolls back and no record of the batch becomes visible.
func (r *MeasurementRepository) InsertBatch(ctx context.Context, batch []*models.Measurement) error {
	if len(batch) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("repository: begin batch: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, insertMeasurementSQL)
	if err != nil {
		return fmt.Errorf("repository: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, m := range batch {
		if err := stmt.QueryRowContext(ctx, insertArgs(m)...).Scan(&m.ID); err != nil {
			return fmt.Errorf("repository: insert batch: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("repository: commit batch: %w", err)
	}
	return nil
}

// MaxID returns the highest assigned id, 0 for an empty table.
func (r *MeasurementRepository) MaxID(ctx context.Context) (int64, error) {
	var maxID int64
	err := r.db.QueryRowContext(ctx, "SELECT COALESCE(MAX(id), 0) FROM measurements").Scan(&maxID)
	if err != nil {
		return 0, fmt.Errorf("repository: max id: %w", err)
	}
	return maxID, nil
}

// HistoryPage returns one page of rows with id <= bound ordered by id, plus
// the total row count under the bound. Count and select run in one read-only
// transaction so they describe the same point-in-time view.
func (r *MeasurementRepository) HistoryPage(ctx context.Context, bound int64, limit, offset int) ([]*models.Measurement, int64, error) {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, 0, fmt.Errorf("repository: begin history page: %w", err)
	}
	defer tx.Rollback()

	var total int64
	err = tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM measurements WHERE id <= $1", bound).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("repository: count history: %w", err)
	}

	rows, err := tx.QueryContext(ctx, selectMeasurementSQL, bound, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("repository: select history: %w", err)
	}
	defer rows.Close()

	page := make([]*models.Measurement, 0, limit)
	for rows.Next() {
		m := &models.Measurement{}
		if err := rows.Scan(scanDests(m)...); err != nil {
			return nil, 0, fmt.Errorf("repository: scan history row: %w", err)
		}
		page = append(page, m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repository: iterate history: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, 0, fmt.Errorf("repository: close history page: %w", err)
	}
	return page, total, nil
}
