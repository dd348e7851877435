package models

// Measurement is a single drive-test sample. ID is zero until the record is
// durably stored; every other field is nullable, nil meaning the source had
// no usable value for it.
type Measurement struct {
	ID int64 `db:"id" json:"id"`

	// Base fields
	Time      *string `db:"time" json:"time"`
	Eq        *string `db:"eq" json:"eq"`
	Direction *string `db:"direction" json:"direction"`
	Event     *string `db:"event" json:"event"`

	// Cell info
	MrDcCellPci            *string  `db:"mr_dc_cell_pci" json:"mr_dc_cell_pci"`
	ServingCellBandwidthDl *string  `db:"serving_cell_bandwidth_dl" json:"serving_cell_bandwidth_dl"`
	ServingCellCqi         *float64 `db:"serving_cell_cqi" json:"serving_cell_cqi"`
	ServingCellPci         *string  `db:"serving_cell_pci" json:"serving_cell_pci"`

	// PDSCH MCS / modulation
	PdschMcsCw0        *float64 `db:"pdsch_mcs_cw0" json:"pdsch_mcs_cw0"`
	PdschMcsCw1        *float64 `db:"pdsch_mcs_cw1" json:"pdsch_mcs_cw1"`
	PdschModulationCw0 *string  `db:"pdsch_modulation_cw0" json:"pdsch_modulation_cw0"`
	PdschModulationCw1 *string  `db:"pdsch_modulation_cw1" json:"pdsch_modulation_cw1"`

	// SSB beam
	StrongestSsbBeamPci  *string `db:"strongest_ssb_beam_pci" json:"strongest_ssb_beam_pci"`
	StrongestSsbBeamType *string `db:"strongest_ssb_beam_type" json:"strongest_ssb_beam_type"`

	// RB allocation
	PdschAvgRbPerCarrier *float64 `db:"pdsch_avg_rb_per_carrier" json:"pdsch_avg_rb_per_carrier"`
	PuschAvgRbPerCarrier *float64 `db:"pusch_avg_rb_per_carrier" json:"pusch_avg_rb_per_carrier"`

	// SSB signal quality
	ServingCellSsbRsrp *float64 `db:"serving_cell_ssb_rsrp" json:"serving_cell_ssb_rsrp"`
	ServingCellSsbRsrq *float64 `db:"serving_cell_ssb_rsrq" json:"serving_cell_ssb_rsrq"`
	ServingCellSsbSnr  *float64 `db:"serving_cell_ssb_snr" json:"serving_cell_ssb_snr"`

	// SINR per receive antenna
	ServingCellSinrRx1 *float64 `db:"serving_cell_sinr_rx1" json:"serving_cell_sinr_rx1"`
	ServingCellSinrRx2 *float64 `db:"serving_cell_sinr_rx2" json:"serving_cell_sinr_rx2"`
	ServingCellSinrRx3 *float64 `db:"serving_cell_sinr_rx3" json:"serving_cell_sinr_rx3"`
	ServingCellSinrRx4 *float64 `db:"serving_cell_sinr_rx4" json:"serving_cell_sinr_rx4"`
	ServingCellSnr     *float64 `db:"serving_cell_snr" json:"serving_cell_snr"`

	// Throughput
	PhyThroughputDl       *float64 `db:"phy_throughput_dl" json:"phy_throughput_dl"`
	PhyThroughputUl       *float64 `db:"phy_throughput_ul" json:"phy_throughput_ul"`
	PuschMcs              *float64 `db:"pusch_mcs" json:"pusch_mcs"`
	PdschPhyThroughput    *float64 `db:"pdsch_phy_throughput" json:"pdsch_phy_throughput"`
	PuschPhyThroughput    *float64 `db:"pusch_phy_throughput" json:"pusch_phy_throughput"`
	PdschPhyThroughput2   *float64 `db:"pdsch_phy_throughput_2" json:"pdsch_phy_throughput_2"`
	AllPuschPhyThroughput *float64 `db:"all_pusch_phy_throughput" json:"all_pusch_phy_throughput"`

	// Per-carrier throughput
	PdschThroughputCarrier1 *float64 `db:"pdsch_throughput_carrier_1" json:"pdsch_throughput_carrier_1"`
	PdschThroughputCarrier2 *float64 `db:"pdsch_throughput_carrier_2" json:"pdsch_throughput_carrier_2"`
	PdschThroughputCarrier3 *float64 `db:"pdsch_throughput_carrier_3" json:"pdsch_throughput_carrier_3"`
	PdschThroughputCarrier4 *float64 `db:"pdsch_throughput_carrier_4" json:"pdsch_throughput_carrier_4"`

	// Connectivity & location
	MultiRatConnectivityMode *string  `db:"multi_rat_connectivity_mode" json:"multi_rat_connectivity_mode"`
	Latitude                 *float64 `db:"latitude" json:"latitude"`
	Longitude                *float64 `db:"longitude" json:"longitude"`
}
