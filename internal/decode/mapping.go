package decode

import "drivemap/internal/models"

// stringColumns maps FMT export column names to the string fields they feed.
// Columns absent from both tables are not part of the canonical schema and
// are dropped during decoding.
var stringColumns = map[string]func(*models.Measurement) **string{
	"Time":                                    func(m *models.Measurement) **string { return &m.Time },
	"EQ":                                      func(m *models.Measurement) **string { return &m.Eq },
	"Direction":                               func(m *models.Measurement) **string { return &m.Direction },
	"Event":                                   func(m *models.Measurement) **string { return &m.Event },
	"EQ1-MR-DC Cell PCI[1]":                   func(m *models.Measurement) **string { return &m.MrDcCellPci },
	"EQ1-Serving Cell Bandwidth DL (text)[1]": func(m *models.Measurement) **string { return &m.ServingCellBandwidthDl },
	"EQ1-PDSCH Modulation (CW0)[1]":           func(m *models.Measurement) **string { return &m.PdschModulationCw0 },
	"EQ1-PDSCH Modulation (CW1)[1]":           func(m *models.Measurement) **string { return &m.PdschModulationCw1 },
	"EQ1-Strongest SSB Beam PCI[1]":           func(m *models.Measurement) **string { return &m.StrongestSsbBeamPci },
	"EQ1-Strongest SSB Beam Type[1]":          func(m *models.Measurement) **string { return &m.StrongestSsbBeamType },
	"EQ1-Serving Cell PCI[1]":                 func(m *models.Measurement) **string { return &m.ServingCellPci },
	"All-Multi RAT Connectivity Mode":         func(m *models.Measurement) **string { return &m.MultiRatConnectivityMode },
}

// floatColumns maps FMT export column names to the numeric fields they feed.
var floatColumns = map[string]func(*models.Measurement) **float64{
	"EQ1-Serving Cell 1 CQI[1]":                          func(m *models.Measurement) **float64 { return &m.ServingCellCqi },
	"EQ1-PDSCH MCS (CW0)[1]":                             func(m *models.Measurement) **float64 { return &m.PdschMcsCw0 },
	"EQ1-PDSCH MCS (CW1)[1]":                             func(m *models.Measurement) **float64 { return &m.PdschMcsCw1 },
	"EQ1-PDSCH Avg RB/Allocated Slot Per Carrier[1]":     func(m *models.Measurement) **float64 { return &m.PdschAvgRbPerCarrier },
	"EQ1-PUSCH Avg RB/Allocated Slot Per Carrier[1]":     func(m *models.Measurement) **float64 { return &m.PuschAvgRbPerCarrier },
	"EQ1-Serving Cell 1 Detected SSB RSRP[1]":            func(m *models.Measurement) **float64 { return &m.ServingCellSsbRsrp },
	"EQ1-Serving Cell 1 Detected SSB RSRQ[1]":            func(m *models.Measurement) **float64 { return &m.ServingCellSsbRsrq },
	"EQ1-Serving Cell 1 Detected SSB SNR[1]":             func(m *models.Measurement) **float64 { return &m.ServingCellSsbSnr },
	"EQ1-Serving Cell SINR Rx1[1]":                       func(m *models.Measurement) **float64 { return &m.ServingCellSinrRx1 },
	"EQ1-Serving Cell SINR Rx2[1]":                       func(m *models.Measurement) **float64 { return &m.ServingCellSinrRx2 },
	"EQ1-Serving Cell SINR Rx3[1]":                       func(m *models.Measurement) **float64 { return &m.ServingCellSinrRx3 },
	"EQ1-Serving Cell SINR Rx4[1]":                       func(m *models.Measurement) **float64 { return &m.ServingCellSinrRx4 },
	"EQ1-Serving Cell SNR[1]":                            func(m *models.Measurement) **float64 { return &m.ServingCellSnr },
	"EQ1-Phy Throughput Multi-RAT DL (Mbit/s)":           func(m *models.Measurement) **float64 { return &m.PhyThroughputDl },
	"EQ1-Phy Throughput Multi-RAT UL (Mbit/s)":           func(m *models.Measurement) **float64 { return &m.PhyThroughputUl },
	"EQ1-PUSCH MCS[1]":                                   func(m *models.Measurement) **float64 { return &m.PuschMcs },
	"EQ1-PDSCH Phy Throughput (Mbit/s)":                  func(m *models.Measurement) **float64 { return &m.PdschPhyThroughput },
	"EQ1-PUSCH Phy Throughput (Mbit/s)":                  func(m *models.Measurement) **float64 { return &m.PuschPhyThroughput },
	"EQ1-PDSCH Phy Throughput (Mbit/s).1":                func(m *models.Measurement) **float64 { return &m.PdschPhyThroughput2 },
	"All-PDSCH Phy Throughput Per Carrier (Mbit/s)[1]":   func(m *models.Measurement) **float64 { return &m.PdschThroughputCarrier1 },
	"All-PDSCH Phy Throughput Per Carrier (Mbit/s)[2]":   func(m *models.Measurement) **float64 { return &m.PdschThroughputCarrier2 },
	"All-PDSCH Phy Throughput Per Carrier (Mbit/s)[3]":   func(m *models.Measurement) **float64 { return &m.PdschThroughputCarrier3 },
	"All-PDSCH Phy Throughput Per Carrier (Mbit/s)[4]":   func(m *models.Measurement) **float64 { return &m.PdschThroughputCarrier4 },
	"All-PUSCH Phy Throughput (Mbit/s)":                  func(m *models.Measurement) **float64 { return &m.AllPuschPhyThroughput },
	"All-Latitude":                                       func(m *models.Measurement) **float64 { return &m.Latitude },
	"All-Longitude":                                      func(m *models.Measurement) **float64 { return &m.Longitude },
}
