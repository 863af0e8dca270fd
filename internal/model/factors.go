package model

// FactorRow holds the derived statistics for one bar index.
// A field stays NaN until its trailing window has enough defined history;
// missing inputs propagate as NaN, never as zero.
type FactorRow struct {
	VolumeMA       float64
	PriceChangePct float64
	VPD            float64
	RSI            float64
	ZScore         float64
}
