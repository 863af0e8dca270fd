package factor

import (
	"math"
	"testing"

	"SignalSentry/internal/model"
)

func constBars(n int, close, volume float64) []model.Bar {
	bars := make([]model.Bar, n)
	for i := range bars {
		bars[i] = model.Bar{Close: close, Volume: volume}
	}
	return bars
}

func TestCompute_FlatSeries(t *testing.T) {
	rows := Compute(constBars(25, 100, 1000), DefaultConfig())
	last := rows[len(rows)-1]

	if last.VolumeMA != 1000 {
		t.Errorf("volume_ma = %v, want 1000", last.VolumeMA)
	}
	if last.PriceChangePct != 0 {
		t.Errorf("price_change_pct = %v, want 0", last.PriceChangePct)
	}
	// std is exactly 0 and substituted, so a zero numerator stays 0
	if last.ZScore != 0 {
		t.Errorf("z_score = %v, want 0 for a flat series", last.ZScore)
	}
	// no gains and no losses: rs = 0/0.0001 = 0
	if last.RSI != 0 {
		t.Errorf("rsi = %v, want 0 for a flat series", last.RSI)
	}
	// relative volume 1 over a flat price: bounded only by the epsilon
	want := 1.0 / epsilon
	if math.Abs(last.VPD-want) > 1 {
		t.Errorf("vpd = %v, want ~%v", last.VPD, want)
	}
}

func TestCompute_PanicSellBar(t *testing.T) {
	bars := constBars(25, 100, 1000)
	bars[24].Close = 80
	bars[24].Volume = 50000
	rows := Compute(bars, DefaultConfig())
	last := rows[24]

	// trailing 20 volumes: 19x1000 + 50000
	if math.Abs(last.VolumeMA-3450) > 1e-9 {
		t.Errorf("volume_ma = %v, want 3450", last.VolumeMA)
	}
	if math.Abs(last.PriceChangePct-(-0.2)) > 1e-12 {
		t.Errorf("price_change_pct = %v, want -0.2", last.PriceChangePct)
	}
	if last.VPD <= 2.0 {
		t.Errorf("vpd = %v, want far above 2.0", last.VPD)
	}
	if last.RSI >= 30 {
		t.Errorf("rsi = %v, want depressed below 30", last.RSI)
	}
	if last.ZScore >= -2.0 {
		t.Errorf("z_score = %v, want below -2.0", last.ZScore)
	}
}

func TestCompute_InsufficientHistoryIsMissing(t *testing.T) {
	cfg := DefaultConfig()
	rows := Compute(constBars(25, 100, 1000), cfg)

	for i := 0; i < cfg.VolumeMAPeriod-1; i++ {
		if !model.Missing(rows[i].VolumeMA) {
			t.Fatalf("volume_ma[%d] defined before window fills", i)
		}
		if !model.Missing(rows[i].ZScore) {
			t.Fatalf("z_score[%d] defined before window fills", i)
		}
	}
	if !model.Missing(rows[0].PriceChangePct) {
		t.Error("price_change_pct[0] must be missing")
	}
	for i := 0; i < cfg.RSIPeriod; i++ {
		if !model.Missing(rows[i].RSI) {
			t.Fatalf("rsi[%d] defined before %d deltas exist", i, cfg.RSIPeriod)
		}
	}
	if model.Missing(rows[cfg.RSIPeriod].RSI) {
		t.Errorf("rsi[%d] should be the first defined value", cfg.RSIPeriod)
	}
}

func TestCompute_MissingVolumeAffectsOnlyItsWindows(t *testing.T) {
	bars := constBars(50, 100, 1000)
	bars[10].Volume = model.MissingValue()
	rows := Compute(bars, DefaultConfig())

	// windows covering index 10: rows 19..29
	for i := 19; i <= 29; i++ {
		if !model.Missing(rows[i].VolumeMA) {
			t.Errorf("volume_ma[%d] should be missing, window includes the bad bar", i)
		}
		if !model.Missing(rows[i].VPD) {
			t.Errorf("vpd[%d] should propagate the missing volume_ma", i)
		}
	}
	for i := 30; i < 50; i++ {
		if model.Missing(rows[i].VolumeMA) {
			t.Errorf("volume_ma[%d] should recover once the bad bar leaves the window", i)
		}
	}
	// close-derived factors are untouched
	if model.Missing(rows[25].RSI) || model.Missing(rows[25].ZScore) {
		t.Error("rsi/z_score must not be affected by a missing volume")
	}
}

func TestComputeRSI_Bounds(t *testing.T) {
	// alternating gains and losses of varying size
	closes := make([]float64, 60)
	p := 100.0
	for i := range closes {
		if i%3 == 0 {
			p += float64(i%7) + 0.5
		} else {
			p -= float64(i%5) * 0.4
		}
		closes[i] = p
	}
	for i, v := range computeRSI(closes, 14) {
		if model.Missing(v) {
			continue
		}
		if v < 0 || v > 100 {
			t.Fatalf("rsi[%d] = %v out of [0,100]", i, v)
		}
	}
}

func TestComputeRSI_AllGainsNearHundred(t *testing.T) {
	closes := make([]float64, 20)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}
	rsi := computeRSI(closes, 14)
	last := rsi[len(rsi)-1]
	if last < 99.9 || last > 100 {
		t.Errorf("rsi = %v, want near 100 when losses are zero", last)
	}
}

func TestCompute_ZeroVolumeAverageSubstituted(t *testing.T) {
	bars := constBars(25, 100, 0)
	bars[24].Close = 101
	rows := Compute(bars, DefaultConfig())
	last := rows[24]
	if model.Missing(last.VPD) || math.IsInf(last.VPD, 0) {
		t.Fatalf("vpd = %v, zero volume average must be substituted, not blow up", last.VPD)
	}
	// volume 0 over substituted mean 1 gives a 0 numerator
	if last.VPD != 0 {
		t.Errorf("vpd = %v, want 0", last.VPD)
	}
}

func TestCompute_Causal(t *testing.T) {
	bars := constBars(40, 100, 1000)
	bars[39].Close = 80
	before := Compute(bars[:30], DefaultConfig())
	after := Compute(bars, DefaultConfig())
	for i := range before {
		if !rowsEqual(before[i], after[i]) {
			t.Fatalf("row %d changed when future bars were appended", i)
		}
	}
}

func rowsEqual(a, b model.FactorRow) bool {
	eq := func(x, y float64) bool {
		if model.Missing(x) && model.Missing(y) {
			return true
		}
		return x == y
	}
	return eq(a.VolumeMA, b.VolumeMA) && eq(a.PriceChangePct, b.PriceChangePct) &&
		eq(a.VPD, b.VPD) && eq(a.RSI, b.RSI) && eq(a.ZScore, b.ZScore)
}
