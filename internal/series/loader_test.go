package series

import (
	"errors"
	"testing"

	"SignalSentry/internal/model"
)

func TestLoad_CandlesEnvelope(t *testing.T) {
	data := []byte(`{"candles":[
		{"date":"2025-01-02","open":100,"high":105,"low":95,"close":102,"volume":1000},
		{"date":"2025-01-03","open":102,"high":108,"low":101,"close":107,"volume":1200}
	]}`)
	s, err := Load(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Len() != 2 {
		t.Fatalf("expected 2 bars, got %d", s.Len())
	}
	if s.Bars[0].Date != "2025-01-02" {
		t.Errorf("unexpected date: %q", s.Bars[0].Date)
	}
	if s.Bars[1].Close != 107 {
		t.Errorf("unexpected close: %v", s.Bars[1].Close)
	}
}

func TestLoad_BareList(t *testing.T) {
	data := []byte(`[{"open":1,"high":2,"low":0.5,"close":1.5,"volume":10}]`)
	s, err := Load(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Len() != 1 {
		t.Fatalf("expected 1 bar, got %d", s.Len())
	}
	if s.Bars[0].Volume != 10 {
		t.Errorf("unexpected volume: %v", s.Bars[0].Volume)
	}
}

func TestLoad_NumericStringsCoerce(t *testing.T) {
	data := []byte(`[{"open":"100.5","close":"101","volume":"  2000 "}]`)
	s, err := Load(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b := s.Bars[0]
	if b.Open != 100.5 || b.Close != 101 || b.Volume != 2000 {
		t.Errorf("coercion failed: %+v", b)
	}
}

func TestLoad_BadFieldBecomesMissing(t *testing.T) {
	data := []byte(`[
		{"close":100,"volume":"n/a"},
		{"close":null,"volume":500},
		{"close":101,"volume":true},
		{"close":102,"volume":null}
	]`)
	s, err := Load(data)
	if err != nil {
		t.Fatalf("a bad field must not abort loading: %v", err)
	}
	if s.Len() != 4 {
		t.Fatalf("expected 4 bars, got %d", s.Len())
	}
	if !model.Missing(s.Bars[0].Volume) {
		t.Error("non-numeric string volume should be missing")
	}
	if s.Bars[0].Close != 100 {
		t.Error("sibling field must survive a bad field")
	}
	if !model.Missing(s.Bars[1].Close) {
		t.Error("null close should be missing")
	}
	if s.Bars[1].Volume != 500 {
		t.Error("sibling field must survive a null field")
	}
	if !model.Missing(s.Bars[2].Volume) {
		t.Error("boolean volume should be missing")
	}
	if !model.Missing(s.Bars[3].Volume) {
		t.Error("null volume should be missing, not zero")
	}
}

func TestLoad_NumericTimestamp(t *testing.T) {
	data := []byte(`[{"date":20250102,"close":100}]`)
	s, err := Load(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Bars[0].Date != "20250102" {
		t.Errorf("ordinal timestamp should stringify, got %q", s.Bars[0].Date)
	}
}

func TestLoad_TimestampFieldFallback(t *testing.T) {
	data := []byte(`[{"timestamp":"2025-06-01","close":50}]`)
	s, err := Load(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Bars[0].Date != "2025-06-01" {
		t.Errorf("timestamp fallback failed, got %q", s.Bars[0].Date)
	}
}

func TestLoad_NeitherShape(t *testing.T) {
	for _, data := range [][]byte{
		[]byte(`{"rows":[{"close":1}]}`),
		[]byte(`"just a string"`),
		[]byte(`{not json`),
	} {
		_, err := Load(data)
		if err == nil {
			t.Fatalf("expected error for %s", data)
		}
		var dle *DataLoadError
		if !errors.As(err, &dle) {
			t.Errorf("expected *DataLoadError, got %T", err)
		}
	}
}

func TestLoad_EmptyCandlesList(t *testing.T) {
	s, err := Load([]byte(`{"candles":[]}`))
	if err != nil {
		t.Fatalf("empty candles list is a valid (short) series: %v", err)
	}
	if s.Len() != 0 {
		t.Fatalf("expected empty series, got %d bars", s.Len())
	}
}
