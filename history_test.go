package main

import "testing"

func TestSpreadWindowFIFO(t *testing.T) {
	w := NewSpreadWindow(100)
	for i := 1; i <= 150; i++ {
		w.Record(float64(i))
	}
	if w.Len() != 100 {
		t.Fatalf("len=%d want 100", w.Len())
	}
	s := w.Samples()
	if s[0] != 51 || s[99] != 150 {
		t.Errorf("window = [%v..%v], want [51..150]", s[0], s[99])
	}
}

func TestSpreadWindowBaseline(t *testing.T) {
	cases := []struct {
		name    string
		samples []float64
		want    float64
	}{
		{"empty", nil, 0},
		{"single", []float64{5}, 5},
		{"mean", []float64{2, 4, 6}, 4},
		{"fractional", []float64{0.1, 0.2}, 0.15},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := NewSpreadWindow(10)
			for _, s := range tc.samples {
				w.Record(s)
			}
			if got := w.Baseline(); got != tc.want {
				t.Errorf("baseline=%v want %v", got, tc.want)
			}
		})
	}
}

func TestSpreadWindowBaselineTracksEviction(t *testing.T) {
	w := NewSpreadWindow(2)
	w.Record(100)
	w.Record(2)
	w.Record(4)
	if got := w.Baseline(); got != 3 {
		t.Errorf("baseline=%v want 3", got)
	}
}

func TestSpreadBookPartition(t *testing.T) {
	b := NewSpreadBook("bitbank", 5)
	b.Partition([]string{"ETH/JPY", "BTC/JPY"})
	if b.Window("BTC/JPY") == nil || b.Window("ETH/JPY") == nil {
		t.Fatal("missing partitioned window")
	}
	if b.Window("XRP/JPY") != nil {
		t.Error("unpartitioned symbol should have no window")
	}
	if b.Window("BTC/JPY") == b.Window("ETH/JPY") {
		t.Error("symbols share a window")
	}
	first := b.Window("BTC/JPY")
	b.Partition([]string{"BTC/JPY"})
	if b.Window("BTC/JPY") != first {
		t.Error("re-partition replaced an existing window")
	}
	if got := b.Symbols(); len(got) != 2 || got[0] != "BTC/JPY" {
		t.Errorf("symbols=%v", got)
	}
}
