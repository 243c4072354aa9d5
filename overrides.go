// FILE: overrides.go
// Package main – Static minimum trade amounts for venues that do not publish
// them.
//
// The built-in table covers bitFlyer. MARKETS_FILE may point at a YAML file
// that adds or replaces entries, keyed by venue then unified symbol:
//
//	bitflyer:
//	  BTC/JPY: 0.001
//	  ETH/JPY: 0.01
//	bitbank:
//	  MONA/JPY: 0.0001
package main

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

var builtinMinAmounts = map[string]map[string]float64{
	"bitflyer": {
		"BTC/JPY":  0.001,
		"ELF/JPY":  0.01,
		"ETH/BTC":  0.01,
		"BCH/BTC":  0.01,
		"ETH/JPY":  0.01,
		"XRP/JPY":  0.1,
		"XLM/JPY":  0.1,
		"MONA/JPY": 0.1,
	},
}

type Overrides struct {
	minAmounts map[string]map[string]float64
}

func NewOverrides() *Overrides {
	o := &Overrides{minAmounts: map[string]map[string]float64{}}
	for venue, tbl := range builtinMinAmounts {
		o.merge(venue, tbl)
	}
	return o
}

// LoadOverrides returns the built-in table, merged with path when set.
func LoadOverrides(path string) (*Overrides, error) {
	o := NewOverrides()
	if strings.TrimSpace(path) == "" {
		return o, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read markets file: %w", err)
	}
	var doc map[string]map[string]float64
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse markets file %s: %w", path, err)
	}
	for venue, tbl := range doc {
		for sym, amt := range tbl {
			if amt <= 0 {
				return nil, fmt.Errorf("markets file %s: %s %s must be > 0", path, venue, sym)
			}
		}
		o.merge(venue, tbl)
	}
	return o, nil
}

func (o *Overrides) merge(venue string, tbl map[string]float64) {
	venue = strings.ToLower(venue)
	dst, ok := o.minAmounts[venue]
	if !ok {
		dst = map[string]float64{}
		o.minAmounts[venue] = dst
	}
	for sym, amt := range tbl {
		dst[strings.ToUpper(sym)] = amt
	}
}

// MinAmount looks up a static minimum; a nil receiver has no entries.
func (o *Overrides) MinAmount(venue, symbol string) (float64, bool) {
	if o == nil {
		return 0, false
	}
	amt, ok := o.minAmounts[strings.ToLower(venue)][strings.ToUpper(symbol)]
	return amt, ok && amt > 0
}
