package models

import (
	"encoding/json"
	"math"
)

// RawGlobal mirrors the first element of the CoinLore global payload.
type RawGlobal struct {
	CoinsCount      Numeric `json:"coins_count"`
	ActiveMarkets   Numeric `json:"active_markets"`
	TotalMarketCap  Numeric `json:"total_mcap"`
	TotalVolume     Numeric `json:"total_volume"`
	BTCDominance    Numeric `json:"btc_d"`
	ETHDominance    Numeric `json:"eth_d"`
	MarketCapChange Numeric `json:"mcap_change"`
	VolumeChange    Numeric `json:"volume_change"`
}

// UnmarshalJSON pre-fills every field with NaN so omitted fields coerce the
// same way as non-numeric ones.
func (r *RawGlobal) UnmarshalJSON(data []byte) error {
	type alias RawGlobal
	nan := Numeric(math.NaN())
	a := alias{
		CoinsCount:      nan,
		ActiveMarkets:   nan,
		TotalMarketCap:  nan,
		TotalVolume:     nan,
		BTCDominance:    nan,
		ETHDominance:    nan,
		MarketCapChange: nan,
		VolumeChange:    nan,
	}
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*r = RawGlobal(a)
	return nil
}

// GlobalData is a singleton-per-fetch snapshot of the whole market.
// Each fetch replaces the previous snapshot wholesale; snapshots are
// never merged.
type GlobalData struct {
	CoinsCount      float64
	ActiveMarkets   float64
	TotalMarketCap  float64
	TotalVolume     float64
	BTCDominance    float64
	ETHDominance    float64
	MarketCapChange float64
	VolumeChange    float64
}

// NewGlobalData builds a GlobalData from a raw API record.
func NewGlobalData(raw RawGlobal) GlobalData {
	return GlobalData{
		CoinsCount:      raw.CoinsCount.Float64(),
		ActiveMarkets:   raw.ActiveMarkets.Float64(),
		TotalMarketCap:  raw.TotalMarketCap.Float64(),
		TotalVolume:     raw.TotalVolume.Float64(),
		BTCDominance:    raw.BTCDominance.Float64(),
		ETHDominance:    raw.ETHDominance.Float64(),
		MarketCapChange: raw.MarketCapChange.Float64(),
		VolumeChange:    raw.VolumeChange.Float64(),
	}
}

// FormattedTotalMarketCap renders the total market cap abbreviated, e.g. "$2.35T".
func (g GlobalData) FormattedTotalMarketCap() string {
	return FormatLargeUSD(g.TotalMarketCap)
}

// FormattedTotalVolume renders the total volume abbreviated.
func (g GlobalData) FormattedTotalVolume() string {
	return FormatLargeUSD(g.TotalVolume)
}

// FormattedMarketCapChange renders the market cap change sign-prefixed.
func (g GlobalData) FormattedMarketCapChange() string {
	return FormatPercent(g.MarketCapChange)
}

// IsPositiveMarketCapChange reports whether the market cap change is strictly positive.
func (g GlobalData) IsPositiveMarketCapChange() bool {
	return g.MarketCapChange > 0
}

// FormattedBTCDominance renders BTC dominance as a plain percentage.
func (g GlobalData) FormattedBTCDominance() string {
	if !Numeric(g.BTCDominance).Valid() {
		return Placeholder
	}
	return fixed(g.BTCDominance) + "%"
}
