// Package models defines the core domain entities for coinlens: individual
// cryptocurrency tickers and the global market snapshot, both constructed
// from raw CoinLore API records.
//
// Construction is deliberately lenient. The upstream API reports most numeric
// fields as strings and occasionally omits or nulls them; fields that fail
// numeric coercion become NaN instead of rejecting the record, and derived
// formatting renders such values as "—". Instances are immutable: every fetch
// constructs fresh values, superseding (never mutating) earlier ones with the
// same ID.
package models

import (
	"encoding/json"
	"math"
)

// RawTicker mirrors one entry of the CoinLore ticker payload.
type RawTicker struct {
	ID               string  `json:"id"`
	Symbol           string  `json:"symbol"`
	Name             string  `json:"name"`
	NameID           string  `json:"nameid"`
	Rank             Numeric `json:"rank"`
	PriceUSD         Numeric `json:"price_usd"`
	PercentChange1h  Numeric `json:"percent_change_1h"`
	PercentChange24h Numeric `json:"percent_change_24h"`
	PercentChange7d  Numeric `json:"percent_change_7d"`
	MarketCapUSD     Numeric `json:"market_cap_usd"`
	Volume24         Numeric `json:"volume24"`
	CSupply          Numeric `json:"csupply"`
	TSupply          Numeric `json:"tsupply"`
	MSupply          Numeric `json:"msupply"`
}

// UnmarshalJSON pre-fills every numeric field with NaN so that fields the
// source omits entirely coerce the same way as non-numeric ones.
func (r *RawTicker) UnmarshalJSON(data []byte) error {
	type alias RawTicker
	a := alias{
		Rank:             Numeric(math.NaN()),
		PriceUSD:         Numeric(math.NaN()),
		PercentChange1h:  Numeric(math.NaN()),
		PercentChange24h: Numeric(math.NaN()),
		PercentChange7d:  Numeric(math.NaN()),
		MarketCapUSD:     Numeric(math.NaN()),
		Volume24:         Numeric(math.NaN()),
		CSupply:          Numeric(math.NaN()),
		TSupply:          Numeric(math.NaN()),
		MSupply:          Numeric(math.NaN()),
	}
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*r = RawTicker(a)
	return nil
}

// Cryptocurrency is a single coin's market snapshot. Identity is the
// externally assigned ID; everything else is a point-in-time attribute.
type Cryptocurrency struct {
	ID               string
	Symbol           string
	Name             string
	NameID           string
	Rank             int
	PriceUSD         float64
	PercentChange1h  float64
	PercentChange24h float64
	PercentChange7d  float64
	MarketCapUSD     float64
	Volume24         float64
	CSupply          float64
	TSupply          *float64 // nil when the source omits or reports zero
	MSupply          *float64 // nil when the source omits or reports zero
}

// NewCryptocurrency builds a Cryptocurrency from a raw API record.
// Non-coercible numeric fields stay NaN; there is no validation layer.
func NewCryptocurrency(raw RawTicker) Cryptocurrency {
	return Cryptocurrency{
		ID:               raw.ID,
		Symbol:           raw.Symbol,
		Name:             raw.Name,
		NameID:           raw.NameID,
		Rank:             rankOf(raw.Rank),
		PriceUSD:         raw.PriceUSD.Float64(),
		PercentChange1h:  raw.PercentChange1h.Float64(),
		PercentChange24h: raw.PercentChange24h.Float64(),
		PercentChange7d:  raw.PercentChange7d.Float64(),
		MarketCapUSD:     raw.MarketCapUSD.Float64(),
		Volume24:         raw.Volume24.Float64(),
		CSupply:          raw.CSupply.Float64(),
		TSupply:          optionalSupply(raw.TSupply),
		MSupply:          optionalSupply(raw.MSupply),
	}
}

// rankOf truncates the raw rank; a non-coercible rank reads as 0 because
// converting NaN to int is unspecified.
func rankOf(n Numeric) int {
	if !n.Valid() {
		return 0
	}
	return int(n.Float64())
}

// optionalSupply maps absent, non-numeric, and zero supplies to nil.
// The source treats a zero supply as "not reported".
func optionalSupply(n Numeric) *float64 {
	f := n.Float64()
	if math.IsNaN(f) || f == 0 {
		return nil
	}
	return &f
}

// FormattedPrice renders the USD price as a currency string, e.g. "$6,456.52".
func (c Cryptocurrency) FormattedPrice() string {
	return FormatUSD(c.PriceUSD)
}

// FormattedMarketCap renders the market cap with a K/M/B/T suffix, e.g. "$1.50B".
func (c Cryptocurrency) FormattedMarketCap() string {
	return FormatLargeUSD(c.MarketCapUSD)
}

// FormattedVolume24 renders the 24h volume with a K/M/B/T suffix.
func (c Cryptocurrency) FormattedVolume24() string {
	return FormatLargeUSD(c.Volume24)
}

// FormattedPercentChange24h renders the 24h change sign-prefixed, e.g. "+3.21%".
func (c Cryptocurrency) FormattedPercentChange24h() string {
	return FormatPercent(c.PercentChange24h)
}

// FormattedPercentChange1h renders the 1h change sign-prefixed.
func (c Cryptocurrency) FormattedPercentChange1h() string {
	return FormatPercent(c.PercentChange1h)
}

// FormattedPercentChange7d renders the 7d change sign-prefixed.
func (c Cryptocurrency) FormattedPercentChange7d() string {
	return FormatPercent(c.PercentChange7d)
}

// IsPositiveChange reports whether the 24h change is strictly positive.
func (c Cryptocurrency) IsPositiveChange() bool {
	return c.PercentChange24h > 0
}

// FormattedCSupply renders the circulating supply with comma grouping.
func (c Cryptocurrency) FormattedCSupply() string {
	return FormatSupply(c.CSupply)
}

// FormattedTSupply renders the total supply, or "—" when not reported.
func (c Cryptocurrency) FormattedTSupply() string {
	if c.TSupply == nil {
		return Placeholder
	}
	return FormatSupply(*c.TSupply)
}

// FormattedMSupply renders the max supply, or "—" when not reported.
func (c Cryptocurrency) FormattedMSupply() string {
	if c.MSupply == nil {
		return Placeholder
	}
	return FormatSupply(*c.MSupply)
}

// ConvertFromUSD converts a USD amount into units of this cryptocurrency.
func (c Cryptocurrency) ConvertFromUSD(usd float64) float64 {
	return usd / c.PriceUSD
}

// ConvertToUSD converts an amount of this cryptocurrency into USD.
func (c Cryptocurrency) ConvertToUSD(amount float64) float64 {
	return amount * c.PriceUSD
}
