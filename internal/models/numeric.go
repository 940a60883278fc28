package models

import (
	"bytes"
	"math"
	"strconv"
)

// Numeric is a float64 that tolerates the CoinLore API's loose typing.
// The API mixes JSON numbers, quoted numbers, nulls, and occasionally empty
// strings for the same field across responses. Anything that cannot be
// coerced to a number decodes as NaN rather than failing the whole payload.
type Numeric float64

// UnmarshalJSON decodes a JSON number, quoted number, or null.
// Null, empty strings, and non-numeric text all become NaN.
func (n *Numeric) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*n = Numeric(math.NaN())
		return nil
	}

	// Quoted value: strip the quotes and parse the inside.
	if data[0] == '"' && len(data) >= 2 && data[len(data)-1] == '"' {
		data = data[1 : len(data)-1]
	}

	f, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		*n = Numeric(math.NaN())
		return nil
	}

	*n = Numeric(f)
	return nil
}

// Float64 returns the underlying value (possibly NaN).
func (n Numeric) Float64() float64 {
	return float64(n)
}

// Valid reports whether the value coerced to an actual number.
func (n Numeric) Valid() bool {
	return !math.IsNaN(float64(n))
}
