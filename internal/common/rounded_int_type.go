package common

import (
	"encoding/json"
	"math"
)

// RoundedInt decodes a JSON number, rounding fractional values to the nearest integer.
// Some airport feeds publish elevations as 364.0 or 13.5.
type RoundedInt int

func (ri *RoundedInt) UnmarshalJSON(b []byte) error {
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*ri = RoundedInt(math.Round(f))
	return nil
}
