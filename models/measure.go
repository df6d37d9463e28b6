package models

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Measure is a numeric provider field. Numbers and numeric strings are
// accepted; null or anything malformed decodes to 0 instead of failing
// the whole document.
type Measure float64

// UnmarshalJSON implements json.Unmarshaler
func (m *Measure) UnmarshalJSON(data []byte) error {
	v, _ := parseNumber(data)
	*m = Measure(v)
	return nil
}

// Float64 returns the raw value
func (m Measure) Float64() float64 {
	return float64(m)
}

// OptionalMeasure is a numeric field whose absence matters. Valid is
// false when the field was missing, null or malformed, which is
// different from a valid zero.
type OptionalMeasure struct {
	Value float64
	Valid bool
}

// Known returns a valid OptionalMeasure holding v
func Known(v float64) OptionalMeasure {
	return OptionalMeasure{Value: v, Valid: true}
}

// UnmarshalJSON implements json.Unmarshaler
func (o *OptionalMeasure) UnmarshalJSON(data []byte) error {
	v, ok := parseNumber(data)
	*o = OptionalMeasure{Value: v, Valid: ok}
	return nil
}

// MarshalJSON writes null for an invalid measure so it survives a round trip
func (o OptionalMeasure) MarshalJSON() ([]byte, error) {
	if !o.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// Code is the provider status code, sent either as a string or a number
type Code string

// UnmarshalJSON implements json.Unmarshaler
func (c *Code) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*c = Code(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*c = Code(n.String())
		return nil
	}
	*c = ""
	return nil
}

func parseNumber(data []byte) (float64, bool) {
	s := strings.TrimSpace(string(data))
	if s == "" || s == "null" {
		return 0, false
	}
	if unquoted, err := strconv.Unquote(s); err == nil {
		s = strings.TrimSpace(unquoted)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
