package payload

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Score is a score field that may arrive as a number, a numeric string, an
// object with value/displayValue, null, or be absent. Valid is false when no
// usable number was found. Raw keeps the provider text for passthrough.
type Score struct {
	Value int
	Valid bool
	Raw   string
}

// NewScore returns a valid Score.
func NewScore(v int) Score {
	return Score{Value: v, Valid: true, Raw: strconv.Itoa(v)}
}

// UnmarshalJSON implements json.Unmarshaler. It never fails: unusable values
// decode as an invalid Score.
func (s *Score) UnmarshalJSON(b []byte) error {
	*s = Score{}
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}
	switch b[0] {
	case '"':
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return nil
		}
		*s = ParseScore(str)
	case '{':
		var obj struct {
			Value        *float64 `json:"value"`
			DisplayValue string   `json:"displayValue"`
		}
		if err := json.Unmarshal(b, &obj); err != nil {
			return nil
		}
		if obj.Value != nil {
			*s = scoreFromFloat(*obj.Value)
			return nil
		}
		*s = ParseScore(obj.DisplayValue)
	default:
		var f float64
		if err := json.Unmarshal(b, &f); err != nil {
			return nil
		}
		*s = scoreFromFloat(f)
	}
	return nil
}

// MarshalJSON renders the raw provider text, or null when absent.
func (s Score) MarshalJSON() ([]byte, error) {
	if !s.Valid && s.Raw == "" {
		return []byte("null"), nil
	}
	return json.Marshal(s.Raw)
}

// ParseScore reads a score from provider text. Blank or non-numeric text is
// an invalid Score that keeps the text in Raw.
func ParseScore(str string) Score {
	trimmed := strings.TrimSpace(str)
	if trimmed == "" {
		return Score{}
	}
	if n, err := strconv.Atoi(trimmed); err == nil {
		return Score{Value: n, Valid: true, Raw: str}
	}
	if f, err := strconv.ParseFloat(trimmed, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		sc := scoreFromFloat(f)
		sc.Raw = str
		return sc
	}
	return Score{Raw: str}
}

func scoreFromFloat(f float64) Score {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Score{}
	}
	v := int(f)
	return Score{Value: v, Valid: true, Raw: strconv.Itoa(v)}
}

// FlexString accepts either a JSON string or number.
type FlexString string

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	*f = FlexString(string(b))
	return nil
}

func (f FlexString) String() string { return string(f) }
