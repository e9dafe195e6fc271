package models

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// NumericText accepts a JSON number or string and keeps its text form.
// Numbers are rendered in shortest form (12.90 -> "12.9"). null decodes to "".
type NumericText string

func (n *NumericText) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*n = ""
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = NumericText(s)
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*n = NumericText(strconv.FormatFloat(f, 'f', -1, 64))
	return nil
}

// Ptr returns nil for an empty value so optional columns stay NULL.
func (n NumericText) Ptr() *string {
	if n == "" {
		return nil
	}
	s := string(n)
	return &s
}

// Float parses the trimmed text; ok is false when it is not a finite number.
func (n NumericText) Float() (float64, bool) {
	return ParseNumeric(string(n))
}

// ParseNumeric is the strict numeric read used by analytics.
func ParseNumeric(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// PayloadText keeps an opaque payload as text: strings verbatim, any other
// JSON value compacted. null decodes to "".
type PayloadText string

func (p *PayloadText) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*p = ""
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*p = PayloadText(s)
		return nil
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, data); err != nil {
		return err
	}
	*p = PayloadText(buf.String())
	return nil
}

func (p PayloadText) Ptr() *string {
	if p == "" {
		return nil
	}
	s := string(p)
	return &s
}
