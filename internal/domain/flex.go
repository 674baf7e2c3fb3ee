package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// FlexNumber acepta 4, 4.5, "4", "80%" o "4 seconds" al decodificar y siempre serializa como numero.
type FlexNumber float64

func (n *FlexNumber) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" || raw == "" {
		*n = 0
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		*n = FlexNumber(f)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("flex number: %w", err)
	}
	fields := strings.Fields(s)
	if len(fields) == 0 {
		*n = 0
		return nil
	}
	f, err := strconv.ParseFloat(strings.TrimSuffix(fields[0], "%"), 64)
	if err != nil {
		return fmt.Errorf("flex number %q: %w", s, err)
	}
	*n = FlexNumber(f)
	return nil
}

// FlexString acepta string o numero y conserva el texto.
type FlexString string

func (s *FlexString) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" || raw == "" {
		*s = ""
		return nil
	}
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*s = FlexString(str)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("flex string: %w", err)
	}
	*s = FlexString(strconv.FormatFloat(f, 'f', -1, 64))
	return nil
}
