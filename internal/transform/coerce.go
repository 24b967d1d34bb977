package transform

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ToInt coerces a provider numeric column to int. Integer strings parse
// directly; decimal strings such as "25.0" or "0.5" are truncated toward zero.
func ToInt(raw string) (int, error) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return 0, fmt.Errorf("empty numeric value")
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", raw)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("not a finite number: %q", raw)
	}
	return int(f), nil
}
