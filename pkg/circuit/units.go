package circuit

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

var siPrefixes = []struct {
	factor float64
	symbol string
}{
	{1e12, "T"},
	{1e9, "G"},
	{1e6, "M"},
	{1e3, "k"},
	{1, ""},
	{1e-3, "m"},
	{1e-6, "u"},
	{1e-9, "n"},
	{1e-12, "p"},
	{1e-15, "f"},
}

// FormatValue renders value with an SI prefix and the kind's unit,
// e.g. 1000 ohms -> "1kΩ", 0.01 farads -> "10mF".
func FormatValue(kind Kind, value float64) string {
	unit := kind.Unit()
	if value == 0 || math.IsNaN(value) || math.IsInf(value, 0) {
		return strconv.FormatFloat(value, 'g', -1, 64) + unit
	}

	abs := math.Abs(value)
	prefix := siPrefixes[len(siPrefixes)-1]
	for _, p := range siPrefixes {
		if abs >= p.factor {
			prefix = p
			break
		}
	}
	return strconv.FormatFloat(value/prefix.factor, 'g', 4, 64) + prefix.symbol + unit
}

// SPICE-style multipliers. Suffixes are case-sensitive except "meg".
var unitMap = map[string]float64{
	"T":   1e12, // tera
	"G":   1e9,  // giga
	"meg": 1e6,  // mega
	"K":   1e3,  // kilo
	"k":   1e3,  // kilo
	"m":   1e-3, // milli
	"u":   1e-6, // micro
	"n":   1e-9, // nano
	"p":   1e-12,
	"f":   1e-15,
}

// ParseValue parses a component value such as "1k", "10n", "4.7meg" or
// "2.2e-6". A trailing unit ("Ω", "ohm", "F") is ignored. After a unit,
// "M" means mega so that FormatValue output such as "2.2MΩ" parses back.
func ParseValue(s string) (float64, error) {
	str := strings.TrimSpace(s)
	hasUnit := false
	for _, unit := range []string{"Ω", "ohms", "ohm", "F"} {
		if strings.HasSuffix(str, unit) && len(str) > len(unit) {
			str = strings.TrimSuffix(str, unit)
			hasUnit = true
			break
		}
	}
	if str == "" {
		return 0, fmt.Errorf("circuit: empty value")
	}

	if v, err := strconv.ParseFloat(str, 64); err == nil {
		return v, nil
	}

	lower := strings.ToLower(str)
	if strings.HasSuffix(lower, "meg") {
		return scaleValue(str[:len(str)-3], unitMap["meg"], s)
	}
	suffix := str[len(str)-1:]
	if hasUnit && suffix == "M" {
		return scaleValue(str[:len(str)-1], 1e6, s)
	}
	mult, ok := unitMap[suffix]
	if !ok {
		return 0, fmt.Errorf("circuit: invalid value %q", s)
	}
	return scaleValue(str[:len(str)-1], mult, s)
}

func scaleValue(num string, mult float64, orig string) (float64, error) {
	v, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, fmt.Errorf("circuit: invalid value %q", orig)
	}
	return v * mult, nil
}
