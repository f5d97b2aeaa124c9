package common

import (
	"strings"
)

// ReadableNumber groups the integer part of a decimal string by thousands:
// "1234567.50" -> "1,234,567.50".
func ReadableNumber(value string) string {
	intPart, frac, hasFrac := strings.Cut(value, ".")
	sign := ""
	if strings.HasPrefix(intPart, "-") {
		sign, intPart = "-", intPart[1:]
	}
	if len(intPart) <= 3 {
		return value
	}
	var b strings.Builder
	lead := len(intPart) % 3
	if lead > 0 {
		b.WriteString(intPart[:lead])
	}
	for i := lead; i < len(intPart); i += 3 {
		if b.Len() > 0 {
			b.WriteString(",")
		}
		b.WriteString(intPart[i : i+3])
	}
	result := sign + b.String()
	if hasFrac {
		result += "." + frac
	}
	return result
}
