package utils

import (
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// ToInt coerces a decoded JSON value to an int. Strings are read as base-10
// after trimming surrounding whitespace, so "010" is 10 rather than octal.
func ToInt(v any) (int, error) {
	if s, ok := v.(string); ok {
		return strconv.Atoi(strings.TrimSpace(s))
	}
	return cast.ToIntE(v)
}
