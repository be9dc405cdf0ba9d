package validation

import (
	"math"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"
)

const MaxNameLength = 255

func NormalizeUsername(username string) string {
	return strings.TrimSpace(username)
}

// NormalizeName trims a group or read name and caps it at MaxNameLength.
func NormalizeName(name string) string {
	return TrimAndLimit(name, MaxNameLength)
}

func MaxMessageLength() int {
	maxStr := os.Getenv("MAX_MESSAGE_LENGTH")
	if maxStr == "" {
		return 4000
	}
	max, err := strconv.Atoi(maxStr)
	if err != nil || max < 1 {
		return 4000
	}
	return max
}

// TrimAndLimit trims s and cuts it to at most max runes.
func TrimAndLimit(s string, max int) string {
	s = strings.TrimSpace(s)
	if max <= 0 || utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max])
}

// ValidProgress reports whether p is a usable reading offset.
func ValidProgress(p float64) bool {
	return p >= 0 && !math.IsNaN(p) && !math.IsInf(p, 0)
}
