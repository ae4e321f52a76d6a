package utils

import (
	"strconv"
	"strings"
)

// FormatWithCommas formats an integer with comma separators
func FormatWithCommas(n int) string {
	str := strconv.Itoa(n)
	sign := ""
	if n < 0 {
		sign, str = "-", str[1:]
	}
	if len(str) <= 3 {
		return sign + str
	}

	var b strings.Builder
	b.WriteString(sign)
	for i, char := range str {
		if i > 0 && (len(str)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(char)
	}
	return b.String()
}

// CreateRankList returns positional ranks 1..count for an already ordered
// list. count must not exceed math.MaxUint16.
func CreateRankList(count int) []uint16 {
	ranks := make([]uint16, 0, max(count, 0))
	for i := 1; i <= count; i++ {
		ranks = append(ranks, uint16(i))
	}
	return ranks
}
