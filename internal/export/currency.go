package export

import (
	"strconv"
	"strings"
)

// FormatEuro renders a revenue amount for display: euro prefix, thousands
// separators, two decimals. The underlying stored value stays a raw number;
// this is presentation only.
func FormatEuro(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)

	sign := ""
	if strings.HasPrefix(s, "-") {
		sign = "-"
		s = s[1:]
	}

	intPart, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	b.WriteString("€")
	b.WriteString(sign)
	for i := 0; i < len(intPart); i++ {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteByte(intPart[i])
	}
	b.WriteByte('.')
	b.WriteString(frac)
	return b.String()
}
