package format

import (
	"math"
	"math/big"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Count groups thousands with commas (e.g. 1234567 → "1,234,567").
func Count(n uint64) string {
	if n > math.MaxInt64 {
		return humanize.BigComma(new(big.Int).SetUint64(n))
	}
	return humanize.Comma(int64(n))
}

// CountFormatter returns a grouping formatter for the given BCP 47 locale.
// English (and anything that fails to parse) uses Count.
func CountFormatter(locale string) func(uint64) string {
	tag, err := language.Parse(locale)
	if err != nil || tag == language.English {
		return Count
	}
	p := message.NewPrinter(tag)
	return func(n uint64) string {
		return p.Sprint(number.Decimal(n))
	}
}
