// Package lovelace formats lovelace amounts for display.
package lovelace

import (
	"math"
	"strconv"
)

// PerAda is the number of lovelace in one ada.
const PerAda = 1_000_000

// CurrencySymbol is the ada currency sign.
const CurrencySymbol = "₳"

// Options controls how an amount is rendered.
type Options struct {
	Compact               bool
	IncludeCurrencySymbol bool
}

// Format renders a lovelace amount in ada. Compact mode scales the value
// with a K/M/B/T suffix and keeps at most two decimals; plain mode keeps up
// to six decimals. Trailing zeros are always trimmed.
func Format(amount int64, opts Options) string {
	negative := amount < 0
	ada := math.Abs(float64(amount)) / PerAda

	var body string
	if opts.Compact {
		body = compact(ada)
	} else {
		body = trim(strconv.FormatFloat(round(ada, 6), 'f', -1, 64))
	}

	out := body
	if opts.IncludeCurrencySymbol {
		out = CurrencySymbol + out
	}
	if negative {
		out = "-" + out
	}
	return out
}

var suffixes = []struct {
	threshold float64
	suffix    string
}{
	{1e12, "T"},
	{1e9, "B"},
	{1e6, "M"},
	{1e3, "K"},
}

func compact(ada float64) string {
	for _, s := range suffixes {
		if ada >= s.threshold {
			return trim(strconv.FormatFloat(round(ada/s.threshold, 2), 'f', -1, 64)) + s.suffix
		}
	}
	return trim(strconv.FormatFloat(round(ada, 2), 'f', -1, 64))
}

func round(v float64, decimals int) float64 {
	scale := math.Pow(10, float64(decimals))
	return math.Round(v*scale) / scale
}

func trim(s string) string {
	// strconv with precision -1 already drops trailing zeros; this only
	// guards against a bare trailing dot.
	if len(s) > 0 && s[len(s)-1] == '.' {
		return s[:len(s)-1]
	}
	return s
}
