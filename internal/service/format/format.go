// Package format turns raw snapshot numbers into display strings.
// Every function is pure and total: invalid input degrades to Placeholder.
package format

import (
	"math"
	"strconv"
	"strings"
	"time"

	"Wallboard/internal/domain/models"

	"github.com/shopspring/decimal"
)

// Placeholder is shown for absent or non-numeric values.
const Placeholder = "--"

const (
	clockLayout    = "15:04:05"
	dateTimeLayout = "2006/1/2 15:04:05"
)

func valid(v *float64) bool {
	return v != nil && !math.IsNaN(*v) && !math.IsInf(*v, 0)
}

// ClassifyChange maps the sign of v to a direction. nil, NaN and zero are unchanged.
func ClassifyChange(v *float64) models.Direction {
	if v == nil || math.IsNaN(*v) {
		return models.DirectionUnchanged
	}
	switch {
	case *v > 0:
		return models.DirectionUp
	case *v < 0:
		return models.DirectionDown
	default:
		return models.DirectionUnchanged
	}
}

// FormatMagnitude renders v with a fixed number of decimals.
func FormatMagnitude(v *float64, decimals int) string {
	if !valid(v) {
		return Placeholder
	}
	return fixed(*v, decimals)
}

// FormatSignedChange is FormatMagnitude with a leading "+" for v >= 0.
func FormatSignedChange(v *float64, decimals int) string {
	if !valid(v) {
		return Placeholder
	}
	s := fixed(*v, decimals)
	if *v >= 0 {
		return "+" + s
	}
	if !strings.HasPrefix(s, "-") {
		// rounded to zero; keep the sign of the input
		s = "-" + s
	}
	return s
}

// FormatPercent appends "%" to a signed change.
func FormatPercent(v *float64, decimals int) string {
	return FormatSignedChange(v, decimals) + "%"
}

// FormatCount renders a summary counter.
func FormatCount(n int) string {
	return strconv.Itoa(n)
}

// FormatClock renders a 24h wall clock time in loc.
func FormatClock(t time.Time, loc *time.Location) string {
	return inLocation(t, loc).Format(clockLayout)
}

// FormatDateTime renders a date and 24h time in loc.
func FormatDateTime(t time.Time, loc *time.Location) string {
	return inLocation(t, loc).Format(dateTimeLayout)
}

// fixed rounds the shortest decimal form of v half away from zero, so 1.005
// renders as "1.01" rather than the binary-rounded "1.00".
func fixed(v float64, decimals int) string {
	if decimals < 0 {
		decimals = 0
	}
	return decimal.NewFromFloat(v).StringFixed(int32(decimals))
}

func inLocation(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		return t
	}
	return t.In(loc)
}
