package normalize

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// nullTokens are spreadsheet renderings of an empty cell.
var nullTokens = map[string]bool{
	"nan":  true,
	"none": true,
	"null": true,
}

// CleanString trims s and returns nil for empty or null-like values.
// Values are returned in Unicode NFC form.
func CleanString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" || nullTokens[strings.ToLower(s)] {
		return nil
	}
	s = norm.NFC.String(s)
	return &s
}

// CleanNumber parses s as a float. Unparseable, NaN and infinite values are
// absent (nil), never zero. A decimal comma is accepted when s has no dot.
func CleanNumber(s string) *float64 {
	v := CleanString(s)
	if v == nil {
		return nil
	}
	str := *v
	if !strings.Contains(str, ".") && strings.Count(str, ",") == 1 {
		str = strings.Replace(str, ",", ".", 1)
	}

	f, err := strconv.ParseFloat(str, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// CleanCNES renders a facility code as an integer string ("123456.0" becomes
// "123456"). Non-numeric codes are absent.
func CleanCNES(s string) *string {
	f := CleanNumber(s)
	if f == nil {
		return nil
	}
	// Codes beyond int64 range cannot be rendered as integers.
	if math.Abs(*f) >= math.MaxInt64 {
		return nil
	}
	code := strconv.FormatInt(int64(*f), 10)
	return &code
}
